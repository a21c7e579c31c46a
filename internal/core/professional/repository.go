package professional

import "context"

// Repository はプロフェッショナル永続化の抽象です。
type Repository interface {
	// FindByID は論理削除されていないプロフェッショナルを返します。
	FindByID(ctx context.Context, id string) (*Professional, error)
	// UpdateEmploymentState は Version が一致する場合のみ就業状態を書き込み、Version を進めます。
	UpdateEmploymentState(ctx context.Context, p *Professional) (*Professional, error)
	// TouchVersion は就業状態を変えずに Version だけを進めます。
	// Version が一致しない場合は ErrConcurrentModification を返します。
	TouchVersion(ctx context.Context, p *Professional) error
	ListActiveIDs(ctx context.Context) ([]string, error)
}
