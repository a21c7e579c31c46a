package joboffer

import "context"

// Repository は求人永続化の抽象です。論理削除済みの求人はどの検索結果にも現れません。
type Repository interface {
	Create(ctx context.Context, offer *JobOffer) (*JobOffer, error)
	FindByID(ctx context.Context, id string) (*JobOffer, error)
	// Update は Version が一致する場合のみ書き込み、一致しなければ ErrConcurrentModification を返します。
	Update(ctx context.Context, offer *JobOffer) (*JobOffer, error)
	ListByProfessional(ctx context.Context, professionalID string) ([]*JobOffer, error)
}
