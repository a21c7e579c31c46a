package message

import "context"

// Repository はメッセージ永続化の抽象です。
type Repository interface {
	Create(ctx context.Context, m *Message) (*Message, error)
	FindByID(ctx context.Context, id string) (*Message, error)
	// Update は Version が一致する場合のみ状態と優先度を書き込みます。
	Update(ctx context.Context, m *Message) (*Message, error)
}

// HistoryRepository は履歴台帳の永続化の抽象です。追記と参照のみを提供します。
type HistoryRepository interface {
	Append(ctx context.Context, h *History) (*History, error)
	// ListByMessage は date 昇順で返します。
	ListByMessage(ctx context.Context, messageID string) ([]*History, error)
	// Latest は最新のエントリを返します。存在しなければ nil を返します。
	Latest(ctx context.Context, messageID string) (*History, error)
}
