package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/ogurasousui/placement-crm/internal/core/message"
	pgdb "github.com/ogurasousui/placement-crm/internal/platform/db/postgres"
)

const messageColumns = `id, date, subject, body, channel, sender, state, priority, version`

// MessageRepository は PostgreSQL を利用したメッセージ永続化の実装です。
type MessageRepository struct {
	pool pgdb.Queryer
}

// NewMessageRepository は MessageRepository を生成します。
func NewMessageRepository(pool pgdb.Queryer) *MessageRepository {
	return &MessageRepository{pool: pool}
}

// Create はメッセージを登録します。
func (r *MessageRepository) Create(ctx context.Context, m *message.Message) (*message.Message, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	row := exec.QueryRow(ctx, `
        INSERT INTO messages (id, date, subject, body, channel, sender, state, priority)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
        RETURNING `+messageColumns+`
    `,
		m.ID,
		m.Date,
		m.Subject,
		m.Body,
		m.Channel,
		m.Sender,
		string(m.State),
		string(m.Priority),
	)

	created, err := scanMessage(row)
	if err != nil {
		return nil, translateMessagePgError(err)
	}
	return created, nil
}

// FindByID は ID でメッセージを取得します。
func (r *MessageRepository) FindByID(ctx context.Context, id string) (*message.Message, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	row := exec.QueryRow(ctx, `
        SELECT `+messageColumns+`
          FROM messages
         WHERE id = $1
         LIMIT 1
    `, id)

	found, err := scanMessage(row)
	if err != nil {
		return nil, translateMessagePgError(err)
	}
	return found, nil
}

// Update は状態と優先度を Version 付きで更新します。
func (r *MessageRepository) Update(ctx context.Context, m *message.Message) (*message.Message, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	row := exec.QueryRow(ctx, `
        UPDATE messages
           SET state = $1,
               priority = $2,
               version = version + 1
         WHERE id = $3 AND version = $4
        RETURNING `+messageColumns+`
    `,
		string(m.State),
		string(m.Priority),
		m.ID,
		m.Version,
	)

	updated, err := scanMessage(row)
	if err != nil {
		if errors.Is(err, message.ErrMessageNotFound) {
			return nil, message.ErrConcurrentModification
		}
		return nil, translateMessagePgError(err)
	}
	return updated, nil
}

func scanMessage(row pgx.Row) (*message.Message, error) {
	var (
		id       string
		date     time.Time
		subject  string
		body     string
		channel  string
		sender   string
		state    string
		priority string
		version  int64
	)

	if err := row.Scan(&id, &date, &subject, &body, &channel, &sender, &state, &priority, &version); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, message.ErrMessageNotFound
		}
		return nil, err
	}

	return &message.Message{
		ID:       id,
		Date:     date.UTC(),
		Subject:  subject,
		Body:     body,
		Channel:  channel,
		Sender:   sender,
		State:    message.State(state),
		Priority: message.Priority(priority),
		Version:  version,
	}, nil
}

func translateMessagePgError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return message.ErrMessageNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == foreignKeyViolationCode {
		return message.ErrMessageNotFound
	}

	return err
}
