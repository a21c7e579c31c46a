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

const historyColumns = `id, message_id, state, date, comment`

// HistoryRepository は message_history テーブルへの追記と参照を提供します。
// 更新と削除は提供しません。
type HistoryRepository struct {
	pool pgdb.Queryer
}

// NewHistoryRepository は HistoryRepository を生成します。
func NewHistoryRepository(pool pgdb.Queryer) *HistoryRepository {
	return &HistoryRepository{pool: pool}
}

// Append は履歴を一件追記します。
func (r *HistoryRepository) Append(ctx context.Context, h *message.History) (*message.History, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	row := exec.QueryRow(ctx, `
        INSERT INTO message_history (id, message_id, state, date, comment)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING `+historyColumns+`
    `,
		h.ID,
		h.MessageID,
		string(h.State),
		h.Date,
		h.Comment,
	)

	created, err := scanHistory(row)
	if err != nil {
		return nil, translateHistoryPgError(err)
	}
	return created, nil
}

// ListByMessage はメッセージの履歴を date 昇順で返します。
func (r *HistoryRepository) ListByMessage(ctx context.Context, messageID string) ([]*message.History, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	rows, err := exec.Query(ctx, `
        SELECT `+historyColumns+`
          FROM message_history
         WHERE message_id = $1
         ORDER BY date ASC, id ASC
    `, messageID)
	if err != nil {
		return nil, translateHistoryPgError(err)
	}
	defer rows.Close()

	entries := make([]*message.History, 0)
	for rows.Next() {
		h, err := scanHistory(rows)
		if err != nil {
			return nil, translateHistoryPgError(err)
		}
		entries = append(entries, h)
	}

	if err := rows.Err(); err != nil {
		return nil, translateHistoryPgError(err)
	}

	return entries, nil
}

// Latest は最新の履歴を返します。履歴が無ければ nil を返します。
func (r *HistoryRepository) Latest(ctx context.Context, messageID string) (*message.History, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	row := exec.QueryRow(ctx, `
        SELECT `+historyColumns+`
          FROM message_history
         WHERE message_id = $1
         ORDER BY date DESC, id DESC
         LIMIT 1
    `, messageID)

	latest, err := scanHistory(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, translateHistoryPgError(err)
	}
	return latest, nil
}

func scanHistory(row pgx.Row) (*message.History, error) {
	var (
		id        string
		messageID string
		state     string
		date      time.Time
		comment   string
	)

	if err := row.Scan(&id, &messageID, &state, &date, &comment); err != nil {
		return nil, err
	}

	return &message.History{
		ID:        id,
		MessageID: messageID,
		State:     message.State(state),
		Date:      date.UTC(),
		Comment:   comment,
	}, nil
}

func translateHistoryPgError(err error) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case foreignKeyViolationCode:
			return message.ErrMessageNotFound
		case uniqueViolationCode:
			return message.ErrConcurrentModification
		}
	}

	return err
}
