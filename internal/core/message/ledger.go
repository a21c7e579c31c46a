package message

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
)

// historyResolution は保存先が保持できる時刻の精度です。
const historyResolution = time.Microsecond

// HistoryLedger はメッセージごとの追記専用の履歴台帳です。
// 同一メッセージのエントリは date が厳密に昇順になるよう採番されます。
type HistoryLedger struct {
	messages Repository
	history  HistoryRepository
	clock    Clock
}

// NewHistoryLedger は HistoryLedger を生成します。
func NewHistoryLedger(messages Repository, history HistoryRepository, clock Clock) *HistoryLedger {
	if clock == nil {
		clock = realClock{}
	}
	return &HistoryLedger{messages: messages, history: history, clock: clock}
}

// Append は状態変化を一件記録します。呼び出し側のトランザクション内で実行してください。
// 時計の値が直前のエントリ以前であれば、直前の値に 1 マイクロ秒を加えた時刻を使います。
func (l *HistoryLedger) Append(ctx context.Context, messageID string, state State, comment string) (*History, error) {
	date := l.clock.Now().Truncate(historyResolution)

	latest, err := l.history.Latest(ctx, messageID)
	if err != nil {
		return nil, err
	}
	if latest != nil && !date.After(latest.Date) {
		date = latest.Date.Add(historyResolution)
	}

	return l.history.Append(ctx, &History{
		ID:        uuid.NewString(),
		MessageID: messageID,
		State:     state,
		Date:      date,
		Comment:   strings.TrimSpace(comment),
	})
}

// List はメッセージの履歴を date 昇順で返します。
func (l *HistoryLedger) List(ctx context.Context, messageID string) ([]*History, error) {
	if _, err := l.messages.FindByID(ctx, messageID); err != nil {
		return nil, err
	}

	entries, err := l.history.ListByMessage(ctx, messageID)
	if err != nil {
		return nil, err
	}
	if entries == nil {
		entries = []*History{}
	}
	return entries, nil
}
