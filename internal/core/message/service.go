package message

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/ogurasousui/placement-crm/internal/core/analytics"
)

// Clock は現在時刻を提供します。
type Clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time {
	return time.Now().UTC()
}

// TransactionManager はトランザクション制御の抽象化です。
type TransactionManager interface {
	WithinReadOnly(ctx context.Context, fn func(context.Context) error) error
	WithinReadWrite(ctx context.Context, fn func(context.Context) error) error
}

type noopTransactionManager struct{}

func (noopTransactionManager) WithinReadOnly(ctx context.Context, fn func(context.Context) error) error {
	if fn == nil {
		return nil
	}
	return fn(ctx)
}

func (noopTransactionManager) WithinReadWrite(ctx context.Context, fn func(context.Context) error) error {
	if fn == nil {
		return nil
	}
	return fn(ctx)
}

// Service はメッセージに関するユースケースをまとめます。
type Service struct {
	repo      Repository
	ledger    *HistoryLedger
	publisher analytics.Publisher
	clock     Clock
	tx        TransactionManager
	logger    *slog.Logger
}

// UseCase はメッセージユースケースの公開インターフェースです。
type UseCase interface {
	CreateMessage(ctx context.Context, in CreateMessageInput) (*Message, error)
	GetMessage(ctx context.Context, in GetMessageInput) (*Message, error)
	UpdateMessage(ctx context.Context, in UpdateMessageInput) (*Message, error)
	GetHistory(ctx context.Context, in GetHistoryInput) ([]*History, error)
}

// NewService は Service を生成します。
func NewService(
	repo Repository,
	history HistoryRepository,
	publisher analytics.Publisher,
	clock Clock,
	tx TransactionManager,
	logger *slog.Logger,
) *Service {
	if publisher == nil {
		publisher = analytics.NoopPublisher{}
	}
	if clock == nil {
		clock = realClock{}
	}
	if tx == nil {
		tx = noopTransactionManager{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		repo:      repo,
		ledger:    NewHistoryLedger(repo, history, clock),
		publisher: publisher,
		clock:     clock,
		tx:        tx,
		logger:    logger,
	}
}

// CreateMessageInput はメッセージ登録時の入力です。Priority が nil の場合は LOW になります。
type CreateMessageInput struct {
	Subject  string
	Body     string
	Channel  string
	Sender   string
	Priority *Priority
}

// GetMessageInput はメッセージ取得時の入力です。
type GetMessageInput struct {
	ID string
}

// UpdateMessageInput はメッセージ更新時の入力です。
// State と Priority の少なくとも一方が必要で、State を指定する場合は Comment が必須です。
type UpdateMessageInput struct {
	ID       string
	State    *State
	Comment  string
	Priority *Priority
}

// GetHistoryInput は履歴取得時の入力です。
type GetHistoryInput struct {
	MessageID string
}

// CreateMessage は RECEIVED 状態のメッセージを登録します。
func (s *Service) CreateMessage(ctx context.Context, in CreateMessageInput) (*Message, error) {
	sender := strings.TrimSpace(in.Sender)
	if sender == "" {
		return nil, ErrInvalidSender
	}
	channel := strings.TrimSpace(in.Channel)
	if channel == "" {
		return nil, ErrInvalidChannel
	}

	priority := PriorityLow
	if in.Priority != nil {
		parsed, err := ParsePriority(string(*in.Priority))
		if err != nil {
			return nil, err
		}
		priority = parsed
	}

	var created *Message
	if err := s.tx.WithinReadWrite(ctx, func(txCtx context.Context) error {
		result, err := s.repo.Create(txCtx, &Message{
			ID:       uuid.NewString(),
			Date:     s.clock.Now().Truncate(historyResolution),
			Subject:  strings.TrimSpace(in.Subject),
			Body:     in.Body,
			Channel:  channel,
			Sender:   sender,
			State:    StateReceived,
			Priority: priority,
		})
		if err != nil {
			return err
		}
		created = result
		return nil
	}); err != nil {
		return nil, err
	}

	return created, nil
}

// GetMessage はメッセージを取得します。
func (s *Service) GetMessage(ctx context.Context, in GetMessageInput) (*Message, error) {
	id, err := normalizeID(in.ID)
	if err != nil {
		return nil, err
	}

	var found *Message
	if err := s.tx.WithinReadOnly(ctx, func(txCtx context.Context) error {
		result, err := s.repo.FindByID(txCtx, id)
		if err != nil {
			return err
		}
		found = result
		return nil
	}); err != nil {
		return nil, err
	}

	return found, nil
}

// UpdateMessage は状態と優先度を更新します。状態が変わった場合は同じトランザクションで
// 履歴を一件追記します。
func (s *Service) UpdateMessage(ctx context.Context, in UpdateMessageInput) (*Message, error) {
	id, err := normalizeID(in.ID)
	if err != nil {
		return nil, err
	}

	if in.State == nil && in.Priority == nil {
		return nil, fmt.Errorf("state or priority is required: %w", ErrInvalidUpdateMessageRequest)
	}

	var target State
	if in.State != nil {
		if strings.TrimSpace(in.Comment) == "" {
			return nil, fmt.Errorf("comment is required with a state change: %w", ErrInvalidUpdateMessageRequest)
		}
		target, err = ParseState(string(*in.State))
		if err != nil {
			return nil, err
		}
	}

	var priority Priority
	if in.Priority != nil {
		priority, err = ParsePriority(string(*in.Priority))
		if err != nil {
			return nil, err
		}
	}

	var updated *Message
	if err := s.tx.WithinReadWrite(ctx, func(txCtx context.Context) error {
		msg, err := s.repo.FindByID(txCtx, id)
		if err != nil {
			return err
		}

		if target != "" {
			if !CanTransition(msg.State, target) {
				return fmt.Errorf("%s -> %s: %w", msg.State, target, ErrInvalidStateTransition)
			}
			msg.State = target
		}
		if priority != "" {
			msg.Priority = priority
		}

		result, err := s.repo.Update(txCtx, msg)
		if err != nil {
			return err
		}

		if target != "" {
			if _, err := s.ledger.Append(txCtx, result.ID, target, in.Comment); err != nil {
				return fmt.Errorf("append history: %w", err)
			}
		}

		updated = result
		return nil
	}); err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "message updated",
		slog.String("message_id", updated.ID),
		slog.String("state", string(updated.State)),
		slog.String("priority", string(updated.Priority)),
	)
	s.publish(ctx, updated, target == StateDone)

	return updated, nil
}

// GetHistory はメッセージの履歴を古い順に返します。
func (s *Service) GetHistory(ctx context.Context, in GetHistoryInput) ([]*History, error) {
	id, err := normalizeID(in.MessageID)
	if err != nil {
		return nil, err
	}

	var entries []*History
	if err := s.tx.WithinReadOnly(ctx, func(txCtx context.Context) error {
		result, err := s.ledger.List(txCtx, id)
		if err != nil {
			return err
		}
		entries = result
		return nil
	}); err != nil {
		return nil, err
	}

	return entries, nil
}

func (s *Service) publish(ctx context.Context, msg *Message, completed bool) {
	channels := []analytics.Channel{analytics.ChannelMessage}
	if completed {
		channels = append(channels, analytics.ChannelCompletedMessage)
	}

	for _, channel := range channels {
		if err := s.publisher.Publish(ctx, channel, msg); err != nil {
			s.logger.WarnContext(ctx, "publish message event failed",
				slog.String("channel", string(channel)),
				slog.String("message_id", msg.ID),
				slog.Any("err", err),
			)
		}
	}
}

func normalizeID(raw string) (string, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", ErrInvalidID
	}
	parsed, err := uuid.Parse(trimmed)
	if err != nil {
		return "", fmt.Errorf("%q: %w", trimmed, ErrInvalidID)
	}
	return parsed.String(), nil
}
