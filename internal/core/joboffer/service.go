package joboffer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/ogurasousui/placement-crm/internal/core/analytics"
	"github.com/ogurasousui/placement-crm/internal/core/professional"
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

// ProfessionalFinder は割り当て候補のプロフェッショナルを取得します。
type ProfessionalFinder interface {
	FindByID(ctx context.Context, id string) (*professional.Professional, error)
}

// EmploymentCoordinator は求人の変更後にプロフェッショナルの就業状態を再計算します。
// 呼び出しは求人の書き込みと同じトランザクション内で行われます。
type EmploymentCoordinator interface {
	Recompute(ctx context.Context, professionalID string) (professional.EmploymentState, error)
	RecomputeOnDeletion(ctx context.Context, professionalID string) (professional.EmploymentState, error)
}

// Service は求人に関するユースケースをまとめます。
type Service struct {
	repo          Repository
	professionals ProfessionalFinder
	coordinator   EmploymentCoordinator
	publisher     analytics.Publisher
	clock         Clock
	tx            TransactionManager
	logger        *slog.Logger
}

// UseCase は求人ユースケースの公開インターフェースです。
type UseCase interface {
	CreateJobOffer(ctx context.Context, in CreateJobOfferInput) (*JobOffer, error)
	GetJobOffer(ctx context.Context, in GetJobOfferInput) (*JobOffer, error)
	TransitionStatus(ctx context.Context, in TransitionStatusInput) (*JobOffer, error)
	DeleteJobOffer(ctx context.Context, in DeleteJobOfferInput) error
}

// NewService は Service を生成します。coordinator は必須です。
func NewService(
	repo Repository,
	professionals ProfessionalFinder,
	coordinator EmploymentCoordinator,
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
		repo:          repo,
		professionals: professionals,
		coordinator:   coordinator,
		publisher:     publisher,
		clock:         clock,
		tx:            tx,
		logger:        logger,
	}
}

// CreateJobOfferInput は求人作成時の入力です。
type CreateJobOfferInput struct {
	CustomerID     string
	RequiredSkills []string
	Duration       int
	Value          float64
	Note           string
}

// GetJobOfferInput は求人取得時の入力です。
type GetJobOfferInput struct {
	ID string
}

// TransitionStatusInput はステータス変更時の入力です。
// ProfessionalID が nil の場合は割り当て済みのプロフェッショナルを引き継ぎます。
type TransitionStatusInput struct {
	JobOfferID     string
	Status         Status
	ProfessionalID *string
}

// DeleteJobOfferInput は求人削除時の入力です。
type DeleteJobOfferInput struct {
	ID string
}

// CreateJobOffer は CREATED 状態の求人を作成します。
func (s *Service) CreateJobOffer(ctx context.Context, in CreateJobOfferInput) (*JobOffer, error) {
	customerID, err := normalizeID(in.CustomerID, ErrInvalidCustomerID)
	if err != nil {
		return nil, err
	}

	skills, err := normalizeSkills(in.RequiredSkills)
	if err != nil {
		return nil, err
	}

	if in.Duration < 0 {
		return nil, ErrInvalidDuration
	}
	if in.Value < 0 {
		return nil, ErrInvalidValue
	}

	var created *JobOffer
	if err := s.tx.WithinReadWrite(ctx, func(txCtx context.Context) error {
		now := s.clock.Now()
		offer := &JobOffer{
			ID:             uuid.NewString(),
			CustomerID:     customerID,
			Status:         StatusCreated,
			RequiredSkills: skills,
			Duration:       in.Duration,
			Value:          in.Value,
			Note:           strings.TrimSpace(in.Note),
			CreatedAt:      now,
			UpdatedAt:      now,
		}

		result, err := s.repo.Create(txCtx, offer)
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

// GetJobOffer は求人を取得します。論理削除済みの求人は見つからない扱いです。
func (s *Service) GetJobOffer(ctx context.Context, in GetJobOfferInput) (*JobOffer, error) {
	id, err := normalizeID(in.ID, ErrInvalidID)
	if err != nil {
		return nil, err
	}

	var found *JobOffer
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

// TransitionStatus は求人のステータスを変更し、影響を受けるプロフェッショナルの就業状態を
// 同じトランザクション内で再計算します。検証エラーは書き込み前に返されます。
func (s *Service) TransitionStatus(ctx context.Context, in TransitionStatusInput) (*JobOffer, error) {
	id, err := normalizeID(in.JobOfferID, ErrInvalidID)
	if err != nil {
		return nil, err
	}

	target, err := ParseStatus(string(in.Status))
	if err != nil {
		return nil, err
	}

	var requested string
	if in.ProfessionalID != nil {
		requested, err = normalizeID(*in.ProfessionalID, ErrInvalidProfessionalID)
		if err != nil {
			return nil, err
		}
	}

	var updated *JobOffer
	if err := s.tx.WithinReadWrite(ctx, func(txCtx context.Context) error {
		offer, err := s.repo.FindByID(txCtx, id)
		if err != nil {
			return err
		}

		if !IsTransitionAllowed(offer.Status, target) {
			return fmt.Errorf("%s -> %s: %w", offer.Status, target, ErrInvalidStatusTransition)
		}

		assigned, err := s.resolveProfessional(txCtx, offer, target, requested)
		if err != nil {
			return err
		}

		previous := offer.ProfessionalID
		offer.Status = target
		offer.ProfessionalID = assigned
		offer.UpdatedAt = s.clock.Now()

		result, err := s.repo.Update(txCtx, offer)
		if err != nil {
			return err
		}

		for _, professionalID := range affectedProfessionals(previous, assigned) {
			if err := s.recomputeEmployment(txCtx, professionalID, false); err != nil {
				return err
			}
		}

		updated = result
		return nil
	}); err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "job offer status changed",
		slog.String("job_offer_id", updated.ID),
		slog.String("status", string(updated.Status)),
		slog.String("professional_id", updated.ProfessionalID),
	)
	s.publish(ctx, updated)

	return updated, nil
}

// DeleteJobOffer は求人を論理削除し、割り当て済みのプロフェッショナルの就業状態を再計算します。
func (s *Service) DeleteJobOffer(ctx context.Context, in DeleteJobOfferInput) error {
	id, err := normalizeID(in.ID, ErrInvalidID)
	if err != nil {
		return err
	}

	var deleted *JobOffer
	if err := s.tx.WithinReadWrite(ctx, func(txCtx context.Context) error {
		offer, err := s.repo.FindByID(txCtx, id)
		if err != nil {
			return err
		}

		offer.Deleted = true
		offer.UpdatedAt = s.clock.Now()

		result, err := s.repo.Update(txCtx, offer)
		if err != nil {
			return err
		}

		if offer.HasProfessional() {
			if err := s.recomputeEmployment(txCtx, offer.ProfessionalID, true); err != nil {
				return err
			}
		}

		deleted = result
		return nil
	}); err != nil {
		return err
	}

	s.logger.InfoContext(ctx, "job offer deleted", slog.String("job_offer_id", deleted.ID))
	if err := s.publisher.Publish(ctx, analytics.ChannelJobOffer, deleted); err != nil {
		s.logger.WarnContext(ctx, "publish job offer event failed",
			slog.String("job_offer_id", deleted.ID),
			slog.Any("err", err),
		)
	}

	return nil
}

// resolveProfessional は遷移先に応じて割り当てるプロフェッショナル ID を決定します。
func (s *Service) resolveProfessional(ctx context.Context, offer *JobOffer, target Status, requested string) (string, error) {
	if target == StatusAbort {
		return "", nil
	}

	attached := offer.ProfessionalID
	if requested == "" {
		if RequiresProfessional(target) && attached == "" {
			return "", ErrRequiredProfessionalID
		}
		return attached, nil
	}

	if attached != "" {
		if requested != attached {
			return "", fmt.Errorf("attached %s, requested %s: %w", attached, requested, ErrInconsistentProfessional)
		}
		return attached, nil
	}

	candidate, err := s.professionals.FindByID(ctx, requested)
	if err != nil {
		return "", err
	}
	if candidate.EmploymentState != professional.StateAvailableForWork {
		return "", fmt.Errorf("%s is %s: %w", candidate.ID, candidate.EmploymentState, ErrNotAvailableProfessional)
	}
	return candidate.ID, nil
}

// recomputeEmployment はプロフェッショナルの就業状態を再計算します。
// 論理削除されたプロフェッショナルは再計算の対象外とし、求人側の変更は続行します。
func (s *Service) recomputeEmployment(ctx context.Context, professionalID string, onDeletion bool) error {
	var err error
	if onDeletion {
		_, err = s.coordinator.RecomputeOnDeletion(ctx, professionalID)
	} else {
		_, err = s.coordinator.Recompute(ctx, professionalID)
	}

	switch {
	case err == nil:
		return nil
	case errors.Is(err, professional.ErrProfessionalNotFound):
		s.logger.WarnContext(ctx, "employment recompute skipped for missing professional",
			slog.String("professional_id", professionalID),
		)
		return nil
	default:
		return fmt.Errorf("recompute employment of %s: %w", professionalID, err)
	}
}

func (s *Service) publish(ctx context.Context, offer *JobOffer) {
	channels := []analytics.Channel{analytics.ChannelJobOffer}
	if IsCompleted(offer.Status) {
		channels = append(channels, analytics.ChannelCompletedJobOffer)
	}

	for _, channel := range channels {
		if err := s.publisher.Publish(ctx, channel, offer); err != nil {
			s.logger.WarnContext(ctx, "publish job offer event failed",
				slog.String("channel", string(channel)),
				slog.String("job_offer_id", offer.ID),
				slog.Any("err", err),
			)
		}
	}
}

func affectedProfessionals(previous, assigned string) []string {
	ids := make([]string, 0, 2)
	if previous != "" {
		ids = append(ids, previous)
	}
	if assigned != "" && assigned != previous {
		ids = append(ids, assigned)
	}
	return ids
}

func normalizeID(raw string, invalid error) (string, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", invalid
	}
	parsed, err := uuid.Parse(trimmed)
	if err != nil {
		return "", fmt.Errorf("%q: %w", trimmed, invalid)
	}
	return parsed.String(), nil
}

func normalizeSkills(raw []string) ([]string, error) {
	skills := make([]string, 0, len(raw))
	for _, skill := range raw {
		trimmed := strings.TrimSpace(skill)
		if trimmed == "" {
			return nil, ErrInvalidSkills
		}
		skills = append(skills, trimmed)
	}
	return skills, nil
}
