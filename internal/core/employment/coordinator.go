package employment

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/ogurasousui/placement-crm/internal/core/joboffer"
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

// OfferLister はプロフェッショナルを参照する求人を取得します。
type OfferLister interface {
	ListByProfessional(ctx context.Context, professionalID string) ([]*joboffer.JobOffer, error)
}

// Coordinator はプロフェッショナルの就業状態を求人と整合させます。
type Coordinator struct {
	professionals professional.Repository
	offers        OfferLister
	clock         Clock
	tx            TransactionManager
	logger        *slog.Logger
}

// ReconcileResult は一括再計算の結果です。
type ReconcileResult struct {
	Checked int
	Changed int
	Failed  int
}

// NewCoordinator は Coordinator を生成します。
func NewCoordinator(professionals professional.Repository, offers OfferLister, clock Clock, tx TransactionManager, logger *slog.Logger) *Coordinator {
	if clock == nil {
		clock = realClock{}
	}
	if tx == nil {
		tx = noopTransactionManager{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Coordinator{
		professionals: professionals,
		offers:        offers,
		clock:         clock,
		tx:            tx,
		logger:        logger,
	}
}

// Recompute は就業状態を再計算して保存し、結果を返します。
// 呼び出し元のトランザクションがコンテキストにあればそれを使います。
// 状態が変わらない場合も Version を進めるため、同じプロフェッショナルを再計算する
// 並行トランザクションの一方は ErrConcurrentModification で失敗します。
func (c *Coordinator) Recompute(ctx context.Context, professionalID string) (professional.EmploymentState, error) {
	return c.recompute(ctx, professionalID, false)
}

// RecomputeOnDeletion は求人の削除を契機とした再計算です。UNEMPLOYED も解放します。
func (c *Coordinator) RecomputeOnDeletion(ctx context.Context, professionalID string) (professional.EmploymentState, error) {
	return c.recompute(ctx, professionalID, true)
}

// ReconcileAll は全てのプロフェッショナルを一件ずつ別トランザクションで再計算します。
// 個別の失敗はログに残して処理を続け、まとめて返します。
func (c *Coordinator) ReconcileAll(ctx context.Context) (ReconcileResult, error) {
	var ids []string
	if err := c.tx.WithinReadOnly(ctx, func(txCtx context.Context) error {
		found, err := c.professionals.ListActiveIDs(txCtx)
		if err != nil {
			return err
		}
		ids = found
		return nil
	}); err != nil {
		return ReconcileResult{}, fmt.Errorf("employment: list professionals: %w", err)
	}

	var (
		result ReconcileResult
		errs   []error
	)
	for _, id := range ids {
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}

		result.Checked++
		changed, err := c.reconcileOne(ctx, id)
		if err != nil {
			result.Failed++
			errs = append(errs, fmt.Errorf("professional %s: %w", id, err))
			c.logger.WarnContext(ctx, "employment reconcile failed",
				slog.String("professional_id", id),
				slog.Any("err", err),
			)
			continue
		}
		if changed {
			result.Changed++
		}
	}

	return result, errors.Join(errs...)
}

func (c *Coordinator) reconcileOne(ctx context.Context, id string) (bool, error) {
	changed := false
	err := c.tx.WithinReadWrite(ctx, func(txCtx context.Context) error {
		var err error
		_, changed, err = c.apply(txCtx, id, false, false)
		return err
	})
	return changed, err
}

func (c *Coordinator) recompute(ctx context.Context, professionalID string, releaseUnemployed bool) (professional.EmploymentState, error) {
	id := strings.TrimSpace(professionalID)
	if id == "" {
		return "", professional.ErrInvalidID
	}

	var state professional.EmploymentState
	if err := c.tx.WithinReadWrite(ctx, func(txCtx context.Context) error {
		var err error
		state, _, err = c.apply(txCtx, id, releaseUnemployed, true)
		return err
	}); err != nil {
		return "", err
	}
	return state, nil
}

// apply は再計算結果を書き込みます。touch が true なら状態が同じでも Version を進めます。
func (c *Coordinator) apply(ctx context.Context, id string, releaseUnemployed, touch bool) (professional.EmploymentState, bool, error) {
	p, err := c.professionals.FindByID(ctx, id)
	if err != nil {
		return "", false, err
	}

	offers, err := c.offers.ListByProfessional(ctx, id)
	if err != nil {
		return "", false, err
	}

	next := Resolve(p.EmploymentState, Derive(id, offers), releaseUnemployed)
	if next == p.EmploymentState {
		if touch {
			if err := c.professionals.TouchVersion(ctx, p); err != nil {
				return "", false, err
			}
		}
		return next, false, nil
	}

	previous := p.EmploymentState
	p.EmploymentState = next
	p.UpdatedAt = c.clock.Now()
	if _, err := c.professionals.UpdateEmploymentState(ctx, p); err != nil {
		return "", false, err
	}

	c.logger.InfoContext(ctx, "employment state changed",
		slog.String("professional_id", id),
		slog.String("from", string(previous)),
		slog.String("to", string(next)),
	)
	return next, true, nil
}
