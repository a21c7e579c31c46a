// Package scheduler は就業状態の定期再計算ジョブを cron で駆動します。
package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/robfig/cron/v3"

	"github.com/ogurasousui/placement-crm/internal/core/employment"
)

// Reconciler は全プロフェッショナルの就業状態を再計算します。
type Reconciler interface {
	ReconcileAll(ctx context.Context) (employment.ReconcileResult, error)
}

// Scheduler は robfig/cron をラップし、再計算ジョブを管理します。
type Scheduler struct {
	cron       *cron.Cron
	reconciler Reconciler
	spec       string
	logger     *slog.Logger

	mu      sync.Mutex
	running bool
}

// New は spec (例: "@every 1h") で再計算を実行する Scheduler を生成します。
func New(reconciler Reconciler, spec string, logger *slog.Logger) *Scheduler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Scheduler{
		cron:       cron.New(),
		reconciler: reconciler,
		spec:       spec,
		logger:     logger,
	}
}

// Start はジョブを登録して cron を開始します。ctx はジョブ実行時に引き継がれます。
func (s *Scheduler) Start(ctx context.Context) error {
	if _, err := s.cron.AddFunc(s.spec, func() { s.RunOnce(ctx) }); err != nil {
		return fmt.Errorf("scheduler: add job %q: %w", s.spec, err)
	}

	s.cron.Start()
	s.logger.InfoContext(ctx, "reconcile scheduler started", slog.String("spec", s.spec))
	return nil
}

// Stop は cron を停止し、実行中のジョブの完了を待ちます。
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
	s.logger.Info("reconcile scheduler stopped")
}

// RunOnce は再計算を一回実行します。前回の実行が終わっていなければ何もしません。
func (s *Scheduler) RunOnce(ctx context.Context) {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		s.logger.WarnContext(ctx, "reconcile skipped, previous run still in progress")
		return
	}
	s.running = true
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.running = false
		s.mu.Unlock()
	}()

	result, err := s.reconciler.ReconcileAll(ctx)
	attrs := []any{
		slog.Int("checked", result.Checked),
		slog.Int("changed", result.Changed),
		slog.Int("failed", result.Failed),
	}
	if err != nil {
		s.logger.WarnContext(ctx, "reconcile finished with errors", append(attrs, slog.Any("err", err))...)
		return
	}
	s.logger.InfoContext(ctx, "reconcile finished", attrs...)
}
