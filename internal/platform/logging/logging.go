// Package logging は設定から slog.Logger を構築します。
package logging

import (
	"io"
	"log/slog"

	"github.com/ogurasousui/placement-crm/internal/platform/config"
)

// New は log 設定に従って JSON または text 形式のロガーを返します。
func New(cfg config.LogConfig, w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: cfg.Leveler}

	var handler slog.Handler
	if cfg.Format == "text" {
		handler = slog.NewTextHandler(w, opts)
	} else {
		handler = slog.NewJSONHandler(w, opts)
	}

	return slog.New(handler).With(slog.String("service", "placement-crm"))
}
