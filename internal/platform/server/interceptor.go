package server

import (
	"context"
	"log/slog"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// LoggingUnaryInterceptor はメソッド名、ステータスコード、処理時間を記録します。
// Internal と Unknown はエラー、それ以外の失敗は警告として出力します。
func LoggingUnaryInterceptor(logger *slog.Logger) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, next grpc.UnaryHandler) (any, error) {
		start := time.Now()
		resp, err := next(ctx, req)

		code := status.Code(err)
		attrs := []any{
			slog.String("method", info.FullMethod),
			slog.String("code", code.String()),
			slog.Duration("elapsed", time.Since(start)),
		}

		switch code {
		case codes.OK:
			logger.InfoContext(ctx, "grpc request", attrs...)
		case codes.Internal, codes.Unknown:
			logger.ErrorContext(ctx, "grpc request failed", append(attrs, slog.Any("err", err))...)
		default:
			logger.WarnContext(ctx, "grpc request rejected", append(attrs, slog.Any("err", err))...)
		}

		return resp, err
	}
}
