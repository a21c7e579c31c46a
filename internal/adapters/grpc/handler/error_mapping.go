package handler

import (
	"context"
	"errors"
	"log/slog"

	"github.com/ogurasousui/placement-crm/internal/core/failure"
	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const (
	errorDomain          = "placement-crm"
	internalErrorMessage = "internal server error"
)

var kindCodes = map[failure.Kind]codes.Code{
	failure.KindInvalidArgument:             codes.InvalidArgument,
	failure.KindRequiredProfessionalID:      codes.InvalidArgument,
	failure.KindInvalidUpdateMessageRequest: codes.InvalidArgument,
	failure.KindJobOfferNotFound:            codes.NotFound,
	failure.KindProfessionalNotFound:        codes.NotFound,
	failure.KindCustomerNotFound:            codes.NotFound,
	failure.KindMessageNotFound:             codes.NotFound,
	failure.KindInvalidStatusTransition:     codes.FailedPrecondition,
	failure.KindInvalidStateTransition:      codes.FailedPrecondition,
	failure.KindNotAvailableProfessional:    codes.FailedPrecondition,
	failure.KindInconsistentProfessional:    codes.FailedPrecondition,
	failure.KindConcurrentModification:      codes.Aborted,
}

// toStatusError は失敗種別を gRPC ステータスに変換します。
// 種別を持たないエラーは原因をログに残し、クライアントには汎用のメッセージだけを返します。
func toStatusError(ctx context.Context, err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, context.Canceled):
		return status.Error(codes.Canceled, err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		return status.Error(codes.DeadlineExceeded, err.Error())
	}

	kind := failure.KindOf(err)
	code, ok := kindCodes[kind]
	if !ok {
		slog.ErrorContext(ctx, "unhandled error", slog.Any("err", err))
		return status.Error(codes.Internal, internalErrorMessage)
	}

	st := status.New(code, err.Error())
	detailed, detailErr := st.WithDetails(&errdetails.ErrorInfo{
		Reason: kind.String(),
		Domain: errorDomain,
	})
	if detailErr != nil {
		return st.Err()
	}
	return detailed.Err()
}
