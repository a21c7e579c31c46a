package handler

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"testing"

	"github.com/ogurasousui/placement-crm/internal/core/joboffer"
	"github.com/ogurasousui/placement-crm/internal/core/message"
	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func TestToStatusError_AttachesErrorInfo(t *testing.T) {
	t.Parallel()

	err := toStatusError(context.Background(), fmt.Errorf("offer-1: %w", joboffer.ErrInconsistentProfessional))
	st, ok := status.FromError(err)
	if !ok || st.Code() != codes.FailedPrecondition {
		t.Fatalf("expected FailedPrecondition status, got %v", err)
	}

	var info *errdetails.ErrorInfo
	for _, d := range st.Details() {
		if v, ok := d.(*errdetails.ErrorInfo); ok {
			info = v
		}
	}
	if info == nil {
		t.Fatal("expected ErrorInfo detail")
	}
	if info.GetReason() != "INCONSISTENT_PROFESSIONAL_STATUS_TRANSITION" || info.GetDomain() != errorDomain {
		t.Fatalf("unexpected ErrorInfo %+v", info)
	}
}

func TestToStatusError_Codes(t *testing.T) {
	t.Parallel()

	cases := []struct {
		err  error
		want codes.Code
	}{
		{err: nil, want: codes.OK},
		{err: joboffer.ErrInvalidID, want: codes.InvalidArgument},
		{err: joboffer.ErrCustomerNotFound, want: codes.NotFound},
		{err: message.ErrMessageNotFound, want: codes.NotFound},
		{err: message.ErrInvalidUpdateMessageRequest, want: codes.InvalidArgument},
		{err: message.ErrInvalidStateTransition, want: codes.FailedPrecondition},
		{err: message.ErrConcurrentModification, want: codes.Aborted},
		{err: context.Canceled, want: codes.Canceled},
		{err: fmt.Errorf("query: %w", context.DeadlineExceeded), want: codes.DeadlineExceeded},
	}

	for _, tc := range cases {
		if got := status.Code(toStatusError(context.Background(), tc.err)); got != tc.want {
			t.Errorf("%v: expected %v, got %v", tc.err, tc.want, got)
		}
	}
}

func TestToStatusError_HidesUnknownErrors(t *testing.T) {
	t.Parallel()

	st, _ := status.FromError(toStatusError(context.Background(), errors.New("pq: password authentication failed")))
	if st.Code() != codes.Internal || st.Message() != internalErrorMessage {
		t.Fatalf("unknown errors must not leak details, got %v %q", st.Code(), st.Message())
	}
}

func TestToStatusError_LogsUnknownCause(t *testing.T) {
	var buf bytes.Buffer
	previous := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(&buf, nil)))
	t.Cleanup(func() { slog.SetDefault(previous) })

	_ = toStatusError(context.Background(), errors.New("pq: connection reset"))

	if !strings.Contains(buf.String(), "pq: connection reset") {
		t.Fatalf("expected the original cause to be logged, got %q", buf.String())
	}

	buf.Reset()
	_ = toStatusError(context.Background(), message.ErrMessageNotFound)
	if buf.Len() != 0 {
		t.Fatalf("mapped errors must not be logged here, got %q", buf.String())
	}
}
