package handler

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/ogurasousui/placement-crm/internal/core/employment"
	"github.com/ogurasousui/placement-crm/internal/core/professional"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// EmploymentUseCase は就業状態の再計算を提供します。
type EmploymentUseCase interface {
	Recompute(ctx context.Context, professionalID string) (professional.EmploymentState, error)
	ReconcileAll(ctx context.Context) (employment.ReconcileResult, error)
}

// ProfessionalGrpcHandler は ProfessionalService の gRPC 実装です。
type ProfessionalGrpcHandler struct {
	coordinator EmploymentUseCase
}

var _ ProfessionalServiceServer = (*ProfessionalGrpcHandler)(nil)

// NewProfessionalGrpcHandler は ProfessionalGrpcHandler を生成します。
func NewProfessionalGrpcHandler(coordinator EmploymentUseCase) *ProfessionalGrpcHandler {
	return &ProfessionalGrpcHandler{coordinator: coordinator}
}

// RecomputeEmployment は一人分の就業状態を再計算します。
func (h *ProfessionalGrpcHandler) RecomputeEmployment(ctx context.Context, req *RecomputeEmploymentRequest) (*RecomputeEmploymentResponse, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}

	id, err := uuid.Parse(strings.TrimSpace(req.ProfessionalID))
	if err != nil {
		return nil, toStatusError(ctx, professional.ErrInvalidID)
	}

	state, err := h.coordinator.Recompute(ctx, id.String())
	if err != nil {
		return nil, toStatusError(ctx, err)
	}

	return &RecomputeEmploymentResponse{ProfessionalID: id.String(), EmploymentState: string(state)}, nil
}

// ReconcileEmployment は全員分の就業状態を再計算します。個別の失敗は Failed に数えられます。
func (h *ProfessionalGrpcHandler) ReconcileEmployment(ctx context.Context, req *ReconcileEmploymentRequest) (*ReconcileEmploymentResponse, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}

	result, err := h.coordinator.ReconcileAll(ctx)
	if err != nil && result.Checked == 0 {
		return nil, toStatusError(ctx, err)
	}

	return &ReconcileEmploymentResponse{
		Checked: result.Checked,
		Changed: result.Changed,
		Failed:  result.Failed,
	}, nil
}
