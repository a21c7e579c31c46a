package handler

import (
	"context"

	"github.com/ogurasousui/placement-crm/internal/core/joboffer"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// JobOfferGrpcHandler は JobOfferService の gRPC 実装です。
type JobOfferGrpcHandler struct {
	svc joboffer.UseCase
}

var _ JobOfferServiceServer = (*JobOfferGrpcHandler)(nil)

// NewJobOfferGrpcHandler は JobOfferGrpcHandler を生成します。
func NewJobOfferGrpcHandler(svc joboffer.UseCase) *JobOfferGrpcHandler {
	return &JobOfferGrpcHandler{svc: svc}
}

// CreateJobOffer は求人を作成します。
func (h *JobOfferGrpcHandler) CreateJobOffer(ctx context.Context, req *CreateJobOfferRequest) (*JobOfferResponse, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}

	created, err := h.svc.CreateJobOffer(ctx, joboffer.CreateJobOfferInput{
		CustomerID:     req.CustomerID,
		RequiredSkills: req.RequiredSkills,
		Duration:       req.Duration,
		Value:          req.Value,
		Note:           req.Note,
	})
	if err != nil {
		return nil, toStatusError(ctx, err)
	}

	return &JobOfferResponse{JobOffer: toJobOfferDTO(created)}, nil
}

// GetJobOffer は求人を取得します。
func (h *JobOfferGrpcHandler) GetJobOffer(ctx context.Context, req *GetJobOfferRequest) (*JobOfferResponse, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}

	found, err := h.svc.GetJobOffer(ctx, joboffer.GetJobOfferInput{ID: req.ID})
	if err != nil {
		return nil, toStatusError(ctx, err)
	}

	return &JobOfferResponse{JobOffer: toJobOfferDTO(found)}, nil
}

// UpdateJobOfferStatus は求人のステータスを変更します。
func (h *JobOfferGrpcHandler) UpdateJobOfferStatus(ctx context.Context, req *UpdateJobOfferStatusRequest) (*JobOfferResponse, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}

	updated, err := h.svc.TransitionStatus(ctx, joboffer.TransitionStatusInput{
		JobOfferID:     req.ID,
		Status:         joboffer.Status(req.Status),
		ProfessionalID: req.ProfessionalID,
	})
	if err != nil {
		return nil, toStatusError(ctx, err)
	}

	return &JobOfferResponse{JobOffer: toJobOfferDTO(updated)}, nil
}

// DeleteJobOffer は求人を論理削除します。
func (h *JobOfferGrpcHandler) DeleteJobOffer(ctx context.Context, req *DeleteJobOfferRequest) (*DeleteJobOfferResponse, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}

	if err := h.svc.DeleteJobOffer(ctx, joboffer.DeleteJobOfferInput{ID: req.ID}); err != nil {
		return nil, toStatusError(ctx, err)
	}

	return &DeleteJobOfferResponse{}, nil
}
