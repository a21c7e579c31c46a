package handler

import (
	"context"

	"github.com/ogurasousui/placement-crm/internal/core/message"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// MessageGrpcHandler は MessageService の gRPC 実装です。
type MessageGrpcHandler struct {
	svc message.UseCase
}

var _ MessageServiceServer = (*MessageGrpcHandler)(nil)

// NewMessageGrpcHandler は MessageGrpcHandler を生成します。
func NewMessageGrpcHandler(svc message.UseCase) *MessageGrpcHandler {
	return &MessageGrpcHandler{svc: svc}
}

// CreateMessage はメッセージを登録します。
func (h *MessageGrpcHandler) CreateMessage(ctx context.Context, req *CreateMessageRequest) (*MessageResponse, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}

	var priority *message.Priority
	if req.Priority != nil {
		p := message.Priority(*req.Priority)
		priority = &p
	}

	created, err := h.svc.CreateMessage(ctx, message.CreateMessageInput{
		Subject:  req.Subject,
		Body:     req.Body,
		Channel:  req.Channel,
		Sender:   req.Sender,
		Priority: priority,
	})
	if err != nil {
		return nil, toStatusError(ctx, err)
	}

	return &MessageResponse{Message: toMessageDTO(created)}, nil
}

// GetMessage はメッセージを取得します。
func (h *MessageGrpcHandler) GetMessage(ctx context.Context, req *GetMessageRequest) (*MessageResponse, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}

	found, err := h.svc.GetMessage(ctx, message.GetMessageInput{ID: req.ID})
	if err != nil {
		return nil, toStatusError(ctx, err)
	}

	return &MessageResponse{Message: toMessageDTO(found)}, nil
}

// UpdateMessage はメッセージの状態と優先度を更新します。
func (h *MessageGrpcHandler) UpdateMessage(ctx context.Context, req *UpdateMessageRequest) (*MessageResponse, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}

	var state *message.State
	if req.ActualState != nil {
		s := message.State(*req.ActualState)
		state = &s
	}

	var priority *message.Priority
	if req.Priority != nil {
		p := message.Priority(*req.Priority)
		priority = &p
	}

	updated, err := h.svc.UpdateMessage(ctx, message.UpdateMessageInput{
		ID:       req.ID,
		State:    state,
		Comment:  req.Comment,
		Priority: priority,
	})
	if err != nil {
		return nil, toStatusError(ctx, err)
	}

	return &MessageResponse{Message: toMessageDTO(updated)}, nil
}

// GetMessageHistory はメッセージの履歴を古い順に返します。
func (h *MessageGrpcHandler) GetMessageHistory(ctx context.Context, req *GetMessageHistoryRequest) (*GetMessageHistoryResponse, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}

	entries, err := h.svc.GetHistory(ctx, message.GetHistoryInput{MessageID: req.MessageID})
	if err != nil {
		return nil, toStatusError(ctx, err)
	}

	return &GetMessageHistoryResponse{History: toHistoryDTOs(entries)}, nil
}
