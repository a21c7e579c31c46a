package handler

import (
	"context"
	"testing"
	"time"

	"github.com/ogurasousui/placement-crm/internal/core/message"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type stubMessageUseCase struct {
	createInput message.CreateMessageInput
	createOut   *message.Message

	getOut *message.Message
	getErr error

	updateInput message.UpdateMessageInput
	updateOut   *message.Message
	updateErr   error

	historyInput message.GetHistoryInput
	historyOut   []*message.History
	historyErr   error
}

func (s *stubMessageUseCase) CreateMessage(ctx context.Context, in message.CreateMessageInput) (*message.Message, error) {
	s.createInput = in
	return s.createOut, nil
}

func (s *stubMessageUseCase) GetMessage(ctx context.Context, in message.GetMessageInput) (*message.Message, error) {
	return s.getOut, s.getErr
}

func (s *stubMessageUseCase) UpdateMessage(ctx context.Context, in message.UpdateMessageInput) (*message.Message, error) {
	s.updateInput = in
	return s.updateOut, s.updateErr
}

func (s *stubMessageUseCase) GetHistory(ctx context.Context, in message.GetHistoryInput) ([]*message.History, error) {
	s.historyInput = in
	return s.historyOut, s.historyErr
}

func TestMessageGrpcHandler_UpdateMessage(t *testing.T) {
	t.Parallel()

	stub := &stubMessageUseCase{
		updateOut: &message.Message{ID: "msg-1", State: message.StateRead, Priority: message.PriorityHigh},
	}
	handler := NewMessageGrpcHandler(stub)
	state := "READ"
	priority := "HIGH"

	resp, err := handler.UpdateMessage(context.Background(), &UpdateMessageRequest{
		ID:          "msg-1",
		ActualState: &state,
		Comment:     "opened",
		Priority:    &priority,
	})
	if err != nil {
		t.Fatalf("UpdateMessage returned error: %v", err)
	}

	if stub.updateInput.State == nil || *stub.updateInput.State != message.StateRead {
		t.Errorf("expected state READ passed through, got %+v", stub.updateInput)
	}
	if stub.updateInput.Priority == nil || *stub.updateInput.Priority != message.PriorityHigh {
		t.Errorf("expected priority HIGH passed through, got %+v", stub.updateInput)
	}
	if resp.Message.ActualState != "READ" || resp.Message.Priority != "HIGH" {
		t.Errorf("unexpected response %+v", resp.Message)
	}
}

func TestMessageGrpcHandler_UpdateMessage_OmittedFieldsStayNil(t *testing.T) {
	t.Parallel()

	stub := &stubMessageUseCase{updateErr: message.ErrInvalidUpdateMessageRequest}
	handler := NewMessageGrpcHandler(stub)

	_, err := handler.UpdateMessage(context.Background(), &UpdateMessageRequest{ID: "msg-1"})
	if status.Code(err) != codes.InvalidArgument {
		t.Fatalf("expected InvalidArgument, got %v", status.Code(err))
	}
	if stub.updateInput.State != nil || stub.updateInput.Priority != nil {
		t.Fatalf("omitted fields must be nil, got %+v", stub.updateInput)
	}
}

func TestMessageGrpcHandler_UpdateMessage_InvalidTransition(t *testing.T) {
	t.Parallel()

	stub := &stubMessageUseCase{updateErr: message.ErrInvalidStateTransition}
	handler := NewMessageGrpcHandler(stub)
	state := "DONE"

	_, err := handler.UpdateMessage(context.Background(), &UpdateMessageRequest{ID: "msg-1", ActualState: &state, Comment: "x"})
	if status.Code(err) != codes.FailedPrecondition {
		t.Fatalf("expected FailedPrecondition, got %v", status.Code(err))
	}
}

func TestMessageGrpcHandler_GetMessageHistory(t *testing.T) {
	t.Parallel()

	first := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	stub := &stubMessageUseCase{historyOut: []*message.History{
		{ID: "h-1", MessageID: "msg-1", State: message.StateRead, Date: first, Comment: "opened"},
		{ID: "h-2", MessageID: "msg-1", State: message.StateDone, Date: first.Add(time.Second), Comment: "closed"},
	}}
	handler := NewMessageGrpcHandler(stub)

	resp, err := handler.GetMessageHistory(context.Background(), &GetMessageHistoryRequest{MessageID: "msg-1"})
	if err != nil {
		t.Fatalf("GetMessageHistory returned error: %v", err)
	}
	if stub.historyInput.MessageID != "msg-1" {
		t.Errorf("expected message id passed through, got %s", stub.historyInput.MessageID)
	}
	if len(resp.History) != 2 || resp.History[0].State != "READ" || resp.History[1].Comment != "closed" {
		t.Errorf("unexpected history %+v", resp.History)
	}
}

func TestMessageGrpcHandler_GetMessageHistory_NotFound(t *testing.T) {
	t.Parallel()

	handler := NewMessageGrpcHandler(&stubMessageUseCase{historyErr: message.ErrMessageNotFound})

	_, err := handler.GetMessageHistory(context.Background(), &GetMessageHistoryRequest{MessageID: "msg-x"})
	if status.Code(err) != codes.NotFound {
		t.Fatalf("expected NotFound, got %v", status.Code(err))
	}
}

func TestMessageGrpcHandler_CreateMessage(t *testing.T) {
	t.Parallel()

	stub := &stubMessageUseCase{createOut: &message.Message{ID: "msg-1", State: message.StateReceived, Priority: message.PriorityLow}}
	handler := NewMessageGrpcHandler(stub)

	resp, err := handler.CreateMessage(context.Background(), &CreateMessageRequest{Sender: "ana@example.com", Channel: "email"})
	if err != nil {
		t.Fatalf("CreateMessage returned error: %v", err)
	}
	if stub.createInput.Priority != nil {
		t.Errorf("omitted priority must stay nil")
	}
	if resp.Message.ActualState != "RECEIVED" {
		t.Errorf("unexpected response %+v", resp.Message)
	}
}
