package handler

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/ogurasousui/placement-crm/internal/core/joboffer"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type stubJobOfferUseCase struct {
	createInput joboffer.CreateJobOfferInput
	createOut   *joboffer.JobOffer
	createErr   error

	getInput joboffer.GetJobOfferInput
	getOut   *joboffer.JobOffer
	getErr   error

	transitionInput joboffer.TransitionStatusInput
	transitionOut   *joboffer.JobOffer
	transitionErr   error

	deleteInput joboffer.DeleteJobOfferInput
	deleteErr   error
}

func (s *stubJobOfferUseCase) CreateJobOffer(ctx context.Context, in joboffer.CreateJobOfferInput) (*joboffer.JobOffer, error) {
	s.createInput = in
	return s.createOut, s.createErr
}

func (s *stubJobOfferUseCase) GetJobOffer(ctx context.Context, in joboffer.GetJobOfferInput) (*joboffer.JobOffer, error) {
	s.getInput = in
	return s.getOut, s.getErr
}

func (s *stubJobOfferUseCase) TransitionStatus(ctx context.Context, in joboffer.TransitionStatusInput) (*joboffer.JobOffer, error) {
	s.transitionInput = in
	return s.transitionOut, s.transitionErr
}

func (s *stubJobOfferUseCase) DeleteJobOffer(ctx context.Context, in joboffer.DeleteJobOfferInput) error {
	s.deleteInput = in
	return s.deleteErr
}

func TestJobOfferGrpcHandler_UpdateJobOfferStatus(t *testing.T) {
	t.Parallel()

	now := time.Now()
	stub := &stubJobOfferUseCase{
		transitionOut: &joboffer.JobOffer{
			ID:             "offer-1",
			CustomerID:     "customer-1",
			ProfessionalID: "prof-7",
			Status:         joboffer.StatusSelectionPhase,
			CreatedAt:      now,
			UpdatedAt:      now,
		},
	}
	handler := NewJobOfferGrpcHandler(stub)
	professionalID := "prof-7"

	resp, err := handler.UpdateJobOfferStatus(context.Background(), &UpdateJobOfferStatusRequest{
		ID:             "offer-1",
		Status:         "SELECTION_PHASE",
		ProfessionalID: &professionalID,
	})
	if err != nil {
		t.Fatalf("UpdateJobOfferStatus returned error: %v", err)
	}

	if stub.transitionInput.Status != joboffer.StatusSelectionPhase || *stub.transitionInput.ProfessionalID != "prof-7" {
		t.Errorf("unexpected input %+v", stub.transitionInput)
	}
	if resp.JobOffer.Status != "SELECTION_PHASE" || resp.JobOffer.ProfessionalID != "prof-7" {
		t.Errorf("unexpected response %+v", resp.JobOffer)
	}
	if resp.JobOffer.RequiredSkills == nil {
		t.Errorf("required skills must be an empty list, not null")
	}
}

func TestJobOfferGrpcHandler_UpdateJobOfferStatus_ErrorMapping(t *testing.T) {
	t.Parallel()

	cases := []struct {
		err  error
		want codes.Code
	}{
		{err: joboffer.ErrJobOfferNotFound, want: codes.NotFound},
		{err: fmt.Errorf("CREATED -> DONE: %w", joboffer.ErrInvalidStatusTransition), want: codes.FailedPrecondition},
		{err: joboffer.ErrRequiredProfessionalID, want: codes.InvalidArgument},
		{err: joboffer.ErrNotAvailableProfessional, want: codes.FailedPrecondition},
		{err: joboffer.ErrInconsistentProfessional, want: codes.FailedPrecondition},
		{err: joboffer.ErrConcurrentModification, want: codes.Aborted},
		{err: errors.New("db exploded"), want: codes.Internal},
	}

	for _, tc := range cases {
		stub := &stubJobOfferUseCase{transitionErr: tc.err}
		handler := NewJobOfferGrpcHandler(stub)

		_, err := handler.UpdateJobOfferStatus(context.Background(), &UpdateJobOfferStatusRequest{ID: "offer-1", Status: "DONE"})
		if status.Code(err) != tc.want {
			t.Errorf("%v: expected %v, got %v", tc.err, tc.want, status.Code(err))
		}
	}
}

func TestJobOfferGrpcHandler_NilRequest(t *testing.T) {
	t.Parallel()

	handler := NewJobOfferGrpcHandler(&stubJobOfferUseCase{})

	if _, err := handler.UpdateJobOfferStatus(context.Background(), nil); status.Code(err) != codes.InvalidArgument {
		t.Fatalf("expected InvalidArgument, got %v", status.Code(err))
	}
	if _, err := handler.DeleteJobOffer(context.Background(), nil); status.Code(err) != codes.InvalidArgument {
		t.Fatalf("expected InvalidArgument, got %v", status.Code(err))
	}
}

func TestJobOfferGrpcHandler_CreateAndDelete(t *testing.T) {
	t.Parallel()

	stub := &stubJobOfferUseCase{createOut: &joboffer.JobOffer{ID: "offer-1", Status: joboffer.StatusCreated, RequiredSkills: []string{"go"}}}
	handler := NewJobOfferGrpcHandler(stub)

	resp, err := handler.CreateJobOffer(context.Background(), &CreateJobOfferRequest{
		CustomerID:     "customer-1",
		RequiredSkills: []string{"go"},
		Duration:       30,
		Value:          1200,
	})
	if err != nil {
		t.Fatalf("CreateJobOffer returned error: %v", err)
	}
	if stub.createInput.CustomerID != "customer-1" || stub.createInput.Duration != 30 {
		t.Errorf("unexpected input %+v", stub.createInput)
	}
	if resp.JobOffer.ID != "offer-1" || resp.JobOffer.Status != "CREATED" {
		t.Errorf("unexpected response %+v", resp.JobOffer)
	}

	if _, err := handler.DeleteJobOffer(context.Background(), &DeleteJobOfferRequest{ID: "offer-1"}); err != nil {
		t.Fatalf("DeleteJobOffer returned error: %v", err)
	}
	if stub.deleteInput.ID != "offer-1" {
		t.Errorf("expected id passed through, got %s", stub.deleteInput.ID)
	}
}
