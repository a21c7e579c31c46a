package message

import "github.com/ogurasousui/placement-crm/internal/core/failure"

var (
	ErrInvalidID                   = failure.New(failure.KindInvalidArgument, "message: invalid id")
	ErrInvalidState                = failure.New(failure.KindInvalidArgument, "message: invalid state")
	ErrInvalidPriority             = failure.New(failure.KindInvalidArgument, "message: invalid priority")
	ErrInvalidSender               = failure.New(failure.KindInvalidArgument, "message: sender is required")
	ErrInvalidChannel              = failure.New(failure.KindInvalidArgument, "message: channel is required")
	ErrMessageNotFound             = failure.New(failure.KindMessageNotFound, "message: not found")
	ErrInvalidStateTransition      = failure.New(failure.KindInvalidStateTransition, "message: invalid state transition")
	ErrInvalidUpdateMessageRequest = failure.New(failure.KindInvalidUpdateMessageRequest, "message: invalid update request")
	ErrConcurrentModification      = failure.New(failure.KindConcurrentModification, "message: concurrently modified, retry")
)
