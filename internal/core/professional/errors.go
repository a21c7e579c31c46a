package professional

import "github.com/ogurasousui/placement-crm/internal/core/failure"

var (
	ErrInvalidID              = failure.New(failure.KindInvalidArgument, "professional: invalid id")
	ErrInvalidEmploymentState = failure.New(failure.KindInvalidArgument, "professional: invalid employment state")
	ErrProfessionalNotFound   = failure.New(failure.KindProfessionalNotFound, "professional: not found")
	ErrConcurrentModification = failure.New(failure.KindConcurrentModification, "professional: concurrently modified, retry")
)
