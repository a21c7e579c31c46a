package joboffer

import "github.com/ogurasousui/placement-crm/internal/core/failure"

var (
	ErrInvalidID                = failure.New(failure.KindInvalidArgument, "joboffer: invalid id")
	ErrInvalidCustomerID        = failure.New(failure.KindInvalidArgument, "joboffer: invalid customer id")
	ErrInvalidProfessionalID    = failure.New(failure.KindInvalidArgument, "joboffer: invalid professional id")
	ErrInvalidStatus            = failure.New(failure.KindInvalidArgument, "joboffer: invalid status")
	ErrInvalidSkills            = failure.New(failure.KindInvalidArgument, "joboffer: required skills must be non-empty strings")
	ErrInvalidDuration          = failure.New(failure.KindInvalidArgument, "joboffer: duration must not be negative")
	ErrInvalidValue             = failure.New(failure.KindInvalidArgument, "joboffer: value must not be negative")
	ErrJobOfferNotFound         = failure.New(failure.KindJobOfferNotFound, "joboffer: not found")
	ErrCustomerNotFound         = failure.New(failure.KindCustomerNotFound, "joboffer: customer not found")
	ErrInvalidStatusTransition  = failure.New(failure.KindInvalidStatusTransition, "joboffer: invalid status transition")
	ErrRequiredProfessionalID   = failure.New(failure.KindRequiredProfessionalID, "joboffer: professional id is required for the requested status")
	ErrNotAvailableProfessional = failure.New(failure.KindNotAvailableProfessional, "joboffer: professional is not available for work")
	ErrInconsistentProfessional = failure.New(failure.KindInconsistentProfessional, "joboffer: professional differs from the one attached to the offer")
	ErrConcurrentModification   = failure.New(failure.KindConcurrentModification, "joboffer: concurrently modified, retry")
)
