package joboffer

import "time"

// JobOffer は顧客が掲載する求人エンティティです。
type JobOffer struct {
	ID             string    `json:"id"`
	CustomerID     string    `json:"customerId"`
	ProfessionalID string    `json:"professionalId,omitempty"`
	Status         Status    `json:"status"`
	RequiredSkills []string  `json:"requiredSkills"`
	Duration       int       `json:"duration"`
	Value          float64   `json:"value"`
	Note           string    `json:"note"`
	Deleted        bool      `json:"deleted"`
	Version        int64     `json:"version"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// HasProfessional はプロフェッショナルが割り当て済みかを返します。
func (o *JobOffer) HasProfessional() bool {
	return o != nil && o.ProfessionalID != ""
}

// Clone はスライスを含めて複製します。
func (o *JobOffer) Clone() *JobOffer {
	if o == nil {
		return nil
	}
	clone := *o
	if o.RequiredSkills != nil {
		clone.RequiredSkills = append([]string(nil), o.RequiredSkills...)
	}
	return &clone
}
