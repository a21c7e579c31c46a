package professional

import (
	"fmt"
	"time"
)

// EmploymentState はプロフェッショナルの就業状態です。
type EmploymentState string

const (
	StateEmployed         EmploymentState = "EMPLOYED"
	StateUnemployed       EmploymentState = "UNEMPLOYED"
	StateAvailableForWork EmploymentState = "AVAILABLE_FOR_WORK"
	StateNotAvailable     EmploymentState = "NOT_AVAILABLE"
)

// ParseEmploymentState は文字列を EmploymentState に変換します。
func ParseEmploymentState(raw string) (EmploymentState, error) {
	state := EmploymentState(raw)
	switch state {
	case StateEmployed, StateUnemployed, StateAvailableForWork, StateNotAvailable:
		return state, nil
	}
	return "", fmt.Errorf("%q: %w", raw, ErrInvalidEmploymentState)
}

// Professional はプロフェッショナルエンティティです。
// 紐づく求人は保持せず、求人リポジトリへの問い合わせで辿ります。
type Professional struct {
	ID              string          `json:"id"`
	EmploymentState EmploymentState `json:"employmentState"`
	Skills          []string        `json:"skills"`
	DailyRate       float64         `json:"dailyRate"`
	Deleted         bool            `json:"deleted"`
	Version         int64           `json:"version"`
	CreatedAt       time.Time       `json:"createdAt"`
	UpdatedAt       time.Time       `json:"updatedAt"`
}

// Clone はスライスを含めて複製します。
func (p *Professional) Clone() *Professional {
	if p == nil {
		return nil
	}
	clone := *p
	if p.Skills != nil {
		clone.Skills = append([]string(nil), p.Skills...)
	}
	return &clone
}
