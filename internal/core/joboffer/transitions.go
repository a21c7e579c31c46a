// Package joboffer は求人のステータス遷移と、それに伴う就業状態の再計算の呼び出しを扱います。
//
// ステータス遷移:
//
//	CREATED ──► SELECTION_PHASE ──► CANDIDATE_PROPOSAL ──► CONSOLIDATED ──► DONE
//	                 ▲                      │                   │             │
//	                 └──────────────────────┴───────────────────┴─────────────┘
//
// CREATED から CONSOLIDATED までの各状態は ABORT へ遷移できます。ABORT は終端です。
// CREATED へ入る遷移は存在しません。
package joboffer

import "fmt"

// Status は求人のステータスです。
type Status string

const (
	StatusCreated           Status = "CREATED"
	StatusSelectionPhase    Status = "SELECTION_PHASE"
	StatusCandidateProposal Status = "CANDIDATE_PROPOSAL"
	StatusConsolidated      Status = "CONSOLIDATED"
	StatusDone              Status = "DONE"
	StatusAbort             Status = "ABORT"
)

// AllStatuses は全ステータスを定義順に返します。
func AllStatuses() []Status {
	return []Status{
		StatusCreated,
		StatusSelectionPhase,
		StatusCandidateProposal,
		StatusConsolidated,
		StatusDone,
		StatusAbort,
	}
}

var validTransitions = map[Status][]Status{
	StatusCreated:           {StatusSelectionPhase, StatusAbort},
	StatusSelectionPhase:    {StatusCandidateProposal, StatusAbort},
	StatusCandidateProposal: {StatusSelectionPhase, StatusConsolidated, StatusAbort},
	StatusConsolidated:      {StatusSelectionPhase, StatusDone, StatusAbort},
	StatusDone:              {StatusSelectionPhase},
}

// ParseStatus は文字列を Status に変換します。大文字小文字は区別します。
func ParseStatus(raw string) (Status, error) {
	status := Status(raw)
	switch status {
	case StatusCreated, StatusSelectionPhase, StatusCandidateProposal, StatusConsolidated, StatusDone, StatusAbort:
		return status, nil
	}
	return "", fmt.Errorf("%q: %w", raw, ErrInvalidStatus)
}

// IsTransitionAllowed は from から to への遷移が許可されているかを返します。
func IsTransitionAllowed(from, to Status) bool {
	for _, allowed := range validTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// RequiresProfessional は遷移先ステータスでプロフェッショナル ID が必須かを返します。
func RequiresProfessional(target Status) bool {
	switch target {
	case StatusSelectionPhase, StatusConsolidated, StatusDone:
		return true
	default:
		return false
	}
}

// IsCompleted は完了イベントの対象となるステータスかを返します。
func IsCompleted(s Status) bool {
	return s == StatusDone || s == StatusAbort
}
