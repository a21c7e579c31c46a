// Package message は受信メッセージの処理状態の遷移と、その履歴台帳を扱います。
//
// 状態遷移:
//
//	RECEIVED ──► READ ──► PROCESSING ──► DONE | FAILED
//	               │
//	               └──► DISCARDED | DONE | FAILED
//
// DISCARDED、DONE、FAILED は終端です。
package message

import "fmt"

// State はメッセージの処理状態です。
type State string

const (
	StateReceived   State = "RECEIVED"
	StateRead       State = "READ"
	StateDiscarded  State = "DISCARDED"
	StateProcessing State = "PROCESSING"
	StateDone       State = "DONE"
	StateFailed     State = "FAILED"
)

// AllStates は全状態を定義順に返します。
func AllStates() []State {
	return []State{StateReceived, StateRead, StateDiscarded, StateProcessing, StateDone, StateFailed}
}

var validTransitions = map[State][]State{
	StateReceived:   {StateRead},
	StateRead:       {StateDiscarded, StateProcessing, StateDone, StateFailed},
	StateProcessing: {StateDone, StateFailed},
}

// ParseState は文字列を State に変換します。
func ParseState(raw string) (State, error) {
	state := State(raw)
	switch state {
	case StateReceived, StateRead, StateDiscarded, StateProcessing, StateDone, StateFailed:
		return state, nil
	}
	return "", fmt.Errorf("%q: %w", raw, ErrInvalidState)
}

// CanTransition は from から to への遷移が許可されているかを返します。
func CanTransition(from, to State) bool {
	for _, allowed := range validTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// IsTerminal は遷移先を持たない状態かを返します。
func IsTerminal(s State) bool {
	return len(validTransitions[s]) == 0
}

// Priority はメッセージの優先度です。
type Priority string

const (
	PriorityHigh       Priority = "HIGH"
	PriorityMediumHigh Priority = "MEDIUM_HIGH"
	PriorityMedium     Priority = "MEDIUM"
	PriorityMediumLow  Priority = "MEDIUM_LOW"
	PriorityLow        Priority = "LOW"
)

// ParsePriority は文字列を Priority に変換します。
func ParsePriority(raw string) (Priority, error) {
	p := Priority(raw)
	switch p {
	case PriorityHigh, PriorityMediumHigh, PriorityMedium, PriorityMediumLow, PriorityLow:
		return p, nil
	}
	return "", fmt.Errorf("%q: %w", raw, ErrInvalidPriority)
}
