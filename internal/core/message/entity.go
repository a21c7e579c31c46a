package message

import "time"

// Message は受信メッセージのエンティティです。
type Message struct {
	ID       string    `json:"id"`
	Date     time.Time `json:"date"`
	Subject  string    `json:"subject"`
	Body     string    `json:"body"`
	Channel  string    `json:"channel"`
	Sender   string    `json:"sender"`
	State    State     `json:"actualState"`
	Priority Priority  `json:"priority"`
	Version  int64     `json:"version"`
}

// History はメッセージの状態変化を一件記録する不変のエントリです。
type History struct {
	ID        string    `json:"id"`
	MessageID string    `json:"messageId"`
	State     State     `json:"state"`
	Date      time.Time `json:"date"`
	Comment   string    `json:"comment"`
}

// Clone は Message を複製します。
func (m *Message) Clone() *Message {
	if m == nil {
		return nil
	}
	clone := *m
	return &clone
}
