package handler

import (
	"time"

	"github.com/ogurasousui/placement-crm/internal/core/joboffer"
	"github.com/ogurasousui/placement-crm/internal/core/message"
)

// JobOffer は求人のレスポンス表現です。
type JobOffer struct {
	ID             string    `json:"id"`
	CustomerID     string    `json:"customerId"`
	ProfessionalID string    `json:"professionalId,omitempty"`
	Status         string    `json:"status"`
	RequiredSkills []string  `json:"requiredSkills"`
	Duration       int       `json:"duration"`
	Value          float64   `json:"value"`
	Note           string    `json:"note,omitempty"`
	Version        int64     `json:"version"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

type CreateJobOfferRequest struct {
	CustomerID     string   `json:"customerId"`
	RequiredSkills []string `json:"requiredSkills"`
	Duration       int      `json:"duration"`
	Value          float64  `json:"value"`
	Note           string   `json:"note"`
}

type GetJobOfferRequest struct {
	ID string `json:"id"`
}

// UpdateJobOfferStatusRequest は求人ステータス変更の要求です。
// ProfessionalID を省略すると割り当て済みのプロフェッショナルを引き継ぎます。
type UpdateJobOfferStatusRequest struct {
	ID             string  `json:"id"`
	Status         string  `json:"status"`
	ProfessionalID *string `json:"professionalId,omitempty"`
}

type DeleteJobOfferRequest struct {
	ID string `json:"id"`
}

type JobOfferResponse struct {
	JobOffer *JobOffer `json:"jobOffer"`
}

type DeleteJobOfferResponse struct{}

// Message はメッセージのレスポンス表現です。
type Message struct {
	ID          string    `json:"id"`
	Date        time.Time `json:"date"`
	Subject     string    `json:"subject"`
	Body        string    `json:"body"`
	Channel     string    `json:"channel"`
	Sender      string    `json:"sender"`
	ActualState string    `json:"actualState"`
	Priority    string    `json:"priority"`
	Version     int64     `json:"version"`
}

// HistoryEntry は履歴一件のレスポンス表現です。
type HistoryEntry struct {
	ID      string    `json:"id"`
	State   string    `json:"state"`
	Date    time.Time `json:"date"`
	Comment string    `json:"comment"`
}

type CreateMessageRequest struct {
	Subject  string  `json:"subject"`
	Body     string  `json:"body"`
	Channel  string  `json:"channel"`
	Sender   string  `json:"sender"`
	Priority *string `json:"priority,omitempty"`
}

type GetMessageRequest struct {
	ID string `json:"id"`
}

// UpdateMessageRequest はメッセージ更新の要求です。ActualState と Priority は省略できます。
type UpdateMessageRequest struct {
	ID          string  `json:"id"`
	ActualState *string `json:"actualState,omitempty"`
	Comment     string  `json:"comment,omitempty"`
	Priority    *string `json:"priority,omitempty"`
}

type MessageResponse struct {
	Message *Message `json:"message"`
}

type GetMessageHistoryRequest struct {
	MessageID string `json:"messageId"`
}

type GetMessageHistoryResponse struct {
	History []*HistoryEntry `json:"history"`
}

type RecomputeEmploymentRequest struct {
	ProfessionalID string `json:"professionalId"`
}

type RecomputeEmploymentResponse struct {
	ProfessionalID  string `json:"professionalId"`
	EmploymentState string `json:"employmentState"`
}

type ReconcileEmploymentRequest struct{}

type ReconcileEmploymentResponse struct {
	Checked int `json:"checked"`
	Changed int `json:"changed"`
	Failed  int `json:"failed"`
}

func toJobOfferDTO(o *joboffer.JobOffer) *JobOffer {
	if o == nil {
		return nil
	}
	skills := o.RequiredSkills
	if skills == nil {
		skills = []string{}
	}
	return &JobOffer{
		ID:             o.ID,
		CustomerID:     o.CustomerID,
		ProfessionalID: o.ProfessionalID,
		Status:         string(o.Status),
		RequiredSkills: skills,
		Duration:       o.Duration,
		Value:          o.Value,
		Note:           o.Note,
		Version:        o.Version,
		CreatedAt:      o.CreatedAt,
		UpdatedAt:      o.UpdatedAt,
	}
}

func toMessageDTO(m *message.Message) *Message {
	if m == nil {
		return nil
	}
	return &Message{
		ID:          m.ID,
		Date:        m.Date,
		Subject:     m.Subject,
		Body:        m.Body,
		Channel:     m.Channel,
		Sender:      m.Sender,
		ActualState: string(m.State),
		Priority:    string(m.Priority),
		Version:     m.Version,
	}
}

func toHistoryDTOs(entries []*message.History) []*HistoryEntry {
	out := make([]*HistoryEntry, 0, len(entries))
	for _, h := range entries {
		out = append(out, &HistoryEntry{
			ID:      h.ID,
			State:   string(h.State),
			Date:    h.Date,
			Comment: h.Comment,
		})
	}
	return out
}
