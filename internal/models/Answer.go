package models

import (
	"time"

	"github.com/google/uuid"
)

type AnswerStatus string

const (
	StatusUnanswered AnswerStatus = "unanswered"
	StatusAnswered   AnswerStatus = "answered"
)

// Answer is one partner's reply to a catalog question. Question fields are
// denormalized at answer time so history stays readable if the catalog moves.
// Partner fields are only ever populated through WithPartnerAnswer.
type Answer struct {
	ID                string       `json:"id"`
	QuestionID        string       `json:"question_id" validate:"required"`
	QuestionText      string       `json:"question_text"`
	QuestionCategory  Category     `json:"question_category"`
	AnswerText        string       `json:"answer_text" validate:"required"`
	CreatedDate       time.Time    `json:"created_date"`
	ImageData         []byte       `json:"image_data,omitempty"`
	Status            AnswerStatus `json:"status"`
	PartnerAnswerText string       `json:"partner_answer_text,omitempty"`
	PartnerImageData  []byte       `json:"partner_image_data,omitempty"`
	PartnerAnswerDate *time.Time   `json:"partner_answer_date,omitempty"`
}

func NewAnswer(q Question, answerText string, image []byte) *Answer {
	return &Answer{
		ID:               uuid.NewString(),
		QuestionID:       q.ID,
		QuestionText:     q.Text,
		QuestionCategory: q.Category,
		AnswerText:       answerText,
		CreatedDate:      time.Now(),
		ImageData:        image,
		Status:           StatusAnswered,
	}
}

// WithPartnerAnswer returns a copy with the partner fields populated. The
// receiver is left untouched.
func (a *Answer) WithPartnerAnswer(partnerText string, partnerImage []byte, answeredAt time.Time) *Answer {
	merged := *a
	merged.PartnerAnswerText = partnerText
	merged.PartnerImageData = partnerImage
	merged.PartnerAnswerDate = &answeredAt
	return &merged
}

func (a *Answer) HasPartnerAnswer() bool {
	return a.Status == StatusAnswered && a.PartnerAnswerText != ""
}

// MonthKey is the "year-month" grouping label for history views.
func (a *Answer) MonthKey() string {
	return a.CreatedDate.Format("2006-01")
}
