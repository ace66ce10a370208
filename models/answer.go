package models

import "time"

// Answer stores one participant's own answer plus their guess at the
// partner's answer for a single question. Resubmission overwrites the row
// in place; the composite unique index keeps (session, user, question)
// single-valued even under concurrent submits.
type Answer struct {
	ID             uint      `json:"id" gorm:"primaryKey"`
	GameSessionID  uint      `json:"game_session_id" gorm:"not null;uniqueIndex:idx_session_user_question"`
	UserID         uint      `json:"user_id" gorm:"not null;uniqueIndex:idx_session_user_question"`
	QuestionNumber int       `json:"question_number" gorm:"not null;uniqueIndex:idx_session_user_question"`
	MyAnswer       string    `json:"my_answer" gorm:"not null"`
	PartnerGuess   string    `json:"partner_guess" gorm:"not null"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}
