package models

import "time"

// GameSession pairs two users of the same room for one round of questions.
// The pair is unordered: a session for (A, B) is the session for (B, A).
type GameSession struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	GameRoomID uint      `json:"game_room_id" gorm:"not null;index"`
	User1ID    uint      `json:"user1_id" gorm:"not null;index"`
	User2ID    uint      `json:"user2_id" gorm:"not null;index"`
	IsComplete bool      `json:"is_complete" gorm:"not null;default:false"`
	CreatedAt  time.Time `json:"created_at"`
}

func (s *GameSession) HasParticipant(userID uint) bool {
	return s.User1ID == userID || s.User2ID == userID
}

// PartnerOf returns the other participant of the pair. The caller must have
// verified userID with HasParticipant first.
func (s *GameSession) PartnerOf(userID uint) uint {
	if s.User1ID == userID {
		return s.User2ID
	}
	return s.User1ID
}
