package models

import "time"

// User is a participant identified by a seat number within one room.
// A seat can hold at most one named participant.
type User struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	GameRoomID uint      `json:"game_room_id" gorm:"not null;uniqueIndex:idx_room_seat"`
	Name       string    `json:"name" gorm:"size:100"`
	SeatNumber int       `json:"seat_number" gorm:"not null;uniqueIndex:idx_room_seat"`
	CreatedAt  time.Time `json:"created_at"`
}
