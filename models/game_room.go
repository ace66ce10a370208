package models

import (
	"time"

	"gorm.io/datatypes"
)

type GameRoom struct {
	ID                uint           `json:"id" gorm:"primaryKey"`
	Code              string         `json:"code" gorm:"size:6;index;not null"`
	IsActive          bool           `json:"is_active" gorm:"not null;default:true"`
	TotalParticipants int            `json:"total_participants" gorm:"not null;default:12"`
	TeamConfig        datatypes.JSON `json:"team_config,omitempty"`
	PartnerConfig     datatypes.JSON `json:"partner_config,omitempty"`
	ExpiresAt         time.Time      `json:"expires_at" gorm:"not null"`
	CreatedAt         time.Time      `json:"created_at"`
	UpdatedAt         time.Time      `json:"updated_at"`

	// Relationships
	Users    []User        `json:"users,omitempty" gorm:"foreignKey:GameRoomID"`
	Sessions []GameSession `json:"sessions,omitempty" gorm:"foreignKey:GameRoomID"`
}
