package services

import (
	"crypto/rand"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"math/big"
	"strconv"
	"time"

	"partypair/models"

	"gorm.io/gorm"
)

// maxCodeAttempts bounds the collision retry loop when allocating a room
// code. Six digits give a million codes, so hitting this limit means the
// active-room table is pathologically full.
const maxCodeAttempts = 25

type RoomService struct {
	db *gorm.DB
}

func NewRoomService(db *gorm.DB) *RoomService {
	return &RoomService{db: db}
}

type CreateRoomRequest struct {
	ExpiryHours       int `json:"expiry_hours" binding:"required,min=1,max=72"`
	TotalParticipants int `json:"total_participants" binding:"omitempty,min=2,max=100"`
}

func (s *RoomService) CreateRoom(req *CreateRoomRequest) (*models.GameRoom, error) {
	code, err := s.generateUniqueCode()
	if err != nil {
		return nil, err
	}

	total := req.TotalParticipants
	if total == 0 {
		total = 12
	}

	room := models.GameRoom{
		Code:              code,
		IsActive:          true,
		TotalParticipants: total,
		ExpiresAt:         time.Now().Add(time.Duration(req.ExpiryHours) * time.Hour),
	}
	if err := s.db.Create(&room).Error; err != nil {
		return nil, err
	}
	return &room, nil
}

func (s *RoomService) GetRoom(id uint) (*models.GameRoom, error) {
	var room models.GameRoom
	if err := s.db.First(&room, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRoomNotFound
		}
		return nil, err
	}
	return &room, nil
}

// FindActiveRoomByCode resolves a room code for joining. A room past its
// expiry horizon is already invisible here, even if the hourly sweep has
// not deactivated it yet.
func (s *RoomService) FindActiveRoomByCode(code string) (*models.GameRoom, error) {
	var room models.GameRoom
	err := s.db.Where("code = ? AND is_active = ? AND expires_at > ?", code, true, time.Now()).
		First(&room).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRoomNotFound
		}
		return nil, err
	}
	return &room, nil
}

func (s *RoomService) ListActiveRooms() ([]models.GameRoom, error) {
	var rooms []models.GameRoom
	err := s.db.Where("is_active = ? AND expires_at > ?", true, time.Now()).
		Order("created_at DESC").
		Find(&rooms).Error
	if err != nil {
		return nil, err
	}
	return rooms, nil
}

// Deactivate retires a room. Calling it on an already-inactive room is a
// no-op; a room never transitions back to active.
func (s *RoomService) Deactivate(id uint) error {
	room, err := s.GetRoom(id)
	if err != nil {
		return err
	}
	if !room.IsActive {
		return nil
	}
	return s.db.Model(room).Update("is_active", false).Error
}

// SetTeamConfig stores the admin's team assignment: team label to ordered
// seat list. Seats must fit the room's participant count.
func (s *RoomService) SetTeamConfig(id uint, teams map[string][]int) (*models.GameRoom, error) {
	room, err := s.GetRoom(id)
	if err != nil {
		return nil, err
	}
	for _, seats := range teams {
		for _, seat := range seats {
			if seat < 1 || seat > room.TotalParticipants {
				return nil, ErrInvalidSeat
			}
		}
	}

	raw, err := json.Marshal(teams)
	if err != nil {
		return nil, err
	}
	if err := s.db.Model(room).Update("team_config", raw).Error; err != nil {
		return nil, err
	}
	return room, nil
}

// SetPartnerConfig stores the seat-to-partner-seat assignment. JSON object
// keys are strings, so seats arrive as numeric strings.
func (s *RoomService) SetPartnerConfig(id uint, partners map[string]int) (*models.GameRoom, error) {
	room, err := s.GetRoom(id)
	if err != nil {
		return nil, err
	}
	for seatStr, partner := range partners {
		seat, err := strconv.Atoi(seatStr)
		if err != nil || seat < 1 || seat > room.TotalParticipants {
			return nil, ErrInvalidSeat
		}
		if partner < 1 || partner > room.TotalParticipants {
			return nil, ErrInvalidSeat
		}
		if partner == seat {
			return nil, ErrSameSeat
		}
	}

	raw, err := json.Marshal(partners)
	if err != nil {
		return nil, err
	}
	if err := s.db.Model(room).Update("partner_config", raw).Error; err != nil {
		return nil, err
	}
	return room, nil
}

// SweepExpired deactivates every active room past its expiry. One room's
// failure never aborts the sweep of the rest.
func (s *RoomService) SweepExpired() (int, error) {
	var rooms []models.GameRoom
	err := s.db.Where("is_active = ? AND expires_at <= ?", true, time.Now()).
		Find(&rooms).Error
	if err != nil {
		return 0, err
	}

	swept := 0
	for _, room := range rooms {
		if err := s.db.Model(&room).Update("is_active", false).Error; err != nil {
			log.Printf("failed to deactivate expired room %d (%s): %v", room.ID, room.Code, err)
			continue
		}
		swept++
	}
	return swept, nil
}

func (s *RoomService) generateUniqueCode() (string, error) {
	for i := 0; i < maxCodeAttempts; i++ {
		n, err := rand.Int(rand.Reader, big.NewInt(1000000))
		if err != nil {
			return "", err
		}
		code := fmt.Sprintf("%06d", n)

		var count int64
		err = s.db.Model(&models.GameRoom{}).
			Where("code = ? AND is_active = ?", code, true).
			Count(&count).Error
		if err != nil {
			return "", err
		}
		if count == 0 {
			return code, nil
		}
	}
	return "", ErrCodeExhausted
}
