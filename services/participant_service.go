package services

import (
	"errors"
	"strings"

	"partypair/models"

	"gorm.io/gorm"
)

type ParticipantService struct {
	db *gorm.DB
}

func NewParticipantService(db *gorm.DB) *ParticipantService {
	return &ParticipantService{db: db}
}

type JoinRoomRequest struct {
	RoomCode   string `json:"room_code" binding:"required,len=6,numeric"`
	Name       string `json:"name" binding:"required,max=100"`
	SeatNumber int    `json:"seat_number" binding:"required,min=1"`
}

// Join claims a seat in the room. A seat rejoined under the same name
// returns the existing participant, so reloads are idempotent. A seat held
// by a different name is a conflict: first legitimate claim wins.
func (s *ParticipantService) Join(room *models.GameRoom, name string, seatNumber int) (*models.User, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyName
	}
	if seatNumber < 1 || seatNumber > room.TotalParticipants {
		return nil, ErrInvalidSeat
	}

	if existing, err := s.userBySeat(room.ID, seatNumber); err == nil {
		return s.claimSeat(existing, name)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	user := models.User{
		GameRoomID: room.ID,
		Name:       name,
		SeatNumber: seatNumber,
	}
	if err := s.db.Create(&user).Error; err != nil {
		// A concurrent join may have claimed the seat between the lookup
		// and the insert; the unique index rejects the duplicate. Re-read
		// and apply the same-name rule.
		existing, lookupErr := s.userBySeat(room.ID, seatNumber)
		if lookupErr != nil {
			return nil, err
		}
		return s.claimSeat(existing, name)
	}
	return &user, nil
}

// EnsureSeat resolves a seat to its participant, creating a placeholder
// with no name yet if the seat is empty. Used when one side of a pairing
// references a partner who has not joined on their own device.
func (s *ParticipantService) EnsureSeat(room *models.GameRoom, seatNumber int) (*models.User, error) {
	if seatNumber < 1 || seatNumber > room.TotalParticipants {
		return nil, ErrInvalidSeat
	}

	existing, err := s.userBySeat(room.ID, seatNumber)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	user := models.User{
		GameRoomID: room.ID,
		SeatNumber: seatNumber,
	}
	if err := s.db.Create(&user).Error; err != nil {
		existing, lookupErr := s.userBySeat(room.ID, seatNumber)
		if lookupErr != nil {
			return nil, err
		}
		return existing, nil
	}
	return &user, nil
}

func (s *ParticipantService) Rename(userID uint, name string) (*models.User, error) {
	name = strings.TrimSpace(name)
	user, err := s.GetUser(userID)
	if err != nil {
		return nil, err
	}
	if name == "" || user.Name == name {
		return user, nil
	}
	if err := s.db.Model(user).Update("name", name).Error; err != nil {
		return nil, err
	}
	return user, nil
}

func (s *ParticipantService) GetUser(id uint) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (s *ParticipantService) userBySeat(roomID uint, seatNumber int) (*models.User, error) {
	var user models.User
	err := s.db.Where("game_room_id = ? AND seat_number = ?", roomID, seatNumber).
		First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// claimSeat applies the rejoin rules to an occupied seat: a nameless
// placeholder is claimed outright, the same name is a rejoin, a different
// name is rejected.
func (s *ParticipantService) claimSeat(existing *models.User, name string) (*models.User, error) {
	if existing.Name == name {
		return existing, nil
	}
	if existing.Name == "" {
		return s.Rename(existing.ID, name)
	}
	return nil, ErrSeatTaken
}
