package services

import (
	"errors"

	"partypair/models"

	"gorm.io/gorm"
)

type SessionService struct {
	db *gorm.DB
}

func NewSessionService(db *gorm.DB) *SessionService {
	return &SessionService{db: db}
}

type StartGameRequest struct {
	RoomCode          string `json:"room_code" binding:"required,len=6,numeric"`
	MyName            string `json:"my_name" binding:"required,max=100"`
	MySeatNumber      int    `json:"my_seat_number" binding:"required,min=1"`
	PartnerSeatNumber int    `json:"partner_seat_number" binding:"required,min=1"`
}

// GetOrCreate finds the current session for an unordered pair of users, or
// creates one. A finished session is never reused, so the same two seats
// can be re-paired for a later round without colliding with the old
// round's answers.
func (s *SessionService) GetOrCreate(roomID, userAID, userBID uint) (*models.GameSession, error) {
	userA, userB, err := s.loadPair(userAID, userBID)
	if err != nil {
		return nil, err
	}
	if userA.GameRoomID != roomID || userB.GameRoomID != roomID {
		return nil, ErrNotParticipant
	}

	var session models.GameSession
	err = s.db.Where(
		"game_room_id = ? AND ((user1_id = ? AND user2_id = ?) OR (user1_id = ? AND user2_id = ?))",
		roomID, userAID, userBID, userBID, userAID,
	).Order("created_at DESC").First(&session).Error
	if err == nil && !session.IsComplete {
		return &session, nil
	}
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	session = models.GameSession{
		GameRoomID: roomID,
		User1ID:    userAID,
		User2ID:    userBID,
	}
	if err := s.db.Create(&session).Error; err != nil {
		return nil, err
	}
	return &session, nil
}

func (s *SessionService) GetSession(id uint) (*models.GameSession, error) {
	var session models.GameSession
	if err := s.db.First(&session, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}
	return &session, nil
}

// MarkComplete flips the session to complete. The transition happens once;
// repeating the call is a safe no-op and the flag never reverts.
func (s *SessionService) MarkComplete(id uint) error {
	session, err := s.GetSession(id)
	if err != nil {
		return err
	}
	if session.IsComplete {
		return nil
	}
	return s.db.Model(session).Update("is_complete", true).Error
}

// ListCompleted returns every finished session of a room, oldest first.
func (s *SessionService) ListCompleted(roomID uint) ([]models.GameSession, error) {
	var sessions []models.GameSession
	err := s.db.Where("game_room_id = ? AND is_complete = ?", roomID, true).
		Order("created_at ASC").
		Find(&sessions).Error
	if err != nil {
		return nil, err
	}
	return sessions, nil
}

func (s *SessionService) loadPair(userAID, userBID uint) (*models.User, *models.User, error) {
	var userA, userB models.User
	if err := s.db.First(&userA, userAID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrUserNotFound
		}
		return nil, nil, err
	}
	if err := s.db.First(&userB, userBID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrUserNotFound
		}
		return nil, nil, err
	}
	return &userA, &userB, nil
}
