package services

import (
	"context"
	"errors"
	"log"
	"strings"

	"partypair/models"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type AnswerService struct {
	db       *gorm.DB
	redis    *redis.Client
	sessions *SessionService
}

func NewAnswerService(db *gorm.DB, rdb *redis.Client, sessions *SessionService) *AnswerService {
	return &AnswerService{db: db, redis: rdb, sessions: sessions}
}

type AnswerInput struct {
	MyAnswer     string `json:"my_answer" binding:"required"`
	PartnerGuess string `json:"partner_guess" binding:"required"`
}

type SubmitAnswersRequest struct {
	UserID  uint          `json:"user_id" binding:"required"`
	Answers []AnswerInput `json:"answers" binding:"required,len=10,dive"`
}

// UpsertAnswer records one question's answer for a session participant.
// A row already present for (session, user, question) is replaced in
// place; the total row count for that pair never grows past QuestionCount.
func (s *AnswerService) UpsertAnswer(sessionID, userID uint, questionNumber int, myAnswer, partnerGuess string) (*models.Answer, error) {
	if questionNumber < 1 || questionNumber > QuestionCount {
		return nil, ErrInvalidQuestion
	}
	myAnswer = strings.TrimSpace(myAnswer)
	partnerGuess = strings.TrimSpace(partnerGuess)
	if myAnswer == "" || partnerGuess == "" {
		return nil, ErrEmptyAnswer
	}

	session, err := s.sessions.GetSession(sessionID)
	if err != nil {
		return nil, err
	}
	if !session.HasParticipant(userID) {
		return nil, ErrNotParticipant
	}

	var stored *models.Answer
	if existing, err := s.answerFor(sessionID, userID, questionNumber); err == nil {
		if stored, err = s.replace(existing, myAnswer, partnerGuess); err != nil {
			return nil, err
		}
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	} else {
		answer := models.Answer{
			GameSessionID:  sessionID,
			UserID:         userID,
			QuestionNumber: questionNumber,
			MyAnswer:       myAnswer,
			PartnerGuess:   partnerGuess,
		}
		if createErr := s.db.Create(&answer).Error; createErr != nil {
			// Lost a race against a concurrent submit for the same question;
			// the unique index kept the row single, so fall back to replacing.
			existing, lookupErr := s.answerFor(sessionID, userID, questionNumber)
			if lookupErr != nil {
				return nil, createErr
			}
			if stored, err = s.replace(existing, myAnswer, partnerGuess); err != nil {
				return nil, err
			}
		} else {
			stored = &answer
		}
	}

	// A changed row on a finished session would let a cached result drift
	// from the stored answers; the cache is a projection, so drop it and
	// let the next read recompute.
	if session.IsComplete {
		s.invalidateResultCache(session)
	}
	return stored, nil
}

func (s *AnswerService) invalidateResultCache(session *models.GameSession) {
	if s.redis == nil {
		return
	}
	keys := []string{
		resultCacheKey(session.ID, session.User1ID),
		resultCacheKey(session.ID, session.User2ID),
	}
	if err := s.redis.Del(context.Background(), keys...).Err(); err != nil {
		log.Printf("failed to invalidate cached results for session %d: %v", session.ID, err)
	}
}

// SubmitAnswers stores a participant's full answer sheet, one upsert per
// question in submission order.
func (s *AnswerService) SubmitAnswers(sessionID, userID uint, inputs []AnswerInput) error {
	for i, input := range inputs {
		if _, err := s.UpsertAnswer(sessionID, userID, i+1, input.MyAnswer, input.PartnerGuess); err != nil {
			return err
		}
	}
	return nil
}

// GetAnswers returns a participant's answers ordered by question number.
func (s *AnswerService) GetAnswers(sessionID, userID uint) ([]models.Answer, error) {
	var answers []models.Answer
	err := s.db.Where("game_session_id = ? AND user_id = ?", sessionID, userID).
		Order("question_number ASC").
		Find(&answers).Error
	if err != nil {
		return nil, err
	}
	return answers, nil
}

// HasAllAnswers reports whether the participant has answered the exact
// question set 1..QuestionCount. Counting rows alone would accept a sheet
// with a duplicated number and a gap, so the set itself is verified.
func (s *AnswerService) HasAllAnswers(sessionID, userID uint) (bool, error) {
	answers, err := s.GetAnswers(sessionID, userID)
	if err != nil {
		return false, err
	}
	return hasExactQuestionSet(answers), nil
}

func hasExactQuestionSet(answers []models.Answer) bool {
	seen := make(map[int]bool, QuestionCount)
	for _, a := range answers {
		if a.QuestionNumber < 1 || a.QuestionNumber > QuestionCount || seen[a.QuestionNumber] {
			return false
		}
		seen[a.QuestionNumber] = true
	}
	return len(seen) == QuestionCount
}

func (s *AnswerService) answerFor(sessionID, userID uint, questionNumber int) (*models.Answer, error) {
	var answer models.Answer
	err := s.db.Where("game_session_id = ? AND user_id = ? AND question_number = ?",
		sessionID, userID, questionNumber).
		First(&answer).Error
	if err != nil {
		return nil, err
	}
	return &answer, nil
}

func (s *AnswerService) replace(answer *models.Answer, myAnswer, partnerGuess string) (*models.Answer, error) {
	err := s.db.Model(answer).Updates(map[string]interface{}{
		"my_answer":     myAnswer,
		"partner_guess": partnerGuess,
	}).Error
	if err != nil {
		return nil, err
	}
	return answer, nil
}
