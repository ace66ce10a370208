package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sort"
	"time"

	"partypair/models"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// resultCacheTTL bounds how long a computed result may live in Redis. The
// cache is a projection of the answer rows, never independent truth: a
// miss simply recomputes.
const resultCacheTTL = 2 * time.Hour

type ResultService struct {
	db       *gorm.DB
	redis    *redis.Client
	sessions *SessionService
	answers  *AnswerService
}

func NewResultService(db *gorm.DB, rdb *redis.Client, sessions *SessionService, answers *AnswerService) *ResultService {
	return &ResultService{db: db, redis: rdb, sessions: sessions, answers: answers}
}

type AnswerPair struct {
	QuestionNumber      int    `json:"question_number"`
	MyAnswer            string `json:"my_answer"`
	PartnerGuess        string `json:"partner_guess"`
	ActualPartnerAnswer string `json:"actual_partner_answer"`
	IsCorrect           bool   `json:"is_correct"`
}

type GameResult struct {
	GameSessionID     uint         `json:"game_session_id"`
	UserID            uint         `json:"user_id"`
	PartnerID         uint         `json:"partner_id"`
	UserSeatNumber    int          `json:"user_seat_number"`
	PartnerSeatNumber int          `json:"partner_seat_number"`
	AnswerPairs       []AnswerPair `json:"answer_pairs"`
	CorrectCount      int          `json:"correct_count"`
}

type UserScoreSummary struct {
	UserID            uint   `json:"user_id"`
	Name              string `json:"name"`
	SeatNumber        int    `json:"seat_number"`
	PartnerSeatNumber int    `json:"partner_seat_number"`
	CorrectCount      int    `json:"correct_count"`
	TotalQuestions    int    `json:"total_questions"`
}

// ComputeResult scores a session from one participant's viewpoint. While
// either side has not answered the full question set the result is not
// ready (pending), which is a legitimate state rather than an error. A
// guess is correct only on an exact, byte-for-byte match with the
// partner's answer: casing and whitespace both count.
func (s *ResultService) ComputeResult(sessionID, viewerID uint) (*GameResult, bool, error) {
	session, err := s.sessions.GetSession(sessionID)
	if err != nil {
		return nil, false, err
	}
	if !session.HasParticipant(viewerID) {
		return nil, false, ErrNotParticipant
	}

	if session.IsComplete {
		if cached := s.cachedResult(sessionID, viewerID); cached != nil {
			return cached, true, nil
		}
	}

	partnerID := session.PartnerOf(viewerID)
	viewerAnswers, err := s.answers.GetAnswers(sessionID, viewerID)
	if err != nil {
		return nil, false, err
	}
	partnerAnswers, err := s.answers.GetAnswers(sessionID, partnerID)
	if err != nil {
		return nil, false, err
	}
	if !hasExactQuestionSet(viewerAnswers) || !hasExactQuestionSet(partnerAnswers) {
		return nil, false, nil
	}

	var viewer, partner models.User
	if err := s.db.First(&viewer, viewerID).Error; err != nil {
		return nil, false, err
	}
	if err := s.db.First(&partner, partnerID).Error; err != nil {
		return nil, false, err
	}

	viewerByQ := answersByQuestion(viewerAnswers)
	partnerByQ := answersByQuestion(partnerAnswers)

	result := &GameResult{
		GameSessionID:     sessionID,
		UserID:            viewerID,
		PartnerID:         partnerID,
		UserSeatNumber:    viewer.SeatNumber,
		PartnerSeatNumber: partner.SeatNumber,
		AnswerPairs:       make([]AnswerPair, 0, QuestionCount),
	}
	for q := 1; q <= QuestionCount; q++ {
		mine := viewerByQ[q]
		theirs := partnerByQ[q]
		correct := mine.PartnerGuess == theirs.MyAnswer
		if correct {
			result.CorrectCount++
		}
		result.AnswerPairs = append(result.AnswerPairs, AnswerPair{
			QuestionNumber:      q,
			MyAnswer:            mine.MyAnswer,
			PartnerGuess:        mine.PartnerGuess,
			ActualPartnerAnswer: theirs.MyAnswer,
			IsCorrect:           correct,
		})
	}

	// First full computation finishes the pairing.
	if !session.IsComplete {
		if err := s.sessions.MarkComplete(sessionID); err != nil {
			return nil, false, err
		}
	}

	s.cacheResult(result)
	return result, true, nil
}

// Summarize flattens every completed pairing of a room into one scoreboard
// row per participant, seat order ascending. Leaderboard re-sorting by
// score is left to the client.
func (s *ResultService) Summarize(roomID uint) ([]UserScoreSummary, error) {
	var room models.GameRoom
	if err := s.db.First(&room, roomID).Error; err != nil {
		return nil, ErrRoomNotFound
	}

	sessions, err := s.sessions.ListCompleted(roomID)
	if err != nil {
		return nil, err
	}

	rows := make([]UserScoreSummary, 0, 2*len(sessions))
	for _, session := range sessions {
		for _, userID := range []uint{session.User1ID, session.User2ID} {
			result, ready, err := s.ComputeResult(session.ID, userID)
			if err != nil {
				return nil, err
			}
			if !ready {
				continue
			}

			var user models.User
			if err := s.db.First(&user, userID).Error; err != nil {
				return nil, err
			}
			rows = append(rows, UserScoreSummary{
				UserID:            user.ID,
				Name:              user.Name,
				SeatNumber:        user.SeatNumber,
				PartnerSeatNumber: result.PartnerSeatNumber,
				CorrectCount:      result.CorrectCount,
				TotalQuestions:    QuestionCount,
			})
		}
	}

	sort.Slice(rows, func(i, j int) bool {
		return rows[i].SeatNumber < rows[j].SeatNumber
	})
	return rows, nil
}

func answersByQuestion(answers []models.Answer) map[int]models.Answer {
	byQ := make(map[int]models.Answer, len(answers))
	for _, a := range answers {
		byQ[a.QuestionNumber] = a
	}
	return byQ
}

func (s *ResultService) cacheResult(result *GameResult) {
	if s.redis == nil {
		return
	}
	data, err := json.Marshal(result)
	if err != nil {
		return
	}
	key := resultCacheKey(result.GameSessionID, result.UserID)
	if err := s.redis.Set(context.Background(), key, data, resultCacheTTL).Err(); err != nil {
		log.Printf("failed to cache result %s: %v", key, err)
	}
}

func (s *ResultService) cachedResult(sessionID, viewerID uint) *GameResult {
	if s.redis == nil {
		return nil
	}
	data, err := s.redis.Get(context.Background(), resultCacheKey(sessionID, viewerID)).Result()
	if err != nil {
		if err != redis.Nil {
			log.Printf("redis error reading result for session %d: %v", sessionID, err)
		}
		return nil
	}

	var result GameResult
	if err := json.Unmarshal([]byte(data), &result); err != nil {
		return nil
	}
	return &result
}

func resultCacheKey(sessionID, viewerID uint) string {
	return fmt.Sprintf("result:%d:%d", sessionID, viewerID)
}
