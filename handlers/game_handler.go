package handlers

import (
	"net/http"

	"partypair/services"

	"github.com/gin-gonic/gin"
)

type GameHandler struct {
	roomService        *services.RoomService
	participantService *services.ParticipantService
	sessionService     *services.SessionService
	answerService      *services.AnswerService
	resultService      *services.ResultService
}

func NewGameHandler(
	roomService *services.RoomService,
	participantService *services.ParticipantService,
	sessionService *services.SessionService,
	answerService *services.AnswerService,
	resultService *services.ResultService,
) *GameHandler {
	return &GameHandler{
		roomService:        roomService,
		participantService: participantService,
		sessionService:     sessionService,
		answerService:      answerService,
		resultService:      resultService,
	}
}

func (h *GameHandler) GetQuestions(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"questions": services.Questions(),
		"count":     services.QuestionCount,
	})
}

func (h *GameHandler) JoinRoom(c *gin.Context) {
	var req services.JoinRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	room, err := h.roomService.FindActiveRoomByCode(req.RoomCode)
	if err != nil {
		respondError(c, err)
		return
	}

	user, err := h.participantService.Join(room, req.Name, req.SeatNumber)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"room": room, "user": user})
}

// StartGame resolves both seats and hands back the pairing session. The
// caller's seat picks up the submitted name (re-entry may carry a new
// name); the partner's seat is resolved as-is, created empty if the
// partner has not joined from their own device yet.
func (h *GameHandler) StartGame(c *gin.Context) {
	var req services.StartGameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.MySeatNumber == req.PartnerSeatNumber {
		respondError(c, services.ErrSameSeat)
		return
	}

	room, err := h.roomService.FindActiveRoomByCode(req.RoomCode)
	if err != nil {
		respondError(c, err)
		return
	}

	me, err := h.participantService.EnsureSeat(room, req.MySeatNumber)
	if err != nil {
		respondError(c, err)
		return
	}
	if me, err = h.participantService.Rename(me.ID, req.MyName); err != nil {
		respondError(c, err)
		return
	}

	partner, err := h.participantService.EnsureSeat(room, req.PartnerSeatNumber)
	if err != nil {
		respondError(c, err)
		return
	}

	session, err := h.sessionService.GetOrCreate(room.ID, me.ID, partner.ID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"session":             session,
		"user_id":             me.ID,
		"seat_number":         me.SeatNumber,
		"partner_seat_number": partner.SeatNumber,
		"questions":           services.Questions(),
	})
}

func (h *GameHandler) SubmitAnswers(c *gin.Context) {
	sessionID, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req services.SubmitAnswersRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.answerService.SubmitAnswers(sessionID, req.UserID, req.Answers); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "answers submitted"})
}

// GetResults is the polling target. Pending is a normal intermediate
// status, not a failure: the client keeps polling until both sides have
// answered everything.
func (h *GameHandler) GetResults(c *gin.Context) {
	sessionID, ok := parseID(c, "id")
	if !ok {
		return
	}
	userID, ok := parseID(c, "userId")
	if !ok {
		return
	}

	result, ready, err := h.resultService.ComputeResult(sessionID, userID)
	if err != nil {
		respondError(c, err)
		return
	}
	if !ready {
		c.JSON(http.StatusOK, gin.H{
			"status":  "pending",
			"message": "waiting for both partners to finish their answers",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "complete",
		"result": result,
	})
}
