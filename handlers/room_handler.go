package handlers

import (
	"net/http"
	"strconv"

	"partypair/services"

	"github.com/gin-gonic/gin"
)

type RoomHandler struct {
	roomService   *services.RoomService
	resultService *services.ResultService
}

func NewRoomHandler(roomService *services.RoomService, resultService *services.ResultService) *RoomHandler {
	return &RoomHandler{
		roomService:   roomService,
		resultService: resultService,
	}
}

type teamConfigRequest struct {
	Teams map[string][]int `json:"teams" binding:"required"`
}

type partnerConfigRequest struct {
	Partners map[string]int `json:"partners" binding:"required"`
}

func (h *RoomHandler) CreateRoom(c *gin.Context) {
	var req services.CreateRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	room, err := h.roomService.CreateRoom(&req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, room)
}

func (h *RoomHandler) ListRooms(c *gin.Context) {
	rooms, err := h.roomService.ListActiveRooms()
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"rooms": rooms})
}

// ValidateRoom is the public code check a participant's device runs before
// showing the join form. Expired rooms are not joinable even before the
// sweep has retired them.
func (h *RoomHandler) ValidateRoom(c *gin.Context) {
	code := c.Param("code")
	if code == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "room code required"})
		return
	}

	room, err := h.roomService.FindActiveRoomByCode(code)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, room)
}

func (h *RoomHandler) DeactivateRoom(c *gin.Context) {
	roomID, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := h.roomService.Deactivate(roomID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "room deactivated"})
}

func (h *RoomHandler) SetTeams(c *gin.Context) {
	roomID, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req teamConfigRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	room, err := h.roomService.SetTeamConfig(roomID, req.Teams)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, room)
}

func (h *RoomHandler) SetPartners(c *gin.Context) {
	roomID, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req partnerConfigRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	room, err := h.roomService.SetPartnerConfig(roomID, req.Partners)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, room)
}

func (h *RoomHandler) Summary(c *gin.Context) {
	roomID, ok := parseID(c, "id")
	if !ok {
		return
	}

	rows, err := h.resultService.Summarize(roomID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"rows": rows})
}

func parseID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name})
		return 0, false
	}
	return uint(id), true
}
