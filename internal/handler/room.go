package handler

import (
	"log/slog"
	"net/http"

	dataroomSvc "dataroom/internal/domain/services/dataroom"
	"dataroom/internal/httputil"
)

// RoomHandler handles data room HTTP requests
type RoomHandler struct {
	roomService dataroomSvc.RoomService
	logger      *slog.Logger
}

// NewRoomHandler creates a new room handler
func NewRoomHandler(roomService dataroomSvc.RoomService, logger *slog.Logger) *RoomHandler {
	return &RoomHandler{
		roomService: roomService,
		logger:      logger,
	}
}

type updateRoomBody struct {
	Name        *string                 `json:"name"`
	Description httputil.OptionalString `json:"description"`
}

// ListRooms lists the caller's rooms
// GET /api/datarooms
func (h *RoomHandler) ListRooms(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	rooms, err := h.roomService.ListRooms(r.Context(), userID)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, map[string]any{"datarooms": rooms})
}

// CreateRoom creates a room
// POST /api/datarooms
func (h *RoomHandler) CreateRoom(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	var req dataroomSvc.CreateRoomRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	room, err := h.roomService.CreateRoom(r.Context(), userID, &req)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, map[string]any{"dataroom": room})
}

// GetRoom returns one room with stats
// GET /api/datarooms/{id}
func (h *RoomHandler) GetRoom(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	room, err := h.roomService.GetRoom(r.Context(), userID, r.PathValue("id"))
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, map[string]any{"dataroom": room})
}

// UpdateRoom renames a room or changes its description
// PATCH /api/datarooms/{id}
func (h *RoomHandler) UpdateRoom(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	var body updateRoomBody
	if err := httputil.ParseJSON(w, r, &body); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	room, err := h.roomService.UpdateRoom(r.Context(), userID, r.PathValue("id"), &dataroomSvc.UpdateRoomRequest{
		Name:        body.Name,
		Description: toOptional(body.Description),
	})
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, map[string]any{"dataroom": room})
}

// DeleteRoom deletes a room and everything in it
// DELETE /api/datarooms/{id}
func (h *RoomHandler) DeleteRoom(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	if err := h.roomService.DeleteRoom(r.Context(), userID, r.PathValue("id")); err != nil {
		handleError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, message{Message: "Dataroom deleted successfully"})
}

// GetStructure returns the room's full folder tree
// GET /api/datarooms/{id}/structure
func (h *RoomHandler) GetStructure(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	structure, err := h.roomService.GetStructure(r.Context(), userID, r.PathValue("id"))
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, structure)
}
