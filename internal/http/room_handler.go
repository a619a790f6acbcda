package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/example/reunionpro/internal/application"
)

type roomService interface {
	CreateRoom(ctx context.Context, params application.CreateRoomParams) (application.ProvisionedRoom, error)
	MintToken(ctx context.Context, params application.MintTokenParams) (json.RawMessage, error)
	ListRecordings(ctx context.Context, roomName string) (json.RawMessage, error)
}

type RoomHandler struct {
	service   roomService
	responder responder
	logger    *slog.Logger
}

func NewRoomHandler(service roomService, logger *slog.Logger) *RoomHandler {
	base := defaultLogger(logger)
	return &RoomHandler{service: service, responder: newResponder(base), logger: base}
}

func (h *RoomHandler) log(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	if h == nil {
		return slog.Default()
	}
	return handlerLogger(ctx, h.logger, "RoomHandler", operation, attrs...)
}

// Create provisions a provider room and returns its URL and name verbatim,
// echoing the caller's title.
func (h *RoomHandler) Create(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	var req createRoomRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log(r.Context(), "Create", "error_kind", "bad_request").ErrorContext(r.Context(), "failed to decode room request", "error", err)
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	logger := h.log(r.Context(), "Create", "room_name", req.RoomName)

	room, err := h.service.CreateRoom(r.Context(), application.CreateRoomParams{
		RoomName: req.RoomName,
		Title:    req.Title,
	})
	if err != nil {
		logger.ErrorContext(r.Context(), "room creation failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.With("room_url", room.URL).InfoContext(r.Context(), "room created")
	h.responder.writeJSON(r.Context(), w, http.StatusOK, createRoomResponse{
		URL:   room.URL,
		Name:  room.Name,
		Title: room.Title,
	})
}

// MintToken forwards a token-minting request and relays the provider's
// token payload verbatim.
func (h *RoomHandler) MintToken(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	var req mintTokenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log(r.Context(), "MintToken", "error_kind", "bad_request").ErrorContext(r.Context(), "failed to decode token request", "error", err)
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	logger := h.log(r.Context(), "MintToken", "room_name", req.RoomName, "is_owner", req.IsOwner)

	payload, err := h.service.MintToken(r.Context(), application.MintTokenParams{
		RoomName: req.RoomName,
		UserName: req.UserName,
		IsOwner:  req.IsOwner,
	})
	if err != nil {
		logger.ErrorContext(r.Context(), "token minting failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.InfoContext(r.Context(), "token minted")
	h.responder.writeRaw(r.Context(), w, http.StatusOK, payload)
}

// ListRecordings relays the provider's recording list for a room.
func (h *RoomHandler) ListRecordings(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	roomName, ok := RoomNameFromContext(r.Context())
	if !ok || strings.TrimSpace(roomName) == "" {
		h.log(r.Context(), "ListRecordings", "error_kind", "bad_request").ErrorContext(r.Context(), "missing room name for recordings")
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errMissingRoom)
		return
	}

	logger := h.log(r.Context(), "ListRecordings", "room_name", roomName)

	payload, err := h.service.ListRecordings(r.Context(), roomName)
	if err != nil {
		logger.ErrorContext(r.Context(), "recording list failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.InfoContext(r.Context(), "recordings listed")
	h.responder.writeRaw(r.Context(), w, http.StatusOK, payload)
}

type createRoomRequest struct {
	RoomName string `json:"roomName"`
	Title    string `json:"title"`
}

type createRoomResponse struct {
	URL   string `json:"url"`
	Name  string `json:"name"`
	Title string `json:"title"`
}

type mintTokenRequest struct {
	RoomName string `json:"roomName"`
	UserName string `json:"userName"`
	IsOwner  bool   `json:"isOwner"`
}
