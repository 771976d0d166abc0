// README: Session lifecycle handler (start/reset and history).
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"cityscope/internal/modules/booking"
)

type SessionHandler struct {
	store booking.SessionStore
	log   *zap.Logger
}

func NewSessionHandler(store booking.SessionStore, log *zap.Logger) *SessionHandler {
	if log == nil {
		log = zap.NewNop()
	}
	return &SessionHandler{store: store, log: log}
}

type sessionResp struct {
	SessionID     string `json:"session_id"`
	History       any    `json:"history"`
	ExtractedData any    `json:"extracted_data"`
}

// Start handles POST /api/sessions: a fresh session with the greeting
// transcript and all booking fields null.
func (h *SessionHandler) Start(c *gin.Context) {
	sess := booking.NewSession(newSessionID())
	if err := h.store.Put(c.Request.Context(), sess); err != nil {
		h.log.Error("store new session", zap.Error(err))
		writeError(c, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(c, http.StatusCreated, sessionResp{
		SessionID:     sess.ID,
		History:       sess.Transcript,
		ExtractedData: sess.Data,
	})
}

// Get handles GET /api/sessions/:id.
func (h *SessionHandler) Get(c *gin.Context) {
	id := c.Param("id")
	if !isValidID(id) {
		writeError(c, http.StatusBadRequest, "invalid session id")
		return
	}
	sess, err := h.store.Get(c.Request.Context(), id)
	if errors.Is(err, booking.ErrSessionNotFound) {
		writeError(c, http.StatusNotFound, "session not found")
		return
	}
	if err != nil {
		h.log.Error("load session", zap.String("session_id", id), zap.Error(err))
		writeError(c, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(c, http.StatusOK, sessionResp{
		SessionID:     sess.ID,
		History:       sess.Transcript,
		ExtractedData: sess.Data,
	})
}
