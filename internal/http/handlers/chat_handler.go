// README: Chat handler; one booking-conversation turn per request.
package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"cityscope/internal/ai"
	"cityscope/internal/modules/booking"
)

// turnTimeout bounds the single LLM round trip of a turn. Surfaced to the
// user as a timeout apology when exceeded.
const turnTimeout = 30 * time.Second

type ChatHandler struct {
	svc   *booking.Service
	store booking.SessionStore
	log   *zap.Logger
}

func NewChatHandler(svc *booking.Service, store booking.SessionStore, log *zap.Logger) *ChatHandler {
	if log == nil {
		log = zap.NewNop()
	}
	return &ChatHandler{svc: svc, store: store, log: log}
}

type chatReq struct {
	SessionID string `json:"session_id"`
	Message   string `json:"message"`
}

type chatResp struct {
	SessionID     string `json:"session_id"`
	Reply         string `json:"reply"`
	ExtractedData any    `json:"extracted_data"`
	RedirectURL   string `json:"redirect_url,omitempty"`
}

// Chat handles POST /api/chat.
func (h *ChatHandler) Chat(c *gin.Context) {
	var req chatReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	req.SessionID = strings.TrimSpace(req.SessionID)
	req.Message = strings.TrimSpace(req.Message)
	if req.Message == "" {
		writeError(c, http.StatusBadRequest, "no message provided")
		return
	}
	if !isValidID(req.SessionID) {
		writeError(c, http.StatusBadRequest, "invalid session_id")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), turnTimeout)
	defer cancel()

	sess, err := h.store.Get(ctx, req.SessionID)
	if errors.Is(err, booking.ErrSessionNotFound) {
		// Expired or never started; begin a fresh conversation under the
		// caller's ID rather than rejecting the turn.
		sess = booking.NewSession(req.SessionID)
	} else if err != nil {
		h.log.Error("load session", zap.String("session_id", req.SessionID), zap.Error(err))
		writeError(c, http.StatusInternalServerError, "internal error")
		return
	}

	outcome, err := h.svc.ProcessTurn(ctx, sess, req.Message)
	if err != nil {
		apology, status := apologyFor(err)
		h.log.Error("process turn",
			zap.String("session_id", sess.ID),
			zap.Int("status", status),
			zap.Error(err))
		// Keep continuity: the apology becomes part of the transcript and the
		// session (still holding the user's turn) is saved regardless.
		h.svc.RecordFailure(sess, apology)
		h.saveSession(ctx, sess)
		writeJSON(c, status, chatResp{SessionID: sess.ID, Reply: apology, ExtractedData: sess.Data})
		return
	}

	h.saveSession(ctx, sess)
	writeJSON(c, http.StatusOK, chatResp{
		SessionID:     sess.ID,
		Reply:         outcome.Reply,
		ExtractedData: outcome.Data,
		RedirectURL:   outcome.RedirectURL,
	})
}

func (h *ChatHandler) saveSession(ctx context.Context, sess *booking.Session) {
	if err := h.store.Put(ctx, sess); err != nil {
		h.log.Error("save session", zap.String("session_id", sess.ID), zap.Error(err))
	}
}

// apologyFor maps each gateway error kind to the user-facing apology and the
// response status. The error itself is never shown to the user.
func apologyFor(err error) (string, int) {
	var upstream *ai.UpstreamError
	switch {
	case errors.Is(err, ai.ErrNotConfigured):
		return "AI service is currently unavailable (configuration error). Please try again later.", http.StatusServiceUnavailable
	case errors.Is(err, ai.ErrTimeout):
		return "Sorry, the request to the AI service timed out. Please try again.", http.StatusServiceUnavailable
	case errors.Is(err, ai.ErrConnection):
		return "Sorry, I couldn't connect to the AI service. Please try again later.", http.StatusServiceUnavailable
	case errors.As(err, &upstream):
		return "Sorry, something went wrong on the AI service's side: " + upstream.Cause() + ". Please try again shortly.", http.StatusBadGateway
	case errors.Is(err, ai.ErrMalformed):
		return "I'm having a little trouble processing that. Could you try rephrasing?", http.StatusBadGateway
	default:
		return "An unexpected internal error occurred. Please try again.", http.StatusInternalServerError
	}
}
