// README: Experience suggestion handler.
package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"cityscope/internal/modules/experience"
)

type ExperienceHandler struct {
	svc *experience.Service
	log *zap.Logger
}

// NewExperienceHandler accepts a nil service; suggestions then report 503.
func NewExperienceHandler(svc *experience.Service, log *zap.Logger) *ExperienceHandler {
	if log == nil {
		log = zap.NewNop()
	}
	return &ExperienceHandler{svc: svc, log: log}
}

// Suggest handles GET /api/experiences?city=&category=.
func (h *ExperienceHandler) Suggest(c *gin.Context) {
	if h.svc == nil {
		writeError(c, http.StatusServiceUnavailable, "experience suggestions not configured")
		return
	}
	city := strings.TrimSpace(c.Query("city"))
	if city == "" {
		writeError(c, http.StatusBadRequest, "missing city")
		return
	}
	category := strings.TrimSpace(c.Query("category"))

	results, err := h.svc.Suggest(c.Request.Context(), city, category)
	if err != nil {
		h.log.Error("suggest experiences", zap.String("city", city), zap.Error(err))
		writeError(c, http.StatusBadGateway, "suggestion lookup failed")
		return
	}
	if results == nil {
		results = []experience.Suggestion{}
	}
	writeJSON(c, http.StatusOK, gin.H{"city": city, "suggestions": results})
}
