// README: HTTP router registration.
package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"cityscope/internal/http/handlers"
	"cityscope/internal/http/middleware"
	"cityscope/internal/modules/booking"
	"cityscope/internal/modules/experience"
)

type RouterDeps struct {
	Booking     *booking.Service
	Sessions    booking.SessionStore
	Experiences *experience.Service // nil when no maps key is configured
	Logger      *zap.Logger
}

func NewRouter(deps RouterDeps) *gin.Engine {
	r := gin.New()
	r.Use(middleware.Logging(deps.Logger), middleware.Recovery())

	chatHandler := handlers.NewChatHandler(deps.Booking, deps.Sessions, deps.Logger)
	r.POST("/api/chat", chatHandler.Chat)

	sessionHandler := handlers.NewSessionHandler(deps.Sessions, deps.Logger)
	r.POST("/api/sessions", sessionHandler.Start)
	r.GET("/api/sessions/:id", sessionHandler.Get)

	experienceHandler := handlers.NewExperienceHandler(deps.Experiences, deps.Logger)
	r.GET("/api/experiences", experienceHandler.Suggest)

	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})

	return r
}
