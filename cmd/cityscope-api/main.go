// README: Entry point; loads config, wires the gateway and services, starts the HTTP server.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"cityscope/internal/ai"
	"cityscope/internal/config"
	httptransport "cityscope/internal/http"
	"cityscope/internal/infra"
	"cityscope/internal/logging"
	"cityscope/internal/modules/booking"
	"cityscope/internal/modules/experience"
)

func main() {
	cfg := config.Load()

	logger := logging.New(cfg.IsProduction())
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	provider := buildProvider(ctx, cfg, logger)

	redisClient := infra.NewRedis(cfg.RedisAddr, cfg.RedisPassword)
	sessionStore := booking.NewRedisStore(redisClient)

	var archive *booking.Archive
	if cfg.DBDSN != "" {
		dbPool, err := infra.NewDB(ctx, cfg.DBDSN)
		if err != nil {
			logger.Fatal("connect postgres", zap.Error(err))
		}
		defer dbPool.Close()
		archive = booking.NewArchive(dbPool)
	} else {
		logger.Info("no database configured; completed bookings will not be archived")
	}

	var experienceSvc *experience.Service
	if cfg.GoogleMapsAPIKey != "" {
		svc, err := experience.NewService(cfg.GoogleMapsAPIKey)
		if err != nil {
			logger.Fatal("init experience service", zap.Error(err))
		}
		experienceSvc = svc
	}

	bookingSvc := booking.NewService(provider, cfg.BookingPageURL, archive, logger)

	router := httptransport.NewRouter(httptransport.RouterDeps{
		Booking:     bookingSvc,
		Sessions:    sessionStore,
		Experiences: experienceSvc,
		Logger:      logger,
	})

	server := &http.Server{Addr: cfg.HTTPAddr, Handler: router}

	go func() {
		<-ctx.Done()
		_ = server.Shutdown(context.Background())
	}()

	logger.Info("listening", zap.String("addr", cfg.HTTPAddr))
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatal("serve", zap.Error(err))
	}
}

// buildProvider picks the gateway backend. A missing credential degrades to
// the unconfigured provider: the server still runs and every turn surfaces a
// configuration apology until the key is supplied.
func buildProvider(ctx context.Context, cfg config.Config, logger *zap.Logger) ai.LLMProvider {
	switch cfg.AIProvider {
	case "gemini":
		p, err := ai.NewGeminiProvider(ctx, cfg.GeminiAPIKey)
		if err != nil {
			logger.Error("gemini provider unavailable", zap.Error(err))
			return ai.Unconfigured()
		}
		return p
	default:
		p, err := ai.NewTogetherProvider(cfg.TogetherAPIKey, cfg.TogetherModel)
		if err != nil {
			logger.Error("together provider unavailable", zap.Error(err))
			return ai.Unconfigured()
		}
		return p
	}
}
