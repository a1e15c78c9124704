package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/yoockh/chatrel/config"
	"github.com/yoockh/chatrel/internal/api/handlers"
	"github.com/yoockh/chatrel/internal/api/middleware"
	"github.com/yoockh/chatrel/internal/api/routes"
	"github.com/yoockh/chatrel/internal/logger"
	"github.com/yoockh/chatrel/internal/repositories/memory"
	"github.com/yoockh/chatrel/internal/services"
	"github.com/yoockh/chatrel/internal/workers"
)

func main() {
	_ = godotenv.Load()
	log := logger.New()

	cfg, err := config.Load()
	if err != nil {
		log.WithError(err).Fatal("config")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	provider, err := config.InitLLM(ctx, cfg)
	if err != nil {
		log.WithError(err).Fatal("LLM init error")
	}
	defer provider.Close()
	log.WithField("provider", cfg.LLMProvider).Info("LLM provider ready")

	repo := memory.NewSessionRepo()
	janitor := &workers.SessionJanitor{Sessions: repo, TTL: cfg.SessionTTL, Logger: log}
	if err := janitor.Start(ctx); err != nil {
		log.WithError(err).Fatal("session janitor")
	}

	sessionSvc := services.NewSessionService(repo)
	analysisSvc := services.NewAnalysisService(repo, provider, log)
	chatSvc := services.NewChatService(repo, provider, log)

	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLogger(log))
	routes.RegisterRoutes(r, routes.Deps{
		Session:      handlers.NewSessionHandler(sessionSvc),
		Analysis:     handlers.NewAnalysisHandler(analysisSvc),
		Conversation: handlers.NewConversationHandler(chatSvc),
		WS:           handlers.NewWSHandler(sessionSvc, chatSvc, log),
		Limiter:      middleware.NewRateLimiter(cfg.RateLimitRPM, cfg.RateLimitBurst),
	})
	r.MaxMultipartMemory = handlers.MaxUploadBytes

	srv := &http.Server{Addr: ":" + cfg.Port, Handler: r}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	log.WithField("port", cfg.Port).Info("listening")
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.WithError(err).Fatal("server")
	}
}
