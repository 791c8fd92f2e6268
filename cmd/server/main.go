package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/lmxriel/petcare/internal/config"
	"github.com/lmxriel/petcare/internal/gateway"
	"github.com/lmxriel/petcare/internal/handler"
	"github.com/lmxriel/petcare/internal/repository"
	"github.com/lmxriel/petcare/internal/router"
	"github.com/lmxriel/petcare/internal/service"
	"github.com/lmxriel/petcare/pkg/constant"
	"github.com/lmxriel/petcare/pkg/idgen"
	"github.com/mbeoliero/kit/log"
)

func main() {
	ctx := context.TODO()

	// Load configuration
	cfg, err := config.Load("config/config.yaml")
	if err != nil {
		log.CtxError(ctx, "failed to load config: %v", err)
		panic(err)
	}

	log.CtxInfo(ctx, "config loaded: mode=%s", cfg.Server.Mode)

	// Initialize Redis key prefix
	constant.InitRedisKeyPrefix(cfg.Redis.KeyPrefix)
	log.CtxInfo(ctx, "redis key prefix: %s", constant.GetRedisKeyPrefix())

	// Initialize repositories
	repos, err := repository.NewRepositories(cfg)
	if err != nil {
		log.CtxError(ctx, "failed to initialize repositories: %v", err)
		panic(err)
	}
	defer repos.Close()

	// Check database connection
	if err := repos.CheckConnection(ctx); err != nil {
		log.CtxError(ctx, "database connection check failed: %v", err)
		panic(err)
	}
	log.CtxInfo(ctx, "database connection established")

	// Initialize services
	authService := service.NewAuthService(repos.User, cfg, repos.Redis)
	petService := service.NewPetService(repos.Pet)
	adoptionService := service.NewAdoptionService(repos)
	appointmentService := service.NewAppointmentService(repos, cfg)
	convService := service.NewConversationService(repos)

	idGen, err := idgen.GetDefaultGenerator()
	if err != nil {
		log.CtxError(ctx, "failed to initialize id generator: %v", err)
		panic(err)
	}
	msgService := service.NewMessageService(repos, convService, idGen)
	reportService := service.NewReportService(repos)

	// Initialize WebSocket server
	wsServer := gateway.NewWsServer(cfg, repos.Redis, convService)

	// Set event pusher for message service
	msgService.SetPusher(wsServer)

	// Start WebSocket server
	wsServer.Run(ctx)
	log.CtxInfo(ctx, "websocket server started")

	// Initialize handlers
	handlers := &router.Handlers{
		Auth:         handler.NewAuthHandler(authService),
		User:         handler.NewUserHandler(authService, adoptionService, appointmentService),
		Pet:          handler.NewPetHandler(petService),
		Adoption:     handler.NewAdoptionHandler(adoptionService),
		Appointment:  handler.NewAppointmentHandler(appointmentService),
		Conversation: handler.NewConversationHandler(convService, msgService),
		Report:       handler.NewReportHandler(reportService),
	}

	// Create Hertz server
	h := server.Default(
		server.WithHostPorts(fmt.Sprintf(":%d", cfg.Server.HTTPPort)),
	)

	// Setup routes
	router.SetupRouter(h, handlers, wsServer, authService)

	log.CtxInfo(ctx, "server starting on port %d", cfg.Server.HTTPPort)

	// Start server in goroutine
	go func() {
		h.Spin()
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.CtxInfo(ctx, "shutting down server...")

	// Graceful shutdown
	if err := h.Shutdown(ctx); err != nil {
		log.CtxError(ctx, "server shutdown error: %v", err)
	}

	log.CtxInfo(ctx, "server stopped")
}
