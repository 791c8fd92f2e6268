package router

import (
	"context"
	"strings"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
	"github.com/hertz-contrib/websocket"
	"github.com/lmxriel/petcare/internal/config"
	"github.com/lmxriel/petcare/internal/gateway"
	"github.com/lmxriel/petcare/internal/handler"
	"github.com/lmxriel/petcare/internal/middleware"
)

// SetupRouter sets up all routes
func SetupRouter(h *server.Hertz, handlers *Handlers, wsServer *gateway.WsServer, auth middleware.TokenValidator) {
	cfg := config.GlobalConfig
	jwtAuth := middleware.JWTAuth(auth)

	// CORS middleware
	h.Use(middleware.CORS())

	// Health check
	h.GET("/health", func(ctx context.Context, c *app.RequestContext) {
		c.JSON(consts.StatusOK, map[string]string{"status": "ok"})
	})

	// Account routes
	userGroup := h.Group("/users")
	{
		userGroup.POST("/register", handlers.Auth.Register)
		userGroup.POST("/login", handlers.Auth.Login)
		userGroup.POST("/otp/register", handlers.Auth.RequestRegisterOTP)
		userGroup.POST("/otp/password", handlers.Auth.RequestPasswordOTP)
		userGroup.POST("/resetPassword", handlers.Auth.ResetPassword)

		userGroup.POST("/logout", jwtAuth, handlers.Auth.Logout)
		userGroup.GET("/me", jwtAuth, handlers.User.Me)
		userGroup.GET("/notification", jwtAuth, handlers.User.Notifications)
		userGroup.POST("/booking", jwtAuth, handlers.Appointment.Book)
	}

	// Pet owner workflow routes
	processGroup := h.Group("/process", jwtAuth)
	{
		processGroup.PUT("/updateProfile", handlers.User.UpdateProfile)
		processGroup.POST("/adoption", handlers.Adoption.Apply)
		processGroup.GET("/adoption/me", handlers.Adoption.ListMine)
		processGroup.GET("/appointments/availability", handlers.Appointment.Availability)
		processGroup.GET("/appointments/me", handlers.Appointment.ListMine)
		processGroup.GET("/getAllAppointment", middleware.AdminOnly(), handlers.Appointment.ListAll)
		processGroup.GET("/getAllAdoption", middleware.AdminOnly(), handlers.Adoption.ListAll)
	}

	// Catalog routes; mutations are staff only
	petGroup := h.Group("/pets", jwtAuth)
	{
		petGroup.GET("/getAllPets", handlers.Pet.ListPets)
		petGroup.GET("/getPet/:id", handlers.Pet.GetPet)
		petGroup.POST("/addPet", middleware.AdminOnly(), handlers.Pet.AddPet)
		petGroup.PUT("/updatePet/:id", middleware.AdminOnly(), handlers.Pet.UpdatePet)
		petGroup.DELETE("/deletePet/:id", middleware.AdminOnly(), handlers.Pet.DeletePet)
	}

	// Review routes (staff only)
	adoptionGroup := h.Group("/adoption", jwtAuth, middleware.AdminOnly())
	{
		adoptionGroup.PUT("/:id/adoptionApproved", handlers.Adoption.Approve)
		adoptionGroup.PUT("/:id/adoptionRejected", handlers.Adoption.Reject)
	}

	appointmentGroup := h.Group("/appointment", jwtAuth, middleware.AdminOnly())
	{
		appointmentGroup.PUT("/:id/approved", handlers.Appointment.Approve)
		appointmentGroup.PUT("/:id/rejected", handlers.Appointment.Reject)
	}

	// Conversation routes
	convGroup := h.Group("/conversations", jwtAuth)
	{
		convGroup.GET("/me", handlers.Conversation.GetMine)
		convGroup.GET("", middleware.AdminOnly(), handlers.Conversation.ListAll)
		convGroup.GET("/:id/messages", handlers.Conversation.ListMessages)
		convGroup.POST("/:id/messages", handlers.Conversation.SendMessage)
		convGroup.POST("/:id/read", handlers.Conversation.MarkRead)
	}

	// Dashboard and report routes (staff only)
	dashboardGroup := h.Group("/dashboard", jwtAuth, middleware.AdminOnly())
	{
		dashboardGroup.GET("", handlers.Report.Dashboard)
		dashboardGroup.GET("/user/count", handlers.Report.UserCount)
		dashboardGroup.GET("/adoption/count", handlers.Report.AdoptionCounts)
		dashboardGroup.GET("/appointment/count", handlers.Report.AppointmentCounts)
	}

	reportGroup := h.Group("/report", jwtAuth, middleware.AdminOnly())
	{
		reportGroup.GET("/adoption", handlers.Report.AdoptionReport)
		reportGroup.GET("/appointment", handlers.Report.AppointmentReport)
	}

	// WebSocket route using hertz-contrib/websocket with proper origin validation
	allowedOrigins := cfg.Server.AllowedOrigins
	upgrader := &websocket.HertzUpgrader{
		CheckOrigin: func(ctx *app.RequestContext) bool {
			return checkOrigin(ctx, allowedOrigins)
		},
	}

	h.GET("/ws", func(ctx context.Context, c *app.RequestContext) {
		wsServer.HandleHertzConnection(ctx, c, upgrader)
	})
}

// checkOrigin validates the Origin header against allowed origins
func checkOrigin(ctx *app.RequestContext, allowedOrigins []string) bool {
	origin := string(ctx.Request.Header.Peek("Origin"))

	// If no origin header, allow (same-origin request or non-browser client)
	if origin == "" {
		return true
	}

	// If no allowed origins configured, reject all cross-origin requests in production
	if len(allowedOrigins) == 0 {
		return false
	}

	for _, allowed := range allowedOrigins {
		if allowed == "*" {
			// Wildcard - allow all (only use in development!)
			return true
		}
		if strings.EqualFold(origin, allowed) {
			return true
		}
	}

	return false
}

// Handlers holds all HTTP handlers
type Handlers struct {
	Auth         *handler.AuthHandler
	User         *handler.UserHandler
	Pet          *handler.PetHandler
	Adoption     *handler.AdoptionHandler
	Appointment  *handler.AppointmentHandler
	Conversation *handler.ConversationHandler
	Report       *handler.ReportHandler
}
