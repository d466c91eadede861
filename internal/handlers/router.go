package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/sankalan-edu/campus-service/internal/config"
	"github.com/sankalan-edu/campus-service/internal/models"
	"github.com/sankalan-edu/campus-service/internal/repositories"
	"github.com/sankalan-edu/campus-service/internal/services"
	"github.com/sankalan-edu/campus-service/internal/utils"
	"github.com/sankalan-edu/campus-service/internal/validator"
)

type HandlerManager struct {
	sessionHandler  *SessionHandler
	profileHandler  *ProfileHandler
	paperHandler    *PaperHandler
	materialHandler *MaterialHandler
	eventHandler    *EventHandler
	roomHandler     *RoomHandler
	quizHandler     *QuizHandler
	adminHandler    *AdminHandler
	authMiddleware  *CasdoorAuthMiddleware
	adminService    services.AdminService
}

func NewHandlerManager(
	serviceManager services.ServiceManager,
	validator *validator.Validator,
	logger utils.Logger,
	casdoorConfig config.CasdoorConfig,
	userRepo repositories.UserRepository,
) *HandlerManager {
	authMiddleware := NewCasdoorAuthMiddleware(casdoorConfig, userRepo, serviceManager.Profile(), logger)

	return &HandlerManager{
		sessionHandler:  NewSessionHandler(serviceManager.Session(), validator, logger),
		profileHandler:  NewProfileHandler(serviceManager.Profile(), validator, logger),
		paperHandler:    NewPaperHandler(serviceManager.Paper(), validator, logger),
		materialHandler: NewMaterialHandler(serviceManager.Material(), validator, logger),
		eventHandler:    NewEventHandler(serviceManager.Event(), validator, logger),
		roomHandler:     NewRoomHandler(serviceManager.Room(), serviceManager.Session(), validator, logger),
		quizHandler:     NewQuizHandler(serviceManager.Quiz(), validator, logger),
		adminHandler:    NewAdminHandler(serviceManager.Admin(), validator, logger),
		authMiddleware:  authMiddleware,
		adminService:    serviceManager.Admin(),
	}
}

// SetupRoutes sets up all API routes
func (hm *HandlerManager) SetupRoutes(router *gin.Engine) {
	v1 := router.Group("/api/v1")

	// Admin console login sits outside both auth schemes. Everything else
	// under /admin requires an admin session token, not a Casdoor token.
	v1.POST("/admin/login", hm.adminHandler.Login)

	admin := v1.Group("/admin")
	admin.Use(AdminAuthMiddleware(hm.adminService))
	{
		admin.GET("/stats", hm.adminHandler.GetStats)
		admin.GET("/stats/export", hm.adminHandler.ExportStats)
	}

	// End-user routes authenticate through Casdoor.
	authed := v1.Group("")
	authed.Use(hm.authMiddleware.AuthMiddleware())
	{
		// Session routes (the view router)
		session := authed.Group("/session")
		{
			session.GET("", hm.sessionHandler.GetSession)
			session.POST("/navigate", hm.sessionHandler.Navigate)
			session.POST("/resolve", hm.sessionHandler.Resolve)
			session.POST("/auth", hm.sessionHandler.StartAuth)
			session.POST("/onboarding", hm.sessionHandler.CompleteOnboarding)
			session.POST("/signout", hm.sessionHandler.SignOut)
		}

		// Profile routes
		profile := authed.Group("/profile")
		{
			profile.GET("", hm.profileHandler.GetProfile)
			profile.PUT("", hm.profileHandler.UpdateProfile)
			profile.PUT("/sound", hm.profileHandler.UpdateSoundSetting)
		}

		// Past paper routes
		papers := authed.Group("/papers")
		{
			papers.GET("", hm.paperHandler.ListPapers)
			papers.GET("/subjects", hm.paperHandler.ListSubjects)
			papers.GET("/:id", hm.paperHandler.GetPaper)
			papers.POST("/:id/view", hm.paperHandler.RecordView)
			papers.POST("/:id/download", hm.paperHandler.RecordDownload)

			// Catalog management - Admins only
			papers.POST("", hm.authMiddleware.RequireRoleMiddleware(models.RoleAdmin), hm.paperHandler.CreatePaper)
			papers.PUT("/:id", hm.authMiddleware.RequireRoleMiddleware(models.RoleAdmin), hm.paperHandler.UpdatePaper)
			papers.DELETE("/:id", hm.authMiddleware.RequireRoleMiddleware(models.RoleAdmin), hm.paperHandler.DeletePaper)
		}

		// Study material routes
		materials := authed.Group("/materials")
		{
			materials.GET("", hm.materialHandler.ListMaterials)
			materials.GET("/subjects", hm.materialHandler.ListSubjects)
			materials.GET("/:id", hm.materialHandler.GetMaterial)
			materials.POST("/:id/view", hm.materialHandler.RecordView)

			materials.POST("", hm.authMiddleware.RequireRoleMiddleware(models.RoleAdmin), hm.materialHandler.CreateMaterial)
			materials.PUT("/:id", hm.authMiddleware.RequireRoleMiddleware(models.RoleAdmin), hm.materialHandler.UpdateMaterial)
			materials.DELETE("/:id", hm.authMiddleware.RequireRoleMiddleware(models.RoleAdmin), hm.materialHandler.DeleteMaterial)
		}

		// Club event routes
		events := authed.Group("/events")
		{
			events.GET("", hm.eventHandler.ListEvents)

			events.POST("", hm.authMiddleware.RequireRoleMiddleware(models.RoleAdmin), hm.eventHandler.CreateEvent)
			events.DELETE("/:id", hm.authMiddleware.RequireRoleMiddleware(models.RoleAdmin), hm.eventHandler.DeleteEvent)
		}

		// Study room routes
		rooms := authed.Group("/rooms")
		{
			rooms.GET("", hm.roomHandler.ListRooms)
			rooms.POST("", hm.roomHandler.CreateRoom)
			rooms.POST("/leave", hm.roomHandler.LeaveRoom)
			rooms.GET("/:id", hm.roomHandler.GetRoom)
			rooms.POST("/:id/join", hm.roomHandler.JoinRoom)
			rooms.DELETE("/:id", hm.roomHandler.DeleteRoom)
		}

		// Quiz routes
		quiz := authed.Group("/quiz")
		{
			quiz.POST("/generate", hm.quizHandler.GenerateQuiz)
		}
	}

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "healthy",
			"service": "campus-service",
		})
	})
}
