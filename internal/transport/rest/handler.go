package rest

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"medportal/config"
	"medportal/internal/service"
)

type Handler struct {
	services *service.Services
	logger   *zap.Logger
	config   *config.Config
}

func NewHandler(services *service.Services, logger *zap.Logger, config *config.Config) *Handler {
	return &Handler{
		services: services,
		logger:   logger,
		config:   config,
	}
}

func (h *Handler) InitRoutes(router *gin.Engine) {
	router.Use(h.loggerMiddleware())

	router.Use(h.errorMiddleware())

	router.Use(h.corsMiddleware())

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := router.Group("/api/v1")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/register", h.register)
			auth.POST("/login", h.login)
			auth.POST("/refresh", h.refreshTokens)
			auth.POST("/logout", h.logout)
		}

		users := api.Group("/users")
		users.Use(h.authMiddleware())
		{
			users.GET("/me", h.getCurrentUser)
			users.GET("/:id", h.getUserByID)
			users.PUT("/:id", h.updateUser)
			users.PUT("/:id/password", h.updatePassword)

			admin := users.Group("/")
			admin.Use(h.adminMiddleware())
			{
				admin.POST("/", h.createUser)
				admin.GET("/", h.getUsers)
				admin.DELETE("/:id", h.deleteUser)
			}
		}

		staff := api.Group("/staff")
		{
			staff.GET("/", h.getStaffList)
			staff.GET("/:id", h.getStaffByID)

			admin := staff.Group("/", h.authMiddleware(), h.adminMiddleware())
			{
				admin.POST("/", h.createStaff)
				admin.PUT("/:id", h.updateStaff)
				admin.DELETE("/:id", h.deleteStaff)
			}
		}

		services := api.Group("/services")
		{
			services.GET("/", h.getClinicServices)
			services.GET("/:id", h.getClinicServiceByID)

			admin := services.Group("/", h.authMiddleware(), h.adminMiddleware())
			{
				admin.POST("/", h.createClinicService)
				admin.PUT("/:id", h.updateClinicService)
				admin.DELETE("/:id", h.deleteClinicService)
			}
		}

		h.initScheduleRoutes(api)

		appointments := api.Group("/appointments")
		appointments.Use(h.authMiddleware())
		{
			appointments.POST("/", h.createAppointment)
			appointments.GET("/:id", h.getAppointmentByID)
			appointments.GET("/", h.getAppointments)
			appointments.PATCH("/:id/status", h.changeAppointmentStatus)

			appointments.GET("/:id/attachments", h.getAppointmentAttachments)

			staffOnly := appointments.Group("/", h.staffMiddleware())
			{
				staffOnly.POST("/walkin", h.createWalkInAppointment)
				staffOnly.POST("/:id/attachments", h.uploadAttachment)
			}
		}

		attachments := api.Group("/attachments")
		attachments.Use(h.authMiddleware(), h.staffMiddleware())
		{
			attachments.DELETE("/:id", h.deleteAttachment)
		}
	}
}

func (h *Handler) initScheduleRoutes(api *gin.RouterGroup) {
	schedules := api.Group("/schedules")
	{
		schedules.GET("/free-slots", h.getFreeSlots)

		auth := schedules.Group("/", h.authMiddleware())
		{
			auth.GET("/:staffId/week", h.getShiftWeek)

			admin := auth.Group("/", h.adminMiddleware())
			{
				admin.PUT("/:staffId/week", h.replaceShiftWeek)
			}
		}
	}
}
