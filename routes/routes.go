package routes

import (
	"github.com/Govind-619/BookMall/config"
	"github.com/Govind-619/BookMall/utils"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
)

// SetupRouter initializes and returns the Gin router with all routes
func SetupRouter(cfg *config.Config) *gin.Engine {
	router := gin.New()
	router.Use(utils.RequestIDMiddleware())
	router.Use(utils.LoggerMiddleware())
	router.Use(utils.RecoveryMiddleware())
	router.Use(utils.CORSMiddleware())
	router.Use(utils.SecurityHeadersMiddleware())

	// Session carrying the login token for browser clients
	store := cookie.NewStore([]byte(cfg.SessionSecret))
	store.Options(sessions.Options{
		MaxAge:   int(cfg.JWTExpiry.Seconds()),
		Path:     "/",
		Secure:   cfg.Env == "production",
		HttpOnly: true,
	})
	router.Use(sessions.Sessions("bookmall", store))

	// API version group
	api := router.Group("/" + utils.APIVersion)
	{
		initUserRoutes(api)
		initStaffRoutes(api)
		initAdminRoutes(api)
	}

	return router
}
