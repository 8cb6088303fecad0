package routes

import (
	"github.com/Govind-619/BookMall/controllers"
	"github.com/Govind-619/BookMall/middleware"
	"github.com/Govind-619/BookMall/services"
	"github.com/gin-gonic/gin"
)

// initAdminRoutes registers the platform administration routes
func initAdminRoutes(router *gin.RouterGroup) {
	admin := router.Group("/admin")
	admin.Use(middleware.AuthMiddleware(), middleware.RequireRole(services.RoleAdmin))
	{
		// User management
		admin.GET("/users", controllers.ListUsers)
		admin.PUT("/customers/:account", controllers.UpdateCustomer)
		admin.DELETE("/customers/:account", controllers.DeleteCustomer)
		admin.DELETE("/staff/:account", controllers.DeleteStaff)

		// Coupon management
		admin.GET("/coupons", controllers.ListAdminCoupons)
		admin.POST("/coupons", controllers.CreateAdminCoupon)
		admin.DELETE("/coupons/:id", controllers.DeleteAdminCoupon)
	}
}
