package routes

import (
	"github.com/Govind-619/BookMall/controllers"
	"github.com/Govind-619/BookMall/middleware"
	"github.com/Govind-619/BookMall/services"
	"github.com/gin-gonic/gin"
)

// initStaffRoutes registers the bookstore staff routes
func initStaffRoutes(router *gin.RouterGroup) {
	staff := router.Group("/staff")
	staff.Use(middleware.AuthMiddleware(), middleware.RequireRole(services.RoleStaff))
	{
		staff.POST("/bookstore", controllers.CreateBookstore)
		staff.GET("/bookstore", controllers.GetBookstore)

		// Orders
		staff.GET("/orders", controllers.ListStoreOrders)
		staff.PATCH("/orders/:id/status", controllers.UpdateOrderStatus)

		// Catalog
		staff.GET("/listings", controllers.ListStoreListings)
		staff.POST("/books", controllers.CreateBook)
		staff.PUT("/listings/:id", controllers.UpdateListing)
		staff.DELETE("/listings/:id", controllers.DeleteListing)

		// Coupons
		staff.GET("/coupons", controllers.ListStaffCoupons)
		staff.POST("/coupons", controllers.CreateStaffCoupon)
		staff.DELETE("/coupons/:id", controllers.DeleteStaffCoupon)

		staff.GET("/statistics", controllers.GetStatistics)
		staff.GET("/statistics/export", controllers.ExportStatistics)
	}
}
