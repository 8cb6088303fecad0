package routes

import (
	"github.com/Govind-619/BookMall/controllers"
	"github.com/Govind-619/BookMall/middleware"
	"github.com/Govind-619/BookMall/services"
	"github.com/gin-gonic/gin"
)

// initUserRoutes registers the public routes and the customer routes
func initUserRoutes(router *gin.RouterGroup) {
	auth := router.Group("/auth")
	{
		auth.POST("/register", controllers.Register)
		auth.POST("/login", controllers.Login)
		auth.POST("/logout", controllers.Logout)
	}

	books := router.Group("/books")
	{
		books.GET("", controllers.ListBooks)
		books.GET("/categories", controllers.ListCategories)
		books.GET("/new", controllers.NewArrivals)
		books.GET("/:id", controllers.GetBookDetails)
	}

	customer := router.Group("/customer")
	customer.Use(middleware.AuthMiddleware(), middleware.RequireRole(services.RoleCustomer))
	{
		// Cart
		customer.GET("/cart", controllers.GetCart)
		customer.GET("/cart/count", controllers.GetCartCount)
		customer.POST("/cart/items", controllers.AddToCart)
		customer.PUT("/cart/items/:id", controllers.UpdateCartItem)
		customer.DELETE("/cart/items/:id", controllers.RemoveCartItem)

		customer.POST("/checkout", controllers.Checkout)

		// Orders
		customer.GET("/orders", controllers.ListCustomerOrders)
		customer.GET("/orders/:id", controllers.GetCustomerOrder)
		customer.GET("/orders/:id/invoice", controllers.DownloadInvoice)

		customer.GET("/profile", controllers.GetProfile)
		customer.PUT("/profile", controllers.UpdateProfile)

		customer.GET("/coupons", controllers.ActiveCoupons)
	}
}
