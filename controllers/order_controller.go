package controllers

import (
	"net/http"

	"github.com/Govind-619/BookMall/models"
	"github.com/Govind-619/BookMall/services"
	"github.com/Govind-619/BookMall/utils"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const staffOrdersPage = "/v1/staff/orders"

// UpdateOrderStatusRequest represents the order status update request body
type UpdateOrderStatusRequest struct {
	Status string `json:"status" form:"status" binding:"required"`
}

// ListCustomerOrders returns the logged in customer's orders
func ListCustomerOrders(c *gin.Context) {
	customer, ok := currentCustomer(c)
	if !ok {
		return
	}

	orders, err := services.ListCustomerOrders(db(c), customer.Account())
	if err != nil {
		utils.LogError("Failed to fetch orders of %s: %v", customer.Account(), err)
		utils.InternalServerError(c, "Failed to fetch orders", nil)
		return
	}
	utils.LogInfo("Fetched %d orders for customer %s", len(orders), customer.Account())
	utils.Success(c, "Orders retrieved successfully", gin.H{"orders": orders})
}

// GetCustomerOrder returns one of the logged in customer's orders
func GetCustomerOrder(c *gin.Context) {
	customer, ok := currentCustomer(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	order, err := services.GetCustomerOrder(db(c), customer.Account(), id)
	if err != nil {
		utils.LogError("Failed to fetch order %s of %s: %v", id, customer.Account(), err)
		utils.RespondError(c, err)
		return
	}
	utils.Success(c, "Order retrieved successfully", order)
}

// ListStoreOrders returns the orders of the staff member's bookstore,
// optionally filtered by ?status=
func ListStoreOrders(c *gin.Context) {
	staff, bookstoreID, ok := currentBookstore(c)
	if !ok {
		return
	}

	status := models.OrderStatus(c.Query("status"))
	orders, err := services.ListStoreOrders(db(c), bookstoreID, status)
	if err != nil {
		utils.LogError("Failed to fetch orders of bookstore %s: %v", bookstoreID, err)
		utils.RespondError(c, err)
		return
	}
	utils.LogInfo("Staff %s fetched %d orders", staff.Account(), len(orders))
	utils.Success(c, "Orders retrieved successfully", gin.H{
		"orders":   orders,
		"statuses": models.OrderStatuses,
	})
}

// UpdateOrderStatus moves an order of the staff member's bookstore forward
func UpdateOrderStatus(c *gin.Context) {
	staff, bookstoreID, ok := currentBookstore(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req UpdateOrderStatusRequest
	if !bind(c, &req) {
		return
	}

	var order *models.Order
	err := db(c).Transaction(func(tx *gorm.DB) error {
		var err error
		order, err = services.UpdateOrderStatus(tx, bookstoreID, id, models.OrderStatus(req.Status))
		return err
	})
	if err != nil {
		utils.LogError("Staff %s failed to update order %s: %v", staff.Account(), id, err)
		utils.WriteFailed(c, staffOrdersPage, err)
		return
	}
	utils.WriteSucceeded(c, staffOrdersPage, http.StatusOK, "Order status updated", order)
}
