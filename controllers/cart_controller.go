package controllers

import (
	"net/http"

	"github.com/Govind-619/BookMall/models"
	"github.com/Govind-619/BookMall/services"
	"github.com/Govind-619/BookMall/utils"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const cartPage = "/v1/customer/cart"

// AddToCartRequest represents the add to cart request body
type AddToCartRequest struct {
	ListingID string `json:"listing_id" form:"listing_id" binding:"required"`
	Quantity  int    `json:"quantity" form:"quantity"`
}

// UpdateCartItemRequest represents the cart line update request body
type UpdateCartItemRequest struct {
	Quantity *int `json:"quantity" form:"quantity" binding:"required"`
}

// GetCart returns the customer's cart grouped by bookstore
func GetCart(c *gin.Context) {
	customer, ok := currentCustomer(c)
	if !ok {
		return
	}

	cart, err := services.GetCart(db(c), customer.Account())
	if err != nil {
		utils.LogError("Failed to fetch cart for %s: %v", customer.Account(), err)
		utils.InternalServerError(c, "Failed to fetch cart", nil)
		return
	}

	groups := services.CartSummary(cart)
	var total int64
	for _, group := range groups {
		total += group.Total
	}
	utils.LogDebug("Cart of %s has %d bookstore groups", customer.Account(), len(groups))
	utils.Success(c, "Cart retrieved successfully", gin.H{
		"bookstores": groups,
		"total":      total,
	})
}

// GetCartCount returns the number of books in the cart
func GetCartCount(c *gin.Context) {
	customer, ok := currentCustomer(c)
	if !ok {
		return
	}

	count, err := services.CartCount(db(c), customer.Account())
	if err != nil {
		utils.LogError("Failed to count cart of %s: %v", customer.Account(), err)
		utils.InternalServerError(c, "Failed to count cart items", nil)
		return
	}
	utils.Success(c, "Cart count retrieved successfully", gin.H{"count": count})
}

// AddToCart adds a listing to the cart, merging with an existing line
func AddToCart(c *gin.Context) {
	customer, ok := currentCustomer(c)
	if !ok {
		return
	}
	var req AddToCartRequest
	if !bind(c, &req) {
		return
	}
	listingID, err := uuid.Parse(req.ListingID)
	if err != nil {
		utils.WriteFailed(c, originPage(c), utils.BadRequestError("Invalid listing_id", err))
		return
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}

	var item *models.CartItem
	err = db(c).Transaction(func(tx *gorm.DB) error {
		var err error
		item, err = services.AddToCart(tx, customer.Account(), listingID, req.Quantity)
		return err
	})
	if err != nil {
		utils.LogError("Failed to add listing %s to cart of %s: %v", listingID, customer.Account(), err)
		utils.WriteFailed(c, originPage(c), err)
		return
	}

	utils.LogInfo("Customer %s added %d of listing %s to cart", customer.Account(), req.Quantity, listingID)
	utils.WriteSucceeded(c, cartPage, http.StatusOK, "Book added to cart", item)
}

// UpdateCartItem sets the quantity of a cart line. Zero removes it.
func UpdateCartItem(c *gin.Context) {
	customer, ok := currentCustomer(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req UpdateCartItemRequest
	if !bind(c, &req) {
		return
	}

	var item *models.CartItem
	err := db(c).Transaction(func(tx *gorm.DB) error {
		var err error
		item, err = services.UpdateCartItem(tx, customer.Account(), id, *req.Quantity)
		return err
	})
	if err != nil {
		utils.LogError("Failed to update cart item %s of %s: %v", id, customer.Account(), err)
		utils.WriteFailed(c, cartPage, err)
		return
	}

	if item == nil {
		utils.WriteSucceeded(c, cartPage, http.StatusOK, "Item removed from cart", nil)
		return
	}
	utils.WriteSucceeded(c, cartPage, http.StatusOK, "Cart updated", item)
}

// RemoveCartItem deletes a cart line
func RemoveCartItem(c *gin.Context) {
	customer, ok := currentCustomer(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := services.RemoveCartItem(db(c), customer.Account(), id); err != nil {
		utils.LogError("Failed to remove cart item %s of %s: %v", id, customer.Account(), err)
		utils.WriteFailed(c, cartPage, err)
		return
	}
	utils.WriteSucceeded(c, cartPage, http.StatusOK, "Item removed from cart", nil)
}
