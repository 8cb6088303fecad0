package controllers

import (
	"net/http"

	"github.com/Govind-619/BookMall/models"
	"github.com/Govind-619/BookMall/services"
	"github.com/Govind-619/BookMall/utils"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const bookstorePage = "/v1/staff/bookstore"

// CreateBookstoreRequest represents the bookstore creation request body
type CreateBookstoreRequest struct {
	Name        string `json:"name" form:"name" binding:"required"`
	PhoneNumber string `json:"phone_number" form:"phone_number" binding:"required"`
	Email       string `json:"email" form:"email"`
	Address     string `json:"address" form:"address"`
	ShippingFee int64  `json:"shipping_fee" form:"shipping_fee"`
}

// CreateBookstore creates the staff member's bookstore. Each staff member
// may do this once.
func CreateBookstore(c *gin.Context) {
	staff, ok := currentStaff(c)
	if !ok {
		return
	}
	var req CreateBookstoreRequest
	if !bind(c, &req) {
		return
	}

	var bookstore *models.Bookstore
	err := db(c).Transaction(func(tx *gorm.DB) error {
		var err error
		bookstore, err = services.ClaimBookstore(tx, staff.Staff, services.BookstoreInput{
			Name:        req.Name,
			PhoneNumber: req.PhoneNumber,
			Email:       req.Email,
			Address:     req.Address,
			ShippingFee: req.ShippingFee,
		})
		return err
	})
	if err != nil {
		utils.LogError("Staff %s failed to create bookstore: %v", staff.Account(), err)
		utils.WriteFailed(c, bookstorePage, err)
		return
	}
	utils.WriteSucceeded(c, bookstorePage, http.StatusCreated, "Bookstore created successfully", bookstore)
}

// GetBookstore returns the staff member's bookstore
func GetBookstore(c *gin.Context) {
	_, bookstoreID, ok := currentBookstore(c)
	if !ok {
		return
	}

	bookstore, err := services.GetBookstore(db(c), bookstoreID)
	if err != nil {
		utils.LogError("Failed to fetch bookstore %s: %v", bookstoreID, err)
		utils.RespondError(c, err)
		return
	}
	utils.Success(c, "Bookstore retrieved successfully", bookstore)
}
