package controllers

import (
	"net/http"

	"github.com/Govind-619/BookMall/models"
	"github.com/Govind-619/BookMall/services"
	"github.com/Govind-619/BookMall/utils"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const profilePage = "/v1/customer/profile"

// UpdateProfileRequest represents the profile update request body. Omitted
// fields are left unchanged.
type UpdateProfileRequest struct {
	Name        *string `json:"name" form:"name"`
	Email       *string `json:"email" form:"email"`
	PhoneNumber *string `json:"phone_number" form:"phone_number"`
	Address     *string `json:"address" form:"address"`
}

// GetProfile returns the logged in customer's profile
func GetProfile(c *gin.Context) {
	customer, ok := currentCustomer(c)
	if !ok {
		return
	}
	utils.Success(c, "Profile retrieved successfully", customer.Customer)
}

// UpdateProfile edits the logged in customer's profile
func UpdateProfile(c *gin.Context) {
	customer, ok := currentCustomer(c)
	if !ok {
		return
	}
	var req UpdateProfileRequest
	if !bind(c, &req) {
		return
	}

	var updated *models.Customer
	err := db(c).Transaction(func(tx *gorm.DB) error {
		var err error
		updated, err = services.UpdateProfile(tx, customer.Account(), services.ProfileInput{
			Name:        req.Name,
			Email:       req.Email,
			PhoneNumber: req.PhoneNumber,
			Address:     req.Address,
		})
		return err
	})
	if err != nil {
		utils.LogError("Failed to update profile of %s: %v", customer.Account(), err)
		utils.WriteFailed(c, profilePage, err)
		return
	}

	utils.LogInfo("Customer %s updated profile", customer.Account())
	utils.WriteSucceeded(c, profilePage, http.StatusOK, "Profile updated successfully", updated)
}
