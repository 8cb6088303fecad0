package controllers

import (
	"net/http"

	"github.com/Govind-619/BookMall/models"
	"github.com/Govind-619/BookMall/services"
	"github.com/Govind-619/BookMall/utils"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const adminUsersPage = "/v1/admin/users"

// UpdateCustomerRequest represents an admin edit of a customer record
type UpdateCustomerRequest struct {
	Name  *string `json:"name" form:"name"`
	Email *string `json:"email" form:"email"`
}

// ListUsers returns every customer, staff member and admin
func ListUsers(c *gin.Context) {
	utils.LogInfo("ListUsers called")

	users, err := services.ListUsers(db(c))
	if err != nil {
		utils.LogError("Failed to fetch users: %v", err)
		utils.InternalServerError(c, "Failed to fetch users", nil)
		return
	}
	utils.LogInfo("Fetched %d customers, %d staff, %d admins", len(users.Customers), len(users.Staff), len(users.Admins))
	utils.Success(c, "Users retrieved successfully", users)
}

// UpdateCustomer edits the name or email of a customer
func UpdateCustomer(c *gin.Context) {
	admin, ok := currentAdmin(c)
	if !ok {
		return
	}
	account := c.Param("account")
	var req UpdateCustomerRequest
	if !bind(c, &req) {
		return
	}

	var customer *models.Customer
	err := db(c).Transaction(func(tx *gorm.DB) error {
		var err error
		customer, err = services.AdminUpdateCustomer(tx, account, req.Name, req.Email)
		return err
	})
	if err != nil {
		utils.LogError("Admin %s failed to update customer %s: %v", admin.Account(), account, err)
		utils.WriteFailed(c, adminUsersPage, err)
		return
	}
	utils.LogInfo("Admin %s updated customer %s", admin.Account(), account)
	utils.WriteSucceeded(c, adminUsersPage, http.StatusOK, "Customer updated successfully", customer)
}

// DeleteCustomer removes a customer account and its cart
func DeleteCustomer(c *gin.Context) {
	admin, ok := currentAdmin(c)
	if !ok {
		return
	}
	account := c.Param("account")

	err := db(c).Transaction(func(tx *gorm.DB) error {
		return services.DeleteCustomer(tx, account)
	})
	if err != nil {
		utils.LogError("Admin %s failed to delete customer %s: %v", admin.Account(), account, err)
		utils.WriteFailed(c, adminUsersPage, err)
		return
	}
	utils.LogInfo("Admin %s deleted customer %s", admin.Account(), account)
	utils.WriteSucceeded(c, adminUsersPage, http.StatusOK, "Customer deleted successfully", nil)
}

// DeleteStaff removes a staff account and the coupons it issued
func DeleteStaff(c *gin.Context) {
	admin, ok := currentAdmin(c)
	if !ok {
		return
	}
	account := c.Param("account")

	err := db(c).Transaction(func(tx *gorm.DB) error {
		return services.DeleteStaff(tx, account)
	})
	if err != nil {
		utils.LogError("Admin %s failed to delete staff %s: %v", admin.Account(), account, err)
		utils.WriteFailed(c, adminUsersPage, err)
		return
	}
	utils.LogInfo("Admin %s deleted staff %s", admin.Account(), account)
	utils.WriteSucceeded(c, adminUsersPage, http.StatusOK, "Staff deleted successfully", nil)
}
