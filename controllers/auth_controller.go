package controllers

import (
	"net/http"

	"github.com/Govind-619/BookMall/config"
	"github.com/Govind-619/BookMall/services"
	"github.com/Govind-619/BookMall/utils"
	"github.com/gin-gonic/gin"
)

// RegisterRequest represents the registration request body
type RegisterRequest struct {
	Role        string `json:"role" form:"role" binding:"required"`
	Account     string `json:"account" form:"account" binding:"required"`
	Name        string `json:"name" form:"name" binding:"required"`
	Password    string `json:"password" form:"password" binding:"required"`
	PhoneNumber string `json:"phone_number" form:"phone_number"`
	Email       string `json:"email" form:"email"`
	Address     string `json:"address" form:"address"`
}

// LoginRequest represents the login request body
type LoginRequest struct {
	Role     string `json:"role" form:"role" binding:"required"`
	Account  string `json:"account" form:"account" binding:"required"`
	Password string `json:"password" form:"password" binding:"required"`
}

// landingPages is where each role goes after logging in
var landingPages = map[string]string{
	services.RoleCustomer: "/v1/customer/cart",
	services.RoleStaff:    "/v1/staff/orders",
	services.RoleAdmin:    "/v1/admin/users",
}

// Register creates a customer or staff account
func Register(c *gin.Context) {
	var req RegisterRequest
	if !bind(c, &req) {
		return
	}

	principal, err := services.Register(db(c), services.RegisterInput{
		Role:        req.Role,
		Account:     req.Account,
		Name:        req.Name,
		Password:    req.Password,
		PhoneNumber: req.PhoneNumber,
		Email:       req.Email,
		Address:     req.Address,
	})
	if err != nil {
		utils.LogError("Registration failed for %s %s: %v", req.Role, req.Account, err)
		utils.WriteFailed(c, originPage(c), err)
		return
	}

	utils.LogInfo("%s %s registered", principal.Role(), principal.Account())
	utils.WriteSucceeded(c, "/v1/auth/login", http.StatusCreated, "Registration successful", gin.H{
		"role":    principal.Role(),
		"account": principal.Account(),
	})
}

// Login checks the credentials of a customer, staff member or admin and
// issues a token. The token is returned in the body and stored in the
// session and the auth cookie.
func Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBind(&req); err != nil {
		utils.LogError("Login attempt failed - Invalid request format: %v", err)
		utils.BadRequest(c, "Invalid account or password", err.Error())
		return
	}

	principal, err := services.Login(db(c), req.Role, req.Account, req.Password)
	if err != nil {
		utils.LogError("Login attempt failed for %s %s: %v", req.Role, req.Account, err)
		utils.RespondError(c, err)
		return
	}

	token, err := utils.GenerateToken(config.Cfg.JWTSecret, config.Cfg.JWTIssuer, principal.Account(), principal.Role(), config.Cfg.JWTExpiry)
	if err != nil {
		utils.LogError("Failed to generate JWT token for %s: %v", principal.Account(), err)
		utils.InternalServerError(c, "Failed to generate token", nil)
		return
	}

	if err := utils.SaveLoginSession(c, token, int(config.Cfg.JWTExpiry.Seconds())); err != nil {
		utils.LogError("Login session not saved for %s: %v", principal.Account(), err)
	}

	utils.LogInfo("%s %s logged in", principal.Role(), principal.Account())
	utils.Success(c, "Login successful", gin.H{
		"auth_token":     token,
		"role":           principal.Role(),
		"account":        principal.Account(),
		"next_page_path": landingPages[principal.Role()],
	})
}

// Logout drops the login session and cookie
func Logout(c *gin.Context) {
	if err := utils.ClearLoginSession(c); err != nil {
		utils.LogError("Failed to clear login session: %v", err)
	}
	utils.LogInfo("User logged out")
	utils.WriteSucceeded(c, "/v1/auth/login", http.StatusOK, "Logout successful", nil)
}
