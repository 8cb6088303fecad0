package middleware

import (
	"errors"
	"strings"

	"github.com/Govind-619/BookMall/config"
	"github.com/Govind-619/BookMall/services"
	"github.com/Govind-619/BookMall/utils"
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

// tokenFromRequest reads the login token from the Authorization header,
// then the session, then the auth cookie
func tokenFromRequest(c *gin.Context) string {
	if authHeader := c.GetHeader("Authorization"); authHeader != "" {
		if token := strings.TrimPrefix(authHeader, "Bearer "); token != authHeader {
			return strings.TrimSpace(token)
		}
	}

	if _, ok := c.Get(sessions.DefaultKey); ok {
		if token, ok := sessions.Default(c).Get(utils.AuthTokenKey).(string); ok && token != "" {
			return token
		}
	}

	if token, err := c.Cookie(utils.AuthTokenKey); err == nil {
		return token
	}
	return ""
}

// AuthMiddleware verifies the login token and stores the principal it
// names in the context
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		utils.LogInfo("AuthMiddleware called")

		tokenString := tokenFromRequest(c)
		if tokenString == "" {
			utils.LogError("Missing login token for %s", c.Request.URL.Path)
			utils.Unauthorized(c, utils.ErrUnauthorized)
			c.Abort()
			return
		}

		claims, err := utils.ParseToken(config.Cfg.JWTSecret, config.Cfg.JWTIssuer, tokenString)
		if err != nil {
			utils.LogError("Invalid token: %v", err)
			utils.Unauthorized(c, utils.ErrInvalidToken)
			c.Abort()
			return
		}

		principal, err := services.ResolvePrincipal(config.DB.WithContext(c.Request.Context()), claims.Role, claims.Account)
		if err != nil {
			utils.LogError("Token for unknown %s %s: %v", claims.Role, claims.Account, err)
			if errors.Is(err, services.ErrAccountNotFound) || errors.Is(err, services.ErrInvalidRole) {
				utils.Unauthorized(c, utils.ErrInvalidToken)
			} else {
				utils.InternalServerError(c, utils.ErrInternalServer, nil)
			}
			c.Abort()
			return
		}

		c.Set(utils.PrincipalKey, principal)
		utils.LogDebug("%s %s authenticated", principal.Role(), principal.Account())
		c.Next()
	}
}

// RequireRole rejects principals of any other role
func RequireRole(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, ok := CurrentPrincipal(c)
		if !ok {
			utils.Unauthorized(c, utils.ErrUnauthorized)
			c.Abort()
			return
		}
		if principal.Role() != role {
			utils.LogError("%s %s attempted %s access to %s", principal.Role(), principal.Account(), role, c.Request.URL.Path)
			utils.Forbidden(c, utils.ErrForbidden)
			c.Abort()
			return
		}
		c.Next()
	}
}

// CurrentPrincipal returns the authenticated principal
func CurrentPrincipal(c *gin.Context) (services.Principal, bool) {
	value, exists := c.Get(utils.PrincipalKey)
	if !exists {
		return nil, false
	}
	principal, ok := value.(services.Principal)
	return principal, ok
}

// CurrentCustomer returns the authenticated customer
func CurrentCustomer(c *gin.Context) (services.CustomerPrincipal, bool) {
	principal, _ := CurrentPrincipal(c)
	customer, ok := principal.(services.CustomerPrincipal)
	return customer, ok
}

// CurrentStaff returns the authenticated staff member
func CurrentStaff(c *gin.Context) (services.StaffPrincipal, bool) {
	principal, _ := CurrentPrincipal(c)
	staff, ok := principal.(services.StaffPrincipal)
	return staff, ok
}

// CurrentAdmin returns the authenticated admin
func CurrentAdmin(c *gin.Context) (services.AdminPrincipal, bool) {
	principal, _ := CurrentPrincipal(c)
	admin, ok := principal.(services.AdminPrincipal)
	return admin, ok
}
