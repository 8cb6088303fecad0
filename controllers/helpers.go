package controllers

import (
	"net/url"

	"github.com/Govind-619/BookMall/config"
	"github.com/Govind-619/BookMall/middleware"
	"github.com/Govind-619/BookMall/services"
	"github.com/Govind-619/BookMall/utils"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// db returns the shared connection bound to the request context
func db(c *gin.Context) *gorm.DB {
	return config.DB.WithContext(c.Request.Context())
}

// originPage is the page a browser form was posted from, used as the
// redirect target of form writes
func originPage(c *gin.Context) string {
	referer := c.Request.Referer()
	if referer == "" {
		return ""
	}
	u, err := url.Parse(referer)
	if err != nil || u.Path == "" {
		return ""
	}
	return u.Path
}

// parseID reads a UUID path parameter, reporting a 400 on failure
func parseID(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		utils.LogError("Invalid %s %q: %v", name, c.Param(name), err)
		utils.WriteFailed(c, originPage(c), utils.BadRequestError("Invalid "+name, err))
		return uuid.Nil, false
	}
	return id, true
}

// parseOptionalID parses s as a UUID unless it is empty
func parseOptionalID(s string) (*uuid.UUID, error) {
	if s == "" {
		return nil, nil
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

// bind decodes a JSON or form body, reporting a 400 on failure
func bind(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBind(req); err != nil {
		utils.LogError("Invalid request body for %s: %v", c.Request.URL.Path, err)
		utils.WriteFailed(c, originPage(c), utils.BadRequestError(utils.ErrInvalidRequest, err))
		return false
	}
	return true
}

func currentCustomer(c *gin.Context) (services.CustomerPrincipal, bool) {
	customer, ok := middleware.CurrentCustomer(c)
	if !ok {
		utils.Unauthorized(c, utils.ErrUnauthorized)
	}
	return customer, ok
}

func currentStaff(c *gin.Context) (services.StaffPrincipal, bool) {
	staff, ok := middleware.CurrentStaff(c)
	if !ok {
		utils.Unauthorized(c, utils.ErrUnauthorized)
	}
	return staff, ok
}

func currentAdmin(c *gin.Context) (services.AdminPrincipal, bool) {
	admin, ok := middleware.CurrentAdmin(c)
	if !ok {
		utils.Unauthorized(c, utils.ErrUnauthorized)
	}
	return admin, ok
}

// currentBookstore returns the bookstore of the logged in staff member.
// Staff without a bookstore get a 403.
func currentBookstore(c *gin.Context) (services.StaffPrincipal, uuid.UUID, bool) {
	staff, ok := currentStaff(c)
	if !ok {
		return staff, uuid.Nil, false
	}
	if staff.Staff.BookstoreID == nil {
		utils.LogError("Staff %s has no bookstore", staff.Account())
		utils.WriteFailed(c, originPage(c), services.ErrBookstoreRequired)
		return staff, uuid.Nil, false
	}
	return staff, *staff.Staff.BookstoreID, true
}
