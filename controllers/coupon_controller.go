package controllers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/Govind-619/BookMall/models"
	"github.com/Govind-619/BookMall/services"
	"github.com/Govind-619/BookMall/utils"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	staffCouponsPage = "/v1/staff/coupons"
	adminCouponsPage = "/v1/admin/coupons"
)

// CreateCouponRequest represents the coupon creation request body. Dates
// use YYYY-MM-DD; the end date is exclusive and optional.
type CreateCouponRequest struct {
	Name               string `json:"name" form:"name" binding:"required"`
	Type               string `json:"type" form:"type" binding:"required"`
	DiscountPercentage string `json:"discount_percentage" form:"discount_percentage" binding:"required"`
	StartDate          string `json:"start_date" form:"start_date" binding:"required"`
	EndDate            string `json:"end_date" form:"end_date"`
}

// CouponResponse is a coupon with a description of its issuer
type CouponResponse struct {
	models.Coupon
	CreatedBy string `json:"created_by"`
}

func couponResponses(coupons []models.Coupon) []CouponResponse {
	resp := make([]CouponResponse, 0, len(coupons))
	for _, coupon := range coupons {
		resp = append(resp, CouponResponse{Coupon: coupon, CreatedBy: coupon.CreatorName()})
	}
	return resp
}

func (req CreateCouponRequest) input() (services.CouponInput, error) {
	in := services.CouponInput{
		Name: utils.SanitizeString(req.Name),
		Type: models.CouponType(strings.TrimSpace(req.Type)),
	}

	p, err := decimal.NewFromString(strings.TrimSpace(req.DiscountPercentage))
	if err != nil {
		return in, services.ErrInvalidCoupon.WithDetail("discount percentage %q is not a number", req.DiscountPercentage)
	}
	in.DiscountPercentage = p

	start, err := time.Parse(utils.DateLayout, strings.TrimSpace(req.StartDate))
	if err != nil {
		return in, services.ErrInvalidCoupon.WithDetail("start date must be YYYY-MM-DD")
	}
	in.StartDate = start

	if end := strings.TrimSpace(req.EndDate); end != "" {
		endDate, err := time.Parse(utils.DateLayout, end)
		if err != nil {
			return in, services.ErrInvalidCoupon.WithDetail("end date must be YYYY-MM-DD")
		}
		in.EndDate = &endDate
	}
	return in, nil
}

// ActiveCoupons returns the coupons usable today, optionally including the
// coupons of ?bookstore_id=
func ActiveCoupons(c *gin.Context) {
	bookstoreID, err := parseOptionalID(c.Query("bookstore_id"))
	if err != nil {
		utils.BadRequest(c, "Invalid bookstore_id", err.Error())
		return
	}

	coupons, err := services.ActiveCoupons(db(c), bookstoreID, time.Now())
	if err != nil {
		utils.LogError("Failed to fetch active coupons: %v", err)
		utils.InternalServerError(c, "Failed to fetch coupons", nil)
		return
	}
	utils.Success(c, "Active coupons retrieved successfully", gin.H{"coupons": couponResponses(coupons)})
}

// ListStaffCoupons returns the coupons of the staff member's bookstore
func ListStaffCoupons(c *gin.Context) {
	_, bookstoreID, ok := currentBookstore(c)
	if !ok {
		return
	}

	coupons, err := services.ListBookstoreCoupons(db(c), bookstoreID)
	if err != nil {
		utils.LogError("Failed to fetch coupons of bookstore %s: %v", bookstoreID, err)
		utils.InternalServerError(c, "Failed to fetch coupons", nil)
		return
	}
	utils.Success(c, "Coupons retrieved successfully", gin.H{"coupons": couponResponses(coupons)})
}

// CreateStaffCoupon creates a coupon valid at the staff member's bookstore
func CreateStaffCoupon(c *gin.Context) {
	staff, _, ok := currentBookstore(c)
	if !ok {
		return
	}
	var req CreateCouponRequest
	if !bind(c, &req) {
		return
	}
	in, err := req.input()
	if err != nil {
		utils.WriteFailed(c, staffCouponsPage, err)
		return
	}

	var coupon *models.Coupon
	err = db(c).Transaction(func(tx *gorm.DB) error {
		var err error
		coupon, err = services.CreateStaffCoupon(tx, staff.Staff, in)
		return err
	})
	if err != nil {
		utils.LogError("Staff %s failed to create coupon: %v", staff.Account(), err)
		utils.WriteFailed(c, staffCouponsPage, err)
		return
	}
	utils.WriteSucceeded(c, staffCouponsPage, http.StatusCreated, "Coupon created successfully",
		CouponResponse{Coupon: *coupon, CreatedBy: coupon.CreatorName()})
}

// DeleteStaffCoupon deletes a coupon of the staff member's bookstore
func DeleteStaffCoupon(c *gin.Context) {
	staff, bookstoreID, ok := currentBookstore(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	err := db(c).Transaction(func(tx *gorm.DB) error {
		return services.DeleteBookstoreCoupon(tx, bookstoreID, id)
	})
	if err != nil {
		utils.LogError("Staff %s failed to delete coupon %s: %v", staff.Account(), id, err)
		utils.WriteFailed(c, staffCouponsPage, err)
		return
	}
	utils.WriteSucceeded(c, staffCouponsPage, http.StatusOK, "Coupon deleted successfully", nil)
}

// ListAdminCoupons returns every coupon on the platform
func ListAdminCoupons(c *gin.Context) {
	coupons, err := services.ListAllCoupons(db(c))
	if err != nil {
		utils.LogError("Failed to fetch coupons: %v", err)
		utils.InternalServerError(c, "Failed to fetch coupons", nil)
		return
	}
	utils.Success(c, "Coupons retrieved successfully", gin.H{"coupons": couponResponses(coupons)})
}

// CreateAdminCoupon creates a platform-wide coupon
func CreateAdminCoupon(c *gin.Context) {
	admin, ok := currentAdmin(c)
	if !ok {
		return
	}
	var req CreateCouponRequest
	if !bind(c, &req) {
		return
	}
	in, err := req.input()
	if err != nil {
		utils.WriteFailed(c, adminCouponsPage, err)
		return
	}

	var coupon *models.Coupon
	err = db(c).Transaction(func(tx *gorm.DB) error {
		var err error
		coupon, err = services.CreateAdminCoupon(tx, admin.Admin, in)
		return err
	})
	if err != nil {
		utils.LogError("Admin %s failed to create coupon: %v", admin.Account(), err)
		utils.WriteFailed(c, adminCouponsPage, err)
		return
	}
	utils.WriteSucceeded(c, adminCouponsPage, http.StatusCreated, "Coupon created successfully",
		CouponResponse{Coupon: *coupon, CreatedBy: coupon.CreatorName()})
}

// DeleteAdminCoupon deletes any coupon
func DeleteAdminCoupon(c *gin.Context) {
	admin, ok := currentAdmin(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	err := db(c).Transaction(func(tx *gorm.DB) error {
		return services.DeleteCoupon(tx, id)
	})
	if err != nil {
		if !errors.Is(err, services.ErrCouponNotFound) {
			utils.LogError("Admin %s failed to delete coupon %s: %v", admin.Account(), id, err)
		}
		utils.WriteFailed(c, adminCouponsPage, err)
		return
	}
	utils.LogInfo("Admin %s deleted coupon %s", admin.Account(), id)
	utils.WriteSucceeded(c, adminCouponsPage, http.StatusOK, "Coupon deleted successfully", nil)
}
