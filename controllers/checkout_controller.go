package controllers

import (
	"net/http"
	"net/url"
	"time"

	"github.com/Govind-619/BookMall/config"
	"github.com/Govind-619/BookMall/services"
	"github.com/Govind-619/BookMall/utils"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CheckoutRequest represents the checkout request body
type CheckoutRequest struct {
	BookstoreID     string `json:"bookstore_id" form:"bookstore_id" binding:"required"`
	CouponID        string `json:"coupon_id" form:"coupon_id"`
	RecipientName   string `json:"recipient_name" form:"recipient_name" binding:"required"`
	ShippingAddress string `json:"shipping_address" form:"shipping_address" binding:"required"`
}

// Checkout places an order for the cart lines of one bookstore
func Checkout(c *gin.Context) {
	customer, ok := currentCustomer(c)
	if !ok {
		return
	}
	var req CheckoutRequest
	if !bind(c, &req) {
		return
	}

	bookstoreID, err := uuid.Parse(req.BookstoreID)
	if err != nil {
		utils.WriteFailed(c, cartPage, utils.BadRequestError("Invalid bookstore_id", err))
		return
	}
	couponID, err := parseOptionalID(req.CouponID)
	if err != nil {
		utils.WriteFailed(c, cartPage, utils.BadRequestError("Invalid coupon_id", err))
		return
	}

	utils.LogInfo("Checkout started by %s for bookstore %s", customer.Account(), bookstoreID)
	var result *services.CheckoutResult
	err = db(c).Transaction(func(tx *gorm.DB) error {
		var err error
		result, err = services.Checkout(tx, customer.Customer, services.CheckoutInput{
			BookstoreID:     bookstoreID,
			CouponID:        couponID,
			RecipientName:   req.RecipientName,
			ShippingAddress: req.ShippingAddress,
		}, time.Now())
		return err
	})
	if err != nil {
		utils.LogError("Checkout failed for %s: %v", customer.Account(), err)
		utils.WriteFailed(c, cartPage, err)
		return
	}

	order := result.Order
	if err := utils.SendOrderConfirmation(config.Cfg.SMTP, order, order.Bookstore.Name); err != nil {
		utils.LogError("Order confirmation for %s not sent: %v", order.ID, err)
	}

	data := gin.H{"order": order}
	redirect := "/v1/customer/orders"
	if warning := result.CouponWarning(); warning != "" {
		data["coupon_warning"] = warning
		redirect += "?coupon_warning=" + url.QueryEscape(warning)
	}
	utils.WriteSucceeded(c, redirect, http.StatusCreated, "Order placed successfully", data)
}
