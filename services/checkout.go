package services

import (
	"errors"
	"strings"
	"time"

	"github.com/Govind-619/BookMall/models"
	"github.com/Govind-619/BookMall/utils"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CheckoutInput selects the bookstore to check out and where to ship
type CheckoutInput struct {
	BookstoreID     uuid.UUID
	CouponID        *uuid.UUID
	RecipientName   string
	ShippingAddress string
}

// CheckoutResult is the placed order. CouponError is set when the
// requested coupon could not be applied; the order was then placed at full
// price.
type CheckoutResult struct {
	Order       *models.Order
	CouponError error
}

type pricedLine struct {
	cartItemID uuid.UUID
	listing    models.Listing
	price      int64
	quantity   int
}

// Checkout turns the cart lines of one bookstore into an order. It must
// run inside a transaction: any error leaves cart, stock and orders as
// they were once the caller rolls back.
func Checkout(tx *gorm.DB, customer models.Customer, in CheckoutInput, now time.Time) (*CheckoutResult, error) {
	recipient := utils.SanitizeString(in.RecipientName)
	address := utils.SanitizeString(in.ShippingAddress)
	if recipient == "" || address == "" {
		return nil, ErrInvalidCheckout
	}

	// Load cart
	var cart models.Cart
	err := withCartItems(tx).Where("customer_account = ?", customer.Account).First(&cart).Error
	if errors.Is(err, gorm.ErrRecordNotFound) || (err == nil && len(cart.Items) == 0) {
		return nil, ErrCartEmpty
	}
	if err != nil {
		return nil, err
	}

	// Keep the lines of the selected bookstore
	var selected []models.CartItem
	for _, item := range cart.Items {
		if item.Listing.BookstoreID == in.BookstoreID {
			selected = append(selected, item)
		}
	}
	if len(selected) == 0 {
		return nil, ErrNoItemsForBookstore.WithDetail("bookstore %s", in.BookstoreID)
	}

	var coupon *models.Coupon
	if in.CouponID != nil {
		coupon = &models.Coupon{}
		err := tx.Preload("Staff").First(coupon, "id = ?", *in.CouponID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCouponNotFound.WithDetail("coupon %s", *in.CouponID)
		}
		if err != nil {
			return nil, err
		}
	}

	// Price every line against the live listing
	var subtotal int64
	lines := make([]pricedLine, 0, len(selected))
	for _, item := range selected {
		listing, err := getListing(tx, item.ListingID)
		if err != nil {
			return nil, err
		}
		if listing.Stock < item.Quantity {
			return nil, ErrInsufficientStock.WithDetail("listing %s has %d, %d requested", listing.ID, listing.Stock, item.Quantity)
		}
		subtotal += listing.Price * int64(item.Quantity)
		lines = append(lines, pricedLine{
			cartItemID: item.ID,
			listing:    item.Listing,
			price:      listing.Price,
			quantity:   item.Quantity,
		})
	}

	shippingFee := selected[0].Listing.Bookstore.ShippingFee
	order := &models.Order{
		CustomerAccount:     customer.Account,
		BookstoreID:         in.BookstoreID,
		OrderDate:           now.UTC(),
		CustomerName:        customer.Name,
		CustomerPhoneNumber: customer.PhoneNumber,
		CustomerEmail:       customer.Email,
		Status:              models.OrderStatusReceived,
		TotalPrice:          subtotal + shippingFee,
		ShippingFee:         shippingFee,
		RecipientName:       recipient,
		ShippingAddress:     address,
	}

	result := &CheckoutResult{Order: order}
	if coupon != nil {
		storeID := in.BookstoreID
		if err := ApplyCoupon(coupon, order, &storeID, now); err != nil {
			// The order goes through at full price
			utils.LogError("Coupon %s not applied to checkout of %s: %v", coupon.ID, customer.Account, err)
			result.CouponError = err
		} else {
			order.CouponID = &coupon.ID
			order.Coupon = coupon
		}
	}

	if err := tx.Omit(clause.Associations).Create(order).Error; err != nil {
		return nil, err
	}

	cartItemIDs := make([]uuid.UUID, 0, len(lines))
	order.Items = make([]models.OrderItem, 0, len(lines))
	for _, line := range lines {
		orderItem := models.OrderItem{
			OrderID:   order.ID,
			ListingID: line.listing.ID,
			Quantity:  line.quantity,
			Price:     line.price,
		}
		if err := tx.Omit(clause.Associations).Create(&orderItem).Error; err != nil {
			return nil, err
		}

		// Decrement only while enough stock remains
		res := tx.Model(&models.Listing{}).
			Where("id = ? AND stock >= ?", line.listing.ID, line.quantity).
			Update("stock", gorm.Expr("stock - ?", line.quantity))
		if res.Error != nil {
			return nil, res.Error
		}
		if res.RowsAffected == 0 {
			return nil, ErrInsufficientStock.WithDetail("listing %s sold out during checkout", line.listing.ID)
		}

		orderItem.Listing = line.listing
		order.Items = append(order.Items, orderItem)
		cartItemIDs = append(cartItemIDs, line.cartItemID)
	}

	// Other bookstores' lines stay in the cart
	if err := tx.Where("id IN ?", cartItemIDs).Delete(&models.CartItem{}).Error; err != nil {
		return nil, err
	}

	order.Bookstore = selected[0].Listing.Bookstore
	utils.LogInfo("Customer %s placed order %s at bookstore %s: total %d, shipping %d",
		customer.Account, order.ID, order.BookstoreID, order.TotalPrice, order.ShippingFee)
	return result, nil
}

// CouponWarning describes why a requested coupon was not applied
func (r *CheckoutResult) CouponWarning() string {
	if r.CouponError == nil {
		return ""
	}
	if appErr := utils.GetAppError(r.CouponError); appErr != nil {
		return strings.TrimSpace(appErr.Message)
	}
	return r.CouponError.Error()
}
