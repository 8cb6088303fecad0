package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CouponType selects which order price fields a coupon discounts
type CouponType string

const (
	// CouponTypeShipping discounts the shipping fee only
	CouponTypeShipping CouponType = "shipping"
	// CouponTypeSeasonings discounts the whole order total, shipping included
	CouponTypeSeasonings CouponType = "seasonings"
	// CouponTypeSpecialEvent discounts the items subtotal and keeps shipping
	CouponTypeSpecialEvent CouponType = "special_event"
)

// CouponTypes lists every supported coupon type
var CouponTypes = []CouponType{CouponTypeShipping, CouponTypeSeasonings, CouponTypeSpecialEvent}

// Valid reports whether t is a known coupon type
func (t CouponType) Valid() bool {
	for _, known := range CouponTypes {
		if t == known {
			return true
		}
	}
	return false
}

// Coupon is either platform-wide (issued by an admin) or scoped to the
// bookstore of the staff member who issued it. Coupons are never updated.
type Coupon struct {
	Base
	Name               string          `gorm:"not null" json:"name"`
	Type               CouponType      `gorm:"not null" json:"type"`
	DiscountPercentage decimal.Decimal `gorm:"type:numeric(5,4);not null;check:discount_percentage >= 0 AND discount_percentage <= 1" json:"discount_percentage"`
	StartDate          time.Time       `gorm:"type:date;not null" json:"start_date"`
	EndDate            *time.Time      `gorm:"type:date" json:"end_date,omitempty"`
	AdminAccount       *string         `gorm:"index" json:"admin_account,omitempty"`
	Admin              *Admin          `gorm:"foreignKey:AdminAccount;references:Account" json:"admin,omitempty"`
	StaffAccount       *string         `gorm:"index" json:"staff_account,omitempty"`
	Staff              *Staff          `gorm:"foreignKey:StaffAccount;references:Account" json:"staff,omitempty"`
}

// BookstoreID returns the bookstore the coupon is scoped to, or nil for a
// platform-wide coupon. Staff must be preloaded.
func (c Coupon) BookstoreID() *uuid.UUID {
	if c.Staff == nil {
		return nil
	}
	return c.Staff.BookstoreID
}

// IsScoped reports whether the coupon was issued by a staff member
func (c Coupon) IsScoped() bool {
	return c.StaffAccount != nil
}

// CreatorName describes who issued the coupon
func (c Coupon) CreatorName() string {
	switch {
	case c.Staff != nil:
		return c.Staff.Name + " (Staff)"
	case c.Admin != nil:
		return c.Admin.Name + " (Admin)"
	default:
		return "Unknown"
	}
}
