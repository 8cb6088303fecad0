package models

import (
	"time"

	"github.com/google/uuid"
)

// OrderStatus is the fulfilment state of an order
type OrderStatus string

// Order status constants, in fulfilment order
const (
	OrderStatusReceived   OrderStatus = "received"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusShipping   OrderStatus = "shipping"
	OrderStatusClosed     OrderStatus = "closed"
)

// OrderStatuses lists the status sequence an order moves through
var OrderStatuses = []OrderStatus{
	OrderStatusReceived,
	OrderStatusProcessing,
	OrderStatusShipping,
	OrderStatusClosed,
}

func (s OrderStatus) rank() int {
	for i, known := range OrderStatuses {
		if s == known {
			return i
		}
	}
	return -1
}

// Valid reports whether s is a known status
func (s OrderStatus) Valid() bool {
	return s.rank() >= 0
}

// CanTransitionTo allows forward moves only
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	from, to := s.rank(), next.rank()
	return from >= 0 && to > from
}

// Order is the purchase of one customer from one bookstore
type Order struct {
	Base
	CustomerAccount     string      `gorm:"not null;index" json:"customer_account"`
	BookstoreID         uuid.UUID   `gorm:"type:char(36);not null;index" json:"bookstore_id"`
	Bookstore           Bookstore   `gorm:"foreignKey:BookstoreID" json:"bookstore"`
	OrderDate           time.Time   `gorm:"not null;index" json:"order_date"`
	CustomerName        string      `gorm:"not null" json:"customer_name"`
	CustomerPhoneNumber string      `gorm:"size:10;not null" json:"customer_phone_number"`
	CustomerEmail       string      `json:"customer_email,omitempty"`
	Status              OrderStatus `gorm:"not null" json:"status"`
	TotalPrice          int64       `gorm:"not null;check:total_price >= 0" json:"total_price"`
	ShippingFee         int64       `gorm:"not null;check:shipping_fee >= 0" json:"shipping_fee"`
	RecipientName       string      `gorm:"not null" json:"recipient_name"`
	ShippingAddress     string      `gorm:"not null" json:"shipping_address"`
	CouponID            *uuid.UUID  `gorm:"type:char(36);index" json:"coupon_id,omitempty"`
	Coupon              *Coupon     `gorm:"foreignKey:CouponID" json:"coupon,omitempty"`
	Items               []OrderItem `gorm:"foreignKey:OrderID" json:"items"`
}

// ItemsSubtotal sums the snapshot price times quantity of every item
func (o Order) ItemsSubtotal() int64 {
	var total int64
	for _, item := range o.Items {
		total += item.Price * int64(item.Quantity)
	}
	return total
}

// OrderItem snapshots the unit price paid for a listing
type OrderItem struct {
	Base
	OrderID   uuid.UUID `gorm:"type:char(36);not null;index" json:"order_id"`
	ListingID uuid.UUID `gorm:"type:char(36);not null;index" json:"listing_id"`
	Listing   Listing   `gorm:"foreignKey:ListingID" json:"listing"`
	Quantity  int       `gorm:"not null;check:quantity >= 0" json:"quantity"`
	Price     int64     `gorm:"not null;check:price >= 0" json:"price"`
}
