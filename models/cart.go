package models

import (
	"github.com/google/uuid"
)

// Cart is the single shopping cart owned by a customer
type Cart struct {
	Base
	CustomerAccount string     `gorm:"not null;uniqueIndex" json:"customer_account"`
	Items           []CartItem `gorm:"foreignKey:CartID" json:"items"`
}

// CartItem is one listing line inside a cart
type CartItem struct {
	Base
	CartID    uuid.UUID `gorm:"type:char(36);not null;uniqueIndex:idx_cart_listing" json:"cart_id"`
	ListingID uuid.UUID `gorm:"type:char(36);not null;uniqueIndex:idx_cart_listing" json:"listing_id"`
	Listing   Listing   `gorm:"foreignKey:ListingID" json:"listing"`
	Quantity  int       `gorm:"not null;check:quantity >= 0" json:"quantity"`
}

// Subtotal is the line total at the listing's current price
func (i CartItem) Subtotal() int64 {
	return i.Listing.Price * int64(i.Quantity)
}
