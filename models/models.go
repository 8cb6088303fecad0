package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Base carries the generated UUID primary key used by catalog, cart, coupon and order records
type Base struct {
	ID        uuid.UUID `gorm:"type:char(36);primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BeforeCreate assigns a new UUID unless the caller already chose one
func (b *Base) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}

// Customer represents a shopper account
type Customer struct {
	Account     string    `gorm:"primaryKey" json:"account"`
	Name        string    `gorm:"not null" json:"name"`
	Password    string    `gorm:"not null" json:"-"`
	Email       string    `json:"email"`
	PhoneNumber string    `gorm:"size:10;not null" json:"phone_number"`
	Address     string    `json:"address"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Staff represents a bookstore employee. BookstoreID stays nil until the
// staff member claims a bookstore.
type Staff struct {
	Account     string     `gorm:"primaryKey" json:"account"`
	Name        string     `gorm:"not null" json:"name"`
	Password    string     `gorm:"not null" json:"-"`
	BookstoreID *uuid.UUID `gorm:"type:char(36);index" json:"bookstore_id"`
	Bookstore   *Bookstore `gorm:"foreignKey:BookstoreID" json:"bookstore,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// TableName keeps the singular table name used by the rest of the schema
func (Staff) TableName() string {
	return "staff"
}

// Admin represents a platform administrator
type Admin struct {
	Account   string    `gorm:"primaryKey" json:"account"`
	Name      string    `gorm:"not null" json:"name"`
	Password  string    `gorm:"not null" json:"-"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Book represents a title independent of who sells it
type Book struct {
	Base
	Title       string     `gorm:"not null" json:"title"`
	Author      string     `gorm:"not null" json:"author"`
	Publisher   string     `gorm:"not null" json:"publisher"`
	ISBN        string     `gorm:"size:17;not null;uniqueIndex" json:"isbn"`
	Category    string     `gorm:"index" json:"category"`
	Series      string     `json:"series,omitempty"`
	PublishDate *time.Time `gorm:"type:date" json:"publish_date,omitempty"`
	Listings    []Listing  `gorm:"foreignKey:BookID" json:"listings,omitempty"`
}

// Bookstore represents an independent seller on the marketplace
type Bookstore struct {
	Base
	Name        string `gorm:"not null" json:"name"`
	PhoneNumber string `gorm:"size:10;not null" json:"phone_number"`
	Email       string `json:"email"`
	Address     string `json:"address"`
	ShippingFee int64  `gorm:"not null;check:shipping_fee >= 0" json:"shipping_fee"`
}

// Listing is the sellable unit: one bookstore's price and stock for one book
type Listing struct {
	Base
	BookID      uuid.UUID      `gorm:"type:char(36);not null;uniqueIndex:idx_listing_book_store" json:"book_id"`
	Book        Book           `gorm:"foreignKey:BookID" json:"book"`
	BookstoreID uuid.UUID      `gorm:"type:char(36);not null;uniqueIndex:idx_listing_book_store" json:"bookstore_id"`
	Bookstore   Bookstore      `gorm:"foreignKey:BookstoreID" json:"bookstore"`
	Price       int64          `gorm:"not null;check:price >= 0" json:"price"`
	Stock       int            `gorm:"not null;check:stock >= 0" json:"stock"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}
