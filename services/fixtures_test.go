package services

import (
	"testing"
	"time"

	"github.com/Govind-619/BookMall/config"
	"github.com/Govind-619/BookMall/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var testNow = time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)

// fixture is a marketplace with two bookstores and a customer whose cart
// holds two lines from store A (550x1, 480x2) and one from store B (300x1)
type fixture struct {
	db        *gorm.DB
	customer  models.Customer
	admin     models.Admin
	staffA    models.Staff
	staffB    models.Staff
	storeA    models.Bookstore
	storeB    models.Bookstore
	listingA1 models.Listing
	listingA2 models.Listing
	listingB1 models.Listing
	cart      models.Cart
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := config.SetupTestDB(t)
	f := &fixture{db: db}

	f.customer = models.Customer{Account: "alice", Name: "Alice", Password: "x", Email: "alice@example.com", PhoneNumber: "0912345678", Address: "1 Main St"}
	require.NoError(t, db.Create(&f.customer).Error)
	f.admin = models.Admin{Account: "root", Name: "Root", Password: "x"}
	require.NoError(t, db.Create(&f.admin).Error)

	f.storeA = models.Bookstore{Name: "Store A", PhoneNumber: "0211111111", ShippingFee: 60}
	f.storeB = models.Bookstore{Name: "Store B", PhoneNumber: "0222222222", ShippingFee: 40}
	require.NoError(t, db.Create(&f.storeA).Error)
	require.NoError(t, db.Create(&f.storeB).Error)

	f.staffA = models.Staff{Account: "staff-a", Name: "Staff A", Password: "x", BookstoreID: &f.storeA.ID}
	f.staffB = models.Staff{Account: "staff-b", Name: "Staff B", Password: "x", BookstoreID: &f.storeB.ID}
	require.NoError(t, db.Omit(clause.Associations).Create(&f.staffA).Error)
	require.NoError(t, db.Omit(clause.Associations).Create(&f.staffB).Error)

	book1 := createBook(t, db, "Go in Action", "9781617291784")
	book2 := createBook(t, db, "The Go Programming Language", "9780134190440")

	f.listingA1 = createListing(t, db, book1.ID, f.storeA.ID, 550, 5)
	f.listingA2 = createListing(t, db, book2.ID, f.storeA.ID, 480, 5)
	f.listingB1 = createListing(t, db, book1.ID, f.storeB.ID, 300, 5)

	f.cart = models.Cart{CustomerAccount: f.customer.Account}
	require.NoError(t, db.Omit(clause.Associations).Create(&f.cart).Error)
	f.addCartItem(t, f.listingA1.ID, 1)
	f.addCartItem(t, f.listingA2.ID, 2)
	f.addCartItem(t, f.listingB1.ID, 1)

	return f
}

func createBook(t *testing.T, db *gorm.DB, title, isbn string) models.Book {
	t.Helper()
	published := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	book := models.Book{Title: title, Author: "Author", Publisher: "Publisher", ISBN: isbn, Category: "Programming", PublishDate: &published}
	require.NoError(t, db.Omit(clause.Associations).Create(&book).Error)
	return book
}

func createListing(t *testing.T, db *gorm.DB, bookID, storeID uuid.UUID, price int64, stock int) models.Listing {
	t.Helper()
	listing := models.Listing{BookID: bookID, BookstoreID: storeID, Price: price, Stock: stock}
	require.NoError(t, db.Omit(clause.Associations).Create(&listing).Error)
	return listing
}

func (f *fixture) addCartItem(t *testing.T, listingID uuid.UUID, quantity int) {
	t.Helper()
	item := models.CartItem{CartID: f.cart.ID, ListingID: listingID, Quantity: quantity}
	require.NoError(t, f.db.Omit(clause.Associations).Create(&item).Error)
}

func (f *fixture) adminCoupon(t *testing.T, couponType models.CouponType, pct string, start time.Time, end *time.Time) models.Coupon {
	t.Helper()
	coupon := models.Coupon{
		Name:               string(couponType) + " " + pct,
		Type:               couponType,
		DiscountPercentage: decimal.RequireFromString(pct),
		StartDate:          dateOf(start),
		EndDate:            end,
		AdminAccount:       &f.admin.Account,
	}
	require.NoError(t, f.db.Omit(clause.Associations).Create(&coupon).Error)
	return coupon
}

func (f *fixture) staffCoupon(t *testing.T, staff models.Staff, couponType models.CouponType, pct string) models.Coupon {
	t.Helper()
	coupon := models.Coupon{
		Name:               staff.Name + " " + string(couponType),
		Type:               couponType,
		DiscountPercentage: decimal.RequireFromString(pct),
		StartDate:          dateOf(testNow.AddDate(0, 0, -1)),
		StaffAccount:       &staff.Account,
	}
	require.NoError(t, f.db.Omit(clause.Associations).Create(&coupon).Error)
	return coupon
}

func (f *fixture) stock(t *testing.T, listingID uuid.UUID) int {
	t.Helper()
	var listing models.Listing
	require.NoError(t, f.db.Unscoped().First(&listing, "id = ?", listingID).Error)
	return listing.Stock
}

func (f *fixture) cartItemCount(t *testing.T) int64 {
	t.Helper()
	var count int64
	require.NoError(t, f.db.Model(&models.CartItem{}).Where("cart_id = ?", f.cart.ID).Count(&count).Error)
	return count
}

func (f *fixture) orderCount(t *testing.T) int64 {
	t.Helper()
	var count int64
	require.NoError(t, f.db.Model(&models.Order{}).Count(&count).Error)
	return count
}

// checkout runs Checkout in its own transaction the way handlers do
func (f *fixture) checkout(in CheckoutInput) (*CheckoutResult, error) {
	var result *CheckoutResult
	err := f.db.Transaction(func(tx *gorm.DB) error {
		var err error
		result, err = Checkout(tx, f.customer, in, testNow)
		return err
	})
	return result, err
}

func ptr[T any](v T) *T {
	return &v
}
