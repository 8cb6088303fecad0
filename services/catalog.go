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

// BookFilter narrows a catalog search
type BookFilter struct {
	Keyword  string
	Category string
}

// withStoreListings preloads the live listings of each book and their bookstores
func withStoreListings(db *gorm.DB) *gorm.DB {
	return db.Preload("Listings").Preload("Listings.Bookstore")
}

// SearchBooks returns a page of books matching the filter
func SearchBooks(db *gorm.DB, filter BookFilter, p *utils.Pagination) ([]models.Book, error) {
	query := db.Model(&models.Book{})
	if keyword := strings.TrimSpace(filter.Keyword); keyword != "" {
		like := "%" + strings.ToLower(keyword) + "%"
		query = query.Where("LOWER(title) LIKE ? OR LOWER(author) LIKE ? OR isbn LIKE ?", like, like, like)
	}
	if category := strings.TrimSpace(filter.Category); category != "" {
		query = query.Where("category = ?", category)
	}
	// Share the conditions between the count and the page query
	query = query.Session(&gorm.Session{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, err
	}
	p.SetTotal(total)

	var books []models.Book
	err := withStoreListings(query).
		Order("title").
		Offset(p.Offset).
		Limit(p.Limit).
		Find(&books).Error
	return books, err
}

// GetBook returns a book with every bookstore listing it
func GetBook(db *gorm.DB, id uuid.UUID) (*models.Book, error) {
	var book models.Book
	err := withStoreListings(db).First(&book, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrBookNotFound.WithDetail("book %s", id)
	}
	if err != nil {
		return nil, err
	}
	return &book, nil
}

// ListCategories returns the distinct non-empty book categories
func ListCategories(db *gorm.DB) ([]string, error) {
	var categories []string
	err := db.Model(&models.Book{}).
		Where("category <> ''").
		Distinct("category").
		Order("category").
		Pluck("category", &categories).Error
	return categories, err
}

// NewArrivals returns the most recently published books
func NewArrivals(db *gorm.DB, limit int) ([]models.Book, error) {
	if limit <= 0 || limit > utils.MaxPaginationLimit {
		limit = utils.DefaultPaginationLimit
	}
	var books []models.Book
	err := withStoreListings(db).
		Where("publish_date IS NOT NULL").
		Order("publish_date DESC").
		Order("created_at DESC").
		Limit(limit).
		Find(&books).Error
	return books, err
}

// BookstoreInput carries the fields of a new bookstore
type BookstoreInput struct {
	Name        string
	PhoneNumber string
	Email       string
	Address     string
	ShippingFee int64
}

// ClaimBookstore creates a bookstore and binds it to the staff member. A
// staff member may create one bookstore only.
func ClaimBookstore(tx *gorm.DB, staff models.Staff, in BookstoreInput) (*models.Bookstore, error) {
	if staff.BookstoreID != nil {
		return nil, ErrBookstoreClaimed
	}

	name := utils.SanitizeString(in.Name)
	if name == "" {
		return nil, ErrInvalidBookstore.WithDetail("name is required")
	}
	valid, phone := utils.ValidatePhone(in.PhoneNumber)
	if !valid || phone == "" {
		return nil, ErrInvalidBookstore.WithDetail("phone number must be exactly 10 digits")
	}
	email := strings.TrimSpace(in.Email)
	if email != "" {
		if valid, msg := utils.ValidateEmail(email); !valid {
			return nil, ErrInvalidBookstore.WithDetail("%s", msg)
		}
	}
	if in.ShippingFee < 0 {
		return nil, ErrInvalidBookstore.WithDetail("shipping fee must not be negative")
	}

	bookstore := &models.Bookstore{
		Name:        name,
		PhoneNumber: phone,
		Email:       email,
		Address:     utils.SanitizeString(in.Address),
		ShippingFee: in.ShippingFee,
	}
	if err := tx.Create(bookstore).Error; err != nil {
		return nil, err
	}

	// Bind only if no other request claimed first
	res := tx.Model(&models.Staff{}).
		Where("account = ? AND bookstore_id IS NULL", staff.Account).
		Update("bookstore_id", bookstore.ID)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, ErrBookstoreClaimed
	}

	utils.LogInfo("Staff %s created bookstore %s", staff.Account, bookstore.ID)
	return bookstore, nil
}

// GetBookstore returns a bookstore by id
func GetBookstore(db *gorm.DB, id uuid.UUID) (*models.Bookstore, error) {
	var bookstore models.Bookstore
	err := db.First(&bookstore, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrBookstoreNotFound.WithDetail("bookstore %s", id)
	}
	if err != nil {
		return nil, err
	}
	return &bookstore, nil
}

// BookListingInput carries a book and the staff bookstore's offer for it
type BookListingInput struct {
	Title       string
	Author      string
	Publisher   string
	ISBN        string
	Category    string
	Series      string
	PublishDate *time.Time
	Price       int64
	Stock       int
}

func (in *BookListingInput) validate() error {
	in.Title = utils.SanitizeString(in.Title)
	in.Author = utils.SanitizeString(in.Author)
	in.Publisher = utils.SanitizeString(in.Publisher)
	in.ISBN = strings.ReplaceAll(strings.TrimSpace(in.ISBN), " ", "")
	in.Category = utils.SanitizeString(in.Category)
	in.Series = utils.SanitizeString(in.Series)

	if in.Title == "" || in.Author == "" || in.Publisher == "" {
		return ErrInvalidBook.WithDetail("title, author and publisher are required")
	}
	if err := utils.ValidateStringLength(in.ISBN, 10, 17); err != nil {
		return ErrInvalidBook.WithDetail("isbn %v", err)
	}
	if in.Price < 0 || in.Stock < 0 {
		return ErrInvalidListing
	}
	return nil
}

// CreateBookListing lists a book in the staff member's bookstore. The book
// is created on first listing; later listings reuse it by ISBN. A listing
// that was deleted earlier is restored with the new price and stock.
func CreateBookListing(tx *gorm.DB, staff models.Staff, in BookListingInput) (*models.Listing, error) {
	if staff.BookstoreID == nil {
		return nil, ErrBookstoreRequired
	}
	if err := in.validate(); err != nil {
		return nil, err
	}

	var book models.Book
	err := tx.Where("isbn = ?", in.ISBN).First(&book).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		book = models.Book{
			Title:       in.Title,
			Author:      in.Author,
			Publisher:   in.Publisher,
			ISBN:        in.ISBN,
			Category:    in.Category,
			Series:      in.Series,
			PublishDate: in.PublishDate,
		}
		if err := tx.Omit(clause.Associations).Create(&book).Error; err != nil {
			return nil, err
		}
		utils.LogInfo("Created book %s (ISBN %s)", book.ID, book.ISBN)
	} else if err != nil {
		return nil, err
	}

	var listing models.Listing
	err = tx.Unscoped().
		Where("book_id = ? AND bookstore_id = ?", book.ID, *staff.BookstoreID).
		First(&listing).Error
	switch {
	case err == nil && !listing.DeletedAt.Valid:
		return nil, ErrDuplicateListing.WithDetail("isbn %s", in.ISBN)
	case err == nil:
		if err := tx.Unscoped().Model(&listing).Updates(map[string]interface{}{
			"price":      in.Price,
			"stock":      in.Stock,
			"deleted_at": nil,
		}).Error; err != nil {
			return nil, err
		}
		utils.LogInfo("Restored listing %s for bookstore %s", listing.ID, staff.BookstoreID)
	case errors.Is(err, gorm.ErrRecordNotFound):
		listing = models.Listing{
			BookID:      book.ID,
			BookstoreID: *staff.BookstoreID,
			Price:       in.Price,
			Stock:       in.Stock,
		}
		if err := tx.Omit(clause.Associations).Create(&listing).Error; err != nil {
			return nil, err
		}
		utils.LogInfo("Created listing %s for bookstore %s", listing.ID, staff.BookstoreID)
	default:
		return nil, err
	}

	return getStoreListing(tx, *staff.BookstoreID, listing.ID)
}

// ListStoreListings returns the live listings of a bookstore
func ListStoreListings(db *gorm.DB, bookstoreID uuid.UUID) ([]models.Listing, error) {
	var listings []models.Listing
	err := db.Preload("Book").
		Where("bookstore_id = ?", bookstoreID).
		Order("created_at DESC").
		Find(&listings).Error
	return listings, err
}

func getStoreListing(db *gorm.DB, bookstoreID, id uuid.UUID) (*models.Listing, error) {
	var listing models.Listing
	err := db.Preload("Book").Preload("Bookstore").
		Where("id = ? AND bookstore_id = ?", id, bookstoreID).
		First(&listing).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrListingNotFound.WithDetail("listing %s", id)
	}
	if err != nil {
		return nil, err
	}
	return &listing, nil
}

// ListingUpdate carries new price and stock values. Nil fields are left
// unchanged.
type ListingUpdate struct {
	Price *int64
	Stock *int
}

// UpdateListing changes the price or stock of one of the staff bookstore's
// listings
func UpdateListing(tx *gorm.DB, bookstoreID, id uuid.UUID, in ListingUpdate) (*models.Listing, error) {
	listing, err := getStoreListing(tx, bookstoreID, id)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if in.Price != nil {
		if *in.Price < 0 {
			return nil, ErrInvalidListing
		}
		updates["price"] = *in.Price
	}
	if in.Stock != nil {
		if *in.Stock < 0 {
			return nil, ErrInvalidListing
		}
		updates["stock"] = *in.Stock
	}
	if len(updates) == 0 {
		return listing, nil
	}

	if err := tx.Model(&models.Listing{}).Where("id = ?", listing.ID).Updates(updates).Error; err != nil {
		return nil, err
	}
	utils.LogInfo("Updated listing %s: %v", listing.ID, updates)
	return getStoreListing(tx, bookstoreID, id)
}

// DeleteListing withdraws a listing from sale and drops it from every cart.
// Order history keeps referring to it.
func DeleteListing(tx *gorm.DB, bookstoreID, id uuid.UUID) error {
	listing, err := getStoreListing(tx, bookstoreID, id)
	if err != nil {
		return err
	}

	if err := tx.Where("listing_id = ?", listing.ID).Delete(&models.CartItem{}).Error; err != nil {
		return err
	}
	if err := tx.Delete(&models.Listing{}, "id = ?", listing.ID).Error; err != nil {
		return err
	}
	utils.LogInfo("Deleted listing %s from bookstore %s", listing.ID, bookstoreID)
	return nil
}
