package controllers

import (
	"net/http"
	"strings"
	"time"

	"github.com/Govind-619/BookMall/models"
	"github.com/Govind-619/BookMall/services"
	"github.com/Govind-619/BookMall/utils"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const listingsPage = "/v1/staff/listings"

// CreateBookRequest represents a new book offered by the staff bookstore
type CreateBookRequest struct {
	Title       string `json:"title" form:"title" binding:"required"`
	Author      string `json:"author" form:"author" binding:"required"`
	Publisher   string `json:"publisher" form:"publisher" binding:"required"`
	ISBN        string `json:"isbn" form:"isbn" binding:"required"`
	Category    string `json:"category" form:"category"`
	Series      string `json:"series" form:"series"`
	PublishDate string `json:"publish_date" form:"publish_date"`
	Price       int64  `json:"price" form:"price"`
	Stock       int    `json:"stock" form:"stock"`
}

// UpdateListingRequest represents a listing price or stock change
type UpdateListingRequest struct {
	Price *int64 `json:"price" form:"price"`
	Stock *int   `json:"stock" form:"stock"`
}

// ListStoreListings returns the listings of the staff member's bookstore
func ListStoreListings(c *gin.Context) {
	_, bookstoreID, ok := currentBookstore(c)
	if !ok {
		return
	}

	listings, err := services.ListStoreListings(db(c), bookstoreID)
	if err != nil {
		utils.LogError("Failed to fetch listings of bookstore %s: %v", bookstoreID, err)
		utils.InternalServerError(c, "Failed to fetch listings", nil)
		return
	}
	utils.Success(c, "Listings retrieved successfully", gin.H{"listings": listings})
}

// CreateBook adds a book to the staff member's bookstore
func CreateBook(c *gin.Context) {
	staff, _, ok := currentBookstore(c)
	if !ok {
		return
	}
	var req CreateBookRequest
	if !bind(c, &req) {
		return
	}

	in := services.BookListingInput{
		Title:     req.Title,
		Author:    req.Author,
		Publisher: req.Publisher,
		ISBN:      req.ISBN,
		Category:  req.Category,
		Series:    req.Series,
		Price:     req.Price,
		Stock:     req.Stock,
	}
	if date := strings.TrimSpace(req.PublishDate); date != "" {
		published, err := time.Parse(utils.DateLayout, date)
		if err != nil {
			utils.WriteFailed(c, listingsPage, services.ErrInvalidBook.WithDetail("publish date must be YYYY-MM-DD"))
			return
		}
		in.PublishDate = &published
	}

	var listing *models.Listing
	err := db(c).Transaction(func(tx *gorm.DB) error {
		var err error
		listing, err = services.CreateBookListing(tx, staff.Staff, in)
		return err
	})
	if err != nil {
		utils.LogError("Staff %s failed to list ISBN %s: %v", staff.Account(), req.ISBN, err)
		utils.WriteFailed(c, listingsPage, err)
		return
	}
	utils.WriteSucceeded(c, listingsPage, http.StatusCreated, "Book listed successfully", listing)
}

// UpdateListing changes the price or stock of a listing
func UpdateListing(c *gin.Context) {
	staff, bookstoreID, ok := currentBookstore(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req UpdateListingRequest
	if !bind(c, &req) {
		return
	}

	var listing *models.Listing
	err := db(c).Transaction(func(tx *gorm.DB) error {
		var err error
		listing, err = services.UpdateListing(tx, bookstoreID, id, services.ListingUpdate{
			Price: req.Price,
			Stock: req.Stock,
		})
		return err
	})
	if err != nil {
		utils.LogError("Staff %s failed to update listing %s: %v", staff.Account(), id, err)
		utils.WriteFailed(c, listingsPage, err)
		return
	}
	utils.WriteSucceeded(c, listingsPage, http.StatusOK, "Listing updated successfully", listing)
}

// DeleteListing removes a listing from the staff member's bookstore
func DeleteListing(c *gin.Context) {
	staff, bookstoreID, ok := currentBookstore(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	err := db(c).Transaction(func(tx *gorm.DB) error {
		return services.DeleteListing(tx, bookstoreID, id)
	})
	if err != nil {
		utils.LogError("Staff %s failed to delete listing %s: %v", staff.Account(), id, err)
		utils.WriteFailed(c, listingsPage, err)
		return
	}
	utils.WriteSucceeded(c, listingsPage, http.StatusOK, "Listing deleted successfully", nil)
}
