package controllers

import (
	"strconv"

	"github.com/Govind-619/BookMall/services"
	"github.com/Govind-619/BookMall/utils"
	"github.com/gin-gonic/gin"
)

// ListBooks searches the catalog by keyword and category
func ListBooks(c *gin.Context) {
	pagination := utils.NewPagination(c)
	filter := services.BookFilter{
		Keyword:  utils.SanitizeString(c.Query("keyword")),
		Category: utils.SanitizeString(c.Query("category")),
	}

	books, err := services.SearchBooks(db(c), filter, pagination)
	if err != nil {
		utils.LogError("Failed to search books: %v", err)
		utils.InternalServerError(c, "Failed to fetch books", nil)
		return
	}

	utils.LogInfo("Found %d books for keyword %q category %q", pagination.Total, filter.Keyword, filter.Category)
	utils.SuccessWithPagination(c, "Books retrieved successfully", books, pagination)
}

// GetBookDetails returns a book with every bookstore selling it
func GetBookDetails(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	book, err := services.GetBook(db(c), id)
	if err != nil {
		utils.LogError("Failed to fetch book %s: %v", id, err)
		utils.RespondError(c, err)
		return
	}
	utils.Success(c, "Book details retrieved successfully", book)
}

// ListCategories returns the distinct book categories
func ListCategories(c *gin.Context) {
	categories, err := services.ListCategories(db(c))
	if err != nil {
		utils.LogError("Failed to fetch categories: %v", err)
		utils.InternalServerError(c, "Failed to fetch categories", nil)
		return
	}
	utils.Success(c, "Categories retrieved successfully", gin.H{"categories": categories})
}

// NewArrivals returns the most recently published books
func NewArrivals(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(utils.DefaultPaginationLimit)))

	books, err := services.NewArrivals(db(c), limit)
	if err != nil {
		utils.LogError("Failed to fetch new arrivals: %v", err)
		utils.InternalServerError(c, "Failed to fetch new arrivals", nil)
		return
	}
	utils.Success(c, "New arrivals retrieved successfully", books)
}
