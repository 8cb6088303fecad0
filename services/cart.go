package services

import (
	"errors"

	"github.com/Govind-619/BookMall/models"
	"github.com/Govind-619/BookMall/utils"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// withCartItems preloads cart items with their listing, book and bookstore.
// Withdrawn listings are loaded too so checkout can report them.
func withCartItems(db *gorm.DB) *gorm.DB {
	return db.Preload("Items", func(db *gorm.DB) *gorm.DB {
		return db.Order("cart_items.created_at")
	}).
		Preload("Items.Listing", func(db *gorm.DB) *gorm.DB {
			return db.Unscoped()
		}).
		Preload("Items.Listing.Book").
		Preload("Items.Listing.Bookstore")
}

// GetCart returns the customer's cart. A customer without a cart gets an
// empty one, which is not persisted.
func GetCart(db *gorm.DB, account string) (*models.Cart, error) {
	var cart models.Cart
	err := withCartItems(db).Where("customer_account = ?", account).First(&cart).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &models.Cart{CustomerAccount: account, Items: []models.CartItem{}}, nil
	}
	if err != nil {
		return nil, err
	}
	return &cart, nil
}

// CartCount returns the number of books in the customer's cart
func CartCount(db *gorm.DB, account string) (int64, error) {
	var count int64
	err := db.Model(&models.CartItem{}).
		Joins("JOIN carts ON carts.id = cart_items.cart_id").
		Where("carts.customer_account = ?", account).
		Select("COALESCE(SUM(cart_items.quantity), 0)").
		Scan(&count).Error
	return count, err
}

// CartGroup is the part of a cart sold by one bookstore, which checks out
// as one order
type CartGroup struct {
	Bookstore   models.Bookstore  `json:"bookstore"`
	Items       []models.CartItem `json:"items"`
	Subtotal    int64             `json:"subtotal"`
	ShippingFee int64             `json:"shipping_fee"`
	Total       int64             `json:"total"`
}

// CartSummary splits a cart by bookstore, in order of first appearance
func CartSummary(cart *models.Cart) []CartGroup {
	groups := []CartGroup{}
	index := map[uuid.UUID]int{}
	for _, item := range cart.Items {
		storeID := item.Listing.BookstoreID
		i, ok := index[storeID]
		if !ok {
			i = len(groups)
			index[storeID] = i
			groups = append(groups, CartGroup{
				Bookstore:   item.Listing.Bookstore,
				ShippingFee: item.Listing.Bookstore.ShippingFee,
			})
		}
		groups[i].Items = append(groups[i].Items, item)
		groups[i].Subtotal += item.Subtotal()
	}
	for i := range groups {
		groups[i].Total = groups[i].Subtotal + groups[i].ShippingFee
	}
	return groups
}

func findOrCreateCart(tx *gorm.DB, account string) (*models.Cart, error) {
	var cart models.Cart
	err := tx.Where("customer_account = ?", account).First(&cart).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		cart = models.Cart{CustomerAccount: account}
		if err := tx.Omit(clause.Associations).Create(&cart).Error; err != nil {
			return nil, err
		}
		return &cart, nil
	}
	if err != nil {
		return nil, err
	}
	return &cart, nil
}

func getListing(tx *gorm.DB, id uuid.UUID) (*models.Listing, error) {
	var listing models.Listing
	err := tx.First(&listing, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrListingNotFound.WithDetail("listing %s", id)
	}
	if err != nil {
		return nil, err
	}
	return &listing, nil
}

// AddToCart puts quantity copies of a listing in the customer's cart,
// merging with an existing line for the same listing
func AddToCart(tx *gorm.DB, account string, listingID uuid.UUID, quantity int) (*models.CartItem, error) {
	if quantity < 1 {
		return nil, ErrInvalidQuantity.WithDetail("quantity must be at least 1")
	}
	listing, err := getListing(tx, listingID)
	if err != nil {
		return nil, err
	}
	cart, err := findOrCreateCart(tx, account)
	if err != nil {
		return nil, err
	}

	var item models.CartItem
	err = tx.Where("cart_id = ? AND listing_id = ?", cart.ID, listing.ID).First(&item).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		item = models.CartItem{CartID: cart.ID, ListingID: listing.ID}
	case err != nil:
		return nil, err
	}

	item.Quantity += quantity
	if item.Quantity > listing.Stock {
		return nil, ErrInsufficientStock.WithDetail("only %d left in stock", listing.Stock)
	}
	if err := tx.Omit(clause.Associations).Save(&item).Error; err != nil {
		return nil, err
	}

	utils.LogInfo("Customer %s has %d of listing %s in cart", account, item.Quantity, listing.ID)
	item.Listing = *listing
	return &item, nil
}

func getCartItem(tx *gorm.DB, account string, itemID uuid.UUID) (*models.CartItem, error) {
	var item models.CartItem
	err := tx.Joins("JOIN carts ON carts.id = cart_items.cart_id").
		Where("cart_items.id = ? AND carts.customer_account = ?", itemID, account).
		First(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrCartItemNotFound.WithDetail("item %s", itemID)
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// UpdateCartItem sets the quantity of a cart line. Zero removes the line
// and returns nil.
func UpdateCartItem(tx *gorm.DB, account string, itemID uuid.UUID, quantity int) (*models.CartItem, error) {
	if quantity < 0 {
		return nil, ErrInvalidQuantity.WithDetail("quantity must not be negative")
	}
	item, err := getCartItem(tx, account, itemID)
	if err != nil {
		return nil, err
	}
	if quantity == 0 {
		return nil, removeCartItem(tx, item)
	}

	listing, err := getListing(tx, item.ListingID)
	if err != nil {
		return nil, err
	}
	if quantity > listing.Stock {
		return nil, ErrInsufficientStock.WithDetail("only %d left in stock", listing.Stock)
	}
	if err := tx.Model(item).Update("quantity", quantity).Error; err != nil {
		return nil, err
	}
	item.Quantity = quantity
	item.Listing = *listing
	return item, nil
}

// RemoveCartItem deletes a line from the customer's cart
func RemoveCartItem(tx *gorm.DB, account string, itemID uuid.UUID) error {
	item, err := getCartItem(tx, account, itemID)
	if err != nil {
		return err
	}
	return removeCartItem(tx, item)
}

func removeCartItem(tx *gorm.DB, item *models.CartItem) error {
	if err := tx.Delete(&models.CartItem{}, "id = ?", item.ID).Error; err != nil {
		return err
	}
	utils.LogInfo("Removed cart item %s", item.ID)
	return nil
}
