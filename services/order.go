package services

import (
	"errors"

	"github.com/Govind-619/BookMall/models"
	"github.com/Govind-619/BookMall/utils"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// withOrderDetails preloads items, the listings sold (deleted ones
// included), books, bookstore and coupon
func withOrderDetails(db *gorm.DB) *gorm.DB {
	return db.Preload("Items").
		Preload("Items.Listing", func(db *gorm.DB) *gorm.DB {
			return db.Unscoped()
		}).
		Preload("Items.Listing.Book").
		Preload("Bookstore").
		Preload("Coupon")
}

// ListCustomerOrders returns the customer's orders, newest first
func ListCustomerOrders(db *gorm.DB, account string) ([]models.Order, error) {
	var orders []models.Order
	err := withOrderDetails(db).
		Where("customer_account = ?", account).
		Order("order_date DESC").
		Find(&orders).Error
	return orders, err
}

// GetCustomerOrder returns one of the customer's orders
func GetCustomerOrder(db *gorm.DB, account string, id uuid.UUID) (*models.Order, error) {
	var order models.Order
	err := withOrderDetails(db).
		Where("id = ? AND customer_account = ?", id, account).
		First(&order).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrOrderNotFound.WithDetail("order %s", id)
	}
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// ListStoreOrders returns the orders placed with a bookstore, newest
// first, optionally limited to one status
func ListStoreOrders(db *gorm.DB, bookstoreID uuid.UUID, status models.OrderStatus) ([]models.Order, error) {
	query := withOrderDetails(db).Where("bookstore_id = ?", bookstoreID)
	if status != "" {
		if !status.Valid() {
			return nil, ErrInvalidStatusTransition.WithDetail("unknown status %q", status)
		}
		query = query.Where("status = ?", status)
	}

	var orders []models.Order
	err := query.Order("order_date DESC").Find(&orders).Error
	return orders, err
}

// UpdateOrderStatus moves an order of the bookstore forward to next
func UpdateOrderStatus(tx *gorm.DB, bookstoreID, id uuid.UUID, next models.OrderStatus) (*models.Order, error) {
	var order models.Order
	err := tx.Where("id = ? AND bookstore_id = ?", id, bookstoreID).First(&order).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrOrderNotFound.WithDetail("order %s", id)
	}
	if err != nil {
		return nil, err
	}

	if !order.Status.CanTransitionTo(next) {
		return nil, ErrInvalidStatusTransition.WithDetail("%s to %s", order.Status, next)
	}

	res := tx.Model(&models.Order{}).
		Where("id = ? AND status = ?", order.ID, order.Status).
		Update("status", next)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, ErrInvalidStatusTransition.WithDetail("order %s changed concurrently", order.ID)
	}

	utils.LogInfo("Order %s moved from %s to %s", order.ID, order.Status, next)
	order.Status = next
	return &order, nil
}
