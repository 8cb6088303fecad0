package services

import (
	"github.com/Govind-619/BookMall/utils"
)

// Business rule violations. Callers match them with errors.Is; details are
// attached with WithDetail.
var (
	ErrCartEmpty               = utils.BadRequestError("Cart is empty", nil)
	ErrNoItemsForBookstore     = utils.BadRequestError("No items for this bookstore", nil)
	ErrCartItemNotFound        = utils.NotFoundError("Cart item not found", nil)
	ErrListingNotFound         = utils.NotFoundError("Product not found", nil)
	ErrInsufficientStock       = utils.ConflictError("Insufficient stock", nil)
	ErrCouponNotFound          = utils.NotFoundError("Coupon not found", nil)
	ErrCouponScopeMismatch     = utils.UnprocessableError("Coupon is not valid for this bookstore", nil)
	ErrCouponNotActive         = utils.UnprocessableError("Coupon is not active yet", nil)
	ErrCouponExpired           = utils.UnprocessableError("Coupon has expired", nil)
	ErrInvalidCoupon           = utils.BadRequestError("Invalid coupon", nil)
	ErrBookNotFound            = utils.NotFoundError("Book not found", nil)
	ErrInvalidBook             = utils.BadRequestError("Invalid book", nil)
	ErrDuplicateListing        = utils.ConflictError("This bookstore already lists a book with this ISBN", nil)
	ErrInvalidListing          = utils.BadRequestError("Price and stock must not be negative", nil)
	ErrBookstoreClaimed        = utils.ConflictError("A bookstore has already been created for this staff account", nil)
	ErrBookstoreRequired       = utils.ForbiddenError("Create a bookstore first", nil)
	ErrBookstoreNotFound       = utils.NotFoundError("Bookstore not found", nil)
	ErrInvalidBookstore        = utils.BadRequestError("Invalid bookstore", nil)
	ErrOrderNotFound           = utils.NotFoundError("Order not found", nil)
	ErrInvalidStatusTransition = utils.UnprocessableError("Invalid order status transition", nil)
	ErrAccountExists           = utils.ConflictError("Account already exists", nil)
	ErrAccountNotFound         = utils.NotFoundError("Account not found", nil)
	ErrInvalidAccount          = utils.BadRequestError("Invalid account details", nil)
	ErrInvalidCredentials      = utils.UnauthorizedError(utils.ErrInvalidCredentials, nil)
	ErrInvalidRole             = utils.BadRequestError("Invalid role", nil)
	ErrInvalidQuantity         = utils.BadRequestError("Invalid quantity", nil)
	ErrInvalidCheckout         = utils.BadRequestError("Recipient name and shipping address are required", nil)
)
