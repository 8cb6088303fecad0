package services

import (
	"errors"
	"strings"
	"time"

	"github.com/Govind-619/BookMall/models"
	"github.com/Govind-619/BookMall/utils"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CouponInput carries the fields of a new coupon
type CouponInput struct {
	Name               string
	Type               models.CouponType
	DiscountPercentage decimal.Decimal
	StartDate          time.Time
	EndDate            *time.Time
}

// dateOf truncates t to its calendar day in UTC
func dateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// discount applies (1 - p) to amount, rounding half to even
func discount(amount int64, p decimal.Decimal) int64 {
	return decimal.NewFromInt(amount).
		Mul(decimal.NewFromInt(1).Sub(p)).
		RoundBank(0).
		IntPart()
}

// ValidateCoupon checks scope and the activity window of coupon. The end
// date is exclusive. coupon.Staff must be preloaded for scoped coupons.
func ValidateCoupon(coupon *models.Coupon, bookstoreID *uuid.UUID, today time.Time) error {
	if coupon.IsScoped() {
		couponStore := coupon.BookstoreID()
		if couponStore == nil || bookstoreID == nil || *couponStore != *bookstoreID {
			return ErrCouponScopeMismatch.WithDetail("coupon %s", coupon.Name)
		}
	}

	day := dateOf(today)
	if day.Before(dateOf(coupon.StartDate)) {
		return ErrCouponNotActive.WithDetail("coupon %s starts on %s", coupon.Name, coupon.StartDate.Format(utils.DateLayout))
	}
	if coupon.EndDate != nil && !day.Before(dateOf(*coupon.EndDate)) {
		return ErrCouponExpired.WithDetail("coupon %s ended on %s", coupon.Name, coupon.EndDate.Format(utils.DateLayout))
	}
	return nil
}

// ApplyCoupon validates coupon for an order of bookstoreID and rewrites the
// order's TotalPrice and ShippingFee by the coupon's discount rule. The
// order must carry pre-discount values and is left untouched on error.
func ApplyCoupon(coupon *models.Coupon, order *models.Order, bookstoreID *uuid.UUID, today time.Time) error {
	if err := ValidateCoupon(coupon, bookstoreID, today); err != nil {
		return err
	}

	items := order.TotalPrice - order.ShippingFee
	p := coupon.DiscountPercentage

	switch coupon.Type {
	case models.CouponTypeShipping:
		order.ShippingFee = discount(order.ShippingFee, p)
		order.TotalPrice = items + order.ShippingFee
	case models.CouponTypeSeasonings:
		order.TotalPrice = discount(order.TotalPrice, p)
	case models.CouponTypeSpecialEvent:
		order.TotalPrice = discount(items, p) + order.ShippingFee
	default:
		return ErrInvalidCoupon.WithDetail("unknown coupon type %q", coupon.Type)
	}
	return nil
}

func (in CouponInput) validate() error {
	if strings.TrimSpace(in.Name) == "" {
		return ErrInvalidCoupon.WithDetail("name is required")
	}
	if !in.Type.Valid() {
		return ErrInvalidCoupon.WithDetail("unknown coupon type %q", in.Type)
	}
	if in.DiscountPercentage.IsNegative() || in.DiscountPercentage.GreaterThan(decimal.NewFromInt(1)) {
		return ErrInvalidCoupon.WithDetail("discount percentage must be between 0 and 1")
	}
	if in.StartDate.IsZero() {
		return ErrInvalidCoupon.WithDetail("start date is required")
	}
	if in.EndDate != nil && !dateOf(*in.EndDate).After(dateOf(in.StartDate)) {
		return ErrInvalidCoupon.WithDetail("end date must be after start date")
	}
	return nil
}

func (in CouponInput) coupon() *models.Coupon {
	coupon := &models.Coupon{
		Name:               strings.TrimSpace(in.Name),
		Type:               in.Type,
		DiscountPercentage: in.DiscountPercentage,
		StartDate:          dateOf(in.StartDate),
	}
	if in.EndDate != nil {
		end := dateOf(*in.EndDate)
		coupon.EndDate = &end
	}
	return coupon
}

// CreateAdminCoupon creates a platform-wide coupon
func CreateAdminCoupon(tx *gorm.DB, admin models.Admin, in CouponInput) (*models.Coupon, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	coupon := in.coupon()
	coupon.AdminAccount = &admin.Account
	if err := tx.Omit(clause.Associations).Create(coupon).Error; err != nil {
		return nil, err
	}
	coupon.Admin = &admin
	utils.LogInfo("Admin %s created coupon %s (%s)", admin.Account, coupon.ID, coupon.Type)
	return coupon, nil
}

// CreateStaffCoupon creates a coupon scoped to the staff member's bookstore
func CreateStaffCoupon(tx *gorm.DB, staff models.Staff, in CouponInput) (*models.Coupon, error) {
	if staff.BookstoreID == nil {
		return nil, ErrBookstoreRequired
	}
	if err := in.validate(); err != nil {
		return nil, err
	}

	coupon := in.coupon()
	coupon.StaffAccount = &staff.Account
	if err := tx.Omit(clause.Associations).Create(coupon).Error; err != nil {
		return nil, err
	}
	coupon.Staff = &staff
	utils.LogInfo("Staff %s created coupon %s (%s) for bookstore %s", staff.Account, coupon.ID, coupon.Type, staff.BookstoreID)
	return coupon, nil
}

// GetCoupon loads a coupon with its issuer
func GetCoupon(db *gorm.DB, id uuid.UUID) (*models.Coupon, error) {
	var coupon models.Coupon
	err := db.Preload("Staff").Preload("Admin").First(&coupon, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrCouponNotFound.WithDetail("coupon %s", id)
	}
	if err != nil {
		return nil, err
	}
	return &coupon, nil
}

// ListAllCoupons returns every coupon with its issuer, newest first
func ListAllCoupons(db *gorm.DB) ([]models.Coupon, error) {
	var coupons []models.Coupon
	err := db.Preload("Staff").Preload("Admin").
		Order("created_at DESC").
		Find(&coupons).Error
	return coupons, err
}

// ListBookstoreCoupons returns the coupons issued by any staff member of
// the given bookstore
func ListBookstoreCoupons(db *gorm.DB, bookstoreID uuid.UUID) ([]models.Coupon, error) {
	var coupons []models.Coupon
	err := db.Preload("Staff").
		Joins("JOIN staff ON staff.account = coupons.staff_account").
		Where("staff.bookstore_id = ?", bookstoreID).
		Order("coupons.created_at DESC").
		Find(&coupons).Error
	return coupons, err
}

// ActiveCoupons returns the coupons a customer can use today: every active
// platform coupon plus, when bookstoreID is set, that bookstore's active
// coupons
func ActiveCoupons(db *gorm.DB, bookstoreID *uuid.UUID, today time.Time) ([]models.Coupon, error) {
	query := db.Preload("Staff").Preload("Admin").
		Joins("LEFT JOIN staff ON staff.account = coupons.staff_account")
	if bookstoreID != nil {
		query = query.Where("coupons.staff_account IS NULL OR staff.bookstore_id = ?", *bookstoreID)
	} else {
		query = query.Where("coupons.staff_account IS NULL")
	}

	var candidates []models.Coupon
	if err := query.Order("coupons.start_date DESC").Find(&candidates).Error; err != nil {
		return nil, err
	}

	active := make([]models.Coupon, 0, len(candidates))
	for i := range candidates {
		if ValidateCoupon(&candidates[i], bookstoreID, today) == nil {
			active = append(active, candidates[i])
		}
	}
	return active, nil
}

// DeleteCoupon removes a coupon. Orders that used it keep their prices and
// lose the reference.
func DeleteCoupon(tx *gorm.DB, id uuid.UUID) error {
	if _, err := GetCoupon(tx, id); err != nil {
		return err
	}
	return deleteCoupons(tx, []uuid.UUID{id})
}

// DeleteBookstoreCoupon removes a coupon issued by a staff member of the
// given bookstore
func DeleteBookstoreCoupon(tx *gorm.DB, bookstoreID uuid.UUID, id uuid.UUID) error {
	coupon, err := GetCoupon(tx, id)
	if err != nil {
		return err
	}
	store := coupon.BookstoreID()
	if store == nil || *store != bookstoreID {
		return ErrCouponNotFound.WithDetail("coupon %s", id)
	}
	return deleteCoupons(tx, []uuid.UUID{id})
}

func deleteCoupons(tx *gorm.DB, ids []uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}
	if err := tx.Model(&models.Order{}).
		Where("coupon_id IN ?", ids).
		Update("coupon_id", nil).Error; err != nil {
		return err
	}
	if err := tx.Where("id IN ?", ids).Delete(&models.Coupon{}).Error; err != nil {
		return err
	}
	utils.LogInfo("Deleted %d coupon(s)", len(ids))
	return nil
}
