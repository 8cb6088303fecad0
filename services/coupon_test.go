package services

import (
	"testing"
	"time"

	"github.com/Govind-619/BookMall/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func draftOrder(total, shipping int64) *models.Order {
	return &models.Order{TotalPrice: total, ShippingFee: shipping}
}

func platformCoupon(couponType models.CouponType, pct string) *models.Coupon {
	return &models.Coupon{
		Name:               "test",
		Type:               couponType,
		DiscountPercentage: decimal.RequireFromString(pct),
		StartDate:          testNow.AddDate(0, 0, -7),
	}
}

func TestApplyCouponDiscounts(t *testing.T) {
	tests := []struct {
		name         string
		couponType   models.CouponType
		pct          string
		total        int64
		shipping     int64
		wantTotal    int64
		wantShipping int64
	}{
		{"shipping halves the fee", models.CouponTypeShipping, "0.5", 1610, 60, 1580, 30},
		{"shipping rounds half to even", models.CouponTypeShipping, "0.5", 1595, 45, 1572, 22},
		{"shipping free", models.CouponTypeShipping, "1", 1610, 60, 1550, 0},
		{"seasonings discounts the whole total", models.CouponTypeSeasonings, "0.1", 1610, 60, 1449, 60},
		{"special event keeps shipping", models.CouponTypeSpecialEvent, "0.25", 1610, 60, 1222, 60},
		{"special event rounds half to even", models.CouponTypeSpecialEvent, "0.5", 65, 60, 62, 60},
		{"zero percent changes nothing", models.CouponTypeSeasonings, "0", 1610, 60, 1610, 60},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			order := draftOrder(tt.total, tt.shipping)
			err := ApplyCoupon(platformCoupon(tt.couponType, tt.pct), order, nil, testNow)
			require.NoError(t, err)
			assert.Equal(t, tt.wantTotal, order.TotalPrice)
			assert.Equal(t, tt.wantShipping, order.ShippingFee)
		})
	}
}

func TestApplyCouponShippingProperty(t *testing.T) {
	for _, pct := range []string{"0", "0.05", "0.1", "0.333", "0.5", "0.75", "1"} {
		for _, fee := range []int64{0, 1, 15, 45, 60, 99, 125} {
			items := int64(1000)
			order := draftOrder(items+fee, fee)
			p := decimal.RequireFromString(pct)

			require.NoError(t, ApplyCoupon(platformCoupon(models.CouponTypeShipping, pct), order, nil, testNow))

			want := decimal.NewFromInt(fee).Mul(decimal.NewFromInt(1).Sub(p)).RoundBank(0).IntPart()
			assert.Equal(t, want, order.ShippingFee, "pct %s fee %d", pct, fee)
			assert.Equal(t, items+want, order.TotalPrice, "pct %s fee %d", pct, fee)
		}
	}
}

func TestApplyCouponSpecialEventKeepsShipping(t *testing.T) {
	for _, fee := range []int64{0, 40, 60, 135} {
		order := draftOrder(2000+fee, fee)
		require.NoError(t, ApplyCoupon(platformCoupon(models.CouponTypeSpecialEvent, "0.3"), order, nil, testNow))
		assert.Equal(t, fee, order.ShippingFee)
		assert.Equal(t, int64(1400)+fee, order.TotalPrice)
	}
}

func TestApplyCouponDates(t *testing.T) {
	today := testNow
	yesterday := today.AddDate(0, 0, -1)
	tomorrow := today.AddDate(0, 0, 1)

	tests := []struct {
		name    string
		start   time.Time
		end     *time.Time
		wantErr error
	}{
		{"open ended", yesterday, nil, nil},
		{"starts today", dateOf(today), nil, nil},
		{"ends tomorrow", yesterday, &tomorrow, nil},
		{"ends today is expired", yesterday, ptr(dateOf(today)), ErrCouponExpired},
		{"ended yesterday", today.AddDate(0, 0, -7), &yesterday, ErrCouponExpired},
		{"starts tomorrow", tomorrow, nil, ErrCouponNotActive},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			coupon := platformCoupon(models.CouponTypeSeasonings, "0.1")
			coupon.StartDate = tt.start
			coupon.EndDate = tt.end
			order := draftOrder(1610, 60)

			err := ApplyCoupon(coupon, order, nil, today)
			if tt.wantErr == nil {
				require.NoError(t, err)
				assert.Equal(t, int64(1449), order.TotalPrice)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Equal(t, int64(1610), order.TotalPrice)
			assert.Equal(t, int64(60), order.ShippingFee)
		})
	}
}

func TestApplyCouponScope(t *testing.T) {
	storeA := uuid.New()
	storeB := uuid.New()
	staffAccount := "staff-a"

	scoped := func(store *uuid.UUID) *models.Coupon {
		coupon := platformCoupon(models.CouponTypeSeasonings, "0.1")
		coupon.StaffAccount = &staffAccount
		coupon.Staff = &models.Staff{Account: staffAccount, BookstoreID: store}
		return coupon
	}

	t.Run("same bookstore", func(t *testing.T) {
		order := draftOrder(1610, 60)
		require.NoError(t, ApplyCoupon(scoped(&storeA), order, &storeA, testNow))
		assert.Equal(t, int64(1449), order.TotalPrice)
	})

	mismatches := map[string]struct {
		couponStore *uuid.UUID
		orderStore  *uuid.UUID
	}{
		"other bookstore":         {&storeA, &storeB},
		"order store missing":     {&storeA, nil},
		"staff without bookstore": {nil, &storeA},
	}
	for name, tt := range mismatches {
		t.Run(name, func(t *testing.T) {
			order := draftOrder(1610, 60)
			err := ApplyCoupon(scoped(tt.couponStore), order, tt.orderStore, testNow)
			assert.ErrorIs(t, err, ErrCouponScopeMismatch)
			assert.Equal(t, int64(1610), order.TotalPrice)
			assert.Equal(t, int64(60), order.ShippingFee)
		})
	}

	t.Run("platform coupon fits any bookstore", func(t *testing.T) {
		order := draftOrder(1610, 60)
		require.NoError(t, ApplyCoupon(platformCoupon(models.CouponTypeSeasonings, "0.1"), order, &storeB, testNow))
		assert.Equal(t, int64(1449), order.TotalPrice)
	})
}

func TestCreateCouponValidation(t *testing.T) {
	f := newFixture(t)
	start := testNow

	_, err := CreateAdminCoupon(f.db, f.admin, CouponInput{Name: "bad", Type: "bogus", DiscountPercentage: decimal.RequireFromString("0.1"), StartDate: start})
	assert.ErrorIs(t, err, ErrInvalidCoupon)

	_, err = CreateAdminCoupon(f.db, f.admin, CouponInput{Name: "bad", Type: models.CouponTypeShipping, DiscountPercentage: decimal.RequireFromString("1.5"), StartDate: start})
	assert.ErrorIs(t, err, ErrInvalidCoupon)

	_, err = CreateAdminCoupon(f.db, f.admin, CouponInput{Name: "bad", Type: models.CouponTypeShipping, DiscountPercentage: decimal.RequireFromString("0.1"), StartDate: start, EndDate: &start})
	assert.ErrorIs(t, err, ErrInvalidCoupon)

	_, err = CreateStaffCoupon(f.db, models.Staff{Account: "new-staff"}, CouponInput{Name: "x", Type: models.CouponTypeShipping, DiscountPercentage: decimal.RequireFromString("0.1"), StartDate: start})
	assert.ErrorIs(t, err, ErrBookstoreRequired)

	coupon, err := CreateStaffCoupon(f.db, f.staffA, CouponInput{Name: " Autumn ", Type: models.CouponTypeSpecialEvent, DiscountPercentage: decimal.RequireFromString("0.2"), StartDate: start})
	require.NoError(t, err)
	assert.Equal(t, "Autumn", coupon.Name)
	assert.Equal(t, f.storeA.ID, *coupon.BookstoreID())
}

func TestListAndActiveCoupons(t *testing.T) {
	f := newFixture(t)
	yesterday := testNow.AddDate(0, 0, -1)
	platform := f.adminCoupon(t, models.CouponTypeSeasonings, "0.1", yesterday, nil)
	f.adminCoupon(t, models.CouponTypeShipping, "0.5", testNow.AddDate(0, 0, 3), nil)
	f.adminCoupon(t, models.CouponTypeShipping, "0.5", testNow.AddDate(0, 0, -10), ptr(dateOf(testNow)))
	storeA := f.staffCoupon(t, f.staffA, models.CouponTypeSpecialEvent, "0.2")
	storeB := f.staffCoupon(t, f.staffB, models.CouponTypeShipping, "0.3")

	all, err := ListAllCoupons(f.db)
	require.NoError(t, err)
	assert.Len(t, all, 5)

	// A second staff member of store A sees the coupons of the whole store
	colleague := models.Staff{Account: "staff-a2", Name: "Staff A2", Password: "x", BookstoreID: &f.storeA.ID}
	require.NoError(t, f.db.Omit("Bookstore").Create(&colleague).Error)
	mine, err := ListBookstoreCoupons(f.db, *colleague.BookstoreID)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, storeA.ID, mine[0].ID)

	active, err := ActiveCoupons(f.db, &f.storeA.ID, testNow)
	require.NoError(t, err)
	ids := []uuid.UUID{}
	for _, c := range active {
		ids = append(ids, c.ID)
	}
	assert.ElementsMatch(t, []uuid.UUID{platform.ID, storeA.ID}, ids)

	active, err = ActiveCoupons(f.db, nil, testNow)
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, platform.ID, active[0].ID)

	assert.NotContains(t, ids, storeB.ID)
}

func TestDeleteCouponKeepsOrders(t *testing.T) {
	f := newFixture(t)
	coupon := f.staffCoupon(t, f.staffA, models.CouponTypeSeasonings, "0.1")

	result, err := f.checkout(CheckoutInput{BookstoreID: f.storeA.ID, CouponID: &coupon.ID, RecipientName: "Alice", ShippingAddress: "1 Main St"})
	require.NoError(t, err)
	require.NotNil(t, result.Order.CouponID)

	// Staff of another bookstore cannot delete it
	err = DeleteBookstoreCoupon(f.db, f.storeB.ID, coupon.ID)
	assert.ErrorIs(t, err, ErrCouponNotFound)

	require.NoError(t, DeleteBookstoreCoupon(f.db, f.storeA.ID, coupon.ID))

	var order models.Order
	require.NoError(t, f.db.First(&order, "id = ?", result.Order.ID).Error)
	assert.Nil(t, order.CouponID)
	assert.Equal(t, int64(1413), order.TotalPrice)

	assert.ErrorIs(t, DeleteCoupon(f.db, coupon.ID), ErrCouponNotFound)
}
