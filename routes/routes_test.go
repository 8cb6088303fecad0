package routes

import (
	"net/http"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/Govind-619/BookMall/config"
	"github.com/Govind-619/BookMall/models"
	"github.com/Govind-619/BookMall/services"
	"github.com/Govind-619/BookMall/utils"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testServer struct {
	t      *testing.T
	router *gin.Engine
	cfg    *config.Config
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)
	cfg := config.SetupTestConfig(t)
	config.SetupTestDB(t)
	require.NoError(t, services.EnsureAdmin(config.DB, cfg.AdminAccount, cfg.AdminName, cfg.AdminPassword))
	return &testServer{t: t, router: SetupRouter(cfg), cfg: cfg}
}

func (s *testServer) do(req utils.TestRequest) utils.TestResponse {
	s.t.Helper()
	return utils.MakeTestRequest(s.t, s.router, req)
}

func (s *testServer) register(role, account string, extra gin.H) {
	s.t.Helper()
	body := gin.H{"role": role, "account": account, "name": "Test " + account, "password": "secret123"}
	for k, v := range extra {
		body[k] = v
	}
	resp := s.do(utils.TestRequest{Method: http.MethodPost, Path: "/v1/auth/register", Body: body})
	utils.AssertResponse(s.t, resp, http.StatusCreated, "Registration successful")
}

func (s *testServer) login(role, account, password string) string {
	s.t.Helper()
	resp := s.do(utils.TestRequest{
		Method: http.MethodPost,
		Path:   "/v1/auth/login",
		Body:   gin.H{"role": role, "account": account, "password": password},
	})
	utils.AssertResponse(s.t, resp, http.StatusOK, "Login successful")
	token, ok := resp.Data()["auth_token"].(string)
	require.True(s.t, ok)
	return token
}

// store sets up a staff member with a bookstore selling two books and
// returns the staff token, the bookstore id and the listing ids
func (s *testServer) store(account string, shippingFee int) (string, string, []string) {
	s.t.Helper()
	s.register(services.RoleStaff, account, nil)
	token := s.login(services.RoleStaff, account, "secret123")

	resp := s.do(utils.TestRequest{
		Method: http.MethodPost,
		Path:   "/v1/staff/bookstore",
		Token:  token,
		Body:   gin.H{"name": "Store " + account, "phone_number": "0212345678", "shipping_fee": shippingFee},
	})
	utils.AssertResponse(s.t, resp, http.StatusCreated, "")
	storeID := resp.Data()["id"].(string)

	var listings []string
	for _, book := range []gin.H{
		{"title": "Go in Action", "author": "Kennedy", "publisher": "Manning", "isbn": "9781617291784", "category": "Programming", "price": 550, "stock": 5},
		{"title": "The Go Programming Language", "author": "Donovan", "publisher": "Addison-Wesley", "isbn": "9780134190440", "category": "Programming", "price": 480, "stock": 5},
	} {
		resp := s.do(utils.TestRequest{Method: http.MethodPost, Path: "/v1/staff/books", Token: token, Body: book})
		utils.AssertResponse(s.t, resp, http.StatusCreated, "Book listed successfully")
		listings = append(listings, resp.Data()["id"].(string))
	}
	return token, storeID, listings
}

func (s *testServer) customer(account string) string {
	s.t.Helper()
	s.register(services.RoleCustomer, account, gin.H{"phone_number": "0912345678", "email": account + "@example.com"})
	return s.login(services.RoleCustomer, account, "secret123")
}

func (s *testServer) addToCart(token, listingID string, quantity int) {
	s.t.Helper()
	resp := s.do(utils.TestRequest{
		Method: http.MethodPost,
		Path:   "/v1/customer/cart/items",
		Token:  token,
		Body:   gin.H{"listing_id": listingID, "quantity": quantity},
	})
	utils.AssertResponse(s.t, resp, http.StatusOK, "Book added to cart")
}

func TestCheckoutFlow(t *testing.T) {
	s := newTestServer(t)
	staffToken, storeID, listings := s.store("seller", 60)
	customerToken := s.customer("alice")

	today := time.Now().UTC()
	resp := s.do(utils.TestRequest{
		Method: http.MethodPost,
		Path:   "/v1/staff/coupons",
		Token:  staffToken,
		Body: gin.H{
			"name":                "Autumn",
			"type":                "seasonings",
			"discount_percentage": "0.1",
			"start_date":          today.AddDate(0, 0, -1).Format(utils.DateLayout),
			"end_date":            today.AddDate(0, 0, 30).Format(utils.DateLayout),
		},
	})
	utils.AssertResponse(t, resp, http.StatusCreated, "Coupon created successfully")
	couponID := resp.Data()["id"].(string)
	assert.Equal(t, "Test seller (Staff)", resp.Data()["created_by"])

	s.addToCart(customerToken, listings[0], 1)
	s.addToCart(customerToken, listings[1], 2)

	resp = s.do(utils.TestRequest{Method: http.MethodGet, Path: "/v1/customer/cart/count", Token: customerToken})
	utils.AssertResponse(t, resp, http.StatusOK, "")
	assert.Equal(t, float64(3), resp.Data()["count"])

	resp = s.do(utils.TestRequest{Method: http.MethodGet, Path: "/v1/customer/coupons?bookstore_id=" + storeID, Token: customerToken})
	utils.AssertResponse(t, resp, http.StatusOK, "")
	assert.Len(t, resp.Data()["coupons"], 1)

	resp = s.do(utils.TestRequest{
		Method: http.MethodPost,
		Path:   "/v1/customer/checkout",
		Token:  customerToken,
		Body: gin.H{
			"bookstore_id":     storeID,
			"coupon_id":        couponID,
			"recipient_name":   "Alice",
			"shipping_address": "1 Main St",
		},
	})
	utils.AssertResponse(t, resp, http.StatusCreated, "Order placed successfully")
	order := resp.Data()["order"].(map[string]interface{})
	assert.Equal(t, float64(1413), order["total_price"])
	assert.Equal(t, float64(60), order["shipping_fee"])
	assert.Equal(t, "received", order["status"])
	assert.NotContains(t, resp.Data(), "coupon_warning")
	orderID := order["id"].(string)

	resp = s.do(utils.TestRequest{Method: http.MethodGet, Path: "/v1/customer/cart/count", Token: customerToken})
	assert.Equal(t, float64(0), resp.Data()["count"])

	resp = s.do(utils.TestRequest{Method: http.MethodGet, Path: "/v1/customer/orders", Token: customerToken})
	utils.AssertResponse(t, resp, http.StatusOK, "")
	assert.Len(t, resp.Data()["orders"], 1)

	resp = s.do(utils.TestRequest{Method: http.MethodGet, Path: "/v1/customer/orders/" + orderID + "/invoice", Token: customerToken})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	assert.True(t, len(resp.Raw) > 4 && string(resp.Raw[:4]) == "%PDF")

	// The staff side sees the order and moves it forward
	resp = s.do(utils.TestRequest{Method: http.MethodGet, Path: "/v1/staff/orders?status=received", Token: staffToken})
	utils.AssertResponse(t, resp, http.StatusOK, "")
	assert.Len(t, resp.Data()["orders"], 1)

	resp = s.do(utils.TestRequest{
		Method: http.MethodPatch,
		Path:   "/v1/staff/orders/" + orderID + "/status",
		Token:  staffToken,
		Body:   gin.H{"status": "shipping"},
	})
	utils.AssertResponse(t, resp, http.StatusOK, "Order status updated")

	resp = s.do(utils.TestRequest{
		Method: http.MethodPatch,
		Path:   "/v1/staff/orders/" + orderID + "/status",
		Token:  staffToken,
		Body:   gin.H{"status": "processing"},
	})
	utils.AssertResponse(t, resp, http.StatusUnprocessableEntity, "Invalid order status transition")

	resp = s.do(utils.TestRequest{Method: http.MethodGet, Path: "/v1/staff/statistics", Token: staffToken})
	utils.AssertResponse(t, resp, http.StatusOK, "")
	assert.Equal(t, float64(1510), resp.Data()["total_revenue"])
	assert.Equal(t, float64(3), resp.Data()["total_books_sold"])

	resp = s.do(utils.TestRequest{Method: http.MethodGet, Path: "/v1/staff/statistics/export", Token: staffToken})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Disposition"), ".xlsx")
	assert.NotEmpty(t, resp.Raw)
}

func TestCheckoutReportsRejectedCoupon(t *testing.T) {
	s := newTestServer(t)
	_, storeID, listings := s.store("seller", 60)
	otherToken, _, _ := s.store("rival", 40)
	customerToken := s.customer("alice")

	// A coupon of another bookstore
	resp := s.do(utils.TestRequest{
		Method: http.MethodPost,
		Path:   "/v1/staff/coupons",
		Token:  otherToken,
		Body: gin.H{
			"name":                "Rival sale",
			"type":                "special_event",
			"discount_percentage": "0.5",
			"start_date":          time.Now().UTC().AddDate(0, 0, -1).Format(utils.DateLayout),
		},
	})
	utils.AssertResponse(t, resp, http.StatusCreated, "")
	couponID := resp.Data()["id"].(string)

	s.addToCart(customerToken, listings[0], 1)
	resp = s.do(utils.TestRequest{
		Method: http.MethodPost,
		Path:   "/v1/customer/checkout",
		Token:  customerToken,
		Body:   gin.H{"bookstore_id": storeID, "coupon_id": couponID, "recipient_name": "Alice", "shipping_address": "1 Main St"},
	})
	utils.AssertResponse(t, resp, http.StatusCreated, "Order placed successfully")
	assert.Equal(t, "Coupon is not valid for this bookstore", resp.Data()["coupon_warning"])
	order := resp.Data()["order"].(map[string]interface{})
	assert.Equal(t, float64(610), order["total_price"])
	assert.NotContains(t, order, "coupon_id")
}

func TestCheckoutErrors(t *testing.T) {
	s := newTestServer(t)
	_, storeID, listings := s.store("seller", 60)
	customerToken := s.customer("alice")

	checkout := func(body gin.H) utils.TestResponse {
		return s.do(utils.TestRequest{Method: http.MethodPost, Path: "/v1/customer/checkout", Token: customerToken, Body: body})
	}
	valid := func() gin.H {
		return gin.H{"bookstore_id": storeID, "recipient_name": "Alice", "shipping_address": "1 Main St"}
	}

	utils.AssertResponse(t, checkout(valid()), http.StatusBadRequest, "Cart is empty")

	s.addToCart(customerToken, listings[0], 5)
	resp := s.do(utils.TestRequest{
		Method: http.MethodPost,
		Path:   "/v1/customer/cart/items",
		Token:  customerToken,
		Body:   gin.H{"listing_id": listings[0], "quantity": 1},
	})
	utils.AssertResponse(t, resp, http.StatusConflict, "Insufficient stock")

	body := valid()
	body["coupon_id"] = "4c2a1f00-0000-4000-8000-000000000000"
	utils.AssertResponse(t, checkout(body), http.StatusNotFound, "Coupon not found")

	body = valid()
	body["bookstore_id"] = "not-a-uuid"
	utils.AssertResponse(t, checkout(body), http.StatusBadRequest, "Invalid bookstore_id")

	// Nothing was ordered
	resp = s.do(utils.TestRequest{Method: http.MethodGet, Path: "/v1/customer/orders", Token: customerToken})
	assert.Empty(t, resp.Data()["orders"])
}

func TestFormPostsRedirect(t *testing.T) {
	s := newTestServer(t)
	_, storeID, _ := s.store("seller", 60)
	customerToken := s.customer("alice")

	resp := s.do(utils.TestRequest{
		Method: http.MethodPost,
		Path:   "/v1/customer/checkout",
		Token:  customerToken,
		Form:   url.Values{"bookstore_id": {storeID}, "recipient_name": {"Alice"}, "shipping_address": {"1 Main St"}},
	})
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/v1/customer/cart?error="+url.QueryEscape("Cart is empty"), resp.Header.Get("Location"))
}

func TestFormCheckoutRedirectCarriesCouponWarning(t *testing.T) {
	s := newTestServer(t)
	_, storeID, listings := s.store("seller", 60)
	rivalToken, _, _ := s.store("rival", 40)
	customerToken := s.customer("alice")

	resp := s.do(utils.TestRequest{
		Method: http.MethodPost,
		Path:   "/v1/staff/coupons",
		Token:  rivalToken,
		Body: gin.H{
			"name":                "Rival sale",
			"type":                "seasonings",
			"discount_percentage": "0.2",
			"start_date":          time.Now().UTC().AddDate(0, 0, -1).Format(utils.DateLayout),
		},
	})
	utils.AssertResponse(t, resp, http.StatusCreated, "")
	couponID := resp.Data()["id"].(string)

	checkout := func(couponID string) utils.TestResponse {
		return s.do(utils.TestRequest{
			Method: http.MethodPost,
			Path:   "/v1/customer/checkout",
			Token:  customerToken,
			Form: url.Values{
				"bookstore_id":     {storeID},
				"coupon_id":        {couponID},
				"recipient_name":   {"Alice"},
				"shipping_address": {"1 Main St"},
			},
		})
	}

	s.addToCart(customerToken, listings[0], 1)
	resp = checkout(couponID)
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/v1/customer/orders?coupon_warning="+url.QueryEscape("Coupon is not valid for this bookstore"),
		resp.Header.Get("Location"))

	s.addToCart(customerToken, listings[1], 1)
	resp = checkout("")
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/v1/customer/orders", resp.Header.Get("Location"))
}

func TestRoleGuards(t *testing.T) {
	s := newTestServer(t)
	customerToken := s.customer("alice")
	s.register(services.RoleStaff, "newbie", nil)
	staffToken := s.login(services.RoleStaff, "newbie", "secret123")

	resp := s.do(utils.TestRequest{Method: http.MethodGet, Path: "/v1/customer/cart"})
	utils.AssertResponse(t, resp, http.StatusUnauthorized, utils.ErrUnauthorized)

	resp = s.do(utils.TestRequest{Method: http.MethodGet, Path: "/v1/staff/orders", Token: customerToken})
	utils.AssertResponse(t, resp, http.StatusForbidden, utils.ErrForbidden)

	resp = s.do(utils.TestRequest{Method: http.MethodGet, Path: "/v1/admin/users", Token: staffToken})
	utils.AssertResponse(t, resp, http.StatusForbidden, utils.ErrForbidden)

	// Staff without a bookstore cannot run one
	resp = s.do(utils.TestRequest{Method: http.MethodGet, Path: "/v1/staff/orders", Token: staffToken})
	utils.AssertResponse(t, resp, http.StatusForbidden, "Create a bookstore first")

	// Bookstores are claimed once
	store := gin.H{"name": "Corner Books", "phone_number": "0212345678", "shipping_fee": 80}
	resp = s.do(utils.TestRequest{Method: http.MethodPost, Path: "/v1/staff/bookstore", Token: staffToken, Body: store})
	utils.AssertResponse(t, resp, http.StatusCreated, "Bookstore created successfully")
	resp = s.do(utils.TestRequest{Method: http.MethodPost, Path: "/v1/staff/bookstore", Token: staffToken, Body: store})
	utils.AssertResponse(t, resp, http.StatusConflict, "A bookstore has already been created for this staff account")
}

func TestLoginAndLogout(t *testing.T) {
	s := newTestServer(t)
	s.customer("alice")

	resp := s.do(utils.TestRequest{
		Method: http.MethodPost,
		Path:   "/v1/auth/login",
		Body:   gin.H{"role": services.RoleCustomer, "account": "alice", "password": "wrong-pass1"},
	})
	utils.AssertResponse(t, resp, http.StatusUnauthorized, utils.ErrInvalidCredentials)

	resp = s.do(utils.TestRequest{
		Method: http.MethodPost,
		Path:   "/v1/auth/login",
		Body:   gin.H{"role": services.RoleAdmin, "account": s.cfg.AdminAccount, "password": s.cfg.AdminPassword},
	})
	utils.AssertResponse(t, resp, http.StatusOK, "Login successful")
	assert.Equal(t, "/v1/admin/users", resp.Data()["next_page_path"])
	assert.Contains(t, strings.Join(resp.Header.Values("Set-Cookie"), "\n"), utils.AuthTokenKey+"=")

	resp = s.do(utils.TestRequest{Method: http.MethodPost, Path: "/v1/auth/logout"})
	utils.AssertResponse(t, resp, http.StatusOK, "Logout successful")
}

func TestBrowseBooks(t *testing.T) {
	s := newTestServer(t)
	s.store("seller", 60)
	s.store("rival", 40)

	resp := s.do(utils.TestRequest{Method: http.MethodGet, Path: "/v1/books?keyword=action"})
	utils.AssertResponse(t, resp, http.StatusOK, "Books retrieved successfully")
	books := resp.Body["data"].([]interface{})
	require.Len(t, books, 1)
	book := books[0].(map[string]interface{})
	assert.Len(t, book["listings"], 2)

	resp = s.do(utils.TestRequest{Method: http.MethodGet, Path: "/v1/books/" + book["id"].(string)})
	utils.AssertResponse(t, resp, http.StatusOK, "")
	assert.Equal(t, "Go in Action", resp.Data()["title"])

	resp = s.do(utils.TestRequest{Method: http.MethodGet, Path: "/v1/books/categories"})
	assert.Equal(t, []interface{}{"Programming"}, resp.Data()["categories"])

	resp = s.do(utils.TestRequest{Method: http.MethodGet, Path: "/v1/books/not-a-uuid"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestAdminManagesUsersAndCoupons(t *testing.T) {
	s := newTestServer(t)
	s.customer("alice")
	s.store("seller", 60)
	adminToken := s.login(services.RoleAdmin, s.cfg.AdminAccount, s.cfg.AdminPassword)

	resp := s.do(utils.TestRequest{Method: http.MethodGet, Path: "/v1/admin/users", Token: adminToken})
	utils.AssertResponse(t, resp, http.StatusOK, "")
	assert.Len(t, resp.Data()["customers"], 1)
	assert.Len(t, resp.Data()["staff"], 1)

	resp = s.do(utils.TestRequest{
		Method: http.MethodPut,
		Path:   "/v1/admin/customers/alice",
		Token:  adminToken,
		Body:   gin.H{"name": "Alice Liddell"},
	})
	utils.AssertResponse(t, resp, http.StatusOK, "Customer updated successfully")
	assert.Equal(t, "Alice Liddell", resp.Data()["name"])

	resp = s.do(utils.TestRequest{
		Method: http.MethodPost,
		Path:   "/v1/admin/coupons",
		Token:  adminToken,
		Body:   gin.H{"name": "Free shipping", "type": "shipping", "discount_percentage": "1", "start_date": "2026-01-01"},
	})
	utils.AssertResponse(t, resp, http.StatusCreated, "")
	couponID := resp.Data()["id"].(string)

	resp = s.do(utils.TestRequest{
		Method: http.MethodPost,
		Path:   "/v1/admin/coupons",
		Token:  adminToken,
		Body:   gin.H{"name": "Broken", "type": "shipping", "discount_percentage": "1.5", "start_date": "2026-01-01"},
	})
	utils.AssertResponse(t, resp, http.StatusBadRequest, "Invalid coupon")

	resp = s.do(utils.TestRequest{Method: http.MethodDelete, Path: "/v1/admin/coupons/" + couponID, Token: adminToken})
	utils.AssertResponse(t, resp, http.StatusOK, "Coupon deleted successfully")

	resp = s.do(utils.TestRequest{Method: http.MethodDelete, Path: "/v1/admin/staff/seller", Token: adminToken})
	utils.AssertResponse(t, resp, http.StatusOK, "Staff deleted successfully")
	resp = s.do(utils.TestRequest{Method: http.MethodDelete, Path: "/v1/admin/customers/alice", Token: adminToken})
	utils.AssertResponse(t, resp, http.StatusOK, "Customer deleted successfully")
	resp = s.do(utils.TestRequest{Method: http.MethodDelete, Path: "/v1/admin/customers/alice", Token: adminToken})
	utils.AssertResponse(t, resp, http.StatusNotFound, "Account not found")

	var count int64
	require.NoError(t, config.DB.Model(&models.Customer{}).Count(&count).Error)
	assert.Zero(t, count)
}
