package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"party-package-store/internal/models"
)

func TestRegisterLoginAndMe(t *testing.T) {
	env := newTestEnv(t)

	cookies := env.register(t, "asha@example.com")

	rec := env.do(t, "GET", "/api/auth/me", "", cookies)
	require.Equal(t, http.StatusOK, rec.Code)

	var me models.User
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &me))
	assert.Equal(t, "asha@example.com", me.Email)
	assert.Empty(t, me.PasswordHash, "password hash must never serialize")

	// Fresh login issues a new session
	rec = env.do(t, "POST", "/api/auth/login", `{"email":"asha@example.com","password":"supersecret"}`, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = env.do(t, "POST", "/api/auth/login", `{"email":"asha@example.com","password":"wrong"}`, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	env := newTestEnv(t)

	env.register(t, "asha@example.com")

	rec := env.do(t, "POST", "/api/auth/register",
		`{"email":"asha@example.com","password":"supersecret","full_name":"Second"}`, nil)
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestCartRequiresSession(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, "GET", "/api/cart", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = env.do(t, "POST", "/api/cart/items", `{"eventId":1,"quantity":1}`, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestCartAddAndFetch(t *testing.T) {
	env := newTestEnv(t)
	cookies := env.register(t, "asha@example.com")

	rec := env.do(t, "POST", "/api/cart/items", `{"eventId":1,"quantity":2}`, cookies)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var cart models.Cart
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &cart))
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 2, cart.Items[0].Quantity)
	assert.Equal(t, 50000, cart.Items[0].UnitPrice, "unit price snapshots the discounted price")

	rec = env.do(t, "POST", "/api/cart/items", `{"eventId":99,"quantity":1}`, cookies)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

const shippingBody = `{
	"fullName": "Asha Rao",
	"email": "asha@example.com",
	"phone": "+919876543210",
	"address": "12 MG Road",
	"city": "Bengaluru",
	"zipCode": "560001"
}`

func TestCheckoutFlow(t *testing.T) {
	env := newTestEnv(t)
	cookies := env.register(t, "asha@example.com")

	env.do(t, "POST", "/api/cart/items", `{"eventId":1,"quantity":2}`, cookies)
	env.do(t, "POST", "/api/cart/items", `{"eventId":2,"quantity":1}`, cookies)

	rec := env.do(t, "POST", "/api/orders/create", shippingBody, cookies)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var session struct {
		GatewayOrderID string `json:"razorpayOrderId"`
		Amount         int    `json:"amount"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &session))
	assert.Equal(t, 229900, session.Amount)

	verify := fmt.Sprintf(`{
		"razorpayOrderId": %q,
		"razorpayPaymentId": "pay_test001",
		"razorpaySignature": %q,
		"fullName": "Asha Rao",
		"email": "asha@example.com",
		"phone": "+919876543210",
		"address": "12 MG Road",
		"city": "Bengaluru",
		"zipCode": "560001"
	}`, session.GatewayOrderID, env.gateway.Sign(session.GatewayOrderID, "pay_test001"))

	rec = env.do(t, "POST", "/api/payments/verify", verify, cookies)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var result struct {
		Success bool          `json:"success"`
		OrderID int           `json:"orderId"`
		Order   *models.Order `json:"order"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.True(t, result.Success)
	require.NotNil(t, result.Order)
	assert.Equal(t, result.Order.ID, result.OrderID)
	assert.Equal(t, models.OrderPaid, result.Order.Status)
	assert.Equal(t, 229900, result.Order.TotalAmount)
	assert.Len(t, result.Order.Items, 2)

	// Cart drains on success
	rec = env.do(t, "GET", "/api/cart", "", cookies)
	require.Equal(t, http.StatusOK, rec.Code)
	var cart models.Cart
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &cart))
	assert.True(t, cart.IsEmpty())

	// Order visible in history
	rec = env.do(t, "GET", "/api/orders", "", cookies)
	require.Equal(t, http.StatusOK, rec.Code)
	var orders []*models.Order
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &orders))
	assert.Len(t, orders, 1)
}

func TestVerifyRejectsForgedSignature(t *testing.T) {
	env := newTestEnv(t)
	cookies := env.register(t, "asha@example.com")

	env.do(t, "POST", "/api/cart/items", `{"eventId":1,"quantity":1}`, cookies)

	rec := env.do(t, "POST", "/api/orders/create", shippingBody, cookies)
	require.Equal(t, http.StatusOK, rec.Code)
	var session struct {
		GatewayOrderID string `json:"razorpayOrderId"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &session))

	verify := fmt.Sprintf(`{
		"razorpayOrderId": %q,
		"razorpayPaymentId": "pay_test001",
		"razorpaySignature": "deadbeef",
		"fullName": "Asha Rao",
		"email": "asha@example.com",
		"phone": "+919876543210",
		"address": "12 MG Road",
		"city": "Bengaluru",
		"zipCode": "560001"
	}`, session.GatewayOrderID)

	rec = env.do(t, "POST", "/api/payments/verify", verify, cookies)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestOrderOwnershipAcrossUsers(t *testing.T) {
	env := newTestEnv(t)
	ashaCookies := env.register(t, "asha@example.com")
	raviCookies := env.register(t, "ravi@example.com")

	env.do(t, "POST", "/api/cart/items", `{"eventId":1,"quantity":1}`, ashaCookies)

	rec := env.do(t, "POST", "/api/orders/create", shippingBody, ashaCookies)
	require.Equal(t, http.StatusOK, rec.Code)
	var session struct {
		GatewayOrderID string `json:"razorpayOrderId"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &session))

	verify := fmt.Sprintf(`{
		"razorpayOrderId": %q,
		"razorpayPaymentId": "pay_test001",
		"razorpaySignature": %q,
		"fullName": "Asha Rao",
		"email": "asha@example.com",
		"phone": "+919876543210",
		"address": "12 MG Road",
		"city": "Bengaluru",
		"zipCode": "560001"
	}`, session.GatewayOrderID, env.gateway.Sign(session.GatewayOrderID, "pay_test001"))

	rec = env.do(t, "POST", "/api/payments/verify", verify, ashaCookies)
	require.Equal(t, http.StatusCreated, rec.Code)
	var result struct {
		OrderID int `json:"orderId"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))

	path := fmt.Sprintf("/api/orders/%d", result.OrderID)

	rec = env.do(t, "GET", path, "", ashaCookies)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = env.do(t, "GET", path, "", raviCookies)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestAdminGuard(t *testing.T) {
	env := newTestEnv(t)
	cookies := env.register(t, "asha@example.com")

	// Anonymous
	rec := env.do(t, "GET", "/api/admin/orders", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// Signed in but not an admin
	rec = env.do(t, "GET", "/api/admin/orders", "", cookies)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	// Promote out of band and retry
	_, err := env.userRepo.SetAdmin(1, true)
	require.NoError(t, err)

	rec = env.do(t, "GET", "/api/admin/orders", "", cookies)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAdminCategoryLifecycle(t *testing.T) {
	env := newTestEnv(t)
	cookies := env.register(t, "admin@example.com")
	_, err := env.userRepo.SetAdmin(1, true)
	require.NoError(t, err)

	rec := env.do(t, "POST", "/api/admin/categories", `{"title":"Kids Parties"}`, cookies)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var category models.Category
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &category))
	assert.Equal(t, "kids-parties", category.Slug, "slug derives from the title when omitted")

	rec = env.do(t, "GET", "/api/categories", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var categories []*models.Category
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &categories))
	assert.Len(t, categories, 2)
}

func TestPublicCatalog(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, "GET", "/api/events", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var events []*models.Event
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &events))
	assert.Len(t, events, 2)

	rec = env.do(t, "GET", "/api/events/1", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = env.do(t, "GET", "/api/events/99", "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = env.do(t, "GET", "/api/events/abc", "", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateOrderRequiresShippingFields(t *testing.T) {
	env := newTestEnv(t)
	cookies := env.register(t, "asha@example.com")

	env.do(t, "POST", "/api/cart/items", `{"eventId":1,"quantity":1}`, cookies)

	rec := env.do(t, "POST", "/api/orders/create", `{"fullName":"Asha Rao","email":"asha@example.com"}`, cookies)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "missing required fields")
}
