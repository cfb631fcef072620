package handlers

import (
	"fmt"
	"net/http"

	"party-package-store/internal/middleware"
	"party-package-store/internal/models"
	"party-package-store/internal/services"
)

// OrderHandler handles checkout and order history
type OrderHandler struct {
	checkoutService *services.CheckoutService
}

// NewOrderHandler creates a new order handler
func NewOrderHandler(checkoutService *services.CheckoutService) *OrderHandler {
	return &OrderHandler{checkoutService: checkoutService}
}

// CreateOrder handles POST /api/orders/create. It prices the current cart
// and opens a payment order with the gateway; nothing is persisted as an
// order yet. The shipping form is presence-checked here so a buyer with an
// incomplete form fails before payment, not after.
func (h *OrderHandler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())

	var shipping models.ShippingInfo
	if err := decodeJSON(r, &shipping); err != nil {
		writeError(w, err)
		return
	}
	if err := shipping.Validate(); err != nil {
		writeError(w, fmt.Errorf("%v: %w", err, models.ErrInvalidInput))
		return
	}

	session, err := h.checkoutService.Begin(user.ID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, session)
}

type verifyResponse struct {
	Success bool          `json:"success"`
	OrderID int           `json:"orderId"`
	Order   *models.Order `json:"order"`
}

// VerifyPayment handles POST /api/payments/verify. On a valid signature the
// order is recorded, the cart cleared and a confirmation email queued.
func (h *OrderHandler) VerifyPayment(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())

	var req models.PaymentVerification
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	order, err := h.checkoutService.Verify(user.ID, &req)
	if err != nil {
		writeError(w, err)
		return
	}

	go h.checkoutService.SendConfirmation(order)

	writeJSON(w, http.StatusCreated, verifyResponse{
		Success: true,
		OrderID: order.ID,
		Order:   order,
	})
}

type sendOrderEmailRequest struct {
	OrderID int `json:"orderId"`
}

// SendOrderEmail handles POST /api/emails/send-order, re-sending the
// confirmation for an order the caller owns
func (h *OrderHandler) SendOrderEmail(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())

	var req sendOrderEmailRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	order, err := h.checkoutService.GetOrder(req.OrderID, user)
	if err != nil {
		writeError(w, err)
		return
	}

	go h.checkoutService.SendConfirmation(order)

	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// ListOrders handles GET /api/orders
func (h *OrderHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())

	orders, err := h.checkoutService.GetUserOrders(user.ID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, orders)
}

// GetOrder handles GET /api/orders/{id}
func (h *OrderHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())

	id, err := urlParamInt(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	order, err := h.checkoutService.GetOrder(id, user)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, order)
}
