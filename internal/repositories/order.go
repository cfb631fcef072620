package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"party-package-store/internal/models"
)

// OrderRepository handles order data operations
type OrderRepository struct {
	db *sql.DB
}

// NewOrderRepository creates a new order repository
func NewOrderRepository(db *sql.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

const orderColumns = `id, user_id, gateway_order_id, gateway_payment_id, gateway_signature,
	total_amount, status, delivery_status, full_name, email, phone, address, city, zip_code,
	created_at, updated_at`

func scanOrder(scanner interface{ Scan(...interface{}) error }) (*models.Order, error) {
	order := &models.Order{}
	err := scanner.Scan(
		&order.ID,
		&order.UserID,
		&order.GatewayOrderID,
		&order.GatewayPaymentID,
		&order.GatewaySignature,
		&order.TotalAmount,
		&order.Status,
		&order.DeliveryStatus,
		&order.FullName,
		&order.Email,
		&order.Phone,
		&order.Address,
		&order.City,
		&order.ZipCode,
		&order.CreatedAt,
		&order.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return order, nil
}

// CreateVerifiedOrder persists a payment-verified order in one transaction:
// the order row is inserted pending, one order_items row per cart line is
// written with the denormalized title and snapshot price, the order is
// promoted to paid with the gateway payment id and signature, the cart is
// drained, and the checkout intent is consumed. A failure at any step rolls
// everything back, so there is never a paid order next to a full cart or a
// drained cart next to no order.
func (r *OrderRepository) CreateVerifiedOrder(
	userID int,
	gatewayOrderID, gatewayPaymentID, gatewaySignature string,
	shipping models.ShippingInfo,
	cart *models.Cart,
) (*models.Order, error) {
	tx, err := r.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	now := time.Now()

	var orderID int
	err = tx.QueryRow(`
		INSERT INTO orders (user_id, gateway_order_id, total_amount, status, delivery_status,
			full_name, email, phone, address, city, zip_code, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $12)
		RETURNING id`,
		userID,
		gatewayOrderID,
		cart.Total(),
		models.OrderPending,
		models.DeliveryReceived,
		shipping.FullName,
		shipping.Email,
		shipping.Phone,
		shipping.Address,
		shipping.City,
		shipping.ZipCode,
		now,
	).Scan(&orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	for _, item := range cart.Items {
		_, err = tx.Exec(`
			INSERT INTO order_items (order_id, event_id, event_title, quantity, unit_price, total_price)
			VALUES ($1, $2, $3, $4, $5, $6)`,
			orderID, item.EventID, item.EventTitle, item.Quantity, item.UnitPrice, item.Subtotal())
		if err != nil {
			return nil, fmt.Errorf("failed to create order item: %w", err)
		}
	}

	_, err = tx.Exec(`
		UPDATE orders SET status = $2, gateway_payment_id = $3, gateway_signature = $4, updated_at = $5
		WHERE id = $1`,
		orderID, models.OrderPaid, gatewayPaymentID, gatewaySignature, now)
	if err != nil {
		return nil, fmt.Errorf("failed to mark order paid: %w", err)
	}

	if _, err = tx.Exec("DELETE FROM cart_items WHERE cart_id = $1", cart.ID); err != nil {
		return nil, fmt.Errorf("failed to clear cart: %w", err)
	}

	if _, err = tx.Exec("DELETE FROM checkout_intents WHERE gateway_order_id = $1", gatewayOrderID); err != nil {
		return nil, fmt.Errorf("failed to consume checkout intent: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit order: %w", err)
	}

	return r.GetByID(orderID)
}

// GetByID retrieves an order with its items
func (r *OrderRepository) GetByID(id int) (*models.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE id = $1`

	order, err := scanOrder(r.db.QueryRow(query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, models.ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to get order: %w", err)
	}

	order.Items, err = r.getItems(id)
	if err != nil {
		return nil, err
	}

	return order, nil
}

func (r *OrderRepository) getItems(orderID int) ([]*models.OrderItem, error) {
	query := `
		SELECT id, order_id, event_id, event_title, quantity, unit_price, total_price
		FROM order_items
		WHERE order_id = $1
		ORDER BY id`

	rows, err := r.db.Query(query, orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to get order items: %w", err)
	}
	defer rows.Close()

	var items []*models.OrderItem
	for rows.Next() {
		item := &models.OrderItem{}
		err := rows.Scan(
			&item.ID,
			&item.OrderID,
			&item.EventID,
			&item.EventTitle,
			&item.Quantity,
			&item.UnitPrice,
			&item.TotalPrice,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan order item: %w", err)
		}
		items = append(items, item)
	}

	return items, rows.Err()
}

// GetByUser retrieves a user's orders with nested items, newest first
func (r *OrderRepository) GetByUser(userID int) ([]*models.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE user_id = $1 ORDER BY created_at DESC`

	return r.queryOrders(query, userID)
}

// List retrieves all orders with nested items, newest first
func (r *OrderRepository) List(limit, offset int) ([]*models.Order, error) {
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	query := `SELECT ` + orderColumns + ` FROM orders ORDER BY created_at DESC LIMIT $1 OFFSET $2`

	return r.queryOrders(query, limit, offset)
}

func (r *OrderRepository) queryOrders(query string, args ...interface{}) ([]*models.Order, error) {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query orders: %w", err)
	}
	defer rows.Close()

	var orders []*models.Order
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}
		orders = append(orders, order)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating orders: %w", err)
	}

	for _, order := range orders {
		order.Items, err = r.getItems(order.ID)
		if err != nil {
			return nil, err
		}
	}

	return orders, nil
}

// UpdateDeliveryStatus sets the fulfillment stage. Any valid stage can be
// set from any other; ordering is an admin judgement, not a constraint.
func (r *OrderRepository) UpdateDeliveryStatus(id int, status models.DeliveryStatus) (*models.Order, error) {
	if !models.ValidDeliveryStatus(status) {
		return nil, fmt.Errorf("invalid delivery status %q: %w", status, models.ErrInvalidInput)
	}

	query := `
		UPDATE orders SET delivery_status = $2, updated_at = $3
		WHERE id = $1
		RETURNING ` + orderColumns

	order, err := scanOrder(r.db.QueryRow(query, id, status, time.Now()))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, models.ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to update delivery status: %w", err)
	}

	order.Items, err = r.getItems(order.ID)
	if err != nil {
		return nil, err
	}

	return order, nil
}
