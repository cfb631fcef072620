package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"party-package-store/internal/models"
)

// CartRepository handles cart data operations. One cart per user, enforced
// by a unique constraint on carts.user_id rather than a check-then-insert.
type CartRepository struct {
	db *sql.DB
}

// NewCartRepository creates a new cart repository
func NewCartRepository(db *sql.DB) *CartRepository {
	return &CartRepository{db: db}
}

// GetOrCreate returns the user's cart, creating it atomically if absent.
// The ON CONFLICT upsert makes concurrent calls converge on the same row.
func (r *CartRepository) GetOrCreate(userID int) (*models.Cart, error) {
	query := `
		INSERT INTO carts (user_id, created_at)
		VALUES ($1, $2)
		ON CONFLICT (user_id) DO UPDATE SET user_id = EXCLUDED.user_id
		RETURNING id, user_id, created_at`

	cart := &models.Cart{}
	err := r.db.QueryRow(query, userID, time.Now()).Scan(&cart.ID, &cart.UserID, &cart.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to get or create cart: %w", err)
	}

	return cart, nil
}

// GetByUser retrieves the user's cart with its lines joined against the
// current catalog row for display fields. Totals come from the snapshot
// unit_price, never the joined current price.
func (r *CartRepository) GetByUser(userID int) (*models.Cart, error) {
	cart, err := r.GetOrCreate(userID)
	if err != nil {
		return nil, err
	}

	query := `
		SELECT ci.id, ci.cart_id, ci.event_id, ci.quantity, ci.unit_price, ci.created_at,
			e.title, e.image_url, e.discounted_price
		FROM cart_items ci
		JOIN events e ON ci.event_id = e.id
		WHERE ci.cart_id = $1
		ORDER BY ci.created_at`

	rows, err := r.db.Query(query, cart.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to get cart items: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		item := &models.CartItem{}
		err := rows.Scan(
			&item.ID,
			&item.CartID,
			&item.EventID,
			&item.Quantity,
			&item.UnitPrice,
			&item.CreatedAt,
			&item.EventTitle,
			&item.EventImage,
			&item.CurrentPrice,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan cart item: %w", err)
		}
		cart.Items = append(cart.Items, item)
	}

	return cart, rows.Err()
}

// UpsertItem adds a line to the cart, or increments the existing line's
// quantity when the package is already present. The snapshot price of an
// existing line is kept; only the quantity changes.
func (r *CartRepository) UpsertItem(cartID, eventID, quantity, unitPrice int) (*models.CartItem, error) {
	query := `
		INSERT INTO cart_items (cart_id, event_id, quantity, unit_price, created_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (cart_id, event_id)
		DO UPDATE SET quantity = cart_items.quantity + EXCLUDED.quantity
		RETURNING id, cart_id, event_id, quantity, unit_price, created_at`

	item := &models.CartItem{}
	err := r.db.QueryRow(query, cartID, eventID, quantity, unitPrice, time.Now()).Scan(
		&item.ID,
		&item.CartID,
		&item.EventID,
		&item.Quantity,
		&item.UnitPrice,
		&item.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert cart item: %w", err)
	}

	return item, nil
}

// UpdateItemQuantity overwrites a line's quantity. The cart id in the WHERE
// clause scopes the update to the caller's own cart.
func (r *CartRepository) UpdateItemQuantity(itemID, cartID, quantity int) (*models.CartItem, error) {
	query := `
		UPDATE cart_items SET quantity = $3
		WHERE id = $1 AND cart_id = $2
		RETURNING id, cart_id, event_id, quantity, unit_price, created_at`

	item := &models.CartItem{}
	err := r.db.QueryRow(query, itemID, cartID, quantity).Scan(
		&item.ID,
		&item.CartID,
		&item.EventID,
		&item.Quantity,
		&item.UnitPrice,
		&item.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, models.ErrCartItemNotFound
		}
		return nil, fmt.Errorf("failed to update cart item: %w", err)
	}

	return item, nil
}

// RemoveItem deletes a line, scoped to the caller's own cart
func (r *CartRepository) RemoveItem(itemID, cartID int) error {
	result, err := r.db.Exec("DELETE FROM cart_items WHERE id = $1 AND cart_id = $2", itemID, cartID)
	if err != nil {
		return fmt.Errorf("failed to remove cart item: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return models.ErrCartItemNotFound
	}

	return nil
}
