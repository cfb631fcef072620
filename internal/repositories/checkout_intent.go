package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"party-package-store/internal/models"
)

// CheckoutIntentRepository persists the binding between a gateway payment
// order and the cart snapshot it was priced from
type CheckoutIntentRepository struct {
	db *sql.DB
}

// NewCheckoutIntentRepository creates a new checkout intent repository
func NewCheckoutIntentRepository(db *sql.DB) *CheckoutIntentRepository {
	return &CheckoutIntentRepository{db: db}
}

// Create records an intent. A repeated gateway order id overwrites the
// previous snapshot, which only happens if the gateway reissues an id.
func (r *CheckoutIntentRepository) Create(intent *models.CheckoutIntent) error {
	query := `
		INSERT INTO checkout_intents (gateway_order_id, user_id, cart_hash, amount, created_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (gateway_order_id)
		DO UPDATE SET cart_hash = EXCLUDED.cart_hash, amount = EXCLUDED.amount, created_at = EXCLUDED.created_at`

	_, err := r.db.Exec(query, intent.GatewayOrderID, intent.UserID, intent.CartHash, intent.Amount, time.Now())
	if err != nil {
		return fmt.Errorf("failed to create checkout intent: %w", err)
	}

	return nil
}

// Get retrieves an intent by gateway order id
func (r *CheckoutIntentRepository) Get(gatewayOrderID string) (*models.CheckoutIntent, error) {
	query := `
		SELECT gateway_order_id, user_id, cart_hash, amount, created_at
		FROM checkout_intents
		WHERE gateway_order_id = $1`

	intent := &models.CheckoutIntent{}
	err := r.db.QueryRow(query, gatewayOrderID).Scan(
		&intent.GatewayOrderID,
		&intent.UserID,
		&intent.CartHash,
		&intent.Amount,
		&intent.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, models.ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to get checkout intent: %w", err)
	}

	return intent, nil
}

// DeleteExpired removes intents older than the cutoff. Abandoned checkouts
// leave intents behind; this keeps the table from growing unbounded.
func (r *CheckoutIntentRepository) DeleteExpired(olderThan time.Duration) (int64, error) {
	result, err := r.db.Exec("DELETE FROM checkout_intents WHERE created_at < $1", time.Now().Add(-olderThan))
	if err != nil {
		return 0, fmt.Errorf("failed to delete expired intents: %w", err)
	}

	return result.RowsAffected()
}
