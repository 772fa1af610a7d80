package checkout

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gofrs/uuid"
	"github.com/rs/zerolog/log"
	"github.com/vasiliy-maslov/storefront/internal/cart"
)

var (
	// ErrEmptyCart blocks checkout entry: there is nothing to order.
	ErrEmptyCart = errors.New("checkout: cart is empty")
	// ErrNotificationFailed means the receipt could not be delivered.
	// The order is still considered placed (see DESIGN.md).
	ErrNotificationFailed = errors.New("checkout: failed to send order notification")
)

// OrderLine — позиция в уже собранном заказе.
type OrderLine struct {
	ProductID int64   `json:"product_id"`
	Name      string  `json:"name"`
	UnitPrice float64 `json:"unit_price"`
	Quantity  int     `json:"quantity"`
}

// OrderRecord is the immutable snapshot of a completed checkout. Once
// assembled it never changes, whatever happens to the live cart.
type OrderRecord struct {
	ID       uuid.UUID   `json:"id"`
	Contact  Intent      `json:"contact"`
	Lines    []OrderLine `json:"lines"`
	Total    float64     `json:"total"`
	PlacedAt time.Time   `json:"placed_at"`
}

// Notifier delivers the order receipt to the customer. Retry and
// backoff are the notifier's concern, not the assembler's.
type Notifier interface {
	Send(ctx context.Context, order OrderRecord, recipient string) error
}

type Assembler struct {
	notifier Notifier
	timeout  time.Duration
}

// NewAssembler builds an assembler that gives a single delivery attempt
// at most timeout to finish. The upstream behavior leaves the dispatch
// unbounded, so the timeout here is a deliberate guard.
func NewAssembler(notifier Notifier, timeout time.Duration) *Assembler {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Assembler{notifier: notifier, timeout: timeout}
}

// Assemble combines a validated intent with the cart's current contents
// into an immutable OrderRecord and hands it to the notifier once. The
// cart itself is only read, never mutated: clearing it after a placed
// order is the caller's job.
//
// A notification failure does not unplace the order: the record is
// returned together with ErrNotificationFailed and the caller decides
// what to tell the user.
func (a *Assembler) Assemble(ctx context.Context, intent Intent, c *cart.Cart) (OrderRecord, error) {
	items, _, total := c.Snapshot()
	if len(items) == 0 {
		return OrderRecord{}, ErrEmptyCart
	}

	orderID, err := uuid.NewV4()
	if err != nil {
		return OrderRecord{}, fmt.Errorf("checkout: failed to generate order id: %w", err)
	}

	lines := make([]OrderLine, 0, len(items))
	for _, it := range items {
		lines = append(lines, OrderLine{
			ProductID: it.Product.ID,
			Name:      it.Product.Name,
			UnitPrice: it.Product.Price,
			Quantity:  it.Quantity,
		})
	}

	record := OrderRecord{
		ID:       orderID,
		Contact:  intent,
		Lines:    lines,
		Total:    total,
		PlacedAt: time.Now().UTC(),
	}

	sendCtx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	if err := a.notifier.Send(sendCtx, record, intent.Email); err != nil {
		log.Error().Err(err).Stringer("order_id", record.ID).Msg("checkout: order notification failed")
		return record, fmt.Errorf("%w: %w", ErrNotificationFailed, err)
	}

	log.Info().Stringer("order_id", record.ID).Float64("total", record.Total).Msg("checkout: order placed")

	return record, nil
}
