package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"
	"sync"

	"queencare-storefront/internal/domain"
)

// ErrNotCleared means the order was placed but the slot could not be
// emptied. The cart is kept in memory so it still matches storage.
var ErrNotCleared = errors.New("order placed but cart slot not cleared")

type slotRepo interface {
	Get(ctx context.Context, owner, name string) ([]byte, error)
	Put(ctx context.Context, owner, name string, data []byte) error
	Delete(ctx context.Context, owner, name string) error
}

type productLookup interface {
	Product(id int) (domain.Product, bool)
}

type orderSubmitter interface {
	CreateOrder(ctx context.Context, order domain.Order) error
}

// Store is one visitor's cart. The in-memory list is the source of truth and
// the slot is its mirror: every mutation is written to the slot before it is
// applied in memory, so a failed write leaves both sides unchanged.
type Store struct {
	slots    slotRepo
	products productLookup
	orders   orderSubmitter
	owner    string
	logger   *log.Logger

	mu    sync.Mutex
	items []domain.CartItem
}

func New(slots slotRepo, products productLookup, orders orderSubmitter, owner string, logger *log.Logger) *Store {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Store{
		slots:    slots,
		products: products,
		orders:   orders,
		owner:    owner,
		logger:   logger,
	}
}

// Load replaces the in-memory cart with the persisted one. A missing or
// malformed slot yields an empty cart; only storage failures are returned.
// Lines with a quantity below one are dropped and repeated product ids are
// merged, and the cleaned list is written back.
func (s *Store) Load(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items = nil
	raw, err := s.slots.Get(ctx, s.owner, domain.CartSlot)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil
		}
		return fmt.Errorf("load cart: %w", err)
	}

	var items []domain.CartItem
	if err := json.Unmarshal(raw, &items); err != nil {
		s.logger.Printf("cart: owner=%s malformed slot ignored error=%v", s.owner, err)
		return nil
	}
	clean := make([]domain.CartItem, 0, len(items))
	for _, item := range items {
		if item.Quantity < 1 {
			continue
		}
		if idx := indexOf(clean, item.ProductID); idx >= 0 {
			clean[idx].Quantity += item.Quantity
			continue
		}
		clean = append(clean, item)
	}
	if len(clean) == len(items) {
		s.items = clean
		return nil
	}
	// Rewrite the slot so it matches what was restored.
	if err := s.persist(ctx, clean); err != nil {
		s.items = clean
		s.logger.Printf("cart: owner=%s rewrite cleaned slot error=%v", s.owner, err)
	}
	return nil
}

// Add puts one unit of the product in the cart. Unknown products are ignored
// and reported as a nil item.
func (s *Store) Add(ctx context.Context, productID int) (*domain.CartItem, error) {
	product, ok := s.products.Product(productID)
	if !ok {
		return nil, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.snapshot()
	idx := indexOf(next, productID)
	if idx >= 0 {
		next[idx].Quantity++
	} else {
		next = append(next, domain.CartItem{
			ProductID: product.ID,
			Name:      product.Name,
			Price:     product.Price,
			ImageURL:  product.ImageURL,
			Quantity:  1,
		})
		idx = len(next) - 1
	}

	if err := s.persist(ctx, next); err != nil {
		return nil, err
	}
	item := next[idx]
	return &item, nil
}

// SetQuantity updates an item in place. A quantity of zero or less removes it.
// Unknown items are ignored.
func (s *Store) SetQuantity(ctx context.Context, productID, quantity int) error {
	if quantity <= 0 {
		return s.Remove(ctx, productID)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.snapshot()
	idx := indexOf(next, productID)
	if idx < 0 {
		return nil
	}
	next[idx].Quantity = quantity
	return s.persist(ctx, next)
}

// Remove deletes the item if present. The slot is rewritten either way.
func (s *Store) Remove(ctx context.Context, productID int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := make([]domain.CartItem, 0, len(s.items))
	for _, item := range s.items {
		if item.ProductID != productID {
			next = append(next, item)
		}
	}
	return s.persist(ctx, next)
}

// Items returns a copy of the cart in insertion order.
func (s *Store) Items() []domain.CartItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot()
}

// Total sums price times quantity over the current items.
func (s *Store) Total() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return total(s.items)
}

// ItemCount sums the quantities, for the cart badge.
func (s *Store) ItemCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, item := range s.items {
		n += item.Quantity
	}
	return n
}

// Checkout submits the cart as an order and clears it once the backend
// accepts. A rejected or failed submission leaves the cart untouched.
func (s *Store) Checkout(ctx context.Context, user *domain.User, method domain.PaymentMethod) error {
	if user == nil {
		return domain.ErrUnauthenticated
	}
	if strings.TrimSpace(string(method)) == "" {
		return domain.ErrMissingSelection
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	order := domain.Order{
		Products:      s.snapshot(),
		TotalPrice:    total(s.items),
		PaymentMethod: method,
	}
	if err := s.orders.CreateOrder(ctx, order); err != nil {
		s.logger.Printf("cart: owner=%s checkout rejected error=%v", s.owner, err)
		return err
	}

	if err := s.clear(ctx); err != nil {
		return fmt.Errorf("%w: %v", ErrNotCleared, err)
	}
	s.logger.Printf("cart: owner=%s checkout placed items=%d total=%.2f", s.owner, len(order.Products), order.TotalPrice)
	return nil
}

// clear empties the slot and then memory. A failed delete falls back to
// writing an empty list; callers must hold mu.
func (s *Store) clear(ctx context.Context) error {
	err := s.slots.Delete(ctx, s.owner, domain.CartSlot)
	if err == nil {
		s.items = nil
		return nil
	}
	s.logger.Printf("cart: owner=%s clear slot after checkout error=%v", s.owner, err)
	return s.persist(ctx, []domain.CartItem{})
}

func (s *Store) persist(ctx context.Context, next []domain.CartItem) error {
	data, err := json.Marshal(next)
	if err != nil {
		return fmt.Errorf("encode cart: %w", err)
	}
	if err := s.slots.Put(ctx, s.owner, domain.CartSlot, data); err != nil {
		s.logger.Printf("cart: owner=%s persist error=%v", s.owner, err)
		return fmt.Errorf("persist cart: %w", err)
	}
	s.items = next
	return nil
}

// snapshot copies the items; callers must hold mu. It never returns nil so
// the slot always holds a JSON array.
func (s *Store) snapshot() []domain.CartItem {
	out := make([]domain.CartItem, len(s.items))
	copy(out, s.items)
	return out
}

func indexOf(items []domain.CartItem, productID int) int {
	for i, item := range items {
		if item.ProductID == productID {
			return i
		}
	}
	return -1
}

func total(items []domain.CartItem) float64 {
	var sum float64
	for _, item := range items {
		sum += item.LineTotal()
	}
	return sum
}
