package cart

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"queencare-storefront/internal/domain"
)

type stubSlots struct {
	data      map[string][]byte
	getErr    error
	putErr    error
	deleteErr error
	puts      int
	deletes   int
}

func newStubSlots() *stubSlots {
	return &stubSlots{data: map[string][]byte{}}
}

func (s *stubSlots) Get(_ context.Context, owner, name string) ([]byte, error) {
	if s.getErr != nil {
		return nil, s.getErr
	}
	raw, ok := s.data[owner+"/"+name]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return raw, nil
}

func (s *stubSlots) Put(_ context.Context, owner, name string, data []byte) error {
	s.puts++
	if s.putErr != nil {
		return s.putErr
	}
	s.data[owner+"/"+name] = append([]byte(nil), data...)
	return nil
}

func (s *stubSlots) Delete(_ context.Context, owner, name string) error {
	s.deletes++
	if s.deleteErr != nil {
		return s.deleteErr
	}
	delete(s.data, owner+"/"+name)
	return nil
}

func (s *stubSlots) stored(t *testing.T, owner string) []domain.CartItem {
	t.Helper()
	raw, ok := s.data[owner+"/"+domain.CartSlot]
	if !ok {
		return nil
	}
	var items []domain.CartItem
	if err := json.Unmarshal(raw, &items); err != nil {
		t.Fatalf("decode stored cart: %v", err)
	}
	return items
}

type stubProducts map[int]domain.Product

func (s stubProducts) Product(id int) (domain.Product, bool) {
	p, ok := s[id]
	return p, ok
}

type stubOrders struct {
	err   error
	calls int
	last  domain.Order
}

func (s *stubOrders) CreateOrder(_ context.Context, order domain.Order) error {
	s.calls++
	s.last = order
	return s.err
}

var catalog = stubProducts{
	1: {ID: 1, Name: "Vitamin C Serum", Price: 25000, ImageURL: "/img/vc.jpg", Category: "serum"},
	2: {ID: 2, Name: "Body Lotion", Price: 9000, Category: "lotion"},
}

func newStore(slots *stubSlots, orders *stubOrders) *Store {
	return New(slots, catalog, orders, "visitor-1", nil)
}

func TestAddNewProductPersists(t *testing.T) {
	slots := newStubSlots()
	s := newStore(slots, &stubOrders{})

	item, err := s.Add(context.Background(), 1)
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if item == nil || item.Quantity != 1 || item.Name != "Vitamin C Serum" || item.ImageURL != "/img/vc.jpg" {
		t.Fatalf("unexpected item %+v", item)
	}
	stored := slots.stored(t, "visitor-1")
	if len(stored) != 1 || stored[0].ProductID != 1 || stored[0].Price != 25000 {
		t.Fatalf("unexpected stored cart %+v", stored)
	}
}

func TestAddExistingIncrements(t *testing.T) {
	s := newStore(newStubSlots(), &stubOrders{})
	ctx := context.Background()
	_, _ = s.Add(ctx, 1)
	_, _ = s.Add(ctx, 2)
	item, err := s.Add(ctx, 1)
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if item.Quantity != 2 {
		t.Fatalf("expected quantity 2, got %d", item.Quantity)
	}
	items := s.Items()
	if len(items) != 2 || items[0].ProductID != 1 || items[1].ProductID != 2 {
		t.Fatalf("insertion order not kept: %+v", items)
	}
	if s.ItemCount() != 3 {
		t.Fatalf("expected count 3, got %d", s.ItemCount())
	}
}

func TestAddUnknownProductIsNoop(t *testing.T) {
	slots := newStubSlots()
	s := newStore(slots, &stubOrders{})
	item, err := s.Add(context.Background(), 99)
	if err != nil || item != nil {
		t.Fatalf("expected silent no-op, got item=%+v err=%v", item, err)
	}
	if slots.puts != 0 {
		t.Fatalf("expected no write, got %d", slots.puts)
	}
}

func TestPersistFailureLeavesCartUnchanged(t *testing.T) {
	slots := newStubSlots()
	s := newStore(slots, &stubOrders{})
	ctx := context.Background()
	if _, err := s.Add(ctx, 1); err != nil {
		t.Fatalf("add: %v", err)
	}

	slots.putErr = errors.New("disk full")
	if _, err := s.Add(ctx, 1); err == nil {
		t.Fatalf("expected persist error")
	}
	if err := s.SetQuantity(ctx, 1, 5); err == nil {
		t.Fatalf("expected persist error")
	}
	items := s.Items()
	if len(items) != 1 || items[0].Quantity != 1 {
		t.Fatalf("memory diverged from storage: %+v", items)
	}
	if stored := slots.stored(t, "visitor-1"); stored[0].Quantity != 1 {
		t.Fatalf("unexpected stored cart %+v", stored)
	}
}

func TestSetQuantity(t *testing.T) {
	slots := newStubSlots()
	s := newStore(slots, &stubOrders{})
	ctx := context.Background()
	_, _ = s.Add(ctx, 1)

	if err := s.SetQuantity(ctx, 1, 4); err != nil {
		t.Fatalf("set quantity: %v", err)
	}
	if got := s.Total(); got != 100000 {
		t.Fatalf("expected total 100000, got %v", got)
	}
	if err := s.SetQuantity(ctx, 2, 3); err != nil {
		t.Fatalf("unknown item should be ignored: %v", err)
	}
	if len(s.Items()) != 1 {
		t.Fatalf("unknown item must not be added")
	}
}

func TestSetQuantityZeroRemoves(t *testing.T) {
	slots := newStubSlots()
	s := newStore(slots, &stubOrders{})
	ctx := context.Background()
	_, _ = s.Add(ctx, 1)
	_, _ = s.Add(ctx, 2)

	if err := s.SetQuantity(ctx, 1, 0); err != nil {
		t.Fatalf("set quantity: %v", err)
	}
	items := s.Items()
	if len(items) != 1 || items[0].ProductID != 2 {
		t.Fatalf("expected only product 2, got %+v", items)
	}
	if stored := slots.stored(t, "visitor-1"); len(stored) != 1 {
		t.Fatalf("unexpected stored cart %+v", stored)
	}
}

func TestRemoveLastItemStoresEmptyArray(t *testing.T) {
	slots := newStubSlots()
	s := newStore(slots, &stubOrders{})
	ctx := context.Background()
	_, _ = s.Add(ctx, 1)
	if err := s.Remove(ctx, 1); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if raw := string(slots.data["visitor-1/"+domain.CartSlot]); raw != "[]" {
		t.Fatalf("expected empty array in slot, got %q", raw)
	}
}

func TestLoadRestoresAndDropsInvalidQuantities(t *testing.T) {
	slots := newStubSlots()
	slots.data["visitor-1/"+domain.CartSlot] = []byte(`[
		{"id":1,"name":"Vitamin C Serum","price":25000,"image_url":"/img/vc.jpg","quantity":2},
		{"id":2,"name":"Body Lotion","price":9000,"image_url":"","quantity":0}
	]`)
	s := newStore(slots, &stubOrders{})
	if err := s.Load(context.Background()); err != nil {
		t.Fatalf("load: %v", err)
	}
	items := s.Items()
	if len(items) != 1 || items[0].Quantity != 2 {
		t.Fatalf("unexpected items %+v", items)
	}
}

func TestLoadMalformedYieldsEmptyCart(t *testing.T) {
	slots := newStubSlots()
	slots.data["visitor-1/"+domain.CartSlot] = []byte(`{not json`)
	s := newStore(slots, &stubOrders{})
	if err := s.Load(context.Background()); err != nil {
		t.Fatalf("malformed slot should not error: %v", err)
	}
	if len(s.Items()) != 0 {
		t.Fatalf("expected empty cart")
	}
}

func TestLoadStorageError(t *testing.T) {
	slots := newStubSlots()
	slots.getErr = errors.New("redis down")
	s := newStore(slots, &stubOrders{})
	if err := s.Load(context.Background()); err == nil {
		t.Fatalf("expected storage error")
	}
}

func TestCheckoutRequiresUser(t *testing.T) {
	orders := &stubOrders{}
	s := newStore(newStubSlots(), orders)
	_, _ = s.Add(context.Background(), 1)

	err := s.Checkout(context.Background(), nil, domain.PaymentCashOnDelivery)
	if !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated, got %v", err)
	}
	if orders.calls != 0 {
		t.Fatalf("backend must not be called")
	}
}

func TestCheckoutRequiresPaymentMethod(t *testing.T) {
	orders := &stubOrders{}
	s := newStore(newStubSlots(), orders)
	err := s.Checkout(context.Background(), &domain.User{ID: 1}, "")
	if !errors.Is(err, domain.ErrMissingSelection) {
		t.Fatalf("expected ErrMissingSelection, got %v", err)
	}
	if orders.calls != 0 {
		t.Fatalf("backend must not be called")
	}
}

func TestCheckoutSuccessClearsCart(t *testing.T) {
	slots := newStubSlots()
	orders := &stubOrders{}
	s := newStore(slots, orders)
	ctx := context.Background()
	_, _ = s.Add(ctx, 1)
	_, _ = s.Add(ctx, 1)
	_, _ = s.Add(ctx, 2)

	if err := s.Checkout(ctx, &domain.User{ID: 7}, domain.PaymentSyriatelCash); err != nil {
		t.Fatalf("checkout: %v", err)
	}
	if orders.last.TotalPrice != 59000 || len(orders.last.Products) != 2 {
		t.Fatalf("unexpected order %+v", orders.last)
	}
	if orders.last.PaymentMethod != domain.PaymentSyriatelCash {
		t.Fatalf("unexpected payment method %q", orders.last.PaymentMethod)
	}
	if len(s.Items()) != 0 || s.Total() != 0 {
		t.Fatalf("expected empty cart after checkout")
	}
	if _, ok := slots.data["visitor-1/"+domain.CartSlot]; ok {
		t.Fatalf("expected slot to be removed")
	}
}

func TestCheckoutBackendErrorKeepsCart(t *testing.T) {
	slots := newStubSlots()
	orders := &stubOrders{err: errors.New("rejected")}
	s := newStore(slots, orders)
	ctx := context.Background()
	_, _ = s.Add(ctx, 2)

	if err := s.Checkout(ctx, &domain.User{ID: 7}, domain.PaymentBankAlBaraka); err == nil {
		t.Fatalf("expected backend error")
	}
	if len(s.Items()) != 1 || slots.deletes != 0 {
		t.Fatalf("cart must be untouched on failure")
	}
}

func TestCheckoutDeleteFailureFallsBackToEmptySlot(t *testing.T) {
	slots := newStubSlots()
	s := newStore(slots, &stubOrders{})
	ctx := context.Background()
	_, _ = s.Add(ctx, 1)

	slots.deleteErr = errors.New("delete refused")
	if err := s.Checkout(ctx, &domain.User{ID: 7}, domain.PaymentCashOnDelivery); err != nil {
		t.Fatalf("checkout: %v", err)
	}
	if len(s.Items()) != 0 {
		t.Fatalf("expected empty cart in memory")
	}
	if raw := string(slots.data["visitor-1/"+domain.CartSlot]); raw != "[]" {
		t.Fatalf("expected empty array in slot, got %q", raw)
	}

	reloaded := newStore(slots, &stubOrders{})
	if err := reloaded.Load(ctx); err != nil {
		t.Fatalf("load: %v", err)
	}
	if items := reloaded.Items(); len(items) != 0 {
		t.Fatalf("placed order came back on reload: %+v", items)
	}
}

func TestCheckoutSlotNotClearedKeepsCart(t *testing.T) {
	slots := newStubSlots()
	orders := &stubOrders{}
	s := newStore(slots, orders)
	ctx := context.Background()
	_, _ = s.Add(ctx, 2)

	slots.deleteErr = errors.New("delete refused")
	slots.putErr = errors.New("write refused")
	err := s.Checkout(ctx, &domain.User{ID: 7}, domain.PaymentCashOnDelivery)
	if !errors.Is(err, ErrNotCleared) {
		t.Fatalf("expected ErrNotCleared, got %v", err)
	}
	if orders.calls != 1 {
		t.Fatalf("expected order submitted once, got %d", orders.calls)
	}
	items := s.Items()
	stored := slots.stored(t, "visitor-1")
	if len(items) != 1 || len(stored) != 1 || items[0] != stored[0] {
		t.Fatalf("memory %+v and storage %+v diverged", items, stored)
	}
}

func TestSetQuantityNegativeRemoves(t *testing.T) {
	slots := newStubSlots()
	s := newStore(slots, &stubOrders{})
	ctx := context.Background()
	_, _ = s.Add(ctx, 1)

	if err := s.SetQuantity(ctx, 1, -1); err != nil {
		t.Fatalf("set quantity: %v", err)
	}
	if len(s.Items()) != 0 || len(slots.stored(t, "visitor-1")) != 0 {
		t.Fatalf("expected item removed")
	}
}

func TestAddThenRemoveRestoresCart(t *testing.T) {
	products := stubProducts{
		1: {ID: 1, Name: "A", Price: 100},
		2: {ID: 2, Name: "B", Price: 200},
		3: {ID: 3, Name: "C", Price: 300},
	}
	s := New(newStubSlots(), products, &stubOrders{}, "visitor-1", nil)
	ctx := context.Background()
	_, _ = s.Add(ctx, 1)
	_, _ = s.Add(ctx, 3)
	before := s.Items()

	_, _ = s.Add(ctx, 2)
	if err := s.Remove(ctx, 2); err != nil {
		t.Fatalf("remove: %v", err)
	}
	after := s.Items()
	if len(after) != len(before) {
		t.Fatalf("expected %d items, got %+v", len(before), after)
	}
	for i := range before {
		if after[i] != before[i] {
			t.Fatalf("item %d changed: %+v vs %+v", i, after[i], before[i])
		}
	}
}

func TestRemoveMiddleItemKeepsOrder(t *testing.T) {
	products := stubProducts{
		1: {ID: 1, Name: "A", Price: 100},
		2: {ID: 2, Name: "B", Price: 200},
		3: {ID: 3, Name: "C", Price: 300},
	}
	s := New(newStubSlots(), products, &stubOrders{}, "visitor-1", nil)
	ctx := context.Background()
	for _, id := range []int{1, 2, 3} {
		_, _ = s.Add(ctx, id)
	}
	if err := s.Remove(ctx, 2); err != nil {
		t.Fatalf("remove: %v", err)
	}
	items := s.Items()
	if len(items) != 2 || items[0].ProductID != 1 || items[1].ProductID != 3 {
		t.Fatalf("unexpected order %+v", items)
	}
}

func TestStorageMirrorsMemoryAfterEveryStep(t *testing.T) {
	slots := newStubSlots()
	s := newStore(slots, &stubOrders{})
	ctx := context.Background()

	steps := []struct {
		name string
		run  func() error
	}{
		{"add 1", func() error { _, err := s.Add(ctx, 1); return err }},
		{"add 2", func() error { _, err := s.Add(ctx, 2); return err }},
		{"add 1 again", func() error { _, err := s.Add(ctx, 1); return err }},
		{"set 2 to 5", func() error { return s.SetQuantity(ctx, 2, 5) }},
		{"remove 1", func() error { return s.Remove(ctx, 1) }},
		{"add 1 back", func() error { _, err := s.Add(ctx, 1); return err }},
		{"set 2 to 0", func() error { return s.SetQuantity(ctx, 2, 0) }},
		{"remove missing", func() error { return s.Remove(ctx, 9) }},
	}
	for _, step := range steps {
		if err := step.run(); err != nil {
			t.Fatalf("%s: %v", step.name, err)
		}
		items := s.Items()
		stored := slots.stored(t, "visitor-1")
		if len(items) != len(stored) {
			t.Fatalf("%s: memory %+v, storage %+v", step.name, items, stored)
		}
		for i := range items {
			if items[i] != stored[i] {
				t.Fatalf("%s: item %d memory %+v, storage %+v", step.name, i, items[i], stored[i])
			}
		}
	}
}

func TestTotalExample(t *testing.T) {
	products := stubProducts{
		1: {ID: 1, Name: "A", Price: 1000},
		2: {ID: 2, Name: "B", Price: 500},
	}
	s := New(newStubSlots(), products, &stubOrders{}, "visitor-1", nil)
	ctx := context.Background()
	_, _ = s.Add(ctx, 1)
	_, _ = s.Add(ctx, 1)
	_, _ = s.Add(ctx, 2)
	if got := s.Total(); got != 2500 {
		t.Fatalf("expected total 2500, got %v", got)
	}
}

func TestLoadRewritesCleanedSlot(t *testing.T) {
	slots := newStubSlots()
	slots.data["visitor-1/"+domain.CartSlot] = []byte(`[
		{"id":1,"name":"Vitamin C Serum","price":25000,"image_url":"","quantity":1},
		{"id":2,"name":"Body Lotion","price":9000,"image_url":"","quantity":-3},
		{"id":1,"name":"Vitamin C Serum","price":25000,"image_url":"","quantity":2}
	]`)
	s := newStore(slots, &stubOrders{})
	if err := s.Load(context.Background()); err != nil {
		t.Fatalf("load: %v", err)
	}
	items := s.Items()
	if len(items) != 1 || items[0].ProductID != 1 || items[0].Quantity != 3 {
		t.Fatalf("expected one merged line, got %+v", items)
	}
	stored := slots.stored(t, "visitor-1")
	if len(stored) != 1 || stored[0] != items[0] {
		t.Fatalf("expected cleaned slot, got %+v", stored)
	}
}

func TestLoadCleanSlotIsNotRewritten(t *testing.T) {
	slots := newStubSlots()
	slots.data["visitor-1/"+domain.CartSlot] = []byte(`[{"id":1,"name":"Vitamin C Serum","price":25000,"image_url":"","quantity":2}]`)
	s := newStore(slots, &stubOrders{})
	if err := s.Load(context.Background()); err != nil {
		t.Fatalf("load: %v", err)
	}
	if slots.puts != 0 {
		t.Fatalf("expected no write for a clean slot, got %d", slots.puts)
	}
}
