package catalog

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"queencare-storefront/internal/domain"
)

type stubSource struct {
	products     []domain.Product
	doctors      []domain.Doctor
	productsErr  error
	doctorsErr   error
	productCalls int
	doctorCalls  int
}

func (s *stubSource) Products(context.Context) ([]domain.Product, error) {
	s.productCalls++
	return s.products, s.productsErr
}

func (s *stubSource) Doctors(context.Context) ([]domain.Doctor, error) {
	s.doctorCalls++
	return s.doctors, s.doctorsErr
}

var sampleProducts = []domain.Product{
	{ID: 1, Name: "Salicylic Acid Cleanser", Category: "cleanser", Price: 12000},
	{ID: 2, Name: "Vitamin C Serum", Category: "serum", Price: 25000},
	{ID: 3, Name: "Hyaluronic Acid Serum", Category: "serum", Price: 30000},
	{ID: 4, Name: "Body Lotion", Category: "lotion", Price: 9000},
}

func loadedCache(t *testing.T, src *stubSource) *Cache {
	t.Helper()
	c := New(src, nil)
	if err := c.Reload(context.Background()); err != nil {
		t.Fatalf("reload: %v", err)
	}
	return c
}

func TestFilterAllReturnsFullListInOrder(t *testing.T) {
	c := loadedCache(t, &stubSource{products: sampleProducts})
	got := c.Filter(AllCategories)
	if !reflect.DeepEqual(got, sampleProducts) {
		t.Fatalf("unexpected products %+v", got)
	}
}

func TestFilterByCategory(t *testing.T) {
	c := loadedCache(t, &stubSource{products: sampleProducts})
	got := c.Filter("serum")
	if len(got) != 2 || got[0].ID != 2 || got[1].ID != 3 {
		t.Fatalf("unexpected serum subset %+v", got)
	}
	if got := c.Filter("Serum"); len(got) != 0 {
		t.Fatalf("category match must be exact, got %+v", got)
	}
}

func TestFilterDoesNotRefetch(t *testing.T) {
	src := &stubSource{products: sampleProducts}
	c := loadedCache(t, src)
	c.Filter("serum")
	c.Filter(AllCategories)
	if src.productCalls != 1 {
		t.Fatalf("expected a single fetch, got %d", src.productCalls)
	}
}

func TestLoadFailureKeepsPreviousSnapshot(t *testing.T) {
	src := &stubSource{products: sampleProducts}
	c := loadedCache(t, src)

	src.products = nil
	src.productsErr = errors.New("offline")
	if err := c.LoadProducts(context.Background()); err == nil {
		t.Fatalf("expected load error")
	}
	if got := c.Products(); len(got) != len(sampleProducts) {
		t.Fatalf("expected previous snapshot kept, got %+v", got)
	}
}

func TestFirstLoadFailureLeavesEmptyCache(t *testing.T) {
	c := New(&stubSource{productsErr: errors.New("offline")}, nil)
	if err := c.EnsureLoaded(context.Background()); err == nil {
		t.Fatalf("expected error from EnsureLoaded")
	}
	if got := c.Products(); len(got) != 0 {
		t.Fatalf("expected empty cache, got %+v", got)
	}
}

func TestEnsureLoadedOnlyRetriesMissingLists(t *testing.T) {
	src := &stubSource{products: sampleProducts, doctorsErr: errors.New("offline")}
	c := New(src, nil)
	if err := c.EnsureLoaded(context.Background()); err != nil {
		t.Fatalf("doctor failures should not surface: %v", err)
	}
	if err := c.EnsureLoaded(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if src.productCalls != 1 || src.doctorCalls != 2 {
		t.Fatalf("unexpected calls products=%d doctors=%d", src.productCalls, src.doctorCalls)
	}
}

func TestAvailableTimesFor(t *testing.T) {
	c := loadedCache(t, &stubSource{doctors: []domain.Doctor{
		{ID: 1, Name: "د. سارة", AvailableTimes: `["09:00","10:30"]`},
		{ID: 2, Name: "د. ريم", AvailableTimes: `not json`},
	}})

	if got := c.AvailableTimesFor(1); !reflect.DeepEqual(got, []string{"09:00", "10:30"}) {
		t.Fatalf("unexpected times %v", got)
	}
	if got := c.AvailableTimesFor(2); len(got) != 0 {
		t.Fatalf("expected empty times for malformed list, got %v", got)
	}
	if got := c.AvailableTimesFor(99); got == nil || len(got) != 0 {
		t.Fatalf("expected empty non-nil times for unknown doctor, got %#v", got)
	}
}

func TestCategoriesFirstSeenOrder(t *testing.T) {
	c := loadedCache(t, &stubSource{products: sampleProducts})
	want := []string{"cleanser", "serum", "lotion"}
	if got := c.Categories(); !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected categories %v", got)
	}
}

func TestMatchingNamesIsCaseSensitiveSubstring(t *testing.T) {
	c := loadedCache(t, &stubSource{products: sampleProducts})

	got := c.MatchingNames([]string{"Hyaluronic Acid Serum", "Salicylic Acid"})
	if len(got) != 2 || got[0].ID != 1 || got[1].ID != 3 {
		t.Fatalf("unexpected matches %+v", got)
	}
	if got := c.MatchingNames([]string{"vitamin c serum"}); len(got) != 0 {
		t.Fatalf("expected case-sensitive match, got %+v", got)
	}
}

func TestProductLookup(t *testing.T) {
	c := loadedCache(t, &stubSource{products: sampleProducts})
	if p, ok := c.Product(2); !ok || p.Name != "Vitamin C Serum" {
		t.Fatalf("unexpected lookup %+v ok=%v", p, ok)
	}
	if _, ok := c.Product(42); ok {
		t.Fatalf("expected unknown product")
	}
}

func TestNewSchedulerRejectsBadSpec(t *testing.T) {
	c := New(&stubSource{}, nil)
	if _, err := NewScheduler(c, "not a cron", 0); err == nil {
		t.Fatalf("expected invalid spec error")
	}
	s, err := NewScheduler(c, "@every 1h", 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	s.Start()
	s.Stop()
}
