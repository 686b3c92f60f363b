package catalog

import (
	"context"
	"encoding/json"
	"io"
	"log"
	"strings"
	"sync"

	"queencare-storefront/internal/domain"
)

// AllCategories selects the whole catalog in Filter.
const AllCategories = "all"

type source interface {
	Products(ctx context.Context) ([]domain.Product, error)
	Doctors(ctx context.Context) ([]domain.Doctor, error)
}

// Cache is the in-memory snapshot of products and doctors shared by every
// visitor. Lists are replaced wholesale on a successful load and kept as-is
// when a load fails.
type Cache struct {
	src    source
	logger *log.Logger

	mu             sync.RWMutex
	products       []domain.Product
	doctors        []domain.Doctor
	productsLoaded bool
	doctorsLoaded  bool
}

func New(src source, logger *log.Logger) *Cache {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Cache{src: src, logger: logger}
}

// LoadProducts refreshes the product list.
func (c *Cache) LoadProducts(ctx context.Context) error {
	products, err := c.src.Products(ctx)
	if err != nil {
		c.logger.Printf("catalog: load products error=%v", err)
		return err
	}
	c.mu.Lock()
	c.products = products
	c.productsLoaded = true
	c.mu.Unlock()
	c.logger.Printf("catalog: loaded products count=%d", len(products))
	return nil
}

// LoadDoctors refreshes the doctor list.
func (c *Cache) LoadDoctors(ctx context.Context) error {
	doctors, err := c.src.Doctors(ctx)
	if err != nil {
		c.logger.Printf("catalog: load doctors error=%v", err)
		return err
	}
	c.mu.Lock()
	c.doctors = doctors
	c.doctorsLoaded = true
	c.mu.Unlock()
	c.logger.Printf("catalog: loaded doctors count=%d", len(doctors))
	return nil
}

// EnsureLoaded retries whichever list has never loaded. The products error,
// if any, is returned so the caller can surface it; doctor failures are only
// logged.
func (c *Cache) EnsureLoaded(ctx context.Context) error {
	c.mu.RLock()
	needProducts, needDoctors := !c.productsLoaded, !c.doctorsLoaded
	c.mu.RUnlock()

	var productsErr error
	if needProducts {
		productsErr = c.LoadProducts(ctx)
	}
	if needDoctors {
		_ = c.LoadDoctors(ctx)
	}
	return productsErr
}

// Reload refreshes both lists, returning the first error.
func (c *Cache) Reload(ctx context.Context) error {
	productsErr := c.LoadProducts(ctx)
	doctorsErr := c.LoadDoctors(ctx)
	if productsErr != nil {
		return productsErr
	}
	return doctorsErr
}

// Products returns a copy of the cached products in backend order.
func (c *Cache) Products() []domain.Product {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]domain.Product(nil), c.products...)
}

// Doctors returns a copy of the cached doctors.
func (c *Cache) Doctors() []domain.Doctor {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]domain.Doctor(nil), c.doctors...)
}

// Filter returns every product for AllCategories, otherwise the products whose
// category matches exactly.
func (c *Cache) Filter(category string) []domain.Product {
	if category == AllCategories {
		return c.Products()
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	var out []domain.Product
	for _, p := range c.products {
		if p.Category == category {
			out = append(out, p)
		}
	}
	return out
}

// Categories lists distinct category tags in first-seen order.
func (c *Cache) Categories() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	seen := make(map[string]bool)
	var out []string
	for _, p := range c.products {
		if p.Category == "" || seen[p.Category] {
			continue
		}
		seen[p.Category] = true
		out = append(out, p.Category)
	}
	return out
}

func (c *Cache) Product(id int) (domain.Product, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, p := range c.products {
		if p.ID == id {
			return p, true
		}
	}
	return domain.Product{}, false
}

func (c *Cache) Doctor(id int) (domain.Doctor, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, d := range c.doctors {
		if d.ID == id {
			return d, true
		}
	}
	return domain.Doctor{}, false
}

// AvailableTimesFor decodes the doctor's slot list. Unknown doctors and
// malformed lists yield an empty result.
func (c *Cache) AvailableTimesFor(doctorID int) []string {
	d, ok := c.Doctor(doctorID)
	if !ok {
		return []string{}
	}
	var times []string
	if err := json.Unmarshal([]byte(d.AvailableTimes), &times); err != nil {
		c.logger.Printf("catalog: doctor_id=%d malformed available_times error=%v", doctorID, err)
		return []string{}
	}
	if times == nil {
		return []string{}
	}
	return times
}

// MatchingNames returns products whose name contains any keyword
// (case-sensitive), in catalog order.
func (c *Cache) MatchingNames(keywords []string) []domain.Product {
	c.mu.RLock()
	defer c.mu.RUnlock()
	var out []domain.Product
	for _, p := range c.products {
		for _, kw := range keywords {
			if kw != "" && strings.Contains(p.Name, kw) {
				out = append(out, p)
				break
			}
		}
	}
	return out
}
