// Package view holds the application state of one storefront visitor and
// turns commands into state changes, notices and page view models.
package view

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"
	"sync"
	"time"

	"queencare-storefront/internal/articles"
	"queencare-storefront/internal/backend"
	"queencare-storefront/internal/domain"
	"queencare-storefront/internal/service/analysis"
	"queencare-storefront/internal/service/appointment"
	"queencare-storefront/internal/service/cart"
	"queencare-storefront/internal/service/catalog"
	"queencare-storefront/internal/service/customer"
)

// Backend is the per-visitor slice of the REST API the App talks to.
type Backend interface {
	CheckAuth(ctx context.Context) (bool, error)
	Me(ctx context.Context) (*domain.User, error)
	Login(ctx context.Context, email, password string) (*domain.User, error)
	Signup(ctx context.Context, name, email, password string) (*domain.User, error)
	Logout(ctx context.Context) error
	CreateOrder(ctx context.Context, order domain.Order) error
	CreateAppointment(ctx context.Context, appt domain.Appointment) error
}

// Catalog is the shared product and doctor snapshot.
type Catalog interface {
	EnsureLoaded(ctx context.Context) error
	Filter(category string) []domain.Product
	Categories() []string
	Product(id int) (domain.Product, bool)
	Doctor(id int) (domain.Doctor, bool)
	Doctors() []domain.Doctor
	AvailableTimesFor(doctorID int) []string
	MatchingNames(keywords []string) []domain.Product
}

// Slots is the durable storage behind the cart.
type Slots interface {
	Get(ctx context.Context, owner, name string) ([]byte, error)
	Put(ctx context.Context, owner, name string, data []byte) error
	Delete(ctx context.Context, owner, name string) error
}

// Deps wires an App to its collaborators.
type Deps struct {
	Catalog    Catalog
	Slots      Slots
	NewBackend func() Backend
	// Articles loads the static article library; defaults to articles.Load.
	Articles  func() (*articles.Library, error)
	NoticeTTL time.Duration
	Logger    *log.Logger
	Now       func() time.Time
}

// NoticeKind styles a notice.
type NoticeKind string

const (
	NoticeSuccess NoticeKind = "success"
	NoticeError   NoticeKind = "error"
)

type notice struct {
	kind    NoticeKind
	text    string
	expires time.Time
}

// App is one visitor's storefront. Commands are serialized by mu and each
// runs to completion before the next starts.
type App struct {
	id        string
	catalog   Catalog
	cart      *cart.Store
	session   *customer.Session
	booking   *appointment.Service
	loadLib   func() (*articles.Library, error)
	noticeTTL time.Duration
	now       func() time.Time
	logger    *log.Logger

	mu             sync.Mutex
	ready          bool
	lastSeen       time.Time
	section        Section
	activeLink     string
	category       string
	analysis       *analysis.Result
	selectedDoctor int
	modal          Modal
	confirmation   *appointment.Confirmation
	library        *articles.Library
	notice         *notice
}

// NewApp builds the state for visitor id. Nothing is fetched until the first
// command runs.
func NewApp(id string, d Deps) *App {
	logger := d.Logger
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	now := d.Now
	if now == nil {
		now = time.Now
	}
	loadLib := d.Articles
	if loadLib == nil {
		loadLib = articles.Load
	}
	api := d.NewBackend()
	return &App{
		id:         id,
		catalog:    d.Catalog,
		cart:       cart.New(d.Slots, d.Catalog, api, id, logger),
		session:    customer.New(api, logger),
		booking:    appointment.New(d.Catalog, api, logger),
		loadLib:    loadLib,
		noticeTTL:  d.NoticeTTL,
		now:        now,
		logger:     logger,
		section:    SectionHome,
		activeLink: string(SectionHome),
		category:   catalog.AllCategories,
	}
}

func (a *App) ID() string { return a.id }

// LastSeen is when the visitor last ran a command.
func (a *App) LastSeen() time.Time {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.lastSeen
}

// enter locks the App and performs the page-session start on first use:
// check-auth, catalog load, cart restore. It reports whether this call ran it.
func (a *App) enter(ctx context.Context) bool {
	a.mu.Lock()
	a.lastSeen = a.now()
	if a.ready {
		return false
	}
	a.ready = true

	_ = a.session.CheckAuth(ctx)
	a.ensureCatalog(ctx)
	if err := a.cart.Load(ctx); err != nil {
		a.logger.Printf("view: visitor=%s restore cart error=%v", a.id, err)
	}
	return true
}

// ensureCatalog retries whatever list the shared cache is still missing.
// Once both lists are in it makes no backend call.
func (a *App) ensureCatalog(ctx context.Context) {
	if err := a.catalog.EnsureLoaded(ctx); err != nil {
		a.fail(msgProductsLoad)
	}
}

func (a *App) leave() { a.mu.Unlock() }

// Init starts a page session. The first one also restores the session and
// cart; every one retries a catalog that failed to load.
func (a *App) Init(ctx context.Context) {
	first := a.enter(ctx)
	defer a.leave()
	if !first {
		a.ensureCatalog(ctx)
	}
}

// Navigate shows the requested section. Unknown ids show home.
func (a *App) Navigate(ctx context.Context, id string) {
	a.enter(ctx)
	defer a.leave()
	a.navigate(id)
}

func (a *App) navigate(id string) {
	a.section = ResolveSection(id)
	a.activeLink = id
	if a.section == SectionArticles && a.library == nil {
		lib, err := a.loadLib()
		if err != nil {
			a.logger.Printf("view: visitor=%s build articles error=%v", a.id, err)
			a.fail(msgArticlesLoad)
			return
		}
		a.library = lib
	}
}

// FilterProducts selects the product category shown. An empty category
// means all.
func (a *App) FilterProducts(ctx context.Context, category string) {
	a.enter(ctx)
	defer a.leave()
	category = strings.TrimSpace(category)
	if category == "" {
		category = catalog.AllCategories
	}
	a.category = category
}

func (a *App) AddToCart(ctx context.Context, productID int) {
	a.enter(ctx)
	defer a.leave()
	a.addToCart(ctx, productID)
}

func (a *App) addToCart(ctx context.Context, productID int) {
	item, err := a.cart.Add(ctx, productID)
	if err != nil {
		a.fail(msgCartSaveFailed)
		return
	}
	if item == nil {
		return
	}
	a.succeed(fmt.Sprintf(msgAddedToCart, item.Name))
}

// UpdateQuantity sets an item's quantity; zero or less removes it.
func (a *App) UpdateQuantity(ctx context.Context, productID, quantity int) {
	a.enter(ctx)
	defer a.leave()
	if quantity <= 0 {
		a.removeFromCart(ctx, productID)
		return
	}
	if err := a.cart.SetQuantity(ctx, productID, quantity); err != nil {
		a.fail(msgCartSaveFailed)
	}
}

func (a *App) RemoveFromCart(ctx context.Context, productID int) {
	a.enter(ctx)
	defer a.leave()
	a.removeFromCart(ctx, productID)
}

func (a *App) removeFromCart(ctx context.Context, productID int) {
	if err := a.cart.Remove(ctx, productID); err != nil {
		a.fail(msgCartSaveFailed)
		return
	}
	a.succeed(msgRemovedFromCart)
}

// Checkout places the cart as an order.
func (a *App) Checkout(ctx context.Context, method domain.PaymentMethod) {
	a.enter(ctx)
	defer a.leave()

	err := a.cart.Checkout(ctx, a.session.User(), method)
	switch {
	case err == nil:
		a.succeed(msgOrderPlaced)
	case errors.Is(err, domain.ErrUnauthenticated):
		a.requireLogin()
	case errors.Is(err, domain.ErrMissingSelection):
		a.fail(msgChoosePayment)
	case errors.Is(err, cart.ErrNotCleared):
		a.fail(msgCartSaveFailed)
	default:
		a.fail(failureText(err, msgOrderFailed))
	}
}

// Analyze runs the skin quiz. Age and routine are collected by the form but
// do not change the result.
func (a *App) Analyze(ctx context.Context, issues []string) {
	a.enter(ctx)
	defer a.leave()
	result := analysis.Analyze(issues)
	a.analysis = &result
	a.section = SectionAnalysis
	a.activeLink = string(SectionAnalysis)
}

// SelectDoctor picks the doctor whose times are offered. An unknown id
// clears the selection.
func (a *App) SelectDoctor(ctx context.Context, doctorID int) {
	a.enter(ctx)
	defer a.leave()
	if _, ok := a.catalog.Doctor(doctorID); !ok {
		a.selectedDoctor = 0
		return
	}
	a.selectedDoctor = doctorID
}

// BookAppointment submits the booking form.
func (a *App) BookAppointment(ctx context.Context, in appointment.Input) {
	a.enter(ctx)
	defer a.leave()

	conf, err := a.booking.Book(ctx, a.session.User(), in)
	switch {
	case err == nil:
		a.confirmation = conf
		a.modal = ModalConfirmation
		a.selectedDoctor = 0
	case errors.Is(err, domain.ErrUnauthenticated):
		a.requireLogin()
	case errors.Is(err, domain.ErrMissingSelection):
		a.fail(msgFillRequired)
	default:
		a.fail(failureText(err, msgAppointmentFailed))
	}
}

func (a *App) Login(ctx context.Context, email, password string) {
	a.enter(ctx)
	defer a.leave()
	if _, err := a.session.Login(ctx, email, password); err != nil {
		a.fail(failureText(err, msgLoginFailed))
		return
	}
	if a.modal == ModalLogin {
		a.modal = ModalNone
	}
	a.succeed(msgLoginOK)
}

func (a *App) Signup(ctx context.Context, name, email, password string) {
	a.enter(ctx)
	defer a.leave()
	if _, err := a.session.Signup(ctx, name, email, password); err != nil {
		a.fail(failureText(err, msgSignupFailed))
		return
	}
	if a.modal == ModalSignup {
		a.modal = ModalNone
	}
	a.succeed(msgSignupOK)
}

// Logout signs the visitor out. A failed call is only logged and the
// visitor stays signed in.
func (a *App) Logout(ctx context.Context) {
	a.enter(ctx)
	defer a.leave()
	if err := a.session.Logout(ctx); err != nil {
		return
	}
	a.succeed(msgLogoutOK)
}

// OpenModal shows a known dialog; other ids are ignored.
func (a *App) OpenModal(ctx context.Context, id string) {
	a.enter(ctx)
	defer a.leave()
	m, ok := knownModal(id)
	if !ok || (m == ModalConfirmation && a.confirmation == nil) {
		return
	}
	a.modal = m
}

func (a *App) CloseModal(ctx context.Context) {
	a.enter(ctx)
	defer a.leave()
	a.modal = ModalNone
}

func (a *App) requireLogin() {
	a.fail(msgLoginRequired)
	a.modal = ModalLogin
}

// A new notice replaces the one on screen.
func (a *App) succeed(text string) { a.setNotice(NoticeSuccess, text) }
func (a *App) fail(text string)    { a.setNotice(NoticeError, text) }

func (a *App) setNotice(kind NoticeKind, text string) {
	a.notice = &notice{kind: kind, text: text, expires: a.now().Add(a.noticeTTL)}
}

// failureText picks what the visitor sees for a failed backend call: the
// backend's own message, the connectivity message, or the fallback.
func failureText(err error, fallback string) string {
	var apiErr *backend.APIError
	if errors.As(err, &apiErr) {
		if apiErr.Message != "" {
			return apiErr.Message
		}
		return fallback
	}
	if errors.Is(err, backend.ErrUnavailable) {
		return msgConnection
	}
	return fallback
}
