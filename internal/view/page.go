package view

import (
	"fmt"
	"strconv"

	"queencare-storefront/internal/articles"
	"queencare-storefront/internal/domain"
	"queencare-storefront/internal/service/catalog"
)

// Page is everything the templates need for one render.
type Page struct {
	Section      Section           `json:"section"`
	ActiveLink   string            `json:"activeLink"`
	Nav          []NavLink         `json:"nav"`
	User         *UserView         `json:"user"`
	CartCount    int               `json:"cartCount"`
	Notice       *Notice           `json:"notice"`
	Modal        Modal             `json:"modal"`
	Products     ProductsView      `json:"products"`
	Cart         CartView          `json:"cart"`
	Analysis     *AnalysisView     `json:"analysis"`
	Appointments AppointmentsView  `json:"appointments"`
	Articles     *articles.Library `json:"articles"`
	Confirmation []string          `json:"confirmation"`
}

type NavLink struct {
	ID     string `json:"id"`
	Active bool   `json:"active"`
}

type UserView struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	Greeting string `json:"greeting"`
}

type Notice struct {
	Kind NoticeKind `json:"kind"`
	Text string     `json:"text"`
}

type Option struct {
	Value    string `json:"value"`
	Label    string `json:"label"`
	Selected bool   `json:"selected"`
}

type ProductCard struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Category    string `json:"category"`
	ImageURL    string `json:"imageUrl"`
	Price       string `json:"price"`
}

type ProductsView struct {
	Filters   []Option      `json:"filters"`
	Items     []ProductCard `json:"items"`
	EmptyText string        `json:"emptyText,omitempty"`
}

type CartLine struct {
	ID        int    `json:"id"`
	Name      string `json:"name"`
	ImageURL  string `json:"imageUrl"`
	Price     string `json:"price"`
	Quantity  int    `json:"quantity"`
	Increment int    `json:"increment"`
	Decrement int    `json:"decrement"`
}

type CartView struct {
	Items          []CartLine `json:"items"`
	Empty          bool       `json:"empty"`
	Total          string     `json:"total"`
	PaymentOptions []Option   `json:"paymentOptions"`
}

type AnalysisView struct {
	SkinType    string        `json:"skinType"`
	Ingredients []string      `json:"ingredients"`
	Products    []ProductCard `json:"products"`
}

type AppointmentsView struct {
	Doctors        []Option `json:"doctors"`
	Times          []Option `json:"times"`
	PaymentOptions []Option `json:"paymentOptions"`
}

// Page projects the current state. It is rebuilt from scratch on every call.
func (a *App) Page() Page {
	a.mu.Lock()
	defer a.mu.Unlock()

	p := Page{
		Section:    a.section,
		ActiveLink: a.activeLink,
		Modal:      a.modal,
		CartCount:  a.cart.ItemCount(),
		Products:   a.productsView(),
		Cart:       a.cartView(),
		Appointments: AppointmentsView{
			Doctors:        a.doctorOptions(),
			Times:          a.timeOptions(),
			PaymentOptions: paymentOptions(),
		},
	}
	for _, s := range Sections {
		p.Nav = append(p.Nav, NavLink{ID: string(s), Active: string(s) == a.activeLink})
	}
	if u := a.session.User(); u != nil {
		p.User = &UserView{ID: u.ID, Name: u.Name, Greeting: fmt.Sprintf(labelGreeting, u.Name)}
	}
	if n := a.notice; n != nil && (a.noticeTTL <= 0 || a.now().Before(n.expires)) {
		p.Notice = &Notice{Kind: n.kind, Text: n.text}
	} else {
		a.notice = nil
	}
	if a.analysis != nil {
		p.Analysis = &AnalysisView{
			SkinType:    a.analysis.SkinType.Label(),
			Ingredients: a.analysis.Keywords(),
			Products:    productCards(a.catalog.MatchingNames(a.analysis.Keywords())),
		}
	}
	if a.section == SectionArticles {
		p.Articles = a.library
	}
	if a.modal == ModalConfirmation && a.confirmation != nil {
		p.Confirmation = a.confirmation.Lines()
	}
	return p
}

func (a *App) productsView() ProductsView {
	filters := []Option{{Value: catalog.AllCategories, Label: labelAllCategories, Selected: a.category == catalog.AllCategories}}
	for _, c := range a.catalog.Categories() {
		filters = append(filters, Option{Value: c, Label: c, Selected: a.category == c})
	}
	view := ProductsView{
		Filters: filters,
		Items:   productCards(a.catalog.Filter(a.category)),
	}
	if len(view.Items) == 0 {
		view.EmptyText = msgNoProducts
	}
	return view
}

func (a *App) cartView() CartView {
	items := a.cart.Items()
	lines := make([]CartLine, 0, len(items))
	for _, it := range items {
		lines = append(lines, CartLine{
			ID:        it.ProductID,
			Name:      it.Name,
			ImageURL:  it.ImageURL,
			Price:     FormatPrice(it.Price),
			Quantity:  it.Quantity,
			Increment: it.Quantity + 1,
			Decrement: it.Quantity - 1,
		})
	}
	return CartView{
		Items:          lines,
		Empty:          len(lines) == 0,
		Total:          FormatPrice(a.cart.Total()),
		PaymentOptions: paymentOptions(),
	}
}

func (a *App) doctorOptions() []Option {
	opts := []Option{{Value: "", Label: labelChooseDoctor, Selected: a.selectedDoctor == 0}}
	for _, d := range a.catalog.Doctors() {
		opts = append(opts, Option{
			Value:    strconv.Itoa(d.ID),
			Label:    d.Name + " - " + d.Specialty,
			Selected: d.ID == a.selectedDoctor,
		})
	}
	return opts
}

func (a *App) timeOptions() []Option {
	opts := []Option{{Value: "", Label: labelChooseTime, Selected: true}}
	if a.selectedDoctor == 0 {
		return opts
	}
	for _, t := range a.catalog.AvailableTimesFor(a.selectedDoctor) {
		opts = append(opts, Option{Value: t, Label: t})
	}
	return opts
}

func paymentOptions() []Option {
	opts := []Option{{Value: "", Label: labelChoosePayment, Selected: true}}
	for _, m := range domain.PaymentMethods {
		opts = append(opts, Option{Value: string(m), Label: m.DisplayName()})
	}
	return opts
}

func productCards(products []domain.Product) []ProductCard {
	cards := make([]ProductCard, 0, len(products))
	for _, p := range products {
		cards = append(cards, ProductCard{
			ID:          p.ID,
			Name:        p.Name,
			Description: p.Description,
			Category:    p.Category,
			ImageURL:    p.ImageURL,
			Price:       FormatPrice(p.Price),
		})
	}
	return cards
}
