package backend

import (
	"context"
	"io"
	"net/http"

	"queencare-storefront/internal/domain"
)

type authStatus struct {
	Authenticated bool `json:"authenticated"`
}

type userEnvelope struct {
	User *domain.User `json:"user"`
}

type productsEnvelope struct {
	Products []domain.Product `json:"products"`
}

type doctorsEnvelope struct {
	Doctors []domain.Doctor `json:"doctors"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type signupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// CheckAuth reports whether the backend session is authenticated.
func (c *Client) CheckAuth(ctx context.Context) (bool, error) {
	var out authStatus
	if err := c.do(ctx, http.MethodGet, "/api/auth/check-auth", nil, &out); err != nil {
		return false, err
	}
	return out.Authenticated, nil
}

// Me returns the current user, or nil when the backend sends none.
func (c *Client) Me(ctx context.Context) (*domain.User, error) {
	var out userEnvelope
	if err := c.do(ctx, http.MethodGet, "/api/auth/me", nil, &out); err != nil {
		return nil, err
	}
	return out.User, nil
}

func (c *Client) Login(ctx context.Context, email, password string) (*domain.User, error) {
	var out userEnvelope
	if err := c.do(ctx, http.MethodPost, "/api/auth/login", loginRequest{Email: email, Password: password}, &out); err != nil {
		return nil, err
	}
	return out.User, nil
}

func (c *Client) Signup(ctx context.Context, name, email, password string) (*domain.User, error) {
	var out userEnvelope
	if err := c.do(ctx, http.MethodPost, "/api/auth/signup", signupRequest{Name: name, Email: email, Password: password}, &out); err != nil {
		return nil, err
	}
	return out.User, nil
}

// Logout ends the backend session. A non-2xx reply is an *APIError so the
// caller keeps the visitor signed in; the body is not inspected.
func (c *Client) Logout(ctx context.Context) error {
	resp, err := c.send(ctx, http.MethodPost, "/api/auth/logout", nil)
	if err != nil {
		return err
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	_ = resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.logger.Printf("backend: POST /api/auth/logout status=%d", resp.StatusCode)
		return &APIError{Status: resp.StatusCode}
	}
	return nil
}

// Products returns the full catalog. A missing list decodes as empty.
func (c *Client) Products(ctx context.Context) ([]domain.Product, error) {
	var out productsEnvelope
	if err := c.do(ctx, http.MethodGet, "/api/products", nil, &out); err != nil {
		return nil, err
	}
	if out.Products == nil {
		return []domain.Product{}, nil
	}
	return out.Products, nil
}

func (c *Client) Doctors(ctx context.Context) ([]domain.Doctor, error) {
	var out doctorsEnvelope
	if err := c.do(ctx, http.MethodGet, "/api/doctors", nil, &out); err != nil {
		return nil, err
	}
	if out.Doctors == nil {
		return []domain.Doctor{}, nil
	}
	return out.Doctors, nil
}

func (c *Client) CreateOrder(ctx context.Context, order domain.Order) error {
	return c.do(ctx, http.MethodPost, "/api/orders", order, nil)
}

func (c *Client) CreateAppointment(ctx context.Context, appt domain.Appointment) error {
	return c.do(ctx, http.MethodPost, "/api/appointments", appt, nil)
}
