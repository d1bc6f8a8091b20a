package controllers

import (
	"context"
	"net/http"

	"github.com/bunnybot/storefront-api/api/middleware"
	"github.com/bunnybot/storefront-api/api/responses"
	"github.com/bunnybot/storefront-api/api/validators"
	"github.com/bunnybot/storefront-api/internal/medusa"
	pkgerrors "github.com/bunnybot/storefront-api/pkg/errors"
	"github.com/bunnybot/storefront-api/pkg/logger"
)

type commerceAuth interface {
	Login(ctx context.Context, credentials medusa.LoginCredentials) (*medusa.Customer, error)
	Register(ctx context.Context, data medusa.RegisterData) (*medusa.Customer, error)
	GetCustomer(ctx context.Context, token string) (*medusa.Customer, error)
	Logout(ctx context.Context, token string) error
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type registerRequest struct {
	Email     string  `json:"email" validate:"required,email"`
	Password  string  `json:"password" validate:"required,min=8"`
	FirstName string  `json:"firstName" validate:"required"`
	LastName  string  `json:"lastName" validate:"required"`
	Phone     *string `json:"phone,omitempty"`
}

// AuthLogin authenticates against the commerce service. Credentials never
// persist here; the commerce response (including its session headers)
// carries the auth state back to the frontend.
func AuthLogin(commerce commerceAuth, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if commerce == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "commerce service unavailable"))
			return
		}

		var payload loginRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		customer, err := commerce.Login(r.Context(), medusa.LoginCredentials{
			Email:    payload.Email,
			Password: payload.Password,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, customer)
	}
}

// AuthRegister creates a customer account.
func AuthRegister(commerce commerceAuth, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if commerce == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "commerce service unavailable"))
			return
		}

		var payload registerRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		customer, err := commerce.Register(r.Context(), medusa.RegisterData{
			Email:     payload.Email,
			Password:  payload.Password,
			FirstName: payload.FirstName,
			LastName:  payload.LastName,
			Phone:     payload.Phone,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, customer)
	}
}

// AuthLogout invalidates the commerce session for the presented token.
func AuthLogout(commerce commerceAuth, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if commerce == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "commerce service unavailable"))
			return
		}

		token := middleware.CustomerTokenFromContext(r.Context())
		if err := commerce.Logout(r.Context(), token); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "logged_out"})
	}
}

// AccountProfile returns the authenticated customer's profile.
func AccountProfile(commerce commerceAuth, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if commerce == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "commerce service unavailable"))
			return
		}

		customer, err := commerce.GetCustomer(r.Context(), middleware.CustomerTokenFromContext(r.Context()))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, customer)
	}
}
