package controllers

import (
	"net/http"

	"github.com/bunnybot/storefront-api/api/responses"
	"github.com/bunnybot/storefront-api/api/validators"
	"github.com/bunnybot/storefront-api/internal/contact"
	pkgerrors "github.com/bunnybot/storefront-api/pkg/errors"
	"github.com/bunnybot/storefront-api/pkg/logger"
)

// ContactSubmit accepts a contact-form submission. Validation failures
// come back as a 400 with the per-field Chinese messages; an accepted
// submission is a 201 even when forwarding to the content service is
// still pending.
func ContactSubmit(svc contact.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "contact service unavailable"))
			return
		}

		var payload contact.Submission
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.Submit(r.Context(), payload)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if !result.Valid {
			err := pkgerrors.New(pkgerrors.CodeValidation, "表单校验失败").WithDetails(result.FieldErrors)
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, map[string]string{"status": "accepted"})
	}
}
