package controllers

import (
	"net/http"
	"strings"

	"github.com/bunnybot/storefront-api/api/responses"
	"github.com/bunnybot/storefront-api/api/validators"
	"github.com/bunnybot/storefront-api/internal/revalidate"
	pkgerrors "github.com/bunnybot/storefront-api/pkg/errors"
	"github.com/bunnybot/storefront-api/pkg/logger"
)

type revalidateRequest struct {
	Model string         `json:"model" validate:"required"`
	Entry map[string]any `json:"entry,omitempty"`
}

// RevalidateWebhook receives content-change notifications from the CMS and
// purges the affected page-cache paths. The shared secret travels in the
// Authorization header or the ?secret= query parameter.
func RevalidateWebhook(svc revalidate.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "revalidate service unavailable"))
			return
		}

		if err := svc.Authorize(presentedSecret(r)); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload revalidateRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		event := revalidate.Event{Model: payload.Model}
		if slug, ok := payload.Entry["slug"].(string); ok {
			event.Slug = slug
		}

		outcome, err := svc.HandleEvent(r.Context(), event)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, outcome)
	}
}

// RevalidatePath is the manual GET variant: purge a single page path.
func RevalidatePath(svc revalidate.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "revalidate service unavailable"))
			return
		}

		if err := svc.Authorize(presentedSecret(r)); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		path := r.URL.Query().Get("path")
		if err := svc.PurgePath(r.Context(), path); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"revalidated": true, "path": path})
	}
}

func presentedSecret(r *http.Request) string {
	if secret := r.URL.Query().Get("secret"); secret != "" {
		return secret
	}
	raw := strings.TrimSpace(r.Header.Get("Authorization"))
	if strings.HasPrefix(strings.ToLower(raw), "bearer ") {
		return strings.TrimSpace(raw[7:])
	}
	return raw
}
