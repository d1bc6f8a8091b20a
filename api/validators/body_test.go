package validators

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	pkgerrors "github.com/bunnybot/storefront-api/pkg/errors"
)

type samplePayload struct {
	Name  string `json:"name" validate:"required"`
	Phone string `json:"phone" validate:"required"`
}

func TestDecodeJSONBody(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"李雷","phone":"13900001111"}`))
	var payload samplePayload
	if err := DecodeJSONBody(req, &payload); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if payload.Name != "李雷" {
		t.Fatalf("unexpected payload %+v", payload)
	}
}

func TestDecodeJSONBodyRejectsUnknownFields(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"李雷","phone":"13900001111","admin":true}`))
	var payload samplePayload
	err := DecodeJSONBody(req, &payload)
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestDecodeJSONBodyReportsFieldsByJSONName(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"李雷"}`))
	var payload samplePayload
	err := DecodeJSONBody(req, &payload)
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
	details, ok := typed.Details().(map[string]string)
	if !ok {
		t.Fatalf("expected field details, got %T", typed.Details())
	}
	if _, ok := details["phone"]; !ok {
		t.Fatalf("expected error keyed by json tag name, got %v", details)
	}
}

func TestDecodeJSONBodyRejectsOversizedBody(t *testing.T) {
	t.Parallel()

	huge := bytes.Repeat([]byte("x"), (256<<10)+1)
	body := `{"name":"李雷","phone":"` + string(huge) + `"}`
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))

	var payload samplePayload
	err := DecodeJSONBody(req, &payload)
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
	if typed.Message() != "request body too large" {
		t.Fatalf("expected size limit error, got %q", typed.Message())
	}
}
