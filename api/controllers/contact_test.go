package controllers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/bunnybot/storefront-api/internal/contact"
	"github.com/bunnybot/storefront-api/pkg/logger"
)

type stubContactService struct {
	result    contact.Result
	submitted []contact.Submission
	err       error
}

func (s *stubContactService) Submit(ctx context.Context, submission contact.Submission) (contact.Result, error) {
	if s.err != nil {
		return contact.Result{}, s.err
	}
	s.submitted = append(s.submitted, submission)
	return s.result, nil
}

func (s *stubContactService) FlushPending(ctx context.Context, limit int) (int, error) {
	return 0, nil
}

func testLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "test", Output: io.Discard})
}

func TestContactSubmitAccepted(t *testing.T) {
	svc := &stubContactService{result: contact.Result{Valid: true}}
	handler := ContactSubmit(svc, testLogger())

	body := `{"name":"李雷","phone":"13900001111","message":"询价"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/contact", strings.NewReader(body))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	if len(svc.submitted) != 1 || svc.submitted[0].Name != "李雷" {
		t.Fatalf("unexpected submissions %+v", svc.submitted)
	}
}

func TestContactSubmitValidationFailure(t *testing.T) {
	svc := &stubContactService{result: contact.Result{
		Valid:       false,
		FieldErrors: map[string]string{"phone": "请输入有效的手机号"},
	}}
	handler := ContactSubmit(svc, testLogger())

	body := `{"name":"李雷","phone":"123","message":"询价"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/contact", strings.NewReader(body))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}

	var envelope struct {
		Error struct {
			Code    string            `json:"code"`
			Details map[string]string `json:"details"`
		} `json:"error"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if envelope.Error.Code != "VALIDATION_ERROR" {
		t.Fatalf("expected validation code, got %q", envelope.Error.Code)
	}
	if envelope.Error.Details["phone"] != "请输入有效的手机号" {
		t.Fatalf("expected field error in details, got %+v", envelope.Error.Details)
	}
}

func TestContactSubmitMalformedBody(t *testing.T) {
	handler := ContactSubmit(&stubContactService{}, testLogger())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/contact", strings.NewReader("{not json"))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for malformed body, got %d", rec.Code)
	}
}
