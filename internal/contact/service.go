package contact

import (
	"context"
	"fmt"

	"github.com/bunnybot/storefront-api/internal/strapi"
	pkgerrors "github.com/bunnybot/storefront-api/pkg/errors"
	"github.com/bunnybot/storefront-api/pkg/logger"
)

type contentForwarder interface {
	SubmitContact(ctx context.Context, payload strapi.ContactPayload) error
}

// Service validates, stores, and forwards contact submissions. Storage is
// the source of truth: a submission is accepted once it is in the outbox,
// even when the forward to the content service fails.
type Service interface {
	Submit(ctx context.Context, submission Submission) (Result, error)
	FlushPending(ctx context.Context, limit int) (int, error)
}

type service struct {
	outbox          *Outbox
	content         contentForwarder
	maxAttempts     int
	messageMaxRunes int
	logg            *logger.Logger
}

func NewService(outbox *Outbox, content contentForwarder, maxAttempts, messageMaxRunes int, logg *logger.Logger) (Service, error) {
	if outbox == nil {
		return nil, fmt.Errorf("outbox required")
	}
	if content == nil {
		return nil, fmt.Errorf("content client required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	if maxAttempts < 1 {
		maxAttempts = 10
	}
	if messageMaxRunes < 1 {
		messageMaxRunes = DefaultMessageMaxRunes
	}
	return &service{outbox: outbox, content: content, maxAttempts: maxAttempts, messageMaxRunes: messageMaxRunes, logg: logg}, nil
}

// Submit validates and stores a submission, then attempts one immediate
// forward. A validation failure returns the per-field result with no error;
// a storage failure is the only way Submit errors.
func (s *service) Submit(ctx context.Context, submission Submission) (Result, error) {
	result := Validate(submission, s.messageMaxRunes)
	if !result.Valid {
		return result, nil
	}

	clean := Sanitize(submission)
	row, err := s.outbox.Insert(ctx, clean)
	if err != nil {
		return Result{}, err
	}

	if err := s.forward(ctx, *row); err != nil {
		s.logg.Error(ctx, "contact forward failed, submission left pending", err)
	}
	return Result{Valid: true}, nil
}

// FlushPending retries stored submissions that have not been forwarded yet
// and reports how many were forwarded this pass.
func (s *service) FlushPending(ctx context.Context, limit int) (int, error) {
	rows, err := s.outbox.FetchPending(ctx, limit, s.maxAttempts)
	if err != nil {
		return 0, err
	}

	forwarded := 0
	for _, row := range rows {
		if err := s.forward(ctx, row); err != nil {
			s.logg.Error(ctx, fmt.Sprintf("contact outbox row %s forward failed", row.ID), err)
			continue
		}
		forwarded++
	}
	return forwarded, nil
}

func (s *service) forward(ctx context.Context, row OutboxRow) error {
	payload := strapi.ContactPayload{
		Name:    row.Name,
		Phone:   row.Phone,
		Email:   row.Email,
		Company: row.Company,
		Message: row.Message,
	}
	if err := s.content.SubmitContact(ctx, payload); err != nil {
		if markErr := s.outbox.MarkFailed(ctx, row.ID, err); markErr != nil {
			return markErr
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "forwarding contact submission")
	}
	return s.outbox.MarkForwarded(ctx, row.ID)
}
