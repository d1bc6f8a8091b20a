package contact

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	pkgerrors "github.com/bunnybot/storefront-api/pkg/errors"
)

// OutboxRow is a stored contact submission awaiting forwarding to the
// content service. Rows stay pending until a forward attempt succeeds.
type OutboxRow struct {
	ID           uuid.UUID  `gorm:"column:id;type:uuid;primaryKey"`
	Name         string     `gorm:"column:name;not null"`
	Phone        string     `gorm:"column:phone;not null"`
	Email        string     `gorm:"column:email"`
	Company      *string    `gorm:"column:company"`
	Message      string     `gorm:"column:message;not null"`
	AttemptCount int        `gorm:"column:attempt_count;not null;default:0"`
	LastError    *string    `gorm:"column:last_error"`
	ForwardedAt  *time.Time `gorm:"column:forwarded_at"`
	CreatedAt    time.Time  `gorm:"column:created_at;autoCreateTime"`
}

func (OutboxRow) TableName() string {
	return "contact_outbox"
}

// Outbox persists contact submissions in a local sqlite file so a content
// service outage never loses a submission.
type Outbox struct {
	db *gorm.DB
}

// OpenOutbox opens (or creates) the sqlite outbox at path and migrates its
// schema.
func OpenOutbox(path string) (*Outbox, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "opening contact outbox")
	}
	if err := db.AutoMigrate(&OutboxRow{}); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "migrating contact outbox")
	}
	return &Outbox{db: db}, nil
}

func (o *Outbox) Insert(ctx context.Context, submission Submission) (*OutboxRow, error) {
	row := OutboxRow{
		ID:      uuid.New(),
		Name:    submission.Name,
		Phone:   submission.Phone,
		Email:   submission.Email,
		Company: submission.Company,
		Message: submission.Message,
	}
	if err := o.db.WithContext(ctx).Create(&row).Error; err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "storing contact submission")
	}
	return &row, nil
}

// FetchPending returns the oldest unforwarded rows, skipping rows that
// already exhausted maxAttempts.
func (o *Outbox) FetchPending(ctx context.Context, limit, maxAttempts int) ([]OutboxRow, error) {
	var rows []OutboxRow
	err := o.db.WithContext(ctx).
		Where("forwarded_at IS NULL").
		Where("attempt_count < ?", maxAttempts).
		Order("created_at ASC").
		Order("id ASC").
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "scanning contact outbox")
	}
	return rows, nil
}

func (o *Outbox) MarkForwarded(ctx context.Context, id uuid.UUID) error {
	err := o.db.WithContext(ctx).Model(&OutboxRow{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"forwarded_at": time.Now(),
		}).Error
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "marking contact forwarded")
	}
	return nil
}

func (o *Outbox) MarkFailed(ctx context.Context, id uuid.UUID, cause error) error {
	message := cause.Error()
	err := o.db.WithContext(ctx).Model(&OutboxRow{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"last_error":    message,
			"attempt_count": gorm.Expr("attempt_count + 1"),
		}).Error
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "recording contact forward failure")
	}
	return nil
}

func (o *Outbox) Close() error {
	sqlDB, err := o.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
