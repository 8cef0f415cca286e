package storage

import (
	"context"
	"errors"
	"fmt"

	"truthonly/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Records persists completed verifications.
type Records struct {
	db *gorm.DB
}

func NewRecords(db *gorm.DB) *Records {
	return &Records{db: db}
}

// Save stores the outcome of one verification and returns the new row.
func (r *Records) Save(ctx context.Context, req models.VerificationRequest, result models.VerificationResult) (*models.VerificationRecord, error) {
	record := models.VerificationRecord{
		ID:             uuid.New().String(),
		InputType:      req.InputType,
		Content:        req.Content,
		IsTrue:         result.IsTrue,
		Confidence:     result.Confidence,
		Classification: result.Classification,
		Reason:         result.Reason,
		Origin:         result.Origin,
		Sources:        result.Sources,
		CheckedAt:      req.Timestamp,
	}
	if err := r.db.WithContext(ctx).Create(&record).Error; err != nil {
		return nil, fmt.Errorf("failed to create verification record for '%s': %w", req.Content, err)
	}
	return &record, nil
}

// List returns up to limit records, newest first. A non-positive limit means no limit.
func (r *Records) List(ctx context.Context, limit int) ([]models.VerificationRecord, error) {
	var records []models.VerificationRecord
	q := r.db.WithContext(ctx).Order("checked_at desc")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&records).Error; err != nil {
		return nil, fmt.Errorf("failed to list verification records: %w", err)
	}
	return records, nil
}

// Get fetches one record by id.
func (r *Records) Get(ctx context.Context, id string) (*models.VerificationRecord, error) {
	var record models.VerificationRecord
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get verification record %s: %w", id, err)
	}
	return &record, nil
}
