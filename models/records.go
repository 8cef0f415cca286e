package models

import (
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/gorm"
)

// VerificationRecord is a completed check kept in the database.
type VerificationRecord struct {
	ID             string         `gorm:"primaryKey;size:36" json:"id"`
	InputType      InputType      `gorm:"index;not null" json:"inputType"`
	Content        string         `gorm:"not null" json:"content"`
	IsTrue         bool           `json:"isTrue"`
	Confidence     int            `json:"confidence"`
	Classification Classification `json:"classification,omitempty"`
	Reason         string         `json:"reason,omitempty"`
	Origin         Origin         `gorm:"index" json:"origin"`
	SourcesJSON    string         `gorm:"type:text" json:"-"`
	Sources        []Source       `gorm:"-" json:"sources"`
	CheckedAt      time.Time      `gorm:"index;not null" json:"checkedAt"`
	CreatedAt      time.Time      `json:"createdAt"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`
}

// BeforeSave serializes Sources into the text column.
func (r *VerificationRecord) BeforeSave(tx *gorm.DB) error {
	b, err := json.Marshal(r.Sources)
	if err != nil {
		return fmt.Errorf("failed to encode sources for record %s: %w", r.ID, err)
	}
	r.SourcesJSON = string(b)
	return nil
}

// AfterFind restores Sources from the text column.
func (r *VerificationRecord) AfterFind(tx *gorm.DB) error {
	if r.SourcesJSON == "" {
		return nil
	}
	if err := json.Unmarshal([]byte(r.SourcesJSON), &r.Sources); err != nil {
		return fmt.Errorf("failed to decode sources for record %s: %w", r.ID, err)
	}
	return nil
}

// Result rebuilds the VerificationResult stored in the record.
func (r VerificationRecord) Result() VerificationResult {
	return VerificationResult{
		IsTrue:         r.IsTrue,
		Confidence:     r.Confidence,
		Classification: r.Classification,
		Reason:         r.Reason,
		Sources:        r.Sources,
		Origin:         r.Origin,
	}.Normalize()
}

// KVEntry backs the namespaced key-value store in SQL.
type KVEntry struct {
	Key       string `gorm:"primaryKey;size:191"`
	Value     string `gorm:"type:text;not null"`
	UpdatedAt time.Time
}
