package models

import "time"

// RecentCheckEntry is one line of the recent-checks history.
type RecentCheckEntry struct {
	ID        int64     `json:"id"`
	Type      InputType `json:"type"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}
