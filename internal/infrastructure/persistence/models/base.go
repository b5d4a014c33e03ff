package models

import (
	"time"
)

// TimestampModel carries the created_at/updated_at pair shared by users and
// teams. GORM fills both on create and bumps updated_at on save.
type TimestampModel struct {
	CreatedAt time.Time `gorm:"column:created_at;not null;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;not null;autoUpdateTime"`
}

func optionalID(id int64) *int64 {
	if id == 0 {
		return nil
	}
	return &id
}

// utcTime stores instants in UTC so text comparison on SQLite orders them
// correctly.
func utcTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}
