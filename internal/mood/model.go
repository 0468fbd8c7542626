package mood

import (
	"errors"
	"fmt"
	"time"
)

var ErrNotFound = errors.New("mood entry not found")
var ErrDuplicateDate = errors.New("mood entry already exists for this date")
var ErrInvalidDate = errors.New("invalid date")

// DateLayout is the storage and wire format of Entry.Date.
const DateLayout = "2006-01-02"

// NormalizeDate accepts a calendar date with or without zero padding
// ("2024-1-2") and returns it in DateLayout.
func NormalizeDate(s string) (string, error) {
	t, err := time.Parse("2006-1-2", s)
	if err != nil {
		return "", fmt.Errorf("%w %q: %v", ErrInvalidDate, s, err)
	}
	return t.Format(DateLayout), nil
}

// Entry is one mood record for a calendar date. Date is unique across entries.
type Entry struct {
	ID        string    `gorm:"primaryKey;type:varchar(36)" bson:"id"`
	Date      string    `gorm:"type:varchar(10);not null;uniqueIndex:uq_mood_entries_date" bson:"date"`
	MoodType  string    `gorm:"type:text;not null" bson:"mood_type"`
	Emoji     string    `gorm:"type:text;not null" bson:"emoji"`
	Notes     string    `gorm:"type:text;not null;default:''" bson:"notes"`
	Timestamp time.Time `gorm:"not null" bson:"timestamp"`
}

func (Entry) TableName() string { return "mood_entries" }

// Changes are the mutable fields of an Entry.
type Changes struct {
	MoodType  string
	Emoji     string
	Notes     string
	Timestamp time.Time
}

// MoodCount is one row of the grouped mood_type counts.
type MoodCount struct {
	MoodType string `gorm:"column:mood_type" bson:"_id"`
	Count    int64  `gorm:"column:count" bson:"count"`
}
