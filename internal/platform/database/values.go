package database

import (
	"database/sql"
	"fmt"
	"time"
)

// DateLayout is the ISO calendar date format used for every date column.
const DateLayout = "2006-01-02"

// FormatDate renders a date column value.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// ParseDate reads a date column value as UTC midnight.
func ParseDate(s string) (time.Time, error) {
	t, err := time.ParseInLocation(DateLayout, s, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse date %q: %w", s, err)
	}
	return t, nil
}

// NullDate encodes an optional date; nil becomes SQL NULL.
func NullDate(t *time.Time) sql.NullString {
	if t == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: FormatDate(*t), Valid: true}
}

// DateFromNull decodes an optional date column.
func DateFromNull(ns sql.NullString) (*time.Time, error) {
	if !ns.Valid || ns.String == "" {
		return nil, nil
	}
	t, err := ParseDate(ns.String)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// NullID encodes an optional reference; zero means none.
func NullID(id int64) sql.NullInt64 {
	if id == 0 {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: id, Valid: true}
}
