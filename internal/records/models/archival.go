package models

import "time"

// DefaultRetentionYears is how long an archived record must be kept before
// the retention sweep may delete it.
const DefaultRetentionYears = 10

// Kind names an archivable record type in logs, metrics and CLI arguments.
type Kind string

const (
	KindPatient   Kind = "patient"
	KindCaregiver Kind = "caregiver"
	KindTreatment Kind = "treatment"
)

func (k Kind) String() string { return string(k) }

// ParseKind accepts the singular or plural form.
func ParseKind(s string) (Kind, bool) {
	switch s {
	case "patient", "patients":
		return KindPatient, true
	case "caregiver", "caregivers":
		return KindCaregiver, true
	case "treatment", "treatments":
		return KindTreatment, true
	default:
		return "", false
	}
}

// Archival is the archive lifecycle shared by Patient, Caregiver and
// Treatment.
//
// Invariants:
//   - ArchivedOn is nil for active records
//   - ArchivedOn is a calendar date (UTC midnight) when set
//   - A record is deletable only once ArchivedOn lies strictly before the
//     retention cutoff; never-archived records are never deletable
type Archival struct {
	ArchivedOn *time.Time `json:"archived_on,omitempty"`
}

func (a Archival) IsArchived() bool {
	return a.ArchivedOn != nil
}

// CanBeDeleted applies the default retention period.
func (a Archival) CanBeDeleted(now time.Time) bool {
	return a.CanBeDeletedAt(now, DefaultRetentionYears)
}

// CanBeDeletedAt reports whether the record was archived before
// today(now) minus the given number of years.
func (a Archival) CanBeDeletedAt(now time.Time, years int) bool {
	if a.ArchivedOn == nil {
		return false
	}
	return a.ArchivedOn.Before(RetentionCutoff(now, years))
}

// MarkArchived sets ArchivedOn to the calendar date of now. It returns
// false and leaves the date untouched when the record is already archived.
func (a *Archival) MarkArchived(now time.Time) bool {
	if a.ArchivedOn != nil {
		return false
	}
	today := DateOf(now)
	a.ArchivedOn = &today
	return true
}

// ClearArchived makes the record active again.
func (a *Archival) ClearArchived() {
	a.ArchivedOn = nil
}

// DateOf truncates t to its calendar date, expressed as UTC midnight.
// The date is taken in t's own location.
func DateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// RetentionCutoff is today(now) minus years calendar years. Feb 29 maps to
// Feb 28 when the target year has no leap day.
func RetentionCutoff(now time.Time, years int) time.Time {
	today := DateOf(now)
	year := today.Year() - years
	month, day := today.Month(), today.Day()
	if month == time.February && day == 29 && !isLeap(year) {
		day = 28
	}
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func isLeap(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

// DeletableFrom is the first calendar date on which CanBeDeletedAt holds
// for the given retention period. ok is false for active records.
func (a Archival) DeletableFrom(years int) (day time.Time, ok bool) {
	if a.ArchivedOn == nil {
		return time.Time{}, false
	}
	on := DateOf(*a.ArchivedOn)
	// The cutoff of on+years lands at most two days past the naive date.
	day = time.Date(on.Year()+years, on.Month(), on.Day(), 0, 0, 0, 0, time.UTC)
	for !a.CanBeDeletedAt(day, years) {
		day = day.AddDate(0, 0, 1)
	}
	return day, true
}
