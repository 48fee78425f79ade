// Package domain holds the typed identifiers shared by every records package.
//
// All ids are assigned by persistence and are positive. Zero is reserved
// for "no reference" on optional treatment links.
package domain

import (
	"strconv"
	"strings"

	dErrors "nhplus/pkg/domain-errors"
)

type (
	PatientID   int64
	CaregiverID int64
	TreatmentID int64
	MedicineID  int64
	UserID      int64
)

func (id PatientID) String() string   { return strconv.FormatInt(int64(id), 10) }
func (id CaregiverID) String() string { return strconv.FormatInt(int64(id), 10) }
func (id TreatmentID) String() string { return strconv.FormatInt(int64(id), 10) }
func (id MedicineID) String() string  { return strconv.FormatInt(int64(id), 10) }
func (id UserID) String() string      { return strconv.FormatInt(int64(id), 10) }

// IsZero reports whether the reference is unset.
func (id CaregiverID) IsZero() bool { return id == 0 }

// IsZero reports whether the reference is unset.
func (id MedicineID) IsZero() bool { return id == 0 }

func ParsePatientID(s string) (PatientID, error) {
	n, err := parseID("patient", s)
	return PatientID(n), err
}

func ParseCaregiverID(s string) (CaregiverID, error) {
	n, err := parseID("caregiver", s)
	return CaregiverID(n), err
}

func ParseTreatmentID(s string) (TreatmentID, error) {
	n, err := parseID("treatment", s)
	return TreatmentID(n), err
}

func ParseMedicineID(s string) (MedicineID, error) {
	n, err := parseID("medicine", s)
	return MedicineID(n), err
}

func ParseUserID(s string) (UserID, error) {
	n, err := parseID("user", s)
	return UserID(n), err
}

// parseID accepts decimal, positive ids only. Surrounding whitespace is
// tolerated since ids usually come from command line arguments.
func parseID(kind, s string) (int64, error) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return 0, dErrors.Newf(dErrors.CodeInvalidInput, "%s id is required", kind)
	}
	n, err := strconv.ParseInt(trimmed, 10, 64)
	if err != nil {
		return 0, dErrors.Newf(dErrors.CodeInvalidInput, "invalid %s id %q", kind, s)
	}
	if n <= 0 {
		return 0, dErrors.Newf(dErrors.CodeInvalidInput, "%s id must be positive", kind)
	}
	return n, nil
}
