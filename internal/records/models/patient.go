package models

import (
	"time"

	id "nhplus/pkg/domain"
)

// Patient is a resident of the nursing home.
type Patient struct {
	ID          id.PatientID `json:"id"`
	FirstName   string       `json:"first_name"`
	Surname     string       `json:"surname"`
	DateOfBirth time.Time    `json:"date_of_birth"`
	CareLevel   string       `json:"care_level"`
	RoomNumber  string       `json:"room_number"`
	Archival
}

// PatientCreation carries everything but the id. ArchivedOn may be preset
// for imports.
type PatientCreation struct {
	FirstName   string
	Surname     string
	DateOfBirth time.Time
	CareLevel   string
	RoomNumber  string
	ArchivedOn  *time.Time
}

// NewPatient materialises a creation record under its assigned id.
func NewPatient(pid id.PatientID, c PatientCreation) *Patient {
	return &Patient{
		ID:          pid,
		FirstName:   c.FirstName,
		Surname:     c.Surname,
		DateOfBirth: c.DateOfBirth,
		CareLevel:   c.CareLevel,
		RoomNumber:  c.RoomNumber,
		Archival:    Archival{ArchivedOn: copyDate(c.ArchivedOn)},
	}
}

func (p *Patient) FullName() string {
	return p.Surname + ", " + p.FirstName
}
