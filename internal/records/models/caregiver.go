package models

import (
	"time"

	id "nhplus/pkg/domain"
)

// Caregiver is a member of the nursing staff.
type Caregiver struct {
	ID          id.CaregiverID `json:"id"`
	FirstName   string         `json:"first_name"`
	Surname     string         `json:"surname"`
	PhoneNumber string         `json:"phone_number"`
	Archival
}

type CaregiverCreation struct {
	FirstName   string
	Surname     string
	PhoneNumber string
	ArchivedOn  *time.Time
}

func NewCaregiver(cid id.CaregiverID, c CaregiverCreation) *Caregiver {
	return &Caregiver{
		ID:          cid,
		FirstName:   c.FirstName,
		Surname:     c.Surname,
		PhoneNumber: c.PhoneNumber,
		Archival:    Archival{ArchivedOn: copyDate(c.ArchivedOn)},
	}
}

func (c *Caregiver) FullName() string {
	return c.Surname + ", " + c.FirstName
}
