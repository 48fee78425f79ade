package models

import (
	"time"

	id "nhplus/pkg/domain"
)

// Medicine is a stock item. Medicines are not archivable.
type Medicine struct {
	ID              id.MedicineID `json:"id"`
	Name            string        `json:"name"`
	StorageLocation string        `json:"storage_location"`
	ExpirationDate  time.Time     `json:"expiration_date"`
}

type MedicineCreation struct {
	Name            string
	StorageLocation string
	ExpirationDate  time.Time
}

func NewMedicine(mid id.MedicineID, c MedicineCreation) *Medicine {
	return &Medicine{
		ID:              mid,
		Name:            c.Name,
		StorageLocation: c.StorageLocation,
		ExpirationDate:  c.ExpirationDate,
	}
}

// IsExpired reports whether the medicine is past its expiration date on
// the calendar day of now.
func (m *Medicine) IsExpired(now time.Time) bool {
	return m.ExpirationDate.Before(DateOf(now))
}
