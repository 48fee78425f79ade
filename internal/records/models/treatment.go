package models

import (
	"time"

	id "nhplus/pkg/domain"
)

// Treatment is one care session for a patient.
//
// Patient, caregiver and medicine references are weak: deleting the target
// never deletes the treatment. CaregiverID and MedicineID are zero when
// unset. Begin and End are "HH:MM" wall clock times on Date.
type Treatment struct {
	ID          id.TreatmentID `json:"id"`
	PatientID   id.PatientID   `json:"patient_id"`
	Date        time.Time      `json:"date"`
	Begin       string         `json:"begin"`
	End         string         `json:"end"`
	Description string         `json:"description"`
	Remarks     string         `json:"remarks"`
	CaregiverID id.CaregiverID `json:"caregiver_id,omitempty"`
	MedicineID  id.MedicineID  `json:"medicine_id,omitempty"`
	Archival
}

type TreatmentCreation struct {
	PatientID   id.PatientID
	Date        time.Time
	Begin       string
	End         string
	Description string
	Remarks     string
	CaregiverID id.CaregiverID
	MedicineID  id.MedicineID
	ArchivedOn  *time.Time
}

func NewTreatment(tid id.TreatmentID, c TreatmentCreation) *Treatment {
	return &Treatment{
		ID:          tid,
		PatientID:   c.PatientID,
		Date:        c.Date,
		Begin:       c.Begin,
		End:         c.End,
		Description: c.Description,
		Remarks:     c.Remarks,
		CaregiverID: c.CaregiverID,
		MedicineID:  c.MedicineID,
		Archival:    Archival{ArchivedOn: copyDate(c.ArchivedOn)},
	}
}

// TreatmentDetails is a treatment with its references resolved for display.
// Missing references render as "-".
type TreatmentDetails struct {
	Treatment     *Treatment
	PatientName   string
	CaregiverName string
	MedicineName  string
}

// Placeholder stands in for a reference that no longer resolves.
const Placeholder = "-"
