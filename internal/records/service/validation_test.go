package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	dErrors "nhplus/pkg/domain-errors"
)

// TestCustomTagsRegistered fails if a custom tag is missing from the shared
// validator; an unknown tag makes the validator panic.
func TestCustomTagsRegistered(t *testing.T) {
	cases := []struct {
		tag  string
		good string
		bad  string
	}{
		{tag: "isodate", good: "2026-03-04", bad: "04.03.2026"},
		{tag: "clock", good: "07:30", bad: "7:30"},
		{tag: "phone", good: "+49 176 12345678", bad: "0176 12345678"},
	}
	for _, tc := range cases {
		t.Run(tc.tag, func(t *testing.T) {
			assert.NotPanics(t, func() {
				assert.NoError(t, validate.Var(tc.good, tc.tag))
				assert.Error(t, validate.Var(tc.bad, tc.tag))
			})
		})
	}
}

func TestValidateCaregiverPhone(t *testing.T) {
	cases := []struct {
		phone string
		ok    bool
	}{
		{phone: "+49 176 12345678", ok: true},
		{phone: "+1 30 5551234x12", ok: true},
		{phone: "0176 12345678", ok: false},
		{phone: "+49 17612345678", ok: false},
		{phone: "+49 1 12345678", ok: false},
		{phone: "", ok: false},
	}
	for _, tc := range cases {
		t.Run(tc.phone, func(t *testing.T) {
			err := validateInput(CaregiverInput{FirstName: "Hans", Surname: "Müller", PhoneNumber: tc.phone})
			if tc.ok {
				assert.NoError(t, err)
				return
			}
			assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))
		})
	}
}

func TestValidateTreatmentInput(t *testing.T) {
	valid := TreatmentInput{
		PatientID: 1, Date: "2026-03-04", Begin: "11:00", End: "12:30", Description: "Gespräch",
	}

	cases := []struct {
		name    string
		mutate  func(in *TreatmentInput)
		wantMsg string
	}{
		{name: "valid", mutate: func(*TreatmentInput) {}},
		{name: "missing patient", mutate: func(in *TreatmentInput) { in.PatientID = 0 }, wantMsg: "PatientID is required"},
		{name: "german date", mutate: func(in *TreatmentInput) { in.Date = "04.03.2026" }, wantMsg: "Date must be a date"},
		{name: "impossible date", mutate: func(in *TreatmentInput) { in.Date = "2026-02-30" }, wantMsg: "Date must be a date"},
		{name: "unpadded clock", mutate: func(in *TreatmentInput) { in.Begin = "9:00" }, wantMsg: "Begin must be a time"},
		{name: "hour out of range", mutate: func(in *TreatmentInput) { in.End = "25:00" }, wantMsg: "End must be a time"},
		{name: "ends before it begins", mutate: func(in *TreatmentInput) { in.End = "10:59" }, wantMsg: "End must not be before Begin"},
		{name: "zero length session", mutate: func(in *TreatmentInput) { in.End = in.Begin }},
		{name: "missing description", mutate: func(in *TreatmentInput) { in.Description = "" }, wantMsg: "Description is required"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := valid
			tc.mutate(&in)
			err := validateInput(in)
			if tc.wantMsg == "" {
				assert.NoError(t, err)
				return
			}
			assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))
			assert.Contains(t, err.Error(), tc.wantMsg)
		})
	}
}

func TestValidateReportsEveryField(t *testing.T) {
	err := validateInput(PatientInput{DateOfBirth: "1945-13-01"})
	assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))
	for _, field := range []string{"FirstName", "Surname", "DateOfBirth", "CareLevel", "RoomNumber"} {
		assert.Contains(t, err.Error(), field)
	}
}
