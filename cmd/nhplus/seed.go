package main

import (
	"context"
	"fmt"
	"time"

	"nhplus/internal/records/models"
	"nhplus/internal/records/service"
)

const (
	demoUsername = "b.heidemann"
	demoPassword = "NH_PLUS"
)

type seedResult struct {
	patients, caregivers, medicines, treatments, users int
}

func day(v string) time.Time {
	t, err := time.ParseInLocation(time.DateOnly, v, time.UTC)
	if err != nil {
		panic(err)
	}
	return t
}

func dayPtr(v string) *time.Time {
	t := day(v)
	return &t
}

var demoPatients = []models.PatientCreation{
	{FirstName: "Seppl", Surname: "Herberger", DateOfBirth: day("1945-12-01"), CareLevel: "4", RoomNumber: "202"},
	{FirstName: "Martina", Surname: "Gerdsen", DateOfBirth: day("1954-08-12"), CareLevel: "5", RoomNumber: "010"},
	{FirstName: "Gertrud", Surname: "Franzen", DateOfBirth: day("1949-04-16"), CareLevel: "3", RoomNumber: "002"},
	{FirstName: "Ahmet", Surname: "Yilmaz", DateOfBirth: day("1941-02-22"), CareLevel: "3", RoomNumber: "013", ArchivedOn: dayPtr("2000-06-03")},
	{FirstName: "Hans", Surname: "Neumann", DateOfBirth: day("1955-12-12"), CareLevel: "2", RoomNumber: "001"},
	{FirstName: "Elisabeth", Surname: "Müller", DateOfBirth: day("1958-03-07"), CareLevel: "5", RoomNumber: "110"},
}

var demoCaregivers = []models.CaregiverCreation{
	{FirstName: "Hans", Surname: "Müller", PhoneNumber: "+49 176 12345678"},
	{FirstName: "Peter", Surname: "Schmidt", PhoneNumber: "+49 176 23456789"},
	{FirstName: "Maria", Surname: "Meier", PhoneNumber: "+49 176 34567890"},
	{FirstName: "Anna", Surname: "Schneider", PhoneNumber: "+49 176 45678901"},
}

var demoMedicines = []models.MedicineCreation{
	{Name: "Amoxicillin 500mg", StorageLocation: "Shelf A", ExpirationDate: day("2026-03-15")},
	{Name: "Lisinopril 10mg", StorageLocation: "Shelf B", ExpirationDate: day("2025-11-30")},
	{Name: "Ibuprofen 200mg", StorageLocation: "Shelf C", ExpirationDate: day("2027-01-20")},
	{Name: "Metformin 500mg", StorageLocation: "Shelf A", ExpirationDate: day("2025-08-10")},
	{Name: "Simvastatin 20mg", StorageLocation: "Shelf B", ExpirationDate: day("2026-06-25")},
	{Name: "Omeprazole 20mg", StorageLocation: "Shelf C", ExpirationDate: day("2025-12-05")},
	{Name: "Albuterol Inhaler", StorageLocation: "Shelf A", ExpirationDate: day("2026-04-01")},
	{Name: "Sertraline 50mg", StorageLocation: "Shelf B", ExpirationDate: day("2027-02-18")},
	{Name: "Loratadine 10mg", StorageLocation: "Shelf C", ExpirationDate: day("2026-10-11")},
	{Name: "Prednisone 5mg", StorageLocation: "Shelf A", ExpirationDate: day("2025-09-22")},
}

// demoTreatments references the demo rows by their insertion ids. Some
// caregiver references point past the seeded staff on purpose; they show
// up as missing in listings.
var demoTreatments = []models.TreatmentCreation{
	{PatientID: 1, Date: day("2023-06-03"), Begin: "11:00", End: "15:00", Description: "Gespräch",
		Remarks: "Der Patient hat enorme Angstgefühle und glaubt, er sei überfallen worden. Ihm seien alle Wertsachen gestohlen worden.\nPatient beruhigt sich erst, als alle Wertsachen im Zimmer gefunden worden sind.",
		MedicineID: 1},
	{PatientID: 1, Date: day("2023-06-05"), Begin: "11:00", End: "12:30", Description: "Gespräch",
		Remarks:     "Patient irrt auf der Suche nach gestohlenen Wertsachen durch die Etage und bezichtigt andere Bewohner des Diebstahls.\nPatient wird in seinen Raum zurückbegleitet und erhält Beruhigungsmittel.",
		CaregiverID: 4},
	{PatientID: 2, Date: day("2023-06-04"), Begin: "07:30", End: "08:00", Description: "Waschen",
		Remarks: "Patient mit Waschlappen gewaschen und frisch angezogen. Patient gewendet.", CaregiverID: 5, MedicineID: 4},
	{PatientID: 1, Date: day("2023-06-06"), Begin: "15:10", End: "16:00", Description: "Spaziergang",
		Remarks: "Spaziergang im Park, Patient döst  im Rollstuhl ein", CaregiverID: 3, MedicineID: 6},
	{PatientID: 1, Date: day("2023-06-08"), Begin: "15:00", End: "16:00", Description: "Spaziergang",
		Remarks: "Parkspaziergang; Patient ist heute lebhafter und hat klare Momente; erzählt von seiner Tochter", MedicineID: 4},
	{PatientID: 2, Date: day("2023-06-07"), Begin: "11:00", End: "11:30", Description: "Waschen",
		Remarks: "Waschen per Dusche auf einem Stuhl; Patientin gewendet;", CaregiverID: 2, MedicineID: 3},
	{PatientID: 5, Date: day("2023-06-08"), Begin: "15:00", End: "15:30", Description: "Physiotherapie",
		Remarks: "Übungen zur Stabilisation und Mobilisierung der Rückenmuskulatur", MedicineID: 7},
	{PatientID: 4, Date: day("2023-08-24"), Begin: "09:30", End: "10:15", Description: "KG",
		Remarks: "Lympfdrainage", CaregiverID: 3, MedicineID: 7},
	{PatientID: 6, Date: day("2023-08-31"), Begin: "13:30", End: "13:45", Description: "Toilettengang",
		Remarks: "Hilfe beim Toilettengang; Patientin klagt über Schmerzen beim Stuhlgang. Gabe von Iberogast", CaregiverID: 5, MedicineID: 3},
	{PatientID: 6, Date: day("2023-09-01"), Begin: "16:00", End: "17:00", Description: "KG",
		Remarks: "Massage der Extremitäten zur Verbesserung der Durchblutung", CaregiverID: 5, MedicineID: 1},
}

// seed fills each empty table with demo rows. Tables that already hold
// data are left alone. Rows go straight to the stores: the demo data
// contains an archived patient with treatments, which the records service
// would refuse to create.
func seed(ctx context.Context, a *app, pw string) (seedResult, error) {
	var res seedResult
	st := a.stores

	n, err := seedTable(ctx, st.patients.ListAll, st.patients.Create, demoPatients)
	if err != nil {
		return res, fmt.Errorf("seed patients: %w", err)
	}
	res.patients = n

	if n, err = seedTable(ctx, st.caregivers.ListAll, st.caregivers.Create, demoCaregivers); err != nil {
		return res, fmt.Errorf("seed caregivers: %w", err)
	}
	res.caregivers = n

	if n, err = seedTable(ctx, st.medicines.ListAll, st.medicines.Create, demoMedicines); err != nil {
		return res, fmt.Errorf("seed medicines: %w", err)
	}
	res.medicines = n

	if n, err = seedTable(ctx, st.treatments.ListAll, st.treatments.Create, demoTreatments); err != nil {
		return res, fmt.Errorf("seed treatments: %w", err)
	}
	res.treatments = n

	users, err := st.users.ListAll(ctx)
	if err != nil {
		return res, fmt.Errorf("seed users: %w", err)
	}
	if len(users) == 0 {
		if _, err := a.records.CreateUser(ctx, service.UserInput{Username: demoUsername, Password: pw}); err != nil {
			return res, fmt.Errorf("seed users: %w", err)
		}
		res.users = 1
	}
	return res, nil
}

func seedTable[C any, T any](
	ctx context.Context,
	list func(context.Context) ([]T, error),
	create func(context.Context, C) (T, error),
	rows []C,
) (int, error) {
	existing, err := list(ctx)
	if err != nil {
		return 0, err
	}
	if len(existing) > 0 {
		return 0, nil
	}
	for _, row := range rows {
		if _, err := create(ctx, row); err != nil {
			return 0, err
		}
	}
	return len(rows), nil
}

