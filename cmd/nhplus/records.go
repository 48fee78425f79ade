package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"nhplus/internal/records/models"
	"nhplus/internal/records/service"
	id "nhplus/pkg/domain"
)

// Record editing commands. add takes every field as a flag and leaves the
// required checks to the service; edit loads the stored record and only
// replaces the fields whose flags were given.

// override replaces *dst with v when the named flag was set.
func override(cmd *cobra.Command, name string, dst *string, v string) {
	if cmd.Flags().Changed(name) {
		*dst = v
	}
}

// optionalID parses a reference flag; empty or "0" means no reference.
func optionalID[T any](v string, parse func(string) (T, error)) (T, error) {
	var zero T
	if v == "" || v == "0" {
		return zero, nil
	}
	return parse(v)
}

// refString renders an optional reference for an edit baseline.
func refString(v int64) string {
	if v == 0 {
		return ""
	}
	return strconv.FormatInt(v, 10)
}

// fields prints label/value pairs as an aligned block.
func fields(out io.Writer, pairs ...string) error {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	for i := 0; i+1 < len(pairs); i += 2 {
		writeRow(w, []string{pairs[i] + ":", pairs[i+1]})
	}
	return w.Flush()
}

// =============================================================================
// Patients
// =============================================================================

type patientFlags struct {
	firstName, surname, born, careLevel, room string
}

func (f *patientFlags) bind(cmd *cobra.Command) {
	fl := cmd.Flags()
	fl.StringVar(&f.firstName, "first-name", "", "first name")
	fl.StringVar(&f.surname, "surname", "", "surname")
	fl.StringVar(&f.born, "born", "", "date of birth, YYYY-MM-DD")
	fl.StringVar(&f.careLevel, "care-level", "", "care level")
	fl.StringVar(&f.room, "room", "", "room number")
}

func (f *patientFlags) input() service.PatientInput {
	return service.PatientInput{
		FirstName:   f.firstName,
		Surname:     f.surname,
		DateOfBirth: f.born,
		CareLevel:   f.careLevel,
		RoomNumber:  f.room,
	}
}

func (f *patientFlags) onto(cmd *cobra.Command, p *models.Patient) service.PatientInput {
	in := service.PatientInput{
		FirstName:   p.FirstName,
		Surname:     p.Surname,
		DateOfBirth: p.DateOfBirth.Format(time.DateOnly),
		CareLevel:   p.CareLevel,
		RoomNumber:  p.RoomNumber,
	}
	override(cmd, "first-name", &in.FirstName, f.firstName)
	override(cmd, "surname", &in.Surname, f.surname)
	override(cmd, "born", &in.DateOfBirth, f.born)
	override(cmd, "care-level", &in.CareLevel, f.careLevel)
	override(cmd, "room", &in.RoomNumber, f.room)
	return in
}

func (c *cli) patientAddCmd() *cobra.Command {
	var f patientFlags
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Admit a patient",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			p, err := c.app.records.CreatePatient(cmd.Context(), f.input())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s created\n", models.KindPatient, p.ID)
			return nil
		},
	}
	f.bind(cmd)
	return cmd
}

func (c *cli) patientEditCmd() *cobra.Command {
	var f patientFlags
	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Change an active patient; fields without a flag keep their value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			pid, err := id.ParsePatientID(args[0])
			if err != nil {
				return err
			}
			p, err := c.app.records.GetPatient(ctx, pid)
			if err != nil {
				return err
			}
			if _, err := c.app.records.UpdatePatient(ctx, pid, f.onto(cmd, p)); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s updated\n", models.KindPatient, pid)
			return nil
		},
	}
	f.bind(cmd)
	return cmd
}

func (c *cli) patientShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show one patient, archived included",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pid, err := id.ParsePatientID(args[0])
			if err != nil {
				return err
			}
			p, err := c.app.records.GetPatient(cmd.Context(), pid)
			if err != nil {
				return err
			}
			return fields(cmd.OutOrStdout(),
				"id", p.ID.String(),
				"name", p.FullName(),
				"born", p.DateOfBirth.Format(time.DateOnly),
				"care level", p.CareLevel,
				"room", p.RoomNumber,
				"archived", archivedOn(p.Archival))
		},
	}
}

// =============================================================================
// Caregivers
// =============================================================================

type caregiverFlags struct {
	firstName, surname, phone string
}

func (f *caregiverFlags) bind(cmd *cobra.Command) {
	fl := cmd.Flags()
	fl.StringVar(&f.firstName, "first-name", "", "first name")
	fl.StringVar(&f.surname, "surname", "", "surname")
	fl.StringVar(&f.phone, "phone", "", `phone number such as "+49 176 12345678"`)
}

func (f *caregiverFlags) input() service.CaregiverInput {
	return service.CaregiverInput{FirstName: f.firstName, Surname: f.surname, PhoneNumber: f.phone}
}

func (f *caregiverFlags) onto(cmd *cobra.Command, cg *models.Caregiver) service.CaregiverInput {
	in := service.CaregiverInput{FirstName: cg.FirstName, Surname: cg.Surname, PhoneNumber: cg.PhoneNumber}
	override(cmd, "first-name", &in.FirstName, f.firstName)
	override(cmd, "surname", &in.Surname, f.surname)
	override(cmd, "phone", &in.PhoneNumber, f.phone)
	return in
}

func (c *cli) caregiverAddCmd() *cobra.Command {
	var f caregiverFlags
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Register a caregiver",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cg, err := c.app.records.CreateCaregiver(cmd.Context(), f.input())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s created\n", models.KindCaregiver, cg.ID)
			return nil
		},
	}
	f.bind(cmd)
	return cmd
}

func (c *cli) caregiverEditCmd() *cobra.Command {
	var f caregiverFlags
	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Change an active caregiver; fields without a flag keep their value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cid, err := id.ParseCaregiverID(args[0])
			if err != nil {
				return err
			}
			cg, err := c.app.records.GetCaregiver(ctx, cid)
			if err != nil {
				return err
			}
			if _, err := c.app.records.UpdateCaregiver(ctx, cid, f.onto(cmd, cg)); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s updated\n", models.KindCaregiver, cid)
			return nil
		},
	}
	f.bind(cmd)
	return cmd
}

func (c *cli) caregiverShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show one caregiver, archived included",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cid, err := id.ParseCaregiverID(args[0])
			if err != nil {
				return err
			}
			cg, err := c.app.records.GetCaregiver(cmd.Context(), cid)
			if err != nil {
				return err
			}
			return fields(cmd.OutOrStdout(),
				"id", cg.ID.String(),
				"name", cg.FullName(),
				"phone", cg.PhoneNumber,
				"archived", archivedOn(cg.Archival))
		},
	}
}

// =============================================================================
// Treatments
// =============================================================================

type treatmentFlags struct {
	patient, date, begin, end, description, remarks, caregiver, medicine string
}

func (f *treatmentFlags) bind(cmd *cobra.Command) {
	fl := cmd.Flags()
	fl.StringVar(&f.patient, "patient", "", "patient id")
	fl.StringVar(&f.date, "date", "", "date, YYYY-MM-DD")
	fl.StringVar(&f.begin, "begin", "", "begin, HH:MM")
	fl.StringVar(&f.end, "end", "", "end, HH:MM")
	fl.StringVar(&f.description, "description", "", "short description")
	fl.StringVar(&f.remarks, "remarks", "", "free text remarks")
	fl.StringVar(&f.caregiver, "caregiver", "", "caregiver id; 0 for none")
	fl.StringVar(&f.medicine, "medicine", "", "medicine id; 0 for none")
}

// treatmentInput turns textual fields into a service input, parsing references.
func treatmentInput(patient, date, begin, end, description, remarks, caregiver, medicine string) (service.TreatmentInput, error) {
	in := service.TreatmentInput{Date: date, Begin: begin, End: end, Description: description, Remarks: remarks}
	var err error
	if in.PatientID, err = optionalID(patient, id.ParsePatientID); err != nil {
		return in, err
	}
	if in.CaregiverID, err = optionalID(caregiver, id.ParseCaregiverID); err != nil {
		return in, err
	}
	if in.MedicineID, err = optionalID(medicine, id.ParseMedicineID); err != nil {
		return in, err
	}
	return in, nil
}

func (f *treatmentFlags) input() (service.TreatmentInput, error) {
	return treatmentInput(f.patient, f.date, f.begin, f.end, f.description, f.remarks, f.caregiver, f.medicine)
}

func (f *treatmentFlags) onto(cmd *cobra.Command, t *models.Treatment) (service.TreatmentInput, error) {
	patient := t.PatientID.String()
	date := t.Date.Format(time.DateOnly)
	begin, end, description, remarks := t.Begin, t.End, t.Description, t.Remarks
	caregiver, medicine := refString(int64(t.CaregiverID)), refString(int64(t.MedicineID))

	override(cmd, "patient", &patient, f.patient)
	override(cmd, "date", &date, f.date)
	override(cmd, "begin", &begin, f.begin)
	override(cmd, "end", &end, f.end)
	override(cmd, "description", &description, f.description)
	override(cmd, "remarks", &remarks, f.remarks)
	override(cmd, "caregiver", &caregiver, f.caregiver)
	override(cmd, "medicine", &medicine, f.medicine)
	return treatmentInput(patient, date, begin, end, description, remarks, caregiver, medicine)
}

func (c *cli) treatmentAddCmd() *cobra.Command {
	var f treatmentFlags
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Record a treatment of an active patient",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			in, err := f.input()
			if err != nil {
				return err
			}
			t, err := c.app.records.CreateTreatment(cmd.Context(), in)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s created\n", models.KindTreatment, t.ID)
			return nil
		},
	}
	f.bind(cmd)
	return cmd
}

func (c *cli) treatmentEditCmd() *cobra.Command {
	var f treatmentFlags
	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Change an active treatment; fields without a flag keep their value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			tid, err := id.ParseTreatmentID(args[0])
			if err != nil {
				return err
			}
			t, err := c.app.records.GetTreatment(ctx, tid)
			if err != nil {
				return err
			}
			in, err := f.onto(cmd, t)
			if err != nil {
				return err
			}
			if _, err := c.app.records.UpdateTreatment(ctx, tid, in); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s updated\n", models.KindTreatment, tid)
			return nil
		},
	}
	f.bind(cmd)
	return cmd
}

func (c *cli) treatmentShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show one treatment with the names it references",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tid, err := id.ParseTreatmentID(args[0])
			if err != nil {
				return err
			}
			d, err := c.app.records.TreatmentDetails(cmd.Context(), tid)
			if err != nil {
				return err
			}
			t := d.Treatment
			return fields(cmd.OutOrStdout(),
				"id", t.ID.String(),
				"patient", d.PatientName,
				"date", t.Date.Format(time.DateOnly),
				"time", t.Begin+"-"+t.End,
				"description", t.Description,
				"remarks", strings.ReplaceAll(t.Remarks, "\n", " "),
				"caregiver", d.CaregiverName,
				"medicine", d.MedicineName,
				"archived", archivedOn(t.Archival))
		},
	}
}

// =============================================================================
// Medicines
// =============================================================================

func (c *cli) medicineAddCmd() *cobra.Command {
	var in service.MedicineInput
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a medicine to the stock",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			m, err := c.app.records.CreateMedicine(cmd.Context(), in)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "medicine %s created\n", m.ID)
			return nil
		},
	}
	cmd.Flags().StringVar(&in.Name, "name", "", "name and strength")
	cmd.Flags().StringVar(&in.StorageLocation, "location", "", "storage location")
	cmd.Flags().StringVar(&in.ExpirationDate, "expires", "", "expiration date, YYYY-MM-DD")
	return cmd
}

func (c *cli) medicineShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show one medicine",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			mid, err := id.ParseMedicineID(args[0])
			if err != nil {
				return err
			}
			m, err := c.app.records.GetMedicine(cmd.Context(), mid)
			if err != nil {
				return err
			}
			return fields(cmd.OutOrStdout(),
				"id", m.ID.String(),
				"name", m.Name,
				"location", m.StorageLocation,
				"expires", m.ExpirationDate.Format(time.DateOnly),
				"expired", strconv.FormatBool(m.IsExpired(time.Now())))
		},
	}
}

func (c *cli) medicineDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Remove a medicine; treatments that used it show it as missing",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			mid, err := id.ParseMedicineID(args[0])
			if err != nil {
				return err
			}
			m, err := c.app.records.DeleteMedicine(cmd.Context(), mid)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "medicine %s deleted (%s)\n", m.ID, m.Name)
			return nil
		},
	}
}
