package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"nhplus/internal/archive"
	"nhplus/internal/auth/login"
	"nhplus/internal/platform/config"
	"nhplus/internal/records/models"
	"nhplus/internal/records/service"
	id "nhplus/pkg/domain"
	dErrors "nhplus/pkg/domain-errors"
	"nhplus/pkg/requestcontext"
)

// cli carries flag values and the wired application across one run.
type cli struct {
	dbDriver string
	dbDSN    string
	app      *app
}

// run executes one command line and always releases what it opened.
func run(ctx context.Context, args []string, in io.Reader, out io.Writer) error {
	c := &cli{}
	root := c.rootCmd()
	root.SetArgs(args)
	root.SetIn(in)
	root.SetOut(out)
	root.SetErr(out)

	err := root.ExecuteContext(ctx)
	if c.app != nil {
		if cerr := c.app.close(); err == nil {
			err = cerr
		}
	}
	return err
}

func (c *cli) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:               "nhplus",
		Short:             "Records of patients, caregivers, treatments and medicines",
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: c.setup,
	}
	root.PersistentFlags().StringVar(&c.dbDriver, "db-driver", "", "database driver: sqlite3, postgres or memory (overrides NHPLUS_DB_DRIVER)")
	root.PersistentFlags().StringVar(&c.dbDSN, "db-dsn", "", "database DSN (overrides NHPLUS_DB_DSN)")

	root.AddCommand(
		c.migrateCmd(),
		c.seedCmd(),
		c.userCmd(),
		c.loginCmd(),
		c.patientsCmd(),
		c.caregiversCmd(),
		c.treatmentsCmd(),
		c.medicinesCmd(),
		c.archiveCmd(),
		c.restoreCmd(),
		c.sweepCmd(),
	)
	return root
}

// setup loads configuration, tags the context with an operation id and
// wires the application.
func (c *cli) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.FromEnv()
	if err != nil {
		return err
	}
	if c.dbDriver != "" {
		cfg.Database.Driver = c.dbDriver
	}
	if c.dbDSN != "" {
		cfg.Database.DSN = c.dbDSN
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	ctx := requestcontext.WithOperationID(cmd.Context(), uuid.NewString())
	cmd.SetContext(ctx)

	c.app, err = newApp(ctx, cfg)
	return err
}

func (c *cli) migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending schema migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			n, err := c.app.migrate()
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "applied %d migrations\n", n)
			return nil
		},
	}
}

func (c *cli) seedCmd() *cobra.Command {
	var pw string
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Insert demo patients, caregivers, medicines, treatments and a user into empty tables",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			res, err := seed(cmd.Context(), c.app, pw)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(),
				"seeded %d patients, %d caregivers, %d medicines, %d treatments, %d users\n",
				res.patients, res.caregivers, res.medicines, res.treatments, res.users)
			return nil
		},
	}
	cmd.Flags().StringVar(&pw, "password", demoPassword, "password of the demo user "+demoUsername)
	return cmd
}

func (c *cli) userCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "Manage login accounts",
	}

	var pw string
	add := &cobra.Command{
		Use:   "add <username>",
		Short: "Create a user; the password is prompted for unless --password is given",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if pw == "" {
				var err error
				pw, err = newPrompter(cmd.InOrStdin(), cmd.OutOrStdout()).secret("Password: ")
				if err != nil {
					return err
				}
			}
			u, err := c.app.records.CreateUser(cmd.Context(), service.UserInput{Username: args[0], Password: pw})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "created user %s (id %d)\n", u.Username, u.ID)
			return nil
		},
	}
	add.Flags().StringVar(&pw, "password", "", "password of the new user")

	list := &cobra.Command{
		Use:   "list",
		Short: "List users",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			users, err := c.app.records.ListUsers(cmd.Context())
			if err != nil {
				return err
			}
			return table(cmd.OutOrStdout(), []string{"ID", "USERNAME"}, users, func(u *models.User) []string {
				return []string{u.ID.String(), u.Username}
			})
		},
	}

	cmd.AddCommand(add, list)
	return cmd
}

func (c *cli) loginCmd() *cobra.Command {
	var username, pw string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in; wrong passwords lock every login out for a while",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			if username != "" && pw != "" {
				ok, err := c.attempt(cmd.Context(), out, username, pw)
				if err != nil {
					return err
				}
				if !ok {
					return errors.New("login failed")
				}
				return nil
			}

			p := newPrompter(cmd.InOrStdin(), out)
			for {
				name, err := p.line("Username: ")
				if err != nil {
					return loginAborted(err)
				}
				secret, err := p.secret("Password: ")
				if err != nil {
					return loginAborted(err)
				}
				ok, err := c.attempt(cmd.Context(), out, name, secret)
				if err != nil {
					return err
				}
				if ok {
					return nil
				}
			}
		},
	}
	cmd.Flags().StringVar(&username, "username", "", "username for a single non-interactive attempt")
	cmd.Flags().StringVar(&pw, "password", "", "password for a single non-interactive attempt")
	return cmd
}

func (c *cli) attempt(ctx context.Context, out io.Writer, username, pw string) (bool, error) {
	res, err := c.app.login.Login(requestcontext.WithTime(ctx, time.Now()), username, pw)
	if err != nil {
		return false, err
	}
	if msg := login.Message(res.Outcome); msg != "" {
		if res.RetryAfter > 0 {
			msg = fmt.Sprintf("%s (%s)", msg, res.RetryAfter.Round(time.Second))
		}
		fmt.Fprintln(out, styles.failure.Render(msg))
		return false, nil
	}
	fmt.Fprintln(out, styles.success.Render("Welcome, "+username))
	return true, nil
}

func loginAborted(err error) error {
	if errors.Is(err, io.EOF) {
		return errors.New("login aborted")
	}
	return err
}

// filterFlags registers --archived and --all on a list command.
func filterFlags(cmd *cobra.Command) func() service.Filter {
	archived := cmd.Flags().Bool("archived", false, "list archived records only")
	all := cmd.Flags().Bool("all", false, "list active and archived records")
	cmd.MarkFlagsMutuallyExclusive("archived", "all")
	return func() service.Filter {
		switch {
		case *archived:
			return service.FilterArchived
		case *all:
			return service.FilterAll
		default:
			return service.FilterActive
		}
	}
}

func (c *cli) patientsCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "patients", Short: "Patients of the home"}
	list := &cobra.Command{
		Use:   "list",
		Short: "List patients",
		Args:  cobra.NoArgs,
	}
	filter := filterFlags(list)
	list.RunE = func(cmd *cobra.Command, _ []string) error {
		ps, err := c.app.records.ListPatients(cmd.Context(), filter())
		if err != nil {
			return err
		}
		return table(cmd.OutOrStdout(),
			[]string{"ID", "SURNAME", "FIRST NAME", "BORN", "CARE LEVEL", "ROOM", "ARCHIVED"}, ps,
			func(p *models.Patient) []string {
				return []string{p.ID.String(), p.Surname, p.FirstName, p.DateOfBirth.Format(time.DateOnly),
					p.CareLevel, p.RoomNumber, archivedOn(p.Archival)}
			})
	}
	cmd.AddCommand(list, c.patientAddCmd(), c.patientEditCmd(), c.patientShowCmd())
	return cmd
}

func (c *cli) caregiversCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "caregivers", Short: "Nursing staff"}
	list := &cobra.Command{
		Use:   "list",
		Short: "List caregivers",
		Args:  cobra.NoArgs,
	}
	filter := filterFlags(list)
	list.RunE = func(cmd *cobra.Command, _ []string) error {
		cs, err := c.app.records.ListCaregivers(cmd.Context(), filter())
		if err != nil {
			return err
		}
		return table(cmd.OutOrStdout(),
			[]string{"ID", "SURNAME", "FIRST NAME", "PHONE", "ARCHIVED"}, cs,
			func(cg *models.Caregiver) []string {
				return []string{cg.ID.String(), cg.Surname, cg.FirstName, cg.PhoneNumber, archivedOn(cg.Archival)}
			})
	}
	cmd.AddCommand(list, c.caregiverAddCmd(), c.caregiverEditCmd(), c.caregiverShowCmd())
	return cmd
}

func (c *cli) treatmentsCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "treatments", Short: "Care sessions"}
	var patientArg string
	list := &cobra.Command{
		Use:   "list",
		Short: "List treatments with their patient, caregiver and medicine",
		Args:  cobra.NoArgs,
	}
	filter := filterFlags(list)
	list.Flags().StringVar(&patientArg, "patient", "", "only treatments of this patient id (archived included)")
	list.RunE = func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()
		var (
			details []*models.TreatmentDetails
			err     error
		)
		if patientArg != "" {
			pid, perr := id.ParsePatientID(patientArg)
			if perr != nil {
				return perr
			}
			details, err = c.treatmentsOf(ctx, pid)
		} else {
			details, err = c.app.records.ListTreatmentDetails(ctx, filter())
		}
		if err != nil {
			return err
		}
		return table(cmd.OutOrStdout(),
			[]string{"ID", "PATIENT", "DATE", "BEGIN", "END", "DESCRIPTION", "CAREGIVER", "MEDICINE", "ARCHIVED"}, details,
			func(d *models.TreatmentDetails) []string {
				t := d.Treatment
				return []string{t.ID.String(), d.PatientName, t.Date.Format(time.DateOnly), t.Begin, t.End,
					t.Description, d.CaregiverName, d.MedicineName, archivedOn(t.Archival)}
			})
	}
	cmd.AddCommand(list, c.treatmentAddCmd(), c.treatmentEditCmd(), c.treatmentShowCmd())
	return cmd
}

func (c *cli) treatmentsOf(ctx context.Context, pid id.PatientID) ([]*models.TreatmentDetails, error) {
	ts, err := c.app.records.ListTreatmentsByPatient(ctx, pid)
	if err != nil {
		return nil, err
	}
	out := make([]*models.TreatmentDetails, 0, len(ts))
	for _, t := range ts {
		d, err := c.app.records.TreatmentDetails(ctx, t.ID)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, nil
}

func (c *cli) medicinesCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "medicines", Short: "Medicine stock"}
	list := &cobra.Command{
		Use:   "list",
		Short: "List medicines",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ms, err := c.app.records.ListMedicines(cmd.Context())
			if err != nil {
				return err
			}
			now := time.Now()
			return table(cmd.OutOrStdout(), []string{"ID", "NAME", "LOCATION", "EXPIRES", "EXPIRED"}, ms,
				func(m *models.Medicine) []string {
					return []string{m.ID.String(), m.Name, m.StorageLocation,
						m.ExpirationDate.Format(time.DateOnly), strconv.FormatBool(m.IsExpired(now))}
				})
		},
	}
	cmd.AddCommand(list, c.medicineAddCmd(), c.medicineShowCmd(), c.medicineDeleteCmd())
	return cmd
}

func (c *cli) archiveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "archive <patient|caregiver|treatment> <id>",
		Short: "Archive a record; it becomes read-only and is deleted once its retention period ends",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.lifecycle(cmd, args, true)
		},
	}
}

func (c *cli) restoreCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "restore <patient|caregiver|treatment> <id>",
		Short: "Return an archived record to the active set",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.lifecycle(cmd, args, false)
		},
	}
}

// lifecycle dispatches archive and restore by record kind.
func (c *cli) lifecycle(cmd *cobra.Command, args []string, archiving bool) error {
	ctx := cmd.Context()
	kind, ok := models.ParseKind(args[0])
	if !ok {
		return dErrors.Newf(dErrors.CodeInvalidInput, "unknown record kind %q; use patient, caregiver or treatment", args[0])
	}

	var a models.Archival
	switch kind {
	case models.KindPatient:
		pid, err := id.ParsePatientID(args[1])
		if err != nil {
			return err
		}
		p, err := pick(archiving, c.app.archive.ArchivePatient, c.app.archive.RestorePatient)(ctx, pid)
		if err != nil {
			return err
		}
		a = p.Archival
	case models.KindCaregiver:
		cid, err := id.ParseCaregiverID(args[1])
		if err != nil {
			return err
		}
		cg, err := pick(archiving, c.app.archive.ArchiveCaregiver, c.app.archive.RestoreCaregiver)(ctx, cid)
		if err != nil {
			return err
		}
		a = cg.Archival
	case models.KindTreatment:
		tid, err := id.ParseTreatmentID(args[1])
		if err != nil {
			return err
		}
		t, err := pick(archiving, c.app.archive.ArchiveTreatment, c.app.archive.RestoreTreatment)(ctx, tid)
		if err != nil {
			return err
		}
		a = t.Archival
	}

	out := cmd.OutOrStdout()
	if deletable, ok := a.DeletableFrom(c.app.archive.RetentionYears()); ok {
		fmt.Fprintf(out, "%s %s archived on %s, deletable from %s\n",
			kind, args[1], a.ArchivedOn.Format(time.DateOnly), deletable.Format(time.DateOnly))
		return nil
	}
	fmt.Fprintf(out, "%s %s restored\n", kind, args[1])
	return nil
}

func pick[K any, T any](archiving bool, onArchive, onRestore func(context.Context, K) (T, error)) func(context.Context, K) (T, error) {
	if archiving {
		return onArchive
	}
	return onRestore
}

func (c *cli) sweepCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sweep",
		Short: "Permanently delete archived records whose retention period has ended",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			res, err := c.app.archive.Sweep(requestcontext.WithTime(cmd.Context(), time.Now()))
			printSweep(cmd.OutOrStdout(), res, c.app.archive.RetentionYears())
			return err
		},
	}
}

func printSweep(out io.Writer, res archive.SweepResult, years int) {
	fmt.Fprintln(out, styles.title.Render(fmt.Sprintf("Retention sweep (%d years)", years)))
	fmt.Fprintf(out, "patients deleted:   %d\n", res.Patients)
	fmt.Fprintf(out, "caregivers deleted: %d\n", res.Caregivers)
	fmt.Fprintf(out, "treatments deleted: %d\n", res.Treatments)
}

func archivedOn(a models.Archival) string {
	if !a.IsArchived() {
		return ""
	}
	return a.ArchivedOn.Format(time.DateOnly)
}

func table[T any](out io.Writer, header []string, rows []T, cells func(T) []string) error {
	if len(rows) == 0 {
		fmt.Fprintln(out, styles.warning.Render("no records"))
		return nil
	}
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	writeRow(w, header)
	for _, r := range rows {
		writeRow(w, cells(r))
	}
	return w.Flush()
}

func writeRow(w io.Writer, cells []string) {
	for i, cell := range cells {
		if i > 0 {
			fmt.Fprint(w, "\t")
		}
		fmt.Fprint(w, cell)
	}
	fmt.Fprintln(w)
}
