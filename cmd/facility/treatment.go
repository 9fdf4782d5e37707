package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"animal-facility/internal/domain/facility"
	"animal-facility/internal/domain/registry"
	"animal-facility/internal/domain/schedule"
)

func (c *cli) treatmentCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "treatment",
		Aliases: []string{"treatments"},
		Short:   "Manage medical treatments",
	}
	cmd.AddCommand(
		c.treatmentAddCmd(),
		c.treatmentListCmd(),
		c.treatmentShowCmd(),
		c.treatmentAdministerCmd(),
		c.treatmentReportCmd(),
		c.treatmentDeleteCmd(),
	)
	return cmd
}

func (c *cli) treatmentAddCmd() *cobra.Command {
	var (
		in      registry.TreatmentInput
		nextDue string
	)
	cmd := &cobra.Command{
		Use:   "add <animal-id>",
		Short: "Schedule a treatment for an animal",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := parseDate("next-due", nextDue)
			if err != nil {
				return err
			}
			in.NextDueDate = d
			t, err := c.app.Registry.AddTreatment(cmd.Context(), args[0], in)
			if err != nil {
				return err
			}
			return c.printTreatment(t)
		},
	}
	cmd.Flags().StringVar(&in.Type, "type", "", "VACCINE, DEWORMING, MEDICATION or CHECKUP")
	cmd.Flags().StringVar(&in.Name, "name", "", "treatment name")
	cmd.Flags().StringVar(&in.Description, "description", "", "free text")
	cmd.Flags().StringVar(&nextDue, "next-due", "", "next due date (YYYY-MM-DD)")
	return cmd
}

func (c *cli) treatmentListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list <animal-id>",
		Short: "List the treatments of an animal",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ts, err := c.app.Registry.ListTreatments(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return c.printTreatments(ts, c.app.Scheduler.Today())
		},
	}
}

func (c *cli) treatmentShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <treatment-id>",
		Short: "Show a treatment",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := c.app.Registry.GetTreatment(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return c.printTreatment(t)
		},
	}
}

func (c *cli) treatmentAdministerCmd() *cobra.Command {
	var nextDue string
	cmd := &cobra.Command{
		Use:   "administer <treatment-id>",
		Short: "Record that a treatment was given today",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := parseDate("next-due", nextDue)
			if err != nil {
				return err
			}
			t, err := c.app.Scheduler.AdministerTreatment(cmd.Context(), args[0], d)
			if err != nil {
				return err
			}
			return c.printTreatment(t)
		},
	}
	cmd.Flags().StringVar(&nextDue, "next-due", "", "next due date (YYYY-MM-DD); empty clears it")
	return cmd
}

func (c *cli) treatmentReportCmd() *cobra.Command {
	var asOfRaw, status string
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Classify every treatment as OK, DUE_SOON or OVERDUE",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			asOf, err := c.asOf(asOfRaw)
			if err != nil {
				return err
			}
			want := schedule.Status(strings.ToUpper(strings.TrimSpace(status)))
			switch want {
			case "", schedule.StatusOK, schedule.StatusDueSoon, schedule.StatusOverdue:
			default:
				return fmt.Errorf("%w: --status must be OK, DUE_SOON or OVERDUE", errUsage)
			}

			entries, err := c.app.Scheduler.Report(cmd.Context(), asOf)
			if err != nil {
				return err
			}
			if want != "" {
				kept := entries[:0]
				for _, e := range entries {
					if e.Status == want {
						kept = append(kept, e)
					}
				}
				entries = kept
			}
			return c.printReport(entries)
		},
	}
	cmd.Flags().StringVar(&asOfRaw, "as-of", "", "reference date (YYYY-MM-DD, default today)")
	cmd.Flags().StringVar(&status, "status", "", "only entries with this status")
	return cmd
}

func (c *cli) treatmentDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <treatment-id>",
		Short: "Delete a treatment",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := c.app.Registry.DeleteTreatment(cmd.Context(), args[0]); err != nil {
				return err
			}
			return c.printDone("treatment %s deleted", args[0])
		},
	}
}

func (c *cli) overdueCmd() *cobra.Command {
	var asOfRaw string
	cmd := &cobra.Command{
		Use:   "overdue",
		Short: "List animals with overdue treatments",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			asOf, err := c.asOf(asOfRaw)
			if err != nil {
				return err
			}
			animals, err := c.app.Registry.AnimalsWithOverdueTreatments(cmd.Context(), asOf)
			if err != nil {
				return err
			}
			entries := make([]schedule.Entry, 0, len(animals))
			for _, a := range animals {
				for _, t := range facility.OverdueTreatments(a, asOf) {
					entries = append(entries, schedule.Entry{
						Treatment:  t,
						AnimalID:   a.ID,
						AnimalName: a.Name,
						Status:     schedule.StatusOverdue,
					})
				}
			}
			return c.printReport(entries)
		},
	}
	cmd.Flags().StringVar(&asOfRaw, "as-of", "", "reference date (YYYY-MM-DD, default today)")
	return cmd
}

// asOf: fecha del flag o, si viene vacío, hoy.
func (c *cli) asOf(raw string) (time.Time, error) {
	d, err := parseDate("as-of", raw)
	if err != nil {
		return time.Time{}, err
	}
	if d == nil {
		return c.app.Scheduler.Today(), nil
	}
	return *d, nil
}
