package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"animal-facility/internal/app"
	"animal-facility/internal/config"
	"animal-facility/internal/domain/facility"
)

const version = "0.3.0"

// Exit codes del CLI.
const (
	exitOK         = 0
	exitError      = 1
	exitValidation = 2
	exitNotFound   = 3
	exitConflict   = 4
	exitStorage    = 5
)

type cli struct {
	configFile string
	asJSON     bool

	out    io.Writer
	errOut io.Writer
	app    *app.App
}

func run(args []string, out, errOut io.Writer) int {
	c := &cli{out: out, errOut: errOut}
	root := c.rootCmd()
	root.SetArgs(args)

	err := root.ExecuteContext(context.Background())
	if cerr := c.close(); cerr != nil && err == nil {
		err = cerr
	}
	if err != nil {
		fmt.Fprintln(errOut, "error:", err)
		return exitCode(err)
	}
	return exitOK
}

func (c *cli) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "facility",
		Short: "Track animals, owners, boxes and treatments of a facility",
		Long: `facility keeps the registry of animals held at a facility: who owns
them, which box houses them and which treatments are due.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: c.open,
	}
	root.SetOut(c.out)
	root.SetErr(c.errOut)

	root.PersistentFlags().StringVar(&c.configFile, "config", "", "config file (default: ./facility.yaml)")
	root.PersistentFlags().BoolVar(&c.asJSON, "json", false, "print results as JSON")

	root.AddCommand(
		c.animalCmd(),
		c.ownerCmd(),
		c.boxCmd(),
		c.assignCmd(),
		c.releaseCmd(),
		c.unassignOwnerCmd(),
		c.treatmentCmd(),
		c.overdueCmd(),
		versionCmd(),
	)
	return root
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		// sin store: no hace falta config
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), "facility v"+version)
		},
	}
}

// open carga la config y arma la app antes de cada comando.
func (c *cli) open(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(c.configFile)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	a, err := app.New(cmd.Context(), cfg, c.errOut)
	if err != nil {
		return fmt.Errorf("open app: %w", err)
	}
	c.app = a
	return nil
}

func (c *cli) close() error {
	if c.app == nil {
		return nil
	}
	err := c.app.Close()
	c.app = nil
	return err
}

func exitCode(err error) int {
	switch {
	case errors.Is(err, facility.ErrValidation), errors.Is(err, errUsage):
		return exitValidation
	case errors.Is(err, facility.ErrNotFound):
		return exitNotFound
	case errors.Is(err, facility.ErrBoxUnavailable), errors.Is(err, facility.ErrBoxOccupied):
		return exitConflict
	case errors.Is(err, facility.ErrStorage):
		return exitStorage
	default:
		return exitError
	}
}
