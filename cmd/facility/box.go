package main

import (
	"github.com/spf13/cobra"

	"animal-facility/internal/domain/facility"
	"animal-facility/internal/domain/registry"
)

func (c *cli) boxCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "box",
		Aliases: []string{"boxes"},
		Short:   "Manage boxes (housing units)",
	}
	cmd.AddCommand(
		c.boxAddCmd(),
		c.boxListCmd(),
		c.boxShowCmd(),
		c.boxUpdateCmd(),
		c.boxStatusCmd(),
		c.boxDeleteCmd(),
	)
	return cmd
}

func (c *cli) boxAddCmd() *cobra.Command {
	var in registry.BoxInput
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Register a new box",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := c.app.Registry.CreateBox(cmd.Context(), in)
			if err != nil {
				return err
			}
			return c.printBox(b)
		},
	}
	cmd.Flags().StringVar(&in.Name, "name", "", "box name")
	cmd.Flags().StringVar(&in.Location, "location", "", "where the box is")
	cmd.Flags().StringVar(&in.Status, "status", "", "AVAILABLE (default), MAINTENANCE or CLEANING")
	return cmd
}

func (c *cli) boxListCmd() *cobra.Command {
	var available bool
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List boxes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				boxes []facility.Box
				err   error
			)
			if available {
				boxes, err = c.app.Registry.ListAvailableBoxes(cmd.Context())
			} else {
				boxes, err = c.app.Registry.ListBoxes(cmd.Context())
			}
			if err != nil {
				return err
			}
			return c.printBoxes(boxes)
		},
	}
	cmd.Flags().BoolVar(&available, "available", false, "only boxes that can take an animal")
	return cmd
}

func (c *cli) boxShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <box-id>",
		Short: "Show a box",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := c.app.Registry.GetBox(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return c.printBox(b)
		},
	}
}

func (c *cli) boxUpdateCmd() *cobra.Command {
	var name, location string
	cmd := &cobra.Command{
		Use:   "update <box-id>",
		Short: "Rename or relocate a box",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cur, err := c.app.Registry.GetBox(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("name") {
				name = cur.Name
			}
			if !cmd.Flags().Changed("location") {
				location = cur.Location
			}
			b, err := c.app.Registry.UpdateBox(cmd.Context(), args[0], name, location)
			if err != nil {
				return err
			}
			return c.printBox(b)
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "box name")
	cmd.Flags().StringVar(&location, "location", "", "where the box is")
	return cmd
}

func (c *cli) boxStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status <box-id> <AVAILABLE|MAINTENANCE|CLEANING>",
		Short: "Change the administrative status of an empty box",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := c.app.Registry.SetBoxStatus(cmd.Context(), args[0], args[1])
			if err != nil {
				return err
			}
			return c.printBox(b)
		},
	}
}

func (c *cli) boxDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <box-id>",
		Short: "Delete an empty box",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := c.app.Assignment.DeleteBox(cmd.Context(), args[0]); err != nil {
				return err
			}
			return c.printDone("box %s deleted", args[0])
		},
	}
}
