package main

import (
	"github.com/spf13/cobra"
)

func (c *cli) assignCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "assign",
		Short: "Assign an owner or a box to an animal",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "owner <animal-id> <owner-id>",
			Short: "Give the animal a new owner",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				if err := c.app.Assignment.AssignOwner(cmd.Context(), args[0], args[1]); err != nil {
					return err
				}
				return c.printDone("animal %s now owned by %s", args[0], args[1])
			},
		},
		&cobra.Command{
			Use:   "box <animal-id> <box-id>",
			Short: "Move the animal into an available box",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				if err := c.app.Assignment.AssignBox(cmd.Context(), args[0], args[1]); err != nil {
					return err
				}
				return c.printDone("animal %s housed in box %s", args[0], args[1])
			},
		},
	)
	return cmd
}

func (c *cli) releaseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "release <animal-id>",
		Short: "Take the animal out of its box",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := c.app.Assignment.ReleaseBox(cmd.Context(), args[0]); err != nil {
				return err
			}
			return c.printDone("animal %s released", args[0])
		},
	}
}

func (c *cli) unassignOwnerCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "unassign-owner <owner-id> <animal-id>",
		Short: "Remove an animal from an owner",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := c.app.Assignment.RemoveOwner(cmd.Context(), args[0], args[1]); err != nil {
				return err
			}
			return c.printDone("animal %s removed from owner %s", args[1], args[0])
		},
	}
}
