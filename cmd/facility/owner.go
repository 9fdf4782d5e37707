package main

import (
	"github.com/spf13/cobra"

	"animal-facility/internal/domain/registry"
)

type ownerFlags struct {
	firstName string
	lastName  string
	email     string
	phone     string
	address   string
}

func (f *ownerFlags) bind(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.firstName, "first-name", "", "first name")
	cmd.Flags().StringVar(&f.lastName, "last-name", "", "last name")
	cmd.Flags().StringVar(&f.email, "email", "", "contact email")
	cmd.Flags().StringVar(&f.phone, "phone", "", "contact phone")
	cmd.Flags().StringVar(&f.address, "address", "", "postal address")
}

func (f *ownerFlags) input(cmd *cobra.Command, base registry.OwnerInput) registry.OwnerInput {
	in := base
	set := cmd.Flags().Changed
	if set("first-name") {
		in.FirstName = f.firstName
	}
	if set("last-name") {
		in.LastName = f.lastName
	}
	if set("email") {
		in.Email = f.email
	}
	if set("phone") {
		in.Phone = f.phone
	}
	if set("address") {
		in.Address = f.address
	}
	return in
}

func (c *cli) ownerCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "owner",
		Aliases: []string{"owners"},
		Short:   "Manage owners",
	}
	cmd.AddCommand(
		c.ownerAddCmd(),
		c.ownerListCmd(),
		c.ownerShowCmd(),
		c.ownerUpdateCmd(),
		c.ownerDeleteCmd(),
	)
	return cmd
}

func (c *cli) ownerAddCmd() *cobra.Command {
	var f ownerFlags
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Register a new owner",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			o, err := c.app.Registry.CreateOwner(cmd.Context(), f.input(cmd, registry.OwnerInput{}))
			if err != nil {
				return err
			}
			return c.printOwner(o)
		},
	}
	f.bind(cmd)
	return cmd
}

func (c *cli) ownerListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List owners",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			owners, err := c.app.Registry.ListOwners(cmd.Context())
			if err != nil {
				return err
			}
			return c.printOwners(owners)
		},
	}
}

func (c *cli) ownerShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <owner-id>",
		Short: "Show an owner and the animals it owns",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			o, err := c.app.Registry.GetOwner(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return c.printOwner(o)
		},
	}
}

func (c *cli) ownerUpdateCmd() *cobra.Command {
	var f ownerFlags
	cmd := &cobra.Command{
		Use:   "update <owner-id>",
		Short: "Update the contact data of an owner",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cur, err := c.app.Registry.GetOwner(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			in := f.input(cmd, registry.OwnerInput{
				FirstName: cur.FirstName,
				LastName:  cur.LastName,
				Email:     cur.Email,
				Phone:     cur.Phone,
				Address:   cur.Address,
			})
			o, err := c.app.Registry.UpdateOwner(cmd.Context(), args[0], in)
			if err != nil {
				return err
			}
			return c.printOwner(o)
		},
	}
	f.bind(cmd)
	return cmd
}

func (c *cli) ownerDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <owner-id>",
		Short: "Delete an owner; its animals are left without owner",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := c.app.Assignment.DeleteOwner(cmd.Context(), args[0]); err != nil {
				return err
			}
			return c.printDone("owner %s deleted", args[0])
		},
	}
}
