package main

import (
	"github.com/spf13/cobra"

	"animal-facility/internal/domain/facility"
	"animal-facility/internal/domain/registry"
)

type animalFlags struct {
	name      string
	species   string
	breed     string
	gender    string
	birthDate string
}

func (f *animalFlags) bind(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.name, "name", "", "animal name")
	cmd.Flags().StringVar(&f.species, "species", "", "species (dog, cat, ...)")
	cmd.Flags().StringVar(&f.breed, "breed", "", "breed")
	cmd.Flags().StringVar(&f.gender, "gender", "", "male, female or unknown")
	cmd.Flags().StringVar(&f.birthDate, "birth-date", "", "birth date (YYYY-MM-DD)")
}

// input pisa sobre base solo los flags que se pasaron.
func (f *animalFlags) input(cmd *cobra.Command, base registry.AnimalInput) (registry.AnimalInput, error) {
	in := base
	set := cmd.Flags().Changed
	if set("name") {
		in.Name = f.name
	}
	if set("species") {
		in.Species = f.species
	}
	if set("breed") {
		in.Breed = f.breed
	}
	if set("gender") {
		in.Gender = f.gender
	}
	if set("birth-date") {
		d, err := parseDate("birth-date", f.birthDate)
		if err != nil {
			return in, err
		}
		in.BirthDate = d
	}
	return in, nil
}

func (c *cli) animalCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "animal",
		Aliases: []string{"animals"},
		Short:   "Manage animals",
	}
	cmd.AddCommand(
		c.animalAddCmd(),
		c.animalListCmd(),
		c.animalShowCmd(),
		c.animalUpdateCmd(),
		c.animalDeleteCmd(),
	)
	return cmd
}

func (c *cli) animalAddCmd() *cobra.Command {
	var f animalFlags
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Register a new animal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := f.input(cmd, registry.AnimalInput{})
			if err != nil {
				return err
			}
			a, err := c.app.Registry.CreateAnimal(cmd.Context(), in)
			if err != nil {
				return err
			}
			return c.printAnimal(a, c.app.Scheduler.Today())
		},
	}
	f.bind(cmd)
	return cmd
}

func (c *cli) animalListCmd() *cobra.Command {
	var overdue bool
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List animals",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				animals []facility.Animal
				err     error
			)
			if overdue {
				animals, err = c.app.Registry.AnimalsWithOverdueTreatments(cmd.Context(), c.app.Scheduler.Today())
			} else {
				animals, err = c.app.Registry.ListAnimals(cmd.Context())
			}
			if err != nil {
				return err
			}
			return c.printAnimals(animals)
		},
	}
	cmd.Flags().BoolVar(&overdue, "overdue", false, "only animals with overdue treatments")
	return cmd
}

func (c *cli) animalShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <animal-id>",
		Short: "Show an animal with its treatments",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := c.app.Registry.GetAnimal(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return c.printAnimal(a, c.app.Scheduler.Today())
		},
	}
}

func (c *cli) animalUpdateCmd() *cobra.Command {
	var f animalFlags
	cmd := &cobra.Command{
		Use:   "update <animal-id>",
		Short: "Update the descriptive fields of an animal",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cur, err := c.app.Registry.GetAnimal(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			in, err := f.input(cmd, registry.AnimalInput{
				Name:      cur.Name,
				Species:   cur.Species,
				Breed:     cur.Breed,
				Gender:    string(cur.Gender),
				BirthDate: cur.BirthDate,
			})
			if err != nil {
				return err
			}
			a, err := c.app.Registry.UpdateAnimal(cmd.Context(), args[0], in)
			if err != nil {
				return err
			}
			return c.printAnimal(a, c.app.Scheduler.Today())
		},
	}
	f.bind(cmd)
	return cmd
}

func (c *cli) animalDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <animal-id>",
		Short: "Delete an animal, its treatments and its assignments",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := c.app.Assignment.DeleteAnimal(cmd.Context(), args[0]); err != nil {
				return err
			}
			return c.printDone("animal %s deleted", args[0])
		},
	}
}
