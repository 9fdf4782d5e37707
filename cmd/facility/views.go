package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"animal-facility/internal/domain/facility"
	"animal-facility/internal/domain/schedule"
)

var errUsage = errors.New("invalid usage")

// parseDate acepta YYYY-MM-DD; vacío = sin fecha.
func parseDate(flag, raw string) (*time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	t, err := time.Parse(time.DateOnly, raw)
	if err != nil {
		return nil, fmt.Errorf("%w: --%s must be YYYY-MM-DD", errUsage, flag)
	}
	return &t, nil
}

func formatDate(t *time.Time) string {
	if t == nil {
		return "-"
	}
	return t.Format(time.DateOnly)
}

func dash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func newTable(w io.Writer, header ...string) *tabwriter.Writer {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(header, "\t"))
	return tw
}

func row(tw *tabwriter.Writer, cols ...string) {
	fmt.Fprintln(tw, strings.Join(cols, "\t"))
}

// ---- responses ----

type treatmentResponse struct {
	ID                 string     `json:"id"`
	AnimalID           string     `json:"animal_id"`
	Type               string     `json:"type"`
	Name               string     `json:"name"`
	Description        string     `json:"description,omitempty"`
	AdministrationDate *time.Time `json:"administration_date,omitempty"`
	NextDueDate        *time.Time `json:"next_due_date,omitempty"`
	Administered       bool       `json:"administered"`
	Status             string     `json:"status,omitempty"`
}

type animalResponse struct {
	ID         string              `json:"id"`
	Name       string              `json:"name"`
	Species    string              `json:"species"`
	Breed      string              `json:"breed,omitempty"`
	Gender     string              `json:"gender"`
	BirthDate  *time.Time          `json:"birth_date,omitempty"`
	OwnerID    string              `json:"owner_id,omitempty"`
	BoxID      string              `json:"box_id,omitempty"`
	Treatments []treatmentResponse `json:"treatments"`

	VaccinationUpToDate *bool `json:"vaccination_up_to_date,omitempty"`
	DewormingUpToDate   *bool `json:"deworming_up_to_date,omitempty"`
}

type ownerResponse struct {
	ID        string   `json:"id"`
	FirstName string   `json:"first_name"`
	LastName  string   `json:"last_name"`
	FullName  string   `json:"full_name"`
	Email     string   `json:"email,omitempty"`
	Phone     string   `json:"phone,omitempty"`
	Address   string   `json:"address,omitempty"`
	AnimalIDs []string `json:"animal_ids"`
}

type boxResponse struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	Location        string `json:"location,omitempty"`
	Status          string `json:"status"`
	CurrentAnimalID string `json:"current_animal_id,omitempty"`
}

type reportEntryResponse struct {
	AnimalID   string            `json:"animal_id"`
	AnimalName string            `json:"animal_name"`
	Treatment  treatmentResponse `json:"treatment"`
}

func toTreatmentResponse(t facility.Treatment) treatmentResponse {
	return treatmentResponse{
		ID:                 t.ID,
		AnimalID:           t.AnimalID,
		Type:               string(t.Type),
		Name:               t.Name,
		Description:        t.Description,
		AdministrationDate: t.AdministrationDate,
		NextDueDate:        t.NextDueDate,
		Administered:       t.Administered,
	}
}

func toAnimalResponse(a facility.Animal) animalResponse {
	out := animalResponse{
		ID:         a.ID,
		Name:       a.Name,
		Species:    a.Species,
		Breed:      a.Breed,
		Gender:     string(a.Gender),
		BirthDate:  a.BirthDate,
		OwnerID:    a.OwnerID,
		BoxID:      a.BoxID,
		Treatments: make([]treatmentResponse, 0, len(a.Treatments)),
	}
	for _, t := range a.Treatments {
		out.Treatments = append(out.Treatments, toTreatmentResponse(t))
	}
	return out
}

func toOwnerResponse(o facility.Owner) ownerResponse {
	ids := o.AnimalIDs
	if ids == nil {
		ids = []string{}
	}
	return ownerResponse{
		ID:        o.ID,
		FirstName: o.FirstName,
		LastName:  o.LastName,
		FullName:  facility.FullName(o),
		Email:     o.Email,
		Phone:     o.Phone,
		Address:   o.Address,
		AnimalIDs: ids,
	}
}

func toBoxResponse(b facility.Box) boxResponse {
	return boxResponse{
		ID:              b.ID,
		Name:            b.Name,
		Location:        b.Location,
		Status:          string(b.Status),
		CurrentAnimalID: b.CurrentAnimalID,
	}
}

func toReportEntryResponse(e schedule.Entry) reportEntryResponse {
	t := toTreatmentResponse(e.Treatment)
	t.Status = string(e.Status)
	return reportEntryResponse{AnimalID: e.AnimalID, AnimalName: e.AnimalName, Treatment: t}
}

// ---- render ----

func (c *cli) printAnimal(a facility.Animal, asOf time.Time) error {
	vacc := facility.IsVaccinationUpToDate(a, asOf)
	dew := facility.IsDewormingUpToDate(a, asOf)
	if c.asJSON {
		resp := toAnimalResponse(a)
		resp.VaccinationUpToDate = &vacc
		resp.DewormingUpToDate = &dew
		return writeJSON(c.out, resp)
	}

	fmt.Fprintf(c.out, "ID:          %s\n", a.ID)
	fmt.Fprintf(c.out, "Name:        %s\n", a.Name)
	fmt.Fprintf(c.out, "Species:     %s\n", a.Species)
	fmt.Fprintf(c.out, "Breed:       %s\n", dash(a.Breed))
	fmt.Fprintf(c.out, "Gender:      %s\n", a.Gender)
	fmt.Fprintf(c.out, "Birth date:  %s\n", formatDate(a.BirthDate))
	fmt.Fprintf(c.out, "Owner:       %s\n", dash(a.OwnerID))
	fmt.Fprintf(c.out, "Box:         %s\n", dash(a.BoxID))
	fmt.Fprintf(c.out, "Vaccination: %s\n", upToDate(vacc))
	fmt.Fprintf(c.out, "Deworming:   %s\n", upToDate(dew))
	if len(a.Treatments) == 0 {
		return nil
	}
	fmt.Fprintln(c.out)
	return c.printTreatments(a.Treatments, asOf)
}

func upToDate(ok bool) string {
	if ok {
		return "up to date"
	}
	return "OVERDUE"
}

func (c *cli) printAnimals(animals []facility.Animal) error {
	if c.asJSON {
		out := make([]animalResponse, 0, len(animals))
		for _, a := range animals {
			out = append(out, toAnimalResponse(a))
		}
		return writeJSON(c.out, out)
	}
	tw := newTable(c.out, "ID", "NAME", "SPECIES", "GENDER", "OWNER", "BOX", "TREATMENTS")
	for _, a := range animals {
		row(tw, a.ID, a.Name, a.Species, string(a.Gender), dash(a.OwnerID), dash(a.BoxID), fmt.Sprint(len(a.Treatments)))
	}
	return tw.Flush()
}

func (c *cli) printOwner(o facility.Owner) error {
	if c.asJSON {
		return writeJSON(c.out, toOwnerResponse(o))
	}
	fmt.Fprintf(c.out, "ID:      %s\n", o.ID)
	fmt.Fprintf(c.out, "Name:    %s\n", facility.FullName(o))
	fmt.Fprintf(c.out, "Email:   %s\n", dash(o.Email))
	fmt.Fprintf(c.out, "Phone:   %s\n", dash(o.Phone))
	fmt.Fprintf(c.out, "Address: %s\n", dash(o.Address))
	fmt.Fprintf(c.out, "Animals: %s\n", dash(strings.Join(o.AnimalIDs, ", ")))
	return nil
}

func (c *cli) printOwners(owners []facility.Owner) error {
	if c.asJSON {
		out := make([]ownerResponse, 0, len(owners))
		for _, o := range owners {
			out = append(out, toOwnerResponse(o))
		}
		return writeJSON(c.out, out)
	}
	tw := newTable(c.out, "ID", "NAME", "EMAIL", "PHONE", "ANIMALS")
	for _, o := range owners {
		row(tw, o.ID, facility.FullName(o), dash(o.Email), dash(o.Phone), fmt.Sprint(len(o.AnimalIDs)))
	}
	return tw.Flush()
}

func (c *cli) printBox(b facility.Box) error {
	if c.asJSON {
		return writeJSON(c.out, toBoxResponse(b))
	}
	tw := newTable(c.out, "ID", "NAME", "LOCATION", "STATUS", "ANIMAL")
	row(tw, b.ID, b.Name, dash(b.Location), string(b.Status), dash(b.CurrentAnimalID))
	return tw.Flush()
}

func (c *cli) printBoxes(boxes []facility.Box) error {
	if c.asJSON {
		out := make([]boxResponse, 0, len(boxes))
		for _, b := range boxes {
			out = append(out, toBoxResponse(b))
		}
		return writeJSON(c.out, out)
	}
	tw := newTable(c.out, "ID", "NAME", "LOCATION", "STATUS", "ANIMAL")
	for _, b := range boxes {
		row(tw, b.ID, b.Name, dash(b.Location), string(b.Status), dash(b.CurrentAnimalID))
	}
	return tw.Flush()
}

func (c *cli) printTreatment(t facility.Treatment) error {
	if c.asJSON {
		return writeJSON(c.out, toTreatmentResponse(t))
	}
	return c.printTreatments([]facility.Treatment{t}, time.Time{})
}

// printTreatments agrega la columna STATUS cuando asOf no es cero.
func (c *cli) printTreatments(ts []facility.Treatment, asOf time.Time) error {
	if c.asJSON {
		out := make([]treatmentResponse, 0, len(ts))
		for _, t := range ts {
			r := toTreatmentResponse(t)
			if !asOf.IsZero() {
				r.Status = string(schedule.Classify(t, asOf, c.app.Scheduler.DueSoonDays()))
			}
			out = append(out, r)
		}
		return writeJSON(c.out, out)
	}
	tw := newTable(c.out, "ID", "TYPE", "NAME", "ADMINISTERED", "NEXT DUE", "STATUS")
	for _, t := range ts {
		status := "-"
		if !asOf.IsZero() {
			status = string(schedule.Classify(t, asOf, c.app.Scheduler.DueSoonDays()))
		}
		row(tw, t.ID, string(t.Type), t.Name, formatDate(t.AdministrationDate), formatDate(t.NextDueDate), status)
	}
	return tw.Flush()
}

func (c *cli) printReport(entries []schedule.Entry) error {
	if c.asJSON {
		out := make([]reportEntryResponse, 0, len(entries))
		for _, e := range entries {
			out = append(out, toReportEntryResponse(e))
		}
		return writeJSON(c.out, out)
	}
	tw := newTable(c.out, "ANIMAL", "TREATMENT", "TYPE", "ADMINISTERED", "NEXT DUE", "STATUS")
	for _, e := range entries {
		row(tw,
			e.AnimalName,
			e.Treatment.Name,
			string(e.Treatment.Type),
			formatDate(e.Treatment.AdministrationDate),
			formatDate(e.Treatment.NextDueDate),
			string(e.Status),
		)
	}
	return tw.Flush()
}

func (c *cli) printDone(format string, args ...any) error {
	if c.asJSON {
		return writeJSON(c.out, map[string]string{"result": fmt.Sprintf(format, args...)})
	}
	_, err := fmt.Fprintf(c.out, format+"\n", args...)
	return err
}
