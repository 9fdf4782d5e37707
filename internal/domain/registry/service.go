// Package registry cubre el alta, edición y consulta de entidades. Las
// relaciones (dueño, box) no se tocan acá: son de assignment.Manager.
package registry

import (
	"context"
	"fmt"
	"strings"
	"time"

	"animal-facility/internal/domain/facility"
	"animal-facility/internal/platform/logger"
	"animal-facility/internal/platform/metrics"
)

type Service struct {
	store   facility.Store
	log     logger.Logger
	metrics *metrics.Recorder
}

type Options struct {
	Logger  logger.Logger
	Metrics *metrics.Recorder
}

func NewService(store facility.Store, opts Options) *Service {
	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}
	return &Service{
		store:   store,
		log:     log.With(map[string]any{"component": "registry"}),
		metrics: opts.Metrics,
	}
}

func (s *Service) observe(op string, start time.Time, err error) {
	s.metrics.Observe(op, start, err)
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", facility.ErrValidation, fmt.Sprintf(format, args...))
}

// ---- animals ----

type AnimalInput struct {
	Name      string
	Species   string
	Breed     string
	Gender    string
	BirthDate *time.Time
}

func (in AnimalInput) apply(a *facility.Animal) error {
	gender, ok := facility.ParseGender(strings.ToLower(strings.TrimSpace(in.Gender)))
	if !ok {
		return invalid("gender %q", in.Gender)
	}
	a.Name = strings.TrimSpace(in.Name)
	a.Species = strings.TrimSpace(in.Species)
	a.Breed = strings.TrimSpace(in.Breed)
	a.Gender = gender
	a.BirthDate = nil
	if in.BirthDate != nil {
		a.BirthDate = facility.DatePtr(*in.BirthDate)
	}
	return a.Validate()
}

// CreateAnimal: el animal nace sin dueño, sin box y sin tratamientos.
func (s *Service) CreateAnimal(ctx context.Context, in AnimalInput) (a facility.Animal, err error) {
	defer func(start time.Time) { s.observe("create_animal", start, err) }(time.Now())

	if err := in.apply(&a); err != nil {
		return facility.Animal{}, err
	}
	a.ID, err = s.store.Animals().Save(ctx, a)
	if err != nil {
		return facility.Animal{}, err
	}
	a.Treatments = []facility.Treatment{}

	s.log.Info("animal created", map[string]any{"animal_id": a.ID, "species": a.Species})
	return a, nil
}

// UpdateAnimal reemplaza solo los campos escalares; OwnerID/BoxID se conservan.
func (s *Service) UpdateAnimal(ctx context.Context, id string, in AnimalInput) (out facility.Animal, err error) {
	defer func(start time.Time) { s.observe("update_animal", start, err) }(time.Now())

	err = s.store.Atomic(ctx, func(ctx context.Context, tx facility.Store) error {
		a, err := tx.Animals().GetByID(ctx, id)
		if err != nil {
			return err
		}
		if err := in.apply(&a); err != nil {
			return err
		}
		if err := tx.Animals().Update(ctx, a); err != nil {
			return err
		}
		out = a
		return nil
	})
	if err != nil {
		return facility.Animal{}, err
	}

	s.log.Info("animal updated", map[string]any{"animal_id": id})
	return out, nil
}

func (s *Service) GetAnimal(ctx context.Context, id string) (facility.Animal, error) {
	return s.store.Animals().GetByID(ctx, id)
}

func (s *Service) ListAnimals(ctx context.Context) ([]facility.Animal, error) {
	return s.store.Animals().GetAll(ctx)
}

// AnimalsWithOverdueTreatments devuelve los animales con al menos un tratamiento vencido en asOf.
func (s *Service) AnimalsWithOverdueTreatments(ctx context.Context, asOf time.Time) ([]facility.Animal, error) {
	all, err := s.store.Animals().GetAll(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]facility.Animal, 0)
	for _, a := range all {
		if len(facility.OverdueTreatments(a, asOf)) > 0 {
			out = append(out, a)
		}
	}
	return out, nil
}

// ---- owners ----

type OwnerInput struct {
	FirstName string
	LastName  string
	Email     string
	Phone     string
	Address   string
}

func (in OwnerInput) apply(o *facility.Owner) error {
	o.FirstName = strings.TrimSpace(in.FirstName)
	o.LastName = strings.TrimSpace(in.LastName)
	o.Email = strings.TrimSpace(in.Email)
	o.Phone = strings.TrimSpace(in.Phone)
	o.Address = strings.TrimSpace(in.Address)
	return o.Validate()
}

func (s *Service) CreateOwner(ctx context.Context, in OwnerInput) (o facility.Owner, err error) {
	defer func(start time.Time) { s.observe("create_owner", start, err) }(time.Now())

	if err := in.apply(&o); err != nil {
		return facility.Owner{}, err
	}
	o.ID, err = s.store.Owners().Save(ctx, o)
	if err != nil {
		return facility.Owner{}, err
	}
	o.AnimalIDs = []string{}

	s.log.Info("owner created", map[string]any{"owner_id": o.ID})
	return o, nil
}

func (s *Service) UpdateOwner(ctx context.Context, id string, in OwnerInput) (out facility.Owner, err error) {
	defer func(start time.Time) { s.observe("update_owner", start, err) }(time.Now())

	err = s.store.Atomic(ctx, func(ctx context.Context, tx facility.Store) error {
		o, err := tx.Owners().GetByID(ctx, id)
		if err != nil {
			return err
		}
		if err := in.apply(&o); err != nil {
			return err
		}
		if err := tx.Owners().Update(ctx, o); err != nil {
			return err
		}
		out = o
		return nil
	})
	if err != nil {
		return facility.Owner{}, err
	}

	s.log.Info("owner updated", map[string]any{"owner_id": id})
	return out, nil
}

func (s *Service) GetOwner(ctx context.Context, id string) (facility.Owner, error) {
	return s.store.Owners().GetByID(ctx, id)
}

func (s *Service) ListOwners(ctx context.Context) ([]facility.Owner, error) {
	return s.store.Owners().GetAll(ctx)
}

// ---- boxes ----

type BoxInput struct {
	Name     string
	Location string
	// Status vacío = AVAILABLE. OCCUPIED no se puede fijar a mano.
	Status string
}

func parseAdminStatus(raw string) (facility.BoxStatus, error) {
	raw = strings.ToUpper(strings.TrimSpace(raw))
	if raw == "" {
		return facility.BoxAvailable, nil
	}
	st, ok := facility.ParseBoxStatus(raw)
	if !ok {
		return "", invalid("box status %q", raw)
	}
	if st == facility.BoxOccupied {
		return "", invalid("box status OCCUPIED is set only by assigning an animal")
	}
	return st, nil
}

func (s *Service) CreateBox(ctx context.Context, in BoxInput) (b facility.Box, err error) {
	defer func(start time.Time) { s.observe("create_box", start, err) }(time.Now())

	st, err := parseAdminStatus(in.Status)
	if err != nil {
		return facility.Box{}, err
	}
	b = facility.Box{
		Name:     strings.TrimSpace(in.Name),
		Location: strings.TrimSpace(in.Location),
		Status:   st,
	}
	if err := b.Validate(); err != nil {
		return facility.Box{}, err
	}
	b.ID, err = s.store.Boxes().Save(ctx, b)
	if err != nil {
		return facility.Box{}, err
	}

	s.log.Info("box created", map[string]any{"box_id": b.ID, "status": string(b.Status)})
	return b, nil
}

// UpdateBox edita nombre y ubicación; el estado va por SetBoxStatus.
func (s *Service) UpdateBox(ctx context.Context, id, name, location string) (out facility.Box, err error) {
	defer func(start time.Time) { s.observe("update_box", start, err) }(time.Now())

	err = s.store.Atomic(ctx, func(ctx context.Context, tx facility.Store) error {
		b, err := tx.Boxes().GetByID(ctx, id)
		if err != nil {
			return err
		}
		b.Name = strings.TrimSpace(name)
		b.Location = strings.TrimSpace(location)
		if err := b.Validate(); err != nil {
			return err
		}
		if err := tx.Boxes().Update(ctx, b); err != nil {
			return err
		}
		out = b
		return nil
	})
	if err != nil {
		return facility.Box{}, err
	}

	s.log.Info("box updated", map[string]any{"box_id": id})
	return out, nil
}

// SetBoxStatus es la edición administrativa de estado (AVAILABLE, MAINTENANCE,
// CLEANING). Un box OCCUPIED solo sale de ese estado liberando al animal.
func (s *Service) SetBoxStatus(ctx context.Context, id, status string) (out facility.Box, err error) {
	defer func(start time.Time) { s.observe("set_box_status", start, err) }(time.Now())

	st, err := parseAdminStatus(status)
	if err != nil {
		return facility.Box{}, err
	}

	var prev facility.BoxStatus
	err = s.store.Atomic(ctx, func(ctx context.Context, tx facility.Store) error {
		b, err := tx.Boxes().GetByID(ctx, id)
		if err != nil {
			return err
		}
		prev = b.Status
		if b.Status == facility.BoxOccupied {
			return fmt.Errorf("%w: box %q holds animal %q", facility.ErrBoxOccupied, b.ID, b.CurrentAnimalID)
		}
		out = b
		if b.Status == st {
			return nil
		}
		b.Status = st
		if err := tx.Boxes().Update(ctx, b); err != nil {
			return err
		}
		out = b
		return nil
	})
	if err != nil {
		return facility.Box{}, err
	}

	s.log.Info("box status changed", map[string]any{"box_id": id, "from": string(prev), "to": string(st)})
	return out, nil
}

func (s *Service) GetBox(ctx context.Context, id string) (facility.Box, error) {
	return s.store.Boxes().GetByID(ctx, id)
}

func (s *Service) ListBoxes(ctx context.Context) ([]facility.Box, error) {
	return s.store.Boxes().GetAll(ctx)
}

func (s *Service) ListAvailableBoxes(ctx context.Context) ([]facility.Box, error) {
	all, err := s.store.Boxes().GetAll(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]facility.Box, 0, len(all))
	for _, b := range all {
		if b.IsAvailable() {
			out = append(out, b)
		}
	}
	return out, nil
}

// ---- treatments ----

type TreatmentInput struct {
	Type        string
	Name        string
	Description string
	NextDueDate *time.Time
}

// AddTreatment agrega un tratamiento pendiente (no administrado) al final de la lista del animal.
func (s *Service) AddTreatment(ctx context.Context, animalID string, in TreatmentInput) (t facility.Treatment, err error) {
	defer func(start time.Time) { s.observe("add_treatment", start, err) }(time.Now())

	typ, ok := facility.ParseTreatmentType(strings.ToUpper(strings.TrimSpace(in.Type)))
	if !ok {
		return facility.Treatment{}, invalid("treatment type %q", in.Type)
	}
	t = facility.Treatment{
		AnimalID:    animalID,
		Type:        typ,
		Name:        strings.TrimSpace(in.Name),
		Description: strings.TrimSpace(in.Description),
	}
	if in.NextDueDate != nil {
		t.NextDueDate = facility.DatePtr(*in.NextDueDate)
	}
	if err := t.Validate(); err != nil {
		return facility.Treatment{}, err
	}

	err = s.store.Atomic(ctx, func(ctx context.Context, tx facility.Store) error {
		if _, err := tx.Animals().GetByID(ctx, animalID); err != nil {
			return err
		}
		id, err := tx.Treatments().Save(ctx, t)
		if err != nil {
			return err
		}
		t.ID = id
		return nil
	})
	if err != nil {
		return facility.Treatment{}, err
	}

	s.log.Info("treatment added", map[string]any{
		"treatment_id": t.ID,
		"animal_id":    animalID,
		"type":         string(t.Type),
	})
	return t, nil
}

func (s *Service) GetTreatment(ctx context.Context, id string) (facility.Treatment, error) {
	return s.store.Treatments().GetByID(ctx, id)
}

func (s *Service) ListTreatments(ctx context.Context, animalID string) ([]facility.Treatment, error) {
	if _, err := s.store.Animals().GetByID(ctx, animalID); err != nil {
		return nil, err
	}
	return s.store.Treatments().ListByAnimal(ctx, animalID)
}

func (s *Service) DeleteTreatment(ctx context.Context, id string) (err error) {
	defer func(start time.Time) { s.observe("delete_treatment", start, err) }(time.Now())

	if err := s.store.Treatments().Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info("treatment deleted", map[string]any{"treatment_id": id})
	return nil
}
