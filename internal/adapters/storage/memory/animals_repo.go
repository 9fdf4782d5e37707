package memory

import (
	"context"

	"animal-facility/internal/domain/facility"
)

type animalRepo struct{ s *Store }

func (r animalRepo) GetByID(ctx context.Context, id string) (facility.Animal, error) {
	defer r.s.rlock()()

	a, ok := r.s.data.animals[id]
	if !ok {
		return facility.Animal{}, facility.NotFound("animal", id)
	}
	return r.s.data.hydrateAnimal(a), nil
}

func (r animalRepo) GetAll(ctx context.Context) ([]facility.Animal, error) {
	defer r.s.rlock()()

	out := make([]facility.Animal, 0, len(r.s.data.animals))
	for _, a := range r.s.data.animals {
		out = append(out, r.s.data.hydrateAnimal(a))
	}
	sortAnimals(out)
	return out, nil
}

// Save ignora a.Treatments: los tratamientos se persisten por TreatmentRepository.
func (r animalRepo) Save(ctx context.Context, a facility.Animal) (string, error) {
	defer r.s.lock()()

	d := r.s.data
	if a.ID == "" {
		a.ID = facility.NewID()
	}
	if _, exists := d.animals[a.ID]; exists {
		return "", facility.WrapStorage("animal", "save", errDuplicateID)
	}
	if err := d.checkRefs(a); err != nil {
		return "", facility.WrapStorage("animal", "save", err)
	}

	a.Treatments = nil
	a = copyAnimal(a)
	d.animals[a.ID] = a
	d.linkAnimal(facility.Animal{ID: a.ID}, a)
	return a.ID, nil
}

func (r animalRepo) Update(ctx context.Context, a facility.Animal) error {
	defer r.s.lock()()

	d := r.s.data
	if a.ID == "" {
		return facility.WrapStorage("animal", "update", errIDRequired)
	}
	prev, ok := d.animals[a.ID]
	if !ok {
		return facility.NotFound("animal", a.ID)
	}
	if err := d.checkRefs(a); err != nil {
		return facility.WrapStorage("animal", "update", err)
	}

	a.Treatments = nil
	a = copyAnimal(a)
	d.animals[a.ID] = a
	d.linkAnimal(prev, a)
	return nil
}

// Delete falla si el animal todavía tiene tratamientos (como la FK en SQL).
func (r animalRepo) Delete(ctx context.Context, id string) error {
	defer r.s.lock()()

	d := r.s.data
	prev, ok := d.animals[id]
	if !ok {
		return facility.NotFound("animal", id)
	}
	if len(d.animalTreatments[id]) > 0 {
		return facility.WrapStorage("animal", "delete", errHasDependent)
	}

	d.linkAnimal(prev, facility.Animal{ID: id})
	delete(d.animals, id)
	delete(d.animalTreatments, id)
	return nil
}
