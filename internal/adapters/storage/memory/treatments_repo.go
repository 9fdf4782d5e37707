package memory

import (
	"context"

	"animal-facility/internal/domain/facility"
)

type treatmentRepo struct{ s *Store }

func (r treatmentRepo) GetByID(ctx context.Context, id string) (facility.Treatment, error) {
	defer r.s.rlock()()

	t, ok := r.s.data.treatments[id]
	if !ok {
		return facility.Treatment{}, facility.NotFound("treatment", id)
	}
	return copyTreatment(t), nil
}

// GetAll agrupa por animal (orden de animal.GetAll) y respeta el orden de alta.
func (r treatmentRepo) GetAll(ctx context.Context) ([]facility.Treatment, error) {
	defer r.s.rlock()()

	d := r.s.data
	animals := make([]facility.Animal, 0, len(d.animals))
	for _, a := range d.animals {
		animals = append(animals, a)
	}
	sortAnimals(animals)

	out := make([]facility.Treatment, 0, len(d.treatments))
	for _, a := range animals {
		for _, id := range d.animalTreatments[a.ID] {
			out = append(out, copyTreatment(d.treatments[id]))
		}
	}
	return out, nil
}

func (r treatmentRepo) ListByAnimal(ctx context.Context, animalID string) ([]facility.Treatment, error) {
	defer r.s.rlock()()

	d := r.s.data
	ids := d.animalTreatments[animalID]
	out := make([]facility.Treatment, 0, len(ids))
	for _, id := range ids {
		out = append(out, copyTreatment(d.treatments[id]))
	}
	return out, nil
}

func (r treatmentRepo) Save(ctx context.Context, t facility.Treatment) (string, error) {
	defer r.s.lock()()

	d := r.s.data
	if t.ID == "" {
		t.ID = facility.NewID()
	}
	if _, exists := d.treatments[t.ID]; exists {
		return "", facility.WrapStorage("treatment", "save", errDuplicateID)
	}
	if _, ok := d.animals[t.AnimalID]; !ok {
		return "", facility.WrapStorage("treatment", "save", errUnknownRef)
	}

	d.treatments[t.ID] = copyTreatment(t)
	d.animalTreatments[t.AnimalID] = append(d.animalTreatments[t.AnimalID], t.ID)
	return t.ID, nil
}

// Update conserva la posición; si cambia el animal, pasa al final de la lista del nuevo.
func (r treatmentRepo) Update(ctx context.Context, t facility.Treatment) error {
	defer r.s.lock()()

	d := r.s.data
	if t.ID == "" {
		return facility.WrapStorage("treatment", "update", errIDRequired)
	}
	prev, ok := d.treatments[t.ID]
	if !ok {
		return facility.NotFound("treatment", t.ID)
	}
	if prev.AnimalID != t.AnimalID {
		if _, ok := d.animals[t.AnimalID]; !ok {
			return facility.WrapStorage("treatment", "update", errUnknownRef)
		}
		d.animalTreatments[prev.AnimalID] = without(d.animalTreatments[prev.AnimalID], t.ID)
		d.animalTreatments[t.AnimalID] = append(d.animalTreatments[t.AnimalID], t.ID)
	}
	d.treatments[t.ID] = copyTreatment(t)
	return nil
}

func (r treatmentRepo) Delete(ctx context.Context, id string) error {
	defer r.s.lock()()

	d := r.s.data
	t, ok := d.treatments[id]
	if !ok {
		return facility.NotFound("treatment", id)
	}
	d.animalTreatments[t.AnimalID] = without(d.animalTreatments[t.AnimalID], id)
	delete(d.treatments, id)
	return nil
}

// DeleteByAnimal no falla si el animal no tiene tratamientos.
func (r treatmentRepo) DeleteByAnimal(ctx context.Context, animalID string) error {
	defer r.s.lock()()

	d := r.s.data
	for _, id := range d.animalTreatments[animalID] {
		delete(d.treatments, id)
	}
	delete(d.animalTreatments, animalID)
	return nil
}
