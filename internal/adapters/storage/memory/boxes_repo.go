package memory

import (
	"context"

	"animal-facility/internal/domain/facility"
)

type boxRepo struct{ s *Store }

func (r boxRepo) GetByID(ctx context.Context, id string) (facility.Box, error) {
	defer r.s.rlock()()

	b, ok := r.s.data.boxes[id]
	if !ok {
		return facility.Box{}, facility.NotFound("box", id)
	}
	return r.s.data.hydrateBox(b), nil
}

func (r boxRepo) GetAll(ctx context.Context) ([]facility.Box, error) {
	defer r.s.rlock()()

	out := make([]facility.Box, 0, len(r.s.data.boxes))
	for _, b := range r.s.data.boxes {
		out = append(out, r.s.data.hydrateBox(b))
	}
	sortBoxes(out)
	return out, nil
}

// Save y Update ignoran b.CurrentAnimalID: se deriva de Animal.BoxID.
func (r boxRepo) Save(ctx context.Context, b facility.Box) (string, error) {
	defer r.s.lock()()

	if b.ID == "" {
		b.ID = facility.NewID()
	}
	if _, exists := r.s.data.boxes[b.ID]; exists {
		return "", facility.WrapStorage("box", "save", errDuplicateID)
	}
	b.CurrentAnimalID = ""
	r.s.data.boxes[b.ID] = b
	return b.ID, nil
}

func (r boxRepo) Update(ctx context.Context, b facility.Box) error {
	defer r.s.lock()()

	if b.ID == "" {
		return facility.WrapStorage("box", "update", errIDRequired)
	}
	if _, ok := r.s.data.boxes[b.ID]; !ok {
		return facility.NotFound("box", b.ID)
	}
	b.CurrentAnimalID = ""
	r.s.data.boxes[b.ID] = b
	return nil
}

func (r boxRepo) Delete(ctx context.Context, id string) error {
	defer r.s.lock()()

	if _, ok := r.s.data.boxes[id]; !ok {
		return facility.NotFound("box", id)
	}
	if _, held := r.s.data.boxAnimal[id]; held {
		return facility.WrapStorage("box", "delete", errHasDependent)
	}
	delete(r.s.data.boxes, id)
	return nil
}
