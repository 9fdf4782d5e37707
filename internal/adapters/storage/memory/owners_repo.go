package memory

import (
	"context"

	"animal-facility/internal/domain/facility"
)

type ownerRepo struct{ s *Store }

func (r ownerRepo) GetByID(ctx context.Context, id string) (facility.Owner, error) {
	defer r.s.rlock()()

	o, ok := r.s.data.owners[id]
	if !ok {
		return facility.Owner{}, facility.NotFound("owner", id)
	}
	return r.s.data.hydrateOwner(o), nil
}

func (r ownerRepo) GetAll(ctx context.Context) ([]facility.Owner, error) {
	defer r.s.rlock()()

	out := make([]facility.Owner, 0, len(r.s.data.owners))
	for _, o := range r.s.data.owners {
		out = append(out, r.s.data.hydrateOwner(o))
	}
	sortOwners(out)
	return out, nil
}

// Save y Update ignoran o.AnimalIDs: el índice se deriva de Animal.OwnerID.
func (r ownerRepo) Save(ctx context.Context, o facility.Owner) (string, error) {
	defer r.s.lock()()

	if o.ID == "" {
		o.ID = facility.NewID()
	}
	if _, exists := r.s.data.owners[o.ID]; exists {
		return "", facility.WrapStorage("owner", "save", errDuplicateID)
	}
	o.AnimalIDs = nil
	r.s.data.owners[o.ID] = o
	return o.ID, nil
}

func (r ownerRepo) Update(ctx context.Context, o facility.Owner) error {
	defer r.s.lock()()

	if o.ID == "" {
		return facility.WrapStorage("owner", "update", errIDRequired)
	}
	if _, ok := r.s.data.owners[o.ID]; !ok {
		return facility.NotFound("owner", o.ID)
	}
	o.AnimalIDs = nil
	r.s.data.owners[o.ID] = o
	return nil
}

func (r ownerRepo) Delete(ctx context.Context, id string) error {
	defer r.s.lock()()

	if _, ok := r.s.data.owners[id]; !ok {
		return facility.NotFound("owner", id)
	}
	if len(r.s.data.ownerAnimals[id]) > 0 {
		return facility.WrapStorage("owner", "delete", errHasDependent)
	}
	delete(r.s.data.owners, id)
	delete(r.s.data.ownerAnimals, id)
	return nil
}
