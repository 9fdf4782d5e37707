package memory

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"animal-facility/internal/domain/facility"
)

var (
	errIDRequired   = errors.New("id required")
	errDuplicateID  = errors.New("already exists")
	errBoxTaken     = errors.New("box already holds another animal")
	errUnknownRef   = errors.New("referenced record does not exist")
	errHasDependent = errors.New("record is still referenced")
)

// Store es la arena en memoria: entidades por id y los índices derivados
// owner→animales y box→animal. Las relaciones se guardan solo en el animal
// (OwnerID, BoxID); Owner.AnimalIDs y Box.CurrentAnimalID se hidratan de los índices.
type Store struct {
	mu   *sync.RWMutex
	data *dataset

	// dentro de Atomic el lock ya lo tiene la transacción externa
	inTx bool
}

var _ facility.Store = (*Store)(nil)

func NewStore() *Store {
	return &Store{
		mu:   &sync.RWMutex{},
		data: newDataset(),
	}
}

func (s *Store) Animals() facility.AnimalRepository       { return animalRepo{s} }
func (s *Store) Owners() facility.OwnerRepository         { return ownerRepo{s} }
func (s *Store) Boxes() facility.BoxRepository            { return boxRepo{s} }
func (s *Store) Treatments() facility.TreatmentRepository { return treatmentRepo{s} }

// Atomic trabaja sobre una copia del dataset y la publica solo si fn no falla.
func (s *Store) Atomic(ctx context.Context, fn func(ctx context.Context, tx facility.Store) error) error {
	if s.inTx {
		return fn(ctx, s)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	work := s.data.clone()
	tx := &Store{mu: s.mu, data: work, inTx: true}
	if err := fn(ctx, tx); err != nil {
		return err
	}
	s.data = work
	return nil
}

func (s *Store) rlock() func() {
	if s.inTx {
		return func() {}
	}
	s.mu.RLock()
	return s.mu.RUnlock
}

func (s *Store) lock() func() {
	if s.inTx {
		return func() {}
	}
	s.mu.Lock()
	return s.mu.Unlock
}

type dataset struct {
	animals    map[string]facility.Animal
	owners     map[string]facility.Owner
	boxes      map[string]facility.Box
	treatments map[string]facility.Treatment

	ownerAnimals     map[string][]string // owner → animales, en orden de asignación
	boxAnimal        map[string]string   // box → animal
	animalTreatments map[string][]string // animal → tratamientos, en orden de alta
}

func newDataset() *dataset {
	return &dataset{
		animals:          make(map[string]facility.Animal),
		owners:           make(map[string]facility.Owner),
		boxes:            make(map[string]facility.Box),
		treatments:       make(map[string]facility.Treatment),
		ownerAnimals:     make(map[string][]string),
		boxAnimal:        make(map[string]string),
		animalTreatments: make(map[string][]string),
	}
}

func (d *dataset) clone() *dataset {
	out := newDataset()
	for k, v := range d.animals {
		out.animals[k] = v
	}
	for k, v := range d.owners {
		out.owners[k] = v
	}
	for k, v := range d.boxes {
		out.boxes[k] = v
	}
	for k, v := range d.treatments {
		out.treatments[k] = v
	}
	for k, v := range d.ownerAnimals {
		out.ownerAnimals[k] = append([]string(nil), v...)
	}
	for k, v := range d.boxAnimal {
		out.boxAnimal[k] = v
	}
	for k, v := range d.animalTreatments {
		out.animalTreatments[k] = append([]string(nil), v...)
	}
	return out
}

// linkAnimal actualiza los índices cuando cambian OwnerID/BoxID de un animal.
func (d *dataset) linkAnimal(prev, next facility.Animal) {
	if prev.OwnerID != next.OwnerID {
		if prev.OwnerID != "" {
			d.ownerAnimals[prev.OwnerID] = without(d.ownerAnimals[prev.OwnerID], next.ID)
		}
		if next.OwnerID != "" {
			d.ownerAnimals[next.OwnerID] = append(d.ownerAnimals[next.OwnerID], next.ID)
		}
	}
	if prev.BoxID != next.BoxID {
		if prev.BoxID != "" && d.boxAnimal[prev.BoxID] == next.ID {
			delete(d.boxAnimal, prev.BoxID)
		}
		if next.BoxID != "" {
			d.boxAnimal[next.BoxID] = next.ID
		}
	}
}

// checkRefs valida referencias como lo haría una FK + UNIQUE(box_id).
func (d *dataset) checkRefs(a facility.Animal) error {
	if a.OwnerID != "" {
		if _, ok := d.owners[a.OwnerID]; !ok {
			return errUnknownRef
		}
	}
	if a.BoxID != "" {
		if _, ok := d.boxes[a.BoxID]; !ok {
			return errUnknownRef
		}
		if holder, ok := d.boxAnimal[a.BoxID]; ok && holder != a.ID {
			return errBoxTaken
		}
	}
	return nil
}

func (d *dataset) hydrateAnimal(a facility.Animal) facility.Animal {
	ids := d.animalTreatments[a.ID]
	a.Treatments = make([]facility.Treatment, 0, len(ids))
	for _, id := range ids {
		a.Treatments = append(a.Treatments, copyTreatment(d.treatments[id]))
	}
	return copyAnimal(a)
}

func (d *dataset) hydrateOwner(o facility.Owner) facility.Owner {
	o.AnimalIDs = append([]string{}, d.ownerAnimals[o.ID]...)
	return o
}

func (d *dataset) hydrateBox(b facility.Box) facility.Box {
	b.CurrentAnimalID = d.boxAnimal[b.ID]
	return b
}

func without(ids []string, id string) []string {
	out := ids[:0:0]
	for _, v := range ids {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}

func copyTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	c := *t
	return &c
}

func copyAnimal(a facility.Animal) facility.Animal {
	a.BirthDate = copyTime(a.BirthDate)
	return a
}

func copyTreatment(t facility.Treatment) facility.Treatment {
	t.AdministrationDate = copyTime(t.AdministrationDate)
	t.NextDueDate = copyTime(t.NextDueDate)
	return t
}

// Orden estable para GetAll (el orden de los maps no lo es).
func sortAnimals(in []facility.Animal) {
	sort.Slice(in, func(i, j int) bool {
		if in[i].Name != in[j].Name {
			return in[i].Name < in[j].Name
		}
		return in[i].ID < in[j].ID
	})
}

func sortOwners(in []facility.Owner) {
	sort.Slice(in, func(i, j int) bool {
		if in[i].LastName != in[j].LastName {
			return in[i].LastName < in[j].LastName
		}
		if in[i].FirstName != in[j].FirstName {
			return in[i].FirstName < in[j].FirstName
		}
		return in[i].ID < in[j].ID
	})
}

func sortBoxes(in []facility.Box) {
	sort.Slice(in, func(i, j int) bool {
		if in[i].Name != in[j].Name {
			return in[i].Name < in[j].Name
		}
		return in[i].ID < in[j].ID
	})
}
