package facility

import "context"

// Contrato con el colaborador de persistencia. El core no conoce la tecnología
// de almacenamiento; las fallas de I/O llegan como *StorageError.
//
// Save asigna un ID (UUIDv7) cuando viene vacío y lo devuelve.
// Update y Delete devuelven ErrNotFound si no afectaron ningún registro.

type AnimalRepository interface {
	GetByID(ctx context.Context, id string) (Animal, error)
	GetAll(ctx context.Context) ([]Animal, error)
	Save(ctx context.Context, a Animal) (string, error)
	Update(ctx context.Context, a Animal) error
	Delete(ctx context.Context, id string) error
}

type OwnerRepository interface {
	GetByID(ctx context.Context, id string) (Owner, error)
	GetAll(ctx context.Context) ([]Owner, error)
	Save(ctx context.Context, o Owner) (string, error)
	Update(ctx context.Context, o Owner) error
	Delete(ctx context.Context, id string) error
}

type BoxRepository interface {
	GetByID(ctx context.Context, id string) (Box, error)
	GetAll(ctx context.Context) ([]Box, error)
	Save(ctx context.Context, b Box) (string, error)
	Update(ctx context.Context, b Box) error
	Delete(ctx context.Context, id string) error
}

type TreatmentRepository interface {
	GetByID(ctx context.Context, id string) (Treatment, error)
	GetAll(ctx context.Context) ([]Treatment, error)
	ListByAnimal(ctx context.Context, animalID string) ([]Treatment, error)
	Save(ctx context.Context, t Treatment) (string, error)
	Update(ctx context.Context, t Treatment) error
	Delete(ctx context.Context, id string) error
	DeleteByAnimal(ctx context.Context, animalID string) error
}

// Store agrupa los repositorios. Atomic ejecuta fn contra una vista cuyas
// escrituras se aplican todas juntas o ninguna; si fn devuelve error el
// estado queda como estaba. Llamadas anidadas reutilizan la misma vista.
type Store interface {
	Animals() AnimalRepository
	Owners() OwnerRepository
	Boxes() BoxRepository
	Treatments() TreatmentRepository

	Atomic(ctx context.Context, fn func(ctx context.Context, tx Store) error) error
}
