package facility

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound       = errors.New("not found")
	ErrBoxUnavailable = errors.New("box unavailable")
	ErrBoxOccupied    = errors.New("box occupied")
	ErrValidation     = errors.New("validation failed")
	ErrStorage        = errors.New("storage error")
)

// NotFound envuelve ErrNotFound con la entidad y el id buscados.
func NotFound(entity, id string) error {
	return fmt.Errorf("%w: %s %q", ErrNotFound, entity, id)
}

// StorageError reporta una falla de I/O del colaborador de persistencia.
// Es opaca para el core: solo se propaga.
type StorageError struct {
	Entity string // "animal", "owner", "box", "treatment"
	Op     string // "get", "list", "save", "update", "delete", "tx"
	Err    error
}

func (e *StorageError) Error() string {
	if e.Entity == "" {
		return fmt.Sprintf("storage %s failed: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("storage %s %s failed: %v", e.Op, e.Entity, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

// Is permite errors.Is(err, ErrStorage) sobre cualquier StorageError.
func (e *StorageError) Is(target error) bool { return target == ErrStorage }

// WrapStorage devuelve nil si err es nil. Errores del dominio (NotFound, etc.)
// pasan sin envolver para que el llamador pueda distinguirlos.
func WrapStorage(entity, op string, err error) error {
	if err == nil {
		return nil
	}
	var se *StorageError
	if errors.As(err, &se) || errors.Is(err, ErrNotFound) || errors.Is(err, ErrValidation) {
		return err
	}
	return &StorageError{Entity: entity, Op: op, Err: err}
}
