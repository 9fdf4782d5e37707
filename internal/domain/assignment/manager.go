// Package assignment es el único que modifica las relaciones animal↔owner y
// animal↔box (y el paso AVAILABLE↔OCCUPIED de un box). Cada operación corre
// dentro de Store.Atomic: se completa entera o no deja cambios.
package assignment

import (
	"context"
	"fmt"
	"time"

	"animal-facility/internal/domain/facility"
	"animal-facility/internal/platform/logger"
	"animal-facility/internal/platform/metrics"
)

type Manager struct {
	store   facility.Store
	log     logger.Logger
	metrics *metrics.Recorder
}

type Options struct {
	Logger  logger.Logger
	Metrics *metrics.Recorder
}

func NewManager(store facility.Store, opts Options) *Manager {
	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}
	return &Manager{
		store:   store,
		log:     log.With(map[string]any{"component": "assignment"}),
		metrics: opts.Metrics,
	}
}

// run envuelve fn en una transacción y registra la métrica de la operación.
func (m *Manager) run(ctx context.Context, op string, fn func(ctx context.Context, tx facility.Store) error) error {
	start := time.Now()
	err := m.store.Atomic(ctx, fn)
	m.metrics.Observe(op, start, err)
	if err != nil {
		m.log.Debug("operation failed", map[string]any{"op": op, "error": err.Error()})
	}
	return err
}

// AssignOwner deja a animalID con ownerID como dueño. Si tenía otro dueño,
// sale de la lista de ese dueño (el índice se deriva de Animal.OwnerID).
func (m *Manager) AssignOwner(ctx context.Context, animalID, ownerID string) error {
	return m.run(ctx, "assign_owner", func(ctx context.Context, tx facility.Store) error {
		a, err := tx.Animals().GetByID(ctx, animalID)
		if err != nil {
			return err
		}
		if _, err := tx.Owners().GetByID(ctx, ownerID); err != nil {
			return err
		}
		if a.OwnerID == ownerID {
			return nil
		}

		prev := a.OwnerID
		a.OwnerID = ownerID
		if err := tx.Animals().Update(ctx, a); err != nil {
			return err
		}
		m.log.Info("owner assigned", map[string]any{
			"animal_id":      animalID,
			"owner_id":       ownerID,
			"previous_owner": prev,
		})
		return nil
	})
}

// RemoveOwner es la inversa de AssignOwner. Solo limpia Animal.OwnerID si
// apunta a ownerID; si apunta a otro dueño no toca nada.
func (m *Manager) RemoveOwner(ctx context.Context, ownerID, animalID string) error {
	return m.run(ctx, "remove_owner", func(ctx context.Context, tx facility.Store) error {
		if _, err := tx.Owners().GetByID(ctx, ownerID); err != nil {
			return err
		}
		a, err := tx.Animals().GetByID(ctx, animalID)
		if err != nil {
			return err
		}
		if a.OwnerID != ownerID {
			return nil
		}

		a.OwnerID = ""
		if err := tx.Animals().Update(ctx, a); err != nil {
			return err
		}
		m.log.Info("owner removed", map[string]any{"animal_id": animalID, "owner_id": ownerID})
		return nil
	})
}

// AssignBox aloja al animal en boxID. Falla con ErrBoxUnavailable si el box no
// está AVAILABLE (OCCUPIED, MAINTENANCE o CLEANING) sin modificar nada. Si el
// animal ya ocupaba otro box, primero lo libera.
func (m *Manager) AssignBox(ctx context.Context, animalID, boxID string) error {
	return m.run(ctx, "assign_box", func(ctx context.Context, tx facility.Store) error {
		a, err := tx.Animals().GetByID(ctx, animalID)
		if err != nil {
			return err
		}
		b, err := tx.Boxes().GetByID(ctx, boxID)
		if err != nil {
			return err
		}
		if !b.IsAvailable() {
			return fmt.Errorf("%w: box %q is %s", facility.ErrBoxUnavailable, b.ID, b.Status)
		}

		if a.HasBox() {
			if err := release(ctx, tx, &a); err != nil {
				return err
			}
		}

		b.Status = facility.BoxOccupied
		if err := tx.Boxes().Update(ctx, b); err != nil {
			return err
		}
		a.BoxID = b.ID
		if err := tx.Animals().Update(ctx, a); err != nil {
			return err
		}

		m.log.Info("box assigned", map[string]any{"animal_id": animalID, "box_id": boxID})
		return nil
	})
}

// ReleaseBox saca al animal de su box; no hace nada si no tiene box.
// El box vuelve siempre a AVAILABLE.
func (m *Manager) ReleaseBox(ctx context.Context, animalID string) error {
	return m.run(ctx, "release_box", func(ctx context.Context, tx facility.Store) error {
		a, err := tx.Animals().GetByID(ctx, animalID)
		if err != nil {
			return err
		}
		if !a.HasBox() {
			return nil
		}

		boxID := a.BoxID
		if err := release(ctx, tx, &a); err != nil {
			return err
		}
		m.log.Info("box released", map[string]any{"animal_id": animalID, "box_id": boxID})
		return nil
	})
}

// release limpia ambos lados: animal sin box y box AVAILABLE sin ocupante.
// Primero el animal, así el box no queda referenciado al cambiar de estado.
func release(ctx context.Context, tx facility.Store, a *facility.Animal) error {
	boxID := a.BoxID
	a.BoxID = ""
	if err := tx.Animals().Update(ctx, *a); err != nil {
		return err
	}

	b, err := tx.Boxes().GetByID(ctx, boxID)
	if err != nil {
		return err
	}
	b.Status = facility.BoxAvailable
	return tx.Boxes().Update(ctx, b)
}
