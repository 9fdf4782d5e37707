package assignment

import (
	"context"
	"fmt"

	"animal-facility/internal/domain/facility"
)

// DeleteAnimal borra en orden: tratamientos, box (queda AVAILABLE), dueño y
// por último el animal. Los dependientes se limpian antes que el padre.
func (m *Manager) DeleteAnimal(ctx context.Context, animalID string) error {
	return m.run(ctx, "delete_animal", func(ctx context.Context, tx facility.Store) error {
		a, err := tx.Animals().GetByID(ctx, animalID)
		if err != nil {
			return err
		}

		if err := tx.Treatments().DeleteByAnimal(ctx, a.ID); err != nil {
			return err
		}
		if a.HasBox() {
			if err := release(ctx, tx, &a); err != nil {
				return err
			}
		}
		if a.HasOwner() {
			a.OwnerID = ""
			if err := tx.Animals().Update(ctx, a); err != nil {
				return err
			}
		}
		if err := tx.Animals().Delete(ctx, a.ID); err != nil {
			return err
		}

		m.log.Info("animal deleted", map[string]any{
			"animal_id":  a.ID,
			"treatments": len(a.Treatments),
		})
		return nil
	})
}

// DeleteBox rechaza con ErrBoxOccupied un box OCCUPIED; box y ocupante quedan igual.
func (m *Manager) DeleteBox(ctx context.Context, boxID string) error {
	return m.run(ctx, "delete_box", func(ctx context.Context, tx facility.Store) error {
		b, err := tx.Boxes().GetByID(ctx, boxID)
		if err != nil {
			return err
		}
		if b.Status == facility.BoxOccupied || b.CurrentAnimalID != "" {
			return fmt.Errorf("%w: box %q holds animal %q", facility.ErrBoxOccupied, b.ID, b.CurrentAnimalID)
		}
		if err := tx.Boxes().Delete(ctx, b.ID); err != nil {
			return err
		}

		m.log.Info("box deleted", map[string]any{"box_id": b.ID})
		return nil
	})
}

// DeleteOwner limpia OwnerID de sus animales (no se borran) y borra al dueño.
func (m *Manager) DeleteOwner(ctx context.Context, ownerID string) error {
	return m.run(ctx, "delete_owner", func(ctx context.Context, tx facility.Store) error {
		o, err := tx.Owners().GetByID(ctx, ownerID)
		if err != nil {
			return err
		}

		for _, animalID := range o.AnimalIDs {
			a, err := tx.Animals().GetByID(ctx, animalID)
			if err != nil {
				return err
			}
			a.OwnerID = ""
			if err := tx.Animals().Update(ctx, a); err != nil {
				return err
			}
		}
		if err := tx.Owners().Delete(ctx, o.ID); err != nil {
			return err
		}

		m.log.Info("owner deleted", map[string]any{"owner_id": o.ID, "released_animals": len(o.AnimalIDs)})
		return nil
	})
}
