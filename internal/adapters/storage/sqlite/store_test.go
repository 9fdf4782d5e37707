package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"animal-facility/internal/adapters/storage/sqldb"
	"animal-facility/internal/domain/facility"
	"animal-facility/internal/platform/logger"
)

func openTestStore(t *testing.T) *sqldb.Store {
	t.Helper()
	store, err := Open(context.Background(), filepath.Join(t.TempDir(), "facility.db"), logger.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestOpen_ReopenKeepsData(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "facility.db")

	store, err := Open(ctx, path, logger.Nop())
	require.NoError(t, err)
	id, err := store.Owners().Save(ctx, facility.Owner{FirstName: "Ana", LastName: "Ruiz"})
	require.NoError(t, err)
	require.NoError(t, store.Close())

	store, err = Open(ctx, path, logger.Nop())
	require.NoError(t, err)
	defer store.Close()

	o, err := store.Owners().GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Ruiz", o.LastName)
}

func TestAnimalRoundTrip(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	birth := facility.Date(2020, 6, 1)
	id, err := store.Animals().Save(ctx, facility.Animal{
		Name: "Rex", Species: "dog", Breed: "mixed", Gender: facility.GenderMale, BirthDate: &birth,
	})
	require.NoError(t, err)
	require.NotEmpty(t, id)

	a, err := store.Animals().GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Rex", a.Name)
	assert.Equal(t, facility.GenderMale, a.Gender)
	require.NotNil(t, a.BirthDate)
	assert.Equal(t, birth, *a.BirthDate)
	assert.Empty(t, a.OwnerID)
	assert.Empty(t, a.BoxID)
	assert.Empty(t, a.Treatments)
}

func TestNotFound(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	_, err := store.Animals().GetByID(ctx, "missing")
	assert.ErrorIs(t, err, facility.ErrNotFound)
	_, err = store.Boxes().GetByID(ctx, "missing")
	assert.ErrorIs(t, err, facility.ErrNotFound)

	err = store.Owners().Update(ctx, facility.Owner{ID: "missing", FirstName: "A", LastName: "B"})
	assert.ErrorIs(t, err, facility.ErrNotFound)
	err = store.Animals().Update(ctx, facility.Animal{ID: "missing", Name: "x", Species: "y", Gender: facility.GenderUnknown})
	assert.ErrorIs(t, err, facility.ErrNotFound)
	assert.ErrorIs(t, store.Treatments().Delete(ctx, "missing"), facility.ErrNotFound)
}

func TestDerivedIndices(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	ownerID, err := store.Owners().Save(ctx, facility.Owner{FirstName: "Ana", LastName: "Ruiz"})
	require.NoError(t, err)
	boxID, err := store.Boxes().Save(ctx, facility.Box{Name: "B1", Status: facility.BoxAvailable})
	require.NoError(t, err)

	var ids []string
	for _, n := range []string{"Zoe", "Max"} {
		id, err := store.Animals().Save(ctx, facility.Animal{Name: n, Species: "cat", Gender: facility.GenderUnknown})
		require.NoError(t, err)
		a, err := store.Animals().GetByID(ctx, id)
		require.NoError(t, err)
		a.OwnerID = ownerID
		require.NoError(t, store.Animals().Update(ctx, a))
		ids = append(ids, id)
	}

	a, err := store.Animals().GetByID(ctx, ids[0])
	require.NoError(t, err)
	a.BoxID = boxID
	require.NoError(t, store.Animals().Update(ctx, a))

	o, err := store.Owners().GetByID(ctx, ownerID)
	require.NoError(t, err)
	assert.Equal(t, ids, o.AnimalIDs, "assignment order, not name order")

	owners, err := store.Owners().GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, owners, 1)
	assert.Equal(t, ids, owners[0].AnimalIDs)

	b, err := store.Boxes().GetByID(ctx, boxID)
	require.NoError(t, err)
	assert.Equal(t, ids[0], b.CurrentAnimalID)

	// el box no puede alojar un segundo animal
	other, err := store.Animals().GetByID(ctx, ids[1])
	require.NoError(t, err)
	other.BoxID = boxID
	assert.ErrorIs(t, store.Animals().Update(ctx, other), facility.ErrStorage)
}

func TestForeignKeys(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	_, err := store.Treatments().Save(ctx, facility.Treatment{
		AnimalID: "ghost", Type: facility.TreatmentCheckup, Name: "x",
	})
	assert.ErrorIs(t, err, facility.ErrStorage)

	_, err = store.Animals().Save(ctx, facility.Animal{
		Name: "Rex", Species: "dog", Gender: facility.GenderMale, OwnerID: "ghost",
	})
	assert.ErrorIs(t, err, facility.ErrStorage)
}

func TestTreatments_OrderDatesAndCascadeGuard(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	animalID, err := store.Animals().Save(ctx, facility.Animal{Name: "Rex", Species: "dog", Gender: facility.GenderMale})
	require.NoError(t, err)

	due := facility.Date(2024, 1, 10)
	given := facility.Date(2023, 1, 10)
	names := []string{"Rabies", "Parvo", "Annual"}
	for i, n := range names {
		tr := facility.Treatment{AnimalID: animalID, Type: facility.TreatmentVaccine, Name: n}
		if i == 0 {
			tr.NextDueDate = &due
			tr.AdministrationDate = &given
			tr.Administered = true
		}
		_, err := store.Treatments().Save(ctx, tr)
		require.NoError(t, err)
	}

	a, err := store.Animals().GetByID(ctx, animalID)
	require.NoError(t, err)
	require.Len(t, a.Treatments, 3)
	for i, n := range names {
		assert.Equal(t, n, a.Treatments[i].Name)
	}
	first := a.Treatments[0]
	require.NotNil(t, first.NextDueDate)
	assert.Equal(t, due, *first.NextDueDate)
	assert.Equal(t, given, *first.AdministrationDate)
	assert.True(t, first.Administered)
	assert.Nil(t, a.Treatments[1].NextDueDate)
	assert.False(t, a.Treatments[1].Administered)

	// Update no cambia la posición
	first.Name = "Rabies booster"
	require.NoError(t, store.Treatments().Update(ctx, first))
	list, err := store.Treatments().ListByAnimal(ctx, animalID)
	require.NoError(t, err)
	assert.Equal(t, "Rabies booster", list[0].Name)

	all, err := store.Animals().GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Len(t, all[0].Treatments, 3)

	assert.ErrorIs(t, store.Animals().Delete(ctx, animalID), facility.ErrStorage)
	require.NoError(t, store.Treatments().DeleteByAnimal(ctx, animalID))
	require.NoError(t, store.Animals().Delete(ctx, animalID))
}

func TestAtomic_Rollback(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	boom := errors.New("boom")
	var ownerID string
	err := store.Atomic(ctx, func(ctx context.Context, tx facility.Store) error {
		var err error
		ownerID, err = tx.Owners().Save(ctx, facility.Owner{FirstName: "A", LastName: "B"})
		if err != nil {
			return err
		}
		return tx.Atomic(ctx, func(ctx context.Context, tx facility.Store) error {
			if _, err := tx.Owners().GetByID(ctx, ownerID); err != nil {
				return err
			}
			return boom
		})
	})
	require.ErrorIs(t, err, boom)

	_, err = store.Owners().GetByID(ctx, ownerID)
	assert.ErrorIs(t, err, facility.ErrNotFound)
}

func TestAtomic_Commit(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	var boxID string
	err := store.Atomic(ctx, func(ctx context.Context, tx facility.Store) error {
		var err error
		boxID, err = tx.Boxes().Save(ctx, facility.Box{Name: "B1", Status: facility.BoxCleaning})
		return err
	})
	require.NoError(t, err)

	b, err := store.Boxes().GetByID(ctx, boxID)
	require.NoError(t, err)
	assert.Equal(t, facility.BoxCleaning, b.Status)
}
