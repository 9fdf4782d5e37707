package registry

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"animal-facility/internal/adapters/storage/memory"
	"animal-facility/internal/domain/assignment"
	"animal-facility/internal/domain/facility"
)

func newService() (*Service, *memory.Store) {
	store := memory.NewStore()
	return NewService(store, Options{}), store
}

func TestCreateAnimal_TrimsAndDefaults(t *testing.T) {
	s, _ := newService()
	ctx := context.Background()

	birth := time.Date(2020, 6, 1, 18, 30, 0, 0, time.UTC)
	a, err := s.CreateAnimal(ctx, AnimalInput{Name: "  Rex ", Species: " dog", BirthDate: &birth})
	require.NoError(t, err)

	assert.NotEmpty(t, a.ID)
	assert.Equal(t, "Rex", a.Name)
	assert.Equal(t, "dog", a.Species)
	assert.Equal(t, facility.GenderUnknown, a.Gender)
	assert.Equal(t, facility.Date(2020, 6, 1), *a.BirthDate)
	assert.False(t, a.HasOwner())
	assert.False(t, a.HasBox())
	assert.Empty(t, a.Treatments)

	got, err := s.GetAnimal(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, a, got)
}

func TestCreateAnimal_Validation(t *testing.T) {
	s, _ := newService()
	ctx := context.Background()

	cases := []AnimalInput{
		{Name: "", Species: "dog"},
		{Name: "Rex", Species: "   "},
		{Name: "Rex", Species: "dog", Gender: "robot"},
	}
	for _, in := range cases {
		_, err := s.CreateAnimal(ctx, in)
		assert.ErrorIs(t, err, facility.ErrValidation, "input %+v", in)
	}

	all, err := s.ListAnimals(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestUpdateAnimal_KeepsRelationships(t *testing.T) {
	s, store := newService()
	ctx := context.Background()
	m := assignment.NewManager(store, assignment.Options{})

	a, err := s.CreateAnimal(ctx, AnimalInput{Name: "Rex", Species: "dog", Gender: "male"})
	require.NoError(t, err)
	o, err := s.CreateOwner(ctx, OwnerInput{FirstName: "Ana", LastName: "Ruiz"})
	require.NoError(t, err)
	require.NoError(t, m.AssignOwner(ctx, a.ID, o.ID))

	updated, err := s.UpdateAnimal(ctx, a.ID, AnimalInput{Name: "Rex II", Species: "dog", Gender: "MALE"})
	require.NoError(t, err)
	assert.Equal(t, "Rex II", updated.Name)
	assert.Equal(t, o.ID, updated.OwnerID)

	_, err = s.UpdateAnimal(ctx, "ghost", AnimalInput{Name: "x", Species: "y"})
	assert.ErrorIs(t, err, facility.ErrNotFound)

	_, err = s.UpdateAnimal(ctx, a.ID, AnimalInput{Name: "", Species: "dog"})
	assert.ErrorIs(t, err, facility.ErrValidation)
	got, err := s.GetAnimal(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, "Rex II", got.Name)
}

func TestOwners(t *testing.T) {
	s, _ := newService()
	ctx := context.Background()

	_, err := s.CreateOwner(ctx, OwnerInput{FirstName: "Ana", LastName: "Ruiz", Email: "not-an-email"})
	assert.ErrorIs(t, err, facility.ErrValidation)
	_, err = s.CreateOwner(ctx, OwnerInput{FirstName: "Ana"})
	assert.ErrorIs(t, err, facility.ErrValidation)

	o, err := s.CreateOwner(ctx, OwnerInput{FirstName: " Ana ", LastName: "Ruiz", Email: "ana@example.com"})
	require.NoError(t, err)
	assert.Equal(t, "Ana Ruiz", facility.FullName(o))

	o, err = s.UpdateOwner(ctx, o.ID, OwnerInput{FirstName: "Ana", LastName: "Ruiz", Phone: "555-0101"})
	require.NoError(t, err)
	assert.Equal(t, "555-0101", o.Phone)
	assert.Empty(t, o.Email)

	_, err = s.CreateOwner(ctx, OwnerInput{FirstName: "Bea", LastName: "Alvarez"})
	require.NoError(t, err)
	owners, err := s.ListOwners(ctx)
	require.NoError(t, err)
	require.Len(t, owners, 2)
	assert.Equal(t, "Alvarez", owners[0].LastName)
}

func TestBoxes_StatusRules(t *testing.T) {
	s, store := newService()
	ctx := context.Background()
	m := assignment.NewManager(store, assignment.Options{})

	_, err := s.CreateBox(ctx, BoxInput{Name: "B0", Status: "OCCUPIED"})
	assert.ErrorIs(t, err, facility.ErrValidation)
	_, err = s.CreateBox(ctx, BoxInput{Name: "B0", Status: "flooded"})
	assert.ErrorIs(t, err, facility.ErrValidation)
	_, err = s.CreateBox(ctx, BoxInput{Name: " "})
	assert.ErrorIs(t, err, facility.ErrValidation)

	b1, err := s.CreateBox(ctx, BoxInput{Name: "B1", Location: "North"})
	require.NoError(t, err)
	assert.Equal(t, facility.BoxAvailable, b1.Status)
	b2, err := s.CreateBox(ctx, BoxInput{Name: "B2", Status: "cleaning"})
	require.NoError(t, err)
	assert.Equal(t, facility.BoxCleaning, b2.Status)

	avail, err := s.ListAvailableBoxes(ctx)
	require.NoError(t, err)
	require.Len(t, avail, 1)
	assert.Equal(t, b1.ID, avail[0].ID)

	// CLEANING → AVAILABLE habilita la asignación
	a, err := s.CreateAnimal(ctx, AnimalInput{Name: "Rex", Species: "dog"})
	require.NoError(t, err)
	assert.ErrorIs(t, m.AssignBox(ctx, a.ID, b2.ID), facility.ErrBoxUnavailable)
	_, err = s.SetBoxStatus(ctx, b2.ID, "AVAILABLE")
	require.NoError(t, err)
	require.NoError(t, m.AssignBox(ctx, a.ID, b2.ID))

	// un box ocupado no cambia de estado a mano
	_, err = s.SetBoxStatus(ctx, b2.ID, "MAINTENANCE")
	assert.ErrorIs(t, err, facility.ErrBoxOccupied)
	_, err = s.SetBoxStatus(ctx, b1.ID, "OCCUPIED")
	assert.ErrorIs(t, err, facility.ErrValidation)

	b, err := s.UpdateBox(ctx, b2.ID, "B2-renamed", "South")
	require.NoError(t, err)
	assert.Equal(t, facility.BoxOccupied, b.Status)
	assert.Equal(t, a.ID, b.CurrentAnimalID)

	_, err = s.SetBoxStatus(ctx, "ghost", "CLEANING")
	assert.ErrorIs(t, err, facility.ErrNotFound)
}

func TestTreatmentsAndOverdue(t *testing.T) {
	s, _ := newService()
	ctx := context.Background()

	rex, err := s.CreateAnimal(ctx, AnimalInput{Name: "Rex", Species: "dog"})
	require.NoError(t, err)
	tom, err := s.CreateAnimal(ctx, AnimalInput{Name: "Tom", Species: "cat"})
	require.NoError(t, err)

	due := facility.Date(2023, 1, 1)
	tr, err := s.AddTreatment(ctx, rex.ID, TreatmentInput{Type: "vaccine", Name: "Rabies", NextDueDate: &due})
	require.NoError(t, err)
	assert.False(t, tr.Administered)
	assert.Nil(t, tr.AdministrationDate)

	future := facility.Date(2030, 1, 1)
	_, err = s.AddTreatment(ctx, tom.ID, TreatmentInput{Type: "DEWORMING", Name: "Pill", NextDueDate: &future})
	require.NoError(t, err)

	_, err = s.AddTreatment(ctx, "ghost", TreatmentInput{Type: "CHECKUP", Name: "x"})
	assert.ErrorIs(t, err, facility.ErrNotFound)
	_, err = s.AddTreatment(ctx, rex.ID, TreatmentInput{Type: "SURGERY", Name: "x"})
	assert.ErrorIs(t, err, facility.ErrValidation)
	_, err = s.AddTreatment(ctx, rex.ID, TreatmentInput{Type: "CHECKUP"})
	assert.ErrorIs(t, err, facility.ErrValidation)

	overdue, err := s.AnimalsWithOverdueTreatments(ctx, facility.Date(2023, 6, 1))
	require.NoError(t, err)
	require.Len(t, overdue, 1)
	assert.Equal(t, rex.ID, overdue[0].ID)

	list, err := s.ListTreatments(ctx, rex.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)

	require.NoError(t, s.DeleteTreatment(ctx, tr.ID))
	_, err = s.GetTreatment(ctx, tr.ID)
	assert.ErrorIs(t, err, facility.ErrNotFound)
	assert.ErrorIs(t, s.DeleteTreatment(ctx, tr.ID), facility.ErrNotFound)

	overdue, err = s.AnimalsWithOverdueTreatments(ctx, facility.Date(2023, 6, 1))
	require.NoError(t, err)
	assert.Empty(t, overdue)
}
