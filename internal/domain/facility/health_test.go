package facility

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsOverdue(t *testing.T) {
	d := Date(2024, 1, 10)
	tr := Treatment{NextDueDate: &d}

	assert.False(t, IsOverdue(tr, d), "same day")
	assert.True(t, IsOverdue(tr, d.AddDate(0, 0, 1)))
	assert.False(t, IsOverdue(tr, d.AddDate(0, 0, -1)))
	assert.False(t, IsOverdue(tr, time.Date(2024, 1, 10, 23, 59, 59, 0, time.UTC)))
	assert.False(t, IsOverdue(Treatment{}, d), "no next due date")
}

func TestRexScenario(t *testing.T) {
	due := Date(2023, 1, 1)
	rabies := Treatment{ID: "t1", Type: TreatmentVaccine, Name: "Rabies", NextDueDate: &due}
	rex := Animal{Name: "Rex", Species: "dog", Treatments: []Treatment{rabies}}
	asOf := Date(2023, 6, 1)

	assert.False(t, IsVaccinationUpToDate(rex, asOf))
	assert.True(t, IsDewormingUpToDate(rex, asOf))

	overdue := OverdueTreatments(rex, asOf)
	require.Len(t, overdue, 1)
	assert.Equal(t, "t1", overdue[0].ID)
}

func TestOverdueTreatments_PreservesOrder(t *testing.T) {
	past := Date(2023, 1, 1)
	future := Date(2030, 1, 1)
	a := Animal{Treatments: []Treatment{
		{ID: "a", NextDueDate: &past},
		{ID: "b", NextDueDate: &future},
		{ID: "c"},
		{ID: "d", NextDueDate: &past},
	}}

	got := OverdueTreatments(a, Date(2024, 1, 1))
	require.Len(t, got, 2)
	assert.Equal(t, "a", got[0].ID)
	assert.Equal(t, "d", got[1].ID)

	assert.Empty(t, OverdueTreatments(Animal{}, Date(2024, 1, 1)))
}

func TestUpToDate_AbsenceIsNotOverdue(t *testing.T) {
	a := Animal{Name: "Tom", Species: "cat"}
	assert.True(t, IsVaccinationUpToDate(a, Date(2024, 1, 1)))
	assert.True(t, IsDewormingUpToDate(a, Date(2024, 1, 1)))
}

func TestFullName(t *testing.T) {
	assert.Equal(t, "Ana Ruiz", FullName(Owner{FirstName: "Ana", LastName: "Ruiz"}))
	assert.Equal(t, " Ana  Ruiz", FullName(Owner{FirstName: " Ana ", LastName: "Ruiz"}))
}

func TestOwnsAnimalAndBoxAvailability(t *testing.T) {
	o := Owner{AnimalIDs: []string{"a1", "a2"}}
	assert.True(t, o.OwnsAnimal("a2"))
	assert.False(t, o.OwnsAnimal("a3"))

	assert.True(t, Box{Status: BoxAvailable}.IsAvailable())
	assert.False(t, Box{Status: BoxCleaning}.IsAvailable())
}

func TestParsers(t *testing.T) {
	g, ok := ParseGender("")
	assert.True(t, ok)
	assert.Equal(t, GenderUnknown, g)
	_, ok = ParseGender("robot")
	assert.False(t, ok)

	st, ok := ParseBoxStatus("MAINTENANCE")
	assert.True(t, ok)
	assert.Equal(t, BoxMaintenance, st)
	_, ok = ParseBoxStatus("maintenance")
	assert.False(t, ok)

	tt, ok := ParseTreatmentType("CHECKUP")
	assert.True(t, ok)
	assert.Equal(t, TreatmentCheckup, tt)
}

func TestValidate(t *testing.T) {
	assert.NoError(t, Animal{Name: "Rex", Species: "dog", Gender: GenderMale}.Validate())

	err := Animal{Gender: GenderMale}.Validate()
	require.ErrorIs(t, err, ErrValidation)
	assert.Contains(t, err.Error(), "name (required)")
	assert.Contains(t, err.Error(), "species (required)")

	assert.ErrorIs(t, Box{Name: "B1", Status: "BROKEN"}.Validate(), ErrValidation)
	assert.ErrorIs(t, Owner{FirstName: "A", LastName: "B", Email: "x"}.Validate(), ErrValidation)
	assert.ErrorIs(t, Treatment{AnimalID: "a", Type: TreatmentVaccine}.Validate(), ErrValidation)
}

func TestWrapStorage(t *testing.T) {
	assert.NoError(t, WrapStorage("box", "get", nil))

	nf := NotFound("box", "b1")
	assert.Same(t, nf, WrapStorage("box", "get", nf))

	err := WrapStorage("box", "update", errors.New("disk"))
	var se *StorageError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, "update", se.Op)
	assert.ErrorIs(t, err, ErrStorage)
	assert.Equal(t, err, WrapStorage("animal", "save", err))
}

func TestNewID_Unique(t *testing.T) {
	a, b := NewID(), NewID()
	assert.NotEqual(t, a, b)
	assert.Len(t, a, 36)
}
