package schedule

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"animal-facility/internal/adapters/storage/memory"
	"animal-facility/internal/domain/facility"
	"animal-facility/internal/platform/metrics"
)

func due(d time.Time) facility.Treatment {
	return facility.Treatment{ID: "t1", AnimalID: "a1", Type: facility.TreatmentVaccine, Name: "Rabies", NextDueDate: &d}
}

func TestClassify_Boundaries(t *testing.T) {
	d := facility.Date(2024, 5, 20)
	tr := due(d)

	assert.Equal(t, StatusOverdue, Classify(tr, d.AddDate(0, 0, 1), DefaultDueSoonDays))
	assert.Equal(t, StatusDueSoon, Classify(tr, d.AddDate(0, 0, -3), DefaultDueSoonDays))
	assert.Equal(t, StatusOK, Classify(tr, d.AddDate(0, 0, -30), DefaultDueSoonDays))

	// el mismo día no está vencido, pero sí por vencer
	assert.Equal(t, StatusDueSoon, Classify(tr, d, DefaultDueSoonDays))
	// asOf + 7 == D: no es "estrictamente antes"
	assert.Equal(t, StatusOK, Classify(tr, d.AddDate(0, 0, -7), DefaultDueSoonDays))
	assert.Equal(t, StatusDueSoon, Classify(tr, d.AddDate(0, 0, -6), DefaultDueSoonDays))
}

func TestClassify_IgnoresTimeOfDay(t *testing.T) {
	tr := due(facility.Date(2024, 5, 20))
	lateSameDay := time.Date(2024, 5, 20, 23, 59, 0, 0, time.UTC)

	assert.Equal(t, StatusDueSoon, Classify(tr, lateSameDay, DefaultDueSoonDays))
}

func TestClassify_NoNextDue(t *testing.T) {
	tr := facility.Treatment{Type: facility.TreatmentCheckup, Name: "Annual"}
	assert.Equal(t, StatusOK, Classify(tr, facility.Date(2030, 1, 1), DefaultDueSoonDays))
}

func TestClassify_CustomWindow(t *testing.T) {
	d := facility.Date(2024, 5, 20)
	tr := due(d)

	assert.Equal(t, StatusDueSoon, Classify(tr, d.AddDate(0, 0, -20), 30))
	assert.Equal(t, StatusOK, Classify(tr, d.AddDate(0, 0, -1), 0))
	assert.Equal(t, StatusOK, Classify(tr, d.AddDate(0, 0, -1), -5))
}

func TestAdminister(t *testing.T) {
	asOf := time.Date(2024, 2, 1, 15, 4, 0, 0, time.UTC)
	next := facility.Date(2025, 2, 1)
	tr := due(facility.Date(2024, 1, 1))

	got := Administer(tr, &next, asOf)
	assert.True(t, got.Administered)
	require.NotNil(t, got.AdministrationDate)
	assert.Equal(t, facility.Date(2024, 2, 1), *got.AdministrationDate)
	assert.Equal(t, next, *got.NextDueDate)

	// el original no cambia
	assert.False(t, tr.Administered)

	again := Administer(got, nil, asOf.AddDate(0, 0, 3))
	assert.Nil(t, again.NextDueDate)
	assert.Equal(t, facility.Date(2024, 2, 4), *again.AdministrationDate)
}

func seedStore(t *testing.T) (*memory.Store, string, string) {
	t.Helper()
	ctx := context.Background()
	s := memory.NewStore()

	animalID, err := s.Animals().Save(ctx, facility.Animal{Name: "Rex", Species: "dog", Gender: facility.GenderMale})
	require.NoError(t, err)

	d := facility.Date(2023, 1, 1)
	treatmentID, err := s.Treatments().Save(ctx, facility.Treatment{
		AnimalID: animalID, Type: facility.TreatmentVaccine, Name: "Rabies", NextDueDate: &d,
	})
	require.NoError(t, err)

	later := facility.Date(2023, 6, 5)
	_, err = s.Treatments().Save(ctx, facility.Treatment{
		AnimalID: animalID, Type: facility.TreatmentDeworming, Name: "Pill", NextDueDate: &later,
	})
	require.NoError(t, err)
	return s, animalID, treatmentID
}

func TestScheduler_AdministerTreatment(t *testing.T) {
	ctx := context.Background()
	store, animalID, treatmentID := seedStore(t)

	sch := NewScheduler(store, Options{})
	sch.now = func() time.Time { return time.Date(2023, 6, 1, 10, 0, 0, 0, time.UTC) }

	next := facility.Date(2024, 6, 1)
	got, err := sch.AdministerTreatment(ctx, treatmentID, &next)
	require.NoError(t, err)
	assert.True(t, got.Administered)
	assert.Equal(t, facility.Date(2023, 6, 1), *got.AdministrationDate)

	a, err := store.Animals().GetByID(ctx, animalID)
	require.NoError(t, err)
	assert.True(t, facility.IsVaccinationUpToDate(a, sch.Today()))
	assert.Equal(t, next, *a.Treatments[0].NextDueDate)
}

func TestScheduler_AdministerTreatment_NotFound(t *testing.T) {
	store, _, _ := seedStore(t)
	sch := NewScheduler(store, Options{})

	_, err := sch.AdministerTreatment(context.Background(), "missing", nil)
	assert.ErrorIs(t, err, facility.ErrNotFound)
}

func TestScheduler_Report(t *testing.T) {
	store, animalID, treatmentID := seedStore(t)
	rec := metrics.New()
	sch := NewScheduler(store, Options{Metrics: rec})
	assert.Equal(t, DefaultDueSoonDays, sch.DueSoonDays())

	entries, err := sch.Report(context.Background(), facility.Date(2023, 6, 1))
	require.NoError(t, err)
	require.Len(t, entries, 2)

	assert.Equal(t, treatmentID, entries[0].Treatment.ID)
	assert.Equal(t, animalID, entries[0].AnimalID)
	assert.Equal(t, "Rex", entries[0].AnimalName)
	assert.Equal(t, StatusOverdue, entries[0].Status)
	assert.Equal(t, StatusDueSoon, entries[1].Status)
}

func TestNewScheduler_Window(t *testing.T) {
	zero, negative, custom := 0, -3, 14
	tests := []struct {
		name string
		opt  *int
		want int
	}{
		{"default", nil, DefaultDueSoonDays},
		{"zero disables due soon", &zero, 0},
		{"negative counts as zero", &negative, 0},
		{"custom", &custom, 14},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sch := NewScheduler(memory.NewStore(), Options{DueSoonDays: tt.opt})
			assert.Equal(t, tt.want, sch.DueSoonDays())
		})
	}
}

func TestScheduler_Report_ZeroWindow(t *testing.T) {
	store, _, _ := seedStore(t)
	zero := 0
	sch := NewScheduler(store, Options{DueSoonDays: &zero})

	// Pill vence el 2023-06-05, cuatro días después
	entries, err := sch.Report(context.Background(), facility.Date(2023, 6, 1))
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, StatusOverdue, entries[0].Status)
	assert.Equal(t, StatusOK, entries[1].Status)
}
