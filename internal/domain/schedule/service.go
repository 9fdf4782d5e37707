package schedule

import (
	"context"
	"time"

	"animal-facility/internal/domain/facility"
	"animal-facility/internal/platform/logger"
	"animal-facility/internal/platform/metrics"
)

// Scheduler aplica las reglas de schedule sobre el store.
type Scheduler struct {
	store       facility.Store
	now         func() time.Time
	dueSoonDays int
	log         logger.Logger
	metrics     *metrics.Recorder
}

type Options struct {
	// DueSoonDays nil usa DefaultDueSoonDays; 0 desactiva DUE_SOON y los
	// negativos cuentan como 0.
	DueSoonDays *int
	Logger      logger.Logger
	Metrics     *metrics.Recorder
}

func NewScheduler(store facility.Store, opts Options) *Scheduler {
	s := &Scheduler{
		store:       store,
		now:         time.Now,
		dueSoonDays: DefaultDueSoonDays,
		log:         opts.Logger,
		metrics:     opts.Metrics,
	}
	if opts.DueSoonDays != nil {
		s.dueSoonDays = max(*opts.DueSoonDays, 0)
	}
	if s.log == nil {
		s.log = logger.Nop()
	}
	s.log = s.log.With(map[string]any{"component": "schedule"})
	return s
}

func (s *Scheduler) DueSoonDays() int { return s.dueSoonDays }

// AdministerTreatment registra la administración con la fecha de hoy.
func (s *Scheduler) AdministerTreatment(ctx context.Context, treatmentID string, nextDue *time.Time) (out facility.Treatment, err error) {
	defer func(start time.Time) { s.metrics.Observe("administer_treatment", start, err) }(time.Now())

	asOf := s.now()
	err = s.store.Atomic(ctx, func(ctx context.Context, tx facility.Store) error {
		t, err := tx.Treatments().GetByID(ctx, treatmentID)
		if err != nil {
			return err
		}
		out = Administer(t, nextDue, asOf)
		return tx.Treatments().Update(ctx, out)
	})
	if err != nil {
		return facility.Treatment{}, err
	}

	s.log.Info("treatment administered", map[string]any{
		"treatment_id": out.ID,
		"animal_id":    out.AnimalID,
		"next_due":     formatDate(out.NextDueDate),
	})
	return out, nil
}

// Entry es una fila del reporte: el tratamiento, su animal y su estado.
type Entry struct {
	Treatment  facility.Treatment
	AnimalID   string
	AnimalName string
	Status     Status
}

// Report lista todos los tratamientos (agrupados por animal, en orden de alta)
// clasificados respecto de asOf.
func (s *Scheduler) Report(ctx context.Context, asOf time.Time) (out []Entry, err error) {
	defer func(start time.Time) { s.metrics.Observe("schedule_report", start, err) }(time.Now())

	animals, err := s.store.Animals().GetAll(ctx)
	if err != nil {
		return nil, err
	}

	out = make([]Entry, 0)
	overdue := 0
	for _, a := range animals {
		for _, t := range a.Treatments {
			st := Classify(t, asOf, s.dueSoonDays)
			if st == StatusOverdue {
				overdue++
			}
			out = append(out, Entry{Treatment: t, AnimalID: a.ID, AnimalName: a.Name, Status: st})
		}
	}

	s.metrics.SetOverdue(overdue)
	s.log.Debug("schedule report built", map[string]any{
		"as_of":   asOf.Format(time.DateOnly),
		"entries": len(out),
		"overdue": overdue,
	})
	return out, nil
}

// Today es la fecha de referencia por defecto (reloj inyectable en tests).
func (s *Scheduler) Today() time.Time {
	return facility.DateOf(s.now())
}

func formatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(time.DateOnly)
}
