// Package schedule clasifica tratamientos según su próxima fecha y registra
// su administración. Las funciones puras reciben asOf: nunca leen el reloj.
package schedule

import (
	"time"

	"animal-facility/internal/domain/facility"
)

// Status del tratamiento respecto de asOf.
type Status string

const (
	StatusOK      Status = "OK"
	StatusDueSoon Status = "DUE_SOON"
	StatusOverdue Status = "OVERDUE"
)

const DefaultDueSoonDays = 7

// Administer marca el tratamiento como administrado en asOf y reemplaza la
// próxima fecha (nil = sin seguimiento). Aplicarlo dos veces solo pisa fechas.
func Administer(t facility.Treatment, nextDue *time.Time, asOf time.Time) facility.Treatment {
	t.Administered = true
	t.AdministrationDate = facility.DatePtr(asOf)
	if nextDue == nil {
		t.NextDueDate = nil
	} else {
		t.NextDueDate = facility.DatePtr(*nextDue)
	}
	return t
}

// Classify: OVERDUE si está vencido; DUE_SOON si NextDueDate cae estrictamente
// antes de asOf + windowDays; OK en cualquier otro caso. windowDays < 0 cuenta como 0.
func Classify(t facility.Treatment, asOf time.Time, windowDays int) Status {
	if facility.IsOverdue(t, asOf) {
		return StatusOverdue
	}
	if t.NextDueDate == nil {
		return StatusOK
	}
	if windowDays < 0 {
		windowDays = 0
	}
	limit := facility.DateOf(asOf).AddDate(0, 0, windowDays)
	if facility.DateOf(*t.NextDueDate).Before(limit) {
		return StatusDueSoon
	}
	return StatusOK
}
