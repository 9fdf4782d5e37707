package facility

import "time"

// Las fechas del dominio son fechas de calendario: se comparan a nivel día en UTC.

// DateOf trunca t a la medianoche UTC de su fecha de calendario.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Date construye una fecha de calendario.
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// DatePtr es un atajo para campos opcionales.
func DatePtr(t time.Time) *time.Time {
	d := DateOf(t)
	return &d
}

// IsOverdue: NextDueDate definida y asOf estrictamente posterior.
func IsOverdue(t Treatment, asOf time.Time) bool {
	if t.NextDueDate == nil {
		return false
	}
	return DateOf(asOf).After(DateOf(*t.NextDueDate))
}

// OverdueTreatments conserva el orden original de a.Treatments.
func OverdueTreatments(a Animal, asOf time.Time) []Treatment {
	out := make([]Treatment, 0)
	for _, t := range a.Treatments {
		if IsOverdue(t, asOf) {
			out = append(out, t)
		}
	}
	return out
}

// IsVaccinationUpToDate es false solo si alguna vacuna está vencida.
// Un animal sin vacunas registradas está al día.
func IsVaccinationUpToDate(a Animal, asOf time.Time) bool {
	return !hasOverdueOfType(a, TreatmentVaccine, asOf)
}

func IsDewormingUpToDate(a Animal, asOf time.Time) bool {
	return !hasOverdueOfType(a, TreatmentDeworming, asOf)
}

func hasOverdueOfType(a Animal, typ TreatmentType, asOf time.Time) bool {
	for _, t := range a.Treatments {
		if t.Type == typ && IsOverdue(t, asOf) {
			return true
		}
	}
	return false
}

// FullName concatena nombre y apellido con un espacio, sin recortar.
func FullName(o Owner) string {
	return o.FirstName + " " + o.LastName
}
