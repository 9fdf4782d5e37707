package facility

import "time"

// Gender define el sexo registrado del animal.
// @Enum male, female, unknown
type Gender string

const (
	GenderMale    Gender = "male"
	GenderFemale  Gender = "female"
	GenderUnknown Gender = "unknown"
)

// BoxStatus es el estado de un box (unidad de alojamiento).
type BoxStatus string

const (
	BoxAvailable   BoxStatus = "AVAILABLE"
	BoxOccupied    BoxStatus = "OCCUPIED"
	BoxMaintenance BoxStatus = "MAINTENANCE"
	BoxCleaning    BoxStatus = "CLEANING"
)

// TreatmentType clasifica los tratamientos médicos.
type TreatmentType string

const (
	TreatmentVaccine    TreatmentType = "VACCINE"
	TreatmentDeworming  TreatmentType = "DEWORMING"
	TreatmentMedication TreatmentType = "MEDICATION"
	TreatmentCheckup    TreatmentType = "CHECKUP"
)

// Animal representa un animal alojado en la instalación.
//
// OwnerID y BoxID solo los modifica assignment.Manager; un animal nuevo
// no tiene dueño ni box.
type Animal struct {
	ID string

	Name    string `validate:"required"`
	Species string `validate:"required"`
	Breed   string
	Gender  Gender `validate:"oneof=male female unknown"`

	BirthDate *time.Time

	OwnerID string
	BoxID   string

	// Orden de inserción; no tiene significado semántico.
	Treatments []Treatment
}

// Owner es el dueño de uno o más animales.
// AnimalIDs es el índice inverso de Animal.OwnerID y siempre debe coincidir con él.
type Owner struct {
	ID string

	FirstName string `validate:"required"`
	LastName  string `validate:"required"`

	Email   string `validate:"omitempty,email"`
	Phone   string
	Address string

	AnimalIDs []string
}

// Box es una unidad de alojamiento con a lo sumo un animal.
// Invariante: Status == BoxOccupied <=> CurrentAnimalID != "".
type Box struct {
	ID string

	Name     string `validate:"required"`
	Location string

	Status          BoxStatus `validate:"oneof=AVAILABLE OCCUPIED MAINTENANCE CLEANING"`
	CurrentAnimalID string
}

// Treatment pertenece exclusivamente a un animal (AnimalID) y se borra con él.
type Treatment struct {
	ID       string
	AnimalID string `validate:"required"`

	Type        TreatmentType `validate:"oneof=VACCINE DEWORMING MEDICATION CHECKUP"`
	Name        string        `validate:"required"`
	Description string

	AdministrationDate *time.Time
	NextDueDate        *time.Time
	Administered       bool
}

func (b Box) IsAvailable() bool {
	return b.Status == BoxAvailable
}

func (a Animal) HasOwner() bool { return a.OwnerID != "" }
func (a Animal) HasBox() bool   { return a.BoxID != "" }

// OwnsAnimal indica si animalID está en el índice del dueño.
func (o Owner) OwnsAnimal(animalID string) bool {
	for _, id := range o.AnimalIDs {
		if id == animalID {
			return true
		}
	}
	return false
}

// ParseGender normaliza el texto recibido; vacío equivale a unknown.
func ParseGender(s string) (Gender, bool) {
	switch Gender(s) {
	case "":
		return GenderUnknown, true
	case GenderMale, GenderFemale, GenderUnknown:
		return Gender(s), true
	default:
		return "", false
	}
}

func ParseBoxStatus(s string) (BoxStatus, bool) {
	switch st := BoxStatus(s); st {
	case BoxAvailable, BoxOccupied, BoxMaintenance, BoxCleaning:
		return st, true
	default:
		return "", false
	}
}

func ParseTreatmentType(s string) (TreatmentType, bool) {
	switch tt := TreatmentType(s); tt {
	case TreatmentVaccine, TreatmentDeworming, TreatmentMedication, TreatmentCheckup:
		return tt, true
	default:
		return "", false
	}
}
