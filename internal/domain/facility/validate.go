package facility

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Instancia global reutilizable (validator cachea la info de los structs).
var validate = validator.New()

func (a Animal) Validate() error    { return validateStruct(a) }
func (o Owner) Validate() error     { return validateStruct(o) }
func (b Box) Validate() error       { return validateStruct(b) }
func (t Treatment) Validate() error { return validateStruct(t) }

func validateStruct(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}

	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, fmt.Sprintf("%s (%s)", strings.ToLower(fe.Field()), fe.Tag()))
	}
	return fmt.Errorf("%w: %s", ErrValidation, strings.Join(fields, ", "))
}
