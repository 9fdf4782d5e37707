package facility

import "github.com/google/uuid"

// NewID genera un UUIDv7 (ordenable por tiempo); si falla cae a v4.
func NewID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}
