package carrier

import (
	"crypto/subtle"

	"carriers/internal/entities"
)

// authorize сравнивает PIN побайтно, без нормализации.
func authorize(carrier *entities.Carrier, pin string) error {
	if subtle.ConstantTimeCompare([]byte(carrier.PIN), []byte(pin)) != 1 {
		return ErrInvalidPIN
	}
	return nil
}
