// Package otp реализует генерацию одноразовых кодов для сброса пароля.
package otp

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// Generate возвращает случайный шестизначный код в виде строки
// с ведущими нулями, например "042517".
func Generate() (string, error) {
	const op = "otp.Generate"
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}
