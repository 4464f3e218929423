package billing

import (
	"crypto/rand"
	"fmt"
	"time"
)

const codeAlphabet = "0123456789abcdefghijklmnopqrstuvwxyz"

// codeTokenLen longitud del sufijo aleatorio del código de transacción.
const codeTokenLen = 9

// NewTransactionCode genera TRX-<unix ms>-<token base36 de 9 caracteres>.
// La unicidad definitiva la garantiza la restricción UNIQUE de transaction_code.
func NewTransactionCode(now time.Time) (string, error) {
	token := make([]byte, 0, codeTokenLen)
	buf := make([]byte, codeTokenLen*2)
	for len(token) < codeTokenLen {
		if _, err := rand.Read(buf); err != nil {
			return "", fmt.Errorf("transaction code: %w", err)
		}
		for _, b := range buf {
			// 252 = 36*7; descartar el resto evita sesgo.
			if b >= 252 {
				continue
			}
			token = append(token, codeAlphabet[b%36])
			if len(token) == codeTokenLen {
				break
			}
		}
	}
	return fmt.Sprintf("TRX-%d-%s", now.UnixMilli(), token), nil
}
