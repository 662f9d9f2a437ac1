// Package ordernum genera números legibles de pedido: prefijo + 8 caracteres [A-Z0-9].
package ordernum

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

const (
	alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	length   = 8

	PrefixSalesOrder    = "ORD-"
	PrefixPurchaseOrder = "PO-"
)

// Generate devuelve prefix seguido de 8 caracteres aleatorios.
// La unicidad la garantiza la restricción única en persistencia; el llamador reintenta ante duplicado.
func Generate(prefix string) (string, error) {
	buf := make([]byte, length)
	max := big.NewInt(int64(len(alphabet)))
	for i := range buf {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", fmt.Errorf("generar número de pedido: %w", err)
		}
		buf[i] = alphabet[n.Int64()]
	}
	return prefix + string(buf), nil
}
