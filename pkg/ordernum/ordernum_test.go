package ordernum_test

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/wms-api/pkg/ordernum"
)

func TestGenerate_Formato(t *testing.T) {
	re := regexp.MustCompile(`^ORD-[A-Z0-9]{8}$`)
	for i := 0; i < 100; i++ {
		n, err := ordernum.Generate(ordernum.PrefixSalesOrder)
		require.NoError(t, err)
		assert.Regexp(t, re, n)
	}
}

func TestGenerate_PrefijoCompra(t *testing.T) {
	n, err := ordernum.Generate(ordernum.PrefixPurchaseOrder)
	require.NoError(t, err)
	assert.Regexp(t, `^PO-[A-Z0-9]{8}$`, n)
}

func TestGenerate_NoRepiteEnMuestraPequena(t *testing.T) {
	seen := make(map[string]struct{}, 500)
	for i := 0; i < 500; i++ {
		n, err := ordernum.Generate("X-")
		require.NoError(t, err)
		_, dup := seen[n]
		require.False(t, dup, "número repetido: %s", n)
		seen[n] = struct{}{}
	}
}
