package inventory_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/wms-api/internal/application/inventory"
	"github.com/jhoicas/wms-api/internal/domain"
	"github.com/jhoicas/wms-api/internal/domain/entity"
	"github.com/jhoicas/wms-api/internal/infrastructure/memory"
)

func TestRecord_CamposRequeridosPorTipo(t *testing.T) {
	rec := inventory.NewMovementRecorder(memory.New().Repos().Movements, nil)
	ctx := context.Background()

	cases := []struct {
		name string
		in   inventory.MovementInput
		want error
	}{
		{"IN sin destino", inventory.MovementInput{Type: entity.MovementTypeIN, ProductID: "p", Quantity: 1}, domain.ErrInvalidInput},
		{"IN con origen", inventory.MovementInput{Type: entity.MovementTypeIN, ProductID: "p", FromLocationID: "a", ToLocationID: "b", Quantity: 1}, domain.ErrInvalidInput},
		{"OUT sin origen", inventory.MovementInput{Type: entity.MovementTypeOUT, ProductID: "p", Quantity: 1}, domain.ErrInvalidInput},
		{"TRANSFER sin destino", inventory.MovementInput{Type: entity.MovementTypeTRANSFER, ProductID: "p", FromLocationID: "a", Quantity: 1}, domain.ErrInvalidInput},
		{"sin producto", inventory.MovementInput{Type: entity.MovementTypeOUT, FromLocationID: "a", Quantity: 1}, domain.ErrInvalidInput},
		{"tipo desconocido", inventory.MovementInput{Type: "LOST", ProductID: "p", ToLocationID: "a", Quantity: 1}, domain.ErrInvalidInput},
		{"OUT en cero", inventory.MovementInput{Type: entity.MovementTypeOUT, ProductID: "p", FromLocationID: "a"}, domain.ErrInvalidQuantity},
		{"ADJUSTMENT negativo", inventory.MovementInput{Type: entity.MovementTypeADJUSTMENT, ProductID: "p", ToLocationID: "a", Quantity: -1}, domain.ErrInvalidQuantity},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := rec.Record(ctx, tc.in)
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

func TestRecord_AjusteEnCeroPermitido(t *testing.T) {
	rec := inventory.NewMovementRecorder(memory.New().Repos().Movements, nil)

	mov, err := rec.Record(context.Background(), inventory.MovementInput{
		Type: entity.MovementTypeADJUSTMENT, ProductID: "p", ToLocationID: "a", Quantity: 0,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, mov.ID)
	assert.False(t, mov.MovementDate.IsZero())
}
