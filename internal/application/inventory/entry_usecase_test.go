package inventory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tu-usuario/cafeteria-stock/internal/domain"
	"github.com/tu-usuario/cafeteria-stock/internal/domain/entity"
)

func TestRegisterEntry_AcreditaAlmacenConLibroYGasto(t *testing.T) {
	env := newTestEnv()
	env.addFlatProduct("p1", "Harina", 4, 2)
	env.setStock("p1", entity.LocationAlmacen, 3)
	uc := NewEntryUseCase(env.txRunner, env.products)

	result, err := uc.RegisterEntry(context.Background(), EntryInput{ProductID: "p1", Quantity: 10})
	require.NoError(t, err)

	assert.Equal(t, int64(10), result.Quantity)
	assert.Equal(t, int64(13), result.AlmacenBalance)
	assert.Equal(t, int64(13), env.aggregate("p1", entity.LocationAlmacen))

	// Entrega proveedor → almacén en el libro.
	require.Len(t, env.transfers.records, 1)
	rec := env.transfers.records[0]
	assert.Equal(t, entity.KindEntrega, rec.Kind)
	assert.Equal(t, entity.LocationProveedor, rec.Source)
	assert.Equal(t, entity.LocationAlmacen, rec.Destination)

	// Gasto de compra = cantidad × costo.
	require.Len(t, env.expenses.expenses, 1)
	exp := env.expenses.expenses[0]
	assert.Equal(t, entity.ExpenseConceptCompra, exp.Concept)
	assert.True(t, exp.Amount.Equal(decimalFromInt(20)))
}

func TestRegisterEntry_ConParametros(t *testing.T) {
	env := newTestEnv()
	env.addVariantProduct("p2", "Delantal")
	uc := NewEntryUseCase(env.txRunner, env.products)

	result, err := uc.RegisterEntry(context.Background(), EntryInput{
		ProductID: "p2",
		Lines:     []Line{{Name: "S", Quantity: 3}, {Name: "M", Quantity: 2}},
	})
	require.NoError(t, err)

	assert.Equal(t, int64(5), result.Quantity)
	assert.Equal(t, int64(5), result.AlmacenBalance)
	assert.Equal(t, int64(3), env.variant("p2", entity.LocationAlmacen, "S"))
	assert.Equal(t, int64(2), env.variant("p2", entity.LocationAlmacen, "M"))
	assert.Equal(t, int64(5), env.aggregate("p2", entity.LocationAlmacen))
}

func TestRegisterEntry_ProductoInexistente(t *testing.T) {
	env := newTestEnv()
	uc := NewEntryUseCase(env.txRunner, env.products)

	_, err := uc.RegisterEntry(context.Background(), EntryInput{ProductID: "nope", Quantity: 1})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRegisterEntry_CantidadCeroEsInvalida(t *testing.T) {
	env := newTestEnv()
	env.addFlatProduct("p1", "Harina", 4, 2)
	uc := NewEntryUseCase(env.txRunner, env.products)

	_, err := uc.RegisterEntry(context.Background(), EntryInput{ProductID: "p1", Quantity: 0})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
