package inventory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tu-usuario/cafeteria-stock/internal/domain"
	"github.com/tu-usuario/cafeteria-stock/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Traslados de productos planos
// ──────────────────────────────────────────────────────────────────────────────

func TestTransfer_Plano_MueveSaldoYDejaParEnElLibro(t *testing.T) {
	env := newTestEnv()
	env.addFlatProduct("p1", "Leche entera", 10, 6)
	env.setStock("p1", entity.LocationAlmacen, 10)
	uc := NewTransferUseCase(env.txRunner, env.products)

	result, err := uc.Transfer(context.Background(), TransferInput{
		ProductID:   "p1",
		Quantity:    4,
		Source:      entity.LocationAlmacen,
		Destination: entity.LocationCocina,
	})
	require.NoError(t, err)

	assert.Equal(t, int64(4), result.Quantity)
	assert.Equal(t, int64(6), result.SourceBalance)
	assert.Equal(t, int64(4), result.DestinationBal)
	assert.Equal(t, int64(6), env.aggregate("p1", entity.LocationAlmacen))
	assert.Equal(t, int64(4), env.aggregate("p1", entity.LocationCocina))

	// Un traslado = dos filas: baja + entrega, mismo origen/destino/cantidad/timestamp.
	require.Len(t, env.transfers.records, 2)
	baja, entrega := env.transfers.records[0], env.transfers.records[1]
	assert.Equal(t, entity.KindBaja, baja.Kind)
	assert.Equal(t, entity.KindEntrega, entrega.Kind)
	for _, rec := range env.transfers.records {
		assert.Equal(t, entity.LocationAlmacen, rec.Source)
		assert.Equal(t, entity.LocationCocina, rec.Destination)
		assert.Equal(t, int64(4), rec.Quantity)
	}
	assert.Equal(t, baja.CreatedAt, entrega.CreatedAt, "ambas patas comparten timestamp")

	// Almacén → cocina no genera gasto.
	assert.Empty(t, env.expenses.expenses)
}

func TestTransfer_Plano_SaldoInsuficienteNoMutaNada(t *testing.T) {
	env := newTestEnv()
	env.addFlatProduct("p1", "Leche entera", 10, 6)
	env.setStock("p1", entity.LocationAlmacen, 3)
	uc := NewTransferUseCase(env.txRunner, env.products)

	_, err := uc.Transfer(context.Background(), TransferInput{
		ProductID:   "p1",
		Quantity:    5,
		Source:      entity.LocationAlmacen,
		Destination: entity.LocationCocina,
	})

	var insufficient *domain.InsufficientStockError
	require.ErrorAs(t, err, &insufficient)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Equal(t, int64(5), insufficient.Requested)
	assert.Equal(t, int64(3), insufficient.Available)

	assert.Equal(t, int64(3), env.aggregate("p1", entity.LocationAlmacen))
	assert.Equal(t, int64(0), env.aggregate("p1", entity.LocationCocina))
	assert.Empty(t, env.transfers.records, "un traslado fallido no deja filas en el libro")
}

func TestTransfer_Plano_RechazaDesgloseDeParametros(t *testing.T) {
	env := newTestEnv()
	env.addFlatProduct("p1", "Leche entera", 10, 6)
	env.setStock("p1", entity.LocationAlmacen, 10)
	uc := NewTransferUseCase(env.txRunner, env.products)

	_, err := uc.Transfer(context.Background(), TransferInput{
		ProductID:   "p1",
		Source:      entity.LocationAlmacen,
		Destination: entity.LocationCocina,
		Lines:       []Line{{Name: "S", Quantity: 1}},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// Traslados de productos con parámetros
// ──────────────────────────────────────────────────────────────────────────────

func TestTransfer_Parametros_MueveLineasYRecalculaAgregados(t *testing.T) {
	env := newTestEnv()
	env.addVariantProduct("p2", "Camiseta staff")
	env.setVariant("p2", entity.LocationAlmacen, "S", 5)
	env.setVariant("p2", entity.LocationAlmacen, "M", 3)
	env.setStock("p2", entity.LocationAlmacen, 8)
	uc := NewTransferUseCase(env.txRunner, env.products)

	result, err := uc.Transfer(context.Background(), TransferInput{
		ProductID:   "p2",
		Source:      entity.LocationAlmacen,
		Destination: entity.LocationCocina,
		Lines:       []Line{{Name: "S", Quantity: 2}, {Name: "M", Quantity: 1}},
	})
	require.NoError(t, err)

	assert.Equal(t, int64(3), result.Quantity, "la cantidad del movimiento es la suma del desglose")
	assert.Equal(t, int64(3), env.variant("p2", entity.LocationAlmacen, "S"))
	assert.Equal(t, int64(2), env.variant("p2", entity.LocationAlmacen, "M"))
	assert.Equal(t, int64(2), env.variant("p2", entity.LocationCocina, "S"))
	assert.Equal(t, int64(1), env.variant("p2", entity.LocationCocina, "M"))

	// El agregado cacheado queda igual a la suma de parámetros en ambos extremos.
	assert.Equal(t, int64(5), env.aggregate("p2", entity.LocationAlmacen))
	assert.Equal(t, int64(3), env.aggregate("p2", entity.LocationCocina))

	require.Len(t, env.transfers.records, 2)
	for _, rec := range env.transfers.records {
		require.Len(t, rec.Lines, 2, "cada pata del libro lleva el desglose completo")
	}
}

func TestTransfer_Parametros_FaltanteEnUnaLineaAbortaTodo(t *testing.T) {
	env := newTestEnv()
	env.addVariantProduct("p2", "Camiseta staff")
	env.setVariant("p2", entity.LocationAlmacen, "S", 5)
	env.setVariant("p2", entity.LocationAlmacen, "M", 3)
	env.setStock("p2", entity.LocationAlmacen, 8)
	uc := NewTransferUseCase(env.txRunner, env.products)

	// S alcanza, M no: la operación completa debe fallar nombrando a M.
	_, err := uc.Transfer(context.Background(), TransferInput{
		ProductID:   "p2",
		Source:      entity.LocationAlmacen,
		Destination: entity.LocationCocina,
		Lines:       []Line{{Name: "S", Quantity: 2}, {Name: "M", Quantity: 4}},
	})

	var insufficient *domain.InsufficientStockError
	require.ErrorAs(t, err, &insufficient)
	assert.Equal(t, "M", insufficient.Variant, "el error nombra el parámetro que faltó")
	assert.Equal(t, int64(4), insufficient.Requested)
	assert.Equal(t, int64(3), insufficient.Available)

	// Nada mutado: ni la línea que sí alcanzaba, ni agregados, ni libro.
	assert.Equal(t, int64(5), env.variant("p2", entity.LocationAlmacen, "S"))
	assert.Equal(t, int64(3), env.variant("p2", entity.LocationAlmacen, "M"))
	assert.Equal(t, int64(8), env.aggregate("p2", entity.LocationAlmacen))
	assert.Equal(t, int64(0), env.aggregate("p2", entity.LocationCocina))
	assert.Empty(t, env.transfers.records)
}

func TestTransfer_Parametros_AgregadoDivergenteFallaConsistencia(t *testing.T) {
	env := newTestEnv()
	env.addVariantProduct("p2", "Camiseta staff")
	env.setVariant("p2", entity.LocationAlmacen, "S", 5)
	env.setStock("p2", entity.LocationAlmacen, 9) // divergente: Σ parámetros = 5
	uc := NewTransferUseCase(env.txRunner, env.products)

	_, err := uc.Transfer(context.Background(), TransferInput{
		ProductID:   "p2",
		Source:      entity.LocationAlmacen,
		Destination: entity.LocationCocina,
		Lines:       []Line{{Name: "S", Quantity: 1}},
	})

	var inconsistent *domain.ConsistencyError
	require.ErrorAs(t, err, &inconsistent)
	assert.ErrorIs(t, err, domain.ErrInconsistentStock)
	assert.Equal(t, int64(9), inconsistent.Aggregate)
	assert.Equal(t, int64(5), inconsistent.VariantSum)
	assert.Empty(t, env.transfers.records)
}

func TestTransfer_Parametros_SinDesgloseEsInvalido(t *testing.T) {
	env := newTestEnv()
	env.addVariantProduct("p2", "Camiseta staff")
	uc := NewTransferUseCase(env.txRunner, env.products)

	_, err := uc.Transfer(context.Background(), TransferInput{
		ProductID:   "p2",
		Quantity:    3,
		Source:      entity.LocationAlmacen,
		Destination: entity.LocationCocina,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestTransfer_Parametros_DesgloseConNombreRepetidoEsInvalido(t *testing.T) {
	env := newTestEnv()
	env.addVariantProduct("p2", "Camiseta staff")
	env.setVariant("p2", entity.LocationAlmacen, "S", 5)
	env.setStock("p2", entity.LocationAlmacen, 5)
	uc := NewTransferUseCase(env.txRunner, env.products)

	_, err := uc.Transfer(context.Background(), TransferInput{
		ProductID:   "p2",
		Source:      entity.LocationAlmacen,
		Destination: entity.LocationCocina,
		Lines:       []Line{{Name: "S", Quantity: 1}, {Name: "S", Quantity: 2}},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// Validación de extremos y gasto de retorno
// ──────────────────────────────────────────────────────────────────────────────

func TestTransfer_ExtremosInvalidos(t *testing.T) {
	env := newTestEnv()
	env.addFlatProduct("p1", "Leche entera", 10, 6)
	uc := NewTransferUseCase(env.txRunner, env.products)

	cases := []struct {
		name   string
		source entity.Location
		dest   entity.Location
	}{
		{"mismo origen y destino", entity.LocationAlmacen, entity.LocationAlmacen},
		{"origen sentinela", entity.LocationMerma, entity.LocationCocina},
		{"destino sentinela", entity.LocationAlmacen, entity.LocationProveedor},
		{"ubicación desconocida", entity.Location("bodega2"), entity.LocationCocina},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := uc.Transfer(context.Background(), TransferInput{
				ProductID: "p1", Quantity: 1, Source: tc.source, Destination: tc.dest,
			})
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}

func TestTransfer_ProductoInexistente(t *testing.T) {
	env := newTestEnv()
	uc := NewTransferUseCase(env.txRunner, env.products)

	_, err := uc.Transfer(context.Background(), TransferInput{
		ProductID:   "nope",
		Quantity:    1,
		Source:      entity.LocationAlmacen,
		Destination: entity.LocationCocina,
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestTransfer_RetornoCocinaAlmacenRegistraGasto(t *testing.T) {
	env := newTestEnv()
	env.addFlatProduct("p1", "Café en grano", 25, 7)
	env.setStock("p1", entity.LocationCocina, 5)
	uc := NewTransferUseCase(env.txRunner, env.products)

	_, err := uc.Transfer(context.Background(), TransferInput{
		ProductID:   "p1",
		Quantity:    2,
		Source:      entity.LocationCocina,
		Destination: entity.LocationAlmacen,
	})
	require.NoError(t, err)

	require.Len(t, env.expenses.expenses, 1)
	exp := env.expenses.expenses[0]
	assert.Equal(t, entity.ExpenseConceptDevolucion, exp.Concept)
	assert.True(t, exp.Amount.Equal(decimalFromInt(14)), "gasto = cantidad × costo (2 × 7)")
	assert.Equal(t, "p1", exp.ProductID)
}

func TestTransfer_DireccionOpuestaNoRegistraGasto(t *testing.T) {
	env := newTestEnv()
	env.addFlatProduct("p1", "Café en grano", 25, 7)
	env.setStock("p1", entity.LocationAlmacen, 5)
	uc := NewTransferUseCase(env.txRunner, env.products)

	_, err := uc.Transfer(context.Background(), TransferInput{
		ProductID:   "p1",
		Quantity:    2,
		Source:      entity.LocationAlmacen,
		Destination: entity.LocationCocina,
	})
	require.NoError(t, err)
	assert.Empty(t, env.expenses.expenses, "almacén → cocina no es la dirección del gasto")
}

func TestTransfer_ConservaElTotalEntreUbicaciones(t *testing.T) {
	env := newTestEnv()
	env.addFlatProduct("p1", "Azúcar", 5, 2)
	env.setStock("p1", entity.LocationAlmacen, 20)
	uc := NewTransferUseCase(env.txRunner, env.products)

	moves := []struct {
		qty  int64
		src  entity.Location
		dst  entity.Location
	}{
		{8, entity.LocationAlmacen, entity.LocationCocina},
		{5, entity.LocationCocina, entity.LocationCafeteria},
		{2, entity.LocationCafeteria, entity.LocationAlmacen},
	}
	for _, m := range moves {
		_, err := uc.Transfer(context.Background(), TransferInput{
			ProductID: "p1", Quantity: m.qty, Source: m.src, Destination: m.dst,
		})
		require.NoError(t, err)
	}

	total := env.aggregate("p1", entity.LocationAlmacen) +
		env.aggregate("p1", entity.LocationCocina) +
		env.aggregate("p1", entity.LocationCafeteria)
	assert.Equal(t, int64(20), total, "trasladar nunca crea ni destruye stock")
}
