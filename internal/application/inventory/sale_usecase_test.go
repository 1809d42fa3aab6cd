package inventory

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tu-usuario/cafeteria-stock/internal/domain"
	"github.com/tu-usuario/cafeteria-stock/internal/domain/entity"
)

func TestRecordSale_DebitaYGuardaSnapshotDePrecio(t *testing.T) {
	env := newTestEnv()
	env.addFlatProduct("p1", "Capuchino", 10, 4)
	env.setStock("p1", entity.LocationCafeteria, 20)
	uc := NewSaleUseCase(env.txRunner, env.products)

	sale, err := uc.RecordSale(context.Background(), SaleInput{ProductID: "p1", Quantity: 5})
	require.NoError(t, err)

	assert.Equal(t, int64(15), env.aggregate("p1", entity.LocationCafeteria))
	assert.Equal(t, entity.LocationCafeteria, sale.Location, "sin ubicación explícita vende la cafetería")
	assert.True(t, sale.UnitPrice.Equal(decimalFromInt(10)))
	assert.True(t, sale.Total.Equal(decimalFromInt(50)), "total = precio × cantidad")

	// Cambiar el precio del producto después no toca la venta ya registrada.
	p, _ := env.products.GetByID("p1")
	p.Price = decimalFromInt(99)
	require.NoError(t, env.products.Update(p))
	stored, _ := env.sales.GetByID(sale.ID)
	assert.True(t, stored.UnitPrice.Equal(decimalFromInt(10)), "el snapshot de precio es inmutable")
}

func TestRecordSale_PrecioExplicitoPisaElDelProducto(t *testing.T) {
	env := newTestEnv()
	env.addFlatProduct("p1", "Capuchino", 10, 4)
	env.setStock("p1", entity.LocationCafeteria, 20)
	uc := NewSaleUseCase(env.txRunner, env.products)

	override := decimal.NewFromInt(8)
	sale, err := uc.RecordSale(context.Background(), SaleInput{ProductID: "p1", Quantity: 2, UnitPrice: &override})
	require.NoError(t, err)
	assert.True(t, sale.UnitPrice.Equal(override))
	assert.True(t, sale.Total.Equal(decimalFromInt(16)))
}

func TestRecordSale_PrecioNegativoEsInvalido(t *testing.T) {
	env := newTestEnv()
	env.addFlatProduct("p1", "Capuchino", 10, 4)
	env.setStock("p1", entity.LocationCafeteria, 20)
	uc := NewSaleUseCase(env.txRunner, env.products)

	negative := decimal.NewFromInt(-1)
	_, err := uc.RecordSale(context.Background(), SaleInput{ProductID: "p1", Quantity: 1, UnitPrice: &negative})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRecordSale_SaldoInsuficienteNoCreaVenta(t *testing.T) {
	env := newTestEnv()
	env.addFlatProduct("p1", "Capuchino", 10, 4)
	env.setStock("p1", entity.LocationCafeteria, 2)
	uc := NewSaleUseCase(env.txRunner, env.products)

	_, err := uc.RecordSale(context.Background(), SaleInput{ProductID: "p1", Quantity: 5})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Equal(t, int64(2), env.aggregate("p1", entity.LocationCafeteria))
	assert.Empty(t, env.sales.sales)
}

func TestRecordSale_ConParametros(t *testing.T) {
	env := newTestEnv()
	p := env.addVariantProduct("p2", "Sandwich")
	p.Price = decimalFromInt(6)
	require.NoError(t, env.products.Update(p))
	env.setVariant("p2", entity.LocationCafeteria, "pollo", 4)
	env.setVariant("p2", entity.LocationCafeteria, "queso", 3)
	env.setStock("p2", entity.LocationCafeteria, 7)
	uc := NewSaleUseCase(env.txRunner, env.products)

	sale, err := uc.RecordSale(context.Background(), SaleInput{
		ProductID: "p2",
		Lines:     []Line{{Name: "pollo", Quantity: 2}, {Name: "queso", Quantity: 1}},
	})
	require.NoError(t, err)

	assert.Equal(t, int64(3), sale.Quantity)
	assert.True(t, sale.Total.Equal(decimalFromInt(18)))
	assert.Equal(t, int64(2), env.variant("p2", entity.LocationCafeteria, "pollo"))
	assert.Equal(t, int64(2), env.variant("p2", entity.LocationCafeteria, "queso"))
	assert.Equal(t, int64(4), env.aggregate("p2", entity.LocationCafeteria))
}

func TestReverseSale_RestauraElSaldoExactoYDestruyeLaVenta(t *testing.T) {
	env := newTestEnv()
	env.addFlatProduct("p1", "Capuchino", 10, 4)
	env.setStock("p1", entity.LocationCafeteria, 20)
	uc := NewSaleUseCase(env.txRunner, env.products)

	sale, err := uc.RecordSale(context.Background(), SaleInput{ProductID: "p1", Quantity: 5})
	require.NoError(t, err)
	require.Equal(t, int64(15), env.aggregate("p1", entity.LocationCafeteria))

	require.NoError(t, uc.ReverseSale(context.Background(), sale.ID))
	assert.Equal(t, int64(20), env.aggregate("p1", entity.LocationCafeteria))

	stored, _ := env.sales.GetByID(sale.ID)
	assert.Nil(t, stored, "la reversión destruye el registro de venta")

	// Revertir dos veces no puede acreditar dos veces.
	err = uc.ReverseSale(context.Background(), sale.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Equal(t, int64(20), env.aggregate("p1", entity.LocationCafeteria))
}

func TestReverseSale_ConParametrosAcreditaCadaLinea(t *testing.T) {
	env := newTestEnv()
	p := env.addVariantProduct("p2", "Sandwich")
	p.Price = decimalFromInt(6)
	require.NoError(t, env.products.Update(p))
	env.setVariant("p2", entity.LocationCafeteria, "pollo", 4)
	env.setVariant("p2", entity.LocationCafeteria, "queso", 3)
	env.setStock("p2", entity.LocationCafeteria, 7)
	uc := NewSaleUseCase(env.txRunner, env.products)

	sale, err := uc.RecordSale(context.Background(), SaleInput{
		ProductID: "p2",
		Lines:     []Line{{Name: "pollo", Quantity: 2}, {Name: "queso", Quantity: 1}},
	})
	require.NoError(t, err)

	require.NoError(t, uc.ReverseSale(context.Background(), sale.ID))
	assert.Equal(t, int64(4), env.variant("p2", entity.LocationCafeteria, "pollo"))
	assert.Equal(t, int64(3), env.variant("p2", entity.LocationCafeteria, "queso"))
	assert.Equal(t, int64(7), env.aggregate("p2", entity.LocationCafeteria))
}

func TestUpdateSale_RevierteYReaplicaEnUnaSolaOperacion(t *testing.T) {
	env := newTestEnv()
	env.addFlatProduct("p1", "Capuchino", 10, 4)
	env.setStock("p1", entity.LocationCafeteria, 20)
	uc := NewSaleUseCase(env.txRunner, env.products)

	original, err := uc.RecordSale(context.Background(), SaleInput{ProductID: "p1", Quantity: 5})
	require.NoError(t, err)
	require.Equal(t, int64(15), env.aggregate("p1", entity.LocationCafeteria))

	updated, err := uc.UpdateSale(context.Background(), original.ID, SaleInput{ProductID: "p1", Quantity: 3})
	require.NoError(t, err)

	// Neto: 20 - 3. El crédito de la reversión y el nuevo débito se compensan.
	assert.Equal(t, int64(17), env.aggregate("p1", entity.LocationCafeteria))
	assert.True(t, updated.Total.Equal(decimalFromInt(30)))

	old, _ := env.sales.GetByID(original.ID)
	assert.Nil(t, old, "la venta original desaparece")
	fresh, _ := env.sales.GetByID(updated.ID)
	require.NotNil(t, fresh)
	assert.Equal(t, int64(3), fresh.Quantity)
}

func TestUpdateSale_VentaInexistente(t *testing.T) {
	env := newTestEnv()
	env.addFlatProduct("p1", "Capuchino", 10, 4)
	env.setStock("p1", entity.LocationCafeteria, 20)
	uc := NewSaleUseCase(env.txRunner, env.products)

	_, err := uc.UpdateSale(context.Background(), "no-existe", SaleInput{ProductID: "p1", Quantity: 1})
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Equal(t, int64(20), env.aggregate("p1", entity.LocationCafeteria))
}

func TestRecordSale_UbicacionSentinelaEsInvalida(t *testing.T) {
	env := newTestEnv()
	env.addFlatProduct("p1", "Capuchino", 10, 4)
	uc := NewSaleUseCase(env.txRunner, env.products)

	_, err := uc.RecordSale(context.Background(), SaleInput{
		ProductID: "p1", Quantity: 1, Location: entity.LocationMerma,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRecordSale_NoEscribeEnElLibroDeTransacciones(t *testing.T) {
	env := newTestEnv()
	env.addFlatProduct("p1", "Capuchino", 10, 4)
	env.setStock("p1", entity.LocationCafeteria, 20)
	uc := NewSaleUseCase(env.txRunner, env.products)

	_, err := uc.RecordSale(context.Background(), SaleInput{ProductID: "p1", Quantity: 5})
	require.NoError(t, err)
	assert.Empty(t, env.transfers.records, "las ventas viven en su propio libro")
}
