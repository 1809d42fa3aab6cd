package inventory

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/cafeteria-stock/internal/domain/entity"
)

func decimalFromInt(n int64) decimal.Decimal { return decimal.NewFromInt(n) }

// Fakes en memoria para probar los casos de uso del motor sin PostgreSQL.
// Get/GetForUpdate devuelven copias (como lo hace el adaptador real al escanear
// filas): ninguna mutación llega al almacén sin pasar por Upsert.

type stockKey struct {
	productID string
	loc       entity.Location
}

type variantKey struct {
	productID string
	loc       entity.Location
	name      string
}

type fakeStockRepo struct {
	stocks   map[stockKey]*entity.LocationStock
	variants map[variantKey]*entity.VariantStock
}

func newFakeStockRepo() *fakeStockRepo {
	return &fakeStockRepo{
		stocks:   make(map[stockKey]*entity.LocationStock),
		variants: make(map[variantKey]*entity.VariantStock),
	}
}

func (f *fakeStockRepo) Get(productID string, loc entity.Location) (*entity.LocationStock, error) {
	if s, ok := f.stocks[stockKey{productID, loc}]; ok {
		cp := *s
		return &cp, nil
	}
	return &entity.LocationStock{ProductID: productID, Location: loc}, nil
}

func (f *fakeStockRepo) GetForUpdate(productID string, loc entity.Location) (*entity.LocationStock, error) {
	return f.Get(productID, loc)
}

func (f *fakeStockRepo) Upsert(stock *entity.LocationStock) error {
	cp := *stock
	f.stocks[stockKey{stock.ProductID, stock.Location}] = &cp
	return nil
}

func (f *fakeStockRepo) GetVariant(productID string, loc entity.Location, name string) (*entity.VariantStock, error) {
	if v, ok := f.variants[variantKey{productID, loc, name}]; ok {
		cp := *v
		return &cp, nil
	}
	return &entity.VariantStock{ProductID: productID, Location: loc, Name: name}, nil
}

func (f *fakeStockRepo) GetVariantForUpdate(productID string, loc entity.Location, name string) (*entity.VariantStock, error) {
	return f.GetVariant(productID, loc, name)
}

func (f *fakeStockRepo) UpsertVariant(v *entity.VariantStock) error {
	cp := *v
	f.variants[variantKey{v.ProductID, v.Location, v.Name}] = &cp
	return nil
}

func (f *fakeStockRepo) ListVariants(productID string, loc entity.Location) ([]*entity.VariantStock, error) {
	var out []*entity.VariantStock
	for k, v := range f.variants {
		if k.productID == productID && k.loc == loc {
			cp := *v
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (f *fakeStockRepo) SumVariants(productID string, loc entity.Location) (int64, error) {
	var sum int64
	for k, v := range f.variants {
		if k.productID == productID && k.loc == loc {
			sum += v.Quantity
		}
	}
	return sum, nil
}

func (f *fakeStockRepo) ListByLocation(loc entity.Location) ([]*entity.LocationStock, error) {
	var out []*entity.LocationStock
	for k, s := range f.stocks {
		if k.loc == loc {
			cp := *s
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (f *fakeStockRepo) DeleteByProduct(productID string) error {
	for k := range f.stocks {
		if k.productID == productID {
			delete(f.stocks, k)
		}
	}
	for k := range f.variants {
		if k.productID == productID {
			delete(f.variants, k)
		}
	}
	return nil
}

type fakeProductRepo struct {
	products map[string]*entity.Product
}

func newFakeProductRepo() *fakeProductRepo {
	return &fakeProductRepo{products: make(map[string]*entity.Product)}
}

func (f *fakeProductRepo) Create(p *entity.Product) error {
	cp := *p
	f.products[p.ID] = &cp
	return nil
}

func (f *fakeProductRepo) GetByID(id string) (*entity.Product, error) {
	if p, ok := f.products[id]; ok {
		cp := *p
		return &cp, nil
	}
	return nil, nil
}

func (f *fakeProductRepo) GetByName(name string) (*entity.Product, error) {
	for _, p := range f.products {
		if p.Name == name {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeProductRepo) Update(p *entity.Product) error {
	cp := *p
	f.products[p.ID] = &cp
	return nil
}

func (f *fakeProductRepo) Delete(id string) error {
	delete(f.products, id)
	return nil
}

func (f *fakeProductRepo) List(limit, offset int) ([]*entity.Product, error) {
	var out []*entity.Product
	for _, p := range f.products {
		cp := *p
		out = append(out, &cp)
	}
	return out, nil
}

type fakeTransferRepo struct {
	records []*entity.TransferRecord
}

func (f *fakeTransferRepo) Create(rec *entity.TransferRecord) error {
	cp := *rec
	cp.Lines = append([]entity.TransferLine(nil), rec.Lines...)
	f.records = append(f.records, &cp)
	return nil
}

// newestFirst devuelve las entradas que cumplen el predicado, de la más reciente
// (última insertada) a la más antigua.
func (f *fakeTransferRepo) newestFirst(match func(*entity.TransferRecord) bool, limit, offset int) []*entity.TransferRecord {
	var out []*entity.TransferRecord
	for i := len(f.records) - 1; i >= 0; i-- {
		if match(f.records[i]) {
			out = append(out, f.records[i])
		}
	}
	if offset > len(out) {
		offset = len(out)
	}
	out = out[offset:]
	if limit > 0 && limit < len(out) {
		out = out[:limit]
	}
	return out
}

func (f *fakeTransferRepo) ListByProduct(productID string, limit, offset int) ([]*entity.TransferRecord, error) {
	return f.newestFirst(func(r *entity.TransferRecord) bool { return r.ProductID == productID }, limit, offset), nil
}

func (f *fakeTransferRepo) ListBySource(loc entity.Location, limit, offset int) ([]*entity.TransferRecord, error) {
	return f.newestFirst(func(r *entity.TransferRecord) bool { return r.Source == loc }, limit, offset), nil
}

func (f *fakeTransferRepo) ListByDestination(loc entity.Location, limit, offset int) ([]*entity.TransferRecord, error) {
	return f.newestFirst(func(r *entity.TransferRecord) bool { return r.Destination == loc }, limit, offset), nil
}

func (f *fakeTransferRepo) ListByKind(kind entity.MovementKind, limit, offset int) ([]*entity.TransferRecord, error) {
	return f.newestFirst(func(r *entity.TransferRecord) bool { return r.Kind == kind }, limit, offset), nil
}

func (f *fakeTransferRepo) DeleteByProduct(productID string) error {
	kept := f.records[:0]
	for _, r := range f.records {
		if r.ProductID != productID {
			kept = append(kept, r)
		}
	}
	f.records = kept
	return nil
}

type fakeSaleRepo struct {
	sales map[string]*entity.SaleRecord
	order []string
}

func newFakeSaleRepo() *fakeSaleRepo {
	return &fakeSaleRepo{sales: make(map[string]*entity.SaleRecord)}
}

func (f *fakeSaleRepo) Create(sale *entity.SaleRecord) error {
	cp := *sale
	cp.Lines = append([]entity.SaleLine(nil), sale.Lines...)
	f.sales[sale.ID] = &cp
	f.order = append(f.order, sale.ID)
	return nil
}

func (f *fakeSaleRepo) GetByID(id string) (*entity.SaleRecord, error) {
	s, ok := f.sales[id]
	if !ok {
		return nil, nil
	}
	cp := *s
	cp.Lines = append([]entity.SaleLine(nil), s.Lines...)
	return &cp, nil
}

func (f *fakeSaleRepo) Delete(id string) error {
	delete(f.sales, id)
	return nil
}

func (f *fakeSaleRepo) List(from, to *time.Time, limit, offset int) ([]*entity.SaleRecord, error) {
	var out []*entity.SaleRecord
	for i := len(f.order) - 1; i >= 0; i-- {
		s, ok := f.sales[f.order[i]]
		if !ok {
			continue
		}
		if from != nil && s.CreatedAt.Before(*from) {
			continue
		}
		if to != nil && s.CreatedAt.After(*to) {
			continue
		}
		out = append(out, s)
	}
	return out, nil
}

func (f *fakeSaleRepo) ListByLocation(loc entity.Location, limit, offset int) ([]*entity.SaleRecord, error) {
	var out []*entity.SaleRecord
	for i := len(f.order) - 1; i >= 0; i-- {
		if s, ok := f.sales[f.order[i]]; ok && s.Location == loc {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeSaleRepo) DeleteByProduct(productID string) error {
	for id, s := range f.sales {
		if s.ProductID == productID {
			delete(f.sales, id)
		}
	}
	return nil
}

type fakeShrinkageRepo struct {
	losses map[string]*entity.ShrinkageRecord
	order  []string
}

func newFakeShrinkageRepo() *fakeShrinkageRepo {
	return &fakeShrinkageRepo{losses: make(map[string]*entity.ShrinkageRecord)}
}

func (f *fakeShrinkageRepo) Create(loss *entity.ShrinkageRecord) error {
	cp := *loss
	cp.Lines = append([]entity.ShrinkageLine(nil), loss.Lines...)
	f.losses[loss.ID] = &cp
	f.order = append(f.order, loss.ID)
	return nil
}

func (f *fakeShrinkageRepo) GetByID(id string) (*entity.ShrinkageRecord, error) {
	l, ok := f.losses[id]
	if !ok {
		return nil, nil
	}
	cp := *l
	cp.Lines = append([]entity.ShrinkageLine(nil), l.Lines...)
	return &cp, nil
}

func (f *fakeShrinkageRepo) Delete(id string) error {
	delete(f.losses, id)
	return nil
}

func (f *fakeShrinkageRepo) List(limit, offset int) ([]*entity.ShrinkageRecord, error) {
	var out []*entity.ShrinkageRecord
	for i := len(f.order) - 1; i >= 0; i-- {
		if l, ok := f.losses[f.order[i]]; ok {
			out = append(out, l)
		}
	}
	return out, nil
}

func (f *fakeShrinkageRepo) DeleteByProduct(productID string) error {
	for id, l := range f.losses {
		if l.ProductID == productID {
			delete(f.losses, id)
		}
	}
	return nil
}

type fakeExpenseRepo struct {
	expenses []*entity.Expense
}

func (f *fakeExpenseRepo) Create(e *entity.Expense) error {
	cp := *e
	f.expenses = append(f.expenses, &cp)
	return nil
}

func (f *fakeExpenseRepo) List(from, to *time.Time, limit, offset int) ([]*entity.Expense, error) {
	out := make([]*entity.Expense, 0, len(f.expenses))
	for i := len(f.expenses) - 1; i >= 0; i-- {
		out = append(out, f.expenses[i])
	}
	return out, nil
}

// fakeTxRunner ejecuta el callback directamente contra los fakes. No hay rollback:
// los casos de uso verifican todo antes de la primera escritura, así que un fallo
// debe dejar el estado intacto también aquí (y los tests lo comprueban).
type fakeTxRunner struct {
	repos Repos
}

func (f *fakeTxRunner) Run(_ context.Context, fn func(r Repos) error) error {
	return fn(f.repos)
}

// testEnv arma el juego completo de fakes compartidos entre casos de uso.
type testEnv struct {
	products  *fakeProductRepo
	stock     *fakeStockRepo
	transfers *fakeTransferRepo
	sales     *fakeSaleRepo
	shrinkage *fakeShrinkageRepo
	expenses  *fakeExpenseRepo
	txRunner  *fakeTxRunner
}

func newTestEnv() *testEnv {
	env := &testEnv{
		products:  newFakeProductRepo(),
		stock:     newFakeStockRepo(),
		transfers: &fakeTransferRepo{},
		sales:     newFakeSaleRepo(),
		shrinkage: newFakeShrinkageRepo(),
		expenses:  &fakeExpenseRepo{},
	}
	env.txRunner = &fakeTxRunner{repos: Repos{
		Products:  env.products,
		Stock:     env.stock,
		Transfers: env.transfers,
		Sales:     env.sales,
		Shrinkage: env.shrinkage,
		Expenses:  env.expenses,
	}}
	return env
}

func (e *testEnv) addFlatProduct(id, name string, price, cost int64) *entity.Product {
	p := &entity.Product{ID: id, Name: name, HasVariants: false}
	p.Price = decimalFromInt(price)
	p.Cost = decimalFromInt(cost)
	_ = e.products.Create(p)
	return p
}

func (e *testEnv) addVariantProduct(id, name string) *entity.Product {
	p := &entity.Product{ID: id, Name: name, HasVariants: true}
	_ = e.products.Create(p)
	return p
}

func (e *testEnv) setStock(productID string, loc entity.Location, qty int64) {
	_ = e.stock.Upsert(&entity.LocationStock{ProductID: productID, Location: loc, Quantity: qty})
}

func (e *testEnv) setVariant(productID string, loc entity.Location, name string, qty int64) {
	_ = e.stock.UpsertVariant(&entity.VariantStock{ProductID: productID, Location: loc, Name: name, Quantity: qty})
}

func (e *testEnv) aggregate(productID string, loc entity.Location) int64 {
	s, _ := e.stock.Get(productID, loc)
	return s.Quantity
}

func (e *testEnv) variant(productID string, loc entity.Location, name string) int64 {
	v, _ := e.stock.GetVariant(productID, loc, name)
	return v.Quantity
}
