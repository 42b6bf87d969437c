package production_test

import (
	"context"
	"errors"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/Jamxon/Korxona/internal/application/production"
	"github.com/Jamxon/Korxona/internal/domain/entity"
	"github.com/Jamxon/Korxona/internal/domain/repository"
	"github.com/Jamxon/Korxona/pkg/textnorm"
)

func d(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

var errDB = errors.New("db caída")

// store base de datos en memoria compartida por los repositorios falsos.
type store struct {
	mu        sync.Mutex
	products  map[string]*entity.Product
	materials map[string]*entity.Material
	bom       map[string][]entity.ProductMaterial
	entries   map[string]*entity.WarehouseEntry // por material_id

	failIncrementOn string // material_id en el que IncrementReserved falla
	bomErr          error
	locks           []string // filas bloqueadas con FOR UPDATE, en orden
}

func newStore() *store {
	return &store{
		products:  map[string]*entity.Product{},
		materials: map[string]*entity.Material{},
		bom:       map[string][]entity.ProductMaterial{},
		entries:   map[string]*entity.WarehouseEntry{},
	}
}

func (s *store) addProduct(id, name string) {
	s.products[id] = &entity.Product{ID: id, Name: name, Code: id}
}

func (s *store) addMaterial(id, name string, remainder, reserved, price int64) {
	s.materials[id] = &entity.Material{ID: id, Name: name, ReservedQuantity: d(reserved)}
	s.entries[id] = &entity.WarehouseEntry{ID: "w-" + id, MaterialID: id, Remainder: d(remainder), Price: d(price)}
}

func (s *store) addBOM(productID, materialID string, qty int64) {
	s.bom[productID] = append(s.bom[productID], entity.ProductMaterial{
		ProductID: productID, MaterialID: materialID, Quantity: d(qty),
	})
}

func (s *store) remainder(materialID string) decimal.Decimal {
	return s.entries[materialID].Remainder
}

func (s *store) reserved(materialID string) decimal.Decimal {
	return s.materials[materialID].ReservedQuantity
}

type snapshot struct {
	materials map[string]entity.Material
	entries   map[string]entity.WarehouseEntry
}

func (s *store) snapshot() snapshot {
	snap := snapshot{materials: map[string]entity.Material{}, entries: map[string]entity.WarehouseEntry{}}
	for k, v := range s.materials {
		snap.materials[k] = *v
	}
	for k, v := range s.entries {
		snap.entries[k] = *v
	}
	return snap
}

func (s *store) restore(snap snapshot) {
	for k, v := range snap.materials {
		m := v
		s.materials[k] = &m
	}
	for k, v := range snap.entries {
		e := v
		s.entries[k] = &e
	}
}

// txRunner serializa transacciones y revierte el estado si fn devuelve error.
type txRunner struct{ s *store }

func (r txRunner) Run(ctx context.Context, fn func(repository.MaterialRepository, repository.WarehouseEntryRepository) error) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	snap := r.s.snapshot()
	if err := fn(materialRepo{r.s}, entryRepo{r.s}); err != nil {
		r.s.restore(snap)
		return err
	}
	return nil
}

type productRepo struct{ s *store }

func (r productRepo) GetByName(_ context.Context, name string) (*entity.Product, error) {
	for _, p := range r.s.products {
		if textnorm.Equal(p.Name, name) {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

type bomRepo struct{ s *store }

func (r bomRepo) ListByProduct(_ context.Context, productID string) ([]entity.ProductMaterial, error) {
	if r.s.bomErr != nil {
		return nil, r.s.bomErr
	}
	lines := r.s.bom[productID]
	out := make([]entity.ProductMaterial, len(lines))
	for i, l := range lines {
		if m, ok := r.s.materials[l.MaterialID]; ok {
			l.MaterialName = m.Name
		}
		out[i] = l
	}
	return out, nil
}

type materialRepo struct{ s *store }

func (r materialRepo) get(id string) *entity.Material {
	m, ok := r.s.materials[id]
	if !ok {
		return nil
	}
	cp := *m
	return &cp
}

func (r materialRepo) GetByName(_ context.Context, name string) (*entity.Material, error) {
	for _, m := range r.s.materials {
		if textnorm.Equal(m.Name, name) {
			cp := *m
			return &cp, nil
		}
	}
	return nil, nil
}

func (r materialRepo) GetForUpdate(_ context.Context, id string) (*entity.Material, error) {
	r.s.locks = append(r.s.locks, "materials:"+id)
	return r.get(id), nil
}

func (r materialRepo) IncrementReserved(_ context.Context, id string, qty decimal.Decimal) error {
	if id == r.s.failIncrementOn {
		return errDB
	}
	m := r.s.materials[id]
	m.ReservedQuantity = m.ReservedQuantity.Add(qty)
	return nil
}

func (r materialRepo) DecrementReserved(_ context.Context, id string, qty decimal.Decimal) error {
	m := r.s.materials[id]
	m.ReservedQuantity = decimal.Max(decimal.Zero, m.ReservedQuantity.Sub(qty))
	return nil
}

func (r materialRepo) Create(_ context.Context, m *entity.Material) error {
	cp := *m
	r.s.materials[m.ID] = &cp
	return nil
}

type entryRepo struct{ s *store }

func (r entryRepo) GetByMaterialForUpdate(_ context.Context, materialID string) (*entity.WarehouseEntry, error) {
	r.s.locks = append(r.s.locks, "warehouse_entries:"+materialID)
	e, ok := r.s.entries[materialID]
	if !ok {
		return nil, nil
	}
	cp := *e
	return &cp, nil
}

func (r entryRepo) UpdateRemainder(_ context.Context, id string, remainder decimal.Decimal) error {
	for _, e := range r.s.entries {
		if e.ID == id {
			e.Remainder = remainder
			return nil
		}
	}
	return errors.New("entrada no encontrada")
}

func (r entryRepo) Upsert(_ context.Context, e *entity.WarehouseEntry) error {
	cp := *e
	r.s.entries[e.MaterialID] = &cp
	return nil
}

func (r entryRepo) ListStock(context.Context) ([]entity.StockLine, error) {
	return nil, nil
}

// recorder captura eventos, métricas e invalidaciones de caché.
type recorder struct {
	mu          sync.Mutex
	events      []production.MaterialEvent
	outcomes    []string
	shortfalls  map[string]decimal.Decimal
	invalidated int
}

func newRecorder() *recorder {
	return &recorder{shortfalls: map[string]decimal.Decimal{}}
}

func (r *recorder) observers() production.Observers {
	return production.Observers{Publisher: r, Metrics: r, Cache: r}
}

func (r *recorder) Publish(_ context.Context, ev production.MaterialEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, ev)
	return nil
}

func (r *recorder) Record(operation, outcome string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.outcomes = append(r.outcomes, operation+":"+outcome)
}

func (r *recorder) ObserveShortfall(material string, qty decimal.Decimal) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.shortfalls[material] = qty
}

func (r *recorder) Invalidate(context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.invalidated++
	return nil
}

func (r *recorder) eventTypes() []string {
	out := make([]string, 0, len(r.events))
	for _, ev := range r.events {
		out = append(out, ev.Type)
	}
	return out
}

// shirtStore catálogo Ko'ylak/Shim usado en varios tests.
func shirtStore() *store {
	s := newStore()
	s.addProduct("p-koylak", "Ko'ylak")
	s.addProduct("p-shim", "Shim")
	s.addMaterial("m-a", "Mato A", 50, 0, 12000)
	s.addMaterial("m-b", "Tugma", 500, 0, 300)
	s.addBOM("p-koylak", "m-a", 2)
	s.addBOM("p-koylak", "m-b", 6)
	s.addBOM("p-shim", "m-a", 1)
	return s
}
