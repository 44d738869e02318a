package stock_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Bodega-api/internal/application/stock"
	"github.com/jhoicas/Bodega-api/internal/domain"
	"github.com/jhoicas/Bodega-api/internal/domain/entity"
	"github.com/jhoicas/Bodega-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

func pairKey(productID, locationID string) string {
	return productID + "|" + locationID
}

type fakeProductRepo struct {
	products map[string]*entity.Product
}

func (r *fakeProductRepo) Create(p *entity.Product) error {
	cp := *p
	r.products[p.ID] = &cp
	return nil
}

func (r *fakeProductRepo) GetByID(id string) (*entity.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *fakeProductRepo) GetByBarcode(barcode string) (*entity.Product, error) {
	for _, p := range r.products {
		if p.Barcode != "" && p.Barcode == barcode {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeProductRepo) GetBySKU(sku string) (*entity.Product, error) {
	for _, p := range r.products {
		if p.SKU == sku {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeProductRepo) List(limit, offset int) ([]*entity.Product, error) {
	out := make([]*entity.Product, 0, len(r.products))
	for _, p := range r.products {
		cp := *p
		out = append(out, &cp)
	}
	return out, nil
}

type fakeLocationRepo struct {
	locations map[string]*entity.Location
}

func (r *fakeLocationRepo) Create(l *entity.Location) error {
	cp := *l
	r.locations[l.ID] = &cp
	return nil
}

func (r *fakeLocationRepo) GetByID(id string) (*entity.Location, error) {
	l, ok := r.locations[id]
	if !ok {
		return nil, nil
	}
	cp := *l
	return &cp, nil
}

func (r *fakeLocationRepo) List(limit, offset int) ([]*entity.Location, error) {
	out := make([]*entity.Location, 0, len(r.locations))
	for _, l := range r.locations {
		cp := *l
		out = append(out, &cp)
	}
	return out, nil
}

type fakeLevelRepo struct {
	levels map[string]*entity.StockLevel
}

func (r *fakeLevelRepo) Get(productID, locationID string) (*entity.StockLevel, error) {
	l, ok := r.levels[pairKey(productID, locationID)]
	if !ok {
		return nil, nil
	}
	cp := *l
	return &cp, nil
}

func (r *fakeLevelRepo) GetForUpdate(productID, locationID string) (*entity.StockLevel, error) {
	if l, ok := r.levels[pairKey(productID, locationID)]; ok {
		cp := *l
		return &cp, nil
	}
	// Igual que la base: asegura la fila en cero antes de bloquearla.
	l := &entity.StockLevel{ProductID: productID, LocationID: locationID}
	r.levels[pairKey(productID, locationID)] = l
	cp := *l
	return &cp, nil
}

func (r *fakeLevelRepo) Upsert(level *entity.StockLevel) error {
	cp := *level
	r.levels[pairKey(level.ProductID, level.LocationID)] = &cp
	return nil
}

func (r *fakeLevelRepo) ListDetailed(locationID string) ([]*entity.StockLevelDetail, error) {
	out := make([]*entity.StockLevelDetail, 0, len(r.levels))
	for _, l := range r.levels {
		if locationID != "" && l.LocationID != locationID {
			continue
		}
		out = append(out, &entity.StockLevelDetail{StockLevel: *l})
	}
	return out, nil
}

type fakeMovementRepo struct {
	movements []*entity.StockMovement
}

func (r *fakeMovementRepo) Create(m *entity.StockMovement) error {
	cp := *m
	r.movements = append(r.movements, &cp)
	return nil
}

func (r *fakeMovementRepo) List(filter repository.MovementFilter) ([]*entity.StockMovement, error) {
	out := []*entity.StockMovement{}
	for i := len(r.movements) - 1; i >= 0; i-- {
		m := r.movements[i]
		if filter.ProductID != "" && m.ProductID != filter.ProductID {
			continue
		}
		if filter.LocationID != "" && m.LocationID != filter.LocationID {
			continue
		}
		if filter.Type != "" && m.Type != filter.Type {
			continue
		}
		cp := *m
		out = append(out, &cp)
		if filter.Limit > 0 && len(out) >= filter.Limit {
			break
		}
	}
	return out, nil
}

func (r *fakeMovementRepo) ListByPair(productID, locationID string) ([]*entity.StockMovement, error) {
	out := []*entity.StockMovement{}
	for _, m := range r.movements {
		if m.ProductID == productID && m.LocationID == locationID {
			cp := *m
			out = append(out, &cp)
		}
	}
	return out, nil
}

// fakeTxRunner ejecuta la función directamente contra los fakes: la atomicidad
// real la cubren los tests de integración contra PostgreSQL.
type fakeTxRunner struct {
	movRepo   *fakeMovementRepo
	levelRepo *fakeLevelRepo
}

func (r *fakeTxRunner) Run(ctx context.Context, fn func(
	movRepo repository.StockMovementRepository,
	levelRepo repository.StockLevelRepository,
) error) error {
	return fn(r.movRepo, r.levelRepo)
}

func (r *fakeTxRunner) RunScanner(ctx context.Context, fn func(
	movRepo repository.StockMovementRepository,
	levelRepo repository.StockLevelRepository,
	sessionRepo repository.ScanSessionRepository,
) error) error {
	return fn(r.movRepo, r.levelRepo, nil)
}

// ──────────────────────────────────────────────────────────────────────────────
// Armado del motor
// ──────────────────────────────────────────────────────────────────────────────

type engineFixture struct {
	uc        *stock.MovementUseCase
	products  *fakeProductRepo
	locations *fakeLocationRepo
	levels    *fakeLevelRepo
	movements *fakeMovementRepo
}

func newEngine(t *testing.T) *engineFixture {
	t.Helper()
	f := &engineFixture{
		products:  &fakeProductRepo{products: map[string]*entity.Product{}},
		locations: &fakeLocationRepo{locations: map[string]*entity.Location{}},
		levels:    &fakeLevelRepo{levels: map[string]*entity.StockLevel{}},
		movements: &fakeMovementRepo{},
	}
	f.products.products["prod-1"] = &entity.Product{ID: "prod-1", SKU: "WH-001", Name: "Auriculares"}
	f.locations.locations["loc-a"] = &entity.Location{ID: "loc-a", Name: "Bodega Central"}
	f.locations.locations["loc-b"] = &entity.Location{ID: "loc-b", Name: "Tienda Norte"}
	f.uc = stock.NewMovementUseCase(
		&fakeTxRunner{movRepo: f.movements, levelRepo: f.levels},
		f.products, f.locations, f.levels, f.movements,
	)
	return f
}

func (f *engineFixture) apply(t *testing.T, movType string, qty int) int {
	t.Helper()
	newQty, err := f.uc.ApplyMovement(context.Background(), stock.MovementInput{
		ProductID:  "prod-1",
		LocationID: "loc-a",
		Type:       movType,
		Quantity:   qty,
		ActorID:    "actor-1",
	})
	require.NoError(t, err)
	return newQty
}

func (f *engineFixture) quantity(t *testing.T, productID, locationID string) int {
	t.Helper()
	level, err := f.uc.GetSnapshot(context.Background(), productID, locationID)
	require.NoError(t, err)
	require.NotNil(t, level)
	return level.Quantity
}

// ──────────────────────────────────────────────────────────────────────────────
// Reglas por tipo de movimiento
// ──────────────────────────────────────────────────────────────────────────────

// Un par sin movimientos arranca en 0: el primer inbound crea el nivel.
func TestApplyMovement_PrimerInboundCreaNivel(t *testing.T) {
	f := newEngine(t)

	newQty := f.apply(t, entity.MovementTypeInbound, 10)

	assert.Equal(t, 10, newQty)
	assert.Equal(t, 10, f.quantity(t, "prod-1", "loc-a"))
	require.Len(t, f.movements.movements, 1)
	mov := f.movements.movements[0]
	assert.Equal(t, 0, mov.PreviousQuantity)
	assert.Equal(t, 10, mov.NewQuantity)
	assert.Equal(t, "actor-1", mov.CreatedBy)
	assert.NotEmpty(t, mov.ID)
}

// outbound descuenta; un sobregiro recorta en 0 en vez de fallar, y el asiento
// conserva la cantidad solicitada como constancia del recorte.
func TestApplyMovement_OutboundRecortaEnCero(t *testing.T) {
	f := newEngine(t)
	f.apply(t, entity.MovementTypeInbound, 5)

	newQty := f.apply(t, entity.MovementTypeOutbound, 8)

	assert.Equal(t, 0, newQty)
	assert.Equal(t, 0, f.quantity(t, "prod-1", "loc-a"))
	mov := f.movements.movements[1]
	assert.Equal(t, 8, mov.Quantity, "el asiento conserva la cantidad solicitada")
	assert.Equal(t, 5, mov.PreviousQuantity)
	assert.Equal(t, 0, mov.NewQuantity)
}

// adjustment fija el valor absoluto final ignorando la cantidad previa.
func TestApplyMovement_AdjustmentFijaValorAbsoluto(t *testing.T) {
	f := newEngine(t)
	f.apply(t, entity.MovementTypeInbound, 37)

	newQty := f.apply(t, entity.MovementTypeAdjustment, 20)

	assert.Equal(t, 20, newQty)
	assert.Equal(t, 20, f.quantity(t, "prod-1", "loc-a"))
}

// adjustment a 0 es válido (conteo físico en cero).
func TestApplyMovement_AdjustmentCeroEsValido(t *testing.T) {
	f := newEngine(t)
	f.apply(t, entity.MovementTypeInbound, 12)

	newQty := f.apply(t, entity.MovementTypeAdjustment, 0)

	assert.Equal(t, 0, newQty)
}

// Un traslado son dos llamadas independientes: transfer_out en origen con el
// destino como correlación, y transfer_in en destino emitido por el cliente.
func TestApplyMovement_TrasladoEnDosFases(t *testing.T) {
	f := newEngine(t)
	f.apply(t, entity.MovementTypeInbound, 100)

	ctx := context.Background()
	outQty, err := f.uc.ApplyMovement(ctx, stock.MovementInput{
		ProductID:            "prod-1",
		LocationID:           "loc-a",
		Type:                 entity.MovementTypeTransferOut,
		Quantity:             30,
		TransferToLocationID: "loc-b",
		ActorID:              "actor-1",
	})
	require.NoError(t, err)
	assert.Equal(t, 70, outQty)

	inQty, err := f.uc.ApplyMovement(ctx, stock.MovementInput{
		ProductID:  "prod-1",
		LocationID: "loc-b",
		Type:       entity.MovementTypeTransferIn,
		Quantity:   30,
		ActorID:    "actor-1",
	})
	require.NoError(t, err)
	assert.Equal(t, 30, inQty)

	assert.Equal(t, 70, f.quantity(t, "prod-1", "loc-a"))
	assert.Equal(t, 30, f.quantity(t, "prod-1", "loc-b"))

	// El asiento de salida conserva el destino para correlacionar ambas patas.
	outMovs, err := f.movements.ListByPair("prod-1", "loc-a")
	require.NoError(t, err)
	require.Len(t, outMovs, 2)
	assert.Equal(t, "loc-b", outMovs[1].TransferToLocationID)
}

// transfer_out con destino inexistente se rechaza antes de tocar el nivel.
func TestApplyMovement_TrasladoDestinoInexistente(t *testing.T) {
	f := newEngine(t)
	f.apply(t, entity.MovementTypeInbound, 10)

	_, err := f.uc.ApplyMovement(context.Background(), stock.MovementInput{
		ProductID:            "prod-1",
		LocationID:           "loc-a",
		Type:                 entity.MovementTypeTransferOut,
		Quantity:             5,
		TransferToLocationID: "loc-fantasma",
		ActorID:              "actor-1",
	})

	require.ErrorIs(t, err, domain.ErrNotFound)
	assert.Equal(t, 10, f.quantity(t, "prod-1", "loc-a"))
	assert.Len(t, f.movements.movements, 1, "no debe asentarse el movimiento rechazado")
}

// ──────────────────────────────────────────────────────────────────────────────
// Validación de entrada y referencias
// ──────────────────────────────────────────────────────────────────────────────

func TestApplyMovement_EntradaInvalida(t *testing.T) {
	f := newEngine(t)

	cases := []struct {
		name  string
		input stock.MovementInput
	}{
		{"tipo desconocido", stock.MovementInput{ProductID: "prod-1", LocationID: "loc-a", Type: "teleport", Quantity: 1}},
		{"cantidad cero en inbound", stock.MovementInput{ProductID: "prod-1", LocationID: "loc-a", Type: entity.MovementTypeInbound, Quantity: 0}},
		{"cantidad negativa en outbound", stock.MovementInput{ProductID: "prod-1", LocationID: "loc-a", Type: entity.MovementTypeOutbound, Quantity: -3}},
		{"adjustment negativo", stock.MovementInput{ProductID: "prod-1", LocationID: "loc-a", Type: entity.MovementTypeAdjustment, Quantity: -1}},
		{"producto vacío", stock.MovementInput{LocationID: "loc-a", Type: entity.MovementTypeInbound, Quantity: 1}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.uc.ApplyMovement(context.Background(), tc.input)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
	assert.Empty(t, f.movements.movements)
}

func TestApplyMovement_ReferenciasInexistentes(t *testing.T) {
	f := newEngine(t)

	_, err := f.uc.ApplyMovement(context.Background(), stock.MovementInput{
		ProductID: "prod-fantasma", LocationID: "loc-a",
		Type: entity.MovementTypeInbound, Quantity: 1,
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = f.uc.ApplyMovement(context.Background(), stock.MovementInput{
		ProductID: "prod-1", LocationID: "loc-fantasma",
		Type: entity.MovementTypeInbound, Quantity: 1,
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Invariantes del libro
// ──────────────────────────────────────────────────────────────────────────────

// El nivel siempre es el fold de los asientos del par en orden de creación,
// partiendo de 0.
func TestLibro_ReplayReconstruyeElNivel(t *testing.T) {
	f := newEngine(t)
	f.apply(t, entity.MovementTypeInbound, 50)
	f.apply(t, entity.MovementTypeOutbound, 12)
	f.apply(t, entity.MovementTypeAdjustment, 40)
	f.apply(t, entity.MovementTypeOutbound, 45) // recorta en 0
	f.apply(t, entity.MovementTypeInbound, 7)

	movs, err := f.movements.ListByPair("prod-1", "loc-a")
	require.NoError(t, err)

	replayed := 0
	for _, m := range movs {
		switch m.Type {
		case entity.MovementTypeInbound, entity.MovementTypeTransferIn:
			replayed += m.Quantity
		case entity.MovementTypeOutbound, entity.MovementTypeTransferOut:
			replayed -= m.Quantity
			if replayed < 0 {
				replayed = 0
			}
		case entity.MovementTypeAdjustment:
			replayed = m.Quantity
		}
	}
	assert.Equal(t, replayed, f.quantity(t, "prod-1", "loc-a"))
	assert.Equal(t, 7, replayed)
}

// Cada asiento captura previous/new del instante de escritura y encadena con el
// siguiente: el new de uno es el previous del que sigue.
func TestLibro_AsientosEncadenados(t *testing.T) {
	f := newEngine(t)
	f.apply(t, entity.MovementTypeInbound, 10)
	f.apply(t, entity.MovementTypeOutbound, 4)
	f.apply(t, entity.MovementTypeInbound, 2)

	movs, err := f.movements.ListByPair("prod-1", "loc-a")
	require.NoError(t, err)
	require.Len(t, movs, 3)
	for i := 1; i < len(movs); i++ {
		assert.Equal(t, movs[i-1].NewQuantity, movs[i].PreviousQuantity)
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// ApplyInTx (ruta compartida con sesiones y lotes)
// ──────────────────────────────────────────────────────────────────────────────

func TestApplyInTx_UsaElRelojDelCaller(t *testing.T) {
	levels := &fakeLevelRepo{levels: map[string]*entity.StockLevel{}}
	movs := &fakeMovementRepo{}
	now := time.Date(2026, 8, 29, 10, 0, 0, 0, time.UTC)

	newQty, err := stock.ApplyInTx(movs, levels, stock.MovementInput{
		ProductID:  "prod-1",
		LocationID: "loc-a",
		Type:       entity.MovementTypeInbound,
		Quantity:   3,
		Reference:  "Bulk Barcode Scan",
		ActorID:    "actor-1",
	}, now)

	require.NoError(t, err)
	assert.Equal(t, 3, newQty)
	require.Len(t, movs.movements, 1)
	assert.True(t, movs.movements[0].CreatedAt.Equal(now))
	assert.Equal(t, "Bulk Barcode Scan", movs.movements[0].Reference)
	level, _ := levels.Get("prod-1", "loc-a")
	require.NotNil(t, level)
	assert.True(t, level.UpdatedAt.Equal(now))
}

// ──────────────────────────────────────────────────────────────────────────────
// Consultas
// ──────────────────────────────────────────────────────────────────────────────

func TestGetSnapshot_ParSinMovimientosEsNil(t *testing.T) {
	f := newEngine(t)

	level, err := f.uc.GetSnapshot(context.Background(), "prod-1", "loc-a")

	require.NoError(t, err)
	assert.Nil(t, level, "ausente equivale a cantidad 0; el caller decide el 404")
}

func TestListMovements_FiltraPorTipoYLimita(t *testing.T) {
	f := newEngine(t)
	f.apply(t, entity.MovementTypeInbound, 1)
	f.apply(t, entity.MovementTypeOutbound, 1)
	f.apply(t, entity.MovementTypeInbound, 1)
	f.apply(t, entity.MovementTypeInbound, 1)

	movs, err := f.uc.ListMovements(context.Background(), repository.MovementFilter{
		Type:  entity.MovementTypeInbound,
		Limit: 2,
	})

	require.NoError(t, err)
	require.Len(t, movs, 2)
	for _, m := range movs {
		assert.Equal(t, entity.MovementTypeInbound, m.Type)
	}
}

func TestListMovements_LimitePorDefecto(t *testing.T) {
	f := newEngine(t)
	f.apply(t, entity.MovementTypeInbound, 1)

	movs, err := f.uc.ListMovements(context.Background(), repository.MovementFilter{})

	require.NoError(t, err)
	assert.Len(t, movs, 1)
}

// Los IDs de los asientos son UUID generados por el motor.
func TestApplyMovement_AsignaUUIDAlAsiento(t *testing.T) {
	f := newEngine(t)
	f.apply(t, entity.MovementTypeInbound, 1)

	id := f.movements.movements[0].ID
	assert.Len(t, id, 36)
	assert.Equal(t, 4, strings.Count(id, "-"))
}
