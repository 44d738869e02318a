package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto del catálogo (SKU único, barcode único si existe).
// El catálogo completo (categorías, proveedores) vive en un colaborador externo;
// el libro de movimientos solo referencia productos por ID.
type Product struct {
	ID           string
	SKU          string
	Barcode      string // opcional; único cuando no está vacío
	Name         string
	Description  string
	UnitPrice    decimal.Decimal
	ReorderLevel int // umbral para clasificar stock bajo
	IsActive     bool
	CreatedBy    string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
