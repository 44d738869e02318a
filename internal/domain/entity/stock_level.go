package entity

import "time"

// StockLevel representa la cantidad actual de un producto en una ubicación.
// Clave única (ProductID, LocationID). Se crea perezosamente con el primer
// movimiento del par y nunca se borra (la cantidad puede bajar a 0).
// Invariante: Quantity es siempre el fold de los movimientos del par en orden
// de creación, partiendo de 0.
type StockLevel struct {
	ProductID        string
	LocationID       string
	Quantity         int // nunca negativo
	ReservedQuantity int // reservado para pedidos; el motor de movimientos no lo toca
	UpdatedAt        time.Time
}

// StockLevelDetail nivel de stock enriquecido con producto y ubicación para listados.
type StockLevelDetail struct {
	StockLevel
	Product  *Product
	Location *Location
}

// LowStock indica si la cantidad del par está en o por debajo del punto de reorden del producto.
func (d *StockLevelDetail) LowStock() bool {
	return d.Product != nil && d.Quantity <= d.Product.ReorderLevel
}
