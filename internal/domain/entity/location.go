package entity

import "time"

// Location representa una bodega o ubicación física de stock.
type Location struct {
	ID        string
	Name      string
	Address   string
	IsActive  bool
	CreatedBy string
	CreatedAt time.Time
}
