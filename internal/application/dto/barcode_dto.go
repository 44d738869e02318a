package dto

// GenerateBarcodesRequest body para POST /api/barcodes/generate.
type GenerateBarcodesRequest struct {
	ProductID  string `json:"product_id"`
	LocationID string `json:"location_id"`
	Quantity   int    `json:"quantity"` // 1..1000
}

// BarcodeBatchResponse respuesta de emisión/consulta de un lote.
type BarcodeBatchResponse struct {
	SessionID string       `json:"session_id"`
	Barcodes  []string     `json:"barcodes"`
	Quantity  int          `json:"quantity"`
	Product   *ProductDTO  `json:"product,omitempty"`
	Location  *LocationDTO `json:"location,omitempty"`
}
