package dto

import "time"

// RecordLossRequest body para POST /api/losses. attributed_to vacío debita la
// ubicación fallback configurada (por defecto el almacén).
type RecordLossRequest struct {
	ProductID    string           `json:"product_id"`
	Quantity     int64            `json:"quantity,omitempty"`
	AttributedTo string           `json:"attributed_to,omitempty"`
	Lines        []VariantLineDTO `json:"lines,omitempty"`
}

// LossResponse salida de una merma registrada.
type LossResponse struct {
	ID           string           `json:"id"`
	ProductID    string           `json:"product_id"`
	Quantity     int64            `json:"quantity"`
	AttributedTo string           `json:"attributed_to"`
	CreatedAt    time.Time        `json:"created_at"`
	Lines        []VariantLineDTO `json:"lines,omitempty"`
}
