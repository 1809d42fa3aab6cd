package dto

import "time"

// TransferRequest body para POST /api/transfers. Para productos con parámetros se
// envía lines; para planos, quantity.
type TransferRequest struct {
	ProductID   string           `json:"product_id"`
	Quantity    int64            `json:"quantity,omitempty"`
	Source      string           `json:"desde"`
	Destination string           `json:"hacia"`
	Lines       []VariantLineDTO `json:"lines,omitempty"`
}

// TransferResponse saldos agregados tras el traslado.
type TransferResponse struct {
	Quantity           int64 `json:"quantity"`
	SourceBalance      int64 `json:"source_balance"`
	DestinationBalance int64 `json:"destination_balance"`
}

// EntryRequest body para POST /api/entries (compra al almacén).
type EntryRequest struct {
	ProductID string           `json:"product_id"`
	Quantity  int64            `json:"quantity,omitempty"`
	Lines     []VariantLineDTO `json:"lines,omitempty"`
}

// EntryResponse saldo del almacén tras la entrada.
type EntryResponse struct {
	Quantity       int64 `json:"quantity"`
	AlmacenBalance int64 `json:"almacen_balance"`
}

// TransferRecordResponse una entrada del libro de transacciones.
type TransferRecordResponse struct {
	ID          string           `json:"id"`
	ProductID   string           `json:"product_id"`
	Kind        string           `json:"kind"`
	Quantity    int64            `json:"quantity"`
	Source      string           `json:"desde"`
	Destination string           `json:"hacia"`
	CreatedAt   time.Time        `json:"created_at"`
	Lines       []VariantLineDTO `json:"lines,omitempty"`
}
