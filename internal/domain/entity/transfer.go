package entity

import "time"

// MovementKind distingue las dos patas de un movimiento en el libro de transacciones.
type MovementKind string

const (
	KindBaja    MovementKind = "baja"    // débito en el origen
	KindEntrega MovementKind = "entrega" // crédito en el destino
)

// Valid reporta si el kind es uno de los dos valores admitidos.
func (k MovementKind) Valid() bool { return k == KindBaja || k == KindEntrega }

// TransferRecord es una entrada inmutable del libro de transacciones.
// Un traslado entre dos ubicaciones operativas produce dos filas (baja + entrega)
// con el mismo desglose de parámetros, para responder "cuánto salió de X" y
// "cuánto llegó a Y" sin re-derivar.
type TransferRecord struct {
	ID          string
	ProductID   string
	Kind        MovementKind
	Quantity    int64
	Source      Location
	Destination Location
	CreatedAt   time.Time
	Lines       []TransferLine
}

// TransferLine es el desglose por parámetro de un TransferRecord.
type TransferLine struct {
	TransferID string
	Name       string
	Quantity   int64
}
