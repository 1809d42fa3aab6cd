package entity

import "time"

// ShrinkageRecord registra una merma: stock dado de baja sin destino.
// AttributedTo es la ubicación a la que se debitó el stock; cuando la merma
// llega sin responsable, el motor usa la ubicación fallback configurada.
type ShrinkageRecord struct {
	ID           string
	ProductID    string
	Quantity     int64
	AttributedTo Location
	CreatedAt    time.Time
	Lines        []ShrinkageLine
}

// ShrinkageLine es el desglose por parámetro de una merma.
type ShrinkageLine struct {
	ShrinkageID string
	Name        string
	Quantity    int64
}
