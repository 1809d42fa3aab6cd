// Package metrics expone los contadores Prometheus del motor de inventario.
// Los handlers HTTP los incrementan; los casos de uso no conocen Prometheus.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// TransfersTotal traslados ejecutados con éxito, por origen y destino.
	TransfersTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "cafeteria_transfers_total",
		Help: "Traslados de stock completados",
	}, []string{"desde", "hacia"})

	// EntriesTotal entradas de mercancía al almacén completadas.
	EntriesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "cafeteria_entries_total",
		Help: "Entradas de compra al almacén completadas",
	})

	// SalesTotal ventas registradas, por ubicación vendedora.
	SalesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "cafeteria_sales_total",
		Help: "Ventas registradas",
	}, []string{"location"})

	// LossesTotal mermas registradas.
	LossesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "cafeteria_losses_total",
		Help: "Mermas registradas",
	})

	// InsufficientStockTotal operaciones rechazadas por saldo insuficiente.
	InsufficientStockTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "cafeteria_insufficient_stock_total",
		Help: "Operaciones rechazadas por saldo insuficiente",
	})
)
