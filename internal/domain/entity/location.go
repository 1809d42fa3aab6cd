package entity

// Location identifica un contexto que retiene stock dentro de la operación.
type Location string

// Ubicaciones operativas y sentinelas de origen/destino.
const (
	LocationAlmacen   Location = "almacen"   // bodega principal
	LocationCocina    Location = "cocina"    // preparación
	LocationCafeteria Location = "cafeteria" // mostrador / punto de venta

	// LocationMerma es el destino sentinela de las bajas por merma: el stock
	// sale del sistema y no se acredita en ninguna ubicación operativa.
	LocationMerma Location = "merma"

	// LocationProveedor es el origen sentinela de las entradas de compra al almacén.
	LocationProveedor Location = "proveedor"
)

// Operational reporta si la ubicación puede retener stock (no es un sentinela).
func (l Location) Operational() bool {
	switch l {
	case LocationAlmacen, LocationCocina, LocationCafeteria:
		return true
	}
	return false
}

func (l Location) String() string { return string(l) }
