package entity

import "time"

// Product representa un producto terminado (ej. Ko'ylak, Shim). Solo lectura para el núcleo.
type Product struct {
	ID        string
	Name      string
	Code      string
	CreatedAt time.Time
}
