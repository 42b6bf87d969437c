package repository

import (
	"context"

	"github.com/Jamxon/Korxona/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para Product (DIP).
type ProductRepository interface {
	// GetByName busca por nombre normalizado; nil, nil si no existe.
	GetByName(ctx context.Context, name string) (*entity.Product, error)
}
