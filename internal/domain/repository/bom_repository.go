package repository

import (
	"context"

	"github.com/Jamxon/Korxona/internal/domain/entity"
)

// BOMRepository lectura de la lista de materiales por producto.
type BOMRepository interface {
	ListByProduct(ctx context.Context, productID string) ([]entity.ProductMaterial, error)
}
