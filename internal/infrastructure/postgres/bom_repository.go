package postgres

import (
	"context"
	"fmt"

	"github.com/Jamxon/Korxona/internal/domain/entity"
	"github.com/Jamxon/Korxona/internal/domain/repository"
)

var _ repository.BOMRepository = (*BOMRepo)(nil)

// BOMRepo lista de materiales (product_materials).
type BOMRepo struct {
	q Querier
}

func NewBOMRepository(q Querier) *BOMRepo {
	return &BOMRepo{q: q}
}

func (r *BOMRepo) ListByProduct(ctx context.Context, productID string) ([]entity.ProductMaterial, error) {
	rows, err := r.q.Query(ctx, `
		SELECT pm.product_id, pm.material_id, m.name, pm.quantity
		FROM product_materials pm
		JOIN materials m ON m.id = pm.material_id
		WHERE pm.product_id = $1
		ORDER BY pm.material_id`, productID)
	if err != nil {
		return nil, fmt.Errorf("list bom: %w", err)
	}
	defer rows.Close()
	var out []entity.ProductMaterial
	for rows.Next() {
		var pm entity.ProductMaterial
		if err := rows.Scan(&pm.ProductID, &pm.MaterialID, &pm.MaterialName, &pm.Quantity); err != nil {
			return nil, fmt.Errorf("scan bom: %w", err)
		}
		out = append(out, pm)
	}
	return out, rows.Err()
}
