package production

import (
	"context"
	"fmt"
	"sort"

	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/Jamxon/Korxona/internal/domain"
	"github.com/Jamxon/Korxona/internal/domain/entity"
	"github.com/Jamxon/Korxona/internal/domain/inventory"
	"github.com/Jamxon/Korxona/internal/domain/repository"
	"github.com/Jamxon/Korxona/pkg/textnorm"
)

var tracer = otel.Tracer("github.com/Jamxon/Korxona/internal/application/production")

// requirementLoader resuelve producto + BOM → materiales requeridos.
type requirementLoader struct {
	productRepo repository.ProductRepository
	bomRepo     repository.BOMRepository
}

// byName busca el producto por nombre. ErrInvalidInput si name o quantity no son válidos,
// ErrNotFound si el producto no existe.
func (l requirementLoader) byName(ctx context.Context, name string, quantity int64) (*entity.Product, []entity.RequiredMaterial, error) {
	if quantity <= 0 {
		return nil, nil, domain.ErrInvalidInput
	}
	product, err := l.product(ctx, name)
	if err != nil {
		return nil, nil, err
	}
	required, err := l.forProduct(ctx, product.ID, quantity)
	if err != nil {
		return nil, nil, err
	}
	return product, required, nil
}

func (l requirementLoader) product(ctx context.Context, name string) (*entity.Product, error) {
	name = textnorm.Name(name)
	if name == "" {
		return nil, domain.ErrInvalidInput
	}
	product, err := l.productRepo.GetByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	return product, nil
}

// forProduct materiales requeridos ordenados por material_id (orden de bloqueo estable entre transacciones).
func (l requirementLoader) forProduct(ctx context.Context, productID string, quantity int64) ([]entity.RequiredMaterial, error) {
	bom, err := l.bomRepo.ListByProduct(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("leer lista de materiales: %w", err)
	}
	required := inventory.RequiredMaterials(bom, decimal.NewFromInt(quantity))
	sort.SliceStable(required, func(i, j int) bool {
		return required[i].MaterialID < required[j].MaterialID
	})
	return required, nil
}

func finishSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}
