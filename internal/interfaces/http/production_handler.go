package http

import (
	"context"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/Jamxon/Korxona/internal/application/dto"
	"github.com/Jamxon/Korxona/internal/application/production"
	"github.com/Jamxon/Korxona/internal/application/usecase"
	"github.com/Jamxon/Korxona/internal/domain/entity"
	"github.com/Jamxon/Korxona/pkg/logger"
)

// ProductionReports lo que el handler necesita de usecase.ProductionReportUseCase.
type ProductionReports interface {
	Info(ctx context.Context) (*dto.ProductionInfoResponse, error)
	PDF(ctx context.Context) ([]byte, error)
	XLSX(ctx context.Context) ([]byte, error)
}

// Reserver reserva materiales para un producto dado por nombre.
type Reserver interface {
	ReserveByName(ctx context.Context, name string, quantity int64) (*entity.Product, *production.ReservationResult, error)
}

// ProductionHandler endpoints de /api/production.
type ProductionHandler struct {
	reports ProductionReports
	reserve Reserver
	log     *logger.Logger
}

// NewProductionHandler construye el handler.
func NewProductionHandler(reports ProductionReports, reserve Reserver, log *logger.Logger) *ProductionHandler {
	return &ProductionHandler{reports: reports, reserve: reserve, log: log}
}

// Info godoc
// @Summary      Reservar materiales del plan de producción
// @Description  Para cada producto del plan reserva min(requerido, disponible) por material y devuelve el saldo, precio y faltante.
// @Tags         production
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.ProductionInfoResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/production/info [get]
func (h *ProductionHandler) Info(c *fiber.Ctx) error {
	out, err := h.reports.Info(c.UserContext())
	if err != nil {
		h.log.Ctx(c.UserContext()).Error().Err(err).Msg("production info")
		return writeError(c, err, "producto no encontrado")
	}
	return c.JSON(out)
}

// InfoPDF godoc
// @Summary      Reporte de producción en PDF (reserva igual que /info)
// @Tags         production
// @Security     Bearer
// @Produce      application/pdf
// @Success      200
// @Router       /api/production/info.pdf [get]
func (h *ProductionHandler) InfoPDF(c *fiber.Ctx) error {
	data, err := h.reports.PDF(c.UserContext())
	if err != nil {
		h.log.Ctx(c.UserContext()).Error().Err(err).Msg("production pdf")
		return writeError(c, err, "producto no encontrado")
	}
	return sendFile(c, data, "application/pdf", "production", "pdf")
}

// InfoXLSX godoc
// @Summary      Reporte de producción en Excel (reserva igual que /info)
// @Tags         production
// @Security     Bearer
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success      200
// @Router       /api/production/info.xlsx [get]
func (h *ProductionHandler) InfoXLSX(c *fiber.Ctx) error {
	data, err := h.reports.XLSX(c.UserContext())
	if err != nil {
		h.log.Ctx(c.UserContext()).Error().Err(err).Msg("production xlsx")
		return writeError(c, err, "producto no encontrado")
	}
	return sendFile(c, data, xlsxMIME, "production", "xlsx")
}

// Reserve godoc
// @Summary      Reservar materiales para un producto
// @Tags         production
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body      dto.ReserveRequest  true  "name, quantity"
// @Success      200   {object}  dto.ProductionInfoItem
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/production/reserve [post]
func (h *ProductionHandler) Reserve(c *fiber.Ctx) error {
	var in dto.ReserveRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	product, result, err := h.reserve.ReserveByName(c.UserContext(), in.Name, in.Quantity)
	if err != nil {
		return writeError(c, err, "producto no encontrado")
	}
	h.log.Ctx(c.UserContext()).Info().Str("user_id", GetUserID(c)).Str("product", product.Name).
		Int64("quantity", in.Quantity).Bool("rolled_back", result.RolledBack).Msg("materiales reservados")
	return c.JSON(dto.ProductionInfoItem{
		ProductName:      product.Name,
		ProductQty:       in.Quantity,
		ProductMaterials: usecase.ToProductMaterials(result.Lines),
		RolledBack:       result.RolledBack,
	})
}

const xlsxMIME = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

func sendFile(c *fiber.Ctx, data []byte, mime, prefix, ext string) error {
	name := fmt.Sprintf("%s_%s.%s", prefix, time.Now().Format("20060102_150405"), ext)
	c.Set(fiber.HeaderContentType, mime)
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+name+`"`)
	return c.Send(data)
}
