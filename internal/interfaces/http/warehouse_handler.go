package http

import (
	"context"
	"errors"
	"io"

	"github.com/gofiber/fiber/v2"

	"github.com/Jamxon/Korxona/internal/application/dto"
	"github.com/Jamxon/Korxona/internal/application/production"
	"github.com/Jamxon/Korxona/internal/domain"
	"github.com/Jamxon/Korxona/pkg/logger"
)

// WarehouseUpdater descuenta del almacén los materiales de una producción.
type WarehouseUpdater interface {
	UpdateWarehouse(ctx context.Context, in production.ConsumeInput) ([]production.ConsumedLine, error)
}

// ReservationReleaser libera reservas de un producto.
type ReservationReleaser interface {
	Release(ctx context.Context, name string, quantity int64) ([]production.ReleasedLine, error)
}

// StockService listado, exportación e importación de saldos.
type StockService interface {
	ListStock(ctx context.Context) (*dto.StockListResponse, error)
	ExportStock(ctx context.Context) ([]byte, error)
	ImportStock(ctx context.Context, r io.Reader) (*dto.StockImportResponse, error)
}

// WarehouseHandler endpoints de /api/warehouse.
type WarehouseHandler struct {
	updater  WarehouseUpdater
	releaser ReservationReleaser
	stock    StockService
	log      *logger.Logger
}

// NewWarehouseHandler construye el handler.
func NewWarehouseHandler(updater WarehouseUpdater, releaser ReservationReleaser, stock StockService, log *logger.Logger) *WarehouseHandler {
	return &WarehouseHandler{updater: updater, releaser: releaser, stock: stock, log: log}
}

// Update godoc
// @Summary      Descontar materiales del almacén para una producción
// @Description  Verifica que cada material alcance (saldo - reservado) y descuenta todo o nada.
// @Tags         warehouse
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body      dto.UpdateWarehouseRequest  true  "name, quantity, from_reservation"
// @Success      200   {object}  dto.MessageResponse
// @Failure      400   {object}  dto.MessageResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/warehouse/update [post]
func (h *WarehouseHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateWarehouseRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	_, err := h.updater.UpdateWarehouse(c.UserContext(), production.ConsumeInput{
		Name:            in.Name,
		Quantity:        in.Quantity,
		FromReservation: in.FromReservation,
	})
	if err != nil {
		if !errors.Is(err, domain.ErrInsufficientStock) && !errors.Is(err, domain.ErrInvalidInput) && !errors.Is(err, domain.ErrNotFound) {
			h.log.Ctx(c.UserContext()).Error().Err(err).Str("product", in.Name).Msg("actualizar almacén")
		}
		return writeError(c, err, "producto no encontrado")
	}
	h.log.Ctx(c.UserContext()).Info().Str("user_id", GetUserID(c)).Str("product", in.Name).
		Int64("quantity", in.Quantity).Bool("from_reservation", in.FromReservation).Msg("almacén actualizado")
	return c.JSON(dto.MessageResponse{Message: dto.MessageWarehouseUpdated})
}

// ReleaseReservations godoc
// @Summary      Liberar reservas de un producto
// @Tags         warehouse
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body      dto.ReleaseReservationRequest  true  "name, quantity"
// @Success      200   {object}  dto.ReleaseReservationResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/warehouse/reservations/release [post]
func (h *WarehouseHandler) ReleaseReservations(c *fiber.Ctx) error {
	var in dto.ReleaseReservationRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	lines, err := h.releaser.Release(c.UserContext(), in.Name, in.Quantity)
	if err != nil {
		return writeError(c, err, "producto no encontrado")
	}
	h.log.Ctx(c.UserContext()).Info().Str("user_id", GetUserID(c)).Str("product", in.Name).
		Int64("quantity", in.Quantity).Msg("reservas liberadas")
	out := dto.ReleaseReservationResponse{
		Message:   dto.MessageReservationsReleased,
		Materials: make([]dto.ReleasedMaterial, 0, len(lines)),
	}
	for _, l := range lines {
		out.Materials = append(out.Materials, dto.ReleasedMaterial{MaterialName: l.MaterialName, Released: l.Released, Reserved: l.Reserved})
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Saldos del almacén
// @Tags         warehouse
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.StockListResponse
// @Router       /api/warehouse [get]
func (h *WarehouseHandler) List(c *fiber.Ctx) error {
	out, err := h.stock.ListStock(c.UserContext())
	if err != nil {
		h.log.Ctx(c.UserContext()).Error().Err(err).Msg("listar almacén")
		return writeError(c, err, "")
	}
	return c.JSON(out)
}

// Export godoc
// @Summary      Exportar saldos del almacén a Excel
// @Tags         warehouse
// @Security     Bearer
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success      200
// @Router       /api/warehouse/export.xlsx [get]
func (h *WarehouseHandler) Export(c *fiber.Ctx) error {
	data, err := h.stock.ExportStock(c.UserContext())
	if err != nil {
		h.log.Ctx(c.UserContext()).Error().Err(err).Msg("exportar almacén")
		return writeError(c, err, "")
	}
	return sendFile(c, data, xlsxMIME, "warehouse", "xlsx")
}

// Import godoc
// @Summary      Aprovisionar el almacén desde Excel
// @Description  Columnas material_name, remainder, price. Cada fila se aplica por separado; las inválidas se reportan.
// @Tags         warehouse
// @Security     Bearer
// @Accept       multipart/form-data
// @Produce      json
// @Param        file  formData  file  true  "hoja .xlsx"
// @Success      200   {object}  dto.StockImportResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/warehouse/import [post]
func (h *WarehouseHandler) Import(c *fiber.Ctx) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_FILE", Message: "campo multipart 'file' requerido"})
	}
	f, err := fh.Open()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_FILE", Message: "no se pudo abrir el archivo"})
	}
	defer f.Close()

	out, err := h.stock.ImportStock(c.UserContext(), f)
	if err != nil {
		return writeError(c, err, "")
	}
	h.log.Ctx(c.UserContext()).Info().Str("user_id", GetUserID(c)).Str("file", fh.Filename).Msg("almacén importado")
	return c.JSON(out)
}
