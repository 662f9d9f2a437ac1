package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/wms-api/internal/application/dto"
	"github.com/jhoicas/wms-api/internal/application/inventory"
	"github.com/jhoicas/wms-api/internal/domain/entity"
	"github.com/jhoicas/wms-api/pkg/logger"
)

// InventoryHandler traslados, ajustes y consultas de saldos y movimientos (protegido).
type InventoryHandler struct {
	stock     *inventory.StockUseCase
	movements *inventory.MovementQueryUseCase
	log       *logger.Logger
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(stock *inventory.StockUseCase, movements *inventory.MovementQueryUseCase, log *logger.Logger) *InventoryHandler {
	return &InventoryHandler{stock: stock, movements: movements, log: log}
}

// Transfer godoc
// @Summary      Trasladar stock entre ubicaciones
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body      dto.TransferRequest  true  "producto, origen, destino y cantidad"
// @Success      201   {object}  dto.TransferResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/inventory/transfers [post]
func (h *InventoryHandler) Transfer(c *fiber.Ctx) error {
	var in dto.TransferRequest
	if ok, err := bindBody(c, &in); !ok {
		return err
	}
	res, err := h.stock.TransferStock(c.UserContext(), inventory.TransferInput{
		ProductID:       in.ProductID,
		FromLocationID:  in.FromLocationID,
		ToLocationID:    in.ToLocationID,
		Quantity:        in.Quantity,
		Reason:          in.Reason,
		ReferenceNumber: in.ReferenceNumber,
	})
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.TransferResponse{
		From:     dto.FromBalance(res.From),
		To:       dto.FromBalance(res.To),
		Movement: dto.FromMovement(res.Movement),
	})
}

// Adjust godoc
// @Summary      Ajustar stock por conteo físico
// @Description  Fija la cantidad absoluta del par producto+ubicación y registra un ADJUSTMENT por la diferencia.
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body      dto.AdjustRequest  true  "producto, ubicación y cantidad contada"
// @Success      201   {object}  dto.AdjustResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/inventory/adjustments [post]
func (h *InventoryHandler) Adjust(c *fiber.Ctx) error {
	var in dto.AdjustRequest
	if ok, err := bindBody(c, &in); !ok {
		return err
	}
	res, err := h.stock.AdjustStock(c.UserContext(), inventory.AdjustInput{
		ProductID:       in.ProductID,
		LocationID:      in.LocationID,
		NewQuantity:     in.NewQuantity,
		Reason:          in.Reason,
		ReferenceNumber: in.ReferenceNumber,
	})
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.AdjustResponse{
		Balance:     dto.FromBalance(res.Balance),
		OldQuantity: res.OldQuantity,
		Movement:    dto.FromMovement(res.Movement),
	})
}

// ListBalances godoc
// @Summary      Consultar saldos
// @Description  Exactamente uno de product_id, location_id o warehouse_id.
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        product_id    query  string  false  "producto"
// @Param        location_id   query  string  false  "ubicación"
// @Param        warehouse_id  query  string  false  "bodega"
// @Success      200  {object}  dto.ListResponse[dto.BalanceResponse]
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/inventory/balances [get]
func (h *InventoryHandler) ListBalances(c *fiber.Ctx) error {
	var q dto.BalanceQuery
	if ok, err := bindQuery(c, &q); !ok {
		return err
	}
	set := 0
	for _, v := range []string{q.ProductID, q.LocationID, q.WarehouseID} {
		if v != "" {
			set++
		}
	}
	if set != 1 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code:    "VALIDATION",
			Message: "indique exactamente uno de product_id, location_id o warehouse_id",
		})
	}

	var (
		views []*entity.BalanceView
		err   error
	)
	ctx := c.UserContext()
	switch {
	case q.ProductID != "":
		views, err = h.stock.ListByProduct(ctx, q.ProductID)
	case q.LocationID != "":
		views, err = h.stock.ListByLocation(ctx, q.LocationID)
	default:
		views, err = h.stock.ListByWarehouse(ctx, q.WarehouseID)
	}
	if err != nil {
		return writeError(c, h.log, err)
	}
	out := make([]dto.BalanceResponse, 0, len(views))
	for _, v := range views {
		out = append(out, dto.FromBalanceView(v))
	}
	return c.JSON(dto.NewList(out))
}

// GetBalance godoc
// @Summary      Saldo de un producto en una ubicación
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        product_id   path  string  true  "producto"
// @Param        location_id  path  string  true  "ubicación"
// @Success      200  {object}  dto.BalanceResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/balances/{product_id}/{location_id} [get]
func (h *InventoryHandler) GetBalance(c *fiber.Ctx) error {
	b, err := h.stock.GetBalance(c.UserContext(), c.Params("product_id"), c.Params("location_id"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(dto.FromBalance(b))
}

// ListMovements godoc
// @Summary      Historial de movimientos
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        product_id  query  string  false  "producto"
// @Param        type        query  string  false  "IN | OUT | ADJUSTMENT | TRANSFER"
// @Param        from        query  string  false  "RFC3339"
// @Param        to          query  string  false  "RFC3339"
// @Param        limit       query  int     false  "máximo 500"
// @Param        offset      query  int     false  "desplazamiento"
// @Success      200  {object}  dto.ListResponse[dto.MovementResponse]
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/inventory/movements [get]
func (h *InventoryHandler) ListMovements(c *fiber.Ctx) error {
	var q dto.MovementQuery
	if ok, err := bindQuery(c, &q); !ok {
		return err
	}
	filter := entity.MovementFilter{Limit: q.Limit, Offset: q.Offset}
	if q.ProductID != "" {
		filter.ProductID = &q.ProductID
	}
	if q.Type != "" {
		t := entity.MovementType(q.Type)
		filter.Type = &t
	}
	if q.From != "" {
		from, _ := time.Parse(time.RFC3339, q.From)
		filter.From = &from
	}
	if q.To != "" {
		to, _ := time.Parse(time.RFC3339, q.To)
		filter.To = &to
	}

	list, err := h.movements.List(c.UserContext(), filter)
	if err != nil {
		return writeError(c, h.log, err)
	}
	out := make([]dto.MovementResponse, 0, len(list))
	for _, m := range list {
		out = append(out, dto.FromMovement(m))
	}
	return c.JSON(dto.NewList(out))
}

// GetMovement godoc
// @Summary      Detalle de un movimiento
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "movimiento"
// @Success      200  {object}  dto.MovementResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/movements/{id} [get]
func (h *InventoryHandler) GetMovement(c *fiber.Ctx) error {
	m, err := h.movements.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(dto.FromMovement(m))
}
