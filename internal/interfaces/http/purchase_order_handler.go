package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/wms-api/internal/application/dto"
	"github.com/jhoicas/wms-api/internal/application/purchasing"
	"github.com/jhoicas/wms-api/internal/domain/entity"
	"github.com/jhoicas/wms-api/pkg/logger"
)

// PurchaseOrderHandler órdenes de compra (protegido).
type PurchaseOrderHandler struct {
	uc  *purchasing.PurchaseOrderUseCase
	log *logger.Logger
}

// NewPurchaseOrderHandler construye el handler.
func NewPurchaseOrderHandler(uc *purchasing.PurchaseOrderUseCase, log *logger.Logger) *PurchaseOrderHandler {
	return &PurchaseOrderHandler{uc: uc, log: log}
}

// Create godoc
// @Summary      Crear orden de compra
// @Tags         purchase-orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body      dto.CreatePurchaseOrderRequest  true  "proveedor, bodega y fecha esperada"
// @Success      201   {object}  dto.PurchaseOrderResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/purchase-orders [post]
func (h *PurchaseOrderHandler) Create(c *fiber.Ctx) error {
	var in dto.CreatePurchaseOrderRequest
	if ok, err := bindBody(c, &in); !ok {
		return err
	}
	po, err := h.uc.Create(c.UserContext(), purchasing.CreateInput{
		SupplierID:           in.SupplierID,
		WarehouseID:          in.WarehouseID,
		ExpectedDeliveryDate: in.ExpectedDeliveryDate,
	})
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.FromPurchaseOrder(po))
}

// List godoc
// @Summary      Listar órdenes de compra
// @Tags         purchase-orders
// @Security     Bearer
// @Produce      json
// @Param        status  query  string  false  "DRAFT | APPROVED | RECEIVED"
// @Param        limit   query  int     false  "máximo"
// @Param        offset  query  int     false  "desplazamiento"
// @Success      200  {object}  dto.ListResponse[dto.PurchaseOrderResponse]
// @Router       /api/purchase-orders [get]
func (h *PurchaseOrderHandler) List(c *fiber.Ctx) error {
	var q dto.PurchaseOrderListQuery
	if ok, err := bindQuery(c, &q); !ok {
		return err
	}
	var status *entity.PurchaseOrderStatus
	if q.Status != "" {
		s := entity.PurchaseOrderStatus(q.Status)
		status = &s
	}
	list, err := h.uc.List(c.UserContext(), status, q.Limit, q.Offset)
	if err != nil {
		return writeError(c, h.log, err)
	}
	out := make([]dto.PurchaseOrderResponse, 0, len(list))
	for _, po := range list {
		out = append(out, dto.FromPurchaseOrder(po))
	}
	return c.JSON(dto.NewList(out))
}

// Get godoc
// @Summary      Obtener orden de compra
// @Tags         purchase-orders
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "orden de compra"
// @Success      200  {object}  dto.PurchaseOrderResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/purchase-orders/{id} [get]
func (h *PurchaseOrderHandler) Get(c *fiber.Ctx) error {
	po, err := h.uc.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(dto.FromPurchaseOrder(po))
}

// AddItem godoc
// @Summary      Agregar línea a la orden de compra
// @Tags         purchase-orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path      string                           true  "orden de compra"
// @Param        body  body      dto.AddPurchaseOrderItemRequest  true  "producto, ubicación, cantidad y precio"
// @Success      200   {object}  dto.PurchaseOrderResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/purchase-orders/{id}/items [post]
func (h *PurchaseOrderHandler) AddItem(c *fiber.Ctx) error {
	var in dto.AddPurchaseOrderItemRequest
	if ok, err := bindBody(c, &in); !ok {
		return err
	}
	po, err := h.uc.AddItem(c.UserContext(), c.Params("id"), purchasing.AddItemInput{
		ProductID:       in.ProductID,
		LocationID:      in.LocationID,
		OrderedQuantity: in.OrderedQuantity,
		UnitPrice:       in.UnitPrice,
	})
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(dto.FromPurchaseOrder(po))
}

// Approve godoc
// @Summary      Aprobar orden de compra
// @Tags         purchase-orders
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "orden de compra"
// @Success      200  {object}  dto.PurchaseOrderResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Failure      422  {object}  dto.ErrorResponse
// @Router       /api/purchase-orders/{id}/approve [post]
func (h *PurchaseOrderHandler) Approve(c *fiber.Ctx) error {
	po, err := h.uc.Approve(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(dto.FromPurchaseOrder(po))
}

// Receive godoc
// @Summary      Recibir orden de compra
// @Description  Ingresa al stock todo lo pendiente de cada línea y registra un IN por línea.
// @Tags         purchase-orders
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "orden de compra"
// @Success      200  {object}  dto.PurchaseOrderResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/purchase-orders/{id}/receive [post]
func (h *PurchaseOrderHandler) Receive(c *fiber.Ctx) error {
	po, err := h.uc.Receive(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(dto.FromPurchaseOrder(po))
}

// PDF godoc
// @Summary      Documento PDF de la orden de compra
// @Tags         purchase-orders
// @Security     Bearer
// @Produce      application/pdf
// @Param        id  path  string  true  "orden de compra"
// @Success      200  {file}    binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/purchase-orders/{id}/pdf [get]
func (h *PurchaseOrderHandler) PDF(c *fiber.Ctx) error {
	out, filename, err := h.uc.RenderPDF(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("inline; filename=%q", filename))
	return c.Send(out)
}
