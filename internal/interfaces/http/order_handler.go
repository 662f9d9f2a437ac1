package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/wms-api/internal/application/dto"
	"github.com/jhoicas/wms-api/internal/application/orders"
	"github.com/jhoicas/wms-api/internal/domain/entity"
	"github.com/jhoicas/wms-api/pkg/logger"
)

// OrderHandler pedidos de venta (protegido).
type OrderHandler struct {
	uc  *orders.SalesOrderUseCase
	log *logger.Logger
}

// NewOrderHandler construye el handler.
func NewOrderHandler(uc *orders.SalesOrderUseCase, log *logger.Logger) *OrderHandler {
	return &OrderHandler{uc: uc, log: log}
}

// Create godoc
// @Summary      Crear pedido de venta
// @Tags         orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body      dto.CreateOrderRequest  true  "cliente, dirección y bodega"
// @Success      201   {object}  dto.OrderResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/orders [post]
func (h *OrderHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateOrderRequest
	if ok, err := bindBody(c, &in); !ok {
		return err
	}
	o, err := h.uc.Create(c.UserContext(), orders.CreateInput{
		CustomerName:    in.CustomerName,
		ShippingAddress: in.ShippingAddress,
		WarehouseID:     in.WarehouseID,
	})
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.FromOrder(o))
}

// List godoc
// @Summary      Listar pedidos
// @Tags         orders
// @Security     Bearer
// @Produce      json
// @Param        status  query  string  false  "PENDING | RESERVED | SHIPPED"
// @Param        limit   query  int     false  "máximo"
// @Param        offset  query  int     false  "desplazamiento"
// @Success      200  {object}  dto.ListResponse[dto.OrderResponse]
// @Router       /api/orders [get]
func (h *OrderHandler) List(c *fiber.Ctx) error {
	var q dto.OrderListQuery
	if ok, err := bindQuery(c, &q); !ok {
		return err
	}
	var status *entity.OrderStatus
	if q.Status != "" {
		s := entity.OrderStatus(q.Status)
		status = &s
	}
	list, err := h.uc.List(c.UserContext(), status, q.Limit, q.Offset)
	if err != nil {
		return writeError(c, h.log, err)
	}
	out := make([]dto.OrderResponse, 0, len(list))
	for _, o := range list {
		out = append(out, dto.FromOrder(o))
	}
	return c.JSON(dto.NewList(out))
}

// Get godoc
// @Summary      Obtener pedido
// @Tags         orders
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "pedido"
// @Success      200  {object}  dto.OrderResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/orders/{id} [get]
func (h *OrderHandler) Get(c *fiber.Ctx) error {
	o, err := h.uc.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(dto.FromOrder(o))
}

// AddItem godoc
// @Summary      Agregar línea al pedido
// @Tags         orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path      string                   true  "pedido"
// @Param        body  body      dto.AddOrderItemRequest  true  "producto, ubicación y cantidad"
// @Success      200   {object}  dto.OrderResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/orders/{id}/items [post]
func (h *OrderHandler) AddItem(c *fiber.Ctx) error {
	var in dto.AddOrderItemRequest
	if ok, err := bindBody(c, &in); !ok {
		return err
	}
	o, err := h.uc.AddItem(c.UserContext(), c.Params("id"), orders.AddItemInput{
		ProductID:  in.ProductID,
		LocationID: in.LocationID,
		Quantity:   in.Quantity,
	})
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(dto.FromOrder(o))
}

// Reserve godoc
// @Summary      Reservar stock del pedido
// @Description  Todo o nada: si alguna línea no tiene disponible no se reserva ninguna.
// @Tags         orders
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "pedido"
// @Success      200  {object}  dto.OrderResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Failure      422  {object}  dto.ErrorResponse
// @Router       /api/orders/{id}/reserve [post]
func (h *OrderHandler) Reserve(c *fiber.Ctx) error {
	o, err := h.uc.ReserveStock(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(dto.FromOrder(o))
}

// Ship godoc
// @Summary      Despachar pedido
// @Tags         orders
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "pedido"
// @Success      200  {object}  dto.OrderResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/orders/{id}/ship [post]
func (h *OrderHandler) Ship(c *fiber.Ctx) error {
	o, err := h.uc.ShipOrder(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(dto.FromOrder(o))
}

// Reservations godoc
// @Summary      Reservas del pedido
// @Tags         orders
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "pedido"
// @Success      200  {object}  dto.ListResponse[dto.ReservationResponse]
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/orders/{id}/reservations [get]
func (h *OrderHandler) Reservations(c *fiber.Ctx) error {
	list, err := h.uc.Reservations(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	out := make([]dto.ReservationResponse, 0, len(list))
	for _, r := range list {
		out = append(out, dto.FromReservation(r))
	}
	return c.JSON(dto.NewList(out))
}
