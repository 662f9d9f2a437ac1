package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/wms-api/internal/application/dto"
	"github.com/jhoicas/wms-api/internal/domain"
	"github.com/jhoicas/wms-api/pkg/logger"
)

// writeError traduce un error de dominio a status HTTP y dto.ErrorResponse.
func writeError(c *fiber.Ctx, log *logger.Logger, err error) error {
	status, body := mapError(err)
	if status >= fiber.StatusInternalServerError {
		log.Ctx(c.UserContext()).Error().Err(err).Str("path", c.Path()).Msg("error interno")
	}
	return c.Status(status).JSON(body)
}

func mapError(err error) (int, dto.ErrorResponse) {
	var (
		notFound     *domain.NotFoundError
		insufficient *domain.InsufficientStockError
		invalidState *domain.InvalidStateError
		businessRule *domain.BusinessRuleError
		belowRes     *domain.BelowReservedError
	)
	switch {
	case errors.As(err, &insufficient):
		return fiber.StatusConflict, dto.ErrorResponse{
			Code:    "INSUFFICIENT_STOCK",
			Message: insufficient.Error(),
			Details: map[string]any{
				"product_id":  insufficient.ProductID,
				"location_id": insufficient.LocationID,
				"available":   insufficient.Available,
				"required":    insufficient.Required,
			},
		}
	case errors.Is(err, domain.ErrInsufficientStock):
		return fiber.StatusConflict, dto.ErrorResponse{Code: "INSUFFICIENT_STOCK", Message: err.Error()}
	case errors.As(err, &notFound):
		return fiber.StatusNotFound, dto.ErrorResponse{
			Code:    "NOT_FOUND",
			Message: notFound.Error(),
			Details: map[string]any{"entity": notFound.Entity, "id": notFound.ID},
		}
	case errors.Is(err, domain.ErrNotFound):
		return fiber.StatusNotFound, dto.ErrorResponse{Code: "NOT_FOUND", Message: err.Error()}
	case errors.As(err, &invalidState):
		return fiber.StatusConflict, dto.ErrorResponse{
			Code:    "INVALID_STATE",
			Message: invalidState.Error(),
			Details: map[string]any{"status": invalidState.Status, "operation": invalidState.Operation},
		}
	case errors.As(err, &businessRule):
		return fiber.StatusUnprocessableEntity, dto.ErrorResponse{
			Code:    "BUSINESS_RULE",
			Message: businessRule.Error(),
			Details: map[string]any{"rule": businessRule.Rule},
		}
	case errors.As(err, &belowRes):
		return fiber.StatusBadRequest, dto.ErrorResponse{
			Code:    "BELOW_RESERVED",
			Message: belowRes.Error(),
			Details: map[string]any{"requested": belowRes.Requested, "reserved": belowRes.Reserved},
		}
	case errors.Is(err, domain.ErrBelowReserved):
		return fiber.StatusBadRequest, dto.ErrorResponse{Code: "BELOW_RESERVED", Message: err.Error()}
	case errors.Is(err, domain.ErrInvalidQuantity):
		return fiber.StatusBadRequest, dto.ErrorResponse{Code: "INVALID_QUANTITY", Message: err.Error()}
	case errors.Is(err, domain.ErrInvalidInput):
		return fiber.StatusBadRequest, dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()}
	case errors.Is(err, domain.ErrConflict):
		return fiber.StatusConflict, dto.ErrorResponse{
			Code:    "CONFLICT",
			Message: "conflicto de concurrencia, reintente la operación",
			Details: map[string]any{"retryable": true},
		}
	case errors.Is(err, domain.ErrDuplicate):
		return fiber.StatusConflict, dto.ErrorResponse{Code: "DUPLICATE", Message: err.Error()}
	case errors.Is(err, domain.ErrUnauthorized):
		return fiber.StatusUnauthorized, dto.ErrorResponse{Code: "UNAUTHORIZED", Message: err.Error()}
	case errors.Is(err, domain.ErrForbidden):
		return fiber.StatusForbidden, dto.ErrorResponse{Code: "FORBIDDEN", Message: err.Error()}
	}
	return fiber.StatusInternalServerError, dto.ErrorResponse{Code: "INTERNAL", Message: "error interno"}
}
