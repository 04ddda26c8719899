package helper

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"njangitech_backend/internals/helpers/apperror"
	"njangitech_backend/internals/helpers/logger"
)

// FromServiceError writes the JSON error matching err's kind.
func FromServiceError(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return JsonError(c, fe.Code, fe.Message)
	}

	var ae *apperror.Error
	if !errors.As(err, &ae) {
		logger.ErrorCtx(c.UserContext(), "unclassified error", zap.Error(err), zap.String("path", c.Path()))
		return JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	switch ae.Kind {
	case apperror.KindNotFound:
		return JsonErrorCode(c, fiber.StatusNotFound, ae.Code, ae.Message)
	case apperror.KindValidation:
		if len(ae.Fields) > 0 {
			return JsonValidationError(c, ae.Message, ae.Fields)
		}
		return JsonErrorCode(c, fiber.StatusUnprocessableEntity, ae.Code, ae.Error())
	case apperror.KindInsufficientFunds:
		return JsonErrorCode(c, fiber.StatusUnprocessableEntity, ae.Code, ae.Message)
	case apperror.KindActiveCreditExists, apperror.KindInvalidTransition, apperror.KindConflict:
		return JsonErrorCode(c, fiber.StatusConflict, ae.Code, ae.Message)
	default:
		logger.ErrorCtx(c.UserContext(), "persistence error", zap.Error(err), zap.String("path", c.Path()))
		return JsonErrorCode(c, fiber.StatusInternalServerError, ae.Code, ae.Error())
	}
}
