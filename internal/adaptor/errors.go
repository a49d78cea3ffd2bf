package adaptor

import (
	"errors"
	"net/http"

	"movie-reviews/pkg/utils"

	"go.uber.org/zap"
)

// writeServiceError maps service errors onto HTTP responses. Classification
// goes through errors.Is/As against the shared sentinels, so handlers never
// match on message strings.
func writeServiceError(w http.ResponseWriter, log *zap.Logger, err error, operation string) {
	var validationErr *utils.ValidationError

	switch {
	case errors.As(err, &validationErr):
		log.Warn(operation+" validation failed", zap.Any("errors", validationErr.Fields))
		utils.ResponseValidationErrors(w, validationErr.Fields)

	case errors.Is(err, utils.ErrInvalidParameter):
		log.Warn(operation+" rejected", zap.Error(err))
		utils.ResponseBadRequest(w, err.Error())

	case errors.Is(err, utils.ErrUnauthorized):
		log.Warn(operation+" unauthorized", zap.Error(err))
		utils.ResponseUnauthorized(w, err.Error())

	case errors.Is(err, utils.ErrForbidden):
		log.Warn(operation+" forbidden", zap.Error(err))
		utils.ResponseForbidden(w, err.Error())

	case errors.Is(err, utils.ErrNotFound):
		log.Warn(operation+" failed - not found", zap.Error(err))
		utils.ResponseNotFound(w, err.Error())

	default:
		log.Error("Failed to "+operation, zap.Error(err))
		utils.ResponseInternalError(w, "Internal server error")
	}
}
