package handlers

import (
	"errors"
	"net/http"

	"github.com/upb/legaltech-api/backend/services"
	"github.com/upb/legaltech-api/backend/utils"
	"go.uber.org/zap"
)

// statusForError maps a domain error type to an HTTP status. Conflicts and
// inactive accounts are client errors reported as 400.
func statusForError(err error) int {
	switch services.GetErrorType(err) {
	case services.ErrorTypeValidation, services.ErrorTypeConflict, services.ErrorTypeInactive:
		return http.StatusBadRequest
	case services.ErrorTypeNotFound:
		return http.StatusNotFound
	case services.ErrorTypeUnauthorized:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// HandleServiceError maps domain errors to HTTP responses. Only the public
// code, message and details of a domain error reach the client; wrapped
// causes are logged.
func HandleServiceError(w http.ResponseWriter, err error, logger *zap.Logger) {
	if err == nil {
		return
	}

	status := statusForError(err)
	if status == http.StatusInternalServerError {
		// Log internal errors but return generic message
		logger.Error("internal server error",
			zap.Error(err),
			zap.String("error_type", string(services.GetErrorType(err))))
		code := services.GetErrorCode(err)
		if code == "" {
			code = services.ErrInternal.Code
		}
		if err := utils.WriteError(w, http.StatusInternalServerError, code, "An internal error occurred", nil); err != nil {
			logger.Error("failed to write internal error response", zap.Error(err))
		}
		return
	}

	var domainErr *services.DomainError
	errors.As(err, &domainErr)

	var details map[string]interface{}
	if len(domainErr.Details) > 0 {
		details = domainErr.Details
	}

	if err := utils.WriteError(w, status, domainErr.Code, domainErr.Message, details); err != nil {
		logger.Error("failed to write error response", zap.Error(err))
	}

	logger.Debug("handled service error",
		zap.String("type", string(domainErr.Type)),
		zap.String("code", domainErr.Code),
		zap.Int("status", status),
		zap.Error(err))
}

// HandleValidationError handles validation errors from request parsing
func HandleValidationError(w http.ResponseWriter, err error, logger *zap.Logger) {
	if utils.IsValidationError(err) {
		fields := utils.GetValidationFields(err)
		details := make(map[string]interface{}, len(fields))
		for k, v := range fields {
			details[k] = v
		}
		if err := utils.WriteError(w, http.StatusBadRequest, services.ErrValidation.Code, "Validation failed", details); err != nil {
			logger.Error("failed to write validation error response", zap.Error(err))
		}
		return
	}

	logger.Debug("request validation failed", zap.Error(err))
	if err := utils.WriteBadRequest(w, "Invalid request", nil); err != nil {
		logger.Error("failed to write validation error response", zap.Error(err))
	}
}
