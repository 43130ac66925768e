// Package handlers provides HTTP handlers for the REST API
package handlers

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/alchemorsel/kitchen/internal/infrastructure/http/middleware"
	"github.com/alchemorsel/kitchen/pkg/errors"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const maxBodyBytes = 1 << 20

// writeJSON writes a JSON response
func (h *Handlers) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("Failed to encode JSON response", zap.Error(err))
	}
}

// writeError translates any error into the {"error": message} envelope
func (h *Handlers) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := errors.StatusOf(err)
	fields := []zap.Field{
		zap.String("request_id", chimiddleware.GetReqID(r.Context())),
		zap.String("code", string(errors.GetCode(err))),
		zap.Int("status", status),
		zap.Error(err),
	}
	if status >= http.StatusInternalServerError {
		h.logger.Error("Request failed", fields...)
	} else {
		h.logger.Debug("Request rejected", fields...)
	}

	h.writeJSON(w, status, errors.ToErrorResponse(err))
}

// decodeJSON reads a bounded JSON body into dst
func (h *Handlers) decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		var maxErr *http.MaxBytesError
		switch {
		case stderrors.Is(err, io.EOF):
			return errors.NewBadRequestError("Request body is required")
		case stderrors.As(err, &maxErr):
			return errors.NewBadRequestError("Request body is too large")
		default:
			return errors.NewAppError(errors.CodeBadRequest, "Malformed JSON body", err.Error())
		}
	}
	return nil
}

// validateStruct runs the validator and converts failures to a validation error
func (h *Handlers) validateStruct(v interface{}) error {
	err := h.validate.Struct(v)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !stderrors.As(err, &fieldErrs) {
		return errors.NewValidationError(err.Error())
	}

	details := make([]errors.ValidationError, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		details = append(details, errors.ValidationError{
			Field:   fe.Field(),
			Value:   fe.Value(),
			Tag:     fe.Tag(),
			Message: validationMessage(fe),
		})
	}
	return errors.NewValidationErrors(details)
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "min", "gte":
		return fmt.Sprintf("%s must be at least %s", fe.Field(), fe.Param())
	case "max", "lte":
		return fmt.Sprintf("%s must be at most %s", fe.Field(), fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", fe.Field(), fe.Param())
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", fe.Field(), fe.Param())
	default:
		return fmt.Sprintf("%s is invalid", fe.Field())
	}
}

// currentUser returns the authenticated user's id
func currentUser(r *http.Request) (uuid.UUID, error) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		return uuid.Nil, errors.NewUnauthorizedError("Authentication required")
	}
	return userID, nil
}

// pathID parses a UUID path parameter
func pathID(r *http.Request, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, name))
	if err != nil {
		return uuid.Nil, errors.NewInvalidInputError(fmt.Sprintf("%s must be a valid UUID", name))
	}
	return id, nil
}

// queryInt reads an optional integer query parameter
func queryInt(r *http.Request, name string) (int, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errors.NewInvalidInputError(fmt.Sprintf("%s must be an integer", name))
	}
	return n, nil
}

// queryBool reads an optional boolean query parameter
func queryBool(r *http.Request, name string) (bool, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return false, nil
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		return false, errors.NewInvalidInputError(fmt.Sprintf("%s must be true or false", name))
	}
	return b, nil
}
