package handler

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"userapi/internal/http-api/dto"
	"userapi/internal/http-api/service"
)

const (
	MsgInternalError  = "Error interno del servidor"
	MsgInvalidBody    = "El cuerpo de la solicitud es inválido"
	MsgValidationFail = "Validación fallida"
)

var registerJSONNames sync.Once

// useJSONFieldNames makes validator report fields by their JSON name
// ("email") instead of the Go one ("Email").
func useJSONFieldNames() {
	registerJSONNames.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" || name == "" {
				return fld.Name
			}
			return name
		})
	})
}

// statusFor maps a service error onto the HTTP status that carries its kind.
func statusFor(err error) int {
	switch {
	case errors.Is(err, service.ErrInvalidEmail), errors.Is(err, service.ErrInvalidPassword):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrEmailAlreadyExists):
		return http.StatusConflict
	case errors.Is(err, service.ErrUserNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes the uniform {"mensaje": ...} body. Unexpected errors are
// logged and replaced by a generic message.
func respondError(c *gin.Context, logger *slog.Logger, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		logger.ErrorContext(c.Request.Context(), "request failed",
			"method", c.Request.Method,
			"path", c.FullPath(),
			"error", err,
		)
		c.JSON(status, dto.ErrorResponse{Mensaje: MsgInternalError})
		return
	}
	c.JSON(status, dto.ErrorResponse{Mensaje: err.Error()})
}

// respondBindError reports the first failing field of a rejected payload.
func respondBindError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, dto.ErrorResponse{Mensaje: bindErrorMessage(err)})
}

func bindErrorMessage(err error) string {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		if len(validationErrs) == 0 {
			return MsgValidationFail
		}
		fe := validationErrs[0]
		return fmt.Sprintf("%s: %s", fe.Field(), fieldMessage(fe))
	}
	return MsgInvalidBody
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required", "min":
		return "no debe estar vacío"
	case "email":
		return "debe ser una dirección de correo electrónico con formato correcto"
	default:
		return fmt.Sprintf("no cumple la regla %s", fe.Tag())
	}
}
