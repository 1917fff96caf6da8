package httperr

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

type HTTPError struct {
	Code    string `json:"error_code"`
	Message string `json:"message"`
}

func Write(c *gin.Context, status int, code, message string) {
	c.JSON(status, HTTPError{
		Code:    code,
		Message: message,
	})
}

func BadRequest(c *gin.Context, code, message string) {
	Write(c, http.StatusBadRequest, code, message)
}

func Forbidden(c *gin.Context, code, message string) {
	Write(c, http.StatusForbidden, code, message)
}

func NotFound(c *gin.Context, code, message string) {
	Write(c, http.StatusNotFound, code, message)
}

func Internal(c *gin.Context, code, message string) {
	Write(c, http.StatusInternalServerError, code, message)
}

func Unauthorized(c *gin.Context, code, message string) {
	Write(c, http.StatusUnauthorized, code, message)
}

func TooManyRequests(c *gin.Context, code, message string) {
	Write(c, http.StatusTooManyRequests, code, message)
}

func StatusFor(kind Kind) int {
	switch kind {
	case KindValidation, KindExpired:
		return http.StatusBadRequest
	case KindPermission:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	case KindDelivery:
		return http.StatusBadGateway
	case KindStorage:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}

// FromError writes a BusinessError with its mapped status, anything else as 500.
func FromError(c *gin.Context, err error) {
	var be BusinessError
	if !errors.As(err, &be) {
		Internal(c, "internal_error", "Erro interno.")
		return
	}

	msg := be.Message
	if msg == "" {
		msg = defaultMessage(be.Kind)
	}
	Write(c, StatusFor(be.Kind), be.Code, msg)
}

func defaultMessage(kind Kind) string {
	switch kind {
	case KindValidation:
		return "Dados inválidos."
	case KindPermission:
		return "Você não tem permissão para esta operação."
	case KindNotFound:
		return "Registro não encontrado."
	case KindExpired:
		return "Prazo expirado."
	case KindDelivery:
		return "Falha ao enviar e-mail."
	case KindStorage:
		return "Falha ao acessar arquivo."
	default:
		return "Erro interno."
	}
}
