package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/medagenda/internal/httperr"
	"github.com/BruksfildServices01/medagenda/internal/httpresp"
	ucVerification "github.com/BruksfildServices01/medagenda/internal/usecase/verification"
)

type VerificationHandler struct {
	codes *ucVerification.Service
}

func NewVerificationHandler(codes *ucVerification.Service) *VerificationHandler {
	return &VerificationHandler{codes: codes}
}

type SendCodeRequest struct {
	Email      string `json:"email"`
	Finalidade string `json:"finalidade"`
}

type VerifyCodeRequest struct {
	Email  string `json:"email"`
	Codigo string `json:"codigo"`
}

type ResetPasswordRequest struct {
	Email     string `json:"email"`
	Codigo    string `json:"codigo"`
	NovaSenha string `json:"nova_senha"`
}

func (h *VerificationHandler) Send(c *gin.Context) {
	var req SendCodeRequest
	if !bindJSON(c, &req) {
		return
	}

	if err := h.codes.Issue(c.Request.Context(), req.Email, req.Finalidade); err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.Message(c, http.StatusOK, "Código enviado para o e-mail informado.")
}

func (h *VerificationHandler) Verify(c *gin.Context) {
	var req VerifyCodeRequest
	if !bindJSON(c, &req) {
		return
	}

	if err := h.codes.Verify(c.Request.Context(), req.Email, req.Codigo); err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.Message(c, http.StatusOK, "Código verificado com sucesso.")
}

func (h *VerificationHandler) ResetPassword(c *gin.Context) {
	var req ResetPasswordRequest
	if !bindJSON(c, &req) {
		return
	}

	if err := h.codes.ResetPassword(c.Request.Context(), req.Email, req.Codigo, req.NovaSenha); err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.Message(c, http.StatusOK, "Senha redefinida com sucesso.")
}
