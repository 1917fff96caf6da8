package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/medagenda/internal/dto"
	"github.com/BruksfildServices01/medagenda/internal/httperr"
	"github.com/BruksfildServices01/medagenda/internal/httpresp"
	ucAccount "github.com/BruksfildServices01/medagenda/internal/usecase/account"
)

type AuthHandler struct {
	accounts *ucAccount.Service
}

func NewAuthHandler(accounts *ucAccount.Service) *AuthHandler {
	return &AuthHandler{accounts: accounts}
}

// --------- Requests ---------

type RegisterRequest struct {
	Email          string `json:"email" binding:"required"`
	Password       string `json:"password" binding:"required"`
	Nome           string `json:"nome"`
	Tipo           string `json:"tipo"`
	CPF            string `json:"cpf"`
	DataNascimento string `json:"data_nascimento"`
	Sexo           string `json:"sexo"`
	Endereco       string `json:"endereco"`
	Cidade         string `json:"cidade"`
	Estado         string `json:"estado"`
	Telefone       string `json:"telefone"`
	CRM            string `json:"crm"`
	Especialidade  string `json:"especialidade"`
}

type TokenRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type RefreshRequest struct {
	Refresh string `json:"refresh" binding:"required"`
}

type CPFRequest struct {
	CPF string `json:"cpf" binding:"required"`
}

type EmailRequest struct {
	Email string `json:"email" binding:"required"`
}

// --------- Handlers ---------

func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if !bindJSON(c, &req) {
		return
	}

	u, err := h.accounts.Register(c.Request.Context(), ucAccount.RegisterInput{
		Email:     req.Email,
		Password:  req.Password,
		Name:      req.Nome,
		Role:      req.Tipo,
		CPF:       req.CPF,
		BirthDate: req.DataNascimento,
		Sex:       req.Sexo,
		Address:   req.Endereco,
		City:      req.Cidade,
		State:     req.Estado,
		Phone:     req.Telefone,
		CRM:       req.CRM,
		Specialty: req.Especialidade,
	})
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.Created(c, gin.H{
		"mensagem": "Usuário registrado com sucesso.",
		"usuario":  dto.FromUser(u),
	})
}

func (h *AuthHandler) Token(c *gin.Context) {
	var req TokenRequest
	if !bindJSON(c, &req) {
		return
	}

	sess, err := h.accounts.Login(c.Request.Context(), req.Email, req.Password)
	if errors.Is(err, ucAccount.ErrInvalidCredentials) {
		httperr.Unauthorized(c, "invalid_credentials", "E-mail ou senha inválidos.")
		return
	}
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.OK(c, gin.H{
		"access":  sess.Pair.Access,
		"refresh": sess.Pair.Refresh,
		"user": gin.H{
			"id":    sess.User.ID,
			"email": sess.User.Email,
			"tipo":  sess.User.Role,
		},
	})
}

func (h *AuthHandler) Refresh(c *gin.Context) {
	var req RefreshRequest
	if !bindJSON(c, &req) {
		return
	}

	access, err := h.accounts.Refresh(c.Request.Context(), req.Refresh)
	if errors.Is(err, ucAccount.ErrInvalidCredentials) {
		httperr.Unauthorized(c, "invalid_token", "Token inválido ou expirado.")
		return
	}
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.OK(c, gin.H{"access": access})
}

func (h *AuthHandler) ValidateCPF(c *gin.Context) {
	var req CPFRequest
	if !bindJSON(c, &req) {
		return
	}

	formatted, err := h.accounts.ValidateCPF(c.Request.Context(), req.CPF)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"valido": true, "cpf": formatted})
}

func (h *AuthHandler) ValidateEmail(c *gin.Context) {
	var req EmailRequest
	if !bindJSON(c, &req) {
		return
	}

	if err := h.accounts.ValidateEmail(c.Request.Context(), req.Email); err != nil {
		httperr.FromError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"valido": true})
}
