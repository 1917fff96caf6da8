package handlers

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/medagenda/internal/dto"
	"github.com/BruksfildServices01/medagenda/internal/httperr"
	"github.com/BruksfildServices01/medagenda/internal/httpresp"
	"github.com/BruksfildServices01/medagenda/internal/infra/imaging"
	"github.com/BruksfildServices01/medagenda/internal/middleware"
	ucAccount "github.com/BruksfildServices01/medagenda/internal/usecase/account"
)

type MeHandler struct {
	accounts *ucAccount.Service
}

func NewMeHandler(accounts *ucAccount.Service) *MeHandler {
	return &MeHandler{accounts: accounts}
}

type UpdateMeRequest struct {
	Nome           *string `json:"nome"`
	CPF            *string `json:"cpf"`
	DataNascimento *string `json:"data_nascimento"`
	Sexo           *string `json:"sexo"`
	Endereco       *string `json:"endereco"`
	Cidade         *string `json:"cidade"`
	Estado         *string `json:"estado"`
	Telefone       *string `json:"telefone"`
	CRM            *string `json:"crm"`
	Especialidade  *string `json:"especialidade"`
}

func (h *MeHandler) Get(c *gin.Context) {
	u, err := h.accounts.Profile(c.Request.Context(), middleware.ActorFrom(c))
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.OK(c, dto.FromUser(u))
}

// Update serves both PUT and PATCH; absent fields are left untouched.
func (h *MeHandler) Update(c *gin.Context) {
	var req UpdateMeRequest
	if !bindJSON(c, &req) {
		return
	}

	u, err := h.accounts.UpdateProfile(c.Request.Context(), middleware.ActorFrom(c), ucAccount.ProfilePatch{
		Name:      req.Nome,
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
	httpresp.OK(c, dto.FromUser(u))
}

func (h *MeHandler) UploadPhoto(c *gin.Context) {
	fh, err := c.FormFile("foto")
	if err != nil {
		httperr.BadRequest(c, "missing_file", "Envie a imagem no campo foto.")
		return
	}

	f, err := fh.Open()
	if err != nil {
		httperr.BadRequest(c, "invalid_file", "Arquivo inválido.")
		return
	}
	defer f.Close()

	u, err := h.accounts.UploadPhoto(c.Request.Context(), middleware.ActorFrom(c), f)
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.OK(c, dto.FromUser(u))
}

func (h *MeHandler) Photo(c *gin.Context) {
	body, err := h.accounts.Photo(c.Request.Context(), middleware.ActorFrom(c).UserID)
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	defer body.Close()

	c.Header("Content-Type", imaging.PhotoMediaType)
	c.Header("Cache-Control", "private, max-age=300")
	c.Status(http.StatusOK)
	if _, err := io.Copy(c.Writer, body); err != nil {
		_ = c.Error(err)
	}
}
