package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/medagenda/internal/httperr"
	"github.com/BruksfildServices01/medagenda/internal/httpresp"
	"github.com/BruksfildServices01/medagenda/internal/middleware"
	ucAvailability "github.com/BruksfildServices01/medagenda/internal/usecase/availability"
)

type AvailabilityHandler struct {
	create *ucAvailability.CreateWindow
	list   *ucAvailability.ListWindows
	update *ucAvailability.UpdateWindow
	remove *ucAvailability.DeleteWindow
}

func NewAvailabilityHandler(
	create *ucAvailability.CreateWindow,
	list *ucAvailability.ListWindows,
	update *ucAvailability.UpdateWindow,
	remove *ucAvailability.DeleteWindow,
) *AvailabilityHandler {
	return &AvailabilityHandler{create: create, list: list, update: update, remove: remove}
}

type WindowRequest struct {
	DiaSemana              string   `json:"dia_semana"`
	Horarios               []string `json:"horarios"`
	Local                  string   `json:"local"`
	DuracaoConsultaMinutos int      `json:"duracao_consulta_minutos"`
	IntervaloMinutos       int      `json:"intervalo_consulta_minutos"`
	Indisponivel           bool     `json:"indisponivel"`
}

type WindowPatchRequest struct {
	DiaSemana              *string   `json:"dia_semana"`
	Horarios               *[]string `json:"horarios"`
	Local                  *string   `json:"local"`
	DuracaoConsultaMinutos *int      `json:"duracao_consulta_minutos"`
	IntervaloMinutos       *int      `json:"intervalo_consulta_minutos"`
	Indisponivel           *bool     `json:"indisponivel"`
}

func (h *AvailabilityHandler) Create(c *gin.Context) {
	var req WindowRequest
	if !bindJSON(c, &req) {
		return
	}

	w, err := h.create.Execute(c.Request.Context(), middleware.ActorFrom(c), ucAvailability.WindowInput{
		Weekday:         req.DiaSemana,
		StartTimes:      req.Horarios,
		Location:        req.Local,
		DurationMinutes: req.DuracaoConsultaMinutos,
		BufferMinutes:   req.IntervaloMinutos,
		Unavailable:     req.Indisponivel,
	})
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.Created(c, w)
}

func (h *AvailabilityHandler) List(c *gin.Context) {
	var practitionerID uint
	if raw := c.Query("medico_id"); raw != "" {
		v, err := strconv.ParseUint(raw, 10, 64)
		if err != nil || v == 0 {
			httperr.BadRequest(c, "invalid_id", "Identificador inválido.")
			return
		}
		practitionerID = uint(v)
	}

	rows, err := h.list.Execute(c.Request.Context(), middleware.ActorFrom(c), practitionerID)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.List(c, rows)
}

// Update serves both PUT and PATCH.
func (h *AvailabilityHandler) Update(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	var req WindowPatchRequest
	if !bindJSON(c, &req) {
		return
	}

	w, err := h.update.Execute(c.Request.Context(), middleware.ActorFrom(c), id, ucAvailability.WindowPatch{
		Weekday:         req.DiaSemana,
		StartTimes:      req.Horarios,
		Location:        req.Local,
		DurationMinutes: req.DuracaoConsultaMinutos,
		BufferMinutes:   req.IntervaloMinutos,
		Unavailable:     req.Indisponivel,
	})
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.OK(c, w)
}

func (h *AvailabilityHandler) Delete(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	if err := h.remove.Execute(c.Request.Context(), middleware.ActorFrom(c), id); err != nil {
		httperr.FromError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
