package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/medagenda/internal/dto"
	"github.com/BruksfildServices01/medagenda/internal/httperr"
	"github.com/BruksfildServices01/medagenda/internal/httpresp"
	"github.com/BruksfildServices01/medagenda/internal/middleware"
	"github.com/BruksfildServices01/medagenda/internal/timezone"
	ucAppointment "github.com/BruksfildServices01/medagenda/internal/usecase/appointment"
)

type AppointmentHandler struct {
	create *ucAppointment.CreateAppointment
	update *ucAppointment.UpdateStatus
	cancel *ucAppointment.CancelAppointment
	list   *ucAppointment.ListAppointments
	remove *ucAppointment.DeleteAppointment
	loc    *time.Location
}

func NewAppointmentHandler(
	create *ucAppointment.CreateAppointment,
	update *ucAppointment.UpdateStatus,
	cancel *ucAppointment.CancelAppointment,
	list *ucAppointment.ListAppointments,
	remove *ucAppointment.DeleteAppointment,
	loc *time.Location,
) *AppointmentHandler {
	return &AppointmentHandler{
		create: create,
		update: update,
		cancel: cancel,
		list:   list,
		remove: remove,
		loc:    loc,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateAppointmentRequest struct {
	MedicoID    uint   `json:"medico_id"`
	DataHora    string `json:"data_hora" binding:"required"`
	Observacoes string `json:"observacoes"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// ======================================================
// HANDLERS
// ======================================================

func (h *AppointmentHandler) Create(c *gin.Context) {
	var req CreateAppointmentRequest
	if !bindJSON(c, &req) {
		return
	}

	at, err := timezone.ParseDateTime(req.DataHora, h.loc)
	if err != nil {
		httperr.BadRequest(c, "invalid_date_or_time", "Data e hora inválidas.")
		return
	}

	ap, err := h.create.Execute(c.Request.Context(), middleware.ActorFrom(c), ucAppointment.CreateAppointmentInput{
		PractitionerID: req.MedicoID,
		ScheduledAt:    at,
		Notes:          req.Observacoes,
	})
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.Created(c, dto.FromAppointment(ap, h.loc))
}

func (h *AppointmentHandler) List(c *gin.Context) {
	f := ucAppointment.ListFilters{Status: c.Query("status")}

	if raw := c.Query("data_inicial"); raw != "" {
		from, err := timezone.ParseRangeBound(raw, h.loc, false)
		if err != nil {
			httperr.BadRequest(c, "invalid_date", "Data inicial inválida.")
			return
		}
		f.From = &from
	}
	if raw := c.Query("data_final"); raw != "" {
		to, err := timezone.ParseRangeBound(raw, h.loc, true)
		if err != nil {
			httperr.BadRequest(c, "invalid_date", "Data final inválida.")
			return
		}
		f.To = &to
	}

	aps, err := h.list.Execute(c.Request.Context(), middleware.ActorFrom(c), f)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.List(c, dto.FromAppointments(aps, h.loc))
}

func (h *AppointmentHandler) UpdateStatus(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	var req UpdateStatusRequest
	if !bindJSON(c, &req) {
		return
	}

	ap, err := h.update.Execute(c.Request.Context(), middleware.ActorFrom(c), id, req.Status)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.OK(c, dto.FromAppointment(ap, h.loc))
}

func (h *AppointmentHandler) Cancel(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	ap, err := h.cancel.Execute(c.Request.Context(), middleware.ActorFrom(c), id)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.OK(c, dto.FromAppointment(ap, h.loc))
}

func (h *AppointmentHandler) Delete(c *gin.Context) {
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
