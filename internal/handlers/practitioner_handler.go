package handlers

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/medagenda/internal/dto"
	"github.com/BruksfildServices01/medagenda/internal/httperr"
	"github.com/BruksfildServices01/medagenda/internal/httpresp"
	"github.com/BruksfildServices01/medagenda/internal/timezone"
	ucAccount "github.com/BruksfildServices01/medagenda/internal/usecase/account"
	ucAppointment "github.com/BruksfildServices01/medagenda/internal/usecase/appointment"
)

type PractitionerHandler struct {
	accounts  *ucAccount.Service
	freeSlots *ucAppointment.FreeSlots
	loc       *time.Location
}

func NewPractitionerHandler(
	accounts *ucAccount.Service,
	freeSlots *ucAppointment.FreeSlots,
	loc *time.Location,
) *PractitionerHandler {
	return &PractitionerHandler{accounts: accounts, freeSlots: freeSlots, loc: loc}
}

func (h *PractitionerHandler) List(c *gin.Context) {
	users, err := h.accounts.ListPractitioners(c.Request.Context(), c.Query("especialidade"))
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.List(c, dto.FromUsers(users))
}

// FreeSlots lists bookable start times for one day. Without "data" the
// current day in the clinic timezone is used.
func (h *PractitionerHandler) FreeSlots(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	day := time.Now().In(h.loc)
	if raw := c.Query("data"); raw != "" {
		d, err := timezone.ParseDate(raw, h.loc)
		if err != nil {
			httperr.BadRequest(c, "invalid_date", "Data inválida.")
			return
		}
		day = d
	}

	slots, err := h.freeSlots.Execute(c.Request.Context(), id, day)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	for i := range slots {
		slots[i].Start = slots[i].Start.In(h.loc)
		slots[i].End = slots[i].End.In(h.loc)
	}
	httpresp.List(c, slots)
}
