package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/agenda/internal/dto"
	"github.com/BruksfildServices01/agenda/internal/httperr"
	"github.com/BruksfildServices01/agenda/internal/usecase/appointment"
)

////////////////////////////////////////////////////////
// HANDLER
////////////////////////////////////////////////////////

// PublicHandler serves the token links clients receive by WhatsApp.
type PublicHandler struct {
	show    *appointment.GetByToken
	respond *appointment.RespondByToken
}

func NewPublicHandler(
	show *appointment.GetByToken,
	respond *appointment.RespondByToken,
) *PublicHandler {
	return &PublicHandler{
		show:    show,
		respond: respond,
	}
}

type RespondRequest struct {
	Action string `json:"action"`
}

type RespondResponse struct {
	Outcome     string                   `json:"outcome"`
	Code        string                   `json:"code"`
	Message     string                   `json:"message"`
	Changed     bool                     `json:"changed"`
	Appointment dto.PublicAppointmentDTO `json:"appointment"`
}

////////////////////////////////////////////////////////
// CONFIRMATION
////////////////////////////////////////////////////////

func (h *PublicHandler) Show(c *gin.Context) {
	ap, err := h.show.Execute(c.Request.Context(), c.Param("token"))
	if err != nil {
		httperr.FromError(c, err, "failed_to_load_appointment")
		return
	}

	c.JSON(http.StatusOK, gin.H{"appointment": dto.NewPublicAppointment(ap)})
}

// Respond always answers 200 once the token resolves; rejected actions are
// told apart by outcome and code.
func (h *PublicHandler) Respond(c *gin.Context) {
	var req RespondRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	out, err := h.respond.Execute(c.Request.Context(), c.Param("token"), req.Action)
	if err != nil {
		httperr.FromError(c, err, "failed_to_respond")
		return
	}

	c.JSON(http.StatusOK, RespondResponse{
		Outcome:     string(out.Outcome),
		Code:        out.Code,
		Message:     out.Message,
		Changed:     out.Changed,
		Appointment: dto.NewPublicAppointment(out.Appointment),
	})
}
