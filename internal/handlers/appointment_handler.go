package handlers

import (
	"github.com/gin-gonic/gin"

	domain "github.com/BruksfildServices01/agenda/internal/domain/appointment"
	"github.com/BruksfildServices01/agenda/internal/httperr"
	"github.com/BruksfildServices01/agenda/internal/httpresp"
	"github.com/BruksfildServices01/agenda/internal/middleware"
	"github.com/BruksfildServices01/agenda/internal/usecase/appointment"
)

type AppointmentHandler struct {
	create     *appointment.CreateAppointment
	update     *appointment.UpdateAppointment
	remove     *appointment.DeleteAppointment
	get        *appointment.GetAppointment
	list       *appointment.ListAppointments
	attendance *appointment.RecordAttendance
	whatsapp   *appointment.BuildWhatsApp
}

// AppointmentUseCases groups what the handler needs; routes builds it once.
type AppointmentUseCases struct {
	Create     *appointment.CreateAppointment
	Update     *appointment.UpdateAppointment
	Delete     *appointment.DeleteAppointment
	Get        *appointment.GetAppointment
	List       *appointment.ListAppointments
	Attendance *appointment.RecordAttendance
	WhatsApp   *appointment.BuildWhatsApp
}

func NewAppointmentHandler(uc AppointmentUseCases) *AppointmentHandler {
	return &AppointmentHandler{
		create:     uc.Create,
		update:     uc.Update,
		remove:     uc.Delete,
		get:        uc.Get,
		list:       uc.List,
		attendance: uc.Attendance,
		whatsapp:   uc.WhatsApp,
	}
}

// ======================================================
// DTOs
// ======================================================

type AppointmentRequest struct {
	ClientID uint   `json:"client_id" binding:"required"`
	Date     string `json:"date"`
	Time     string `json:"time"`
	Reason   string `json:"reason"`
	Notes    string `json:"notes"`
}

type AttendanceRequest struct {
	Attended *bool `json:"attended" binding:"required"`
}

type AppointmentQuery struct {
	From     string `form:"from" binding:"omitempty,ymd"`
	To       string `form:"to" binding:"omitempty,ymd"`
	State    string `form:"state"`
	ClientID string `form:"client_id" binding:"omitempty,numeric"`
}

// ======================================================
// LIST / GET
// ======================================================

func (h *AppointmentHandler) List(c *gin.Context) {
	var q AppointmentQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		bindError(c, err)
		return
	}

	state, err := domain.ParseStatus(q.State)
	if err != nil {
		httperr.FromError(c, err, "invalid_state_filter")
		return
	}

	clientID, ok := parseOptionalID(c, q.ClientID)
	if !ok {
		return
	}

	f := domain.Filter{From: q.From, To: q.To, State: state, ClientID: clientID}

	apps, err := h.list.Execute(c.Request.Context(), f)
	if err != nil {
		httperr.FromError(c, err, "failed_to_list_appointments")
		return
	}
	httpresp.List(c, apps)
}

func (h *AppointmentHandler) Get(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	ap, err := h.get.Execute(c.Request.Context(), id)
	if err != nil {
		httperr.FromError(c, err, "failed_to_get_appointment")
		return
	}
	httpresp.OK(c, ap)
}

// ======================================================
// CREATE / UPDATE / DELETE
// ======================================================

func (h *AppointmentHandler) Create(c *gin.Context) {
	var req AppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	ap, err := h.create.Execute(c.Request.Context(), appointment.CreateAppointmentInput{
		ActorID:  middleware.ActorID(c),
		ClientID: req.ClientID,
		Date:     req.Date,
		Time:     req.Time,
		Reason:   req.Reason,
		Notes:    req.Notes,
	})
	if err != nil {
		httperr.FromError(c, err, "failed_to_create_appointment")
		return
	}
	httpresp.Created(c, ap)
}

func (h *AppointmentHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req AppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	ap, err := h.update.Execute(c.Request.Context(), appointment.UpdateAppointmentInput{
		ActorID:       middleware.ActorID(c),
		AppointmentID: id,
		ClientID:      req.ClientID,
		Date:          req.Date,
		Time:          req.Time,
		Reason:        req.Reason,
		Notes:         req.Notes,
	})
	if err != nil {
		httperr.FromError(c, err, "failed_to_update_appointment")
		return
	}
	httpresp.OK(c, ap)
}

func (h *AppointmentHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := h.remove.Execute(c.Request.Context(), middleware.ActorID(c), id); err != nil {
		httperr.FromError(c, err, "failed_to_delete_appointment")
		return
	}
	httpresp.NoContent(c)
}

// ======================================================
// ATTENDANCE / WHATSAPP
// ======================================================

func (h *AppointmentHandler) RecordAttendance(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req AttendanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	ap, err := h.attendance.Execute(c.Request.Context(), middleware.ActorID(c), id, *req.Attended)
	if err != nil {
		httperr.FromError(c, err, "failed_to_record_attendance")
		return
	}
	httpresp.OK(c, ap)
}

func (h *AppointmentHandler) WhatsApp(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	n, err := h.whatsapp.Execute(c.Request.Context(), id)
	if err != nil {
		httperr.FromError(c, err, "failed_to_build_message")
		return
	}
	httpresp.OK(c, n)
}
