package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/agenda/internal/httperr"
	"github.com/BruksfildServices01/agenda/internal/httpresp"
	"github.com/BruksfildServices01/agenda/internal/usecase/report"
)

type ReportHandler struct {
	attendance *report.Attendance
	dashboard  *report.Dashboard
}

func NewReportHandler(attendance *report.Attendance, dashboard *report.Dashboard) *ReportHandler {
	return &ReportHandler{attendance: attendance, dashboard: dashboard}
}

type ReportQuery struct {
	From     string `form:"from" binding:"omitempty,ymd"`
	To       string `form:"to" binding:"omitempty,ymd"`
	State    string `form:"state"`
	ClientID string `form:"client_id" binding:"omitempty,numeric"`
}

func (h *ReportHandler) Attendance(c *gin.Context) {
	var q ReportQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		bindError(c, err)
		return
	}

	clientID, ok := parseOptionalID(c, q.ClientID)
	if !ok {
		return
	}

	in := report.AttendanceInput{From: q.From, To: q.To, State: q.State, ClientID: clientID}

	out, err := h.attendance.Execute(c.Request.Context(), in)
	if err != nil {
		httperr.FromError(c, err, "failed_to_build_report")
		return
	}
	httpresp.OK(c, out)
}

func (h *ReportHandler) Dashboard(c *gin.Context) {
	out, err := h.dashboard.Execute(c.Request.Context())
	if err != nil {
		httperr.FromError(c, err, "failed_to_build_dashboard")
		return
	}
	httpresp.OK(c, out)
}
