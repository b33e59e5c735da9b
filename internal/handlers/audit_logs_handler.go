package handlers

import (
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/agenda/internal/httperr"
	"github.com/BruksfildServices01/agenda/internal/httpresp"
	"github.com/BruksfildServices01/agenda/internal/models"
	"github.com/BruksfildServices01/agenda/internal/timezone"
)

const (
	auditDefaultLimit = 50
	auditMaxLimit     = 200
)

// ======================================================
// HANDLER
// ======================================================

type AuditLogsHandler struct {
	db  *gorm.DB
	loc *time.Location
}

// NewAuditLogsHandler reads from/to as calendar days in loc.
func NewAuditLogsHandler(db *gorm.DB, loc *time.Location) *AuditLogsHandler {
	return &AuditLogsHandler{db: db, loc: loc}
}

type AuditLogQuery struct {
	Action   string `form:"action"`
	Entity   string `form:"entity"`
	EntityID uint   `form:"entity_id"`
	From     string `form:"from" binding:"omitempty,ymd"`
	To       string `form:"to" binding:"omitempty,ymd"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	Limit    int    `form:"limit" binding:"omitempty,min=1"`
}

func (h *AuditLogsHandler) List(c *gin.Context) {
	var q AuditLogQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		bindError(c, err)
		return
	}

	if q.Page == 0 {
		q.Page = 1
	}
	if q.Limit == 0 || q.Limit > auditMaxLimit {
		q.Limit = auditDefaultLimit
	}

	tx := h.filter(h.db.WithContext(c.Request.Context()).Model(&models.AuditLog{}), q)

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		httperr.FromError(c, err, "audit_count_failed")
		return
	}

	var logs []models.AuditLog
	if err := tx.
		Order("created_at DESC").
		Order("id DESC").
		Limit(q.Limit).
		Offset((q.Page - 1) * q.Limit).
		Find(&logs).Error; err != nil {
		httperr.FromError(c, err, "audit_list_failed")
		return
	}

	httpresp.Page(c, logs, q.Page, q.Limit, total)
}

// --------------------------------------------------
// Filtros opcionais
// --------------------------------------------------

func (h *AuditLogsHandler) filter(tx *gorm.DB, q AuditLogQuery) *gorm.DB {
	if q.Action != "" {
		tx = tx.Where("action = ?", q.Action)
	}
	if q.Entity != "" {
		tx = tx.Where("entity = ?", q.Entity)
	}
	if q.EntityID != 0 {
		tx = tx.Where("entity_id = ?", q.EntityID)
	}

	// Binding already checked the layout.
	if from, err := time.ParseInLocation(timezone.DateLayout, q.From, h.loc); err == nil {
		tx = tx.Where("created_at >= ?", from)
	}
	if to, err := time.ParseInLocation(timezone.DateLayout, q.To, h.loc); err == nil {
		tx = tx.Where("created_at < ?", to.AddDate(0, 0, 1))
	}
	return tx
}
