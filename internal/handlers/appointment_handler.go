package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/rehabflow/care-scheduler/internal/httperr"
	"github.com/rehabflow/care-scheduler/internal/httpresp"
	"github.com/rehabflow/care-scheduler/internal/middleware"
	"github.com/rehabflow/care-scheduler/internal/models"
	ucAppointment "github.com/rehabflow/care-scheduler/internal/usecase/appointment"
)

// ======================================================
// HANDLER
// ======================================================

type AppointmentHandler struct {
	create      *ucAppointment.CreateAppointment
	update      *ucAppointment.UpdateAppointment
	cancel      *ucAppointment.CancelAppointment
	complete    *ucAppointment.CompleteAppointment
	get         *ucAppointment.GetAppointment
	listByDate  *ucAppointment.ListAppointmentsByDate
	listByMonth *ucAppointment.ListAppointmentsByMonth
	loc         *time.Location
}

func NewAppointmentHandler(
	create *ucAppointment.CreateAppointment,
	update *ucAppointment.UpdateAppointment,
	cancel *ucAppointment.CancelAppointment,
	complete *ucAppointment.CompleteAppointment,
	get *ucAppointment.GetAppointment,
	listByDate *ucAppointment.ListAppointmentsByDate,
	listByMonth *ucAppointment.ListAppointmentsByMonth,
	loc *time.Location,
) *AppointmentHandler {
	return &AppointmentHandler{
		create:      create,
		update:      update,
		cancel:      cancel,
		complete:    complete,
		get:         get,
		listByDate:  listByDate,
		listByMonth: listByMonth,
		loc:         loc,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateAppointmentRequest struct {
	PatientID   string    `json:"patient_id" binding:"required"`
	ClinicianID string    `json:"clinician_id"`
	Start       time.Time `json:"start" binding:"required"`
	End         time.Time `json:"end" binding:"required,gtfield=Start"`
	Type        string    `json:"type" binding:"required,max=50"`
	Title       string    `json:"title" binding:"max=255"`
	Notes       string    `json:"notes"`
}

type UpdateAppointmentRequest struct {
	PatientID   string    `json:"patient_id" binding:"required"`
	ClinicianID string    `json:"clinician_id"`
	Start       time.Time `json:"start" binding:"required"`
	End         time.Time `json:"end" binding:"required,gtfield=Start"`
	Status      string    `json:"status" binding:"appointment_status"`
	Type        string    `json:"type" binding:"required,max=50"`
	Title       string    `json:"title" binding:"max=255"`
	Notes       string    `json:"notes"`
}

// requestedClinician is the clinician_id an admin named in the body.
// Clinicians always act on their own appointments, so theirs is ignored.
func requestedClinician(c *gin.Context, requested string) string {
	if c.GetString(middleware.ContextUserRole) == models.RoleAdmin {
		return requested
	}
	return ""
}

// ======================================================
// CREATE / UPDATE
// ======================================================

func (h *AppointmentHandler) Create(c *gin.Context) {
	var req CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	clinicianID := c.GetString(middleware.ContextUserID)
	if c.GetString(middleware.ContextUserRole) == models.RoleAdmin {
		if req.ClinicianID == "" {
			httperr.BadRequest(c, "missing_clinician_id", "Admins must name the clinician.")
			return
		}
		clinicianID = req.ClinicianID
	}

	ap, err := h.create.Execute(c.Request.Context(), ucAppointment.CreateAppointmentInput{
		ActorID:     c.GetString(middleware.ContextUserID),
		PatientID:   req.PatientID,
		ClinicianID: clinicianID,
		Start:       req.Start,
		End:         req.End,
		Type:        req.Type,
		Title:       req.Title,
		Notes:       req.Notes,
	})
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.Created(c, ap)
}

func (h *AppointmentHandler) Update(c *gin.Context) {
	var req UpdateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	ap, err := h.update.Execute(c.Request.Context(), ucAppointment.UpdateAppointmentInput{
		ActorID:     c.GetString(middleware.ContextUserID),
		Scope:       middleware.ClinicianScope(c),
		ID:          c.Param("id"),
		PatientID:   req.PatientID,
		ClinicianID: requestedClinician(c, req.ClinicianID),
		Start:       req.Start,
		End:         req.End,
		Status:      req.Status,
		Type:        req.Type,
		Title:       req.Title,
		Notes:       req.Notes,
	})
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.OK(c, ap)
}

// ======================================================
// STATE CHANGES
// ======================================================

func (h *AppointmentHandler) Cancel(c *gin.Context) {
	ap, err := h.cancel.Execute(
		c.Request.Context(),
		c.GetString(middleware.ContextUserID),
		middleware.ClinicianScope(c),
		c.Param("id"),
	)
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.OK(c, ap)
}

func (h *AppointmentHandler) Complete(c *gin.Context) {
	ap, err := h.complete.Execute(
		c.Request.Context(),
		c.GetString(middleware.ContextUserID),
		middleware.ClinicianScope(c),
		c.Param("id"),
	)
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.OK(c, ap)
}

// ======================================================
// QUERIES
// ======================================================

func (h *AppointmentHandler) Get(c *gin.Context) {
	ap, err := h.get.Execute(c.Request.Context(), middleware.ClinicianScope(c), c.Param("id"))
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.OK(c, ap)
}

func (h *AppointmentHandler) ListByDate(c *gin.Context) {
	dateStr := c.Query("date")
	if dateStr == "" {
		httperr.BadRequest(c, "missing_date", "Query parameter date is required.")
		return
	}

	date, err := parseDate(h.loc, dateStr)
	if err != nil {
		httperr.BadRequest(c, httperr.CodeInvalidDate, "Invalid date.")
		return
	}

	list, err := h.listByDate.Execute(c.Request.Context(), middleware.ClinicianScope(c), date)
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.List(c, list)
}

func (h *AppointmentHandler) ListByMonth(c *gin.Context) {
	yearStr := c.Query("year")
	monthStr := c.Query("month")
	if yearStr == "" || monthStr == "" {
		httperr.BadRequest(c, "missing_year_or_month", "Query parameters year and month are required.")
		return
	}

	year, month, ok := parseYearMonth(yearStr, monthStr)
	if !ok {
		httperr.BadRequest(c, "invalid_year_or_month", "Invalid year or month.")
		return
	}

	list, err := h.listByMonth.Execute(c.Request.Context(), middleware.ClinicianScope(c), year, month)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"year":         year,
		"month":        month,
		"appointments": list,
	})
}
