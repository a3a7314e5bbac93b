package handlers

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/rehabflow/care-scheduler/internal/httperr"
	"github.com/rehabflow/care-scheduler/internal/httpresp"
	"github.com/rehabflow/care-scheduler/internal/middleware"
	ucCalendar "github.com/rehabflow/care-scheduler/internal/usecase/calendar"
)

type CalendarHandler struct {
	session *ucCalendar.Session
	loc     *time.Location
}

func NewCalendarHandler(session *ucCalendar.Session, loc *time.Location) *CalendarHandler {
	return &CalendarHandler{session: session, loc: loc}
}

type NavigateRequest struct {
	Delta int `json:"delta" binding:"required,oneof=-1 1"`
}

type SelectDayRequest struct {
	Date string `json:"date" binding:"required"`
}

type DraftRequest struct {
	Date string `json:"date"`
}

func ids(c *gin.Context) (string, string) {
	return c.GetString(middleware.ContextUserID), middleware.ClinicianScope(c)
}

func (h *CalendarHandler) View(c *gin.Context) {
	userID, clinicianID := ids(c)
	view, err := h.session.View(c.Request.Context(), userID, clinicianID)
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.OK(c, view)
}

func (h *CalendarHandler) Navigate(c *gin.Context) {
	var req NavigateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, httperr.CodeInvalidDelta, err.Error())
		return
	}

	userID, clinicianID := ids(c)
	view, err := h.session.NavigateMonth(c.Request.Context(), userID, clinicianID, req.Delta)
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.OK(c, view)
}

func (h *CalendarHandler) Today(c *gin.Context) {
	userID, clinicianID := ids(c)
	view, err := h.session.JumpToToday(c.Request.Context(), userID, clinicianID)
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.OK(c, view)
}

func (h *CalendarHandler) Select(c *gin.Context) {
	var req SelectDayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	day, err := parseDate(h.loc, req.Date)
	if err != nil {
		httperr.BadRequest(c, httperr.CodeInvalidDate, "Invalid date.")
		return
	}

	userID, clinicianID := ids(c)
	view, err := h.session.SelectDay(c.Request.Context(), userID, clinicianID, day)
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.OK(c, view)
}

// NewDraft answers "add appointment": the body and its date are optional.
func (h *CalendarHandler) NewDraft(c *gin.Context) {
	var req DraftRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			httperr.BadRequest(c, "invalid_request", err.Error())
			return
		}
	}

	var day *time.Time
	if req.Date != "" {
		d, err := parseDate(h.loc, req.Date)
		if err != nil {
			httperr.BadRequest(c, httperr.CodeInvalidDate, "Invalid date.")
			return
		}
		day = &d
	}

	userID, clinicianID := ids(c)
	draft, err := h.session.NewAppointmentDraft(c.Request.Context(), userID, clinicianID, day)
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.OK(c, draft)
}

func (h *CalendarHandler) EditDraft(c *gin.Context) {
	_, clinicianID := ids(c)
	draft, err := h.session.EditAppointmentDraft(c.Request.Context(), clinicianID, c.Param("id"))
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.OK(c, draft)
}
