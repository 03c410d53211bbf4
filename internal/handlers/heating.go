package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"heatplan/internal/service"

	"github.com/gin-gonic/gin"
)

const (
	statusOK = "ok"

	errLoadCalendar = "failed to load calendar"
	errLoadPlan     = "failed to load day plan"
	errSavePlans    = "failed to save plans"
	errDuplicate    = "failed to duplicate plans"
)

// Centralized error logging and response.
func (h *Handler) logAndJSONError(c *gin.Context, httpCode int, userMsg, logKey string, err error, kv ...interface{}) {
	if h.log != nil && err != nil {
		fields := append([]interface{}{"err", err}, kv...)
		h.log.Errorw(logKey, fields...)
	}
	c.JSON(httpCode, gin.H{"error": userMsg})
}

// clientFault reports whether an error came from the request rather than the
// backend, so the handler can answer 400 instead of 500.
func clientFault(err error) bool {
	for _, known := range []error{
		service.ErrInvalidDate,
		service.ErrUnknownRoom,
		service.ErrBadDuplicationType,
		service.ErrNoRooms,
		service.ErrNoWeekdays,
		service.ErrUnknownWeekday,
		service.ErrWindowOrder,
		service.ErrWindowTooLong,
		service.ErrWindowTooShort,
	} {
		if errors.Is(err, known) {
			return true
		}
	}
	return false
}

// @Summary      Health check
// @Tags         system
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /health [get]
func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": statusOK,
	})
}

// @Summary      Month calendar
// @Description  Monday-first month grid padded to whole weeks. Each day is empty, normal or different compared to the same weekday one week earlier.
// @Tags         heating
// @Produce      json
// @Param        year   query  int  true  "Year"   example(2026)
// @Param        month  query  int  true  "Month"  example(2)
// @Success      200  {object}  models.HeatingCalendar
// @Failure      400  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/v1/heating/calendar [get]
// @Security     BearerAuth
func (h *Handler) getCalendar(c *gin.Context) {
	now := time.Now()
	year, err := intQuery(c, "year", now.Year())
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid 'year'"})
		return
	}
	month, err := intQuery(c, "month", int(now.Month()))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid 'month'"})
		return
	}
	cal, err := h.services.Calendar.Month(c.Request.Context(), year, month)
	if err != nil {
		if month < 1 || month > 12 || year < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		h.logAndJSONError(c, http.StatusInternalServerError, errLoadCalendar, "calendar_failed", err,
			"year", year, "month", month)
		return
	}
	c.JSON(http.StatusOK, cal)
}

// @Summary      Day plan
// @Description  Slot schedule of every room for one date. Defaults to today.
// @Tags         heating
// @Produce      json
// @Param        date  query  string  false  "Date (YYYY-MM-DD)"  example(2026-01-05)
// @Success      200  {object}  models.DayPlan
// @Failure      400  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/v1/heating/plan [get]
// @Security     BearerAuth
func (h *Handler) getDayPlan(c *gin.Context) {
	date := c.Query("date")
	if date == "" {
		date = time.Now().Format("2006-01-02")
	}
	plan, err := h.services.Schedule.DailyPlan(c.Request.Context(), date)
	if err != nil {
		if clientFault(err) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		h.logAndJSONError(c, http.StatusInternalServerError, errLoadPlan, "day_plan_failed", err, "date", date)
		return
	}
	c.JSON(http.StatusOK, plan)
}

type savePlansRequest struct {
	Plans []service.RoomDayPlanInput `json:"plans" binding:"required"`
}

// @Summary      Save day plans
// @Description  Validates and stores slot schedules for a batch of rooms. Identical slot lists share one stored pattern.
// @Tags         heating
// @Accept       json
// @Produce      json
// @Param        body  body  savePlansRequest  true  "Plans to store"
// @Success      200  {object}  service.SaveSummary
// @Failure      400  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/v1/heating/plan [post]
// @Security     BearerAuth
func (h *Handler) savePlans(c *gin.Context) {
	var req savePlansRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidBodyPref + err.Error()})
		return
	}
	sum, err := h.services.Schedule.SavePlans(c.Request.Context(), req.Plans)
	if err != nil {
		if clientFault(err) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		// slot payload problems also come back as plain errors
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, sum)
}

// @Summary      Duplicate day plans
// @Description  Copies the plans of a source date onto future dates, per weekday or week after week. Existing target plans are overwritten.
// @Tags         heating
// @Accept       json
// @Produce      json
// @Param        body  body  service.DuplicationParams  true  "Duplication request"
// @Success      200  {object}  map[string]int  "written"
// @Failure      400  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/v1/heating/duplicate [post]
// @Security     BearerAuth
func (h *Handler) duplicatePlans(c *gin.Context) {
	var params service.DuplicationParams
	if err := c.ShouldBindJSON(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidBodyPref + err.Error()})
		return
	}
	written, err := h.services.Duplication.Duplicate(c.Request.Context(), params)
	if err != nil {
		if clientFault(err) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		h.logAndJSONError(c, http.StatusInternalServerError, errDuplicate, "duplicate_failed", err,
			"source", params.SourceDate, "mode", params.Type)
		return
	}
	c.JSON(http.StatusOK, gin.H{"written": written})
}

func intQuery(c *gin.Context, name string, fallback int) (int, error) {
	qs := c.Query(name)
	if qs == "" {
		return fallback, nil
	}
	return strconv.Atoi(qs)
}
