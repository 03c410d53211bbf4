package handlers

import (
	"errors"
	"net/http"

	"heatplan/internal/service"

	"github.com/gin-gonic/gin"
)

type editorDateRequest struct {
	Date string `json:"date" binding:"required"`
}

// editorStatus maps editor service errors to HTTP status codes.
func editorStatus(err error) int {
	switch {
	case errors.Is(err, service.ErrNoSession):
		return http.StatusConflict
	case errors.Is(err, service.ErrNothingToUndo),
		errors.Is(err, service.ErrBadEditIndex),
		errors.Is(err, service.ErrUnknownRoom),
		errors.Is(err, service.ErrInvalidDate):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

// @Summary      Open an editing session
// @Description  Loads the stored plans of a date into an in-memory session. Edits only reach storage on save.
// @Tags         editor
// @Accept       json
// @Produce      json
// @Param        body  body  editorDateRequest  true  "Date to edit"
// @Success      200  {object}  models.DayPlan
// @Failure      400  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Router       /api/v1/editor/open [post]
// @Security     BearerAuth
func (h *Handler) openEditor(c *gin.Context) {
	var req editorDateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidBodyPref + err.Error()})
		return
	}
	plan, err := h.services.Editor.Open(c.Request.Context(), req.Date)
	if err != nil {
		c.JSON(editorStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, plan)
}

type editorSlotRequest struct {
	Date      string `json:"date" binding:"required"`
	RoomID    int64  `json:"room_id" binding:"required"`
	Start     int    `json:"start"`
	End       int    `json:"end"`
	Value     any    `json:"value"`
	EditIndex *int   `json:"edit_index"`
}

// @Summary      Apply a slot change
// @Description  Validates the slot, resolves overlaps against the session plan and pushes an undo snapshot. Violations come back as 422.
// @Tags         editor
// @Accept       json
// @Produce      json
// @Param        body  body  editorSlotRequest  true  "Slot change"
// @Success      200  {object}  models.DayPlan
// @Failure      400  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Failure      409  {object}  map[string]string
// @Failure      422  {object}  map[string]interface{}  "error, violations"
// @Router       /api/v1/editor/slot [post]
// @Security     BearerAuth
func (h *Handler) applyEditorSlot(c *gin.Context) {
	var req editorSlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidBodyPref + err.Error()})
		return
	}
	plan, err := h.services.Editor.ApplySlot(c.Request.Context(), service.SlotEdit{
		Date:      req.Date,
		RoomID:    req.RoomID,
		Start:     req.Start,
		End:       req.End,
		Value:     rawString(req.Value),
		EditIndex: editIndexOrNone(req.EditIndex),
	})
	if err != nil {
		var verr *service.ValidationError
		if errors.As(err, &verr) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error":      verr.Error(),
				"violations": verr.Violations,
			})
			return
		}
		c.JSON(editorStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, plan)
}

// @Summary      Undo the last slot change
// @Tags         editor
// @Accept       json
// @Produce      json
// @Param        body  body  editorDateRequest  true  "Session date"
// @Success      200  {object}  models.DayPlan
// @Failure      400  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Failure      409  {object}  map[string]string
// @Router       /api/v1/editor/undo [post]
// @Security     BearerAuth
func (h *Handler) undoEditor(c *gin.Context) {
	var req editorDateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidBodyPref + err.Error()})
		return
	}
	plan, err := h.services.Editor.Undo(c.Request.Context(), req.Date)
	if err != nil {
		c.JSON(editorStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, plan)
}

// @Summary      Save the session
// @Description  Persists every room of the session, then reloads it from storage and clears the undo history.
// @Tags         editor
// @Accept       json
// @Produce      json
// @Param        body  body  editorDateRequest  true  "Session date"
// @Success      200  {object}  service.SaveSummary
// @Failure      400  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Failure      409  {object}  map[string]string
// @Router       /api/v1/editor/save [post]
// @Security     BearerAuth
func (h *Handler) saveEditor(c *gin.Context) {
	var req editorDateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidBodyPref + err.Error()})
		return
	}
	sum, err := h.services.Editor.Save(c.Request.Context(), req.Date)
	if err != nil {
		if h.log != nil {
			h.log.Errorw("editor_save_failed", "err", err, "date", req.Date)
		}
		c.JSON(editorStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, sum)
}

// @Summary      Discard the session
// @Tags         editor
// @Accept       json
// @Produce      json
// @Param        body  body  editorDateRequest  true  "Session date"
// @Success      200  {object}  map[string]string
// @Failure      400  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Failure      409  {object}  map[string]string
// @Router       /api/v1/editor/discard [post]
// @Security     BearerAuth
func (h *Handler) discardEditor(c *gin.Context) {
	var req editorDateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidBodyPref + err.Error()})
		return
	}
	if err := h.services.Editor.Discard(c.Request.Context(), req.Date); err != nil {
		c.JSON(editorStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": statusOK})
}
