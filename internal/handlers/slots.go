package handlers

import (
	"net/http"
	"strconv"

	"heatplan/internal/timeline"

	"github.com/gin-gonic/gin"
)

const errInvalidBodyPref = "invalid body: "

// editorSlot is the untyped working form editor frontends exchange: minute
// offsets and a raw value that is classified server side.
type editorSlot struct {
	Start int `json:"start"`
	End   int `json:"end"`
	Value any `json:"value"`
}

// slotView is the enriched wire form sent back after a resolution: minute
// offsets plus the rendered clock bounds and display label.
type slotView struct {
	Start      int    `json:"start"`
	End        int    `json:"end"`
	StartClock string `json:"start_clock"`
	EndClock   string `json:"end_clock"`
	Value      any    `json:"value"`
	Label      string `json:"label"`
}

func toTimelineSlots(in []editorSlot) []timeline.Slot {
	out := make([]timeline.Slot, len(in))
	for i, s := range in {
		out[i] = timeline.Slot{Start: s.Start, End: s.End, Value: timeline.ClassifyAny(s.Value)}
	}
	return out
}

func toSlotViews(in []timeline.Slot) []slotView {
	out := make([]slotView, len(in))
	for i, s := range in {
		out[i] = slotView{
			Start:      s.Start,
			End:        s.End,
			StartClock: timeline.ToClock(s.Start),
			EndClock:   timeline.ToClock(s.End),
			Value:      s.Value.Raw(),
			Label:      s.Value.Label(),
		}
	}
	return out
}

// rawString renders the candidate value the way the editor typed it, so the
// validator sees the original text for strings and numbers alike.
func rawString(v any) string {
	switch s := v.(type) {
	case string:
		return s
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64)
	case int:
		return strconv.Itoa(s)
	}
	return ""
}

func editIndexOrNone(p *int) int {
	if p == nil {
		return timeline.NoEdit
	}
	return *p
}

type validateSlotRequest struct {
	Start     int          `json:"start"`
	End       int          `json:"end"`
	Value     any          `json:"value"`
	Existing  []editorSlot `json:"existing"`
	EditIndex *int         `json:"edit_index"`
}

// ValidateSlotRequest is an exported model for Swagger docs of the validate payload.
type ValidateSlotRequest struct {
	// Start of the slot in minutes since midnight
	Start int `json:"start" example:"360"`
	// End of the slot in minutes since midnight
	End int `json:"end" example:"480"`
	// Raw value: a temperature or "on"/"off"
	Value string `json:"value" example:"21"`
	// Existing slots of the room being edited
	Existing []map[string]any `json:"existing"`
	// Index of the slot being edited, omitted when adding a new one
	EditIndex *int `json:"edit_index,omitempty"`
}

// @Summary      Validate a slot
// @Description  Checks ordering, minimum duration, value and type homogeneity. Overlaps are not rejected here; they are handled by resolution.
// @Tags         slots
// @Accept       json
// @Produce      json
// @Param        body  body  ValidateSlotRequest  true  "Candidate slot"
// @Success      200  {object}  map[string]interface{}  "valid, violations"
// @Failure      400  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Router       /api/v1/slots/validate [post]
// @Security     BearerAuth
func (h *Handler) validateSlot(c *gin.Context) {
	var req validateSlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidBodyPref + err.Error()})
		return
	}
	v := timeline.ValidateSlot(req.Start, req.End, rawString(req.Value),
		toTimelineSlots(req.Existing), editIndexOrNone(req.EditIndex))
	c.JSON(http.StatusOK, gin.H{
		"valid":      v.OK(),
		"violations": v,
	})
}

type resolveSlotRequest struct {
	Start     int          `json:"start"`
	End       int          `json:"end"`
	Value     any          `json:"value"`
	Existing  []editorSlot `json:"existing"`
	EditIndex *int         `json:"edit_index"`
}

// @Summary      Resolve slot overlaps
// @Description  Inserts the candidate slot and trims, splits or removes overlapped neighbours. Fragments shorter than 30 minutes are dropped.
// @Tags         slots
// @Accept       json
// @Produce      json
// @Param        body  body  ValidateSlotRequest  true  "Candidate slot"
// @Success      200  {object}  map[string]interface{}  "slots"
// @Failure      400  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Failure      422  {object}  map[string]interface{}  "valid, violations"
// @Router       /api/v1/slots/resolve [post]
// @Security     BearerAuth
func (h *Handler) resolveSlot(c *gin.Context) {
	var req resolveSlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidBodyPref + err.Error()})
		return
	}
	existing := toTimelineSlots(req.Existing)
	editIdx := editIndexOrNone(req.EditIndex)
	// a candidate that fails validation never reaches the resolver
	if v := timeline.ValidateSlot(req.Start, req.End, rawString(req.Value), existing, editIdx); !v.OK() {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"valid":      false,
			"violations": v,
		})
		return
	}
	candidate := timeline.Slot{Start: req.Start, End: req.End, Value: timeline.ClassifyAny(req.Value)}
	resolved := timeline.Resolve(candidate, existing, editIdx)
	c.JSON(http.StatusOK, gin.H{"slots": toSlotViews(resolved)})
}

type suggestSlotRequest struct {
	At    int          `json:"at"`
	Slots []editorSlot `json:"slots"`
}

// @Summary      Suggest slot bounds
// @Description  Returns the widest free range around the given minute, bounded by the neighbouring slots or the edges of the day.
// @Tags         slots
// @Accept       json
// @Produce      json
// @Param        body  body  map[string]interface{}  true  "at (minutes) and the room's slots"
// @Success      200  {object}  map[string]interface{}  "start, end with clock forms"
// @Failure      400  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Router       /api/v1/slots/suggest [post]
// @Security     BearerAuth
func (h *Handler) suggestSlot(c *gin.Context) {
	var req suggestSlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidBodyPref + err.Error()})
		return
	}
	if req.At < 0 || req.At > timeline.EndOfDay {
		c.JSON(http.StatusBadRequest, gin.H{"error": "'at' must be a minute offset within the day"})
		return
	}
	start, end := timeline.SuggestBounds(req.At, toTimelineSlots(req.Slots))
	c.JSON(http.StatusOK, gin.H{
		"start":       start,
		"end":         end,
		"start_clock": timeline.ToClock(start),
		"end_clock":   timeline.ToClock(end),
	})
}
