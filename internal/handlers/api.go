package handlers

import (
	"net/http"
	"strconv"

	"maintenance_diagnosis/internal/models"

	"github.com/gin-gonic/gin"
)

const (
	statusOK = "ok"

	errDiagnose     = "failed to store diagnosis"
	errListHistory  = "failed to load history"
	errClearHistory = "failed to clear history"
	errLimitInvalid = "invalid 'limit'; use a non-negative integer"
	errDryRun       = "invalid 'dry_run'; use true or false"
)

// Centralized error logging and response.
func (h *Handler) logAndJSONError(c *gin.Context, httpCode int, userMsg, logKey string, err error, kv ...interface{}) {
	if h.log != nil && err != nil {
		fields := append([]interface{}{"err", err, "request_id", c.GetString(ctxRequestID)}, kv...)
		h.log.Errorw(logKey, fields...)
	}
	c.JSON(httpCode, gin.H{"error": userMsg})
}

// DiagnoseRequest is the reading payload of POST /api/v1/diagnoses.
// Every field is required; pointers tell a missing field from a zero value.
type DiagnoseRequest struct {
	Vibration        *int  `json:"vibration" binding:"required" example:"90"`
	Temperature      *int  `json:"temperature" binding:"required" example:"40"`
	UsageHours       *int  `json:"usage_hours" binding:"required" example:"500"`
	LastService      *int  `json:"last_service" binding:"required" example:"200"`
	PowerFluctuation *bool `json:"power_fluctuation" binding:"required" example:"false"`
	Noise            *int  `json:"noise" binding:"required" example:"30"`
	SensorError      *bool `json:"sensor_error" binding:"required" example:"false"`
	OilLevelLow      *bool `json:"oil_level_low" binding:"required" example:"false"`
}

func (r DiagnoseRequest) reading() models.SensorReading {
	return models.SensorReading{
		Vibration:        *r.Vibration,
		Temperature:      *r.Temperature,
		UsageHours:       *r.UsageHours,
		LastService:      *r.LastService,
		PowerFluctuation: *r.PowerFluctuation,
		Noise:            *r.Noise,
		SensorError:      *r.SensorError,
		OilLevelLow:      *r.OilLevelLow,
	}
}

// RuleView describes one loaded rule for GET /api/v1/rules.
type RuleView struct {
	Index     int    `json:"index"`
	Condition string `json:"condition"`
	Status    string `json:"status"`
	Action    string `json:"action"`
	Error     string `json:"error,omitempty"`
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

// @Summary      Diagnose a reading
// @Description  Evaluates the reading against the rule set. Unless dry_run is set the reading and its result are stored in the history.
// @Tags         diagnoses
// @Accept       json
// @Produce      json
// @Param        dry_run  query  bool              false  "Evaluate without storing"
// @Param        body     body   DiagnoseRequest   true   "Sensor reading"
// @Success      200  {object}  map[string]interface{}  "result, matched_rule"
// @Success      201  {object}  models.HistoryRecord
// @Failure      400  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/v1/diagnoses [post]
// @Security     BearerAuth
func (h *Handler) createDiagnosis(c *gin.Context) {
	dryRun := false
	if qs := c.Query("dry_run"); qs != "" {
		v, err := strconv.ParseBool(qs)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": errDryRun})
			return
		}
		dryRun = v
	}

	var req DiagnoseRequest
	if ok := h.bindJSONOrBadRequest(c, &req); !ok {
		return
	}
	reading := req.reading()

	if dryRun {
		result, idx := h.services.Evaluate(reading)
		c.JSON(http.StatusOK, gin.H{"result": result, "matched_rule": idx})
		return
	}

	rec, err := h.services.Diagnose(c.Request.Context(), reading)
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, errDiagnose, "diagnosis_store_failed", err,
			"status", rec.Result.Status)
		return
	}
	c.JSON(http.StatusCreated, rec)
}

// @Summary      List history
// @Description  Stored diagnoses, oldest first. With limit only the most recent records are returned.
// @Tags         history
// @Produce      json
// @Param        limit  query  int  false  "Most recent N records (0 = all)"
// @Success      200  {object}  map[string]interface{}  "count, records"
// @Failure      400  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/v1/history [get]
// @Security     BearerAuth
func (h *Handler) listHistory(c *gin.Context) {
	limit := 0
	if qs := c.Query("limit"); qs != "" {
		v, err := strconv.Atoi(qs)
		if err != nil || v < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": errLimitInvalid})
			return
		}
		limit = v
	}

	records, err := h.services.History.List(c.Request.Context(), limit)
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, errListHistory, "history_list_failed", err,
			"limit", limit)
		return
	}
	if records == nil {
		records = []models.HistoryRecord{}
	}
	c.JSON(http.StatusOK, gin.H{"count": len(records), "records": records})
}

// @Summary      Clear history
// @Tags         history
// @Produce      json
// @Success      200  {object}  map[string]interface{}  "deleted"
// @Failure      401  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/v1/history [delete]
// @Security     BearerAuth
func (h *Handler) clearHistory(c *gin.Context) {
	n, err := h.services.Clear(c.Request.Context())
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, errClearHistory, "history_clear_failed", err)
		return
	}
	if h.log != nil {
		h.log.Infow("history_cleared", "deleted", n, "user_id", c.GetInt(ctxUserID))
	}
	c.JSON(http.StatusOK, gin.H{"deleted": n})
}

// @Summary      List rules
// @Description  The loaded rule set in evaluation order. Rules kept in lenient mode carry their compile error.
// @Tags         rules
// @Produce      json
// @Success      200  {object}  map[string]interface{}  "count, rules"
// @Failure      401  {object}  map[string]string
// @Router       /api/v1/rules [get]
// @Security     BearerAuth
func (h *Handler) listRules(c *gin.Context) {
	loaded := h.services.Rules()
	views := make([]RuleView, 0, len(loaded))
	for i, r := range loaded {
		v := RuleView{Index: i, Condition: r.Condition, Status: r.Status, Action: r.Action}
		if err := r.Err(); err != nil {
			v.Error = err.Error()
		}
		views = append(views, v)
	}
	c.JSON(http.StatusOK, gin.H{"count": len(views), "rules": views})
}
