package handlers

import (
	"fmt"
	"html/template"
	"net/http"
	"strconv"
	"strings"
	"time"

	"maintenance_diagnosis/internal/models"

	"github.com/gin-gonic/gin"
)

// checkboxOn is the value the form submits for a ticked checkbox.
const checkboxOn = "yes"

const (
	errPageStore   = "The diagnosis could not be saved."
	errPageHistory = "History is unavailable right now."
)

var templateFuncs = template.FuncMap{
	"yesno": func(b bool) string {
		if b {
			return "Yes"
		}
		return "No"
	},
	"stamp": func(t time.Time) string {
		if t.IsZero() {
			return ""
		}
		return t.Local().Format("2006-01-02 15:04:05")
	},
}

// readingForm mirrors the input form on the index page. Numeric inputs are
// kept as text so a blank field is reported instead of read as zero.
type readingForm struct {
	Vibration        string `form:"vibration"`
	Temperature      string `form:"temperature"`
	UsageHours       string `form:"usage_hours"`
	LastService      string `form:"last_service"`
	Noise            string `form:"noise"`
	PowerFluctuation string `form:"power_fluctuation"`
	SensorError      string `form:"sensor_error"`
	OilLevelLow      string `form:"oil_level_low"`
}

func (f readingForm) reading() (models.SensorReading, error) {
	var (
		r   models.SensorReading
		err error
	)
	numeric := []struct {
		name string
		raw  string
		dst  *int
	}{
		{"vibration", f.Vibration, &r.Vibration},
		{"temperature", f.Temperature, &r.Temperature},
		{"usage_hours", f.UsageHours, &r.UsageHours},
		{"last_service", f.LastService, &r.LastService},
		{"noise", f.Noise, &r.Noise},
	}
	for _, n := range numeric {
		raw := strings.TrimSpace(n.raw)
		if raw == "" {
			return r, fmt.Errorf("%s is required", n.name)
		}
		if *n.dst, err = strconv.Atoi(raw); err != nil {
			return r, fmt.Errorf("%s must be a whole number", n.name)
		}
	}
	r.PowerFluctuation = f.PowerFluctuation == checkboxOn
	r.SensorError = f.SensorError == checkboxOn
	r.OilLevelLow = f.OilLevelLow == checkboxOn
	return r, nil
}

func (h *Handler) indexPage(c *gin.Context) {
	c.HTML(http.StatusOK, "index.html", gin.H{"Form": readingForm{}})
}

func (h *Handler) submitReading(c *gin.Context) {
	var form readingForm
	if err := c.ShouldBind(&form); err != nil {
		c.HTML(http.StatusBadRequest, "index.html", gin.H{"Form": form, "Error": err.Error()})
		return
	}
	reading, err := form.reading()
	if err != nil {
		if h.log != nil {
			h.log.Infow("page_bad_reading", "err", err, "request_id", c.GetString(ctxRequestID))
		}
		c.HTML(http.StatusBadRequest, "index.html", gin.H{"Form": form, "Error": err.Error()})
		return
	}

	rec, err := h.services.Diagnose(c.Request.Context(), reading)
	if err != nil {
		if h.log != nil {
			h.log.Errorw("diagnosis_store_failed", "err", err, "request_id", c.GetString(ctxRequestID))
		}
		c.HTML(http.StatusInternalServerError, "index.html", gin.H{
			"Form": form, "Result": rec.Result, "Error": errPageStore,
		})
		return
	}
	c.HTML(http.StatusOK, "index.html", gin.H{"Form": form, "Result": rec.Result})
}

func (h *Handler) historyPage(c *gin.Context) {
	records, err := h.services.History.List(c.Request.Context(), 0)
	if err != nil {
		if h.log != nil {
			h.log.Errorw("history_list_failed", "err", err, "request_id", c.GetString(ctxRequestID))
		}
		c.HTML(http.StatusInternalServerError, "history.html", gin.H{"Error": errPageHistory})
		return
	}
	c.HTML(http.StatusOK, "history.html", gin.H{"Records": records})
}

func (h *Handler) clearHistoryPage(c *gin.Context) {
	n, err := h.services.Clear(c.Request.Context())
	if err != nil {
		if h.log != nil {
			h.log.Errorw("history_clear_failed", "err", err, "request_id", c.GetString(ctxRequestID))
		}
		c.HTML(http.StatusInternalServerError, "history.html", gin.H{"Error": errPageHistory})
		return
	}
	if h.log != nil {
		h.log.Infow("history_cleared", "deleted", n)
	}
	code := http.StatusFound
	if c.Request.Method == http.MethodPost {
		code = http.StatusSeeOther
	}
	c.Redirect(code, "/history")
}
