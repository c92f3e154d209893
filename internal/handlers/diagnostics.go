package handlers

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"

	"github.com/renderd/renderd/internal/web"
	"github.com/renderd/renderd/pkg/logger"
)

// maxReportSize caps a client diagnostics payload.
const maxReportSize = 64 << 10

// clientReport is what browsers post when something breaks on their
// side. The wire names are fixed by the client error reporter.
type clientReport struct {
	Level   string          `json:"log"`
	Message string          `json:"msg"`
	Stack   string          `json:"stack,omitempty"`
	URL     string          `json:"url,omitempty"`
	Extra   json.RawMessage `json:"extra,omitempty"`
}

// DiagnosticsHandler receives error reports from browsers and feeds
// them into the server log.
type DiagnosticsHandler struct {
	log *slog.Logger
}

// NewDiagnosticsHandler creates the diagnostics handler.
func NewDiagnosticsHandler(log *slog.Logger) *DiagnosticsHandler {
	return &DiagnosticsHandler{log: log}
}

// Routes declares the report intake endpoint.
func (h *DiagnosticsHandler) Routes(r web.Router) {
	r.Route("/errorLog", func(r web.Router) {
		r.POST("/record", h.record)
	})
}

// record logs one client report. The endpoint always returns 200: a
// broken client must never be made worse by its own error reporting.
func (h *DiagnosticsHandler) record(c web.Context) error {
	body, err := io.ReadAll(io.LimitReader(c.Request().Body, maxReportSize))
	if err != nil {
		h.log.Warn("client report unreadable", "error", err)
		return c.NoContent(http.StatusOK)
	}

	var report clientReport
	if err := json.Unmarshal(body, &report); err != nil {
		h.log.Warn("client report malformed", "error", err)
		return c.NoContent(http.StatusOK)
	}

	level, ok := logger.ParseLevel(report.Level)
	if !ok {
		level = slog.LevelWarn
	}

	attrs := []any{
		slog.String("source", "client"),
		slog.String("user_agent", c.UserAgent()),
	}
	if report.URL != "" {
		attrs = append(attrs, slog.String("url", report.URL))
	}
	if report.Stack != "" {
		attrs = append(attrs, slog.String("stack", report.Stack))
	}
	if len(report.Extra) > 0 {
		attrs = append(attrs, slog.String("extra", string(report.Extra)))
	}

	h.log.Log(c.Context(), level, report.Message, attrs...)
	return c.NoContent(http.StatusOK)
}
