package httpserver

import (
	"errors"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"team-pulse/internal/pulse"
	"team-pulse/pkg/response"
)

// runPulse triggers one processing run. Optional `start` and `end` query
// parameters (RFC 3339) bound the collection window; when absent the run
// covers the preceding 24 hours.
func (srv *HTTPServer) runPulse(c *gin.Context) {
	ctx := c.Request.Context()

	var input pulse.RunInput
	if raw := c.Query("start"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			response.Error(c, errors.New("start must be RFC 3339"))
			return
		}
		input.WindowStart = t
	}
	if raw := c.Query("end"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			response.Error(c, errors.New("end must be RFC 3339"))
			return
		}
		input.WindowEnd = t
	}

	out, err := srv.pulseUC.Run(ctx, input)
	if err != nil {
		srv.l.Errorf(ctx, "httpserver.runPulse: %v", err)
		response.InternalError(c)
		return
	}

	response.OK(c, out)
}

func (srv *HTTPServer) getReport(c *gin.Context) {
	ctx := c.Request.Context()

	report, err := srv.pulseUC.Report(ctx, c.Param("date"))
	if err != nil {
		switch {
		case errors.Is(err, pulse.ErrInvalidDate):
			response.Error(c, err)
		case errors.Is(err, pulse.ErrReportNotFound):
			response.NotFound(c, err)
		default:
			srv.l.Errorf(ctx, "httpserver.getReport: %v", err)
			response.InternalError(c)
		}
		return
	}

	response.OK(c, report)
}

func (srv *HTTPServer) getContributor(c *gin.Context) {
	ctx := c.Request.Context()

	profile, err := srv.pulseUC.Contributor(ctx, c.Param("id"))
	if err != nil {
		if errors.Is(err, pulse.ErrProfileNotFound) {
			response.NotFound(c, err)
			return
		}
		srv.l.Errorf(ctx, "httpserver.getContributor: %v", err)
		response.InternalError(c)
		return
	}

	response.OK(c, profile)
}

// getVelocityTrend returns per-day velocity metrics. The `days` query
// parameter defaults to 7.
func (srv *HTTPServer) getVelocityTrend(c *gin.Context) {
	ctx := c.Request.Context()

	days := 7
	if raw := c.Query("days"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			response.Error(c, pulse.ErrInvalidTrendWindow)
			return
		}
		days = n
	}

	trend, err := srv.pulseUC.VelocityTrend(ctx, days)
	if err != nil {
		if errors.Is(err, pulse.ErrInvalidTrendWindow) {
			response.Error(c, err)
			return
		}
		srv.l.Errorf(ctx, "httpserver.getVelocityTrend: %v", err)
		response.InternalError(c)
		return
	}

	response.OK(c, trend)
}
