package api

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/steppulse/steppulse/internal/domain/dto"
	"github.com/steppulse/steppulse/internal/domain/models"
	"github.com/steppulse/steppulse/internal/middleware"
	"github.com/steppulse/steppulse/internal/service"
)

// Handler provides HTTP handlers for step report submission and
// aggregate query endpoints.
//
// Responsibilities:
//   - Validate incoming path and query parameters
//   - Delegate to the steps engine and the aggregate reader
//   - Translate engine results into response DTOs
//   - Return structured JSON responses with appropriate HTTP status codes
type Handler struct {
	steps  service.StepsService
	reader service.AggregateReader
}

// NewHandler constructs a new Handler instance.
func NewHandler(steps service.StepsService, reader service.AggregateReader) *Handler {
	return &Handler{steps: steps, reader: reader}
}

// userID extracts and validates the user id path parameter. An empty or
// blank id aborts the request with 400.
func (h *Handler) userID(c *gin.Context) (string, bool) {
	id := strings.TrimSpace(c.Param("user_id"))
	if id == "" {
		middleware.AbortWithError(c, http.StatusBadRequest, "user_id is required", nil)
		return "", false
	}
	return id, true
}

// SubmitReport handles POST /api/v1/users/:user_id/steps requests.
//
// SubmitReport godoc
// @Summary      Submit a step report
// @Description  Folds a single step report into the user's daily record and period totals
// @Tags         steps
// @Accept       json
// @Produce      json
// @Param        user_id  path      string                 true  "User ID" example(user-42)
// @Param        report   body      dto.StepReportRequest  true  "Step report"
// @Success      200      {object}  models.DailyRecord     "Resulting daily record"
// @Failure      400      {object}  dto.ErrorResponse      "Bad Request"
// @Failure      500      {object}  dto.ErrorResponse      "Internal Error"
// @Router       /api/v1/users/{user_id}/steps [post]
func (h *Handler) SubmitReport(c *gin.Context) {
	userID, ok := h.userID(c)
	if !ok {
		return
	}

	var req dto.StepReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.AbortWithError(c, http.StatusBadRequest, "invalid request body", err)
		return
	}

	report := req.ToModel(userID)
	record, err := h.steps.SubmitOne(c.Request.Context(), userID, &report)
	if err != nil {
		middleware.AbortWithError(c, middleware.StatusFor(err), "failed to submit report", err)
		return
	}

	c.JSON(http.StatusOK, record)
}

// SubmitBatch handles POST /api/v1/users/:user_id/steps/batch requests.
//
// The batch is validated as a whole before any storage work: one invalid
// element rejects the entire batch and nothing is persisted.
//
// SubmitBatch godoc
// @Summary      Submit a batch of step reports
// @Description  Validates and folds a batch of step reports as a single unit of storage work
// @Tags         steps
// @Accept       json
// @Produce      json
// @Param        user_id  path      string                  true  "User ID" example(user-42)
// @Param        batch    body      dto.BatchSubmitRequest  true  "Batch of step reports"
// @Success      200      {object}  dto.BatchSubmitResponse "Accepted batch"
// @Failure      400      {object}  dto.ErrorResponse       "Bad Request"
// @Failure      500      {object}  dto.ErrorResponse       "Internal Error"
// @Router       /api/v1/users/{user_id}/steps/batch [post]
func (h *Handler) SubmitBatch(c *gin.Context) {
	userID, ok := h.userID(c)
	if !ok {
		return
	}

	var req dto.BatchSubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.AbortWithError(c, http.StatusBadRequest, "invalid request body", err)
		return
	}

	reports := make([]models.StepReport, 0, len(req.Reports))
	for _, r := range req.Reports {
		reports = append(reports, r.ToModel(userID))
	}

	accepted, err := h.steps.SubmitBatch(c.Request.Context(), userID, reports)
	if err != nil {
		middleware.AbortWithError(c, middleware.StatusFor(err), "failed to submit batch", err)
		return
	}

	c.JSON(http.StatusOK, dto.BatchSubmitResponse{
		Accepted: len(accepted),
		Reports:  req.Reports,
	})
}

// GetLatest handles GET /api/v1/users/:user_id/steps/latest requests.
//
// GetLatest godoc
// @Summary      Get the latest daily record
// @Description  Returns the most recent daily record for the user
// @Tags         steps
// @Produce      json
// @Param        user_id  path      string              true  "User ID" example(user-42)
// @Success      200      {object}  models.DailyRecord  "Latest record"
// @Failure      404      {object}  dto.ErrorResponse   "Not Found"
// @Failure      500      {object}  dto.ErrorResponse   "Internal Error"
// @Router       /api/v1/users/{user_id}/steps/latest [get]
func (h *Handler) GetLatest(c *gin.Context) {
	userID, ok := h.userID(c)
	if !ok {
		return
	}

	record, err := h.reader.Latest(c.Request.Context(), userID)
	if err != nil {
		middleware.AbortWithError(c, middleware.StatusFor(err), "failed to fetch latest record", err)
		return
	}

	c.JSON(http.StatusOK, record)
}

// GetRangeTotal handles GET /api/v1/users/:user_id/steps/total requests.
//
// Query Parameters:
//   - start_time (string, required): RFC 3339 lower bound on uploaded time.
//   - end_time (string, required): RFC 3339 upper bound on uploaded time.
//
// GetRangeTotal godoc
// @Summary      Get total steps in a time window
// @Description  Sums the step counts of daily records uploaded within the window
// @Tags         steps
// @Produce      json
// @Param        user_id     path      string  true  "User ID" example(user-42)
// @Param        start_time  query     string  true  "Window start, RFC 3339" example(2024-04-15T00:00:00Z)
// @Param        end_time    query     string  true  "Window end, RFC 3339" example(2024-04-21T23:59:59Z)
// @Success      200         {object}  dto.RangeTotalResponse  "Success"
// @Failure      400         {object}  dto.ErrorResponse       "Bad Request"
// @Failure      500         {object}  dto.ErrorResponse       "Internal Error"
// @Router       /api/v1/users/{user_id}/steps/total [get]
func (h *Handler) GetRangeTotal(c *gin.Context) {
	userID, ok := h.userID(c)
	if !ok {
		return
	}

	start, end, ok := h.timeWindow(c)
	if !ok {
		return
	}

	total, err := h.reader.RangeTotal(c.Request.Context(), userID, start, end)
	if err != nil {
		middleware.AbortWithError(c, middleware.StatusFor(err), "failed to compute total", err)
		return
	}

	c.JSON(http.StatusOK, dto.RangeTotalResponse{
		UserID:     userID,
		StartTime:  start,
		EndTime:    end,
		TotalSteps: total,
	})
}

// GetDailySeries handles GET /api/v1/users/:user_id/steps/daily requests.
//
// Query Parameters:
//   - start_date (string, required): First day of the series, YYYY-MM-DD.
//   - end_date (string, required): Last day of the series, YYYY-MM-DD.
//
// GetDailySeries godoc
// @Summary      Get a day-level step series
// @Description  Returns per-day step totals for the given date range, ordered ascending
// @Tags         steps
// @Produce      json
// @Param        user_id     path      string  true  "User ID" example(user-42)
// @Param        start_date  query     string  true  "First day, YYYY-MM-DD" example(2024-04-15)
// @Param        end_date    query     string  true  "Last day, YYYY-MM-DD" example(2024-04-21)
// @Success      200         {object}  dto.DailySeriesResponse  "Success"
// @Failure      400         {object}  dto.ErrorResponse        "Bad Request"
// @Failure      500         {object}  dto.ErrorResponse        "Internal Error"
// @Router       /api/v1/users/{user_id}/steps/daily [get]
func (h *Handler) GetDailySeries(c *gin.Context) {
	userID, ok := h.userID(c)
	if !ok {
		return
	}

	start, ok := h.dateParam(c, "start_date")
	if !ok {
		return
	}
	end, ok := h.dateParam(c, "end_date")
	if !ok {
		return
	}
	if end.Before(start) {
		middleware.AbortWithError(c, http.StatusBadRequest, "end_date must not be before start_date", nil)
		return
	}

	series, err := h.reader.DailySeries(c.Request.Context(), userID, start, end)
	if err != nil {
		middleware.AbortWithError(c, middleware.StatusFor(err), "failed to compute daily series", err)
		return
	}

	points := make([]dto.DailyPoint, 0, len(series))
	for _, p := range series {
		points = append(points, dto.DailyPoint{
			Date:       p.Date.Format("2006-01-02"),
			TotalSteps: p.StepCount,
		})
	}

	c.JSON(http.StatusOK, dto.DailySeriesResponse{UserID: userID, Series: points})
}

// GetWeekTotal handles GET /api/v1/users/:user_id/steps/week requests.
//
// GetWeekTotal godoc
// @Summary      Get the step total for a week
// @Description  Looks up the rollup bucket for the given year and aligned week number
// @Tags         steps
// @Produce      json
// @Param        user_id  path      string  true  "User ID" example(user-42)
// @Param        year     query     int     true  "Year" example(2024)
// @Param        week     query     int     true  "Aligned week number, 1-52" example(16)
// @Success      200      {object}  dto.PeriodTotalResponse  "Success"
// @Failure      400      {object}  dto.ErrorResponse        "Bad Request"
// @Failure      404      {object}  dto.ErrorResponse        "Not Found"
// @Failure      500      {object}  dto.ErrorResponse        "Internal Error"
// @Router       /api/v1/users/{user_id}/steps/week [get]
func (h *Handler) GetWeekTotal(c *gin.Context) {
	userID, ok := h.userID(c)
	if !ok {
		return
	}

	year, ok := h.intParam(c, "year", 1)
	if !ok {
		return
	}
	week, ok := h.intParam(c, "week", 1)
	if !ok {
		return
	}
	if week > 52 {
		middleware.AbortWithError(c, http.StatusBadRequest, "week must be between 1 and 52", nil)
		return
	}

	total, err := h.reader.WeekTotal(c.Request.Context(), userID, year, week)
	if err != nil {
		middleware.AbortWithError(c, middleware.StatusFor(err), "failed to fetch week total", err)
		return
	}

	c.JSON(http.StatusOK, dto.PeriodTotalResponse{
		UserID:     userID,
		Year:       year,
		Week:       week,
		TotalSteps: total,
	})
}

// GetMonthTotal handles GET /api/v1/users/:user_id/steps/month requests.
//
// GetMonthTotal godoc
// @Summary      Get the step total for a month
// @Description  Looks up the rollup bucket for the given year and month
// @Tags         steps
// @Produce      json
// @Param        user_id  path      string  true  "User ID" example(user-42)
// @Param        year     query     int     true  "Year" example(2024)
// @Param        month    query     int     true  "Month, 1-12" example(4)
// @Success      200      {object}  dto.PeriodTotalResponse  "Success"
// @Failure      400      {object}  dto.ErrorResponse        "Bad Request"
// @Failure      404      {object}  dto.ErrorResponse        "Not Found"
// @Failure      500      {object}  dto.ErrorResponse        "Internal Error"
// @Router       /api/v1/users/{user_id}/steps/month [get]
func (h *Handler) GetMonthTotal(c *gin.Context) {
	userID, ok := h.userID(c)
	if !ok {
		return
	}

	year, ok := h.intParam(c, "year", 1)
	if !ok {
		return
	}
	month, ok := h.intParam(c, "month", 1)
	if !ok {
		return
	}
	if month > 12 {
		middleware.AbortWithError(c, http.StatusBadRequest, "month must be between 1 and 12", nil)
		return
	}

	total, err := h.reader.MonthTotal(c.Request.Context(), userID, year, month)
	if err != nil {
		middleware.AbortWithError(c, middleware.StatusFor(err), "failed to fetch month total", err)
		return
	}

	c.JSON(http.StatusOK, dto.PeriodTotalResponse{
		UserID:     userID,
		Year:       year,
		Month:      month,
		TotalSteps: total,
	})
}

// timeWindow parses the required start_time and end_time RFC 3339 query
// parameters and checks their ordering.
func (h *Handler) timeWindow(c *gin.Context) (time.Time, time.Time, bool) {
	start, err := time.Parse(time.RFC3339, c.Query("start_time"))
	if err != nil {
		middleware.AbortWithError(c, http.StatusBadRequest, "invalid start_time, expected RFC 3339", err)
		return time.Time{}, time.Time{}, false
	}
	end, err := time.Parse(time.RFC3339, c.Query("end_time"))
	if err != nil {
		middleware.AbortWithError(c, http.StatusBadRequest, "invalid end_time, expected RFC 3339", err)
		return time.Time{}, time.Time{}, false
	}
	if end.Before(start) {
		middleware.AbortWithError(c, http.StatusBadRequest, "end_time must not be before start_time", nil)
		return time.Time{}, time.Time{}, false
	}
	return start, end, true
}

// dateParam parses a required YYYY-MM-DD query parameter.
func (h *Handler) dateParam(c *gin.Context, name string) (time.Time, bool) {
	d, err := time.Parse("2006-01-02", c.Query(name))
	if err != nil {
		middleware.AbortWithError(c, http.StatusBadRequest, "invalid "+name+", expected YYYY-MM-DD", err)
		return time.Time{}, false
	}
	return d, true
}

// intParam parses a required integer query parameter with a lower bound.
func (h *Handler) intParam(c *gin.Context, name string, min int) (int, bool) {
	v, err := strconv.Atoi(c.Query(name))
	if err != nil || v < min {
		middleware.AbortWithError(c, http.StatusBadRequest, "invalid "+name, err)
		return 0, false
	}
	return v, true
}
