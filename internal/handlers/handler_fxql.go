package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/fxql_service/internal/core/ports/services"
	"github.com/SscSPs/fxql_service/internal/dto"
	"github.com/SscSPs/fxql_service/internal/middleware"
	"github.com/gin-gonic/gin"
)

// fxqlHandler handles HTTP requests related to FXQL statements.
type fxqlHandler struct {
	fxqlService portssvc.FxqlSvcFacade
}

// newFxqlHandler creates a new fxqlHandler.
func newFxqlHandler(fs portssvc.FxqlSvcFacade) *fxqlHandler {
	return &fxqlHandler{
		fxqlService: fs,
	}
}

// registerFxqlRoutes registers routes related to FXQL statements. submit
// middleware (e.g. the rate limiter) only guards the submission endpoint.
func registerFxqlRoutes(rg *gin.RouterGroup, fxqlService portssvc.FxqlSvcFacade, submit ...gin.HandlerFunc) {
	h := newFxqlHandler(fxqlService)
	create := append(append([]gin.HandlerFunc{}, submit...), h.createFxqlStatement)

	statements := rg.Group("/fxql-statements")
	{
		statements.POST("", create...)
		statements.GET("/generate-max", h.generateMaxPairs)
		statements.GET("/rates", h.listExchangeRates)
		statements.GET("/rates/:pair", h.getExchangeRate)
	}
}

// createFxqlStatement godoc
// @Summary Parse FXQL statements and store valid rate entries
// @Description Parses every block of the FXQL document, skips invalid ones and upserts the rest by currency pair.
// @Tags fxql-statements
// @Accept  json
// @Produce  json
// @Param   statement body dto.CreateFxqlRequest true "FXQL document"
// @Success 201 {object} dto.Response{data=dto.SubmissionResponse}
// @Failure 400 {object} dto.ErrorResponse "No valid statement or too many currency pairs"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 429 {object} dto.ErrorResponse "Too many requests"
// @Failure 500 {object} dto.ErrorResponse "One or more pairs could not be stored"
// @Security BearerAuth
// @Router /fxql-statements [post]
func (h *fxqlHandler) createFxqlStatement(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateFxqlRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateFxqlStatement", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "FXQL field is required.", Code: dto.CodeBadRequest})
		return
	}

	logger.Info("Received FXQL submission", slog.Int("bytes", len(req.FXQL)))

	result, err := h.fxqlService.StoreSubmission(c.Request.Context(), req.FXQL)
	if err != nil {
		respondError(c, err, dto.ToSubmissionResponse(result))
		return
	}

	logger.Info("FXQL submission stored", slog.Int("total", result.Total))
	respond(c, http.StatusCreated, dto.CodeCreated, "Rates Parsed Successfully.", dto.ToSubmissionResponse(result))
}

// generateMaxPairs godoc
// @Summary Generate a large FXQL document
// @Description Returns random valid FXQL blocks, by default one more than the per-request pair limit.
// @Tags fxql-statements
// @Produce  json
// @Param   count query int false "Number of blocks" minimum(1) maximum(10000)
// @Success 200 {object} dto.GenerateFxqlResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid count"
// @Security BearerAuth
// @Router /fxql-statements/generate-max [get]
func (h *fxqlHandler) generateMaxPairs(c *gin.Context) {
	var params dto.GenerateFxqlParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "count must be an integer between 1 and 10000", Code: dto.CodeBadRequest})
		return
	}

	c.JSON(http.StatusOK, dto.GenerateFxqlResponse{
		FXQL: h.fxqlService.GenerateMaxPairs(c.Request.Context(), params.Count),
	})
}

// listExchangeRates godoc
// @Summary List stored exchange rates
// @Description Lists stored rates ordered by currency pair.
// @Tags fxql-statements
// @Produce  json
// @Param   limit  query int false "Page size (default 50, max 500)"
// @Param   offset query int false "Rows to skip"
// @Success 200 {object} dto.Response{data=[]dto.ExchangeRateResponse}
// @Failure 400 {object} dto.ErrorResponse "Invalid paging parameters"
// @Failure 500 {object} dto.ErrorResponse "Failed to list exchange rates"
// @Security BearerAuth
// @Router /fxql-statements/rates [get]
func (h *fxqlHandler) listExchangeRates(c *gin.Context) {
	var params dto.ListExchangeRatesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "limit and offset must be non-negative integers", Code: dto.CodeBadRequest})
		return
	}

	rates, err := h.fxqlService.ListExchangeRates(c.Request.Context(), params.Limit, params.Offset)
	if err != nil {
		respondError(c, err, nil)
		return
	}

	respond(c, http.StatusOK, dto.CodeOK, "Rates retrieved successfully.", dto.ToListExchangeRateResponse(rates))
}

// getExchangeRate godoc
// @Summary Get the stored rate of a currency pair
// @Tags fxql-statements
// @Produce  json
// @Param   pair path string true "Currency pair, e.g. USD-GBP"
// @Success 200 {object} dto.Response{data=dto.ExchangeRateResponse}
// @Failure 400 {object} dto.ErrorResponse "Invalid currency pair"
// @Failure 404 {object} dto.ErrorResponse "Exchange rate not found"
// @Failure 500 {object} dto.ErrorResponse "Failed to retrieve exchange rate"
// @Security BearerAuth
// @Router /fxql-statements/rates/{pair} [get]
func (h *fxqlHandler) getExchangeRate(c *gin.Context) {
	pair := c.Param("pair")
	rate, err := h.fxqlService.GetExchangeRate(c.Request.Context(), pair)
	if err != nil {
		respondError(c, err, nil)
		return
	}

	respond(c, http.StatusOK, dto.CodeOK, "Rate retrieved successfully.", dto.ToExchangeRateResponse(*rate))
}
