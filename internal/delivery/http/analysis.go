package http

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"market-analyzer/internal/dto"
	"market-analyzer/internal/model"
)

func (h *HttpAPIHandler) SetupAnalysis(base *echo.Group) {
	v1 := base.Group("/v1/analysis")
	{
		v1.POST("", h.Analyze)
		v1.GET("/:symbol", h.LatestAnalysis)
		v1.POST("/run", h.RunAnalyses)
	}
}

// Analyze scores a caller-supplied candle series.
func (h *HttpAPIHandler) Analyze(c echo.Context) error {
	ctx := c.Request().Context()

	req := new(dto.AnalyzeRequest)
	if err := c.Bind(req); err != nil {
		return c.JSON(http.StatusBadRequest, dto.NewBadRequestResponse("invalid request body"))
	}

	if err := h.validator.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, dto.NewBadRequestResponse(err.Error()))
	}

	series := req.ToPriceSeries()
	if err := series.Validate(); err != nil {
		return c.JSON(http.StatusBadRequest, dto.NewBadRequestResponse(err.Error()))
	}

	lang := req.Locale
	if lang == "" {
		lang = h.cfg.Analyzer.Locale
	}

	analysis, err := h.service.AnalysisService.AnalyzeSeries(ctx, req.Symbol, lang, series)
	if err != nil {
		return h.analysisErrorResponse(c, err)
	}

	return c.JSON(http.StatusOK, dto.NewSuccessResponse("analysis completed", dto.NewAnalysisResponse(analysis)))
}

// LatestAnalysis serves the freshest cached analysis for a symbol.
func (h *HttpAPIHandler) LatestAnalysis(c echo.Context) error {
	symbol := strings.ToUpper(c.Param("symbol"))

	analysis, ok := h.service.AnalysisService.Latest(symbol)
	if !ok {
		return c.JSON(http.StatusNotFound, dto.NewBaseResponse(http.StatusNotFound, "no analysis for symbol", nil))
	}

	return c.JSON(http.StatusOK, dto.NewSuccessResponse("ok", dto.NewAnalysisResponse(analysis)))
}

// RunAnalyses triggers one analysis run over all configured symbols.
func (h *HttpAPIHandler) RunAnalyses(c echo.Context) error {
	response := dto.NewBaseResponse(http.StatusOK, "Analysis run completed", nil)
	if err := h.service.AnalysisService.RunAll(c.Request().Context()); err != nil {
		response.Code = http.StatusInternalServerError
		response.Message = err.Error()
	}
	return c.JSON(response.Code, response)
}

// analysisErrorResponse maps the error taxonomy onto HTTP statuses. The
// message is already localized by the service layer.
func (h *HttpAPIHandler) analysisErrorResponse(c echo.Context, err error) error {
	aerr, ok := model.AsAnalysisError(err)
	if !ok {
		return c.JSON(http.StatusInternalServerError, dto.NewBaseResponse(http.StatusInternalServerError, err.Error(), nil))
	}

	status := http.StatusInternalServerError
	switch aerr.Code {
	case model.ErrCodeNoData:
		status = http.StatusNotFound
	case model.ErrCodeTimeout:
		status = http.StatusGatewayTimeout
	}

	return c.JSON(status, dto.NewBaseResponse(status, aerr.Message, map[string]string{"error_code": string(aerr.Code)}))
}
