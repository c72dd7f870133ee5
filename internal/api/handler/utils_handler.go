package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/securepass/securepass/internal/api/metrics"
	"github.com/securepass/securepass/internal/core/ports"
)

const defaultGeneratedLength = 12

// UtilsHandler exposes the stateless strength checker and secret generator.
type UtilsHandler struct {
	evaluator ports.StrengthEvaluator
	generator ports.SecretGenerator
}

func NewUtilsHandler(evaluator ports.StrengthEvaluator, generator ports.SecretGenerator) *UtilsHandler {
	return &UtilsHandler{evaluator: evaluator, generator: generator}
}

// Check handles POST /utils/checker.
//
// @Summary      Evaluate password strength
// @Tags         utils
// @Accept       json
// @Produce      json
// @Param        body  body      checkerRequest  true  "Password to evaluate"
// @Success      200   {object}  checkerResponse
// @Failure      400   {object}  errorResponse
// @Router       /utils/checker [post]
func (h *UtilsHandler) Check(c echo.Context) error {
	var req checkerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	report, err := h.evaluator.Evaluate(req.Password)
	if err != nil {
		return err
	}

	metrics.StrengthEvaluationsTotal.WithLabelValues(report.Strength).Inc()
	return c.JSON(http.StatusOK, toCheckerResponse(report))
}

// Generate handles GET /utils/generator. Every class defaults to enabled.
//
// @Summary      Generate a random password
// @Tags         utils
// @Produce      json
// @Param        length     query     int   false  "Length"                 default(12)
// @Param        uppercase  query     bool  false  "Include A-Z"            default(true)
// @Param        lowercase  query     bool  false  "Include a-z"            default(true)
// @Param        numbers    query     bool  false  "Include 0-9"            default(true)
// @Param        special    query     bool  false  "Include !@#$%^&*()-_+=<>?"  default(true)
// @Success      200        {object}  generatorResponse
// @Failure      400        {object}  errorResponse
// @Router       /utils/generator [get]
func (h *UtilsHandler) Generate(c echo.Context) error {
	q := generatorQuery{
		Length:    defaultGeneratedLength,
		Uppercase: true,
		Lowercase: true,
		Numbers:   true,
		Special:   true,
	}
	if err := (&echo.DefaultBinder{}).BindQueryParams(c, &q); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid query parameters")
	}
	if err := c.Validate(&q); err != nil {
		return err
	}

	out, err := h.generator.Generate(toGenerationSpec(q))
	if err != nil {
		return err
	}

	metrics.SecretsGeneratedTotal.Inc()
	return c.JSON(http.StatusOK, generatorResponse{Password: out.Secret, Properties: out.Spec})
}
