package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/securepass/securepass/internal/api/metrics"
	"github.com/securepass/securepass/internal/core/ports"
)

const (
	defaultPage     = 0
	defaultPageSize = 10
)

// VaultHandler handles HTTP requests for vault entries. Every route runs
// behind middleware.Auth, which resolves the caller.
type VaultHandler struct {
	service ports.VaultService
}

func NewVaultHandler(service ports.VaultService) *VaultHandler {
	return &VaultHandler{service: service}
}

// Create handles POST /passwords.
//
// @Summary      Store a new vault entry
// @Tags         passwords
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createEntryRequest  true  "Entry"
// @Success      201   {object}  entryResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /passwords [post]
func (h *VaultHandler) Create(c echo.Context) error {
	caller, err := callerID(c)
	if err != nil {
		return err
	}

	var req createEntryRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	view, err := h.service.CreateEntry(c.Request().Context(), toCreateEntryInput(req), caller)
	metrics.VaultOperationsTotal.WithLabelValues("create", metrics.Result(err)).Inc()
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, toEntryResponse(*view))
}

// List handles GET /passwords.
//
// @Summary      List the caller's vault entries
// @Tags         passwords
// @Produce      json
// @Security     BearerAuth
// @Param        page  query     int  false  "Zero-based page index"  default(0)
// @Param        size  query     int  false  "Page size (max 100)"    default(10)
// @Success      200   {object}  listEntriesResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Router       /passwords [get]
func (h *VaultHandler) List(c echo.Context) error {
	caller, err := callerID(c)
	if err != nil {
		return err
	}

	q := listEntriesQuery{Page: defaultPage, Size: defaultPageSize}
	if err := (&echo.DefaultBinder{}).BindQueryParams(c, &q); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid query parameters")
	}
	if err := c.Validate(&q); err != nil {
		return err
	}

	page, err := h.service.ListEntries(c.Request().Context(), ports.ListEntriesInput{PageIndex: q.Page, PageSize: q.Size}, caller)
	metrics.VaultOperationsTotal.WithLabelValues("list", metrics.Result(err)).Inc()
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toListEntriesResponse(page))
}

// Get handles GET /passwords/:id.
//
// @Summary      Get a vault entry
// @Tags         passwords
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Entry id"
// @Success      200  {object}  entryResponse
// @Failure      401  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /passwords/{id} [get]
func (h *VaultHandler) Get(c echo.Context) error {
	caller, err := callerID(c)
	if err != nil {
		return err
	}

	view, err := h.service.GetEntry(c.Request().Context(), c.Param("id"), caller)
	metrics.VaultOperationsTotal.WithLabelValues("get", metrics.Result(err)).Inc()
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toEntryResponse(*view))
}

// Update handles PUT /passwords/:id. Absent fields are left unchanged.
//
// @Summary      Update a vault entry
// @Tags         passwords
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string              true  "Entry id"
// @Param        body  body      updateEntryRequest  true  "Fields to change"
// @Success      200   {object}  entryResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /passwords/{id} [put]
func (h *VaultHandler) Update(c echo.Context) error {
	caller, err := callerID(c)
	if err != nil {
		return err
	}

	var req updateEntryRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	view, err := h.service.UpdateEntry(c.Request().Context(), c.Param("id"), toUpdateEntryInput(req), caller)
	metrics.VaultOperationsTotal.WithLabelValues("update", metrics.Result(err)).Inc()
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toEntryResponse(*view))
}

// Delete handles DELETE /passwords/:id.
//
// @Summary      Delete a vault entry
// @Tags         passwords
// @Security     BearerAuth
// @Param        id   path  string  true  "Entry id"
// @Success      204
// @Failure      401  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /passwords/{id} [delete]
func (h *VaultHandler) Delete(c echo.Context) error {
	caller, err := callerID(c)
	if err != nil {
		return err
	}

	err = h.service.DeleteEntry(c.Request().Context(), c.Param("id"), caller)
	metrics.VaultOperationsTotal.WithLabelValues("delete", metrics.Result(err)).Inc()
	if err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
