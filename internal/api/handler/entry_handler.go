package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/brandbook/entries-api/internal/core/domain"
	"github.com/brandbook/entries-api/internal/core/ports"
)

// EntryHandler serves the authenticated user's entry collection. Every
// operation answers with the full, current list.
type EntryHandler struct {
	service ports.EntryService
}

func NewEntryHandler(service ports.EntryService) *EntryHandler {
	return &EntryHandler{service: service}
}

// List handles GET /entries.
//
// @Summary      List entries
// @Tags         entries
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.Entry
// @Failure      400  {object}  errorResponse
// @Failure      401  {object}  errorResponse
// @Router       /entries [get]
func (h *EntryHandler) List(c echo.Context) error {
	user, err := ctxUser(c)
	if err != nil {
		return err
	}

	entries, err := h.service.List(c.Request().Context(), user)
	if err != nil {
		return entryFailure(c, err)
	}
	return c.JSON(http.StatusOK, entries)
}

// Create handles POST /create-entry.
//
// @Summary      Create an entry
// @Tags         entries
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createEntryRequest  true  "Entry fields"
// @Success      201   {array}   domain.Entry
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Router       /create-entry [post]
func (h *EntryHandler) Create(c echo.Context) error {
	user, err := ctxUser(c)
	if err != nil {
		return err
	}

	var req createEntryRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid payload")
	}
	req.trim()
	if err := c.Validate(&req); err != nil {
		return fail(c, http.StatusBadRequest, err.Error())
	}

	entries, err := h.service.Create(c.Request().Context(), user, req.toFields())
	if err != nil {
		return entryFailure(c, err)
	}
	return c.JSON(http.StatusCreated, entries)
}

// Update handles POST /update-entry. An unknown id leaves the list unchanged.
//
// @Summary      Update an entry
// @Tags         entries
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      updateEntryRequest  true  "Entry id and new fields"
// @Success      200   {array}   domain.Entry
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Router       /update-entry [post]
func (h *EntryHandler) Update(c echo.Context) error {
	user, err := ctxUser(c)
	if err != nil {
		return err
	}

	var req updateEntryRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid payload")
	}
	req.trim()
	if err := c.Validate(&req); err != nil {
		return fail(c, http.StatusBadRequest, err.Error())
	}

	entries, err := h.service.Update(c.Request().Context(), user, req.ID, req.toFields())
	if err != nil {
		return entryFailure(c, err)
	}
	return c.JSON(http.StatusOK, entries)
}

// Delete handles POST /delete-entry.
//
// @Summary      Delete an entry
// @Tags         entries
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      deleteEntryRequest  true  "Entry id"
// @Success      200   {array}   domain.Entry
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Router       /delete-entry [post]
func (h *EntryHandler) Delete(c echo.Context) error {
	user, err := ctxUser(c)
	if err != nil {
		return err
	}

	var req deleteEntryRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return fail(c, http.StatusBadRequest, err.Error())
	}

	entries, err := h.service.Delete(c.Request().Context(), user, req.ID)
	if err != nil {
		return entryFailure(c, err)
	}
	return c.JSON(http.StatusOK, entries)
}

func entryFailure(c echo.Context, err error) error {
	switch {
	case errors.Is(err, domain.ErrConcurrentUpdate):
		return fail(c, http.StatusBadRequest, "Entries were changed by another request, reload and try again.")
	case errors.Is(err, domain.ErrInvalidInput):
		return fail(c, http.StatusBadRequest, "invalid entry")
	default:
		return fail(c, http.StatusBadRequest, "Unable to save entries.")
	}
}
