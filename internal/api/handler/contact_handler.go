package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/99minutos/contacts-api/internal/core/ports"
)

const (
	msgCreated = "Contact created successfully"
	msgUpdated = "Contact updated successfully"
	msgDeleted = "Contact deleted successfully"
)

// ContactHandler handles HTTP requests for contact operations. Service errors
// are returned as is and mapped to status codes by the API error handler.
type ContactHandler struct {
	service ports.ContactService
}

func NewContactHandler(service ports.ContactService) *ContactHandler {
	return &ContactHandler{service: service}
}

// Create handles POST /contacts.
//
// @Summary      Create a contact
// @Tags         contacts
// @Accept       json
// @Produce      json
// @Param        body  body      createContactRequest  true  "Contact to create"
// @Success      201   {object}  contactEnvelope
// @Failure      400   {object}  errorResponse
// @Failure      500   {object}  errorResponse
// @Router       /contacts [post]
func (h *ContactHandler) Create(c echo.Context) error {
	var req createContactRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	contact, err := h.service.CreateContact(c.Request().Context(), toCreateInput(req))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, contactEnvelope{
		Message: msgCreated,
		Contact: toContactResponse(contact),
	})
}

// List handles GET /contacts.
//
// @Summary      List all contacts
// @Tags         contacts
// @Produce      json
// @Success      200  {array}   contactResponse
// @Failure      500  {object}  errorResponse
// @Router       /contacts [get]
func (h *ContactHandler) List(c echo.Context) error {
	contacts, err := h.service.ListContacts(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toListResponse(contacts))
}

// Get handles GET /contacts/:id.
//
// @Summary      Get a contact by contactId
// @Tags         contacts
// @Produce      json
// @Param        id   path      string  true  "contactId"
// @Success      200  {object}  contactResponse
// @Failure      404  {object}  errorResponse
// @Failure      500  {object}  errorResponse
// @Router       /contacts/{id} [get]
func (h *ContactHandler) Get(c echo.Context) error {
	contact, err := h.service.GetContact(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toContactResponse(contact))
}

// Update handles PUT /contacts/:id. All four mutable fields are replaced;
// omitted ones are cleared.
//
// @Summary      Replace a contact's email, phone and primary relationship
// @Tags         contacts
// @Accept       json
// @Produce      json
// @Param        id    path      string                true  "contactId"
// @Param        body  body      updateContactRequest  true  "Replacement values"
// @Success      200   {object}  contactEnvelope
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      500   {object}  errorResponse
// @Router       /contacts/{id} [put]
func (h *ContactHandler) Update(c echo.Context) error {
	var req updateContactRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	contact, err := h.service.UpdateContact(c.Request().Context(), toUpdateInput(c.Param("id"), req))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, contactEnvelope{
		Message: msgUpdated,
		Contact: toContactResponse(contact),
	})
}

// Delete handles DELETE /contacts/:id.
//
// @Summary      Delete a contact
// @Tags         contacts
// @Produce      json
// @Param        id   path      string  true  "contactId"
// @Success      200  {object}  messageResponse
// @Failure      404  {object}  errorResponse
// @Failure      500  {object}  errorResponse
// @Router       /contacts/{id} [delete]
func (h *ContactHandler) Delete(c echo.Context) error {
	if err := h.service.DeleteContact(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: msgDeleted})
}
