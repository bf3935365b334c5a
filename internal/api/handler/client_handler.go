package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/cropbank/banking-system/internal/api/metrics"
	"github.com/cropbank/banking-system/internal/core/domain"
	"github.com/cropbank/banking-system/internal/core/ports"
)

// ClientHandler handles HTTP requests for corporate client operations. All
// routes are RM-gated; ownership is enforced in the service.
type ClientHandler struct {
	clientService ports.ClientService
}

func NewClientHandler(clientService ports.ClientService) *ClientHandler {
	return &ClientHandler{clientService: clientService}
}

// Create onboards a new client owned by the caller.
//
// @Summary      Onboard a corporate client
// @Tags         clients
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      clientRequest  true  "Client details"
// @Success      201   {object}  domain.Client
// @Failure      400   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Router       /api/rm/clients [post]
func (h *ClientHandler) Create(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}

	var req clientRequest
	if err := c.Bind(&req); err != nil {
		return domain.ErrMalformedInput
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	client, err := h.clientService.Create(c.Request().Context(), claims, toClientInput(req))
	if err != nil {
		return err
	}

	metrics.ClientsOnboardedTotal.Inc()
	return c.JSON(http.StatusCreated, client)
}

// List returns all of the caller's clients.
//
// @Summary      List own clients
// @Tags         clients
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.Client
// @Failure      403  {object}  map[string]string
// @Router       /api/rm/clients [get]
func (h *ClientHandler) List(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}

	clients, err := h.clientService.Search(c.Request().Context(), claims, "", "")
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, clients)
}

// Get returns a single caller-owned client.
//
// @Summary      Get a client by id
// @Tags         clients
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Client id"
// @Success      200  {object}  domain.Client
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /api/rm/clients/{id} [get]
func (h *ClientHandler) Get(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}

	client, err := h.clientService.Get(c.Request().Context(), claims, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, client)
}

// Update replaces the mutable fields of a caller-owned client.
//
// @Summary      Update a client
// @Tags         clients
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string         true  "Client id"
// @Param        body  body      clientRequest  true  "Client details"
// @Success      200   {object}  domain.Client
// @Failure      400   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /api/rm/clients/{id} [put]
func (h *ClientHandler) Update(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}

	var req clientRequest
	if err := c.Bind(&req); err != nil {
		return domain.ErrMalformedInput
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	client, err := h.clientService.Update(c.Request().Context(), claims, c.Param("id"), toClientInput(req))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, client)
}

// Search filters the caller's clients by company name or industry.
//
// @Summary      Search own clients
// @Tags         clients
// @Produce      json
// @Security     BearerAuth
// @Param        companyName  query     string  false  "Company name substring (case-insensitive)"
// @Param        industry     query     string  false  "Industry (case-insensitive exact match)"
// @Success      200          {array}   domain.Client
// @Failure      403          {object}  map[string]string
// @Router       /api/rm/clients/search [get]
func (h *ClientHandler) Search(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}

	clients, err := h.clientService.Search(c.Request().Context(), claims,
		c.QueryParam("companyName"), c.QueryParam("industry"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, clients)
}

// Industries returns the distinct industries across the caller's clients.
//
// @Summary      List own distinct industries
// @Tags         clients
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   string
// @Failure      403  {object}  map[string]string
// @Router       /api/rm/clients/industries [get]
func (h *ClientHandler) Industries(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}

	industries, err := h.clientService.Industries(c.Request().Context(), claims)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, industries)
}

func toClientInput(req clientRequest) ports.ClientInput {
	docs := false
	if req.DocumentsSubmitted != nil {
		docs = *req.DocumentsSubmitted
	}
	return ports.ClientInput{
		CompanyName: req.CompanyName,
		Industry:    req.Industry,
		Address:     req.Address,
		PrimaryContact: ports.ContactInput{
			Name:  req.PrimaryContact.Name,
			Email: req.PrimaryContact.Email,
			Phone: req.PrimaryContact.Phone,
		},
		AnnualTurnover:     req.AnnualTurnover,
		DocumentsSubmitted: docs,
	}
}
