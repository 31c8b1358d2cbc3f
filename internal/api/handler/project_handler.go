package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/rexxailabs/client-projects-api/internal/api/metrics"
	"github.com/rexxailabs/client-projects-api/internal/core/domain"
	"github.com/rexxailabs/client-projects-api/internal/core/ports"
)

// ProjectHandler handles HTTP requests for project resources.
type ProjectHandler struct {
	service ports.ProjectService
}

func NewProjectHandler(service ports.ProjectService) *ProjectHandler {
	return &ProjectHandler{service: service}
}

type createProjectRequest struct {
	Name         string     `json:"name"         validate:"required,min=1"`
	Description  string     `json:"description"`
	ClientID     string     `json:"clientId"     validate:"required"`
	Status       string     `json:"status"       validate:"omitempty,oneof=PENDING IN_PROGRESS COMPLETED"`
	StartDate    *time.Time `json:"startDate"`
	DeliveryDate *time.Time `json:"deliveryDate"`
}

type updateProjectRequest struct {
	Name         *string    `json:"name"        validate:"omitempty,min=1"`
	Description  *string    `json:"description"`
	Status       *string    `json:"status"      validate:"omitempty,oneof=PENDING IN_PROGRESS COMPLETED"`
	StartDate    *time.Time `json:"startDate"`
	DeliveryDate *time.Time `json:"deliveryDate"`
}

// projectResponse embeds the project and a summary of its parent client.
type projectResponse struct {
	*domain.Project
	Client ports.ClientSummary `json:"client"`
}

// Create handles POST /projects. The referenced client must belong to the
// caller; otherwise the request fails as if the client did not exist.
//
// @Summary      Create a project
// @Tags         projects
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createProjectRequest  true  "Project details"
// @Success      201   {object}  domain.Project
// @Failure      400   {object}  map[string]any
// @Failure      401   {object}  map[string]any
// @Failure      404   {object}  map[string]any
// @Router       /projects [post]
func (h *ProjectHandler) Create(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	var req createProjectRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	project, err := h.service.Create(c.Request().Context(), ports.CreateProjectInput{
		Name:         req.Name,
		Description:  req.Description,
		ClientID:     req.ClientID,
		Status:       domain.ProjectStatus(req.Status),
		StartDate:    req.StartDate,
		DeliveryDate: req.DeliveryDate,
	}, userID)
	if err != nil {
		return err
	}

	metrics.ProjectsCreatedTotal.WithLabelValues(string(project.Status)).Inc()
	return c.JSON(http.StatusCreated, project)
}

// List handles GET /projects?clientId=&status=.
//
// @Summary      List own projects
// @Tags         projects
// @Produce      json
// @Security     BearerAuth
// @Param        clientId  query     string  false  "Restrict to one client (must be owned)"
// @Param        status    query     string  false  "Filter by status"  Enums(PENDING, IN_PROGRESS, COMPLETED)
// @Success      200       {array}   projectResponse
// @Failure      401       {object}  map[string]any
// @Failure      404       {object}  map[string]any
// @Router       /projects [get]
func (h *ProjectHandler) List(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	status := domain.ProjectStatus(c.QueryParam("status"))
	if status != "" && !status.IsValid() {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid status filter")
	}

	results, err := h.service.ListFiltered(c.Request().Context(), userID, ports.ProjectFilters{
		ClientID: c.QueryParam("clientId"),
		Status:   status,
	})
	if err != nil {
		return err
	}

	out := make([]projectResponse, 0, len(results))
	for _, r := range results {
		out = append(out, projectResponse{Project: r.Project, Client: r.Client})
	}
	return c.JSON(http.StatusOK, out)
}

// Get handles GET /projects/:id.
//
// @Summary      Get a project by id
// @Tags         projects
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Project id"
// @Success      200  {object}  projectResponse
// @Failure      401  {object}  map[string]any
// @Failure      404  {object}  map[string]any
// @Router       /projects/{id} [get]
func (h *ProjectHandler) Get(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	result, err := h.service.GetByID(c.Request().Context(), c.Param("id"), userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, projectResponse{Project: result.Project, Client: result.Client})
}

// Update handles PUT /projects/:id.
//
// @Summary      Update a project
// @Tags         projects
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                true  "Project id"
// @Param        body  body      updateProjectRequest  true  "Fields to update"
// @Success      200   {object}  domain.Project
// @Failure      400   {object}  map[string]any
// @Failure      401   {object}  map[string]any
// @Failure      404   {object}  map[string]any
// @Router       /projects/{id} [put]
func (h *ProjectHandler) Update(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	var req updateProjectRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	input := ports.UpdateProjectInput{
		Name:         req.Name,
		Description:  req.Description,
		StartDate:    req.StartDate,
		DeliveryDate: req.DeliveryDate,
	}
	if req.Status != nil {
		status := domain.ProjectStatus(*req.Status)
		input.Status = &status
	}

	project, err := h.service.Update(c.Request().Context(), c.Param("id"), input, userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, project)
}

// Delete handles DELETE /projects/:id.
//
// @Summary      Delete a project
// @Tags         projects
// @Security     BearerAuth
// @Param        id  path  string  true  "Project id"
// @Success      204
// @Failure      401  {object}  map[string]any
// @Failure      404  {object}  map[string]any
// @Router       /projects/{id} [delete]
func (h *ProjectHandler) Delete(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.Request().Context(), c.Param("id"), userID); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
