// internal/controllers/projects_controller.go

package controllers

import (
	"encoding/json"
	"net/http"

	"github.com/crewdesk/workforce-service/internal/dtos"
	"github.com/crewdesk/workforce-service/internal/services"
	"github.com/crewdesk/workforce-service/internal/utils"
	"github.com/go-playground/validator/v10"
)

type ProjectsController struct {
	projectService *services.ProjectService
	validate       *validator.Validate
}

func NewProjectsController(ps *services.ProjectService) *ProjectsController {
	return &ProjectsController{
		projectService: ps,
		validate:       validator.New(),
	}
}

// ----------------------------------------------------------------
// POST /api/v1/projects
// ----------------------------------------------------------------
func (c *ProjectsController) CreateProjectHandler(w http.ResponseWriter, r *http.Request) {
	var req dtos.CreateProjectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid JSON payload", nil, err)
		return
	}
	if err := c.validate.Struct(req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeValidation, "Validation error", nil, err)
		return
	}

	resp, err := c.projectService.CreateProject(r.Context(), &req)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, resp)
}

// ----------------------------------------------------------------
// PATCH /api/v1/projects/{id}
// ----------------------------------------------------------------
func (c *ProjectsController) UpdateProjectHandler(w http.ResponseWriter, r *http.Request) {
	projectID, ok := parsePathID(w, r, "id")
	if !ok {
		return
	}

	var req dtos.UpdateProjectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid JSON payload", nil, err)
		return
	}
	if err := c.validate.Struct(req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeValidation, "Validation error", nil, err)
		return
	}

	resp, err := c.projectService.UpdateProject(r.Context(), projectID, &req)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, resp)
}

// ----------------------------------------------------------------
// GET /api/v1/projects/{id}
// ----------------------------------------------------------------
func (c *ProjectsController) GetProjectHandler(w http.ResponseWriter, r *http.Request) {
	projectID, ok := parsePathID(w, r, "id")
	if !ok {
		return
	}

	resp, err := c.projectService.GetProject(r.Context(), projectID)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, resp)
}

// ----------------------------------------------------------------
// GET /api/v1/projects
// ----------------------------------------------------------------
func (c *ProjectsController) ListProjectsHandler(w http.ResponseWriter, r *http.Request) {
	resp, err := c.projectService.ListProjects(r.Context())
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, resp)
}
