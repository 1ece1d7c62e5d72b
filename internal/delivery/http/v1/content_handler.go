package v1

import (
	"errors"
	"net/http"
	"strconv"

	"go-portfolio-site/internal/delivery/http/response"
	"go-portfolio-site/internal/domain"
	"go-portfolio-site/pkg/apperror"

	"github.com/gin-gonic/gin"
)

type ContentHandler struct {
	contentUC domain.ContentUsecase
}

// NewContentHandler registers the read-only content API
func NewContentHandler(api gin.IRoutes, contentUC domain.ContentUsecase) {
	h := &ContentHandler{contentUC: contentUC}
	api.GET("/profile", h.GetProfile)
	api.GET("/projects", h.ListProjects)
	api.GET("/projects/:index", h.GetProject)
	api.GET("/skills", h.ListSkills)
}

// GetProfile godoc
// @Summary      Get Profile
// @Tags         content
// @Produce      json
// @Success      200  {object}  response.Response{data=domain.SiteProfile}
// @Router       /profile [get]
func (h *ContentHandler) GetProfile(c *gin.Context) {
	response.Success(c, http.StatusOK, "Profile retrieved", h.contentUC.GetProfile(c.Request.Context()))
}

// ListProjects godoc
// @Summary      List Projects
// @Description  Projects in gallery order
// @Tags         content
// @Produce      json
// @Success      200  {object}  response.Response{data=[]domain.Project}
// @Router       /projects [get]
func (h *ContentHandler) ListProjects(c *gin.Context) {
	projects := h.contentUC.ListProjects(c.Request.Context())
	if projects == nil {
		projects = []domain.Project{}
	}
	response.Success(c, http.StatusOK, "Projects retrieved", projects)
}

// GetProject godoc
// @Summary      Get Project
// @Tags         content
// @Produce      json
// @Param        index  path      int  true  "Zero-based gallery position"
// @Success      200    {object}  response.Response{data=domain.Project}
// @Failure      400    {object}  response.Response
// @Failure      404    {object}  response.Response
// @Router       /projects/{index} [get]
func (h *ContentHandler) GetProject(c *gin.Context) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		c.Error(apperror.BadRequest("Invalid project index"))
		return
	}

	project, err := h.contentUC.GetProject(c.Request.Context(), index)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			c.Error(apperror.NotFound("Project not found"))
			return
		}
		c.Error(apperror.Internal(err))
		return
	}
	response.Success(c, http.StatusOK, "Project retrieved", project)
}

// ListSkills godoc
// @Summary      List Skills
// @Tags         content
// @Produce      json
// @Param        category  query     string  false  "languages, frameworks or tools"
// @Success      200       {object}  response.Response{data=[]domain.Skill}
// @Failure      400       {object}  response.Response
// @Router       /skills [get]
func (h *ContentHandler) ListSkills(c *gin.Context) {
	category := domain.SkillCategory(c.Query("category"))
	if category != "" && !category.Valid() {
		c.Error(apperror.BadRequest("Unknown skill category"))
		return
	}

	skills, err := h.contentUC.ListSkills(c.Request.Context(), category)
	if err != nil {
		c.Error(apperror.Internal(err))
		return
	}
	if skills == nil {
		skills = []domain.Skill{}
	}
	response.Success(c, http.StatusOK, "Skills retrieved", skills)
}
