package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/yigit/coursereg/internal/app/models/dto"
	"github.com/yigit/coursereg/internal/app/services"
	"github.com/yigit/coursereg/internal/middleware"
	"github.com/yigit/coursereg/internal/pkg/session"
)

// CourseController serves the course catalog
type CourseController struct {
	courseService services.CourseService
	logger        zerolog.Logger
}

// NewCourseController creates a new CourseController
func NewCourseController(courseService services.CourseService, logger zerolog.Logger) *CourseController {
	return &CourseController{
		courseService: courseService,
		logger:        logger,
	}
}

// Index sends the root path to the catalog
func (c *CourseController) Index(ctx *gin.Context) {
	middleware.Redirect(ctx, "/courses")
}

// List renders every course, marking the ones the viewer is registered for
func (c *CourseController) List(ctx *gin.Context) {
	rc := middleware.GetRequestContext(ctx)

	catalog, err := c.courseService.ListCatalog(ctx.Request.Context(), rc.UserID())
	if err != nil {
		c.logger.Error().Err(err).Str("requestID", rc.RequestID).Msg("Failed to list courses")
		rc.AddFlash(session.FlashError, "Could not load courses")
		render(ctx, http.StatusInternalServerError, "courses.html", "Courses", gin.H{"Catalog": &dto.CatalogView{}})
		return
	}

	renderOK(ctx, "courses.html", "Courses", gin.H{"Catalog": catalog})
}
