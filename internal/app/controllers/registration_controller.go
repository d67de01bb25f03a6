package controllers

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/yigit/coursereg/internal/app/services"
	"github.com/yigit/coursereg/internal/middleware"
	"github.com/yigit/coursereg/internal/pkg/apperrors"
	"github.com/yigit/coursereg/internal/pkg/session"
)

// RegistrationController handles course registration
type RegistrationController struct {
	courseService       services.CourseService
	registrationService services.RegistrationService
	logger              zerolog.Logger
}

// NewRegistrationController creates a new RegistrationController
func NewRegistrationController(
	courseService services.CourseService,
	registrationService services.RegistrationService,
	logger zerolog.Logger,
) *RegistrationController {
	return &RegistrationController{
		courseService:       courseService,
		registrationService: registrationService,
		logger:              logger,
	}
}

var registrationErrors = middleware.ErrorRoutes{
	NotFound: &middleware.FlashError{Kind: session.FlashError, Message: "Course not found", Redirect: "/courses"},
	Conflict: &middleware.FlashError{Kind: session.FlashInfo, Message: "Already registered for this course", Redirect: "/courses"},
	Internal: middleware.FlashError{Kind: session.FlashError, Message: "Registration error", Redirect: "/courses"},
}

// Show renders the confirmation page for one course
func (c *RegistrationController) Show(ctx *gin.Context) {
	courseID, err := parseIDParam(ctx, "courseId")
	if err != nil {
		middleware.HandleError(ctx, c.logger, apperrors.ErrCourseNotFound, registrationErrors)
		return
	}

	course, err := c.courseService.GetCourse(ctx.Request.Context(), courseID)
	if err != nil {
		middleware.HandleError(ctx, c.logger, err, registrationErrors)
		return
	}

	renderOK(ctx, "register.html", "Register", gin.H{"Course": course})
}

// Register records the logged-in user in the course
func (c *RegistrationController) Register(ctx *gin.Context) {
	courseID, err := parseIDParam(ctx, "courseId")
	if err != nil {
		middleware.HandleError(ctx, c.logger, apperrors.ErrCourseNotFound, registrationErrors)
		return
	}

	rc := middleware.GetRequestContext(ctx)
	if _, err := c.registrationService.Register(ctx.Request.Context(), rc.UserID(), courseID); err != nil {
		middleware.HandleError(ctx, c.logger, err, registrationErrors)
		return
	}

	rc.AddFlash(session.FlashSuccess, "Registered successfully")
	middleware.Redirect(ctx, "/courses")
}
