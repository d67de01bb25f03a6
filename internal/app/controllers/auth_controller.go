package controllers

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/yigit/coursereg/internal/app/models/dto"
	"github.com/yigit/coursereg/internal/app/services"
	"github.com/yigit/coursereg/internal/middleware"
	"github.com/yigit/coursereg/internal/pkg/apperrors"
	"github.com/yigit/coursereg/internal/pkg/session"
	"github.com/yigit/coursereg/internal/pkg/validation"
)

// AuthController handles signup, login and logout
type AuthController struct {
	authService services.AuthService
	logger      zerolog.Logger
}

// NewAuthController creates a new AuthController
func NewAuthController(authService services.AuthService, logger zerolog.Logger) *AuthController {
	return &AuthController{
		authService: authService,
		logger:      logger,
	}
}

var (
	signupErrors = middleware.ErrorRoutes{
		Validation: &middleware.FlashError{Kind: session.FlashError, Message: "All fields required", Redirect: "/signup"},
		Conflict:   &middleware.FlashError{Kind: session.FlashError, Message: "User already exists, please login", Redirect: "/login"},
		Internal:   middleware.FlashError{Kind: session.FlashError, Message: "Signup error", Redirect: "/signup"},
	}
	loginErrors = middleware.ErrorRoutes{
		Validation:         &middleware.FlashError{Kind: session.FlashError, Message: "Invalid credentials", Redirect: "/login"},
		InvalidCredentials: &middleware.FlashError{Kind: session.FlashError, Message: "Invalid credentials", Redirect: "/login"},
		Internal:           middleware.FlashError{Kind: session.FlashError, Message: "Login error", Redirect: "/login"},
	}
)

// ShowSignup renders the signup form
func (c *AuthController) ShowSignup(ctx *gin.Context) {
	renderOK(ctx, "signup.html", "Sign up", nil)
}

// Signup creates an account and sends the visitor to the login page
func (c *AuthController) Signup(ctx *gin.Context) {
	var req dto.SignupRequest
	if err := ctx.ShouldBind(&req); err != nil {
		c.logger.Debug().Strs("fields", validation.Describe(err)).Msg("Invalid signup form")
		middleware.HandleError(ctx, c.logger, apperrors.NewValidationError("form", "All fields required"), signupErrors)
		return
	}

	if _, err := c.authService.Signup(ctx.Request.Context(), &req); err != nil {
		middleware.HandleError(ctx, c.logger, err, signupErrors)
		return
	}

	middleware.GetRequestContext(ctx).AddFlash(session.FlashSuccess, "Signup successful. Please login.")
	middleware.Redirect(ctx, "/login")
}

// ShowLogin renders the login form
func (c *AuthController) ShowLogin(ctx *gin.Context) {
	renderOK(ctx, "login.html", "Login", nil)
}

// Login checks credentials and starts an authenticated session
func (c *AuthController) Login(ctx *gin.Context) {
	var req dto.LoginRequest
	if err := ctx.ShouldBind(&req); err != nil {
		middleware.HandleError(ctx, c.logger, apperrors.NewValidationError("form", "Invalid credentials"), loginErrors)
		return
	}

	user, err := c.authService.Login(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleError(ctx, c.logger, err, loginErrors)
		return
	}

	rc := middleware.GetRequestContext(ctx)
	rc.Login(&session.User{ID: user.ID, Name: user.Name, Email: user.Email})
	rc.AddFlash(session.FlashSuccess, "Logged in")
	middleware.Redirect(ctx, "/courses")
}

// Logout ends the session
func (c *AuthController) Logout(ctx *gin.Context) {
	middleware.GetRequestContext(ctx).Destroy()
	middleware.Redirect(ctx, middleware.LoginPath)
}
