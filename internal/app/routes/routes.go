package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/coursereg/internal/app/controllers"
	"github.com/yigit/coursereg/internal/middleware"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	authController *controllers.AuthController,
	courseController *controllers.CourseController,
	registrationController *controllers.RegistrationController,
) {
	router.GET("/health", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	router.GET("/", courseController.Index)

	// --- Public auth routes ---
	router.GET("/signup", authController.ShowSignup)
	router.POST("/signup", authController.Signup)
	router.GET("/login", authController.ShowLogin)
	router.POST("/login", authController.Login)
	router.GET("/logout", authController.Logout)

	// --- Catalog ---
	router.GET("/courses", courseController.List)

	// --- Authenticated routes ---
	authenticated := router.Group("/register")
	authenticated.Use(middleware.RequireLogin())
	{
		authenticated.GET("/:courseId", registrationController.Show)
		authenticated.POST("/:courseId", registrationController.Register)
	}
}
