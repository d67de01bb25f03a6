package middleware

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/yigit/coursereg/internal/pkg/apperrors"
	"github.com/yigit/coursereg/internal/pkg/session"
)

// FlashError describes how an error is reported to the browser.
type FlashError struct {
	Kind     session.FlashKind
	Message  string
	Redirect string
}

// ErrorRoutes maps error classes to a notice and a redirect target for one
// handler. Internal is used for anything unrecognized.
type ErrorRoutes struct {
	Validation         *FlashError
	NotFound           *FlashError
	Conflict           *FlashError
	InvalidCredentials *FlashError
	Internal           FlashError
}

// HandleError converts err into a one-shot flash plus redirect. Only the
// internal case is logged.
func HandleError(c *gin.Context, logger zerolog.Logger, err error, routes ErrorRoutes) {
	var target *FlashError
	switch {
	case errors.Is(err, apperrors.ErrValidationFailed):
		target = routes.Validation
	case errors.Is(err, apperrors.ErrResourceNotFound):
		target = routes.NotFound
	case errors.Is(err, apperrors.ErrResourceAlreadyExists):
		target = routes.Conflict
	case errors.Is(err, apperrors.ErrInvalidCredentials):
		target = routes.InvalidCredentials
	case errors.Is(err, apperrors.ErrUnauthenticated):
		target = &FlashError{Kind: session.FlashError, Message: "Please login first.", Redirect: LoginPath}
	}

	if target == nil {
		logger.Error().Err(err).
			Str("requestID", GetRequestID(c)).
			Str("path", c.Request.URL.Path).
			Msg("Request failed")
		target = &routes.Internal
	}

	rc := GetRequestContext(c)
	if errors.Is(err, apperrors.ErrUnauthenticated) {
		// Drop an identity the database no longer knows
		rc.Destroy()
	}
	rc.AddFlash(target.Kind, target.Message)
	Redirect(c, target.Redirect)
}
