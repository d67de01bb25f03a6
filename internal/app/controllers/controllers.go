// Package controllers handles HTTP request handling
package controllers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yigit/coursereg/internal/middleware"
)

// parseIDParam parses a positive ID parameter from the request path
func parseIDParam(ctx *gin.Context, paramName string) (int64, error) {
	idStr := ctx.Param(paramName)
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		return 0, err
	}
	if id <= 0 {
		return 0, fmt.Errorf("invalid %s: %d", paramName, id)
	}
	return id, nil
}

// render writes an HTML page. The viewer and any pending flashes are added
// to data, and the session is saved before headers go out.
func render(ctx *gin.Context, status int, name, title string, data gin.H) {
	rc := middleware.GetRequestContext(ctx)
	if data == nil {
		data = gin.H{}
	}
	data["Title"] = title
	data["User"] = rc.User()
	data["Flashes"] = rc.TakeFlashes()

	if err := rc.Save(ctx); err != nil {
		_ = ctx.Error(err)
	}
	ctx.HTML(status, name, data)
}

// renderOK renders a page with 200.
func renderOK(ctx *gin.Context, name, title string, data gin.H) {
	render(ctx, http.StatusOK, name, title, data)
}
