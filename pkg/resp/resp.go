package resp

import (
	"errors"
	"net/http"

	"grestaurants/pkg/metrics"
	"grestaurants/services"

	"github.com/gin-gonic/gin"
)

func OK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, gin.H{"ok": true, "data": data})
}
func Created(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, gin.H{"ok": true, "data": data})
}
func BadRequest(c *gin.Context, msg string) {
	fail(c, http.StatusBadRequest, services.KindValidation, msg)
}
func Unauthorized(c *gin.Context, msg string) {
	fail(c, http.StatusUnauthorized, "unauthenticated", msg)
}

// Redirect answers with a redirect target the client should follow.
func Redirect(c *gin.Context, target string, data any) {
	c.Header("Location", target)
	c.JSON(http.StatusSeeOther, gin.H{"ok": true, "redirect": target, "data": data})
}

// Fail maps a service error to its status code.
func Fail(c *gin.Context, err error) {
	var se *services.Error
	if !errors.As(err, &se) {
		fail(c, http.StatusInternalServerError, "internal", "something bad happened")
		c.Error(err)
		return
	}
	if se.Kind == services.KindPersistence {
		c.Error(err)
	}
	fail(c, StatusFor(se.Kind), se.Kind, se.Message)
}

func StatusFor(kind services.Kind) int {
	switch kind {
	case services.KindNotFound:
		return http.StatusNotFound
	case services.KindValidation:
		return http.StatusBadRequest
	case services.KindUnauthorized:
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

func fail(c *gin.Context, status int, kind services.Kind, msg string) {
	metrics.FailuresTotal.WithLabelValues(string(kind)).Inc()
	c.JSON(status, gin.H{"ok": false, "kind": kind, "error": msg})
}
