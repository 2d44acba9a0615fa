package controllers

import (
	"strconv"

	"grestaurants/middlewares"
	"grestaurants/pkg/resp"
	"grestaurants/services"

	"github.com/gin-gonic/gin"
)

// paramID reads a positive numeric path parameter; on failure it writes the 400 itself.
func paramID(c *gin.Context, name string) (uint, bool) {
	n, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || n == 0 {
		resp.Fail(c, services.Validation("invalid %s %q", name, c.Param(name)))
		return 0, false
	}
	return uint(n), true
}

func mustActor(c *gin.Context) (services.Actor, bool) {
	a, ok := middlewares.CurrentActor(c)
	if !ok {
		resp.Unauthorized(c, "unauthorized")
	}
	return a, ok
}
