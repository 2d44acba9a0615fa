// controllers/restaurant_controller.go
package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"grestaurants/pkg/resp"
	"grestaurants/services"

	"github.com/gin-gonic/gin"
)

const firstPage = "/restaurants/page/0"

type RestaurantController struct {
	Service *services.RestaurantService
}

func NewRestaurantController(s *services.RestaurantService) *RestaurantController {
	return &RestaurantController{Service: s}
}

type SearchRequest struct {
	Search string `json:"search" form:"search"`
}

// GET /restaurants
func (ctl *RestaurantController) Index(c *gin.Context) {
	c.Redirect(http.StatusFound, firstPage)
}

// GET /restaurants/page/:page
func (ctl *RestaurantController) Page(c *gin.Context) {
	idx, err := strconv.Atoi(c.Param("page"))
	if err != nil {
		resp.Fail(c, services.Validation("invalid page index %q", c.Param("page")))
		return
	}
	page, err := ctl.Service.ListPage(c.Request.Context(), idx)
	if err != nil {
		resp.Fail(c, err)
		return
	}
	resp.OK(c, page)
}

// GET /restaurants/search?q= and POST /restaurants/search
func (ctl *RestaurantController) Search(c *gin.Context) {
	term := c.Query("q")
	if c.Request.Method == http.MethodPost {
		var req SearchRequest
		if err := c.ShouldBind(&req); err != nil {
			resp.BadRequest(c, err.Error())
			return
		}
		term = req.Search
	}

	rests, err := ctl.Service.Search(c.Request.Context(), term)
	if errors.Is(err, services.ErrNoQuery) {
		resp.Redirect(c, firstPage, nil)
		return
	}
	if err != nil {
		resp.Fail(c, err)
		return
	}
	resp.OK(c, gin.H{"items": rests})
}

// GET /restaurants/:id
func (ctl *RestaurantController) Detail(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	d, err := ctl.Service.Detail(c.Request.Context(), id)
	if err != nil {
		resp.Fail(c, err)
		return
	}
	resp.OK(c, d)
}

// GET /restaurants/:id/edit (owner/admin)
func (ctl *RestaurantController) EditView(c *gin.Context) {
	actor, ok := mustActor(c)
	if !ok {
		return
	}
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	d, err := ctl.Service.EditView(c.Request.Context(), actor, id)
	if err != nil {
		resp.Fail(c, err)
		return
	}
	resp.OK(c, d)
}

// POST /restaurants
func (ctl *RestaurantController) Create(c *gin.Context) {
	actor, ok := mustActor(c)
	if !ok {
		return
	}
	var req services.RestaurantInput
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	rest, err := ctl.Service.Create(c.Request.Context(), actor, req)
	if err != nil {
		resp.Fail(c, err)
		return
	}
	c.Header("Location", fmt.Sprintf("/restaurants/%d", rest.ID))
	resp.Created(c, rest)
}

// PUT /restaurants/:id (owner/admin)
func (ctl *RestaurantController) Update(c *gin.Context) {
	actor, ok := mustActor(c)
	if !ok {
		return
	}
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req services.RestaurantPatch
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	rest, err := ctl.Service.Update(c.Request.Context(), actor, id, req)
	if err != nil {
		resp.Fail(c, err)
		return
	}
	resp.OK(c, gin.H{"message": rest.Name + " has been updated!", "restaurant": rest})
}

// DELETE /restaurants/:id (owner/admin)
func (ctl *RestaurantController) Delete(c *gin.Context) {
	actor, ok := mustActor(c)
	if !ok {
		return
	}
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	sum, err := ctl.Service.Delete(c.Request.Context(), actor, id)
	if err != nil {
		resp.Fail(c, err)
		return
	}
	resp.OK(c, gin.H{"message": sum.Name + " is gone!", "deleted": sum})
}
