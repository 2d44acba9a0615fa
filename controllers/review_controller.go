// controllers/review_controller.go
package controllers

import (
	"fmt"

	"grestaurants/pkg/resp"
	"grestaurants/services"

	"github.com/gin-gonic/gin"
)

type ReviewController struct {
	Service *services.ReviewService
}

func NewReviewController(s *services.ReviewService) *ReviewController {
	return &ReviewController{Service: s}
}

// ===== DTO =====

type ReviewReq struct {
	Rating int    `json:"rating" form:"rating"`
	Review string `json:"review" form:"review"`
}

// ===== Handlers =====

// GET /restaurants/:id/reviews
func (rc *ReviewController) ListForRestaurant(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	items, sum, err := rc.Service.ListForRestaurant(c.Request.Context(), id)
	if err != nil {
		resp.Fail(c, err)
		return
	}
	resp.OK(c, gin.H{"items": items, "aggregate": sum})
}

// POST /restaurants/:id/reviews
func (rc *ReviewController) Create(c *gin.Context) {
	actor, ok := mustActor(c)
	if !ok {
		return
	}
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req ReviewReq
	if err := c.ShouldBind(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	rev, err := rc.Service.CreateReview(c.Request.Context(), id, req.Rating, req.Review, actor.ID)
	if err != nil {
		resp.Fail(c, err)
		return
	}
	resp.Created(c, gin.H{"review": rev, "redirect": fmt.Sprintf("/restaurants/%d", id)})
}

// GET /restaurants/:id/reviews/:revId/edit
func (rc *ReviewController) EditForm(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	revID, ok := paramID(c, "revId")
	if !ok {
		return
	}
	view, err := rc.Service.GetReviewForEdit(c.Request.Context(), revID)
	if err != nil {
		resp.Fail(c, err)
		return
	}
	if view.RestaurantID != id {
		resp.Fail(c, services.NotFound("review %d does not belong to restaurant %d", revID, id))
		return
	}
	resp.OK(c, view)
}

// PUT /restaurants/:id/reviews/:revId (author/admin)
func (rc *ReviewController) Update(c *gin.Context) {
	actor, ok := mustActor(c)
	if !ok {
		return
	}
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	revID, ok := paramID(c, "revId")
	if !ok {
		return
	}
	var req ReviewReq
	if err := c.ShouldBind(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	rest, err := rc.Service.SubmitReviewEdit(c.Request.Context(), actor, id, revID, req.Rating, req.Review)
	if err != nil {
		resp.Fail(c, err)
		return
	}
	resp.Redirect(c, fmt.Sprintf("/restaurants/%d", rest.ID), rest)
}

// DELETE /restaurants/:id/reviews/:revId (author/admin)
func (rc *ReviewController) Delete(c *gin.Context) {
	actor, ok := mustActor(c)
	if !ok {
		return
	}
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	revID, ok := paramID(c, "revId")
	if !ok {
		return
	}
	if err := rc.Service.DeleteReview(c.Request.Context(), actor, id, revID); err != nil {
		resp.Fail(c, err)
		return
	}
	resp.Redirect(c, fmt.Sprintf("/restaurants/%d", id), nil)
}
