package controllers

import (
	"errors"
	"net/http"

	"grestaurants/entity"
	"grestaurants/middlewares"
	"grestaurants/pkg/resp"
	"grestaurants/services"

	"github.com/gin-gonic/gin"
)

type RegisterRequest struct {
	Username  string `json:"username" binding:"required,min=3"`
	Password  string `json:"password" binding:"required,min=6"`
	FirstName string `json:"firstName" binding:"required"`
	LastName  string `json:"lastName" binding:"required"`
}
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type AuthController struct {
	Service *services.AuthService
}

func NewAuthController(s *services.AuthService) *AuthController {
	return &AuthController{Service: s}
}

func userJSON(u *entity.User) gin.H {
	return gin.H{
		"id": u.ID, "username": u.Username, "firstName": u.FirstName,
		"lastName": u.LastName, "admin": u.Admin,
	}
}

// POST /auth/register
func (a *AuthController) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	user, err := a.Service.Register(c.Request.Context(), req.Username, req.Password, req.FirstName, req.LastName)
	if err != nil {
		resp.Fail(c, err)
		return
	}
	resp.Created(c, userJSON(user))
}

// POST /auth/login
func (a *AuthController) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	token, user, err := a.Service.Login(c.Request.Context(), req.Username, req.Password)
	if errors.Is(err, services.ErrInvalidCredentials) {
		resp.Unauthorized(c, err.Error())
		return
	}
	if err != nil {
		resp.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "token": token, "user": userJSON(user)})
}

// GET /auth/me
func (a *AuthController) Me(c *gin.Context) {
	actor, ok := middlewares.CurrentActor(c)
	if !ok {
		resp.Unauthorized(c, "unauthorized")
		return
	}
	user, err := a.Service.GetProfile(c.Request.Context(), actor.ID)
	if err != nil {
		resp.Fail(c, err)
		return
	}
	resp.OK(c, userJSON(user))
}
