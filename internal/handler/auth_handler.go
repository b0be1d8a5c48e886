package handler

import (
	"net/http"

	"github.com/Sheikh-Faraz/Link-Up-Remodel-Backend/internal/model"
	"github.com/Sheikh-Faraz/Link-Up-Remodel-Backend/internal/mw"
	"github.com/Sheikh-Faraz/Link-Up-Remodel-Backend/internal/service"

	"github.com/gin-gonic/gin"
)

type AuthHandler interface {
	Signup(c *gin.Context)
	Login(c *gin.Context)
	GoogleLogin(c *gin.Context)
	Logout(c *gin.Context)
	Check(c *gin.Context)
}

type authHandler struct {
	auth service.AuthService
}

func NewAuthHandler(auth service.AuthService) AuthHandler {
	return &authHandler{auth: auth}
}

type signupRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"fullName"`
}

func (h *authHandler) Signup(c *gin.Context) {
	var req signupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid body"})
		return
	}

	token, user, err := h.auth.Signup(c.Request.Context(), req.Email, req.Password, req.FullName)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token, "user": user})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *authHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid body"})
		return
	}

	token, user, err := h.auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token, "user": user})
}

type googleLoginRequest struct {
	Token string `json:"token"`
}

func (h *authHandler) GoogleLogin(c *gin.Context) {
	var req googleLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid body"})
		return
	}

	token, user, err := h.auth.GoogleLogin(c.Request.Context(), req.Token)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token, "user": user})
}

func (h *authHandler) Logout(c *gin.Context) {
	// stateless JWT: nothing to revoke server-side
	c.JSON(http.StatusOK, gin.H{"message": "Logged out successfully"})
}

func (h *authHandler) Check(c *gin.Context) {
	user, _ := c.Get(mw.CtxUser)
	c.JSON(http.StatusOK, user.(*model.User))
}
