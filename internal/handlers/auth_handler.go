package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/rehabflow/care-scheduler/internal/accounts"
	"github.com/rehabflow/care-scheduler/internal/httperr"
	"github.com/rehabflow/care-scheduler/internal/middleware"
)

const tokenTTL = 24 * time.Hour

type AuthHandler struct {
	accounts  *accounts.Directory
	jwtSecret string
}

func NewAuthHandler(dir *accounts.Directory, jwtSecret string) *AuthHandler {
	return &AuthHandler{accounts: dir, jwtSecret: jwtSecret}
}

// --------- Requests ---------

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// --------- Handlers ---------

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	user, err := h.accounts.Authenticate(req.Email, req.Password)
	if err != nil {
		httperr.Unauthorized(c, "invalid_credentials", "Invalid email or password.")
		return
	}

	token, err := middleware.IssueToken(h.jwtSecret, user, tokenTTL)
	if err != nil {
		httperr.Internal(c, "failed_to_generate_token", "Could not issue token.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user":  user,
		"token": token,
	})
}
