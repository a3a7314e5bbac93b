package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rehabflow/care-scheduler/internal/accounts"
	"github.com/rehabflow/care-scheduler/internal/httperr"
	"github.com/rehabflow/care-scheduler/internal/middleware"
)

type MeHandler struct {
	accounts *accounts.Directory
}

func NewMeHandler(dir *accounts.Directory) *MeHandler {
	return &MeHandler{accounts: dir}
}

// GET /api/me
func (h *MeHandler) Me(c *gin.Context) {
	user, ok := h.accounts.ByID(c.GetString(middleware.ContextUserID))
	if !ok {
		httperr.Unauthorized(c, "user_not_found", "Unknown account.")
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user})
}
