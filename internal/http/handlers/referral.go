package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (h *Handler) GetReferrals(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	refs, err := h.Services.Account.Referrals(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, refs)
}

// LookupReferralCode validates a code for the signup form, exposing only the
// owning account's username.
func (h *Handler) LookupReferralCode(c *gin.Context) {
	code := c.Param("code")
	user, err := h.Services.Account.LookupReferralCode(c.Request.Context(), code)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"valid": true, "username": user.Username})
}
