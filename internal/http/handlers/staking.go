package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

type StakeRequest struct {
	PoolID int64 `json:"pool_id" binding:"required"`
	Amount int64 `json:"amount" binding:"required,gt=0"`
}

func (h *Handler) GetStakingPools(c *gin.Context) {
	pools, err := h.Services.Staking.Pools(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, pools)
}

func (h *Handler) GetStakes(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	stakes, err := h.Services.Staking.Stakes(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, stakes)
}

func (h *Handler) Stake(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req StakeRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad request"})
		return
	}

	stake, err := h.Services.Staking.Stake(c.Request.Context(), userID, req.PoolID, req.Amount)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, stake)
}

func (h *Handler) CollectStaking(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	stakeID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid stake id"})
		return
	}

	res, err := h.Services.Staking.Collect(c.Request.Context(), userID, stakeID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *Handler) Unstake(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	stakeID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid stake id"})
		return
	}

	res, err := h.Services.Staking.Unstake(c.Request.Context(), userID, stakeID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}
