package handler

import (
	"net/http"

	"Lee_Channel/internal/middleware"
	"Lee_Channel/internal/model"
	"Lee_Channel/internal/pkg"
	"Lee_Channel/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ChannelHandler struct {
	svc *service.ChannelService
}

type ChannelCreateReq struct {
	Name        string `json:"name" binding:"required,max=64"`
	Topic       string `json:"topic" binding:"max=128"`
	Description string `json:"description"`
}

type MemberAddReq struct {
	UserID string `json:"user_id" binding:"required"`
	Role   int    `json:"role"`
}

type MemberRoleReq struct {
	Role int `json:"role"`
}

func NewChannelHandler(svc *service.ChannelService) *ChannelHandler {
	return &ChannelHandler{svc: svc}
}

func respondErr(c *gin.Context, err error) {
	c.JSON(pkg.HTTPStatus(err), gin.H{"msg": pkg.Message(err)})
}

func channelID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid channel id"})
		return uuid.Nil, false
	}
	return id, true
}

func (h *ChannelHandler) Create(c *gin.Context) {
	user := middleware.UserFromCtx(c)

	var req ChannelCreateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid params"})
		return
	}

	ch, err := h.svc.CreateChannel(c.Request.Context(), user.ID, req.Name, req.Topic, req.Description)
	if err != nil {
		respondErr(c, err)
		return
	}

	c.JSON(http.StatusCreated, ch)
}

func (h *ChannelHandler) Get(c *gin.Context) {
	user := middleware.UserFromCtx(c)
	id, ok := channelID(c)
	if !ok {
		return
	}

	ch, err := h.svc.GetChannel(c.Request.Context(), user.ID, id)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, ch)
}

func (h *ChannelHandler) Patch(c *gin.Context) {
	user := middleware.UserFromCtx(c)
	id, ok := channelID(c)
	if !ok {
		return
	}

	var patch model.ChannelPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid params"})
		return
	}

	ch, err := h.svc.PatchChannel(c.Request.Context(), user.ID, id, patch)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, ch)
}

func (h *ChannelHandler) Delete(c *gin.Context) {
	user := middleware.UserFromCtx(c)
	id, ok := channelID(c)
	if !ok {
		return
	}

	ch, err := h.svc.DeleteChannel(c.Request.Context(), user.ID, id)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, ch)
}

func (h *ChannelHandler) ListMembers(c *gin.Context) {
	user := middleware.UserFromCtx(c)
	id, ok := channelID(c)
	if !ok {
		return
	}

	list, err := h.svc.ListMembers(c.Request.Context(), user.ID, id)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"list": list})
}

func (h *ChannelHandler) GetMember(c *gin.Context) {
	user := middleware.UserFromCtx(c)
	id, ok := channelID(c)
	if !ok {
		return
	}
	targetID, err := uuid.Parse(c.Param("user_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid user id"})
		return
	}

	m, err := h.svc.GetMember(c.Request.Context(), user.ID, id, targetID)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, m)
}

func (h *ChannelHandler) AddMember(c *gin.Context) {
	user := middleware.UserFromCtx(c)
	id, ok := channelID(c)
	if !ok {
		return
	}

	var req MemberAddReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid params"})
		return
	}
	targetID, err := uuid.Parse(req.UserID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid user id"})
		return
	}
	role := model.UserRole(req.Role)
	if !role.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid role"})
		return
	}

	m, err := h.svc.AddMember(c.Request.Context(), user.ID, id, targetID, role)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, m)
}

func (h *ChannelHandler) RemoveMember(c *gin.Context) {
	user := middleware.UserFromCtx(c)
	id, ok := channelID(c)
	if !ok {
		return
	}
	targetID, err := uuid.Parse(c.Param("user_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid user id"})
		return
	}

	if err := h.svc.RemoveMember(c.Request.Context(), user.ID, id, targetID); err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "ok"})
}

func (h *ChannelHandler) SetMemberRole(c *gin.Context) {
	user := middleware.UserFromCtx(c)
	id, ok := channelID(c)
	if !ok {
		return
	}
	targetID, err := uuid.Parse(c.Param("user_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid user id"})
		return
	}

	var req MemberRoleReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid params"})
		return
	}
	role := model.UserRole(req.Role)
	if !role.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid role"})
		return
	}

	m, err := h.svc.SetMemberRole(c.Request.Context(), user.ID, id, targetID, role)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, m)
}
