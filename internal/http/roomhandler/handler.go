package roomhandler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/naiplawan/kaichid-sub001/internal/services/session"
)

// Handler exposes read-only snapshots of live rooms, which makes
// membership auditable without attaching a websocket client.
type Handler struct {
	svc session.Service
}

func New(svc session.Service) *Handler { return &Handler{svc: svc} }

func (h *Handler) Register(r gin.IRoutes) {
	r.GET("/rooms", h.list)
	r.GET("/rooms/:code", h.info)
}

func (h *Handler) list(c *gin.Context) {
	c.JSON(http.StatusOK, h.svc.Rooms())
}

func (h *Handler) info(c *gin.Context) {
	snap, ok := h.svc.Room(c.Param("code"))
	if !ok {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "room not found"})
		return
	}
	c.JSON(http.StatusOK, snap)
}
