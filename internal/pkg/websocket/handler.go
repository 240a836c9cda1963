package websocket

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
)

// MembershipFn reports whether the user may join the trip's chat room
type MembershipFn func(ctx context.Context, userID, tripID int64) (bool, error)

// Handler upgrades authenticated HTTP requests to chat room connections
type Handler struct {
	hub      *Hub
	isMember MembershipFn
	upgrader websocket.Upgrader
	logger   zerolog.Logger
}

// NewHandler creates a new WebSocket handler. allowedOrigins is a
// comma-separated Origin allowlist; empty allows any origin.
func NewHandler(hub *Hub, isMember MembershipFn, allowedOrigins string, logger zerolog.Logger) *Handler {
	return &Handler{
		hub:      hub,
		isMember: isMember,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     originChecker(allowedOrigins),
		},
		logger: logger,
	}
}

// originChecker builds the upgrader's origin policy from a comma-separated
// allowlist. Entries match either the full origin (scheme://host) or just
// the host, case-insensitively. Requests without an Origin header are
// non-browser clients and pass; an empty allowlist passes everything.
func originChecker(allowedOrigins string) func(r *http.Request) bool {
	var allowed []string
	for _, entry := range strings.Split(allowedOrigins, ",") {
		if entry = strings.ToLower(strings.TrimSpace(entry)); entry != "" {
			allowed = append(allowed, entry)
		}
	}
	if len(allowed) == 0 {
		return func(*http.Request) bool { return true }
	}

	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true
		}

		u, err := url.Parse(origin)
		if err != nil {
			return false
		}
		originLower := strings.ToLower(origin)
		host := strings.ToLower(u.Host)
		for _, entry := range allowed {
			if originLower == entry || host == entry {
				return true
			}
		}
		return false
	}
}

// HandleConnection godoc
// @Summary Establish a WebSocket connection for real-time trip chat
// @Description Upgrades the HTTP connection to WebSocket for the trip's chat room
// @Tags chat
// @Security BearerAuth
// @Param id path int true "Trip ID"
// @Success 101 {string} string "Switching Protocols"
// @Failure 400 {object} gin.H "Invalid trip ID"
// @Failure 401 {object} gin.H "Unauthorized"
// @Failure 403 {object} gin.H "Not a trip member"
// @Router /trips/{id}/chat/ws [get]
func (h *Handler) HandleConnection(c *gin.Context) {
	tripID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid trip ID"})
		return
	}

	userIDValue, exists := c.Get("userID")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User ID not found in context"})
		return
	}
	userID, ok := userIDValue.(int64)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Invalid user ID format"})
		return
	}

	member, err := h.isMember(c, userID, tripID)
	if err != nil {
		h.logger.Error().Err(err).Int64("tripID", tripID).Int64("userID", userID).
			Msg("Failed to check chat membership")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check trip membership"})
		return
	}
	if !member {
		c.JSON(http.StatusForbidden, gin.H{"error": "Only trip members can join the chat"})
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Error().Err(err).Int64("tripID", tripID).Int64("userID", userID).
			Msg("Failed to upgrade connection to WebSocket")
		return
	}

	client := &Client{
		hub:    h.hub,
		conn:   conn,
		send:   make(chan []byte, 256),
		userID: userID,
		tripID: tripID,
		logger: h.logger,
	}
	client.hub.register <- client

	go client.writePump()
	go client.readPump()

	h.logger.Info().Int64("tripID", tripID).Int64("userID", userID).
		Str("remoteAddr", conn.RemoteAddr().String()).
		Msg("WebSocket connection established")
}
