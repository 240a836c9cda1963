package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/edunir/tripshare/internal/app/models/dto"
	"github.com/edunir/tripshare/internal/app/services"
	"github.com/edunir/tripshare/internal/middleware"
	"github.com/edunir/tripshare/internal/pkg/websocket"
)

// ChatController handles trip chat endpoints, both REST and the
// websocket upgrade for live delivery.
type ChatController struct {
	chatService services.ChatService
	wsHandler   *websocket.Handler
}

// NewChatController creates a new ChatController
func NewChatController(chatService services.ChatService, wsHandler *websocket.Handler) *ChatController {
	return &ChatController{chatService: chatService, wsHandler: wsHandler}
}

// SendMessage godoc
// @Summary Post a chat message
// @Description Posts a message to a trip chat; set parentId to reply in a thread. The message is broadcast to connected members.
// @Tags chat
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Trip ID"
// @Param request body dto.CreateChatMessageRequest true "Message"
// @Success 201 {object} dto.APIResponse{data=dto.ChatMessageResponse}
// @Failure 403 {object} dto.ErrorResponse "Not a trip member"
// @Router /trips/{id}/chat/messages [post]
func (c *ChatController) SendMessage(ctx *gin.Context) {
	tripID, ok := parseTripID(ctx)
	if !ok {
		return
	}

	var req dto.CreateChatMessageRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeInvalidRequest, "Invalid message"),
		})
		return
	}

	resp, err := c.chatService.SendMessage(ctx, middleware.GetUserID(ctx), tripID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(resp))
}

// GetMessages godoc
// @Summary Get a trip's chat history
// @Description Returns the trip's messages as threads, oldest first
// @Tags chat
// @Produce json
// @Security BearerAuth
// @Param id path int true "Trip ID"
// @Param before query string false "Only messages before this time (RFC 3339)"
// @Param after query string false "Only messages after this time (RFC 3339)"
// @Param limit query int false "Maximum number of rows" default(50)
// @Success 200 {object} dto.APIResponse{data=dto.ChatMessageListResponse}
// @Failure 403 {object} dto.ErrorResponse "Not a trip member"
// @Router /trips/{id}/chat/messages [get]
func (c *ChatController) GetMessages(ctx *gin.Context) {
	tripID, ok := parseTripID(ctx)
	if !ok {
		return
	}

	var filter dto.GetChatMessagesRequest
	if err := ctx.ShouldBindQuery(&filter); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeInvalidRequest, "Invalid filter parameters"),
		})
		return
	}

	resp, err := c.chatService.GetMessages(ctx, middleware.GetUserID(ctx), tripID, &filter)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp))
}

// DeleteMessage godoc
// @Summary Delete a chat message
// @Description Deletes a message and its replies; sender or trip creator only
// @Tags chat
// @Produce json
// @Security BearerAuth
// @Param id path int true "Message ID"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse}
// @Failure 403 {object} dto.ErrorResponse "Not the sender"
// @Router /chat/messages/{id} [delete]
func (c *ChatController) DeleteMessage(ctx *gin.Context) {
	messageID, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeInvalidRequest, "Invalid message ID"),
		})
		return
	}

	if err := c.chatService.DeleteMessage(ctx, middleware.GetUserID(ctx), messageID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.SuccessResponse{Message: "Message deleted"}))
}

// Connect godoc
// @Summary Join a trip's live chat
// @Description Upgrades the connection to a websocket that receives the trip's messages as they are posted
// @Tags chat
// @Security BearerAuth
// @Param id path int true "Trip ID"
// @Param token query string false "JWT, for clients that cannot set headers"
// @Success 101 {string} string "Switching Protocols"
// @Failure 403 {object} dto.ErrorResponse "Not a trip member"
// @Router /trips/{id}/chat/ws [get]
func (c *ChatController) Connect(ctx *gin.Context) {
	c.wsHandler.HandleConnection(ctx)
}
