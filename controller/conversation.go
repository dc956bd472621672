package controller

import (
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"medchat/model"
	"medchat/platform"
	"medchat/service"

	"github.com/gin-gonic/gin"
)

var logger = platform.Logger

// ConversationController serves the conversation, message, search and
// summary endpoints.
type ConversationController struct {
	conversations *service.ConversationService
	audio         *service.AudioStore
	providerName  string
}

func NewConversationController(conversations *service.ConversationService, audio *service.AudioStore, providerName string) *ConversationController {
	return &ConversationController{conversations: conversations, audio: audio, providerName: providerName}
}

func (ctrl *ConversationController) RegisterRoutes(api *gin.RouterGroup) {
	api.GET("/healthz", ctrl.Health)
	api.POST("/conversations", ctrl.Create)
	api.GET("/conversations", ctrl.List)
	api.GET("/conversations/:id", ctrl.Get)
	api.POST("/conversations/:id/messages", ctrl.PostMessage)
	api.POST("/conversations/:id/audio", ctrl.PostAudio)
	api.GET("/conversations/:id/summary", ctrl.Summary)
	api.GET("/search", ctrl.Search)
}

func (ctrl *ConversationController) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "provider": ctrl.providerName})
}

func (ctrl *ConversationController) Create(c *gin.Context) {
	var input struct {
		Title string `json:"title" binding:"max=255"`
	}
	if err := c.ShouldBindJSON(&input); err != nil && !errors.Is(err, io.EOF) {
		logger.Warnf("[%s] Invalid input, %s", c.GetString("requestId"), err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	conversation, err := ctrl.conversations.StartConversation(c.Request.Context(), input.Title)
	if err != nil {
		ctrl.fail(c, err, "create conversation")
		return
	}

	logger.Infof("[%s] Conversation %d created", c.GetString("requestId"), conversation.ID)
	c.JSON(http.StatusCreated, conversation)
}

func (ctrl *ConversationController) List(c *gin.Context) {
	conversations, err := ctrl.conversations.Conversations(c.Request.Context())
	if err != nil {
		ctrl.fail(c, err, "list conversations")
		return
	}
	c.JSON(http.StatusOK, conversations)
}

func (ctrl *ConversationController) Get(c *gin.Context) {
	id, ok := conversationID(c)
	if !ok {
		return
	}

	conversation, messages, err := ctrl.conversations.Conversation(c.Request.Context(), id)
	if err != nil {
		ctrl.fail(c, err, "get conversation")
		return
	}
	c.JSON(http.StatusOK, gin.H{"conversation": conversation, "messages": messages})
}

func (ctrl *ConversationController) PostMessage(c *gin.Context) {
	id, ok := conversationID(c)
	if !ok {
		return
	}

	var input struct {
		Role           string `json:"role" binding:"required,oneof=doctor patient"`
		Text           string `json:"text" binding:"required"`
		SourceLanguage string `json:"sourceLanguage" binding:"required,max=64"`
		TargetLanguage string `json:"targetLanguage" binding:"required,max=64"`
	}
	if err := c.ShouldBindJSON(&input); err != nil || strings.TrimSpace(input.Text) == "" {
		logger.Warnf("[%s] Invalid message input, %v", c.GetString("requestId"), err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "role, text, sourceLanguage and targetLanguage are required; language labels are at most 64 characters"})
		return
	}

	message, err := ctrl.conversations.PostMessage(c.Request.Context(), id, service.NewMessage{
		Role:           model.Role(input.Role),
		Text:           input.Text,
		SourceLanguage: input.SourceLanguage,
		TargetLanguage: input.TargetLanguage,
	})
	if err != nil {
		ctrl.fail(c, err, "post message")
		return
	}

	logger.Infof("[%s] Message %d added to conversation %d", c.GetString("requestId"), message.ID, id)
	c.JSON(http.StatusCreated, message)
}

func (ctrl *ConversationController) PostAudio(c *gin.Context) {
	id, ok := conversationID(c)
	if !ok {
		return
	}

	var input struct {
		Role           string `form:"role" binding:"required,oneof=doctor patient"`
		Text           string `form:"text"`
		SourceLanguage string `form:"sourceLanguage" binding:"required,max=64"`
		TargetLanguage string `form:"targetLanguage" binding:"required,max=64"`
	}
	if err := c.ShouldBind(&input); err != nil {
		logger.Warnf("[%s] Invalid audio input, %s", c.GetString("requestId"), err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "role, sourceLanguage and targetLanguage are required; language labels are at most 64 characters"})
		return
	}
	file, err := c.FormFile("audio")
	if err != nil {
		logger.Warnf("[%s] Missing audio file, %s", c.GetString("requestId"), err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "audio file is required"})
		return
	}

	ctx := c.Request.Context()
	if err := ctrl.conversations.EnsureConversation(ctx, id); err != nil {
		ctrl.fail(c, err, "post audio")
		return
	}

	dst, audioPath := ctrl.audio.Allocate(file.Filename)
	if err := c.SaveUploadedFile(file, dst); err != nil {
		ctrl.fail(c, err, "save audio")
		return
	}

	message, err := ctrl.conversations.AddMessage(ctx, id, service.NewMessage{
		Role:           model.Role(input.Role),
		Text:           input.Text,
		SourceLanguage: input.SourceLanguage,
		TargetLanguage: input.TargetLanguage,
		AudioPath:      &audioPath,
	})
	if err != nil {
		ctrl.fail(c, err, "post audio")
		return
	}

	logger.Infof("[%s] Audio message %d stored at %s", c.GetString("requestId"), message.ID, audioPath)
	c.JSON(http.StatusCreated, message)
}

func (ctrl *ConversationController) Summary(c *gin.Context) {
	id, ok := conversationID(c)
	if !ok {
		return
	}

	summary, err := ctrl.conversations.Summary(c.Request.Context(), id)
	if err != nil {
		ctrl.fail(c, err, "summarize conversation")
		return
	}
	c.JSON(http.StatusOK, summary)
}

func (ctrl *ConversationController) Search(c *gin.Context) {
	hits, err := ctrl.conversations.Search(c.Request.Context(), c.Query("q"))
	if err != nil {
		ctrl.fail(c, err, "search messages")
		return
	}
	c.JSON(http.StatusOK, hits)
}

func conversationID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid conversation id"})
		return 0, false
	}
	return uint(id), true
}

func (ctrl *ConversationController) fail(c *gin.Context, err error, action string) {
	if errors.Is(err, model.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Conversation not found"})
		return
	}
	logger.Errorf("[%s] Failed to %s: %s", c.GetString("requestId"), action, err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to " + action})
}
