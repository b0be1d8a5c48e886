package handler

import (
	"encoding/json"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/Sheikh-Faraz/Link-Up-Remodel-Backend/internal/model"
	"github.com/Sheikh-Faraz/Link-Up-Remodel-Backend/internal/mw"
	"github.com/Sheikh-Faraz/Link-Up-Remodel-Backend/internal/service"
	"github.com/Sheikh-Faraz/Link-Up-Remodel-Backend/internal/upload"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type MessageHandler interface {
	Send(c *gin.Context)
	List(c *gin.Context)
	Edit(c *gin.Context)
	Delete(c *gin.Context)
	Restore(c *gin.Context)
	React(c *gin.Context)
	MarkSeen(c *gin.Context)
	ClearChat(c *gin.Context)
}

type messageHandler struct {
	messages  service.MessageService
	uploadDir string
	logger    *zap.Logger
}

func NewMessageHandler(messages service.MessageService, uploadDir string, logger *zap.Logger) MessageHandler {
	return &messageHandler{
		messages:  messages,
		uploadDir: uploadDir,
		logger:    logger,
	}
}

// Send accepts multipart form data: receiverId, optional text, an
// optional "file" part, optional fileName and a replyTo JSON snapshot.
// A plain JSON body works for text-only messages.
func (h *messageHandler) Send(c *gin.Context) {
	in := service.SendInput{}

	if strings.HasPrefix(c.ContentType(), "multipart/form-data") {
		in.ReceiverID = c.PostForm("receiverId")
		in.Text = c.PostForm("text")

		if raw := c.PostForm("replyTo"); raw != "" {
			var snap model.ReplySnapshot
			if err := json.Unmarshal([]byte(raw), &snap); err != nil {
				h.logger.Warn("invalid replyTo payload ignored", zap.Error(err))
			} else {
				in.ReplyTo = &snap
			}
		}

		header, err := c.FormFile("file")
		if err == nil {
			contentType := header.Header.Get("Content-Type")
			if !upload.IsAllowed(contentType) {
				c.JSON(http.StatusBadRequest, gin.H{"msg": "Unsupported file type"})
				return
			}

			stored := upload.TargetName(header)
			if err := c.SaveUploadedFile(header, filepath.Join(h.uploadDir, stored)); err != nil {
				h.logger.Error("store upload", zap.Error(err))
				c.JSON(http.StatusInternalServerError, gin.H{"msg": "Server error"})
				return
			}

			name := c.PostForm("fileName")
			if name == "" {
				name = header.Filename
			}
			in.File = &service.FileAttachment{
				URL:         upload.PublicURL(stored),
				ContentType: contentType,
				Name:        name,
			}
		}
	} else {
		var req struct {
			ReceiverID string               `json:"receiverId"`
			Text       string               `json:"text"`
			ReplyTo    *model.ReplySnapshot `json:"replyTo"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid body"})
			return
		}
		in.ReceiverID = req.ReceiverID
		in.Text = req.Text
		in.ReplyTo = req.ReplyTo
	}

	msg, err := h.messages.Send(c.Request.Context(), mw.UserID(c), in)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"sendedMessage": msg})
}

func (h *messageHandler) List(c *gin.Context) {
	msgs, err := h.messages.ListConversation(c.Request.Context(), mw.UserID(c), c.Param("receiverId"))
	if err != nil {
		respondErr(c, err)
		return
	}
	if msgs == nil {
		msgs = []model.Message{}
	}
	c.JSON(http.StatusOK, msgs)
}

type editRequest struct {
	Content string `json:"content"`
}

func (h *messageHandler) Edit(c *gin.Context) {
	var req editRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid body"})
		return
	}

	msg, err := h.messages.Edit(c.Request.Context(), mw.UserID(c), c.Param("id"), req.Content)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, msg)
}

type deleteRequest struct {
	DeleteForEveryone bool `json:"deleteForEveryone"`
}

func (h *messageHandler) Delete(c *gin.Context) {
	var req deleteRequest
	// body is optional; absence means delete-for-me
	_ = c.ShouldBindJSON(&req)

	if req.DeleteForEveryone {
		if _, err := h.messages.DeleteForEveryone(c.Request.Context(), mw.UserID(c), c.Param("id")); err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"msg": "Deleted for everyone"})
		return
	}

	if err := h.messages.DeleteForMe(c.Request.Context(), mw.UserID(c), c.Param("id")); err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "Deleted for you"})
}

func (h *messageHandler) Restore(c *gin.Context) {
	if err := h.messages.RestoreForMe(c.Request.Context(), mw.UserID(c), c.Param("id")); err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "Message restored"})
}

type reactRequest struct {
	Emoji string `json:"emoji"`
}

func (h *messageHandler) React(c *gin.Context) {
	var req reactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid body"})
		return
	}

	msg, err := h.messages.React(c.Request.Context(), mw.UserID(c), c.Param("id"), req.Emoji)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, msg)
}

type seenRequest struct {
	ReceiverID string `json:"receiverId"`
}

func (h *messageHandler) MarkSeen(c *gin.Context) {
	var req seenRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.ReceiverID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "Receiver ID is required"})
		return
	}

	if err := h.messages.MarkSeen(c.Request.Context(), mw.UserID(c), req.ReceiverID); err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "Marked as seen"})
}

func (h *messageHandler) ClearChat(c *gin.Context) {
	if err := h.messages.ClearChat(c.Request.Context(), mw.UserID(c), c.Param("id")); err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "Chat cleared for you"})
}
