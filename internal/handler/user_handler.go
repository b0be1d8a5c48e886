package handler

import (
	"net/http"
	"path/filepath"

	"github.com/Sheikh-Faraz/Link-Up-Remodel-Backend/internal/model"
	"github.com/Sheikh-Faraz/Link-Up-Remodel-Backend/internal/mw"
	"github.com/Sheikh-Faraz/Link-Up-Remodel-Backend/internal/service"
	"github.com/Sheikh-Faraz/Link-Up-Remodel-Backend/internal/upload"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type UserHandler interface {
	Sidebar(c *gin.Context)
	Me(c *gin.Context)
	AddContact(c *gin.Context)
	UpdateProfile(c *gin.Context)
	Block(c *gin.Context)
	Unblock(c *gin.Context)
	DeleteForMe(c *gin.Context)
	Restore(c *gin.Context)
	Hidden(c *gin.Context)
}

type userHandler struct {
	users     service.UserService
	contacts  service.ContactService
	uploadDir string
	logger    *zap.Logger
}

func NewUserHandler(users service.UserService, contacts service.ContactService, uploadDir string, logger *zap.Logger) UserHandler {
	return &userHandler{
		users:     users,
		contacts:  contacts,
		uploadDir: uploadDir,
		logger:    logger,
	}
}

// Sidebar lists the caller's contacts, newest first, minus anyone the
// caller has deleted for themselves.
func (h *userHandler) Sidebar(c *gin.Context) {
	contacts, err := h.contacts.ListContacts(c.Request.Context(), mw.UserID(c))
	if err != nil {
		respondErr(c, err)
		return
	}
	if contacts == nil {
		contacts = []model.PublicUser{}
	}
	c.JSON(http.StatusOK, contacts)
}

func (h *userHandler) Me(c *gin.Context) {
	user, _ := c.Get(mw.CtxUser)
	c.JSON(http.StatusOK, user.(*model.User))
}

type addContactRequest struct {
	TargetUserID string `json:"targetUserId"`
}

func (h *userHandler) AddContact(c *gin.Context) {
	var req addContactRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.TargetUserID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "targetUserId is required"})
		return
	}

	friend, err := h.contacts.AddContact(c.Request.Context(), mw.UserID(c), req.TargetUserID)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"msg": "Contact added successfully!", "friend": friend})
}

// UpdateProfile takes multipart form data with fullName, about and an
// optional profilePic file.
func (h *userHandler) UpdateProfile(c *gin.Context) {
	fullName := c.PostForm("fullName")
	about := c.PostForm("about")

	profilePic := ""
	if header, err := c.FormFile("profilePic"); err == nil {
		contentType := header.Header.Get("Content-Type")
		if !upload.IsAllowed(contentType) {
			c.JSON(http.StatusBadRequest, gin.H{"msg": "Unsupported file type"})
			return
		}

		stored := upload.TargetName(header)
		if err := c.SaveUploadedFile(header, filepath.Join(h.uploadDir, stored)); err != nil {
			h.logger.Error("store profile picture", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"msg": "Server error"})
			return
		}
		profilePic = upload.PublicURL(stored)
	}

	user, err := h.users.UpdateProfile(c.Request.Context(), mw.UserID(c), fullName, about, profilePic)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (h *userHandler) Block(c *gin.Context) {
	user, err := h.users.Block(c.Request.Context(), mw.UserID(c), c.Param("id"))
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "User blocked successfully", "blockedUsers": user.BlockedUsers})
}

func (h *userHandler) Unblock(c *gin.Context) {
	user, err := h.users.Unblock(c.Request.Context(), mw.UserID(c), c.Param("id"))
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "User unblocked successfully", "blockedUsers": user.BlockedUsers})
}

func (h *userHandler) DeleteForMe(c *gin.Context) {
	if err := h.users.DeleteForMe(c.Request.Context(), mw.UserID(c), c.Param("id")); err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "User deleted for you"})
}

func (h *userHandler) Restore(c *gin.Context) {
	if err := h.users.Restore(c.Request.Context(), mw.UserID(c), c.Param("id")); err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "User restored successfully"})
}

func (h *userHandler) Hidden(c *gin.Context) {
	users, err := h.users.HiddenUsers(c.Request.Context(), mw.UserID(c))
	if err != nil {
		respondErr(c, err)
		return
	}
	if users == nil {
		users = []model.PublicUser{}
	}
	c.JSON(http.StatusOK, users)
}
