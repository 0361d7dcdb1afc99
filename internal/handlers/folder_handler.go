package handlers

import (
	"context"
	"log"
	"net/http"

	"github.com/tsuiketsu/tsuika-api-sub000/internal/models"
	"github.com/tsuiketsu/tsuika-api-sub000/internal/policy"
	"github.com/tsuiketsu/tsuika-api-sub000/internal/redis"
	"github.com/tsuiketsu/tsuika-api-sub000/internal/repositories"
	"github.com/tsuiketsu/tsuika-api-sub000/internal/services"
	"github.com/tsuiketsu/tsuika-api-sub000/pkg/responses"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type FolderHandler struct {
	folders      repositories.FolderRepository
	gate         *services.AccessService
	redisService *redis.Service
}

func NewFolderHandler(folders repositories.FolderRepository, gate *services.AccessService, redisService *redis.Service) *FolderHandler {
	return &FolderHandler{
		folders:      folders,
		gate:         gate,
		redisService: redisService,
	}
}

// currentUserID pulls the authenticated user id set by the auth middleware.
func currentUserID(c *gin.Context) (uuid.UUID, bool) {
	v, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, responses.NewErrorResponse("Authentication required"))
		return uuid.Nil, false
	}
	return v.(uuid.UUID), true
}

// parseFolderID parses the folderId path parameter.
func parseFolderID(c *gin.Context) (uuid.UUID, bool) {
	folderID, err := uuid.Parse(c.Param("folderId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, responses.NewErrorResponse("Invalid folder ID format"))
		return uuid.Nil, false
	}
	return folderID, true
}

// CreateFolder creates a new folder owned by the authenticated user.
func (h *FolderHandler) CreateFolder(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req struct {
		Name        string `json:"name" binding:"required"`
		Description string `json:"description"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, responses.NewErrorResponse("Invalid request format"))
		return
	}

	folder := models.Folder{
		ID:          uuid.New(),
		Name:        req.Name,
		Description: req.Description,
		OwnerID:     userID,
	}
	if err := h.folders.Create(&folder); err != nil {
		log.Printf("Failed to create folder: %v", err)
		c.JSON(http.StatusInternalServerError, responses.NewErrorResponse("Failed to create folder"))
		return
	}

	if h.redisService != nil {
		if err := h.redisService.SetFolderMetadata(context.Background(), &folder); err != nil {
			log.Printf("Failed to cache folder metadata: %v", err)
		}
	}

	c.JSON(http.StatusCreated, responses.NewSuccessResponse("Folder created successfully", folder))
}

// GetFolder returns a folder and its bookmarks when the caller may read it.
func (h *FolderHandler) GetFolder(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	folderID, ok := parseFolderID(c)
	if !ok {
		return
	}

	role, folder, err := h.gate.ResolveRole(userID, folderID)
	if err != nil {
		responses.Error(c, err)
		return
	}
	if !policy.Decide(role, policy.ReadContent) {
		c.JSON(http.StatusForbidden, responses.NewErrorResponse("You don't have permission to access this folder"))
		return
	}

	bookmarks, err := h.folders.ListBookmarks(folderID)
	if err != nil {
		log.Printf("Error fetching bookmarks for folder %s: %v", folderID, err)
		c.JSON(http.StatusInternalServerError, responses.NewErrorResponse("Failed to retrieve folder contents"))
		return
	}

	if h.redisService != nil {
		if err := h.redisService.SetFolderMetadata(context.Background(), folder); err != nil {
			log.Printf("Failed to cache folder metadata: %v", err)
		}
	}

	c.JSON(http.StatusOK, responses.NewSuccessResponse("Folder retrieved successfully", gin.H{
		"folder":    folder,
		"role":      role.String(),
		"bookmarks": bookmarks,
	}))
}

// UpdateFolder updates folder metadata. Folder metadata is not folder
// content, so editors are excluded; admin or owner is required.
func (h *FolderHandler) UpdateFolder(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	folderID, ok := parseFolderID(c)
	if !ok {
		return
	}

	var req struct {
		Name        string `json:"name" binding:"required"`
		Description string `json:"description"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, responses.NewErrorResponse("Invalid request format"))
		return
	}

	folder, err := h.gate.Authorize(userID, folderID, policy.ManageMembers)
	if err != nil {
		responses.Error(c, err)
		return
	}

	folder.Name = req.Name
	folder.Description = req.Description
	if err := h.folders.Update(folder); err != nil {
		log.Printf("Failed to update folder: %v", err)
		c.JSON(http.StatusInternalServerError, responses.NewErrorResponse("Failed to update folder"))
		return
	}

	if h.redisService != nil {
		if err := h.redisService.SetFolderMetadata(context.Background(), folder); err != nil {
			log.Printf("Failed to update folder cache: %v", err)
		}
	}

	c.JSON(http.StatusOK, responses.NewSuccessResponse("Folder updated successfully", folder))
}

// DeleteFolder deletes a folder with its grants, share link, and bookmarks.
// Only the owner may delete.
func (h *FolderHandler) DeleteFolder(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	folderID, ok := parseFolderID(c)
	if !ok {
		return
	}

	if _, err := h.gate.Authorize(userID, folderID, policy.DeleteFolder); err != nil {
		responses.Error(c, err)
		return
	}

	if err := h.folders.DeleteCascade(folderID); err != nil {
		log.Printf("Failed to delete folder: %v", err)
		c.JSON(http.StatusInternalServerError, responses.NewErrorResponse("Failed to delete folder"))
		return
	}

	if h.redisService != nil {
		if err := h.redisService.InvalidateFolderMetadata(context.Background(), folderID); err != nil {
			log.Printf("Failed to invalidate folder cache: %v", err)
		}
		if err := h.redisService.InvalidateFolderACL(context.Background(), folderID); err != nil {
			log.Printf("Failed to invalidate ACL cache: %v", err)
		}
	}

	c.JSON(http.StatusOK, responses.NewSuccessResponse("Folder and all its contents deleted successfully", nil))
}
