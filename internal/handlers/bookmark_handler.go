package handlers

import (
	"log"
	"net/http"

	"github.com/tsuiketsu/tsuika-api-sub000/internal/models"
	"github.com/tsuiketsu/tsuika-api-sub000/internal/policy"
	"github.com/tsuiketsu/tsuika-api-sub000/internal/services"
	"github.com/tsuiketsu/tsuika-api-sub000/pkg/responses"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type BookmarkHandler struct {
	db   *gorm.DB
	gate *services.AccessService
}

func NewBookmarkHandler(db *gorm.DB, gate *services.AccessService) *BookmarkHandler {
	return &BookmarkHandler{db: db, gate: gate}
}

// CreateBookmark adds a bookmark to a folder. Editors and above may write
// folder contents.
func (h *BookmarkHandler) CreateBookmark(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	folderID, ok := parseFolderID(c)
	if !ok {
		return
	}

	var req struct {
		Title       string `json:"title" binding:"required"`
		URL         string `json:"url" binding:"required,url"`
		Description string `json:"description"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, responses.NewErrorResponse("Invalid request format"))
		return
	}

	folder, err := h.gate.Authorize(userID, folderID, policy.WriteContent)
	if err != nil {
		responses.Error(c, err)
		return
	}

	bookmark := models.Bookmark{
		ID:          uuid.New(),
		Title:       req.Title,
		URL:         req.URL,
		Description: req.Description,
		FolderID:    folderID,
		OwnerID:     folder.OwnerID,
	}
	if err := h.db.Create(&bookmark).Error; err != nil {
		log.Printf("Failed to create bookmark: %v", err)
		c.JSON(http.StatusInternalServerError, responses.NewErrorResponse("Failed to create bookmark"))
		return
	}

	c.JSON(http.StatusCreated, responses.NewSuccessResponse("Bookmark created successfully", bookmark))
}

// DeleteBookmark removes a bookmark from a folder.
func (h *BookmarkHandler) DeleteBookmark(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	bookmarkID, err := uuid.Parse(c.Param("bookmarkId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, responses.NewErrorResponse("Invalid bookmark ID format"))
		return
	}

	var bookmark models.Bookmark
	if err := h.db.First(&bookmark, "id = ?", bookmarkID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, responses.NewErrorResponse("Bookmark not found"))
			return
		}
		log.Printf("Database error when finding bookmark: %v", err)
		c.JSON(http.StatusInternalServerError, responses.NewErrorResponse("Failed to retrieve bookmark"))
		return
	}

	if _, err := h.gate.Authorize(userID, bookmark.FolderID, policy.WriteContent); err != nil {
		responses.Error(c, err)
		return
	}

	if err := h.db.Delete(&bookmark).Error; err != nil {
		log.Printf("Failed to delete bookmark: %v", err)
		c.JSON(http.StatusInternalServerError, responses.NewErrorResponse("Failed to delete bookmark"))
		return
	}

	c.JSON(http.StatusOK, responses.NewSuccessResponse("Bookmark deleted successfully", nil))
}
