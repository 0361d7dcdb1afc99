package handlers

import (
	"net/http"

	"github.com/tsuiketsu/tsuika-api-sub000/internal/dto"
	"github.com/tsuiketsu/tsuika-api-sub000/internal/services"
	"github.com/tsuiketsu/tsuika-api-sub000/pkg/responses"

	"github.com/gin-gonic/gin"
)

type ShareLinkHandler struct {
	shareLinks *services.ShareLinkService
}

func NewShareLinkHandler(shareLinks *services.ShareLinkService) *ShareLinkHandler {
	return &ShareLinkHandler{shareLinks: shareLinks}
}

// Publish creates or updates the folder's public link.
func (h *ShareLinkHandler) Publish(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	folderID, ok := parseFolderID(c)
	if !ok {
		return
	}

	var req dto.PublishShareLinkReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, responses.NewErrorResponse("Invalid request format"))
		return
	}

	link, err := h.shareLinks.Publish(c.Request.Context(), folderID, req, userID)
	if err != nil {
		responses.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, responses.NewSuccessResponse("Share link saved successfully", link))
}

// Unpublish takes the folder's public link offline.
func (h *ShareLinkHandler) Unpublish(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	folderID, ok := parseFolderID(c)
	if !ok {
		return
	}

	link, err := h.shareLinks.Unpublish(c.Request.Context(), folderID, userID)
	if err != nil {
		responses.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, responses.NewSuccessResponse("Share link unpublished successfully", link))
}

// Lock sets a password on the folder's public link.
func (h *ShareLinkHandler) Lock(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	folderID, ok := parseFolderID(c)
	if !ok {
		return
	}

	var req dto.LockShareLinkReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, responses.NewErrorResponse("Invalid request format"))
		return
	}

	if err := h.shareLinks.Lock(c.Request.Context(), folderID, req.Password, userID); err != nil {
		responses.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, responses.NewSuccessResponse("Share link locked successfully", nil))
}

// Unlock clears the password on the folder's public link.
func (h *ShareLinkHandler) Unlock(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	folderID, ok := parseFolderID(c)
	if !ok {
		return
	}

	if err := h.shareLinks.Unlock(c.Request.Context(), folderID, userID); err != nil {
		responses.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, responses.NewSuccessResponse("Share link unlocked successfully", nil))
}
