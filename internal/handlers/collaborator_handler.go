package handlers

import (
	"net/http"

	"github.com/tsuiketsu/tsuika-api-sub000/internal/dto"
	"github.com/tsuiketsu/tsuika-api-sub000/internal/services"
	"github.com/tsuiketsu/tsuika-api-sub000/pkg/responses"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type CollaboratorHandler struct {
	collaboration *services.CollaborationService
}

func NewCollaboratorHandler(collaboration *services.CollaborationService) *CollaboratorHandler {
	return &CollaboratorHandler{collaboration: collaboration}
}

// ShareFolder grants a role on a folder to a user resolved by username or
// email.
func (h *CollaboratorHandler) ShareFolder(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	folderID, ok := parseFolderID(c)
	if !ok {
		return
	}

	var req dto.ShareFolderReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, responses.NewErrorResponse("Invalid request format"))
		return
	}

	grant, profile, err := h.collaboration.Grant(c.Request.Context(), folderID, req.Identifier, req.Role, userID)
	if err != nil {
		responses.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, responses.NewSuccessResponse("Folder shared successfully", gin.H{
		"grant":   grant,
		"profile": profile,
	}))
}

// ListMembers returns the folder's member list, owner first.
func (h *CollaboratorHandler) ListMembers(c *gin.Context) {
	if _, ok := currentUserID(c); !ok {
		return
	}
	folderID, ok := parseFolderID(c)
	if !ok {
		return
	}

	members, err := h.collaboration.ListMembers(c.Request.Context(), folderID)
	if err != nil {
		responses.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, responses.NewSuccessResponse("Members retrieved successfully", members))
}

// ChangeRole updates a collaborator's role.
func (h *CollaboratorHandler) ChangeRole(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	folderID, ok := parseFolderID(c)
	if !ok {
		return
	}

	targetID, err := uuid.Parse(c.Param("userId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, responses.NewErrorResponse("Invalid user ID format"))
		return
	}

	var req dto.ChangeRoleReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, responses.NewErrorResponse("Invalid request format"))
		return
	}

	grant, err := h.collaboration.ChangeRole(c.Request.Context(), folderID, targetID, req.Role, userID)
	if err != nil {
		responses.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, responses.NewSuccessResponse("Role updated successfully", grant))
}

// RevokeSharing removes a collaborator's grant.
func (h *CollaboratorHandler) RevokeSharing(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	folderID, ok := parseFolderID(c)
	if !ok {
		return
	}

	targetID, err := uuid.Parse(c.Param("userId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, responses.NewErrorResponse("Invalid user ID format"))
		return
	}

	if err := h.collaboration.Revoke(c.Request.Context(), folderID, targetID, userID); err != nil {
		responses.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, responses.NewSuccessResponse("Folder sharing revoked successfully", nil))
}
