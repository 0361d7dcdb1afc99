package router

import (
	"github.com/tsuiketsu/tsuika-api-sub000/internal/handlers"

	"github.com/gin-gonic/gin"
)

// FolderRoutes defines routes for folder management, collaboration, and the
// public link lifecycle. All of these require an authenticated user.
func FolderRoutes(rg *gin.RouterGroup, folderHandler *handlers.FolderHandler, bookmarkHandler *handlers.BookmarkHandler, collaboratorHandler *handlers.CollaboratorHandler, shareLinkHandler *handlers.ShareLinkHandler) {
	folders := rg.Group("/folders")
	{
		folders.POST("", folderHandler.CreateFolder)
		folders.GET("/:folderId", folderHandler.GetFolder)
		folders.PUT("/:folderId", folderHandler.UpdateFolder)
		folders.DELETE("/:folderId", folderHandler.DeleteFolder)

		// Bookmarks within a folder
		folders.POST("/:folderId/bookmarks", bookmarkHandler.CreateBookmark)

		// Collaboration
		folders.POST("/:folderId/collaborators", collaboratorHandler.ShareFolder)
		folders.GET("/:folderId/collaborators", collaboratorHandler.ListMembers)
		folders.PUT("/:folderId/collaborators/:userId", collaboratorHandler.ChangeRole)
		folders.DELETE("/:folderId/collaborators/:userId", collaboratorHandler.RevokeSharing)

		// Public link lifecycle
		folders.PUT("/:folderId/share-link", shareLinkHandler.Publish)
		folders.DELETE("/:folderId/share-link", shareLinkHandler.Unpublish)
		folders.POST("/:folderId/share-link/lock", shareLinkHandler.Lock)
		folders.DELETE("/:folderId/share-link/lock", shareLinkHandler.Unlock)
	}

	bookmarks := rg.Group("/bookmarks")
	{
		bookmarks.DELETE("/:bookmarkId", bookmarkHandler.DeleteBookmark)
	}
}
