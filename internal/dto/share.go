package dto

import (
	"time"

	"github.com/tsuiketsu/tsuika-api-sub000/internal/models"
)

type ShareFolderReq struct {
	// Username or email of the account to invite.
	Identifier string            `json:"identifier" binding:"required"`
	Role       models.AccessRole `json:"role" binding:"required"`
}

type ChangeRoleReq struct {
	Role models.AccessRole `json:"role" binding:"required"`
}

type PublishShareLinkReq struct {
	Title     *string    `json:"title"`
	Note      *string    `json:"note"`
	IsPublic  bool       `json:"isPublic"`
	ExpiresAt *time.Time `json:"expiresAt"`
}

type LockShareLinkReq struct {
	Password string `json:"password" binding:"required"`
}

type VisitShareLinkReq struct {
	Password string `json:"password"`
}

// PublicBookmark is the anonymous-visible projection of a bookmark.
type PublicBookmark struct {
	Title       string `json:"title"`
	URL         string `json:"url"`
	Description string `json:"description,omitempty"`
}

// PublicOwner is the anonymous-visible projection of the folder owner.
type PublicOwner struct {
	Username     string `json:"username"`
	DisplayImage string `json:"displayImage,omitempty"`
}

// PublicFolderView is what an anonymous visitor sees when resolving a share
// link. No internal ids are included.
type PublicFolderView struct {
	Name        string           `json:"name"`
	Description string           `json:"description,omitempty"`
	Title       *string          `json:"title,omitempty"`
	Note        *string          `json:"note,omitempty"`
	Owner       PublicOwner      `json:"owner"`
	Bookmarks   []PublicBookmark `json:"bookmarks"`
	ViewCount   int64            `json:"viewCount"`
}
