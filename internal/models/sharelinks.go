package models

import (
	"time"

	"github.com/google/uuid"
)

// ShareLink is a folder's public share link. At most one exists per folder.
// Unpublishing keeps the lock secret and the cumulative view count so a
// republish resumes where the link left off.
type ShareLink struct {
	ID             uuid.UUID  `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	FolderID       uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex" json:"folderId"`
	Token          string     `gorm:"size:64;not null;uniqueIndex" json:"token"`
	IsPublished    bool       `gorm:"not null;default:false" json:"isPublished"`
	PasswordDigest []byte     `json:"-"`
	PasswordSalt   []byte     `json:"-"`
	Title          *string    `gorm:"size:255" json:"title,omitempty"`
	Note           *string    `gorm:"size:1000" json:"note,omitempty"`
	ExpiresAt      *time.Time `json:"expiresAt,omitempty"`
	ViewCount      int64      `gorm:"not null;default:0" json:"viewCount"`
	LastViewedAt   *time.Time `json:"lastViewedAt,omitempty"`
	UnpublishedAt  *time.Time `json:"unpublishedAt,omitempty"`
	CreatedAt      time.Time  `json:"createdAt"`
	UpdatedAt      time.Time  `json:"updatedAt"`

	// Foreign key relationships
	Folder Folder `gorm:"foreignKey:FolderID" json:"-"`
}

// Locked reports whether anonymous reads must pass password verification.
func (l *ShareLink) Locked() bool {
	return len(l.PasswordDigest) > 0
}

// Expired is the single derived expiry predicate. It is recomputed against
// the given clock on every call and never stored; IsPublished is left alone.
func (l *ShareLink) Expired(now time.Time) bool {
	return l.ExpiresAt != nil && l.ExpiresAt.Before(now)
}
