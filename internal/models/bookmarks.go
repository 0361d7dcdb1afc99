package models

import (
	"time"

	"github.com/google/uuid"
)

type Bookmark struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Title       string    `gorm:"size:255;not null" json:"title"`
	URL         string    `gorm:"size:2048;not null" json:"url"`
	Description string    `gorm:"type:text" json:"description"`
	FolderID    uuid.UUID `gorm:"type:uuid;not null;index" json:"folderId"`
	OwnerID     uuid.UUID `gorm:"type:uuid;not null" json:"ownerId"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`

	// Foreign key relationships
	Folder Folder `gorm:"foreignKey:FolderID" json:"-"`
}
