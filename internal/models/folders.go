package models

import (
	"time"

	"github.com/google/uuid"
)

type Folder struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Name        string    `gorm:"size:150;not null" json:"name"`
	Description string    `gorm:"size:500" json:"description"`
	OwnerID     uuid.UUID `gorm:"type:uuid;not null" json:"ownerId"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// FolderCollaborator is a standing role grant of a user on a folder.
// The composite unique index makes concurrent duplicate grants impossible;
// the insert either succeeds uniquely or fails with a conflict.
type FolderCollaborator struct {
	ID        uuid.UUID  `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	FolderID  uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_folder_collaborator" json:"folderId"`
	UserID    uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_folder_collaborator" json:"userId"`
	Role      AccessRole `gorm:"size:20;not null" json:"role"`
	GrantedBy uuid.UUID  `gorm:"type:uuid;not null" json:"grantedBy"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`

	// Foreign key relationships
	Folder Folder `gorm:"foreignKey:FolderID" json:"-"`
}
