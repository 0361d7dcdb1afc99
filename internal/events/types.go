package events

// Sharing Event Types
const (
	FolderShared      = "FOLDER_SHARED"
	FolderRoleChanged = "FOLDER_ROLE_CHANGED"
	FolderUnshared    = "FOLDER_UNSHARED"

	LinkPublished   = "LINK_PUBLISHED"
	LinkUnpublished = "LINK_UNPUBLISHED"
	LinkLocked      = "LINK_LOCKED"
	LinkUnlocked    = "LINK_UNLOCKED"
)

// Kafka Topics
const (
	FolderSharingTopic = "folder.sharing"
)
