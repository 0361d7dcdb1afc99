package events

import (
	"time"

	"github.com/google/uuid"
)

// ShareEvent represents a change to a folder's sharing state: a grant, a
// role change, a revocation, or a public link transition.
type ShareEvent struct {
	EventType string    `json:"eventType"`
	FolderID  string    `json:"folderId"`
	OwnerID   string    `json:"ownerId"`
	ActionBy  string    `json:"actionBy"`
	Timestamp time.Time `json:"timestamp"`
	// Collaboration fields
	TargetUserID *string `json:"targetUserId,omitempty"`
	Role         *string `json:"role,omitempty"`
	// Public link fields
	Token *string `json:"token,omitempty"`
}

// NewShareEvent creates an event for a public link transition.
func NewShareEvent(eventType string, folderID, ownerID, actionBy uuid.UUID) *ShareEvent {
	return &ShareEvent{
		EventType: eventType,
		FolderID:  folderID.String(),
		OwnerID:   ownerID.String(),
		ActionBy:  actionBy.String(),
		Timestamp: time.Now(),
	}
}

// NewCollaborationEvent creates an event for a grant, role change, or
// revocation targeting a specific user.
func NewCollaborationEvent(eventType string, folderID, ownerID, actionBy, targetUserID uuid.UUID, role string) *ShareEvent {
	event := NewShareEvent(eventType, folderID, ownerID, actionBy)
	targetStr := targetUserID.String()
	event.TargetUserID = &targetStr
	if role != "" {
		event.Role = &role
	}
	return event
}
