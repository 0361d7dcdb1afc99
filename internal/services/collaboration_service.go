package services

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/tsuiketsu/tsuika-api-sub000/internal/apperrors"
	"github.com/tsuiketsu/tsuika-api-sub000/internal/events"
	"github.com/tsuiketsu/tsuika-api-sub000/internal/kafka"
	"github.com/tsuiketsu/tsuika-api-sub000/internal/models"
	"github.com/tsuiketsu/tsuika-api-sub000/internal/policy"
	"github.com/tsuiketsu/tsuika-api-sub000/internal/redis"
	"github.com/tsuiketsu/tsuika-api-sub000/internal/repositories"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Member is one entry of a folder's member list: a profile joined to its
// role. The owner appears with the implicit role "owner".
type Member struct {
	Profile UserProfile `json:"profile"`
	Role    string      `json:"role"`
}

// CollaborationService manages the set of role grants on folders.
type CollaborationService struct {
	gate          *AccessService
	folders       repositories.FolderRepository
	collaborators repositories.CollaboratorRepository
	users         IdentityResolver
	producer      *kafka.Producer
	cache         *redis.Service
}

func NewCollaborationService(
	gate *AccessService,
	folders repositories.FolderRepository,
	collaborators repositories.CollaboratorRepository,
	users IdentityResolver,
	producer *kafka.Producer,
	cache *redis.Service,
) *CollaborationService {
	return &CollaborationService{
		gate:          gate,
		folders:       folders,
		collaborators: collaborators,
		users:         users,
		producer:      producer,
		cache:         cache,
	}
}

// Grant invites a user (by username or email) to a folder with a role. The
// acting user must hold at least admin. Granting to the owner or to a user
// who already has a grant is a conflict.
func (s *CollaborationService) Grant(ctx context.Context, folderID uuid.UUID, identifier string, role models.AccessRole, actingUserID uuid.UUID) (*models.FolderCollaborator, *UserProfile, error) {
	folder, err := s.gate.Authorize(actingUserID, folderID, policy.ManageMembers)
	if err != nil {
		return nil, nil, err
	}

	if !role.Valid() {
		return nil, nil, apperrors.RequiredField("role must be viewer, editor or admin")
	}

	profile, err := s.users.FindByIdentifier(ctx, identifier)
	if err != nil {
		log.Printf("Failed to resolve identifier %q: %v", identifier, err)
		return nil, nil, apperrors.Internal("failed to resolve user")
	}
	if profile == nil {
		return nil, nil, apperrors.NotFound("no user matches that username or email")
	}

	if profile.ID == folder.OwnerID {
		return nil, nil, apperrors.Conflict("the folder owner cannot be added as a collaborator")
	}

	if _, err := s.collaborators.FindByFolderAndUser(folderID, profile.ID); err == nil {
		return nil, nil, apperrors.Conflict("user already has a role on this folder")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil, fmt.Errorf("check existing grant: %w", err)
	}

	grant := &models.FolderCollaborator{
		ID:        uuid.New(),
		FolderID:  folderID,
		UserID:    profile.ID,
		Role:      role,
		GrantedBy: actingUserID,
	}
	if err := s.collaborators.Create(grant); err != nil {
		// The unique index wins races the existence check above cannot see.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, nil, apperrors.Conflict("user already has a role on this folder")
		}
		log.Printf("Failed to create grant: %v", err)
		return nil, nil, apperrors.Internal("failed to share folder")
	}

	if s.producer != nil {
		event := events.NewCollaborationEvent(events.FolderShared, folderID, folder.OwnerID, actingUserID, profile.ID, string(role))
		if err := s.producer.PublishShareEvent(ctx, event); err != nil {
			log.Printf("Failed to publish folder shared event: %v", err)
		}
	}
	if s.cache != nil {
		if err := s.cache.AddFolderAccess(ctx, folderID, profile.ID, string(role)); err != nil {
			log.Printf("Failed to update ACL cache: %v", err)
		}
	}

	return grant, profile, nil
}

// ListMembers returns the folder's members, owner first with the implicit
// role "owner". An owner-only folder returns a single entry.
func (s *CollaborationService) ListMembers(ctx context.Context, folderID uuid.UUID) ([]Member, error) {
	folder, err := s.folders.FindByID(folderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("folder not found")
		}
		return nil, fmt.Errorf("find folder: %w", err)
	}

	members := []Member{{
		Profile: s.profileOrFallback(ctx, folder.OwnerID),
		Role:    "owner",
	}}

	grants, err := s.collaborators.ListByFolder(folderID)
	if err != nil {
		return nil, fmt.Errorf("list grants: %w", err)
	}
	for _, grant := range grants {
		members = append(members, Member{
			Profile: s.profileOrFallback(ctx, grant.UserID),
			Role:    string(grant.Role),
		})
	}

	return members, nil
}

// profileOrFallback joins a user id to its public profile, degrading to an
// id-only profile when the user service cannot be reached.
func (s *CollaborationService) profileOrFallback(ctx context.Context, userID uuid.UUID) UserProfile {
	profile, err := s.users.GetByID(ctx, userID)
	if err != nil {
		log.Printf("Failed to fetch profile for %s: %v", userID, err)
	}
	if profile == nil {
		return UserProfile{ID: userID}
	}
	return *profile
}

// ChangeRole updates an existing grant's role. The acting user must be
// owner or admin and may never target themself.
func (s *CollaborationService) ChangeRole(ctx context.Context, folderID, targetUserID uuid.UUID, newRole models.AccessRole, actingUserID uuid.UUID) (*models.FolderCollaborator, error) {
	folder, err := s.gate.Authorize(actingUserID, folderID, policy.ChangeOtherRole)
	if err != nil {
		return nil, err
	}

	if targetUserID == actingUserID {
		return nil, apperrors.Unauthorized("you cannot change your own role")
	}
	if !newRole.Valid() {
		return nil, apperrors.RequiredField("role must be viewer, editor or admin")
	}

	grant, err := s.collaborators.FindByFolderAndUser(folderID, targetUserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("no grant exists for that user on this folder")
		}
		return nil, fmt.Errorf("find grant: %w", err)
	}

	grant.Role = newRole
	if err := s.collaborators.Update(grant); err != nil {
		log.Printf("Failed to update grant: %v", err)
		return nil, apperrors.Internal("failed to change role")
	}

	if s.producer != nil {
		event := events.NewCollaborationEvent(events.FolderRoleChanged, folderID, folder.OwnerID, actingUserID, targetUserID, string(newRole))
		if err := s.producer.PublishShareEvent(ctx, event); err != nil {
			log.Printf("Failed to publish role changed event: %v", err)
		}
	}
	if s.cache != nil {
		if err := s.cache.AddFolderAccess(ctx, folderID, targetUserID, string(newRole)); err != nil {
			log.Printf("Failed to update ACL cache: %v", err)
		}
	}

	return grant, nil
}

// Revoke deletes a grant. Revoking a grant that does not exist is
// NOT_FOUND so callers can tell "already removed" from "removed now".
func (s *CollaborationService) Revoke(ctx context.Context, folderID, targetUserID, actingUserID uuid.UUID) error {
	folder, err := s.gate.Authorize(actingUserID, folderID, policy.ChangeOtherRole)
	if err != nil {
		return err
	}

	grant, err := s.collaborators.FindByFolderAndUser(folderID, targetUserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.NotFound("no grant exists for that user on this folder")
		}
		return fmt.Errorf("find grant: %w", err)
	}

	if err := s.collaborators.Delete(grant); err != nil {
		log.Printf("Failed to delete grant: %v", err)
		return apperrors.Internal("failed to revoke sharing")
	}

	if s.producer != nil {
		event := events.NewCollaborationEvent(events.FolderUnshared, folderID, folder.OwnerID, actingUserID, targetUserID, "")
		if err := s.producer.PublishShareEvent(ctx, event); err != nil {
			log.Printf("Failed to publish folder unshared event: %v", err)
		}
	}
	if s.cache != nil {
		if err := s.cache.RemoveFolderAccess(ctx, folderID, targetUserID); err != nil {
			log.Printf("Failed to update ACL cache: %v", err)
		}
	}

	return nil
}
