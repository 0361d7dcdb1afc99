package services

import (
	"errors"
	"fmt"

	"github.com/tsuiketsu/tsuika-api-sub000/internal/apperrors"
	"github.com/tsuiketsu/tsuika-api-sub000/internal/models"
	"github.com/tsuiketsu/tsuika-api-sub000/internal/policy"
	"github.com/tsuiketsu/tsuika-api-sub000/internal/repositories"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AccessService is the single entry point for authorization decisions on
// folders. Authenticated actors resolve to a role (owner, a stored grant, or
// none) and the role policy decides. Anonymous visitors never come through
// here; their one read path is ShareLinkService.ResolveForVisitor.
type AccessService struct {
	folders       repositories.FolderRepository
	collaborators repositories.CollaboratorRepository
}

func NewAccessService(folders repositories.FolderRepository, collaborators repositories.CollaboratorRepository) *AccessService {
	return &AccessService{folders: folders, collaborators: collaborators}
}

// ResolveRole returns the actor's effective role on the folder along with
// the folder itself. A missing folder is NOT_FOUND; an actor with neither
// ownership nor a grant resolves to policy.None.
func (s *AccessService) ResolveRole(userID, folderID uuid.UUID) (policy.Role, *models.Folder, error) {
	folder, err := s.folders.FindByID(folderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return policy.None, nil, apperrors.NotFound("folder not found")
		}
		return policy.None, nil, fmt.Errorf("find folder: %w", err)
	}

	if folder.OwnerID == userID {
		return policy.Owner, folder, nil
	}

	grant, err := s.collaborators.FindByFolderAndUser(folderID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return policy.None, folder, nil
		}
		return policy.None, nil, fmt.Errorf("find grant: %w", err)
	}

	return policy.ParseRole(string(grant.Role)), folder, nil
}

// Authorize checks that the actor may perform the action on the folder and
// returns the folder on allow. Deny is UNAUTHORIZED with the actor's
// effective role in the message.
func (s *AccessService) Authorize(userID, folderID uuid.UUID, action policy.Action) (*models.Folder, error) {
	role, folder, err := s.ResolveRole(userID, folderID)
	if err != nil {
		return nil, err
	}
	if !policy.Decide(role, action) {
		return nil, apperrors.Unauthorized(fmt.Sprintf("role %s may not perform %s", role, action))
	}
	return folder, nil
}
