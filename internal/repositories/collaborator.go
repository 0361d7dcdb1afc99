package repositories

import (
	"github.com/tsuiketsu/tsuika-api-sub000/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CollaboratorRepository defines data access for folder role grants.
type CollaboratorRepository interface {
	Create(grant *models.FolderCollaborator) error
	FindByFolderAndUser(folderID, userID uuid.UUID) (*models.FolderCollaborator, error)
	ListByFolder(folderID uuid.UUID) ([]models.FolderCollaborator, error)
	Update(grant *models.FolderCollaborator) error
	Delete(grant *models.FolderCollaborator) error
}

type collaboratorRepository struct {
	db *gorm.DB
}

func NewCollaboratorRepository(db *gorm.DB) CollaboratorRepository {
	return &collaboratorRepository{db: db}
}

func (r *collaboratorRepository) Create(grant *models.FolderCollaborator) error {
	return r.db.Create(grant).Error
}

func (r *collaboratorRepository) FindByFolderAndUser(folderID, userID uuid.UUID) (*models.FolderCollaborator, error) {
	var grant models.FolderCollaborator
	if err := r.db.Where("folder_id = ? AND user_id = ?", folderID, userID).First(&grant).Error; err != nil {
		return nil, err
	}
	return &grant, nil
}

func (r *collaboratorRepository) ListByFolder(folderID uuid.UUID) ([]models.FolderCollaborator, error) {
	var grants []models.FolderCollaborator
	err := r.db.Where("folder_id = ?", folderID).Order("created_at asc").Find(&grants).Error
	return grants, err
}

func (r *collaboratorRepository) Update(grant *models.FolderCollaborator) error {
	return r.db.Save(grant).Error
}

func (r *collaboratorRepository) Delete(grant *models.FolderCollaborator) error {
	return r.db.Delete(grant).Error
}
