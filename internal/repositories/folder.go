package repositories

import (
	"github.com/tsuiketsu/tsuika-api-sub000/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// FolderRepository defines data access for folders and their bookmarks.
type FolderRepository interface {
	Create(folder *models.Folder) error
	FindByID(folderID uuid.UUID) (*models.Folder, error)
	Update(folder *models.Folder) error
	ListBookmarks(folderID uuid.UUID) ([]models.Bookmark, error)
	DeleteCascade(folderID uuid.UUID) error
}

type folderRepository struct {
	db *gorm.DB
}

func NewFolderRepository(db *gorm.DB) FolderRepository {
	return &folderRepository{db: db}
}

func (r *folderRepository) Create(folder *models.Folder) error {
	return r.db.Create(folder).Error
}

func (r *folderRepository) FindByID(folderID uuid.UUID) (*models.Folder, error) {
	var folder models.Folder
	if err := r.db.First(&folder, "id = ?", folderID).Error; err != nil {
		return nil, err
	}
	return &folder, nil
}

func (r *folderRepository) Update(folder *models.Folder) error {
	return r.db.Save(folder).Error
}

func (r *folderRepository) ListBookmarks(folderID uuid.UUID) ([]models.Bookmark, error) {
	var bookmarks []models.Bookmark
	err := r.db.Where("folder_id = ?", folderID).Order("created_at asc").Find(&bookmarks).Error
	return bookmarks, err
}

// DeleteCascade removes a folder and everything hanging off it in one
// transaction: grants, the share link, bookmarks, then the folder row.
func (r *folderRepository) DeleteCascade(folderID uuid.UUID) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("folder_id = ?", folderID).Delete(&models.FolderCollaborator{}).Error; err != nil {
			return err
		}
		if err := tx.Where("folder_id = ?", folderID).Delete(&models.ShareLink{}).Error; err != nil {
			return err
		}
		if err := tx.Where("folder_id = ?", folderID).Delete(&models.Bookmark{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Folder{}, "id = ?", folderID).Error
	})
}
