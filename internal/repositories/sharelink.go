package repositories

import (
	"time"

	"github.com/tsuiketsu/tsuika-api-sub000/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ShareLinkRepository defines data access for folder public share links.
type ShareLinkRepository interface {
	Create(link *models.ShareLink) error
	FindByFolder(folderID uuid.UUID) (*models.ShareLink, error)
	FindByToken(token string) (*models.ShareLink, error)
	Update(link *models.ShareLink) error
	RecordView(linkID uuid.UUID, viewedAt time.Time) error
}

type shareLinkRepository struct {
	db *gorm.DB
}

func NewShareLinkRepository(db *gorm.DB) ShareLinkRepository {
	return &shareLinkRepository{db: db}
}

func (r *shareLinkRepository) Create(link *models.ShareLink) error {
	return r.db.Create(link).Error
}

func (r *shareLinkRepository) FindByFolder(folderID uuid.UUID) (*models.ShareLink, error) {
	var link models.ShareLink
	if err := r.db.Where("folder_id = ?", folderID).First(&link).Error; err != nil {
		return nil, err
	}
	return &link, nil
}

func (r *shareLinkRepository) FindByToken(token string) (*models.ShareLink, error) {
	var link models.ShareLink
	if err := r.db.Where("token = ?", token).First(&link).Error; err != nil {
		return nil, err
	}
	return &link, nil
}

func (r *shareLinkRepository) Update(link *models.ShareLink) error {
	return r.db.Save(link).Error
}

// RecordView bumps the view counter in a single UPDATE so concurrent
// anonymous reads never lose increments to read-modify-write races.
func (r *shareLinkRepository) RecordView(linkID uuid.UUID, viewedAt time.Time) error {
	return r.db.Model(&models.ShareLink{}).
		Where("id = ?", linkID).
		UpdateColumns(map[string]interface{}{
			"view_count":     gorm.Expr("view_count + ?", 1),
			"last_viewed_at": viewedAt,
		}).Error
}
