package services

import (
	"context"
	"time"

	"github.com/tsuiketsu/tsuika-api-sub000/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// In-memory fakes for the repository and resolver interfaces. They mirror
// the store contracts the services rely on: gorm.ErrRecordNotFound for
// absence and gorm.ErrDuplicatedKey for unique-index violations.

type fakeFolderRepo struct {
	folders   map[uuid.UUID]*models.Folder
	bookmarks map[uuid.UUID][]models.Bookmark
}

func newFakeFolderRepo() *fakeFolderRepo {
	return &fakeFolderRepo{
		folders:   make(map[uuid.UUID]*models.Folder),
		bookmarks: make(map[uuid.UUID][]models.Bookmark),
	}
}

func (r *fakeFolderRepo) Create(folder *models.Folder) error {
	r.folders[folder.ID] = folder
	return nil
}

func (r *fakeFolderRepo) FindByID(folderID uuid.UUID) (*models.Folder, error) {
	folder, ok := r.folders[folderID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *folder
	return &copied, nil
}

func (r *fakeFolderRepo) Update(folder *models.Folder) error {
	r.folders[folder.ID] = folder
	return nil
}

func (r *fakeFolderRepo) ListBookmarks(folderID uuid.UUID) ([]models.Bookmark, error) {
	return r.bookmarks[folderID], nil
}

func (r *fakeFolderRepo) DeleteCascade(folderID uuid.UUID) error {
	delete(r.folders, folderID)
	delete(r.bookmarks, folderID)
	return nil
}

type fakeCollaboratorRepo struct {
	grants map[uuid.UUID]*models.FolderCollaborator
}

func newFakeCollaboratorRepo() *fakeCollaboratorRepo {
	return &fakeCollaboratorRepo{grants: make(map[uuid.UUID]*models.FolderCollaborator)}
}

func (r *fakeCollaboratorRepo) Create(grant *models.FolderCollaborator) error {
	for _, g := range r.grants {
		if g.FolderID == grant.FolderID && g.UserID == grant.UserID {
			return gorm.ErrDuplicatedKey
		}
	}
	grant.CreatedAt = time.Now()
	grant.UpdatedAt = grant.CreatedAt
	r.grants[grant.ID] = grant
	return nil
}

func (r *fakeCollaboratorRepo) FindByFolderAndUser(folderID, userID uuid.UUID) (*models.FolderCollaborator, error) {
	for _, g := range r.grants {
		if g.FolderID == folderID && g.UserID == userID {
			copied := *g
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeCollaboratorRepo) ListByFolder(folderID uuid.UUID) ([]models.FolderCollaborator, error) {
	var out []models.FolderCollaborator
	for _, g := range r.grants {
		if g.FolderID == folderID {
			out = append(out, *g)
		}
	}
	return out, nil
}

func (r *fakeCollaboratorRepo) Update(grant *models.FolderCollaborator) error {
	if _, ok := r.grants[grant.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	grant.UpdatedAt = time.Now()
	r.grants[grant.ID] = grant
	return nil
}

func (r *fakeCollaboratorRepo) Delete(grant *models.FolderCollaborator) error {
	delete(r.grants, grant.ID)
	return nil
}

type fakeShareLinkRepo struct {
	links map[uuid.UUID]*models.ShareLink
}

func newFakeShareLinkRepo() *fakeShareLinkRepo {
	return &fakeShareLinkRepo{links: make(map[uuid.UUID]*models.ShareLink)}
}

func (r *fakeShareLinkRepo) Create(link *models.ShareLink) error {
	for _, l := range r.links {
		if l.FolderID == link.FolderID {
			return gorm.ErrDuplicatedKey
		}
	}
	link.CreatedAt = time.Now()
	link.UpdatedAt = link.CreatedAt
	r.links[link.ID] = link
	return nil
}

func (r *fakeShareLinkRepo) FindByFolder(folderID uuid.UUID) (*models.ShareLink, error) {
	for _, l := range r.links {
		if l.FolderID == folderID {
			copied := *l
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeShareLinkRepo) FindByToken(token string) (*models.ShareLink, error) {
	for _, l := range r.links {
		if l.Token == token {
			copied := *l
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeShareLinkRepo) Update(link *models.ShareLink) error {
	if _, ok := r.links[link.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	link.UpdatedAt = time.Now()
	r.links[link.ID] = link
	return nil
}

func (r *fakeShareLinkRepo) RecordView(linkID uuid.UUID, viewedAt time.Time) error {
	link, ok := r.links[linkID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	link.ViewCount++
	link.LastViewedAt = &viewedAt
	return nil
}

type fakeResolver struct {
	byIdentifier map[string]*UserProfile
	byID         map[uuid.UUID]*UserProfile
}

func newFakeResolver() *fakeResolver {
	return &fakeResolver{
		byIdentifier: make(map[string]*UserProfile),
		byID:         make(map[uuid.UUID]*UserProfile),
	}
}

func (r *fakeResolver) addUser(identifier string, profile UserProfile) *UserProfile {
	r.byIdentifier[identifier] = &profile
	r.byID[profile.ID] = &profile
	return &profile
}

func (r *fakeResolver) FindByIdentifier(_ context.Context, identifier string) (*UserProfile, error) {
	return r.byIdentifier[identifier], nil
}

func (r *fakeResolver) GetByID(_ context.Context, userID uuid.UUID) (*UserProfile, error) {
	return r.byID[userID], nil
}
