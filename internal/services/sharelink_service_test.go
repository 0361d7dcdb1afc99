package services

import (
	"context"
	"testing"
	"time"

	"github.com/tsuiketsu/tsuika-api-sub000/internal/apperrors"
	"github.com/tsuiketsu/tsuika-api-sub000/internal/dto"
	"github.com/tsuiketsu/tsuika-api-sub000/internal/models"
	"github.com/tsuiketsu/tsuika-api-sub000/internal/secrets"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type shareFixture struct {
	service       *ShareLinkService
	collaboration *CollaborationService
	links         *fakeShareLinkRepo
	folders       *fakeFolderRepo
	collaborators *fakeCollaboratorRepo
	resolver      *fakeResolver
	folder        *models.Folder
	owner         *UserProfile
}

func newShareFixture(t *testing.T) *shareFixture {
	t.Helper()

	folders := newFakeFolderRepo()
	collaborators := newFakeCollaboratorRepo()
	links := newFakeShareLinkRepo()
	resolver := newFakeResolver()
	gate := NewAccessService(folders, collaborators)

	hasher, err := secrets.NewHasher(secrets.Params{
		Time: 1, MemoryKiB: 8 * 1024, Threads: 1, KeyLen: 32, SaltLen: 16,
	})
	require.NoError(t, err)

	owner := resolver.addUser("owner", UserProfile{
		ID: uuid.New(), Username: "owner", DisplayImage: "avatars/owner.png",
	})
	folder := &models.Folder{ID: uuid.New(), Name: "reading list", Description: "weekend links", OwnerID: owner.ID}
	require.NoError(t, folders.Create(folder))
	folders.bookmarks[folder.ID] = []models.Bookmark{
		{ID: uuid.New(), Title: "Go blog", URL: "https://go.dev/blog", FolderID: folder.ID, OwnerID: owner.ID},
		{ID: uuid.New(), Title: "Gin docs", URL: "https://gin-gonic.com", FolderID: folder.ID, OwnerID: owner.ID},
	}

	return &shareFixture{
		service:       NewShareLinkService(gate, links, folders, resolver, hasher, nil),
		collaboration: NewCollaborationService(gate, folders, collaborators, resolver, nil, nil),
		links:         links,
		folders:       folders,
		collaborators: collaborators,
		resolver:      resolver,
		folder:        folder,
		owner:         owner,
	}
}

func (f *shareFixture) publish(t *testing.T, req dto.PublishShareLinkReq) *models.ShareLink {
	t.Helper()
	link, err := f.service.Publish(context.Background(), f.folder.ID, req, f.owner.ID)
	require.NoError(t, err)
	return link
}

func TestPublishCreatesLink(t *testing.T) {
	f := newShareFixture(t)

	link := f.publish(t, dto.PublishShareLinkReq{IsPublic: true})
	assert.True(t, link.IsPublished)
	assert.NotEmpty(t, link.Token)
	assert.Nil(t, link.UnpublishedAt)
	assert.False(t, link.Locked())

	// Publishing again updates the same row and keeps the token
	again := f.publish(t, dto.PublishShareLinkReq{IsPublic: true})
	assert.Equal(t, link.Token, again.Token)
	assert.Equal(t, link.ID, again.ID)
}

func TestPublishRequiresAdmin(t *testing.T) {
	f := newShareFixture(t)

	viewer := f.resolver.addUser("viewer", UserProfile{ID: uuid.New(), Username: "viewer"})
	require.NoError(t, f.collaborators.Create(&models.FolderCollaborator{
		ID: uuid.New(), FolderID: f.folder.ID, UserID: viewer.ID, Role: models.RoleViewer,
	}))

	_, err := f.service.Publish(context.Background(), f.folder.ID, dto.PublishShareLinkReq{IsPublic: true}, viewer.ID)
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
}

func TestUnpublishKeepsLockAndViews(t *testing.T) {
	f := newShareFixture(t)
	link := f.publish(t, dto.PublishShareLinkReq{IsPublic: true})

	require.NoError(t, f.service.Lock(context.Background(), f.folder.ID, "p@ss", f.owner.ID))

	_, err := f.service.ResolveForVisitor(context.Background(), link.Token, "p@ss")
	require.NoError(t, err)

	unpublished, err := f.service.Unpublish(context.Background(), f.folder.ID, f.owner.ID)
	require.NoError(t, err)
	assert.False(t, unpublished.IsPublished)
	assert.NotNil(t, unpublished.UnpublishedAt)
	assert.True(t, unpublished.Locked())
	assert.Equal(t, int64(1), unpublished.ViewCount)
}

func TestLockBeforePublishRejected(t *testing.T) {
	f := newShareFixture(t)

	err := f.service.Lock(context.Background(), f.folder.ID, "p@ss", f.owner.ID)
	assert.ErrorIs(t, err, apperrors.ErrRequiredField)
}

func TestResolveUnknownToken(t *testing.T) {
	f := newShareFixture(t)

	_, err := f.service.ResolveForVisitor(context.Background(), "no-such-token", "")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestResolveUnpublishedForbidden(t *testing.T) {
	f := newShareFixture(t)
	link := f.publish(t, dto.PublishShareLinkReq{IsPublic: true})
	require.NoError(t, f.service.Lock(context.Background(), f.folder.ID, "p@ss", f.owner.ID))

	_, err := f.service.Unpublish(context.Background(), f.folder.ID, f.owner.ID)
	require.NoError(t, err)

	// Forbidden regardless of password correctness
	_, err = f.service.ResolveForVisitor(context.Background(), link.Token, "p@ss")
	assert.ErrorIs(t, err, apperrors.ErrForbidden)
}

func TestResolveExpiredForbidden(t *testing.T) {
	f := newShareFixture(t)
	past := time.Now().Add(-time.Hour)
	link := f.publish(t, dto.PublishShareLinkReq{IsPublic: true, ExpiresAt: &past})

	_, err := f.service.ResolveForVisitor(context.Background(), link.Token, "")
	assert.ErrorIs(t, err, apperrors.ErrForbidden)

	// IsPublished is untouched; expiry is computed, not stored
	stored, err := f.links.FindByFolder(f.folder.ID)
	require.NoError(t, err)
	assert.True(t, stored.IsPublished)
}

func TestResolveLockedLink(t *testing.T) {
	f := newShareFixture(t)
	link := f.publish(t, dto.PublishShareLinkReq{IsPublic: true})
	require.NoError(t, f.service.Lock(context.Background(), f.folder.ID, "p@ss", f.owner.ID))

	_, err := f.service.ResolveForVisitor(context.Background(), link.Token, "")
	assert.ErrorIs(t, err, apperrors.ErrRequiredField)

	_, err = f.service.ResolveForVisitor(context.Background(), link.Token, "wrong")
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)

	view, err := f.service.ResolveForVisitor(context.Background(), link.Token, "p@ss")
	require.NoError(t, err)
	assert.Equal(t, int64(1), view.ViewCount)
}

func TestLockUnlockResolveWithoutPassword(t *testing.T) {
	f := newShareFixture(t)
	link := f.publish(t, dto.PublishShareLinkReq{IsPublic: true})

	require.NoError(t, f.service.Lock(context.Background(), f.folder.ID, "p@ss", f.owner.ID))
	require.NoError(t, f.service.Unlock(context.Background(), f.folder.ID, f.owner.ID))

	view, err := f.service.ResolveForVisitor(context.Background(), link.Token, "")
	require.NoError(t, err)
	assert.Equal(t, "reading list", view.Name)
}

func TestResolveProjectionExcludesInternals(t *testing.T) {
	f := newShareFixture(t)
	title := "my weekend links"
	link := f.publish(t, dto.PublishShareLinkReq{IsPublic: true, Title: &title})

	view, err := f.service.ResolveForVisitor(context.Background(), link.Token, "")
	require.NoError(t, err)

	assert.Equal(t, "reading list", view.Name)
	assert.Equal(t, "weekend links", view.Description)
	require.NotNil(t, view.Title)
	assert.Equal(t, title, *view.Title)
	assert.Equal(t, "owner", view.Owner.Username)
	require.Len(t, view.Bookmarks, 2)
	assert.Equal(t, "https://go.dev/blog", view.Bookmarks[0].URL)
}

func TestViewCountAccumulates(t *testing.T) {
	f := newShareFixture(t)
	link := f.publish(t, dto.PublishShareLinkReq{IsPublic: true})

	for i := 0; i < 3; i++ {
		_, err := f.service.ResolveForVisitor(context.Background(), link.Token, "")
		require.NoError(t, err)
	}

	stored, err := f.links.FindByFolder(f.folder.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(3), stored.ViewCount)
	assert.NotNil(t, stored.LastViewedAt)
}

// Full walk through the sharing lifecycle: publish with expiry, lock,
// anonymous reads, grant, failed privilege escalation, promotion, and an
// unpublish by the promoted admin.
func TestSharingEndToEnd(t *testing.T) {
	f := newShareFixture(t)
	ctx := context.Background()

	expires := time.Now().Add(time.Hour)
	link := f.publish(t, dto.PublishShareLinkReq{IsPublic: true, ExpiresAt: &expires})
	require.NoError(t, f.service.Lock(ctx, f.folder.ID, "p@ss", f.owner.ID))

	_, err := f.service.ResolveForVisitor(ctx, link.Token, "")
	assert.ErrorIs(t, err, apperrors.ErrRequiredField)

	_, err = f.service.ResolveForVisitor(ctx, link.Token, "wrong")
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)

	view, err := f.service.ResolveForVisitor(ctx, link.Token, "p@ss")
	require.NoError(t, err)
	assert.Equal(t, int64(1), view.ViewCount)

	u2 := f.resolver.addUser("u2", UserProfile{ID: uuid.New(), Username: "u2"})
	u3 := f.resolver.addUser("u3", UserProfile{ID: uuid.New(), Username: "u3"})

	_, _, err = f.collaboration.Grant(ctx, f.folder.ID, "u2", models.RoleEditor, f.owner.ID)
	require.NoError(t, err)
	_, _, err = f.collaboration.Grant(ctx, f.folder.ID, "u3", models.RoleViewer, f.owner.ID)
	require.NoError(t, err)

	// An editor lacks CHANGE_OTHER_ROLE
	_, err = f.collaboration.ChangeRole(ctx, f.folder.ID, u3.ID, models.RoleAdmin, u2.ID)
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)

	_, err = f.collaboration.ChangeRole(ctx, f.folder.ID, u2.ID, models.RoleAdmin, f.owner.ID)
	require.NoError(t, err)

	// Once admin, u2 may manage the public link
	unpublished, err := f.service.Unpublish(ctx, f.folder.ID, u2.ID)
	require.NoError(t, err)
	assert.False(t, unpublished.IsPublished)
}
