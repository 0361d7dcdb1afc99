package services

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/tsuiketsu/tsuika-api-sub000/internal/apperrors"
	"github.com/tsuiketsu/tsuika-api-sub000/internal/dto"
	"github.com/tsuiketsu/tsuika-api-sub000/internal/events"
	"github.com/tsuiketsu/tsuika-api-sub000/internal/kafka"
	"github.com/tsuiketsu/tsuika-api-sub000/internal/models"
	"github.com/tsuiketsu/tsuika-api-sub000/internal/policy"
	"github.com/tsuiketsu/tsuika-api-sub000/internal/repositories"
	"github.com/tsuiketsu/tsuika-api-sub000/internal/secrets"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ShareLinkService manages the publish / unpublish / lock / unlock lifecycle
// of a folder's public link and the anonymous read path.
type ShareLinkService struct {
	gate     *AccessService
	links    repositories.ShareLinkRepository
	folders  repositories.FolderRepository
	users    IdentityResolver
	hasher   *secrets.Hasher
	producer *kafka.Producer
}

func NewShareLinkService(
	gate *AccessService,
	links repositories.ShareLinkRepository,
	folders repositories.FolderRepository,
	users IdentityResolver,
	hasher *secrets.Hasher,
	producer *kafka.Producer,
) *ShareLinkService {
	return &ShareLinkService{
		gate:     gate,
		links:    links,
		folders:  folders,
		users:    users,
		hasher:   hasher,
		producer: producer,
	}
}

// newShareToken generates the opaque identifier used in shareable URLs.
func newShareToken() (string, error) {
	buf := make([]byte, 24)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}

// Publish creates or updates the folder's share link. The token is generated
// once on first publish and never rotates; republishing clears the
// unpublished stamp while keeping lock state and view count.
func (s *ShareLinkService) Publish(ctx context.Context, folderID uuid.UUID, req dto.PublishShareLinkReq, actingUserID uuid.UUID) (*models.ShareLink, error) {
	folder, err := s.gate.Authorize(actingUserID, folderID, policy.ManagePublicLink)
	if err != nil {
		return nil, err
	}

	link, err := s.links.FindByFolder(folderID)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("find share link: %w", err)
		}
		token, err := newShareToken()
		if err != nil {
			log.Printf("Failed to generate share token: %v", err)
			return nil, apperrors.Internal("failed to create share link")
		}
		link = &models.ShareLink{
			ID:       uuid.New(),
			FolderID: folderID,
			Token:    token,
		}
		link.Title = req.Title
		link.Note = req.Note
		link.ExpiresAt = req.ExpiresAt
		link.IsPublished = req.IsPublic
		if !req.IsPublic {
			now := time.Now()
			link.UnpublishedAt = &now
		}
		if err := s.links.Create(link); err != nil {
			log.Printf("Failed to create share link: %v", err)
			return nil, apperrors.Internal("failed to create share link")
		}
		s.publishEvent(ctx, eventTypeFor(req.IsPublic), link, folder, actingUserID)
		return link, nil
	}

	link.Title = req.Title
	link.Note = req.Note
	link.ExpiresAt = req.ExpiresAt
	link.IsPublished = req.IsPublic
	if req.IsPublic {
		link.UnpublishedAt = nil
	} else {
		now := time.Now()
		link.UnpublishedAt = &now
	}
	if err := s.links.Update(link); err != nil {
		log.Printf("Failed to update share link: %v", err)
		return nil, apperrors.Internal("failed to update share link")
	}

	s.publishEvent(ctx, eventTypeFor(req.IsPublic), link, folder, actingUserID)
	return link, nil
}

func eventTypeFor(isPublic bool) string {
	if isPublic {
		return events.LinkPublished
	}
	return events.LinkUnpublished
}

// Unpublish takes the link offline and stamps when. Lock state and the
// cumulative view count survive for a later republish.
func (s *ShareLinkService) Unpublish(ctx context.Context, folderID, actingUserID uuid.UUID) (*models.ShareLink, error) {
	folder, err := s.gate.Authorize(actingUserID, folderID, policy.ManagePublicLink)
	if err != nil {
		return nil, err
	}

	link, err := s.links.FindByFolder(folderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("folder has no share link")
		}
		return nil, fmt.Errorf("find share link: %w", err)
	}

	now := time.Now()
	link.IsPublished = false
	link.UnpublishedAt = &now
	if err := s.links.Update(link); err != nil {
		log.Printf("Failed to unpublish share link: %v", err)
		return nil, apperrors.Internal("failed to unpublish share link")
	}

	s.publishEvent(ctx, events.LinkUnpublished, link, folder, actingUserID)
	return link, nil
}

// Lock sets a password gate on an already-created link. Locking before the
// first publish is rejected: there is nothing to lock yet.
func (s *ShareLinkService) Lock(ctx context.Context, folderID uuid.UUID, plaintext string, actingUserID uuid.UUID) error {
	folder, err := s.gate.Authorize(actingUserID, folderID, policy.ManagePublicLink)
	if err != nil {
		return err
	}

	if plaintext == "" {
		return apperrors.RequiredField("password is required")
	}

	link, err := s.links.FindByFolder(folderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.RequiredField("folder has no share link to lock; publish it first")
		}
		return fmt.Errorf("find share link: %w", err)
	}

	digest, salt, err := s.hasher.Hash(plaintext)
	if err != nil {
		log.Printf("Failed to hash share link password: %v", err)
		return apperrors.Internal("failed to lock share link")
	}

	link.PasswordDigest = digest
	link.PasswordSalt = salt
	if err := s.links.Update(link); err != nil {
		log.Printf("Failed to lock share link: %v", err)
		return apperrors.Internal("failed to lock share link")
	}

	s.publishEvent(ctx, events.LinkLocked, link, folder, actingUserID)
	return nil
}

// Unlock clears the password gate.
func (s *ShareLinkService) Unlock(ctx context.Context, folderID, actingUserID uuid.UUID) error {
	folder, err := s.gate.Authorize(actingUserID, folderID, policy.ManagePublicLink)
	if err != nil {
		return err
	}

	link, err := s.links.FindByFolder(folderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.NotFound("folder has no share link")
		}
		return fmt.Errorf("find share link: %w", err)
	}

	link.PasswordDigest = nil
	link.PasswordSalt = nil
	if err := s.links.Update(link); err != nil {
		log.Printf("Failed to unlock share link: %v", err)
		return apperrors.Internal("failed to unlock share link")
	}

	s.publishEvent(ctx, events.LinkUnlocked, link, folder, actingUserID)
	return nil
}

// ResolveForVisitor is the anonymous read path. It never consults the role
// table; the token plus the link's published / expiry / lock state decide.
func (s *ShareLinkService) ResolveForVisitor(ctx context.Context, token, suppliedPassword string) (*dto.PublicFolderView, error) {
	link, err := s.links.FindByToken(token)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("share link not found")
		}
		return nil, fmt.Errorf("find share link: %w", err)
	}

	if !link.IsPublished {
		return nil, apperrors.Forbidden("this share link is not published")
	}
	if link.Expired(time.Now()) {
		return nil, apperrors.Forbidden("this share link has expired")
	}

	if link.Locked() {
		if suppliedPassword == "" {
			return nil, apperrors.RequiredField("this share link requires a password")
		}
		ok, err := s.hasher.Verify(suppliedPassword, link.PasswordDigest, link.PasswordSalt)
		if err != nil {
			log.Printf("Failed to verify share link password: %v", err)
			return nil, apperrors.Internal("failed to verify password")
		}
		if !ok {
			return nil, apperrors.Unauthorized("incorrect password")
		}
	}

	// View accounting is a single atomic UPDATE; a failure under-counts but
	// never blocks the read or double counts.
	if err := s.links.RecordView(link.ID, time.Now()); err != nil {
		log.Printf("Failed to record share link view: %v", err)
	} else {
		link.ViewCount++
	}

	return s.buildPublicView(ctx, link)
}

func (s *ShareLinkService) buildPublicView(ctx context.Context, link *models.ShareLink) (*dto.PublicFolderView, error) {
	folder, err := s.folders.FindByID(link.FolderID)
	if err != nil {
		log.Printf("Failed to load folder %s for share link: %v", link.FolderID, err)
		return nil, apperrors.Internal("failed to load shared folder")
	}

	bookmarks, err := s.folders.ListBookmarks(link.FolderID)
	if err != nil {
		log.Printf("Failed to load bookmarks for folder %s: %v", link.FolderID, err)
		return nil, apperrors.Internal("failed to load shared folder")
	}

	view := &dto.PublicFolderView{
		Name:        folder.Name,
		Description: folder.Description,
		Title:       link.Title,
		Note:        link.Note,
		ViewCount:   link.ViewCount,
		Bookmarks:   make([]dto.PublicBookmark, 0, len(bookmarks)),
	}
	for _, b := range bookmarks {
		view.Bookmarks = append(view.Bookmarks, dto.PublicBookmark{
			Title:       b.Title,
			URL:         b.URL,
			Description: b.Description,
		})
	}

	owner, err := s.users.GetByID(ctx, folder.OwnerID)
	if err != nil {
		log.Printf("Failed to fetch owner profile for folder %s: %v", link.FolderID, err)
	}
	if owner != nil {
		view.Owner = dto.PublicOwner{
			Username:     owner.Username,
			DisplayImage: owner.DisplayImage,
		}
	}

	return view, nil
}

func (s *ShareLinkService) publishEvent(ctx context.Context, eventType string, link *models.ShareLink, folder *models.Folder, actingUserID uuid.UUID) {
	if s.producer == nil {
		return
	}
	event := events.NewShareEvent(eventType, link.FolderID, folder.OwnerID, actingUserID)
	event.Token = &link.Token
	if err := s.producer.PublishShareEvent(ctx, event); err != nil {
		log.Printf("Failed to publish %s event: %v", eventType, err)
	}
}
