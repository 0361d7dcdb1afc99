package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/tsuiketsu/tsuika-api-sub000/internal/models"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const cacheTTL = 24 * time.Hour

type Service struct {
	client *redis.Client
}

// NewService creates a new Redis service. Returns nil when the connection
// cannot be established; callers treat a nil service as "no cache".
func NewService(addr, password string, db int) *Service {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := client.Ping(ctx).Result(); err != nil {
		log.Printf("Failed to connect to Redis: %v", err)
		return nil
	}

	log.Println("Successfully connected to Redis")
	return &Service{client: client}
}

// Folder ACL Cache Methods

func aclKey(folderID uuid.UUID) string {
	return fmt.Sprintf("folder:%s:acl", folderID.String())
}

// SetFolderACL caches the full collaborator role map for a folder.
func (s *Service) SetFolderACL(ctx context.Context, folderID uuid.UUID, acl map[string]string) error {
	data, err := json.Marshal(acl)
	if err != nil {
		return err
	}
	if err := s.client.Set(ctx, aclKey(folderID), data, cacheTTL).Err(); err != nil {
		log.Printf("Failed to cache ACL for folder %s: %v", folderID, err)
		return err
	}
	return nil
}

// GetFolderACL retrieves the cached collaborator role map. A nil map with a
// nil error is a cache miss.
func (s *Service) GetFolderACL(ctx context.Context, folderID uuid.UUID) (map[string]string, error) {
	data, err := s.client.Get(ctx, aclKey(folderID)).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, err
	}

	var acl map[string]string
	if err := json.Unmarshal([]byte(data), &acl); err != nil {
		return nil, err
	}
	return acl, nil
}

// AddFolderAccess records one collaborator's role in the cached ACL.
func (s *Service) AddFolderAccess(ctx context.Context, folderID, userID uuid.UUID, role string) error {
	acl, err := s.GetFolderACL(ctx, folderID)
	if err != nil {
		return err
	}
	if acl == nil {
		acl = make(map[string]string)
	}
	acl[userID.String()] = role
	return s.SetFolderACL(ctx, folderID, acl)
}

// RemoveFolderAccess drops one collaborator from the cached ACL.
func (s *Service) RemoveFolderAccess(ctx context.Context, folderID, userID uuid.UUID) error {
	acl, err := s.GetFolderACL(ctx, folderID)
	if err != nil || acl == nil {
		return err
	}
	delete(acl, userID.String())
	return s.SetFolderACL(ctx, folderID, acl)
}

// Folder Metadata Cache Methods

func metadataKey(folderID uuid.UUID) string {
	return fmt.Sprintf("folder:%s", folderID.String())
}

// SetFolderMetadata caches folder metadata.
func (s *Service) SetFolderMetadata(ctx context.Context, folder *models.Folder) error {
	data, err := json.Marshal(folder)
	if err != nil {
		return err
	}
	if err := s.client.Set(ctx, metadataKey(folder.ID), data, cacheTTL).Err(); err != nil {
		log.Printf("Failed to cache folder metadata for %s: %v", folder.ID, err)
		return err
	}
	return nil
}

// GetFolderMetadata retrieves folder metadata from cache. Nil folder with
// nil error is a cache miss.
func (s *Service) GetFolderMetadata(ctx context.Context, folderID uuid.UUID) (*models.Folder, error) {
	data, err := s.client.Get(ctx, metadataKey(folderID)).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, err
	}

	var folder models.Folder
	if err := json.Unmarshal([]byte(data), &folder); err != nil {
		return nil, err
	}
	return &folder, nil
}

// InvalidateFolderMetadata removes folder metadata from cache.
func (s *Service) InvalidateFolderMetadata(ctx context.Context, folderID uuid.UUID) error {
	return s.client.Del(ctx, metadataKey(folderID)).Err()
}

// InvalidateFolderACL removes the cached ACL for a folder.
func (s *Service) InvalidateFolderACL(ctx context.Context, folderID uuid.UUID) error {
	return s.client.Del(ctx, aclKey(folderID)).Err()
}

// Close closes the underlying client.
func (s *Service) Close() error {
	return s.client.Close()
}
