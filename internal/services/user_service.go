package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/machinebox/graphql"
)

// UserProfile is the public projection of an account held by the external
// user service.
type UserProfile struct {
	ID           uuid.UUID `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	DisplayImage string    `json:"displayImage"`
}

// IdentityResolver resolves accounts in the external user service. A nil
// profile with a nil error means the account does not exist.
type IdentityResolver interface {
	FindByIdentifier(ctx context.Context, identifier string) (*UserProfile, error)
	GetByID(ctx context.Context, userID uuid.UUID) (*UserProfile, error)
}

// UserService handles communication with the user service over GraphQL.
type UserService struct {
	client  *graphql.Client
	baseURL string
}

// NewUserService creates a new user service client.
func NewUserService(baseURL string) *UserService {
	return &UserService{
		client:  graphql.NewClient(baseURL),
		baseURL: baseURL,
	}
}

type userQueryResponse struct {
	User struct {
		UserID       string `json:"userId"`
		Username     string `json:"username"`
		Email        string `json:"email"`
		DisplayImage string `json:"displayImage"`
	} `json:"user"`
}

// FindByIdentifier looks up a user by username or email.
func (s *UserService) FindByIdentifier(ctx context.Context, identifier string) (*UserProfile, error) {
	req := graphql.NewRequest(`
        query FindUser($identifier: String!) {
            user(identifier: $identifier) {
                userId
                username
                email
                displayImage
            }
        }
    `)
	req.Var("identifier", identifier)
	return s.run(ctx, req)
}

// GetByID fetches a user by their ID.
func (s *UserService) GetByID(ctx context.Context, userID uuid.UUID) (*UserProfile, error) {
	req := graphql.NewRequest(`
        query GetUser($userId: ID!) {
            user(userId: $userId) {
                userId
                username
                email
                displayImage
            }
        }
    `)
	req.Var("userId", userID.String())
	return s.run(ctx, req)
}

func (s *UserService) run(ctx context.Context, req *graphql.Request) (*UserProfile, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var response userQueryResponse
	if err := s.client.Run(ctx, req, &response); err != nil {
		log.Printf("GraphQL request to %s failed: %v", s.baseURL, err)
		return nil, fmt.Errorf("failed to fetch user: %w", err)
	}

	if response.User.UserID == "" {
		return nil, nil
	}

	id, err := uuid.Parse(response.User.UserID)
	if err != nil {
		return nil, fmt.Errorf("user service returned invalid id %q: %w", response.User.UserID, err)
	}

	return &UserProfile{
		ID:           id,
		Username:     response.User.Username,
		Email:        response.User.Email,
		DisplayImage: response.User.DisplayImage,
	}, nil
}
