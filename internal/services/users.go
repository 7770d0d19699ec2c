package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/shivaycb/recommendations-system-for-fooddel/internal/database"
)

// UserService manages User nodes.
type UserService struct {
	client *database.Client
	log    *zap.SugaredLogger
}

// NewUserService creates a new user service.
func NewUserService(client *database.Client, log *zap.SugaredLogger) *UserService {
	return &UserService{client: client, log: log}
}

// CreateUser creates a User node. A duplicate id fails the statement against
// the user_key constraint; nothing is merged silently.
func (s *UserService) CreateUser(ctx context.Context, userID string) error {
	query := `
		CREATE (u:User {id: $userId})
	`
	if err := s.client.ExecuteWrite(ctx, query, map[string]any{"userId": userID}); err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}

	s.log.Infow("user created", "user_id", userID)
	return nil
}
