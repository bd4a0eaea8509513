package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
)

const sqlGetUserByID = `
SELECT id, email, grants, created_at, updated_at
FROM users
WHERE id = $1
`

// GetUserByID retrieves a user and their account grants
func (s *Store) GetUserByID(ctx context.Context, userID uuid.UUID) (User, error) {
	var user User
	err := s.db.GetContext(ctx, &user, sqlGetUserByID, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return User{}, ErrNotFound
		}
		s.logger.Error(ctx, "failed to get user by id", err)
		return User{}, fmt.Errorf("failed to get user by id: %w", err)
	}
	return user, nil
}
