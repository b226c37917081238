package postgres

import (
	"context"

	"github.com/hongminglow/invoice-dashboard/internal/models"
)

// FindUserByEmail fetches a user by email address.
func (s *Store) FindUserByEmail(ctx context.Context, email string) (models.User, error) {
	const query = `
		SELECT id, name, email, password
		FROM users
		WHERE email = $1;`
	var user models.User
	if err := s.pool.QueryRow(ctx, query, email).Scan(&user.ID, &user.Name, &user.Email, &user.Password); err != nil {
		return models.User{}, translate(err)
	}
	return user, nil
}
