package user

import (
	"context"
	"os"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type seedAccount struct {
	id        string
	name      string
	email     string
	role      string
	avatarURL string
	passEnv   string
	passDflt  string
}

var seedAccounts = []seedAccount{
	{
		id:        "1",
		name:      "Sehajdeep",
		email:     "sehajdeep@unicube.com",
		role:      RoleAdmin,
		avatarURL: "https://picsum.photos/seed/avatar1/100/100",
		passEnv:   "SEED_ADMIN_PASSWORD",
		passDflt:  "admin123",
	},
	{
		id:        "2",
		name:      "Naitik Beri",
		email:     "naitik@unicube.com",
		role:      RoleEmployee,
		avatarURL: "https://picsum.photos/seed/avatar2/100/100",
		passEnv:   "SEED_EMPLOYEE_PASSWORD",
		passDflt:  "user123",
	},
	{
		id:        "3",
		name:      "Arjun Sharma",
		email:     "arjun@unicube.com",
		role:      RoleEmployee,
		avatarURL: "https://picsum.photos/seed/avatar3/100/100",
		passEnv:   "SEED_EMPLOYEE_PASSWORD",
		passDflt:  "user123",
	},
}

// Seed writes the office's accounts into the users collection on first
// boot. An already-populated directory is left untouched so password
// changes survive restarts.
func Seed(ctx context.Context, repo Repository, logger *zap.Logger) error {
	existing, err := repo.FindAll(ctx)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return nil
	}

	users := make([]User, 0, len(seedAccounts))
	for _, acc := range seedAccounts {
		password := os.Getenv(acc.passEnv)
		if password == "" {
			password = acc.passDflt
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		users = append(users, User{
			ID:           acc.id,
			Name:         acc.name,
			Email:        acc.email,
			Role:         acc.role,
			AvatarURL:    acc.avatarURL,
			PasswordHash: string(hash),
		})
	}

	if err := repo.ReplaceAll(ctx, users); err != nil {
		return err
	}
	logger.Info("user directory seeded", zap.Int("count", len(users)))
	return nil
}
