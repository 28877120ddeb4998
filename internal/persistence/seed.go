package persistence

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/helpdesk-labs/ticket-api/internal/domain"
	"github.com/helpdesk-labs/ticket-api/internal/repository"
)

// SeedAccount is a bootstrap user with a plaintext password.
type SeedAccount struct {
	Username string      `yaml:"username"`
	Password string      `yaml:"password"`
	Role     domain.Role `yaml:"role"`
}

type seedFile struct {
	Users []SeedAccount `yaml:"users"`
}

// PasswordHasher hashes plaintext passwords.
type PasswordHasher interface {
	Hash(password string) (string, error)
}

// DefaultSeedAccounts returns the built-in admin and user accounts.
func DefaultSeedAccounts() []SeedAccount {
	return []SeedAccount{
		{Username: "admin", Password: "admin123", Role: domain.RoleAdmin},
		{Username: "user", Password: "user123", Role: domain.RoleUser},
	}
}

// LoadSeedAccounts reads accounts from a YAML file of the form
//
//	users:
//	  - username: admin
//	    password: admin123
//	    role: admin
//
// An empty path returns DefaultSeedAccounts.
func LoadSeedAccounts(path string) ([]SeedAccount, error) {
	if path == "" {
		return DefaultSeedAccounts(), nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed file: %w", err)
	}
	return ParseSeedAccounts(raw)
}

// ParseSeedAccounts decodes and validates YAML seed data.
func ParseSeedAccounts(raw []byte) ([]SeedAccount, error) {
	var file seedFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("parse seed file: %w", err)
	}
	if len(file.Users) == 0 {
		return nil, errors.New("seed file lists no users")
	}
	seen := make(map[string]struct{}, len(file.Users))
	for i, account := range file.Users {
		account.Username = strings.TrimSpace(account.Username)
		if account.Username == "" || account.Password == "" {
			return nil, fmt.Errorf("seed user %d: username and password required", i)
		}
		if !account.Role.Valid() {
			return nil, fmt.Errorf("seed user %q: invalid role %q", account.Username, account.Role)
		}
		if _, dup := seen[account.Username]; dup {
			return nil, fmt.Errorf("seed user %q listed twice", account.Username)
		}
		seen[account.Username] = struct{}{}
		file.Users[i] = account
	}
	return file.Users, nil
}

// SeedUsers inserts accounts when the users table is empty. It returns the
// number of users created.
func SeedUsers(ctx context.Context, users repository.UserRepository, hasher PasswordHasher, accounts []SeedAccount, logger *zap.Logger) (int, error) {
	count, err := users.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("count users: %w", err)
	}
	if count > 0 {
		logger.Debug("users present; skipping seed", zap.Int64("count", count))
		return 0, nil
	}

	created := 0
	for _, account := range accounts {
		hash, err := hasher.Hash(account.Password)
		if err != nil {
			return created, fmt.Errorf("hash password for %q: %w", account.Username, err)
		}
		user := &domain.User{
			ID:           uuid.NewString(),
			Username:     account.Username,
			PasswordHash: hash,
			Role:         account.Role,
		}
		if err := users.Create(ctx, user); err != nil {
			if errors.Is(err, repository.ErrConflict) {
				continue
			}
			return created, fmt.Errorf("create user %q: %w", account.Username, err)
		}
		created++
		logger.Info("seeded user", zap.String("username", user.Username), zap.String("role", string(user.Role)))
	}
	return created, nil
}
