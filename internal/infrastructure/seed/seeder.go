package seed

import (
	"context"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"orbit/internal/domain/user"
	"orbit/internal/infrastructure/auth"
	"orbit/internal/shared/authorization"
	"orbit/internal/shared/logger"
)

// SeedUser is one entry in a seed file.
type SeedUser struct {
	Name     string `yaml:"name"`
	Email    string `yaml:"email"`
	Password string `yaml:"password"`
	Role     string `yaml:"role"`
}

type seedFile struct {
	Users []SeedUser `yaml:"users"`
}

// Seeder creates initial users so a fresh database has someone able to
// approve each workflow step.
type Seeder struct {
	userRepo user.UserRepository
	hasher   *auth.BcryptPasswordHasher
	logger   logger.Interface
}

func NewSeeder(userRepo user.UserRepository, hasher *auth.BcryptPasswordHasher, log logger.Interface) *Seeder {
	return &Seeder{
		userRepo: userRepo,
		hasher:   hasher,
		logger:   log,
	}
}

// SeedFromFile loads users from a YAML file and creates any that do not
// exist yet. Existing emails are skipped, so seeding is idempotent.
func (s *Seeder) SeedFromFile(ctx context.Context, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read seed file: %w", err)
	}

	var file seedFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("failed to parse seed file: %w", err)
	}

	return s.seed(ctx, file.Users)
}

// SeedDefaults creates one user per role with a shared development
// password. Not for production databases.
func (s *Seeder) SeedDefaults(ctx context.Context) error {
	users := make([]SeedUser, 0, len(authorization.AllRoles()))
	for _, role := range authorization.AllRoles() {
		users = append(users, SeedUser{
			Name:     string(role),
			Email:    fmt.Sprintf("%s@orbit.local", role),
			Password: "orbit-dev-password",
			Role:     string(role),
		})
	}
	return s.seed(ctx, users)
}

func (s *Seeder) seed(ctx context.Context, users []SeedUser) error {
	for _, su := range users {
		if _, err := s.userRepo.GetByEmail(ctx, su.Email); err == nil {
			s.logger.Debugw("seed user already exists", "email", su.Email)
			continue
		}

		hash, err := s.hasher.Hash(su.Password)
		if err != nil {
			return fmt.Errorf("failed to hash password for %s: %w", su.Email, err)
		}

		role := authorization.ParseUserRole(su.Role)
		u, err := user.NewUser(su.Name, su.Email, hash, role)
		if err != nil {
			return fmt.Errorf("invalid seed user %s: %w", su.Email, err)
		}

		if err := s.userRepo.Save(ctx, u); err != nil {
			return fmt.Errorf("failed to save seed user %s: %w", su.Email, err)
		}

		s.logger.Infow("seed user created", "email", su.Email, "role", string(role))
	}
	return nil
}
