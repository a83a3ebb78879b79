package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/trackmasterhq/trackmaster-backend/internal/config"
	"github.com/trackmasterhq/trackmaster-backend/internal/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var (
	ErrEmailTaken  = errors.New("a user with this email already exists")
	ErrInvalidRole = errors.New("unknown role")
)

type UserService struct {
	db *gorm.DB
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{db: db}
}

type CreateUserInput struct {
	FullName string
	Email    string
	Password string
	Role     models.Role
	Modules  []string
}

// CreateUser registers a staff account. Admin-only at the route level.
func (s *UserService) CreateUser(in CreateUserInput) (*models.User, error) {
	if in.Email == "" || in.Password == "" || in.FullName == "" {
		return nil, errors.New("full name, email and password are required")
	}
	if !in.Role.Valid() {
		return nil, ErrInvalidRole
	}

	var existing models.User
	if err := s.db.Where("email = ?", in.Email).First(&existing).Error; err == nil {
		return nil, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	modules := in.Modules
	if modules == nil {
		modules = []string{}
	}
	modulesJSON, err := json.Marshal(modules)
	if err != nil {
		return nil, fmt.Errorf("failed to encode modules: %w", err)
	}

	user := models.User{
		ID:                uuid.New(),
		FullName:          in.FullName,
		Email:             in.Email,
		Password:          string(hash),
		Role:              in.Role,
		AccessibleModules: datatypes.JSON(modulesJSON),
	}

	if err := s.db.Create(&user).Error; err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return &user, nil
}

func (s *UserService) ListUsers() ([]models.User, error) {
	var users []models.User
	err := s.db.Order("created_at ASC").Find(&users).Error
	return users, err
}

func (s *UserService) GetUser(id uuid.UUID) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, "id = ?", id).Error; err != nil {
		return nil, ErrUserNotFound
	}
	return &user, nil
}

// EnsureSeedAdmin upserts the default admin account so a fresh deployment
// has a working login. No-op when SEED_ADMIN_PASSWORD is unset.
func (s *UserService) EnsureSeedAdmin(cfg *config.Config) error {
	if cfg.SeedAdminPassword == "" {
		return nil
	}

	var existing models.User
	err := s.db.Where("email = ?", cfg.SeedAdminEmail).First(&existing).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	_, err = s.CreateUser(CreateUserInput{
		FullName: cfg.SeedAdminName,
		Email:    cfg.SeedAdminEmail,
		Password: cfg.SeedAdminPassword,
		Role:     models.RoleAdmin,
	})
	if err != nil {
		return err
	}
	slog.Info("seed admin created", "email", cfg.SeedAdminEmail)
	return nil
}
