package services

import (
	"context"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"skylane/concourse/internal/auth"
	"skylane/concourse/internal/common"
	"skylane/concourse/internal/constants"
	"skylane/concourse/internal/db/repositories"
	"skylane/concourse/internal/logging"
	"skylane/concourse/internal/models/dtos"
	gormModels "skylane/concourse/internal/models/gorm"
)

const tokenTTL = 24 * time.Hour

// UserService covers registration and login. New accounts are customers;
// staff roles are provisioned by seeding or an admin.
type UserService struct {
	users     *repositories.UserRepository
	jwtSecret string
}

func NewUserService(users *repositories.UserRepository, jwtSecret string) *UserService {
	return &UserService{users: users, jwtSecret: jwtSecret}
}

func (s *UserService) Register(ctx context.Context, req dtos.RegisterRequest) (*dtos.AuthResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, common.NewError(constants.KindInvalidArgument, "a valid email is required")
	}
	if len(req.Password) < 8 {
		return nil, common.NewError(constants.KindInvalidArgument, "password must be at least 8 characters")
	}

	existing, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, common.NewError(constants.KindConflict, "email %s is already registered", email)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, common.WrapError(constants.KindInternal, err, "password hashing failed")
	}

	user := &gormModels.User{
		Email:        email,
		PasswordHash: string(hash),
		FullName:     strings.TrimSpace(req.FullName),
		Role:         constants.RoleCustomer,
		IsActive:     true,
	}
	if req.Phone != "" {
		phone := req.Phone
		user.Phone = &phone
	}
	if err := s.users.Insert(ctx, user); err != nil {
		return nil, err
	}

	logging.Info("User registered", "user_id", user.ID, "email", email)
	return s.issueToken(user)
}

func (s *UserService) Login(ctx context.Context, req dtos.LoginRequest) (*dtos.AuthResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil || !user.IsActive {
		return nil, common.NewError(constants.KindForbidden, "invalid credentials")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, common.NewError(constants.KindForbidden, "invalid credentials")
	}

	return s.issueToken(user)
}

func (s *UserService) issueToken(user *gormModels.User) (*dtos.AuthResponse, error) {
	token, err := auth.NewToken(s.jwtSecret, user.ID, user.Email, user.Role, user.AirlineCode, tokenTTL)
	if err != nil {
		return nil, common.WrapError(constants.KindInternal, err, "token signing failed")
	}
	return &dtos.AuthResponse{
		Token: token,
		Email: user.Email,
		Role:  user.Role.String(),
	}, nil
}
