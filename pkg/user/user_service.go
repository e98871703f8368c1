package user

import (
	"context"
	"errors"
	"strings"
	"time"

	"wejv/domain"
	"wejv/entities"
	"wejv/pkg/jwt"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type (
	UserService interface {
		Register(ctx context.Context, req domain.RegisterRequest) (domain.UserResponse, error)
		Login(ctx context.Context, req domain.LoginRequest) (domain.LoginResponse, error)
		Me(ctx context.Context, userID uint) (domain.UserResponse, error)
	}

	userService struct {
		userRepository UserRepository
		jwtService     jwt.JWTService
		validator      *validator.Validate
		log            *zap.Logger
	}
)

func NewUserService(userRepository UserRepository, jwtService jwt.JWTService, validator *validator.Validate, log *zap.Logger) UserService {
	return &userService{
		userRepository: userRepository,
		jwtService:     jwtService,
		validator:      validator,
		log:            log,
	}
}

func toUserResponse(user *entities.User, authorID uint) domain.UserResponse {
	return domain.UserResponse{
		ID:        user.ID,
		Name:      user.Name,
		Email:     user.Email,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Role:      user.Role,
		AuthorID:  authorID,
		LastLogin: user.LastLogin,
	}
}

func (s *userService) Register(ctx context.Context, req domain.RegisterRequest) (domain.UserResponse, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))

	if err := s.validator.Struct(req); err != nil {
		return domain.UserResponse{}, domain.NewValidationError(domain.MessageFailedRegister, err)
	}

	taken, err := s.userRepository.ExistsByNameOrEmail(ctx, req.Name, req.Email)
	if err != nil {
		s.log.Error("check user exists", zap.Error(err), zap.String("name", req.Name))
		return domain.UserResponse{}, domain.NewPersistenceError(domain.MessageFailedRegister, err)
	}
	if taken {
		return domain.UserResponse{}, domain.NewConflictError(domain.MessageUserTaken, domain.ErrUserTaken)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return domain.UserResponse{}, domain.NewValidationError(domain.MessageFailedRegister, err)
	}

	user := &entities.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: string(hash),
		FirstName:    strings.TrimSpace(req.FirstName),
		LastName:     strings.TrimSpace(req.LastName),
		Role:         domain.RoleUser,
	}

	authorID, err := s.userRepository.CreateWithAuthor(ctx, user)
	if err != nil {
		if errors.Is(err, domain.ErrAuthorClaimed) {
			return domain.UserResponse{}, domain.NewConflictError(domain.MessageAuthorTaken, err)
		}
		s.log.Error("register user", zap.Error(err), zap.String("name", req.Name))
		return domain.UserResponse{}, domain.NewPersistenceError(domain.MessageFailedRegister, err)
	}

	s.log.Info("user registered", zap.Uint("user_id", user.ID), zap.Uint("author_id", authorID))
	return toUserResponse(user, authorID), nil
}

func (s *userService) Login(ctx context.Context, req domain.LoginRequest) (domain.LoginResponse, error) {
	req.Login = strings.TrimSpace(req.Login)

	if err := s.validator.Struct(req); err != nil {
		return domain.LoginResponse{}, domain.NewValidationError(domain.MessageFailedLogin, err)
	}

	login := req.Login
	if strings.Contains(login, "@") {
		login = strings.ToLower(login)
	}

	user, err := s.userRepository.FindByLogin(ctx, login)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return domain.LoginResponse{}, domain.NewUnauthorizedError(domain.MessageInvalidCredentials)
		}
		s.log.Error("find user for login", zap.Error(err))
		return domain.LoginResponse{}, domain.NewPersistenceError(domain.MessageFailedLogin, err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return domain.LoginResponse{}, domain.NewUnauthorizedError(domain.MessageInvalidCredentials)
	}

	now := time.Now().UTC()
	if err := s.userRepository.TouchLastLogin(ctx, user.ID, now); err != nil {
		s.log.Error("stamp last login", zap.Error(err), zap.Uint("user_id", user.ID))
		return domain.LoginResponse{}, domain.NewPersistenceError(domain.MessageFailedLogin, err)
	}
	user.LastLogin = &now

	token, err := s.jwtService.GenerateTokenUser(user.ID, user.Role)
	if err != nil {
		s.log.Error("sign token", zap.Error(err), zap.Uint("user_id", user.ID))
		return domain.LoginResponse{}, domain.NewPersistenceError(domain.MessageFailedLogin, err)
	}

	authorID, _, err := s.userRepository.AuthorIDForUser(ctx, user.ID)
	if err != nil {
		s.log.Error("lookup author for login", zap.Error(err), zap.Uint("user_id", user.ID))
		return domain.LoginResponse{}, domain.NewPersistenceError(domain.MessageFailedLogin, err)
	}

	return domain.LoginResponse{
		Token: token,
		User:  toUserResponse(user, authorID),
	}, nil
}

func (s *userService) Me(ctx context.Context, userID uint) (domain.UserResponse, error) {
	user, err := s.userRepository.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return domain.UserResponse{}, domain.NewNotFoundError(domain.MessageFailedGetUser)
		}
		s.log.Error("get user", zap.Error(err), zap.Uint("user_id", userID))
		return domain.UserResponse{}, domain.NewPersistenceError(domain.MessageFailedGetUser, err)
	}

	authorID, _, err := s.userRepository.AuthorIDForUser(ctx, userID)
	if err != nil {
		s.log.Error("get user author", zap.Error(err), zap.Uint("user_id", userID))
		return domain.UserResponse{}, domain.NewPersistenceError(domain.MessageFailedGetUser, err)
	}

	return toUserResponse(user, authorID), nil
}
