package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"grestaurants/entity"
	"grestaurants/utils"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// ErrInvalidCredentials is returned by Login for an unknown user or a wrong password.
var ErrInvalidCredentials = errors.New("invalid credentials")

// AuthService handles register/login business logic
type AuthService struct {
	userRepo  UserStore
	jwtSecret string
	jwtTTL    time.Duration
}

func NewAuthService(repo UserStore, secret string, ttl time.Duration) *AuthService {
	return &AuthService{
		userRepo:  repo,
		jwtSecret: secret,
		jwtTTL:    ttl,
	}
}

// Register creates a user; a taken username is a ValidationError.
func (s *AuthService) Register(ctx context.Context, username, password, firstName, lastName string) (*entity.User, error) {
	username = strings.ToLower(strings.TrimSpace(username))
	if username == "" || password == "" {
		return nil, Validation("username and password are required")
	}

	count, err := s.userRepo.CountByUsername(ctx, username)
	if err != nil {
		return nil, Persistence(err)
	}
	if count > 0 {
		return nil, Validation("username already registered")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &entity.User{
		Username:  username,
		Password:  string(hashed),
		FirstName: strings.TrimSpace(firstName),
		LastName:  strings.TrimSpace(lastName),
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		// a concurrent register can pass the count and still lose on the unique index
		if s.usernameTaken(ctx, username, err) {
			return nil, Validation("username already registered")
		}
		return nil, Persistence(err)
	}
	return user, nil
}

func (s *AuthService) usernameTaken(ctx context.Context, username string, createErr error) bool {
	if errors.Is(createErr, gorm.ErrDuplicatedKey) {
		return true
	}
	n, err := s.userRepo.CountByUsername(ctx, username)
	return err == nil && n > 0
}

// Login checks the password and issues a JWT
func (s *AuthService) Login(ctx context.Context, username, password string) (string, *entity.User, error) {
	username = strings.ToLower(strings.TrimSpace(username))
	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		if isMissing(err) {
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, Persistence(err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", nil, ErrInvalidCredentials
	}

	token, err := utils.GenerateToken(user.ID, s.jwtSecret, s.jwtTTL)
	if err != nil {
		return "", nil, errors.New("cannot generate token")
	}
	return token, user, nil
}

func (s *AuthService) GetProfile(ctx context.Context, userID uint) (*entity.User, error) {
	u, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, storeErr(err, "user", userID)
	}
	return u, nil
}
