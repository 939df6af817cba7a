package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dgrijalva/jwt-go"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"okultedarik/internal/models"
	"okultedarik/internal/repositories"
)

// AuthService handles staff authentication and token validation.
type AuthService struct {
	users      repositories.UserRepository
	schools    repositories.SchoolRepository
	audit      *AuditTrail
	log        *zap.Logger
	jwtSecret  []byte
	tokenDurat time.Duration
}

// NewAuthService creates a new AuthService.
func NewAuthService(users repositories.UserRepository, schools repositories.SchoolRepository, audit *AuditTrail, log *zap.Logger, jwtSecret string, tokenTTL time.Duration) *AuthService {
	return &AuthService{
		users:      users,
		schools:    schools,
		audit:      audit,
		log:        log,
		jwtSecret:  []byte(jwtSecret),
		tokenDurat: tokenTTL,
	}
}

// LoginResult is returned on a successful staff login.
type LoginResult struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expires_at"`
	User      *models.User `json:"user"`
}

// Login authenticates a staff account of the expected type and issues a JWT.
func (s *AuthService) Login(ctx context.Context, username, password string, expected models.ActorType) (*LoginResult, error) {
	user, err := s.users.GetByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if user.Type != expected {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	now := time.Now().UTC()
	exp := now.Add(s.tokenDurat)
	claims := jwt.MapClaims{
		"user_id":   user.ID,
		"username":  user.Username,
		"user_type": string(user.Type),
		"exp":       exp.Unix(),
		"iat":       now.Unix(),
	}
	if user.SchoolID != nil {
		claims["school_id"] = *user.SchoolID
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.jwtSecret)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	s.log.Info("staff login", zap.String("user_id", user.ID), zap.String("user_type", string(user.Type)))
	return &LoginResult{Token: token, ExpiresAt: exp, User: user}, nil
}

// ValidateToken parses and validates a JWT, returning the actor it was issued to.
func (s *AuthService) ValidateToken(tokenString string) (models.Actor, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		return models.Actor{}, fmt.Errorf("invalid token: %w", err)
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return models.Actor{}, fmt.Errorf("invalid token")
	}

	userID, _ := claims["user_id"].(string)
	userType, _ := claims["user_type"].(string)
	schoolID, _ := claims["school_id"].(string)
	actor := models.Actor{ID: userID, Type: models.ActorType(userType), SchoolID: schoolID}
	if actor.ID == "" || (actor.Type != models.ActorAdmin && actor.Type != models.ActorMudur) {
		return models.Actor{}, fmt.Errorf("invalid token: missing identity claims")
	}
	if actor.Type == models.ActorMudur && actor.SchoolID == "" {
		return models.Actor{}, fmt.Errorf("invalid token: mudur token without school")
	}
	return actor, nil
}

// CreateStaff registers a staff account with a hashed password. Mudur accounts must
// belong to an existing school.
func (s *AuthService) CreateStaff(ctx context.Context, user *models.User, actor models.Actor) error {
	switch user.Type {
	case models.ActorAdmin:
		user.SchoolID = nil
	case models.ActorMudur:
		if user.SchoolID == nil || *user.SchoolID == "" {
			return fmt.Errorf("%w: school_id is required for mudur accounts", ErrInvalidInput)
		}
		if _, err := s.schools.GetByID(ctx, *user.SchoolID); err != nil {
			return err
		}
	default:
		return fmt.Errorf("%w: unsupported account type %q", ErrInvalidInput, user.Type)
	}
	if len(user.Password) < 6 {
		return fmt.Errorf("%w: password must be at least 6 characters", ErrInvalidInput)
	}

	if existing, err := s.users.GetByUsername(ctx, user.Username); err == nil && existing != nil {
		return fmt.Errorf("%w: username '%s' already taken", ErrInvalidInput, user.Username)
	} else if err != nil && !errors.Is(err, repositories.ErrNotFound) {
		return err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(user.Password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	user.Password = string(hashed)
	if err := s.users.Create(ctx, user); err != nil {
		return err
	}

	details := map[string]any{"username": user.Username, "type": user.Type}
	if user.SchoolID != nil {
		details["schoolId"] = *user.SchoolID
	}
	s.audit.Record(ctx, actor, models.AuditCreate, models.EntityUser, user.ID, details)
	return nil
}

// ListStaff returns the accounts of one type.
func (s *AuthService) ListStaff(ctx context.Context, userType models.ActorType) ([]models.User, error) {
	return s.users.ListByType(ctx, userType)
}

// EnsureAdmin creates the bootstrap admin account when no admin exists yet.
// It reports whether an account was created.
func (s *AuthService) EnsureAdmin(ctx context.Context, username, password string) (bool, error) {
	if username == "" || password == "" {
		return false, nil
	}
	count, err := s.users.CountByType(ctx, models.ActorAdmin)
	if err != nil {
		return false, err
	}
	if count > 0 {
		return false, nil
	}
	admin := &models.User{Username: username, FullName: "Administrator", Password: password, Type: models.ActorAdmin}
	system := models.Actor{ID: "system", Type: models.ActorAdmin}
	if err := s.CreateStaff(ctx, admin, system); err != nil {
		return false, err
	}
	s.log.Info("bootstrap admin created", zap.String("username", username))
	return true, nil
}
