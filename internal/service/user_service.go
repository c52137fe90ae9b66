package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"vidtube/internal/cache"
	"vidtube/internal/media"
	"vidtube/internal/middleware"
	"vidtube/internal/models"
	"vidtube/internal/repository"
	"vidtube/internal/validation"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const (
	TokenIssuer   = "vidtube-api"
	TokenAudience = "vidtube-client"
)

type UserService struct {
	userRepo  repository.UserRepository
	uploader  MediaUploader
	jwtSecret []byte
	tokenTTL  time.Duration
}

type RegisterInput struct {
	Username   string
	Email      string
	FullName   string
	Password   string
	Avatar     *media.File
	CoverImage *media.File
}

// AuthResult is returned by a successful login.
type AuthResult struct {
	Token     string       `json:"accessToken"`
	ExpiresAt time.Time    `json:"expiresAt"`
	User      *models.User `json:"user"`
}

// TokenClaims are the validated claims of an access token.
type TokenClaims struct {
	UserID    uuid.UUID
	ID        string
	ExpiresAt time.Time
}

func NewUserService(userRepo repository.UserRepository, uploader MediaUploader, jwtSecret string, tokenTTL time.Duration) *UserService {
	return &UserService{
		userRepo:  userRepo,
		uploader:  uploader,
		jwtSecret: []byte(jwtSecret),
		tokenTTL:  tokenTTL,
	}
}

func (s *UserService) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	username := strings.ToLower(strings.TrimSpace(in.Username))
	email := strings.ToLower(strings.TrimSpace(in.Email))
	fullName, err := validation.RequireField("Full name", in.FullName)
	if err != nil {
		return nil, err
	}
	if username == "" {
		return nil, models.NewMissingFieldError("Username")
	}
	if email == "" {
		return nil, models.NewMissingFieldError("Email")
	}
	if in.Password == "" {
		return nil, models.NewMissingFieldError("Password")
	}

	var details []string
	for _, err := range []error{
		validation.ValidateUsername(username),
		validation.ValidateEmail(email),
		validation.ValidatePassword(in.Password),
	} {
		if err != nil {
			details = append(details, err.Error())
		}
	}
	if len(details) > 0 {
		return nil, models.NewValidationError("Invalid registration details").WithErrors(details...)
	}

	taken, err := s.userRepo.IsTaken(ctx, username, email)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, models.NewConflictError("User with email or username already exists")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	user := &models.User{
		ID:       uuid.New(),
		Username: username,
		Email:    email,
		FullName: fullName,
		Password: string(hashed),
	}

	var uploaded []string
	if in.Avatar != nil {
		upload, err := s.uploader.UploadImage(ctx, media.KindAvatar, user.ID, in.Avatar)
		if err != nil {
			return nil, uploadError("Failed to upload avatar", err)
		}
		user.Avatar = upload.URL
		uploaded = append(uploaded, upload.Key)
	}
	if in.CoverImage != nil {
		upload, err := s.uploader.UploadImage(ctx, media.KindCover, user.ID, in.CoverImage)
		if err != nil {
			s.uploader.Remove(ctx, uploaded...)
			return nil, uploadError("Failed to upload cover image", err)
		}
		user.CoverImage = upload.URL
		uploaded = append(uploaded, upload.Key)
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		s.uploader.Remove(ctx, uploaded...)
		if repository.IsDuplicate(err) {
			// Lost a race with a concurrent registration.
			return nil, models.NewConflictError("User with email or username already exists")
		}
		return nil, err
	}
	return user, nil
}

// Login checks the credentials of a username or email and issues a token.
func (s *UserService) Login(ctx context.Context, identifier, password string) (*AuthResult, error) {
	if strings.TrimSpace(identifier) == "" {
		return nil, models.NewMissingFieldError("Username or email")
	}
	if password == "" {
		return nil, models.NewMissingFieldError("Password")
	}

	user, err := s.userRepo.GetByLogin(ctx, identifier)
	if repository.IsNotFound(err) {
		return nil, models.NewUnauthorizedError("Invalid credentials")
	}
	if err != nil {
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, models.NewUnauthorizedError("Invalid credentials")
	}

	token, expiresAt, err := s.IssueToken(user.ID)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return &AuthResult{Token: token, ExpiresAt: expiresAt, User: user}, nil
}

// IssueToken signs an HS256 access token for userID.
func (s *UserService) IssueToken(userID uuid.UUID) (string, time.Time, error) {
	if len(s.jwtSecret) == 0 {
		return "", time.Time{}, errors.New("JWT secret not configured")
	}
	now := time.Now()
	expiresAt := now.Add(s.tokenTTL)
	claims := jwt.RegisteredClaims{
		Subject:   userID.String(),
		Issuer:    TokenIssuer,
		Audience:  jwt.ClaimStrings{TokenAudience},
		ExpiresAt: jwt.NewNumericDate(expiresAt),
		IssuedAt:  jwt.NewNumericDate(now),
		NotBefore: jwt.NewNumericDate(now),
		ID:        uuid.NewString(),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.jwtSecret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

// ParseToken validates signature, issuer, audience and expiry, and rejects
// revoked tokens.
func (s *UserService) ParseToken(ctx context.Context, tokenString string) (*TokenClaims, error) {
	var claims jwt.RegisteredClaims
	_, err := jwt.ParseWithClaims(tokenString, &claims, func(*jwt.Token) (any, error) {
		return s.jwtSecret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(TokenIssuer),
		jwt.WithAudience(TokenAudience),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, models.NewUnauthorizedError("Invalid or expired token")
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil || userID == uuid.Nil {
		return nil, models.NewUnauthorizedError("Invalid subject claim")
	}

	if claims.ID != "" && s.isRevoked(ctx, claims.ID) {
		return nil, models.NewUnauthorizedError("Token has been revoked")
	}

	return &TokenClaims{UserID: userID, ID: claims.ID, ExpiresAt: claims.ExpiresAt.Time}, nil
}

func (s *UserService) isRevoked(ctx context.Context, jti string) bool {
	client := cache.GetClient()
	if client == nil {
		return false
	}
	n, err := client.Exists(ctx, cache.TokenBlacklistKey(jti)).Result()
	if err != nil {
		middleware.Logger.WarnContext(ctx, "token blacklist lookup failed", slog.String("error", err.Error()))
		return false
	}
	return n > 0
}

// Logout revokes the token id until it would have expired anyway.
func (s *UserService) Logout(ctx context.Context, claims *TokenClaims) error {
	if claims == nil || claims.ID == "" {
		return nil
	}
	client := cache.GetClient()
	if client == nil {
		middleware.Logger.WarnContext(ctx, "logout without redis; token stays valid until expiry")
		return nil
	}
	ttl := time.Until(claims.ExpiresAt)
	if ttl <= 0 {
		return nil
	}
	return client.Set(ctx, cache.TokenBlacklistKey(claims.ID), "1", ttl).Err()
}

// GetByID returns the user's account, cached briefly.
func (s *UserService) GetByID(ctx context.Context, userID uuid.UUID) (*models.User, error) {
	var user models.User
	err := cache.CacheAside(ctx, cache.UserKey(userID), &user, cache.UserTTL, func() error {
		u, err := s.userRepo.GetByID(ctx, userID)
		if err != nil {
			return err
		}
		user = *u
		return nil
	})
	if err != nil {
		return nil, lookupError(err, "User", userID)
	}
	return &user, nil
}
