package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"regexp"
	"time"

	"reviewhub/internal/config"
	"reviewhub/internal/http-api/models"
	"reviewhub/internal/http-api/permissions"
	"reviewhub/internal/http-api/repository"
	"reviewhub/internal/notify"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const confirmationCodeLength = 10

const codeAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"

// word characters plus @ . + -, anchored on both ends
var usernamePattern = regexp.MustCompile(`^[\w.@+-]+$`)

// Claims carried by every access token.
type Claims struct {
	UserID      string `json:"user_id"`
	Username    string `json:"username"`
	Role        string `json:"role"`
	IsSuperuser bool   `json:"is_superuser"`
	jwt.RegisteredClaims
}

type AuthService interface {
	// Signup registers or re-registers a (username, email) pair and sends a
	// fresh confirmation code out-of-band.
	Signup(ctx context.Context, username, email string) (*models.User, error)
	// IssueToken exchanges a confirmation code for a bearer token.
	IssueToken(ctx context.Context, username, code string) (string, error)
	ValidateToken(tokenString string) (*Claims, error)
}

type authService struct {
	userRepo       repository.UserRepository
	notifier       notify.CodeSender
	jwtSecret      string
	accessTokenTTL time.Duration
}

func NewAuthService(userRepo repository.UserRepository, notifier notify.CodeSender, cfg *config.Config) AuthService {
	return &authService{
		userRepo:       userRepo,
		notifier:       notifier,
		jwtSecret:      cfg.JWTSecret,
		accessTokenTTL: cfg.AccessTokenTTL,
	}
}

func (s *authService) Signup(ctx context.Context, username, email string) (*models.User, error) {
	if err := validateUsername(username); err != nil {
		return nil, err
	}

	code, err := generateConfirmationCode()
	if err != nil {
		return nil, fmt.Errorf("generate confirmation code: %w", err)
	}
	// only the hash is stored; the plain code leaves the process exactly once,
	// through the delivery channel
	hash, err := bcrypt.GenerateFromPassword([]byte(code), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash confirmation code: %w", err)
	}

	user, err := s.userRepo.RotateConfirmationCode(ctx, username, email, string(hash))
	if err != nil {
		if repository.IsDuplicateKey(err) {
			// username or email already bound to a different counterpart
			return nil, ErrIdentityTaken
		}
		return nil, err
	}

	if err := s.notifier.SendConfirmationCode(ctx, email, code); err != nil {
		return nil, fmt.Errorf("deliver confirmation code: %w", err)
	}

	zap.L().Info("confirmation code issued", zap.String("username", username))
	return user, nil
}

func (s *authService) IssueToken(ctx context.Context, username, code string) (string, error) {
	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		if repository.IsNotFound(err) {
			return "", ErrUnknownUsername
		}
		return "", err
	}

	if user.ConfirmationCode == "" {
		return "", ErrWrongCode
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.ConfirmationCode), []byte(code)); err != nil {
		return "", ErrWrongCode
	}

	return s.generateAccessToken(user)
}

func (s *authService) generateAccessToken(user *models.User) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID:      user.ID,
		Username:    user.Username,
		Role:        user.Role,
		IsSuperuser: user.IsSuperuser,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(s.accessTokenTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.jwtSecret))
}

func (s *authService) ValidateToken(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid signing method")
		}
		return []byte(s.jwtSecret), nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, errors.New("invalid token")
	}
	if _, ok := permissions.ParseRole(claims.Role); !ok {
		return nil, errors.New("invalid role claim")
	}
	return claims, nil
}

func validateUsername(username string) error {
	if username == "me" {
		return ErrReservedUsername
	}
	if !usernamePattern.MatchString(username) {
		return ErrInvalidUsername
	}
	return nil
}

func generateConfirmationCode() (string, error) {
	buf := make([]byte, confirmationCodeLength)
	max := big.NewInt(int64(len(codeAlphabet)))
	for i := range buf {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		buf[i] = codeAlphabet[n.Int64()]
	}
	return string(buf), nil
}
