package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/examhive/examhive/config"
	"github.com/examhive/examhive/internal/apperr"
	"github.com/examhive/examhive/internal/clock"
	"github.com/examhive/examhive/internal/dto"
	"github.com/examhive/examhive/internal/repository"
	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Identity is the explicit request identity handed to every handler.
// Nothing downstream reads ambient state; services receive the student id
// and role as plain arguments.
type Identity struct {
	UserID uint
	Role   string
}

type AuthService interface {
	Login(req dto.LoginDTO) (*dto.LoginResponseDTO, error)
	VerifyToken(token string) (*Identity, error)
}

type authClaims struct {
	UserID uint   `json:"uid"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

type authService struct {
	userRepo repository.UserRepository
	secret   []byte
	ttl      time.Duration
	clock    clock.Clock
}

func NewAuthService(userRepo repository.UserRepository, cfg *config.Config, clk clock.Clock) AuthService {
	return &authService{
		userRepo: userRepo,
		secret:   []byte(cfg.JWT.Secret),
		ttl:      time.Duration(cfg.JWT.TTLHours) * time.Hour,
		clock:    clk,
	}
}

func (s *authService) Login(req dto.LoginDTO) (*dto.LoginResponseDTO, error) {
	user, err := s.userRepo.FindByEmail(req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.New(apperr.KindUnauthorized, "incorrect email or password")
		}
		log.Error().Err(err).Msg("Login: failed to load user")
		return nil, fmt.Errorf("error fetching user: %w", err)
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		return nil, apperr.New(apperr.KindUnauthorized, "incorrect email or password")
	}

	now := s.clock.Now()
	claims := authClaims{
		UserID: user.ID,
		Role:   user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		log.Error().Err(err).Uint("userID", user.ID).Msg("Login: failed to sign token")
		return nil, fmt.Errorf("error signing token: %w", err)
	}

	return &dto.LoginResponseDTO{Token: token, Name: user.Name, Role: user.Role}, nil
}

func (s *authService) VerifyToken(token string) (*Identity, error) {
	var claims authClaims
	parsed, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !parsed.Valid {
		return nil, apperr.New(apperr.KindUnauthorized, "invalid or expired token")
	}

	// The user must still exist; tokens outlive account deletion otherwise.
	if _, err := s.userRepo.FindByID(claims.UserID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.New(apperr.KindUnauthorized, "user no longer exists")
		}
		return nil, fmt.Errorf("error verifying user: %w", err)
	}

	return &Identity{UserID: claims.UserID, Role: claims.Role}, nil
}
