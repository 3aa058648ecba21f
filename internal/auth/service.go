package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/sharath018/potluck-rsvp-backend/config"
	"github.com/sharath018/potluck-rsvp-backend/internal/auditlog"
	"github.com/sharath018/potluck-rsvp-backend/utils"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInactive           = errors.New("your account is inactive")
	ErrInvalidToken       = errors.New("invalid refresh token")
	ErrWeakPassword       = errors.New("password must have at least 8 characters")
)

const minPasswordLength = 8

type Service interface {
	Login(input LoginInput, ip string) (*TokenPair, *User, error)
	Refresh(refreshToken string) (string, error)
	GetUserByID(userID uint) (User, error)
	ChangePassword(userID uint, current, next string, ip string) error
	SeedAdmin(email, password, fullName string) error
}

type service struct {
	repo          Repository
	auditSvc      auditlog.Service
	accessSecret  string
	refreshSecret string
	accessTTL     time.Duration
	refreshTTL    time.Duration
	now           func() time.Time
}

func NewService(r Repository, cfg *config.Config, auditSvc auditlog.Service) Service {
	return &service{
		repo:          r,
		auditSvc:      auditSvc,
		accessSecret:  cfg.JWTAccessSecret,
		refreshSecret: cfg.JWTRefreshSecret,
		accessTTL:     time.Duration(cfg.JWTAccessTTLHours) * time.Hour,
		refreshTTL:    time.Duration(cfg.JWTRefreshTTLHours) * time.Hour,
		now:           time.Now,
	}
}

func (s *service) logAuth(userID *uint, action, email, ip, status string) {
	if s.auditSvc == nil {
		return
	}
	_ = s.auditSvc.LogAction(context.Background(), auditlog.Actor{UserID: userID, IP: ip}, "", action,
		map[string]interface{}{"email": email}, status)
}

// =============================
// Login
// =============================

func (s *service) Login(in LoginInput, ip string) (*TokenPair, *User, error) {
	user, err := s.repo.FindByEmail(in.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			s.logAuth(nil, "LOGIN_FAILED", in.Email, ip, auditlog.StatusFailure)
			return nil, nil, ErrInvalidCredentials
		}
		return nil, nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		s.logAuth(&user.ID, "LOGIN_FAILED", in.Email, ip, auditlog.StatusFailure)
		return nil, nil, ErrInvalidCredentials
	}

	if user.Status != StatusActive {
		s.logAuth(&user.ID, "LOGIN_FAILED", in.Email, ip, auditlog.StatusFailure)
		return nil, nil, ErrInactive
	}

	accessToken, err := s.generateAccessToken(user)
	if err != nil {
		return nil, nil, err
	}
	refreshToken, err := s.generateRefreshToken(user)
	if err != nil {
		return nil, nil, err
	}

	if err := s.repo.TouchLastLogin(user.ID, s.now()); err != nil {
		utils.Log.Warn("could not store last login", zap.Uint("user_id", user.ID), zap.Error(err))
	}
	s.logAuth(&user.ID, "LOGIN_SUCCESS", user.Email, ip, auditlog.StatusSuccess)

	return &TokenPair{AccessToken: accessToken, RefreshToken: refreshToken}, user, nil
}

func (s *service) generateAccessToken(user *User) (string, error) {
	claims := jwt.MapClaims{
		"user_id": user.ID,
		"email":   user.Email,
		"exp":     s.now().Add(s.accessTTL).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.accessSecret))
}

func (s *service) generateRefreshToken(user *User) (string, error) {
	claims := jwt.MapClaims{
		"user_id": user.ID,
		"exp":     s.now().Add(s.refreshTTL).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.refreshSecret))
}

// =============================
// Refresh
// =============================

func (s *service) Refresh(refreshToken string) (string, error) {
	token, err := jwt.Parse(refreshToken, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return []byte(s.refreshSecret), nil
	})
	if err != nil || !token.Valid {
		return "", ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", ErrInvalidToken
	}
	userIDFloat, ok := claims["user_id"].(float64)
	if !ok {
		return "", ErrInvalidToken
	}

	user, err := s.repo.FindByID(uint(userIDFloat))
	if err != nil {
		return "", errors.New("user not found")
	}
	if user.Status != StatusActive {
		return "", ErrInactive
	}

	return s.generateAccessToken(&user)
}

func (s *service) GetUserByID(userID uint) (User, error) {
	return s.repo.FindByID(userID)
}

// =============================
// Password
// =============================

func (s *service) ChangePassword(userID uint, current, next string, ip string) error {
	user, err := s.repo.FindByID(userID)
	if err != nil {
		return errors.New("user not found")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(current)); err != nil {
		s.logAuth(&user.ID, "PASSWORD_CHANGED", user.Email, ip, auditlog.StatusFailure)
		return ErrInvalidCredentials
	}
	if len(next) < minPasswordLength {
		return ErrWeakPassword
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(next), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	if err := s.repo.UpdatePasswordHash(user.ID, string(hash)); err != nil {
		return err
	}
	s.logAuth(&user.ID, "PASSWORD_CHANGED", user.Email, ip, auditlog.StatusSuccess)
	return nil
}

// SeedAdmin creates the organizer account from configuration if it does not exist yet.
// An existing account is left untouched so a changed password survives restarts.
func (s *service) SeedAdmin(email, password, fullName string) error {
	if email == "" || password == "" {
		utils.Log.Warn("ADMIN_EMAIL or ADMIN_PASSWORD not set, no admin account seeded")
		return nil
	}

	if _, err := s.repo.FindByEmail(email); err == nil {
		return nil
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	if len(password) < minPasswordLength {
		return ErrWeakPassword
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	if err := s.repo.Create(&User{
		FullName:     fullName,
		Email:        email,
		PasswordHash: string(hash),
		Status:       StatusActive,
	}); err != nil {
		return err
	}
	utils.Log.Info("admin account seeded", zap.String("email", email))
	return nil
}
