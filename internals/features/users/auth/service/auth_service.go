// file: internals/features/users/auth/service/auth_service.go
package service

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"praktikum_backend/internals/configs"
	authModel "praktikum_backend/internals/features/users/auth/model"
	userModel "praktikum_backend/internals/features/users/user/model"
)

/* ==========================
   Const & Types
========================== */

const (
	accessTTLDefault  = 24 * time.Hour
	refreshTTLDefault = 7 * 24 * time.Hour
)

var (
	ErrEmailTaken         = errors.New("email sudah terdaftar")
	ErrInvalidCredentials = errors.New("email atau password salah")
	ErrUserInactive       = errors.New("akun dinonaktifkan")
)

type AuthService struct {
	DB *gorm.DB
}

func NewAuthService(db *gorm.DB) *AuthService {
	return &AuthService{DB: db}
}

type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

/* ==========================
   Register / Login
========================== */

func (s *AuthService) Register(ctx context.Context, name, email, password, role string) (*userModel.UserModel, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	var count int64
	if err := s.DB.WithContext(ctx).Model(&userModel.UserModel{}).
		Where("user_email = ?", email).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrEmailTaken
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	u := &userModel.UserModel{
		UserName:     strings.TrimSpace(name),
		UserEmail:    email,
		UserPassword: string(hashed),
		UserRole:     role,
		UserIsActive: true,
	}
	u.SetDefaultValues()

	if err := s.DB.WithContext(ctx).Create(u).Error; err != nil {
		return nil, err
	}
	log.Printf("[AUTH] register user_id=%s email=%s role=%s", u.UserID, u.UserEmail, u.UserRole)
	return u, nil
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*userModel.UserModel, *TokenPair, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	var u userModel.UserModel
	if err := s.DB.WithContext(ctx).Where("user_email = ?", email).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrInvalidCredentials
		}
		return nil, nil, err
	}
	if !u.UserIsActive {
		return nil, nil, ErrUserInactive
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.UserPassword), []byte(password)); err != nil {
		return nil, nil, ErrInvalidCredentials
	}

	pair, err := s.issueTokens(&u)
	if err != nil {
		return nil, nil, err
	}
	return &u, pair, nil
}

/* ==========================
   Token issue / refresh / revoke
========================== */

func (s *AuthService) issueTokens(u *userModel.UserModel) (*TokenPair, error) {
	access, err := signToken(u, configs.JWTSecret, accessTTLDefault)
	if err != nil {
		return nil, err
	}
	refresh, err := signToken(u, configs.JWTRefreshSecret, refreshTTLDefault)
	if err != nil {
		return nil, err
	}
	return &TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

func signToken(u *userModel.UserModel, secret string, ttl time.Duration) (string, error) {
	if secret == "" {
		return "", errors.New("JWT secret belum diset")
	}
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":       u.UserID.String(),
		"user_name": u.UserName,
		"role":      u.UserRole,
		"iat":       now.Unix(),
		"exp":       now.Add(ttl).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

// Refresh tukar refresh token valid dengan pasangan token baru
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*TokenPair, error) {
	claims := jwt.MapClaims{}
	if _, err := jwt.ParseWithClaims(refreshToken, claims, func(t *jwt.Token) (interface{}, error) {
		return []byte(configs.JWTRefreshSecret), nil
	}); err != nil {
		return nil, ErrInvalidCredentials
	}

	sub, _ := claims["sub"].(string)
	uid, err := uuid.Parse(sub)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	var u userModel.UserModel
	if err := s.DB.WithContext(ctx).First(&u, "user_id = ?", uid).Error; err != nil {
		return nil, ErrInvalidCredentials
	}
	if !u.UserIsActive {
		return nil, ErrUserInactive
	}
	return s.issueTokens(&u)
}

// Logout masukkan access token ke blacklist sampai exp-nya lewat
func (s *AuthService) Logout(ctx context.Context, token string) error {
	claims := jwt.MapClaims{}
	parser := jwt.Parser{SkipClaimsValidation: true}
	if _, err := parser.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		return []byte(configs.JWTSecret), nil
	}); err != nil {
		return ErrInvalidCredentials
	}

	exp := time.Now().Add(accessTTLDefault)
	if expFloat, ok := claims["exp"].(float64); ok {
		exp = time.Unix(int64(expFloat), 0)
	}

	return s.DB.WithContext(ctx).Create(&authModel.TokenBlacklistModel{
		TokenBlacklistToken:     token,
		TokenBlacklistExpiredAt: exp,
	}).Error
}
