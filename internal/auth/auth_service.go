package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	autherrors "go-digistore-api/internal/auth/errors"
	"go-digistore-api/internal/pkg/logger"
	"go-digistore-api/internal/shared/database/dbgen"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const (
	RoleCustomer = "CUSTOMER"

	defaultAccessTTL  = 15 * time.Minute
	defaultRefreshTTL = 7 * 24 * time.Hour

	refreshTokenType  = "refresh"
	pqUniqueViolation = "23505"
)

//go:generate mockgen -source=auth_service.go -destination=../mock/auth/auth_service_mock.go -package=mock
type Service interface {
	Login(ctx context.Context, email, password string) (TokenPair, AuthResponse, error)
	RefreshToken(ctx context.Context, refreshToken string) (TokenPair, AuthResponse, error)
	GetMe(ctx context.Context, userID string) (AuthResponse, error)
	Register(ctx context.Context, req RegisterRequest) (AuthResponse, error)
}

type Deps struct {
	Repo       Repository
	Secret     string
	Logger     *zap.Logger
	Now        func() time.Time
	AccessTTL  time.Duration
	RefreshTTL time.Duration
}

type service struct {
	repo       Repository
	secret     []byte
	logger     *zap.Logger
	now        func() time.Time
	accessTTL  time.Duration
	refreshTTL time.Duration
}

func NewService(deps Deps) Service {
	if deps.Repo == nil {
		panic("auth repository cannot be nil")
	}
	if deps.Secret == "" {
		panic("jwt secret cannot be empty")
	}
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	if deps.Now == nil {
		deps.Now = time.Now
	}
	if deps.AccessTTL <= 0 {
		deps.AccessTTL = defaultAccessTTL
	}
	if deps.RefreshTTL <= 0 {
		deps.RefreshTTL = defaultRefreshTTL
	}

	return &service{
		repo:       deps.Repo,
		secret:     []byte(deps.Secret),
		logger:     deps.Logger,
		now:        deps.Now,
		accessTTL:  deps.AccessTTL,
		refreshTTL: deps.RefreshTTL,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func toResponse(u dbgen.User) AuthResponse {
	return AuthResponse{
		ID:    u.ID.String(),
		Email: u.Email,
		Name:  u.Name,
		Role:  u.Role,
	}
}

func (s *service) Login(ctx context.Context, email, password string) (TokenPair, AuthResponse, error) {
	email = normalizeEmail(email)

	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		s.logger.Warn("login failed: unknown email",
			zap.String("email", logger.MaskEmail(email)),
			logger.SecurityEvent(),
		)
		return TokenPair{}, AuthResponse{}, autherrors.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		s.logger.Warn("login failed: wrong password",
			zap.String("user_id", user.ID.String()),
			logger.SecurityEvent(),
		)
		return TokenPair{}, AuthResponse{}, autherrors.ErrInvalidCredentials
	}

	pair, err := s.issueTokens(user)
	if err != nil {
		return TokenPair{}, AuthResponse{}, err
	}

	s.logger.Info("login success", zap.String("user_id", user.ID.String()), zap.String("role", user.Role))
	return pair, toResponse(user), nil
}

func (s *service) RefreshToken(ctx context.Context, refreshToken string) (TokenPair, AuthResponse, error) {
	if refreshToken == "" {
		return TokenPair{}, AuthResponse{}, autherrors.ErrRefreshTokenRequired
	}

	token, err := jwt.Parse(refreshToken, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, autherrors.ErrInvalidToken
		}
		return s.secret, nil
	}, jwt.WithTimeFunc(s.now))
	if err != nil || !token.Valid {
		return TokenPair{}, AuthResponse{}, autherrors.ErrInvalidRefreshToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return TokenPair{}, AuthResponse{}, autherrors.ErrInvalidToken
	}
	if typ, _ := claims["typ"].(string); typ != refreshTokenType {
		return TokenPair{}, AuthResponse{}, autherrors.ErrInvalidRefreshToken
	}

	userIDStr, _ := claims["user_id"].(string)
	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		return TokenPair{}, AuthResponse{}, autherrors.ErrInvalidUserID
	}

	// role diambil ulang dari DB, jadi perubahan role langsung berlaku saat refresh
	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return TokenPair{}, AuthResponse{}, autherrors.ErrUserNotFound
	}

	pair, err := s.issueTokens(user)
	if err != nil {
		return TokenPair{}, AuthResponse{}, err
	}
	return pair, toResponse(user), nil
}

func (s *service) GetMe(ctx context.Context, userID string) (AuthResponse, error) {
	id, err := uuid.Parse(userID)
	if err != nil {
		return AuthResponse{}, autherrors.ErrInvalidUserID
	}

	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return AuthResponse{}, autherrors.ErrUserNotFound
	}
	return toResponse(u), nil
}

func (s *service) Register(ctx context.Context, req RegisterRequest) (AuthResponse, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return AuthResponse{}, autherrors.ErrRegisterFailed.Wrap(err)
	}

	fullName := strings.TrimSpace(req.FirstName + " " + req.LastName)

	user, err := s.repo.Create(ctx, dbgen.CreateUserParams{
		Email:    normalizeEmail(req.Email),
		Name:     fullName,
		Password: string(hashed),
		Role:     RoleCustomer,
	})
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == pqUniqueViolation {
			return AuthResponse{}, autherrors.ErrEmailAlreadyRegistered
		}
		s.logger.Error("failed to create user", zap.Error(err))
		return AuthResponse{}, autherrors.ErrRegisterFailed.Wrap(err)
	}

	s.logger.Info("user registered", zap.String("user_id", user.ID.String()))
	return toResponse(user), nil
}

func (s *service) issueTokens(user dbgen.User) (TokenPair, error) {
	access, err := s.generateToken(user.ID.String(), user.Role, "", s.accessTTL)
	if err != nil {
		return TokenPair{}, autherrors.ErrTokenGenerationFailed.Wrap(err)
	}
	refresh, err := s.generateToken(user.ID.String(), user.Role, refreshTokenType, s.refreshTTL)
	if err != nil {
		return TokenPair{}, autherrors.ErrTokenGenerationFailed.Wrap(err)
	}
	return TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

// reusable token generator
func (s *service) generateToken(userID, role, typ string, expiry time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"user_id": userID,
		"role":    role,
		"exp":     s.now().Add(expiry).Unix(),
	}
	if typ != "" {
		claims["typ"] = typ
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}
