package service

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/gutoberny/BernyFlow/internal/dto"
	"github.com/gutoberny/BernyFlow/internal/model"
	"github.com/gutoberny/BernyFlow/internal/repository"
)

const bcryptCost = 12

type AuthService interface {
	Register(ctx context.Context, req dto.RegisterRequest) (*dto.AuthResponse, error)
	Login(ctx context.Context, req dto.LoginRequest) (*dto.AuthResponse, error)
	Me(ctx context.Context, companyID, userID uuid.UUID) (*model.User, error)
	UpdateProfile(ctx context.Context, companyID, userID uuid.UUID, req dto.UpdateProfileRequest) (*model.User, error)
	ChangePassword(ctx context.Context, companyID, userID uuid.UUID, req dto.ChangePasswordRequest) error
}

type authService struct {
	users     repository.UserRepository
	companies repository.CompanyRepository
	jwtSecret string
	jwtTTL    time.Duration
}

func NewAuthService(users repository.UserRepository, companies repository.CompanyRepository, jwtSecret string, jwtTTLHours int) AuthService {
	return &authService{
		users:     users,
		companies: companies,
		jwtSecret: jwtSecret,
		jwtTTL:    time.Duration(jwtTTLHours) * time.Hour,
	}
}

// Register creates the company and its OWNER account atomically. A failure
// on either insert rolls both back, so there is never an orphan company.
func (s *authService) Register(ctx context.Context, req dto.RegisterRequest) (*dto.AuthResponse, error) {
	if _, err := s.users.FindByEmail(ctx, req.Email); err == nil {
		return nil, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcryptCost)
	if err != nil {
		return nil, err
	}

	company := model.Company{Name: req.CompanyName, Plan: model.PlanFree}
	user := model.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: string(hash),
		Role:         model.RoleOwner,
	}

	txErr := runTx(ctx, s.companies.DB(), func(tx *gorm.DB) error {
		if err := s.companies.CreateTx(tx, &company); err != nil {
			return err
		}
		user.CompanyID = company.ID
		return s.users.CreateTx(tx, &user)
	})
	if txErr != nil {
		return nil, txErr
	}

	return s.buildAuthResponse(&user)
}

func (s *authService) Login(ctx context.Context, req dto.LoginRequest) (*dto.AuthResponse, error) {
	user, err := s.users.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		return nil, ErrInvalidCredentials
	}
	return s.buildAuthResponse(user)
}

func (s *authService) Me(ctx context.Context, companyID, userID uuid.UUID) (*model.User, error) {
	u, err := s.users.FindByID(ctx, companyID, userID)
	if err != nil {
		return nil, asNotFound(err)
	}
	return u, nil
}

func (s *authService) UpdateProfile(ctx context.Context, companyID, userID uuid.UUID, req dto.UpdateProfileRequest) (*model.User, error) {
	u, err := s.users.FindByID(ctx, companyID, userID)
	if err != nil {
		return nil, asNotFound(err)
	}
	if req.Email != nil && *req.Email != u.Email {
		if _, err := s.users.FindByEmail(ctx, *req.Email); err == nil {
			return nil, ErrEmailTaken
		}
		u.Email = *req.Email
	}
	if req.Name != nil {
		u.Name = *req.Name
	}
	if err := s.users.Update(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *authService) ChangePassword(ctx context.Context, companyID, userID uuid.UUID, req dto.ChangePasswordRequest) error {
	u, err := s.users.FindByID(ctx, companyID, userID)
	if err != nil {
		return asNotFound(err)
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.CurrentPassword)) != nil {
		return ErrInvalidCredentials
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcryptCost)
	if err != nil {
		return err
	}
	u.PasswordHash = string(hash)
	return s.users.Update(ctx, u)
}

func (s *authService) buildAuthResponse(u *model.User) (*dto.AuthResponse, error) {
	token, err := s.generateToken(u)
	if err != nil {
		return nil, err
	}
	return &dto.AuthResponse{Token: token, User: dto.NewUserResponse(u)}, nil
}

func (s *authService) generateToken(u *model.User) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"user_id":    u.ID.String(),
		"company_id": u.CompanyID.String(),
		"role":       string(u.Role),
		"iat":        now.Unix(),
		"exp":        now.Add(s.jwtTTL).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.jwtSecret))
}
