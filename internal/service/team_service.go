package service

import (
	"context"
	"crypto/rand"
	"math/big"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/gutoberny/BernyFlow/internal/dto"
	"github.com/gutoberny/BernyFlow/internal/model"
	"github.com/gutoberny/BernyFlow/internal/repository"
	"github.com/gutoberny/BernyFlow/internal/worker"
)

type TeamService interface {
	Invite(ctx context.Context, companyID uuid.UUID, req dto.InviteUserRequest) (*dto.InviteUserResponse, error)
	List(ctx context.Context, companyID uuid.UUID) ([]model.User, error)
}

type teamService struct {
	users      repository.UserRepository
	companies  repository.CompanyRepository
	plans      PlanService
	dispatcher *worker.Dispatcher
}

func NewTeamService(users repository.UserRepository, companies repository.CompanyRepository, plans PlanService, dispatcher *worker.Dispatcher) TeamService {
	return &teamService{users: users, companies: companies, plans: plans, dispatcher: dispatcher}
}

// Invite creates a team member with a generated temporary password. The
// password is returned exactly once in the response; a welcome email goes
// out asynchronously and its failure never blocks the invite.
func (s *teamService) Invite(ctx context.Context, companyID uuid.UUID, req dto.InviteUserRequest) (*dto.InviteUserResponse, error) {
	if err := s.plans.CheckUserLimit(ctx, companyID); err != nil {
		return nil, err
	}
	if _, err := s.users.FindByEmail(ctx, req.Email); err == nil {
		return nil, ErrEmailTaken
	}

	tempPassword, err := generateTempPassword(8)
	if err != nil {
		return nil, err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(tempPassword), bcryptCost)
	if err != nil {
		return nil, err
	}

	u := &model.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: string(hash),
		Role:         req.Role,
		CompanyID:    companyID,
	}
	if err := s.users.Create(ctx, u); err != nil {
		return nil, err
	}

	if s.dispatcher != nil {
		company, err := s.companies.FindByID(ctx, companyID)
		companyName := ""
		if err == nil {
			companyName = company.Name
		}
		_ = s.dispatcher.EnqueueEmail(ctx, map[string]interface{}{
			"template":      "invite",
			"to":            u.Email,
			"name":          u.Name,
			"company":       companyName,
			"temp_password": tempPassword,
		})
	}

	return &dto.InviteUserResponse{
		User:         dto.NewUserResponse(u),
		TempPassword: tempPassword,
	}, nil
}

func (s *teamService) List(ctx context.Context, companyID uuid.UUID) ([]model.User, error) {
	return s.users.ListByCompany(ctx, companyID)
}

const tempPasswordAlphabet = "0123456789abcdefghijklmnopqrstuvwxyz"

func generateTempPassword(length int) (string, error) {
	buf := make([]byte, length)
	max := big.NewInt(int64(len(tempPasswordAlphabet)))
	for i := range buf {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		buf[i] = tempPasswordAlphabet[n.Int64()]
	}
	return string(buf), nil
}
