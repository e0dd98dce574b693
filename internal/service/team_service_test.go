package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/gutoberny/BernyFlow/internal/dto"
	"github.com/gutoberny/BernyFlow/internal/model"
	"github.com/gutoberny/BernyFlow/internal/service"
)

func newTeamEnv(t *testing.T, plan model.Plan) (service.TeamService, *stubUserRepo, *model.Company) {
	t.Helper()
	users := newStubUserRepo()
	companies := newStubCompanyRepo()
	company := &model.Company{Name: "Oficina", Plan: plan}
	require.NoError(t, companies.CreateTx(nil, company))

	// Every company has at least its owner.
	require.NoError(t, users.Create(context.Background(), &model.User{
		Name: "Dona", Email: "dona@example.com", Role: model.RoleOwner, CompanyID: company.ID,
	}))

	plans := service.NewPlanService(companies, newStubClientRepo(), newStubOrderRepo(), users)
	return service.NewTeamService(users, companies, plans, nil), users, company
}

func TestTeamInvite(t *testing.T) {
	svc, users, company := newTeamEnv(t, model.PlanPro)

	resp, err := svc.Invite(context.Background(), company.ID, dto.InviteUserRequest{
		Name:  "Mecanico",
		Email: "mecanico@example.com",
		Role:  model.RoleUser,
	})
	require.NoError(t, err)

	assert.Equal(t, model.RoleUser, resp.User.Role)
	assert.Equal(t, company.ID, resp.User.CompanyID)
	assert.Len(t, resp.TempPassword, 8)

	// The stored hash matches the one-time password returned to the caller.
	u, err := users.FindByEmail(context.Background(), "mecanico@example.com")
	require.NoError(t, err)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(resp.TempPassword)))
}

func TestTeamInviteDuplicateEmail(t *testing.T) {
	svc, _, company := newTeamEnv(t, model.PlanPro)

	_, err := svc.Invite(context.Background(), company.ID, dto.InviteUserRequest{
		Name:  "Clone",
		Email: "dona@example.com",
		Role:  model.RoleAdmin,
	})
	assert.ErrorIs(t, err, service.ErrEmailTaken)
}

func TestTeamInviteFreePlanBlocked(t *testing.T) {
	// FREE allows a single user, and the owner already occupies that slot.
	svc, _, company := newTeamEnv(t, model.PlanFree)

	_, err := svc.Invite(context.Background(), company.ID, dto.InviteUserRequest{
		Name:  "Segundo",
		Email: "segundo@example.com",
		Role:  model.RoleUser,
	})
	var limitErr *service.PlanLimitError
	require.ErrorAs(t, err, &limitErr)
	assert.Equal(t, "usuarios", limitErr.Resource)
}

func TestTeamList(t *testing.T) {
	svc, _, company := newTeamEnv(t, model.PlanPro)

	_, err := svc.Invite(context.Background(), company.ID, dto.InviteUserRequest{
		Name:  "Mecanico",
		Email: "mecanico@example.com",
		Role:  model.RoleUser,
	})
	require.NoError(t, err)

	members, err := svc.List(context.Background(), company.ID)
	require.NoError(t, err)
	assert.Len(t, members, 2)
}
