package database_test

import (
	"context"
	"errors"
	"testing"

	"zelux-backend/config"
	"zelux-backend/internal/domain/user"
	"zelux-backend/internal/testutil"
	"zelux-backend/pkg/database"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockProvisioner struct {
	mock.Mock
}

func (m *MockProvisioner) ProvisionAdmin(ctx context.Context, email, fullName, password string) (user.User, bool, error) {
	args := m.Called(ctx, email, fullName, password)
	return args.Get(0).(user.User), args.Bool(1), args.Error(2)
}

func TestSeed(t *testing.T) {
	ctx := context.Background()
	cfg := database.SeedConfig{AdminEmail: "admin@zelux.it", AdminFullName: "Admin", AdminPassword: "pw"}
	admin := user.User{Email: "admin@zelux.it", IsAdmin: true}

	p := new(MockProvisioner)
	p.On("ProvisionAdmin", ctx, "admin@zelux.it", "Admin", "pw").Return(admin, true, nil).Once()
	p.On("ProvisionAdmin", ctx, "admin@zelux.it", "Admin", "pw").Return(admin, false, nil).Once()

	res, err := database.Seed(ctx, p, cfg)
	require.NoError(t, err)
	assert.True(t, res.Created)
	assert.Equal(t, admin, res.Admin)

	res, err = database.Seed(ctx, p, cfg)
	require.NoError(t, err)
	assert.False(t, res.Created)

	p.AssertExpectations(t)
}

func TestSeed_Errors(t *testing.T) {
	ctx := context.Background()

	_, err := database.Seed(ctx, new(MockProvisioner), database.SeedConfig{AdminEmail: "admin@zelux.it"})
	assert.Error(t, err)

	p := new(MockProvisioner)
	p.On("ProvisionAdmin", ctx, "admin@zelux.it", "", "pw").Return(user.User{}, false, errors.New("db down"))
	_, err = database.Seed(ctx, p, database.SeedConfig{AdminEmail: "admin@zelux.it", AdminPassword: "pw"})
	assert.ErrorContains(t, err, "db down")
}

func TestDSN(t *testing.T) {
	cfg := &config.Config{DBHost: "db", DBUser: "u", DBPassword: "p", DBName: "zelux", DBPort: "5432", DBSSLMode: "require"}
	assert.Equal(t, "host=db user=u password=p dbname=zelux port=5432 sslmode=require TimeZone=UTC", database.DSN(cfg))
}

func TestHealthCheck(t *testing.T) {
	db := testutil.NewSQLiteDB(t)
	require.NoError(t, database.HealthCheck(context.Background(), db))

	require.NoError(t, database.Close(db))
	assert.Error(t, database.HealthCheck(context.Background(), db))
}
