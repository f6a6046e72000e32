package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupCasbin(t *testing.T) *CasbinService {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	svc, err := NewCasbinService(db, "")
	require.NoError(t, err)
	require.NoError(t, SeedDefaults(svc.E))
	return svc
}

func TestSeedDefaults_Enforcement(t *testing.T) {
	svc := setupCasbin(t)

	tests := []struct {
		name    string
		sub     string
		obj     string
		act     string
		allowed bool
	}{
		{name: "driver reads own profile", sub: "role_driver", obj: "/users/me", act: "GET", allowed: true},
		{name: "student updates passport", sub: "role_student", obj: "/passport/me", act: "PUT", allowed: true},
		{name: "welder fetches set tree", sub: "role_welder", obj: "/quizz/set/12/questions", act: "GET", allowed: true},
		{name: "driver deletes question set", sub: "role_driver", obj: "/question-sets/3", act: "DELETE", allowed: true},
		{name: "driver cannot reset other passwords", sub: "role_driver", obj: "/auth/admin/reset-user-password", act: "POST", allowed: false},
		{name: "driver cannot list users", sub: "role_driver", obj: "/users/admin/all-users", act: "GET", allowed: false},
		{name: "driver cannot list passports", sub: "role_driver", obj: "/passport/all", act: "GET", allowed: false},
		{name: "driver cannot delete passports", sub: "role_driver", obj: "/passport/5", act: "DELETE", allowed: false},
		{name: "admin resets passwords", sub: "role_admin", obj: "/auth/admin/reset-user-password", act: "POST", allowed: true},
		{name: "admin inherits user routes", sub: "role_admin", obj: "/users/me", act: "GET", allowed: true},
		{name: "admin manages policies", sub: "role_admin", obj: "/admin/policies", act: "DELETE", allowed: true},
		{name: "unknown role denied", sub: "role_guest", obj: "/users/me", act: "GET", allowed: false},
		{name: "wrong method denied", sub: "role_driver", obj: "/users/me", act: "DELETE", allowed: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ok, err := svc.E.Enforce(tt.sub, tt.obj, tt.act)
			require.NoError(t, err)
			assert.Equal(t, tt.allowed, ok)
		})
	}
}

func TestSeedDefaults_Idempotent(t *testing.T) {
	svc := setupCasbin(t)
	before, err := svc.E.GetPolicy()
	require.NoError(t, err)

	require.NoError(t, SeedDefaults(svc.E))

	after, err := svc.E.GetPolicy()
	require.NoError(t, err)
	assert.Len(t, after, len(before))
	assert.Len(t, before, len(DefaultPolicies))
}
