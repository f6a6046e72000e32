package auth

import (
	"fmt"
	"log"

	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
	gormadapter "github.com/casbin/gorm-adapter/v3"
	"gorm.io/gorm"

	"github.com/HariStrange/drive-Vault/domain"
)

// DefaultModel is used when no model file is configured
const DefaultModel = `
[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act

[role_definition]
g = _, _

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = g(r.sub, p.sub) && keyMatch2(r.obj, p.obj) && regexMatch(r.act, p.act)
`

// DefaultPolicies grants every signed-in role the self-service routes and
// keeps the admin surface to role_admin
var DefaultPolicies = [][]string{
	{"role_user", "/users/me", "GET"},
	{"role_user", "/passport", "POST"},
	{"role_user", "/passport/me", "(GET|PUT)"},
	{"role_user", "/question-sets", "(GET|POST)"},
	{"role_user", "/question-sets/:id", "DELETE"},
	{"role_user", "/questions", "POST"},
	{"role_user", "/questions/:setId", "GET"},
	{"role_user", "/options", "POST"},
	{"role_user", "/quizz/set", "POST"},
	{"role_user", "/quizz/question", "POST"},
	{"role_user", "/quizz/question/:id/options", "POST"},
	{"role_user", "/quizz/assign-set", "POST"},
	{"role_user", "/quizz/set/:id/questions", "GET"},
	{"role_user", "/quizz/set/:id/score", "POST"},
	{"role_admin", "/auth/admin/*", "POST"},
	{"role_admin", "/users/admin/*", "GET"},
	{"role_admin", "/passport/all", "GET"},
	{"role_admin", "/passport/:id", "DELETE"},
	{"role_admin", "/admin/*", "(GET|POST|PUT|DELETE)"},
}

// DefaultGroupings makes every role inherit role_user
var DefaultGroupings = [][]string{
	{"role_" + domain.RoleDriver, "role_user"},
	{"role_" + domain.RoleWelder, "role_user"},
	{"role_" + domain.RoleStudent, "role_user"},
	{"role_" + domain.RoleAdmin, "role_user"},
}

type CasbinService struct{ E *casbin.Enforcer }

func NewCasbinService(db *gorm.DB, modelPath string) (*CasbinService, error) {
	adp, err := gormadapter.NewAdapterByDB(db)
	if err != nil {
		return nil, err
	}
	m, err := loadModel(modelPath)
	if err != nil {
		return nil, err
	}
	E, err := casbin.NewEnforcer(m, adp)
	if err != nil {
		return nil, err
	}
	if err := E.LoadPolicy(); err != nil {
		return nil, err
	}
	return &CasbinService{E}, nil
}

func loadModel(path string) (model.Model, error) {
	if path == "" {
		return model.NewModelFromString(DefaultModel)
	}
	return model.NewModelFromFile(path)
}

// SeedDefaults installs the default policies when the policy table is empty
func SeedDefaults(e *casbin.Enforcer) error {
	policies, err := e.GetPolicy()
	if err != nil {
		return err
	}
	if len(policies) > 0 {
		return nil
	}

	if _, err := e.AddPolicies(DefaultPolicies); err != nil {
		return fmt.Errorf("seed policies: %w", err)
	}
	if _, err := e.AddGroupingPolicies(DefaultGroupings); err != nil {
		return fmt.Errorf("seed role groupings: %w", err)
	}
	log.Printf("casbin: seeded %d default policies", len(DefaultPolicies))
	return nil
}
