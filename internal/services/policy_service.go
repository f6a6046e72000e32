package services

import (
	"fmt"
	"log"
	"strings"

	"github.com/casbin/casbin/v2"

	"github.com/HariStrange/drive-Vault/domain"
)

// rolePrefix namespaces policy subjects so roles never collide with user ids
const rolePrefix = "role_"

// CasbinEnforcerWrapper wraps the real Casbin enforcer to implement our interface
type CasbinEnforcerWrapper struct {
	enforcer *casbin.Enforcer
}

// NewCasbinEnforcerWrapper creates a wrapper for the real Casbin enforcer
func NewCasbinEnforcerWrapper(enforcer *casbin.Enforcer) domain.CasbinEnforcer {
	return &CasbinEnforcerWrapper{enforcer: enforcer}
}

func (w *CasbinEnforcerWrapper) AddPolicy(params ...interface{}) (bool, error) {
	return w.enforcer.AddPolicy(params...)
}

func (w *CasbinEnforcerWrapper) RemovePolicy(params ...interface{}) (bool, error) {
	return w.enforcer.RemovePolicy(params...)
}

func (w *CasbinEnforcerWrapper) Enforce(rvals ...interface{}) (bool, error) {
	return w.enforcer.Enforce(rvals...)
}

func (w *CasbinEnforcerWrapper) GetPolicy() ([][]string, error) {
	return w.enforcer.GetPolicy()
}

func (w *CasbinEnforcerWrapper) SavePolicy() error {
	return w.enforcer.SavePolicy()
}

// PolicyServiceImpl implements domain.PolicyService using Casbin.
// Roles may be given bare ("admin") or prefixed ("role_admin").
type PolicyServiceImpl struct {
	enforcer domain.CasbinEnforcer
}

// NewPolicyService creates a new policy service
func NewPolicyService(enforcer *casbin.Enforcer) domain.PolicyService {
	return &PolicyServiceImpl{
		enforcer: NewCasbinEnforcerWrapper(enforcer),
	}
}

// NewPolicyServiceWithEnforcer creates a new policy service with a CasbinEnforcer interface (for testing)
func NewPolicyServiceWithEnforcer(enforcer domain.CasbinEnforcer) domain.PolicyService {
	return &PolicyServiceImpl{
		enforcer: enforcer,
	}
}

// RoleSubject returns the policy subject for role
func RoleSubject(role string) string {
	role = strings.TrimSpace(role)
	if strings.HasPrefix(role, rolePrefix) {
		return role
	}
	return rolePrefix + role
}

func normalizePolicy(role, resource, action string) (string, string, string, error) {
	role, resource, action = strings.TrimSpace(role), strings.TrimSpace(resource), strings.TrimSpace(action)
	if role == "" || role == rolePrefix || resource == "" || action == "" {
		return "", "", "", domain.ErrInvalidPolicy
	}
	return RoleSubject(role), resource, action, nil
}

// AddPolicy implements domain.PolicyService
func (p *PolicyServiceImpl) AddPolicy(role, resource, action string) error {
	sub, obj, act, err := normalizePolicy(role, resource, action)
	if err != nil {
		return err
	}
	added, err := p.enforcer.AddPolicy(sub, obj, act)
	if err != nil {
		return fmt.Errorf("add policy: %w", err)
	}
	if !added {
		return nil
	}
	log.Printf("EVENT: policy_added sub=%s obj=%s act=%s", sub, obj, act)
	return p.enforcer.SavePolicy()
}

// RemovePolicy implements domain.PolicyService
func (p *PolicyServiceImpl) RemovePolicy(role, resource, action string) error {
	sub, obj, act, err := normalizePolicy(role, resource, action)
	if err != nil {
		return err
	}
	removed, err := p.enforcer.RemovePolicy(sub, obj, act)
	if err != nil {
		return fmt.Errorf("remove policy: %w", err)
	}
	if !removed {
		return nil
	}
	log.Printf("EVENT: policy_removed sub=%s obj=%s act=%s", sub, obj, act)
	return p.enforcer.SavePolicy()
}

// CheckPermission implements domain.PolicyService
func (p *PolicyServiceImpl) CheckPermission(role, resource, action string) (bool, error) {
	return p.enforcer.Enforce(RoleSubject(role), resource, action)
}

// GetPolicies implements domain.PolicyService
func (p *PolicyServiceImpl) GetPolicies() [][]string {
	policies, err := p.enforcer.GetPolicy()
	if err != nil {
		log.Printf("EVENT: policy_list_failed error=%q", err)
		return [][]string{}
	}
	return policies
}
