package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/HariStrange/drive-Vault/domain"
)

type PolicyHandlers struct{ policySvc domain.PolicyService }

// NewPolicyHandlers creates new policy handlers
func NewPolicyHandlers(policySvc domain.PolicyService) *PolicyHandlers {
	return &PolicyHandlers{policySvc: policySvc}
}

type policyReq struct {
	Role     string `json:"role" binding:"required"`
	Resource string `json:"resource" binding:"required"`
	Action   string `json:"action" binding:"required"`
}

func (h *PolicyHandlers) List(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"policies": h.policySvc.GetPolicies()})
}

func (h *PolicyHandlers) Add(c *gin.Context) {
	var r policyReq
	if !bindJSON(c, &r, domain.ErrInvalidPolicy.Error()) {
		return
	}
	if err := h.policySvc.AddPolicy(r.Role, r.Resource, r.Action); err != nil {
		respondError(c, err, "Failed to add policy")
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *PolicyHandlers) Remove(c *gin.Context) {
	var r policyReq
	if !bindJSON(c, &r, domain.ErrInvalidPolicy.Error()) {
		return
	}
	if err := h.policySvc.RemovePolicy(r.Role, r.Resource, r.Action); err != nil {
		respondError(c, err, "Failed to remove policy")
		return
	}
	c.Status(http.StatusNoContent)
}
