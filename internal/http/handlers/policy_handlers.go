package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shubham23mamgain/bringit/domain"
)

// PolicyHandlers administers casbin rules
type PolicyHandlers struct {
	svc domain.PolicyService
}

// NewPolicyHandlers creates new policy handlers
func NewPolicyHandlers(svc domain.PolicyService) *PolicyHandlers {
	return &PolicyHandlers{svc: svc}
}

// PolicyRequest is one subject/object/action rule
type PolicyRequest struct {
	Sub string `json:"sub" binding:"required"`
	Obj string `json:"obj" binding:"required"`
	Act string `json:"act" binding:"required"`
}

// List returns every rule
func (h *PolicyHandlers) List(c *gin.Context) {
	policies := h.svc.GetPolicies()
	if policies == nil {
		policies = [][]string{}
	}
	Respond(c, http.StatusOK, "Policies fetched successfully", policies)
}

// Add stores a rule
func (h *PolicyHandlers) Add(c *gin.Context) {
	var r PolicyRequest
	if !bindJSON(c, &r) {
		return
	}
	if err := h.svc.AddPolicy(r.Sub, r.Obj, r.Act); err != nil {
		WriteError(c, err)
		return
	}
	Respond(c, http.StatusCreated, "Policy added successfully", r)
}

// Remove deletes a rule
func (h *PolicyHandlers) Remove(c *gin.Context) {
	var r PolicyRequest
	if !bindJSON(c, &r) {
		return
	}
	if err := h.svc.RemovePolicy(r.Sub, r.Obj, r.Act); err != nil {
		WriteError(c, err)
		return
	}
	Respond(c, http.StatusOK, "Policy removed successfully", r)
}
