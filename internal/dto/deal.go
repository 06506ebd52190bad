package dto

import (
	"github.com/estatedesk/backoffice/internal/core/domain"
)

// DealSessionResponse is the wizard state returned after every transition.
type DealSessionResponse struct {
	DealID       string            `json:"dealId"`
	Step         string            `json:"step"`
	StepIndex    int               `json:"stepIndex"`
	Steps        []string          `json:"steps"`
	Selected     *PropertyResponse `json:"selectedProperty,omitempty"`
	EditedFields map[string]string `json:"editedFields"`
}

// ToDealSessionResponse flattens a deal session for the wire.
func ToDealSessionResponse(s *domain.DealSession) DealSessionResponse {
	steps := make([]string, len(domain.DealSteps))
	for i, st := range domain.DealSteps {
		steps[i] = string(st)
	}
	resp := DealSessionResponse{
		DealID:       s.ID,
		Step:         string(s.Step()),
		StepIndex:    s.CurrentStep,
		Steps:        steps,
		EditedFields: s.EditedFields,
	}
	if s.Selected != nil {
		pr := ToPropertyResponse(s.Selected)
		resp.Selected = &pr
	}
	return resp
}

// SelectPropertyRequest picks a lot on the inventory step.
type SelectPropertyRequest struct {
	Project string `json:"project" binding:"required"`
	Block   string `json:"block" binding:"required"`
	Lot     string `json:"lot" binding:"required"`
}

// EditFieldRequest overrides one field of the selected lot.
type EditFieldRequest struct {
	Field string `json:"field" binding:"required"`
	Value string `json:"value"`
}

// JumpRequest targets an earlier step by index.
type JumpRequest struct {
	StepIndex *int `json:"stepIndex" binding:"required"`
}
