package dto

import (
	"github.com/estatedesk/backoffice/internal/core/domain"
)

// PropertyResponse is the homogeneous wire shape for a lot from either project
// table. The two schemas are disjoint, so project-specific fields travel in
// the Fields map keyed by display name.
type PropertyResponse struct {
	Project        string            `json:"project"`
	ProjectDisplay string            `json:"projectDisplay"`
	Block          string            `json:"block"`
	Lot            string            `json:"lot"`
	Status         string            `json:"status"`
	BuyerName      string            `json:"buyerName,omitempty"`
	Fields         map[string]string `json:"fields"`
}

// ToPropertyResponse flattens a domain property for the wire.
func ToPropertyResponse(p domain.Property) PropertyResponse {
	fields := make(map[string]string, len(p.FieldNames()))
	for _, name := range p.FieldNames() {
		if v, ok := p.Field(name); ok {
			fields[name] = v
		}
	}
	return PropertyResponse{
		Project:        string(p.Project()),
		ProjectDisplay: p.Project().DisplayName(),
		Block:          p.Key().Block,
		Lot:            p.Key().Lot,
		Status:         string(p.Status()),
		BuyerName:      p.BuyerName(),
		Fields:         fields,
	}
}

// ToPropertyResponses flattens a merged inventory list.
func ToPropertyResponses(props []domain.Property) []PropertyResponse {
	out := make([]PropertyResponse, 0, len(props))
	for _, p := range props {
		out = append(out, ToPropertyResponse(p))
	}
	return out
}

// ReopenResponse reports the outcome of releasing a Sold lot back to the
// market. CleanupFailures lists the dependent-row deletions that failed; the
// lot itself is Available again regardless.
type ReopenResponse struct {
	Property        PropertyResponse `json:"property"`
	CleanupFailures []string         `json:"cleanupFailures,omitempty"`
}
