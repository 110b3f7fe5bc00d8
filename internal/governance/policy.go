package governance

import (
	"context"
	"fmt"
	"strings"
)

// Effect defines the result of a policy evaluation.
type Effect string

const (
	EffectAllow Effect = "allow"
	EffectDeny  Effect = "deny"
)

// Request contains the context of a stage recommendation to be
// evaluated before the pipeline accepts it.
type Request struct {
	Stage      string
	OptionID   string   // identifier of the model's pick (flight ID, hotel name, ...)
	Cost       float64  // cost of the pick
	CostCap    float64  // stage budget cap; < 0 disables the check
	Candidates []string // identifiers of the filtered catalog subset
}

// Result contains the outcome of a policy evaluation.
type Result struct {
	Effect Effect
	Reason string
}

// PolicyEngine evaluates model recommendations against a set of rules.
type PolicyEngine interface {
	Evaluate(ctx context.Context, req Request) (Result, error)
}

// DefaultPolicyEngine is a basic implementation of PolicyEngine. It
// rejects any pick that names an option outside the filtered candidate
// set or that costs more than the stage's budget cap, plus any
// explicitly blocked option names.
type DefaultPolicyEngine struct {
	BlockedOptions map[string]bool
}

func NewDefaultPolicyEngine() *DefaultPolicyEngine {
	return &DefaultPolicyEngine{
		BlockedOptions: make(map[string]bool),
	}
}

// BlockOption denies a specific option identifier regardless of the
// catalog, e.g. an airline the operator has blacklisted.
func (e *DefaultPolicyEngine) BlockOption(id string) {
	e.BlockedOptions[strings.ToLower(id)] = true
}

func (e *DefaultPolicyEngine) Evaluate(ctx context.Context, req Request) (Result, error) {
	if e.BlockedOptions[strings.ToLower(req.OptionID)] {
		return Result{
			Effect: EffectDeny,
			Reason: fmt.Sprintf("Option '%s' is blocked by system policy", req.OptionID),
		}, nil
	}

	found := false
	for _, c := range req.Candidates {
		if strings.EqualFold(c, req.OptionID) {
			found = true
			break
		}
	}
	if !found {
		return Result{
			Effect: EffectDeny,
			Reason: fmt.Sprintf("Option '%s' is not among the filtered catalog candidates for stage %s", req.OptionID, req.Stage),
		}, nil
	}

	if req.CostCap >= 0 && req.Cost > req.CostCap {
		return Result{
			Effect: EffectDeny,
			Reason: fmt.Sprintf("Option '%s' costs %.2f, above the %.2f cap for stage %s", req.OptionID, req.Cost, req.CostCap, req.Stage),
		}, nil
	}

	return Result{
		Effect: EffectAllow,
		Reason: "Approved by default policy",
	}, nil
}
