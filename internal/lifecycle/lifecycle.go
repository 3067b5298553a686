package lifecycle

import (
	"fmt"
	"strings"

	"github.com/teamflowhq/teamflow-backend/pkg/enums"
	pkgerrors "github.com/teamflowhq/teamflow-backend/pkg/errors"
)

// Entity names a status-bearing entity type.
type Entity string

const (
	EntitySubscription Entity = "subscription"
	EntityRecruitment  Entity = "recruitment"
	EntityFile         Entity = "file"
)

// Any matches every status on one side of a rule.
const Any = "*"

// FieldRejectionReason is the field a rejection transition must carry.
const FieldRejectionReason = "rejection_reason"

// Fields carries transition-scoped inputs keyed by field name.
type Fields map[string]string

// Rule allows one From→To combination. RequiresField, when set, names a
// field that must be non-blank for the transition to pass.
type Rule struct {
	From          string
	To            string
	RequiresField string
}

var transitionRules = map[Entity][]Rule{
	// No ordering constraint between subscription statuses: an expired
	// subscription can be reactivated, an active one re-marked pending.
	EntitySubscription: {
		{From: Any, To: Any},
	},
	EntityRecruitment: {
		{From: enums.RecruitmentStatusDraft.String(), To: enums.RecruitmentStatusPublished.String()},
		{From: Any, To: enums.RecruitmentStatusClosed.String()},
	},
	EntityFile: {
		{From: Any, To: enums.FileStatusPending.String()},
		{From: Any, To: enums.FileStatusValidated.String()},
		{From: Any, To: enums.FileStatusRejected.String(), RequiresField: FieldRejectionReason},
	},
}

// Validate checks that requested is a legal next status for entity given
// current, and that every field the matching rule requires is present.
func Validate(entity Entity, current, requested string, fields Fields) error {
	if err := checkStatus(entity, current); err != nil {
		return err
	}
	if err := checkStatus(entity, requested); err != nil {
		return err
	}

	rule, ok := findRule(entity, current, requested)
	if !ok {
		return pkgerrors.New(pkgerrors.CodeStateConflict,
			fmt.Sprintf("%s cannot move from %q to %q", entity, current, requested))
	}

	if rule.RequiresField != "" && strings.TrimSpace(fields[rule.RequiresField]) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation,
			fmt.Sprintf("%s is required when setting status to %q", rule.RequiresField, requested)).
			WithDetails(map[string]any{rule.RequiresField: "required"})
	}

	return nil
}

// AllowedTargets returns the statuses entity may move to from current,
// in the enum's canonical order. Unknown input yields an empty slice.
func AllowedTargets(entity Entity, current string) []string {
	if checkStatus(entity, current) != nil {
		return nil
	}

	targets := make([]string, 0, 4)
	for _, candidate := range statusValues(entity) {
		if _, ok := findRule(entity, current, candidate); ok {
			targets = append(targets, candidate)
		}
	}
	return targets
}

func findRule(entity Entity, current, requested string) (Rule, bool) {
	for _, rule := range transitionRules[entity] {
		if rule.From != Any && rule.From != current {
			continue
		}
		if rule.To != Any && rule.To != requested {
			continue
		}
		return rule, true
	}
	return Rule{}, false
}

func checkStatus(entity Entity, status string) error {
	var err error
	switch entity {
	case EntitySubscription:
		_, err = enums.ParseSubscriptionStatus(status)
	case EntityRecruitment:
		_, err = enums.ParseRecruitmentStatus(status)
	case EntityFile:
		_, err = enums.ParseFileStatus(status)
	default:
		return pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("unknown entity type %q", entity))
	}
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeValidation, err, fmt.Sprintf("invalid %s status", entity))
	}
	return nil
}

func statusValues(entity Entity) []string {
	switch entity {
	case EntitySubscription:
		values := make([]string, 0, len(enums.SubscriptionStatuses()))
		for _, s := range enums.SubscriptionStatuses() {
			values = append(values, s.String())
		}
		return values
	case EntityRecruitment:
		values := make([]string, 0, len(enums.RecruitmentStatuses()))
		for _, s := range enums.RecruitmentStatuses() {
			values = append(values, s.String())
		}
		return values
	case EntityFile:
		values := make([]string, 0, len(enums.FileStatuses()))
		for _, s := range enums.FileStatuses() {
			values = append(values, s.String())
		}
		return values
	default:
		return nil
	}
}
