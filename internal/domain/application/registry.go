package application

import (
	"encoding/json"
	"fmt"
)

// Schema is the single lookup from an application type to everything the
// lifecycle needs for it. Submit, resubmit and display all go through the
// registry; no other component branches on the type name.
type Schema struct {
	Type              Type
	Rules             RuleSet
	Normalize         func(Fields) Payload
	Denormalize       func(json.RawMessage) (Fields, error)
	Propagate         PropagateFunc
	RequiredDocuments []string
}

var registry = map[Type]Schema{
	TypeDependentAdd: {
		Type:              TypeDependentAdd,
		Rules:             dependentAddRules,
		Normalize:         normalizeDependentAdd,
		Denormalize:       denormalizePayload[DependentAddPayload](denormalizeDependentAdd),
		Propagate:         propagateDependentAdd,
		RequiredDocuments: []string{"income-certificate"},
	},
	TypeDependentRemove: {
		Type:        TypeDependentRemove,
		Rules:       dependentRemoveRules,
		Normalize:   normalizeDependentRemove,
		Denormalize: denormalizePayload[DependentRemovePayload](denormalizeDependentRemove),
		Propagate:   propagateDependentRemove,
	},
	TypeAddressChange: {
		Type:        TypeAddressChange,
		Rules:       addressChangeRules,
		Normalize:   normalizeAddressChange,
		Denormalize: denormalizePayload[AddressChangePayload](denormalizeAddressChange),
		Propagate:   propagateAddressChange,
	},
	TypeNameChange: {
		Type:              TypeNameChange,
		Rules:             nameChangeRules,
		Normalize:         normalizeNameChange,
		Denormalize:       denormalizePayload[NameChangePayload](denormalizeNameChange),
		Propagate:         propagateNameChange,
		RequiredDocuments: []string{"family-register-extract"},
	},
	TypeNationalIDChange: {
		Type:              TypeNationalIDChange,
		Rules:             nationalIDChangeRules,
		Normalize:         normalizeNationalIDChange,
		Denormalize:       denormalizePayload[NationalIDChangePayload](denormalizeNationalIDChange),
		Propagate:         propagateNationalIDChange,
		RequiredDocuments: []string{"my-number-card"},
	},
	TypeMaternityLeave: {
		Type:        TypeMaternityLeave,
		Rules:       maternityLeaveRules,
		Normalize:   normalizeMaternityLeave,
		Denormalize: denormalizePayload[MaternityLeavePayload](denormalizeMaternityLeave),
		// Informational only; approval changes nothing on the master record.
		Propagate:         nil,
		RequiredDocuments: []string{"maternity-certificate"},
	},
	TypeResignation: {
		Type:        TypeResignation,
		Rules:       resignationRules,
		Normalize:   normalizeResignation,
		Denormalize: denormalizePayload[ResignationPayload](denormalizeResignation),
		Propagate:   propagateResignation,
	},
	TypeOnboarding: {
		Type:        TypeOnboarding,
		Rules:       onboardingRules,
		Normalize:   normalizeOnboarding,
		Denormalize: denormalizePayload[OnboardingPayload](denormalizeOnboarding),
		// Decisions land on the staged record via Service.Onboarding; the
		// roster write itself happens in the promotion batch, not here.
		Propagate: nil,
	},
}

func SchemaFor(t Type) (Schema, error) {
	schema, ok := registry[t]
	if !ok {
		return Schema{}, fmt.Errorf("%w: %s", ErrUnknownType, t)
	}
	return schema, nil
}

func Types() []Type {
	return []Type{
		TypeDependentAdd,
		TypeDependentRemove,
		TypeAddressChange,
		TypeNameChange,
		TypeNationalIDChange,
		TypeMaternityLeave,
		TypeResignation,
		TypeOnboarding,
	}
}

// TypeDescriptor is the catalogue entry served to clients building the
// submission form for a type.
type TypeDescriptor struct {
	Type              Type     `json:"applicationType"`
	RequiredDocuments []string `json:"requiredDocuments,omitempty"`
}

func TypeDescriptors() []TypeDescriptor {
	types := Types()
	out := make([]TypeDescriptor, 0, len(types))
	for _, t := range types {
		out = append(out, TypeDescriptor{Type: t, RequiredDocuments: registry[t].RequiredDocuments})
	}
	return out
}

func denormalizePayload[T Payload](fn func(T) Fields) func(json.RawMessage) (Fields, error) {
	return func(raw json.RawMessage) (Fields, error) {
		var payload T
		if err := json.Unmarshal(raw, &payload); err != nil {
			return nil, err
		}
		return fn(payload), nil
	}
}
