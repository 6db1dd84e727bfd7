package application

// The input view re-evaluates only the fields that directly depend on a
// changed trigger; there is no global re-validation pass. Each rule therefore
// lists the full outcome for its trigger value, and triggers inside a mutual
// exclusivity group clear their siblings before applying their own effects.

type EffectKind int

const (
	// SetRequired marks the field required and editable.
	SetRequired EffectKind = iota
	// ClearAndDisable blanks the field's value and excludes it from the
	// required check even if it previously held one.
	ClearAndDisable
	// EnableOptional re-enables a previously disabled field without
	// requiring it.
	EnableOptional
)

type Effect struct {
	Field string
	Kind  EffectKind
}

type Rule struct {
	Trigger string
	Value   string
	// Exclusive lists sibling trigger fields blanked before effects apply.
	Exclusive []string
	Effects   []Effect
}

type RuleSet struct {
	// Base fields are required regardless of any trigger.
	Base  []string
	Rules []Rule
}

type FieldState struct {
	Required bool
	Disabled bool
}

type FormState map[string]FieldState

// InitState returns the field state before any trigger has fired.
func (rs RuleSet) InitState() FormState {
	state := make(FormState, len(rs.Base))
	for _, field := range rs.Base {
		state[field] = FieldState{Required: true}
	}
	return state
}

// OnChange applies the rules bound to one changed trigger field. Only that
// field's direct dependents are recomputed.
func (rs RuleSet) OnChange(form Fields, state FormState, changed string) {
	for _, rule := range rs.Rules {
		if rule.Trigger != changed || form.Get(changed) != rule.Value {
			continue
		}
		for _, sibling := range rule.Exclusive {
			form[sibling] = ""
		}
		for _, effect := range rule.Effects {
			switch effect.Kind {
			case SetRequired:
				state[effect.Field] = FieldState{Required: true}
			case ClearAndDisable:
				form[effect.Field] = ""
				state[effect.Field] = FieldState{Disabled: true}
			case EnableOptional:
				state[effect.Field] = FieldState{}
			}
		}
	}
}

// StateFor replays the rule table against a fully populated form, in table
// order. Used at submission time when no change event history is available.
func (rs RuleSet) StateFor(form Fields) FormState {
	state := rs.InitState()
	seen := make(map[string]bool)
	for _, rule := range rs.Rules {
		if seen[rule.Trigger] {
			continue
		}
		seen[rule.Trigger] = true
		rs.OnChange(form, state, rule.Trigger)
	}
	return state
}

// MissingFields reports every currently required field without a value.
// Disabled fields are excluded even when they still hold one.
func (rs RuleSet) MissingFields(form Fields, state FormState) []string {
	var missing []string
	for _, field := range rs.Base {
		fs := state[field]
		if !fs.Disabled && fs.Required && form.Get(field) == "" {
			missing = append(missing, field)
		}
	}
	for _, rule := range rs.Rules {
		for _, effect := range rule.Effects {
			if effect.Kind != SetRequired {
				continue
			}
			fs, ok := state[effect.Field]
			if !ok || fs.Disabled || !fs.Required {
				continue
			}
			if form.Get(effect.Field) == "" && !contains(missing, effect.Field) {
				missing = append(missing, effect.Field)
			}
		}
	}
	return missing
}

func contains(list []string, value string) bool {
	for _, v := range list {
		if v == value {
			return true
		}
	}
	return false
}

var dependentAddRules = RuleSet{
	Base: []string{"relationshipType", "lastName", "firstName", "birthDate", "livingTogether"},
	Rules: []Rule{
		{Trigger: "relationshipType", Value: "spouse", Effects: []Effect{
			{Field: "spouseType", Kind: SetRequired},
			{Field: "relationship", Kind: ClearAndDisable},
			{Field: "relationshipOther", Kind: ClearAndDisable},
		}},
		{Trigger: "relationshipType", Value: "spouse-other", Effects: []Effect{
			{Field: "relationship", Kind: SetRequired},
			{Field: "spouseType", Kind: ClearAndDisable},
		}},
		{Trigger: "relationshipType", Value: "other", Effects: []Effect{
			{Field: "relationship", Kind: SetRequired},
			{Field: "spouseType", Kind: ClearAndDisable},
		}},
		{Trigger: "relationship", Value: OtherChoice, Effects: []Effect{
			{Field: "relationshipOther", Kind: SetRequired},
		}},
		{Trigger: "occupation", Value: OtherChoice, Effects: []Effect{
			{Field: "occupationOther", Kind: SetRequired},
		}},
		{Trigger: "livingTogether", Value: "separate", Effects: []Effect{
			{Field: "postalCode", Kind: SetRequired},
			{Field: "address", Kind: SetRequired},
			{Field: "addressKana", Kind: EnableOptional},
			{Field: "monthlySupport", Kind: SetRequired},
		}},
		{Trigger: "livingTogether", Value: "together", Effects: []Effect{
			{Field: "postalCode", Kind: ClearAndDisable},
			{Field: "address", Kind: ClearAndDisable},
			{Field: "addressKana", Kind: ClearAndDisable},
			{Field: "monthlySupport", Kind: ClearAndDisable},
		}},
	},
}

var dependentRemoveRules = RuleSet{
	Base: []string{"removalDate", "removalReason", "dependentName", "dependentRelationship"},
	Rules: []Rule{
		{Trigger: "removalReason", Value: OtherChoice, Effects: []Effect{
			{Field: "removalReasonOther", Kind: SetRequired},
		}},
	},
}

var addressChangeRules = RuleSet{
	Base: []string{"moveDate", "newPostalCode", "newAddress"},
	Rules: []Rule{
		{Trigger: "isOverseasResident", Value: "true", Effects: []Effect{
			{Field: "newPostalCode", Kind: ClearAndDisable},
			{Field: "newAddressKana", Kind: ClearAndDisable},
		}},
		{Trigger: "isOverseasResident", Value: "false", Effects: []Effect{
			{Field: "newPostalCode", Kind: SetRequired},
			{Field: "newAddressKana", Kind: EnableOptional},
		}},
		{Trigger: "sameAsOldAddress", Value: "true", Exclusive: []string{"sameAsNewAddress"}, Effects: []Effect{
			{Field: "residentPostalCode", Kind: ClearAndDisable},
			{Field: "residentAddress", Kind: ClearAndDisable},
		}},
		{Trigger: "sameAsNewAddress", Value: "true", Exclusive: []string{"sameAsOldAddress"}, Effects: []Effect{
			{Field: "residentPostalCode", Kind: ClearAndDisable},
			{Field: "residentAddress", Kind: ClearAndDisable},
		}},
		{Trigger: "sameAsOldAddress", Value: "false", Effects: []Effect{
			{Field: "residentPostalCode", Kind: SetRequired},
			{Field: "residentAddress", Kind: SetRequired},
		}},
	},
}

var nameChangeRules = RuleSet{
	Base: []string{"changeDate", "newLastName", "newFirstName", "newLastNameKana", "newFirstNameKana"},
}

var nationalIDChangeRules = RuleSet{
	Base: []string{"changeDate", "myNumber1", "myNumber2", "myNumber3"},
}

var maternityLeaveRules = RuleSet{
	Base: []string{"expectedDeliveryDate", "maternityLeaveStartDate", "maternityLeaveEndDate"},
	Rules: []Rule{
		{Trigger: "staysElsewhere", Value: "true", Effects: []Effect{
			{Field: "stayAddress", Kind: SetRequired},
		}},
		{Trigger: "staysElsewhere", Value: "false", Effects: []Effect{
			{Field: "stayAddress", Kind: ClearAndDisable},
		}},
	},
}

var resignationRules = RuleSet{
	Base: []string{"resignationDate", "lastWorkDate", "resignationReason"},
	Rules: []Rule{
		{Trigger: "sameAsCurrentAddress", Value: "true", Effects: []Effect{
			{Field: "postResignationAddress", Kind: ClearAndDisable},
		}},
		{Trigger: "sameAsCurrentAddress", Value: "false", Effects: []Effect{
			{Field: "postResignationAddress", Kind: SetRequired},
		}},
		{Trigger: "sameAsCurrentPhone", Value: "true", Effects: []Effect{
			{Field: "postResignationPhone", Kind: ClearAndDisable},
		}},
		{Trigger: "sameAsCurrentPhone", Value: "false", Effects: []Effect{
			{Field: "postResignationPhone", Kind: SetRequired},
		}},
		{Trigger: "sameAsCurrentEmail", Value: "true", Effects: []Effect{
			{Field: "postResignationEmail", Kind: ClearAndDisable},
		}},
		{Trigger: "sameAsCurrentEmail", Value: "false", Effects: []Effect{
			{Field: "postResignationEmail", Kind: SetRequired},
		}},
	},
}

var onboardingRules = RuleSet{
	Base: []string{"lastName", "firstName", "birthDate", "email"},
}
