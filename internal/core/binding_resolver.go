package core

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"pinball-hwbind/internal/ports"
	"pinball-hwbind/internal/types"
)

const addressField = "number"

// ResolveOutcome is everything a resolution pass produced. Bindings is only
// marked validated when Violations is empty.
type ResolveOutcome struct {
	Bindings   types.BindingSet
	Violations []types.Violation
	Registry   *DeviceRegistry
	Composites []types.Composite
}

// Err reports the accumulated violations as one failed-precondition error.
func (o ResolveOutcome) Err() error {
	if len(o.Violations) == 0 {
		return nil
	}
	violations := &types.ViolationsError{Violations: o.Violations}
	return errbuilder.New().
		WithCode(errbuilder.CodeFailedPrecondition).
		WithMsg(violations.Error()).
		WithCause(violations)
}

// BindingResolver runs one resolution pass over a configuration document:
// parse, layer, register, build composites, validate.
type BindingResolver struct {
	Parser AddressParser
	Policy ports.PolicyPort
	Now    func() time.Time
	NewID  func() string
}

func NewBindingResolver(policy ports.PolicyPort) BindingResolver {
	return BindingResolver{
		Parser: NewAddressParser(),
		Policy: policy,
		Now:    time.Now,
		NewID:  func() string { return uuid.New().String() },
	}
}

// Resolve returns a structural error as soon as one is found. Constraint
// violations are collected over the whole document and returned in the
// outcome instead.
func (r BindingResolver) Resolve(ctx context.Context, doc types.Document) (ResolveOutcome, error) {
	if r.Policy == nil {
		return ResolveOutcome{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("binding resolver requires a platform policy")
	}
	descriptor := r.Policy.Descriptor()
	layering := NewLayeringEngine(descriptor)
	for _, kind := range types.CompositeKinds {
		if err := checkUniqueNames(kind, doc.Section(kind)); err != nil {
			return ResolveOutcome{}, err
		}
	}

	registry := NewDeviceRegistry()
	violations := []types.Violation{}
	for _, kind := range types.SimpleKinds {
		for _, entry := range doc.Section(kind) {
			spec, outOfRange, err := r.resolveSimple(kind, entry, layering)
			if err != nil {
				return ResolveOutcome{}, err
			}
			if outOfRange != nil {
				violations = append(violations, *outOfRange)
			}
			if err := registry.Register(ctx, spec); err != nil {
				return ResolveOutcome{}, err
			}
		}
	}
	registry.Freeze()
	log.Ctx(ctx).Debug().Str("platform", descriptor.Name).Int("devices", registry.Len()).Msg("devices registered")

	builder := NewCompositeBuilder(registry, layering)
	composites := []types.Composite{}
	for _, kind := range types.CompositeKinds {
		for _, entry := range doc.Section(kind) {
			composite, err := builder.Build(ctx, entry.Name, kind, entry.Fields)
			if err != nil {
				return ResolveOutcome{}, err
			}
			composites = append(composites, composite)
		}
	}
	log.Ctx(ctx).Debug().Int("composites", len(composites)).Msg("composites built")

	validator := NewConstraintValidator(r.Policy.SupportsCrossBoardAutofire())
	violations = append(violations, validator.Validate(ctx, composites)...)

	bindings := r.assemble(descriptor.Name, registry, composites)
	bindings.Validated = len(violations) == 0
	bindings.Passthrough = types.Settings(doc.Passthrough(descriptor.Name)).Clone()
	if len(bindings.Passthrough) == 0 {
		bindings.Passthrough = nil
	}
	return ResolveOutcome{
		Bindings:   bindings,
		Violations: violations,
		Registry:   registry,
		Composites: composites,
	}, nil
}

func (r BindingResolver) resolveSimple(kind types.DeviceKind, entry types.DeviceEntry, layering LayeringEngine) (types.DeviceSpec, *types.AddressOutOfRange, error) {
	ref := types.DeviceRef(kind, entry.Name)
	token := strings.TrimSpace(AddressToken(entry.Fields[addressField]))
	parsed, err := r.Parser.Parse(token)
	if err != nil {
		return types.DeviceSpec{}, nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("malformed address: %s field %q value %q: %s", ref, addressField, token, errorMessage(err))).
			WithCause(err)
	}
	address, outOfRange := r.Policy.CompleteAddress(ref, token, kind, parsed)

	platformSettings, err := platformBlock(ref, entry.Fields)
	if err != nil {
		return types.DeviceSpec{}, nil, err
	}
	settings, err := layering.Resolve(ref, kind, entry.Fields, platformSettings)
	if err != nil {
		return types.DeviceSpec{}, nil, err
	}
	delete(settings, addressField)
	return types.DeviceSpec{
		Name:     entry.Name,
		Kind:     kind,
		Token:    token,
		Address:  &address,
		Settings: settings,
	}, outOfRange, nil
}

func (r BindingResolver) assemble(platform string, registry *DeviceRegistry, composites []types.Composite) types.BindingSet {
	now := time.Now
	if r.Now != nil {
		now = r.Now
	}
	newID := func() string { return uuid.New().String() }
	if r.NewID != nil {
		newID = r.NewID
	}
	set := types.BindingSet{
		ID:        newID(),
		Platform:  platform,
		CreatedAt: now().UTC().Format(time.RFC3339),
		Devices:   []types.DeviceBinding{},
	}
	for _, spec := range registry.All() {
		set.Devices = append(set.Devices, types.DeviceBinding{
			Name:     spec.Name,
			Kind:     spec.Kind,
			Board:    spec.Address.Board,
			Index:    spec.Address.Index,
			Token:    spec.Token,
			Inverted: spec.Inverted(),
			Settings: spec.Settings.Clone(),
		})
	}
	for _, composite := range composites {
		switch typed := composite.(type) {
		case types.Flipper:
			set.Flippers = append(set.Flippers, flipperBinding(typed))
		case types.AutofireRule:
			set.Autofire = append(set.Autofire, autofireBinding(typed))
		}
	}
	return set
}

func flipperBinding(flipper types.Flipper) types.FlipperBinding {
	binding := types.FlipperBinding{
		Name:             flipper.Name,
		ActivationSwitch: flipper.ActivationSwitch.Name(),
		MainCoil:         flipper.MainCoil.Name(),
		UseEOS:           flipper.UseEOS,
		MainCoilSettings: flipper.MainCoil.Effective(),
		Transitions:      FlipperTransitions(flipper),
	}
	if flipper.HoldCoil != nil {
		binding.HoldCoil = flipper.HoldCoil.Name()
	}
	if flipper.EOSSwitch != nil {
		binding.EOSSwitch = flipper.EOSSwitch.Name()
	}
	return binding
}

// autofireBinding reports the rule on the logical switch state: an NC
// switch flips the reverse flag the driver has to apply to raw input.
func autofireBinding(rule types.AutofireRule) types.AutofireBinding {
	binding := types.AutofireBinding{
		Name:         rule.Name,
		Coil:         rule.Coil.Name(),
		Switch:       rule.Switch.Name(),
		Board:        types.DefaultBoard,
		EnableEvents: append([]string(nil), rule.EnableEvents...),
		ReverseInput: rule.Settings.Bool("reverse_switch") != rule.Switch.Base.Inverted(),
	}
	if address := rule.Coil.Address(); address != nil {
		binding.Board = address.Board
	}
	return binding
}

func checkUniqueNames(kind types.DeviceKind, section types.Section) error {
	seen := make(map[string]struct{}, len(section))
	for _, entry := range section {
		if _, exists := seen[entry.Name]; exists {
			return errbuilder.New().
				WithCode(errbuilder.CodeAlreadyExists).
				WithMsg(fmt.Sprintf("duplicate device name: %s field \"name\" value %q", types.DeviceRef(kind, entry.Name), entry.Name))
		}
		seen[entry.Name] = struct{}{}
	}
	return nil
}
