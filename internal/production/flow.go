package production

import (
	"context"
	"encoding/json"
	"fmt"
)

type FlowSource string

const (
	FlowFromProduct  FlowSource = "product"
	FlowFromFallback FlowSource = "fallback"
)

// Flow is the ordered list of floors an article passes through.
type Flow struct {
	Floors []Floor
	Source FlowSource
}

func (fl Flow) Index(f Floor) int {
	for i, x := range fl.Floors {
		if x == f {
			return i
		}
	}
	return -1
}

func (fl Flow) Contains(f Floor) bool {
	return fl.Index(f) >= 0
}

func (fl Flow) First() Floor {
	if len(fl.Floors) == 0 {
		return FloorUnknown
	}
	return fl.Floors[0]
}

func (fl Flow) Last() Floor {
	if len(fl.Floors) == 0 {
		return FloorUnknown
	}
	return fl.Floors[len(fl.Floors)-1]
}

// Next returns the floor after f, or false when f is terminal or absent.
func (fl Flow) Next(f Floor) (Floor, bool) {
	i := fl.Index(f)
	if i < 0 || i+1 >= len(fl.Floors) {
		return FloorUnknown, false
	}
	return fl.Floors[i+1], true
}

// Previous returns the floor before f, or false when f is first or absent.
func (fl Flow) Previous(f Floor) (Floor, bool) {
	i := fl.Index(f)
	if i <= 0 {
		return FloorUnknown, false
	}
	return fl.Floors[i-1], true
}

// LastGrading returns the final grading floor of the flow.
func (fl Flow) LastGrading() (Floor, bool) {
	for i := len(fl.Floors) - 1; i >= 0; i-- {
		if fl.Floors[i].IsGrading() {
			return fl.Floors[i], true
		}
	}
	return FloorUnknown, false
}

func (fl Flow) Names() []string {
	out := make([]string, len(fl.Floors))
	for i, f := range fl.Floors {
		out[i] = f.String()
	}
	return out
}

type flowJSON struct {
	Floors []string   `json:"floors"`
	Source FlowSource `json:"source"`
}

func (fl Flow) MarshalJSON() ([]byte, error) {
	return json.Marshal(flowJSON{Floors: fl.Names(), Source: fl.Source})
}

func (fl *Flow) UnmarshalJSON(data []byte) error {
	var raw flowJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	floors := make([]Floor, 0, len(raw.Floors))
	for _, name := range raw.Floors {
		f, ok := ParseFloor(name)
		if !ok {
			return fmt.Errorf("flow: unknown floor %q", name)
		}
		floors = append(floors, f)
	}
	fl.Floors = floors
	fl.Source = raw.Source
	return nil
}

// ProcessStep is one declared step of a product definition.
type ProcessStep struct {
	Name string
}

// ProcessStepFinder looks up a product definition's process steps by article
// number. Implementations return an error wrapping ErrNotFound when the
// product does not exist.
type ProcessStepFinder interface {
	FindProcessSteps(ctx context.Context, articleNumber string) ([]ProcessStep, error)
}

// Resolver computes an article's floor flow.
type Resolver struct {
	finder ProcessStepFinder
}

func NewResolver(finder ProcessStepFinder) *Resolver {
	return &Resolver{finder: finder}
}

// Resolve returns the product-defined flow when it can be built, otherwise the
// linking-type fallback. The returned error explains why the fallback was used
// and is informational; the flow is always usable.
func (r *Resolver) Resolve(ctx context.Context, articleNumber string, linking LinkingType) (Flow, error) {
	if r.finder == nil {
		return FallbackFlow(linking), notFoundErr("resolve", "no product lookup configured")
	}
	steps, err := r.finder.FindProcessSteps(ctx, articleNumber)
	if err != nil {
		return FallbackFlow(linking), err
	}
	floors, err := FloorsFromSteps(articleNumber, steps)
	if err != nil {
		return FallbackFlow(linking), err
	}
	return Flow{Floors: floors, Source: FlowFromProduct}, nil
}

// FloorsFromSteps maps process steps onto floors, dropping unknown steps and
// duplicates while keeping declaration order.
func FloorsFromSteps(articleNumber string, steps []ProcessStep) ([]Floor, error) {
	if len(steps) == 0 {
		return nil, notFoundErr("resolve", "product %q has no process steps", articleNumber)
	}
	seen := make(map[Floor]bool, len(steps))
	floors := make([]Floor, 0, len(steps))
	for _, s := range steps {
		f, ok := ParseFloor(s.Name)
		if !ok || seen[f] {
			continue
		}
		seen[f] = true
		floors = append(floors, f)
	}
	if len(floors) == 0 {
		return nil, notFoundErr("resolve", "no process step of product %q maps to a floor", articleNumber)
	}
	return floors, nil
}

// FallbackFlow is the fixed sequence used when no product definition applies.
func FallbackFlow(linking LinkingType) Flow {
	floors := []Floor{FloorKnitting}
	if !linking.SkipsLinking() {
		floors = append(floors, FloorLinking)
	}
	floors = append(floors,
		FloorChecking,
		FloorWashing,
		FloorBoarding,
		FloorFinalChecking,
		FloorBranding,
		FloorWarehouse,
		FloorDispatch,
	)
	return Flow{Floors: floors, Source: FlowFromFallback}
}
