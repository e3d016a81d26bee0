package model

import "github.com/bis-med-it/gosdmx/errors"

// Components is an ordered, ID-unique sequence of components. Iteration
// order is part of the contract: declared dimension order matters for key
// construction downstream.
//
// Every mutation validates ID uniqueness first and fails atomically: on
// error the collection is unchanged.
type Components struct {
	items []Component
}

// NewComponents builds a collection, rejecting duplicate IDs.
func NewComponents(items ...Component) (*Components, error) {
	cs := &Components{}
	if err := cs.Extend(items); err != nil {
		return nil, err
	}
	return cs, nil
}

// Len returns the number of components.
func (cs *Components) Len() int { return len(cs.items) }

// At returns the component at position i. It panics when i is out of
// range, matching slice semantics.
func (cs *Components) At(i int) Component { return cs.items[i] }

// Get returns the component with the given ID, or nil when absent. Lookup
// is linear; data structures hold dozens of components, not thousands.
func (cs *Components) Get(id string) *Component {
	for i := range cs.items {
		if cs.items[i].ID == id {
			return &cs.items[i]
		}
	}
	return nil
}

// All returns the components in declaration order. The slice is a copy.
func (cs *Components) All() []Component {
	out := make([]Component, len(cs.items))
	copy(out, cs.items)
	return out
}

// Append adds c at the end, failing when its ID already exists.
func (cs *Components) Append(c Component) error {
	if err := cs.checkNew(c); err != nil {
		return err
	}
	cs.items = append(cs.items, c)
	return nil
}

// Insert adds c at position i, failing when its ID already exists or the
// position is out of range.
func (cs *Components) Insert(i int, c Component) error {
	if i < 0 || i > len(cs.items) {
		return errors.Invalid("Invalid position", "insert position %d out of range (len %d)", i, len(cs.items))
	}
	if err := cs.checkNew(c); err != nil {
		return err
	}
	cs.items = append(cs.items[:i], append([]Component{c}, cs.items[i:]...)...)
	return nil
}

// Set replaces the component at position i. The incoming ID must not
// collide with any component other than the one being replaced.
func (cs *Components) Set(i int, c Component) error {
	if i < 0 || i >= len(cs.items) {
		return errors.Invalid("Invalid position", "position %d out of range (len %d)", i, len(cs.items))
	}
	for j := range cs.items {
		if j != i && cs.items[j].ID == c.ID {
			return dupErr(c.ID)
		}
	}
	cs.items[i] = c
	return nil
}

// Extend appends every element of items, all-or-nothing: the incoming
// sequence must have no internal duplicates and no ID already present.
func (cs *Components) Extend(items []Component) error {
	seen := make(map[string]struct{}, len(items))
	for _, c := range items {
		if _, ok := seen[c.ID]; ok {
			return dupErr(c.ID)
		}
		seen[c.ID] = struct{}{}
	}
	for _, c := range items {
		if cs.Get(c.ID) != nil {
			return dupErr(c.ID)
		}
	}
	cs.items = append(cs.items, items...)
	return nil
}

// Dimensions returns the components with the dimension role, in order.
// Computed per access; the container is assembled once and read many times.
func (cs *Components) Dimensions() []Component { return cs.withRole(RoleDimension) }

// Measures returns the components with the measure role, in order.
func (cs *Components) Measures() []Component { return cs.withRole(RoleMeasure) }

// Attributes returns the components with the attribute role, in order.
func (cs *Components) Attributes() []Component { return cs.withRole(RoleAttribute) }

func (cs *Components) withRole(r Role) []Component {
	var out []Component
	for _, c := range cs.items {
		if c.Role == r {
			out = append(out, c)
		}
	}
	return out
}

func (cs *Components) checkNew(c Component) error {
	if cs.Get(c.ID) != nil {
		return dupErr(c.ID)
	}
	return nil
}

func dupErr(id string) error {
	return errors.Invalid("Duplicate component", "a component with ID %q already exists in the collection", id)
}
