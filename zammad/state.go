package zammad

import (
	"context"
	"encoding/json"
)

var stateRequiredKeys = []string{
	"id",
	"name",
	"state_type_id",
	"next_state_id",
	"ignore_escalation",
	"active",
	"note",
	"updated_at",
	"created_at",
}

// State is a ticket state such as "new", "open" or "closed".
// NextStateID is nil for states without a follow-up; the client does not interpret it.
type State struct {
	ID               int
	Name             string
	StateTypeID      int
	NextStateID      *int
	IgnoreEscalation bool
	Active           bool
	Note             *string
	UpdatedAt        string
	CreatedAt        string
}

type stateWire struct {
	ID               int     `json:"id"`
	Name             string  `json:"name"`
	StateTypeID      int     `json:"state_type_id"`
	NextStateID      *int    `json:"next_state_id"`
	IgnoreEscalation bool    `json:"ignore_escalation"`
	Active           bool    `json:"active"`
	Note             *string `json:"note"`
	UpdatedAt        string  `json:"updated_at"`
	CreatedAt        string  `json:"created_at"`
}

// StateFromWire decodes a ticket state object as returned by the API
func StateFromWire(raw json.RawMessage) (*State, error) {
	var w stateWire
	if err := decodeObject(raw, &w, stateRequiredKeys...); err != nil {
		return nil, err
	}

	return &State{
		ID:               w.ID,
		Name:             w.Name,
		StateTypeID:      w.StateTypeID,
		NextStateID:      w.NextStateID,
		IgnoreEscalation: w.IgnoreEscalation,
		Active:           w.Active,
		Note:             w.Note,
		UpdatedAt:        w.UpdatedAt,
		CreatedAt:        w.CreatedAt,
	}, nil
}

// ToWire projects the state onto API field names
func (s *State) ToWire() map[string]any {
	return map[string]any{
		"id":                s.ID,
		"name":              s.Name,
		"state_type_id":     s.StateTypeID,
		"next_state_id":     nullable(s.NextStateID),
		"ignore_escalation": s.IgnoreEscalation,
		"active":            s.Active,
		"note":              nullable(s.Note),
		"updated_at":        s.UpdatedAt,
		"created_at":        s.CreatedAt,
	}
}

// MarshalJSON encodes the state in wire format
func (s *State) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.ToWire())
}

// ListStates returns all ticket states of the instance
func ListStates(ctx context.Context, api API) ([]*State, error) {
	return fetchList(ctx, api, TicketStatesPath, StateFromWire)
}

// GetState returns the ticket state with the given id
func GetState(ctx context.Context, api API, id any) (*State, error) {
	return fetchByID(ctx, api, TicketStatePath, id, StateFromWire)
}

// StateCreateOptions describes a ticket state to create
type StateCreateOptions struct {
	Name             string
	StateTypeID      int
	NextStateID      *int
	IgnoreEscalation bool
	Active           bool
	Note             *string
}

// CreateState is not supported by this client and always fails with KindUnimplemented
func CreateState(ctx context.Context, api API, opts StateCreateOptions) (*State, error) {
	return nil, unimplemented("creating ticket states is not supported")
}

// Update is not supported by this client and always fails with KindUnimplemented
func (s *State) Update(ctx context.Context, api API) error {
	return unimplemented("updating ticket states is not supported")
}

// Delete is not supported by this client and always fails with KindUnimplemented
func (s *State) Delete(ctx context.Context, api API) error {
	return unimplemented("deleting ticket states is not supported")
}
