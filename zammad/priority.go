package zammad

import (
	"context"
	"encoding/json"
)

var priorityRequiredKeys = []string{"id", "name", "active", "note", "updated_at", "created_at"}

// Priority is a ticket priority such as "2 normal"
type Priority struct {
	ID        int
	Name      string
	Active    bool
	Note      *string
	UpdatedAt string
	CreatedAt string
}

type priorityWire struct {
	ID        int     `json:"id"`
	Name      string  `json:"name"`
	Active    bool    `json:"active"`
	Note      *string `json:"note"`
	UpdatedAt string  `json:"updated_at"`
	CreatedAt string  `json:"created_at"`
}

// PriorityFromWire decodes a ticket priority object as returned by the API
func PriorityFromWire(raw json.RawMessage) (*Priority, error) {
	var w priorityWire
	if err := decodeObject(raw, &w, priorityRequiredKeys...); err != nil {
		return nil, err
	}

	return &Priority{
		ID:        w.ID,
		Name:      w.Name,
		Active:    w.Active,
		Note:      w.Note,
		UpdatedAt: w.UpdatedAt,
		CreatedAt: w.CreatedAt,
	}, nil
}

// ToWire projects the priority onto API field names
func (p *Priority) ToWire() map[string]any {
	return map[string]any{
		"id":         p.ID,
		"name":       p.Name,
		"active":     p.Active,
		"note":       nullable(p.Note),
		"updated_at": p.UpdatedAt,
		"created_at": p.CreatedAt,
	}
}

// MarshalJSON encodes the priority in wire format
func (p *Priority) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.ToWire())
}

// ListPriorities returns all ticket priorities of the instance
func ListPriorities(ctx context.Context, api API) ([]*Priority, error) {
	return fetchList(ctx, api, TicketPrioritiesPath, PriorityFromWire)
}

// GetPriority returns the ticket priority with the given id
func GetPriority(ctx context.Context, api API, id any) (*Priority, error) {
	return fetchByID(ctx, api, TicketPriorityPath, id, PriorityFromWire)
}

// PriorityCreateOptions describes a ticket priority to create
type PriorityCreateOptions struct {
	Name   string
	Active bool
	Note   *string
}

// CreatePriority is not supported by this client and always fails with KindUnimplemented
func CreatePriority(ctx context.Context, api API, opts PriorityCreateOptions) (*Priority, error) {
	return nil, unimplemented("creating ticket priorities is not supported")
}

// Update is not supported by this client and always fails with KindUnimplemented
func (p *Priority) Update(ctx context.Context, api API) error {
	return unimplemented("updating ticket priorities is not supported")
}

// Delete is not supported by this client and always fails with KindUnimplemented
func (p *Priority) Delete(ctx context.Context, api API) error {
	return unimplemented("deleting ticket priorities is not supported")
}
