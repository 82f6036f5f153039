package zammad

import (
	"context"
	"encoding/json"
	"time"
)

var ticketRequiredKeys = []string{
	"id",
	"title",
	"number",
	"group_id",
	"state_id",
	"priority_id",
	"customer_id",
	"note",
	"updated_at",
	"created_at",
}

// Ticket represents a Zammad ticket. StateID, PriorityID, CustomerID and OwnerID
// reference other entities and are resolved with the accessor methods.
type Ticket struct {
	ID         int
	Title      string
	Number     string
	GroupID    int
	StateID    int
	PriorityID int
	CustomerID int
	Note       *string
	UpdatedAt  string
	CreatedAt  string

	OwnerID *int
}

type ticketWire struct {
	ID         int     `json:"id"`
	Title      string  `json:"title"`
	Number     string  `json:"number"`
	GroupID    int     `json:"group_id"`
	StateID    int     `json:"state_id"`
	PriorityID int     `json:"priority_id"`
	CustomerID int     `json:"customer_id"`
	Note       *string `json:"note"`
	UpdatedAt  string  `json:"updated_at"`
	CreatedAt  string  `json:"created_at"`
	OwnerID    *int    `json:"owner_id"`
}

// TicketFromWire decodes a ticket object as returned by the API
func TicketFromWire(raw json.RawMessage) (*Ticket, error) {
	var w ticketWire
	if err := decodeObject(raw, &w, ticketRequiredKeys...); err != nil {
		return nil, err
	}

	return &Ticket{
		ID:         w.ID,
		Title:      w.Title,
		Number:     w.Number,
		GroupID:    w.GroupID,
		StateID:    w.StateID,
		PriorityID: w.PriorityID,
		CustomerID: w.CustomerID,
		Note:       w.Note,
		UpdatedAt:  w.UpdatedAt,
		CreatedAt:  w.CreatedAt,
		OwnerID:    w.OwnerID,
	}, nil
}

// ToWire projects the ticket onto API field names
func (t *Ticket) ToWire() map[string]any {
	w := map[string]any{
		"id":          t.ID,
		"title":       t.Title,
		"number":      t.Number,
		"group_id":    t.GroupID,
		"state_id":    t.StateID,
		"priority_id": t.PriorityID,
		"customer_id": t.CustomerID,
		"note":        nullable(t.Note),
		"updated_at":  t.UpdatedAt,
		"created_at":  t.CreatedAt,
	}
	if t.OwnerID != nil {
		w["owner_id"] = *t.OwnerID
	}
	return w
}

// MarshalJSON encodes the ticket in wire format
func (t *Ticket) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.ToWire())
}

// CreatedTime parses CreatedAt, returning the zero time if it is malformed
func (t *Ticket) CreatedTime() time.Time {
	ts, _ := ParseTimestamp(t.CreatedAt)
	return ts
}

// UpdatedTime parses UpdatedAt, returning the zero time if it is malformed
func (t *Ticket) UpdatedTime() time.Time {
	ts, _ := ParseTimestamp(t.UpdatedAt)
	return ts
}

// ListTickets returns all tickets the authenticated user can see
func ListTickets(ctx context.Context, api API) ([]*Ticket, error) {
	return fetchList(ctx, api, TicketsPath, TicketFromWire)
}

// GetTicket returns the ticket with the given id
func GetTicket(ctx context.Context, api API, id any) (*Ticket, error) {
	return fetchByID(ctx, api, TicketPath, id, TicketFromWire)
}

// SearchTickets returns the tickets matching query
func SearchTickets(ctx context.Context, api API, query string) ([]*Ticket, error) {
	return fetchSearch(ctx, api, TicketSearchPath, query, TicketFromWire)
}

// TicketCreateOptions describes a new ticket and its first article
type TicketCreateOptions struct {
	Title       string
	GroupID     int
	CustomerID  int
	ArticleBody string

	OwnerID *int
	// ArticleSubject defaults to none on the server
	ArticleSubject *string
	// ArticleType defaults to "note" on the server
	ArticleType *string
	// ArticleInternal defaults to false on the server
	ArticleInternal *bool
}

type ticketCreateWire struct {
	Title      string            `json:"title"`
	GroupID    int               `json:"group_id"`
	CustomerID int               `json:"customer_id"`
	OwnerID    *int              `json:"owner_id,omitempty"`
	Article    articleCreateWire `json:"article"`
}

func (o TicketCreateOptions) wire() (*ticketCreateWire, error) {
	switch {
	case o.Title == "":
		return nil, invalidRequest("title is required")
	case o.GroupID == 0:
		return nil, invalidRequest("groupId is required")
	case o.CustomerID == 0:
		return nil, invalidRequest("customerId is required")
	case o.ArticleBody == "":
		return nil, invalidRequest("articleBody is required")
	}

	return &ticketCreateWire{
		Title:      o.Title,
		GroupID:    o.GroupID,
		CustomerID: o.CustomerID,
		OwnerID:    o.OwnerID,
		Article: articleCreateWire{
			Body:     o.ArticleBody,
			Subject:  o.ArticleSubject,
			Type:     o.ArticleType,
			Internal: o.ArticleInternal,
		},
	}, nil
}

// CreateTicket creates a ticket with its first article
func CreateTicket(ctx context.Context, api API, opts TicketCreateOptions) (*Ticket, error) {
	body, err := opts.wire()
	if err != nil {
		return nil, err
	}
	return create(ctx, api, TicketsPath, body, TicketFromWire)
}

// Update pushes the ticket's fields to the server. The response is not merged back.
func (t *Ticket) Update(ctx context.Context, api API) error {
	path, err := singular(TicketPath, t.ID)
	if err != nil {
		return err
	}
	_, err = api.Put(ctx, path, t.ToWire())
	return err
}

// Delete removes the ticket on the server
func (t *Ticket) Delete(ctx context.Context, api API) error {
	path, err := singular(TicketPath, t.ID)
	if err != nil {
		return err
	}
	_, err = api.Delete(ctx, path)
	return err
}

// Customer fetches the customer of the ticket, or returns nil if none is set
func (t *Ticket) Customer(ctx context.Context, api API) (*User, error) {
	if t.CustomerID == 0 {
		return nil, nil
	}
	return GetUser(ctx, api, t.CustomerID)
}

// Owner fetches the agent owning the ticket, or returns nil if none is set
func (t *Ticket) Owner(ctx context.Context, api API) (*User, error) {
	if t.OwnerID == nil || *t.OwnerID == 0 {
		return nil, nil
	}
	return GetUser(ctx, api, *t.OwnerID)
}

// State fetches the current state of the ticket, or returns nil if none is set
func (t *Ticket) State(ctx context.Context, api API) (*State, error) {
	if t.StateID == 0 {
		return nil, nil
	}
	return GetState(ctx, api, t.StateID)
}

// Priority fetches the priority of the ticket, or returns nil if none is set
func (t *Ticket) Priority(ctx context.Context, api API) (*Priority, error) {
	if t.PriorityID == 0 {
		return nil, nil
	}
	return GetPriority(ctx, api, t.PriorityID)
}

// Articles fetches all articles (messages, notes, ...) of the ticket
func (t *Ticket) Articles(ctx context.Context, api API) ([]*Article, error) {
	if t.ID == 0 {
		return nil, nil
	}
	return ListArticlesForTicket(ctx, api, t.ID)
}
