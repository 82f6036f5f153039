package zammad

import (
	"context"
	"encoding/json"
	"strconv"
)

var articleRequiredKeys = []string{
	"id",
	"ticket_id",
	"sender_id",
	"subject",
	"body",
	"content_type",
	"internal",
	"type",
	"sender",
	"created_by_id",
	"updated_by_id",
	"created_at",
	"updated_at",
}

// Article is a single message, note or call log entry of a ticket
type Article struct {
	ID       int
	TicketID int
	SenderID int
	Subject  *string
	Body     string
	// ContentType is the MIME type of Body, usually "text/plain"
	ContentType string
	Internal    bool
	// Type is the channel, e.g. "note", "phone" or "email"
	Type string
	// SenderRole is e.g. "Agent", "Customer" or "System"
	SenderRole  string
	CreatedByID int
	UpdatedByID int
	UpdatedAt   string
	CreatedAt   string
}

type articleWire struct {
	ID          int     `json:"id"`
	TicketID    int     `json:"ticket_id"`
	SenderID    int     `json:"sender_id"`
	Subject     *string `json:"subject"`
	Body        string  `json:"body"`
	ContentType string  `json:"content_type"`
	Internal    bool    `json:"internal"`
	Type        string  `json:"type"`
	Sender      string  `json:"sender"`
	CreatedByID int     `json:"created_by_id"`
	UpdatedByID int     `json:"updated_by_id"`
	UpdatedAt   string  `json:"updated_at"`
	CreatedAt   string  `json:"created_at"`
}

// ArticleFromWire decodes an article object as returned by the API
func ArticleFromWire(raw json.RawMessage) (*Article, error) {
	var w articleWire
	if err := decodeObject(raw, &w, articleRequiredKeys...); err != nil {
		return nil, err
	}

	return &Article{
		ID:          w.ID,
		TicketID:    w.TicketID,
		SenderID:    w.SenderID,
		Subject:     w.Subject,
		Body:        w.Body,
		ContentType: w.ContentType,
		Internal:    w.Internal,
		Type:        w.Type,
		SenderRole:  w.Sender,
		CreatedByID: w.CreatedByID,
		UpdatedByID: w.UpdatedByID,
		UpdatedAt:   w.UpdatedAt,
		CreatedAt:   w.CreatedAt,
	}, nil
}

// ToWire projects the article onto API field names
func (a *Article) ToWire() map[string]any {
	return map[string]any{
		"id":            a.ID,
		"ticket_id":     a.TicketID,
		"sender_id":     a.SenderID,
		"subject":       nullable(a.Subject),
		"body":          a.Body,
		"content_type":  a.ContentType,
		"internal":      a.Internal,
		"type":          a.Type,
		"sender":        a.SenderRole,
		"created_by_id": a.CreatedByID,
		"updated_by_id": a.UpdatedByID,
		"updated_at":    a.UpdatedAt,
		"created_at":    a.CreatedAt,
	}
}

// MarshalJSON encodes the article in wire format
func (a *Article) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.ToWire())
}

// ListArticles returns all articles the authenticated user can see
func ListArticles(ctx context.Context, api API) ([]*Article, error) {
	return fetchList(ctx, api, TicketArticlesPath, ArticleFromWire)
}

// ListArticlesForTicket returns all articles belonging to a ticket
func ListArticlesForTicket(ctx context.Context, api API, ticketID any) ([]*Article, error) {
	id, err := AssertInteger(ticketID)
	if err != nil {
		return nil, err
	}
	return fetchList(ctx, api, TicketArticleByTicketPath+strconv.Itoa(id), ArticleFromWire)
}

// GetArticle returns the article with the given id
func GetArticle(ctx context.Context, api API, id any) (*Article, error) {
	return fetchByID(ctx, api, TicketArticlePath, id, ArticleFromWire)
}

// ArticleCreateOptions describes an article to add to an existing ticket
type ArticleCreateOptions struct {
	TicketID int
	Body     string

	Subject     *string
	ContentType *string
	// Internal defaults to false on the server
	Internal *bool
	// Type defaults to "note" on the server
	Type *string
}

type articleCreateWire struct {
	TicketID    int     `json:"ticket_id,omitempty"`
	Body        string  `json:"body"`
	Subject     *string `json:"subject,omitempty"`
	ContentType *string `json:"content_type,omitempty"`
	Internal    *bool   `json:"internal,omitempty"`
	Type        *string `json:"type,omitempty"`
}

func (o ArticleCreateOptions) wire() (*articleCreateWire, error) {
	if o.TicketID == 0 {
		return nil, invalidRequest("ticketId is required")
	}
	if o.Body == "" {
		return nil, invalidRequest("body is required")
	}

	return &articleCreateWire{
		TicketID:    o.TicketID,
		Body:        o.Body,
		Subject:     o.Subject,
		ContentType: o.ContentType,
		Internal:    o.Internal,
		Type:        o.Type,
	}, nil
}

// CreateArticle adds an article to a ticket
func CreateArticle(ctx context.Context, api API, opts ArticleCreateOptions) (*Article, error) {
	body, err := opts.wire()
	if err != nil {
		return nil, err
	}
	return create(ctx, api, TicketArticlesPath, body, ArticleFromWire)
}

// Update pushes the article's fields to the server. The response is not merged back.
func (a *Article) Update(ctx context.Context, api API) error {
	path, err := singular(TicketArticlePath, a.ID)
	if err != nil {
		return err
	}
	_, err = api.Put(ctx, path, a.ToWire())
	return err
}

// Delete removes the article on the server
func (a *Article) Delete(ctx context.Context, api API) error {
	path, err := singular(TicketArticlePath, a.ID)
	if err != nil {
		return err
	}
	_, err = api.Delete(ctx, path)
	return err
}

// Sender fetches the user who created the article, or returns nil if unknown.
// SenderID names the sender role on the server, not a user, so CreatedByID is used.
func (a *Article) Sender(ctx context.Context, api API) (*User, error) {
	if a.CreatedByID == 0 {
		return nil, nil
	}
	return GetUser(ctx, api, a.CreatedByID)
}

// Ticket fetches the ticket the article belongs to, or returns nil if none is set
func (a *Article) Ticket(ctx context.Context, api API) (*Ticket, error) {
	if a.TicketID == 0 {
		return nil, nil
	}
	return GetTicket(ctx, api, a.TicketID)
}
