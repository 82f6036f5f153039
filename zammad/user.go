package zammad

import (
	"context"
	"encoding/json"
	"strings"
)

var userRequiredKeys = []string{"id", "firstname", "lastname", "updated_at", "created_at"}

// User represents a Zammad user (agent or customer)
type User struct {
	ID        int
	Firstname string
	Lastname  string
	UpdatedAt string
	CreatedAt string

	// Optional fields, nil when the server did not send them
	Email            *string
	Note             *string
	OrganizationID   *int
	OrganizationName *string
}

type userWire struct {
	ID        int    `json:"id"`
	Firstname string `json:"firstname"`
	Lastname  string `json:"lastname"`
	UpdatedAt string `json:"updated_at"`
	CreatedAt string `json:"created_at"`

	Email *string `json:"email"`
	Note  *string `json:"note"`
	// The misspelling is what the API uses.
	OrganizationID   *int    `json:"orgnaization_id"`
	OrganizationName *string `json:"organization"`
}

// UserFromWire decodes a user object as returned by the API
func UserFromWire(raw json.RawMessage) (*User, error) {
	var w userWire
	if err := decodeObject(raw, &w, userRequiredKeys...); err != nil {
		return nil, err
	}

	return &User{
		ID:               w.ID,
		Firstname:        w.Firstname,
		Lastname:         w.Lastname,
		UpdatedAt:        w.UpdatedAt,
		CreatedAt:        w.CreatedAt,
		Email:            w.Email,
		Note:             w.Note,
		OrganizationID:   w.OrganizationID,
		OrganizationName: w.OrganizationName,
	}, nil
}

// ToWire projects the user onto API field names. Unset or empty optional fields are left out.
func (u *User) ToWire() map[string]any {
	w := map[string]any{
		"id":         u.ID,
		"firstname":  u.Firstname,
		"lastname":   u.Lastname,
		"updated_at": u.UpdatedAt,
		"created_at": u.CreatedAt,
	}

	if truthy(u.Email) {
		w["email"] = *u.Email
	}
	if truthy(u.Note) {
		w["note"] = *u.Note
	}
	if u.OrganizationID != nil && *u.OrganizationID != 0 && truthy(u.OrganizationName) {
		w["orgnaization_id"] = *u.OrganizationID
		w["organization"] = *u.OrganizationName
	}

	return w
}

// MarshalJSON encodes the user in wire format
func (u *User) MarshalJSON() ([]byte, error) {
	return json.Marshal(u.ToWire())
}

// FullName returns first and last name joined, falling back to the email address
func (u *User) FullName() string {
	name := strings.TrimSpace(u.Firstname + " " + u.Lastname)
	if name == "" && u.Email != nil {
		return *u.Email
	}
	return name
}

// GetAuthenticatedUser returns the user the API credentials belong to
func GetAuthenticatedUser(ctx context.Context, api API) (*User, error) {
	raw, err := api.Get(ctx, UserMePath)
	if err != nil {
		return nil, err
	}
	return UserFromWire(raw)
}

// ListUsers returns all users visible to the authenticated user.
// Without admin permission this is only the own account.
func ListUsers(ctx context.Context, api API) ([]*User, error) {
	return fetchList(ctx, api, UsersPath, UserFromWire)
}

// GetUser returns the user with the given id. id must be an integer or an integer string.
func GetUser(ctx context.Context, api API, id any) (*User, error) {
	return fetchByID(ctx, api, UserPath, id, UserFromWire)
}

// SearchUsers returns the users matching query
func SearchUsers(ctx context.Context, api API, query string) ([]*User, error) {
	return fetchSearch(ctx, api, UserSearchPath, query, UserFromWire)
}

// UserCreateOptions describes a user to create
type UserCreateOptions struct {
	Firstname string
	Lastname  string

	Email          *string
	Note           *string
	OrganizationID *int
	// OrganizationName is only sent together with a non-zero OrganizationID
	OrganizationName *string
}

func (o UserCreateOptions) wire() (map[string]any, error) {
	if o.Firstname == "" {
		return nil, invalidRequest("firstname is required")
	}
	if o.Lastname == "" {
		return nil, invalidRequest("lastname is required")
	}

	body := map[string]any{
		"firstname": o.Firstname,
		"lastname":  o.Lastname,
	}
	if o.Email != nil {
		body["email"] = *o.Email
	}
	if o.Note != nil {
		body["note"] = *o.Note
	}
	if o.OrganizationID != nil && *o.OrganizationID != 0 && truthy(o.OrganizationName) {
		body["orgnaization_id"] = *o.OrganizationID
		body["organization"] = *o.OrganizationName
	}
	return body, nil
}

// CreateUser creates a user and returns it as stored by the server
func CreateUser(ctx context.Context, api API, opts UserCreateOptions) (*User, error) {
	body, err := opts.wire()
	if err != nil {
		return nil, err
	}
	return create(ctx, api, UsersPath, body, UserFromWire)
}

// Update pushes the user's fields to the server. The response is not merged back;
// fetch the user again to see server-side changes.
func (u *User) Update(ctx context.Context, api API) error {
	path, err := singular(UserPath, u.ID)
	if err != nil {
		return err
	}
	_, err = api.Put(ctx, path, u.ToWire())
	return err
}

// Delete removes the user on the server
func (u *User) Delete(ctx context.Context, api API) error {
	path, err := singular(UserPath, u.ID)
	if err != nil {
		return err
	}
	_, err = api.Delete(ctx, path)
	return err
}
