package zammad_test

import (
	"context"
	"encoding/json"
	"math"
	"net/http"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/s0up4200/zammadctl/zammad"
	"github.com/s0up4200/zammadctl/zammad/zammadtest"
)

func rawJSON(t *testing.T, v any) json.RawMessage {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	return data
}

func assertUser(t *testing.T, wire map[string]any, u *zammad.User) {
	t.Helper()
	require.NotNil(t, u)
	assert.Equal(t, wire["id"], u.ID)
	assert.Equal(t, wire["firstname"], u.Firstname)
	assert.Equal(t, wire["lastname"], u.Lastname)
	assert.Equal(t, wire["updated_at"], u.UpdatedAt)
	assert.Equal(t, wire["created_at"], u.CreatedAt)
}

func TestUserFromWire(t *testing.T) {
	wire := zammadtest.RandomUser()

	u, err := zammad.UserFromWire(rawJSON(t, wire))
	require.NoError(t, err)
	assertUser(t, wire, u)

	require.NotNil(t, u.Email)
	assert.Equal(t, wire["email"], *u.Email)
	require.NotNil(t, u.Note)
	assert.Equal(t, wire["note"], *u.Note)
	require.NotNil(t, u.OrganizationID)
	assert.Equal(t, wire["orgnaization_id"], *u.OrganizationID)
	require.NotNil(t, u.OrganizationName)
	assert.Equal(t, wire["organization"], *u.OrganizationName)

	assert.Equal(t, wire, u.ToWire())
}

func TestUserFromWireMissingKeys(t *testing.T) {
	for _, key := range []string{"id", "firstname", "lastname", "updated_at", "created_at"} {
		t.Run(key, func(t *testing.T) {
			_, err := zammad.UserFromWire(rawJSON(t, zammadtest.Without(zammadtest.RandomUser(), key)))

			var zerr *zammad.Error
			require.ErrorAs(t, err, &zerr)
			assert.Equal(t, zammad.KindUnexpectedResponse, zerr.Kind)
			assert.Equal(t, key+" attribute missing", zerr.Message)
		})
	}
}

func TestUserFromWireNotObject(t *testing.T) {
	for _, raw := range []string{`[]`, `"user"`, `42`, `null`} {
		_, err := zammad.UserFromWire(json.RawMessage(raw))
		assert.True(t, zammad.IsUnexpectedResponse(err), raw)
	}
}

func TestUserOptionalFields(t *testing.T) {
	wire := zammadtest.RandomUser()
	for _, key := range []string{"email", "note", "orgnaization_id", "organization"} {
		delete(wire, key)
	}

	u, err := zammad.UserFromWire(rawJSON(t, wire))
	require.NoError(t, err)
	assert.Nil(t, u.Email)
	assert.Nil(t, u.Note)
	assert.Nil(t, u.OrganizationID)
	assert.Nil(t, u.OrganizationName)
	assert.Equal(t, wire, u.ToWire())

	t.Run("empty optional strings are omitted", func(t *testing.T) {
		u, err := zammad.UserFromWire(rawJSON(t, zammadtest.With(wire, "email", "")))
		require.NoError(t, err)
		assert.NotContains(t, u.ToWire(), "email")
	})

	t.Run("organization needs id and name", func(t *testing.T) {
		u, err := zammad.UserFromWire(rawJSON(t, zammadtest.With(wire, "orgnaization_id", 4)))
		require.NoError(t, err)
		out := u.ToWire()
		assert.NotContains(t, out, "orgnaization_id")
		assert.NotContains(t, out, "organization")
	})
}

func TestUserMarshalJSON(t *testing.T) {
	wire := zammadtest.RandomUser()
	u, err := zammad.UserFromWire(rawJSON(t, wire))
	require.NoError(t, err)

	data, err := json.Marshal(u)
	require.NoError(t, err)
	assert.JSONEq(t, string(rawJSON(t, wire)), string(data))
}

func TestUserFullName(t *testing.T) {
	email := "nicole.braun@zammad.org"
	assert.Equal(t, "Nicole Braun", (&zammad.User{Firstname: "Nicole", Lastname: "Braun"}).FullName())
	assert.Equal(t, "Nicole", (&zammad.User{Firstname: "Nicole"}).FullName())
	assert.Equal(t, email, (&zammad.User{Email: &email}).FullName())
	assert.Equal(t, "", (&zammad.User{}).FullName())
}

func TestGetAuthenticatedUser(t *testing.T) {
	srv := zammadtest.NewServer(t)
	wire := zammadtest.RandomUser()
	ep := srv.Handle(http.MethodGet, "/users/me", wire)

	u, err := zammad.GetAuthenticatedUser(context.Background(), srv.Client())
	require.NoError(t, err)
	assertUser(t, wire, u)
	assert.Equal(t, 1, ep.Hits())
}

func TestListUsers(t *testing.T) {
	srv := zammadtest.NewServer(t)
	wires := zammadtest.Many(5, zammadtest.RandomUser)
	srv.Handle(http.MethodGet, "/users", wires)

	users, err := zammad.ListUsers(context.Background(), srv.Client())
	require.NoError(t, err)
	require.Len(t, users, len(wires))
	for i, wire := range wires {
		assertUser(t, wire, users[i])
	}
}

func TestListUsersEmpty(t *testing.T) {
	srv := zammadtest.NewServer(t)
	srv.Handle(http.MethodGet, "/users", []any{})

	users, err := zammad.ListUsers(context.Background(), srv.Client())
	require.NoError(t, err)
	assert.Empty(t, users)
}

func TestListUsersInvalid(t *testing.T) {
	t.Run("object instead of array", func(t *testing.T) {
		srv := zammadtest.NewServer(t)
		srv.Handle(http.MethodGet, "/users", zammadtest.RandomUser())

		_, err := zammad.ListUsers(context.Background(), srv.Client())
		var zerr *zammad.Error
		require.ErrorAs(t, err, &zerr)
		assert.Equal(t, "Invalid response (not received array)", zerr.Message)
		assert.Equal(t, "array", zerr.Expected)
		assert.Equal(t, "object", zerr.Received)
	})

	t.Run("one bad element fails the list", func(t *testing.T) {
		srv := zammadtest.NewServer(t)
		srv.Handle(http.MethodGet, "/users", []any{
			zammadtest.RandomUser(),
			zammadtest.Without(zammadtest.RandomUser(), "lastname"),
		})

		users, err := zammad.ListUsers(context.Background(), srv.Client())
		assert.Nil(t, users)
		assert.True(t, zammad.IsUnexpectedResponse(err))
	})
}

func TestGetUser(t *testing.T) {
	srv := zammadtest.NewServer(t)
	wire := zammadtest.RandomUser()
	id := wire["id"].(int)
	ep := srv.Handle(http.MethodGet, "/users/"+strconv.Itoa(id), wire)

	u, err := zammad.GetUser(context.Background(), srv.Client(), id)
	require.NoError(t, err)
	assertUser(t, wire, u)

	u, err = zammad.GetUser(context.Background(), srv.Client(), strconv.Itoa(id))
	require.NoError(t, err)
	assertUser(t, wire, u)

	assert.Equal(t, 2, ep.Hits())
}

func TestGetUserInvalidID(t *testing.T) {
	srv := zammadtest.NewServer(t)

	for _, id := range []any{"abc", 1.5, nil, true, "1e3", 1e20, uint64(math.MaxUint64), "9223372036854775808"} {
		_, err := zammad.GetUser(context.Background(), srv.Client(), id)
		assert.True(t, zammad.IsInvalidRequest(err), "%v", id)
	}
	assert.Zero(t, srv.TotalRequests())
}

func TestGetUserNotFound(t *testing.T) {
	srv := zammadtest.NewServer(t)
	srv.HandleStatus(http.MethodGet, "/users/9999", http.StatusNotFound, map[string]any{"error": "not found"})

	_, err := zammad.GetUser(context.Background(), srv.Client(), 9999)
	var zerr *zammad.Error
	require.ErrorAs(t, err, &zerr)
	assert.Equal(t, "404", zerr.Received)
}

func TestSearchUsers(t *testing.T) {
	srv := zammadtest.NewServer(t)
	wires := zammadtest.Many(3, zammadtest.RandomUser)
	ep := srv.Handle(http.MethodGet, "/users/search", wires)

	users, err := zammad.SearchUsers(context.Background(), srv.Client(), "foo")
	require.NoError(t, err)
	require.Len(t, users, 3)
	assert.Equal(t, "foo", ep.Last().Query.Get("query"))
}

func TestCreateUser(t *testing.T) {
	srv := zammadtest.NewServer(t)
	wire := zammadtest.RandomUser()
	ep := srv.HandleStatus(http.MethodPost, "/users", http.StatusCreated, wire)

	email := "nicole.braun@zammad.org"
	orgID := 3
	orgName := "Zammad Foundation"
	u, err := zammad.CreateUser(context.Background(), srv.Client(), zammad.UserCreateOptions{
		Firstname:        "Nicole",
		Lastname:         "Braun",
		Email:            &email,
		OrganizationID:   &orgID,
		OrganizationName: &orgName,
	})
	require.NoError(t, err)
	assertUser(t, wire, u)

	body := ep.Last().JSON()
	assert.Equal(t, map[string]any{
		"firstname":       "Nicole",
		"lastname":        "Braun",
		"email":           email,
		"orgnaization_id": float64(orgID),
		"organization":    orgName,
	}, body)
}

func TestCreateUserMinimal(t *testing.T) {
	srv := zammadtest.NewServer(t)
	ep := srv.HandleStatus(http.MethodPost, "/users", http.StatusCreated, zammadtest.RandomUser())

	orgID := 3
	_, err := zammad.CreateUser(context.Background(), srv.Client(), zammad.UserCreateOptions{
		Firstname:      "Nicole",
		Lastname:       "Braun",
		OrganizationID: &orgID,
	})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"firstname": "Nicole", "lastname": "Braun"}, ep.Last().JSON())
}

func TestCreateUserEmptyOrganization(t *testing.T) {
	zero, orgID := 0, 3
	empty, orgName := "", "Zammad Foundation"

	tests := []struct {
		name    string
		orgID   *int
		orgName *string
	}{
		{name: "zero id", orgID: &zero, orgName: &orgName},
		{name: "empty name", orgID: &orgID, orgName: &empty},
		{name: "both empty", orgID: &zero, orgName: &empty},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := zammadtest.NewServer(t)
			ep := srv.HandleStatus(http.MethodPost, "/users", http.StatusCreated, zammadtest.RandomUser())

			_, err := zammad.CreateUser(context.Background(), srv.Client(), zammad.UserCreateOptions{
				Firstname:        "Nicole",
				Lastname:         "Braun",
				OrganizationID:   tt.orgID,
				OrganizationName: tt.orgName,
			})
			require.NoError(t, err)
			assert.Equal(t, map[string]any{"firstname": "Nicole", "lastname": "Braun"}, ep.Last().JSON())
		})
	}
}

func TestCreateUserValidation(t *testing.T) {
	srv := zammadtest.NewServer(t)

	tests := []struct {
		name string
		opts zammad.UserCreateOptions
		msg  string
	}{
		{name: "missing firstname", opts: zammad.UserCreateOptions{Lastname: "Braun"}, msg: "firstname is required"},
		{name: "missing lastname", opts: zammad.UserCreateOptions{Firstname: "Nicole"}, msg: "lastname is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := zammad.CreateUser(context.Background(), srv.Client(), tt.opts)
			require.True(t, zammad.IsInvalidRequest(err))
			assert.Contains(t, err.Error(), tt.msg)
		})
	}
	assert.Zero(t, srv.TotalRequests())
}

func TestUserUpdateAndDelete(t *testing.T) {
	srv := zammadtest.NewServer(t)
	wire := zammadtest.RandomUser()
	path := "/users/" + strconv.Itoa(wire["id"].(int))
	put := srv.Handle(http.MethodPut, path, wire)
	del := srv.Handle(http.MethodDelete, path, map[string]any{})

	u, err := zammad.UserFromWire(rawJSON(t, wire))
	require.NoError(t, err)
	u.Lastname = "Renamed"

	require.NoError(t, u.Update(context.Background(), srv.Client()))
	require.Equal(t, 1, put.Hits())
	assert.Equal(t, "Renamed", put.Last().JSON()["lastname"])
	assert.Equal(t, wire["firstname"], put.Last().JSON()["firstname"])

	require.NoError(t, u.Delete(context.Background(), srv.Client()))
	assert.Equal(t, 1, del.Hits())
}

func TestUserUpdateWithoutID(t *testing.T) {
	srv := zammadtest.NewServer(t)
	u := &zammad.User{Firstname: "Nicole"}

	assert.True(t, zammad.IsInvalidRequest(u.Update(context.Background(), srv.Client())))
	assert.True(t, zammad.IsInvalidRequest(u.Delete(context.Background(), srv.Client())))
	assert.Zero(t, srv.TotalRequests())
}
