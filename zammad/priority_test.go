package zammad_test

import (
	"context"
	"net/http"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/s0up4200/zammadctl/zammad"
	"github.com/s0up4200/zammadctl/zammad/zammadtest"
)

func TestPriorityFromWire(t *testing.T) {
	wire := zammadtest.RandomPriority()

	p, err := zammad.PriorityFromWire(rawJSON(t, wire))
	require.NoError(t, err)
	assert.Equal(t, wire["id"], p.ID)
	assert.Equal(t, wire["name"], p.Name)
	assert.Equal(t, wire["active"], p.Active)
	assert.Equal(t, wire, p.ToWire())

	for _, key := range []string{"id", "name", "active", "note", "updated_at", "created_at"} {
		_, err := zammad.PriorityFromWire(rawJSON(t, zammadtest.Without(wire, key)))
		assert.True(t, zammad.IsUnexpectedResponse(err), key)
	}
}

func TestListAndGetPriorities(t *testing.T) {
	srv := zammadtest.NewServer(t)
	wires := zammadtest.Many(3, zammadtest.RandomPriority)
	srv.Handle(http.MethodGet, "/ticket_priorities", wires)
	id := wires[2]["id"].(int)
	srv.Handle(http.MethodGet, "/ticket_priorities/"+strconv.Itoa(id), wires[2])

	priorities, err := zammad.ListPriorities(context.Background(), srv.Client())
	require.NoError(t, err)
	require.Len(t, priorities, 3)

	p, err := zammad.GetPriority(context.Background(), srv.Client(), float64(id))
	require.NoError(t, err)
	assert.Equal(t, wires[2]["name"], p.Name)

	_, err = zammad.GetPriority(context.Background(), srv.Client(), "high")
	assert.True(t, zammad.IsInvalidRequest(err))
}

func TestPriorityWritesUnimplemented(t *testing.T) {
	srv := zammadtest.NewServer(t)
	ctx := context.Background()
	client := srv.Client()

	_, err := zammad.CreatePriority(ctx, client, zammad.PriorityCreateOptions{Name: "4 urgent", Active: true})
	assert.True(t, zammad.IsUnimplemented(err))

	existing := &zammad.Priority{ID: 2, Name: "2 normal"}
	assert.True(t, zammad.IsUnimplemented(existing.Update(ctx, client)))
	assert.True(t, zammad.IsUnimplemented(existing.Delete(ctx, client)))

	assert.Zero(t, srv.TotalRequests())
}
