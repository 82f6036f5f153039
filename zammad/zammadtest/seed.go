package zammadtest

import (
	"math/rand"
	"strings"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

// Timestamp layout of the API, millisecond precision in UTC
const TimestampLayout = "2006-01-02T15:04:05.000Z"

var idSeq atomic.Int64

func init() {
	idSeq.Store(int64(rand.Intn(1000)))
}

// RandomID returns a positive id that is unique within the test binary
func RandomID() int {
	return int(idSeq.Add(int64(1 + rand.Intn(16))))
}

// RandomString returns a random lowercase hex string of length n
func RandomString(n int) string {
	var b strings.Builder
	for b.Len() < n {
		b.WriteString(strings.ReplaceAll(uuid.NewString(), "-", ""))
	}
	return b.String()[:n]
}

// RandomName returns a capitalized random word
func RandomName() string {
	s := RandomString(8)
	return strings.ToUpper(s[:1]) + s[1:]
}

// RandomEmail returns a random address in the example.com domain
func RandomEmail() string {
	return RandomString(10) + "@example.com"
}

// RandomBool returns true or false with equal chance
func RandomBool() bool {
	return rand.Intn(2) == 1
}

// RandomTimestamp returns a timestamp within the last year, formatted like the API does
func RandomTimestamp() string {
	offset := time.Duration(rand.Int63n(int64(365 * 24 * time.Hour)))
	return time.Now().UTC().Add(-offset).Format(TimestampLayout)
}

// RandomUser returns a user object in wire format with every optional field set
func RandomUser() map[string]any {
	return map[string]any{
		"id":              RandomID(),
		"firstname":       RandomName(),
		"lastname":        RandomName(),
		"email":           RandomEmail(),
		"note":            RandomString(24),
		"orgnaization_id": RandomID(),
		"organization":    RandomName() + " Ltd",
		"updated_at":      RandomTimestamp(),
		"created_at":      RandomTimestamp(),
	}
}

// RandomTicket returns a ticket object in wire format
func RandomTicket() map[string]any {
	return map[string]any{
		"id":          RandomID(),
		"title":       RandomString(20),
		"number":      RandomDigits(5),
		"group_id":    RandomID(),
		"state_id":    RandomID(),
		"priority_id": RandomID(),
		"customer_id": RandomID(),
		"owner_id":    RandomID(),
		"note":        RandomString(16),
		"updated_at":  RandomTimestamp(),
		"created_at":  RandomTimestamp(),
	}
}

// RandomArticle returns an article object in wire format belonging to ticketID
func RandomArticle(ticketID int) map[string]any {
	return map[string]any{
		"id":            RandomID(),
		"ticket_id":     ticketID,
		"sender_id":     1 + rand.Intn(3),
		"subject":       RandomString(12),
		"body":          RandomString(64),
		"content_type":  "text/plain",
		"internal":      RandomBool(),
		"type":          "note",
		"sender":        "Agent",
		"created_by_id": RandomID(),
		"updated_by_id": RandomID(),
		"updated_at":    RandomTimestamp(),
		"created_at":    RandomTimestamp(),
	}
}

// RandomState returns a ticket state object in wire format
func RandomState() map[string]any {
	return map[string]any{
		"id":                RandomID(),
		"name":              RandomString(6),
		"state_type_id":     RandomID(),
		"next_state_id":     RandomID(),
		"ignore_escalation": RandomBool(),
		"active":            true,
		"note":              RandomString(16),
		"updated_at":        RandomTimestamp(),
		"created_at":        RandomTimestamp(),
	}
}

// RandomPriority returns a ticket priority object in wire format
func RandomPriority() map[string]any {
	return map[string]any{
		"id":         RandomID(),
		"name":       RandomString(6),
		"active":     true,
		"note":       RandomString(16),
		"updated_at": RandomTimestamp(),
		"created_at": RandomTimestamp(),
	}
}

// RandomDigits returns n random decimal digits, e.g. a ticket number
func RandomDigits(n int) string {
	var b strings.Builder
	for i := 0; i < n; i++ {
		b.WriteByte(byte('0' + rand.Intn(10)))
	}
	return b.String()
}

// Many calls gen n times
func Many(n int, gen func() map[string]any) []map[string]any {
	out := make([]map[string]any, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, gen())
	}
	return out
}

// Without returns a copy of object lacking key
func Without(object map[string]any, key string) map[string]any {
	out := make(map[string]any, len(object))
	for k, v := range object {
		if k != key {
			out[k] = v
		}
	}
	return out
}

// With returns a copy of object with key set to value
func With(object map[string]any, key string, value any) map[string]any {
	out := make(map[string]any, len(object)+1)
	for k, v := range object {
		out[k] = v
	}
	out[key] = value
	return out
}
