package filter

import (
	"strings"
	"time"

	"github.com/s0up4200/zammadctl/zammad"
)

// Names maps state and priority ids to their display names so expressions
// can use State and Priority instead of raw ids. A nil *Names leaves both empty.
type Names struct {
	States     map[int]string
	Priorities map[int]string
}

// NewNames indexes the given states and priorities by id
func NewNames(states []*zammad.State, priorities []*zammad.Priority) *Names {
	n := &Names{
		States:     make(map[int]string, len(states)),
		Priorities: make(map[int]string, len(priorities)),
	}
	for _, s := range states {
		n.States[s.ID] = s.Name
	}
	for _, p := range priorities {
		n.Priorities[p.ID] = p.Name
	}
	return n
}

func (n *Names) state(id int) string {
	if n == nil {
		return ""
	}
	return n.States[id]
}

func (n *Names) priority(id int) string {
	if n == nil {
		return ""
	}
	return n.Priorities[id]
}

// helpers are available in every expression
var helpers = map[string]any{
	// Date helpers
	"daysSince": func(t time.Time) int {
		return int(time.Since(t).Hours() / 24)
	},
	"hoursSince": func(t time.Time) int {
		return int(time.Since(t).Hours())
	},
	"daysAgo": func(days int) time.Time {
		return time.Now().AddDate(0, 0, -days)
	},
	"monthsAgo": func(months int) time.Time {
		return time.Now().AddDate(0, -months, 0)
	},
	"parseDate": func(dateStr string) time.Time {
		t, _ := time.Parse("2006-01-02", dateStr)
		return t
	},
	// Case-insensitive string helpers; the contains/startsWith/endsWith operators are case-sensitive
	"includes": func(str, substr string) bool {
		return strings.Contains(strings.ToLower(str), strings.ToLower(substr))
	},
	"prefixed": func(str, prefix string) bool {
		return strings.HasPrefix(strings.ToLower(str), strings.ToLower(prefix))
	},
}

// ticketEnv exposes a ticket to expressions
func ticketEnv(t *zammad.Ticket, names *Names) map[string]any {
	env := make(map[string]any, len(helpers)+16)
	for k, v := range helpers {
		env[k] = v
	}

	var note string
	if t.Note != nil {
		note = *t.Note
	}
	var ownerID int
	if t.OwnerID != nil {
		ownerID = *t.OwnerID
	}
	stateName := names.state(t.StateID)
	priorityName := names.priority(t.PriorityID)

	env["ID"] = t.ID
	env["Number"] = t.Number
	env["Title"] = t.Title
	env["GroupID"] = t.GroupID
	env["StateID"] = t.StateID
	env["PriorityID"] = t.PriorityID
	env["CustomerID"] = t.CustomerID
	env["OwnerID"] = ownerID
	env["Note"] = note
	env["Created"] = t.CreatedTime()
	env["Updated"] = t.UpdatedTime()
	env["State"] = stateName
	env["Priority"] = priorityName

	env["hasOwner"] = func() bool {
		return ownerID != 0
	}
	env["stateIs"] = func(name string) bool {
		return strings.EqualFold(stateName, name)
	}
	env["priorityIs"] = func(name string) bool {
		return strings.EqualFold(priorityName, name)
	}

	return env
}
