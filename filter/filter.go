// Package filter selects tickets with expr-lang expressions such as
//
//	stateIs("open") and Updated < daysAgo(7) and not hasOwner()
package filter

import (
	"context"
	"fmt"
	"strings"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
	"golang.org/x/sync/errgroup"

	"github.com/s0up4200/zammadctl/zammad"
)

const (
	// concurrentThreshold is the ticket count from which Apply evaluates in parallel
	concurrentThreshold = 200
	maxWorkers          = 8
)

var programCache = newLRUCache[*vm.Program](64)

// Filter is a compiled ticket filter. It is safe for concurrent use.
type Filter struct {
	program *vm.Program
	expr    string
}

// Compile compiles a filter expression. Unknown identifiers and non-boolean
// expressions are rejected here rather than at evaluation time.
func Compile(expression string) (*Filter, error) {
	if strings.TrimSpace(expression) == "" {
		return nil, &CompilationError{Expression: expression, Reason: "empty expression"}
	}

	if program, ok := programCache.Get(expression); ok {
		return &Filter{program: program, expr: expression}, nil
	}

	program, err := expr.Compile(expression,
		expr.Env(ticketEnv(&zammad.Ticket{}, nil)),
		expr.AsBool(),
	)
	if err != nil {
		return nil, &CompilationError{Expression: expression, Reason: err.Error(), Err: err}
	}

	programCache.Put(expression, program)

	return &Filter{program: program, expr: expression}, nil
}

// Match evaluates the filter against one ticket. names may be nil.
func (f *Filter) Match(t *zammad.Ticket, names *Names) (bool, error) {
	result, err := expr.Run(f.program, ticketEnv(t, names))
	if err != nil {
		return false, &EvaluationError{Expression: f.expr, TicketNumber: t.Number, Reason: err.Error(), Err: err}
	}

	matched, ok := result.(bool)
	if !ok {
		return false, &EvaluationError{
			Expression:   f.expr,
			TicketNumber: t.Number,
			Reason:       fmt.Sprintf("result is %T, not bool", result),
		}
	}
	return matched, nil
}

// Apply returns the matching tickets in their original order.
// The first evaluation error aborts.
func (f *Filter) Apply(ctx context.Context, tickets []*zammad.Ticket, names *Names) ([]*zammad.Ticket, error) {
	if len(tickets) == 0 {
		return []*zammad.Ticket{}, nil
	}

	matched := make([]bool, len(tickets))

	if len(tickets) < concurrentThreshold {
		for i, t := range tickets {
			ok, err := f.Match(t, names)
			if err != nil {
				return nil, err
			}
			matched[i] = ok
		}
	} else {
		g, ctx := errgroup.WithContext(ctx)
		g.SetLimit(maxWorkers)

		for i, t := range tickets {
			i, t := i, t
			g.Go(func() error {
				if err := ctx.Err(); err != nil {
					return err
				}
				ok, err := f.Match(t, names)
				if err != nil {
					return err
				}
				// each goroutine owns its index
				matched[i] = ok
				return nil
			})
		}

		if err := g.Wait(); err != nil {
			return nil, err
		}
	}

	out := make([]*zammad.Ticket, 0, len(tickets))
	for i, t := range tickets {
		if matched[i] {
			out = append(out, t)
		}
	}
	return out, nil
}

// String returns the original expression
func (f *Filter) String() string {
	return f.expr
}
