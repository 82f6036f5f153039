// Package zammad provides a client for the Zammad helpdesk REST API.
//
// The package maps the users, tickets, ticket articles, ticket states and ticket
// priorities endpoints onto typed Go values and validates every response before
// trusting it.
//
// # Architecture
//
//   - Client: the transport. Adds basic auth and the User-Agent, prefixes every path
//     with /api/v1 and checks body shape and status code.
//   - API: the interface codec functions accept. *Client implements it.
//   - Entities: User, Ticket, Article, State and Priority, each with a FromWire decoder,
//     a ToWire encoder and CRUD functions.
//   - Errors: *Error with a Kind of UnexpectedResponse, InvalidRequest or Unimplemented.
//
// # Usage
//
//	logger := zerolog.New(os.Stdout)
//	client := zammad.NewClient("https://helpdesk.example.com", "agent@example.com", "secret", logger,
//		zammad.WithTimeout(10*time.Second),
//	)
//
//	ctx := context.Background()
//	ticket, err := zammad.GetTicket(ctx, client, 42)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	// Relationships are never embedded; each accessor performs one request.
//	customer, err := ticket.Customer(ctx, client)
//
// # Error Handling
//
// Validation failures are *Error values. Failures of the HTTP layer itself (DNS,
// refused connections, TLS, context cancellation) are returned unchanged.
//
//	var zerr *zammad.Error
//	if errors.As(err, &zerr) {
//		switch zerr.Kind {
//		case zammad.KindUnexpectedResponse:
//			// zerr.Expected and zerr.Received describe the mismatch
//		case zammad.KindInvalidRequest:
//			// nothing was sent
//		case zammad.KindUnimplemented:
//		}
//	}
//
// errors.Is(err, zammad.ErrInvalidRequest) and the IsXxx helpers match on the kind alone.
package zammad
