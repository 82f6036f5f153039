package cmd

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/s0up4200/zammadctl/filter"
	"github.com/s0up4200/zammadctl/zammad"
)

var (
	// Command flags
	filterExpr  string
	preset      string
	closedState string
)

var ticketsCmd = &cobra.Command{
	Use:     "tickets",
	Aliases: []string{"ticket"},
	Short:   "Manage Zammad tickets",
}

var ticketsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List tickets, optionally matching a filter expression",
	Long: `List all tickets visible to the authenticated user.

With --filter or --preset only tickets matching the expression are shown, e.g.

  zammadctl tickets list --filter 'stateIs("open") and Updated < daysAgo(7)'

Variables: ID, Number, Title, Note, GroupID, StateID, PriorityID, CustomerID, OwnerID,
Created, Updated, State, Priority. Functions: stateIs, priorityIs, hasOwner, includes,
prefixed, daysSince, hoursSince, daysAgo, monthsAgo, parseDate.`,
	Args: cobra.NoArgs,
	RunE: runTicketsList,
}

var ticketsShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show a ticket with its customer, state, priority and articles",
	Args:  cobra.ExactArgs(1),
	RunE:  runTicketsShow,
}

var ticketsSearchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search tickets",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		tickets, err := zammad.SearchTickets(cmd.Context(), client, args[0])
		if err != nil {
			return fmt.Errorf("failed to search tickets: %w", err)
		}
		return printTickets(cmd.OutOrStdout(), tickets, nil)
	},
}

var ticketsCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a ticket with its first article",
	Args:  cobra.NoArgs,
	RunE:  runTicketsCreate,
}

var ticketsCloseCmd = &cobra.Command{
	Use:   "close <id>",
	Short: "Set a ticket to the closed state",
	Args:  cobra.ExactArgs(1),
	RunE:  runTicketsClose,
}

var ticketsDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a ticket",
	Args:  cobra.ExactArgs(1),
	RunE:  runTicketsDelete,
}

func init() {
	ticketsListCmd.Flags().StringVarP(&filterExpr, "filter", "f", "", "filter expression")
	ticketsListCmd.Flags().StringVarP(&preset, "preset", "p", "", "use a preset filter from config")
	ticketsListCmd.MarkFlagsMutuallyExclusive("filter", "preset")

	ticketsCreateCmd.Flags().String("title", "", "ticket title (required)")
	ticketsCreateCmd.Flags().Int("group", 0, "group id (required)")
	ticketsCreateCmd.Flags().Int("customer", 0, "customer user id (required)")
	ticketsCreateCmd.Flags().String("body", "", "body of the first article (required)")
	ticketsCreateCmd.Flags().Int("owner", 0, "owner user id")
	ticketsCreateCmd.Flags().String("subject", "", "subject of the first article")
	ticketsCreateCmd.Flags().String("type", "", "article type, e.g. note, phone or email")
	ticketsCreateCmd.Flags().Bool("internal", false, "mark the first article as internal")

	ticketsCloseCmd.Flags().StringVar(&closedState, "state", "closed", "name of the state to set")

	ticketsCmd.AddCommand(ticketsListCmd, ticketsShowCmd, ticketsSearchCmd, ticketsCreateCmd, ticketsCloseCmd, ticketsDeleteCmd)
	rootCmd.AddCommand(ticketsCmd)
}

// getFilterExpression determines the filter expression to use.
// An empty result means no filtering.
func getFilterExpression() (string, error) {
	// Priority: command line filter > preset > default
	if filterExpr != "" {
		return filterExpr, nil
	}

	if preset != "" {
		if presetFilter, ok := cfg.Filter.Presets[preset]; ok {
			return presetFilter.Expression, nil
		}
		return "", fmt.Errorf("preset '%s' not found in config", preset)
	}

	return cfg.Filter.DefaultExpression, nil
}

// loadNames fetches state and priority names concurrently
func loadNames(ctx context.Context) (*filter.Names, error) {
	var (
		states     []*zammad.State
		priorities []*zammad.Priority
	)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		states, err = zammad.ListStates(ctx, client)
		if err != nil {
			return fmt.Errorf("failed to list ticket states: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		priorities, err = zammad.ListPriorities(ctx, client)
		if err != nil {
			return fmt.Errorf("failed to list ticket priorities: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return filter.NewNames(states, priorities), nil
}

func runTicketsList(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	expression, err := getFilterExpression()
	if err != nil {
		return err
	}

	var f *filter.Filter
	if expression != "" {
		f, err = filter.Compile(expression)
		if err != nil {
			return fmt.Errorf("invalid filter expression: %w", err)
		}
		logger.Info().Str("filter", expression).Msg("Filtering tickets")
	}

	tickets, err := zammad.ListTickets(ctx, client)
	if err != nil {
		return fmt.Errorf("failed to list tickets: %w", err)
	}

	names, err := loadNames(ctx)
	if err != nil {
		return err
	}

	if f != nil {
		tickets, err = f.Apply(ctx, tickets, names)
		if err != nil {
			return err
		}
	}

	return printTickets(cmd.OutOrStdout(), tickets, names)
}

// ticketDetails is a ticket with its relationships resolved
type ticketDetails struct {
	ticket   *zammad.Ticket
	customer *zammad.User
	owner    *zammad.User
	state    *zammad.State
	priority *zammad.Priority
	articles []*zammad.Article
}

// resolveTicket fetches every relationship of t concurrently
func resolveTicket(ctx context.Context, api zammad.API, t *zammad.Ticket) (*ticketDetails, error) {
	d := &ticketDetails{ticket: t}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		d.customer, err = t.Customer(ctx, api)
		return wrapRelation("customer", err)
	})
	g.Go(func() (err error) {
		d.owner, err = t.Owner(ctx, api)
		return wrapRelation("owner", err)
	})
	g.Go(func() (err error) {
		d.state, err = t.State(ctx, api)
		return wrapRelation("state", err)
	})
	g.Go(func() (err error) {
		d.priority, err = t.Priority(ctx, api)
		return wrapRelation("priority", err)
	})
	g.Go(func() (err error) {
		d.articles, err = t.Articles(ctx, api)
		return wrapRelation("articles", err)
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return d, nil
}

func wrapRelation(name string, err error) error {
	if err != nil {
		return fmt.Errorf("failed to get ticket %s: %w", name, err)
	}
	return nil
}

func runTicketsShow(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	t, err := zammad.GetTicket(ctx, client, args[0])
	if err != nil {
		return fmt.Errorf("failed to get ticket %s: %w", args[0], err)
	}

	if jsonOutput {
		return printJSON(cmd.OutOrStdout(), t)
	}

	d, err := resolveTicket(ctx, client, t)
	if err != nil {
		return err
	}

	printTicketDetails(cmd.OutOrStdout(), d)
	return nil
}

func runTicketsCreate(cmd *cobra.Command, args []string) error {
	title, _ := cmd.Flags().GetString("title")
	group, _ := cmd.Flags().GetInt("group")
	customer, _ := cmd.Flags().GetInt("customer")
	body, _ := cmd.Flags().GetString("body")

	t, err := zammad.CreateTicket(cmd.Context(), client, zammad.TicketCreateOptions{
		Title:           title,
		GroupID:         group,
		CustomerID:      customer,
		ArticleBody:     body,
		OwnerID:         optionalInt(cmd, "owner"),
		ArticleSubject:  optionalString(cmd, "subject"),
		ArticleType:     optionalString(cmd, "type"),
		ArticleInternal: optionalBool(cmd, "internal"),
	})
	if err != nil {
		return fmt.Errorf("failed to create ticket: %w", err)
	}

	logger.Info().Int("id", t.ID).Str("number", t.Number).Msg("Ticket created")
	return printTickets(cmd.OutOrStdout(), []*zammad.Ticket{t}, nil)
}

// findState returns the state called name, ignoring case
func findState(states []*zammad.State, name string) *zammad.State {
	for _, s := range states {
		if strings.EqualFold(s.Name, name) {
			return s
		}
	}
	return nil
}

func runTicketsClose(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	t, err := zammad.GetTicket(ctx, client, args[0])
	if err != nil {
		return fmt.Errorf("failed to get ticket %s: %w", args[0], err)
	}

	states, err := zammad.ListStates(ctx, client)
	if err != nil {
		return fmt.Errorf("failed to list ticket states: %w", err)
	}

	state := findState(states, closedState)
	if state == nil {
		return fmt.Errorf("ticket state '%s' not found", closedState)
	}

	if t.StateID == state.ID {
		logger.Info().Str("number", t.Number).Str("state", state.Name).Msg("Ticket already in target state")
		return nil
	}

	t.StateID = state.ID
	if err := t.Update(ctx, client); err != nil {
		return fmt.Errorf("failed to update ticket %d: %w", t.ID, err)
	}

	logger.Info().Str("number", t.Number).Str("state", state.Name).Msg("Ticket updated")
	return nil
}

func runTicketsDelete(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	t, err := zammad.GetTicket(ctx, client, args[0])
	if err != nil {
		return fmt.Errorf("failed to get ticket %s: %w", args[0], err)
	}

	if !confirm(cmd, fmt.Sprintf("Delete ticket #%s %q?", t.Number, t.Title)) {
		logger.Info().Msg("Deletion cancelled")
		return nil
	}

	if err := t.Delete(ctx, client); err != nil {
		return fmt.Errorf("failed to delete ticket %d: %w", t.ID, err)
	}

	logger.Info().Str("number", t.Number).Msg("Ticket deleted")
	return nil
}

func printTickets(w io.Writer, tickets []*zammad.Ticket, names *filter.Names) error {
	if jsonOutput {
		return printJSON(w, tickets)
	}

	if len(tickets) == 0 {
		fmt.Fprintln(w, "No tickets found.")
		return nil
	}

	fmt.Fprintf(w, "\nFound %d tickets:\n", len(tickets))
	separator(w)
	for _, t := range tickets {
		fmt.Fprintf(w, "• #%s %s", t.Number, t.Title)
		if names != nil {
			fmt.Fprintf(w, " [%s, %s]", names.States[t.StateID], names.Priorities[t.PriorityID])
		}
		fmt.Fprintln(w)
		fmt.Fprintf(w, "  Updated: %s\n", t.UpdatedTime().Format("2006-01-02 15:04"))
	}
	return nil
}

func printTicketDetails(w io.Writer, d *ticketDetails) {
	t := d.ticket

	fmt.Fprintf(w, "Ticket #%s (ID: %d)\n", t.Number, t.ID)
	fmt.Fprintf(w, "  Title: %s\n", t.Title)
	if d.customer != nil {
		fmt.Fprintf(w, "  Customer: %s\n", d.customer.FullName())
	}
	if d.owner != nil {
		fmt.Fprintf(w, "  Owner: %s\n", d.owner.FullName())
	}
	if d.state != nil {
		fmt.Fprintf(w, "  State: %s\n", d.state.Name)
	}
	if d.priority != nil {
		fmt.Fprintf(w, "  Priority: %s\n", d.priority.Name)
	}
	fmt.Fprintf(w, "  Created: %s\n", t.CreatedTime().Format("2006-01-02 15:04"))
	fmt.Fprintf(w, "  Updated: %s\n", t.UpdatedTime().Format("2006-01-02 15:04"))

	if len(d.articles) == 0 {
		return
	}

	fmt.Fprintf(w, "\nArticles (%d):\n", len(d.articles))
	separator(w)
	for _, a := range d.articles {
		printArticleSummary(w, a)
	}
}
