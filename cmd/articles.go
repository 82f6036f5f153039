package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/s0up4200/zammadctl/zammad"
)

var articlesCmd = &cobra.Command{
	Use:     "articles",
	Aliases: []string{"article"},
	Short:   "Manage ticket articles",
}

var articlesListCmd = &cobra.Command{
	Use:   "list [ticket-id]",
	Short: "List articles, all of them or those of one ticket",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var (
			articles []*zammad.Article
			err      error
		)
		if len(args) == 1 {
			articles, err = zammad.ListArticlesForTicket(cmd.Context(), client, args[0])
		} else {
			articles, err = zammad.ListArticles(cmd.Context(), client)
		}
		if err != nil {
			return fmt.Errorf("failed to list articles: %w", err)
		}
		return printArticles(cmd.OutOrStdout(), articles)
	},
}

var articlesShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show an article with its author",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		a, err := zammad.GetArticle(ctx, client, args[0])
		if err != nil {
			return fmt.Errorf("failed to get article %s: %w", args[0], err)
		}
		if jsonOutput {
			return printJSON(cmd.OutOrStdout(), a)
		}

		sender, err := a.Sender(ctx, client)
		if err != nil {
			return fmt.Errorf("failed to get article author: %w", err)
		}

		out := cmd.OutOrStdout()
		printArticleSummary(out, a)
		if sender != nil {
			fmt.Fprintf(out, "  Author: %s\n", sender.FullName())
		}
		fmt.Fprintf(out, "\n%s\n", a.Body)
		return nil
	},
}

var articlesCreateCmd = &cobra.Command{
	Use:   "create <ticket-id>",
	Short: "Add an article to a ticket",
	Args:  cobra.ExactArgs(1),
	RunE:  runArticlesCreate,
}

func init() {
	articlesCreateCmd.Flags().String("body", "", "article body (required)")
	articlesCreateCmd.Flags().String("subject", "", "subject")
	articlesCreateCmd.Flags().String("content-type", "", "MIME type of the body, e.g. text/html")
	articlesCreateCmd.Flags().String("type", "", "article type, e.g. note, phone or email")
	articlesCreateCmd.Flags().Bool("internal", false, "only visible to agents")

	articlesCmd.AddCommand(articlesListCmd, articlesShowCmd, articlesCreateCmd)
	rootCmd.AddCommand(articlesCmd)
}

func runArticlesCreate(cmd *cobra.Command, args []string) error {
	ticketID, err := zammad.AssertInteger(args[0])
	if err != nil {
		return fmt.Errorf("invalid ticket id %q: %w", args[0], err)
	}
	body, _ := cmd.Flags().GetString("body")

	a, err := zammad.CreateArticle(cmd.Context(), client, zammad.ArticleCreateOptions{
		TicketID:    ticketID,
		Body:        body,
		Subject:     optionalString(cmd, "subject"),
		ContentType: optionalString(cmd, "content-type"),
		Internal:    optionalBool(cmd, "internal"),
		Type:        optionalString(cmd, "type"),
	})
	if err != nil {
		return fmt.Errorf("failed to create article: %w", err)
	}

	logger.Info().Int("id", a.ID).Int("ticket_id", a.TicketID).Msg("Article created")
	if jsonOutput {
		return printJSON(cmd.OutOrStdout(), a)
	}
	printArticleSummary(cmd.OutOrStdout(), a)
	return nil
}

func printArticles(w io.Writer, articles []*zammad.Article) error {
	if jsonOutput {
		return printJSON(w, articles)
	}

	if len(articles) == 0 {
		fmt.Fprintln(w, "No articles found.")
		return nil
	}

	fmt.Fprintf(w, "\nFound %d articles:\n", len(articles))
	separator(w)
	for _, a := range articles {
		printArticleSummary(w, a)
	}
	return nil
}

func printArticleSummary(w io.Writer, a *zammad.Article) {
	fmt.Fprintf(w, "• [%d] %s", a.ID, deref(a.Subject, "(no subject)"))
	if a.Internal {
		fmt.Fprint(w, " [INTERNAL]")
	}
	fmt.Fprintln(w)
	fmt.Fprintf(w, "  Ticket: %d  Type: %s  From: %s  At: %s\n", a.TicketID, a.Type, a.SenderRole, a.CreatedAt)
	if preview := firstLine(a.Body, 72); preview != "" {
		fmt.Fprintf(w, "  %s\n", preview)
	}
}

func firstLine(s string, limit int) string {
	line, _, _ := strings.Cut(strings.TrimSpace(s), "\n")
	if len(line) > limit {
		return line[:limit] + "..."
	}
	return line
}
