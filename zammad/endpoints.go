package zammad

// Prefix is prepended to every endpoint path
const Prefix = "/api/v1"

// Endpoint paths of the Zammad REST API. Singular paths end in a slash and take an id suffix.
const (
	UsersPath      = "/users"
	UserMePath     = "/users/me"
	UserSearchPath = "/users/search"
	UserPath       = "/users/"

	TicketsPath      = "/tickets"
	TicketSearchPath = "/tickets/search"
	TicketPath       = "/tickets/"

	TicketStatesPath = "/ticket_states"
	TicketStatePath  = "/ticket_states/"

	TicketPrioritiesPath = "/ticket_priorities"
	TicketPriorityPath   = "/ticket_priorities/"

	TicketArticlesPath        = "/ticket_articles"
	TicketArticlePath         = "/ticket_articles/"
	TicketArticleByTicketPath = "/ticket_articles/by_ticket/"
)

// SearchQueryParam is the query parameter carrying the search string
const SearchQueryParam = "query"
