// internal/hypermedia/links.go
//
// HATEOAS link assembly for the number-guessing API.
// Responsibilities:
//   - Build individual typed links (href/method/type/title) against a base URL.
//   - Assemble per-resource link sets, including the one state-driven
//     affordance in the system: submit-guess appears iff the game is active.
//
// Clients are expected to discover legal next actions purely from link
// presence; link absence is the only signal that an action is unavailable.

package hypermedia

import (
	"github.com/google/uuid"
)

// Link is a single hypermedia control.
type Link struct {
	Href      string `json:"href"`
	Templated bool   `json:"templated"`
	Type      string `json:"type,omitempty"`
	Method    string `json:"method,omitempty"`
	Title     string `json:"title,omitempty"`
}

// GameLinks is the link set attached to a single game representation.
// SubmitGuess is a pointer so it is omitted entirely — not null — when the
// game is complete.
type GameLinks struct {
	Self        Link  `json:"self"`
	SubmitGuess *Link `json:"submit-guess,omitempty"`
	Delete      Link  `json:"delete"`
	NewGame     Link  `json:"new-game"`
	Games       Link  `json:"games"`
}

// CreationLinks is the link set returned when a game is created.
// A fresh game is always active, so submit-guess is unconditional here.
type CreationLinks struct {
	Self        Link `json:"self"`
	SubmitGuess Link `json:"submit-guess"`
	Delete      Link `json:"delete"`
	Games       Link `json:"games"`
}

// CollectionLinks is the link set on the games collection.
type CollectionLinks struct {
	Self       Link `json:"self"`
	CreateGame Link `json:"create-game"`
	Root       Link `json:"root"`
}

// RootLinks is the link set on the API root.
type RootLinks struct {
	Self  Link `json:"self"`
	Games Link `json:"games"`
}

// Builder constructs links rooted at a base URL, so generated hrefs work
// regardless of deployment environment (localhost, reverse proxy, etc.).
type Builder struct {
	BaseURL string // scheme://host[:port], no trailing slash
}

// NewBuilder returns a Builder for the given base URL.
func NewBuilder(baseURL string) *Builder {
	return &Builder{BaseURL: baseURL}
}

// Self links to a specific game resource.
func (b *Builder) Self(id uuid.UUID) Link {
	return Link{
		Href:   b.BaseURL + "/games/" + id.String(),
		Method: "GET",
		Type:   "application/json",
	}
}

// SubmitGuess is the action link for guessing against a specific game.
// Only ever attached to representations of active games.
func (b *Builder) SubmitGuess(id uuid.UUID) Link {
	return Link{
		Href:   b.BaseURL + "/games/" + id.String(),
		Method: "POST",
		Type:   "application/x-www-form-urlencoded",
		Title:  "Submit a guess",
	}
}

// DeleteGame is the action link for removing a specific game.
func (b *Builder) DeleteGame(id uuid.UUID) Link {
	return Link{
		Href:   b.BaseURL + "/games/" + id.String(),
		Method: "DELETE",
		Title:  "Delete this game",
	}
}

// NewGame is the action link for creating another game.
func (b *Builder) NewGame() Link {
	return Link{
		Href:   b.BaseURL + "/games",
		Method: "POST",
		Type:   "application/json",
		Title:  "Create a new game",
	}
}

// GamesCollection links to the games collection.
func (b *Builder) GamesCollection() Link {
	return Link{
		Href:   b.BaseURL + "/games",
		Method: "GET",
		Type:   "application/json",
		Title:  "Games collection",
	}
}

// Root links to the API root.
func (b *Builder) Root() Link {
	return Link{
		Href:   b.BaseURL + "/",
		Method: "GET",
		Type:   "application/json",
		Title:  "API root",
	}
}

// GameLinks assembles the link set for a game in its current state.
//
// submit-guess is included if and only if active is true at the moment of
// assembly. This is the contract the whole service exists to demonstrate:
// a completed game must never advertise guessing, and an active game must
// always advertise it.
func (b *Builder) GameLinks(id uuid.UUID, active bool) GameLinks {
	links := GameLinks{
		Self:    b.Self(id),
		Delete:  b.DeleteGame(id),
		NewGame: b.NewGame(),
		Games:   b.GamesCollection(),
	}
	if active {
		sg := b.SubmitGuess(id)
		links.SubmitGuess = &sg
	}
	return links
}

// CreationLinks assembles the link set for a freshly created game.
func (b *Builder) CreationLinks(id uuid.UUID) CreationLinks {
	return CreationLinks{
		Self:        b.Self(id),
		SubmitGuess: b.SubmitGuess(id),
		Delete:      b.DeleteGame(id),
		Games:       b.GamesCollection(),
	}
}

// CollectionLinks assembles the link set for the games collection.
func (b *Builder) CollectionLinks() CollectionLinks {
	return CollectionLinks{
		Self:       b.GamesCollection(),
		CreateGame: b.NewGame(),
		Root:       b.Root(),
	}
}

// RootLinks assembles the link set for the API root.
func (b *Builder) RootLinks() RootLinks {
	return RootLinks{
		Self:  b.Root(),
		Games: b.GamesCollection(),
	}
}
