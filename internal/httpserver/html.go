// internal/httpserver/html.go
//
// HTML representations for browser clients.
// The pages embed the same hypermedia affordances as the JSON responses:
// every form posts to a link target produced by the hypermedia package, so
// a won game renders without a guess form the same way its JSON omits the
// submit-guess link.

package httpserver

import (
	"net/http"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/lucproglangcourse/numguess-go/internal/game"
	"github.com/lucproglangcourse/numguess-go/internal/hypermedia"
)

// wantsHTML reports whether the client asked for a browser representation.
// Covers text/html and application/xhtml+xml; everything else gets JSON.
func wantsHTML(r *http.Request) bool {
	accept := r.Header.Get("Accept")
	return strings.Contains(accept, "text/html") || strings.Contains(accept, "application/xhtml+xml")
}

// collectionPage feeds the games-collection template.
type collectionPage struct {
	CreateHref string
	TotalGames int
}

// renderCollection writes the HTML landing page.
func (s *Server) renderCollection(w http.ResponseWriter, b *hypermedia.Builder, total int) {
	s.renderPage(w, "collection", collectionPage{
		CreateHref: b.NewGame().Href,
		TotalGames: total,
	})
}

// activePage feeds the in-progress game template.
type activePage struct {
	NumGuesses int
	Hint       string
	SubmitHref string
	GamesHref  string
}

// completePage feeds the won-game template.
type completePage struct {
	NumGuesses int
	BestScore  int
	HasBest    bool
	CreateHref string
	GamesHref  string
}

// renderGame writes the page matching the game's current state: the guess
// form for an active game, the win page once it is complete.
func (s *Server) renderGame(w http.ResponseWriter, b *hypermedia.Builder, g *game.Game) {
	if !g.IsActive() {
		best, hasBest := s.reg.BestScore()
		s.renderPage(w, "game_complete", completePage{
			NumGuesses: g.NumGuesses(),
			BestScore:  best,
			HasBest:    hasBest,
			CreateHref: b.NewGame().Href,
			GamesHref:  b.GamesCollection().Href,
		})
		return
	}

	var hint string
	if out, ok := g.LastOutcome(); ok {
		switch out {
		case game.OutcomeTooLow:
			hint = "Your guess is too low. Try a higher number."
		case game.OutcomeTooHigh:
			hint = "Your guess is too high. Try a lower number."
		}
	}
	s.renderPage(w, "game_active", activePage{
		NumGuesses: g.NumGuesses(),
		Hint:       hint,
		SubmitHref: b.SubmitGuess(g.ID).Href,
		GamesHref:  b.GamesCollection().Href,
	})
}

// renderPage executes one named template with a text/html content type.
func (s *Server) renderPage(w http.ResponseWriter, name string, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if err := s.tmpl.ExecuteTemplate(w, name, data); err != nil {
		log.Error().Err(err).Str("template", name).Msg("render page")
	}
}
