// internal/httpserver/server.go
//
// HTTP server wiring for the number-guessing HATEOAS API.
// Responsibilities:
//   - Router + middleware (JSON, CORS, timeouts, panic recovery, request IDs).
//   - API root: GET / with root-level hypermedia links.
//   - Collection endpoints: GET /games, POST /games.
//   - Game endpoints: GET/POST/DELETE /games/{gameID}.
//   - Content negotiation: HTML pages for browsers, JSON for API clients.
//
// Notes:
//   - Every response body carries an _links object; which action links are
//     present is decided by the hypermedia package from the game's state.
//   - Guess range validation ([1,100]) happens here, at the boundary; the
//     game engine accepts any integer.
//   - CORS is origin-aware and credentials-enabled.

package httpserver

import (
	"encoding/json"
	"errors"
	"html/template"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/lucproglangcourse/numguess-go/internal/game"
	"github.com/lucproglangcourse/numguess-go/internal/hypermedia"
	"github.com/lucproglangcourse/numguess-go/internal/store"
)

// Server bundles router, game registry, and page templates.
type Server struct {
	r       *chi.Mux
	reg     store.Registry
	tmpl    *template.Template
	baseURL string // optional fixed base for link hrefs; derived per request if empty
}

// New constructs a Server, installs middleware, and registers routes.
// The registry is injected so tests can supply their own.
func New(reg store.Registry, tmpl *template.Template) *Server {
	s := &Server{r: chi.NewRouter(), reg: reg, tmpl: tmpl, baseURL: os.Getenv("BASE_URL")}

	// --- middleware ---
	s.r.Use(chimw.RequestID)                 // add X-Request-ID
	s.r.Use(chimw.RealIP)                    // set RemoteAddr from X-Forwarded-For etc.
	s.r.Use(chimw.Recoverer)                 // recover from panics
	s.r.Use(chimw.Timeout(10 * time.Second)) // bound handler time
	s.r.Use(jsonContentType)                 // default JSON responses
	s.r.Use(corsFromEnv)                     // credentials-friendly CORS

	// --- routes ---
	s.r.Get("/", s.handleRoot)
	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"ok":true}`))
	})

	s.r.Route("/games", func(r chi.Router) {
		r.Get("/", s.handleGamesCollection)
		r.Post("/", s.handleCreateGame)
		r.Get("/{gameID}", s.handleGetGame)
		r.Post("/{gameID}", s.handleSubmitGuess)
		r.Delete("/{gameID}", s.handleDeleteGame)
	})

	// JSON 404 for easier debugging
	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"not_found","path":"`+r.URL.Path+`"}`, http.StatusNotFound)
	})

	return s
}

// Start begins serving HTTP on addr.
func (s *Server) Start(addr string) error { return http.ListenAndServe(addr, s.r) }

// Router exposes the internal router (useful for tests).
func (s *Server) Router() chi.Router { return s.r }

// ----------------------------- middleware ----------------------------------

// jsonContentType sets a default JSON Content-Type header on all responses.
// HTML handlers overwrite it before writing.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

// corsFromEnv enables credentialed CORS for a single origin.
// Uses CLIENT_ORIGIN env var; defaults to http://localhost:5173.
func corsFromEnv(next http.Handler) http.Handler {
	origin := os.Getenv("CLIENT_ORIGIN")
	if origin == "" {
		origin = "http://localhost:5173"
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Vary", "Origin")
		w.Header().Set("Access-Control-Allow-Origin", origin)
		w.Header().Set("Access-Control-Allow-Credentials", "true")
		w.Header().Set("Access-Control-Allow-Methods", "GET,POST,DELETE,OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// links returns a hypermedia builder rooted at the request's base URL so
// generated hrefs match whatever host the client actually reached.
func (s *Server) links(r *http.Request) *hypermedia.Builder {
	if s.baseURL != "" {
		return hypermedia.NewBuilder(s.baseURL)
	}
	scheme := "http"
	if r.TLS != nil || r.Header.Get("X-Forwarded-Proto") == "https" {
		scheme = "https"
	}
	return hypermedia.NewBuilder(scheme + "://" + r.Host)
}

// ------------------------------- ROOT --------------------------------------

// apiRoot is the JSON shape of GET /.
type apiRoot struct {
	Message string              `json:"message"`
	Links   hypermedia.RootLinks `json:"_links"`
}

// handleRoot returns the API entry point with its unconditional links.
func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	b := s.links(r)
	writeJSON(w, http.StatusOK, apiRoot{
		Message: "Number Guessing Game API. Follow the links to play.",
		Links:   b.RootLinks(),
	})
}

// ----------------------------- COLLECTION ----------------------------------

// gamesCollection is the JSON shape of GET /games.
type gamesCollection struct {
	Message    string                    `json:"message"`
	TotalGames int                       `json:"totalGames"`
	Links      hypermedia.CollectionLinks `json:"_links"`
}

// handleGamesCollection returns the collection representation.
// Browsers get the HTML landing page; API clients get JSON.
func (s *Server) handleGamesCollection(w http.ResponseWriter, r *http.Request) {
	b := s.links(r)
	if wantsHTML(r) {
		s.renderCollection(w, b, s.reg.Count(r.Context()))
		return
	}
	writeJSON(w, http.StatusOK, gamesCollection{
		Message:    "Welcome to the Number Guessing Game! Create a new game to start playing.",
		TotalGames: s.reg.Count(r.Context()),
		Links:      b.CollectionLinks(),
	})
}

// gameCreation is the JSON shape of POST /games.
type gameCreation struct {
	GameID  uuid.UUID                 `json:"gameId"`
	Message string                    `json:"message"`
	Links   hypermedia.CreationLinks `json:"_links"`
}

// handleCreateGame creates a game in the registry.
// Browsers are redirected to the new game's page (POST/redirect/GET);
// API clients get 201 with a Location header and the full link set.
func (s *Server) handleCreateGame(w http.ResponseWriter, r *http.Request) {
	g := s.reg.Create(r.Context())
	b := s.links(r)

	if wantsHTML(r) {
		http.Redirect(w, r, b.Self(g.ID).Href, http.StatusSeeOther)
		return
	}

	w.Header().Set("Location", b.Self(g.ID).Href)
	writeJSON(w, http.StatusCreated, gameCreation{
		GameID:  g.ID,
		Message: "Game created successfully. Submit your first guess!",
		Links:   b.CreationLinks(g.ID),
	})
}

// -------------------------------- GAME -------------------------------------

// gameState is the JSON shape of GET /games/{gameID}.
type gameState struct {
	GameID     uuid.UUID            `json:"gameId"`
	NumGuesses int                  `json:"numGuesses"`
	Active     bool                 `json:"active"`
	Message    string               `json:"message"`
	Links      hypermedia.GameLinks `json:"_links"`
}

// handleGetGame returns the current state of one game.
// The submit-guess link appears iff the game is still active.
func (s *Server) handleGetGame(w http.ResponseWriter, r *http.Request) {
	g, ok := s.lookupGame(w, r)
	if !ok {
		return
	}
	b := s.links(r)
	active := g.IsActive()

	if wantsHTML(r) {
		s.renderGame(w, b, g)
		return
	}

	msg := "Game complete! You won."
	if active {
		msg = "Please submit your guess between 1 and 100."
	}
	writeJSON(w, http.StatusOK, gameState{
		GameID:     g.ID,
		NumGuesses: g.NumGuesses(),
		Active:     active,
		Message:    msg,
		Links:      b.GameLinks(g.ID, active),
	})
}

// guessResult is the JSON shape of POST /games/{gameID}.
type guessResult struct {
	GameID       uuid.UUID            `json:"gameId"`
	Guess        int                  `json:"guess"`
	Result       game.Outcome         `json:"result"`
	Message      string               `json:"message"`
	NumGuesses   int                  `json:"numGuesses"`
	BestScore    int                  `json:"bestScore"`
	NewBestScore bool                 `json:"newBestScore"`
	Links        hypermedia.GameLinks `json:"_links"`
}

// handleSubmitGuess applies a guess to a game.
// Accepts form posts (guess=N, as the HTML pages send) and JSON bodies
// ({"guess":N}). Out-of-range guesses are rejected here, before the engine.
// Guessing against a completed game is a conflict; hypermedia clients never
// get here because the submit-guess link is withheld once a game is won.
func (s *Server) handleSubmitGuess(w http.ResponseWriter, r *http.Request) {
	g, ok := s.lookupGame(w, r)
	if !ok {
		return
	}
	b := s.links(r)

	guess, err := parseGuess(r)
	if err != nil || guess < game.MinSecret || guess > game.MaxSecret {
		writeError(w, http.StatusBadRequest, "Invalid guess: must be between 1 and 100")
		return
	}

	outcome, err := g.SubmitGuess(guess)
	if errors.Is(err, game.ErrGameOver) {
		if wantsHTML(r) {
			// The game page renders the win state; no point in a 409 for a browser.
			http.Redirect(w, r, b.Self(g.ID).Href, http.StatusSeeOther)
			return
		}
		writeError(w, http.StatusConflict, "Game already complete")
		return
	}

	res := guessResult{
		GameID:     g.ID,
		Guess:      guess,
		Result:     outcome,
		NumGuesses: g.NumGuesses(),
	}
	switch outcome {
	case game.OutcomeCorrect:
		res.Message = "Congratulations! You guessed the correct number in " + strconv.Itoa(res.NumGuesses) + " tries!"
		res.NewBestScore = s.reg.RecordScore(res.NumGuesses)
	case game.OutcomeTooLow:
		res.Message = "Your guess is too low. Try a higher number."
	case game.OutcomeTooHigh:
		res.Message = "Your guess is too high. Try a lower number."
	}
	if best, ok := s.reg.BestScore(); ok {
		res.BestScore = best
	}

	if wantsHTML(r) {
		// Redirect back to the game page, which renders the derived hint
		// (or the win page) from the game's own state.
		http.Redirect(w, r, b.Self(g.ID).Href, http.StatusSeeOther)
		return
	}

	res.Links = b.GameLinks(g.ID, g.IsActive())
	writeJSON(w, http.StatusCreated, res)
}

// handleDeleteGame removes a game. 204 if it existed, 404 if not.
// The registry-level delete itself is an idempotent no-op on absent IDs.
func (s *Server) handleDeleteGame(w http.ResponseWriter, r *http.Request) {
	g, ok := s.lookupGame(w, r)
	if !ok {
		return
	}
	s.reg.Delete(r.Context(), g.ID)
	w.WriteHeader(http.StatusNoContent)
}

// ------------------------------ helpers ------------------------------------

// lookupGame resolves the {gameID} URL parameter to a stored game.
// Writes the error response itself and returns ok=false when it cannot.
func (s *Server) lookupGame(w http.ResponseWriter, r *http.Request) (*game.Game, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "gameID"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid game id")
		return nil, false
	}
	g, err := s.reg.Get(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusNotFound, "Game not found")
		return nil, false
	}
	return g, true
}

// parseGuess extracts the guess value from a JSON or form-encoded body.
func parseGuess(r *http.Request) (int, error) {
	ct := r.Header.Get("Content-Type")
	if strings.HasPrefix(ct, "application/json") {
		var body struct {
			Guess *int `json:"guess"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			return 0, err
		}
		if body.Guess == nil {
			return 0, strconv.ErrSyntax
		}
		return *body.Guess, nil
	}
	if err := r.ParseForm(); err != nil {
		return 0, err
	}
	return strconv.Atoi(r.PostFormValue("guess"))
}

// apiError is the JSON error body used across all endpoints.
type apiError struct {
	Error  string `json:"error"`
	Status int    `json:"status"`
}

// writeError emits the standard {error, status} body.
func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, apiError{Error: msg, Status: status})
}

// writeJSON serializes v with the given status code.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("encode response")
	}
}
