package hypermedia

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const base = "http://example.test"

func TestGameLinksActive(t *testing.T) {
	t.Parallel()

	id := uuid.New()
	links := NewBuilder(base).GameLinks(id, true)

	require.NotNil(t, links.SubmitGuess, "active game must advertise submit-guess")
	assert.Equal(t, base+"/games/"+id.String(), links.SubmitGuess.Href)
	assert.Equal(t, "POST", links.SubmitGuess.Method)

	assert.Equal(t, base+"/games/"+id.String(), links.Self.Href)
	assert.Equal(t, "GET", links.Self.Method)
	assert.Equal(t, "DELETE", links.Delete.Method)
	assert.Equal(t, base+"/games", links.NewGame.Href)
	assert.Equal(t, base+"/games", links.Games.Href)
}

func TestGameLinksComplete(t *testing.T) {
	t.Parallel()

	id := uuid.New()
	links := NewBuilder(base).GameLinks(id, false)

	assert.Nil(t, links.SubmitGuess, "completed game must not advertise submit-guess")

	// The unconditional links stay.
	assert.NotEmpty(t, links.Self.Href)
	assert.NotEmpty(t, links.Delete.Href)
	assert.NotEmpty(t, links.NewGame.Href)
	assert.NotEmpty(t, links.Games.Href)
}

func TestGameLinksJSONOmission(t *testing.T) {
	t.Parallel()

	id := uuid.New()
	b := NewBuilder(base)

	raw, err := json.Marshal(b.GameLinks(id, false))
	require.NoError(t, err)
	var m map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(raw, &m))
	assert.NotContains(t, m, "submit-guess", "relation must be absent, not null")
	assert.Contains(t, m, "self")
	assert.Contains(t, m, "delete")
	assert.Contains(t, m, "new-game")
	assert.Contains(t, m, "games")

	raw, err = json.Marshal(b.GameLinks(id, true))
	require.NoError(t, err)
	m = nil
	require.NoError(t, json.Unmarshal(raw, &m))
	assert.Contains(t, m, "submit-guess")
}

func TestCreationLinks(t *testing.T) {
	t.Parallel()

	id := uuid.New()
	links := NewBuilder(base).CreationLinks(id)

	// A fresh game is always active, so submit-guess is unconditional here.
	assert.Equal(t, base+"/games/"+id.String(), links.SubmitGuess.Href)
	assert.Equal(t, "application/x-www-form-urlencoded", links.SubmitGuess.Type)
	assert.Equal(t, base+"/games/"+id.String(), links.Self.Href)
	assert.Equal(t, base+"/games", links.Games.Href)
}

func TestCollectionAndRootLinks(t *testing.T) {
	t.Parallel()

	b := NewBuilder(base)

	col := b.CollectionLinks()
	assert.Equal(t, base+"/games", col.Self.Href)
	assert.Equal(t, "POST", col.CreateGame.Method)
	assert.Equal(t, base+"/", col.Root.Href)

	root := b.RootLinks()
	assert.Equal(t, base+"/", root.Self.Href)
	assert.Equal(t, base+"/games", root.Games.Href)
}
