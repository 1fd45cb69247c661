package recipe

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hay-kot/artisan/internal/core/craft"
)

const searchBody = `[
	{"type":"item","id":"5057","obj":{"n":"Iron Ingot Ore"}},
	{"type":"item","id":"5056","obj":{"n":"Iron Ingot"}}
]`

const itemBody = `{
	"item": {
		"id": 5056,
		"name": "Iron Ingot",
		"craft": [
			{"job": 11, "ingredients": [{"id": 5111, "amount": 3}, {"id": 4, "amount": 2}]},
			{"job": 9, "ingredients": [{"id": 5111, "amount": 2}, {"id": 5517, "amount": 1}, {"id": 4, "amount": 1}]}
		]
	},
	"ingredients": [{"id": 5111, "name": "Iron Ore"}],
	"partials": [
		{"type": "item", "id": "5517", "obj": {"n": "Bomb Ash"}},
		{"type": "item", "id": "4", "obj": {"n": "Fire Shard"}}
	]
}`

type fakeGarland struct {
	server   *httptest.Server
	searches atomic.Int32
	items    atomic.Int32
}

func newFakeGarland(t *testing.T) *fakeGarland {
	t.Helper()

	f := &fakeGarland{}
	mux := http.NewServeMux()
	mux.HandleFunc("/api/search.php", func(w http.ResponseWriter, r *http.Request) {
		f.searches.Add(1)
		q := r.URL.Query()
		if q.Get("craftable") != "1" || q.Get("lang") != "en" {
			http.Error(w, "bad query", http.StatusBadRequest)
			return
		}
		if q.Get("text") == "Nothing" {
			_, _ = w.Write([]byte(`[]`))
			return
		}
		_, _ = w.Write([]byte(searchBody))
	})
	mux.HandleFunc("/db/doc/item/en/3/5056.json", func(w http.ResponseWriter, r *http.Request) {
		f.items.Add(1)
		_, _ = w.Write([]byte(itemBody))
	})

	f.server = httptest.NewServer(mux)
	t.Cleanup(f.server.Close)
	return f
}

func (f *fakeGarland) client() *Client {
	return NewClient(Options{BaseURL: f.server.URL + "/"}, zerolog.Nop())
}

func TestClient_Lookup(t *testing.T) {
	f := newFakeGarland(t)
	c := f.client()

	item, err := c.Lookup(context.Background(), "iron ingot", "")
	require.NoError(t, err)

	assert.Equal(t, craft.Item{
		Name:      "Iron Ingot",
		Job:       "GSM",
		Materials: []craft.Material{{Name: "Iron Ore", Count: 3}},
	}, item)
}

func TestClient_LookupByJob(t *testing.T) {
	f := newFakeGarland(t)
	c := f.client()

	item, err := c.Lookup(context.Background(), "Iron Ingot", "bsm")
	require.NoError(t, err)

	assert.Equal(t, "BSM", item.Job)
	assert.Equal(t, []craft.Material{
		{Name: "Iron Ore", Count: 2},
		{Name: "Bomb Ash", Count: 1},
	}, item.Materials, "crystals are dropped and recipe order kept")
}

func TestClient_LookupCaches(t *testing.T) {
	f := newFakeGarland(t)
	c := f.client()

	for range 3 {
		_, err := c.Lookup(context.Background(), "Iron Ingot", "BSM")
		require.NoError(t, err)
	}

	assert.Equal(t, int32(1), f.searches.Load())
	assert.Equal(t, int32(1), f.items.Load())
}

func TestClient_NotFound(t *testing.T) {
	f := newFakeGarland(t)
	c := f.client()

	tests := []struct {
		name    string
		item    string
		job     string
		wantErr error
	}{
		{name: "no search results", item: "Nothing", wantErr: ErrRecipeNotFound},
		{name: "no recipe for job", item: "Iron Ingot", job: "CUL", wantErr: ErrRecipeNotFound},
		{name: "unknown job", item: "Iron Ingot", job: "PLD", wantErr: ErrUnknownJob},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := c.Lookup(context.Background(), tt.item, tt.job)
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestClient_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusBadGateway)
	}))
	t.Cleanup(srv.Close)

	c := NewClient(Options{BaseURL: srv.URL}, zerolog.Nop())
	_, err := c.Lookup(context.Background(), "Iron Ingot", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "502")
	assert.NotErrorIs(t, err, ErrRecipeNotFound)
}

func TestStatic(t *testing.T) {
	s := NewStatic(craft.Item{Name: "Iron Ingot", Job: "BSM", Materials: []craft.Material{{Name: "Iron Ore", Count: 2}}})

	item, err := s.Lookup(context.Background(), "iron ingot", "")
	require.NoError(t, err)
	assert.Equal(t, "Iron Ingot", item.Name)

	_, err = s.Lookup(context.Background(), "Iron Ingot", "GSM")
	require.ErrorIs(t, err, ErrRecipeNotFound)

	_, err = s.Lookup(context.Background(), "Steel Ingot", "")
	require.ErrorIs(t, err, ErrRecipeNotFound)
}

func TestNormalizeJob(t *testing.T) {
	got, err := NormalizeJob(" wvr ")
	require.NoError(t, err)
	assert.Equal(t, "WVR", got)

	got, err = NormalizeJob("")
	require.NoError(t, err)
	assert.Empty(t, got)

	_, err = NormalizeJob("BLM")
	require.ErrorIs(t, err, ErrUnknownJob)

	assert.Len(t, JobNames(), 8)
}
