package recipe

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"github.com/rs/zerolog"

	"github.com/hay-kot/artisan/internal/core/craft"
	"github.com/hay-kot/artisan/pkg/kv"
)

const (
	// DefaultBaseURL is the public Garland Tools host.
	DefaultBaseURL = "https://www.garlandtools.org"
	// DefaultLanguage is the language used for names in requests and results.
	DefaultLanguage = "en"
	// DefaultTimeout bounds each HTTP request.
	DefaultTimeout = 10 * time.Second

	// maxCrystalID is the highest item id of the shard, crystal and cluster
	// family. Crystals never appear in the material selection UI.
	maxCrystalID = 19

	maxBodyBytes = 4 << 20
)

// Options configures a Client.
type Options struct {
	BaseURL  string
	Language string
	Timeout  time.Duration
}

// Client is a Source backed by the Garland Tools search and item endpoints.
// Results are cached for the life of the client.
type Client struct {
	baseURL string
	lang    string
	http    *http.Client
	cache   *kv.Store[string, craft.Item]
	log     zerolog.Logger
}

// NewClient creates a Client. Zero options use the defaults.
func NewClient(opts Options, log zerolog.Logger) *Client {
	if opts.BaseURL == "" {
		opts.BaseURL = DefaultBaseURL
	}
	if opts.Language == "" {
		opts.Language = DefaultLanguage
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}

	return &Client{
		baseURL: strings.TrimRight(opts.BaseURL, "/"),
		lang:    opts.Language,
		http:    &http.Client{Timeout: opts.Timeout},
		cache:   kv.New[string, craft.Item](),
		log:     log,
	}
}

// Lookup searches for a craftable item named name and returns it with the
// materials of the recipe for job.
func (c *Client) Lookup(ctx context.Context, name, job string) (craft.Item, error) {
	job, err := NormalizeJob(job)
	if err != nil {
		return craft.Item{}, err
	}

	key := strings.ToLower(strings.TrimSpace(name)) + "|" + job
	return c.cache.GetOrLoad(key, func() (craft.Item, error) {
		return c.fetch(ctx, name, job)
	})
}

func (c *Client) fetch(ctx context.Context, name, job string) (craft.Item, error) {
	id, err := c.search(ctx, name)
	if err != nil {
		return craft.Item{}, err
	}

	var doc itemDoc
	path := fmt.Sprintf("/db/doc/item/%s/3/%d.json", url.PathEscape(c.lang), id)
	if err := c.get(ctx, path, nil, &doc); err != nil {
		return craft.Item{}, fmt.Errorf("fetch item %d: %w", id, err)
	}

	item, err := doc.toItem(job)
	if err != nil {
		return craft.Item{}, fmt.Errorf("%w: %s", err, name)
	}

	c.log.Debug().
		Str("item", item.Name).
		Str("job", item.Job).
		Int("materials", len(item.Materials)).
		Msg("resolved recipe")
	return item, nil
}

// search returns the id of the best result: an exact name match if there is
// one, otherwise the first craftable item.
func (c *Client) search(ctx context.Context, name string) (int, error) {
	q := url.Values{}
	q.Set("craftable", "1")
	q.Set("type", "item")
	q.Set("text", name)
	q.Set("lang", c.lang)

	var results []searchResult
	if err := c.get(ctx, "/api/search.php", q, &results); err != nil {
		return 0, fmt.Errorf("search %q: %w", name, err)
	}

	best := -1
	for i, r := range results {
		if r.Type != "" && r.Type != "item" {
			continue
		}
		if strings.EqualFold(r.Obj.Name, name) {
			best = i
			break
		}
		if best < 0 {
			best = i
		}
	}
	if best < 0 {
		return 0, fmt.Errorf("%w: %s", ErrRecipeNotFound, name)
	}
	return int(results[best].ID), nil
}

func (c *Client) get(ctx context.Context, path string, q url.Values, out any) error {
	u := c.baseURL + path
	if len(q) > 0 {
		u += "?" + q.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode == http.StatusNotFound {
		return ErrRecipeNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %s", resp.Status)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return fmt.Errorf("read body: %w", err)
	}
	if err := sonic.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode body: %w", err)
	}
	return nil
}

// flexID accepts both quoted and bare numbers; the search endpoint quotes ids,
// the item documents do not.
type flexID int

func (i *flexID) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "" || s == "null" {
		*i = 0
		return nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return fmt.Errorf("invalid id %s", string(b))
	}
	*i = flexID(n)
	return nil
}

type searchResult struct {
	Type string `json:"type"`
	ID   flexID `json:"id"`
	Obj  struct {
		Name string `json:"n"`
	} `json:"obj"`
}

type ingredientRef struct {
	ID     flexID `json:"id"`
	Amount int    `json:"amount"`
}

type recipeDoc struct {
	Job         int             `json:"job"`
	Ingredients []ingredientRef `json:"ingredients"`
}

type namedDoc struct {
	ID   flexID `json:"id"`
	Name string `json:"name"`
}

type partialDoc struct {
	ID  flexID `json:"id"`
	Obj struct {
		Name string `json:"n"`
	} `json:"obj"`
}

type itemDoc struct {
	Item struct {
		ID    flexID      `json:"id"`
		Name  string      `json:"name"`
		Craft []recipeDoc `json:"craft"`
	} `json:"item"`
	Ingredients []namedDoc   `json:"ingredients"`
	Partials    []partialDoc `json:"partials"`
}

// toItem picks the recipe for job (any recipe when job is empty) and resolves
// ingredient names. Crystals are dropped and recipe order is kept.
func (d itemDoc) toItem(job string) (craft.Item, error) {
	var recipe *recipeDoc
	for i := range d.Item.Craft {
		r := &d.Item.Craft[i]
		if job == "" || Jobs[job] == r.Job {
			recipe = r
			break
		}
	}
	if recipe == nil {
		return craft.Item{}, ErrRecipeNotFound
	}

	names := make(map[flexID]string, len(d.Ingredients)+len(d.Partials))
	for _, p := range d.Partials {
		names[p.ID] = p.Obj.Name
	}
	for _, in := range d.Ingredients {
		names[in.ID] = in.Name
	}

	item := craft.Item{Name: d.Item.Name, Job: jobAbbrev(recipe.Job)}
	for _, ref := range recipe.Ingredients {
		if int(ref.ID) <= maxCrystalID {
			continue
		}
		name := names[ref.ID]
		if name == "" {
			name = "item#" + strconv.Itoa(int(ref.ID))
		}
		item.Materials = append(item.Materials, craft.Material{Name: name, Count: ref.Amount})
	}
	return item, nil
}
