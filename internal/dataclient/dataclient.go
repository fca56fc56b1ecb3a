// Package dataclient fetches the prepared dashboard dataset: the deputy
// collection and the baseline aggregation snapshot.
package dataclient

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/ceaplens/ceaplens/internal/contract"
	"github.com/ceaplens/ceaplens/schema"
	"golang.org/x/sync/errgroup"
)

// Resource file names, fixed by the upstream preparation pipeline.
const (
	DeputiesFile     = "deputies.json"
	AggregationsFile = "aggregations.json"
)

// defaultHTTPTimeout bounds a single resource fetch.
const defaultHTTPTimeout = 30 * time.Second

// Client loads the dataset from a directory or an http(s) base URL. The
// fetch happens exactly once per Client; later calls serve the cached
// dataset, which is never mutated after population.
type Client struct {
	source string
	httpc  *http.Client

	once sync.Once
	ds   *contract.Dataset
	err  error
}

var _ contract.DataClient = (*Client)(nil) // Compile-time check

// New returns a client for the given source. Sources beginning with http://
// or https:// are fetched over the network; anything else is treated as a
// local directory.
func New(source string) *Client {
	return &Client{
		source: source,
		httpc:  &http.Client{Timeout: defaultHTTPTimeout},
	}
}

// Load fetches both resources concurrently on first call and caches the
// result for the rest of the session.
func (c *Client) Load(ctx context.Context) (*contract.Dataset, error) {
	c.once.Do(func() {
		c.ds, c.err = c.fetch(ctx)
	})
	return c.ds, c.err
}

// fetch retrieves and decodes both resources. Either resource failing fails
// the whole load; the caller decides whether to degrade to empty data.
func (c *Client) fetch(ctx context.Context) (*contract.Dataset, error) {
	var deputies []schema.Deputy
	var baseline schema.Snapshot

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		raw, err := c.readResource(gctx, DeputiesFile)
		if err != nil {
			return err
		}
		if err := json.Unmarshal(raw, &deputies); err != nil {
			return fmt.Errorf("failed to decode %s: %w", DeputiesFile, err)
		}
		return nil
	})
	g.Go(func() error {
		raw, err := c.readResource(gctx, AggregationsFile)
		if err != nil {
			return err
		}
		if err := json.Unmarshal(raw, &baseline); err != nil {
			return fmt.Errorf("failed to decode %s: %w", AggregationsFile, err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if deputies == nil {
		deputies = []schema.Deputy{}
	}
	return &contract.Dataset{Deputies: deputies, Baseline: &baseline}, nil
}

// readResource reads one named resource from the configured source.
func (c *Client) readResource(ctx context.Context, name string) ([]byte, error) {
	if strings.HasPrefix(c.source, "http://") || strings.HasPrefix(c.source, "https://") {
		return c.readHTTP(ctx, name)
	}
	raw, err := os.ReadFile(filepath.Join(c.source, name))
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", name, err)
	}
	return raw, nil
}

// readHTTP fetches one resource over the network.
func (c *Client) readHTTP(ctx context.Context, name string) ([]byte, error) {
	url := strings.TrimSuffix(c.source, "/") + "/" + name
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request for %s: %w", url, err)
	}
	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", url, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d fetching %s", resp.StatusCode, url)
	}
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read body of %s: %w", url, err)
	}
	return raw, nil
}
