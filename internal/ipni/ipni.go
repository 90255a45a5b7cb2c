// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package ipni queries the IPNI name-registry search API for botanical
// name records.
package ipni

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

// searchBase is the IPNI search endpoint. Declared as a var so tests can
// substitute an httptest server.
var searchBase = "https://www.ipni.org/api/1/search"

// Client queries the IPNI registry.
type Client struct {
	// HTTP performs the search requests. Callers supply a client with the
	// request timeout already applied.
	HTTP *http.Client

	// UserAgent identifies the tool to the registry.
	UserAgent string
}

// Match holds the fields of one registry search hit.
type Match struct {
	// ID is the registry record identifier, usually an LSID of the form
	// "urn:lsid:ipni.org:names:<number>".
	ID string `json:"id"`

	// Name is the matched scientific name.
	Name string `json:"name"`

	// Authors is the author citation for the name.
	Authors string `json:"authors"`

	// Rank is the taxonomic rank abbreviation (e.g. "spec.").
	Rank string `json:"rank"`

	// Family is the family placement of the name.
	Family string `json:"family"`

	// InPOWO reports whether Plants of the World Online carries a page
	// for this record.
	InPOWO bool `json:"inPowo"`
}

// RecordID returns the identifier suffix used in taxon page URLs: the
// segment after the last colon of ID, or ID itself when it has none.
func (m Match) RecordID() string {
	if i := strings.LastIndex(m.ID, ":"); i >= 0 {
		return m.ID[i+1:]
	}
	return m.ID
}

// Search queries the registry for name records matching name and returns
// the hits in registry order. It makes exactly one request.
func (c *Client) Search(ctx context.Context, name string) ([]Match, error) {
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("empty registry query")
	}

	params := url.Values{
		"q":    {name},
		"type": {"names"},
	}
	reqURL := searchBase + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", c.UserAgent)

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, fmt.Errorf("IPNI API request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("IPNI API returned HTTP %d", resp.StatusCode)
	}

	var sr searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&sr); err != nil {
		return nil, fmt.Errorf("parsing IPNI response: %w", err)
	}

	return sr.Results, nil
}

// ResolveID returns the registry identifier for the first hit on name.
// It returns an empty string when the registry has no match; absence is a
// valid outcome, not an error. No disambiguation is attempted among
// multiple hits.
func (c *Client) ResolveID(ctx context.Context, name string) (string, error) {
	matches, err := c.Search(ctx, name)
	if err != nil {
		return "", err
	}
	if len(matches) == 0 {
		return "", nil
	}
	return matches[0].RecordID(), nil
}

// IPNI search API JSON structures.
type searchResponse struct {
	TotalResults int     `json:"totalResults"`
	Results      []Match `json:"results"`
}
