// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package powo fetches taxon pages from Plants of the World Online and
// extracts their synonym lists.
package powo

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"
)

// taxonBase is the POWO taxon page prefix. Declared as a var so tests can
// substitute an httptest server.
var taxonBase = "https://powo.science.kew.org/taxon/"

// lsidPrefix turns a bare registry identifier into the LSID path segment
// of a taxon page URL.
const lsidPrefix = "urn:lsid:ipni.org:names:"

// browserUserAgent is sent with every page request. POWO serves full page
// markup to browser user agents only.
const browserUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"

// ErrNoSynonymSection reports that a taxon page carries no synonym list
// at all, as opposed to an empty one.
var ErrNoSynonymSection = errors.New("no synonym section on page")

// TaxonURL returns the POWO page URL for a registry identifier.
func TaxonURL(id string) string {
	return taxonBase + lsidPrefix + id
}

// Client fetches taxon pages.
type Client struct {
	http *resty.Client
}

// NewClient returns a Client whose page requests time out after timeout.
func NewClient(timeout time.Duration) *Client {
	client := resty.New()
	client.SetHeader("user-agent", browserUserAgent)
	client.SetTimeout(timeout)
	return &Client{http: client}
}

// Synonyms fetches pageURL and returns the entries of its synonym list in
// page order, whitespace-trimmed. It returns ErrNoSynonymSection when the
// page has no synonym section or the section holds no synonym list; a
// present but empty list yields no entries and a nil error.
func (c *Client) Synonyms(ctx context.Context, pageURL string) ([]string, error) {
	res, err := c.http.R().
		SetContext(ctx).
		Get(pageURL)
	if err != nil {
		return nil, fmt.Errorf("taxon page request: %w", err)
	}
	if res.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("taxon page returned HTTP %d", res.StatusCode())
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewBuffer(res.Body()))
	if err != nil {
		return nil, fmt.Errorf("parsing taxon page: %w", err)
	}

	section := doc.Find("section#synonyms")
	if section.Length() == 0 {
		return nil, ErrNoSynonymSection
	}
	list := section.Find("ul.c-synonym-list").First()
	if list.Length() == 0 {
		return nil, ErrNoSynonymSection
	}

	var synonyms []string
	list.Find("li").Each(func(_ int, li *goquery.Selection) {
		synonyms = append(synonyms, strings.TrimSpace(li.Text()))
	})
	return synonyms, nil
}
