// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package ipni

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

// --- Match.RecordID ---

func TestMatchRecordID(t *testing.T) {
	tests := []struct {
		name string
		id   string
		want string
	}{
		{"full LSID", "urn:lsid:ipni.org:names:30000959-2", "30000959-2"},
		{"numeric suffix", "urn:lsid:ipni.org:names:12345", "12345"},
		{"bare identifier without colons", "30000959-2", "30000959-2"},
		{"empty", "", ""},
		{"trailing colon", "urn:lsid:", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Match{ID: tt.id}.RecordID()
			if got != tt.want {
				t.Errorf("RecordID() = %q, want %q", got, tt.want)
			}
		})
	}
}

// --- Mock IPNI server ---

const sampleIPNIJSON = `{
  "totalResults": 2,
  "results": [
    {
      "id": "urn:lsid:ipni.org:names:30000959-2",
      "name": "Salvia rosmarinus",
      "authors": "Spenn.",
      "rank": "spec.",
      "family": "Lamiaceae",
      "inPowo": true
    },
    {
      "id": "urn:lsid:ipni.org:names:457829-1",
      "name": "Salvia rosmarinus",
      "authors": "Schleid.",
      "rank": "spec.",
      "family": "Lamiaceae",
      "inPowo": false
    }
  ]
}`

func ipniTestServer(statusCode int, body string) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(statusCode)
		fmt.Fprint(w, body)
	}))
}

// --- Client.Search ---

func TestClientSearch(t *testing.T) {
	ts := ipniTestServer(http.StatusOK, sampleIPNIJSON)
	defer ts.Close()

	old := searchBase
	searchBase = ts.URL
	defer func() { searchBase = old }()

	c := &Client{HTTP: ts.Client(), UserAgent: "test-agent"}
	matches, err := c.Search(context.Background(), "Salvia rosmarinus")
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(matches) != 2 {
		t.Fatalf("len(matches) = %d, want 2", len(matches))
	}

	m0 := matches[0]
	if m0.ID != "urn:lsid:ipni.org:names:30000959-2" {
		t.Errorf("ID = %q", m0.ID)
	}
	if m0.Name != "Salvia rosmarinus" {
		t.Errorf("Name = %q", m0.Name)
	}
	if m0.Authors != "Spenn." {
		t.Errorf("Authors = %q", m0.Authors)
	}
	if m0.Rank != "spec." {
		t.Errorf("Rank = %q", m0.Rank)
	}
	if m0.Family != "Lamiaceae" {
		t.Errorf("Family = %q", m0.Family)
	}
	if !m0.InPOWO {
		t.Error("InPOWO = false, want true")
	}

	// Registry order must be preserved.
	if matches[1].Authors != "Schleid." {
		t.Errorf("second match Authors = %q, want %q", matches[1].Authors, "Schleid.")
	}
	if matches[1].InPOWO {
		t.Error("second match InPOWO = true, want false")
	}
}

func TestClientSearchRequestParams(t *testing.T) {
	var gotQ, gotType, gotUA string
	requests := 0
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		gotQ = r.URL.Query().Get("q")
		gotType = r.URL.Query().Get("type")
		gotUA = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"totalResults":0,"results":[]}`)
	}))
	defer ts.Close()

	old := searchBase
	searchBase = ts.URL
	defer func() { searchBase = old }()

	c := &Client{HTTP: ts.Client(), UserAgent: "taxon-engine/0.1"}
	_, err := c.Search(context.Background(), "Quercus robur")
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if gotQ != "Quercus robur" {
		t.Errorf("q = %q, want %q", gotQ, "Quercus robur")
	}
	if gotType != "names" {
		t.Errorf("type = %q, want %q", gotType, "names")
	}
	if gotUA != "taxon-engine/0.1" {
		t.Errorf("User-Agent = %q, want %q", gotUA, "taxon-engine/0.1")
	}
	if requests != 1 {
		t.Errorf("requests = %d, want exactly 1", requests)
	}
}

func TestClientSearchEmptyQuery(t *testing.T) {
	c := &Client{HTTP: &http.Client{}}
	_, err := c.Search(context.Background(), "   ")
	if err == nil || !strings.Contains(err.Error(), "empty") {
		t.Errorf("expected empty query error, got: %v", err)
	}
}

// --- Client.ResolveID ---

func TestClientResolveID(t *testing.T) {
	ts := ipniTestServer(http.StatusOK, `{"totalResults":1,"results":[{"id":"urn:lsid:ipni.org:names:12345","name":"Quercus robur"}]}`)
	defer ts.Close()

	old := searchBase
	searchBase = ts.URL
	defer func() { searchBase = old }()

	c := &Client{HTTP: ts.Client()}
	id, err := c.ResolveID(context.Background(), "Quercus robur")
	if err != nil {
		t.Fatalf("ResolveID: %v", err)
	}
	if id != "12345" {
		t.Errorf("id = %q, want %q", id, "12345")
	}
}

func TestClientResolveIDFirstHitWins(t *testing.T) {
	ts := ipniTestServer(http.StatusOK, sampleIPNIJSON)
	defer ts.Close()

	old := searchBase
	searchBase = ts.URL
	defer func() { searchBase = old }()

	c := &Client{HTTP: ts.Client()}
	id, err := c.ResolveID(context.Background(), "Salvia rosmarinus")
	if err != nil {
		t.Fatalf("ResolveID: %v", err)
	}
	if id != "30000959-2" {
		t.Errorf("id = %q, want first hit %q", id, "30000959-2")
	}
}

func TestClientResolveIDNoMatch(t *testing.T) {
	ts := ipniTestServer(http.StatusOK, `{"totalResults":0,"results":[]}`)
	defer ts.Close()

	old := searchBase
	searchBase = ts.URL
	defer func() { searchBase = old }()

	c := &Client{HTTP: ts.Client()}
	id, err := c.ResolveID(context.Background(), "Nonexistus plantus")
	if err != nil {
		t.Fatalf("ResolveID: %v", err)
	}
	// No match is a valid outcome, not an error.
	if id != "" {
		t.Errorf("id = %q, want empty string for no match", id)
	}
}

// --- Error cases ---

func TestClientSearchHTTPNon200(t *testing.T) {
	tests := []struct {
		name       string
		statusCode int
		wantSubstr string
	}{
		{"server error", http.StatusInternalServerError, "HTTP 500"},
		{"forbidden", http.StatusForbidden, "HTTP 403"},
		{"too many requests", http.StatusTooManyRequests, "HTTP 429"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := ipniTestServer(tt.statusCode, "")
			defer ts.Close()

			old := searchBase
			searchBase = ts.URL
			defer func() { searchBase = old }()

			c := &Client{HTTP: ts.Client()}
			_, err := c.Search(context.Background(), "Quercus robur")
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.wantSubstr) {
				t.Errorf("error = %q, should contain %q", err.Error(), tt.wantSubstr)
			}
		})
	}
}

func TestClientSearchMalformedJSON(t *testing.T) {
	ts := ipniTestServer(http.StatusOK, `{not valid json`)
	defer ts.Close()

	old := searchBase
	searchBase = ts.URL
	defer func() { searchBase = old }()

	c := &Client{HTTP: ts.Client()}
	_, err := c.Search(context.Background(), "Quercus robur")
	if err == nil {
		t.Fatal("expected JSON parse error")
	}
	if !strings.Contains(err.Error(), "parsing") {
		t.Errorf("error = %q, should mention parsing", err.Error())
	}
}

func TestClientSearchResolveIDPropagatesError(t *testing.T) {
	ts := ipniTestServer(http.StatusBadGateway, "")
	defer ts.Close()

	old := searchBase
	searchBase = ts.URL
	defer func() { searchBase = old }()

	c := &Client{HTTP: ts.Client()}
	_, err := c.ResolveID(context.Background(), "Quercus robur")
	if err == nil {
		t.Fatal("expected error from failed search")
	}
}
