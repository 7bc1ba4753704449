// Copyright (c) DevOps Wiz
// SPDX-License-Identifier: MPL-2.0

package testhelpers

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"sync"
	"testing"
)

// RequiredEnv returns the required variables pointing at baseURL.
func RequiredEnv(baseURL string) map[string]string {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return map[string]string{
		"PLAID_CLIENT_ID":  ClientID,
		"PLAID_PUBLIC_KEY": PublicKey,
		"PLAID_SECRET":     Secret,
		"PLAID_ENV":        Environment,
		"PLAID_BASE_URL":   baseURL,
	}
}

// Lookup adapts env into an os.LookupEnv-shaped func.
func Lookup(env map[string]string) func(string) (string, bool) {
	return func(k string) (string, bool) {
		v, ok := env[k]
		return v, ok
	}
}

// Without returns a copy of env with the given keys removed.
func Without(env map[string]string, keys ...string) map[string]string {
	out := make(map[string]string, len(env))
	for k, v := range env {
		out[k] = v
	}
	for _, k := range keys {
		delete(out, k)
	}
	return out
}

// SetEnv applies env with t.Setenv so values are restored after the test.
func SetEnv(t *testing.T, env map[string]string) {
	t.Helper()
	for k, v := range env {
		t.Setenv(k, v)
	}
}

// Chdir changes the working directory to dir for the duration of the test,
// restoring the previous directory on cleanup (t.Chdir before Go 1.24).
func Chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(prev); err != nil {
			t.Fatal(err)
		}
	})
}

// Reply is a canned response.
type Reply struct {
	Status int
	Body   string
	Header http.Header
}

// Recorded is a request observed by FakePlaid.
type Recorded struct {
	Method string
	Path   string
	Header http.Header
	Raw    []byte
	// Body is Raw decoded as a JSON object; nil when it is not one.
	Body map[string]any
}

// FakePlaid is an httptest server standing in for the Plaid API.
type FakePlaid struct {
	*httptest.Server

	mu       sync.Mutex
	replies  map[string][]Reply
	requests []Recorded
}

// NewFakePlaid starts a server that answers 200 {"ok": true} on every path
// until told otherwise. It is closed when the test ends.
func NewFakePlaid(t *testing.T) *FakePlaid {
	t.Helper()
	f := &FakePlaid{replies: map[string][]Reply{}}
	f.Server = httptest.NewServer(http.HandlerFunc(f.serve))
	t.Cleanup(f.Close)
	return f
}

// Reply sets a single reply for path.
func (f *FakePlaid) Reply(path string, status int, body string) {
	f.ReplySequence(path, Reply{Status: status, Body: body})
}

// ReplySequence queues replies for path; the last one repeats once the queue
// is drained.
func (f *FakePlaid) ReplySequence(path string, replies ...Reply) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.replies[path] = append([]Reply(nil), replies...)
}

// Requests returns a copy of every request received so far.
func (f *FakePlaid) Requests() []Recorded {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]Recorded(nil), f.requests...)
}

// Hits returns how many requests reached path.
func (f *FakePlaid) Hits(path string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, r := range f.requests {
		if r.Path == path {
			n++
		}
	}
	return n
}

// Last returns the most recent request or fails the test.
func (f *FakePlaid) Last(t *testing.T) Recorded {
	t.Helper()
	reqs := f.Requests()
	if len(reqs) == 0 {
		t.Fatalf("expected at least one request to the fake Plaid server")
	}
	return reqs[len(reqs)-1]
}

func (f *FakePlaid) serve(w http.ResponseWriter, r *http.Request) {
	raw, _ := io.ReadAll(r.Body)
	rec := Recorded{Method: r.Method, Path: r.URL.Path, Header: r.Header.Clone(), Raw: raw}
	var body map[string]any
	if err := json.Unmarshal(raw, &body); err == nil {
		rec.Body = body
	}

	f.mu.Lock()
	f.requests = append(f.requests, rec)
	reply := Reply{Status: http.StatusOK, Body: OKBody}
	if queue := f.replies[r.URL.Path]; len(queue) > 0 {
		reply = queue[0]
		if len(queue) > 1 {
			f.replies[r.URL.Path] = queue[1:]
		}
	}
	f.mu.Unlock()

	for k, vals := range reply.Header {
		for _, v := range vals {
			w.Header().Add(k, v)
		}
	}
	w.Header().Set("Content-Type", "application/json")
	status := reply.Status
	if status == 0 {
		status = http.StatusOK
	}
	w.WriteHeader(status)
	_, _ = io.WriteString(w, reply.Body)
}
