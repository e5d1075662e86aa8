// Package apitest provides an in-memory implementation of the tracker backend
// for tests. It serves the same HTTP contract as the real backend, records
// every request and supports failure injection.
package apitest

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"regexp"
	"slices"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/colonyops/minutes/internal/core/tracker"
)

// historyLimit mirrors the backend, which only returns the newest transcripts.
const historyLimit = 5

// Request is a recorded request.
type Request struct {
	Method string
	Path   string
	Query  string
	Body   string
}

// Status returns the status query value, or "" when none was sent.
func (r Request) Status() string {
	if r.Query == "" {
		return ""
	}
	for _, kv := range strings.Split(r.Query, "&") {
		if v, ok := strings.CutPrefix(kv, "status="); ok {
			return v
		}
	}
	return ""
}

type failure struct {
	method string
	prefix string
	status int
	times  int // <= 0 means until cleared
}

type transcript struct {
	id        int64
	content   string
	createdAt time.Time
}

// Server is a fake backend backed by memory.
type Server struct {
	*httptest.Server

	mu          sync.Mutex
	transcripts []transcript
	items       []tracker.ActionItem
	nextTID     int64
	nextItemID  int64
	requests    []Request
	failures    []failure
	now         func() time.Time
	source      string
	health      tracker.BackendStatus
}

// New starts a fake backend that is closed when the test finishes.
func New(t testing.TB) *Server {
	t.Helper()

	s := &Server{
		nextTID:    1,
		nextItemID: 1,
		now:        time.Now,
		source:     "rule-based",
		health: tracker.BackendStatus{
			Backend:  "healthy",
			Database: "connected",
			LLM:      "fallback-only",
			Fallback: "rule-based parser active",
		},
	}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/transcripts", s.createTranscript)
	mux.HandleFunc("GET /api/transcripts", s.listTranscripts)
	mux.HandleFunc("GET /api/transcripts/{id}", s.listItems)
	mux.HandleFunc("POST /api/action-items", s.createItem)
	mux.HandleFunc("PUT /api/action-items/{id}", s.updateItem)
	mux.HandleFunc("DELETE /api/action-items/{id}", s.deleteItem)
	mux.HandleFunc("GET /status", s.status)

	s.Server = httptest.NewServer(s.record(mux))
	t.Cleanup(s.Close)
	return s
}

// Fail makes requests matching method and path prefix answer with status.
// times <= 0 keeps failing until ClearFailures is called.
func (s *Server) Fail(method, pathPrefix string, status, times int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures = append(s.failures, failure{method: method, prefix: pathPrefix, status: status, times: times})
}

// ClearFailures removes all injected failures.
func (s *Server) ClearFailures() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures = nil
}

// SetSource changes the extraction source label returned on submission.
func (s *Server) SetSource(source string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.source = source
}

// SetHealth changes the GET /status payload.
func (s *Server) SetHealth(h tracker.BackendStatus) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.health = h
}

// SetClock overrides the creation time source for transcripts.
func (s *Server) SetClock(now func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now
}

// Requests returns a copy of every request received so far.
func (s *Server) Requests() []Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.requests)
}

// RequestsTo returns recorded requests with the given method and path.
func (s *Server) RequestsTo(method, path string) []Request {
	var out []Request
	for _, r := range s.Requests() {
		if r.Method == method && r.Path == path {
			out = append(out, r)
		}
	}
	return out
}

// ResetRequests forgets recorded requests.
func (s *Server) ResetRequests() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.requests = nil
}

// SeedTranscript stores a transcript without running extraction and returns its id.
func (s *Server) SeedTranscript(content string) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.insertTranscript(content)
}

// SeedItem stores an item and returns it with its assigned id.
func (s *Server) SeedItem(item tracker.ActionItem) tracker.ActionItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	if item.Status == "" {
		item.Status = tracker.StatusOpen
	}
	item.ID = s.nextItemID
	s.nextItemID++
	s.items = append(s.items, item)
	return item
}

// Item returns the stored item with id.
func (s *Server) Item(id int64) (tracker.ActionItem, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, it := range s.items {
		if it.ID == id {
			return it, true
		}
	}
	return tracker.ActionItem{}, false
}

// Items returns every stored item of a transcript.
func (s *Server) Items(transcriptID int64) []tracker.ActionItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []tracker.ActionItem
	for _, it := range s.items {
		if it.TranscriptID == transcriptID {
			out = append(out, it)
		}
	}
	return out
}

func (s *Server) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body []byte
		if r.Body != nil {
			body, _ = readAll(r)
		}

		s.mu.Lock()
		s.requests = append(s.requests, Request{
			Method: r.Method,
			Path:   r.URL.Path,
			Query:  r.URL.RawQuery,
			Body:   string(body),
		})
		status := s.matchFailure(r.Method, r.URL.Path)
		s.mu.Unlock()

		if status != 0 {
			http.Error(w, http.StatusText(status), status)
			return
		}

		r.Body = newBody(body)
		next.ServeHTTP(w, r)
	})
}

// matchFailure must be called with mu held.
func (s *Server) matchFailure(method, path string) int {
	for i := range s.failures {
		f := &s.failures[i]
		if f.method != method || !strings.HasPrefix(path, f.prefix) {
			continue
		}
		status := f.status
		if f.times > 0 {
			f.times--
			if f.times == 0 {
				s.failures = slices.Delete(s.failures, i, i+1)
			}
		}
		return status
	}
	return 0
}

// insertTranscript must be called with mu held.
func (s *Server) insertTranscript(content string) int64 {
	id := s.nextTID
	s.nextTID++
	s.transcripts = append(s.transcripts, transcript{
		id:        id,
		content:   content,
		createdAt: s.now().UTC(),
	})
	return id
}

func (s *Server) createTranscript(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Text string `json:"text"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		http.Error(w, "invalid body", http.StatusUnprocessableEntity)
		return
	}
	if strings.TrimSpace(in.Text) == "" {
		http.Error(w, "Empty transcript", http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	id := s.insertTranscript(in.Text)
	for _, a := range Extract(in.Text) {
		a.ID = s.nextItemID
		a.TranscriptID = id
		a.Status = tracker.StatusOpen
		s.nextItemID++
		s.items = append(s.items, a)
	}
	source := s.source
	s.mu.Unlock()

	writeJSON(w, tracker.Submission{TranscriptID: id, Source: source})
}

type transcriptRow struct {
	ID        int64  `json:"id"`
	CreatedAt string `json:"created_at"`
	ItemCount int    `json:"item_count"`
}

func (s *Server) listTranscripts(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	ts := slices.Clone(s.transcripts)
	slices.SortStableFunc(ts, func(a, b transcript) int {
		if c := b.createdAt.Compare(a.createdAt); c != 0 {
			return c
		}
		return int(b.id - a.id)
	})
	if len(ts) > historyLimit {
		ts = ts[:historyLimit]
	}

	rows := make([]transcriptRow, 0, len(ts))
	for _, t := range ts {
		count := 0
		for _, it := range s.items {
			if it.TranscriptID == t.id {
				count++
			}
		}
		rows = append(rows, transcriptRow{
			ID:        t.id,
			CreatedAt: t.createdAt.Format("2006-01-02 15:04:05"),
			ItemCount: count,
		})
	}
	s.mu.Unlock()

	writeJSON(w, rows)
}

func (s *Server) listItems(w http.ResponseWriter, r *http.Request) {
	tid, ok := pathID(w, r)
	if !ok {
		return
	}
	status := r.URL.Query().Get("status")

	s.mu.Lock()
	out := []tracker.ActionItem{}
	for _, it := range s.items {
		if it.TranscriptID != tid {
			continue
		}
		// Unknown status values are ignored by the backend.
		if (status == "open" || status == "done") && string(it.Status) != status {
			continue
		}
		out = append(out, it)
	}
	s.mu.Unlock()

	writeJSON(w, out)
}

func (s *Server) createItem(w http.ResponseWriter, r *http.Request) {
	var in tracker.NewItem
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil || strings.TrimSpace(in.Task) == "" {
		http.Error(w, "invalid body", http.StatusUnprocessableEntity)
		return
	}

	item := s.SeedItem(tracker.ActionItem{
		TranscriptID: in.TranscriptID,
		Task:         in.Task,
		Owner:        in.Owner,
		DueDate:      in.DueDate,
		Status:       tracker.StatusOpen,
	})
	writeJSON(w, map[string]int64{"id": item.ID})
}

func (s *Server) updateItem(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var in tracker.ItemUpdate
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		http.Error(w, "invalid body", http.StatusUnprocessableEntity)
		return
	}
	if in.IsEmpty() {
		http.Error(w, "No updates", http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	for i := range s.items {
		it := &s.items[i]
		if it.ID != id {
			continue
		}
		if in.Task != nil {
			it.Task = *in.Task
		}
		if in.Owner != nil {
			it.Owner = *in.Owner
		}
		if in.DueDate != nil {
			it.DueDate = *in.DueDate
		}
		if in.Status != nil {
			it.Status = *in.Status
		}
	}
	s.mu.Unlock()

	writeJSON(w, map[string]bool{"updated": true})
}

func (s *Server) deleteItem(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	s.mu.Lock()
	s.items = slices.DeleteFunc(s.items, func(it tracker.ActionItem) bool { return it.ID == id })
	s.mu.Unlock()

	writeJSON(w, map[string]bool{"deleted": true})
}

func (s *Server) status(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	h := s.health
	s.mu.Unlock()
	writeJSON(w, h)
}

var (
	actionKeywords = []string{"will", "should", "needs to", "need to", "must", "action", "todo", "follow up", "assign", "responsible"}
	ownerPatterns  = []*regexp.Regexp{
		regexp.MustCompile(`@(\w+)`),
		regexp.MustCompile(`(?i)assigned to (\w+)`),
		regexp.MustCompile(`\((\w+)\)`),
	}
	listMarker = regexp.MustCompile(`^[-*\d.]`)
)

// Extract is a small keyword-based extractor standing in for the backend's
// rule-based parser. One item is produced per qualifying line.
func Extract(text string) []tracker.ActionItem {
	var out []tracker.ActionItem
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if len(line) < 10 {
			continue
		}

		lower := strings.ToLower(line)
		isAction := listMarker.MatchString(line)
		for _, k := range actionKeywords {
			if strings.Contains(lower, k) {
				isAction = true
				break
			}
		}
		if !isAction {
			continue
		}

		item := tracker.ActionItem{Task: line}
		for _, p := range ownerPatterns {
			if m := p.FindStringSubmatch(line); m != nil {
				item.Owner = m[1]
				break
			}
		}
		out = append(out, item)
	}
	return out
}

func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid id", http.StatusUnprocessableEntity)
		return 0, false
	}
	return id, true
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}
