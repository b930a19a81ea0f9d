package nga

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
)

// Diagnostics file names inside the recorder directory.
const (
	requestLogName  = "last_request.json"
	responseLogName = "last_response.txt"
	errorLogName    = "last_error.txt"
)

// Recorder persists the most recent request and response for the debug
// viewers. The error file is written only on failures, so a later successful
// call never buries the evidence of the last failure. A nil *Recorder is
// valid and records nothing.
type Recorder struct {
	dir string
}

// NewRecorder creates a Recorder writing into dir, creating it if needed.
func NewRecorder(dir string) (*Recorder, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create diagnostics dir: %w", err)
	}
	return &Recorder{dir: dir}, nil
}

type requestRecord struct {
	Method  string            `json:"method"`
	URL     string            `json:"url"`
	Params  map[string]string `json:"params"`
	Headers map[string]string `json:"headers"`
}

// Request records an outgoing request. The Cookie header is dropped: the
// diagnostics files are meant to be shared in bug reports.
func (r *Recorder) Request(method, url string, params map[string]string, headers http.Header) {
	if r == nil {
		return
	}
	rec := requestRecord{
		Method:  method,
		URL:     url,
		Params:  params,
		Headers: make(map[string]string, len(headers)),
	}
	for k, vs := range headers {
		if http.CanonicalHeaderKey(k) == "Cookie" || len(vs) == 0 {
			continue
		}
		rec.Headers[k] = vs[0]
	}
	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return
	}
	_ = os.WriteFile(r.path(requestLogName), data, 0o644)
}

// Response records the text of the last successfully handled response.
func (r *Recorder) Response(text string) {
	if r == nil {
		return
	}
	_ = os.WriteFile(r.path(responseLogName), []byte(text), 0o644)
}

// Failure records the text that could not be handled. It goes to a separate
// file from Response so the next success does not overwrite it.
func (r *Recorder) Failure(text string) {
	if r == nil {
		return
	}
	_ = os.WriteFile(r.path(errorLogName), []byte(text), 0o644)
}

// LastRequest returns the persisted request record.
func (r *Recorder) LastRequest() (string, error) { return r.read(requestLogName) }

// LastResponse returns the persisted response text.
func (r *Recorder) LastResponse() (string, error) { return r.read(responseLogName) }

// LastError returns the persisted failing response text.
func (r *Recorder) LastError() (string, error) { return r.read(errorLogName) }

func (r *Recorder) read(name string) (string, error) {
	if r == nil {
		return "", os.ErrNotExist
	}
	data, err := os.ReadFile(r.path(name))
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func (r *Recorder) path(name string) string {
	return filepath.Join(r.dir, name)
}
