package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/jonathan/skill-extractor/internal/extraction"
	"github.com/jonathan/skill-extractor/internal/knowledge"
	"github.com/jonathan/skill-extractor/internal/server/middleware"
	"github.com/jonathan/skill-extractor/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

// fakeExtractor records requests and returns a canned result
type fakeExtractor struct {
	mu       sync.Mutex
	requests []extraction.Request
	version  string
}

func (f *fakeExtractor) Extract(_ context.Context, req extraction.Request) *types.ExtractionResult {
	f.mu.Lock()
	f.requests = append(f.requests, req)
	f.mu.Unlock()

	return &types.ExtractionResult{
		Matches: []types.SkillMatch{{
			Keyword:         "Python",
			NormalizedForm:  "python",
			ConfidenceScore: 0.88,
			MatchType:       types.MatchExact,
		}},
		SkillClusters:         []types.SkillCluster{},
		MissingCriticalSkills: []string{},
		EmergingSkills:        []string{},
		ConfidenceScore:       0.88,
		Metadata: types.ExtractionMetadata{
			RequestID:        "req-1",
			KnowledgeVersion: f.version,
			Industry:         req.Industry,
		},
	}
}

func (f *fakeExtractor) KnowledgeVersion() string {
	return f.version
}

func newTestServer(t *testing.T, rateLimit int) (*Server, *fakeExtractor) {
	t.Helper()
	fake := &fakeExtractor{version: "test-v1"}
	s, err := New(Config{Port: 0, RateLimit: rateLimit}, fake, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(s.rateLimiter.Stop)
	return s, fake
}

func doRequest(s *Server, method, path, body string) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != "" {
		reader = bytes.NewReader([]byte(body))
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)
	return w
}

func TestNew_RequiresExtractor(t *testing.T) {
	_, err := New(Config{}, nil, nil)
	assert.Error(t, err)
}

func TestHealthEndpoint(t *testing.T) {
	s, _ := newTestServer(t, 0)

	w := doRequest(s, http.MethodGet, "/health", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	assert.NotEmpty(t, w.Header().Get(middleware.RequestIDHeader))

	var resp HealthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, "test-v1", resp.KnowledgeVersion)
}

func TestIndustriesEndpoint(t *testing.T) {
	s, _ := newTestServer(t, 0)

	w := doRequest(s, http.MethodGet, "/v1/industries", "")

	assert.Equal(t, http.StatusOK, w.Code)
	var resp IndustriesResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, []string{"technology", "finance", "healthcare", "marketing"}, resp.Industries)
}

func TestExtractEndpoint(t *testing.T) {
	s, fake := newTestServer(t, 0)

	body := `{"text":"5 years of Python","industry":"Tech","job_description":"python"}`
	w := doRequest(s, http.MethodPost, "/v1/extract", body)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var result types.ExtractionResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	require.Len(t, result.Matches, 1)
	assert.Equal(t, "python", result.Matches[0].NormalizedForm)
	assert.Equal(t, types.IndustryTechnology, result.Metadata.Industry)

	require.Len(t, fake.requests, 1)
	assert.Equal(t, "5 years of Python", fake.requests[0].Text)
	assert.Equal(t, types.IndustryTechnology, fake.requests[0].Industry)
	assert.Equal(t, "python", fake.requests[0].JobDescription)
}

func TestExtractEndpoint_UnknownIndustry(t *testing.T) {
	s, fake := newTestServer(t, 0)

	w := doRequest(s, http.MethodPost, "/v1/extract", `{"text":"Python","industry":"aerospace"}`)

	assert.Equal(t, http.StatusOK, w.Code)
	require.Len(t, fake.requests, 1)
	assert.Equal(t, types.IndustryUnknown, fake.requests[0].Industry)
}

func TestExtractEndpoint_BadRequests(t *testing.T) {
	tooLarge, err := json.Marshal(ExtractRequest{Text: strings.Repeat("a", MaxTextBytes+1), Industry: "technology"})
	require.NoError(t, err)
	jobTooLarge, err := json.Marshal(ExtractRequest{Text: "Python", JobDescription: strings.Repeat("a", MaxTextBytes+1)})
	require.NoError(t, err)

	tests := []struct {
		name    string
		body    string
		wantErr string
	}{
		{name: "invalid JSON", body: `{"text":`, wantErr: "Invalid request body"},
		{name: "wrong type", body: `{"text":42}`, wantErr: "Invalid request body"},
		{name: "text too large", body: string(tooLarge), wantErr: "text is"},
		{name: "job description too large", body: string(jobTooLarge), wantErr: "job_description is"},
		{name: "body over limit", body: `{"text":"` + strings.Repeat("a", maxBodyBytes) + `"}`, wantErr: "Invalid request body"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, fake := newTestServer(t, 0)

			w := doRequest(s, http.MethodPost, "/v1/extract", tt.body)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			var resp map[string]string
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Contains(t, resp["error"], tt.wantErr)
			assert.Empty(t, fake.requests)
		})
	}
}

func TestExtractEndpoint_TextAtLimit(t *testing.T) {
	s, _ := newTestServer(t, 0)

	body, err := json.Marshal(ExtractRequest{Text: strings.Repeat("a", MaxTextBytes)})
	require.NoError(t, err)

	w := doRequest(s, http.MethodPost, "/v1/extract", string(body))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestMethodNotAllowed(t *testing.T) {
	s, _ := newTestServer(t, 0)

	w := doRequest(s, http.MethodGet, "/v1/extract", "")
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}

func TestCORSPreflight(t *testing.T) {
	s, fake := newTestServer(t, 0)

	w := doRequest(s, http.MethodOptions, "/v1/extract", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Empty(t, fake.requests)
}

func TestRateLimit(t *testing.T) {
	// 10 per minute gives a burst of one
	s, _ := newTestServer(t, 10)

	first := doRequest(s, http.MethodPost, "/v1/extract", `{"text":"Python"}`)
	require.Equal(t, http.StatusOK, first.Code)
	assert.Equal(t, "10", first.Header().Get("X-RateLimit-Limit"))

	second := doRequest(s, http.MethodPost, "/v1/extract", `{"text":"Python"}`)
	assert.Equal(t, http.StatusTooManyRequests, second.Code)
	assert.NotEmpty(t, second.Header().Get("Retry-After"))

	var resp map[string]any
	require.NoError(t, json.Unmarshal(second.Body.Bytes(), &resp))
	assert.Equal(t, "rate limit exceeded", resp["error"])

	// Health checks are never limited
	for i := 0; i < 5; i++ {
		assert.Equal(t, http.StatusOK, doRequest(s, http.MethodGet, "/health", "").Code)
	}
}

func TestRequestLogging(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	s, err := New(Config{}, &fakeExtractor{version: "v"}, zap.New(core))
	require.NoError(t, err)
	defer s.rateLimiter.Stop()

	req := httptest.NewRequest(http.MethodPost, "/v1/extract", strings.NewReader(`{"text":"Python","industry":"finance"}`))
	s.Handler().ServeHTTP(httptest.NewRecorder(), req)

	served := logs.FilterMessage("extraction served").All()
	require.Len(t, served, 1)
	fields := served[0].ContextMap()
	assert.Equal(t, "req-1", fields["request_id"])
	assert.Equal(t, "finance", fields["industry"])
	assert.EqualValues(t, 1, fields["matches"])

	assert.Equal(t, 1, logs.FilterMessage("request completed").Len())
}

func TestStart_StopsOnCancel(t *testing.T) {
	s, _ := newTestServer(t, 0)
	s.httpServer.Addr = "127.0.0.1:0"

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Start(ctx) }()

	cancel()
	assert.NoError(t, <-done)
}

func TestExtractEndpoint_WithEngine(t *testing.T) {
	snapshot, err := knowledge.Default()
	require.NoError(t, err)
	engine, err := extraction.NewEngine(knowledge.NewStore(snapshot), extraction.DefaultConfig(), nil, nil)
	require.NoError(t, err)

	s, err := New(Config{}, engine, nil)
	require.NoError(t, err)
	defer s.rateLimiter.Stop()

	body := `{"text":"Senior engineer with 5 years of Python and Kubernetes experience.","industry":"technology"}`
	w := doRequest(s, http.MethodPost, "/v1/extract", body)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var result types.ExtractionResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.NotEmpty(t, result.Matches)
	assert.Equal(t, snapshot.Version, result.Metadata.KnowledgeVersion)
	assert.False(t, result.Metadata.AISignal)

	health := doRequest(s, http.MethodGet, "/health", "")
	assert.Contains(t, health.Body.String(), snapshot.Version)
}
