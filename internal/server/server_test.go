package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"printfind/internal/model"
)

type fakeSearcher struct {
	queries   []string
	deadlines []bool
}

func (f *fakeSearcher) Aggregate(ctx context.Context, q string) *model.SearchResponse {
	f.queries = append(f.queries, q)
	_, ok := ctx.Deadline()
	f.deadlines = append(f.deadlines, ok)
	return &model.SearchResponse{
		Results: []model.ModelRecord{{
			Name:    "3DBenchy",
			URL:     "https://www.printables.com/model/3161",
			Creator: "Printables",
			Source:  model.Printables,
		}},
		SearchQuery: q,
		SourceCount: map[model.Source]int{model.Printables: 1, model.Thangs: 0},
	}
}

func (f *fakeSearcher) Sources() []model.Source {
	return []model.Source{model.Printables, model.Thangs}
}

func do(t *testing.T, h http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, target, nil))
	return rr
}

func TestHealthz(t *testing.T) {
	rr := do(t, Handler(&fakeSearcher{}, time.Second), "/healthz")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rr.Body.String())
}

func TestSearch(t *testing.T) {
	f := &fakeSearcher{}
	rr := do(t, Handler(f, time.Second), "/api/search?q=benchy+boat")

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
	assert.Equal(t, []string{"benchy boat"}, f.queries)

	var resp model.SearchResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "benchy boat", resp.SearchQuery)
	require.Len(t, resp.Results, 1)
	assert.Equal(t, model.Printables, resp.Results[0].Source)
	assert.Equal(t, 0, resp.SourceCount[model.Thangs])
}

func TestSearch_RequestTimeout(t *testing.T) {
	f := &fakeSearcher{}
	rr := do(t, Handler(f, time.Second), "/api/search?q=benchy")
	assert.Equal(t, http.StatusOK, rr.Code)

	rr = do(t, Handler(f, 0), "/api/search?q=benchy")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, []bool{true, false}, f.deadlines)
}

func TestSearch_CSV(t *testing.T) {
	rr := do(t, Handler(&fakeSearcher{}, 0), "/api/search?q=benchy&format=csv")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "text/csv; charset=utf-8", rr.Header().Get("Content-Type"))
	assert.Contains(t, rr.Body.String(), "3DBenchy,https://www.printables.com/model/3161")
}

func TestSearch_BadRequests(t *testing.T) {
	f := &fakeSearcher{}
	h := Handler(f, time.Second)

	for _, target := range []string{"/api/search", "/api/search?q=%20%20", "/api/search?q=x&format=yaml"} {
		rr := do(t, h, target)
		assert.Equal(t, http.StatusBadRequest, rr.Code, target)
		assert.Contains(t, rr.Body.String(), "error")
	}
	assert.Empty(t, f.queries)
}

func TestSources(t *testing.T) {
	rr := do(t, Handler(&fakeSearcher{}, time.Second), "/api/sources")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `[{"source":"printables","name":"Printables"},{"source":"thangs","name":"Thangs"}]`, rr.Body.String())
}

func TestNotFound(t *testing.T) {
	rr := do(t, Handler(&fakeSearcher{}, time.Second), "/api/nope")
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestServe_StopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- Serve(ctx, "127.0.0.1:0", Handler(&fakeSearcher{}, time.Second)) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}
