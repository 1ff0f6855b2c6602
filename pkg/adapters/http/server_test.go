package http

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/aretw0/bankocr"
	"github.com/aretw0/bankocr/pkg/domain"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const scannerFile = "" +
	"    _  _     _  _  _  _  _ \n" +
	"  | _| _||_||_ |_   ||_||_|\n" +
	"  ||_  _|  | _||_|  ||_| _|\n" +
	"\n" +
	"                           \n" +
	"  |  |  |  |  |  |  |  |  |\n" +
	"  |  |  |  |  |  |  |  |  |\n"

func newTestServer(t *testing.T, opts ...Option) (*httptest.Server, *bankocr.Engine) {
	t.Helper()
	eng := bankocr.New()
	srv := httptest.NewServer(NewHandler(eng, opts...))
	t.Cleanup(srv.Close)
	return srv, eng
}

func TestGetHealth(t *testing.T) {
	srv, _ := newTestServer(t)

	resp, err := http.Get(srv.URL + "/healthz")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
}

func TestDecodeEntry(t *testing.T) {
	srv, _ := newTestServer(t)

	tests := []struct {
		name       string
		body       string
		wantStatus int
		wantDigits string
		wantEntry  domain.Status
	}{
		{
			name:       "legible",
			body:       `{"rows":["    _  _     _  _  _  _  _ ","  | _| _||_||_ |_   ||_||_|","  ||_  _|  | _||_|  ||_| _|"]}`,
			wantStatus: http.StatusOK,
			wantDigits: "123456789",
			wantEntry:  domain.StatusOK,
		},
		{
			name:       "short row is invalid",
			body:       `{"rows":[" _ ","| |","|_|"]}`,
			wantStatus: http.StatusOK,
			wantEntry:  domain.StatusInvalid,
		},
		{
			name:       "wrong row count",
			body:       `{"rows":["a","b"]}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "not json",
			body:       `rows`,
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := http.Post(srv.URL+"/v1/entries/decode", "application/json", strings.NewReader(tt.body))
			require.NoError(t, err)
			defer resp.Body.Close()

			require.Equal(t, tt.wantStatus, resp.StatusCode)
			if tt.wantStatus != http.StatusOK {
				return
			}
			var entry domain.Entry
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&entry))
			assert.Equal(t, tt.wantEntry, entry.Status)
			if tt.wantDigits != "" {
				assert.Equal(t, tt.wantDigits, entry.Reading.Digits)
			}
		})
	}
}

func TestBatchLifecycle(t *testing.T) {
	srv, _ := newTestServer(t)

	resp, err := http.Post(srv.URL+"/v1/batches?source=inbox.txt", "text/plain", strings.NewReader(scannerFile))
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var created domain.Batch
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&created))
	resp.Body.Close()

	require.NotEmpty(t, created.ID)
	assert.Equal(t, "inbox.txt", created.Source)
	require.Len(t, created.Entries, 2)
	assert.Equal(t, domain.StatusOK, created.Entries[0].Status)
	assert.Equal(t, domain.StatusError, created.Entries[1].Status)

	// List
	resp, err = http.Get(srv.URL + "/v1/batches")
	require.NoError(t, err)
	var listed struct {
		IDs []string `json:"ids"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&listed))
	resp.Body.Close()
	assert.Equal(t, []string{created.ID}, listed.IDs)

	// Get
	resp, err = http.Get(srv.URL + "/v1/batches/" + created.ID)
	require.NoError(t, err)
	var fetched domain.Batch
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&fetched))
	resp.Body.Close()
	assert.Equal(t, created.ID, fetched.ID)
	assert.Len(t, fetched.Entries, 2)

	// Delete
	req, err := http.NewRequest(http.MethodDelete, srv.URL+"/v1/batches/"+created.ID, nil)
	require.NoError(t, err)
	resp, err = http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp, err = http.Get(srv.URL + "/v1/batches/" + created.ID)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestListBatches_Empty(t *testing.T) {
	srv, _ := newTestServer(t)

	resp, err := http.Get(srv.URL + "/v1/batches")
	require.NoError(t, err)
	defer resp.Body.Close()

	var listed map[string][]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&listed))
	assert.NotNil(t, listed["ids"])
	assert.Empty(t, listed["ids"])
}

func TestDecodeBatch_TooLarge(t *testing.T) {
	srv, _ := newTestServer(t, WithMaxBodyBytes(16))

	resp, err := http.Post(srv.URL+"/v1/batches", "text/plain", strings.NewReader(scannerFile))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusRequestEntityTooLarge, resp.StatusCode)
}

func TestMetricsHandler(t *testing.T) {
	srv, _ := newTestServer(t, WithMetricsHandler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "bankocr_batch_size_count 0\n")
	})))

	resp, err := http.Get(srv.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	srvNoMetrics, _ := newTestServer(t)
	resp2, err := http.Get(srvNoMetrics.URL + "/metrics")
	require.NoError(t, err)
	defer resp2.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp2.StatusCode)
}

func TestSubscribeEvents(t *testing.T) {
	streams := NewStreamManager(nil)
	handler := NewHandler(bankocr.New(), WithStreams(streams))

	ctx, cancel := context.WithCancel(context.Background())
	req := httptest.NewRequest(http.MethodGet, "/v1/events", nil).WithContext(ctx)
	w := httptest.NewRecorder()

	done := make(chan struct{})
	go func() {
		defer close(done)
		handler.ServeHTTP(w, req)
	}()

	require.Eventually(t, func() bool { return streams.Subscribers() == 1 }, time.Second, 10*time.Millisecond)

	post := httptest.NewRequest(http.MethodPost, "/v1/batches?source=a.txt", strings.NewReader(scannerFile))
	postW := httptest.NewRecorder()
	handler.ServeHTTP(postW, post)
	require.Equal(t, http.StatusCreated, postW.Code)

	// Let the SSE goroutine drain the event before disconnecting.
	time.Sleep(50 * time.Millisecond)
	cancel()
	<-done

	body := w.Body.String()
	assert.Contains(t, body, "event: ping")
	assert.Contains(t, body, "event: batch")
	assert.Contains(t, body, `"source":"a.txt"`)
	assert.Contains(t, body, `"entries":2`)
	assert.Equal(t, 0, streams.Subscribers())
}

func TestOpenAPISpec(t *testing.T) {
	doc, err := LoadSpec(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "bankocr API", doc.Info.Title)

	srv, _ := newTestServer(t)
	resp, err := http.Get(srv.URL + "/openapi.yaml")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRoutesAreDocumented(t *testing.T) {
	doc, err := LoadSpec(context.Background())
	require.NoError(t, err)

	server := &Server{Engine: bankocr.New(), Streams: NewStreamManager(nil), logger: slog.Default()}
	undocumented := map[string]bool{"/openapi.yaml": true}

	err = chi.Walk(server.Routes(), func(method, route string, _ http.Handler, _ ...func(http.Handler) http.Handler) error {
		route = strings.TrimSuffix(route, "/")
		if undocumented[route] {
			return nil
		}
		item := doc.Paths.Value(route)
		if item == nil {
			return fmt.Errorf("route %s is not documented", route)
		}
		if item.GetOperation(method) == nil {
			return fmt.Errorf("%s %s is not documented", method, route)
		}
		return nil
	})
	assert.NoError(t, err)
}
