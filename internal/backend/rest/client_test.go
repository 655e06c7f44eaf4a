package rest

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colonyops/tms/internal/core/annotation"
	"github.com/colonyops/tms/internal/core/grid"
	"github.com/colonyops/tms/internal/core/translation"
)

type captured struct {
	Method string
	Path   string
	Query  map[string][]string
	Header http.Header
	Body   []byte
}

type fakeServer struct {
	*httptest.Server

	mu       sync.Mutex
	requests []captured
	routes   map[string]http.HandlerFunc
}

func newFakeServer(t *testing.T) *fakeServer {
	t.Helper()
	fs := &fakeServer{routes: map[string]http.HandlerFunc{}}
	fs.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		fs.mu.Lock()
		fs.requests = append(fs.requests, captured{
			Method: r.Method,
			Path:   r.URL.Path,
			Query:  r.URL.Query(),
			Header: r.Header.Clone(),
			Body:   body,
		})
		h, ok := fs.routes[r.Method+" "+r.URL.Path]
		fs.mu.Unlock()

		if !ok {
			w.WriteHeader(http.StatusOK)
			return
		}
		h(w, r)
	}))
	t.Cleanup(fs.Close)
	return fs
}

func (fs *fakeServer) handle(method, path string, h http.HandlerFunc) {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	fs.routes[method+" "+path] = h
}

func (fs *fakeServer) last(t *testing.T) captured {
	t.Helper()
	fs.mu.Lock()
	defer fs.mu.Unlock()
	require.NotEmpty(t, fs.requests)
	return fs.requests[len(fs.requests)-1]
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func newClient(fs *fakeServer) *Client {
	return New(Options{
		BaseURL:   fs.URL + "/",
		Token:     "tok",
		CompanyID: "42",
		ProjectID: "7",
		Timeout:   5 * time.Second,
	})
}

func TestClient_InjectsAuthAndTenant(t *testing.T) {
	fs := newFakeServer(t)
	c := newClient(fs)

	_, err := c.Projects(context.Background())
	require.NoError(t, err)

	req := fs.last(t)
	assert.Equal(t, "/api/projects/getAllProjects", req.Path)
	assert.Equal(t, "Bearer tok", req.Header.Get("Authorization"))
	assert.Equal(t, "42", req.Header.Get("companyId"))
	assert.Equal(t, []string{"7"}, req.Query["projectId"])
}

func TestClient_OmitsUnsetTenant(t *testing.T) {
	fs := newFakeServer(t)
	c := New(Options{BaseURL: fs.URL})

	_, err := c.Projects(context.Background())
	require.NoError(t, err)

	req := fs.last(t)
	assert.Empty(t, req.Header.Get("Authorization"))
	assert.Empty(t, req.Header.Get("companyId"))
	assert.NotContains(t, req.Query, "projectId")
}

func TestClient_FetchRecords(t *testing.T) {
	fs := newFakeServer(t)
	fs.handle(http.MethodGet, "/api/tms/translation/getAllTranslationTexts/fr", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, []map[string]any{
			{"stringId": "STR001", "sourceValue": "Hello World!", "sourceLanguage": "en", "targetValues": []string{"Bonjour le monde!"}, "status": "Pending"},
			{"stringId": "STR002", "sourceValue": "Goodbye!", "targetValues": []string{}, "status": "Archived"},
		})
	})

	records, err := newClient(fs).FetchRecords(context.Background(), "fr")
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, translation.Record{
		StringID:       "STR001",
		SourceValue:    "Hello World!",
		SourceLanguage: "en",
		TargetValues:   []string{"Bonjour le monde!"},
		Status:         translation.StatusPending,
	}, records[0])
	assert.Equal(t, translation.Status("Archived"), records[1].Status, "unknown statuses are kept")
}

func TestClient_PersistRoutes(t *testing.T) {
	comment := annotation.Comment{Text: "ok", Author: "Ada", Timestamp: "2025-06-01 08:30:00"}

	tests := []struct {
		name       string
		call       func(c *Client) error
		wantMethod string
		wantPath   string
		wantBody   map[string]any
		wantQuery  map[string]string
	}{
		{
			name: "add record",
			call: func(c *Client) error {
				return c.AddRecord(context.Background(), grid.RecordAddPayload{
					Language: "fr",
					Record:   translation.Record{StringID: "STR010", SourceValue: "Yes", TargetValues: []string{}, Status: translation.StatusPending},
				})
			},
			wantMethod: http.MethodPost,
			wantPath:   "/api/tms/master/addMasterTextAndLayout",
			wantBody: map[string]any{
				"languageId": "fr",
				"record": map[string]any{
					"stringId": "STR010", "sourceValue": "Yes", "targetValues": []any{}, "status": "Pending",
				},
			},
		},
		{
			name: "remove record",
			call: func(c *Client) error {
				return c.RemoveRecord(context.Background(), grid.RecordRemovePayload{Language: "fr", RecordID: "STR010"})
			},
			wantMethod: http.MethodDelete,
			wantPath:   "/api/tms/master/deleteMasterText/STR010",
			wantQuery:  map[string]string{"languageId": "fr", "projectId": "7"},
		},
		{
			name: "source language",
			call: func(c *Client) error {
				return c.ChangeSourceLanguage(context.Background(), grid.SourceLanguagePayload{RecordID: "STR001", SourceLanguage: "de"})
			},
			wantMethod: http.MethodPut,
			wantPath:   "/api/tms/master/updateMasterString",
			wantBody:   map[string]any{"stringId": "STR001", "sourceLanguage": "de"},
		},
		{
			name: "target value",
			call: func(c *Client) error {
				return c.ChangeTargetValue(context.Background(), grid.TargetValuePayload{
					Language: "fr", RecordID: "STR001", Index: 1, Value: "Salut", Values: []string{"Bonjour", "Salut"},
				})
			},
			wantMethod: http.MethodPut,
			wantPath:   "/api/tms/translation/updateTranslationOption",
			wantBody: map[string]any{
				"languageId": "fr", "stringId": "STR001", "optionIndex": float64(1), "value": "Salut",
				"values": []any{"Bonjour", "Salut"},
			},
		},
		{
			name: "removed target value",
			call: func(c *Client) error {
				return c.ChangeTargetValue(context.Background(), grid.TargetValuePayload{
					Language: "fr", RecordID: "STR003", Index: 2, Removed: true,
				})
			},
			wantMethod: http.MethodDelete,
			wantPath:   "/api/tms/translation/deleteTranslationByOptionsId/fr/STR003/2",
		},
		{
			name: "status",
			call: func(c *Client) error {
				return c.ChangeStatus(context.Background(), grid.StatusPayload{Language: "fr", RecordID: "STR002", Status: translation.StatusApproved})
			},
			wantMethod: http.MethodPut,
			wantPath:   "/api/tms/translation/updateApprovalStatusByTranslationStringId",
			wantBody:   map[string]any{"languageId": "fr", "stringId": "STR002", "status": "Approved"},
		},
		{
			name: "comment",
			call: func(c *Client) error {
				return c.AddComment(context.Background(), grid.CommentPayload{Language: "fr", RecordID: "STR002", Comment: comment})
			},
			wantMethod: http.MethodPost,
			wantPath:   "/api/tms/translation/comments/addCommentsForTranslation",
			wantBody: map[string]any{
				"languageId": "fr", "stringId": "STR002",
				"comment": map[string]any{"text": "ok", "author": "Ada", "timestamp": "2025-06-01 08:30:00"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := newFakeServer(t)
			require.NoError(t, tt.call(newClient(fs)))

			req := fs.last(t)
			assert.Equal(t, tt.wantMethod, req.Method)
			assert.Equal(t, tt.wantPath, req.Path)

			if tt.wantBody != nil {
				var got map[string]any
				require.NoError(t, json.Unmarshal(req.Body, &got))
				assert.Equal(t, tt.wantBody, got)
			}
			for k, v := range tt.wantQuery {
				assert.Equal(t, []string{v}, req.Query[k], k)
			}
		})
	}
}

func TestClient_DispatchThroughBackend(t *testing.T) {
	fs := newFakeServer(t)
	c := newClient(fs)

	e := grid.Effect{Op: grid.OpStatusChange, Payload: grid.StatusPayload{Language: "fr", RecordID: "STR001", Status: translation.StatusRejected}}
	require.NoError(t, grid.Dispatch(context.Background(), c, e))
	assert.Equal(t, "/api/tms/translation/updateApprovalStatusByTranslationStringId", fs.last(t).Path)
}

func TestClient_Annotations(t *testing.T) {
	fs := newFakeServer(t)
	fs.handle(http.MethodGet, "/api/tms/translation/comments/getCommentsByTranslationStringId/fr/STR001", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, []annotation.Comment{{Text: "first", Author: "Ada", Timestamp: "2025-06-01 08:30:00"}})
	})
	fs.handle(http.MethodGet, "/api/tms/translation/getTranslationTextsActivityLog/STR001", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, []annotation.ActivityEntry{
			{Action: "created", Actor: "system", Timestamp: "2025-05-30 10:00:00"},
			{Action: "approved", Actor: "Ada", Timestamp: "2025-05-31 11:00:00"},
		})
	})
	c := newClient(fs)

	comments, err := c.FetchComments(context.Background(), "fr", "STR001")
	require.NoError(t, err)
	require.Len(t, comments, 1)
	assert.Equal(t, "first", comments[0].Text)

	activity, err := c.FetchActivity(context.Background(), "STR001")
	require.NoError(t, err)
	require.Len(t, activity, 2)
	assert.Equal(t, "approved", activity[1].Action)
}

func TestClient_Catalog(t *testing.T) {
	fs := newFakeServer(t)
	fs.handle(http.MethodGet, "/api/tms/variant/getVariantsByProjectId/p1", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, []map[string]any{{"id": "v1", "projectId": "p1", "name": "Default", "branch": "main"}})
	})
	fs.handle(http.MethodGet, "/api/languages/getLanguagesByVariantId/v1", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, []map[string]any{{"id": "l1", "languageName": "French", "languageCode": "fr", "countryCode": "FR", "progress": 85}})
	})
	c := newClient(fs)

	variants, err := c.Variants(context.Background(), "p1")
	require.NoError(t, err)
	require.Len(t, variants, 1)
	assert.Equal(t, "main", variants[0].Branch)

	langs, err := c.Languages(context.Background(), "v1")
	require.NoError(t, err)
	require.Len(t, langs, 1)
	assert.Equal(t, 85, langs[0].Progress)
}

func TestClient_ErrorMessages(t *testing.T) {
	tests := []struct {
		name        string
		handler     http.HandlerFunc
		wantStatus  int
		wantMessage string
	}{
		{
			name: "plain text body",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				w.Header().Set("Content-Type", "text/plain")
				w.WriteHeader(http.StatusConflict)
				_, _ = io.WriteString(w, "String id already exists")
			},
			wantStatus:  http.StatusConflict,
			wantMessage: "String id already exists",
		},
		{
			name: "json message",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				writeJSON(w, http.StatusBadRequest, map[string]any{"message": "Invalid status"})
			},
			wantStatus:  http.StatusBadRequest,
			wantMessage: "Invalid status",
		},
		{
			name: "json without message",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				writeJSON(w, http.StatusInternalServerError, map[string]any{"code": 17})
			},
			wantStatus:  http.StatusInternalServerError,
			wantMessage: "Error",
		},
		{
			name: "unauthorized",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				writeJSON(w, http.StatusUnauthorized, "Token expired")
			},
			wantStatus:  http.StatusUnauthorized,
			wantMessage: "Token expired",
		},
		{
			name: "not found",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusNotFound)
			},
			wantStatus:  http.StatusNotFound,
			wantMessage: "API Not Found (api/tms/translation/updateApprovalStatusByTranslationStringId)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := newFakeServer(t)
			fs.handle(http.MethodPut, "/api/tms/translation/updateApprovalStatusByTranslationStringId", tt.handler)

			err := newClient(fs).ChangeStatus(context.Background(), grid.StatusPayload{Language: "fr", RecordID: "STR001", Status: translation.StatusApproved})

			var apiErr *APIError
			require.ErrorAs(t, err, &apiErr)
			assert.Equal(t, tt.wantStatus, apiErr.Status)
			assert.Equal(t, tt.wantMessage, apiErr.Message)
			assert.False(t, apiErr.NoResponse())
		})
	}
}

func TestClient_NoResponse(t *testing.T) {
	fs := newFakeServer(t)
	url := fs.URL
	fs.Close()

	c := New(Options{BaseURL: url, Timeout: time.Second})
	_, err := c.FetchRecords(context.Background(), "fr")

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.True(t, apiErr.NoResponse())
	assert.Equal(t, MsgNoResponse, apiErr.Message)
	assert.NotNil(t, errors.Unwrap(apiErr))
}

func TestErrorMessage(t *testing.T) {
	tests := []struct {
		body string
		want string
	}{
		{body: "", want: "Error"},
		{body: "   ", want: "Error"},
		{body: `"quoted"`, want: "quoted"},
		{body: `{"message":""}`, want: "Error"},
		{body: `[1,2]`, want: "Error"},
		{body: "<html>bad gateway</html>", want: "<html>bad gateway</html>"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, errorMessage([]byte(tt.body)), "body %q", tt.body)
	}
}
