package client_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/getsavvyinc/pdfqa-cli/client"
	"github.com/getsavvyinc/pdfqa-cli/config"
	"github.com/getsavvyinc/pdfqa-cli/model"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type receivedUpload struct {
	hasFile     bool
	filename    string
	contentType string
	content     string
	fields      int
}

type fakeBackend struct {
	mu        sync.Mutex
	uploads   []receivedUpload
	questions []map[string]any
	headers   []http.Header

	uploadStatus int
	uploadBody   string
	askStatus    int
	askBody      string
}

func (b *fakeBackend) router() http.Handler {
	r := chi.NewRouter()
	r.Post("/upload_pdf", func(w http.ResponseWriter, r *http.Request) {
		var got receivedUpload
		if err := r.ParseMultipartForm(32 << 20); err == nil {
			got.fields = len(r.MultipartForm.File) + len(r.MultipartForm.Value)
			if fhs := r.MultipartForm.File[client.FileField]; len(fhs) > 0 {
				got.hasFile = true
				got.filename = fhs[0].Filename
				got.contentType = fhs[0].Header.Get("Content-Type")
				f, err := fhs[0].Open()
				if err == nil {
					bs, _ := io.ReadAll(f)
					f.Close()
					got.content = string(bs)
				}
			}
		}

		b.mu.Lock()
		b.uploads = append(b.uploads, got)
		b.headers = append(b.headers, r.Header.Clone())
		status, body := b.uploadStatus, b.uploadBody
		b.mu.Unlock()

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		io.WriteString(w, body)
	})
	r.Post("/ask_question", func(w http.ResponseWriter, r *http.Request) {
		var got map[string]any
		_ = json.NewDecoder(r.Body).Decode(&got)

		b.mu.Lock()
		b.questions = append(b.questions, got)
		b.headers = append(b.headers, r.Header.Clone())
		status, body := b.askStatus, b.askBody
		b.mu.Unlock()

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		io.WriteString(w, body)
	})
	return r
}

func newTestClient(t *testing.T, backend *fakeBackend) client.Client {
	srv := httptest.NewServer(backend.router())
	t.Cleanup(srv.Close)
	return client.New(&config.Config{BackendURL: srv.URL + "/"})
}

func writePDF(t *testing.T, name, content string) string {
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestUploadPDF(t *testing.T) {
	ctx := context.Background()

	t.Run("SendsFileField", func(t *testing.T) {
		backend := &fakeBackend{uploadStatus: http.StatusOK, uploadBody: `{"document_id": 1}`}
		cl := newTestClient(t, backend)

		path := writePDF(t, "report.pdf", "%PDF-1.4 fake")
		id, err := cl.UploadPDF(ctx, path)
		require.NoError(t, err)
		assert.Equal(t, "1", string(id))

		require.Len(t, backend.uploads, 1)
		got := backend.uploads[0]
		assert.True(t, got.hasFile)
		assert.Equal(t, "report.pdf", got.filename)
		assert.Equal(t, "application/pdf", got.contentType)
		assert.Equal(t, "%PDF-1.4 fake", got.content)
		assert.Equal(t, 1, got.fields)
	})
	t.Run("SendsWhateverWasSelected", func(t *testing.T) {
		backend := &fakeBackend{uploadStatus: http.StatusOK, uploadBody: `{"document_id": "doc-9"}`}
		cl := newTestClient(t, backend)

		path := writePDF(t, "notes.bin", "not a pdf")
		id, err := cl.UploadPDF(ctx, path)
		require.NoError(t, err)
		assert.Equal(t, "doc-9", id.String())
		require.Len(t, backend.uploads, 1)
		assert.Equal(t, "not a pdf", backend.uploads[0].content)
	})
	t.Run("NoFileSelectedSendsNoFileField", func(t *testing.T) {
		backend := &fakeBackend{uploadStatus: http.StatusOK, uploadBody: `{"document_id": 2}`}
		cl := newTestClient(t, backend)

		_, err := cl.UploadPDF(ctx, "")
		require.NoError(t, err)
		require.Len(t, backend.uploads, 1)
		assert.False(t, backend.uploads[0].hasFile)
		assert.Zero(t, backend.uploads[0].fields)
	})
	t.Run("MissingDocumentIDIsAbsent", func(t *testing.T) {
		backend := &fakeBackend{uploadStatus: http.StatusOK, uploadBody: `{"status": "indexed"}`}
		cl := newTestClient(t, backend)

		id, err := cl.UploadPDF(ctx, writePDF(t, "a.pdf", "x"))
		require.NoError(t, err)
		assert.False(t, id.Present())
	})
	t.Run("NonSuccessStatusIsStatusError", func(t *testing.T) {
		backend := &fakeBackend{uploadStatus: http.StatusBadRequest, uploadBody: `{"detail": "No text found in the PDF document."}`}
		cl := newTestClient(t, backend)

		_, err := cl.UploadPDF(ctx, writePDF(t, "a.pdf", "x"))
		require.Error(t, err)
		var se *client.StatusError
		require.True(t, errors.As(err, &se))
		assert.Equal(t, http.StatusBadRequest, se.StatusCode)
		assert.Equal(t, "No text found in the PDF document.", se.Detail)
	})
	t.Run("MalformedBodyIsError", func(t *testing.T) {
		backend := &fakeBackend{uploadStatus: http.StatusOK, uploadBody: `<html>oops</html>`}
		cl := newTestClient(t, backend)

		_, err := cl.UploadPDF(ctx, writePDF(t, "a.pdf", "x"))
		assert.ErrorIs(t, err, client.ErrMalformedResponse)
	})
	t.Run("MissingLocalFileIsError", func(t *testing.T) {
		backend := &fakeBackend{uploadStatus: http.StatusOK, uploadBody: `{"document_id": 1}`}
		cl := newTestClient(t, backend)

		_, err := cl.UploadPDF(ctx, filepath.Join(t.TempDir(), "gone.pdf"))
		assert.ErrorIs(t, err, os.ErrNotExist)
		assert.Empty(t, backend.uploads)
	})
	t.Run("TransportFailureIsError", func(t *testing.T) {
		srv := httptest.NewServer(http.NotFoundHandler())
		srv.Close()
		cl := client.New(&config.Config{BackendURL: srv.URL})

		_, err := cl.UploadPDF(ctx, "")
		assert.Error(t, err)
	})
}

func TestAskQuestion(t *testing.T) {
	ctx := context.Background()

	testCases := []struct {
		name       string
		documentID model.DocumentID
		question   string
		expected   map[string]any
	}{
		{
			name:       "string identifier",
			documentID: model.DocumentID(`"doc-1"`),
			question:   "What is the total?",
			expected:   map[string]any{"document_id": "doc-1", "question": "What is the total?"},
		},
		{
			name:       "numeric identifier",
			documentID: model.DocumentID(`3`),
			question:   "Who signed it?",
			expected:   map[string]any{"document_id": float64(3), "question": "Who signed it?"},
		},
		{
			name:       "empty question",
			documentID: model.DocumentID(`"doc-1"`),
			question:   "",
			expected:   map[string]any{"document_id": "doc-1", "question": ""},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			backend := &fakeBackend{askStatus: http.StatusOK, askBody: `{"answer": "$42.00"}`}
			cl := newTestClient(t, backend)

			answer, err := cl.AskQuestion(ctx, &model.QuestionInfo{DocumentID: tc.documentID, Question: tc.question})
			require.NoError(t, err)
			assert.Equal(t, "$42.00", answer.Text())

			require.Len(t, backend.questions, 1)
			assert.Equal(t, tc.expected, backend.questions[0])
		})
	}

	t.Run("NotFoundIsStatusError", func(t *testing.T) {
		backend := &fakeBackend{askStatus: http.StatusNotFound, askBody: `{"detail": "Document not found. Available document IDs: []"}`}
		cl := newTestClient(t, backend)

		_, err := cl.AskQuestion(ctx, &model.QuestionInfo{DocumentID: model.DocumentID(`5`), Question: "q"})
		var se *client.StatusError
		require.True(t, errors.As(err, &se))
		assert.Equal(t, http.StatusNotFound, se.StatusCode)
		assert.True(t, strings.HasPrefix(se.Detail, "Document not found"))
	})
	t.Run("StampsRequestHeaders", func(t *testing.T) {
		backend := &fakeBackend{askStatus: http.StatusOK, askBody: `{"answer": "yes"}`}
		cl := newTestClient(t, backend)

		_, err := cl.AskQuestion(ctx, &model.QuestionInfo{DocumentID: model.DocumentID(`1`), Question: "q"})
		require.NoError(t, err)
		require.Len(t, backend.headers, 1)
		assert.Equal(t, config.UserAgent(), backend.headers[0].Get("User-Agent"))
		assert.True(t, strings.HasPrefix(backend.headers[0].Get(client.RequestIDHeader), "req-"))
	})
	t.Run("UsesProvidedHTTPClient", func(t *testing.T) {
		backend := &fakeBackend{askStatus: http.StatusOK, askBody: `{"answer": "yes"}`}
		srv := httptest.NewServer(backend.router())
		t.Cleanup(srv.Close)
		cl := client.New(&config.Config{BackendURL: srv.URL}, client.WithHTTPClient(srv.Client()))

		answer, err := cl.AskQuestion(ctx, &model.QuestionInfo{DocumentID: model.DocumentID(`1`), Question: "q"})
		require.NoError(t, err)
		assert.Equal(t, "yes", answer.Text())
		require.Len(t, backend.headers, 1)
		assert.NotEqual(t, config.UserAgent(), backend.headers[0].Get("User-Agent"))
		assert.Empty(t, backend.headers[0].Get(client.RequestIDHeader))
	})
}
