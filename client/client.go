package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"os"
	"path/filepath"
	"strings"

	"github.com/getsavvyinc/pdfqa-cli/config"
	"github.com/getsavvyinc/pdfqa-cli/model"
)

type Client interface {
	// UploadPDF sends the file at path to the ingestion endpoint and returns the
	// document identifier from the response.
	// An empty path sends a body without a file field.
	UploadPDF(ctx context.Context, path string) (model.DocumentID, error)
	// AskQuestion sends the question to the question-answering endpoint.
	AskQuestion(ctx context.Context, question *model.QuestionInfo) (model.Answer, error)
}

const (
	uploadPDFPath   = "/upload_pdf"
	askQuestionPath = "/ask_question"

	// FileField is the multipart field the ingestion endpoint reads.
	FileField = "file"
)

type client struct {
	cl      *http.Client
	apiHost string
}

var _ Client = (*client)(nil)

type Option func(c *client)

// WithHTTPClient replaces the http client. The caller is responsible for its transport.
func WithHTTPClient(cl *http.Client) Option {
	return func(c *client) {
		c.cl = cl
	}
}

func New(cfg *config.Config, opts ...Option) Client {
	c := &client{
		cl: &http.Client{
			Transport: NewRoundTripper(config.UserAgent()),
		},
		apiHost: config.DefaultBackendURL,
	}
	if cfg != nil && cfg.BackendURL != "" {
		c.apiHost = strings.TrimSuffix(cfg.BackendURL, "/")
	}

	for _, opt := range opts {
		opt(c)
	}
	return c
}

// apiURL returns the full url to the api endpoint
// apiURL will add a slash if it's missing
func (c *client) apiURL(path string) string {
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return c.apiHost + path
}

type uploadResponse struct {
	DocumentID model.DocumentID `json:"document_id"`
}

func (c *client) UploadPDF(ctx context.Context, path string) (model.DocumentID, error) {
	body, contentType, err := multipartBody(path)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL(uploadPDFPath), body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", contentType)

	var resp uploadResponse
	if err := c.do(req, &resp); err != nil {
		return nil, err
	}
	return resp.DocumentID, nil
}

type askResponse struct {
	Answer model.Answer `json:"answer"`
}

func (c *client) AskQuestion(ctx context.Context, question *model.QuestionInfo) (model.Answer, error) {
	bs, err := json.Marshal(question)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL(askQuestionPath), bytes.NewReader(bs))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	var resp askResponse
	if err := c.do(req, &resp); err != nil {
		return nil, err
	}
	return resp.Answer, nil
}

func (c *client) do(req *http.Request, v any) error {
	resp, err := c.cl.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return newStatusError(resp)
	}

	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("%w: %w", ErrMalformedResponse, err)
	}
	return nil
}

// multipartBody reads the file at path into a multipart body with a single file field.
// An empty path yields a body with no fields.
func multipartBody(path string) (io.Reader, string, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	if path != "" {
		f, err := os.Open(path)
		if err != nil {
			return nil, "", fmt.Errorf("failed to open %s: %w", path, err)
		}
		defer f.Close()

		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`, FileField, escapeQuotes(filepath.Base(path))))
		h.Set("Content-Type", contentTypeOf(path))

		part, err := mw.CreatePart(h)
		if err != nil {
			return nil, "", err
		}
		if _, err := io.Copy(part, f); err != nil {
			return nil, "", fmt.Errorf("failed to read %s: %w", path, err)
		}
	}

	if err := mw.Close(); err != nil {
		return nil, "", err
	}
	return &buf, mw.FormDataContentType(), nil
}

func contentTypeOf(path string) string {
	if ct := mime.TypeByExtension(filepath.Ext(path)); ct != "" {
		return ct
	}
	return "application/octet-stream"
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

func escapeQuotes(s string) string {
	return quoteEscaper.Replace(s)
}
