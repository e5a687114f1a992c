// Package clienttest provides a scripted client.Client for tests.
package clienttest

import (
	"context"
	"sync"

	"github.com/getsavvyinc/pdfqa-cli/client"
	"github.com/getsavvyinc/pdfqa-cli/model"
)

type UploadResult struct {
	DocumentID model.DocumentID
	Err        error
}

type AskResult struct {
	Answer model.Answer
	Err    error
}

// Fake records every call and answers from the configured results.
// Results are consumed in order; the last one repeats once the queue runs dry.
type Fake struct {
	mu sync.Mutex

	UploadResults []UploadResult
	AskResults    []AskResult

	Uploads   []string
	Questions []model.QuestionInfo
}

var _ client.Client = (*Fake)(nil)

func (f *Fake) UploadPDF(_ context.Context, path string) (model.DocumentID, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.Uploads = append(f.Uploads, path)
	if len(f.UploadResults) == 0 {
		return nil, nil
	}
	res := f.UploadResults[0]
	if len(f.UploadResults) > 1 {
		f.UploadResults = f.UploadResults[1:]
	}
	return res.DocumentID, res.Err
}

func (f *Fake) AskQuestion(_ context.Context, question *model.QuestionInfo) (model.Answer, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.Questions = append(f.Questions, *question)
	if len(f.AskResults) == 0 {
		return nil, nil
	}
	res := f.AskResults[0]
	if len(f.AskResults) > 1 {
		f.AskResults = f.AskResults[1:]
	}
	return res.Answer, res.Err
}
