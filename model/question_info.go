package model

// QuestionInfo is the body sent to the question-answering endpoint.
type QuestionInfo struct {
	DocumentID DocumentID `json:"document_id,omitempty"`
	Question   string     `json:"question"`
}
