package idgen

import "github.com/google/uuid"

const RequestPrefix = "req-"

func New(prefix string) string {
	return prefix + uuid.NewString()
}
