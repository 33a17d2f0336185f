package types

import (
	"time"
)

// Document is a stored record in a collection. Fields never contain the id.
type Document struct {
	ID        string
	Fields    map[string]interface{}
	CreatedAt time.Time
}

type File struct {
	ID        string
	Name      string
	MimeType  string
	Size      int64
	CreatedAt time.Time
}
