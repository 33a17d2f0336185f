package common

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/google/uuid"
)

// validIdentifier matches collection, bucket and table names. They end up in
// SQL statements and file paths, so nothing else is allowed.
var validIdentifier = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)

func IsValidIdentifier(name string) bool {
	return validIdentifier.MatchString(name)
}

// NewID returns a fresh unique identifier for a document or file.
func NewID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}

// TableName joins a database id and a collection id into a single SQL table name.
func TableName(databaseID, collectionID string) (string, error) {
	if !IsValidIdentifier(databaseID) {
		return "", fmt.Errorf("invalid database id: %q", databaseID)
	}
	if !IsValidIdentifier(collectionID) {
		return "", fmt.Errorf("invalid collection id: %q", collectionID)
	}
	return databaseID + "_" + collectionID, nil
}

// ViewURL builds the public URL a stored file is served from:
// {endpoint}/storage/buckets/{bucket}/files/{id}/view[?project={project}]
func ViewURL(endpoint, projectID, bucketID, fileID string) string {
	u := strings.TrimRight(endpoint, "/") +
		"/storage/buckets/" + url.PathEscape(bucketID) +
		"/files/" + url.PathEscape(fileID) + "/view"
	if projectID != "" {
		u += "?project=" + url.QueryEscape(projectID)
	}
	return u
}
