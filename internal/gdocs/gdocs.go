// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package gdocs is a small REST client for the remote document service:
// create a document, apply a batch of edit requests, and grant permissions.
// Authentication is the caller's concern; pass an *http.Client that already
// attaches tokens (see package credentials).
package gdocs

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/tliron/commonlog"

	"github.com/pdiddy/notes2docs/internal/httputil"
	"github.com/pdiddy/notes2docs/pkg/types"
)

const (
	DefaultDocsEndpoint  = "https://docs.googleapis.com/v1/documents"
	DefaultDriveEndpoint = "https://www.googleapis.com/drive/v3/files"
	DefaultUserAgent     = "notes2docs/0.1"

	// documentURLFormat is the browser URL of a document.
	documentURLFormat = "https://docs.google.com/document/d/%s/edit"

	// maxErrorBody bounds how much of an error response is read.
	maxErrorBody = 64 << 10
)

var log = commonlog.GetLogger("notes2docs.gdocs")

// Operation names used in RemoteServiceError.
const (
	OpCreate      = "create document"
	OpBatchUpdate = "batch update"
	OpShare       = "share"
)

// RemoteServiceError reports a non-2xx response from the service. It is not
// retried beyond the rate-limit handling in httputil.
type RemoteServiceError struct {
	Op         string
	StatusCode int
	Status     string
	Message    string
}

func (e *RemoteServiceError) Error() string {
	msg := fmt.Sprintf("%s: HTTP %d", e.Op, e.StatusCode)
	if e.Status != "" {
		msg += " " + e.Status
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	return msg
}

// Document is the subset of the service's document resource we read back.
type Document struct {
	DocumentID string `json:"documentId"`
	Title      string `json:"title"`
	RevisionID string `json:"revisionId,omitempty"`
}

// createRequest is the create body. Document IDs are assigned by the service.
type createRequest struct {
	Title string `json:"title"`
}

// URL returns the browser URL for the document.
func (d Document) URL() string { return DocumentURL(d.DocumentID) }

// DocumentURL returns the browser URL for a document ID.
func DocumentURL(id string) string {
	return fmt.Sprintf(documentURLFormat, id)
}

// Permission is a sharing grant.
type Permission struct {
	Type         string `json:"type"`
	Role         string `json:"role"`
	EmailAddress string `json:"emailAddress,omitempty"`
}

// PermissionFor turns share settings into a grant. An email gets a user
// permission with the configured role (writer by default); otherwise a
// public document gets anyone/reader. The second result is false when
// nothing should be shared.
func PermissionFor(share types.ShareConfig) (Permission, bool) {
	if share.Email != "" {
		role := share.Role
		if role == "" {
			role = types.RoleWriter
		}
		return Permission{Type: "user", Role: string(role), EmailAddress: share.Email}, true
	}
	if share.Public {
		return Permission{Type: "anyone", Role: string(types.RoleReader)}, true
	}
	return Permission{}, false
}

// Client talks to the document service.
type Client struct {
	HTTP   *http.Client
	Config types.DocsConfig
}

// New returns a client with endpoint and user-agent defaults filled in.
func New(client *http.Client, cfg types.DocsConfig) *Client {
	if cfg.DocsEndpoint == "" {
		cfg.DocsEndpoint = DefaultDocsEndpoint
	}
	if cfg.DriveEndpoint == "" {
		cfg.DriveEndpoint = DefaultDriveEndpoint
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = DefaultUserAgent
	}
	cfg.DocsEndpoint = strings.TrimSuffix(cfg.DocsEndpoint, "/")
	cfg.DriveEndpoint = strings.TrimSuffix(cfg.DriveEndpoint, "/")
	return &Client{HTTP: client, Config: cfg}
}

// CreateDocument creates an empty document with the given title.
func (c *Client) CreateDocument(ctx context.Context, title string) (Document, error) {
	var doc Document
	if err := c.do(ctx, OpCreate, c.Config.DocsEndpoint, createRequest{Title: title}, &doc); err != nil {
		return Document{}, err
	}
	if doc.DocumentID == "" {
		return Document{}, &RemoteServiceError{Op: OpCreate, StatusCode: http.StatusOK, Message: "response has no documentId"}
	}
	log.Debugf("created document %s", doc.DocumentID)
	return doc, nil
}

// BatchUpdateResponse is the service's reply to a batch update.
type BatchUpdateResponse struct {
	DocumentID string            `json:"documentId"`
	Replies    []json.RawMessage `json:"replies"`
}

// BatchUpdate submits requests as one atomic batch, in order. An empty batch
// is not sent.
func (c *Client) BatchUpdate(ctx context.Context, documentID string, requests []types.Request) (BatchUpdateResponse, error) {
	if len(requests) == 0 {
		return BatchUpdateResponse{DocumentID: documentID}, nil
	}
	endpoint := c.Config.DocsEndpoint + "/" + url.PathEscape(documentID) + ":batchUpdate"

	var out BatchUpdateResponse
	if err := c.do(ctx, OpBatchUpdate, endpoint, types.BatchUpdate{Requests: requests}, &out); err != nil {
		return BatchUpdateResponse{}, err
	}
	log.Debugf("applied %d requests to %s", len(requests), documentID)
	return out, nil
}

// Share grants perm on the document and returns the new permission ID.
func (c *Client) Share(ctx context.Context, documentID string, perm Permission) (string, error) {
	endpoint := c.Config.DriveEndpoint + "/" + url.PathEscape(documentID) + "/permissions?fields=id"

	var out struct {
		ID string `json:"id"`
	}
	if err := c.do(ctx, OpShare, endpoint, perm, &out); err != nil {
		return "", err
	}
	return out.ID, nil
}

// do POSTs body as JSON and decodes a 2xx reply into out.
func (c *Client) do(ctx context.Context, op, endpoint string, body, out any) error {
	data, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("%s: encoding request: %w", op, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("%s: creating request: %w", op, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", c.Config.UserAgent)

	resp, err := httputil.DoWithRetry(ctx, c.HTTP, req, c.Config.MaxRetries)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return remoteError(op, resp)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%s: parsing response: %w", op, err)
	}
	return nil
}

// remoteError builds a RemoteServiceError from the service's error envelope,
// falling back to the raw body when it is not JSON.
func remoteError(op string, resp *http.Response) error {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))

	var envelope struct {
		Error struct {
			Code    int    `json:"code"`
			Message string `json:"message"`
			Status  string `json:"status"`
		} `json:"error"`
	}
	rse := &RemoteServiceError{Op: op, StatusCode: resp.StatusCode}
	if err := json.Unmarshal(raw, &envelope); err == nil && envelope.Error.Message != "" {
		rse.Status = envelope.Error.Status
		rse.Message = envelope.Error.Message
	} else {
		rse.Message = strings.TrimSpace(string(raw))
	}
	return rse
}
