// file: internals/features/sync/client/sis_client.go
package client

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"mime"
	"net/http"
	"strings"
	"time"

	"github.com/bytedance/sonic"

	"github.com/CherylPlj/HRMS-sub008/internals/features/sync/signature"
)

// The three failure classes of an outbound SIS call. They mean different
// things operationally — a transport fault retries, a misconfigured endpoint
// (HTML error page, wrong URL) pages somebody, a remote rejection is an
// application-level answer — so they are never collapsed into one error.
var (
	ErrSISUnreachable   = errors.New("sis: transport failure")
	ErrSISMisconfigured = errors.New("sis: non-JSON response")
	ErrSISRejected      = errors.New("sis: request rejected")
)

// IsAuthRejection: remote refused our credentials/signature. Retrying the same
// message cannot succeed until configuration changes.
func IsAuthRejection(err error) bool {
	var r *RejectedError
	return errors.As(err, &r) && (r.Status == http.StatusUnauthorized || r.Status == http.StatusForbidden)
}

type RejectedError struct {
	Status int
	Body   string
}

func (e *RejectedError) Error() string {
	return fmt.Sprintf("sis: request rejected with status %d", e.Status)
}

func (e *RejectedError) Unwrap() error { return ErrSISRejected }

type SISClient struct {
	BaseURL string
	APIKey  string
	Secret  string
	HTTP    *http.Client
}

func NewSISClient(baseURL, apiKey, secret string) *SISClient {
	return &SISClient{
		BaseURL: strings.TrimRight(baseURL, "/"),
		APIKey:  apiKey,
		Secret:  secret,
		HTTP:    &http.Client{Timeout: 10 * time.Second},
	}
}

// post signs and sends one request. The serialized body is the exact byte
// string signed and transmitted; nothing re-serializes it in between.
func (c *SISClient) post(ctx context.Context, path string, payload any) ([]byte, error) {
	rawBody, err := sonic.Marshal(payload)
	if err != nil {
		return nil, err
	}
	ts := signature.Timestamp(time.Now())
	sig := signature.Sign(c.Secret, rawBody, ts)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+path, bytes.NewReader(rawBody))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.APIKey)
	req.Header.Set("x-timestamp", ts)
	req.Header.Set("x-signature", sig)

	resp, err := c.HTTP.Do(req)
	if err != nil {
		log.Printf("[SIS] transport failure on %s: %v", path, err)
		return nil, fmt.Errorf("%w: %v", ErrSISUnreachable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("%w: reading response: %v", ErrSISUnreachable, err)
	}

	ct, _, _ := mime.ParseMediaType(resp.Header.Get("Content-Type"))
	if ct != "application/json" {
		// An HTML error page or proxy response means the endpoint itself is
		// wrong — a configuration problem, not an application answer.
		log.Printf("[SIS] non-JSON content-type %q on %s (status %d)", ct, path, resp.StatusCode)
		return nil, fmt.Errorf("%w: content-type %q", ErrSISMisconfigured, ct)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		log.Printf("[SIS] rejected %s: status=%d body=%s", path, resp.StatusCode, truncate(body, 256))
		return nil, &RejectedError{Status: resp.StatusCode, Body: string(body)}
	}
	return body, nil
}

/* =========================================================
   Calls
   ========================================================= */

// FetchAllSections pulls the registrar's section list. The sentinel body
// exists only to give the signature something to cover.
func (c *SISClient) FetchAllSections(ctx context.Context) ([]byte, error) {
	return c.post(ctx, "/api/sis/sync/sections", map[string]string{"data": "fetch-all-sections"})
}

// FetchAllSchedules pulls the registrar's schedule rows.
func (c *SISClient) FetchAllSchedules(ctx context.Context) ([]byte, error) {
	return c.post(ctx, "/api/sis/sync/schedules", map[string]string{"data": "fetch-all-schedules"})
}

// AssignmentSync is the wire shape of one assignment-change push.
type AssignmentSync struct {
	ScheduleID    string `json:"scheduleId"`
	SISScheduleID string `json:"sisScheduleId,omitempty"`
	EmployeeID    string `json:"employeeId"`
	Assigned      bool   `json:"assigned"`
}

// SyncAssignment pushes one assignment change to SIS.
func (c *SISClient) SyncAssignment(ctx context.Context, a AssignmentSync) error {
	_, err := c.post(ctx, "/api/sis/sync/assignment", a)
	return err
}

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "..."
}
