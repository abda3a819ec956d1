package supabase

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/boddenberg/precifica-bfa-go/internal/domain"
	"github.com/boddenberg/precifica-bfa-go/internal/infra/resilience"
	"github.com/boddenberg/precifica-bfa-go/internal/pricing"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// ============================================================
// HTTP helpers for POST, PATCH, DELETE
// ============================================================

func (c *Client) doPost(ctx context.Context, table string, data map[string]any) ([]byte, error) {
	return c.doMutation(ctx, http.MethodPost, table, data)
}

func (c *Client) doPatch(ctx context.Context, path string, data map[string]any) ([]byte, error) {
	return c.doMutation(ctx, http.MethodPatch, path, data)
}

func (c *Client) doDelete(ctx context.Context, path string) ([]byte, error) {
	return c.doMutation(ctx, http.MethodDelete, path, nil)
}

// doMutation sends a write and asks PostgREST to echo the affected rows, so
// callers can tell an update or delete that matched nothing.
func (c *Client) doMutation(ctx context.Context, method, path string, data map[string]any) ([]byte, error) {
	endpoint := fmt.Sprintf("%s/rest/v1/%s", c.baseURL, path)

	var payload *bytes.Reader
	if data != nil {
		jsonBody, err := json.Marshal(data)
		if err != nil {
			return nil, resilience.Permanent(err)
		}
		payload = bytes.NewReader(jsonBody)
	} else {
		payload = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, payload)
	if err != nil {
		return nil, err
	}
	c.setHeaders(req, "return=representation")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("supabase: "+method+" request failed",
			zap.String("path", path),
			zap.Error(err),
		)
		return nil, err
	}
	defer resp.Body.Close()

	body, err := readBody(resp)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode == http.StatusConflict {
		table, _, _ := strings.Cut(path, "?")
		return nil, resilience.Permanent(&domain.ErrConflict{Resource: table, Message: string(body)})
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.logger.Warn("supabase: "+method+" non-2xx",
			zap.String("path", path),
			zap.Int("status", resp.StatusCode),
			zap.String("body", string(body)),
		)
		return nil, fmt.Errorf("supabase %s %s returned %d: %s", method, path, resp.StatusCode, string(body))
	}

	c.logger.Debug("supabase: "+method+" OK", zap.String("path", path), zap.Int("status", resp.StatusCode))
	return body, nil
}

func readBody(resp *http.Response) ([]byte, error) {
	var buf bytes.Buffer
	if _, err := buf.ReadFrom(resp.Body); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// decodeRows unmarshals a PostgREST array response. An empty body decodes to
// an empty slice.
func decodeRows[T any](body []byte, table string) ([]T, error) {
	rows := []T{}
	if len(bytes.TrimSpace(body)) == 0 {
		return rows, nil
	}
	if err := json.Unmarshal(body, &rows); err != nil {
		return nil, fmt.Errorf("decode %s: %w", table, err)
	}
	return rows, nil
}

// ownerFilter builds "table?user_id=eq.<user>" plus any extra filters.
func ownerFilter(table, userID string, extra ...string) string {
	var b strings.Builder
	b.WriteString(table)
	b.WriteString("?user_id=eq.")
	b.WriteString(url.QueryEscape(userID))
	for _, e := range extra {
		b.WriteByte('&')
		b.WriteString(e)
	}
	return b.String()
}

func eq(column, value string) string {
	return column + "=eq." + url.QueryEscape(value)
}

// amount decodes a numeric column that PostgREST may return as a JSON number,
// a string or null. Unparseable values read as zero.
type amount decimal.Decimal

func (a *amount) UnmarshalJSON(b []byte) error {
	raw := strings.TrimSpace(string(b))
	if raw == "null" {
		*a = amount(decimal.Zero)
		return nil
	}
	*a = amount(pricing.ParseAmount(strings.Trim(raw, `"`)))
	return nil
}

func (a amount) value() decimal.Decimal { return decimal.Decimal(a) }

// timestamp decodes timestamptz columns; missing or malformed values read as
// the zero time.
type timestamp time.Time

func (t *timestamp) UnmarshalJSON(b []byte) error {
	raw := strings.Trim(strings.TrimSpace(string(b)), `"`)
	if raw == "" || raw == "null" {
		*t = timestamp(time.Time{})
		return nil
	}
	for _, layout := range []string{time.RFC3339Nano, "2006-01-02T15:04:05.999999", "2006-01-02 15:04:05.999999-07"} {
		if parsed, err := time.Parse(layout, raw); err == nil {
			*t = timestamp(parsed)
			return nil
		}
	}
	*t = timestamp(time.Time{})
	return nil
}

func (t timestamp) value() time.Time { return time.Time(t) }

// money renders a decimal for a numeric column.
func money(v decimal.Decimal) string {
	return v.String()
}

func notFound(resource, id string) error {
	return resilience.Permanent(&domain.ErrNotFound{Resource: resource, ID: id})
}
