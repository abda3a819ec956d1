package supabase

import (
	"context"
	"net/http"
)

// ============================================================
// Generic row operations shared by the table stores
// ============================================================

func listRows[R any, T any](ctx context.Context, c *Client, op, table, path string, conv func(R) T) ([]T, error) {
	var rows []R
	err := c.read(ctx, op, func() error {
		body, err := c.doRequest(ctx, http.MethodGet, path)
		if err != nil {
			return err
		}
		rows, err = decodeRows[R](body, table)
		return err
	})
	if err != nil {
		return nil, err
	}

	out := make([]T, 0, len(rows))
	for _, r := range rows {
		out = append(out, conv(r))
	}
	return out, nil
}

// getRow reads a single row; no match is a not-found error.
func getRow[R any, T any](ctx context.Context, c *Client, op, table, path, resource, id string, conv func(R) T) (*T, error) {
	var rows []R
	err := c.read(ctx, op, func() error {
		body, err := c.doRequest(ctx, http.MethodGet, path)
		if err != nil {
			return err
		}
		rows, err = decodeRows[R](body, table)
		if err != nil {
			return err
		}
		if len(rows) == 0 {
			return notFound(resource, id)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	v := conv(rows[0])
	return &v, nil
}

// insertRow posts data and returns the stored representation.
func insertRow[R any, T any](ctx context.Context, c *Client, op, table string, data map[string]any, conv func(R) T) (*T, error) {
	var saved *T
	err := c.write(ctx, op, func() error {
		body, err := c.doPost(ctx, table, data)
		if err != nil {
			return err
		}
		rows, err := decodeRows[R](body, table)
		if err != nil {
			return err
		}
		if len(rows) > 0 {
			v := conv(rows[0])
			saved = &v
		}
		return nil
	})
	return saved, err
}

// updateRow patches the rows matched by path; no match is a not-found error.
func updateRow[R any, T any](ctx context.Context, c *Client, op, table, path, resource, id string, data map[string]any, conv func(R) T) (*T, error) {
	var saved *T
	err := c.write(ctx, op, func() error {
		body, err := c.doPatch(ctx, path, data)
		if err != nil {
			return err
		}
		rows, err := decodeRows[R](body, table)
		if err != nil {
			return err
		}
		if len(rows) == 0 {
			return notFound(resource, id)
		}
		v := conv(rows[0])
		saved = &v
		return nil
	})
	if err != nil {
		return nil, err
	}
	return saved, nil
}

// deleteRows removes the rows matched by path. When resource is set, an empty
// match is reported as not found; bulk deletes pass "" and accept zero rows.
func deleteRows(ctx context.Context, c *Client, op, table, path, resource, id string) error {
	return c.write(ctx, op, func() error {
		body, err := c.doDelete(ctx, path)
		if err != nil {
			return err
		}
		if resource == "" {
			return nil
		}
		rows, err := decodeRows[struct {
			ID string `json:"id"`
		}](body, table)
		if err != nil {
			return err
		}
		if len(rows) == 0 {
			return notFound(resource, id)
		}
		return nil
	})
}
