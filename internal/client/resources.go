package client

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/url"

	"github.com/dm/mistinfo/internal/model"
)

// ResourceURL returns the full URL for kind under the configured site:
// BaseURL + "sites/" + SiteID + "/" + kind.Path().
func (c *DefaultClient) ResourceURL(kind model.ResourceKind) (string, error) {
	path := kind.Path()
	if path == "" {
		return "", fmt.Errorf("unknown resource kind %q", string(kind))
	}
	return c.config.BaseURL + "sites/" + url.PathEscape(c.config.SiteID) + "/" + path, nil
}

// GetResource fetches one resource collection and decodes the body as an
// untyped JSON value. The payload is not validated against any schema.
func (c *DefaultClient) GetResource(ctx context.Context, kind model.ResourceKind) (model.Value, error) {
	u, err := c.ResourceURL(kind)
	if err != nil {
		return nil, err
	}

	body, err := c.doGet(ctx, kind, u)
	if err != nil {
		var se *StatusError
		if errors.As(err, &se) {
			return nil, se
		}
		return nil, fmt.Errorf("get %s: %w", kind, err)
	}

	v, err := model.DecodeValue(bytes.NewReader(body))
	if err != nil {
		return nil, &DecodeError{Kind: kind, Err: err}
	}
	return v, nil
}
