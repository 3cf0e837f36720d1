package apiclient

import (
	"context"
	"net/http"

	"github.com/stockmanager/admin-console/internal/core/domain"
)

// Stats fetches the dashboard aggregates.
func (c *Client) Stats(ctx context.Context) (domain.Stats, error) {
	var s domain.Stats
	err := c.do(ctx, call{
		op: "get stats", resource: "stats", method: http.MethodGet, path: "stats/",
		out: &s, classify: resourceFailure,
	})
	return s, err
}
