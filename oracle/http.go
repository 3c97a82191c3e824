package oracle

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/homevisit/phleb-router/engineerr"
	"github.com/homevisit/phleb-router/entities"
)

// HTTPOracle calls an external routed distance-matrix provider over HTTP.
// It is the adapter side of spec §1's "external travel-time oracle ...
// invoked via an abstract TravelTimeOracle interface" — the engine never
// imports this type directly, only the TravelTimeOracle interface.
type HTTPOracle struct {
	BaseURL string
	Client  *http.Client
}

// NewHTTPOracle constructs an HTTPOracle with a bounded-timeout client.
func NewHTTPOracle(baseURL string, timeout time.Duration) *HTTPOracle {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &HTTPOracle{BaseURL: baseURL, Client: &http.Client{Timeout: timeout}}
}

type httpOracleRequest struct {
	Origins      []entities.Coordinate `json:"origins"`
	Destinations []entities.Coordinate `json:"destinations"`
}

type httpOracleResponse struct {
	Matrix [][]int `json:"matrix"`
}

// Query implements TravelTimeOracle over HTTP, honoring ctx cancellation
// (spec §5: "the oracle call must be cancellable by a surrounding
// deadline").
func (h *HTTPOracle) Query(ctx context.Context, origins, destinations []entities.Coordinate) ([][]int, error) {
	body, err := json.Marshal(httpOracleRequest{Origins: origins, Destinations: destinations})
	if err != nil {
		return nil, engineerr.Oracle("encoding travel-time request", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, h.BaseURL+"/matrix", bytes.NewReader(body))
	if err != nil {
		return nil, engineerr.Oracle("building travel-time request", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := h.Client.Do(req)
	if err != nil {
		return nil, engineerr.Oracle("calling travel-time oracle", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, engineerr.Oracle(fmt.Sprintf("travel-time oracle returned status %d", resp.StatusCode), nil)
	}

	var out httpOracleResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, engineerr.Oracle("decoding travel-time response", err)
	}
	if len(out.Matrix) != len(origins) {
		return nil, engineerr.Oracle("travel-time response row count mismatch", nil)
	}
	for _, row := range out.Matrix {
		if len(row) != len(destinations) {
			return nil, engineerr.Oracle("travel-time response column count mismatch", nil)
		}
	}
	return out.Matrix, nil
}
