package geocode

import (
	"context"
	"encoding/json"
	"io"
	"math"
	"net/http"
	"net/url"

	"github.com/rotisserie/eris"
)

const (
	censusOneLinePath = "/geocoder/locations/onelineaddress"
	censusBenchmark   = "Public_AR_Current"

	// maxCensusBody caps how much of a response is read.
	maxCensusBody = 1 << 20
)

// censusResponse is the subset of the one-line API response that is used.
type censusResponse struct {
	Result struct {
		AddressMatches []struct {
			Coordinates struct {
				X float64 `json:"x"` // longitude
				Y float64 `json:"y"` // latitude
			} `json:"coordinates"`
			MatchedAddress string `json:"matchedAddress"`
		} `json:"addressMatches"`
	} `json:"result"`
}

// geocodeCensus resolves a one-line address. The first match wins; Census
// orders matches best first.
func (g *geocoder) geocodeCensus(ctx context.Context, oneLine string) (*Result, error) {
	if oneLine == "" {
		return nil, eris.New("geocode: empty address")
	}
	if err := g.limiter.Wait(ctx); err != nil {
		return nil, eris.Wrap(err, "geocode: census rate limit")
	}

	q := url.Values{}
	q.Set("address", oneLine)
	q.Set("benchmark", censusBenchmark)
	q.Set("format", "json")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.baseURL+censusOneLinePath+"?"+q.Encode(), nil)
	if err != nil {
		return nil, eris.Wrap(err, "geocode: census build request")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return nil, eris.Wrap(err, "geocode: census request")
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode != http.StatusOK {
		return nil, eris.Errorf("geocode: census returned status %d", resp.StatusCode)
	}

	var body censusResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxCensusBody)).Decode(&body); err != nil {
		return nil, eris.Wrap(err, "geocode: census parse response")
	}

	matches := body.Result.AddressMatches
	res := &Result{Source: "census", Candidates: len(matches)}
	if len(matches) == 0 {
		return res, nil
	}

	best := matches[0]
	lat, lon := best.Coordinates.Y, best.Coordinates.X
	if math.Abs(lat) > 90 || math.Abs(lon) > 180 || (lat == 0 && lon == 0) {
		return nil, eris.Errorf("geocode: census returned unusable coordinates %v,%v", lat, lon)
	}

	res.Latitude = lat
	res.Longitude = lon
	res.MatchedAddress = best.MatchedAddress
	res.Matched = true
	return res, nil
}
