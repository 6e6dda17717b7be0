// Package client provides the HTTP client for the BAG address registry.
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"woninglabel_backend/internal/address/transport"
	"woninglabel_backend/platform/apperr"
	"woninglabel_backend/platform/logger"
)

// Client is the HTTP client for the BAG "adressen uitgebreid" API.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	log        *logger.Logger
}

// New creates a new BAG registry client. The base URL is configurable so
// tests can point it at a stub server.
func New(baseURL, apiKey string, log *logger.Logger) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		baseURL:    baseURL,
		apiKey:     apiKey,
		log:        log,
	}
}

// Lookup fetches a single address by compact postcode (no space) and house
// number. Returns a NotFound error when the registry has no match.
func (c *Client) Lookup(ctx context.Context, postcode, houseNumber, addition string) (*transport.Address, error) {
	params := url.Values{}
	params.Set("postcode", postcode)
	params.Set("huisnummer", houseNumber)
	if addition != "" {
		params.Set("huisnummertoevoeging", addition)
	}
	params.Set("exacteMatch", "true")

	reqURL := fmt.Sprintf("%s/adressenuitgebreid?%s", c.baseURL, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "create registry request", err)
	}

	req.Header.Set("X-Api-Key", c.apiKey)
	req.Header.Set("Accept", "application/hal+json")
	req.Header.Set("Accept-Crs", "epsg:28992")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Warn("bag request failed", "error", err)
		return nil, apperr.Unavailable("address registry unreachable").WithOp("address.Lookup")
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		// Continue to decode.
	case http.StatusNotFound:
		return nil, apperr.NotFound("no address found for this postcode and house number")
	case http.StatusUnauthorized, http.StatusForbidden:
		c.log.Error("bag registry rejected credentials", "status", resp.StatusCode)
		return nil, apperr.Internal("address registry credentials rejected")
	default:
		c.log.Warn("bag upstream error", "status", resp.StatusCode)
		return nil, apperr.Unavailable(fmt.Sprintf("address registry error: status %d", resp.StatusCode)).WithOp("address.Lookup")
	}

	var payload bagResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		c.log.Warn("bag decode failed", "error", err)
		return nil, apperr.Unavailable("address registry returned an unreadable response")
	}

	if len(payload.Embedded.Adressen) == 0 {
		return nil, apperr.NotFound("no address found for this postcode and house number")
	}

	addr := payload.Embedded.Adressen[0].toTransport()
	return &addr, nil
}

// bagResponse is the raw HAL envelope returned by the BAG API.
type bagResponse struct {
	Embedded struct {
		Adressen []bagAddress `json:"adressen"`
	} `json:"_embedded"`
}

type bagAddress struct {
	OpenbareRuimteNaam   string `json:"openbareRuimteNaam"`
	Huisnummer           int    `json:"huisnummer"`
	Huisletter           string `json:"huisletter"`
	Huisnummertoevoeging string `json:"huisnummertoevoeging"`
	Postcode             string `json:"postcode"`
	WoonplaatsNaam       string `json:"woonplaatsNaam"`
	Oppervlakte          int    `json:"oppervlakte"`
}

func (a bagAddress) toTransport() transport.Address {
	houseNumber := strconv.Itoa(a.Huisnummer)
	if a.Huisletter != "" {
		houseNumber += a.Huisletter
	}

	postcode := a.Postcode
	if len(postcode) == 6 {
		postcode = postcode[:4] + " " + postcode[4:]
	}

	return transport.Address{
		Street:      a.OpenbareRuimteNaam,
		HouseNumber: houseNumber,
		Addition:    a.Huisnummertoevoeging,
		Postcode:    postcode,
		City:        a.WoonplaatsNaam,
		SurfaceArea: a.Oppervlakte,
	}
}
