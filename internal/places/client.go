// Package places is the HTTP gateway to the external place-search API. It
// returns enriched results (details and photo inlined); caching and filtering
// live in the service layer.
package places

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"petcareapi/internal/config"
	"petcareapi/internal/model"
)

// maxResultsPerQuery caps how many raw results of a single search call get
// enriched and returned.
const maxResultsPerQuery = 10

// notAvailable is the placeholder used for missing detail fields.
const notAvailable = "N/A"

// Place is one enriched search result.
type Place struct {
	ID           string                `json:"id"`
	Name         string                `json:"name"`
	Rating       float64               `json:"rating"`
	PhotoBase64  string                `json:"photoBase64"`
	OpenNow      bool                  `json:"openNow"`
	Vicinity     string                `json:"vicinity"`
	Latitude     float64               `json:"latitude"`
	Longitude    float64               `json:"longitude"`
	PhoneNumber  string                `json:"phoneNumber"`
	Website      string                `json:"website"`
	OpeningHours []model.OpeningPeriod `json:"openingHours"`
}

// Client calls the place-search REST API.
type Client struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

// NewClient creates a places client from config. BaseURL covers the API root
// (everything before /nearbysearch, /textsearch, /details, /photo), which lets
// tests point it at a local server.
func NewClient(cfg config.MapsConfig) (*Client, error) {
	if strings.TrimSpace(cfg.BaseURL) == "" {
		return nil, fmt.Errorf("maps base url is required")
	}
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, fmt.Errorf("maps api key is required")
	}
	timeout := time.Duration(cfg.TimeoutSec) * time.Second
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:  cfg.APIKey,
		client: &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
	}, nil
}

// rawPlace is the search-result subset we consume.
type rawPlace struct {
	PlaceID  string  `json:"place_id"`
	Name     string  `json:"name"`
	Rating   float64 `json:"rating"`
	Vicinity string  `json:"vicinity"`
	// Text search reports the address under a different key.
	FormattedAddress string `json:"formatted_address"`
	Geometry         struct {
		Location struct {
			Lat float64 `json:"lat"`
			Lng float64 `json:"lng"`
		} `json:"location"`
	} `json:"geometry"`
	Photos []struct {
		PhotoReference string `json:"photo_reference"`
	} `json:"photos"`
}

type rawDayTime struct {
	Day  *int    `json:"day"`
	Time *string `json:"time"`
}

type rawPeriod struct {
	Open  *rawDayTime `json:"open"`
	Close *rawDayTime `json:"close"`
}

type rawDetails struct {
	Result struct {
		FormattedPhoneNumber string `json:"formatted_phone_number"`
		Website              string `json:"website"`
		OpeningHours         *struct {
			OpenNow bool        `json:"open_now"`
			Periods []rawPeriod `json:"periods"`
		} `json:"opening_hours"`
	} `json:"result"`
}

// SearchNearby runs one proximity search for a keyword and returns up to
// maxResultsPerQuery enriched places.
func (c *Client) SearchNearby(ctx context.Context, lat, lng float64, radius int, keyword string) ([]Place, error) {
	q := url.Values{}
	q.Set("location", fmt.Sprintf("%f,%f", lat, lng))
	q.Set("radius", fmt.Sprintf("%d", radius))
	q.Set("keyword", keyword)
	q.Set("key", c.apiKey)

	raws, err := c.search(ctx, "/nearbysearch/json", q)
	if err != nil {
		return nil, err
	}
	return c.enrich(ctx, raws, false)
}

// SearchText runs one text search for a query constrained to a place type and
// returns up to maxResultsPerQuery enriched places.
func (c *Client) SearchText(ctx context.Context, query string, lat, lng float64, radius int, placeType string) ([]Place, error) {
	q := url.Values{}
	q.Set("query", query)
	q.Set("location", fmt.Sprintf("%f,%f", lat, lng))
	q.Set("radius", fmt.Sprintf("%d", radius))
	q.Set("type", placeType)
	q.Set("key", c.apiKey)

	raws, err := c.search(ctx, "/textsearch/json", q)
	if err != nil {
		return nil, err
	}
	return c.enrich(ctx, raws, true)
}

func (c *Client) search(ctx context.Context, path string, q url.Values) ([]rawPlace, error) {
	var out struct {
		Results []rawPlace `json:"results"`
	}
	if err := c.getJSON(ctx, path, q, &out); err != nil {
		return nil, err
	}
	if len(out.Results) > maxResultsPerQuery {
		out.Results = out.Results[:maxResultsPerQuery]
	}
	return out.Results, nil
}

// enrich fills in details and the first photo for each raw result.
func (c *Client) enrich(ctx context.Context, raws []rawPlace, textSearch bool) ([]Place, error) {
	out := make([]Place, 0, len(raws))
	for _, rp := range raws {
		p := Place{
			ID:        rp.PlaceID,
			Name:      rp.Name,
			Rating:    rp.Rating,
			Vicinity:  rp.Vicinity,
			Latitude:  rp.Geometry.Location.Lat,
			Longitude: rp.Geometry.Location.Lng,
		}
		if textSearch {
			p.Vicinity = rp.FormattedAddress
		}
		if len(rp.Photos) > 0 {
			photo, err := c.photoBase64(ctx, rp.Photos[0].PhotoReference)
			if err != nil {
				return nil, fmt.Errorf("fetch photo for %s: %w", rp.PlaceID, err)
			}
			p.PhotoBase64 = photo
		}
		if err := c.details(ctx, &p); err != nil {
			return nil, fmt.Errorf("fetch details for %s: %w", rp.PlaceID, err)
		}
		out = append(out, p)
	}
	return out, nil
}

// details fetches phone, website and opening hours for one place. Missing
// fields get the N/A placeholder; a place without published hours gets a single
// sentinel period with day -1.
func (c *Client) details(ctx context.Context, p *Place) error {
	q := url.Values{}
	q.Set("place_id", p.ID)
	q.Set("fields", "formatted_phone_number,website,opening_hours")
	q.Set("key", c.apiKey)

	var out rawDetails
	if err := c.getJSON(ctx, "/details/json", q, &out); err != nil {
		return err
	}

	p.PhoneNumber = out.Result.FormattedPhoneNumber
	if p.PhoneNumber == "" {
		p.PhoneNumber = notAvailable
	}
	p.Website = out.Result.Website
	if p.Website == "" {
		p.Website = notAvailable
	}

	oh := out.Result.OpeningHours
	if oh == nil {
		p.OpenNow = false
		p.OpeningHours = unknownHours()
		return nil
	}
	p.OpenNow = oh.OpenNow
	p.OpeningHours = convertPeriods(oh.Periods)
	return nil
}

func unknownHours() []model.OpeningPeriod {
	return []model.OpeningPeriod{{Open: &model.DayTime{Day: -1, Time: notAvailable}}}
}

func convertPeriods(periods []rawPeriod) []model.OpeningPeriod {
	if periods == nil {
		return unknownHours()
	}
	out := make([]model.OpeningPeriod, 0, len(periods))
	for _, pr := range periods {
		var op model.OpeningPeriod
		if pr.Open != nil {
			op.Open = convertDayTime(pr.Open)
		}
		if pr.Close != nil {
			op.Close = convertDayTime(pr.Close)
		}
		out = append(out, op)
	}
	return out
}

func convertDayTime(dt *rawDayTime) *model.DayTime {
	conv := &model.DayTime{Day: -1}
	if dt.Day != nil {
		conv.Day = *dt.Day
	}
	if dt.Time != nil {
		conv.Time = *dt.Time
	}
	return conv
}

// photoBase64 downloads a photo (max width 400) and returns it base64-encoded.
func (c *Client) photoBase64(ctx context.Context, photoReference string) (string, error) {
	q := url.Values{}
	q.Set("maxwidth", "400")
	q.Set("photoreference", photoReference)
	q.Set("key", c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/photo?"+q.Encode(), nil)
	if err != nil {
		return "", err
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("places photo: unexpected status %d", resp.StatusCode)
	}
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(raw), nil
}

func (c *Client) getJSON(ctx context.Context, path string, q url.Values, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+q.Encode(), nil)
	if err != nil {
		return err
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("places request: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("places api: unexpected status %d", resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode places response: %w", err)
	}
	return nil
}
