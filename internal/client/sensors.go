package client

import (
	"context"
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"cryosure/internal/models"
	"cryosure/internal/status"

	"github.com/go-resty/resty/v2"
)

// Batch is one decoded read response, most recent reading first.
type Batch struct {
	Kind     EnvelopeKind
	Readings []models.SensorReading
}

// SensorClient reads recent sensor samples from the remote read endpoint.
type SensorClient struct {
	http *resty.Client
	url  string
	loc  *time.Location
}

// NewSensorClient builds a client; loc is the zone reading times are rendered in.
func NewSensorClient(url string, timeout time.Duration, loc *time.Location) *SensorClient {
	if loc == nil {
		loc = time.UTC
	}
	return &SensorClient{
		http: resty.New().SetTimeout(timeout),
		url:  strings.TrimSpace(url),
		loc:  loc,
	}
}

// FetchLatest performs a single GET and decodes the readings in source order.
func (c *SensorClient) FetchLatest(ctx context.Context) (Batch, error) {
	if c.url == "" {
		return Batch{}, &ConfigurationError{Key: "endpoints.read_url"}
	}

	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("Accept", "application/json").
		Get(c.url)
	if err != nil {
		return Batch{}, &FetchError{Err: err}
	}
	if !resp.IsSuccess() {
		return Batch{}, &FetchError{Status: resp.StatusCode(), Body: resp.String()}
	}

	items, kind, err := unwrapEnvelope(resp.Body())
	if err != nil {
		return Batch{}, &FetchError{Status: resp.StatusCode(), Err: err}
	}

	readings := make([]models.SensorReading, 0, len(items))
	for _, it := range items {
		readings = append(readings, c.toReading(it))
	}
	return Batch{Kind: kind, Readings: readings}, nil
}

func (c *SensorClient) toReading(it rawReading) models.SensorReading {
	text, ts, ok := ParseTimestamp(it.Timestamp)
	r := models.SensorReading{
		DeviceID:     toText(it.DeviceID),
		RawTimestamp: text,
		DisplayTime:  FormatTimestamp(ts, ok, c.loc),
		Temperature:  toFloat(it.Temperature),
		Humidity:     toFloat(it.Humidity),
	}
	if ok {
		r.Time = &ts
	}
	r.Status = status.ForReading(r)
	return r
}

// toFloat accepts a JSON number or a numeric string; anything else is absent.
func toFloat(raw json.RawMessage) *float64 {
	if len(raw) == 0 {
		return nil
	}
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil
	}
	switch val := v.(type) {
	case float64:
		return &val
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(val), 64)
		if err != nil {
			return nil
		}
		return &f
	default:
		return nil
	}
}

func toText(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return ""
	}
	switch val := v.(type) {
	case string:
		return val
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	default:
		return ""
	}
}
