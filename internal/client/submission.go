package client

import (
	"context"
	"strings"
	"time"

	"cryosure/internal/models"
	"cryosure/internal/validator"

	"github.com/go-resty/resty/v2"
)

// SubmissionClient posts threshold configurations to the remote write endpoint.
type SubmissionClient struct {
	http *resty.Client
	url  string
}

func NewSubmissionClient(url string, timeout time.Duration) *SubmissionClient {
	return &SubmissionClient{
		http: resty.New().SetTimeout(timeout),
		url:  strings.TrimSpace(url),
	}
}

// submissionPayload is the body accepted by the write endpoint. Values that
// do not parse as numbers are sent as null.
type submissionPayload struct {
	StorageType string   `json:"storageType"`
	MinTemp     *float64 `json:"minTemp"`
	MaxTemp     *float64 `json:"maxTemp"`
	MaxHumidity *float64 `json:"maxHumidity"`
}

func newSubmissionPayload(d models.ConfigDraft) submissionPayload {
	return submissionPayload{
		StorageType: d.StorageType,
		MinTemp:     numberOrNil(d.MinTemp),
		MaxTemp:     numberOrNil(d.MaxTemp),
		MaxHumidity: numberOrNil(d.MaxHumidity),
	}
}

func numberOrNil(raw string) *float64 {
	v, ok := validator.ParseNumber(raw)
	if !ok {
		return nil
	}
	return &v
}

// Submit sends one POST. Only a 2xx status counts as success.
func (c *SubmissionClient) Submit(ctx context.Context, draft models.ConfigDraft) error {
	if c.url == "" {
		return &ConfigurationError{Key: "endpoints.write_url"}
	}

	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(newSubmissionPayload(draft)).
		Post(c.url)
	if err != nil {
		return &SubmissionError{Err: err}
	}
	if !resp.IsSuccess() {
		return &SubmissionError{Status: resp.StatusCode(), Body: resp.String()}
	}
	return nil
}
