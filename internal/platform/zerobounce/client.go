package zerobounce

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// HTTPClient matches net/http.Client Do signature for testability.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client wraps the ZeroBounce v2 API. All mutation (credit consumption,
// bulk file lifecycle) happens on the ZeroBounce side; the client holds no
// state beyond its credentials and endpoints and is safe for concurrent use.
type Client struct {
	apiKey     string
	baseURL    string
	bulkURL    string
	httpClient HTTPClient
}

// Config defines settings for the ZeroBounce client.
type Config struct {
	APIKey  string
	BaseURL string
	BulkURL string
	Timeout time.Duration
}

// New creates a ZeroBounce client.
func New(httpClient HTTPClient, cfg Config) *Client {
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = 60 * time.Second
		}
		httpClient = &http.Client{Timeout: timeout}
	}
	base := cfg.BaseURL
	if base == "" {
		base = "https://api.zerobounce.net/v2"
	}
	bulk := cfg.BulkURL
	if bulk == "" {
		bulk = "https://bulkapi.zerobounce.net/v2"
	}

	return &Client{
		apiKey:     cfg.APIKey,
		baseURL:    base,
		bulkURL:    bulk,
		httpClient: httpClient,
	}
}

// Validation is the response of the single-email validate endpoint.
type Validation struct {
	Address       string `json:"address"`
	Status        string `json:"status"`
	SubStatus     string `json:"sub_status"`
	FreeEmail     bool   `json:"free_email"`
	DidYouMean    string `json:"did_you_mean"`
	Account       string `json:"account"`
	Domain        string `json:"domain"`
	DomainAgeDays string `json:"domain_age_days"`
	SMTPProvider  string `json:"smtp_provider"`
	MXFound       string `json:"mx_found"`
	MXRecord      string `json:"mx_record"`
	FirstName     string `json:"firstname"`
	LastName      string `json:"lastname"`
	Gender        string `json:"gender"`
	Country       string `json:"country"`
	Region        string `json:"region"`
	City          string `json:"city"`
	ZipCode       string `json:"zipcode"`
	ProcessedAt   string `json:"processed_at"`
}

// Validate checks the deliverability of a single email address. ipAddress
// is the address the email signed up from and may be empty.
func (c *Client) Validate(ctx context.Context, email, ipAddress string) (*Validation, error) {
	params := url.Values{}
	params.Set("api_key", c.apiKey)
	params.Set("email", email)
	params.Set("ip_address", ipAddress)

	var out Validation
	if err := c.getJSON(ctx, c.baseURL+"/validate", params, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Credits is the response of the getcredits endpoint. ZeroBounce reports
// the count as a string; -1 means the API key was not accepted.
type Credits struct {
	Credits string `json:"Credits"`
}

// Credits returns the number of validation credits left on the account.
func (c *Client) Credits(ctx context.Context) (*Credits, error) {
	params := url.Values{}
	params.Set("api_key", c.apiKey)

	var out Credits
	if err := c.getJSON(ctx, c.baseURL+"/getcredits", params, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DomainFormat is one email-pattern candidate for a domain.
type DomainFormat struct {
	Format     string `json:"format"`
	Confidence string `json:"confidence"`
}

// EmailFormat is the response of the guessformat endpoint.
type EmailFormat struct {
	Email              string         `json:"email"`
	Domain             string         `json:"domain"`
	Format             string         `json:"format"`
	Status             string         `json:"status"`
	SubStatus          string         `json:"sub_status"`
	Confidence         string         `json:"confidence"`
	DidYouMean         string         `json:"did_you_mean"`
	FailureReason      string         `json:"failure_reason"`
	OtherDomainFormats []DomainFormat `json:"other_domain_formats"`
}

// GuessFormat identifies the email format used at a domain. When the name
// parts are empty ZeroBounce returns the domain's pattern candidates only.
func (c *Client) GuessFormat(ctx context.Context, domain, firstName, middleName, lastName string) (*EmailFormat, error) {
	params := url.Values{}
	params.Set("api_key", c.apiKey)
	params.Set("domain", domain)
	params.Set("first_name", firstName)
	params.Set("middle_name", middleName)
	params.Set("last_name", lastName)

	var out EmailFormat
	if err := c.getJSON(ctx, c.baseURL+"/guessformat", params, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// getJSON performs a GET against endpoint with params and decodes the JSON
// response into out. ZeroBounce reports failures both as non-2xx statuses
// and as 200 bodies carrying an "error" field; both surface as errors with
// the provider's message intact.
func (c *Client) getJSON(ctx context.Context, endpoint string, params url.Values, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("zerobounce status %d: %s", resp.StatusCode, apiMessage(body))
	}
	if msg, ok := apiError(body); ok {
		return fmt.Errorf("zerobounce: %s", msg)
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// apiError reports whether body is a JSON object carrying an "error" field.
func apiError(body []byte) (string, bool) {
	var probe struct {
		Error json.RawMessage `json:"error"`
	}
	if err := json.Unmarshal(body, &probe); err != nil || len(probe.Error) == 0 {
		return "", false
	}
	var msg string
	if err := json.Unmarshal(probe.Error, &msg); err == nil {
		return msg, true
	}
	// Some endpoints return "error" as a list of messages.
	return string(probe.Error), true
}

// apiMessage extracts a human-readable message from an error body, falling
// back to the raw body.
func apiMessage(body []byte) string {
	if msg, ok := apiError(body); ok {
		return msg
	}
	var probe struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &probe); err == nil && probe.Message != "" {
		return probe.Message
	}
	return string(body)
}
