package zerobounce

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// SendFileOptions describe a bulk validation upload. Column indexes start
// at 1; zero means the column is not present in the file.
type SendFileOptions struct {
	FilePath        string
	EmailColumn     int
	FirstNameColumn int
	LastNameColumn  int
	GenderColumn    int
	IPAddressColumn int
	HasHeaderRow    bool
	RemoveDuplicate bool
	ReturnURL       string
}

// FileUpload is the response of the sendfile endpoint.
type FileUpload struct {
	Success  bool   `json:"success"`
	Message  string `json:"message"`
	FileName string `json:"file_name"`
	FileID   string `json:"file_id"`
}

// SendFile streams a local file to the bulk validation API.
func (c *Client) SendFile(ctx context.Context, opts SendFileOptions) (*FileUpload, error) {
	f, err := os.Open(opts.FilePath)
	if err != nil {
		return nil, fmt.Errorf("open upload file: %w", err)
	}
	defer f.Close()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	part, err := w.CreateFormFile("file", filepath.Base(opts.FilePath))
	if err != nil {
		return nil, fmt.Errorf("build upload form: %w", err)
	}
	if _, err := io.Copy(part, f); err != nil {
		return nil, fmt.Errorf("read upload file: %w", err)
	}

	fields := map[string]string{
		"api_key":              c.apiKey,
		"email_address_column": strconv.Itoa(opts.EmailColumn),
		"has_header_row":       strconv.FormatBool(opts.HasHeaderRow),
		"remove_duplicate":     strconv.FormatBool(opts.RemoveDuplicate),
	}
	if opts.FirstNameColumn > 0 {
		fields["first_name_column"] = strconv.Itoa(opts.FirstNameColumn)
	}
	if opts.LastNameColumn > 0 {
		fields["last_name_column"] = strconv.Itoa(opts.LastNameColumn)
	}
	if opts.GenderColumn > 0 {
		fields["gender_column"] = strconv.Itoa(opts.GenderColumn)
	}
	if opts.IPAddressColumn > 0 {
		fields["ip_address_column"] = strconv.Itoa(opts.IPAddressColumn)
	}
	if opts.ReturnURL != "" {
		fields["return_url"] = opts.ReturnURL
	}
	for key, val := range fields {
		if err := w.WriteField(key, val); err != nil {
			return nil, fmt.Errorf("build upload form: %w", err)
		}
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("build upload form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.bulkURL+"/sendfile", &buf)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", w.FormDataContentType())
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("zerobounce status %d: %s", resp.StatusCode, apiMessage(body))
	}
	if msg, ok := apiError(body); ok {
		return nil, fmt.Errorf("zerobounce: %s", msg)
	}

	var out FileUpload
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return &out, nil
}

// FileStatus is the response of the filestatus endpoint.
type FileStatus struct {
	Success            bool   `json:"success"`
	FileID             string `json:"file_id"`
	FileName           string `json:"file_name"`
	UploadDate         string `json:"upload_date"`
	FileStatus         string `json:"file_status"`
	CompletePercentage string `json:"complete_percentage"`
	ErrorReason        string `json:"error_reason"`
	ReturnURL          string `json:"return_url"`
}

// FileStatus reports the processing state of a bulk file.
func (c *Client) FileStatus(ctx context.Context, fileID string) (*FileStatus, error) {
	params := url.Values{}
	params.Set("api_key", c.apiKey)
	params.Set("file_id", fileID)

	var out FileStatus
	if err := c.getJSON(ctx, c.bulkURL+"/filestatus", params, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// FileContents is the result of fetching a bulk file. When the file is not
// yet processed the bulk API answers with a JSON body instead of CSV data;
// Ready is false and Message carries the provider's explanation.
type FileContents struct {
	Ready   bool
	Data    []byte
	Message string
}

// GetFile fetches the validation results of a bulk file.
func (c *Client) GetFile(ctx context.Context, fileID string) (*FileContents, error) {
	params := url.Values{}
	params.Set("api_key", c.apiKey)
	params.Set("file_id", fileID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.bulkURL+"/getfile?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("zerobounce status %d: %s", resp.StatusCode, apiMessage(body))
	}

	// A JSON content type means the file is not ready (or the request was
	// rejected); the payload is {"success": false, "message": ...}.
	if strings.Contains(resp.Header.Get("Content-Type"), "application/json") {
		if msg, ok := apiError(body); ok {
			return nil, fmt.Errorf("zerobounce: %s", msg)
		}
		var probe struct {
			Success bool   `json:"success"`
			Message string `json:"message"`
		}
		if err := json.Unmarshal(body, &probe); err != nil {
			return nil, fmt.Errorf("decode response: %w", err)
		}
		return &FileContents{Ready: false, Message: probe.Message}, nil
	}

	return &FileContents{Ready: true, Data: body}, nil
}

// FileDeletion is the response of the deletefile endpoint.
type FileDeletion struct {
	Success  bool   `json:"success"`
	Message  string `json:"message"`
	FileName string `json:"file_name"`
	FileID   string `json:"file_id"`
}

// DeleteFile removes a bulk file and its results from the ZeroBounce side.
func (c *Client) DeleteFile(ctx context.Context, fileID string) (*FileDeletion, error) {
	params := url.Values{}
	params.Set("api_key", c.apiKey)
	params.Set("file_id", fileID)

	var out FileDeletion
	if err := c.getJSON(ctx, c.bulkURL+"/deletefile", params, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
