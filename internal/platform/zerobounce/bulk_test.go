package zerobounce

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeTempCSV(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "emails.csv")
	if err := os.WriteFile(path, []byte("email\na@example.com\nb@example.com\n"), 0o644); err != nil {
		t.Fatalf("write temp csv: %v", err)
	}
	return path
}

func TestSendFileForwardsForm(t *testing.T) {
	path := writeTempCSV(t)
	var form map[string]string
	var uploaded []byte
	rt := roundTripperFunc(func(req *http.Request) (*http.Response, error) {
		if req.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", req.Method)
		}
		if !strings.HasSuffix(req.URL.Path, "/sendfile") {
			t.Errorf("unexpected path: %s", req.URL.Path)
		}
		if err := req.ParseMultipartForm(1 << 20); err != nil {
			t.Fatalf("parse multipart: %v", err)
		}
		form = map[string]string{}
		for key, vals := range req.MultipartForm.Value {
			form[key] = vals[0]
		}
		f, _, err := req.FormFile("file")
		if err != nil {
			t.Fatalf("form file: %v", err)
		}
		defer f.Close()
		uploaded, _ = io.ReadAll(f)
		return jsonResponse(http.StatusOK, `{"success":true,"message":"File Accepted","file_name":"emails.csv","file_id":"abc-123"}`), nil
	})
	c := New(rt, Config{APIKey: "key"})

	got, err := c.SendFile(context.Background(), SendFileOptions{
		FilePath:        path,
		EmailColumn:     1,
		LastNameColumn:  3,
		HasHeaderRow:    true,
		RemoveDuplicate: true,
	})
	if err != nil {
		t.Fatalf("SendFile: %v", err)
	}
	if got.FileID != "abc-123" || !got.Success {
		t.Fatalf("unexpected result: %+v", got)
	}

	if form["api_key"] != "key" || form["email_address_column"] != "1" {
		t.Fatalf("unexpected form fields: %v", form)
	}
	if form["has_header_row"] != "true" || form["remove_duplicate"] != "true" {
		t.Fatalf("unexpected flags: %v", form)
	}
	if form["last_name_column"] != "3" {
		t.Fatalf("expected last_name_column forwarded: %v", form)
	}
	if _, ok := form["first_name_column"]; ok {
		t.Fatalf("unused column index should be omitted: %v", form)
	}
	if _, ok := form["return_url"]; ok {
		t.Fatalf("empty return_url should be omitted: %v", form)
	}
	if !bytes.Contains(uploaded, []byte("a@example.com")) {
		t.Fatalf("file bytes not streamed: %q", uploaded)
	}
}

func TestSendFileMissingLocalFile(t *testing.T) {
	called := false
	rt := roundTripperFunc(func(req *http.Request) (*http.Response, error) {
		called = true
		return jsonResponse(http.StatusOK, `{}`), nil
	})
	c := New(rt, Config{APIKey: "key"})

	_, err := c.SendFile(context.Background(), SendFileOptions{FilePath: "/does/not/exist.csv", EmailColumn: 1})
	if err == nil {
		t.Fatal("expected error for missing file")
	}
	if called {
		t.Fatal("no request should be made when the file cannot be opened")
	}
}

func TestFileStatus(t *testing.T) {
	body := `{"success":true,"file_id":"abc-123","file_name":"emails.csv","upload_date":"2026-08-30T10:00:00Z","file_status":"Complete","complete_percentage":"100%","error_reason":null,"return_url":null}`
	rt := roundTripperFunc(func(req *http.Request) (*http.Response, error) {
		if !strings.HasSuffix(req.URL.Path, "/filestatus") {
			t.Errorf("unexpected path: %s", req.URL.Path)
		}
		if req.URL.Query().Get("file_id") != "abc-123" {
			t.Errorf("missing file_id")
		}
		return jsonResponse(http.StatusOK, body), nil
	})
	c := New(rt, Config{APIKey: "key"})

	got, err := c.FileStatus(context.Background(), "abc-123")
	if err != nil {
		t.Fatalf("FileStatus: %v", err)
	}
	if got.FileStatus != "Complete" || got.CompletePercentage != "100%" {
		t.Fatalf("unexpected status: %+v", got)
	}
}

func TestFileStatusNotFound(t *testing.T) {
	rt := roundTripperFunc(func(req *http.Request) (*http.Response, error) {
		return jsonResponse(http.StatusBadRequest, `{"success":false,"message":"File cannot be found."}`), nil
	})
	c := New(rt, Config{APIKey: "key"})

	_, err := c.FileStatus(context.Background(), "nope")
	if err == nil {
		t.Fatal("expected error for unknown file id")
	}
	if !strings.Contains(err.Error(), "File cannot be found.") {
		t.Fatalf("expected provider message preserved, got %v", err)
	}
}

func TestGetFileReady(t *testing.T) {
	csv := "email,ZB Status\na@example.com,valid\n"
	rt := roundTripperFunc(func(req *http.Request) (*http.Response, error) {
		return &http.Response{
			StatusCode: http.StatusOK,
			Header:     http.Header{"Content-Type": []string{"application/octet-stream"}},
			Body:       io.NopCloser(bytes.NewBufferString(csv)),
		}, nil
	})
	c := New(rt, Config{APIKey: "key"})

	got, err := c.GetFile(context.Background(), "abc-123")
	if err != nil {
		t.Fatalf("GetFile: %v", err)
	}
	if !got.Ready {
		t.Fatal("expected ready contents")
	}
	if string(got.Data) != csv {
		t.Fatalf("unexpected data: %q", got.Data)
	}
}

func TestGetFileNotReady(t *testing.T) {
	rt := roundTripperFunc(func(req *http.Request) (*http.Response, error) {
		return jsonResponse(http.StatusOK, `{"success":false,"message":"File is still processing"}`), nil
	})
	c := New(rt, Config{APIKey: "key"})

	got, err := c.GetFile(context.Background(), "abc-123")
	if err != nil {
		t.Fatalf("GetFile: %v", err)
	}
	if got.Ready {
		t.Fatal("expected not-ready contents")
	}
	if got.Message != "File is still processing" {
		t.Fatalf("unexpected message: %q", got.Message)
	}
}

func TestDeleteFile(t *testing.T) {
	rt := roundTripperFunc(func(req *http.Request) (*http.Response, error) {
		if !strings.HasSuffix(req.URL.Path, "/deletefile") {
			t.Errorf("unexpected path: %s", req.URL.Path)
		}
		return jsonResponse(http.StatusOK, `{"success":true,"message":"File Deleted","file_name":"emails.csv","file_id":"abc-123"}`), nil
	})
	c := New(rt, Config{APIKey: "key"})

	got, err := c.DeleteFile(context.Background(), "abc-123")
	if err != nil {
		t.Fatalf("DeleteFile: %v", err)
	}
	if !got.Success || got.FileID != "abc-123" {
		t.Fatalf("unexpected result: %+v", got)
	}
}
