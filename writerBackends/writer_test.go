package writerbackends

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
)

func TestDirectServeWritesFile(t *testing.T) {
	base := t.TempDir()

	err := WriteObject(context.Background(),
		map[string]string{"baseDir": base, "folder": "tenant"},
		Object{Name: "manifests/cat.json", ContentType: "application/json", Body: strings.NewReader(`{"src":"x"}`)},
		"directServe")
	if err != nil {
		t.Fatalf("Failed to write object: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(base, "tenant", "manifests", "cat.json"))
	if err != nil {
		t.Fatalf("Expected file to exist: %v", err)
	}
	if string(data) != `{"src":"x"}` {
		t.Errorf("Unexpected file content: %s", data)
	}
}

func TestDirectServeRejectsEscapes(t *testing.T) {
	base := t.TempDir()

	for _, name := range []string{"../outside.json", "a/../../outside.json", ""} {
		err := UploadToDirectServe(context.Background(), map[string]string{"baseDir": base},
			Object{Name: name, Body: strings.NewReader("x")})
		if err == nil {
			t.Errorf("Expected error for object name %q", name)
		}
	}
}

func TestDirectServeRequiresBaseDir(t *testing.T) {
	err := UploadToDirectServe(context.Background(), map[string]string{}, Object{Name: "a.json", Body: strings.NewReader("x")})
	if err == nil {
		t.Error("Expected error without baseDir")
	}
}

func TestWriteObjectUnknownBackend(t *testing.T) {
	err := WriteObject(context.Background(), nil, Object{Name: "a"}, "ftp")
	if err == nil || !strings.Contains(err.Error(), "unknown backend type") {
		t.Errorf("Expected unknown backend error, got %v", err)
	}
}

func TestRegisterCustomWriter(t *testing.T) {
	var got Object
	Register("memory-test", func(_ context.Context, _ map[string]string, obj Object) error {
		got = obj
		return nil
	})
	defer func() {
		mu.Lock()
		delete(writers, "memory-test")
		mu.Unlock()
	}()

	if !Supported("memory-test") {
		t.Fatal("Expected registered backend to be supported")
	}
	if err := WriteObject(context.Background(), nil, Object{Name: "x.json"}, "memory-test"); err != nil {
		t.Fatalf("WriteObject failed: %v", err)
	}
	if got.Name != "x.json" {
		t.Errorf("Expected custom writer to receive the object, got %+v", got)
	}
}

func TestWriteObjectWrapsWriterError(t *testing.T) {
	boom := errors.New("boom")
	Register("failing-test", func(context.Context, map[string]string, Object) error { return boom })
	defer func() {
		mu.Lock()
		delete(writers, "failing-test")
		mu.Unlock()
	}()

	err := WriteObject(context.Background(), nil, Object{}, "failing-test")
	if !errors.Is(err, boom) {
		t.Errorf("Expected wrapped writer error, got %v", err)
	}
}

func TestTypes(t *testing.T) {
	got := strings.Join(Types(), ",")
	if got != "directServe,gcs,s3,sftp" {
		t.Errorf("Unexpected backend types: %s", got)
	}
}

func TestBackendsValidateAccessInfo(t *testing.T) {
	ctx := context.Background()
	obj := Object{Name: "a.json", Body: strings.NewReader("{}")}

	if err := UploadToS3WithCreds(ctx, map[string]string{"region": "us-east-1"}, obj); err == nil {
		t.Error("Expected S3 error without bucket")
	}
	if err := UploadToGCSWithJSON(ctx, map[string]string{"bucket": "b"}, obj); err == nil {
		t.Error("Expected GCS error without credentials")
	}
	if err := UploadToSFTPWithCreds(ctx, map[string]string{"host": "h", "user": "u"}, obj); err == nil {
		t.Error("Expected SFTP error without remoteDir")
	}
	if err := UploadToSFTPWithCreds(ctx, map[string]string{"host": "h", "user": "u", "remoteDir": "/d"}, obj); err == nil {
		t.Error("Expected SFTP error without an auth method")
	}
}

func TestS3UploadToCompatibleEndpoint(t *testing.T) {
	var (
		lock   sync.Mutex
		method string
		path   string
		body   string
		ctype  string
	)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		data, _ := io.ReadAll(r.Body)
		lock.Lock()
		method, path, body, ctype = r.Method, r.URL.Path, string(data), r.Header.Get("Content-Type")
		lock.Unlock()
		w.Header().Set("ETag", `"etag"`)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	err := UploadToS3WithCreds(context.Background(), map[string]string{
		"accessKey": "AKIDEXAMPLE",
		"secretKey": "secret",
		"region":    "us-east-1",
		"bucket":    "images",
		"prefix":    "pixurl",
		"endpoint":  server.URL,
	}, Object{Name: "cat.json", ContentType: "application/json", Body: strings.NewReader(`{"src":"x"}`)})
	if err != nil {
		t.Fatalf("Upload failed: %v", err)
	}

	lock.Lock()
	defer lock.Unlock()
	if method != http.MethodPut {
		t.Errorf("Expected PUT, got %s", method)
	}
	if path != "/images/pixurl/cat.json" {
		t.Errorf("Unexpected object path: %s", path)
	}
	if !strings.Contains(body, `{"src":"x"}`) {
		t.Errorf("Expected manifest body to be uploaded, got %q", body)
	}
	if ctype != "application/json" {
		t.Errorf("Expected content type application/json, got %s", ctype)
	}
}

func TestJoinKey(t *testing.T) {
	tests := []struct{ prefix, name, want string }{
		{"", "a.json", "a.json"},
		{"p", "a.json", "p/a.json"},
		{"p/", "a.json", "p/a.json"},
	}
	for _, tt := range tests {
		if got := joinKey(tt.prefix, tt.name); got != tt.want {
			t.Errorf("joinKey(%q, %q) = %q, want %q", tt.prefix, tt.name, got, tt.want)
		}
	}
}
