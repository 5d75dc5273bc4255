package export

import (
	"context"
	stderrors "errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/vango-dev/vrender/internal/config"
	"github.com/vango-dev/vrender/internal/errors"
	"github.com/vango-dev/vrender/pkg/components"
	"github.com/vango-dev/vrender/pkg/document"
)

// fakeS3 records PutObject calls.
type fakeS3 struct {
	mu      sync.Mutex
	objects map[string]string
	types   map[string]string
	cache   map[string]string
	err     error
}

func (f *fakeS3) PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	body, err := io.ReadAll(params.Body)
	if err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.objects == nil {
		f.objects = map[string]string{}
		f.types = map[string]string{}
		f.cache = map[string]string{}
	}
	key := aws.ToString(params.Bucket) + "/" + aws.ToString(params.Key)
	f.objects[key] = string(body)
	f.types[key] = aws.ToString(params.ContentType)
	f.cache[key] = aws.ToString(params.CacheControl)
	return &s3.PutObjectOutput{}, nil
}

func writeDocs(t *testing.T, docs map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, src := range docs {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(src), 0644); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

func TestKeyForRoute(t *testing.T) {
	tests := []struct {
		route   string
		want    string
		wantErr bool
	}{
		{"/", "index.html", false},
		{"/about", "about/index.html", false},
		{"/about/", "about/index.html", false},
		{"/docs/intro", "docs/intro/index.html", false},
		{"/404.html", "404.html", false},
		{"//double", "double/index.html", false},
		{"about", "", true},
		{"/a/../b", "", true},
		{"/./a", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.route, func(t *testing.T) {
			got, err := KeyForRoute(tt.route)
			if (err != nil) != tt.wantErr {
				t.Fatalf("KeyForRoute(%q) error = %v, wantErr %v", tt.route, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("KeyForRoute(%q) = %q, want %q", tt.route, got, tt.want)
			}
		})
	}
}

func TestDirSink(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	sink := NewDirSink(dir)

	if err := sink.Put(context.Background(), "a/b/index.html", []byte("<p>x</p>"), "text/html"); err != nil {
		t.Fatalf("Put error: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "a", "b", "index.html"))
	if err != nil {
		t.Fatalf("ReadFile error: %v", err)
	}
	if string(data) != "<p>x</p>" {
		t.Errorf("file = %q", data)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := sink.Put(ctx, "late.html", nil, "text/html"); !stderrors.Is(err, context.Canceled) {
		t.Errorf("Put after cancel = %v, want context.Canceled", err)
	}
}

func TestS3Sink(t *testing.T) {
	fake := &fakeS3{}
	sink, err := NewS3Sink(fake, "site", "v1/")
	if err != nil {
		t.Fatalf("NewS3Sink error: %v", err)
	}
	sink.WithCacheControl("max-age=60")

	if err := sink.Put(context.Background(), "index.html", []byte("<html></html>"), "text/html; charset=utf-8"); err != nil {
		t.Fatalf("Put error: %v", err)
	}

	if got := fake.objects["site/v1/index.html"]; got != "<html></html>" {
		t.Errorf("object = %q", got)
	}
	if got := fake.types["site/v1/index.html"]; got != "text/html; charset=utf-8" {
		t.Errorf("content type = %q", got)
	}
	if got := fake.cache["site/v1/index.html"]; got != "max-age=60" {
		t.Errorf("cache control = %q", got)
	}
}

func TestS3SinkErrors(t *testing.T) {
	if _, err := NewS3Sink(&fakeS3{}, "", ""); !stderrors.Is(err, errors.New("X202")) {
		t.Errorf("missing bucket: err = %v, want X202", err)
	}

	denied := stderrors.New("access denied")
	sink, _ := NewS3Sink(&fakeS3{err: denied}, "site", "")
	err := sink.Put(context.Background(), "index.html", nil, "text/html")
	if !stderrors.Is(err, denied) {
		t.Errorf("err = %v, want wrapped %v", err, denied)
	}
}

func TestNewS3Client(t *testing.T) {
	client := NewS3Client(config.ExportConfig{Region: "eu-west-1"})
	opts := client.Options()
	if opts.Region != "eu-west-1" {
		t.Errorf("Region = %q", opts.Region)
	}
	if opts.UsePathStyle {
		t.Error("UsePathStyle should be off without a custom endpoint")
	}

	client = NewS3Client(config.ExportConfig{Region: "us-east-1", Endpoint: "http://localhost:9000"})
	opts = client.Options()
	if aws.ToString(opts.BaseEndpoint) != "http://localhost:9000" || !opts.UsePathStyle {
		t.Errorf("endpoint options = %q, %v", aws.ToString(opts.BaseEndpoint), opts.UsePathStyle)
	}
}

func TestEnvCredentials(t *testing.T) {
	t.Setenv("AWS_ACCESS_KEY_ID", "")
	t.Setenv("AWS_SECRET_ACCESS_KEY", "")
	if _, err := envCredentials(context.Background()); err == nil {
		t.Error("expected error without credentials")
	}

	t.Setenv("AWS_ACCESS_KEY_ID", "AKID")
	t.Setenv("AWS_SECRET_ACCESS_KEY", "SECRET")
	t.Setenv("AWS_SESSION_TOKEN", "TOKEN")
	creds, err := envCredentials(context.Background())
	if err != nil {
		t.Fatalf("envCredentials error: %v", err)
	}
	if creds.AccessKeyID != "AKID" || creds.SecretAccessKey != "SECRET" || creds.SessionToken != "TOKEN" {
		t.Errorf("creds = %+v", creds)
	}
}

func TestExport(t *testing.T) {
	dir := writeDocs(t, map[string]string{
		"index.yaml": "tag: main\nchildren: [home]\n",
		"about.yaml": "tag: Markdown\nchildren: [\"# About\"]\n",
		"post.yaml":  "tag: article\nchildren: [post]\n",
	})
	out := filepath.Join(dir, "dist")

	reg := document.NewRegistry()
	components.Register(reg)

	exp := &Exporter{
		Registry:    reg,
		Sink:        NewDirSink(out),
		Title:       "Site",
		Concurrency: 2,
	}
	report, err := exp.Export(context.Background(), map[string]string{
		"/":           filepath.Join(dir, "index.yaml"),
		"/about":      filepath.Join(dir, "about.yaml"),
		"/blog/first": filepath.Join(dir, "post.yaml"),
	})
	if err != nil {
		t.Fatalf("Export error: %v", err)
	}

	var routes []string
	total := 0
	for _, p := range report.Pages {
		routes = append(routes, p.Route)
		total += p.Bytes
	}
	if got := strings.Join(routes, ","); got != "/,/about,/blog/first" {
		t.Errorf("routes = %q, want sorted", got)
	}
	if report.Bytes != total || total == 0 {
		t.Errorf("report bytes = %d, sum = %d", report.Bytes, total)
	}

	checks := map[string]string{
		"index.html":            "<main>home</main>",
		"about/index.html":      `<h1 id="about">About</h1>`,
		"blog/first/index.html": "<article>post</article>",
	}
	for key, want := range checks {
		data, err := os.ReadFile(filepath.Join(out, filepath.FromSlash(key)))
		if err != nil {
			t.Errorf("%s: %v", key, err)
			continue
		}
		if !strings.Contains(string(data), want) {
			t.Errorf("%s = %q, want it to contain %q", key, data, want)
		}
		if !strings.Contains(string(data), "<title>Site</title>") {
			t.Errorf("%s missing title", key)
		}
	}
}

func TestExportToS3(t *testing.T) {
	dir := writeDocs(t, map[string]string{"index.yaml": "tag: p\nchildren: [hi]\n"})
	fake := &fakeS3{}
	sink, _ := NewS3Sink(fake, "bucket", "prefix/")

	exp := &Exporter{Sink: sink}
	if _, err := exp.Export(context.Background(), map[string]string{"/": filepath.Join(dir, "index.yaml")}); err != nil {
		t.Fatalf("Export error: %v", err)
	}
	if !strings.Contains(fake.objects["bucket/prefix/index.html"], "<p>hi</p>") {
		t.Errorf("objects = %v", fake.objects)
	}
}

func TestExportFailure(t *testing.T) {
	dir := writeDocs(t, map[string]string{"index.yaml": "tag: p\n"})

	exp := &Exporter{Sink: NewDirSink(filepath.Join(dir, "dist"))}
	_, err := exp.Export(context.Background(), map[string]string{
		"/":        filepath.Join(dir, "index.yaml"),
		"/missing": filepath.Join(dir, "missing.yaml"),
	})

	if !stderrors.Is(err, errors.New("X201")) {
		t.Errorf("err = %v, want X201", err)
	}
	if !stderrors.Is(err, errors.New("D104")) {
		t.Errorf("err = %v, should wrap D104", err)
	}
	if !strings.Contains(err.Error(), "D104") {
		t.Errorf("message should name the cause: %v", err)
	}
}

func TestExportWithoutSink(t *testing.T) {
	_, err := (&Exporter{}).Export(context.Background(), nil)
	if !stderrors.Is(err, errors.New("X201")) {
		t.Errorf("err = %v, want X201", err)
	}
}

func TestPages(t *testing.T) {
	dir := t.TempDir()
	cfg := config.New()
	cfg.Pages["/"] = "index.yaml"
	cfg.Pages["/about"] = "/abs/about.yaml"
	if err := cfg.SaveTo(filepath.Join(dir, config.ConfigFileName)); err != nil {
		t.Fatal(err)
	}

	pages := Pages(cfg)
	if pages["/"] != filepath.Join(dir, "index.yaml") {
		t.Errorf("pages[/] = %q", pages["/"])
	}
	if pages["/about"] != "/abs/about.yaml" {
		t.Errorf("pages[/about] = %q", pages["/about"])
	}
}
