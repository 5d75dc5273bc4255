package main

import (
	"context"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/vango-dev/vrender/internal/config"
	"github.com/vango-dev/vrender/internal/errors"
	"github.com/vango-dev/vrender/pkg/components"
	"github.com/vango-dev/vrender/pkg/document"
	"github.com/vango-dev/vrender/pkg/export"
	"github.com/vango-dev/vrender/pkg/render"
)

type exportOptions struct {
	configPath string
	output     string
	toS3       bool
	bucket     string
	prefix     string
}

func exportCmd() *cobra.Command {
	var opts exportOptions

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export pages to static HTML",
		Long: `Render every page in vrender.json and store the HTML.

By default pages are written under export.output (dist). With --s3 they
are uploaded to export.bucket instead; credentials are read from
AWS_ACCESS_KEY_ID and AWS_SECRET_ACCESS_KEY.

Examples:
  vrender export
  vrender export --output public
  vrender export --s3 --bucket my-site --prefix v2/`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(cmd, opts, nil)
		},
	}

	cmd.Flags().StringVarP(&opts.configPath, "config", "c", "", "Path to vrender.json")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "Output directory (default from vrender.json)")
	cmd.Flags().BoolVar(&opts.toS3, "s3", false, "Upload to S3 instead of writing files")
	cmd.Flags().StringVar(&opts.bucket, "bucket", "", "S3 bucket (implies --s3)")
	cmd.Flags().StringVar(&opts.prefix, "prefix", "", "S3 key prefix (default from vrender.json)")

	return cmd
}

// runExport exports the configured pages. s3Client overrides the client
// built from the config.
func runExport(cmd *cobra.Command, opts exportOptions, s3Client export.PutObjectAPI) error {
	cfg, err := loadConfig(opts.configPath)
	if err != nil {
		return err
	}
	if len(cfg.Pages) == 0 {
		return errors.New("X201").
			WithDetail("vrender.json has no pages.").
			WithExample(`"pages": {"/": "pages/index.yaml"}`)
	}

	sink, err := newSink(cfg, opts, s3Client)
	if err != nil {
		return err
	}

	reg := document.NewRegistry()
	components.Register(reg)

	exp := &export.Exporter{
		Renderer: render.NewRenderer(render.RendererConfig{
			Strict:           cfg.Render.Strict,
			EscapeAttributes: cfg.Render.EscapeAttributes,
		}),
		Registry: reg,
		Sink:     sink,
		Title:    cfg.Name,
		Timeout:  cfg.RenderTimeout(),
		Logger:   slog.Default(),
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	report, err := exp.Export(ctx, export.Pages(cfg))
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for _, page := range report.Pages {
		info(out, "%s → %s (%d bytes)", page.Route, page.Key, page.Bytes)
	}
	success(out, "Exported %d pages in %s", len(report.Pages), report.Duration.Round(time.Millisecond))
	return nil
}

func newSink(cfg *config.Config, opts exportOptions, client export.PutObjectAPI) (export.Sink, error) {
	if !opts.toS3 && opts.bucket == "" {
		dir := cfg.OutputPath()
		if opts.output != "" {
			dir = opts.output
		}
		return export.NewDirSink(dir), nil
	}

	bucket := cfg.Export.Bucket
	if opts.bucket != "" {
		bucket = opts.bucket
	}
	prefix := cfg.Export.Prefix
	if opts.prefix != "" {
		prefix = opts.prefix
	}
	if client == nil {
		client = export.NewS3Client(cfg.Export)
	}
	return export.NewS3Sink(client, bucket, prefix)
}
