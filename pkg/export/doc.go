// Package export renders every configured page to static HTML and
// stores it in a Sink.
//
// Two sinks are provided: DirSink writes a directory tree suitable for
// any static file server, and S3Sink uploads objects to an S3 bucket
// (or any S3-compatible store).
//
//	exp := &export.Exporter{
//	    Renderer: renderer,
//	    Registry: reg,
//	    Sink:     export.NewDirSink(cfg.OutputPath()),
//	}
//	report, err := exp.Export(ctx, export.Pages(cfg))
//
// Route "/" is stored as index.html and "/about" as about/index.html.
package export
