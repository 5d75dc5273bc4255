// Package server provides the vrender preview server.
//
// Every page route in vrender.json is served by loading its tree
// document, rendering it into a full HTML document and writing the
// result. Documents are read on every request, so edits show up on
// reload.
//
//	cfg, _ := config.Load(".")
//	srv := server.New(cfg, server.WithLogger(logger))
//	if err := srv.Run(ctx); err != nil {
//	    log.Fatal(err)
//	}
//
// The router is chi with RequestID, RealIP, Recoverer, request logging,
// tracing and request metrics. /healthz always answers, and the metrics
// endpoint is mounted when metrics are enabled.
package server
