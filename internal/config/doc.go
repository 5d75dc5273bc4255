// Package config provides configuration parsing for vrender sites.
//
// The configuration is stored in vrender.json at the site root.
// Page and export paths are resolved relative to that file.
//
// # Configuration File Structure
//
//	{
//	  "name": "docs",
//	  "render": {"strict": false, "escapeAttributes": false, "timeout": "5s"},
//	  "server": {"host": "localhost", "port": 3000},
//	  "metrics": {"enabled": true, "namespace": "vrender", "path": "/metrics"},
//	  "pages": {
//	    "/": "pages/index.yaml",
//	    "/about": "pages/about.yaml"
//	  },
//	  "export": {"output": "dist", "bucket": "", "prefix": "", "region": "us-east-1"}
//	}
//
// VRENDER_PORT, VRENDER_STRICT and VRENDER_S3_BUCKET override the
// corresponding file values.
//
// # Usage
//
//	cfg, err := config.Load(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	fmt.Println("Listening on", cfg.Address())
package config
