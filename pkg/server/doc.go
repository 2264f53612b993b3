// Package server serves rendered documents over HTTP for previewing.
//
// A Server asks its Source for a page on every request to "/", renders it
// with the element API and streams the markup. Optional extras:
//
//   - /healthz for liveness probes
//   - /metrics with Prometheus collectors when a Registry is configured
//   - LivePath, a WebSocket endpoint that tells open pages to reload
//
// # Usage
//
//	srv, err := server.New(server.Config{
//	    Address:    ":3000",
//	    Source:     server.StaticSource(page),
//	    LiveReload: true,
//	    Registry:   prometheus.NewRegistry(),
//	})
//	if err != nil {
//	    return err
//	}
//	return srv.Start(ctx)
package server
