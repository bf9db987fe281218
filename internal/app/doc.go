// Package app wires the CAN Pulse service together: configuration,
// OpenTelemetry, the artifact store, the services, the websocket status feed
// and the chi router.
//
// # Initialization Flow
//
//	1. The caller loads configuration and initializes the logger
//	2. NewApplication resolves paths and initializes OpenTelemetry
//	3. Services are created over one shared artifact store
//	4. Handlers and middleware are mounted on the router
//
// # Usage
//
//	application, err := app.NewApplication(cfg, logger)
//	if err != nil {
//	    return err
//	}
//	return application.Run(ctx)
//
// # Graceful Shutdown
//
// Run returns once ctx is cancelled. In-flight requests are drained within
// the configured shutdown timeout, websocket clients are closed and the
// metric providers are flushed. The package never calls os.Exit.
package app
