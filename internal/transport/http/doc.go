// Package http implements the HTTP request handlers of the CAN Pulse service.
// Handlers are a thin layer over the services package: they decode and
// validate requests, call one service method and render the result.
//
// # Request Flow
//
//	HTTP Request → Chi Router → Middleware → Handler → Service → Store
//	                                             ↓
//	HTTP Response ← Handler ← Service Response ←┘
//
// # Error Handling
//
// Every failure goes through errors.ErrorHandler and is rendered as an
// RFC 7807 problem document. DomainErrorMappings binds the sentinel errors
// of the scraper, workflow and viz packages to their status codes:
//
//	{
//	    "type": "/errors/workflow/dataset-unavailable",
//	    "title": "Dataset Unavailable",
//	    "status": 404,
//	    "detail": "dataset unavailable: ...",
//	    "instance": "/api/viz/price-distribution",
//	    "trace_id": "..."
//	}
//
// # Status Feed
//
// WebSocketHandler upgrades /ws and registers the connection with the
// websocket hub, which pushes workflow, extraction and view events.
package http
