// Package websocket implements the status feed: a hub that fans workflow,
// extraction and view generation events out to connected browsers.
//
// The feed is one-way. Clients only send keep-alive frames; the hub drops
// clients whose send buffer fills up rather than blocking other subscribers.
package websocket
