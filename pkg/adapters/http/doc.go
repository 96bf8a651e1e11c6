/*
Package http exposes the bridge to a remote UI over HTTP.

The UI posts action envelopes to /api/message and receives pushes on
/api/stream as server-sent events. The stream side implements
bridge.Channel: every outbound bridge message is broadcast to all
connected stream clients, so a reconnecting UI only has to re-send the
ready handshake to get a fresh model state.
*/
package http
