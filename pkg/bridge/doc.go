/*
Package bridge is the message loop between the UI channel and the host
document.

Read requests (model state, templates, timeline listings) are served
synchronously on the channel's context. Mutating requests are never
executed there: they go into the single-slot mailbox and are drained by
Run, the document loop, which is the only place the document is written.
Every handler downgrades failures to a log entry plus, where the protocol
has one, a structured failure payload; nothing propagates to the channel
boundary.
*/
package bridge
