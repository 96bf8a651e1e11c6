/*
Package fretbridge mediates between a remote UI and a parametric fretboard
document hosted in a CAD application.

The bridge owns no geometry. It reconciles the document's user parameters
against a versioned schema of fretboard dimensions, routes UI mutations
through a single-slot mailbox onto the document loop, manages timeline
suppression with cascade semantics for groups, and persists named
parameter sets as templates. A reserved fingerprint parameter on the
document decides whether the UI sees live values or schema defaults.

This Hexagonal Architecture keeps the core decoupled from adapters: the
host CAD application sits behind ports.Host, the UI behind
bridge.Channel, and template persistence behind ports.TemplateStore.
Included adapters cover HTTP with server-sent events, MCP tooling, Redis
and filesystem template stores, and a full in-memory host for tests.

# Usage

Initialize the App facade with a host adapter, then attach a channel and
start the document loop.

	package main

	import (
		"context"
		"log"

		"github.com/luthierlabs/fretbridge"
		"github.com/luthierlabs/fretbridge/pkg/adapters/memory"
	)

	func main() {
		app, err := fretbridge.New(memory.NewHost())
		if err != nil {
			log.Fatal(err)
		}

		ctx := context.Background()
		// Attach a UI channel, then run the document loop.
		// app.Bridge.Attach(ch)
		if err := app.Run(ctx); err != nil && err != context.Canceled {
			log.Fatal(err)
		}
	}
*/
package fretbridge
