/*
Package domain contains the core domain models for the fretbridge mediator.

It defines the entities shared by every component: the parameter schema view
(groups and definitions), live document parameters, templates, timeline items
and their suppression state, and the message vocabulary exchanged with the UI
client. This package is kept pure and free of external dependencies like I/O
or persistence, following Hexagonal Architecture principles.

# Key Entities

  - ParameterDef / SchemaGroup: the declarative parameter schema as presented
    to the reconciler.
  - LiveParameter: a named value currently stored on the host document.
  - Template: a saved, named mapping of parameter expressions.
  - TimelineItem: a feature or group in the host document's history, with its
    suppression state.
  - LifecycleHooks: observability callbacks fed by the bridge dispatcher.
*/
package domain
