// Package memory provides in-process implementations of the host ports:
// a document with user parameters, a timeline with configurable host
// quirks, and a template store.
//
// The adapter backs the test suites but is complete enough to run the
// whole bridge without a host application, which is how the serve command
// demos against no CAD install.
package memory
