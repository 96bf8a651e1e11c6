// Package reconcile merges schema definitions, live document parameters and
// template overrides into the model-state payload pushed to the UI.
//
// All builders are pure functions of their inputs. Which builder runs on the
// read path is decided solely by fingerprint presence: a fingerprinted
// document gets live values, anything else gets schema defaults.
package reconcile
