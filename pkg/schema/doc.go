/*
Package schema loads and validates the parameter schema.

The schema is static definition data: an ordered set of parameter groups,
each declaring named parameters with defaults, bounds, and unit kinds. It is
loaded once per process and cached as read-only state; Reload re-fetches on
demand but the cached value is never mutated in place.

A failed load yields a *LoadError and callers must treat it as "no schema
available": no payload is ever built from a partial schema.
*/
package schema
