/*
Package ports defines the interfaces between the bridge core and the host
application.

The host document, its timeline, and template persistence are all reached
through these ports. The in-memory adapter implements every port for tests
and demos; a production host wraps its native API behind the same contracts.

Host-native object identity is known to behave inconsistently across query
contexts, so the Timeline port deliberately exposes three independent views
of group membership (the entry's own child collection, a groups-by-name
index, and raw position access) that the timeline machine tries in fixed
priority order.
*/
package ports
