/*
Package timeline enumerates, classifies, locates, and mutates suppression
state on the host document's timeline.

Items are either features or groups. Suppressing a group suppresses the
header and then cascades, best-effort, to every member; only the header
outcome is reported to the caller. Group membership is resolved through a
fixed priority order of strategies because the host's native group-iteration
interface is unreliable when a group is presented as collapsed or when
object identity breaks after a re-query.
*/
package timeline
