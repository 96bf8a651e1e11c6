package domain

import "regexp"

// Group assignment for extra parameters is stored on the parameter itself,
// as a "[group:<id>]" tag at the front of its comment field. The rest of
// the comment stays the user-visible description.
var groupTag = regexp.MustCompile(`^\[group:([^\]]+)\]\s*`)

// EncodeGroupComment builds a comment carrying a group assignment.
func EncodeGroupComment(groupID, description string) string {
	if groupID == "" {
		return description
	}
	if description == "" {
		return "[group:" + groupID + "]"
	}
	return "[group:" + groupID + "] " + description
}

// ParseGroupComment splits a comment into its group assignment and the
// plain description. Comments without a tag have an empty group.
func ParseGroupComment(comment string) (groupID, description string) {
	if m := groupTag.FindStringSubmatch(comment); m != nil {
		return m[1], comment[len(m[0]):]
	}
	return "", comment
}
