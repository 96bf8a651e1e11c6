package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/luthierlabs/fretbridge/pkg/domain"
)

func TestGroupCommentRoundTrip(t *testing.T) {
	comment := domain.EncodeGroupComment("slots", "kerf allowance")
	assert.Equal(t, "[group:slots] kerf allowance", comment)

	groupID, description := domain.ParseGroupComment(comment)
	assert.Equal(t, "slots", groupID)
	assert.Equal(t, "kerf allowance", description)
}

func TestEncodeGroupComment(t *testing.T) {
	assert.Equal(t, "plain text", domain.EncodeGroupComment("", "plain text"))
	assert.Equal(t, "[group:nut]", domain.EncodeGroupComment("nut", ""))
}

func TestParseGroupCommentWithoutTag(t *testing.T) {
	groupID, description := domain.ParseGroupComment("just a note")
	assert.Empty(t, groupID)
	assert.Equal(t, "just a note", description)

	groupID, description = domain.ParseGroupComment("")
	assert.Empty(t, groupID)
	assert.Empty(t, description)
}

func TestParseGroupCommentMidCommentTagIgnored(t *testing.T) {
	groupID, description := domain.ParseGroupComment("see [group:nut] later")
	assert.Empty(t, groupID)
	assert.Equal(t, "see [group:nut] later", description)
}
