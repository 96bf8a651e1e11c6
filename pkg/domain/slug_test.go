package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/luthierlabs/fretbridge/pkg/domain"
)

func TestSlugify(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"simple", "My Template", "my_template"},
		{"punctuation stripped", "My-Template!", "my_template"},
		{"hyphens collapse", "multi--scale  fan", "multi_scale_fan"},
		{"leading trailing", "  Jazz Box  ", "jazz_box"},
		{"non-ascii letters stripped", "Göldo Spacing", "gldo_spacing"},
		{"only punctuation", "!!!", "template"},
		{"empty", "", "template"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, domain.Slugify(tc.in))
		})
	}
}
