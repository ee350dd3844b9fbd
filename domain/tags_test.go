package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractTags(t *testing.T) {
	cases := []struct {
		text string
		want []string
	}{
		{"buy milk", nil},
		{"fix sink #home", []string{"home"}},
		{"#home chores #home again", []string{"home"}},
		{"#work then #home", []string{"work", "home"}},
		{"punctuation #home, trailing", []string{"home"}},
		{"underscore #side_project ok", []string{"side_project"}},
		{"lone hash # nothing", nil},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, ExtractTags(tc.text), tc.text)
	}
}

func TestHasTag(t *testing.T) {
	assert.True(t, HasTag("ship it #release", "release"))
	assert.False(t, HasTag("ship it #release", "rel"))
	assert.False(t, HasTag("no tags here", "release"))
}

func TestExtractURLs(t *testing.T) {
	urls := ExtractURLs("read https://example.com/doc and http://foo.bar")
	assert.Equal(t, []string{"https://example.com/doc", "http://foo.bar"}, urls)
	assert.Nil(t, ExtractURLs("nothing to click"))
}

func TestContainsNSFW(t *testing.T) {
	assert.False(t, ContainsNSFW("#secret stuff", nil))
	assert.True(t, ContainsNSFW("#secret stuff", []string{"secret"}))
	assert.False(t, ContainsNSFW("#public stuff", []string{"secret"}))
}
