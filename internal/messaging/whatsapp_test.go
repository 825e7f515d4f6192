package messaging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeStripsFormattingAndPrependsCountryCode(t *testing.T) {
	b := NewLinkBuilder("55")

	got, err := b.Normalize("(11) 98888-7777")
	require.NoError(t, err)
	assert.Equal(t, "5511988887777", got)
}

func TestNormalizeKeepsExistingCountryCode(t *testing.T) {
	b := NewLinkBuilder("55")

	got, err := b.Normalize("+55 11 98888-7777")
	require.NoError(t, err)
	assert.Equal(t, "5511988887777", got)
}

func TestNormalizeRejectsDigitlessInput(t *testing.T) {
	b := NewLinkBuilder("55")
	_, err := b.Normalize("sem número")
	assert.Error(t, err)
}

func TestBuildEscapesMessage(t *testing.T) {
	b := NewLinkBuilder("")

	url, err := b.Build("11988887777", "OSS Ana! Forte abraço!")
	require.NoError(t, err)
	assert.Equal(t, "https://wa.me/5511988887777?text=OSS+Ana%21+Forte+abra%C3%A7o%21", url)
}
