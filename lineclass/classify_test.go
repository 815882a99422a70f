package lineclass

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"notegrid/token"
)

func TestClassifyRoles(t *testing.T) {
	assert.Equal(t, RoleBlank, Classify(token.Tokenize("   ")))
	assert.Equal(t, RoleContent, Classify(token.Tokenize("|1 2 3|")))
	assert.Equal(t, RoleAnnotation, Classify(token.Tokenize("___  ...")))
	assert.Equal(t, RoleAnnotation, Classify(token.Tokenize("hello world")))
}

func TestLooksLikeLyrics(t *testing.T) {
	assert.True(t, LooksLikeLyrics(token.Tokenize("hel-lo world")))
	assert.False(t, LooksLikeLyrics(token.Tokenize("___ ___")))
}
