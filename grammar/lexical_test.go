package grammar

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAlphaCoversUpperAndLowerCaseOnly(t *testing.T) {
	assert.Equal(t, LexAlternative{
		CharRange{From: 'a', To: 'z'},
		CharRange{From: 'A', To: 'Z'},
	}, Alpha())
}

func TestAlnumCombinesAlphaAndDigit(t *testing.T) {
	assert.Equal(t, LexAlternative{Alpha(), Digit()}, Alnum())
}

func TestDigitIsDecimalRange(t *testing.T) {
	assert.Equal(t, CharRange{From: '0', To: '9'}, Digit())
}

func TestSpaceIncludesAllWhitespaceCharacters(t *testing.T) {
	assert.Equal(t, CharSet{' ', '\t', '\r', '\n'}, Space())
}

func TestAnyIsDistinctFromAnyCharTypeButEquivalent(t *testing.T) {
	assert.Equal(t, AnyChar{}, Any())
}
