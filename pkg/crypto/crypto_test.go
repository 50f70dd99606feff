package crypto

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGenerateRandomAlphabet(t *testing.T) {
	s := GenerateRandomAlphabet(8)
	require.Len(t, s, 8)
	for _, c := range s {
		require.True(t, strings.ContainsRune(alphabet, c))
	}

	require.Empty(t, GenerateRandomAlphabet(0))
}

func TestGenerateRandomString(t *testing.T) {
	s1, err := GenerateRandomString()
	require.NoError(t, err)
	require.NotEmpty(t, s1)

	s2, err := GenerateRandomString()
	require.NoError(t, err)
	require.NotEqual(t, s1, s2)
}
