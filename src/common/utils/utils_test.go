package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToValidateAddress(t *testing.T) {
	// EIP-55 reference vectors.
	cases := []string{
		"0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed",
		"0xfB6916095ca1df60bB79Ce92cE3Ea74c37c5d359",
		"0xdbF03B407c01E7cD3CBea99509d93f8DDDC8C6FB",
	}
	for _, want := range cases {
		assert.Equal(t, want, ToValidateAddress(want))
		assert.Equal(t, want, ToValidateAddress(strings.ToLower(want)))
	}
}

func TestSameAddress(t *testing.T) {
	assert.True(t, SameAddress("0xABCdef", "0xabcDEF"))
	assert.True(t, SameAddress(" 0xabc ", "0xABC"))
	assert.False(t, SameAddress("0xabc", "0xabd"))
}
