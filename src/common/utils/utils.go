package utils

import (
	"fmt"
	"strings"

	"github.com/anyswap/CrossChain-Bridge/common"
)

// ToValidateAddress converts an ethereum address to its EIP-55 checksum form.
func ToValidateAddress(address string) string {
	addrLowerStr := strings.ToLower(address)
	if strings.HasPrefix(addrLowerStr, "0x") {
		addrLowerStr = addrLowerStr[2:]
	}
	addrBytes := []byte(addrLowerStr)
	hash256 := common.Keccak256Hash([]byte(addrLowerStr))

	for i, e := range addrLowerStr {
		if e >= '0' && e <= '9' {
			continue
		}
		binaryStr := fmt.Sprintf("%08b", hash256[i/2])
		// one hash byte covers two hex characters
		if binaryStr[4*(i%2)] == '1' {
			addrBytes[i] -= 32
		}
	}

	return "0x" + string(addrBytes)
}

// SameAddress compares two addresses case insensitively.
func SameAddress(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}
