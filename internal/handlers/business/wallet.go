package business

import (
	"strings"

	ethcommon "github.com/ethereum/go-ethereum/common"
)

// NormalizeWallet validates a 0x wallet address and returns it lowercased.
// Every address entering the ledgers goes through this, so lookups never
// miss on checksum-cased input.
func NormalizeWallet(address string) (string, error) {
	if !ethcommon.IsHexAddress(address) {
		return "", ErrInvalidWalletAddress
	}
	return strings.ToLower(ethcommon.HexToAddress(address).Hex()), nil
}
