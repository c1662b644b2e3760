package domain

import (
	"math/big"
	"net/http"
	"strconv"
	"strings"

	"github.com/ethereum/go-ethereum/common"
)

type Address string

const EmptyAddress = Address("0x0000000000000000000000000000000000000000")

// IsValid reports whether a is a 20 bytes hex address
func (a Address) IsValid() bool {
	return common.IsHexAddress(string(a))
}

// ToChecksum returns the EIP-55 form of a
func (a Address) ToChecksum() Address {
	return Address(common.HexToAddress(string(a)).Hex())
}

func (a Address) ToLowerStr() string {
	return strings.ToLower(string(a))
}

func (a Address) IsEmpty() bool {
	return len(a) == 0
}

// Equals compares two addresses on their checksum form, so casing never matters
func (a Address) Equals(b Address) bool {
	if !a.IsValid() || !b.IsValid() {
		return a.ToLowerStr() == b.ToLowerStr()
	}
	return common.HexToAddress(string(a)) == common.HexToAddress(string(b))
}

// TokenId is assigned by the contract at mint time, starting from 1
type TokenId int64

func (i TokenId) String() string {
	return strconv.FormatInt(int64(i), 10)
}

func (i TokenId) BigInt() *big.Int {
	return big.NewInt(int64(i))
}

func (i TokenId) IsValid() bool {
	return i >= 1
}

func ParseTokenId(s string) (TokenId, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, ErrBadParamInput
	}
	return TokenId(id), nil
}

func httpStatusText(code int) string {
	return strconv.Itoa(code) + " " + http.StatusText(code)
}
