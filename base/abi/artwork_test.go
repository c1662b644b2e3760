package abi

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestArtworkABI(t *testing.T) {
	req := require.New(t)
	for _, m := range []string{"ownerOf", "tokenURI", "getCreator", "getPrice", "totalSupply", "name", "symbol"} {
		method, ok := ArtworkABI.Methods[m]
		req.True(ok, m)
		req.True(method.IsConstant(), m)
	}
}
