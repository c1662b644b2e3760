package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAddress_Equals(t *testing.T) {
	tests := []struct {
		name string
		a    Address
		b    Address
		want bool
	}{
		{
			name: "same checksum",
			a:    "0x939ae6A4C8dfDBB1f7085189574F0A938013952A",
			b:    "0x939ae6A4C8dfDBB1f7085189574F0A938013952A",
			want: true,
		},
		{
			name: "lower vs checksum",
			a:    "0x939ae6a4c8dfdbb1f7085189574f0a938013952a",
			b:    "0x939ae6A4C8dfDBB1f7085189574F0A938013952A",
			want: true,
		},
		{
			name: "upper hex vs lower hex",
			a:    "0x939AE6A4C8DFDBB1F7085189574F0A938013952A",
			b:    "0x939ae6a4c8dfdbb1f7085189574f0a938013952a",
			want: true,
		},
		{
			name: "different",
			a:    "0x939ae6a4c8dfdbb1f7085189574f0a938013952a",
			b:    "0x939ae6a4c8dfdbb1f7085189574f0a938013952b",
			want: false,
		},
		{
			name: "invalid never equals valid",
			a:    "0xA",
			b:    "0x000000000000000000000000000000000000000a",
			want: false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, tt.a.Equals(tt.b))
			require.Equal(t, tt.want, tt.b.Equals(tt.a))
		})
	}
}

func TestAddress_ToChecksum(t *testing.T) {
	req := require.New(t)
	a := Address("0x939ae6a4c8dfdbb1f7085189574f0a938013952a")
	req.Equal(Address("0x939ae6A4C8dfDBB1f7085189574F0A938013952A"), a.ToChecksum())
	req.True(a.IsValid())
	req.False(Address("0x000").IsValid())
}

func TestParseTokenId(t *testing.T) {
	req := require.New(t)
	id, err := ParseTokenId("42")
	req.NoError(err)
	req.Equal(TokenId(42), id)
	req.True(id.IsValid())
	req.Equal("42", id.BigInt().String())

	_, err = ParseTokenId("abc")
	req.Equal(ErrBadParamInput, err)

	id, err = ParseTokenId("0")
	req.NoError(err)
	req.False(id.IsValid())
}

func TestStatusError(t *testing.T) {
	req := require.New(t)
	var err error = &StatusError{StatusCode: 502}
	req.True(errors.Is(err, ErrMetadataStatus))
	req.Equal("metadata source returned non-success status: 502 Bad Gateway", err.Error())
	req.True((&StatusError{StatusCode: 503}).Temporary())
	req.True((&StatusError{StatusCode: 429}).Temporary())
	req.False((&StatusError{StatusCode: 404}).Temporary())
}
