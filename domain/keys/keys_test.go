package keys

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRedisKey(t *testing.T) {
	require.Equal(t, "artworkMetadata:7", RedisKey(PfxArtworkMetadata, "7"))
	require.Equal(t, "a", RedisKey("a"))
	require.Equal(t, "a|b", CustomKey("|", "a", "b"))
}

func TestGetPrefix(t *testing.T) {
	require.Equal(t, "artworkMetadata", GetPrefix(RedisKey(PfxArtworkMetadata, "7")))
	require.Equal(t, "cache:artworkMetadata", GetPrefix("cache:artworkMetadata:7"))
	require.Equal(t, "", GetPrefix("plain"))
}
