package metrics

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseTag(t *testing.T) {
	req := require.New(t)
	req.Nil(parseTag(nil))
	req.Equal([]string{"method:GET", "path:/api"}, parseTag([]string{"method", "GET", "path", "/api"}))
	req.Equal([]string{"method:GET"}, parseTag([]string{"method", "GET", "dangling"}))
}

func TestMetrics_NoAgent(t *testing.T) {
	// without datadog_host every bump goes to the log client
	m := New("test")
	m.BumpSum("resolve.err", 1, "reason", "owner")
	m.BumpAvg("queue", 2)
	m.BumpHistogram("size", 3)
	m.BumpTime("request.time", "method", "GET").End()

	for _, cli := range ddClients {
		require.IsType(t, &LogClient{}, cli)
	}
}
