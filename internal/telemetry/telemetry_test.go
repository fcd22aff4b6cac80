package telemetry

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestScopedAPI(t *testing.T) {
	rec := NewRecorder()
	scoped := NewScopedAPI("bise", NewScopedAPI("portal", rec))

	scoped.ReportBroken("client.lookup", "boom")
	scoped.ReportWarning("client.parse")
	scoped.ReportCount("batch.size", 3)

	broken := rec.Reports(REPORT_BROKEN)
	require.Len(t, broken, 1)
	require.Equal(t, "portal: bise: client.lookup", broken[0].Id)
	require.Equal(t, []any{"boom"}, broken[0].Params)

	require.True(t, rec.HasReport(REPORT_WARNING, "client.parse"))
	require.False(t, rec.HasReport(REPORT_BROKEN, "client.parse"))

	counts := rec.Reports(REPORT_COUNT)
	require.Len(t, counts, 1)
	require.Equal(t, int64(3), counts[0].Count)
}

func TestRecorderConcurrent(t *testing.T) {
	rec := NewRecorder()
	wg := sync.WaitGroup{}
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			rec.ReportDebug("tick")
		}()
	}
	wg.Wait()

	require.Len(t, rec.Reports(REPORT_DEBUG), 50)
}
