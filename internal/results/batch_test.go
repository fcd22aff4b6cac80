package results

import (
	"context"
	"errors"
	"resultfetcher/internal/telemetry"
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func TestFetchBatchScenario(t *testing.T) {
	p := &portal{
		entry:   entryPage,
		results: map[string]string{"120166": "HAMZA MUNIR"},
	}
	fetcher, cleanup := newPortalFetcher(t, p, telemetry.NewRecorder())
	defer cleanup()

	records := fetcher.FetchBatch(context.Background(), []string{"abc", "120166"})
	diff := cmp.Diff([]Record{
		errorRecord("abc"),
		{
			RollNumber:   "120166",
			StudentName:  "HAMZA MUNIR",
			SubjectMarks: "85",
			Status:       STATUS_SUCCESS,
		},
	}, records)
	if diff != "" {
		t.Fatal(diff)
	}
	require.Equal(t, int32(1), p.posts.Load())
}

func TestFetchBatchPreservesOrder(t *testing.T) {
	// earlier roll numbers take longer, so completion order is the reverse of input order
	delays := map[string]time.Duration{
		"10001": time.Millisecond * 150,
		"10002": time.Millisecond * 100,
		"10003": time.Millisecond * 50,
	}

	var completionMutex sync.Mutex
	var completion []string

	resolver := ResolverFunc(func(ctx context.Context, rollNumber string) (Lookup, error) {
		time.Sleep(delays[rollNumber])
		completionMutex.Lock()
		completion = append(completion, rollNumber)
		completionMutex.Unlock()

		if rollNumber == "10002" {
			return Lookup{}, errors.New("i/o timeout")
		}
		return Lookup{StudentName: "STUDENT " + rollNumber, SubjectMarks: "50", Found: true}, nil
	})
	fetcher := newFetcher(t, resolver, telemetry.NewRecorder())

	input := []string{"10001", "10002", "10003", "10004", "10001"}
	records := fetcher.FetchBatch(context.Background(), input)

	require.Len(t, records, len(input))
	for i, record := range records {
		require.Equal(t, input[i], record.RollNumber)
		requireInvariant(t, record)
	}
	require.Equal(t, STATUS_SUCCESS, records[0].Status)
	require.Equal(t, STATUS_ERROR, records[1].Status)
	require.Equal(t, STATUS_SUCCESS, records[2].Status)
	require.Equal(t, records[0], records[4])

	completionMutex.Lock()
	defer completionMutex.Unlock()
	require.Equal(t, "10004", completion[0])
}

func TestFetchBatchRunsConcurrently(t *testing.T) {
	const size = 20
	release := make(chan struct{})
	var started sync.WaitGroup
	started.Add(size)

	resolver := ResolverFunc(func(ctx context.Context, rollNumber string) (Lookup, error) {
		started.Done()
		<-release
		return Lookup{StudentName: "ALI", SubjectMarks: "40", Found: true}, nil
	})
	fetcher := newFetcher(t, resolver, telemetry.NewRecorder())

	input := make([]string, size)
	for i := range input {
		input[i] = "120166"
	}

	done := make(chan []Record)
	go func() {
		done <- fetcher.FetchBatch(context.Background(), input)
	}()

	// every resolve has to be in flight at the same time for this to return
	started.Wait()
	close(release)

	select {
	case records := <-done:
		require.Len(t, records, size)
	case <-time.After(time.Second * 5):
		t.Fatal("batch did not finish")
	}
}

func TestFetchBatchEmpty(t *testing.T) {
	resolver := &countingResolver{}
	fetcher := newFetcher(t, resolver, telemetry.NewRecorder())

	records := fetcher.FetchBatch(context.Background(), nil)
	require.NotNil(t, records)
	require.Len(t, records, 0)

	records = fetcher.FetchBatch(context.Background(), []string{})
	require.Len(t, records, 0)
	require.Equal(t, int32(0), resolver.calls.Load())
}

func TestFetchBatchAllSettle(t *testing.T) {
	resolver := ResolverFunc(func(ctx context.Context, rollNumber string) (Lookup, error) {
		if rollNumber == "99999" {
			panic("corrupt page")
		}
		if rollNumber == "88888" {
			return Lookup{}, errors.New("no such host")
		}
		time.Sleep(time.Millisecond * 20)
		return Lookup{StudentName: "SANA IQBAL", SubjectMarks: "77", Found: true}, nil
	})
	tel := telemetry.NewRecorder()
	fetcher := newFetcher(t, resolver, tel)

	records := fetcher.FetchBatch(context.Background(), []string{"99999", "88888", "12345", "1"})
	require.Equal(t, []Status{STATUS_ERROR, STATUS_ERROR, STATUS_SUCCESS, STATUS_ERROR}, []Status{
		records[0].Status, records[1].Status, records[2].Status, records[3].Status,
	})

	counts := tel.Reports(telemetry.REPORT_COUNT)
	require.Len(t, counts, 1)
	require.Equal(t, int64(3), counts[0].Count)
}
