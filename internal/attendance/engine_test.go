package attendance

import (
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var t0 = time.Date(2021, 3, 15, 10, 0, 0, 0, time.UTC)

func ts(offsetSeconds int) string {
	return t0.Add(time.Duration(offsetSeconds) * time.Second).Format("1/2/2006, 3:04:05 PM")
}

func table(rows ...[]string) *Table {
	return &Table{Header: []string{ColumnFullName, ColumnUserAction, ColumnTimestamp}, Rows: rows}
}

func byName(results []Result) map[string]Result {
	m := make(map[string]Result, len(results))
	for _, r := range results {
		m[r.FullName] = r
	}
	return m
}

func TestCompute_JoinAndLeave(t *testing.T) {
	results, err := Compute(table(
		[]string{"Alice", "Joined", ts(0)},
		[]string{"Alice", "Left", ts(120)},
	), 60)
	require.NoError(t, err)

	require.Len(t, results, 1)
	assert.Equal(t, Result{FullName: "Alice", TotalSeconds: 120, Status: StatusPresent}, results[0])
}

func TestCompute_NeverLeftUsesLastEventInLog(t *testing.T) {
	tbl := table(
		[]string{"Bob", "Joined", ts(5)},
		[]string{"Carol", "Joined", ts(0)},
		[]string{"Carol", "Left", ts(305)},
	)

	results, err := Compute(tbl, 301)
	require.NoError(t, err)

	got := byName(results)
	assert.Equal(t, 300.0, got["Bob"].TotalSeconds)
	assert.Equal(t, StatusAbsent, got["Bob"].Status)
	assert.Equal(t, 305.0, got["Carol"].TotalSeconds)
	assert.Equal(t, StatusPresent, got["Carol"].Status)

	results, err = Compute(tbl, 300)
	require.NoError(t, err)
	assert.Equal(t, StatusPresent, byName(results)["Bob"].Status, "threshold is inclusive")
}

func TestCompute_ZeroThresholdMarksEveryonePresent(t *testing.T) {
	results, err := Compute(table(
		[]string{"Alice", "Joined", ts(0)},
		[]string{"Alice", "Left", ts(10)},
		[]string{"Bob", "Joined", ts(10)},
		[]string{"Dana", "Joined", "garbage"},
	), 0)
	require.NoError(t, err)

	require.Len(t, results, 3)
	for _, r := range results {
		assert.Equal(t, StatusPresent, r.Status, r.FullName)
	}
}

func TestCompute_UnparseableTimestampContributesZero(t *testing.T) {
	results, err := Compute(table(
		[]string{"Dana", "Joined", ts(0)},
		[]string{"Dana", "Left", "not a timestamp"},
		[]string{"Dana", "Joined", ts(600)},
		[]string{"Dana", "Left", ts(900)},
	), 0)
	require.NoError(t, err)

	require.Len(t, results, 1)
	assert.Equal(t, 900.0, results[0].TotalSeconds)
}

func TestCompute_SingleUnparseableEventIsZero(t *testing.T) {
	results, err := Compute(table(
		[]string{"Eve", "Joined", "???"},
		[]string{"Frank", "Joined", ts(0)},
		[]string{"Frank", "Left", ts(500)},
	), 1)
	require.NoError(t, err)

	eve := byName(results)["Eve"]
	assert.Equal(t, 0.0, eve.TotalSeconds)
	assert.Equal(t, StatusAbsent, eve.Status)
}

func TestCompute_AllTimestampsUnparseable(t *testing.T) {
	results, err := Compute(table(
		[]string{"Alice", "Joined", "x"},
		[]string{"Alice", "Left", "y"},
		[]string{"Bob", "Joined", ""},
	), 0)
	require.NoError(t, err)

	require.Len(t, results, 2)
	for _, r := range results {
		assert.Equal(t, 0.0, r.TotalSeconds)
		assert.Equal(t, StatusPresent, r.Status)
	}
}

func TestCompute_SingleEventAtSessionEnd(t *testing.T) {
	results, err := Compute(table(
		[]string{"Alice", "Joined", ts(0)},
		[]string{"Alice", "Left", ts(60)},
		[]string{"Zed", "Joined", ts(60)},
	), 1)
	require.NoError(t, err)

	zed := byName(results)["Zed"]
	assert.Equal(t, 0.0, zed.TotalSeconds)
	assert.Equal(t, StatusAbsent, zed.Status)
}

func TestCompute_ZeroLengthSessionIsCorrected(t *testing.T) {
	results, err := Compute(table(
		[]string{"Gina", "Joined", ts(100)},
		[]string{"Gina", "Left", ts(100)},
		[]string{"Hank", "Joined", ts(0)},
		[]string{"Hank", "Left", ts(400)},
	), 0)
	require.NoError(t, err)

	assert.Equal(t, 300.0, byName(results)["Gina"].TotalSeconds)
}

func TestCompute_NullFirstEventUsesFirstValidTimestamp(t *testing.T) {
	results, err := Compute(table(
		[]string{"Ivy", "Joined", "bad"},
		[]string{"Ivy", "Joined", ts(100)},
		[]string{"Jon", "Joined", ts(0)},
		[]string{"Jon", "Left", ts(250)},
	), 0)
	require.NoError(t, err)

	assert.Equal(t, 150.0, byName(results)["Ivy"].TotalSeconds)
}

func TestCompute_UnorderedInput(t *testing.T) {
	results, err := Compute(table(
		[]string{"Alice", "Left", ts(3600)},
		[]string{"Bob", "Joined", ts(60)},
		[]string{"Alice", "Joined", ts(0)},
		[]string{"Alice", "Left", ts(1200)},
		[]string{"Alice", "Joined", ts(1800)},
		[]string{"Bob", "Left", ts(120)},
	), 0)
	require.NoError(t, err)

	require.Len(t, results, 2)
	assert.Equal(t, "Alice", results[0].FullName)
	assert.Equal(t, 3600.0, results[0].TotalSeconds)
	assert.Equal(t, "Bob", results[1].FullName)
	assert.Equal(t, 60.0, results[1].TotalSeconds)
}

func TestCompute_BlankNameExtendsSessionOnly(t *testing.T) {
	results, err := Compute(table(
		[]string{"Kim", "Joined", ts(0)},
		[]string{"", "Left", ts(900)},
	), 0)
	require.NoError(t, err)

	require.Len(t, results, 1)
	assert.Equal(t, "Kim", results[0].FullName)
	assert.Equal(t, 900.0, results[0].TotalSeconds)
}

func TestCompute_OrderedByName(t *testing.T) {
	results, err := Compute(table(
		[]string{"Zoë", "Joined", ts(0)},
		[]string{"Adam", "Joined", ts(0)},
		[]string{"Mia", "Joined", ts(0)},
	), 0)
	require.NoError(t, err)

	var names []string
	for _, r := range results {
		names = append(names, r.FullName)
	}
	assert.Equal(t, []string{"Adam", "Mia", "Zoë"}, names)
}

func TestCompute_SchemaError(t *testing.T) {
	tbl := &Table{
		Header: []string{ColumnFullName, ColumnTimestamp},
		Rows:   [][]string{{"Alice", ts(0)}},
	}

	results, err := Compute(tbl, 0)
	assert.Nil(t, results)

	var schemaErr *SchemaError
	require.True(t, errors.As(err, &schemaErr))
	assert.Equal(t, []string{ColumnUserAction}, schemaErr.Missing)
}

func TestCompute_EmptyLog(t *testing.T) {
	results, err := Compute(table(), 0)
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestSummarize_DoesNotMutateInput(t *testing.T) {
	events := []Event{
		{FullName: "Bob", Timestamp: ParseInstant(ts(10))},
		{FullName: "Alice", Timestamp: ParseInstant(ts(0))},
	}
	Summarize(events, 0)
	assert.Equal(t, "Bob", events[0].FullName)
}

func TestClassify(t *testing.T) {
	assert.Equal(t, StatusPresent, Classify(60, 60))
	assert.Equal(t, StatusPresent, Classify(61, 60))
	assert.Equal(t, StatusAbsent, Classify(59.9, 60))
	assert.Equal(t, StatusPresent, Classify(0, 0))
}

// randomLog builds a shuffled log with some unparseable timestamps.
func randomLog(rng *rand.Rand, participants, events int) *Table {
	rows := make([][]string, 0, events)
	for i := 0; i < events; i++ {
		name := fmt.Sprintf("Participant %02d", rng.Intn(participants))
		stamp := ts(rng.Intn(7200))
		if rng.Intn(10) == 0 {
			stamp = "n/a"
		}
		action := "Joined"
		if rng.Intn(2) == 0 {
			action = "Left"
		}
		rows = append(rows, []string{name, action, stamp})
	}
	return table(rows...)
}

func TestCompute_Properties(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for iter := 0; iter < 50; iter++ {
		tbl := randomLog(rng, 1+rng.Intn(8), 1+rng.Intn(60))
		threshold := rng.Intn(3600)

		results, err := Compute(tbl, threshold)
		require.NoError(t, err)

		distinct := make(map[string]bool)
		for _, row := range tbl.Rows {
			distinct[row[0]] = true
		}

		seen := make(map[string]bool)
		for _, r := range results {
			assert.False(t, seen[r.FullName], "duplicate %q", r.FullName)
			seen[r.FullName] = true
			assert.GreaterOrEqual(t, r.TotalSeconds, 0.0)
			assert.Equal(t, r.TotalSeconds >= float64(threshold), r.Status == StatusPresent)
		}
		assert.Equal(t, distinct, seen)

		again, err := Compute(tbl, threshold)
		require.NoError(t, err)
		assert.Equal(t, results, again, "same input must give same output")
	}
}

func TestCompute_FromReader(t *testing.T) {
	input := strings.Join([]string{
		"Full Name\tUser Action\tTimestamp",
		"Alice\tJoined\t" + ts(0),
		"Alice\tLeft\t" + ts(120),
		"Bob\tJoined\t" + ts(20),
	}, "\n")

	tbl, err := ReadTable(strings.NewReader(input))
	require.NoError(t, err)

	results, err := Compute(tbl, 100)
	require.NoError(t, err)
	assert.Equal(t, []Result{
		{FullName: "Alice", TotalSeconds: 120, Status: StatusPresent},
		{FullName: "Bob", TotalSeconds: 100, Status: StatusPresent},
	}, results)
}

func TestCompute_LocaleVariantTimestamps(t *testing.T) {
	results, err := Compute(table(
		[]string{"Alice", "Joined", "15/03/2021, 10:00:00"},
		[]string{"Alice", "Left", "15/03/2021, 10:30:00"},
		[]string{"Bob", "Joined", "3/15/21, 10:00:00 AM"},
		[]string{"Bob", "Left", "3/15/21, 10:30:00 AM"},
		[]string{"Cy", "Joined", "2021-03-15 10:00:00+01:00"},
		[]string{"Cy", "Left", "2021-03-15 10:30:00+01:00"},
	), 600)
	require.NoError(t, err)

	assert.Equal(t, []Result{
		{FullName: "Alice", TotalSeconds: 1800, Status: StatusPresent},
		{FullName: "Bob", TotalSeconds: 1800, Status: StatusPresent},
		{FullName: "Cy", TotalSeconds: 1800, Status: StatusPresent},
	}, results)
}
