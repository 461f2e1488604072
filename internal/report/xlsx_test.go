package report

import (
	"bytes"
	"testing"

	"github.com/JonMunkholm/attendance/internal/attendance"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestWriteXLSX(t *testing.T) {
	r := &Report{Results: []attendance.Result{
		{FullName: "Alice", TotalSeconds: 120, Status: attendance.StatusPresent},
		{FullName: "Łukasz", TotalSeconds: 30.5, Status: attendance.StatusAbsent},
	}}

	var buf bytes.Buffer
	require.NoError(t, WriteXLSX(&buf, r))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(xlsxSheet)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"Full Name", "Total Duration (secs)", "Status"}, rows[0])
	assert.Equal(t, []string{"Alice", "120", "Present"}, rows[1])
	assert.Equal(t, []string{"Łukasz", "30.5", "Absent"}, rows[2])
}
