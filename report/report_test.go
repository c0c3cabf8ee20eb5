package report

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/z3rotig4r/he_opbench/sweep"
)

// two runs of an older build, each repeating the header
const repeatedHeaderLog = `Operation,PolyModulusDegree,VectorSize,Time(ms)
Cipher+Cipher_Add,1024,1000,0.02
Cipher+Cipher_Mul,1024,1000,1.5
Operation,PolyModulusDegree,VectorSize,Time(ms)
Cipher+Cipher_Add,1024,1000,0.04
Cipher+Cipher_Mul,1024,1000,2.5
Cipher+Cipher_Add,2048,1000,0.06
`

func TestReadLogToleratesRepeatedHeaders(t *testing.T) {
	l, err := ReadLog(strings.NewReader(repeatedHeaderLog))
	require.NoError(t, err)

	assert.Equal(t, sweep.Vector, l.Variant)
	require.Len(t, l.Rows, 5)
	assert.Equal(t, sweep.Row{Operation: "Cipher+Cipher_Mul", Degree: 1024, VectorSize: 1000, Millis: 2.5}, l.Rows[3])
}

func TestReadLogScalar(t *testing.T) {
	l, err := ReadLog(strings.NewReader("Operation,PolyModulusDegree,Time(ms)\nPlain+Cipher_Mul_Scalar,16384,1.23e-05\n"))
	require.NoError(t, err)

	assert.Equal(t, sweep.Scalar, l.Variant)
	assert.Equal(t, []sweep.Row{{Operation: "Plain+Cipher_Mul_Scalar", Degree: 16384, Millis: 1.23e-05}}, l.Rows)
}

func TestReadLogErrors(t *testing.T) {
	for name, input := range map[string]string{
		"bad degree":    "Cipher+Cipher_Add,x,0.1\n",
		"bad time":      "Cipher+Cipher_Add,1024,fast\n",
		"column count":  "Cipher+Cipher_Add,1024\n",
		"mixed layouts": "Cipher+Cipher_Add,1024,0.1\nCipher+Cipher_Add,1024,10,0.1\n",
		"bare quote":    "Cipher+Cipher_Add,1024,0.1\nCipher\"Add,1024,0.1\n",
	} {
		t.Run(name, func(t *testing.T) {
			_, err := ReadLog(strings.NewReader(input))
			require.Error(t, err)
			assert.Contains(t, err.Error(), "line ")
		})
	}
}

func TestReadLogErrorLine(t *testing.T) {
	_, err := ReadLog(strings.NewReader("Operation,PolyModulusDegree,Time(ms)\n\nCipher+Cipher_Add,1024,0.1\nCipher+Cipher_Add,x,0.1\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 4:")
}

func TestReadLogMatchesLoggerOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), sweep.VectorLogPath)
	out, err := sweep.OpenLog(path, sweep.Vector, sweep.VectorHeader)
	require.NoError(t, err)

	want := []sweep.Row{
		{Operation: "Cipher+Plain_Add", Degree: 4096, VectorSize: 1000, Millis: 0.0123456},
		{Operation: "Plain+Cipher_Mul", Degree: 8192, VectorSize: 1000, Millis: 3.5},
	}
	for _, r := range want {
		require.NoError(t, out.Write(r))
	}
	require.NoError(t, out.Close())

	l, err := ReadLogFile(path)
	require.NoError(t, err)
	assert.Equal(t, sweep.Vector, l.Variant)
	assert.Equal(t, want, l.Rows)
}

func TestReadLogQuotedFields(t *testing.T) {
	l, err := ReadLog(strings.NewReader("\"Operation\",PolyModulusDegree,Time(ms)\r\n\"Cipher+Cipher_Mul_Scalar\",2048,0.5\r\n"))
	require.NoError(t, err)
	assert.Equal(t, []sweep.Row{{Operation: "Cipher+Cipher_Mul_Scalar", Degree: 2048, Millis: 0.5}}, l.Rows)
}

func TestSummarize(t *testing.T) {
	l, err := ReadLog(strings.NewReader(repeatedHeaderLog))
	require.NoError(t, err)

	got := Summarize(l.Rows)
	want := []Stat{
		{Operation: "Cipher+Cipher_Add", Degree: 1024, VectorSize: 1000, Samples: 2, Mean: 0.03, Median: 0.03, StdDev: 0.01, Min: 0.02, Max: 0.04},
		{Operation: "Cipher+Cipher_Mul", Degree: 1024, VectorSize: 1000, Samples: 2, Mean: 2, Median: 2, StdDev: 0.5, Min: 1.5, Max: 2.5},
		{Operation: "Cipher+Cipher_Add", Degree: 2048, VectorSize: 1000, Samples: 1, Mean: 0.06, Median: 0.06, Min: 0.06, Max: 0.06},
	}

	approx := cmp.Comparer(func(a, b float64) bool {
		d := a - b
		return d < 1e-9 && d > -1e-9
	})
	if diff := cmp.Diff(want, got, approx); diff != "" {
		t.Errorf("Summarize mismatch (-want +got):\n%s", diff)
	}
}

func TestSummarizeOrdersScalarOperations(t *testing.T) {
	var rows []sweep.Row
	ops := sweep.StandardOperations()
	for i := len(ops) - 1; i >= 0; i-- {
		rows = append(rows, sweep.Row{Operation: ops[i].Name() + "_Scalar", Degree: 1024, Millis: 1})
	}

	var got []string
	for _, s := range Summarize(rows) {
		got = append(got, s.Operation)
	}
	assert.Equal(t, []string{
		"Cipher+Cipher_Add_Scalar",
		"Cipher+Cipher_Mul_Scalar",
		"Cipher+Plain_Add_Scalar",
		"Cipher+Plain_Mul_Scalar",
		"Plain+Cipher_Add_Scalar",
		"Plain+Cipher_Mul_Scalar",
	}, got)
}

func TestFileDigest(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.csv")
	b := filepath.Join(dir, "b.csv")
	require.NoError(t, os.WriteFile(a, []byte(repeatedHeaderLog), 0o644))
	require.NoError(t, os.WriteFile(b, []byte(repeatedHeaderLog+"Cipher+Cipher_Mul,2048,1000,3\n"), 0o644))

	da, err := FileDigest(a)
	require.NoError(t, err)
	again, err := FileDigest(a)
	require.NoError(t, err)
	db, err := FileDigest(b)
	require.NoError(t, err)

	assert.Len(t, da, 64)
	assert.Equal(t, da, again)
	assert.NotEqual(t, da, db)
}

func TestWriteWorkbook(t *testing.T) {
	l, err := ReadLog(strings.NewReader(repeatedHeaderLog))
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "report.xlsx")
	require.NoError(t, WriteWorkbook(path, l, Summarize(l.Rows), "abc123"))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{SummarySheet, ChartSheet, RawSheet, SourceSheet}, f.GetSheetList())

	summary, err := f.GetRows(SummarySheet)
	require.NoError(t, err)
	require.Len(t, summary, 4)
	assert.Equal(t, []string{"Operation", "PolyModulusDegree", "VectorSize", "Samples", "Mean(ms)", "Median(ms)", "StdDev(ms)", "Min(ms)", "Max(ms)"}, summary[0])
	assert.Equal(t, []string{"Cipher+Cipher_Mul", "1024", "1000", "2"}, summary[2][:4])

	pivot, err := f.GetRows(ChartSheet)
	require.NoError(t, err)
	require.Len(t, pivot, 3)
	assert.Equal(t, []string{"PolyModulusDegree/VectorSize", "Cipher+Cipher_Add", "Cipher+Cipher_Mul"}, pivot[0])
	assert.Equal(t, "1024/1000", pivot[1][0])
	assert.Equal(t, "2048/1000", pivot[2][0])

	raw, err := f.GetRows(RawSheet)
	require.NoError(t, err)
	assert.Len(t, raw, 1+len(l.Rows))

	digest, err := f.GetCellValue(SourceSheet, "B3")
	require.NoError(t, err)
	assert.Equal(t, "abc123", digest)
}
