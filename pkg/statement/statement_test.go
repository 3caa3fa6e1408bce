package statement

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func Test_DetectFormat(t *testing.T) {
	type testCase struct {
		name    string
		path    string
		want    Format
		wantErr bool
	}
	tests := []testCase{
		{name: "pdf", path: "statement.pdf", want: FormatPDF},
		{name: "pdf upper case", path: "STATEMENT.PDF", want: FormatPDF},
		{name: "xlsx", path: "statement.xlsx", want: FormatSpreadsheet},
		{name: "xls", path: "some/dir/statement.xls", want: FormatSpreadsheet},
		{name: "unknown", path: "statement.csv", wantErr: true},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			got, err := DetectFormat(tt.path)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			if !assert.NoError(t, err) {
				return
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func Test_ParseDate(t *testing.T) {
	type testCase struct {
		name    string
		value   string
		want    time.Time
		wantErr bool
	}
	tests := []testCase{
		{name: "day first slashes", value: "15/03/2026", want: time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)},
		{name: "not padded", value: "5/3/2026", want: time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC)},
		{name: "day first dashes", value: "15-03-2026", want: time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)},
		{name: "iso fallback", value: "2026-03-15", want: time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)},
		{name: "surrounding whitespace", value: " 15/03/2026 ", want: time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)},
		{name: "garbage", value: "Opening balance", wantErr: true},
		{name: "empty", value: "", wantErr: true},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDate(tt.value)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			if !assert.NoError(t, err) {
				return
			}
			assert.Equal(t, tt.want, got)
		})
	}
}
