package batch

import (
	"errors"
	"testing"
)

func TestParseStringOrArray(t *testing.T) {
	tests := []struct {
		name    string
		input   any
		want    []string
		wantErr bool
	}{
		{
			name:  "single string",
			input: "evt0001",
			want:  []string{"evt0001"},
		},
		{
			name:  "array of strings",
			input: []any{"evt0001", "evt0002", "evt0003"},
			want:  []string{"evt0001", "evt0002", "evt0003"},
		},
		{
			name:  "typed string slice",
			input: []string{"evt0001", "evt0002"},
			want:  []string{"evt0001", "evt0002"},
		},
		{
			name:  "JSON string array",
			input: `["evt0001", "evt0002"]`,
			want:  []string{"evt0001", "evt0002"},
		},
		{
			name:  "string starting with bracket (not JSON)",
			input: `[draft] review`,
			want:  []string{`[draft] review`},
		},
		{
			name:    "nil input",
			input:   nil,
			wantErr: true,
		},
		{
			name:    "empty string",
			input:   "",
			wantErr: true,
		},
		{
			name:    "empty array",
			input:   []any{},
			wantErr: true,
		},
		{
			name:    "JSON string empty array",
			input:   `[]`,
			wantErr: true,
		},
		{
			name:    "array with non-string",
			input:   []any{"evt0001", 123},
			wantErr: true,
		},
		{
			name:    "array with empty string",
			input:   []any{"evt0001", ""},
			wantErr: true,
		},
		{
			name:    "invalid type",
			input:   123,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseStringOrArray(tt.input, "eventIds")
			if (err != nil) != tt.wantErr {
				t.Errorf("ParseStringOrArray() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if !tt.wantErr && !stringSliceEqual(got, tt.want) {
				t.Errorf("ParseStringOrArray() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestProcessAndSummarize(t *testing.T) {
	ids := []string{"evt0001", "evt0002", "evt0003"}

	fn := func(id string) (string, error) {
		if id == "evt0002" {
			return "", errors.New("event evt0002 was not deleted")
		}
		return "deleted", nil
	}

	results := Process(ids, fn)
	if len(results) != 3 {
		t.Fatalf("len(results) = %d, want 3", len(results))
	}

	if results[0].Status != StatusSuccess || results[0].Result != "deleted" {
		t.Errorf("results[0] = %+v, want success/deleted", results[0])
	}
	if results[1].Status != StatusError || results[1].Error != "event evt0002 was not deleted" {
		t.Errorf("results[1] = %+v, want error", results[1])
	}
	if results[2].ID != "evt0003" || results[2].Status != StatusSuccess {
		t.Errorf("results[2] = %+v, want evt0003 success", results[2])
	}

	br := Summarize(results)
	if br.Total != 3 || br.Successful != 2 || br.Failed != 1 {
		t.Errorf("Summarize() = %d/%d/%d, want 3/2/1", br.Total, br.Successful, br.Failed)
	}
}

func TestNewResults(t *testing.T) {
	ok := NewSuccessResult("evt0001", "deleted")
	if ok.Status != StatusSuccess || ok.Error != "" {
		t.Errorf("NewSuccessResult() = %+v", ok)
	}

	failed := NewErrorResult("evt0001", errors.New("boom"))
	if failed.Status != StatusError || failed.Error != "boom" || failed.Result != "" {
		t.Errorf("NewErrorResult() = %+v", failed)
	}
}

func stringSliceEqual(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
