package dataset

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func writeURLFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "urls.csv")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestReadURLFile(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		content      string
		defaultLabel int
		want         []LabeledURL
		wantErr      error
	}{
		{
			name:         "plain list",
			content:      "http://a.test\nhttp://b.test\n",
			defaultLabel: 1,
			want: []LabeledURL{
				{URL: "http://a.test", Label: 1},
				{URL: "http://b.test", Label: 1},
			},
		},
		{
			name:         "labeled csv with header",
			content:      "url,label\nhttp://a.test,1\nhttp://b.test,0\n",
			defaultLabel: 1,
			want: []LabeledURL{
				{URL: "http://a.test", Label: 1},
				{URL: "http://b.test", Label: 0},
			},
		},
		{
			name:         "comments and blanks skipped",
			content:      "# phishing feed\n\nhttp://a.test\n",
			defaultLabel: 0,
			want:         []LabeledURL{{URL: "http://a.test", Label: 0}},
		},
		{
			name:         "url containing comma without numeric label",
			content:      "http://a.test/q?x=1,2\n",
			defaultLabel: 1,
			want:         []LabeledURL{{URL: "http://a.test/q?x=1,2", Label: 1}},
		},
		{
			name:    "empty file",
			content: "\n\n",
			wantErr: ErrNoInput,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := ReadURLFile(writeURLFile(t, tt.content), tt.defaultLabel)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("ReadURLFile() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("ReadURLFile() error = %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ReadURLFile() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestReadURLFileMissing(t *testing.T) {
	t.Parallel()

	if _, err := ReadURLFile(filepath.Join(t.TempDir(), "absent.csv"), 0); err == nil {
		t.Error("ReadURLFile() expected error for missing file")
	}
}
