package format

import (
	"bytes"
	"strings"
	"testing"
)

type sample struct {
	ID    string   `json:"id"`
	Tags  []string `json:"tags,omitempty"`
	Count int      `json:"count"`
}

func TestWrite_Formats(t *testing.T) {
	t.Parallel()

	v := map[string]any{"data": sample{ID: "x", Count: 2}}
	cases := []struct {
		format string
		pretty bool
		want   string
	}{
		{"json", false, `{"data":{"id":"x","count":2}}` + "\n"},
		{"", true, "{\n  \"data\": {\n    \"id\": \"x\",\n    \"count\": 2\n  }\n}\n"},
		{"yaml", false, "data:\n  count: 2\n  id: x\n"},
	}
	for _, tc := range cases {
		var buf bytes.Buffer
		if err := Write(&buf, v, tc.format, tc.pretty); err != nil {
			t.Fatalf("%s: %v", tc.format, err)
		}
		if buf.String() != tc.want {
			t.Fatalf("%s: got\n%s\nwant\n%s", tc.format, buf.String(), tc.want)
		}
	}
}

func TestWrite_UnknownFormat(t *testing.T) {
	t.Parallel()

	err := Write(&bytes.Buffer{}, 1, "edn", false)
	if err == nil || !strings.Contains(err.Error(), "unknown format") {
		t.Fatalf("expected unknown format error, got %v", err)
	}
}
