package main

import (
	"reflect"
	"testing"
)

func TestRewriteDirectListLookupArgs(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   []string
		want []string
	}{
		{
			name: "no args",
			in:   []string{"shoplist"},
			want: []string{"shoplist"},
		},
		{
			name: "direct list id first token",
			in:   []string{"shoplist", "list-abc123"},
			want: []string{"shoplist", "lists", "show", "list-abc123"},
		},
		{
			name: "direct list id after value flag",
			in:   []string{"shoplist", "--data-dir", "./tmp-data", "list-abc123"},
			want: []string{"shoplist", "--data-dir", "./tmp-data", "lists", "show", "list-abc123"},
		},
		{
			name: "direct list id after equals flag",
			in:   []string{"shoplist", "--format=text", "list-abc123"},
			want: []string{"shoplist", "--format=text", "lists", "show", "list-abc123"},
		},
		{
			name: "direct list id after bool flag",
			in:   []string{"shoplist", "--pretty", "list-abc123"},
			want: []string{"shoplist", "--pretty", "lists", "show", "list-abc123"},
		},
		{
			name: "normal subcommand not rewritten",
			in:   []string{"shoplist", "lists", "show", "list-abc123"},
			want: []string{"shoplist", "lists", "show", "list-abc123"},
		},
		{
			name: "bare prefix not rewritten",
			in:   []string{"shoplist", "list-"},
			want: []string{"shoplist", "list-"},
		},
		{
			name: "unknown command not rewritten",
			in:   []string{"shoplist", "wat"},
			want: []string{"shoplist", "wat"},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := rewriteDirectListLookupArgs(tt.in)
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("rewriteDirectListLookupArgs:\n got: %#v\nwant: %#v", got, tt.want)
			}
		})
	}
}
