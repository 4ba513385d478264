package main

import (
	"reflect"
	"testing"
)

func TestRewriteDirectRunArgs(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   []string
		want []string
	}{
		{
			name: "no args",
			in:   []string{"scriptpad"},
			want: []string{"scriptpad"},
		},
		{
			name: "script name first token",
			in:   []string{"scriptpad", "hello.js"},
			want: []string{"scriptpad", "run", "hello.js"},
		},
		{
			name: "script name after value flag",
			in:   []string{"scriptpad", "--dir", "./tmp", "hello.js"},
			want: []string{"scriptpad", "--dir", "./tmp", "run", "hello.js"},
		},
		{
			name: "script name after equals flag",
			in:   []string{"scriptpad", "--dir=./tmp", "hello.js", "--press", "OK"},
			want: []string{"scriptpad", "--dir=./tmp", "run", "hello.js", "--press", "OK"},
		},
		{
			name: "script name after bool flag",
			in:   []string{"scriptpad", "--pretty", "hello.js"},
			want: []string{"scriptpad", "--pretty", "run", "hello.js"},
		},
		{
			name: "script name after double dash",
			in:   []string{"scriptpad", "--", "hello.js"},
			want: []string{"scriptpad", "--", "run", "hello.js"},
		},
		{
			name: "subcommand not rewritten",
			in:   []string{"scriptpad", "files", "show", "hello.js"},
			want: []string{"scriptpad", "files", "show", "hello.js"},
		},
		{
			name: "unknown word not rewritten",
			in:   []string{"scriptpad", "wat"},
			want: []string{"scriptpad", "wat"},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := rewriteDirectRunArgs(tt.in)
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("rewriteDirectRunArgs:\n got: %#v\nwant: %#v", got, tt.want)
			}
		})
	}
}
