package main

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/httpwire/httphdr/log"
)

func TestCheck(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		in      string
		cfg     config
		want    string
		wantErr bool
	}{
		{
			name: "canonicalizes known headers",
			in: "expires: Thursday, 01-Dec-94 16:00:00 GMT\r\n" +
				"retry-after: 120\n" +
				"content-type: text/html\n",
			cfg:  defaultConfig(),
			want: "Expires: Thu, 01 Dec 1994 16:00:00 GMT\nRetry-After: 120\n",
		},
		{
			name: "expires fallback is not malformed",
			in:   "Expires: bogus\n",
			cfg:  defaultConfig(),
			want: "Expires: 0\n",
		},
		{
			name:    "malformed date reported",
			in:      "Date: bogus\n",
			cfg:     defaultConfig(),
			want:    "",
			wantErr: true,
		},
		{
			name:    "repeated field is malformed",
			in:      "Retry-After: 42\nRetry-After: 24\n",
			cfg:     defaultConfig(),
			want:    "",
			wantErr: true,
		},
		{
			name: "allowlist filters",
			in:   "Expires: 0\nRetry-After: 120\n",
			cfg:  config{Headers: []string{"retry-after"}},
			want: "Retry-After: 120\n",
		},
		{
			name: "blank lines and non-header lines skipped",
			in:   "\nnot a header line\nAge: 60\n",
			cfg:  defaultConfig(),
			want: "Age: 60\n",
		},
	}

	for _, c := range cases {
		c := c
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()

			var out strings.Builder
			err := check(strings.NewReader(c.in), &out, c.cfg, log.Noop)
			if (err != nil) != c.wantErr {
				t.Fatalf("check(in, out, cfg, logger) error = %v, wantErr %v", err, c.wantErr)
			}
			if diff := cmp.Diff(out.String(), c.want); diff != "" {
				t.Errorf("check output mismatch\ndiff (-got +want):\n%v", diff)
			}
		})
	}
}
