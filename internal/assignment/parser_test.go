package assignment

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractPrefix(t *testing.T) {
	cases := []struct {
		name      string
		reference string
		want      string
	}{
		{name: "two letter", reference: "PR1234", want: "PR"},
		{name: "three letter", reference: "CBX900", want: "CBX"},
		{name: "lowercase uppercased", reference: "tv200", want: "TV"},
		{name: "long run accepted", reference: "LISBOA77", want: "LISBOA"},
		{name: "letters only", reference: "PR", want: "PR"},
		{name: "leading digit", reference: "1PR", want: ""},
		{name: "empty", reference: "", want: ""},
		{name: "whitespace trimmed", reference: "  PR100 ", want: "PR"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ExtractPrefix(tc.reference))
		})
	}
}
