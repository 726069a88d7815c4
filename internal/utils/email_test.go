package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeSubject(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"Re: Dinner tonight?", "Dinner tonight?"},
		{"RE: re: Fwd: Dinner", "Dinner"},
		{"Fw[2]: budget", "budget"},
		{"  Re:   spaced  ", "spaced"},
		{"Regarding the report", "Regarding the report"},
		{"", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizeSubject(tt.input), "input %q", tt.input)
	}
}

func TestParseSender(t *testing.T) {
	tests := []struct {
		raw       string
		wantName  string
		wantEmail string
	}{
		{`Jane Doe <Jane@Acme.com>`, "Jane Doe", "jane@acme.com"},
		{`"Jane Doe" <jane@acme.com>`, "Jane Doe", "jane@acme.com"},
		{`<noreply@acme.com>`, "noreply@acme.com", "noreply@acme.com"},
		{`jane@acme.com`, "jane@acme.com", "jane@acme.com"},
		{``, "", ""},
	}

	for _, tt := range tests {
		name, email := ParseSender(tt.raw)
		assert.Equal(t, tt.wantName, name, "raw %q", tt.raw)
		assert.Equal(t, tt.wantEmail, email, "raw %q", tt.raw)
	}
}

func TestExtractDomain(t *testing.T) {
	assert.Equal(t, "acme.com", ExtractDomain("jane@ACME.com"))
	assert.Equal(t, "acme.com", ExtractDomain("Jane Doe <jane@acme.com>"))
	assert.Equal(t, "", ExtractDomain("not-an-address"))
	assert.Equal(t, "", ExtractDomain(""))
}

func TestLocalPart(t *testing.T) {
	assert.Equal(t, "jane.doe", LocalPart("Jane.Doe@acme.com"))
	assert.Equal(t, "plain", LocalPart("plain"))
}

func TestLowerSet(t *testing.T) {
	set := LowerSet([]string{" Jane@Acme.com ", "BOB@x.io", ""})

	assert.Len(t, set, 2)
	_, ok := set["jane@acme.com"]
	assert.True(t, ok)
	_, ok = set["bob@x.io"]
	assert.True(t, ok)
}
