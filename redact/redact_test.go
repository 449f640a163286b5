// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

package redact

import (
	"bytes"
	"strings"
	"testing"

	"github.com/hashicorp/go-hclog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hashicorp/secretscrub/jsondoc"
)

func parse(t *testing.T, s string) *jsondoc.Value {
	t.Helper()
	v, err := jsondoc.ParseBytes([]byte(s))
	require.NoError(t, err)
	return v
}

func render(t *testing.T, v *jsondoc.Value) string {
	t.Helper()
	out, err := v.MarshalIndent("", "")
	require.NoError(t, err)
	// Collapse to a single line so expectations can be written inline.
	return strings.ReplaceAll(string(out), "\n", "")
}

func TestJSON(t *testing.T) {
	tcs := []struct {
		name    string
		json    string
		expect  string
		cleared []string
	}{
		{
			name:    "empty object",
			json:    `{}`,
			expect:  `{}`,
			cleared: []string{},
		},
		{
			name:    "scalar document",
			json:    `"sk-proj-ABCDEFGHIJKLMNOP"`,
			expect:  `"sk-proj-ABCDEFGHIJKLMNOP"`,
			cleared: []string{},
		},
		{
			name:    "openai_api_key",
			json:    `{"openai_api_key": "sk-1234567890abcdef"}`,
			expect:  `{"openai_api_key": ""}`,
			cleared: []string{"Cleared openai_api_key: sk-1234567..."},
		},
		{
			name:    "cohere_api_key",
			json:    `{"cohere_api_key": "co-abcdefghijklmno"}`,
			expect:  `{"cohere_api_key": ""}`,
			cleared: []string{"Cleared cohere_api_key: co-abcdefg..."},
		},
		{
			name:    "api_key",
			json:    `{"api_key": "xyz"}`,
			expect:  `{"api_key": ""}`,
			cleared: []string{"Cleared api_key: xyz..."},
		},
		{
			name:    "password",
			json:    `{"password": "hunter2"}`,
			expect:  `{"password": ""}`,
			cleared: []string{"Cleared password: hunter2..."},
		},
		{
			name:    "db_password",
			json:    `{"db_password": "secretpass123"}`,
			expect:  `{"db_password": ""}`,
			cleared: []string{"Cleared db_password: secretpass..."},
		},
		{
			name:    "empty secret field is left alone",
			json:    `{"api_key": ""}`,
			expect:  `{"api_key": ""}`,
			cleared: []string{},
		},
		{
			name:    "field names are case sensitive",
			json:    `{"API_KEY": "abc", "Password": "abc", "api_key_hint": "abc"}`,
			expect:  `{"API_KEY": "abc","Password": "abc","api_key_hint": "abc"}`,
			cleared: []string{},
		},
		{
			name:    "non-string secret field is walked",
			json:    `{"password": {"db_password": "inner", "other": "keep"}}`,
			expect:  `{"password": {"db_password": "","other": "keep"}}`,
			cleared: []string{"Cleared db_password: inner..."},
		},
		{
			name:    "numeric secret field is left alone",
			json:    `{"password": 1234, "api_key": null, "db_password": true}`,
			expect:  `{"password": 1234,"api_key": null,"db_password": true}`,
			cleared: []string{},
		},
		{
			name:    "openai project key under value",
			json:    `{"value": "sk-proj-ABCDEFGHIJKLMNOP"}`,
			expect:  `{"value": ""}`,
			cleared: []string{"Cleared OpenAI key: sk-proj-ABCDEFG..."},
		},
		{
			name:    "short openai prefix under value",
			json:    `{"value": "sk-x"}`,
			expect:  `{"value": ""}`,
			cleared: []string{"Cleared OpenAI key: sk-x..."},
		},
		{
			name:    "generic key under value",
			json:    `{"value": "abcDEF1234567890XYZ12"}`,
			expect:  `{"value": ""}`,
			cleared: []string{"Cleared API key: abcDEF1234..."},
		},
		{
			name:    "exactly twenty alphanumerics is kept",
			json:    `{"value": "abcDEF1234567890XYZ1"}`,
			expect:  `{"value": "abcDEF1234567890XYZ1"}`,
			cleared: []string{},
		},
		{
			name:    "short alphanumeric value is kept",
			json:    `{"value": "abc123"}`,
			expect:  `{"value": "abc123"}`,
			cleared: []string{},
		},
		{
			name:    "punctuation value is kept",
			json:    `{"value": "short!"}`,
			expect:  `{"value": "short!"}`,
			cleared: []string{},
		},
		{
			name:    "long value with punctuation is kept",
			json:    `{"value": "this is a long sentence, not a key"}`,
			expect:  `{"value": "this is a long sentence, not a key"}`,
			cleared: []string{},
		},
		{
			name:    "long non-ascii value is kept",
			json:    `{"value": "ééééééééééééééééééééééé"}`,
			expect:  `{"value": "ééééééééééééééééééééééé"}`,
			cleared: []string{},
		},
		{
			name:    "secret shapes under other keys are kept",
			json:    `{"token": "sk-proj-ABCDEFGHIJKLMNOP", "id": "abcDEF1234567890XYZ12"}`,
			expect:  `{"token": "sk-proj-ABCDEFGHIJKLMNOP","id": "abcDEF1234567890XYZ12"}`,
			cleared: []string{},
		},
		{
			name:    "object under value is walked",
			json:    `{"value": {"api_key": "nested", "value": "sk-abc"}}`,
			expect:  `{"value": {"api_key": "","value": ""}}`,
			cleared: []string{"Cleared api_key: nested...", "Cleared OpenAI key: sk-abc..."},
		},
		{
			name:    "array scalars are never cleared",
			json:    `["sk-proj-ABCDEFGHIJKLMNOP", "abcDEF1234567890XYZ12", 1, null]`,
			expect:  `["sk-proj-ABCDEFGHIJKLMNOP","abcDEF1234567890XYZ12",1,null]`,
			cleared: []string{},
		},
		{
			name:    "nested structures",
			json:    `{"config": {"db_password": "secretpass123"}, "items": [{"api_key": "xyz"}]}`,
			expect:  `{"config": {"db_password": ""},"items": [{"api_key": ""}]}`,
			cleared: []string{"Cleared db_password: secretpass...", "Cleared api_key: xyz..."},
		},
		{
			name:    "deeply nested arrays",
			json:    `[[[{"password": "p"}]], [{"value": "sk-1"}]]`,
			expect:  `[[[{"password": ""}]],[{"value": ""}]]`,
			cleared: []string{"Cleared password: p...", "Cleared OpenAI key: sk-1..."},
		},
		{
			name:    "duplicate keys are each cleared",
			json:    `{"api_key": "first", "api_key": "second"}`,
			expect:  `{"api_key": "","api_key": ""}`,
			cleared: []string{"Cleared api_key: first...", "Cleared api_key: second..."},
		},
		{
			name:    "preview counts characters not bytes",
			json:    `{"password": "pässwörd-ünïcödé"}`,
			expect:  `{"password": ""}`,
			cleared: []string{"Cleared password: pässwörd-ü..."},
		},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			doc := parse(t, tc.json)
			result, cleared := JSON(doc)
			assert.Same(t, doc, result)
			assert.Equal(t, tc.expect, render(t, result))
			assert.Equal(t, tc.cleared, cleared)
		})
	}
}

func TestJSON_Nil(t *testing.T) {
	result, cleared := JSON(nil)
	assert.Nil(t, result)
	assert.Empty(t, cleared)
}

func TestJSON_Idempotent(t *testing.T) {
	docs := []string{
		`{"config": {"db_password": "secretpass123"}, "items": [{"api_key": "xyz"}]}`,
		`{"nodes": [{"data": {"template": {"openai_api_key": {"value": "sk-proj-ABCDEFGHIJKLMNOP"}, ` +
			`"cohere_api_key": "co-123", "fields": [{"value": "abcDEF1234567890XYZ12"}, {"value": "keep me"}]}}}]}`,
		`[1, "two", {"password": {"password": "x"}}]`,
	}

	for _, d := range docs {
		once, first := JSON(parse(t, d))
		require.NotEmpty(t, first)
		want := render(t, once)

		twice, second := JSON(once)
		assert.Empty(t, second)
		assert.Equal(t, want, render(t, twice))
	}
}

func TestJSON_PreservesStructure(t *testing.T) {
	doc := parse(t, `{"b": 1, "a": [true, {"password": "x", "z": 2.50}], "c": null}`)
	JSON(doc)

	out, err := doc.MarshalIndent("", "  ")
	require.NoError(t, err)
	assert.Equal(t, `{
  "b": 1,
  "a": [
    true,
    {
      "password": "",
      "z": 2.50
    }
  ],
  "c": null
}`, string(out))
}

func TestRedactor_LogsPathsNotSecrets(t *testing.T) {
	buf := new(bytes.Buffer)
	l := hclog.New(&hclog.LoggerOptions{
		Name:   "test",
		Level:  hclog.Debug,
		Output: buf,
	})

	doc := parse(t, `{"nodes": [{"a/b": {"password": "hunter2hunter2"}}, {"value": "sk-proj-ABCDEFGHIJKLMNOP"}]}`)
	_, cleared := New(l).JSON(doc)
	require.Len(t, cleared, 2)

	logs := buf.String()
	assert.Contains(t, logs, "path=/nodes/0/a~1b/password")
	assert.Contains(t, logs, "rule=field-name")
	assert.Contains(t, logs, "path=/nodes/1/value")
	assert.Contains(t, logs, "rule=openai-key")
	assert.NotContains(t, logs, "hunter2")
	assert.NotContains(t, logs, "ABCDEFG")
}

func TestTruncate(t *testing.T) {
	tcs := []struct {
		name   string
		input  string
		n      int
		expect string
	}{
		{name: "empty", input: "", n: 10, expect: ""},
		{name: "shorter than n", input: "abc", n: 10, expect: "abc"},
		{name: "exactly n", input: "abcdefghij", n: 10, expect: "abcdefghij"},
		{name: "longer than n", input: "abcdefghijk", n: 10, expect: "abcdefghij"},
		{name: "multibyte", input: "ééé", n: 2, expect: "éé"},
		{name: "zero", input: "abc", n: 0, expect: ""},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expect, truncate(tc.input, tc.n))
		})
	}
}

func TestIsAlphanumeric(t *testing.T) {
	assert.True(t, isAlphanumeric("abcXYZ019"))
	assert.False(t, isAlphanumeric(""))
	assert.False(t, isAlphanumeric("abc-123"))
	assert.False(t, isAlphanumeric("abc 123"))
	assert.False(t, isAlphanumeric("abcé"))
}

func TestEscapePointer(t *testing.T) {
	assert.Equal(t, "plain", escapePointer("plain"))
	assert.Equal(t, "a~1b", escapePointer("a/b"))
	assert.Equal(t, "~0x~1", escapePointer("~x/"))
}
