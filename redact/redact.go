// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

// Package redact clears secrets out of JSON documents in place.
//
// A string is cleared (set to "") when either:
//   - its key is one of the secret field names (api_key, password, ...) and it is not already empty, or
//   - its key is "value" and the string looks like an API key: an OpenAI-style "sk-" prefix, or more than 20 ASCII
//     letters and digits.
//
// Every other value is walked recursively. Scalars inside arrays have no key and are never cleared.
package redact

import (
	"strconv"
	"strings"

	"github.com/hashicorp/go-hclog"

	"github.com/hashicorp/secretscrub/jsondoc"
)

// Redactor walks documents and clears any secrets it finds.
type Redactor struct {
	logger hclog.Logger
}

// New returns a Redactor that traces every cleared field, by JSON Pointer path, at debug level. The secret itself
// is never logged. A nil logger disables tracing.
func New(logger hclog.Logger) *Redactor {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &Redactor{logger: logger}
}

// JSON clears secrets from doc with a Redactor that does not log. See Redactor.JSON.
func JSON(doc *jsondoc.Value) (*jsondoc.Value, []string) {
	return New(nil).JSON(doc)
}

// JSON clears secrets from doc in place and returns doc along with one human-readable entry per cleared value, in
// document order. The entries contain a short prefix of each secret and are meant for the console only. Running it
// again over its own output clears nothing.
func (r *Redactor) JSON(doc *jsondoc.Value) (*jsondoc.Value, []string) {
	cleared := make([]string, 0)
	r.walk(doc, "", &cleared)
	return doc, cleared
}

func (r *Redactor) walk(v *jsondoc.Value, path string, cleared *[]string) {
	switch v.Kind() {
	case jsondoc.ObjectKind:
		for _, m := range v.Members() {
			r.member(m, path+"/"+escapePointer(m.Key), cleared)
		}
	case jsondoc.ArrayKind:
		for i, elem := range v.Elements() {
			r.walk(elem, path+"/"+strconv.Itoa(i), cleared)
		}
	}
}

func (r *Redactor) member(m jsondoc.Member, path string, cleared *[]string) {
	s, isString := m.Value.Str()

	var (
		rule  Rule
		entry string
		found bool
	)
	switch {
	case isString && IsSecretField(m.Key):
		rule, entry, found = classifyField(m.Key, s)
	case isString && m.Key == valueKey:
		rule, entry, found = classifyValue(s)
	default:
		r.walk(m.Value, path, cleared)
		return
	}

	if !found {
		return
	}
	m.Value.SetString("")
	*cleared = append(*cleared, entry)
	r.logger.Debug("cleared secret", "path", path, "rule", rule)
}

// escapePointer escapes a key for use as a JSON Pointer reference token (RFC 6901).
func escapePointer(key string) string {
	if !strings.ContainsAny(key, "~/") {
		return key
	}
	return strings.NewReplacer("~", "~0", "/", "~1").Replace(key)
}
