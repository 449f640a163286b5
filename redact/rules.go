// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

package redact

import (
	"fmt"
	"strings"
)

// secretFieldNames are object keys whose string values are always treated as secrets.
var secretFieldNames = map[string]struct{}{
	"openai_api_key": {},
	"cohere_api_key": {},
	"api_key":        {},
	"password":       {},
	"db_password":    {},
}

// valueKey is the generic key under which workflow exports store user-supplied values. Its contents are judged by
// shape rather than by name.
const valueKey = "value"

// openAIKeyPrefixes mark OpenAI-style secret keys.
var openAIKeyPrefixes = []string{"sk-proj-", "sk-"}

// genericKeyMinLen is exclusive: a generic key must be longer than this.
const genericKeyMinLen = 20

const (
	fieldNamePreview  = 10
	openAIKeyPreview  = 15
	genericKeyPreview = 10
)

// Rule identifies which heuristic classified a value as a secret.
type Rule string

const (
	FieldName  Rule = "field-name"
	OpenAIKey  Rule = "openai-key"
	GenericKey Rule = "generic-key"
)

// IsSecretField reports whether key is one of the always-sensitive field names.
func IsSecretField(key string) bool {
	_, ok := secretFieldNames[key]
	return ok
}

// classifyField applies the name-based rule to a string member.
func classifyField(key, s string) (Rule, string, bool) {
	if s == "" || !IsSecretField(key) {
		return "", "", false
	}
	return FieldName, fmt.Sprintf("Cleared %s: %s...", key, truncate(s, fieldNamePreview)), true
}

// classifyValue applies the shape-based rules to the string stored under a "value" key.
func classifyValue(s string) (Rule, string, bool) {
	for _, prefix := range openAIKeyPrefixes {
		if strings.HasPrefix(s, prefix) {
			return OpenAIKey, fmt.Sprintf("Cleared OpenAI key: %s...", truncate(s, openAIKeyPreview)), true
		}
	}
	if isAlphanumeric(s) && len(s) > genericKeyMinLen {
		return GenericKey, fmt.Sprintf("Cleared API key: %s...", truncate(s, genericKeyPreview)), true
	}
	return "", "", false
}

// isAlphanumeric reports whether s is non-empty and made only of ASCII letters and digits.
func isAlphanumeric(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9':
		default:
			return false
		}
	}
	return true
}

// truncate returns at most the first n characters of s.
func truncate(s string, n int) string {
	count := 0
	for i := range s {
		if count == n {
			return s[:i]
		}
		count++
	}
	return s
}
