package main

import (
	"encoding/json"
	"fmt"
	"strings"
)

// parseToolArgs turns repeated key=value flags into a tool argument map.
// Values that parse as JSON keep their JSON type, so max_result=5 arrives
// as a number; everything else stays a string.
func parseToolArgs(pairs []string) (map[string]any, error) {
	args := make(map[string]any, len(pairs))
	for _, pair := range pairs {
		key, value, found := strings.Cut(pair, "=")
		if !found || key == "" {
			return nil, fmt.Errorf("malformed argument %q, want key=value", pair)
		}
		var typed any
		if err := json.Unmarshal([]byte(value), &typed); err == nil {
			args[key] = typed
		} else {
			args[key] = value
		}
	}
	return args, nil
}

// parsePromptArgs is the string-only variant used for prompt arguments.
func parsePromptArgs(pairs []string) (map[string]string, error) {
	args := make(map[string]string, len(pairs))
	for _, pair := range pairs {
		key, value, found := strings.Cut(pair, "=")
		if !found || key == "" {
			return nil, fmt.Errorf("malformed argument %q, want key=value", pair)
		}
		args[key] = value
	}
	return args, nil
}
