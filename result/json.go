/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package result

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrNoJSON is returned when a response contains nothing to decode.
var ErrNoJSON = errors.New("no JSON content in response")

const (
	fenceJSON = "```json"
	fence     = "```"
)

// ExtractJSON returns the JSON document held in a model response.
//
// A fenced block opening with a line of exactly ```json wins. Otherwise the
// response is trimmed and any leading ```json or ``` and trailing ``` are
// removed, which also covers single-line responses such as
// ```json {"a": 1} ```.
func ExtractJSON(responseText string) string {
	var buf bytes.Buffer
	inBlock, found := false, false

	for line := range strings.SplitSeq(responseText, "\n") {
		trimmed := strings.TrimSpace(line)
		switch {
		case !inBlock && trimmed == fenceJSON:
			inBlock, found = true, true
			continue
		case inBlock && trimmed == fence:
			inBlock = false
		case inBlock:
			if buf.Len() > 0 {
				buf.WriteByte('\n')
			}
			buf.WriteString(line)
			continue
		}
		if found && !inBlock {
			break
		}
	}

	if found {
		return strings.TrimSpace(buf.String())
	}

	text := strings.TrimSpace(responseText)
	if after, ok := strings.CutPrefix(text, fenceJSON); ok {
		text = after
	} else {
		text = strings.TrimPrefix(text, fence)
	}
	text = strings.TrimSuffix(strings.TrimSpace(text), fence)
	return strings.TrimSpace(text)
}

// ExtractObject pulls the JSON document out of responseText and returns it as
// raw JSON. The document must be a single JSON object.
func ExtractObject(responseText string) (json.RawMessage, error) {
	content := ExtractJSON(responseText)
	if content == "" {
		return nil, ErrNoJSON
	}
	var obj map[string]json.RawMessage
	if err := json.Unmarshal([]byte(content), &obj); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}
	if obj == nil {
		return nil, errors.New("decoding response: top-level value is null")
	}
	return json.RawMessage(content), nil
}
