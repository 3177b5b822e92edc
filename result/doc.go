/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package result extracts structured documents from model responses.
//
// Models asked for JSON frequently wrap it in Markdown fences or surround it
// with prose. [ExtractJSON] strips that wrapping so a fenced response decodes
// exactly like the bare document:
//
//	raw, err := result.ExtractObject(response)
//	if err != nil {
//		// schema failure: the response held no usable JSON object
//	}
package result
