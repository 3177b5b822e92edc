/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package cefr models CEFR proficiency levels.
//
// Levels live on a twelve point grid running from A1 to C2+. Each point has
// a score on the 0.0-5.5 axis in half steps, and the six standard levels also
// have a 1-6 ordinal used for weighted aggregation:
//
//	A1=0.0 A1+=0.5 A2=1.0 ... C2=5.0 C2+=5.5
//	A1=1   A2=2    B1=3   B2=4  C1=5  C2=6
//
// Numeric values are always clamped before they are mapped back to a label,
// and rounding on the numeric axis is half-up ([Round]), so 2.5 maps to 3.
package cefr
