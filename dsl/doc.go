// Package dsl implements the TradeFlow workflow language front end:
// tokenizer, recursive-descent parser, abstract syntax tree, and the
// semantic validator with step-dependency cycle detection.
package dsl
