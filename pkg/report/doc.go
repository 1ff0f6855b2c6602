// Package report renders decoded entries in the formats consumed downstream.
//
// Writers are kept in a registry keyed by format name. The built-in formats
// (text, json, jsonl, markdown) register themselves in init blocks.
package report
