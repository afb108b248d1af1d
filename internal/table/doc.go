// Package table holds uploaded tabular data and its textual rendering.
//
// ParseCSV reads a delimited upload into a Table; malformed input surfaces as
// a *ParseError. Markdown renders the table as a pipe-style markdown table,
// which is the text inserted into prompt templates.
package table
