// Package cel provides a CEL expression evaluator for dashboard chart gates.
//
// A gate decides whether a chart is drawn for an uploaded table. Expressions
// see two variables:
//   - columns - list(string) of column names in upload order
//   - rows    - int number of data rows
//
// Example usage:
//
//	evaluator := cel.NewEvaluator()
//	shape := cel.Shape{Columns: []string{"Line", "Temp Avg (°C)"}, Rows: 12}
//
//	ok, err := evaluator.Matches(ctx, `"Line" in columns && rows > 1`, shape)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// Example expressions:
//
//	"Timestamp" in columns                 # column present
//	!("Line" in columns)                   # column absent
//	columns.exists(c, c.startsWith("Temp")) # any temperature column
//	rows >= 2                              # enough points for a line
//
// Compiled programs are cached per expression and safe for concurrent use.
package cel
