// Package chart draws dashboard charts from a table using go-chart.
//
// A Spec names the columns a chart reads and the kind of chart to draw:
//   - line - Y plotted over categorical X, one series per Color value
//   - bar  - value counts of X, or the sum of Y per X when Y is set
//   - box  - min/quartiles/max of Y, grouped by X when X is set
//
// Charts are rendered to PNG. Rows whose Y cell is not a number are skipped.
package chart
