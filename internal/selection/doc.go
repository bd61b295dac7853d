// Package selection tracks the single active cell, the optional rectangular
// range and the anchor column of one grid, and computes which column headers
// and row handles should be highlighted.
package selection
