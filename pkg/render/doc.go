// Package render holds the output renderers for exported dependency
// closures. The [dot] subpackage produces Graphviz DOT and SVG.
package render
