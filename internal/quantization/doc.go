// Package quantization turns an accumulated bucket histogram into the compact
// fields of a digest.
//
// # Quartiles
//
// Quartiles finds the values at the 25th, 50th and 75th percentile ranks of
// the histogram with a triple quickselect: the median is selected first and
// every partition boundary visited on the way is remembered, so the first and
// third quartiles are selected inside the narrowest sub-range already known to
// hold them. The input histogram is never modified.
//
// # Codes
//
// Each bucket is classified against the quartiles into a 2-bit Symbol and four
// symbols are packed into one byte, least significant bits first:
//
//	count <= q1  -> SymbolLow
//	count <= q2  -> SymbolMidLow
//	count <= q3  -> SymbolMidHigh
//	otherwise    -> SymbolHigh
//
// # Length and ratios
//
// LengthCode maps the total input length onto a coarse logarithmic scale and
// Ratio reduces a quartile relative to the third quartile to 4 bits.
package quantization
