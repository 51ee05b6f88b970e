// Package geom models the drawable geometry of trait assets.
//
// A [Path] is an ordered list of segments. Each [Segment] is one of [Line],
// [Cubic], [Quadratic] or [Arc]; the set is closed so every switch over
// segment kinds is exhaustive. Coordinates are [Point] values, complex numbers
// whose real part is x and imaginary part is y.
//
// # Path data
//
// [ParsePath] reads SVG path data (absolute and relative commands, shorthand
// curves, implicit line-tos) into segments. [Path.D] writes segments back in
// a fixed textual form:
//
//	M 10,20 L 30,40 C 1,2 3,4 5,6 Q 1,2 3,4 A 5,5 0 1,0 9,9
//
// A move-to is emitted only where a segment does not start at the previous
// segment's end. Numbers use the shortest decimal representation, so equal
// geometry always serializes to equal text. [Canonicalize] then rewrites
// straight lines as H/V shorthand where the running endpoint allows it.
//
// # Quantization
//
// A [Grid] rescales source coordinates into a small integer lattice. Control
// points round half to even and are clipped per axis. Arc endpoints, center
// and radius are snapped independently, so a quantized arc's radius may no
// longer match its chord; that loss is accepted. Segments that collapse to a
// single point are removed by [Path.Quantize].
package geom
