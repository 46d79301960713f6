// Package layout builds flash.Layout values from the two sources a firmware
// image layout can come from: a textual description in a small fixed-region
// language, or an FMAP structure embedded in the image itself.
//
// Description syntax:
//
//	      <desc> ::= <partitions>
//	<partitions> ::= <partition> | <partitions> '|' <partition>
//	 <partition> ::= <spare_section> | <partition> ',' <section>
//	                               | <section> ',' <partition>
//	   <section> ::= <name> '=' <size>
//	   <spare_section> ::= '*' | <name> | <name> '=' '*'
//
// Examples: "ro|rw", "ro=0x1000,*|*,rw=0x1000".
//
// Each partition receives an equal share of the total size. Sections are
// fixed-size, except for exactly one spare section per partition which
// absorbs all bytes the fixed sections did not claim. Sizes are non-zero
// decimal or 0x-prefixed hex. The name '*' declares an unnamed section: it
// consumes space but is omitted from the resulting layout. Whitespace is
// insignificant.
package layout
