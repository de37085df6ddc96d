/*
Package textsyntax decodes and encodes the curly-brace text syntax for
YANG modeled data.

The syntax is line and brace oriented:

	ex:system {
	    hostname "core router";
	    server [
	        1.1.1.1
	        2.2.2.2
	    ]
	    interface eth0 {
	        mtu 1500;
	    }
	}

A statement is a name, optionally module qualified, followed by values
and then ';', a '{' block of statements or a '[' leaf-list of values.
Values following a list name are its key values, in key order. Values
holding whitespace or syntax characters are double quoted, with \" and
\\ escapes.

Decoding is independent of the schema: key values are kept as pending
key bodies until the tree is bound, when they become key leaves, see
package bind. Encoding requires a bound tree for leaf-list grouping,
key inlining and module prefixes.
*/
package textsyntax
