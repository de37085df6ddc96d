/*
Package yangtext is a set of libraries translating between a curly-brace
text syntax and YANG schema bound XML trees.

Doing the heavy lifting of text decoding, schema binding, list key
materialization and canonical ordering, these libraries let NETCONF
servers and tools accept and emit configuration in a compact,
human-editable form while keeping the same tree used for XML.

A text document such as

	ex:system {
	    hostname r1;
	    dns {
	        server [
	            10.0.0.1
	            10.0.0.2
	        ]
	    }
	    interface eth0 {
	        mtu 1500;
	    }
	}

decodes (package textsyntax) into an xmltree.Node tree, which is then
bound (package bind) against a schema.Spec loaded from YANG modules
(package schema). The bound tree encodes back into the same text, or into
XML via xmltree.EncodeXML.

Invalid documents are reported as NETCONF rpc-error values (package
ncerr) so a protocol layer can return them to a client unchanged.
*/
package yangtext
