// Package oar reads and writes Omni Archive Format (.oar) streams.
//
// An archive is a plain concatenation of members with no global header,
// trailer or index:
//
//	archive := member*
//	member  := header payload
//	header  := (key '=' value '\0')* '\0'
//	payload := <size> raw bytes
//
// The size key holds the payload length in decimal ASCII. It is the only
// thing that delimits one member from the next, so a reader that cannot parse
// it must stop. Unknown keys are kept in order and written back unchanged.
package oar
