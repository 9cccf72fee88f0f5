// Package cookies parses the Cookie request header into plain, signed and JSON values
// and stores the result on the echo context for handlers further down the chain.
//
// Signed cookies carry an "s:" prefix followed by a gorilla/securecookie token. JSON
// cookies carry a "j:" prefix followed by a JSON document.
package cookies
