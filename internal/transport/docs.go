// package transport contains the *message syntax* half of an exchange: it
// renders a request into the bytes a driver sends, and turns the bytes a
// driver received into a [model.Reply].
//
// Only the HTTP/1.x framing defined by RFC9112 that a close-delimited
// exchange needs is implemented:
//
//	request-line CRLF *( field-line CRLF ) CRLF
//	status-line  CRLF *( field-line CRLF ) CRLF message-body
//
// The message body of a reply is everything after the first empty line up
// to the end of the stream. Content-Length and Transfer-Encoding are not
// interpreted.

package transport
