// SPDX-License-Identifier: Apache-2.0 OR MIT

/*
Package rebot implements a small TCP client and server for a
length-prefixed, CBOR-encoded register-access protocol — a stand-in for
the "Rebot" remote-board protocol, letting a Client on one host read and
write registers of a Device fronted by a Server on another.

Every message is a 4-byte big-endian length prefix followed by a CBOR-
encoded request or response. A request names an operation (read or
write), a bar, a starting word address, and either the number of words
to read or the words to write; a response carries either the words read
or an error string.

# Example Usage

	srv, err := rebot.Serve(ctx, "127.0.0.1:0", dummyDevice)
	defer srv.Close()

	c, err := rebot.Dial(ctx, srv.Addr().String())
	defer c.Close()
	err = c.WriteWords(0, 0x10, []int32{1, 2, 3})
*/
package rebot
