// SPDX-License-Identifier: Apache-2.0 OR MIT

package rebot

import (
	"context"
	"net"
	"sync"

	"github.com/fxamacker/cbor/v2"
	"github.com/pkg/errors"
)

// Client is a connection to a rebot.Server, implementing accessor.RawWindow
// over the wire.
type Client struct {
	mu   sync.Mutex
	conn net.Conn
}

// Dial connects to a Rebot server at addr (host:port).
func Dial(ctx context.Context, addr string) (*Client, error) {
	var d net.Dialer
	conn, err := d.DialContext(ctx, "tcp", addr)
	if err != nil {
		return nil, errors.Wrapf(err, "rebot: dialing %s", addr)
	}
	return &Client{conn: conn}, nil
}

// Close closes the underlying connection.
func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn.Close()
}

// ReadWords implements accessor.RawWindow.
func (c *Client) ReadWords(bar int, address uint64, words []int32) error {
	resp, err := c.roundTrip(request{Op: opRead, Bar: bar, Address: address, Count: len(words)})
	if err != nil {
		return err
	}
	if len(resp.Words) != len(words) {
		return errors.Errorf("rebot: expected %d words in response, got %d", len(words), len(resp.Words))
	}
	copy(words, resp.Words)
	return nil
}

// WriteWords implements accessor.RawWindow.
func (c *Client) WriteWords(bar int, address uint64, words []int32) error {
	_, err := c.roundTrip(request{Op: opWrite, Bar: bar, Address: address, Words: words})
	return err
}

func (c *Client) roundTrip(req request) (response, error) {
	payload, err := cbor.Marshal(req)
	if err != nil {
		return response{}, errors.Wrap(err, "rebot: encoding request")
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if err := writeFrame(c.conn, payload); err != nil {
		return response{}, errors.Wrap(err, "rebot: sending request")
	}
	raw, err := readFrame(c.conn)
	if err != nil {
		return response{}, errors.Wrap(err, "rebot: reading response")
	}

	var resp response
	if err := cbor.Unmarshal(raw, &resp); err != nil {
		return response{}, errors.Wrap(err, "rebot: decoding response")
	}
	if resp.Err != "" {
		return response{}, errors.New("rebot: " + resp.Err)
	}
	return resp, nil
}
