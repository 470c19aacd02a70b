// SPDX-License-Identifier: Apache-2.0 OR MIT

package rebot

import (
	"context"
	"fmt"
	"net"
	"sync"

	"github.com/fxamacker/cbor/v2"

	"github.com/chimeratk-go/regaccess/accessor"
)

// Server serves the Rebot protocol over TCP, forwarding every request to a
// backing accessor.RawWindow — a transport/dummy.Device in tests, or a
// transport/uio.Device fronting real hardware.
type Server struct {
	window   accessor.RawWindow
	listener net.Listener
	wg       sync.WaitGroup
}

// Serve starts a Server listening on addr and returns immediately; ctx
// cancellation does not stop the listener, only Close does, matching
// net.Listener's own lifecycle.
func Serve(ctx context.Context, addr string, window accessor.RawWindow) (*Server, error) {
	lis, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, err
	}
	s := &Server{window: window, listener: lis}
	s.wg.Add(1)
	go s.acceptLoop()
	return s, nil
}

// Addr returns the address the server is listening on.
func (s *Server) Addr() net.Addr { return s.listener.Addr() }

// Close stops accepting new connections and waits for in-flight
// connections to finish handling their current request.
func (s *Server) Close() error {
	err := s.listener.Close()
	s.wg.Wait()
	return err
}

func (s *Server) acceptLoop() {
	defer s.wg.Done()
	for {
		conn, err := s.listener.Accept()
		if err != nil {
			return
		}
		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			s.serveConn(conn)
		}()
	}
}

func (s *Server) serveConn(conn net.Conn) {
	defer conn.Close()
	for {
		raw, err := readFrame(conn)
		if err != nil {
			return
		}
		var req request
		if err := cbor.Unmarshal(raw, &req); err != nil {
			return
		}
		resp := s.handle(req)
		payload, err := cbor.Marshal(resp)
		if err != nil {
			return
		}
		if err := writeFrame(conn, payload); err != nil {
			return
		}
	}
}

func (s *Server) handle(req request) response {
	switch req.Op {
	case opRead:
		words := make([]int32, req.Count)
		if err := s.window.ReadWords(req.Bar, req.Address, words); err != nil {
			return response{Err: err.Error()}
		}
		return response{Words: words}
	case opWrite:
		if err := s.window.WriteWords(req.Bar, req.Address, req.Words); err != nil {
			return response{Err: err.Error()}
		}
		return response{}
	default:
		return response{Err: fmt.Sprintf("rebot: unknown op %d", req.Op)}
	}
}
