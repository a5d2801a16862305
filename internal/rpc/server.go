package rpc

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"sync"

	"github.com/parkscope/parkscope/internal/tools"
)

// Server serves the tool registry over a framed JSON-RPC stream,
// typically stdin/stdout. Requests are handled sequentially in arrival
// order; one server instance serves one connection.
type Server struct {
	registry *tools.Registry
	in       *bufio.Reader
	out      io.Writer
	outMu    sync.Mutex
}

func NewServer(registry *tools.Registry, in io.Reader, out io.Writer) *Server {
	return &Server{
		registry: registry,
		in:       bufio.NewReader(in),
		out:      out,
	}
}

// Serve reads frames until the stream closes or ctx is canceled.
func (s *Server) Serve(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		body, err := ReadFrame(s.in)
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}

		var req Request
		if err := json.Unmarshal(body, &req); err != nil {
			s.reply(newError(nil, CodeParseError, "parse error: "+err.Error()))
			continue
		}

		resp, respond := s.handle(ctx, &req)
		if respond {
			s.reply(resp)
		}
	}
}

func (s *Server) handle(ctx context.Context, req *Request) (Response, bool) {
	if req.JSONRPC != Version || req.Method == "" {
		return newError(req.ID, CodeInvalidRequest, "invalid request"), !req.Notification()
	}
	if req.Notification() {
		// Nothing to correlate a reply with; drop after dispatch.
		if req.Method != "tools/list" {
			_, _ = s.registry.Call(ctx, req.Method, req.Params)
		}
		return Response{}, false
	}

	if req.Method == "tools/list" {
		return newResult(req.ID, map[string]any{"tools": s.registry.List()}), true
	}

	result, err := s.registry.Call(ctx, req.Method, req.Params)
	if err != nil {
		if errors.Is(err, tools.ErrUnknownTool) {
			return newError(req.ID, CodeMethodNotFound, err.Error()), true
		}
		log.Printf("rpc: %s failed: %v", req.Method, err)
		return newError(req.ID, CodeInternalError, err.Error()), true
	}
	return newResult(req.ID, result), true
}

func (s *Server) reply(resp Response) {
	s.outMu.Lock()
	defer s.outMu.Unlock()
	if err := WriteFrame(s.out, resp); err != nil {
		log.Printf("rpc: write response: %v", err)
	}
}
