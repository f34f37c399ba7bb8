// Copyright 2025 ByteDance Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package mcpserver

import (
	"github.com/mark3labs/mcp-go/server"
	"github.com/pkg/errors"

	"github.com/fanjia1024/ticketflow/desk"
	"github.com/fanjia1024/ticketflow/internal/log"
)

// ServerOptions selects which tool pairs the server exposes. The local
// stdio server carries both pairs; the SSE bridge carries only the ticket
// pair, backed by the REST desk.
type ServerOptions struct {
	ServerName    string
	ServerVersion string
	Config        desk.ConfigStore // nil: no config tools
	Tickets       desk.TicketStore // nil: no ticket tools
}

// Server wraps an MCP server with the desk tools registered.
type Server struct {
	Server *server.MCPServer
	opts   ServerOptions
}

func NewServer(opts ServerOptions) *Server {
	svr := server.NewMCPServer(opts.ServerName, opts.ServerVersion,
		server.WithToolCapabilities(false),
	)
	var tools []Tool
	if opts.Config != nil {
		tools = append(tools, configTools(opts.Config)...)
	}
	if opts.Tickets != nil {
		tools = append(tools, ticketTools(opts.Tickets)...)
	}
	for _, t := range tools {
		svr.AddTool(t.Tool, t.Handler)
	}
	return &Server{Server: svr, opts: opts}
}

// ServeStdio blocks serving the current process's stdin/stdout.
func (s *Server) ServeStdio() error {
	log.Info("serving MCP over stdio (%s %s)", s.opts.ServerName, s.opts.ServerVersion)
	return server.ServeStdio(s.Server)
}

// ServeSSE blocks serving HTTP/SSE on addr, e.g. ":5070". Clients connect
// to /sse and post messages to /message.
func (s *Server) ServeSSE(addr string) error {
	log.Info("serving MCP over SSE on %s (%s %s)", addr, s.opts.ServerName, s.opts.ServerVersion)
	sse := server.NewSSEServer(s.Server)
	if err := sse.Start(addr); err != nil {
		return errors.Wrapf(err, "sse server on %s", addr)
	}
	return nil
}
