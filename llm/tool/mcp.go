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

// Package tool connects the labs to remote MCP tool servers and converts
// their tools into eino tools an agent can call.
package tool

import (
	"context"

	emcp "github.com/cloudwego/eino-ext/components/tool/mcp"
	etool "github.com/cloudwego/eino/components/tool"
	"github.com/mark3labs/mcp-go/client"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/pkg/errors"

	"github.com/fanjia1024/ticketflow/version"
)

// Tool is what the react agent consumes.
type Tool = etool.BaseTool

type MCPType string

const (
	MCPTypeStdio MCPType = "stdio"
	MCPTypeSSE   MCPType = "sse"
)

type MCPConfig struct {
	Type    MCPType
	Command string   // stdio: executable to spawn
	Args    []string // stdio: its arguments
	Envs    []string // stdio: extra environment
	SSEURL  string   // sse: bridge endpoint, e.g. http://localhost:5070/sse
}

type MCPClient struct {
	cli *client.Client
}

func NewMCPClient(opts MCPConfig) (*MCPClient, error) {
	var cli *client.Client
	var err error
	switch opts.Type {
	case MCPTypeStdio:
		if opts.Command == "" {
			return nil, errors.New("command is empty")
		}
		cli, err = client.NewStdioMCPClient(opts.Command, opts.Envs, opts.Args...)
		if err != nil {
			return nil, err
		}
	case MCPTypeSSE:
		if opts.SSEURL == "" {
			return nil, errors.New("sse url is empty")
		}
		cli, err = client.NewSSEMCPClient(opts.SSEURL)
		if err != nil {
			return nil, err
		}
	default:
		return nil, errors.Errorf("unsupported mcp type %q", opts.Type)
	}
	return &MCPClient{cli: cli}, nil
}

func (c *MCPClient) Start(ctx context.Context) error {
	if err := c.cli.Start(ctx); err != nil {
		return err
	}
	initRequest := mcp.InitializeRequest{}
	initRequest.Params.ProtocolVersion = mcp.LATEST_PROTOCOL_VERSION
	initRequest.Params.ClientInfo = mcp.Implementation{
		Name:    "ticketflow",
		Version: version.Version,
	}
	_, err := c.cli.Initialize(ctx, initRequest)
	return err
}

func (c *MCPClient) Close() error {
	return c.cli.Close()
}

// GetTools lists the server's tools as eino tools.
func (c *MCPClient) GetTools(ctx context.Context) ([]Tool, error) {
	mcpTools, err := emcp.GetTools(ctx, &emcp.Config{Cli: c.cli})
	if err != nil {
		return nil, err
	}
	tools := make([]Tool, 0, len(mcpTools))
	for _, t := range mcpTools {
		tools = append(tools, t)
	}
	return tools, nil
}

// GetLocalDeskTools spawns the ticketflow stdio server as a child process
// and returns its tools. The caller owns the returned client.
func GetLocalDeskTools(ctx context.Context, binary string) (*MCPClient, []Tool, error) {
	cli, err := NewMCPClient(MCPConfig{
		Type:    MCPTypeStdio,
		Command: binary,
		Args:    []string{"mcp"},
	})
	if err != nil {
		return nil, nil, err
	}
	if err := cli.Start(ctx); err != nil {
		return nil, nil, err
	}
	tools, err := cli.GetTools(ctx)
	if err != nil {
		cli.Close()
		return nil, nil, err
	}
	return cli, tools, nil
}

// GetRemoteDeskTools connects to the SSE bridge and returns its tools.
// The caller owns the returned client.
func GetRemoteDeskTools(ctx context.Context, sseURL string) (*MCPClient, []Tool, error) {
	cli, err := NewMCPClient(MCPConfig{
		Type:   MCPTypeSSE,
		SSEURL: sseURL,
	})
	if err != nil {
		return nil, nil, err
	}
	if err := cli.Start(ctx); err != nil {
		return nil, nil, errors.Wrapf(err, "connect to MCP bridge at %s", sseURL)
	}
	tools, err := cli.GetTools(ctx)
	if err != nil {
		cli.Close()
		return nil, nil, err
	}
	return cli, tools, nil
}
