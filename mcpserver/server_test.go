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
	"bufio"
	"context"
	"encoding/json"
	"io"
	stdlog "log"
	"testing"
	"time"

	"github.com/mark3labs/mcp-go/server"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fanjia1024/ticketflow/desk"
)

func sendAndRecv(t *testing.T, request any, stdinWriter *io.PipeWriter, stdoutReader *bufio.Scanner) map[string]any {
	requestBytes, err := json.Marshal(request)
	require.NoError(t, err)
	_, err = stdinWriter.Write(append(requestBytes, '\n'))
	require.NoError(t, err)

	if !stdoutReader.Scan() {
		t.Fatal("failed to read response")
	}
	var response map[string]any
	require.NoError(t, json.Unmarshal(stdoutReader.Bytes(), &response))
	return response
}

func TestDeskServerStdio(t *testing.T) {
	store := desk.NewStore()
	svr := NewServer(ServerOptions{
		ServerName:    "ticketflow-desk",
		ServerVersion: "1.0.0",
		Config:        store,
		Tickets:       store,
	})

	stdinReader, stdinWriter := io.Pipe()
	stdoutReader, stdoutWriter := io.Pipe()

	stdioServer := server.NewStdioServer(svr.Server)
	stdioServer.SetErrorLogger(stdlog.New(io.Discard, "", 0))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	serverErrCh := make(chan error, 1)
	go func() {
		err := stdioServer.Listen(ctx, stdinReader, stdoutWriter)
		if err != nil && err != io.EOF && err != context.Canceled {
			serverErrCh <- err
		}
		stdoutWriter.Close()
		close(serverErrCh)
	}()

	time.Sleep(100 * time.Millisecond)
	out := bufio.NewScanner(stdoutReader)

	initRequest := map[string]any{
		"jsonrpc": "2.0",
		"id":      1,
		"method":  "initialize",
		"params": map[string]any{
			"protocolVersion": "2024-11-05",
			"clientInfo": map[string]any{
				"name":    "test-client",
				"version": "1.0.0",
			},
		},
	}
	resp := sendAndRecv(t, initRequest, stdinWriter, out)
	require.Nil(t, resp["error"], "initialize failed: %v", resp["error"])

	listRequest := map[string]any{
		"jsonrpc": "2.0",
		"id":      2,
		"method":  "tools/list",
	}
	resp = sendAndRecv(t, listRequest, stdinWriter, out)
	require.Nil(t, resp["error"])
	tools := resp["result"].(map[string]any)["tools"].([]any)
	names := make(map[string]bool, len(tools))
	for _, tl := range tools {
		names[tl.(map[string]any)["name"].(string)] = true
	}
	for _, want := range []string{ToolGetConfig, ToolUpdateConfig, ToolGetTicket, ToolUpdateTicket} {
		assert.True(t, names[want], "missing tool %s", want)
	}

	callRequest := map[string]any{
		"jsonrpc": "2.0",
		"id":      3,
		"method":  "tools/call",
		"params": map[string]any{
			"name":      ToolGetConfig,
			"arguments": map[string]any{"key": "theme"},
		},
	}
	resp = sendAndRecv(t, callRequest, stdinWriter, out)
	require.Nil(t, resp["error"])
	content := resp["result"].(map[string]any)["content"].([]any)
	require.NotEmpty(t, content)
	text := content[0].(map[string]any)["text"].(string)
	assert.Contains(t, text, "dark")

	cancel()
	stdinWriter.Close()

	if err := <-serverErrCh; err != nil {
		t.Errorf("unexpected server error: %v", err)
	}
}

func TestTicketOnlyServer(t *testing.T) {
	svr := NewServer(ServerOptions{
		ServerName:    "ticketflow-bridge",
		ServerVersion: "1.0.0",
		Tickets:       desk.NewStore(),
	})
	assert.NotNil(t, svr.Server)
}
