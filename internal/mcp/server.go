// Copyright 2025 Agentic World, LLC (Sherin Thomas)
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package mcp

import (
	"net/http"

	"github.com/agentberlin/yellowsnake/internal/app"
	"github.com/agentberlin/yellowsnake/internal/types"
	"github.com/agentberlin/yellowsnake/internal/version"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"
)

// ServerName is the implementation name reported to MCP clients
const ServerName = "yellowsnake"

// MCPServer exposes the directory scraper over the MCP protocol
type MCPServer struct {
	server *mcp.Server
	app    *app.App
	limits types.RunLimits
	logger *zap.Logger
}

// NewMCPServer creates an MCP server backed by a built App
func NewMCPServer(a *app.App, limits types.RunLimits) *MCPServer {
	mcpServer := mcp.NewServer(&mcp.Implementation{
		Name:    ServerName,
		Version: version.CurrentVersion,
	}, nil)

	s := &MCPServer{
		server: mcpServer,
		app:    a,
		limits: limits,
		logger: zap.L().Named("mcp"),
	}
	s.registerTools()

	s.logger.Debug("mcp server initialized")
	return s
}

// GetServer returns the internal MCP server instance
func (s *MCPServer) GetServer() *mcp.Server {
	return s.server
}

// Handler serves the MCP protocol over streamable HTTP
func (s *MCPServer) Handler() http.Handler {
	return mcp.NewStreamableHTTPHandler(
		func(req *http.Request) *mcp.Server {
			return s.server
		},
		nil,
	)
}
