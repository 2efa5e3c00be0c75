// Package mcp converts a unified MCP (Model Context Protocol) server list
// into each agent's own configuration file and back.
//
// The unified file is mcp.json at the project root. Comments and
// trailing commas are allowed:
//
//	{
//	  // shared across agents
//	  "servers": {
//	    "github": {
//	      "command": "npx",
//	      "args": ["-y", "@modelcontextprotocol/server-github"],
//	      "env": {"GITHUB_TOKEN": "${GITHUB_TOKEN}"}
//	    },
//	    "docs": {"url": "https://docs.example.com/mcp", "type": "http"}
//	  }
//	}
//
// Most agents use the [Standard] shape under their own root key
// ("mcpServers" or "servers"). OpenCode uses the [OpenCode] shape under
// "mcp", with the command and its arguments in one array.
//
// Writing an agent file replaces only its root key. Other keys and
// comments in the file are kept.
package mcp
