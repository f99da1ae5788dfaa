package rpc

import (
	"encoding/json"
	"fmt"

	"cdb/internal/compdb"
)

// registerTools wires up the query tools.
func (s *Server) registerTools() {
	s.registerTool(ToolDefinition{
		Name:        "get_compile_options",
		Description: "Resolve the compiler flags for a source file from its compilation database",
		InputSchema: map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"file": map[string]interface{}{
					"type":        "string",
					"description": "Absolute path of the source file",
				},
				"searchStart": map[string]interface{}{
					"type":        "string",
					"description": "Optional directory where the database search begins",
				},
			},
			"required": []string{"file"},
		},
	}, s.handleGetCompileOptions)

	s.registerTool(ToolDefinition{
		Name:        "locate_database",
		Description: "Find the compilation database governing a source file",
		InputSchema: map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"file": map[string]interface{}{
					"type":        "string",
					"description": "Absolute path of the source file",
				},
			},
			"required": []string{"file"},
		},
	}, s.handleLocateDatabase)

	s.registerTool(ToolDefinition{
		Name:        "list_entries",
		Description: "Dump the normalized entries of a compilation database",
		InputSchema: map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"database": map[string]interface{}{
					"type":        "string",
					"description": "Path of the database file; mutually exclusive with file",
				},
				"file": map[string]interface{}{
					"type":        "string",
					"description": "A source file whose governing database should be dumped",
				},
			},
		},
	}, s.handleListEntries)
}

type getCompileOptionsArgs struct {
	File        string `json:"file"`
	SearchStart string `json:"searchStart"`
}

func (s *Server) handleGetCompileOptions(args json.RawMessage) (interface{}, error) {
	var req getCompileOptionsArgs
	if err := json.Unmarshal(args, &req); err != nil {
		return nil, fmt.Errorf("invalid arguments: %w", err)
	}
	if req.File == "" {
		return nil, fmt.Errorf("file is required")
	}

	resolver, err := s.newResolver()
	if err != nil {
		return nil, err
	}
	result, err := resolver.Query(req.File, req.SearchStart)
	if err != nil {
		return nil, err
	}
	return result, nil
}

type locateDatabaseArgs struct {
	File string `json:"file"`
}

// locateDatabaseResult mirrors the CLI locate output.
type locateDatabaseResult struct {
	Database string        `json:"database,omitempty"`
	Origin   compdb.Origin `json:"origin"`
}

func (s *Server) handleLocateDatabase(args json.RawMessage) (interface{}, error) {
	var req locateDatabaseArgs
	if err := json.Unmarshal(args, &req); err != nil {
		return nil, fmt.Errorf("invalid arguments: %w", err)
	}
	if req.File == "" {
		return nil, fmt.Errorf("file is required")
	}

	resolver, err := s.newResolver()
	if err != nil {
		return nil, err
	}
	database, origin := resolver.Locate(req.File)
	return &locateDatabaseResult{Database: database, Origin: origin}, nil
}

type listEntriesArgs struct {
	Database string `json:"database"`
	File     string `json:"file"`
}

type listEntriesResult struct {
	Database string          `json:"database"`
	Entries  []*compdb.Entry `json:"entries"`
}

func (s *Server) handleListEntries(args json.RawMessage) (interface{}, error) {
	var req listEntriesArgs
	if err := json.Unmarshal(args, &req); err != nil {
		return nil, fmt.Errorf("invalid arguments: %w", err)
	}

	resolver, err := s.newResolver()
	if err != nil {
		return nil, err
	}

	database := req.Database
	if database == "" {
		if req.File == "" {
			return nil, fmt.Errorf("either database or file is required")
		}
		found, origin := resolver.Locate(req.File)
		if origin == compdb.OriginNone {
			return &listEntriesResult{}, nil
		}
		database = found
	}

	db, err := resolver.Load(database)
	if err != nil {
		return nil, err
	}
	return &listEntriesResult{Database: database, Entries: db}, nil
}
