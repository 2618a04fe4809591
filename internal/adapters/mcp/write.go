package mcp

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"shoebox/internal/application"
	"shoebox/internal/application/commands"
)

// RegisterWriteTools adds the renaming tools to the MCP server.
func RegisterWriteTools(s *server.MCPServer, t Tools) {
	s.AddTool(renameFolderTool(), renameFolderHandler(t))
}

// --- rename_folder ---

type renameEntry struct {
	From      string `json:"from"`
	To        string `json:"to"`
	Unchanged bool   `json:"unchanged,omitempty"`
}

type renamePlan struct {
	Folder  string        `json:"folder"`
	DryRun  bool          `json:"dry_run"`
	Renames []renameEntry `json:"renames"`
}

type renameOutcome struct {
	Folder  string   `json:"folder"`
	Total   int      `json:"total"`
	Renamed int      `json:"renamed"`
	Errors  []string `json:"errors,omitempty"`
}

func renameFolderTool() mcp.Tool {
	return mcp.NewTool("rename_folder",
		mcp.WithDescription("Rename every labeled media file in a folder to its metadata-derived name. Files without a label are left untouched."),
		mcp.WithString("path",
			mcp.Description("Folder whose files to rename"),
			mcp.Required(),
		),
		mcp.WithBoolean("add_sort_prefix",
			mcp.Description("Prefix names with a chronological ordinal like '1. ' (default true)"),
		),
		mcp.WithBoolean("dry_run",
			mcp.Description("Only report what would be renamed, change nothing (default false)"),
		),
	)
}

func renameFolderHandler(t Tools) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		path := req.GetString("path", "")
		if path == "" {
			return toolError(fmt.Errorf("path is required"))
		}
		addPrefix := req.GetBool("add_sort_prefix", true)
		dryRun := req.GetBool("dry_run", false)

		indexed, err := scanFolder(ctx, t, path)
		if err != nil {
			return toolError(err)
		}

		opts := commands.RenameOptions{
			AddSortPrefix: addPrefix,
			MaxNameLength: t.MaxNameLen,
		}
		cmd := commands.NewRenameFolderCommand(t.FS, application.NewGate(t.Concurrency), path, indexed.Photos, opts)

		if dryRun {
			entries, err := cmd.Plan()
			if err != nil {
				return toolError(err)
			}
			plan := renamePlan{Folder: path, DryRun: true, Renames: make([]renameEntry, 0, len(entries))}
			for _, e := range entries {
				plan.Renames = append(plan.Renames, renameEntry{
					From:      e.OldPath,
					To:        e.NewPath,
					Unchanged: !e.Renamed,
				})
			}
			return jsonResult(plan)
		}

		result, err := cmd.Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return jsonResult(renameOutcome{
			Folder:  path,
			Total:   result.TotalFiles,
			Renamed: result.FilesRenamed,
			Errors:  result.Errors,
		})
	}
}
