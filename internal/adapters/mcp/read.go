package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"shoebox/internal/application"
	"shoebox/internal/application/commands"
	"shoebox/internal/domain"
	"shoebox/internal/ports"
)

// Tools bundles the adapters and limits the MCP tools operate with.
type Tools struct {
	Library     ports.Library
	Reader      ports.MetadataReader
	Cache       ports.MetadataCache
	FS          ports.FileSystem
	Concurrency int
	MaxNameLen  int
}

// RegisterReadTools adds the read-only photo tools to the MCP server.
func RegisterReadTools(s *server.MCPServer, t Tools) {
	s.AddTool(listFoldersTool(), listFoldersHandler(t))
	s.AddTool(scanFolderTool(), scanFolderHandler(t))
	s.AddTool(inspectPhotoTool(), inspectPhotoHandler(t))
	s.AddTool(searchPhotosTool(), searchPhotosHandler(t))
}

// --- list_folders ---

type folderEntry struct {
	Name       string        `json:"name"`
	Path       string        `json:"path"`
	MediaCount int           `json:"media_count"`
	Folders    []folderEntry `json:"folders,omitempty"`
}

func listFoldersTool() mcp.Tool {
	return mcp.NewTool("list_folders",
		mcp.WithDescription("List the folder tree under a directory with the number of media files in each folder."),
		mcp.WithString("path",
			mcp.Description("Directory to list"),
			mcp.Required(),
		),
		mcp.WithNumber("depth",
			mcp.Description("How many levels to descend (default 2)"),
		),
	)
}

func listFoldersHandler(t Tools) server.ToolHandlerFunc {
	return func(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		path := req.GetString("path", "")
		if path == "" {
			return toolError(fmt.Errorf("path is required"))
		}
		depth := req.GetInt("depth", 2)

		root, err := t.Library.BuildTree(path, depth)
		if err != nil {
			return toolError(err)
		}
		return jsonResult(folderTree(root))
	}
}

func folderTree(node *domain.FolderNode) folderEntry {
	entry := folderEntry{
		Name:       node.Name,
		Path:       node.Path,
		MediaCount: node.MediaCount,
	}
	for _, child := range node.Children {
		entry.Folders = append(entry.Folders, folderTree(child))
	}
	return entry
}

// --- scan_folder ---

type photoEntry struct {
	Path       string `json:"path"`
	Label      string `json:"label,omitempty"`
	TakenAt    string `json:"taken_at,omitempty"`
	ModifiedAt string `json:"modified_at,omitempty"`
}

type scanResult struct {
	Folder     string       `json:"folder"`
	Total      int          `json:"total"`
	Labeled    int          `json:"labeled"`
	FromCache  int          `json:"from_cache,omitempty"`
	Unreadable int          `json:"unreadable,omitempty"`
	Photos     []photoEntry `json:"photos"`
	Errors     []string     `json:"errors,omitempty"`
}

func scanFolderTool() mcp.Tool {
	return mcp.NewTool("scan_folder",
		mcp.WithDescription("Read the metadata of every media file in a folder and return the derived labels and dates."),
		mcp.WithString("path",
			mcp.Description("Folder to scan"),
			mcp.Required(),
		),
	)
}

func scanFolderHandler(t Tools) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		path := req.GetString("path", "")
		if path == "" {
			return toolError(fmt.Errorf("path is required"))
		}

		indexed, err := scanFolder(ctx, t, path)
		if err != nil {
			return toolError(err)
		}

		result := scanResult{
			Folder:     path,
			Total:      len(indexed.Photos),
			FromCache:  indexed.FromCache,
			Unreadable: indexed.Unreadable,
			Photos:     make([]photoEntry, 0, len(indexed.Photos)),
			Errors:     indexed.Errors,
		}
		for _, p := range indexed.Photos {
			if p.HasLabel() {
				result.Labeled++
			}
			result.Photos = append(result.Photos, photoEntry{
				Path:       p.Path,
				Label:      p.Label,
				TakenAt:    formatTime(p.TakenAt),
				ModifiedAt: formatTime(p.ModifiedAt),
			})
		}
		return jsonResult(result)
	}
}

// scanFolder indexes one folder through the shared admission gate.
func scanFolder(ctx context.Context, t Tools, dir string) (*commands.IndexResult, error) {
	gate := application.NewGate(t.Concurrency)
	return commands.NewIndexFolderCommand(t.Library, t.Reader, t.Cache, gate, dir).Execute(ctx)
}

// --- inspect_photo ---

type sectionEntry struct {
	Name  string            `json:"name"`
	Tags  map[string]string `json:"tags,omitempty"`
	Props map[string]string `json:"props,omitempty"`
}

type inspectResult struct {
	Path       string         `json:"path"`
	Label      string         `json:"label,omitempty"`
	TakenAt    string         `json:"taken_at,omitempty"`
	ModifiedAt string         `json:"modified_at,omitempty"`
	RenamesTo  string         `json:"renames_to,omitempty"`
	Sections   []sectionEntry `json:"sections"`
}

func inspectPhotoTool() mcp.Tool {
	return mcp.NewTool("inspect_photo",
		mcp.WithDescription("Show the raw metadata sections of one file together with the label and dates derived from them."),
		mcp.WithString("path",
			mcp.Description("File to inspect"),
			mcp.Required(),
		),
	)
}

func inspectPhotoHandler(t Tools) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		path := req.GetString("path", "")
		if path == "" {
			return toolError(fmt.Errorf("path is required"))
		}

		sections, err := t.Reader.ReadMetadata(ctx, path)
		if err != nil {
			return toolError(err)
		}
		derived, err := domain.Derive(sections)
		if err != nil {
			return toolError(err)
		}

		result := inspectResult{
			Path:       path,
			Label:      derived.Label,
			TakenAt:    formatTime(derived.TakenAt),
			ModifiedAt: formatTime(derived.ModifiedAt),
			Sections:   make([]sectionEntry, 0, len(sections)),
		}
		if derived.Label != "" {
			name, err := domain.BuildFileName(derived.Label, domain.NameOptions{
				Extension: filepath.Ext(path),
				MaxLength: t.MaxNameLen,
			})
			if err != nil {
				return toolError(err)
			}
			if name != filepath.Base(path) {
				result.RenamesTo = name
			}
		}
		for _, s := range sections {
			result.Sections = append(result.Sections, sectionEntry{
				Name:  s.Name,
				Tags:  tagStrings(s.Tags),
				Props: s.Props,
			})
		}
		return jsonResult(result)
	}
}

// tagStrings flattens tag values for display, preferring the human-readable
// rendering over the raw value.
func tagStrings(tags map[string]domain.TagValue) map[string]string {
	if len(tags) == 0 {
		return nil
	}
	out := make(map[string]string, len(tags))
	for name, v := range tags {
		if v.Description != "" {
			out[name] = v.Description
		} else {
			out[name] = fmt.Sprint(v.Raw)
		}
	}
	return out
}

// --- search_photos ---

type searchMatch struct {
	photoEntry
	Score int `json:"score"`
}

type searchResponse struct {
	Folder  string        `json:"folder"`
	Query   string        `json:"query"`
	Matches []searchMatch `json:"matches"`
}

func searchPhotosTool() mcp.Tool {
	return mcp.NewTool("search_photos",
		mcp.WithDescription("Fuzzy-search the labels and file names of a folder's media files. The query needs at least two characters."),
		mcp.WithString("path",
			mcp.Description("Folder to search in"),
			mcp.Required(),
		),
		mcp.WithString("query",
			mcp.Description("Search query"),
			mcp.Required(),
		),
	)
}

func searchPhotosHandler(t Tools) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		path := req.GetString("path", "")
		query := req.GetString("query", "")
		if path == "" {
			return toolError(fmt.Errorf("path is required"))
		}
		if query == "" {
			return toolError(fmt.Errorf("query is required"))
		}

		indexed, err := scanFolder(ctx, t, path)
		if err != nil {
			return toolError(err)
		}
		matches, err := commands.NewSearchPhotosCommand(indexed.Photos, query).Execute(ctx)
		if err != nil {
			return toolError(err)
		}

		result := searchResponse{
			Folder:  path,
			Query:   query,
			Matches: make([]searchMatch, 0, len(matches)),
		}
		for _, m := range matches {
			result.Matches = append(result.Matches, searchMatch{
				photoEntry: photoEntry{
					Path:    m.Path,
					Label:   m.Label,
					TakenAt: formatTime(m.TakenAt),
				},
				Score: m.Score,
			})
		}
		return jsonResult(result)
	}
}

// --- helpers ---

func toolError(err error) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultError(err.Error()), nil
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return toolError(err)
	}
	return mcp.NewToolResultText(string(data)), nil
}

func formatTime(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(time.RFC3339)
}
