package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"scriptpad/internal/model"
	"scriptpad/internal/store"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func newFilesCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "files",
		Aliases: []string{"file"},
		Short:   "Saved file commands",
	}
	cmd.AddCommand(newFilesListCmd(app))
	cmd.AddCommand(newFilesShowCmd(app))
	cmd.AddCommand(newFilesSaveCmd(app))
	cmd.AddCommand(newFilesRmCmd(app))
	cmd.AddCommand(newFilesRenameCmd(app))
	cmd.AddCommand(newFilesExportCmd(app))
	cmd.AddCommand(newFilesImportCmd(app))
	return cmd
}

type fileSummary struct {
	Index int    `json:"index" yaml:"index"`
	Name  string `json:"name" yaml:"name"`
	Bytes int    `json:"bytes" yaml:"bytes"`
}

func newFilesListCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List saved files (newest first)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := openPad(cmd, app)
			if err != nil {
				return writeErr(cmd, err)
			}
			out := make([]fileSummary, 0, p.Len())
			for i, f := range p.Files() {
				out = append(out, fileSummary{Index: i, Name: f.Name, Bytes: len(f.Content)})
			}
			return writeOut(cmd, app, map[string]any{"data": out})
		},
	}
	return cmd
}

func newFilesShowCmd(app *App) *cobra.Command {
	var raw bool

	cmd := &cobra.Command{
		Use:   "show <name>",
		Short: "Show a saved file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := openPad(cmd, app)
			if err != nil {
				return writeErr(cmd, err)
			}
			f, ok := p.Get(args[0])
			if !ok {
				return writeErr(cmd, errNotFound("file", args[0]))
			}
			if raw {
				_, err := io.WriteString(cmd.OutOrStdout(), f.Content)
				return err
			}
			return writeOut(cmd, app, map[string]any{"data": f})
		},
	}

	cmd.Flags().BoolVar(&raw, "raw", false, "Print only the file content")
	return cmd
}

func newFilesSaveCmd(app *App) *cobra.Command {
	var content string
	var from string

	cmd := &cobra.Command{
		Use:   "save <name>",
		Short: "Create or replace a saved file (content from --content, --from or stdin)",
		Long: strings.TrimSpace(`
Saves a file the same way the screen's Save does: an existing name has its
content replaced in place, a new name is added at the top of the list.
`),
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := readSource(cmd, content, cmd.Flags().Changed("content"), from)
			if err != nil {
				return writeErr(cmd, err)
			}
			p, err := openPad(cmd, app)
			if err != nil {
				return writeErr(cmd, err)
			}
			p.SetDraft(model.File{Name: strings.TrimSpace(args[0]), Content: src})
			created, err := p.Save(cmdContext(cmd))
			if err != nil {
				return writeErr(cmd, err)
			}
			name := p.Draft().Name
			return writeOut(cmd, app, map[string]any{"data": map[string]any{
				"name":    name,
				"created": created,
				"index":   p.Index(name),
				"count":   p.Len(),
			}})
		},
	}

	cmd.Flags().StringVar(&content, "content", "", "File content")
	cmd.Flags().StringVar(&from, "from", "", "Read content from a path (\"-\" for stdin)")
	return cmd
}

func newFilesRmCmd(app *App) *cobra.Command {
	var index int

	cmd := &cobra.Command{
		Use:     "rm [name]",
		Aliases: []string{"delete"},
		Short:   "Delete a saved file by name or --index",
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			byIndex := cmd.Flags().Changed("index")
			if byIndex == (len(args) == 1) {
				return writeErr(cmd, errUsage("pass exactly one of <name> or --index"))
			}
			p, err := openPad(cmd, app)
			if err != nil {
				return writeErr(cmd, err)
			}
			ctx := cmdContext(cmd)

			var removed model.File
			if byIndex {
				removed, err = p.Delete(ctx, index)
			} else {
				removed, err = p.DeleteNamed(ctx, args[0])
			}
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]any{
				"removed": removed.Name,
				"count":   p.Len(),
			}})
		},
	}

	cmd.Flags().IntVar(&index, "index", -1, "Position in the list (0 = top)")
	return cmd
}

func newFilesRenameCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rename <old> <new>",
		Short: "Rename a saved file",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := openPad(cmd, app)
			if err != nil {
				return writeErr(cmd, err)
			}
			newName := strings.TrimSpace(args[1])
			if err := p.Rename(cmdContext(cmd), args[0], newName); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]any{
				"from":  args[0],
				"to":    newName,
				"index": p.Index(newName),
			}})
		},
	}
	return cmd
}

func newFilesExportCmd(app *App) *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the whole collection as a JSON array (the import format)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := openPad(cmd, app)
			if err != nil {
				return writeErr(cmd, err)
			}
			files := p.Files()

			var b []byte
			if app.PrettyJSON {
				b, err = json.MarshalIndent(files, "", "  ")
			} else {
				var s string
				s, err = store.EncodeFiles(files)
				b = []byte(s)
			}
			if err != nil {
				return writeErr(cmd, err)
			}
			b = append(b, '\n')

			if out == "" || out == "-" {
				_, err := cmd.OutOrStdout().Write(b)
				return err
			}
			if err := os.WriteFile(out, b, 0o644); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]any{
				"path":  out,
				"count": len(files),
			}})
		},
	}

	cmd.Flags().StringVar(&out, "out", "", "Write to a path instead of stdout")
	return cmd
}

func newFilesImportCmd(app *App) *cobra.Command {
	var replace bool

	cmd := &cobra.Command{
		Use:   "import <path>",
		Short: "Import files from a JSON or YAML array (\"-\" for stdin)",
		Long: strings.TrimSpace(`
Each imported file is saved like the screen's Save: existing names are
replaced in place, new names are added on top in the order given.
With --replace the stored collection is replaced instead.
`),
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := readPathOrStdin(cmd, args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			files, err := parseImport(b, args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			p, err := openPad(cmd, app)
			if err != nil {
				return writeErr(cmd, err)
			}
			created, err := p.Import(cmdContext(cmd), files, replace)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]any{
				"imported": len(files),
				"created":  created,
				"count":    p.Len(),
			}})
		},
	}

	cmd.Flags().BoolVar(&replace, "replace", false, "Replace the stored collection")
	return cmd
}

// parseImport accepts a bare array or a {"data": [...]} envelope, as JSON or
// (by extension, or when JSON fails) YAML.
func parseImport(b []byte, path string) ([]model.File, error) {
	type envelope struct {
		Data []model.File `json:"data" yaml:"data"`
	}
	trimmed := strings.TrimSpace(string(b))
	if trimmed == "" {
		return nil, errUsage("import: %s is empty", path)
	}

	ext := strings.ToLower(filepath.Ext(path))
	if ext != ".yaml" && ext != ".yml" {
		if strings.HasPrefix(trimmed, "{") {
			var env envelope
			if err := json.Unmarshal(b, &env); err == nil {
				return env.Data, nil
			}
		} else {
			var files []model.File
			if err := json.Unmarshal(b, &files); err == nil {
				return files, nil
			}
		}
	}

	var files []model.File
	if err := yaml.Unmarshal(b, &files); err == nil {
		return files, nil
	}
	var env envelope
	if err := yaml.Unmarshal(b, &env); err != nil {
		return nil, fmt.Errorf("import: parse %s: %w", path, err)
	}
	return env.Data, nil
}

// readSource resolves script text from an explicit value, a path, or stdin.
func readSource(cmd *cobra.Command, value string, hasValue bool, from string) (string, error) {
	if hasValue && from != "" {
		return "", errUsage("pass only one of --content or --from")
	}
	if hasValue {
		return value, nil
	}
	if from == "" {
		from = "-"
	}
	b, err := readPathOrStdin(cmd, from)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func readPathOrStdin(cmd *cobra.Command, path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(cmd.InOrStdin())
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return b, nil
}
