package cli

import (
	"time"

	"scriptpad/internal/store"

	"github.com/spf13/cobra"
)

func newStatusCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show local store status",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := openPad(cmd, app)
			if err != nil {
				return writeErr(cmd, err)
			}
			s := p.Store()
			ctx := cmdContext(cmd)

			keys, err := s.Keys(ctx)
			if err != nil {
				return writeErr(cmd, err)
			}
			var updatedAt any
			if t, ok, err := s.UpdatedAt(ctx, store.FilesKey); err != nil {
				return writeErr(cmd, err)
			} else if ok {
				updatedAt = t.UTC().Format(time.RFC3339)
			}
			configPath, _ := store.ConfigPath()

			return writeOut(cmd, app, map[string]any{
				"data": map[string]any{
					"dir":          s.Dir,
					"db":           s.SQLitePath(),
					"config":       configPath,
					"files":        p.Len(),
					"keys":         keys,
					"updatedAt":    updatedAt,
					"runTimeoutMs": app.cfg.RunTimeout().Milliseconds(),
				},
			})
		},
	}
	return cmd
}
