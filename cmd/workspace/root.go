package main

import (
	"context"
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/talentforge/workspace/internal/api"
	"github.com/talentforge/workspace/internal/config"
	apierrors "github.com/talentforge/workspace/internal/errors"
	"github.com/talentforge/workspace/internal/files"
	"github.com/talentforge/workspace/internal/progress"
	"github.com/talentforge/workspace/internal/session"
	"github.com/talentforge/workspace/internal/workspace"
)

type rootOptions struct {
	projectID int64
	token     string
	username  string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:           "workspace",
		Short:         "Project workspace client for the talentforge marketplace",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().Int64Var(&opts.projectID, "project", 0, "project ID")
	root.PersistentFlags().StringVar(&opts.token, "token", os.Getenv("WORKSPACE_TOKEN"), "bearer token")
	root.PersistentFlags().StringVar(&opts.username, "user", os.Getenv("WORKSPACE_USER"), "signed-in username")

	root.AddCommand(
		newBoardCmd(opts),
		newProgressCmd(opts),
		newFilesCmd(opts),
		newUploadCmd(opts),
		newHistoryCmd(opts),
	)
	return root
}

// openWorkspace builds the client from config + flags and loads the project.
func openWorkspace(ctx context.Context, opts *rootOptions) (*workspace.Workspace, error) {
	if opts.projectID == 0 {
		return nil, fmt.Errorf("--project is required")
	}

	cfg := config.Load()
	logger := config.NewLogger(cfg)
	sess := session.New(opts.token, opts.username)
	client := api.NewClient(cfg.APIBaseURL, sess, cfg.RequestTimeout, logger)

	w, err := workspace.Open(ctx, client, cfg, opts.projectID, logger)
	if err != nil {
		return nil, fmt.Errorf("%s", apierrors.Humanize(err))
	}
	return w, nil
}

func newBoardCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "board",
		Short: "Print the kanban board",
		RunE: func(cmd *cobra.Command, args []string) error {
			w, err := openWorkspace(cmd.Context(), opts)
			if err != nil {
				return err
			}
			defer w.Close()

			for _, col := range w.Board() {
				fmt.Printf("%s (%d)\n", col.Title, len(col.Tasks))
				for _, t := range col.Tasks {
					marker := " "
					if t.IsOverdue(time.Now()) {
						marker = "!"
					}
					fmt.Printf("  %s #%d %s [%s]\n", marker, t.ID, t.Title, t.Priority)
				}
			}
			return nil
		},
	}
}

func newProgressCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "progress",
		Short: "Print workspace progress",
		RunE: func(cmd *cobra.Command, args []string) error {
			w, err := openWorkspace(cmd.Context(), opts)
			if err != nil {
				return err
			}
			defer w.Close()

			s := w.Progress()
			fmt.Printf("%s: %d%% complete (%s)\n", w.Project().Title, s.Percentage, s.Formula)
			fmt.Printf("tasks: %d/%d done, estimated hours: %.1f/%.1f, spent: %.1f\n",
				s.CompletedTasks, s.TotalTasks,
				s.CompletedEstimatedHours, s.TotalEstimatedHours, s.ActualHoursSpent)
			fmt.Printf("efficiency: %s\n", progress.Efficiency(s))
			return nil
		},
	}
}

func newFilesCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "files",
		Short: "List workspace files with grouped statistics",
		RunE: func(cmd *cobra.Command, args []string) error {
			w, err := openWorkspace(cmd.Context(), opts)
			if err != nil {
				return err
			}
			defer w.Close()

			for _, f := range w.Files().Files() {
				fmt.Printf("#%d %-40s %10d bytes  %s  (%s)\n",
					f.ID, f.FileName, f.Size, files.Categorize(f.FileName, f.FileType), f.UploaderUsername)
			}
			stats := w.Files().Stats()
			fmt.Printf("total: %d files, %d bytes\n", stats.Count, stats.TotalSize)
			for cat, cs := range stats.ByCategory {
				fmt.Printf("  %s: %d files, %d bytes\n", cat, cs.Count, cs.TotalSize)
			}
			return nil
		},
	}
}

func newUploadCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "upload <path>",
		Short: "Upload a file to the workspace",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			w, err := openWorkspace(cmd.Context(), opts)
			if err != nil {
				return err
			}
			defer w.Close()

			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()
			info, err := f.Stat()
			if err != nil {
				return err
			}

			events, err := w.Files().StartUpload(cmd.Context(), files.Upload{
				FileName: filepath.Base(args[0]),
				FileType: guessMIME(args[0]),
				Size:     info.Size(),
				Content:  f,
			})
			if err != nil {
				return fmt.Errorf("%s", apierrors.Humanize(err))
			}

			for ev := range events {
				if ev.Err != nil {
					return fmt.Errorf("%s", apierrors.Humanize(ev.Err))
				}
				if ev.Done {
					fmt.Printf("uploaded %s as #%d\n", ev.Attachment.FileName, ev.Attachment.ID)
				} else {
					fmt.Printf("\r%3d%%", ev.Percent)
				}
			}
			return nil
		},
	}
}

func newHistoryCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "history <task-id>",
		Short: "Print a task's audit trail",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var taskID int64
			if _, err := fmt.Sscanf(args[0], "%d", &taskID); err != nil {
				return fmt.Errorf("invalid task id %q", args[0])
			}

			w, err := openWorkspace(cmd.Context(), opts)
			if err != nil {
				return err
			}
			defer w.Close()

			entries, err := w.Tasks().History(cmd.Context(), taskID)
			if err != nil {
				return fmt.Errorf("%s", apierrors.Humanize(err))
			}
			for _, e := range entries {
				fmt.Printf("%s  %s changed %s from %q to %q\n",
					e.ChangedAt.Format("2006-01-02 15:04"), e.ChangedByUsername,
					e.FieldName, e.OldValue, e.NewValue)
			}
			return nil
		},
	}
}

func guessMIME(path string) string {
	if mt := mime.TypeByExtension(filepath.Ext(path)); mt != "" {
		return mt
	}
	return "application/octet-stream"
}
