package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"perch/internal/logging"
	"perch/internal/scanner"
)

func newQueueCommand(configFlag *string) *cobra.Command {
	return &cobra.Command{
		Use:   "queue",
		Short: "List pending candidate images in the source directory",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(configFlag)
			if err != nil {
				return err
			}

			scan := scanner.New(cfg.Paths.SourceDir, cfg.Paths.ArchiveDir, logging.NewNop())
			candidates, err := scan.LoadCandidates()
			if err != nil {
				return fmt.Errorf("scan source directory: %w", err)
			}

			out := cmd.OutOrStdout()
			if len(candidates) == 0 {
				fmt.Fprintf(out, "No pending images in %s\n", cfg.Paths.SourceDir)
				return nil
			}

			if !isTerminal() {
				for _, name := range candidates {
					fmt.Fprintln(out, name)
				}
				return nil
			}

			rows := make([][]string, 0, len(candidates))
			for i, name := range candidates {
				next := ""
				if i == 0 {
					next = "next"
				}
				rows = append(rows, []string{strconv.Itoa(i + 1), name, next})
			}
			fmt.Fprintln(out, renderTable(
				[]string{"#", "File", ""},
				rows,
				[]columnAlignment{alignRight, alignLeft, alignLeft},
			))
			fmt.Fprintf(out, "%d pending in %s\n", len(candidates), cfg.Paths.SourceDir)
			return nil
		},
	}
}

func isTerminal() bool {
	fd := os.Stdout.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
