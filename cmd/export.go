package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write lifetime statistics to a JSON report",
	RunE: func(cmd *cobra.Command, args []string) error {
		out, _ := cmd.Flags().GetString("out")

		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer func() { _ = st.Close() }()

		progressSvc, err := loadProgress(context.Background(), st)
		if err != nil {
			return err
		}

		if err := progressSvc.Export(out); err != nil {
			return fmt.Errorf("export progress: %w", err)
		}

		fmt.Println("Progress written to", out)
		return nil
	},
}

func init() {
	exportCmd.Flags().StringP("out", "o", "quizling-progress.json", "Output file path")
}
