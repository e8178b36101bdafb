package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/xkilldash9x/framecast/api/schemas"
	"github.com/xkilldash9x/framecast/internal/compile"
	"github.com/xkilldash9x/framecast/internal/observability"
)

var (
	snapshotPath string
	outputPath   string
	reportPath   string
)

var compileCmd = &cobra.Command{
	Use:   "compile",
	Short: "Compile a captured snapshot into a paint-ordered render document.",
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := observability.GetLogger()

		in, err := os.Open(snapshotPath)
		if err != nil {
			return fmt.Errorf("opening snapshot: %w", err)
		}
		defer in.Close()

		doc, err := schemas.DecodeDocument(in)
		if err != nil {
			return err
		}
		logger.Info("Snapshot loaded",
			zap.String("path", snapshotPath), zap.Int("nodes", len(doc.Nodes)))

		compilerCfg := cfg.Compiler
		if reportPath != "" {
			compilerCfg.EmitReport = true
		}

		compiled, report, err := compile.New(compilerCfg, logger).Compile(cmd.Context(), doc)
		if err != nil {
			return err
		}
		logger.Info("Compilation complete",
			zap.Int("nodes", len(compiled.Nodes)),
			zap.Int("anomalies", len(compiled.Anomalies)))

		out, err := os.Create(outputPath)
		if err != nil {
			return fmt.Errorf("creating output: %w", err)
		}
		defer out.Close()
		if err := schemas.EncodeCompiled(out, compiled); err != nil {
			return err
		}

		if reportPath != "" && report != nil {
			rf, err := os.Create(reportPath)
			if err != nil {
				return fmt.Errorf("creating report: %w", err)
			}
			defer rf.Close()
			if err := schemas.EncodeReport(rf, report); err != nil {
				return err
			}
		}
		return nil
	},
}

func init() {
	compileCmd.Flags().StringVarP(&snapshotPath, "input", "i", "", "captured snapshot JSON (required)")
	compileCmd.Flags().StringVarP(&outputPath, "output", "o", "compiled.json", "compiled document destination")
	compileCmd.Flags().StringVar(&reportPath, "report", "", "write the diagnostic report to this path")
	_ = compileCmd.MarkFlagRequired("input")
	rootCmd.AddCommand(compileCmd)
}
