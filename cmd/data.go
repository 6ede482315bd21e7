package cmd

import (
	"io"
	"os"

	"github.com/dorapulse/dorapulse/internal/usecase"
	"github.com/samber/do"
	"github.com/spf13/cobra"
)

var dataFlags struct {
	format string
	file   string
}

var exportCmd = &cobra.Command{
	Use:          "export",
	Short:        "Export all recorded data as a single document",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		injector, err := newInjector(ctx, loadConfig())
		if err != nil {
			return err
		}

		uc := do.MustInvoke[usecase.ExportDataUsecase](injector)
		payload, err := uc.Execute(ctx, dataFlags.format)
		if err != nil {
			return err
		}

		out := os.Stdout
		if dataFlags.file != "" {
			f, err := os.Create(dataFlags.file)
			if err != nil {
				return err
			}
			defer f.Close()
			out = f
		}
		_, err = out.Write(payload)
		return err
	},
}

var importCmd = &cobra.Command{
	Use:          "import [file]",
	Short:        "Import a previously exported document, replacing current state",
	Args:         cobra.MaximumNArgs(1),
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		injector, err := newInjector(ctx, loadConfig())
		if err != nil {
			return err
		}

		var payload []byte
		if len(args) == 1 {
			payload, err = os.ReadFile(args[0])
		} else {
			payload, err = io.ReadAll(os.Stdin)
		}
		if err != nil {
			return err
		}

		uc := do.MustInvoke[usecase.ImportDataUsecase](injector)
		return uc.Execute(ctx, payload, dataFlags.format)
	},
}

func init() {
	for _, cmd := range []*cobra.Command{exportCmd, importCmd} {
		cmd.Flags().StringVar(&dataFlags.format, "format", usecase.FormatJSON, "Data format (only json is supported)")
	}
	exportCmd.Flags().StringVarP(&dataFlags.file, "output", "o", "", "Write to file instead of stdout")
}
