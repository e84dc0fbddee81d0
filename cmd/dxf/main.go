package main

import (
	"fmt"
	"os"
	"time"

	"github.com/briandowns/spinner"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/xyproto/env/v2"

	dxfio "github.com/hailam/dxfio"
	"github.com/hailam/dxfio/internal/export"
)

// Variables to hold flag values
var outputPath string
var versionName string

func main() {
	var rootCmd = &cobra.Command{
		Use:   "dxf",
		Short: "Inspect, convert, and export ASCII DXF drawings.",
		Long: `dxf is a CLI tool around the dxfio library. It loads ASCII DXF drawings
and can summarize their contents, re-save them for another drawing version,
plot their geometry to PDF, or write an inventory workbook.`,
	}

	rootCmd.AddCommand(newInfoCmd(), newConvertCmd(), newPdfCmd(), newReportCmd())

	if err := rootCmd.Execute(); err != nil {
		// Cobra prints errors automatically, but we exit non-zero
		os.Exit(1)
	}
}

func loadWithSpinner(path, verb string) (*dxfio.Drawing, error) {
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond)
	s.Prefix = fmt.Sprintf("%s %s... ", verb, path)
	s.Start()
	drawing, err := dxfio.LoadFile(path)
	s.Stop()
	return drawing, err
}

func newInfoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "info <drawing.dxf>",
		Short: "Print a summary of a drawing.",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			drawing, err := dxfio.LoadFile(args[0])
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error loading drawing: %v\n", err)
				os.Exit(1)
			}

			heading := color.New(color.FgCyan, color.Bold)
			heading.Printf("%s\n", args[0])
			fmt.Printf("Version:    %s\n", drawing.Header.Version)
			fmt.Printf("Layers:     %d\n", len(drawing.Layers))
			fmt.Printf("Line types: %d\n", len(drawing.LineTypes))
			fmt.Printf("Entities:   %d\n", len(drawing.Entities))

			counts := map[string]int{}
			order := []string{}
			for _, e := range drawing.Entities {
				name := e.TypeString()
				if counts[name] == 0 {
					order = append(order, name)
				}
				counts[name]++
			}
			for _, name := range order {
				fmt.Printf("  %-10s %d\n", name, counts[name])
			}
		},
	}
}

func newConvertCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "convert <in.dxf>",
		Short: "Re-save a drawing, optionally retargeting the drawing version.",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			if outputPath == "" {
				fmt.Fprintln(os.Stderr, "Error: output path flag --output is required")
				cmd.Usage()
				os.Exit(1)
			}

			drawing, err := loadWithSpinner(args[0], "Loading")
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error loading drawing: %v\n", err)
				os.Exit(1)
			}

			if versionName != "" {
				version, err := dxfio.ParseVersionName(versionName)
				if err != nil {
					fmt.Fprintf(os.Stderr, "Error: %v\n", err)
					os.Exit(1)
				}
				drawing.Header.Version = version
			}

			if err := drawing.SaveFile(outputPath); err != nil {
				fmt.Fprintf(os.Stderr, "Error saving drawing: %v\n", err)
				os.Exit(1)
			}
			fmt.Printf("Successfully wrote %s (%s)\n", outputPath, drawing.Header.Version)
		},
	}
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Path to the output file (required)")
	// DXF_OUT_VERSION provides the default; the flag overrides it
	cmd.Flags().StringVarP(&versionName, "dxf-version", "V", env.Str("DXF_OUT_VERSION", ""), "Target drawing version (e.g. R12, R2000)")
	return cmd
}

func newPdfCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pdf <in.dxf>",
		Short: "Plot a drawing's geometry to a PDF page.",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			if outputPath == "" {
				fmt.Fprintln(os.Stderr, "Error: output path flag --output is required")
				cmd.Usage()
				os.Exit(1)
			}
			drawing, err := loadWithSpinner(args[0], "Plotting")
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error loading drawing: %v\n", err)
				os.Exit(1)
			}
			if err := export.RenderPDF(drawing, outputPath); err != nil {
				fmt.Fprintf(os.Stderr, "Error rendering PDF: %v\n", err)
				os.Exit(1)
			}
			fmt.Printf("Successfully wrote %s\n", outputPath)
		},
	}
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Path to the output file (required)")
	return cmd
}

func newReportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report <in.dxf>",
		Short: "Write an XLSX inventory of a drawing's layers and entities.",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			if outputPath == "" {
				fmt.Fprintln(os.Stderr, "Error: output path flag --output is required")
				cmd.Usage()
				os.Exit(1)
			}
			drawing, err := loadWithSpinner(args[0], "Reporting")
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error loading drawing: %v\n", err)
				os.Exit(1)
			}
			if err := export.WriteWorkbook(drawing, outputPath); err != nil {
				fmt.Fprintf(os.Stderr, "Error writing workbook: %v\n", err)
				os.Exit(1)
			}
			fmt.Printf("Successfully wrote %s\n", outputPath)
		},
	}
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Path to the output file (required)")
	return cmd
}
