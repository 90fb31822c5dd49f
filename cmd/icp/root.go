package main

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/BerylCAtieno/icp-generator/internal/logger"
	"github.com/BerylCAtieno/icp-generator/internal/presenter"
	"github.com/BerylCAtieno/icp-generator/internal/profiler"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

var (
	noticeTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#DC2626"))
	successStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#16A34A"))
	headerStyle      = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7C3AED"))
)

var errInputRequired = errors.New("input required")

type options struct {
	delay     time.Duration
	json      bool
	copy      bool
	download  string
	verbose   bool
	clipboard presenter.Clipboard
}

func defaultOptions() *options {
	return &options{
		delay:     profiler.DefaultDelay,
		clipboard: presenter.SystemClipboard{},
	}
}

func newRootCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "icp [description]",
		Short: "Generate an Ideal Customer Profile from a product description",
		Long: `icp classifies a product or service description and prints an Ideal
Customer Profile with personas, prospecting filter logic, sample keywords
and intent signals. The description is read from the arguments, or from
stdin when no arguments are given.`,
		Example: `  icp "AI-powered LinkedIn outreach tool for B2B SaaS founders"
  echo "Our B2B SaaS platform helps growth teams" | icp --json
  icp --download . "A generic productivity app"`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(cmd, opts, args)
		},
	}

	flags := cmd.Flags()
	flags.DurationVar(&opts.delay, "delay", opts.delay, "simulated processing delay before the profile is shown")
	flags.BoolVar(&opts.json, "json", false, "print the raw JSON instead of the structured breakdown")
	flags.BoolVar(&opts.copy, "copy", false, "copy the JSON to the clipboard")
	flags.StringVar(&opts.download, "download", "", "write "+presenter.DownloadFilename+" into this directory")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "log classification details to stderr")

	return cmd
}

// execute runs cmd and returns the exit code. errInputRequired has already
// been reported by the styled notice.
func execute(cmd *cobra.Command) int {
	err := cmd.Execute()
	if err == nil {
		return 0
	}
	if !errors.Is(err, errInputRequired) {
		fmt.Fprintln(cmd.ErrOrStderr(), err)
	}
	return 1
}

func runGenerate(cmd *cobra.Command, opts *options, args []string) error {
	out := cmd.OutOrStdout()

	description, err := readDescription(cmd.InOrStdin(), args)
	if err != nil {
		return err
	}

	log := logger.NewNoOpLogger()
	if opts.verbose {
		log = logger.NewStructured("debug", "console")
		defer log.Sync()
	}

	generator := profiler.NewTemplateGenerator(opts.delay, log)
	resp, err := generator.GenerateCustomerProfile(cmd.Context(), description)
	if errors.Is(err, profiler.ErrEmptyDescription) {
		fmt.Fprintln(cmd.ErrOrStderr(), noticeTitleStyle.Render("Input Required"))
		fmt.Fprintln(cmd.ErrOrStderr(), "Please describe your product or service first.")
		return errInputRequired
	}
	if err != nil {
		return err
	}

	if opts.json {
		rendered, err := presenter.Render(resp.Profile, presenter.ViewJSON)
		if err != nil {
			return err
		}
		fmt.Fprintln(out, rendered)
	} else {
		fmt.Fprintln(out, headerStyle.Render("Your Ideal Customer Profile"))
		fmt.Fprintln(out, presenter.RenderTerminal(resp.Profile))
	}

	if opts.copy {
		if err := presenter.Copy(resp.Profile, opts.clipboard); err != nil {
			return err
		}
		fmt.Fprintln(cmd.ErrOrStderr(), successStyle.Render("Copied JSON to clipboard"))
	}

	if opts.download != "" {
		path, err := presenter.WriteDownload(opts.download, resp.Profile)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.ErrOrStderr(), successStyle.Render("Saved "+path))
	}

	return nil
}

func readDescription(in io.Reader, args []string) (string, error) {
	if len(args) > 0 {
		return strings.Join(args, " "), nil
	}
	if in == nil {
		return "", nil
	}
	data, err := io.ReadAll(in)
	if err != nil {
		return "", fmt.Errorf("read description from stdin: %w", err)
	}
	return string(data), nil
}
