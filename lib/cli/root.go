package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/nicolasacquaviva/cuerre-gen/lib"
	"github.com/spf13/cobra"
)

const (
	flagContent = "content"
	flagOut     = "out"
	flagError   = "error"
	flagBoxSize = "box-size"
	flagBorder  = "border"
	flagFill    = "fill"
	flagBack    = "back"
	flagVersion = "version"
	flagEngine  = "engine"
	flagVerify  = "verify"
)

// usageError marks cobra flag and argument failures so they exit like
// validation errors.
type usageError struct {
	err error
}

func (e *usageError) Error() string {
	return e.err.Error()
}

func (e *usageError) Unwrap() error {
	return e.err
}

// NewRootCommand returns the generate command with the serve subcommand
// attached. Flag defaults come from config.
func NewRootCommand(config *lib.Configuration, stdout, stderr io.Writer) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "cuerre",
		Short:         "Offline QR code generator",
		Long:          "Encodes text (a URL, a Wi-Fi string, anything) as a QR code and saves it as an image.",
		Args:          usageArgs(cobra.NoArgs),
		SilenceErrors: true,
		SilenceUsage:  true,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			if err := cmd.ValidateRequiredFlags(); err != nil {
				return &usageError{err: err}
			}

			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(cmd, config, stdout)
		},
	}

	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)
	rootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return &usageError{err: err}
	})

	flags := rootCmd.Flags()
	flags.StringP(flagContent, "c", "", "Text to encode (URL, Wi-Fi string, etc.)")
	flags.StringP(flagOut, "o", config.OUT, "Output image path (e.g., output/myqr.png)")
	flags.StringP(flagError, "e", config.ERROR, "Error correction level (L=7%, M=15%, Q=25%, H=30%)")
	flags.IntP(flagBoxSize, "s", config.BOX_SIZE, "Pixel size of each QR module")
	flags.IntP(flagBorder, "b", config.BORDER, "Border (quiet zone) in modules")
	flags.String(flagFill, config.FILL, "Foreground color (e.g., black, #000000)")
	flags.String(flagBack, config.BACK, "Background color (e.g., white, #FFFFFF)")
	flags.IntP(flagVersion, "v", 0, "QR version 1-40 (higher stores more). Omit for auto-fit")
	flags.String(flagEngine, config.ENGINE, "QR engine: "+strings.Join(lib.EngineNames(), ", "))
	flags.Bool(flagVerify, false, "Decode the written image and check it matches the content")

	if err := rootCmd.MarkFlagRequired(flagContent); err != nil {
		panic(err)
	}

	rootCmd.AddCommand(serveCommand(config))

	return rootCmd
}

func runGenerate(cmd *cobra.Command, config *lib.Configuration, stdout io.Writer) error {
	flags := cmd.Flags()

	content, err := flags.GetString(flagContent)

	if err != nil {
		return fmt.Errorf("failed to read configuration: %w", err)
	}

	out, err := flags.GetString(flagOut)

	if err != nil {
		return fmt.Errorf("failed to read configuration: %w", err)
	}

	level, err := flags.GetString(flagError)

	if err != nil {
		return fmt.Errorf("failed to read configuration: %w", err)
	}

	boxSize, err := flags.GetInt(flagBoxSize)

	if err != nil {
		return fmt.Errorf("failed to read configuration: %w", err)
	}

	border, err := flags.GetInt(flagBorder)

	if err != nil {
		return fmt.Errorf("failed to read configuration: %w", err)
	}

	fill, err := flags.GetString(flagFill)

	if err != nil {
		return fmt.Errorf("failed to read configuration: %w", err)
	}

	back, err := flags.GetString(flagBack)

	if err != nil {
		return fmt.Errorf("failed to read configuration: %w", err)
	}

	version, err := flags.GetInt(flagVersion)

	if err != nil {
		return fmt.Errorf("failed to read configuration: %w", err)
	}

	engine, err := flags.GetString(flagEngine)

	if err != nil {
		return fmt.Errorf("failed to read configuration: %w", err)
	}

	verify, err := flags.GetBool(flagVerify)

	if err != nil {
		return fmt.Errorf("failed to read configuration: %w", err)
	}

	// an explicit --version must be a real version; only omission means auto-fit
	if flags.Changed(flagVersion) && (version < lib.MinVersion || version > lib.MaxVersion) {
		return &lib.ValidationError{
			Field:   flagVersion,
			Message: fmt.Sprintf("Invalid version %d. Use %d-%d or omit for auto-fit", version, lib.MinVersion, lib.MaxVersion),
		}
	}

	builder, err := lib.NewBuilder(engine, lib.NewLogger(config.LOG_LEVEL))

	if err != nil {
		return err
	}

	builder.Verify = verify

	path, err := builder.Build(lib.GenerationRequest{
		Content: content,
		Out:     out,
		ECLevel: lib.ECLevel(level),
		BoxSize: boxSize,
		Border:  border,
		Fill:    fill,
		Back:    back,
		Version: version,
	})

	if err != nil {
		return err
	}

	color.New(color.FgGreen).Fprintf(stdout, "Saved QR to: %s\n", path)

	return nil
}

// Execute runs the CLI with args and returns the process exit code. Errors
// are printed as a single "Error: <message>" line on stderr.
func Execute(config *lib.Configuration, args []string, stdout, stderr io.Writer) int {
	rootCmd := NewRootCommand(config, stdout, stderr)
	rootCmd.SetArgs(args)

	err := rootCmd.Execute()

	if err == nil {
		return lib.ExitOK
	}

	color.New(color.FgRed).Fprintf(stderr, "Error: %s\n", err)

	return exitCode(err)
}

func exitCode(err error) int {
	var uErr *usageError

	if errors.As(err, &uErr) {
		return lib.ExitValidation
	}

	return lib.ExitCode(err)
}

// usageArgs reports positional argument failures as usage errors.
func usageArgs(check cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := check(cmd, args); err != nil {
			return &usageError{err: err}
		}

		return nil
	}
}
