package cmd

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"

	"github.com/Manu343726/isagen/pkg/isa"
	"github.com/Manu343726/isagen/pkg/isa/codegen"
	"github.com/Manu343726/isagen/pkg/logging"
	"github.com/Manu343726/isagen/pkg/utils"
	"github.com/fatih/color"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/tebeka/atexit"
)

// Returned for malformed command lines. Makes the process exit with status 2
var ErrUsage = errors.New("usage error")

var (
	colorError   = color.New(color.FgRed, color.Bold)
	colorInvalid = color.New(color.FgRed)
	colorOpcode  = color.New(color.FgMagenta)
)

// Configuration keys. Each one can be set from a flag, an ISAGEN_* environment variable or the config file
const (
	keyOutput      = "output"
	keyTarget      = "target"
	keyNamespace   = "namespace"
	keyGuardPrefix = "guard-prefix"
	keyPackage     = "package"
	keyStdout      = "stdout"
	keyLogLevel    = "log-level"
	keyLogFile     = "log-file"
)

// State shared by the command tree of one invocation
type app struct {
	fs           afero.Fs
	config       *viper.Viper
	configFile   string
	closeLog     func() error
	registerExit sync.Once
}

// Runs a function before the process exits through atexit.Exit
var registerExitHandler = atexit.Register

var RootCmd = NewRootCmd()

func NewRootCmd() *cobra.Command {
	return newRootCmd(afero.NewOsFs())
}

func newRootCmd(fs afero.Fs) *cobra.Command {
	a := &app{
		fs:     fs,
		config: viper.New(),
	}

	defaults := codegen.DefaultOptions()

	cmd := &cobra.Command{
		Use:   "isagen <schema>",
		Short: "Generate opcode definitions from an instruction schema",
		Long: `isagen reads a YAML instruction schema mapping instruction names to opcodes
and generates the source code of an opcode enumeration, an immutable
name to opcode lookup table and the accessors resolving names and opcodes.

Unknown names resolve to the INVALID opcode, which isagen places right after
the highest declared opcode.`,
		Example: `  isagen isa.yaml
  isagen isa.yaml --target go --package opcodes -o internal/opcodes
  isagen isa.yaml --stdout`,
		Args:              exactlyOneSchema,
		SilenceErrors:     true,
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
		RunE:              a.runGenerate,
	}

	cmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return utils.MakeError(ErrUsage, "%v", err)
	})

	persistent := cmd.PersistentFlags()
	persistent.StringVar(&a.configFile, "config", "", "Config file (default is .isagen.yaml in the working directory or $HOME)")
	persistent.String(keyLogLevel, "info", "Log level (debug, info, warn, error)")
	persistent.String(keyLogFile, "", "Also write every log record as JSON into this file")

	flags := cmd.Flags()
	flags.StringP(keyOutput, "o", "generated", "Output directory")
	flags.StringP(keyTarget, "t", string(defaults.Target), fmt.Sprintf("Output language (%v)", strings.Join(codegen.Targets(), ", ")))
	flags.String(keyNamespace, defaults.Namespace, "C++ namespace of the generated code")
	flags.String(keyGuardPrefix, defaults.GuardPrefix, "Prefix of the C++ include guards")
	flags.String(keyPackage, defaults.Package, "Go package of the generated code")
	flags.Bool(keyStdout, false, "Print the generated files to stdout instead of writing them")

	for _, key := range []string{keyLogLevel, keyLogFile} {
		cobra.CheckErr(a.config.BindPFlag(key, persistent.Lookup(key)))
	}

	for _, key := range []string{keyOutput, keyTarget, keyNamespace, keyGuardPrefix, keyPackage, keyStdout} {
		cobra.CheckErr(a.config.BindPFlag(key, flags.Lookup(key)))
	}

	cmd.AddCommand(newDumpCmd(a), newLookupCmd(a), newInspectCmd(a), newTargetsCmd())
	return cmd
}

func exactlyOneSchema(cmd *cobra.Command, args []string) error {
	if len(args) != 1 {
		return utils.MakeError(ErrUsage, "invalid amount of arguments [1 must be used]")
	}

	return nil
}

// Reads the config file and environment, then installs the logger
func (a *app) setup(cmd *cobra.Command, args []string) error {
	a.config.SetFs(a.fs)

	if a.configFile != "" {
		a.config.SetConfigFile(a.configFile)
	} else {
		a.config.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			a.config.AddConfigPath(home)
		}
		a.config.SetConfigType("yaml")
		a.config.SetConfigName(".isagen")
	}

	a.config.SetEnvPrefix("ISAGEN")
	a.config.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	a.config.AutomaticEnv()

	if err := a.config.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("reading config: %w", err)
		}
	}

	level, err := logging.ParseLevel(a.config.GetString(keyLogLevel))
	if err != nil {
		return utils.MakeError(ErrUsage, "--%v: %v", keyLogLevel, err)
	}

	if err := a.closeLogFile(); err != nil {
		return fmt.Errorf("closing log file: %w", err)
	}

	closeLog, err := logging.Setup(a.fs, cmd.ErrOrStderr(), level, a.config.GetString(keyLogFile))
	if err != nil {
		return fmt.Errorf("opening log file: %w", err)
	}

	a.closeLog = closeLog
	a.registerExit.Do(func() {
		registerExitHandler(func() {
			a.closeLogFile()
		})
	})

	if used := a.config.ConfigFileUsed(); used != "" {
		slog.Info("using config file", "path", used)
	}

	return nil
}

// Closes the log file opened by the last setup, if any
func (a *app) closeLogFile() error {
	if a.closeLog == nil {
		return nil
	}

	closeLog := a.closeLog
	a.closeLog = nil
	return closeLog()
}

func (a *app) options() (codegen.Options, error) {
	target, err := codegen.ParseTarget(a.config.GetString(keyTarget))
	if err != nil {
		return codegen.Options{}, fmt.Errorf("%w: %w", ErrUsage, err)
	}

	options := codegen.Options{
		Target:      target,
		Namespace:   a.config.GetString(keyNamespace),
		GuardPrefix: a.config.GetString(keyGuardPrefix),
		Package:     a.config.GetString(keyPackage),
	}

	if err := options.Validate(); err != nil {
		return codegen.Options{}, fmt.Errorf("%w: %w", ErrUsage, err)
	}

	return options, nil
}

func (a *app) load(path string) (*isa.Table, error) {
	return isa.Load(a.fs, path)
}

// Runs the command line and returns the process exit status
func run(cmd *cobra.Command, args []string) int {
	cmd.SetArgs(args)

	c, err := cmd.ExecuteC()
	if err == nil {
		return 0
	}

	printError(c.ErrOrStderr(), err)

	if errors.Is(err, ErrUsage) {
		c.PrintErrln()
		c.PrintErr(c.UsageString())
		return 2
	}

	return 1
}

func printError(w io.Writer, err error) {
	colorError.Fprintf(w, "error: %v\n", err)
}

// Execute runs the root command with the process arguments and exits.
// This is called by main.main()
func Execute() {
	atexit.Exit(run(RootCmd, os.Args[1:]))
}
