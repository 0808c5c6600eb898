// Package cli implements the kubectl-copi command line.
package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"k8s.io/cli-runtime/pkg/genericclioptions"
	"k8s.io/cli-runtime/pkg/genericiooptions"
	"k8s.io/kubectl/pkg/util/templates"

	"github.com/renato0307/kubectl-copi/internal/config"
	"github.com/renato0307/kubectl-copi/internal/k8s"
	"github.com/renato0307/kubectl-copi/internal/keyboard"
	"github.com/renato0307/kubectl-copi/internal/kubectl"
	"github.com/renato0307/kubectl-copi/internal/logging"
	"github.com/renato0307/kubectl-copi/internal/picker"
	"github.com/renato0307/kubectl-copi/internal/selector"
	"github.com/renato0307/kubectl-copi/internal/ui"
)

// version is set at build time with -ldflags "-X ..."
var version = "dev"

var (
	rootLong = templates.LongDesc(`
		Pick the active Kubernetes context or namespace from an interactive list.

		The list opens on the entry that is active now. The choice is persisted
		with kubectl itself, so nothing is written when you keep the current
		value. Without a subcommand the default command from the config file
		runs (ctx unless configured otherwise).`)

	rootExample = templates.Examples(`
		# Pick a context (default command)
		kubectl copi

		# Pick a namespace for the current context
		kubectl copi ns

		# Pick a namespace in another kubeconfig
		kubectl copi ns --kubeconfig ~/.kube/lab`)

	ctxLong = templates.LongDesc(`
		Pick a context from the kubeconfig and make it the current context.

		Runs "kubectl config use-context" when the choice differs from the
		current context.`)

	nsLong = templates.LongDesc(`
		Pick a namespace from the cluster and make it the default namespace of
		the current context.

		Namespaces are listed from the live cluster. Runs "kubectl config
		set-context --current --namespace" when the choice differs from the
		namespace in use.`)
)

// options holds everything the commands share
type options struct {
	configFlags *genericclioptions.ConfigFlags
	streams     genericiooptions.IOStreams

	configPath string
	kubectl    string
	theme      string
	logFile    string
	logLevel   string
	logFormat  string

	cfg *config.Config

	// newPicker is swapped in tests
	newPicker func(cfg *config.Config) selector.Picker
}

// newConfigFlags keeps only the kubeconfig selection flags; anything else
// would change which cluster is listed without kubectl seeing it
func newConfigFlags() *genericclioptions.ConfigFlags {
	flags := genericclioptions.NewConfigFlags(true)
	flags.CacheDir = nil
	flags.ClusterName = nil
	flags.AuthInfoName = nil
	flags.Namespace = nil
	flags.APIServer = nil
	flags.TLSServerName = nil
	flags.Insecure = nil
	flags.CertFile = nil
	flags.KeyFile = nil
	flags.CAFile = nil
	flags.BearerToken = nil
	flags.Impersonate = nil
	flags.ImpersonateUID = nil
	flags.ImpersonateGroup = nil
	flags.Username = nil
	flags.Password = nil
	flags.Timeout = nil
	flags.DisableCompression = nil
	return flags
}

// NewRootCommand creates the kubectl-copi command tree
func NewRootCommand(streams genericiooptions.IOStreams) *cobra.Command {
	return newRootCommand(&options{
		configFlags: newConfigFlags(),
		streams:     streams,
	})
}

func newRootCommand(o *options) *cobra.Command {
	streams := o.streams
	if o.newPicker == nil {
		o.newPicker = o.terminalPicker
	}

	cmd := &cobra.Command{
		Use:           "kubectl-copi",
		Short:         "Interactively pick a Kubernetes context or namespace",
		Long:          rootLong,
		Example:       rootExample,
		Version:       version,
		Args:          cobra.NoArgs,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return o.complete(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.run(cmd.Context(), o.cfg.DefaultCommand)
		},
	}
	cmd.SetIn(streams.In)
	cmd.SetOut(streams.Out)
	cmd.SetErr(streams.ErrOut)
	cmd.SetVersionTemplate(`{{printf "kubectl-copi version %s\n" .Version}}`)

	flags := cmd.PersistentFlags()
	o.configFlags.AddFlags(flags)
	flags.StringVar(&o.configPath, "config", "", "Path to the kubectl-copi config file (default: $XDG_CONFIG_HOME/kubectl-copi/config.yaml)")
	flags.StringVar(&o.kubectl, "kubectl", kubectl.DefaultBinary, "kubectl binary used to persist the choice")
	flags.StringVar(&o.theme, "theme", ui.DefaultTheme, fmt.Sprintf("Theme to use (%s)", joinThemes()))
	flags.StringVar(&o.logFile, "log-file", "", "Write debug logs to this file (default: no logging)")
	flags.StringVar(&o.logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	flags.StringVar(&o.logFormat, "log-format", "text", "Log format (text, json)")

	cmd.AddCommand(
		&cobra.Command{
			Use:     config.CommandContext,
			Aliases: []string{"pick-context"},
			Short:   "Pick a context from the kubeconfig",
			Long:    ctxLong,
			Args:    cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return o.run(cmd.Context(), config.CommandContext)
			},
		},
		&cobra.Command{
			Use:     config.CommandNamespace,
			Aliases: []string{"pick-namespace"},
			Short:   "Pick a namespace for the current context",
			Long:    nsLong,
			Args:    cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return o.run(cmd.Context(), config.CommandNamespace)
			},
		},
	)

	return cmd
}

// complete loads the config file and applies explicitly set flags on top
func (o *options) complete(cmd *cobra.Command) error {
	path := o.configPath
	if path == "" {
		var err error
		if path, err = config.DefaultPath(); err != nil {
			return err
		}
	}

	cfg, err := config.Load(path)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("kubectl") {
		cfg.Kubectl = o.kubectl
	}
	if flags.Changed("theme") {
		cfg.Theme = o.theme
	}
	if flags.Changed("log-file") {
		cfg.Log.File = o.logFile
	}
	if flags.Changed("log-level") {
		cfg.Log.Level = o.logLevel
	}
	if flags.Changed("log-format") {
		cfg.Log.Format = o.logFormat
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	o.cfg = cfg

	// Both values were validated above
	level, _ := logging.ParseLevel(cfg.Log.Level)
	format, _ := logging.ParseFormat(cfg.Log.Format)
	if err := logging.Init(logging.Config{
		FilePath:   cfg.Log.File,
		Level:      level,
		Format:     format,
		MaxSizeMB:  cfg.Log.MaxSizeMB,
		MaxBackups: cfg.Log.MaxBackups,
	}); err != nil {
		return fmt.Errorf("failed to initialize logging: %w", err)
	}

	logging.Debug("configuration loaded", "path", path, "defaultCommand", cfg.DefaultCommand, "theme", cfg.Theme)
	return nil
}

func (o *options) run(ctx context.Context, command string) error {
	if err := kubectl.CheckAvailable(o.cfg.Kubectl); err != nil {
		logging.Warn("kubectl not available", "error", err)
		fmt.Fprintf(o.streams.ErrOut, "Warning: %v\n", err)
	}

	executor := kubectl.NewExecutor(o.cfg.Kubectl, stringValue(o.configFlags.KubeConfig), stringValue(o.configFlags.Context), o.streams)
	sel := selector.New(k8s.NewClientConfigProvider(o.configFlags), o.newPicker(o.cfg), executor)

	switch command {
	case config.CommandContext:
		return sel.SelectContext(ctx)
	case config.CommandNamespace:
		return sel.SelectNamespace(ctx)
	default:
		return fmt.Errorf("%w %q", config.ErrInvalidCommand, command)
	}
}

// terminalPicker renders on stderr so stdout only carries kubectl's output
func (o *options) terminalPicker(cfg *config.Config) selector.Picker {
	return picker.New(ui.GetTheme(cfg.Theme), keyboard.GetKeys(),
		picker.WithInput(o.streams.In),
		picker.WithOutput(o.streams.ErrOut))
}

// ExitCode maps a command error to the process exit status: kubectl's own
// status when the apply step failed, 1 for anything else
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var exitErr *kubectl.ExitError
	if errors.As(err, &exitErr) && exitErr.Code > 0 {
		return exitErr.Code
	}
	return 1
}

// Execute runs the root command against the process streams and returns
// the exit status
func Execute() int {
	streams := genericiooptions.IOStreams{In: os.Stdin, Out: os.Stdout, ErrOut: os.Stderr}
	return run(context.Background(), NewRootCommand(streams), streams)
}

func run(ctx context.Context, cmd *cobra.Command, streams genericiooptions.IOStreams) int {
	err := cmd.ExecuteContext(ctx)
	_ = logging.Shutdown()
	if err != nil {
		fmt.Fprintf(streams.ErrOut, "Error: %v\n", err)
	}
	return ExitCode(err)
}

func joinThemes() string {
	return strings.Join(ui.AvailableThemes(), ", ")
}

func stringValue(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
