// Command mibprofile generates SNMP monitoring profiles from MIB modules and
// compares profiles against their published versions.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"runtime/debug"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/golangsnmp/mibprofile"
	"github.com/golangsnmp/mibprofile/cmd/internal/cliutil"
	"github.com/golangsnmp/mibprofile/internal/compiler"
	"github.com/golangsnmp/mibprofile/internal/config"
	"github.com/golangsnmp/mibprofile/profile"
)

// Exit codes.
const (
	exitOK    = 0 // success
	exitError = 1 // user error or processing failure
)

// compileExtensions are the file extensions searched when a module's
// source is needed for compilation.
var compileExtensions = []string{"", ".my", ".mib", ".txt"}

// flagKeys maps config keys to the flags that override them.
var flagKeys = map[string]string{
	config.KeyProfilesRoot:  "profiles-root",
	config.KeyExtensions:    "extensions",
	config.KeyMIBRepository: "mib-repository",
	config.KeyMIBSources:    "mib-source",
	config.KeyHTTPTimeout:   "http-timeout",
	config.KeySystemMIBs:    "system-mibs",
}

type cli struct {
	verbose     int
	cfgFile     string
	output      string
	noClipboard bool

	v   *viper.Viper
	cfg *config.Config

	stdout io.Writer
	stderr io.Writer
}

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stdout, os.Stderr))
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	c := &cli{stdout: stdout, stderr: stderr}
	root := c.rootCommand()
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	if err := root.ExecuteContext(ctx); err != nil {
		cliutil.PrintError("%v", err)
		return exitError
	}
	return exitOK
}

func (c *cli) rootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "mibprofile",
		Short: "Generate SNMP monitoring profiles from MIB modules",
		Long: `mibprofile turns the MIB modules in a directory into a profile of the
scalars and tables a monitoring agent polls, and reports which metrics a new
profile adds to a published one.

Examples:
  # Generate a profile from every .my file in ./mibs
  mibprofile generate ./mibs

  # Restrict each module to the subtrees listed in a filter
  mibprofile generate ./mibs --oid-filter filter.yaml -o profile.yaml

  # Metrics of new.yaml not yet covered by _base.yaml and what it extends
  mibprofile update _base.yaml new.yaml --profiles-root ./profiles`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return c.loadConfig(cmd)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&c.cfgFile, "config", "", "config file (default $XDG_CONFIG_HOME/mibprofile/config.yaml)")
	pf.CountVarP(&c.verbose, "verbose", "v", "debug logging (-vv for trace)")
	pf.StringVarP(&c.output, "output", "o", "", "write output to file instead of the clipboard")
	pf.BoolVar(&c.noClipboard, "no-clipboard", false, "print output instead of copying it to the clipboard")
	pf.String("mib-repository", "", "remote MIB URL template, @mib@ is replaced by the module name")
	pf.StringSlice("mib-source", nil, "extra local MIB source directory (repeatable)")
	pf.Duration("http-timeout", 0, "timeout of remote MIB fetches")
	pf.Bool("system-mibs", false, "also search the net-snmp and libsmi MIB directories")

	root.AddCommand(
		c.generateCommand(),
		c.updateCommand(),
		c.listCommand(),
		c.compileCommand(),
		c.pathsCommand(),
		c.versionCommand(),
	)
	return root
}

func (c *cli) loadConfig(cmd *cobra.Command) error {
	c.v = config.New()
	if err := config.BindFlags(c.v, cmd.Flags(), flagKeys); err != nil {
		return err
	}
	cfg, err := config.Load(c.v, c.cfgFile)
	if err != nil {
		return err
	}
	if c.noClipboard {
		cfg.Clipboard = false
	}
	c.cfg = cfg
	return nil
}

// setupLogger logs warnings by default; -v enables debug, -vv trace.
func (c *cli) setupLogger() *slog.Logger {
	level := slog.LevelWarn
	switch {
	case c.verbose >= 2:
		level = mibprofile.LevelTrace
	case c.verbose == 1:
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(c.stderr, &slog.HandlerOptions{
		Level: level,
	}))
}

// newCompiler builds a compiler reading sources from dirs, the configured
// source directories and, when enabled, the system MIB directories, before
// falling back to the remote repository.
func (c *cli) newCompiler(logger *slog.Logger, dirs ...string) *compiler.Compiler {
	extOpt := mibprofile.SourceExtensions(compileExtensions...)

	var sources []mibprofile.Source
	for _, d := range dirs {
		if src, err := mibprofile.Dir(d, extOpt); err == nil {
			sources = append(sources, src)
		}
	}
	for _, d := range c.cfg.MIBSources {
		src, err := mibprofile.DirTree(d, extOpt)
		if err != nil {
			cliutil.PrintWarning("cannot access MIB source %s: %v", d, err)
			continue
		}
		sources = append(sources, src)
	}
	if c.cfg.SystemMIBs {
		sources = append(sources, mibprofile.SystemSources(logger, extOpt)...)
	}

	opts := []compiler.FetcherOption{
		compiler.WithRepository(c.cfg.MIBRepository),
		compiler.WithFetchLogger(logger),
	}
	if c.cfg.HTTPTimeout > 0 {
		opts = append(opts, compiler.WithTimeout(c.cfg.HTTPTimeout))
	}
	if len(sources) > 0 {
		opts = append(opts, compiler.WithLocal(mibprofile.Multi(sources...)))
	}
	return compiler.New(compiler.NewFetcher(opts...), compiler.WithLogger(logger))
}

// loadFilter reads the OID filter at path. A missing file is reported and
// ignored.
func (c *cli) loadFilter(path string) (*mibprofile.Filter, error) {
	if path == "" {
		return nil, nil
	}
	f, err := mibprofile.LoadFilter(path)
	if errors.Is(err, fs.ErrNotExist) {
		cliutil.PrintWarning("filter file %s not found, generating without filter", path)
		return nil, nil
	}
	return f, err
}

func (c *cli) publishMetrics(metrics []profile.Metric) error {
	out, err := profile.Marshal(metrics)
	if err != nil {
		return err
	}
	p := &cliutil.Publisher{
		OutputFile: c.output,
		Clipboard:  c.cfg.Clipboard,
		Stdout:     c.stdout,
		Stderr:     c.stderr,
	}
	return p.Publish(string(out))
}

func (c *cli) versionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version",
		Args:  cobra.NoArgs,
		Run: func(*cobra.Command, []string) {
			printVersion(c.stdout)
		},
	}
}

func printVersion(w io.Writer) {
	version := "(devel)"
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		version = info.Main.Version
	}
	_, _ = fmt.Fprintf(w, "mibprofile %s\n", version)
}
