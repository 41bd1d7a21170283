package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/harrison/scout/internal/config"
	"github.com/harrison/scout/internal/display"
	"github.com/harrison/scout/internal/filelock"
	"github.com/harrison/scout/internal/fsentry"
	"github.com/harrison/scout/internal/ignore"
	"github.com/harrison/scout/internal/logger"
	"github.com/harrison/scout/internal/match"
	"github.com/harrison/scout/internal/walker"
)

// Version is injected at build time via -ldflags
var Version = "dev"

// EnvPrefix prefixes every environment override, e.g. SCOUT_FILES_ONLY.
const EnvPrefix = "SCOUT"

// flagKeys maps flags that can be overridden from the environment to their
// config keys.
var flagKeys = map[string]string{
	"invisible": "include_hidden",
	"filesonly": "files_only",
	"regex":     "regex",
	"short":     "short",
	"color":     "color",
	"log-level": "log_level",
	"order":     "order",
	"gitignore": "gitignore",
}

// NewRootCommand creates and returns the root cobra command for scout
func NewRootCommand() *cobra.Command {
	v := viper.New()

	cmd := &cobra.Command{
		Use:   "scout [path] <pattern>",
		Short: "Find files and directories by name",
		Long: `Scout walks a directory tree breadth-first and prints every entry whose
name matches a pattern, followed by a summary of what was explored.

The path defaults to the current directory. Patterns match base names
exactly unless --regex is given, in which case the whole name must match.
Hidden entries, special files and reserved names such as .git are skipped.

With --tree, scout lists each directory and its children instead.

Configuration is loaded from $SCOUT_HOME/config.yaml (or --config).
SCOUT_* environment variables override the file; flags override both.

Examples:
  scout main.go                 # search the current directory
  scout ./src '.*_test\.go' -r  # regex search under ./src
  scout -f -s ~/notes todo.txt  # files only, print base names
  scout --tree ./docs           # list the tree
  scout --init-config           # write the default config file`,
		Version:      Version,
		Args:         validateArgs,
		SilenceUsage: true,
		// main reports the error
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRoot(cmd, v, args)
		},
	}

	flags := cmd.Flags()
	flags.BoolP("invisible", "i", false, "Include hidden entries")
	flags.BoolP("filesonly", "f", false, "Only match files; directories are still traversed")
	flags.BoolP("regex", "r", false, "Treat the pattern as a regular expression")
	flags.BoolP("tree", "t", false, "List the tree instead of searching")
	flags.BoolP("short", "s", false, "Print base names instead of paths")
	flags.BoolP("depth-first", "d", false, "Traverse depth-first (same as --order dfs)")
	flags.String("order", "", "Traversal order: bfs or dfs (default bfs)")
	flags.Bool("gitignore", false, "Skip entries matched by the root's .gitignore")
	flags.String("color", "", "Colorize output: auto, always or never (default auto)")
	flags.String("log-level", "", "Diagnostic verbosity: trace, debug, info, warn, error (default warn)")
	flags.String("config", "", "Path to config file (default: $SCOUT_HOME/config.yaml)")
	flags.Bool("init-config", false, "Write the default config file and exit")
	flags.Bool("force", false, "Overwrite an existing config file with --init-config")

	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	for flag, key := range flagKeys {
		v.BindPFlag(key, flags.Lookup(flag))
	}

	return cmd
}

// validateArgs accepts [path] <pattern> for searches, [path] for trees and
// nothing for --init-config.
func validateArgs(cmd *cobra.Command, args []string) error {
	if initConfig, _ := cmd.Flags().GetBool("init-config"); initConfig {
		return cobra.NoArgs(cmd, args)
	}

	if tree, _ := cmd.Flags().GetBool("tree"); tree {
		if len(args) > 1 {
			return fmt.Errorf("tree mode accepts at most one path, got %d arguments", len(args))
		}
		return nil
	}

	switch len(args) {
	case 0:
		return errors.New("missing search pattern")
	case 1, 2:
		return nil
	default:
		return fmt.Errorf("expected [path] <pattern>, got %d arguments", len(args))
	}
}

func runRoot(cmd *cobra.Command, v *viper.Viper, args []string) error {
	configFlag, _ := cmd.Flags().GetString("config")
	configPath, homeErr := config.ResolvePath(configFlag)

	if initConfig, _ := cmd.Flags().GetBool("init-config"); initConfig {
		if homeErr != nil {
			return homeErr
		}
		force, _ := cmd.Flags().GetBool("force")
		return initConfigFile(cmd, configPath, force)
	}

	// Without a scout home there is no default config file to read.
	fileCfg := config.DefaultConfig()
	if homeErr == nil {
		loaded, err := config.LoadConfig(configPath)
		if err != nil {
			return fmt.Errorf("failed to load config from %s: %w", configPath, err)
		}
		fileCfg = loaded
	}

	cfg := resolveConfig(cmd, v, fileCfg)
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	log := logger.NewConsoleLogger(cmd.ErrOrStderr(), cfg.LogLevel)
	if homeErr != nil {
		log.LogDebug(fmt.Sprintf("no config file, using defaults: %v", homeErr))
		configPath = "(defaults)"
	}
	log.LogDebug(fmt.Sprintf("config %s: level=%s order=%s color=%s hidden=%t files-only=%t regex=%t gitignore=%t reserved=%v",
		configPath, log.Level(), cfg.Order, cfg.Color, cfg.IncludeHidden, cfg.FilesOnly, cfg.Regex, cfg.Gitignore, cfg.Reserved().Names()))

	tree, _ := cmd.Flags().GetBool("tree")
	root, pattern := splitArgs(args, tree)

	req, err := buildRequest(cfg, root, pattern, tree, log)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	mode, _ := display.ParseColorMode(cfg.Color)
	engine := walker.New(req,
		walker.WithOutput(out),
		walker.WithPresenter(display.NewPresenter(display.ResolveColor(mode, out))),
		walker.WithErrorHandler(walker.LogErrors(log)),
	)

	if tree {
		results, err := engine.Tree()
		if err != nil {
			return err
		}
		log.LogInfo(display.Summary(results))
		return nil
	}

	log.LogInfo(fmt.Sprintf("searching %s for %s (%s)", root, req.Matcher, req.Order))
	results, err := engine.Run()
	if err != nil {
		return err
	}

	fmt.Fprintln(out, display.Summary(results))
	return nil
}

// resolveConfig layers environment variables and flags over the file
// configuration. The file values act as viper defaults, so the precedence is
// defaults < file < env < flags.
func resolveConfig(cmd *cobra.Command, v *viper.Viper, fileCfg *config.Config) *config.Config {
	v.SetDefault("include_hidden", fileCfg.IncludeHidden)
	v.SetDefault("files_only", fileCfg.FilesOnly)
	v.SetDefault("regex", fileCfg.Regex)
	v.SetDefault("short", fileCfg.Short)
	v.SetDefault("color", fileCfg.Color)
	v.SetDefault("log_level", fileCfg.LogLevel)
	v.SetDefault("order", fileCfg.Order)
	v.SetDefault("gitignore", fileCfg.Gitignore)

	cfg := &config.Config{
		ReservedNames: fileCfg.ReservedNames,
		IncludeHidden: v.GetBool("include_hidden"),
		FilesOnly:     v.GetBool("files_only"),
		Regex:         v.GetBool("regex"),
		Short:         v.GetBool("short"),
		Color:         v.GetString("color"),
		LogLevel:      v.GetString("log_level"),
		Order:         v.GetString("order"),
		Gitignore:     v.GetBool("gitignore"),
	}

	if depthFirst, _ := cmd.Flags().GetBool("depth-first"); depthFirst {
		cfg.Order = walker.DepthFirst.String()
	}

	return cfg
}

func splitArgs(args []string, tree bool) (root, pattern string) {
	root = "."
	switch {
	case tree && len(args) == 1:
		root = args[0]
	case len(args) == 1:
		pattern = args[0]
	case len(args) == 2:
		root, pattern = args[0], args[1]
	}
	return root, pattern
}

func buildRequest(cfg *config.Config, root, pattern string, tree bool, log logger.Logger) (walker.Request, error) {
	order, err := walker.ParseOrder(cfg.Order)
	if err != nil {
		return walker.Request{}, err
	}

	req := walker.Request{
		Root:          root,
		IncludeHidden: cfg.IncludeHidden,
		FilesOnly:     cfg.FilesOnly,
		Short:         cfg.Short,
		Order:         order,
		Reserved:      cfg.Reserved(),
	}

	if !tree {
		m, err := match.New(pattern, cfg.Regex)
		if err != nil {
			return walker.Request{}, err
		}
		req.Matcher = m
	}

	if cfg.Gitignore {
		if rules := loadRules(root, log); rules != nil {
			req.Rules = rules
		}
	}

	return req, nil
}

// loadRules reads the root's .gitignore. A root that is not a directory has
// no rules; the walk itself reports a missing root. An unreadable rules file
// is logged and the walk continues without rules.
func loadRules(root string, log logger.Logger) fsentry.IgnoreRules {
	info, err := os.Stat(root)
	if err != nil || !info.IsDir() {
		return nil
	}

	rules, err := ignore.Load(root)
	if err != nil {
		log.LogWarn(fmt.Sprintf("ignoring gitignore rules: %v", err))
		return nil
	}
	if rules.Empty() {
		return nil
	}
	return rules
}

func initConfigFile(cmd *cobra.Command, path string, force bool) error {
	err := config.WriteDefault(path, force)
	if errors.Is(err, filelock.ErrExists) {
		display.Warning{
			Title:      "config file already exists",
			Message:    "The existing configuration was left unchanged.",
			Paths:      []string{path},
			Suggestion: "Re-run with --force to overwrite it with the defaults.",
		}.Display(cmd.ErrOrStderr(), display.ResolveColor(display.ColorAuto, cmd.ErrOrStderr()))
		return err
	}
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Wrote default config to %s\n", path)
	return nil
}
