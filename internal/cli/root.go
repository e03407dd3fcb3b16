package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// EnvPrefix prefixes environment variables that override flags.
const EnvPrefix = "NEWTYPEGEN"

// Flag keys shared by several commands.
const (
	keyVerbose    = "verbose"
	keyConfigFile = "config-file"
	keySpec       = "config"
	keyPackage    = "pkg"
	keyOffline    = "offline"
)

// app carries state shared by all commands of one invocation.
type app struct {
	v   *viper.Viper
	log *zap.SugaredLogger
}

// NewRootCommand builds the command tree.
func NewRootCommand() *cobra.Command {
	a := &app{
		v:   viper.New(),
		log: zap.NewNop().Sugar(),
	}

	root := &cobra.Command{
		Use:   "newtype-generator",
		Short: "Generate validated newtypes for Go packages",
		Long: `newtype-generator reads a YAML file describing wrapper types, checks it
against the package it belongs to and writes Go code for each wrapper: a
fallible constructor, a read-only accessor and JSON, YAML and text decoders
that reject values failing the wrapper's predicate.`,
		SilenceUsage:      true,
		PersistentPreRunE: a.initConfig,
		PersistentPostRun: func(*cobra.Command, []string) {
			_ = a.log.Sync()
		},
	}

	root.PersistentFlags().Bool(keyVerbose, false, "enable debug logging on stderr")
	root.PersistentFlags().String(keyConfigFile, "", "tool config file (yaml, json or toml) providing flag defaults")

	root.AddCommand(a.newGenCommand(), a.newCheckCommand(), newVersionCommand())

	return root
}

// Execute runs the root command with the process arguments.
func Execute() error {
	return NewRootCommand().Execute()
}

// initConfig binds the running command's flags into viper, reads the tool
// config file and sets up logging.
func (a *app) initConfig(cmd *cobra.Command, _ []string) error {
	a.v.SetEnvPrefix(EnvPrefix)
	a.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	a.v.AutomaticEnv()

	if err := a.v.BindPFlags(cmd.Flags()); err != nil {
		return fmt.Errorf("binding flags: %w", err)
	}

	if cfgFile := a.v.GetString(keyConfigFile); cfgFile != "" {
		a.v.SetConfigFile(cfgFile)

		if err := a.v.ReadInConfig(); err != nil {
			return fmt.Errorf("reading config file %s: %w", cfgFile, err)
		}
	}

	a.log = newLogger(a.v.GetBool(keyVerbose), cmd.ErrOrStderr()).Sugar()
	a.log.Debugw("configuration loaded", "command", cmd.Name(), "configFile", a.v.ConfigFileUsed())

	return nil
}

// addSpecFlags registers the flags every spec-reading command has.
func addSpecFlags(cmd *cobra.Command) {
	cmd.Flags().StringP(keySpec, "c", "newtypes.yaml", "newtype spec file")
	cmd.Flags().String(keyPackage, "", "package pattern overriding the spec's package key")
}

func fprintln(w io.Writer, args ...any) {
	_, _ = fmt.Fprintln(w, args...)
}
