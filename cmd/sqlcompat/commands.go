package main

import (
	"errors"
	"fmt"
	"io"
	"log"
	"runtime"
	"strings"

	vm "github.com/VictoriaMetrics/metrics"
	"github.com/smartystreets/sqlcompat"
	"github.com/smartystreets/sqlcompat/internal/config"
	"github.com/smartystreets/sqlcompat/metrics"
	"github.com/spf13/cobra"
)

var ErrMalformedParam = errors.New("parameter must be written as name=value")

type application struct {
	load func(configFile string) (config.Config, error)

	configFile  string
	driver      string
	databaseURL string
	prefetch    int
	noColor     bool
	verbose     bool
	showMetrics bool

	params []string
	nulls  []string
}

func newRootCommand(load func(string) (config.Config, error)) *cobra.Command {
	app := &application{load: load}

	root := &cobra.Command{
		Use:           "sqlcompat",
		Short:         "Run sqlc-style queries through the sqlcompat connection",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := root.PersistentFlags()
	flags.StringVar(&app.configFile, "config", "", "configuration file (default .sqlcompat.yaml)")
	flags.StringVar(&app.driver, "driver", "", "pgx, postgres or sqlite3")
	flags.StringVar(&app.databaseURL, "database-url", "", "connection string (default $DATABASE_URL)")
	flags.IntVar(&app.prefetch, "prefetch", 0, "rows fetched per cursor round trip (pgx)")
	flags.BoolVar(&app.noColor, "no-color", false, "disable colored headers")
	flags.BoolVarP(&app.verbose, "verbose", "v", false, "log transaction failures to stderr")
	flags.BoolVar(&app.showMetrics, "metrics", false, "write Prometheus metrics to stderr when done")

	root.AddCommand(
		app.rewriteCommand(),
		app.executeCommand(),
		app.streamCommand(),
		app.versionCommand(),
	)

	return root
}

func (this *application) rewriteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "rewrite [query]",
		Short: "Print the driver form of a query, reading stdin when no query is given",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query, err := queryText(cmd, args)
			if err != nil {
				return err
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), sqlcompat.Text(query))
			return err
		},
	}
}

func (this *application) executeCommand() *cobra.Command {
	command := &cobra.Command{
		Use:   "execute <query>",
		Short: "Run a query and print every row it returns",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return this.run(cmd, func(session *session, params map[string]interface{}) error {
				result, err := session.connection.Execute(cmd.Context(), session.connection.Text(args[0]), params)
				if err != nil {
					return err
				}

				printer := newPrinter(cmd.OutOrStdout(), !this.noColor)
				for i, row := range result.All() {
					if i == 0 {
						printer.Header(row.Columns())
					}
					printer.Row(row.Values())
				}
				printer.Summary("(%s)", plural(result.Len(), "row"))
				return nil
			})
		},
	}
	this.bindParams(command)
	return command
}

func (this *application) streamCommand() *cobra.Command {
	command := &cobra.Command{
		Use:   "stream <query>",
		Short: "Run a query through a cursor and print rows as they arrive",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return this.run(cmd, func(session *session, params map[string]interface{}) error {
				stream, err := session.connection.Stream(cmd.Context(), session.connection.Text(args[0]), params)
				if err != nil {
					return err
				}

				printer := newPrinter(cmd.OutOrStdout(), !this.noColor)
				var count int
				for row, err := range stream.Rows(cmd.Context()) {
					if err != nil {
						return err
					}
					if count == 0 {
						printer.Header(row.Columns())
					}
					printer.Row(row.Values())
					count++
				}
				printer.Summary("(%s, %s)", plural(count, "row"), stream.State())
				return nil
			})
		},
	}
	this.bindParams(command)
	return command
}

func (this *application) versionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "sqlcompat version %s\n", Version)
			fmt.Fprintf(out, "  Go Version: %s\n", runtime.Version())
			fmt.Fprintf(out, "  OS/Arch: %s/%s\n", runtime.GOOS, runtime.GOARCH)
		},
	}
}

func (this *application) bindParams(command *cobra.Command) {
	command.Flags().StringArrayVarP(&this.params, "param", "p", nil, "query parameter as pN=value (repeatable)")
	command.Flags().StringArrayVar(&this.nulls, "null", nil, "query parameter bound to NULL (repeatable)")
}

func (this *application) run(cmd *cobra.Command, action func(*session, map[string]interface{}) error) error {
	params, err := this.parameters()
	if err != nil {
		return err
	}

	settings, err := this.settings(cmd)
	if err != nil {
		return err
	}

	var logger sqlcompat.Logger
	if this.verbose {
		logger = log.New(cmd.ErrOrStderr(), "", log.LstdFlags)
	}

	var monitor sqlcompat.Monitor
	var collector *metrics.Monitor
	if this.showMetrics {
		collector = metrics.New(metrics.Options.Set(vm.NewSet()))
		monitor = collector
	}

	session, err := openSession(cmd.Context(), settings, logger, monitor)
	if err != nil {
		return err
	}
	defer session.Close()

	err = action(session, params)

	if collector != nil {
		collector.WritePrometheus(cmd.ErrOrStderr())
	}

	return err
}

func (this *application) settings(cmd *cobra.Command) (config.Config, error) {
	settings, err := this.load(this.configFile)
	if err != nil {
		return config.Config{}, err
	}

	flags := cmd.Flags()
	if flags.Changed("driver") {
		settings.Driver = this.driver
	}
	if flags.Changed("database-url") {
		settings.DatabaseURL = this.databaseURL
	}
	if flags.Changed("prefetch") {
		settings.Prefetch = this.prefetch
	}

	return settings, nil
}

func (this *application) parameters() (map[string]interface{}, error) {
	params := make(map[string]interface{}, len(this.params)+len(this.nulls))

	for _, param := range this.params {
		name, value, found := strings.Cut(param, "=")
		if !found {
			return nil, fmt.Errorf("%w: %q", ErrMalformedParam, param)
		}
		params[name] = value
	}

	for _, name := range this.nulls {
		params[name] = nil
	}

	return params, nil
}

func queryText(cmd *cobra.Command, args []string) (string, error) {
	if len(args) == 1 && args[0] != "-" {
		return args[0], nil
	}

	raw, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return "", err
	}
	return strings.TrimRight(string(raw), "\n"), nil
}

func loadSettings(configFile string) (config.Config, error) {
	if configFile == "" {
		return config.Load()
	}
	return config.Load(config.Options.ConfigFile(configFile))
}

func plural(count int, noun string) string {
	if count == 1 {
		return fmt.Sprintf("1 %s", noun)
	}
	return fmt.Sprintf("%d %ss", count, noun)
}
