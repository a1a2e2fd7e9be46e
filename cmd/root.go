package cmd

import (
	"bytes"
	"errors"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/zaparse/stmtledger/config"
	"github.com/zaparse/stmtledger/extractor"
	"github.com/zaparse/stmtledger/logger"
)

var (
	cfgFile string
	verbose bool
	log     = zerolog.Nop()
	rootCmd = &cobra.Command{
		Use:   "stmtledger [files...]",
		Short: "Turn bank statements into a normalized ledger",
		Long: `stmtledger reads South African bank statements (PDF, or page text
separated by form feeds) and produces a ledger of date, description, debit,
credit and running balance, with optional statistics.`,
		Args:         cobra.ArbitraryArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				return runParse(cmd, args)
			}
			return cmd.Help()
		},
	}
)

func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig, initLogging)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file path (default is ./.stmtledger.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging on stderr")
	addParseFlags(rootCmd)
}

func initLogging() {
	log = newLogger(viper.GetString("log.format"), os.Stderr)
}

// newLogger picks the console writer unless format is "json".
func newLogger(format string, w io.Writer) zerolog.Logger {
	if strings.EqualFold(format, "json") {
		return logger.NewWithWriter(w, verbose)
	}
	return logger.New(verbose)
}

// initConfig loads the embedded defaults and merges an optional config file
// over them, so a file only needs the keys it changes.
func initConfig() {
	viper.SetConfigType("yaml")
	cobra.CheckErr(viper.ReadConfig(bytes.NewBufferString(config.DefaultYAML)))

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		viper.AddConfigPath(".")
		viper.AddConfigPath(home)
		viper.SetConfigName(".stmtledger")
	}

	viper.SetEnvPrefix("stmtledger")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.MergeInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			cobra.CheckErr(err)
		}
	}
}

func newAssembler() (*extractor.Assembler, error) {
	reg, err := config.Load(viper.GetViper())
	if err != nil {
		return nil, err
	}
	return extractor.NewAssembler(reg, log), nil
}
