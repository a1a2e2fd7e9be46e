package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/zaparse/stmtledger/config"
)

var banksCmd = &cobra.Command{
	Use:   "banks",
	Short: "List supported statement formats",
	Long:  `Lists the statement formats in detection order. The id column is what --bank accepts.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		reg, err := config.Load(viper.GetViper())
		if err != nil {
			return err
		}
		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tNAME")
		for _, f := range reg.Formats() {
			fmt.Fprintf(w, "%s\t%s\n", f.ID, f.Name)
		}
		return w.Flush()
	},
}

func init() {
	rootCmd.AddCommand(banksCmd)
}
