package commands

import "github.com/spf13/cobra"

func RootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "estate-crm",
		Short:         "Real-estate CRM backend",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(ServeCmd(), MigrateCmd(), NotifyCmd())
	return root
}
