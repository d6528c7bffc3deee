package cmd

func RegisterBaseCommands() {
	rootCmd.AddCommand(seedCmd)
	rootCmd.AddCommand(exportCmd)
}
