package cmd

func RegisterBaseCommands() {
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(parseCmd)
	rootCmd.AddCommand(treeCmd)
	rootCmd.AddCommand(orderCmd)
	rootCmd.AddCommand(checksCmd)
	rootCmd.AddCommand(namingMapCmd)
	rootCmd.AddCommand(renameCmd)
	rootCmd.AddCommand(versionCmd)
}
