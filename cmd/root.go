package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

//nolint:gochecknoglobals // Cobra boilerplate
var verbose bool

//nolint:gochecknoglobals // Cobra boilerplate
var configFile string

//nolint:gochecknoglobals // Cobra boilerplate
var seed uint64

//nolint:gochecknoglobals // Cobra boilerplate
var rootCmd = &cobra.Command{
	Use:   "career-kit",
	Short: "Build resumes and cover letters, check ATS fit, and practice interviews",
	Long: `career-kit renders ATS-friendly markdown resumes and cover letters from
structured JSON, scores resume text against a keyword heuristic, and runs
mock interviews from a bundled question bank.

Applications and generated cover letters are kept in a local history so
you can track where you applied and how far each process went.

Run 'career-kit serve' to expose the same features over an HTTP API.`,
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

//nolint:gochecknoinits // Cobra boilerplate
func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file (default is $HOME/.career-kit/config.json)")
	rootCmd.PersistentFlags().Uint64Var(&seed, "seed", 0, "seed for question sampling (default from config, else random)")
}

// getVerbose returns the verbose flag value.
func getVerbose() (result bool) {
	result = verbose
	return result
}

// getConfigFile returns the config file path.
func getConfigFile() (result string) {
	result = configFile
	return result
}

// getSeed returns the --seed value and whether it was given.
func getSeed() (value uint64, ok bool) {
	value = seed
	ok = rootCmd.PersistentFlags().Changed("seed")
	return value, ok
}
