package cmd

import (
	"github.com/spf13/cobra"

	"github.com/donaldgifford/gleanctl/internal/generate"
)

var (
	generateDir   string
	generateForce bool
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate starter configuration files",
	Long:  `Commands for generating an example env file and sample definition files.`,
}

var generateEnvCmd = &cobra.Command{
	Use:   "env",
	Short: "Generate an example env file",
	Long: `Write a .env.setup.example file documenting every setting the setup
command reads. Rename it to .env and fill in your values.`,
	RunE: func(_ *cobra.Command, _ []string) error {
		path, err := generate.EnvFile(generateOpts())
		if err != nil {
			return err
		}

		newUI().Successf("Generated %s", path)

		return nil
	},
}

var generateObjectTypesCmd = &cobra.Command{
	Use:   "object-types",
	Short: "Generate a sample object_types.json",
	RunE: func(_ *cobra.Command, _ []string) error {
		path, err := generate.ObjectTypes(generateOpts())
		if err != nil {
			return err
		}

		newUI().Successf("Generated %s", path)

		return nil
	},
}

var generateQuickLinksCmd = &cobra.Command{
	Use:   "quicklinks",
	Short: "Generate a sample quick_links.json",
	RunE: func(_ *cobra.Command, _ []string) error {
		path, err := generate.QuickLinks(generateOpts())
		if err != nil {
			return err
		}

		newUI().Successf("Generated %s", path)

		return nil
	},
}

func init() {
	generateCmd.PersistentFlags().StringVar(&generateDir, "dir", "", "directory to write into (default is the current directory)")
	generateCmd.PersistentFlags().BoolVarP(&generateForce, "force", "f", false, "overwrite an existing file")

	generateCmd.AddCommand(generateEnvCmd)
	generateCmd.AddCommand(generateObjectTypesCmd)
	generateCmd.AddCommand(generateQuickLinksCmd)
	rootCmd.AddCommand(generateCmd)
}

func generateOpts() *generate.Opts {
	return &generate.Opts{Dir: generateDir, Force: generateForce}
}
