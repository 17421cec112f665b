package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/expert-profile/internal/schemas"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Check a profile JSON file against the profile schema",
	Long: `Check a profile JSON file against the built-in profile schema, or against
another JSON Schema given with --schema. --print-schema writes the built-in
schema to stdout.`,
	RunE: runCheck,
}

var (
	checkInputFile   string
	checkSchemaFile  string
	checkPrintSchema bool
)

func init() {
	checkCmd.Flags().StringVarP(&checkInputFile, "input", "i", "", "Path to profile JSON file")
	checkCmd.Flags().StringVarP(&checkSchemaFile, "schema", "s", "", "Path to a JSON Schema to check against instead of the built-in one")
	checkCmd.Flags().BoolVar(&checkPrintSchema, "print-schema", false, "Print the built-in profile schema and exit")

	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, _ []string) error {
	out := cmd.OutOrStdout()

	if checkPrintSchema {
		_, _ = fmt.Fprintln(out, schemas.ProfileSchema())
		return nil
	}
	if checkInputFile == "" {
		return fmt.Errorf(`required flag(s) "input" not set`)
	}

	if checkSchemaFile == "" {
		if err := schemas.ValidateProfileFile(checkInputFile); err != nil {
			return err
		}
		_, _ = fmt.Fprintf(out, "%s: valid profile\n", checkInputFile)
		return nil
	}

	schema, err := os.ReadFile(checkSchemaFile)
	if err != nil {
		return fmt.Errorf("failed to read schema file: %w", err)
	}
	document, err := os.ReadFile(checkInputFile)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("JSON file not found: %s", checkInputFile)
		}
		return fmt.Errorf("failed to read JSON file: %w", err)
	}
	if err := schemas.ValidateJSONString(string(schema), string(document)); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(out, "%s: valid against %s\n", checkInputFile, checkSchemaFile)
	return nil
}
