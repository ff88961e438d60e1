package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"loomhouse/internal/seed"
)

var seedFile string

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load categories, services and CSR icons from a YAML file",
	Long: `Seed creates whatever the file lists that is not in the database yet.
Categories are matched by name within their parent, services and CSR icons by
title, so the same file can be applied repeatedly.`,
	Args: cobra.NoArgs,
	RunE: runSeed,
}

func init() {
	seedCmd.Flags().StringVarP(&seedFile, "file", "f", "seed.yaml", "seed file to apply")
}

func runSeed(cmd *cobra.Command, args []string) error {
	f, err := seed.LoadFile(seedFile)
	if err != nil {
		return err
	}

	m, err := openDatabase()
	if err != nil {
		return err
	}
	defer closeDatabase(m)

	if err := m.Migrate(); err != nil {
		return err
	}

	res, err := seed.NewSeeder(m.DB()).Apply(cmd.Context(), f)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "categories: %d created, %d existing\nservices: %d created\ncsr icons: %d created\n",
		res.CategoriesCreated, res.CategoriesExisting, res.ServicesCreated, res.CSRIconsCreated)
	return nil
}
