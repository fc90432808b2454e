package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"safetyportal/extractors"
	"safetyportal/importer"
	"safetyportal/internal/domain/duplicates"
	"safetyportal/internal/domain/manufacturer"
	"safetyportal/internal/domain/user"
	"safetyportal/internal/infrastructure/persistence"
	"safetyportal/normalization/algorithms"
)

var (
	userUsername string
	userPassword string
	userFullName string
	userRole     string

	importThreshold float64

	extractJSON   bool
	extractMaxMB  int64
	similarityMin float64
)

func init() {
	userCmd.AddCommand(userCreateCmd)
	userCreateCmd.Flags().StringVar(&userUsername, "username", "", "login name (required)")
	userCreateCmd.Flags().StringVar(&userPassword, "password", "", "password, at least 8 characters (required)")
	userCreateCmd.Flags().StringVar(&userFullName, "full-name", "", "display name")
	userCreateCmd.Flags().StringVar(&userRole, "role", "employee", "role: admin or employee")
	_ = userCreateCmd.MarkFlagRequired("username")
	_ = userCreateCmd.MarkFlagRequired("password")

	importManufacturersCmd.Flags().Float64Var(&importThreshold, "threshold", algorithms.DefaultDuplicateThreshold, "similarity threshold for duplicate detection")

	extractCmd.Flags().BoolVar(&extractJSON, "json", false, "print the result as JSON")
	extractCmd.Flags().Int64Var(&extractMaxMB, "max-mb", 10, "maximum PDF size in megabytes")

	similarityCmd.Flags().Float64Var(&similarityMin, "threshold", algorithms.DefaultDuplicateThreshold, "threshold for the is-similar verdict")
}

var userCmd = &cobra.Command{
	Use:   "user",
	Short: "Manage portal users",
}

var userCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a portal user",
	Long: `Create a portal user directly in the database.

Examples:
  portalctl user create --username admin --password 'long-secret' --role admin`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openDatabase()
		if err != nil {
			return err
		}
		defer db.Close()

		service := user.NewService(persistence.NewUserRepository(db), nil, slog.Default())
		u, err := service.Create(cmd.Context(), user.CreateRequest{
			Username: userUsername,
			Password: userPassword,
			FullName: userFullName,
			Role:     userRole,
		})
		if err != nil {
			return err
		}

		printf(cmd.OutOrStdout(), "Created user #%d %s (%s)\n", u.ID, u.Username, u.Role)
		return nil
	},
}

var importManufacturersCmd = &cobra.Command{
	Use:   "import-manufacturers <file.xlsx>",
	Short: "Import manufacturers from an Excel sheet",
	Long: `Import manufacturers from the first sheet of an Excel workbook.

The first row holds column names (Name, Product Type, Price, Location, ...).
Rows similar to an existing manufacturer are skipped as duplicates.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		file, err := os.Open(args[0])
		if err != nil {
			return err
		}
		defer file.Close()

		records, err := importer.ParseManufacturerSheet(file)
		if err != nil {
			return err
		}

		db, err := openDatabase()
		if err != nil {
			return err
		}
		defer db.Close()

		service := manufacturer.NewService(
			persistence.NewManufacturerRepository(db),
			duplicates.Config{Threshold: importThreshold},
			nil,
			slog.Default(),
		)
		result, err := importer.NewManufacturerImporter(service, slog.Default()).Import(cmd.Context(), records)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		printf(out, "Rows: %d, created: %d, duplicates: %d, errors: %d\n",
			result.Total, result.Created, result.Duplicates, len(result.Errors))

		if len(result.Errors) > 0 {
			w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			printf(w, "ROW\tNAME\tMESSAGE\n")
			for _, rowErr := range result.Errors {
				printf(w, "%d\t%s\t%s\n", rowErr.Row, rowErr.Name, rowErr.Message)
			}
			return w.Flush()
		}
		return nil
	},
}

var extractCmd = &cobra.Command{
	Use:   "extract <file.pdf>",
	Short: "Extract order fields from a PDF",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return err
		}

		reader := importer.NewPDFReader(extractMaxMB << 20)
		text, err := reader.ReadText(cmd.Context(), data)

		var result extractors.ExtractionResult
		if err != nil {
			result = extractors.FailedExtraction(fmt.Sprintf("Failed to read PDF: %v", err))
		} else {
			result = extractors.Extract(text)
		}

		out := cmd.OutOrStdout()
		if extractJSON {
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(result)
		}

		if !result.Success {
			return fmt.Errorf("extraction failed: %s", result.Error)
		}

		w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
		for _, row := range [][2]string{
			{"Manufacturer", result.Manufacturer},
			{"Product", result.Product},
			{"Subtype", result.Subtype},
			{"Quantity", result.Quantity},
			{"From", result.FromLocation},
			{"To", result.ToLocation},
		} {
			printf(w, "%s:\t%s\n", row[0], row[1])
		}
		return w.Flush()
	},
}

var similarityCmd = &cobra.Command{
	Use:   "similarity <a> <b>",
	Short: "Score how similar two strings are",
	Long: `Score two strings the same way duplicate detection does.

Examples:
  portalctl similarity "ABC Steel" "ABC Steel Pvt Ltd"`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		score := algorithms.Similarity(args[0], args[1])
		printf(cmd.OutOrStdout(), "similarity: %.4f\nsimilar: %t (threshold %.2f)\n",
			score, score > similarityMin, similarityMin)
		return nil
	},
}
