package cmd

import (
	"embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/xeipuuv/gojsonschema"
	"gopkg.in/yaml.v3"

	"github.com/dosanma1/bitforge/internal/config"
)

//go:embed schemas/bitforge.v1.schema.json
var schemaFS embed.FS

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate the bitforge.yaml device table",
	Long: `Validates bitforge.yaml against the JSON Schema and the semantic
rules (unique variant suffixes, standard variants defined). A typo in
the device table otherwise only surfaces hours into a bitstream run.`,
	Args: cobra.NoArgs,
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	repoRoot, err := findRepoRoot()
	if err != nil {
		return fmt.Errorf("failed to locate repository root: %w", err)
	}

	configPath := filepath.Join(repoRoot, config.FileName)
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return fmt.Errorf("%s not found (the built-in device table needs no validation)", config.FileName)
	}

	fmt.Printf("🔍 Validating %s...\n", configPath)

	raw, err := os.ReadFile(configPath)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", config.FileName, err)
	}

	// gojsonschema speaks JSON, the config is YAML. yaml.v3 decodes
	// string-keyed maps, so the round trip through encoding/json works.
	var doc any
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return fmt.Errorf("failed to parse %s: %w", config.FileName, err)
	}
	docJSON, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to convert config for validation: %w", err)
	}

	schemaBytes, err := schemaFS.ReadFile("schemas/bitforge.v1.schema.json")
	if err != nil {
		return fmt.Errorf("failed to load JSON schema: %w", err)
	}

	result, err := gojsonschema.Validate(
		gojsonschema.NewBytesLoader(schemaBytes),
		gojsonschema.NewBytesLoader(docJSON),
	)
	if err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	if !result.Valid() {
		fmt.Println("❌ Configuration is invalid:")
		for _, desc := range result.Errors() {
			fmt.Printf("   - %s\n", desc)
		}
		return fmt.Errorf("%s failed schema validation", config.FileName)
	}

	// Schema passed; run the semantic checks too.
	if _, err := config.Load(configPath); err != nil {
		return err
	}

	fmt.Printf("✅ %s is valid!\n", config.FileName)
	return nil
}
