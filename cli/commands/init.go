package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"text/template"

	"github.com/spf13/cobra"

	"github.com/concordlabs/concord/cli/config"
)

func (a *App) newInitCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init <project-name>",
		Short: "Initialize a new Concord bot project",
		Long: `Initialize a new Concord bot project with a standard directory structure.

Creates a project directory with:
  - main.go: A starter bot using the Concord SDK
  - concord.yaml: Project configuration
  - commands/: Directory for command handlers

Example:
  concord init mybot
  concord init mybot --token-profile dev`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runInit(args[0])
		},
	}

	cmd.Flags().StringVar(&a.initProfile, "token-profile", "main", "Token profile referenced by generated config")

	return cmd
}

func (a *App) runInit(projectPath string) error {
	projectName := filepath.Base(projectPath)

	// Validate project name (just the base name, not full path)
	if err := validateProjectName(projectName); err != nil {
		return err
	}

	// Check if directory already exists
	if _, err := os.Stat(projectPath); err == nil {
		return fmt.Errorf("directory %q already exists", projectPath)
	}

	// Create directory structure
	dirs := []string{
		projectPath,
		filepath.Join(projectPath, "commands"),
	}

	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	// Create .gitkeep files in empty directories
	gitkeepDirs := []string{
		filepath.Join(projectPath, "commands"),
	}

	for _, dir := range gitkeepDirs {
		path := filepath.Join(dir, ".gitkeep")
		if err := os.WriteFile(path, []byte{}, 0644); err != nil {
			return fmt.Errorf("failed to create %s: %w", path, err)
		}
	}

	// Generate main.go
	mainPath := filepath.Join(projectPath, "main.go")
	if err := generateFile(mainPath, mainGoTemplate, templateData{
		Project: projectName,
		Profile: a.initProfile,
	}); err != nil {
		return fmt.Errorf("failed to create main.go: %w", err)
	}

	// Generate concord.yaml
	configPath := filepath.Join(projectPath, "concord.yaml")
	if err := generateFile(configPath, concordYamlTemplate, templateData{
		Project: projectName,
		Profile: a.initProfile,
	}); err != nil {
		return fmt.Errorf("failed to create concord.yaml: %w", err)
	}

	// Seed the global config on first use.
	cfgPath := a.cfgFile
	if cfgPath == "" {
		cfgPath = config.DefaultConfigPath()
	}
	if _, err := os.Stat(cfgPath); os.IsNotExist(err) {
		cfg := &config.Config{
			DefaultProfile: a.initProfile,
			Profiles: map[string]config.ProfileConfig{
				a.initProfile: {TokenRef: a.initProfile},
			},
		}
		if err := config.SaveConfig(cfgPath, cfg); err != nil {
			return fmt.Errorf("failed to write %s: %w", cfgPath, err)
		}
		fmt.Fprintf(a.stdout, "Wrote %s\n", cfgPath)
	}

	// Print success message
	fmt.Fprintf(a.stdout, "Created Concord project: %s\n\n", projectName)
	fmt.Fprintln(a.stdout, "Next steps:")
	fmt.Fprintf(a.stdout, "  cd %s\n", projectPath)
	fmt.Fprintf(a.stdout, "  concord tokens set %s\n", a.initProfile)
	fmt.Fprintln(a.stdout, "  go run main.go")

	return nil
}

func validateProjectName(name string) error {
	if name == "" {
		return fmt.Errorf("project name cannot be empty")
	}

	// Check for invalid characters
	validName := regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9_-]*$`)
	if !validName.MatchString(name) {
		return fmt.Errorf("invalid project name %q: must start with a letter and contain only letters, numbers, underscores, and hyphens", name)
	}

	// Check for reserved names
	reserved := []string{".", "..", "concord"}
	for _, r := range reserved {
		if name == r {
			return fmt.Errorf("invalid project name %q: reserved name", name)
		}
	}

	return nil
}

type templateData struct {
	Project string
	Profile string
}

func generateFile(path string, tmplContent string, data templateData) error {
	tmpl, err := template.New("file").Parse(tmplContent)
	if err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return tmpl.Execute(f, data)
}

// Templates

var mainGoTemplate = `package main

import (
	"context"
	"fmt"
	"os"

	"github.com/concordlabs/concord/commands"
)

func main() {
	registry := commands.NewRegistry()

	ping := commands.MustFunc("ping", "Check whether the bot is alive",
		func(ctx context.Context) string {
			return "pong"
		})

	if err := registry.Register(ping); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}

	// Wire registry.Dispatch into your transport of choice.
	result, err := registry.Execute(context.Background(), "ping", nil)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}

	fmt.Println(result)
}
`

var concordYamlTemplate = `# Concord project configuration
project: {{.Project}}

# Bot tokens are stored via 'concord tokens set {{.Profile}}', never in
# this file.
default_profile: {{.Profile}}
profiles:
  {{.Profile}}:
    token_ref: {{.Profile}}
`
