package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"

	"study-toolkit/internal/config"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "studyctl <syllabus.pdf>",
	Short: "Analyze a syllabus PDF and print the derived course info",
	Long: `studyctl analyzes a local syllabus PDF: it extracts the text, asks the
model for the course name and topic list, records the course in the local
question bank, and prints the result as JSON.`,
	Args: cobra.ExactArgs(1),
	RunE: runAnalyze,
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	path := args[0]

	pdf, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}

	ctx := context.Background()
	container, err := config.NewContainer(ctx)
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}
	defer container.Close()

	info, err := container.SyllabusService.Analyze(ctx, pdf)
	if err != nil {
		return fmt.Errorf("analysis failed: %w", err)
	}

	out, err := json.MarshalIndent(info, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found or could not be loaded: %v", err)
	}

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
