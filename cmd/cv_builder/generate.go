package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Draft CV text with Gemini",
	Long:  "Draft a professional summary or rewrite job description bullets. Requires GEMINI_API_KEY.",
}

var generateSummaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Draft a professional summary",
	RunE:  runGenerateSummary,
}

var generateEnhanceCmd = &cobra.Command{
	Use:   "enhance",
	Short: "Rewrite job description bullets",
	RunE:  runGenerateEnhance,
}

var (
	generateTitle  string
	generateSkills string
	generateRole   string
	generateText   string
)

func init() {
	generateSummaryCmd.Flags().StringVar(&generateTitle, "title", "", "Job title (required)")
	generateSummaryCmd.Flags().StringVar(&generateSkills, "skills", "", "Comma-separated key skills (required)")
	_ = generateSummaryCmd.MarkFlagRequired("title")
	_ = generateSummaryCmd.MarkFlagRequired("skills")

	generateEnhanceCmd.Flags().StringVar(&generateRole, "role", "", "Role the description belongs to (required)")
	generateEnhanceCmd.Flags().StringVar(&generateText, "text", "", "Description to rewrite (required)")
	_ = generateEnhanceCmd.MarkFlagRequired("role")
	_ = generateEnhanceCmd.MarkFlagRequired("text")

	generateCmd.AddCommand(generateSummaryCmd, generateEnhanceCmd)
	rootCmd.AddCommand(generateCmd)
}

func runGenerateSummary(cmd *cobra.Command, _ []string) error {
	svc, err := newGenerator(cmd)
	if err != nil {
		return err
	}
	defer func() { _ = svc.Close() }()

	text, err := svc.ProfessionalSummary(cmd.Context(), strings.TrimSpace(generateTitle), strings.TrimSpace(generateSkills))
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintln(cmd.OutOrStdout(), text)
	return nil
}

func runGenerateEnhance(cmd *cobra.Command, _ []string) error {
	text := strings.TrimSpace(generateText)
	if text == "" {
		return fmt.Errorf("--text must not be blank")
	}

	svc, err := newGenerator(cmd)
	if err != nil {
		return err
	}
	defer func() { _ = svc.Close() }()

	out, err := svc.EnhanceDescription(cmd.Context(), text, strings.TrimSpace(generateRole))
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintln(cmd.OutOrStdout(), out)
	return nil
}
