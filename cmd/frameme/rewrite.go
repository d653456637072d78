package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Ragbaje/FrameMe/internal/observability"
	"github.com/Ragbaje/FrameMe/internal/rewriting"
)

var rewriteCmd = &cobra.Command{
	Use:   "rewrite",
	Short: "Rewrite rough notes into polished CV text",
	Long: `Try the AI rewriting offline: turn rough experience notes into bullet
points, or polish a profile paragraph. Requires a Gemini API key.`,
	RunE: runRewrite,
}

var (
	rewriteNotes   string
	rewriteProfile string
	rewriteAPIKey  string
)

func init() {
	rewriteCmd.Flags().StringVar(&rewriteNotes, "notes", "", "Rough experience notes to turn into bullet points")
	rewriteCmd.Flags().StringVar(&rewriteProfile, "profile", "", "Profile paragraph to polish")
	rewriteCmd.Flags().StringVar(&rewriteAPIKey, "api-key", "", "Gemini API key (overrides GEMINI_API_KEY env var)")
	rewriteCmd.MarkFlagsOneRequired("notes", "profile")
	rewriteCmd.MarkFlagsMutuallyExclusive("notes", "profile")
	rootCmd.AddCommand(rewriteCmd)
}

func runRewrite(_ *cobra.Command, _ []string) error {
	apiKey := rewriteAPIKey
	if apiKey == "" {
		apiKey = os.Getenv("GEMINI_API_KEY")
	}

	ctx := context.Background()
	rewriter, err := rewriting.New(ctx, apiKey)
	if err != nil {
		return fmt.Errorf("failed to create rewriter: %w", err)
	}
	defer func() { _ = rewriter.Close() }()

	printer := observability.NewPrinter(os.Stdout)

	if rewriteNotes != "" {
		bullets, err := rewriter.RewriteBullets(ctx, rewriteNotes)
		if err != nil {
			return fmt.Errorf("%s", rewriting.UserMessage(err))
		}
		printer.PrintRewrittenBullets(bullets)
		return nil
	}

	profile, err := rewriter.RewriteProfile(ctx, rewriteProfile)
	if err != nil {
		return fmt.Errorf("%s", rewriting.UserMessage(err))
	}
	printer.PrintRewrittenProfile(profile)
	return nil
}
