package main

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"resume-screener/internal/bootstrap"
	"resume-screener/internal/screening"
)

var screenCmd = &cobra.Command{
	Use:   "screen <resume.pdf|resume.docx>",
	Short: "Screen a single résumé file and print the result as JSON",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var years *float64
		if raw, _ := cmd.Flags().GetString("experience"); raw != "" {
			val, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				return fmt.Errorf("--experience: %w", err)
			}
			years = &val
		}

		ctx := cmd.Context()
		cfg := loadConfig()
		if cfg.ScreenTimeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, cfg.ScreenTimeout)
			defer cancel()
		}

		app, err := bootstrap.BuildContext(ctx, cfg)
		if err != nil {
			return err
		}
		defer app.Close()

		result, err := app.ScreeningService.Screen(ctx, screening.Request{
			Path:            args[0],
			ExperienceYears: years,
		})
		if err != nil {
			return err
		}

		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(map[string]any{
			"id":                result.ID,
			"match_score":       result.MatchScore,
			"skill_match_score": result.SkillMatchScore,
			"matched_skills":    result.MatchedSkills,
			"prediction":        result.Prediction,
			"experience_years":  result.ExperienceYears,
			"experience_source": result.ExperienceSource,
			"scorer":            result.Scorer,
			"profile":           result.Profile,
		})
	},
}

func init() {
	rootCmd.AddCommand(screenCmd)

	screenCmd.Flags().String("experience", "", "years of experience; overrides the résumé and the default")
	screenCmd.Flags().String("job", "", "path of the job description file")
	bindFlag(v, screenCmd, "JOB_DESCRIPTION_PATH", "job")
}
