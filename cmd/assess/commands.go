package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"advisory_portal_backend/internal/assessments/service"
	"advisory_portal_backend/internal/assessments/transport"
	"advisory_portal_backend/migrations"
	"advisory_portal_backend/platform/config"
	"advisory_portal_backend/platform/db"
	"advisory_portal_backend/platform/logger"

	"github.com/spf13/cobra"
)

type rootOptions struct {
	verbose bool
}

func (o *rootOptions) logger(cmd *cobra.Command) *logger.Logger {
	env := "production"
	if o.verbose {
		env = "development"
	}
	return logger.NewWithWriter(env, cmd.ErrOrStderr())
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	root := &cobra.Command{
		Use:   "assess",
		Short: "Run advisory assessments and maintenance tasks",
		Long: `assess runs the residency risk quiz, the entity recommender and the setup
cost estimator against answers read from a JSON file, and applies database migrations.`,
		SilenceUsage: true,
	}
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Verbose output")

	root.AddCommand(
		newKindsCmd(),
		newQuestionsCmd(),
		newRunCmd(opts),
		newMigrateCmd(opts),
	)
	return root
}

func newKindsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "kinds",
		Short: "List the available assessments",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			for _, k := range service.Kinds() {
				fmt.Fprintln(cmd.OutOrStdout(), k)
			}
			return nil
		},
	}
}

func newQuestionsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "questions <kind>",
		Short: "Print the questionnaire for an assessment as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			q, err := service.New(nil).Questionnaire(args[0])
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), q)
		},
	}
}

func newRunCmd(opts *rootOptions) *cobra.Command {
	var answersPath string
	var headlineOnly bool

	cmd := &cobra.Command{
		Use:   "run <kind>",
		Short: "Evaluate answers and print the result",
		Long: `Reads a JSON object of answers (question ID to value) from --answers, or from
stdin when --answers is "-", and prints the computed result.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			answers, err := readAnswers(cmd.InOrStdin(), answersPath)
			if err != nil {
				return err
			}

			svc := service.New(opts.logger(cmd))
			if headlineOnly {
				out, err := svc.Evaluate(cmd.Context(), args[0], answers.Answers())
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), out.Headline)
				return nil
			}

			resp, err := svc.Respond(cmd.Context(), args[0], answers.Answers())
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), resp)
		},
	}
	cmd.Flags().StringVarP(&answersPath, "answers", "a", "-", `answers JSON file, "-" for stdin`)
	cmd.Flags().BoolVar(&headlineOnly, "headline", false, "print only the one-line summary")
	return cmd
}

func newMigrateCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			log := opts.logger(cmd)

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			pool, err := db.NewPool(ctx, cfg)
			if err != nil {
				return fmt.Errorf("connect database: %w", err)
			}
			defer pool.Close()

			applied, err := db.RunMigrations(ctx, pool, migrations.FS)
			if err != nil {
				return err
			}
			log.Info("database migrations complete", "applied", applied)
			return nil
		},
	}
}

func readAnswers(stdin io.Reader, path string) (transport.AnswerSet, error) {
	var r io.Reader = stdin
	if path != "" && path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("open answers: %w", err)
		}
		defer f.Close()
		r = f
	}

	var answers transport.AnswerSet
	dec := json.NewDecoder(r)
	if err := dec.Decode(&answers); err != nil {
		return nil, fmt.Errorf("decode answers: %w", err)
	}
	if answers == nil {
		return nil, fmt.Errorf("decode answers: expected a JSON object")
	}
	return answers, nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
