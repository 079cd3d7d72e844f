package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/phrazzld/growthcast-api/internal/domain/growth"
	"github.com/phrazzld/growthcast-api/internal/domain/reminder"
	"github.com/phrazzld/growthcast-api/internal/platform/logger"
	"github.com/phrazzld/growthcast-api/internal/service"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// Output formats accepted by --output
const (
	formatJSON = "json"
	formatYAML = "yaml"
)

// cli holds the state shared by all subcommands.
type cli struct {
	output  string
	verbose bool
}

func newRootCommand() *cobra.Command {
	c := &cli{}

	rootCmd := &cobra.Command{
		Use:           "growthctl",
		Short:         "Forecast infant growth from recorded measurements",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if c.output != formatJSON && c.output != formatYAML {
				return fmt.Errorf("unsupported output format %q, expected json or yaml", c.output)
			}
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVarP(&c.output, "output", "o", formatJSON, "Output format (json or yaml)")
	rootCmd.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "Log engine activity to stderr")

	rootCmd.AddCommand(
		c.newPredictCommand(),
		c.newStatusCommand(),
		c.newReferenceCommand(),
		c.newRemindersCommand(),
	)
	return rootCmd
}

func (c *cli) logger(cmd *cobra.Command) *slog.Logger {
	level := "warn"
	if c.verbose {
		level = "debug"
	}
	return logger.New(cmd.ErrOrStderr(), level)
}

// write renders v in the selected output format.
func (c *cli) write(w io.Writer, v any) error {
	if c.output == formatYAML {
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("failed to encode output: %w", err)
		}
		return enc.Close()
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode output: %w", err)
	}
	return nil
}

// forecastFlags are shared by predict and status.
type forecastFlags struct {
	file   string
	months int
	now    string
}

func (f *forecastFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.file, "file", "f", "", "Input document (.json, .yaml or .yml; - for JSON on stdin)")
	cmd.Flags().IntVar(&f.months, "months", 0, "Months to forecast (overrides the document)")
	cmd.Flags().StringVar(&f.now, "now", "", "Reference time as RFC 3339 (overrides the document)")
	_ = cmd.MarkFlagRequired("file")
}

// forecast reads the input document and runs the engine over it.
func (c *cli) forecast(cmd *cobra.Command, f *forecastFlags) (*service.Forecast, error) {
	var doc forecastDoc
	if err := readDocument(f.file, cmd.InOrStdin(), &doc); err != nil {
		return nil, err
	}
	if f.months != 0 {
		doc.Months = f.months
	}
	if f.now != "" {
		doc.Now = f.now
	}

	in, err := doc.toInput()
	if err != nil {
		return nil, err
	}

	forecaster, err := service.NewForecaster(growth.NewDefaultService(), service.ForecastSettings{
		MaxMonths: growth.MaxReferenceAgeMonths,
	}, nil, c.logger(cmd))
	if err != nil {
		return nil, err
	}
	return forecaster.Forecast(cmd.Context(), in)
}

func (c *cli) newPredictCommand() *cobra.Command {
	flags := &forecastFlags{}
	cmd := &cobra.Command{
		Use:   "predict",
		Short: "Forecast growth for the coming months",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			forecast, err := c.forecast(cmd, flags)
			if err != nil {
				return err
			}
			return c.write(cmd.OutOrStdout(), forecast)
		},
	}
	flags.register(cmd)
	return cmd
}

// monthStatus is one line of the status report.
type monthStatus struct {
	Date            string        `json:"date" yaml:"date"`
	AgeMonths       int           `json:"age_months" yaml:"age_months"`
	Status          growth.Status `json:"status" yaml:"status"`
	ConfidenceScore float64       `json:"confidence_score" yaml:"confidence_score"`
	Recommendations []string      `json:"recommendations" yaml:"recommendations"`
}

func (c *cli) newStatusCommand() *cobra.Command {
	flags := &forecastFlags{}
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Report the forecast status of each month",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			forecast, err := c.forecast(cmd, flags)
			if err != nil {
				return err
			}

			report := make([]monthStatus, 0, len(forecast.Predictions))
			for _, p := range forecast.Predictions {
				report = append(report, monthStatus{
					Date:            p.Date.Format(dateLayout),
					AgeMonths:       p.AgeMonths,
					Status:          p.Assessment.Status,
					ConfidenceScore: p.ConfidenceScore,
					Recommendations: p.Assessment.Recommendations,
				})
			}
			return c.write(cmd.OutOrStdout(), report)
		},
	}
	flags.register(cmd)
	return cmd
}

// referenceReport is the output of the reference command.
type referenceReport struct {
	AgeMonths                int `json:"age_months" yaml:"age_months"`
	growth.ReferenceStandard `yaml:",inline"`
}

func (c *cli) newReferenceCommand() *cobra.Command {
	var age int
	cmd := &cobra.Command{
		Use:   "reference",
		Short: "Print the reference standard for an age in months",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if age < 0 {
				return fmt.Errorf("age must be a non-negative number of months, got %d", age)
			}
			age = min(age, growth.MaxReferenceAgeMonths)
			return c.write(cmd.OutOrStdout(), referenceReport{
				AgeMonths:         age,
				ReferenceStandard: growth.LookupStandard(age),
			})
		},
	}
	cmd.Flags().IntVar(&age, "age", 0, "Age in completed months")
	_ = cmd.MarkFlagRequired("age")
	return cmd
}

// reminderReport is the output of the reminders command.
type reminderReport struct {
	Medication  string      `json:"medication,omitempty" yaml:"medication,omitempty"`
	Timezone    string      `json:"timezone" yaml:"timezone"`
	Count       int         `json:"count" yaml:"count"`
	Occurrences []time.Time `json:"occurrences" yaml:"occurrences"`
	Next        *time.Time  `json:"next,omitempty" yaml:"next,omitempty"`
}

func (c *cli) newRemindersCommand() *cobra.Command {
	var file, timezone, after string
	cmd := &cobra.Command{
		Use:   "reminders",
		Short: "Expand a medication schedule into reminder times",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var doc scheduleDoc
			if err := readDocument(file, cmd.InOrStdin(), &doc); err != nil {
				return err
			}
			if timezone != "" {
				doc.Timezone = timezone
			}

			schedule, loc, err := doc.toSchedule()
			if err != nil {
				return err
			}
			occurrences, err := reminder.Expand(schedule, loc)
			if err != nil {
				return err
			}

			report := reminderReport{
				Medication:  schedule.Medication,
				Timezone:    loc.String(),
				Count:       len(occurrences),
				Occurrences: occurrences,
			}
			if after != "" {
				at, err := time.Parse(time.RFC3339, after)
				if err != nil {
					return fmt.Errorf("invalid --after %q: expected RFC3339", after)
				}
				next, ok, err := reminder.Next(schedule, at, loc)
				if err != nil {
					return err
				}
				if ok {
					report.Next = &next
				}
			}
			return c.write(cmd.OutOrStdout(), report)
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "Schedule document (.json, .yaml or .yml; - for JSON on stdin)")
	cmd.Flags().StringVar(&timezone, "timezone", "", "IANA time zone (overrides the document)")
	cmd.Flags().StringVar(&after, "after", "", "Also report the first reminder strictly after this RFC3339 time")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}
