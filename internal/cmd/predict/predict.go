// Package predict parses predict command flags and runs one prediction
// submission from the terminal.
package predict

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"time"

	entrypoint "github.com/louisbranch/injuryrisk/internal/platform/cmd"
	"github.com/louisbranch/injuryrisk/internal/prediction"
	"github.com/louisbranch/injuryrisk/internal/prediction/httpclient"
)

// ErrPredictionFailed reports that the submission ended in the failed state.
var ErrPredictionFailed = errors.New("prediction failed")

// Config holds predict command configuration.
type Config struct {
	Endpoint string        `env:"INJURYRISK_PREDICT_ENDPOINT" envDefault:"http://localhost:3000/predict"`
	Timeout  time.Duration `env:"INJURYRISK_PREDICT_TIMEOUT" envDefault:"0s"`

	// Raw field values keyed by form field. Empty values stay absent.
	Values map[prediction.Field]string `env:"-"`
}

// ParseConfig parses environment and flags into Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}

	var age, weight, height, injuries, intensity string
	fs.StringVar(&cfg.Endpoint, "endpoint", cfg.Endpoint, "Prediction service URL")
	fs.DurationVar(&cfg.Timeout, "timeout", cfg.Timeout, "Request timeout (0 disables)")
	fs.StringVar(&age, "age", "", "Player age in years")
	fs.StringVar(&weight, "weight", "", "Player weight in kg")
	fs.StringVar(&height, "height", "", "Player height in cm")
	fs.StringVar(&injuries, "previous-injuries", "", "Previous injuries (0 or 1)")
	fs.StringVar(&intensity, "training-intensity", "", "Training intensity (Low, Medium or High)")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}

	cfg.Values = map[prediction.Field]string{
		prediction.FieldAge:               age,
		prediction.FieldWeightKg:          weight,
		prediction.FieldHeightCm:          height,
		prediction.FieldPreviousInjuries:  injuries,
		prediction.FieldTrainingIntensity: intensity,
	}
	return cfg, nil
}

// Run submits the configured values once and prints the outcome to out.
func Run(ctx context.Context, cfg Config, out io.Writer) error {
	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServicePredict, func(ctx context.Context) error {
		client, err := httpclient.New(cfg.Endpoint, httpclient.WithTimeout(cfg.Timeout))
		if err != nil {
			return fmt.Errorf("init prediction client: %w", err)
		}
		return submit(ctx, prediction.NewController(client), cfg.Values, out)
	})
}

func submit(ctx context.Context, controller *prediction.Controller, values map[prediction.Field]string, out io.Writer) error {
	for _, field := range prediction.Fields() {
		if err := controller.UpdateField(field, values[field]); err != nil {
			return err
		}
	}
	state, err := controller.Submit(ctx)
	if err != nil {
		return err
	}
	if state.Phase != prediction.PhaseSucceeded {
		fmt.Fprintln(out, state.ErrorMessage())
		return ErrPredictionFailed
	}
	fmt.Fprintf(out, "Injury risk: %s\n", state.Result.RiskLabel())
	fmt.Fprintf(out, "Recovery time: %s days\n", state.Result.RecoveryDays())
	return nil
}
