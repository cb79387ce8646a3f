package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Kilat-Pet-Delivery/service-breed-catalog/internal/breedapi"
	"github.com/Kilat-Pet-Delivery/service-breed-catalog/internal/config"
	"github.com/Kilat-Pet-Delivery/service-breed-catalog/internal/domain/breed"
)

// cliOptions holds persistent flag values and the per-invocation session.
type cliOptions struct {
	apiURL     string
	shape      string
	maxRetries int
	retryDelay time.Duration
	pageDelay  time.Duration
	timeout    time.Duration
	verbose    bool
	jsonOutput bool

	logger   *zap.Logger
	acquirer *breedapi.Acquirer
}

func newRootCmd() *cobra.Command {
	opts := &cliOptions{}

	rootCmd := &cobra.Command{
		Use:           "breedctl",
		Short:         "Query the dog breed catalog",
		SilenceUsage:  true,
		SilenceErrors: true,
		Long: `breedctl fetches dog breeds from a paginated breed source.

Defaults come from the same BREEDS_* environment variables the service reads;
flags override them for one invocation.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.openSession(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if opts.logger != nil {
				_ = opts.logger.Sync()
			}
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&opts.apiURL, "api-url", "", "Breed source base URL (default from BREEDS_BREED_API_URL)")
	flags.StringVar(&opts.shape, "shape", "", "Record shape of the source: nested or flat")
	flags.IntVar(&opts.maxRetries, "max-retries", breedapi.DefaultMaxRetries, "Retries after the first attempt")
	flags.DurationVar(&opts.retryDelay, "retry-delay", breedapi.DefaultRetryDelay, "Delay between retries")
	flags.DurationVar(&opts.pageDelay, "page-delay", breedapi.DefaultPageDelay, "Delay before each page after the first")
	flags.DurationVar(&opts.timeout, "timeout", 5*time.Minute, "Overall operation timeout")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "Enable verbose logging")
	flags.BoolVar(&opts.jsonOutput, "json", false, "Print JSON instead of a table")

	rootCmd.AddCommand(newBreedsCmd(opts))
	return rootCmd
}

// openSession builds the logger and the acquirer used by this invocation.
func (o *cliOptions) openSession(cmd *cobra.Command) error {
	if o.verbose {
		log, err := zap.NewDevelopment()
		if err != nil {
			return err
		}
		o.logger = log
	} else {
		o.logger = zap.NewNop()
	}

	cfg, err := config.LoadBreedAPI()
	if err != nil {
		return err
	}
	// flags given on the command line win over the environment
	f := cmd.Flags()
	if f.Changed("api-url") {
		cfg.BaseURL = o.apiURL
	}
	if f.Changed("shape") {
		shape, err := breed.ParseSourceShape(o.shape)
		if err != nil {
			return err
		}
		cfg.Shape = shape
	}
	if f.Changed("max-retries") {
		if o.maxRetries < 0 {
			return fmt.Errorf("--max-retries must not be negative")
		}
		cfg.MaxRetries = o.maxRetries
	}
	if f.Changed("retry-delay") {
		cfg.RetryDelay = o.retryDelay
	}
	if f.Changed("page-delay") {
		cfg.PageDelay = o.pageDelay
	}

	client, err := breedapi.NewClient(cfg.ClientConfig())
	if err != nil {
		return err
	}
	o.acquirer = breedapi.NewAcquirer(client, cfg.AcquirerOptions(), o.logger)
	return nil
}

func (o *cliOptions) context(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithTimeout(ctx, o.timeout)
}
