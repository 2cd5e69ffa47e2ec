package cmd

import (
	"crew-route-service/internal/adapters/distance"
	"crew-route-service/internal/adapters/repositories"
	"crew-route-service/internal/api/dto"
	"crew-route-service/internal/config"
	"crew-route-service/internal/platform/obs"
	"crew-route-service/internal/services"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var (
	jobsPath  string
	crewsPath string
	dateFlag  string
	compact   bool
)

// errRunFailed signals a result with success=false; the JSON is still printed.
var errRunFailed = errors.New("optimization failed")

var optimizeCmd = &cobra.Command{
	Use:   "optimize",
	Short: "Run the routing engine and print the result as JSON",
	RunE:  optimize,
}

func init() {
	optimizeCmd.Flags().StringVar(&jobsPath, "jobs", "", "jobs JSON file")
	optimizeCmd.Flags().StringVar(&crewsPath, "crews", "", "crews JSON file")
	optimizeCmd.Flags().StringVar(&dateFlag, "date", "", "optimization date (YYYY-MM-DD), default today")
	optimizeCmd.Flags().BoolVar(&compact, "compact", false, "print single-line JSON")
	_ = optimizeCmd.MarkFlagRequired("jobs")
	_ = optimizeCmd.MarkFlagRequired("crews")
	rootCmd.AddCommand(optimizeCmd)
}

func optimize(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return err
	}

	date := time.Now()
	if dateFlag != "" {
		date, err = time.Parse(time.DateOnly, dateFlag)
		if err != nil {
			return fmt.Errorf("--date: %w", err)
		}
	}

	jobs, err := repositories.ReadJobs(jobsPath)
	if err != nil {
		return err
	}
	crews, err := repositories.ReadCrews(crewsPath)
	if err != nil {
		return err
	}

	opt, err := services.NewOptimizer(cfg, distance.NewHaversineModel(cfg.AverageSpeedMph), services.DefaultPolicies(), obs.NewLogger("routeopt"))
	if err != nil {
		return err
	}
	res := opt.Optimize(services.Request{Date: date, Jobs: jobs, Crews: crews})

	enc := json.NewEncoder(cmd.OutOrStdout())
	if !compact {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(dto.OptimizationFrom(res)); err != nil {
		return fmt.Errorf("write result: %w", err)
	}

	if !res.Success {
		return fmt.Errorf("%w: %s", errRunFailed, res.Error)
	}
	return nil
}
