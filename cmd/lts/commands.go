package main

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/joshikstr/go-thorlabs-lts/pkg/lts"
)

var (
	serialFlag string
	simFlag    bool
	verbose    bool
)

func init() {
	rootCmd.PersistentFlags().StringVar(&serialFlag, "serial", "", "Serial number of the stage (or set LTS_SERIAL)")
	rootCmd.PersistentFlags().BoolVar(&simFlag, "sim", false, "Use the simulated backend instead of hardware")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(discoverCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(homeCmd)
	rootCmd.AddCommand(moveCmd)
	rootCmd.AddCommand(setVelocityCmd)
	rootCmd.AddCommand(runCmd)
}

var discoverCmd = &cobra.Command{
	Use:   "discover",
	Short: "List connected LTS stages",
	Run: func(cmd *cobra.Command, args []string) {
		serials, err := lts.Discover(getBackend())
		if err != nil {
			fmt.Printf("Error discovering: %v\n", err)
			os.Exit(1)
		}

		if len(serials) == 0 {
			fmt.Println("No stages found.")
			return
		}
		for _, s := range serials {
			fmt.Printf("Found stage: %s\n", s)
		}
	},
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the stage's cached status",
	Run: func(cmd *cobra.Command, args []string) {
		stage := getStage()
		defer stage.Close()

		fmt.Printf("Serial:       %s\n", stage.Serial())
		fmt.Printf("Controller:   %s (%s)\n", stage.ControllerName(), stage.Description())
		fmt.Printf("Stage:        %s\n", stage.StageName())
		fmt.Printf("Position:     %.3f mm\n", stage.Position())
		fmt.Printf("Velocity:     %.3f mm/s\n", stage.Velocity())
		fmt.Printf("Acceleration: %.3f mm/s²\n", stage.Acceleration())
	},
}

var homeCmd = &cobra.Command{
	Use:   "home",
	Short: "Home the stage (establishes the zero reference)",
	Run: func(cmd *cobra.Command, args []string) {
		stage := getStage()
		defer stage.Close()

		fmt.Println("Homing...")
		if err := stage.Home(); err != nil {
			fmt.Printf("Error homing: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Homed. Position: %.3f mm\n", stage.Position())
	},
}

var moveCmd = &cobra.Command{
	Use:   "move [position-mm]",
	Short: "Move the stage to an absolute position",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		position, err := strconv.ParseFloat(args[0], 64)
		if err != nil {
			fmt.Printf("Invalid position '%s': must be a number\n", args[0])
			os.Exit(1)
		}

		var extra []float64
		if cmd.Flags().Changed("velocity") {
			v, _ := cmd.Flags().GetFloat64("velocity")
			extra = append(extra, v)
			if cmd.Flags().Changed("accel") {
				a, _ := cmd.Flags().GetFloat64("accel")
				extra = append(extra, a)
			}
		} else if cmd.Flags().Changed("accel") {
			fmt.Println("--accel requires --velocity")
			os.Exit(1)
		}

		stage := getStage()
		defer stage.Close()

		if err := stage.MoveToPosition(position, extra...); err != nil {
			fmt.Printf("Error moving: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Done. Position: %.3f mm\n", stage.Position())
	},
}

var setVelocityCmd = &cobra.Command{
	Use:   "set-velocity [velocity [acceleration]]",
	Short: "Set velocity and acceleration (no arguments resets to defaults)",
	Args:  cobra.MaximumNArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		params := make([]float64, 0, len(args))
		for _, arg := range args {
			v, err := strconv.ParseFloat(arg, 64)
			if err != nil {
				fmt.Printf("Invalid value '%s': must be a number\n", arg)
				os.Exit(1)
			}
			params = append(params, v)
		}

		stage := getStage()
		defer stage.Close()

		if err := stage.SetVelocity(params...); err != nil {
			fmt.Printf("Error setting velocity: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Velocity: %.3f mm/s, Acceleration: %.3f mm/s²\n", stage.Velocity(), stage.Acceleration())
	},
}

var runCmd = &cobra.Command{
	Use:   "run [sequence.yaml]",
	Short: "Run a move sequence from a YAML file",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		seq, err := lts.LoadSequence(args[0])
		if err != nil {
			fmt.Printf("Error loading sequence: %v\n", err)
			os.Exit(1)
		}

		stage := getStage()
		defer stage.Close()

		fmt.Printf("Running %d steps...\n", len(seq))
		if err := stage.RunSequence(seq); err != nil {
			fmt.Printf("Error running sequence: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Done. Position: %.3f mm\n", stage.Position())
	},
}

func init() {
	moveCmd.Flags().Float64("velocity", 0, "Velocity override in mm/s")
	moveCmd.Flags().Float64("accel", 0, "Acceleration override in mm/s² (requires --velocity)")
}

func getBackend() lts.Backend {
	if simFlag {
		if serialFlag != "" {
			return lts.NewSimBackend(serialFlag)
		}
		return lts.NewSimBackend()
	}

	// The Kinesis SDK is a closed .NET/C library with no Go binding;
	// hardware backends must be provided by the embedding application.
	fmt.Println("No hardware backend is compiled into this CLI. Run with --sim.")
	os.Exit(1)
	return nil
}

func getStage() *lts.Stage {
	// .env may provide LTS_SERIAL; a missing file is fine.
	_ = godotenv.Load()

	serial := serialFlag
	if serial == "" {
		serial = os.Getenv("LTS_SERIAL")
	}

	backend := getBackend()
	if serial == "" {
		serials, err := lts.Discover(backend)
		if err != nil || len(serials) == 0 {
			fmt.Println("Serial number required. Use --serial, set LTS_SERIAL, or run discover first.")
			os.Exit(1)
		}
		serial = serials[0]
	}

	var opts []lts.StageOption
	if verbose {
		opts = append(opts, lts.WithLogger(slog.Default()))
	}

	stage, err := lts.NewStage(backend, opts...)
	if err != nil {
		fmt.Printf("Error creating stage handle: %v\n", err)
		os.Exit(1)
	}
	if err := stage.Connect(serial); err != nil {
		fmt.Printf("Error connecting to %s: %v\n", serial, err)
		os.Exit(1)
	}
	return stage
}
