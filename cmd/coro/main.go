package main

import (
	"fmt"
	"os"
	"time"

	"github.com/cloudcmds/coroutine"
	"github.com/cloudcmds/coroutine/fiber"
	"github.com/cloudcmds/coroutine/object"
	"github.com/cloudcmds/coroutine/vm"
	"github.com/fatih/color"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var version = "dev"

func main() {
	root := &cobra.Command{
		Use:   "coro",
		Short: "Drive the coroutine runtime's demo generators",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			processGlobalFlags()
		},
	}
	root.PersistentFlags().Bool("no-color", false, "Disable colored output")
	root.PersistentFlags().String("log-level", "warn", "Log level (trace, debug, info, warn, error)")
	root.PersistentFlags().Int64("fiber-limit", fiber.DefaultLimit, "Cap on live execution contexts")
	viper.BindPFlag("no-color", root.PersistentFlags().Lookup("no-color"))
	viper.BindPFlag("log-level", root.PersistentFlags().Lookup("log-level"))
	viper.BindPFlag("fiber-limit", root.PersistentFlags().Lookup("fiber-limit"))

	runCmd := &cobra.Command{
		Use:   "run [demo]",
		Short: "Run a demo generator pipeline (counter, fib, delegate)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := "counter"
			if len(args) > 0 {
				name = args[0]
			}
			return runDemo(name, viper.GetString("output"))
		},
	}
	runCmd.Flags().StringP("output", "o", "", "Output format (json, text)")
	runCmd.Flags().Int64P("count", "n", 10, "Number of values to produce")
	viper.BindPFlag("output", runCmd.Flags().Lookup("output"))
	viper.BindPFlag("count", runCmd.Flags().Lookup("count"))
	root.AddCommand(runCmd)

	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "Measure resume round-trip time through a generator",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBench(viper.GetInt64("count"))
		},
	}
	benchCmd.Flags().Int64P("count", "n", 1_000_000, "Number of resume round-trips")
	viper.BindPFlag("count", benchCmd.Flags().Lookup("count"))
	root.AddCommand(benchCmd)

	root.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println(version)
		},
	})

	if err := root.Execute(); err != nil {
		fatal(err)
	}
}

// Reads global flags from Viper and adjusts the environment accordingly.
func processGlobalFlags() {
	if viper.GetBool("no-color") {
		color.NoColor = true
	}
	level, err := zerolog.ParseLevel(viper.GetString("log-level"))
	if err != nil {
		level = zerolog.WarnLevel
	}
	log.Logger = zerolog.New(zerolog.ConsoleWriter{
		Out:     os.Stderr,
		NoColor: viper.GetBool("no-color") || !isTerminalIO(),
	}).Level(level).With().Timestamp().Logger()

	fiber.SetLimit(viper.GetInt64("fiber-limit"))
}

func runDemo(name, format string) error {
	ts := vm.NewThreadState()
	co, err := makeDemo(ts, name, viper.GetInt64("count"))
	if err != nil {
		return err
	}
	defer co.DecRef()

	log.Debug().Str("demo", name).Msg("starting demo coroutine")

	it := co.Await()
	defer it.Release()

	values, err := coroutine.Collect(it)
	if err != nil {
		return err
	}
	out, err := getOutput(values, format)
	if err != nil {
		return err
	}
	if out != "" {
		fmt.Println(out)
	}
	return nil
}

func runBench(count int64) error {
	ts := vm.NewThreadState()
	code := coroutine.NewCode("spin", "bench.spin", 0)
	co := coroutine.New(ts, code, func(co *coroutine.Coroutine, args []object.Object) error {
		for {
			if _, err := co.Yield(object.Nil); err != nil {
				return err
			}
		}
	})
	defer co.DecRef()

	start := time.Now()
	for i := int64(0); i < count; i++ {
		if _, err := co.Send(object.Nil); err != nil {
			return err
		}
	}
	elapsed := time.Since(start)
	if err := co.Close(); err != nil {
		return err
	}
	fmt.Printf("%d round-trips in %s (%.0f ns/op)\n",
		count, elapsed, float64(elapsed.Nanoseconds())/float64(count))
	return nil
}
