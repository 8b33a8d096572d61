package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"bpa-inspection/config"
	telegram "bpa-inspection/internal/api"
	"bpa-inspection/internal/container"
	"bpa-inspection/internal/logging"
)

// Флаги CLI
var (
	envFileFlag    string
	simulationFlag bool
	autostartFlag  bool
)

var rootCmd = &cobra.Command{
	Use:   "bpa-inspection",
	Short: "Inspection handler for the BPA assembly line",
	Long: `bpa-inspection watches the RFID reader of the line over OPC UA, asks the camera
service for a detection over MQTT and writes the inspection response into the AAS registry.

Examples:
  bpa-inspection run --simulation --autostart
  bpa-inspection check
  bpa-inspection plan Golf
  bpa-inspection ids`,
	SilenceUsage: true,
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the inspection handler and the operator bot",
	Args:  cobra.NoArgs,
	RunE:  runMain,
}

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Probe OPC UA, MQTT and the AAS registry",
	Args:  cobra.NoArgs,
	RunE:  runCheck,
}

var planCmd = &cobra.Command{
	Use:   "plan <autoID>",
	Short: "Print the inspection plan of a car",
	Args:  cobra.ExactArgs(1),
	RunE:  runPlan,
}

var responseCmd = &cobra.Command{
	Use:   "response <autoID>",
	Short: "Print the stored inspection response of a car",
	Args:  cobra.ExactArgs(1),
	RunE:  runResponse,
}

var idsCmd = &cobra.Command{
	Use:   "ids",
	Short: "List idShort of all shells in the registry",
	Args:  cobra.NoArgs,
	RunE:  runIDs,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFileFlag, "env-file", ".env", "Path to the .env file")
	rootCmd.PersistentFlags().BoolVar(&simulationFlag, "simulation", false, "Use the simulation OPC UA endpoint and node")
	runCmd.Flags().BoolVar(&autostartFlag, "autostart", false, "Start the inspection handler right away")

	rootCmd.AddCommand(runCmd, checkCmd, planCmd, responseCmd, idsCmd)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}

// setup загружает конфигурацию и собирает сервисы приложения
func setup(cmd *cobra.Command) (*container.Container, zerolog.Logger, error) {
	cfg, err := config.Load(envFileFlag)
	if err != nil {
		return nil, zerolog.Nop(), fmt.Errorf("failed to load config: %w", err)
	}
	if cmd.Flags().Changed("simulation") {
		cfg.Simulation = simulationFlag
	}

	log := logging.New(cfg.LogLevel, os.Stderr)

	c, err := container.New(cmd.Context(), cfg, log)
	if err != nil {
		return nil, log, err
	}
	return c, log, nil
}

// runMain основной режим: обработчик инспекции и бот оператора
func runMain(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	c, log, err := setup(cmd)
	if err != nil {
		return err
	}
	defer c.Close(context.WithoutCancel(ctx))

	c.SyncCars(ctx)
	c.WatchTables(ctx)
	c.KeepAlive(ctx, container.HeartbeatInterval)

	if c.Config.TelegramToken != "" {
		bot, err := telegram.NewBot(c.Config.TelegramToken, telegram.Deps{
			Inspector: c,
			Modes:     c,
			Registry:  c.Registry,
			Cars:      c.Cars,
			Operators: c.OperatorService,
			Allowed:   c.Config.Allowed,
		}, log)
		if err != nil {
			return fmt.Errorf("failed to create bot: %w", err)
		}
		c.Events.Add(bot)

		go func() {
			if err := bot.Run(ctx); err != nil {
				log.Error().Err(err).Msg("bot stopped")
			}
		}()
	} else {
		log.Warn().Msg("TELEGRAM_TOKEN is not set, operator bot disabled")
	}

	if autostartFlag {
		log.Info().Str("status", c.Start(ctx)).Msg("autostart")
	}

	log.Info().Bool("simulation", c.Simulation()).Msg("inspection service is running")
	<-ctx.Done()
	log.Info().Msg("shutting down")
	return nil
}

func runCheck(cmd *cobra.Command, args []string) error {
	c, _, err := setup(cmd)
	if err != nil {
		return err
	}
	ctx := cmd.Context()

	handler := c.TestConnection(ctx)
	registry := c.Registry.TestConnection(ctx)
	status := c.Status()

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "opcua:    %s\n", okLabel(c.Subscriber().LastTestOK()))
	fmt.Fprintf(out, "mqtt:     %s\n", okLabel(c.Bridge().LastTestOK()))
	fmt.Fprintf(out, "aas:      %s\n", okLabel(registry))
	fmt.Fprintf(out, "handler:  %s\n", status.Label())

	if !handler || !registry {
		return fmt.Errorf("connection check failed")
	}
	return nil
}

func runPlan(cmd *cobra.Command, args []string) error {
	c, _, err := setup(cmd)
	if err != nil {
		return err
	}
	plan, err := c.Registry.GetInspectionPlan(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	return printJSON(cmd, plan)
}

func runResponse(cmd *cobra.Command, args []string) error {
	c, _, err := setup(cmd)
	if err != nil {
		return err
	}
	resp, err := c.Registry.GetInspectionResponse(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	return printJSON(cmd, resp)
}

func runIDs(cmd *cobra.Command, args []string) error {
	c, _, err := setup(cmd)
	if err != nil {
		return err
	}
	ids := c.Registry.GetAllIDShorts(cmd.Context())
	if len(ids) == 0 {
		return fmt.Errorf("registry returned no shells")
	}
	fmt.Fprintln(cmd.OutOrStdout(), strings.Join(ids, "\n"))
	return nil
}

func printJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func okLabel(ok bool) string {
	if ok {
		return "ok"
	}
	return "unreachable"
}
