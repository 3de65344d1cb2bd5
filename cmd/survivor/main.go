package main

import (
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/oklog/ulid/v2"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/vampsurvivor/survivor/internal/config"
	"github.com/vampsurvivor/survivor/internal/core/event"
	coresys "github.com/vampsurvivor/survivor/internal/core/system"
	"github.com/vampsurvivor/survivor/internal/data"
	"github.com/vampsurvivor/survivor/internal/physics"
	"github.com/vampsurvivor/survivor/internal/scripting"
	"github.com/vampsurvivor/survivor/internal/system"
	"github.com/vampsurvivor/survivor/internal/world"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		cfgPath string
		frames  int
	)
	cmd := &cobra.Command{
		Use:           "survivor",
		Short:         "Run the fixed-step survivor simulation headless",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cfgPath, frames)
		},
	}
	defaultCfg := "config/survivor.toml"
	if p := os.Getenv("SURVIVOR_CONFIG"); p != "" {
		defaultCfg = p
	}
	cmd.Flags().StringVarP(&cfgPath, "config", "c", defaultCfg, "path to the TOML config (env SURVIVOR_CONFIG)")
	cmd.Flags().IntVar(&frames, "frames", 0, "stop after this many frames, 0 runs until interrupted")
	return cmd
}

// ── Startup display helpers ────────────────────────────────────────

func printSection(title string) {
	lineLen := 46 - len(title) - 1
	if lineLen < 3 {
		lineLen = 3
	}
	fmt.Printf("  \033[33m── %s %s\033[0m\n", title, strings.Repeat("─", lineLen))
}

func printStat(label string, count int) {
	numStr := fmt.Sprintf("%d", count)
	dotsLen := 42 - len(label) - len(numStr)
	if dotsLen < 3 {
		dotsLen = 3
	}
	fmt.Printf("  %s \033[90m%s\033[0m \033[32m%s\033[0m\n", label, strings.Repeat("·", dotsLen), numStr)
}

func printReady(msg string) {
	fmt.Printf("  \033[32m▶\033[0m %s\n", msg)
}

// ── Simulation ────────────────────────────────────────────────────

func run(cfgPath string, frames int) error {
	// 1. Load config
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	// 2. Init logger
	log, err := newLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync()
	log = log.With(zap.String("run", ulid.Make().String()))

	// 3. Data and rules
	printSection("data")
	archetypes, err := data.LoadArchetypeTable(cfg.Data.Archetypes)
	if err != nil {
		return fmt.Errorf("load archetypes: %w", err)
	}
	printStat("archetypes", archetypes.Count())

	lua, err := scripting.NewEngine(cfg.Data.Scripts, log.Named("lua"))
	if err != nil {
		return fmt.Errorf("lua engine: %w", err)
	}
	defer lua.Close()

	// 4. Stores
	engine := physics.NewEngine(physics.Options{
		Damping:               cfg.Physics.Damping,
		ContactForceThreshold: cfg.Physics.ContactForceThreshold,
	}, log.Named("physics"))
	ws := world.NewState(engine, archetypes, cfg.Simulation.TickRate)
	bus := event.NewBus()

	player, err := ws.Spawn(cfg.Player.Archetype, world.SpawnParams{
		Position: mgl64.Vec2{cfg.Player.X, cfg.Player.Y},
	})
	if err != nil {
		return fmt.Errorf("spawn player: %w", err)
	}
	log.Debug("player spawned", zap.Uint64("entity", uint64(player)))

	// 5. Systems, in phase order
	clock := coresys.NewGameTick(cfg.Simulation.TickRate, cfg.Simulation.MaxTicksPerFrame)
	runner := coresys.NewRunner()
	runner.Register(system.NewEventSystem(bus))
	stats := system.NewStatsSystem(ws, bus, cfg.Simulation.StatsInterval, log.Named("stats"))
	runner.Register(stats)

	core := system.NewCore(ws, bus, log)
	core.Register(runner)

	// keyboard polling is external; circle once every 4 seconds of ticks
	period := int(4 * time.Second / cfg.Simulation.TickRate)
	runner.Register(system.NewInputSystem(ws, &system.CircleInput{Period: period}))
	runner.Register(system.NewEnemyAISystem(ws))
	if cfg.Spawner.Enabled {
		runner.Register(system.NewSpawnerSystem(ws, system.SpawnerConfig{
			Archetype: cfg.Spawner.Archetype,
			Interval:  cfg.Spawner.Interval,
			Position:  mgl64.Vec2{cfg.Spawner.X, cfg.Spawner.Y},
			MaxAlive:  cfg.Spawner.MaxAlive,
		}, log.Named("spawner")))
	}
	runner.Register(system.NewAbilitySystem(ws, log.Named("ability")))
	runner.Register(system.NewDamageSystem(ws, lua, cfg.Simulation.TickRate))
	runner.Register(system.NewLifetimeSystem(ws))
	runner.Register(system.NewDeathSystem(ws, clock, bus, log.Named("death")))

	sched := coresys.NewScheduler(clock, runner, log.Named("scheduler"))

	// 6. Frame loop
	shutdownCh := make(chan os.Signal, 1)
	signal.Notify(shutdownCh, syscall.SIGINT, syscall.SIGTERM)

	frameDur := time.Second / time.Duration(cfg.Simulation.FrameRate)
	ticker := time.NewTicker(frameDur)
	defer ticker.Stop()

	printSection("ready")
	printReady(fmt.Sprintf("tick %s, frame %s", cfg.Simulation.TickRate, frameDur))
	fmt.Println()

	last := time.Now()
	frame := 0
	for {
		select {
		case now := <-ticker.C:
			dt := now.Sub(last).Seconds()
			last = now
			if _, err := sched.Frame(dt); err != nil {
				return fmt.Errorf("frame %d: %w", frame, err)
			}
			frame++
			if frames > 0 && frame >= frames {
				stats.Log()
				log.Info("frame limit reached", zap.Int("frames", frame), zap.Uint64("ticks", clock.TicksElapsed))
				return nil
			}
		case sig := <-shutdownCh:
			stats.Log()
			log.Info("shutdown signal received",
				zap.String("signal", sig.String()),
				zap.Uint64("ticks", clock.TicksElapsed),
				zap.Uint64("dropped_ticks", clock.DroppedTicks))
			return nil
		}
	}
}

func newLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level = zapcore.InfoLevel
	}

	var zapCfg zap.Config
	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		zapCfg.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
		zapCfg.EncoderConfig.ConsoleSeparator = "  "
		zapCfg.DisableCaller = true
		zapCfg.DisableStacktrace = true
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)

	return zapCfg.Build()
}
