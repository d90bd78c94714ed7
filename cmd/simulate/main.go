package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/playroot/daily-arcade-go/internal/autoplay"
	"github.com/playroot/daily-arcade-go/internal/config"
	"github.com/playroot/daily-arcade-go/internal/mechanics"
)

func main() {
	seed := flag.Int("seed", 0, "puzzle seed (overrides -date)")
	date := flag.String("date", "", "puzzle date, YYYY-MM-DD (default: today UTC)")
	script := flag.String("script", "", "strategy script path (default: built-in solver)")
	steps := flag.Int("steps", autoplay.DefaultStepCap, "maximum strategy steps")
	showLogs := flag.Bool("logs", false, "print strategy log output")
	flag.Parse()

	if err := run(*seed, *date, *script, *steps, *showLogs); err != nil {
		fmt.Fprintln(os.Stderr, "simulate:", err)
		os.Exit(1)
	}
}

func run(seed int, date, script string, steps int, showLogs bool) error {
	cfg, err := resolveConfig(seed, date)
	if err != nil {
		return err
	}

	source := autoplay.SolverScript
	if script != "" {
		raw, err := os.ReadFile(script)
		if err != nil {
			return fmt.Errorf("read script: %w", err)
		}
		source = string(raw)
	}

	runner, err := autoplay.NewRunner(source)
	if err != nil {
		return err
	}
	runner.StepCap = steps

	sess, err := mechanics.NewSession(cfg)
	if err != nil {
		return err
	}

	fmt.Printf("seed %d: %s / %s / %s, difficulty %d\n",
		cfg.Seed, cfg.Mechanic, cfg.Element, cfg.Constraint, cfg.Difficulty)
	if cfg.Modifier != "" {
		fmt.Printf("modifier: %s\n", cfg.Modifier)
	}

	res, err := runner.Play(sess)
	if err != nil {
		return err
	}

	if showLogs {
		for _, entry := range runner.Logs() {
			fmt.Printf("[%s] %s\n", entry.Time.Format(time.TimeOnly), entry.Message)
		}
	}

	out, err := json.MarshalIndent(res, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}

func resolveConfig(seed int, date string) (config.GameConfig, error) {
	if seed != 0 {
		if int64(seed) != int64(int32(seed)) {
			return config.GameConfig{}, fmt.Errorf("seed %d out of 32-bit range", seed)
		}
		return config.Generate(int32(seed))
	}
	day := time.Now().UTC()
	if date != "" {
		parsed, err := time.Parse("2006-01-02", date)
		if err != nil {
			return config.GameConfig{}, fmt.Errorf("parse date %q: %w", date, err)
		}
		day = parsed
	}
	return config.Daily(day)
}
