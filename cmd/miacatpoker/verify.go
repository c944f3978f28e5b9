package main

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/sync/errgroup"

	"github.com/rubyatmidnight/miacatpoker/cmd/miacatpoker/shared"
	"github.com/rubyatmidnight/miacatpoker/internal/game"
	"github.com/rubyatmidnight/miacatpoker/internal/store"
)

var (
	passStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#2ECC71")).Bold(true)
	failStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#E74C3C")).Bold(true)
)

// VerifyCmd re-derives each record from its revealed seeds and reports the
// per-stage outcome. Records are independent, so files verify concurrently.
type VerifyCmd struct {
	Files  []string `arg:"" help:"Record files to verify"`
	Player string   `help:"Check this player's revealed seed before the full report"`
	Seed   string   `help:"Client seed to check for --player"`
	Jobs   int      `default:"4" help:"Maximum concurrent verifications"`
	Debug  bool     `help:"Enable debug logging"`
}

func (cmd VerifyCmd) Run() error {
	logger := shared.SetupLogger(cmd.Debug)

	if (cmd.Player == "") != (cmd.Seed == "") {
		return errors.New("--player and --seed must be given together")
	}
	if cmd.Player != "" && len(cmd.Files) != 1 {
		return errors.New("--player check works on exactly one record file")
	}

	type outcome struct {
		file   string
		report game.Report
		err    error
	}
	outcomes := make([]outcome, len(cmd.Files))

	jobs := cmd.Jobs
	if jobs < 1 {
		jobs = 1
	}

	var g errgroup.Group
	g.SetLimit(jobs)
	for i, file := range cmd.Files {
		g.Go(func() error {
			record, err := store.Load(file)
			if err != nil {
				outcomes[i] = outcome{file: file, err: err}
				return nil
			}
			if cmd.Player != "" {
				if err := game.CheckPlayerSeed(record, cmd.Player, cmd.Seed); err != nil {
					outcomes[i] = outcome{file: file, err: err}
					return nil
				}
				logger.Info("player seed matches record", "player", cmd.Player)
			}
			outcomes[i] = outcome{file: file, report: game.Verify(record, nil)}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	failed := 0
	for _, o := range outcomes {
		if o.err != nil {
			failed++
			fmt.Printf("%s %s: %v\n", failStyle.Render("✗"), o.file, o.err)
			continue
		}
		printReport(o.file, o.report)
		if !o.report.Pass {
			failed++
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d records failed verification", failed, len(cmd.Files))
	}
	logger.Info("all records verified", "records", len(cmd.Files))
	return nil
}

func printReport(file string, report game.Report) {
	overall := passStyle.Render("PASS")
	if !report.Pass {
		overall = failStyle.Render(fmt.Sprintf("FAIL (%s)", report.FailedStage))
	}
	fmt.Printf("%s  game %s  version %s  %s\n", file, report.GameID, report.Version, overall)
	for _, sr := range report.Stages {
		mark := passStyle.Render("✓")
		detail := ""
		if !sr.OK {
			mark = failStyle.Render("✗")
			detail = "  " + sr.Detail
		}
		fmt.Printf("  %s %-12s%s\n", mark, sr.Stage, detail)
	}
}
