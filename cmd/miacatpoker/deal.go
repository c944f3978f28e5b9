package main

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/rubyatmidnight/miacatpoker/cmd/miacatpoker/shared"
	"github.com/rubyatmidnight/miacatpoker/internal/config"
	"github.com/rubyatmidnight/miacatpoker/internal/fair"
	"github.com/rubyatmidnight/miacatpoker/internal/game"
	"github.com/rubyatmidnight/miacatpoker/internal/showdown"
	"github.com/rubyatmidnight/miacatpoker/internal/store"
	"github.com/rubyatmidnight/miacatpoker/internal/token"
)

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#5F2D87")).
			Padding(0, 1).
			Bold(true)

	headingStyle = lipgloss.NewStyle().Bold(true)
	dimStyle     = lipgloss.NewStyle().Faint(true)
)

// DealCmd produces a game record: it commits every seed, derives seating and
// the shuffle, deals the board, prints the outcome and persists the record.
type DealCmd struct {
	Config  string `arg:"" optional:"" help:"HCL table definition (omitted: the built-in demo table)"`
	Version string `help:"Protocol version to deal under (default from config)"`
	Output  string `short:"o" help:"Record output path (default <game-id>.json)"`
	Debug   bool   `help:"Enable debug logging"`
}

func (cmd DealCmd) Run() error {
	logger := shared.SetupLogger(cmd.Debug)

	cfg, err := config.Load(cmd.Config)
	if err != nil {
		return err
	}
	if cmd.Version != "" {
		cfg.Version = cmd.Version
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	gameID := cfg.GameID
	if gameID == "" {
		gameID = token.GameID()
	}
	serverSeed := cfg.ServerSeed
	if serverSeed == "" {
		serverSeed = token.ServerSeed()
	}

	clients := make([]fair.ClientSeed, len(cfg.Players))
	for i, p := range cfg.Players {
		salt := p.Salt
		if salt == "" {
			salt = token.Salt()
		}
		clients[i] = fair.ClientSeed{PlayerID: p.Name, Seed: p.Seed, Salt: salt}
	}

	logger.Debug("producing game", "game_id", gameID, "version", cfg.Version, "players", len(clients))

	record, err := game.NewProducer(nil).Produce(cfg.Version, gameID, serverSeed, clients)
	if err != nil {
		return err
	}

	printRecord(record)
	if err := printShowdown(record); err != nil {
		return err
	}

	output := cmd.Output
	if output == "" {
		output = cfg.Output
	}
	if output == "" {
		output = record.GameID + ".json"
	}
	if err := store.Save(output, record); err != nil {
		return fmt.Errorf("saving record: %w", err)
	}
	logger.Info("record saved", "path", output, "game_id", record.GameID, "version", record.Version)
	return nil
}

func printRecord(record *game.GameRecord) {
	fmt.Println(titleStyle.Render(" ♠ ♥ MiacatPoker provably fair deal ♦ ♣ "))
	fmt.Println()
	fmt.Printf("Game ID:       %s\n", record.GameID)
	fmt.Printf("Version:       %s\n", record.Version)
	fmt.Printf("Server hash:   %s\n", dimStyle.Render(truncate(record.ServerSeedCommitment)))
	fmt.Printf("Position hash: %s\n", dimStyle.Render(truncate(record.ServerCommitmentDouble)))
	fmt.Println()

	fmt.Println(headingStyle.Render("Commitments"))
	for _, p := range record.Players {
		fmt.Printf("  %-10s %s\n", p.ID, dimStyle.Render(truncate(p.Commitment)))
	}
	fmt.Println()

	fmt.Println(headingStyle.Render("Seating"))
	for i, id := range record.SeatOrder {
		fmt.Printf("  Position %d: %s\n", i+1, id)
	}
	fmt.Println()

	fmt.Println(headingStyle.Render("Deal"))
	for i, id := range record.SeatOrder {
		fmt.Printf("  Position %d (%s): %v\n", i+1, id, record.Deal.HoleCards[id])
	}
	fmt.Printf("  Burned: %v\n", record.Deal.BurnCards)
	fmt.Printf("  Flop:   %v\n", record.Deal.Flop)
	fmt.Printf("  Turn:   %s\n", record.Deal.Turn)
	fmt.Printf("  River:  %s\n", record.Deal.River)
	fmt.Println()
}

func printShowdown(record *game.GameRecord) error {
	results, err := showdown.Rank(record.Deal, record.SeatOrder)
	if err != nil {
		return fmt.Errorf("ranking hands: %w", err)
	}
	fmt.Println(headingStyle.Render("Showdown"))
	for i, r := range results {
		fmt.Printf("  %d. Position %d (%s) - %s %v\n", i+1, r.Position, r.PlayerID, r.Description, r.HoleCards)
	}
	fmt.Println()
	return nil
}

func truncate(hash string) string {
	if len(hash) <= 20 {
		return hash
	}
	return hash[:20] + "..."
}
