package main

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/meera/wayfarer/internal/agent"
	"github.com/meera/wayfarer/internal/catalog"
	"github.com/meera/wayfarer/internal/governance"
	"github.com/meera/wayfarer/internal/llm"
	"github.com/meera/wayfarer/internal/observability"
	"github.com/meera/wayfarer/internal/store"
	"github.com/meera/wayfarer/pkg/config"
)

func main() {
	observability.PrintBanner()
	observability.InitializeTerminal()

	// Route all log output through the terminal mutex so it never
	// interrupts the status line's cursor save/restore sequence.
	log.SetOutput(observability.NewTermWriter())

	// .env is optional; a missing file just means the key is already
	// in the environment or in config.json.
	_ = godotenv.Load()

	cfg := config.LoadConfig("config.json")

	loader := catalog.NewLoader(cfg.App.DataDir)
	if err := loader.Preload(); err != nil {
		log.Fatalf("failed to load catalogs: %v", err)
	}

	pName, pCfg := cfg.GetDefaultProvider()
	if pName == "" {
		log.Fatal("No enabled provider found in config")
	}

	apiKey := pCfg.ResolveAPIKey()
	if apiKey == "" {
		log.Fatalf("No API key configured for provider %s (set api_key or %s)", pName, pCfg.APIKeyEnv)
	}

	client, err := llm.NewClient(apiKey, pCfg.BaseURL, llm.Options{
		Model:       pCfg.Model,
		Temperature: pCfg.Temperature,
		MaxTokens:   pCfg.MaxTokens,
	})
	if err != nil {
		log.Fatal(err)
	}

	runs, err := store.NewRunStore(cfg.Memory.Path)
	if err != nil {
		log.Fatal(err)
	}
	defer runs.Close()

	prompts := agent.NewPromptManager(cfg.App.PromptsDir)
	policy := governance.NewDefaultPolicyEngine()
	logger := observability.NewLogger()

	planner := agent.NewPlanner(client, loader, prompts, policy, logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Live status line (1-second updates)
	go func() {
		ticker := time.NewTicker(1 * time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				observability.PrintLiveStatus()
			}
		}
	}()

	input := readRequest()
	if input == "" {
		observability.CleanupTerminal()
		log.Fatal("No trip request given")
	}

	state, err := planner.Run(ctx, input)
	if err != nil {
		observability.CleanupTerminal()
		log.Fatalf("\033[91m[ FAIL ] PLANNING ABORTED: %v\033[0m", err)
	}

	if _, err := runs.SaveRun(input, state.Request, stagePayloads(state), state.Summary, state.Success); err != nil {
		log.Printf("Warning: failed to persist run: %v", err)
	}

	observability.CleanupTerminal()
	renderPlan(state)
}

// readRequest takes the trip request from argv, falling back to one
// line from stdin.
func readRequest() string {
	if len(os.Args) > 1 {
		return strings.TrimSpace(strings.Join(os.Args[1:], " "))
	}
	fmt.Print("Describe your trip (destination, budget, duration, preferences): ")
	scanner := bufio.NewScanner(os.Stdin)
	if scanner.Scan() {
		return strings.TrimSpace(scanner.Text())
	}
	return ""
}

func stagePayloads(state *agent.PlanState) []store.StagePayload {
	return []store.StagePayload{
		{Stage: agent.StageFlight, Result: state.Flight},
		{Stage: agent.StageAccommodation, Result: state.Accommodation},
		{Stage: agent.StageItinerary, Result: state.Itinerary},
		{Stage: agent.StageBudget, Result: state.Budget},
	}
}

func renderPlan(state *agent.PlanState) {
	fmt.Printf("\n\033[1m=== TRIP PLAN: %s -> %s (%d days, $%.2f) ===\033[0m\n",
		state.Request.Origin, state.Request.Destination, state.Request.Days, state.Request.Budget)

	fmt.Println("\n\033[96m--- Flight ---\033[0m")
	if state.Flight.Flight != nil {
		f := state.Flight.Flight
		fmt.Printf("%s %s: $%.2f, %s-%s, %d stops\n", f.Airline, f.ID, f.Price, f.DepartureTime, f.ArrivalTime, f.Stops)
	} else {
		fmt.Println("No flight found")
	}
	fmt.Println(state.Flight.Reasoning.Text())

	fmt.Println("\n\033[96m--- Accommodation ---\033[0m")
	if state.Accommodation.Accommodation != nil {
		a := state.Accommodation.Accommodation
		fmt.Printf("%s (%s): $%.2f/night, total $%.2f\n", a.Name, a.Type, a.PricePerNight, state.Accommodation.TotalCost)
	} else {
		fmt.Println("No accommodation found")
	}
	fmt.Println(state.Accommodation.Reasoning.Text())

	fmt.Println("\n\033[96m--- Itinerary ---\033[0m")
	for _, day := range state.Itinerary.Days {
		fmt.Printf("Day %d:\n", day.Day)
		for _, a := range day.Activities {
			fmt.Printf("  - %s (%s): $%.2f\n", a.Name, a.Category, a.Cost)
		}
	}
	fmt.Printf("Activities total: $%.2f\n", state.Itinerary.TotalCost)

	fmt.Println("\n\033[96m--- Budget ---\033[0m")
	verdict := "WITHIN BUDGET"
	if !state.Budget.WithinBudget {
		verdict = "OVER BUDGET"
	}
	fmt.Printf("%s: spent $%.2f of $%.2f, remaining $%.2f (%.1f%%)\n",
		verdict, state.Budget.TotalSpent, state.Request.Budget, state.Budget.Remaining, state.Budget.PercentUsed)
	for _, s := range state.Budget.Suggestions {
		fmt.Printf("  * %s\n", s)
	}

	fmt.Println("\n\033[96m--- Summary ---\033[0m")
	fmt.Println(state.Summary)
	fmt.Printf("\nSuccess: %v\n", state.Success)
}
