// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package main

import (
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/poiesic/scout"
	"github.com/poiesic/scout/ai"
	"github.com/poiesic/scout/core"
)

func main() {
	app := &cli.App{
		Name:  "scout",
		Usage: "Federated web search with AI enrichment",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
			&cli.StringFlag{
				Name:    "db",
				Aliases: []string{"d"},
				Usage:   "Path to BadgerDB history directory",
				Value:   "./scout-data",
			},
			&cli.StringFlag{
				Name:  "ai-host",
				Usage: "AI service host URL",
				Value: "http://localhost:11434/v1",
			},
			&cli.StringFlag{
				Name:  "chat-model",
				Usage: "Chat model for summaries and language detection",
			},
			&cli.StringFlag{
				Name:  "embedding-model",
				Usage: "Embedding model for relevance scoring",
			},
			&cli.StringFlag{
				Name:    "gnews-key",
				Usage:   "GNews API key (enables the news provider)",
				EnvVars: []string{"GNEWS_API_KEY"},
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:      "search",
				Usage:     "Run a search and print the enriched results",
				ArgsUsage: "<query>",
				Action:    searchCommand,
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:    "limit",
						Aliases: []string{"n"},
						Usage:   "Maximum number of results",
						Value:   core.DefaultLimit,
					},
					&cli.StringFlag{
						Name:  "type",
						Usage: "Search type (text, image, news)",
						Value: "text",
					},
					&cli.StringFlag{
						Name:  "date",
						Usage: "Date window (any, day, week, month, year)",
						Value: "any",
					},
					&cli.StringFlag{
						Name:  "content-type",
						Usage: "Content type (all, article, video, image, document)",
						Value: "all",
					},
					&cli.StringFlag{
						Name:  "domain",
						Usage: "Only keep results whose URL contains this domain",
					},
					&cli.StringFlag{
						Name:  "lang",
						Usage: "Result language code, or \"any\"",
						Value: "fr",
					},
					&cli.StringFlag{
						Name:  "category",
						Usage: "News category (world, business, sports, ...)",
					},
				},
			},
			{
				Name:      "suggest",
				Usage:     "Print query completions for a prefix",
				ArgsUsage: "<prefix>",
				Action:    suggestCommand,
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:    "limit",
						Aliases: []string{"n"},
						Usage:   "Maximum number of suggestions",
						Value:   core.DefaultLimit,
					},
				},
			},
			{
				Name:   "popular",
				Usage:  "Print the most searched queries",
				Action: popularCommand,
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  "days",
						Usage: "Reporting window in days",
						Value: 7,
					},
					&cli.IntFlag{
						Name:    "limit",
						Aliases: []string{"n"},
						Usage:   "Maximum number of queries",
						Value:   core.DefaultLimit,
					},
				},
			},
			{
				Name:   "trends",
				Usage:  "Print per-day search counts",
				Action: trendsCommand,
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  "days",
						Usage: "Reporting window in days",
						Value: 7,
					},
				},
			},
			{
				Name:   "recent",
				Usage:  "Print the most recent searches",
				Action: recentCommand,
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:    "limit",
						Aliases: []string{"n"},
						Usage:   "Maximum number of records",
						Value:   core.DefaultLimit,
					},
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

// openEngine builds an Engine from the global flags.
func openEngine(c *cli.Context) (*scout.Engine, error) {
	aiOpts := []ai.ConfigOption{ai.WithHost(c.String("ai-host"))}
	if model := c.String("chat-model"); model != "" {
		aiOpts = append(aiOpts, ai.WithChatModel(model))
	}
	if model := c.String("embedding-model"); model != "" {
		aiOpts = append(aiOpts, ai.WithEmbeddingModel(model))
	}
	cfg := ai.NewConfig(aiOpts...)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid AI configuration: %w", err)
	}

	return scout.NewEngine(c.String("db"),
		scout.WithAIConfig(cfg),
		scout.WithGNewsAPIKey(c.String("gnews-key")),
		scout.WithSource("cli"))
}

func searchCommand(c *cli.Context) error {
	query := strings.TrimSpace(strings.Join(c.Args().Slice(), " "))
	if query == "" {
		return fmt.Errorf("usage: scout search <query>")
	}

	engine, err := openEngine(c)
	if err != nil {
		return err
	}
	defer engine.Close()

	criteria := core.FilterCriteria{
		Date:     core.DateWindow(c.String("date")),
		Type:     core.ContentType(c.String("content-type")),
		Domain:   c.String("domain"),
		Language: c.String("lang"),
		Category: c.String("category"),
	}

	outcome, err := engine.Search(c.Context, query, c.String("type"), c.Int("limit"), criteria)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	fmt.Printf("%d result(s) for %q (intent: %s, language: %s)\n\n",
		outcome.Count, outcome.Query.Raw, outcome.Query.Intent, outcome.Query.Language)
	for i, r := range outcome.Results {
		fmt.Printf("%2d. [%.1f] %s\n", i+1, r.RelevanceScore, r.Title)
		fmt.Printf("    %s\n", r.URL)
		if r.Summary != "" {
			fmt.Printf("    %s\n", r.Summary)
		}
		if len(r.Topics) > 0 {
			fmt.Printf("    topics: %s\n", strings.Join(r.Topics, ", "))
		}
		fmt.Printf("    source: %s", r.Source)
		if !r.Enriched {
			fmt.Printf(" (not enriched)")
		}
		fmt.Println()
		fmt.Println()
	}
	return nil
}

func suggestCommand(c *cli.Context) error {
	prefix := strings.TrimSpace(strings.Join(c.Args().Slice(), " "))

	engine, err := openEngine(c)
	if err != nil {
		return err
	}
	defer engine.Close()

	suggestions, err := engine.Suggest(c.Context, prefix, c.Int("limit"))
	if err != nil {
		return fmt.Errorf("suggestions failed: %w", err)
	}
	for _, s := range suggestions {
		fmt.Println(s)
	}
	return nil
}

func popularCommand(c *cli.Context) error {
	engine, err := openEngine(c)
	if err != nil {
		return err
	}
	defer engine.Close()

	popular, err := engine.PopularSearches(c.Context, c.Int("days"), c.Int("limit"))
	if err != nil {
		return fmt.Errorf("popular searches failed: %w", err)
	}
	for _, p := range popular {
		fmt.Printf("%4d  %s\n", p.Count, p.Query)
	}
	return nil
}

func trendsCommand(c *cli.Context) error {
	engine, err := openEngine(c)
	if err != nil {
		return err
	}
	defer engine.Close()

	trends, err := engine.SearchTrends(c.Context, c.Int("days"))
	if err != nil {
		return fmt.Errorf("search trends failed: %w", err)
	}
	for _, point := range trends {
		fmt.Printf("%s  %d\n", point.Date, point.Count)
	}
	return nil
}

func recentCommand(c *cli.Context) error {
	engine, err := openEngine(c)
	if err != nil {
		return err
	}
	defer engine.Close()

	records, err := engine.RecentSearches(c.Context, c.Int("limit"))
	if err != nil {
		return fmt.Errorf("recent searches failed: %w", err)
	}
	for _, r := range records {
		fmt.Printf("%s  %-5s  %3d result(s)  %s\n",
			r.Timestamp.Local().Format("2006-01-02 15:04"), r.SearchType, r.ResultCount, r.Query)
	}
	return nil
}

func setupLogger(c *cli.Context) error {
	// Get log level from flag and normalize to lowercase
	levelStr := strings.ToLower(c.String("log-level"))

	// Map string to slog.Level
	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", levelStr)
	}

	// Configure slog with the specified level
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}
