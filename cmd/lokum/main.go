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
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"

	"github.com/poiesic/lokum"
	"github.com/poiesic/lokum/ai"
	"github.com/poiesic/lokum/core"
	"github.com/poiesic/lokum/ingest"
	"github.com/poiesic/lokum/search"
)

func main() {
	// Populate the environment from .env when present
	_ = godotenv.Load()

	app := &cli.App{
		Name:  "lokum",
		Usage: "Hybrid structured and semantic search over real estate listings",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:   "populate",
				Usage:  "Index all listings from MongoDB into the vector index",
				Action: populateCommand,
				Flags: append(databaseFlags(),
					&cli.IntFlag{
						Name:  "limit",
						Usage: "Maximum listings to read per collection (0 = all)",
					},
					&cli.IntFlag{
						Name:  "pool-size",
						Usage: "Number of concurrent embedding workers",
						Value: 4,
					},
					&cli.IntFlag{
						Name:  "max-retries",
						Usage: "Maximum retry attempts for failed embeddings",
						Value: 3,
					},
					&cli.DurationFlag{
						Name:  "retry-delay",
						Usage: "Base delay for exponential backoff",
						Value: 1 * time.Second,
					},
				),
			},
			{
				Name:   "search",
				Usage:  "Search listings with structured filters and an optional semantic query",
				Action: searchCommand,
				Flags: append(databaseFlags(),
					&cli.StringFlag{
						Name:    "query",
						Aliases: []string{"q"},
						Usage:   "Free-form semantic query text",
					},
					&cli.StringFlag{
						Name:  "scope",
						Usage: "Which listings to search (rent, sale, both)",
						Value: "both",
					},
					&cli.IntFlag{
						Name:  "limit",
						Usage: "Maximum number of results",
						Value: search.DefaultLimit,
					},
					&cli.StringFlag{
						Name:  "city",
						Usage: "City substring filter",
					},
					&cli.StringFlag{
						Name:  "district",
						Usage: "District substring filter",
					},
					&cli.IntSliceFlag{
						Name:  "rooms",
						Usage: "Acceptable room counts",
					},
					&cli.IntFlag{
						Name:  "min-price",
						Usage: "Minimum price",
					},
					&cli.IntFlag{
						Name:  "max-price",
						Usage: "Maximum price",
					},
					&cli.Float64Flag{
						Name:  "min-area",
						Usage: "Minimum area in square meters",
					},
					&cli.Float64Flag{
						Name:  "max-area",
						Usage: "Maximum area in square meters",
					},
				),
			},
			{
				Name:   "stats",
				Usage:  "Show vector index statistics",
				Action: statsCommand,
				Flags:  databaseFlags(),
			},
			{
				Name:   "clear",
				Usage:  "Drop every vector from the index",
				Action: clearCommand,
				Flags:  databaseFlags(),
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

// databaseFlags are shared by every command that opens the database.
func databaseFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "mongo-uri",
			Usage:   "MongoDB connection URI",
			Value:   "mongodb://localhost:27017",
			EnvVars: []string{"MONGO_URI"},
		},
		&cli.StringFlag{
			Name:    "index",
			Aliases: []string{"i"},
			Usage:   "Path to the vector index directory",
			Value:   "./lokum-index",
			EnvVars: []string{"LOKUM_INDEX"},
		},
		&cli.StringFlag{
			Name:    "embedding-host",
			Usage:   "Embedding service host URL",
			Value:   "http://localhost:11434/v1",
			EnvVars: []string{"EMBEDDING_HOST"},
		},
		&cli.StringFlag{
			Name:    "embedding-model",
			Usage:   "Embedding model name",
			Value:   "embeddinggemma",
			EnvVars: []string{"EMBEDDING_MODEL"},
		},
		&cli.StringFlag{
			Name:    "api-key",
			Usage:   "API key for the embedding service",
			EnvVars: []string{"EMBEDDING_API_KEY"},
		},
	}
}

func openDatabase(ctx context.Context, c *cli.Context) (*lokum.Database, error) {
	aiConfig := ai.NewConfig(
		ai.WithEmbeddingHost(c.String("embedding-host")),
		ai.WithEmbeddingModel(c.String("embedding-model")),
		ai.WithAPIKey(c.String("api-key")),
	)
	if err := aiConfig.Validate(); err != nil {
		return nil, fmt.Errorf("invalid AI configuration: %w", err)
	}

	db, err := lokum.NewDatabase(ctx, c.String("mongo-uri"), c.String("index"),
		lokum.WithAIConfig(aiConfig))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return db, nil
}

func populateCommand(c *cli.Context) error {
	ctx := context.Background()

	db, err := openDatabase(ctx, c)
	if err != nil {
		return err
	}
	defer db.Close(ctx)

	indexer, err := db.NewIndexer(
		ingest.WithPoolSize(c.Int("pool-size")),
		ingest.WithRetry(c.Int("max-retries"), c.Duration("retry-delay")),
	)
	if err != nil {
		return fmt.Errorf("failed to create indexer: %w", err)
	}
	defer indexer.Release()

	stats, err := indexer.Populate(ctx, c.Int("limit"))
	if err != nil {
		return fmt.Errorf("population failed: %w", err)
	}

	fmt.Fprintf(os.Stderr, "Processed: %d\n", stats.Processed)
	fmt.Fprintf(os.Stderr, "Added:     %d\n", stats.Added)
	fmt.Fprintf(os.Stderr, "Skipped:   %d\n", stats.Skipped)
	fmt.Fprintf(os.Stderr, "Failed:    %d\n", stats.Failed)
	return nil
}

func searchCommand(c *cli.Context) error {
	ctx := context.Background()

	scope := core.Scope(strings.ToLower(c.String("scope")))
	if len(core.QueryScopes(scope)) == 0 {
		return fmt.Errorf("invalid scope %q: must be one of rent, sale, both", c.String("scope"))
	}

	db, err := openDatabase(ctx, c)
	if err != nil {
		return err
	}
	defer db.Close(ctx)

	searcher, err := db.NewSearcher()
	if err != nil {
		return fmt.Errorf("failed to create searcher: %w", err)
	}

	results := searcher.Search(ctx, &search.Query{
		Criteria: &core.Criteria{
			City:     c.String("city"),
			District: c.String("district"),
			Rooms:    c.IntSlice("rooms"),
			MinPrice: c.Int("min-price"),
			MaxPrice: c.Int("max-price"),
			MinArea:  c.Float64("min-area"),
			MaxArea:  c.Float64("max-area"),
		},
		Text:  c.String("query"),
		Scope: scope,
		Limit: c.Int("limit"),
	})

	if len(results) == 0 {
		fmt.Println("No listings found.")
		return nil
	}

	for i, r := range results {
		l := r.Listing
		fmt.Printf("%2d. [%s] %s\n", i+1, l.Scope, l.Title)
		fmt.Printf("    %s", l.City)
		if l.District != "" {
			fmt.Printf(", %s", l.District)
		}
		fmt.Printf(" | %d PLN | %.0f m² | %d rooms\n", l.Price, l.SpaceSM, l.RoomCount)
		if r.Relevance == core.RelevanceHybrid {
			fmt.Printf("    score %.4f (%s)\n", r.SemanticScore, r.Relevance)
		} else {
			fmt.Printf("    (%s)\n", r.Relevance)
		}
		if l.Link != "" {
			fmt.Printf("    %s\n", l.Link)
		}
	}
	return nil
}

func statsCommand(c *cli.Context) error {
	ctx := context.Background()

	db, err := openDatabase(ctx, c)
	if err != nil {
		return err
	}
	defer db.Close(ctx)

	stats, err := db.VectorIndex().Stats(ctx)
	if err != nil {
		return fmt.Errorf("failed to read index stats: %w", err)
	}

	fmt.Printf("Indexed vectors: %d\n", stats.Total)
	fmt.Printf("  rent: %d\n", stats.Rent)
	fmt.Printf("  sale: %d\n", stats.Sale)
	return nil
}

func clearCommand(c *cli.Context) error {
	ctx := context.Background()

	db, err := openDatabase(ctx, c)
	if err != nil {
		return err
	}
	defer db.Close(ctx)

	if err := db.VectorIndex().Clear(ctx); err != nil {
		return fmt.Errorf("failed to clear index: %w", err)
	}

	fmt.Fprintln(os.Stderr, "Vector index cleared.")
	return nil
}

func setupLogger(c *cli.Context) error {
	levelStr := strings.ToLower(c.String("log-level"))

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

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}
