package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"strings"
	"time"

	_ "github.com/joho/godotenv/autoload"
	"gopkg.in/yaml.v3"

	"github.com/socialchef/leftovers/internal/config"
	"github.com/socialchef/leftovers/internal/ingredient"
	"github.com/socialchef/leftovers/internal/kitchen"
	"github.com/socialchef/leftovers/internal/logger"
	"github.com/socialchef/leftovers/internal/sentry"
	"github.com/socialchef/leftovers/internal/services/image"
	"github.com/socialchef/leftovers/internal/services/recipe"
)

// ingredientFile is the YAML input format.
type ingredientFile struct {
	Ingredients []ingredient.Record `yaml:"ingredients"`
}

func main() {
	defer sentry.Recover()

	in := flag.String("ingredients", "ingredients.yaml", "YAML file listing ingredients")
	out := flag.String("out", "dish", "image output path; the extension is added from the image format")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := sentry.Init(cfg.SentryDSN, cfg.Env, cfg.ServiceName+"-cli", cfg.ServiceVersion); err != nil {
		slog.Warn("Failed to init Sentry", "error", err)
	} else if cfg.SentryDSN != "" {
		defer sentry.Flush(2 * time.Second)
	}

	slog.SetDefault(logger.NewWithWriter(cfg.Env, os.Stderr))

	list, err := loadIngredients(*in)
	if err != nil {
		log.Fatalf("Failed to read ingredients: %v", err)
	}

	k := kitchen.New(
		recipe.NewGenerator(recipe.NewProvider(cfg.Recipe, cfg.GrokKey)),
		image.NewGenerator(image.NewOpenAIProvider(cfg.Image, cfg.OpenAIKey, nil), cfg.Image.Timeout),
	)

	if err := run(context.Background(), k, list, *out, os.Stdout, os.Stderr); err != nil {
		log.Fatalf("Generation failed: %v", err)
	}
}

func loadIngredients(path string) (ingredient.List, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var f ingredientFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return ingredient.List(f.Ingredients), nil
}

type generator interface {
	Generate(ctx context.Context, s *kitchen.Session) *kitchen.Outcome
}

// run generates once for list, printing the recipe to stdout and writing the
// image next to outPath. Warnings and notices go to stderr.
func run(ctx context.Context, k generator, list ingredient.List, outPath string, stdout, stderr io.Writer) error {
	sess := kitchen.NewSession("cli")
	sess.Ingredients = list

	sess.Lock()
	outcome := k.Generate(ctx, sess)
	sess.Unlock()

	if outcome.Warning != "" {
		fmt.Fprintln(stderr, outcome.Warning)
		return nil
	}
	for _, notice := range outcome.Notices {
		fmt.Fprintln(stderr, notice)
	}

	fmt.Fprintln(stdout, outcome.Recipe)

	if outcome.Image == nil {
		return nil
	}
	path := imagePath(outPath, outcome.Image.Format)
	if err := os.WriteFile(path, outcome.Image.Data, 0o644); err != nil {
		return fmt.Errorf("writing image: %w", err)
	}
	fmt.Fprintf(stderr, "%s → %s\n", outcome.DishTitle, path)
	return nil
}

func imagePath(outPath, format string) string {
	ext := "." + format
	if format == "jpeg" {
		ext = ".jpg"
	}
	if strings.HasSuffix(strings.ToLower(outPath), ext) {
		return outPath
	}
	return outPath + ext
}
