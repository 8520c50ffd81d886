package services

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/kerbaras/recipebook/pkg/data"
	"github.com/kerbaras/recipebook/pkg/integrations"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"
)

// ExportProgress reports where a cookbook export is.
type ExportProgress struct {
	RecipeID string
	Title    string
	Current  int
	Total    int
	Status   string // "downloading", "processing", "complete", "error"
	Error    error
	Path     string
}

// Exporter fetches recipe pictures and writes the cookbook EPUB.
type Exporter struct {
	builder      *integrations.CookbookBuilder
	client       *http.Client
	limiter      *rate.Limiter
	progressChan chan ExportProgress
	logger       zerolog.Logger

	closeOnce sync.Once
}

func NewExporter(outputDir string) *Exporter {
	return &Exporter{
		builder:      integrations.NewCookbookBuilder(outputDir),
		client:       &http.Client{Timeout: 30 * time.Second},
		limiter:      rate.NewLimiter(rate.Every(250*time.Millisecond), 4),
		progressChan: make(chan ExportProgress, 100),
		logger:       log.With().Str("component", "exporter").Logger(),
	}
}

func (e *Exporter) Progress() <-chan ExportProgress {
	return e.progressChan
}

// Export writes recipes to a single EPUB named after title. Pictures that
// fail to download are left out rather than failing the export.
func (e *Exporter) Export(ctx context.Context, title string, recipes []data.Recipe) (string, error) {
	if len(recipes) == 0 {
		return "", fmt.Errorf("no recipes to export")
	}

	var (
		mu     sync.Mutex
		done   int
		wg     sync.WaitGroup
		images = make(map[string]integrations.RecipeImages, len(recipes))
	)
	semaphore := make(chan struct{}, 3)

	for _, recipe := range recipes {
		wg.Add(1)
		go func(recipe data.Recipe) {
			defer wg.Done()
			semaphore <- struct{}{}
			defer func() { <-semaphore }()

			imgs := e.fetchImages(ctx, recipe)

			mu.Lock()
			images[recipe.ID] = imgs
			done++
			current := done
			mu.Unlock()

			e.sendProgress(ExportProgress{
				RecipeID: recipe.ID,
				Title:    recipe.Title,
				Current:  current,
				Total:    len(recipes),
				Status:   "downloading",
			})
		}(recipe)
	}
	wg.Wait()

	if err := ctx.Err(); err != nil {
		e.sendProgress(ExportProgress{Title: title, Status: "error", Error: err})
		return "", err
	}

	e.sendProgress(ExportProgress{Title: title, Current: len(recipes), Total: len(recipes), Status: "processing"})

	path, err := e.builder.Build(title, recipes, images)
	if err != nil {
		e.sendProgress(ExportProgress{Title: title, Status: "error", Error: err})
		return "", err
	}

	e.logger.Info().Str("path", path).Int("recipes", len(recipes)).Msg("Cookbook exported")
	e.sendProgress(ExportProgress{Title: title, Current: len(recipes), Total: len(recipes), Status: "complete", Path: path})
	return path, nil
}

func (e *Exporter) fetchImages(ctx context.Context, recipe data.Recipe) integrations.RecipeImages {
	var imgs integrations.RecipeImages

	if recipe.ImageURL != "" {
		img, err := e.downloadImage(ctx, recipe.ImageURL)
		if err != nil {
			e.logger.Warn().Err(err).Str("recipe_id", recipe.ID).Msg("Skipping cover image")
		} else {
			imgs.Cover = &img
		}
	}

	for i, step := range recipe.Steps {
		if step.ImageURL == "" {
			continue
		}
		img, err := e.downloadImage(ctx, step.ImageURL)
		if err != nil {
			e.logger.Warn().Err(err).Str("recipe_id", recipe.ID).Int("step", i+1).Msg("Skipping step image")
			continue
		}
		if imgs.Steps == nil {
			imgs.Steps = make(map[int]integrations.ImageData)
		}
		imgs.Steps[i] = img
	}
	return imgs
}

func (e *Exporter) downloadImage(ctx context.Context, url string) (integrations.ImageData, error) {
	if err := e.limiter.Wait(ctx); err != nil {
		return integrations.ImageData{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return integrations.ImageData{}, fmt.Errorf("failed to create image request: %w", err)
	}

	resp, err := e.client.Do(req)
	if err != nil {
		return integrations.ImageData{}, fmt.Errorf("failed to fetch image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return integrations.ImageData{}, fmt.Errorf("bad status: %s", resp.Status)
	}

	content, err := io.ReadAll(resp.Body)
	if err != nil {
		return integrations.ImageData{}, fmt.Errorf("failed to read image content: %w", err)
	}

	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = http.DetectContentType(content)
	}

	return integrations.ImageData{Content: content, ContentType: contentType}, nil
}

// sendProgress never blocks; updates are dropped when nobody is reading.
func (e *Exporter) sendProgress(progress ExportProgress) {
	select {
	case e.progressChan <- progress:
	default:
	}
}

func (e *Exporter) Close() {
	e.closeOnce.Do(func() {
		close(e.progressChan)
	})
}
