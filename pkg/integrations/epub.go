package integrations

import (
	"bytes"
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/go-shiori/go-epub"
	"github.com/kerbaras/recipebook/pkg/data"
)

// ImageData is a downloaded picture ready to embed.
type ImageData struct {
	Content     []byte
	ContentType string
}

// RecipeImages holds the pictures fetched for one recipe. Steps is keyed by
// step index.
type RecipeImages struct {
	Cover *ImageData
	Steps map[int]ImageData
}

// CookbookBuilder writes recipes into a single EPUB.
type CookbookBuilder struct {
	outputDir string
}

func NewCookbookBuilder(outputDir string) *CookbookBuilder {
	return &CookbookBuilder{outputDir: outputDir}
}

func (b *CookbookBuilder) OutputDir() string {
	return b.outputDir
}

var recipeTemplate = template.Must(template.New("recipe").Parse(`<h1>{{.Title}}</h1>
{{if .Author}}<p class="author">by {{.Author}}</p>{{end}}
{{if .Cover}}<div class="cover"><img src="{{.Cover}}" alt="{{.Title}}" style="width:100%;height:auto;"/></div>{{end}}
{{if .Description}}<p>{{.Description}}</p>{{end}}
{{if .Ingredients}}<h2>Ingredients</h2>
<ul>{{range .Ingredients}}
<li>{{.}}</li>{{end}}
</ul>{{end}}
{{if .Steps}}<h2>Steps</h2>
<ol>{{range .Steps}}
<li><h3>{{.Title}}</h3><p>{{.Description}}</p>{{if .Image}}<img src="{{.Image}}" alt="{{.Title}}" style="width:100%;height:auto;"/>{{end}}</li>{{end}}
</ol>{{end}}
`))

type recipePage struct {
	Title       string
	Author      string
	Description string
	Cover       string
	Ingredients []string
	Steps       []stepPage
}

type stepPage struct {
	Title       string
	Description string
	Image       string
}

// Build writes title.epub with one section per recipe, grouped by category
// and sorted by title. Missing images are skipped.
func (b *CookbookBuilder) Build(title string, recipes []data.Recipe, images map[string]RecipeImages) (string, error) {
	if len(recipes) == 0 {
		return "", fmt.Errorf("no recipes to export")
	}

	if err := os.MkdirAll(b.outputDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	// go-epub reads image files on Write, so they must outlive the loop.
	imageDir, err := os.MkdirTemp("", "recipebook-epub-*")
	if err != nil {
		return "", fmt.Errorf("failed to create image directory: %w", err)
	}
	defer os.RemoveAll(imageDir)

	sorted := make([]data.Recipe, len(recipes))
	copy(sorted, recipes)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Category != sorted[j].Category {
			return sorted[i].Category < sorted[j].Category
		}
		return strings.ToLower(sorted[i].Title) < strings.ToLower(sorted[j].Title)
	})

	e, err := epub.NewEpub(title)
	if err != nil {
		return "", fmt.Errorf("failed to create EPub: %w", err)
	}
	e.SetAuthor("recipebook")
	e.SetDescription(fmt.Sprintf("%d recipes", len(sorted)))
	e.SetLang("en")

	for i, recipe := range sorted {
		if err := b.addRecipe(e, imageDir, i, recipe, images[recipe.ID]); err != nil {
			return "", fmt.Errorf("failed to add recipe %q: %w", recipe.Title, err)
		}
	}

	outputPath := filepath.Join(b.outputDir, sanitizeFilename(title)+".epub")
	if err := e.Write(outputPath); err != nil {
		return "", fmt.Errorf("failed to write EPub: %w", err)
	}
	return outputPath, nil
}

func (b *CookbookBuilder) addRecipe(e *epub.Epub, imageDir string, index int, recipe data.Recipe, images RecipeImages) error {
	page := recipePage{
		Title:       recipe.Title,
		Author:      recipe.Author,
		Description: recipe.Description,
		Ingredients: recipe.Ingredients,
	}

	if images.Cover != nil {
		path, err := addImage(e, imageDir, fmt.Sprintf("recipe-%03d-cover", index), *images.Cover)
		if err != nil {
			return err
		}
		page.Cover = path
	}

	for i, step := range recipe.Steps {
		sp := stepPage{Title: step.Title, Description: step.Description}
		if img, ok := images.Steps[i]; ok {
			path, err := addImage(e, imageDir, fmt.Sprintf("recipe-%03d-step-%02d", index, i+1), img)
			if err != nil {
				return err
			}
			sp.Image = path
		}
		page.Steps = append(page.Steps, sp)
	}

	var html bytes.Buffer
	if err := recipeTemplate.Execute(&html, page); err != nil {
		return fmt.Errorf("failed to render recipe: %w", err)
	}

	if _, err := e.AddSection(html.String(), recipe.Title, "", ""); err != nil {
		return fmt.Errorf("failed to add section: %w", err)
	}
	return nil
}

func addImage(e *epub.Epub, dir, name string, img ImageData) (string, error) {
	filename := name + extensionFor(img.ContentType)
	path := filepath.Join(dir, filename)
	if err := os.WriteFile(path, img.Content, 0644); err != nil {
		return "", fmt.Errorf("failed to stage image: %w", err)
	}

	internal, err := e.AddImage(path, filename)
	if err != nil {
		return "", fmt.Errorf("failed to add image %s: %w", filename, err)
	}
	return internal, nil
}

func extensionFor(contentType string) string {
	mediaType, _, _ := strings.Cut(contentType, ";")
	switch strings.TrimSpace(strings.ToLower(mediaType)) {
	case "image/png":
		return ".png"
	case "image/gif":
		return ".gif"
	case "image/webp":
		return ".webp"
	default:
		return ".jpg"
	}
}

// sanitizeFilename removes characters that are invalid in filenames
func sanitizeFilename(name string) string {
	invalid := []string{"/", "\\", ":", "*", "?", "\"", "<", ">", "|"}
	result := name
	for _, char := range invalid {
		result = strings.ReplaceAll(result, char, "_")
	}
	result = strings.TrimSpace(result)
	result = strings.Trim(result, ".")
	if result == "" {
		result = "cookbook"
	}
	return result
}
