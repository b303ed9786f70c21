package cipher

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/RowanDark/cipherkit/internal/logging"
)

// RecipeManager keeps named pipelines in memory and, when a store path is
// set, mirrors each one to <storePath>/<name>.json.
type RecipeManager struct {
	recipes   map[string]*Recipe
	storePath string
	audit     *logging.AuditLogger
	mu        sync.RWMutex
}

// RecipeOption configures a RecipeManager
type RecipeOption func(*RecipeManager)

// WithAuditLogger records recipe saves and deletions on logger
func WithAuditLogger(logger *logging.AuditLogger) RecipeOption {
	return func(rm *RecipeManager) {
		if logger != nil {
			rm.audit = logger
		}
	}
}

// NewRecipeManager creates a new recipe manager
func NewRecipeManager(storePath string, opts ...RecipeOption) *RecipeManager {
	rm := &RecipeManager{
		recipes:   make(map[string]*Recipe),
		storePath: storePath,
		audit:     logging.Nop(),
	}
	for _, opt := range opts {
		opt(rm)
	}
	return rm
}

// SaveRecipe validates and stores a recipe, replacing any recipe of the same name
func (rm *RecipeManager) SaveRecipe(recipe *Recipe) error {
	if recipe == nil || strings.TrimSpace(recipe.Name) == "" {
		return errors.New("recipe name cannot be empty")
	}
	if err := validatePipeline(&recipe.Pipeline); err != nil {
		return fmt.Errorf("recipe %s: %w", recipe.Name, err)
	}

	rm.mu.Lock()
	defer rm.mu.Unlock()

	// Names that sanitize to the same file would overwrite each other on disk.
	file := sanitizeFilename(recipe.Name)
	for name := range rm.recipes {
		if name != recipe.Name && sanitizeFilename(name) == file {
			return fmt.Errorf("%w: %q and %q share file %s.json", ErrRecipeConflict, recipe.Name, name, file)
		}
	}

	now := time.Now().UTC().Format(time.RFC3339)
	if recipe.ID == "" {
		recipe.ID = uuid.NewString()
	}
	if recipe.CreatedAt == "" {
		recipe.CreatedAt = now
	}
	recipe.UpdatedAt = now

	if rm.storePath != "" {
		if err := rm.persistRecipe(recipe); err != nil {
			return err
		}
	}
	rm.recipes[recipe.Name] = recipe

	_ = rm.audit.Emit(logging.AuditEvent{
		EventType: logging.EventRecipeSaved,
		Decision:  logging.DecisionSuccess,
		Metadata: map[string]any{
			"recipe":     recipe.Name,
			"recipe_id":  recipe.ID,
			"operations": len(recipe.Pipeline.Operations),
		},
	})
	return nil
}

// GetRecipe retrieves a recipe by name
func (rm *RecipeManager) GetRecipe(name string) (*Recipe, bool) {
	rm.mu.RLock()
	defer rm.mu.RUnlock()

	recipe, exists := rm.recipes[name]
	return recipe, exists
}

// ListRecipes returns all recipes sorted by name
func (rm *RecipeManager) ListRecipes() []*Recipe {
	rm.mu.RLock()
	defer rm.mu.RUnlock()

	recipes := make([]*Recipe, 0, len(rm.recipes))
	for _, recipe := range rm.recipes {
		recipes = append(recipes, recipe)
	}
	sortRecipes(recipes)
	return recipes
}

// DeleteRecipe removes a recipe and its file
func (rm *RecipeManager) DeleteRecipe(name string) error {
	rm.mu.Lock()
	defer rm.mu.Unlock()

	if _, ok := rm.recipes[name]; !ok {
		return fmt.Errorf("%w: %s", ErrRecipeNotFound, name)
	}
	delete(rm.recipes, name)

	if rm.storePath != "" {
		recipePath := filepath.Join(rm.storePath, sanitizeFilename(name)+".json")
		if err := os.Remove(recipePath); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("failed to delete recipe file: %w", err)
		}
	}

	_ = rm.audit.Emit(logging.AuditEvent{
		EventType: logging.EventRecipeDeleted,
		Decision:  logging.DecisionSuccess,
		Metadata:  map[string]any{"recipe": name},
	})
	return nil
}

// LoadRecipes loads all recipes from the store path
func (rm *RecipeManager) LoadRecipes() error {
	if rm.storePath == "" {
		return nil
	}

	rm.mu.Lock()
	defer rm.mu.Unlock()

	entries, err := os.ReadDir(rm.storePath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to read recipes directory: %w", err)
	}

	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".json" {
			continue
		}

		recipePath := filepath.Join(rm.storePath, entry.Name())
		data, err := os.ReadFile(recipePath)
		if err != nil {
			return fmt.Errorf("failed to read recipe %s: %w", entry.Name(), err)
		}

		var recipe Recipe
		if err := json.Unmarshal(data, &recipe); err != nil {
			return fmt.Errorf("failed to parse recipe %s: %w", entry.Name(), err)
		}
		if recipe.Name == "" {
			return fmt.Errorf("recipe %s has no name", entry.Name())
		}

		rm.recipes[recipe.Name] = &recipe
	}

	return nil
}

// RunRecipe executes the named recipe on input, or its reversed pipeline
// when reverse is set.
func (rm *RecipeManager) RunRecipe(ctx context.Context, name string, input []byte, reverse bool) ([]byte, error) {
	recipe, ok := rm.GetRecipe(name)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrRecipeNotFound, name)
	}
	pipeline := &recipe.Pipeline
	if reverse {
		reversed, err := pipeline.Reverse()
		if err != nil {
			return nil, fmt.Errorf("recipe %s: %w", name, err)
		}
		pipeline = reversed
	}
	return pipeline.Execute(ctx, input)
}

// SearchRecipes finds recipes whose name, description or tags contain query,
// ignoring case
func (rm *RecipeManager) SearchRecipes(query string) []*Recipe {
	rm.mu.RLock()
	defer rm.mu.RUnlock()

	q := strings.ToLower(query)
	matches := func(s string) bool { return strings.Contains(strings.ToLower(s), q) }

	results := make([]*Recipe, 0)
	for _, recipe := range rm.recipes {
		if matches(recipe.Name) || matches(recipe.Description) {
			results = append(results, recipe)
			continue
		}
		for _, tag := range recipe.Tags {
			if matches(tag) {
				results = append(results, recipe)
				break
			}
		}
	}
	sortRecipes(results)
	return results
}

// persistRecipe writes a single recipe to disk
func (rm *RecipeManager) persistRecipe(recipe *Recipe) error {
	if err := os.MkdirAll(rm.storePath, 0o755); err != nil {
		return fmt.Errorf("failed to create recipes directory: %w", err)
	}

	data, err := json.MarshalIndent(recipe, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize recipe: %w", err)
	}

	recipePath := filepath.Join(rm.storePath, sanitizeFilename(recipe.Name)+".json")
	if err := os.WriteFile(recipePath, data, 0o600); err != nil {
		return fmt.Errorf("failed to write recipe file: %w", err)
	}

	return nil
}

// validatePipeline checks that every step names a registered operation and,
// for reversible pipelines, that each step can be undone.
func validatePipeline(p *Pipeline) error {
	if len(p.Operations) == 0 {
		return errors.New("pipeline has no operations")
	}
	for i, step := range p.Operations {
		op, ok := GetOperation(step.Name)
		if !ok {
			return fmt.Errorf("step %d: %w: %s", i, ErrUnknownOperation, step.Name)
		}
		if p.Reversible {
			if _, ok := op.Reverse(); !ok {
				return fmt.Errorf("step %d: operation %s is %w", i, step.Name, ErrNotReversible)
			}
		}
	}
	return nil
}

// sanitizeFilename converts a recipe name to a safe filename
func sanitizeFilename(name string) string {
	safe := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		case r == ' ':
			return '_'
		default:
			return -1
		}
	}, name)
	if safe == "" {
		safe = "recipe"
	}
	return safe
}

func sortRecipes(recipes []*Recipe) {
	sort.Slice(recipes, func(i, j int) bool {
		return recipes[i].Name < recipes[j].Name
	})
}
