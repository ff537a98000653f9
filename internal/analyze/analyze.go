// Package analyze scores scanned document images with the Gemini API.
// It is an optional enrichment step: results land as JSONL in the
// documents folder, where the next pipeline run picks them up as a
// ranked document dataset. The pass is resumable via a checkpoint file
// and tolerant of per-minute rate limits.
package analyze

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"google.golang.org/genai"

	"github.com/dossierlab/dossier/pkg/config"
	"github.com/dossierlab/dossier/pkg/errors"
	"github.com/dossierlab/dossier/pkg/logging"
)

const analysisPrompt = `Analyze this document scan from the case files.
Extract structured intelligence about the contents.

Provide your response in JSON format with the following keys:
1. 'document_type': (string) e.g., 'Flight Manifest', 'Court Filing', 'Personal Letter', 'Photo Evidence'.
2. 'power_mentions': (list of strings) Names of famous people, politicians, or known associates mentioned or pictured.
3. 'person_detection': (string) Describe any people or faces visible. Note if they are redacted or blacked out.
4. 'key_insights': (list of strings) The most important pieces of information in this document.
5. 'headline': (string) A one-line description of the document.
6. 'importance_score': (integer, 1-10) How valuable is this as evidence? (1 = boilerplate/spam, 10 = smoking gun).
7. 'reason': (string) Why did you give it that importance score?

Return ONLY the raw JSON.`

// skipKeywords marks model families without image input support.
var skipKeywords = []string{
	"gemma", "embedding", "imagen", "veo", "aqa", "tts", "audio",
	"nano-banana", "robotics", "computer-use", "deep-research",
}

var imageExts = map[string]bool{".jpg": true, ".jpeg": true, ".png": true}

const (
	checkpointEvery = 5
	requestCooldown = 10 * time.Second
	rateLimitWait   = 60 * time.Second
	modelRetries    = 3
)

// Analyzer drives one analysis pass over the document scans folder.
type Analyzer struct {
	cfg    config.Config
	client *genai.Client
	model  string
}

// New creates an Analyzer backed by the Gemini API.
func New(ctx context.Context, cfg config.Config, apiKey string) (*Analyzer, error) {
	if apiKey == "" {
		return nil, errors.ErrAPIKeyRequired
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, &errors.APIError{Service: "gemini", Message: "client init failed", Err: err}
	}
	return &Analyzer{cfg: cfg, client: client}, nil
}

// Run analyzes every unprocessed image under the document scans
// folder, appending results and checkpointing as it goes. It returns
// nil when interrupted by ctx so partial progress is kept.
func (a *Analyzer) Run(ctx context.Context) error {
	docsDir := a.cfg.DocScansDir()
	if _, err := os.Stat(docsDir); err != nil {
		return errors.NewSourceError("document scans", docsDir, errors.ErrSourceMissing)
	}

	if err := a.pickModel(ctx); err != nil {
		return err
	}
	logging.Info().Str("model", a.model).Msg("Using model")

	st := loadState(a.cfg.AnalysisStateFile())
	processed := make(map[string]bool, len(st.ProcessedFiles))
	order := append([]string(nil), st.ProcessedFiles...)
	for _, name := range st.ProcessedFiles {
		processed[name] = true
	}

	entries, err := os.ReadDir(docsDir)
	if err != nil {
		return errors.WrapIO("read", docsDir, err)
	}
	var pending []string
	for _, e := range entries {
		if e.IsDir() || !imageExts[strings.ToLower(filepath.Ext(e.Name()))] {
			continue
		}
		if !processed[e.Name()] {
			pending = append(pending, e.Name())
		}
	}
	sort.Strings(pending)

	if len(pending) == 0 {
		logging.Info().Msg("All document scans already processed")
		return nil
	}
	logging.Info().Int("pending", len(pending)).Int("done", len(order)).Msg("Starting document analysis")

	var batch []map[string]any
	lastFile := st.LastFile
	flush := func() {
		if err := appendResults(a.cfg.AnalysisResultsFile(), batch); err != nil {
			logging.Err(err).Msg("Failed to append results")
		}
		if err := saveState(a.cfg.AnalysisStateFile(), order, lastFile); err != nil {
			logging.Err(err).Msg("Failed to save checkpoint")
		}
		batch = nil
	}
	defer flush()

	for i := 0; i < len(pending); i++ {
		name := pending[i]
		if ctx.Err() != nil {
			logging.Warn().Msg("Interrupted, saving progress")
			return nil
		}

		result, err := a.analyzeImage(ctx, filepath.Join(docsDir, name))
		if err != nil {
			if errors.IsRateLimited(err) {
				logging.Warn().Dur("wait", rateLimitWait).Msg("Rate limit hit")
				if !sleepCtx(ctx, rateLimitWait) {
					return nil
				}
				i-- // retry the same image
				continue
			}
			logging.Err(err).Str("file", name).Msg("Error analyzing image")
			continue
		}

		result["filename"] = name
		result["file_path"] = filepath.ToSlash(filepath.Join(docsDir, name))
		result["analyzed_at"] = time.Now().Format(time.RFC3339)

		batch = append(batch, result)
		order = append(order, name)
		lastFile = name

		if len(batch) >= checkpointEvery {
			flush()
			logging.Info().Int("total", len(order)).Msg("Checkpoint saved")
		}
		if !sleepCtx(ctx, requestCooldown) {
			return nil
		}
	}

	logging.Info().Int("total", len(order)).Msg("Document analysis complete")
	return nil
}

// analyzeImage sends one scan to the model and decodes the JSON reply.
func (a *Analyzer) analyzeImage(ctx context.Context, path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WrapIO("read", path, err)
	}

	contents := []*genai.Content{
		genai.NewContentFromParts([]*genai.Part{
			genai.NewPartFromText(analysisPrompt),
			genai.NewPartFromBytes(data, mimeType(path)),
		}, genai.RoleUser),
	}
	resp, err := a.client.Models.GenerateContent(ctx, a.model, contents, &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
	})
	if err != nil {
		return nil, classify(err)
	}

	text := strings.TrimSpace(resp.Text())
	text = strings.TrimPrefix(text, "```json")
	text = strings.Trim(text, "` \n")

	var result map[string]any
	if err := json.Unmarshal([]byte(text), &result); err != nil {
		return nil, errors.WrapParse("json", filepath.Base(path), err)
	}
	return result, nil
}

// pickModel finds a vision-capable model with active quota, preferring
// flash variants, and caches the winner for the next run.
func (a *Analyzer) pickModel(ctx context.Context) error {
	cachePath := a.cfg.ModelCacheFile()
	if cached, err := os.ReadFile(cachePath); err == nil {
		model := strings.TrimSpace(string(cached))
		if model != "" && a.probe(ctx, model) == nil {
			a.model = model
			return nil
		}
		logging.Info().Str("model", model).Msg("Cached model no longer usable, searching")
	}

	candidates, err := a.listVisionModels(ctx)
	if err != nil {
		return err
	}
	logging.Info().Int("candidates", len(candidates)).Msg("Found vision-capable models")

	for attempt := 1; attempt <= modelRetries; attempt++ {
		for _, m := range candidates {
			if err := a.probe(ctx, m); err == nil {
				a.model = m
				if werr := os.MkdirAll(filepath.Dir(cachePath), 0o755); werr == nil {
					_ = os.WriteFile(cachePath, []byte(m), 0o644)
				}
				return nil
			}
		}
		if attempt < modelRetries {
			logging.Warn().Dur("wait", rateLimitWait).Msg("All models rate-limited, waiting for quota reset")
			if !sleepCtx(ctx, rateLimitWait) {
				return ctx.Err()
			}
		}
	}
	return &errors.APIError{Service: "gemini", StatusCode: 429, Message: "all vision models exhausted", Err: errors.ErrRateLimited}
}

// listVisionModels pages through the model catalog and keeps models
// that accept image input, flash variants first.
func (a *Analyzer) listVisionModels(ctx context.Context) ([]string, error) {
	var names []string
	pageToken := ""
	for {
		cfg := &genai.ListModelsConfig{PageSize: 100}
		if pageToken != "" {
			cfg.PageToken = pageToken
		}
		page, err := a.client.Models.List(ctx, cfg)
		if err != nil {
			return nil, &errors.APIError{Service: "gemini", Message: "model listing failed", Err: err}
		}
		for _, m := range page.Items {
			if supportsVision(m) {
				names = append(names, m.Name)
			}
		}
		if page.NextPageToken == "" {
			break
		}
		pageToken = page.NextPageToken
	}

	var flash, rest []string
	for _, n := range names {
		if strings.Contains(strings.ToLower(n), "flash") {
			flash = append(flash, n)
		} else {
			rest = append(rest, n)
		}
	}
	return append(flash, rest...), nil
}

// probe sends a minimal request to check the model is usable under the
// current quota.
func (a *Analyzer) probe(ctx context.Context, model string) error {
	_, err := a.client.Models.GenerateContent(ctx, model, genai.Text("ok"), nil)
	return err
}

func supportsVision(m *genai.Model) bool {
	generates := false
	for _, action := range m.SupportedActions {
		if action == "generateContent" {
			generates = true
			break
		}
	}
	if !generates {
		return false
	}
	lower := strings.ToLower(m.Name)
	for _, skip := range skipKeywords {
		if strings.Contains(lower, skip) {
			return false
		}
	}
	return true
}

// classify maps transport errors into the local taxonomy so the run
// loop can distinguish rate limits from hard failures.
func classify(err error) error {
	msg := strings.ToLower(err.Error())
	if strings.Contains(msg, "429") || strings.Contains(msg, "exhausted") || strings.Contains(msg, "rate limit") {
		return &errors.APIError{Service: "gemini", StatusCode: 429, Message: "quota exceeded", Err: err}
	}
	return &errors.APIError{Service: "gemini", Message: "generate content failed", Err: err}
}

// sleepCtx waits d or until ctx is done; reports whether the full wait
// elapsed.
func sleepCtx(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}

func mimeType(path string) string {
	if strings.EqualFold(filepath.Ext(path), ".png") {
		return "image/png"
	}
	return "image/jpeg"
}
