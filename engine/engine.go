// Package engine orchestrates completion post-processing. It owns per-file
// context state, runs candidate text through the duplication and formatting
// pipeline, and tracks the lifecycle of the suggestions it produces.
package engine

import (
	"context"
	"errors"
	"strings"
	"time"

	"tabmend/ctx"
	"tabmend/dedup"
	"tabmend/logger"
	"tabmend/metrics"
	"tabmend/rules"
	"tabmend/types"
	"tabmend/utils"
)

// maxTrackedFiles caps the per-file state store; least recently touched
// files are evicted first.
const maxTrackedFiles = 4

// Config carries the post-processor's tunables. Zero values select the
// defaults of the underlying components.
type Config struct {
	WindowSize        int    `json:"window_size"`
	SnapshotRadius    int    `json:"snapshot_radius"`
	LongLineThreshold int    `json:"long_line_threshold"`
	AcceptedLogCap    int    `json:"accepted_log_cap"`
	MaxDiffTokens     int    `json:"max_diff_tokens"`
	MaxBundleTokens   int    `json:"max_bundle_tokens"`
	LogLevel          string `json:"log_level"`
}

// Request is one candidate completion to post-process against a document.
type Request struct {
	Document   *types.Document
	Cursor     types.Position
	LanguageID string
	Indent     types.IndentSettings
	Candidate  string
}

// fileState holds the context manager and last synced lines for one file.
type fileState struct {
	manager    *ctx.Manager
	lines      []string
	lastAccess time.Time
}

// PostProcessor is the orchestration layer. It is not safe for concurrent
// use; callers serialize access the way an editor event loop does.
type PostProcessor struct {
	config           Config
	rules            *rules.Engine
	dedup            *dedup.Resolver
	tracker          *metrics.Tracker
	files            map[string]*fileState
	activePath       string
	lastSuggestionID string
	pipeline         []postprocessor
}

// NewPostProcessor builds a post-processor with the default rule and
// duplication tables.
func NewPostProcessor(config Config) (*PostProcessor, error) {
	ruleEngine, err := rules.NewDefaultEngine(config.LongLineThreshold)
	if err != nil {
		return nil, err
	}
	resolver, err := dedup.NewDefaultResolver()
	if err != nil {
		return nil, err
	}

	return &PostProcessor{
		config:  config,
		rules:   ruleEngine,
		dedup:   resolver,
		tracker: metrics.NewTracker(),
		files:   make(map[string]*fileState),
		pipeline: []postprocessor{
			rejectEmpty(),
			resolveDuplication(),
			decideFormatting(),
			composeResult(),
		},
	}, nil
}

// Process runs one candidate through the pipeline. The anchor of the result
// always equals the request cursor. When ctx is cancelled before the result
// is committed, it is discarded with no side effects.
func (p *PostProcessor) Process(c context.Context, req *Request) (*types.Result, error) {
	if req == nil || req.Document == nil {
		return nil, errors.New("nil request or document")
	}
	if err := c.Err(); err != nil {
		return nil, err
	}

	pctx := &pipelineContext{
		Request:    req,
		LinePrefix: req.Document.LinePrefix(req.Cursor),
	}

	for _, post := range p.pipeline {
		if result, done := post(p, pctx); done {
			pctx.Result = result
			break
		}
	}

	if err := c.Err(); err != nil {
		logger.Debug("engine: cancelled, discarding result")
		return nil, err
	}

	result := pctx.Result
	if result == nil {
		result = emptyResult(req)
	}
	if strings.TrimSpace(result.Text) != "" {
		p.disposeOpenSuggestion()
		result.SuggestionID = p.tracker.TrackShown(p.activePath)
		p.lastSuggestionID = result.SuggestionID
	}
	return result, nil
}

// HandleEditorChanged switches the active file and syncs its lines.
func (p *PostProcessor) HandleEditorChanged(path string, lines []string) {
	if path != p.activePath {
		p.disposeOpenSuggestion()
		logger.Debug("engine: active file %q -> %q", p.activePath, path)
	}
	p.activePath = path
	p.syncFile(path, lines)
}

// HandleDocumentChanged syncs lines after a text change in path. A change in
// a background file updates that file's state without switching focus.
func (p *PostProcessor) HandleDocumentChanged(path string, lines []string) {
	p.syncFile(path, lines)
}

// HandleSuggestionAccepted records the user taking the open suggestion.
func (p *PostProcessor) HandleSuggestionAccepted(text string) {
	if state := p.files[p.activePath]; state != nil {
		state.manager.TrackAccepted(text)
	}
	if p.lastSuggestionID != "" {
		p.tracker.TrackAccepted(p.lastSuggestionID)
		p.lastSuggestionID = ""
	}
}

// BuildContext composes the context bundle for the active file around
// cursorLine, trimmed to the configured token budget.
func (p *PostProcessor) BuildContext(cursorLine int) *types.Bundle {
	state := p.files[p.activePath]
	if state == nil {
		return &types.Bundle{}
	}
	bundle := state.manager.Bundle(state.lines, cursorLine)
	if p.config.MaxBundleTokens > 0 {
		bundle.RecentLines = utils.TrimLinesToApproxTokens(bundle.RecentLines, p.config.MaxBundleTokens)
	}
	return bundle
}

// Stats returns the suggestion lifecycle counters.
func (p *PostProcessor) Stats() metrics.Stats {
	return p.tracker.Stats()
}

// LogStats writes the lifecycle counters to the log.
func (p *PostProcessor) LogStats() {
	p.tracker.LogStats()
}

func (p *PostProcessor) syncFile(path string, lines []string) {
	if path == "" {
		return
	}
	state := p.files[path]
	if state == nil {
		state = &fileState{
			manager: ctx.NewManager(ctx.Config{
				WindowSize:     p.config.WindowSize,
				SnapshotRadius: p.config.SnapshotRadius,
				AcceptedLogCap: p.config.AcceptedLogCap,
				MaxDiffTokens:  p.config.MaxDiffTokens,
			}),
		}
		p.files[path] = state
	}
	state.lines = utils.CopyLines(lines)
	state.lastAccess = time.Now()
	state.manager.RecomputeWindow(state.lines)
	p.trimFileStore(maxTrackedFiles)
}

// trimFileStore evicts least recently touched files beyond max, never the
// active one.
func (p *PostProcessor) trimFileStore(max int) {
	for len(p.files) > max {
		oldestPath := ""
		var oldest time.Time
		for path, state := range p.files {
			if path == p.activePath {
				continue
			}
			if oldestPath == "" || state.lastAccess.Before(oldest) {
				oldestPath = path
				oldest = state.lastAccess
			}
		}
		if oldestPath == "" {
			return
		}
		delete(p.files, oldestPath)
		logger.Debug("engine: evicted file state for %q", oldestPath)
	}
}

func (p *PostProcessor) disposeOpenSuggestion() {
	if p.lastSuggestionID == "" {
		return
	}
	p.tracker.TrackDisposed(p.lastSuggestionID)
	p.lastSuggestionID = ""
}
