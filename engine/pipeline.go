package engine

import (
	"strings"

	"tabmend/logger"
	"tabmend/types"
)

// pipelineContext carries data through the post-processing pipeline.
type pipelineContext struct {
	Request    *Request
	LinePrefix string
	Resolved   string
	Decision   types.Decision
	Result     *types.Result
}

// postprocessor processes one pipeline stage.
// Returns (result, done) - if done is true, the result is returned immediately.
type postprocessor func(p *PostProcessor, pctx *pipelineContext) (*types.Result, bool)

// rejectEmpty returns a postprocessor that short-circuits empty candidates
func rejectEmpty() postprocessor {
	return func(p *PostProcessor, pctx *pipelineContext) (*types.Result, bool) {
		if strings.TrimSpace(pctx.Request.Candidate) == "" {
			logger.Debug("engine: empty candidate, short-circuiting")
			return emptyResult(pctx.Request), true
		}
		return nil, false
	}
}

// resolveDuplication returns a postprocessor that strips prefix echo
func resolveDuplication() postprocessor {
	return func(p *PostProcessor, pctx *pipelineContext) (*types.Result, bool) {
		req := pctx.Request
		pctx.Resolved = p.dedup.Resolve(pctx.LinePrefix, req.Candidate, req.LanguageID)
		if pctx.Resolved != req.Candidate {
			logger.Debug("engine: deduplicated %q -> %q", req.Candidate, pctx.Resolved)
		}
		if strings.TrimSpace(pctx.Resolved) == "" {
			logger.Debug("engine: candidate fully duplicated, nothing to insert")
			return emptyResult(req), true
		}
		return nil, false
	}
}

// decideFormatting returns a postprocessor that evaluates the formatting rules
func decideFormatting() postprocessor {
	return func(p *PostProcessor, pctx *pipelineContext) (*types.Result, bool) {
		req := pctx.Request
		pctx.Decision = p.rules.Decide(pctx.LinePrefix, req.LanguageID, req.Indent)
		return nil, false
	}
}

// composeResult returns the terminal postprocessor that assembles the final
// insertable text. Line breaking is expressed entirely in the text; the
// anchor stays at the cursor.
func composeResult() postprocessor {
	return func(p *PostProcessor, pctx *pipelineContext) (*types.Result, bool) {
		text := pctx.Resolved
		if pctx.Decision.InsertOnNewLine {
			text = "\n" + pctx.Decision.Indentation + strings.TrimLeft(text, " \t")
		}
		return &types.Result{Text: text, Anchor: pctx.Request.Cursor}, true
	}
}

// emptyResult is the no-insertion result anchored at the request cursor.
func emptyResult(req *Request) *types.Result {
	return &types.Result{Text: "", Anchor: req.Cursor}
}
