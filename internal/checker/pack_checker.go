package checker

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"l10n-checker/internal/diag"
	"l10n-checker/internal/dictpath"
	"l10n-checker/internal/gamedata"
	"l10n-checker/internal/pack"
	"l10n-checker/internal/variable"
	"l10n-checker/internal/worker"
)

// readerSource resolves variable references against the game strings only.
type readerSource struct {
	reader gamedata.Reader
}

func (s readerSource) Text(ref dictpath.Ref, _ diag.ReportFunc) (any, bool) {
	return s.reader.Get(ref)
}

func (s readerSource) Original(ref dictpath.Ref) (string, bool) {
	v, ok := s.reader.Get(ref)
	text, isText := v.(string)
	return text, ok && isText
}

// GameSource returns a variable source reading the game strings only.
func GameSource(r gamedata.Reader) variable.Source {
	return readerSource{r}
}

// packSource resolves variable references to their translation, falling back
// to the game string when the pack does not translate it yet.
type packSource struct {
	readerSource
	pack *pack.Pack
}

func (s packSource) Text(ref dictpath.Ref, report diag.ReportFunc) (any, bool) {
	v, ok := s.reader.Get(ref)
	if !ok {
		return nil, false
	}
	orig, isText := v.(string)
	if !isText {
		return v, true
	}
	entry, ok := s.pack.Get(ref.String(), orig)
	if !ok || entry.Text == "" {
		report(diag.Notice, fmt.Sprintf("referenced path '%s' not translated yet", ref))
		return orig, true
	}
	return entry.Text, true
}

// PackChecker checks whole packs, or the game itself, string by string.
type PackChecker struct {
	checker *Checker
	reader  gamedata.Reader
	locale  string
	workers int
}

// NewPackChecker creates a pack checker. locale is the source language of the
// game strings read through reader.
func NewPackChecker(checker *Checker, reader gamedata.Reader, locale string, workers int) *PackChecker {
	return &PackChecker{checker: checker, reader: reader, locale: locale, workers: workers}
}

// CheckPack checks every entry of p and returns the diagnostics in pack order.
func (pc *PackChecker) CheckPack(ctx context.Context, p *pack.Pack) []diag.Diagnostic {
	src := packSource{readerSource: readerSource{pc.reader}, pack: p}

	pool := worker.NewPool(pc.workers, func(_ context.Context, key string) ([]diag.Diagnostic, error) {
		entry, _ := p.Lookup(key)
		return pc.checkEntry(key, entry, src), nil
	})
	tasks := pool.Execute(ctx, p.Keys())

	var out []diag.Diagnostic
	for _, t := range tasks {
		out = append(out, t.Result...)
	}
	log.Debug().Int("entries", len(tasks)).Int("diagnostics", len(out)).Msg("Checked pack")
	return out
}

func (pc *PackChecker) checkEntry(key string, entry *pack.Entry, src packSource) []diag.Diagnostic {
	c := diag.NewCollector(key, entry.Text)

	ref, err := dictpath.Parse(key)
	if err != nil {
		c.Report(diag.Error, fmt.Sprintf("invalid reference: %v", err))
		return c.Diagnostics()
	}

	tagList := []string{"unknown"}
	trueOrig, hasOrig := "", false
	if complete, found := pc.reader.Complete(ref); found {
		tagList = complete.Tags
		trueOrig, hasOrig = complete.LangLabel[pc.locale]
	}

	orig := trueOrig
	switch {
	case !hasOrig:
		c.Report(diag.Warn, "translation is stale: does not exist anymore")
		if entry.Orig != nil {
			orig = *entry.Orig
		}
	case entry.Orig != nil && *entry.Orig != trueOrig:
		c.Report(diag.Warn, "translation is stale: original text differs")
		orig = *entry.Orig
	}

	if entry.Text == "" {
		switch {
		case entry.Encrypted():
			c.Report(diag.Notice, "encrypted entries not supported", "")
		case trueOrig != "":
			c.Report(diag.Error, "entry has no translation", "")
		}
		return c.Diagnostics()
	}

	pc.checker.CheckText(entry.Text, orig, tagList, c.Report, src)
	return c.Diagnostics()
}

// CheckAssets checks the game strings themselves, as if they were the
// translation. Useful to validate settings and spot original overflows.
func (pc *PackChecker) CheckAssets(ctx context.Context, walker gamedata.Walker) ([]diag.Diagnostic, error) {
	var entries []gamedata.Entry
	err := walker.Walk(func(e gamedata.Entry) error {
		if _, ok := e.LangLabel[pc.locale]; ok {
			entries = append(entries, e)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk game strings: %w", err)
	}

	src := readerSource{walker}
	pool := worker.NewPool(pc.workers, func(_ context.Context, e gamedata.Entry) ([]diag.Diagnostic, error) {
		text := e.LangLabel[pc.locale]
		c := diag.NewCollector(e.Ref.String(), text)
		pc.checker.CheckText(text, text, e.Tags, c.Report, src)
		return c.Diagnostics(), nil
	})
	tasks := pool.Execute(ctx, entries)

	var out []diag.Diagnostic
	for _, t := range tasks {
		out = append(out, t.Result...)
	}
	if err := ctx.Err(); err != nil {
		return out, err
	}
	return out, nil
}
