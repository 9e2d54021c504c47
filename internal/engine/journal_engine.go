package engine

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/scrypster/inkwell/internal/analysis"
	"github.com/scrypster/inkwell/internal/storage"
	"github.com/scrypster/inkwell/pkg/types"
)

// ErrEmptyText is returned when an empty or whitespace-only entry is
// submitted. Blank entries are rejected before anything is persisted.
var ErrEmptyText = errors.New("entry text is empty")

// Config holds engine configuration.
type Config struct {
	// NumWorkers is the number of enrichment worker goroutines.
	NumWorkers int

	// QueueSize is the enrichment queue capacity.
	QueueSize int
}

// DefaultConfig returns the default engine configuration.
func DefaultConfig() Config {
	return Config{
		NumWorkers: 2,
		QueueSize:  64,
	}
}

// enrichmentJob carries one entry through the async enrichment path.
type enrichmentJob struct {
	entryID string
	text    string
}

// JournalEngine owns the entry collection and orchestrates persistence and
// asynchronous enrichment. The collection is read fresh from storage at
// construction and written back after every insert or enrichment commit.
//
// Enrichments for different entries run concurrently but each commits its own
// entry snapshot by ID; if the same entry is somehow enriched twice, the
// later completion wins.
type JournalEngine struct {
	store    storage.EntryStore
	pipeline *EnrichmentPipeline
	config   Config

	mu      sync.Mutex
	entries []types.Entry // most recent first

	queue      chan *enrichmentJob
	workerWG   sync.WaitGroup
	workerCtx  context.Context
	stopWorker context.CancelFunc
	started    bool // guarded by mu, along with the queue close in Shutdown

	// onEnriched, when set, is called with the entry ID after each
	// enrichment commit. Used by the web layer to notify observers.
	onEnriched func(entryID string)

	now func() time.Time
}

// NewJournalEngine creates an engine and loads the entry collection from the
// store.
func NewJournalEngine(ctx context.Context, store storage.EntryStore, pipeline *EnrichmentPipeline, config Config) (*JournalEngine, error) {
	if config.NumWorkers < 1 {
		config.NumWorkers = 1
	}
	if config.QueueSize < 1 {
		config.QueueSize = 1
	}

	entries, err := store.LoadAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load journal: %w", err)
	}

	return &JournalEngine{
		store:    store,
		pipeline: pipeline,
		config:   config,
		entries:  entries,
		queue:    make(chan *enrichmentJob, config.QueueSize),
		now:      time.Now,
	}, nil
}

// SetEnrichmentCallback registers a function called after each enrichment
// commit. Must be called before Start.
func (e *JournalEngine) SetEnrichmentCallback(fn func(entryID string)) {
	e.onEnriched = fn
}

// Start launches the enrichment workers.
func (e *JournalEngine) Start(ctx context.Context) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.started {
		return
	}
	e.started = true
	e.workerCtx, e.stopWorker = context.WithCancel(ctx)
	for i := 0; i < e.config.NumWorkers; i++ {
		e.workerWG.Add(1)
		go e.enrichmentWorker(e.workerCtx, i)
	}
}

// Shutdown closes the queue and waits for queued and in-flight enrichments to
// commit. Entries added afterwards are enriched inline on the caller's
// goroutine, so a racing AddEntry still completes.
func (e *JournalEngine) Shutdown() {
	e.mu.Lock()
	if !e.started {
		e.mu.Unlock()
		return
	}
	e.started = false
	// tryQueue sends under e.mu and checks started first, so no send can
	// race this close.
	close(e.queue)
	e.mu.Unlock()

	e.workerWG.Wait()
	if e.stopWorker != nil {
		e.stopWorker()
	}
}

// AddEntry validates and persists a new entry with placeholder neutral
// classification, then queues it for asynchronous enrichment. The returned
// entry reflects the pre-enrichment state.
func (e *JournalEngine) AddEntry(ctx context.Context, text string) (*types.Entry, error) {
	entry, err := e.insertEntry(ctx, text)
	if err != nil {
		return nil, err
	}

	job := &enrichmentJob{entryID: entry.ID, text: entry.Text}
	if !e.tryQueue(job) {
		// No workers (or queue full): enrich inline so the entry never
		// stays un-analyzed.
		e.runEnrichment(ctx, job)
	}
	return entry, nil
}

// AddEntrySync validates, enriches, and persists a new entry in one call.
// Used by the CLI, where there is no long-lived process to run workers in.
func (e *JournalEngine) AddEntrySync(ctx context.Context, text string) (*types.Entry, error) {
	entry, err := e.insertEntry(ctx, text)
	if err != nil {
		return nil, err
	}
	e.runEnrichment(ctx, &enrichmentJob{entryID: entry.ID, text: entry.Text})
	return e.GetEntry(entry.ID)
}

// insertEntry creates the entry with placeholder classification and persists
// the updated collection.
func (e *JournalEngine) insertEntry(ctx context.Context, text string) (*types.Entry, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrEmptyText
	}

	entry := types.Entry{
		ID:        uuid.NewString(),
		Text:      text,
		CreatedAt: e.now(),
		Sentiment: types.SentimentNeutral,
		Themes:    []string{},
		WordCount: analysis.WordCount(text),
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	e.entries = append([]types.Entry{entry}, e.entries...)
	if err := e.store.ReplaceAll(ctx, e.entries); err != nil {
		e.entries = e.entries[1:]
		return nil, fmt.Errorf("failed to persist entry: %w", err)
	}
	return &entry, nil
}

// tryQueue attempts a non-blocking enqueue. Returns false when the workers
// are not running or the queue is full. Holding e.mu while sending pairs with
// Shutdown, which flips started and closes the queue under the same lock.
func (e *JournalEngine) tryQueue(job *enrichmentJob) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.started {
		return false
	}
	select {
	case e.queue <- job:
		return true
	default:
		log.Printf("WARNING: enrichment queue full (size=%d), enriching entry %s inline",
			e.config.QueueSize, job.entryID)
		return false
	}
}

// enrichmentWorker processes enrichment jobs until the queue is closed.
func (e *JournalEngine) enrichmentWorker(ctx context.Context, workerID int) {
	defer e.workerWG.Done()

	log.Printf("Enrichment worker %d started", workerID)
	for job := range e.queue {
		e.runEnrichment(ctx, job)
	}
	log.Printf("Enrichment worker %d stopped", workerID)
}

// runEnrichment enriches one entry and commits the result by ID.
func (e *JournalEngine) runEnrichment(ctx context.Context, job *enrichmentJob) {
	fields := e.pipeline.Enrich(ctx, job.text)
	if err := e.commitEnrichment(ctx, job.entryID, fields); err != nil {
		log.Printf("enrichment: failed to commit entry %s: %v", job.entryID, err)
		return
	}
	if e.onEnriched != nil {
		e.onEnriched(job.entryID)
	}
}

// commitEnrichment replaces the classification fields of the entry with the
// given ID (last-write-wins) and persists the whole collection. A missing ID
// means the entry was removed by an external collaborator; the commit is
// dropped silently.
func (e *JournalEngine) commitEnrichment(ctx context.Context, entryID string, fields EnrichedFields) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	for i := range e.entries {
		if e.entries[i].ID != entryID {
			continue
		}
		entry := &e.entries[i]
		entry.Sentiment = fields.Sentiment
		entry.Themes = fields.Themes
		entry.WordCount = fields.WordCount
		entry.InsightNote = fields.InsightNote
		entry.EmotionalIntensity = fields.EmotionalIntensity
		entry.KeyTopics = fields.KeyTopics
		entry.Suggestions = fields.Suggestions
		entry.FallbackUsed = fields.FallbackUsed
		return e.store.ReplaceAll(ctx, e.entries)
	}
	return nil
}

// Entries returns a snapshot copy of the collection, most recent first.
func (e *JournalEngine) Entries() []types.Entry {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]types.Entry, len(e.entries))
	copy(out, e.entries)
	return out
}

// GetEntry returns a copy of the entry with the given ID.
func (e *JournalEngine) GetEntry(id string) (*types.Entry, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	for _, entry := range e.entries {
		if entry.ID == id {
			return &entry, nil
		}
	}
	return nil, fmt.Errorf("entry %s not found", id)
}

// QueueSize returns the number of enrichment jobs currently queued.
func (e *JournalEngine) QueueSize() int {
	return len(e.queue)
}

// Stats computes windowed aggregate statistics over the current collection.
func (e *JournalEngine) Stats(windowDays int) (*Aggregate, error) {
	return ComputeAggregate(e.Entries(), windowDays, e.now())
}

// Insight computes the period insight over the current collection.
func (e *JournalEngine) Insight(period types.Period) (*types.PeriodInsight, error) {
	return SummarizePeriod(e.Entries(), period, e.now())
}

// Streak computes the current consecutive-day journaling streak.
func (e *JournalEngine) Streak() int {
	entries := e.Entries()
	timestamps := make([]time.Time, len(entries))
	for i, entry := range entries {
		timestamps[i] = entry.CreatedAt
	}
	return CurrentStreak(timestamps, e.now())
}
