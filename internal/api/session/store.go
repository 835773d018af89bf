package session

import (
	"log/slog"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/patrickmn/go-cache"

	"github.com/tripmind/travel-concierge/internal/types"
)

var _ Service = (*Store)(nil)

// Service is the process-lifetime session memory: short conversational
// history plus uploaded document chunks, keyed by session identifier.
// Relevance scores from Search are keyword-overlap ratios in [0,1]; they are
// not comparable with vector distances from any other store.
type Service interface {
	AppendExchange(sessionID string, userMessage, assistantMessage string)
	History(sessionID string) []types.ConversationTurn
	AddDocuments(sessionID string, chunks []types.DocumentChunk) int
	Search(sessionID string, query string, topK int) []types.DocumentExcerpt
	Info(sessionID string) types.SessionInfoResponse
	Clear(sessionID string)
}

// sessionState is everything one session owns. The mutex makes
// append-and-trim a single atomic step; two requests racing on the same
// session resolve to last-writer-wins, never a corrupted list.
type sessionState struct {
	mu      sync.Mutex
	history []types.ConversationTurn
	chunks  []types.DocumentChunk
}

type Store struct {
	logger *slog.Logger

	mu       sync.Mutex
	sessions *cache.Cache
	idleTTL  time.Duration
}

// NewStore builds a session store whose entries are evicted after idleTTL
// without access.
func NewStore(idleTTL, cleanupInterval time.Duration, logger *slog.Logger) *Store {
	if idleTTL <= 0 {
		idleTTL = time.Hour
	}
	if cleanupInterval <= 0 {
		cleanupInterval = 10 * time.Minute
	}
	return &Store{
		logger:   logger,
		sessions: cache.New(idleTTL, cleanupInterval),
		idleTTL:  idleTTL,
	}
}

// getOrCreate returns the live state for a session, extending its idle TTL.
func (s *Store) getOrCreate(sessionID string) *sessionState {
	s.mu.Lock()
	defer s.mu.Unlock()

	if existing, found := s.sessions.Get(sessionID); found {
		state := existing.(*sessionState)
		s.sessions.Set(sessionID, state, cache.DefaultExpiration)
		return state
	}

	state := &sessionState{}
	s.sessions.Set(sessionID, state, cache.DefaultExpiration)
	return state
}

func (s *Store) peek(sessionID string) (*sessionState, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, found := s.sessions.Get(sessionID)
	if !found {
		return nil, false
	}
	return existing.(*sessionState), true
}

// AppendExchange records one user/assistant exchange and trims the history
// to the most recent MaxHistoryTurns entries in the same critical section.
func (s *Store) AppendExchange(sessionID, userMessage, assistantMessage string) {
	state := s.getOrCreate(sessionID)

	state.mu.Lock()
	defer state.mu.Unlock()

	state.history = append(state.history,
		types.ConversationTurn{Role: types.RoleUser, Content: userMessage},
		types.ConversationTurn{Role: types.RoleAssistant, Content: assistantMessage},
	)
	if len(state.history) > types.MaxHistoryTurns {
		state.history = state.history[len(state.history)-types.MaxHistoryTurns:]
	}
}

// History returns a copy of the session's conversation turns, oldest first.
func (s *Store) History(sessionID string) []types.ConversationTurn {
	state, found := s.peek(sessionID)
	if !found {
		return nil
	}

	state.mu.Lock()
	defer state.mu.Unlock()

	history := make([]types.ConversationTurn, len(state.history))
	copy(history, state.history)
	return history
}

// AddDocuments appends chunks to the session and returns how many were
// stored.
func (s *Store) AddDocuments(sessionID string, chunks []types.DocumentChunk) int {
	if len(chunks) == 0 {
		return 0
	}
	state := s.getOrCreate(sessionID)

	state.mu.Lock()
	defer state.mu.Unlock()

	state.chunks = append(state.chunks, chunks...)
	return len(chunks)
}

// Search ranks the session's chunks by keyword overlap with the query:
// score = |query words ∩ chunk words|, relevance = score / |query words|.
// Chunks with no overlap are never returned.
func (s *Store) Search(sessionID, query string, topK int) []types.DocumentExcerpt {
	state, found := s.peek(sessionID)
	if !found {
		return nil
	}

	state.mu.Lock()
	chunks := make([]types.DocumentChunk, len(state.chunks))
	copy(chunks, state.chunks)
	state.mu.Unlock()

	if len(chunks) == 0 {
		return nil
	}

	queryWords := wordSet(query)
	if len(queryWords) == 0 {
		return nil
	}

	type scored struct {
		excerpt types.DocumentExcerpt
		score   int
	}
	var results []scored
	for _, chunk := range chunks {
		score := 0
		for word := range wordSet(chunk.Content) {
			if queryWords[word] {
				score++
			}
		}
		if score == 0 {
			continue
		}
		results = append(results, scored{
			excerpt: types.DocumentExcerpt{
				Content:   chunk.Content,
				Filename:  chunk.Filename,
				Relevance: float64(score) / float64(len(queryWords)),
			},
			score: score,
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].score > results[j].score
	})

	if topK > 0 && len(results) > topK {
		results = results[:topK]
	}

	excerpts := make([]types.DocumentExcerpt, len(results))
	for i, r := range results {
		excerpts[i] = r.excerpt
	}
	return excerpts
}

func (s *Store) Info(sessionID string) types.SessionInfoResponse {
	info := types.SessionInfoResponse{SessionID: sessionID}

	state, found := s.peek(sessionID)
	if !found {
		return info
	}

	state.mu.Lock()
	defer state.mu.Unlock()

	info.Exists = true
	info.Count = len(state.chunks)
	return info
}

func (s *Store) Clear(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions.Delete(sessionID)
}

func wordSet(text string) map[string]bool {
	words := strings.Fields(strings.ToLower(text))
	set := make(map[string]bool, len(words))
	for _, w := range words {
		set[strings.Trim(w, ".,!?;:\"'()")] = true
	}
	delete(set, "")
	return set
}
