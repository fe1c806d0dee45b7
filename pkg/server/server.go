package server

import (
	"fmt"
	"io"
	"os"
	"runtime"
	"time"

	"github.com/charmbracelet/log"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/shashir/linguistic-chain/internal/utils"
	"github.com/shashir/linguistic-chain/pkg/chain"
	"github.com/shashir/linguistic-chain/pkg/config"
	"github.com/shashir/linguistic-chain/pkg/dictionary"
)

// reloadInterval is how many requests pass between config reloads and a
// forced GC during long-running sessions.
const reloadInterval = 500

// Server handles the IPC for chain searches. The loader is optional: when
// the server runs on a static text word list there is nothing to manage at
// runtime and dictionary requests are rejected.
type Server struct {
	finder       chain.Finder
	loader       *dictionary.Loader
	cfg          *config.Config
	configPath   string
	decoder      *msgpack.Decoder
	encoder      *msgpack.Encoder
	requestCount int
}

// NewServer creates a chain search server using stdin/stdout for IPC
func NewServer(finder chain.Finder, loader *dictionary.Loader, cfg *config.Config, configPath string) *Server {
	return newServer(finder, loader, cfg, configPath, os.Stdin, os.Stdout)
}

func newServer(finder chain.Finder, loader *dictionary.Loader, cfg *config.Config, configPath string, r io.Reader, w io.Writer) *Server {
	return &Server{
		finder:     finder,
		loader:     loader,
		cfg:        cfg,
		configPath: configPath,
		decoder:    msgpack.NewDecoder(r),
		encoder:    msgpack.NewEncoder(w),
	}
}

// Start begins the request loop. It returns nil on clean EOF.
func (s *Server) Start() error {
	log.Debug("Starting IPC server.")

	for {
		raw, err := s.decoder.DecodeMap()
		if err != nil {
			if err == io.EOF {
				return nil
			}
			log.Errorf("Decoding request: %v", err)
			return err
		}
		s.handleRequest(raw)
	}
}

// handleRequest routes one decoded message by its fields: anything carrying
// an "action" is a dictionary management request, the rest are chain
// searches.
func (s *Server) handleRequest(raw map[string]any) {
	s.requestCount++
	s.maybeReload()

	id, _ := asString(raw["id"])

	if _, ok := raw["action"]; ok {
		s.handleDictionary(id, raw)
		return
	}
	s.handleChain(id, raw)
}

// handleChain validates a chain request, runs the search and sends the
// response with microsecond timing.
func (s *Server) handleChain(id string, raw map[string]any) {
	word, _ := asString(raw["w"])

	if word == "" {
		s.sendError(id, "Missing 'w' parameter", 400)
		log.Debug("Word is empty in request")
		return
	}
	if maxLen := s.cfg.Server.MaxWordLen; maxLen > 0 && len([]rune(word)) > maxLen {
		s.sendError(id, fmt.Sprintf("Word exceeds maximum length of %d characters", maxLen), 400)
		log.Debug("Word is too long in request")
		return
	}
	if s.cfg.Server.EnableFilter && !utils.IsValidWord(word) {
		s.sendError(id, fmt.Sprintf("Word rejected by input filter: %q", word), 400)
		return
	}

	limit, _ := asInt(raw["l"])
	if limit < 1 {
		limit = s.cfg.CLI.DefaultLimit
	}
	if maxChains := s.cfg.Server.MaxChains; maxChains > 0 && limit > maxChains {
		limit = maxChains
	}

	start := time.Now()
	result := s.finder.Search(word)
	elapsed := time.Since(start)

	if !result.InDictionary {
		log.Warnf("Input word %q is not a dictionary word", word)
	}

	chains := result.Chains
	if len(chains) > limit {
		chains = chains[:limit]
	}

	s.sendResponse(ChainResponse{
		ID:        id,
		Chains:    chains,
		Count:     len(chains),
		Depth:     result.Depth(),
		Miss:      !result.InDictionary,
		TimeTaken: elapsed.Microseconds(),
	})
}

// handleDictionary processes runtime dictionary management requests.
func (s *Server) handleDictionary(id string, raw map[string]any) {
	action, _ := asString(raw["action"])

	if s.loader == nil {
		s.sendResponse(DictionaryResponse{
			ID:     id,
			Status: "error",
			Error:  "dictionary management unavailable: server runs on a static word list",
		})
		return
	}

	switch action {
	case "get_info":
		stats := s.loader.GetStats()
		s.sendResponse(DictionaryResponse{
			ID:              id,
			Status:          "ok",
			CurrentChunks:   stats.LoadedChunks,
			AvailableChunks: stats.AvailableChunks,
			TotalWords:      stats.TotalWords,
		})
	case "set_size":
		count, ok := asInt(raw["chunk_count"])
		if !ok {
			s.sendResponse(DictionaryResponse{ID: id, Status: "error", Error: "missing 'chunk_count' parameter"})
			return
		}
		if err := s.loader.SetChunkCount(count); err != nil {
			s.sendResponse(DictionaryResponse{ID: id, Status: "error", Error: err.Error()})
			return
		}
		stats := s.loader.GetStats()
		s.sendResponse(DictionaryResponse{
			ID:              id,
			Status:          "ok",
			CurrentChunks:   stats.LoadedChunks,
			AvailableChunks: stats.AvailableChunks,
			TotalWords:      stats.TotalWords,
		})
	case "get_options":
		options, err := s.loader.SizeOptions()
		if err != nil {
			s.sendResponse(DictionaryResponse{ID: id, Status: "error", Error: err.Error()})
			return
		}
		converted := make([]DictionarySizeOption, len(options))
		for i, opt := range options {
			converted[i] = DictionarySizeOption{
				ChunkCount: opt.ChunkCount,
				WordCount:  opt.WordCount,
				SizeLabel:  opt.SizeLabel,
			}
		}
		s.sendResponse(DictionaryResponse{ID: id, Status: "ok", Options: converted})
	default:
		s.sendResponse(DictionaryResponse{
			ID:     id,
			Status: "error",
			Error:  fmt.Sprintf("unknown action: %s", action),
		})
	}
}

// sendResponse encodes the given response as msgpack onto the output stream.
func (s *Server) sendResponse(response any) {
	if err := s.encoder.Encode(response); err != nil {
		log.Errorf("Encoding response: %v", err)
	}
}

// sendError sends an error response
func (s *Server) sendError(id, message string, code int) {
	s.sendResponse(ChainError{
		ID:    id,
		Error: message,
		Code:  code,
	})
}

// maybeReload refreshes config from disk and nudges the GC every
// reloadInterval requests so long sessions pick up edits without a restart.
func (s *Server) maybeReload() {
	if s.configPath == "" || s.requestCount%reloadInterval != 0 {
		return
	}
	cfg, err := config.LoadConfig(s.configPath)
	if err != nil {
		log.Warnf("Config reload failed: %v", err)
		return
	}
	s.cfg = cfg
	runtime.GC()
	log.Debugf("Config reloaded after %d requests", s.requestCount)
}

// asString extracts a string from a decoded msgpack value.
func asString(v any) (string, bool) {
	s, ok := v.(string)
	return s, ok
}

// asInt extracts an int from a decoded msgpack value, which may arrive as
// any of the integer widths msgpack uses on the wire.
func asInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int8:
		return int(n), true
	case int16:
		return int(n), true
	case int32:
		return int(n), true
	case int64:
		return int(n), true
	case uint8:
		return int(n), true
	case uint16:
		return int(n), true
	case uint32:
		return int(n), true
	case uint64:
		return int(n), true
	case float64:
		return int(n), true
	default:
		return 0, false
	}
}
