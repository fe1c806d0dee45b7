// Package cli handles cmd line input and chain output for one-shot lookups, testing and debugging
package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/shashir/linguistic-chain/internal/logger"
	"github.com/shashir/linguistic-chain/internal/utils"
	"github.com/shashir/linguistic-chain/pkg/chain"
)

// InputHandler processes words from stdin and prints the maximal deletion
// chains for each. Flags control the word length bound, how many chains get
// printed, the separator between chain words, and input filtering.
type InputHandler struct {
	finder       chain.Finder
	maxWordLen   int
	chainLimit   int
	separator    string
	noFilter     bool
	requestCount int
}

// NewInputHandler handles initialization of the InputHandler with basic parameters
func NewInputHandler(finder chain.Finder, maxWordLen, limit int, separator string, noFilter bool) *InputHandler {
	return &InputHandler{
		finder:     finder,
		maxWordLen: maxWordLen,
		chainLimit: limit,
		separator:  separator,
		noFilter:   noFilter,
	}
}

// Start begins the interface loop.
// It continuously prompts for input, reads a line from stdin, and passes the
// trimmed word to HandleWord. Loop terminates if reading stdin fails.
func (h *InputHandler) Start() error {
	prompt := logger.Default("wordchain")
	prompt.Print("wordchain CLI")
	reader := bufio.NewReader(os.Stdin)
	prompt.Print("type a word and press Enter to see its deletion chains (Ctrl+C to exit):")

	for {
		prompt.Print("> ")
		word, err := reader.ReadString('\n')
		if err != nil {
			return err
		}
		word = strings.TrimSpace(word)
		if word == "" {
			continue
		}
		h.HandleWord(word)
	}
}

// HandleWord runs one search and prints each maximal chain on its own line,
// words joined by the configured separator.
func (h *InputHandler) HandleWord(word string) {
	h.requestCount++

	if h.maxWordLen > 0 && len([]rune(word)) > h.maxWordLen {
		log.Errorf("Word too long: %s", word)
		return
	}

	// input filtering by default (unless --no-filter flag is used)
	if !h.noFilter {
		if !utils.IsValidWord(word) {
			log.Warnf("Input rejected by filter: '%s'", word)
			return
		}
	} else {
		log.Debug("Input filtering disabled - accepting raw input")
	}

	start := time.Now()
	log.Debug("Processing request for", "word", word)

	result := h.finder.Search(word)

	elapsed := time.Since(start)
	log.Debugf("Took [ %v ] for word '%s'", elapsed, word)

	if !result.InDictionary {
		log.Warnf("'%s' is not a dictionary word; chains start from it anyway", word)
	}

	chains := result.Chains
	total := len(chains)
	if h.chainLimit > 0 && len(chains) > h.chainLimit {
		chains = chains[:h.chainLimit]
	}

	log.Printf("Found %d maximal chain(s) of depth %d for '%s':", total, result.Depth(), word)
	for _, c := range chains {
		fmt.Fprintln(os.Stdout, strings.Join(c, h.separator))
	}
	if total > len(chains) {
		log.Printf("(%d more not shown, raise -limit to see them)", total-len(chains))
	}
}

// ShowDictInfo prints a one-line summary of the loaded dictionary.
func ShowDictInfo(wordCount int) {
	log.Printf("dictionary ready: %s words", utils.FormatWithCommas(wordCount))
}
