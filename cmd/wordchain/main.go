/*
Package main implements the wordchain search server and CLI application.

wordchain finds the longest sequences of dictionary words that start from an
input word, where every following word is formed by deleting exactly one
character from its predecessor and must itself be a dictionary word. All
chains of maximal length are reported; the search never prefers one tie over
another.

It can operate as a MessagePack IPC server for integration with other
programs, as an interactive CLI, or as a one-shot command.

# Usage

Find the chains for one word against a plain word list:

	wordchain -dict words.txt starting

which prints one line per maximal chain:

	starting => stating => statin => satin => sati => sat => at => a

Run in interactive CLI mode against a chunked data directory:

	wordchain -c -data /path/to/chunks

Start the IPC server with debug logging:

	wordchain -d

# Dictionaries

Two dictionary sources are supported. A plain text word list (-dict) holds
one word per line and is loaded eagerly. A data directory (-data) holds
chunked binary files named chain_0001.bin, chain_0002.bin, etc., which are
lazily loaded in the background based on the configured word limits; server
clients can grow or shrink the loaded set at runtime.

The input word itself does not have to be in the dictionary: the search runs
regardless and a warning is logged.

# Configuration

Runtime configuration is managed through a TOML file that supports server
parameters, dictionary settings, and CLI defaults:

	[server]
	max_chains = 64
	max_word_len = 60
	enable_filter = true

	[dict]
	max_words = 50000
	chunk_size = 10000

	[cli]
	default_limit = 16
	default_separator = " => "

The config file is automatically created with defaults if it doesn't exist.
Server mode reloads configuration periodically without restart.

# IPC Protocol

The server communicates via MessagePack over stdin/stdout. Chain requests
are processed synchronously with microsecond timing information included in
responses.

Send a chain request:

	{"id": "req1", "w": "starting", "l": 8}

Receive every maximal chain, root word first:

	{"id": "req1", "ch": [["starting", "stating", ...]], "c": 1, "d": 7, "t": 145}

Dictionary management requests allow runtime adjustment of loaded chunks:

	{"id": "dict1", "action": "get_info"}
	{"id": "dict2", "action": "set_size", "chunk_count": 5}

# Command Line Flags

The following flags control application behavior:

	-dict string
	    Plain text word list, one word per line
	-data string
	    Directory containing binary chunk files (default "data/")
	-d  Enable debug mode with detailed logging
	-c  Run in interactive CLI mode instead of server mode
	-limit int
	    Number of chains to print (default from config)
	-maxlen int
	    Maximum input word length
	-sep string
	    Separator between chain words (default from config)
	-no-filter
	    Disable input filtering for debugging
	-words int
	    Maximum words to load from chunks (0 for all)
	-chunk int
	    Words per chunk for lazy loading

The application automatically resolves data and config paths relative to the
executable location, supporting both development and production deployments.
*/
package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/shashir/linguistic-chain/internal/cli"
	"github.com/shashir/linguistic-chain/internal/utils"
	"github.com/shashir/linguistic-chain/pkg/chain"
	"github.com/shashir/linguistic-chain/pkg/config"
	"github.com/shashir/linguistic-chain/pkg/dictionary"
	"github.com/shashir/linguistic-chain/pkg/server"
)

const (
	Version = "1.2.0"
	AppName = "wordchain"
	gh      = "https://github.com/shashir/linguistic-chain"
)

// sigHandler is a simple handler for OS signals to exit normally.
func sigHandler() {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		fmt.Fprintf(os.Stderr, "\nExiting...\n")
		os.Exit(0)
	}()
}

// main wires the dictionary, searcher and front-ends together. It does not
// implement any of their logic and only manages the flow.
func main() {
	sigHandler()
	defaultConfig := config.DefaultConfig()

	showVersion := flag.Bool("version", false, "Show current version")
	dictFile := flag.String("dict", "", "Plain text word list (one word per line)")
	binaryDir := flag.String("data", "data/", "Directory containing the binary chunk files")
	debugMode := flag.Bool("d", false, "Toggle debug mode")
	cliMode := flag.Bool("c", false, "Run interactive CLI -- useful for testing and debugging")
	limit := flag.Int("limit", defaultConfig.CLI.DefaultLimit, "Number of chains to print")
	maxWordLen := flag.Int("maxlen", defaultConfig.Server.MaxWordLen, "Maximum input word length")
	separator := flag.String("sep", defaultConfig.CLI.DefaultSeparator, "Separator between chain words")
	noFilter := flag.Bool("no-filter", defaultConfig.CLI.DefaultNoFilter, "Disable input filtering (DBG only) - accepts raw input (numbers, symbols, etc)")
	wordLimit := flag.Int("words", defaultConfig.Dict.MaxWords, "Maximum number of words to load (use 0 for all words)")
	chunkSize := flag.Int("chunk", defaultConfig.Dict.ChunkSize, "Number of words per chunk for lazy loading")

	flag.Parse()

	if *showVersion {
		logger := log.NewWithOptions(os.Stderr, log.Options{
			ReportCaller:    false,
			ReportTimestamp: false,
			Prefix:          "",
		})

		styles := log.DefaultStyles()
		styles.Values["version"] = lipgloss.NewStyle().Bold(true).
			Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"})
		styles.Values["gh"] = lipgloss.NewStyle().Italic(true).
			Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"})
		logger.SetStyles(styles)

		logger.Print("")
		logger.Print("[ wordchain ] Finds the longest word deletion chains!")
		logger.Print("", "version", Version)
		logger.Print("")
		logger.Print("use -h or --help to see available options")
		logger.Print("Github Repo", "gh", gh)

		os.Exit(0)
	}

	if *debugMode {
		log.SetLevel(log.DebugLevel)
		log.SetReportTimestamp(true)
	} else {
		log.SetLevel(log.WarnLevel)
	}

	pathResolver, err := utils.NewPathResolver()
	if err != nil {
		log.Fatalf("Failed to initialize path resolver: %v", err)
	}

	// Dictionary source: a plain word list beats the chunk dir when given.
	var (
		words  *dictionary.Set
		loader *dictionary.Loader
	)
	if *dictFile != "" {
		words, err = dictionary.LoadTextFile(*dictFile, !*noFilter)
		if err != nil {
			log.Fatalf("Failed to load word list: %v", err)
		}
		log.Debugf("Loaded word list %s: %d words", *dictFile, words.WordCount())
	} else {
		resolvedDataDir, err := pathResolver.GetDataDir(*binaryDir)
		if err != nil {
			log.Fatalf("Failed to resolve data dir: (%v)", err)
		}
		log.Debugf("Using data dir at: %s", resolvedDataDir)
		log.Debugf("Init loader: maxWords=[%d], chunkSize=[%d]", *wordLimit, *chunkSize)

		loader = dictionary.NewLoader(resolvedDataDir, *chunkSize, *wordLimit)
		if err := loader.Start(); err != nil {
			log.Fatalf("Failed to init dictionary loader: %v", err)
		}
		words = loader.Set()
		log.Debug("Loader init done")
	}

	searcher := chain.NewSearcher(words)

	// One-shot mode: a positional word means search, print, exit.
	if flag.NArg() > 0 {
		log.SetReportTimestamp(false)
		if log.GetLevel() > log.InfoLevel {
			log.SetLevel(log.InfoLevel)
		}
		handler := cli.NewInputHandler(searcher, *maxWordLen, *limit, *separator, *noFilter)
		for _, word := range flag.Args() {
			handler.HandleWord(word)
		}
		return
	}

	if *cliMode {
		log.SetReportTimestamp(false)
		log.Debug("Input info:",
			"maxWordLen", *maxWordLen,
			"limit", *limit,
			"separator", *separator,
			"noFilter", *noFilter)

		cli.ShowDictInfo(words.WordCount())
		handler := cli.NewInputHandler(searcher, *maxWordLen, *limit, *separator, *noFilter)
		if err := handler.Start(); err != nil {
			log.Fatalf("CLI error: %v", err)
		}
		return
	}

	log.Debug("spawning IPC")
	configPath, err := pathResolver.GetConfigPath("wordchain.toml")
	if err != nil {
		log.Fatalf("Failed to determine config path: (%v)", err)
	}
	log.Debugf("Using config file: (%s)", configPath)

	appConfig, err := config.InitConfig(configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	srv := server.NewServer(searcher, loader, appConfig, configPath)

	showStartupInfo(words)

	if err := srv.Start(); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// showStartupInfo displays some basic info about the init process.
func showStartupInfo(words *dictionary.Set) {
	pid := os.Getpid()
	currentLevel := log.GetLevel()
	log.SetLevel(log.InfoLevel)

	println("===========")
	println(" wordchain ")
	println("===========")
	log.Infof("Version: %s", Version)
	log.Infof("Process ID: [ %d ]", pid)
	log.Info("init: OK")
	log.Infof("words loaded: %s", utils.FormatWithCommas(words.WordCount()))
	log.Info("status: ready")
	println("===========")
	println("Press Ctrl+C to exit")

	log.SetLevel(currentLevel)
}
