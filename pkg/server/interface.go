/*
Package server implements msgpack IPC for deletion-chain searches.

The server provides a minimal interface for chain lookups using msgpack
serialization over stdin/stdout. Messages are processed synchronously with
timing info included in responses.

# IPC

Clients send structured messages via stdin and receive responses through
stdout. Each message carries an ID field and other fields based on the
operation type.

Chain requests use this structure:

	{"id": "req_001", "w": "starting", "l": 8}

The server responds with every maximal chain, root word first:

	{"id": "req_001", "ch": [["starting", "stating", ...]], "c": 1, "d": 7, "t": 145}

The "miss" flag is set when the input word itself is not in the dictionary;
the search still ran and the chains are still valid.

Dictionary management enables runtime adjustment of loaded word sets when the
server runs on chunked binary dictionaries:

	{"id": "dict_001", "action": "set_size", "chunk_count": 5}
	{"id": "dict_002", "action": "get_options"}

Errors come back as {"id": ..., "e": "message", "c": code} with 4xx codes for
bad requests and 5xx for internal failures.
*/
package server

// ChainRequest - minimal chain search request
type ChainRequest struct {
	ID    string `msgpack:"id"`
	Word  string `msgpack:"w"`
	Limit int    `msgpack:"l,omitempty"`
}

// ChainResponse - chain search response. Chains run root-first and all have
// equal length; Depth is the number of deletions in each.
type ChainResponse struct {
	ID        string     `msgpack:"id"`
	Chains    [][]string `msgpack:"ch"`
	Count     int        `msgpack:"c"`
	Depth     int        `msgpack:"d"`
	Miss      bool       `msgpack:"miss,omitempty"`
	TimeTaken int64      `msgpack:"t"`
}

// DictionaryRequest - dictionary management request
type DictionaryRequest struct {
	ID         string `msgpack:"id"`
	Action     string `msgpack:"action"`                // "get_info", "set_size", "get_options"
	ChunkCount *int   `msgpack:"chunk_count,omitempty"` // for "set_size"
}

// DictionarySizeOption - dictionary size option
type DictionarySizeOption struct {
	ChunkCount int    `msgpack:"chunk_count"`
	WordCount  int    `msgpack:"word_count"`
	SizeLabel  string `msgpack:"size_label"`
}

// DictionaryResponse - dictionary operation response
type DictionaryResponse struct {
	ID              string                 `msgpack:"id"`
	Status          string                 `msgpack:"status"`
	Error           string                 `msgpack:"error,omitempty"`
	CurrentChunks   int                    `msgpack:"current_chunks,omitempty"`
	AvailableChunks int                    `msgpack:"available_chunks,omitempty"`
	TotalWords      int                    `msgpack:"total_words,omitempty"`
	Options         []DictionarySizeOption `msgpack:"options,omitempty"`
}

// ChainError holds basic error information for failed requests
type ChainError struct {
	ID    string `msgpack:"id"`
	Error string `msgpack:"e"`
	Code  int    `msgpack:"c"`
}
