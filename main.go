package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"tabmend/ctx"
	"tabmend/engine"
	"tabmend/logger"
	"tabmend/types"
)

// loadConfig reads the engine configuration from the TABMEND_CONFIG
// environment variable (JSON). An unset variable selects defaults.
func loadConfig() engine.Config {
	var config engine.Config
	raw := os.Getenv("TABMEND_CONFIG")
	if raw == "" {
		return config
	}
	if err := json.Unmarshal([]byte(raw), &config); err != nil {
		log.Fatalf("error parsing TABMEND_CONFIG: %v", err)
	}
	return config
}

// Setup logger to log to a file in the same directory as the executable.
// Caller must defer Close on the returned logger.
func setupLogger(logLevel string) *logger.Logger {
	execPath, err := os.Executable()
	if err != nil {
		log.Fatalf("error getting executable path: %v", err)
	}
	logPath := filepath.Join(filepath.Dir(execPath), "tabmend.log")

	l, err := logger.Init(logPath, logger.ParseLevel(logLevel))
	if err != nil {
		log.Fatalf("error opening log file: %v", err)
	}
	return l
}

func main() {
	filePath := flag.String("file", "", "path of the document being completed")
	line := flag.Int("line", 1, "1-indexed cursor line")
	col := flag.Int("col", 0, "0-indexed cursor byte offset within the line")
	language := flag.String("language", "", "language id of the document (e.g. python)")
	candidate := flag.String("completion", "", "candidate completion text")
	tabSize := flag.Int("tab-size", 4, "spaces per indent unit")
	insertSpaces := flag.Bool("spaces", true, "indent with spaces instead of tabs")
	contextOut := flag.String("context-out", "", "write the compressed context bundle to this path")
	printStats := flag.Bool("stats", false, "print suggestion lifecycle counters")
	flag.Parse()

	config := loadConfig()
	l := setupLogger(config.LogLevel)
	defer l.Close()

	if *filePath == "" {
		fmt.Fprintln(os.Stderr, "usage: tabmend -file <path> -line <n> -col <n> -completion <text> [flags]")
		os.Exit(2)
	}

	content, err := os.ReadFile(*filePath)
	if err != nil {
		log.Fatalf("error reading %s: %v", *filePath, err)
	}
	doc := types.NewDocument(strings.TrimSuffix(string(content), "\n"))
	cursor := types.Position{Line: *line - 1, Col: *col}

	processor, err := engine.NewPostProcessor(config)
	if err != nil {
		log.Fatalf("error building post-processor: %v", err)
	}
	processor.HandleEditorChanged(*filePath, doc.Lines())

	result, err := processor.Process(context.Background(), &engine.Request{
		Document:   doc,
		Cursor:     cursor,
		LanguageID: *language,
		Indent:     types.IndentSettings{InsertSpaces: *insertSpaces, TabSize: *tabSize},
		Candidate:  *candidate,
	})
	if err != nil {
		log.Fatalf("error processing completion: %v", err)
	}

	out, err := json.Marshal(result)
	if err != nil {
		log.Fatalf("error encoding result: %v", err)
	}
	fmt.Println(string(out))

	if *contextOut != "" {
		bundle := processor.BuildContext(cursor.Line)
		encoded, err := ctx.EncodeBundle(bundle)
		if err != nil {
			log.Fatalf("error encoding context bundle: %v", err)
		}
		if err := os.WriteFile(*contextOut, encoded, 0644); err != nil {
			log.Fatalf("error writing context bundle: %v", err)
		}
		logger.Info("wrote context bundle (%d bytes) to %s", len(encoded), *contextOut)
	}

	if *printStats {
		processor.LogStats()
		stats, err := json.Marshal(processor.Stats())
		if err != nil {
			log.Fatalf("error encoding stats: %v", err)
		}
		fmt.Println(string(stats))
	}
}
