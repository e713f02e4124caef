// Command search builds the index over a webpage directory and answers
// queries from the terminal. With -test it runs a fixed query list instead
// and writes the results to a report file.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/minisearch/minisearch/internal/corpus"
	"github.com/minisearch/minisearch/internal/indexer"
	"github.com/minisearch/minisearch/internal/indexer/tokenizer"
	"github.com/minisearch/minisearch/internal/searcher"
	"github.com/minisearch/minisearch/pkg/logger"
)

var testQueries = []string{
	"",
	"the and is are",
	"xyzabc123notfound",
	"security",
	"encryption",
	"malware",
	"cloud",
	"cloud security",
	"network attack",
	"encryption cryptography",
	"malware detection",
	"incident response",
	"security threats protection",
	"firewall intrusion detection",
	"cybersecurity best practices",
}

func main() {
	dir := flag.String("dir", "webpages", "corpus directory")
	urlMap := flag.String("urlmap", "input.txt", "filename→URL mapping file inside the corpus directory")
	stopwordsFile := flag.String("stopwords", "", "optional stopword file (one word per line)")
	testMode := flag.Bool("test", false, "run the scripted query list and write a report")
	out := flag.String("out", "output.txt", "report file for -test mode")
	logLevel := flag.String("log-level", "warn", "log level (debug, info, warn, error)")
	flag.Parse()

	logger.Setup(*logLevel, "text")

	stop := tokenizer.DefaultStopwords()
	if *stopwordsFile != "" {
		loaded, err := tokenizer.LoadStopwords(*stopwordsFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to load stopwords: %v\n", err)
			os.Exit(1)
		}
		stop = loaded
	}

	engine := indexer.NewEngine(stop)
	report, err := corpus.Load(*dir, *urlMap, engine)
	if err != nil {
		fmt.Fprintf(os.Stderr, "corpus load failed: %v\n", err)
		os.Exit(1)
	}
	for _, failure := range report.Failed {
		fmt.Fprintf(os.Stderr, "skipped %s: %s\n", failure.Filename, failure.Reason)
	}

	s := searcher.New(engine)

	if *testMode {
		if err := runTests(s, engine, *out); err != nil {
			fmt.Fprintf(os.Stderr, "test run failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("test output written to %s\n", *out)
		return
	}

	runInteractive(s, engine)
}

func runInteractive(s *searcher.Searcher, engine *indexer.Engine) {
	printStats(os.Stdout, engine)
	fmt.Println("Type a query, 'stats' for statistics, 'exit' or 'quit' to leave.")
	fmt.Println()

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("search> ")
		if !scanner.Scan() {
			fmt.Println()
			return
		}
		line := strings.TrimSpace(scanner.Text())
		switch strings.ToLower(line) {
		case "exit", "quit":
			return
		case "stats":
			printStats(os.Stdout, engine)
			continue
		}
		printOutcome(os.Stdout, s.Search(line))
	}
}

func runTests(s *searcher.Searcher, engine *indexer.Engine, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating report file: %w", err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	defer w.Flush()

	printStats(w, engine)
	for i, query := range testQueries {
		fmt.Fprintf(w, "---- test %d: query=%q ----\n", i+1, query)
		printOutcome(w, s.Search(query))
	}
	return nil
}

func printStats(w io.Writer, engine *indexer.Engine) {
	stats := engine.Stats()
	fmt.Fprintf(w, "documents: %d  vocabulary: %d  total terms: %d\n",
		stats.DocumentCount, stats.VocabularySize, stats.TotalTerms)
	if len(stats.TopTerms) > 0 {
		fmt.Fprintln(w, "most common terms:")
		for i, entry := range stats.TopTerms {
			fmt.Fprintf(w, "  %2d. %q appears in %d document(s)\n", i+1, entry.Term, entry.Docs)
		}
	}
	fmt.Fprintln(w)
}

func printOutcome(w io.Writer, outcome *searcher.Outcome) {
	switch outcome.Kind {
	case searcher.OutcomeEmptyQuery:
		fmt.Fprintln(w, "empty query: please enter some search terms")
	case searcher.OutcomeStopwordsOnly:
		fmt.Fprintln(w, "query contains only stopwords or single characters: please use more specific terms")
	case searcher.OutcomeNoKnownTerms:
		fmt.Fprintf(w, "no indexed term matches the query (unknown: %s)\n",
			strings.Join(outcome.UnknownTerms, ", "))
	case searcher.OutcomeNoMatches:
		fmt.Fprintln(w, "no document contains all query terms:")
		for _, term := range outcome.Terms {
			fmt.Fprintf(w, "  %q found in %d document(s)\n", term, outcome.TermMatches[term])
		}
	case searcher.OutcomeRanked:
		if len(outcome.UnknownTerms) > 0 {
			fmt.Fprintf(w, "ignored unknown terms: %s\n", strings.Join(outcome.UnknownTerms, ", "))
		}
		fmt.Fprintf(w, "found %d matching document(s):\n", len(outcome.Results))
		for i, result := range outcome.Results {
			fmt.Fprintf(w, "%2d. %s (score %.6f)\n", i+1, result.DocID, result.Score)
			if result.URL != "" {
				fmt.Fprintf(w, "    url: %s\n", result.URL)
			}
			if result.LinkCount > 0 {
				fmt.Fprintf(w, "    links: %d outgoing\n", result.LinkCount)
			}
		}
	}
	fmt.Fprintln(w)
}
