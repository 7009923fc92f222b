package main

import (
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"runtime"
	"time"

	"github.com/alphagov/wordbreak/handlers"
	wordbreak "github.com/alphagov/wordbreak/lib"

	"github.com/getsentry/sentry-go"
	sentryzerolog "github.com/getsentry/sentry-go/zerolog"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
)

func usage() {
	helpstring := `
wordbreak %s
Usage: %s [-version] [-export-words]

Flags:
  -version          Print version and exit
  -export-words     Dump the wordlist from the database to stdout, one word per line, and exit

The following environment variables and defaults are available:

WORDBREAK_PUBADDR=:8080          Address on which to serve segmentation requests
WORDBREAK_APIADDR=:8081          Address on which to receive reload requests
WORDBREAK_WORDLIST_FILE=         Load the wordlist from a plain-text file instead of PostgreSQL if non-empty
WORDLIST_DATABASE_URL=           PostgreSQL connection string for the wordlist

Timeouts: (values must be parseable by https://pkg.go.dev/time#ParseDuration)

WORDBREAK_READ_TIMEOUT=60s   See https://cs.opensource.google/go/go/+/master:src/net/http/server.go?q=symbol:ReadTimeout
WORDBREAK_WRITE_TIMEOUT=60s  See https://cs.opensource.google/go/go/+/master:src/net/http/server.go?q=symbol:WriteTimeout
WORDBREAK_WORDLIST_RELOAD_INTERVAL=1m  Interval for periodic wordlist reloads
`
	fmt.Fprintf(os.Stderr, helpstring, wordbreak.VersionInfo(), os.Args[0])
	const ErrUsage = 64
	os.Exit(ErrUsage)
}

func getenv(key string, defaultVal string) string {
	if s := os.Getenv(key); s != "" {
		return s
	}
	return defaultVal
}

func getenvDuration(key string, defaultVal string) time.Duration {
	s := getenv(key, defaultVal)
	return mustParseDuration(s)
}

func mustParseDuration(s string) (d time.Duration) {
	d, err := time.ParseDuration(s)
	if err != nil {
		log.Fatal(err)
	}
	return
}

func listenAndServeOrFatal(addr string, handler http.Handler, rTimeout time.Duration, wTimeout time.Duration) {
	srv := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  rTimeout,
		WriteTimeout: wTimeout,
	}
	if err := srv.ListenAndServe(); err != nil {
		log.Fatal(err)
	}
}

func main() {
	returnVersion := flag.Bool("version", false, "Print version and exit")
	exportWords := flag.Bool("export-words", false, "Export the wordlist to stdout and exit")
	flag.Usage = usage
	flag.Parse()

	fmt.Fprintf(os.Stderr, "wordbreak %s\n", wordbreak.VersionInfo())
	if *returnVersion {
		os.Exit(0)
	}

	if *exportWords {
		// Configure logger for export mode (logs to stderr, words to stdout)
		logger := zerolog.New(os.Stderr).With().Timestamp().Logger()
		if err := wordbreak.ExportWords(os.Stdout, logger); err != nil {
			logger.Fatal().Err(err).Msg("failed to export wordlist")
		}
		os.Exit(0)
	}

	// Initialize Sentry
	if err := sentry.Init(sentry.ClientOptions{}); err != nil {
		panic(err)
	}

	defer sentry.Flush(2 * time.Second)

	// Configure Sentry Zerolog Writer
	writer, err := sentryzerolog.New(sentryzerolog.Config{
		ClientOptions: sentry.ClientOptions{},
		Options: sentryzerolog.Options{
			Levels:          []zerolog.Level{zerolog.ErrorLevel, zerolog.FatalLevel},
			FlushTimeout:    3 * time.Second,
			WithBreadcrumbs: true,
		},
	})
	if err != nil {
		panic(err)
	}
	defer func() {
		_ = writer.Close()
	}()

	// Initialize Zerolog
	m := zerolog.MultiLevelWriter(os.Stderr, writer)
	logger := zerolog.New(m).With().Timestamp().Logger()

	var (
		pubAddr                = getenv("WORDBREAK_PUBADDR", ":8080")
		apiAddr                = getenv("WORDBREAK_APIADDR", ":8081")
		wordlistFile           = os.Getenv("WORDBREAK_WORDLIST_FILE")
		readTimeout            = getenvDuration("WORDBREAK_READ_TIMEOUT", "60s")
		writeTimeout           = getenvDuration("WORDBREAK_WRITE_TIMEOUT", "60s")
		wordlistReloadInterval = getenvDuration("WORDBREAK_WORDLIST_RELOAD_INTERVAL", "1m")
	)

	logger.Info().Msgf("read timeout: %v", readTimeout)
	logger.Info().Msgf("write timeout: %v", writeTimeout)
	logger.Info().Msgf("GOMAXPROCS value of %d", runtime.GOMAXPROCS(0))

	wordbreak.RegisterMetrics(prometheus.DefaultRegisterer)

	svc, err := wordbreak.NewService(wordbreak.Options{
		Logger:                 logger,
		WordlistFile:           wordlistFile,
		WordlistReloadInterval: wordlistReloadInterval,
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to create service")
	}
	go svc.PeriodicWordlistUpdates()

	pub := http.NewServeMux()
	pub.Handle("/segment", handlers.NewSegmentHandler(svc, logger))

	go listenAndServeOrFatal(pubAddr, pub, readTimeout, writeTimeout)
	logger.Info().Msgf("listening for segmentation requests on %v", pubAddr)

	api, err := wordbreak.NewAPIHandler(svc)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to create API handler")
	}

	logger.Info().Msgf("listening for API requests on %v", apiAddr)
	listenAndServeOrFatal(apiAddr, api, readTimeout, writeTimeout)
}
