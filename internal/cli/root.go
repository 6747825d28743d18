// Package cli wires brume's cobra front-end over the core driving ports,
// structured the way the teacher's internal/adapters/driving/cli package
// registers one *cobra.Command per file via init(), each guarded by a
// "service not configured" check. brume's wiring differs in one respect:
// rather than main constructing every adapter and injecting it via a
// Set*Config call, bootstrap() builds the shared dependency set lazily
// (sync.Once) from the resolved global flags the first time any command
// needs it, since every brume command but `version` and `auth` needs the
// same set.
package cli

import (
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/spf13/cobra"

	"github.com/brume-cli/brume/internal/auth"
	"github.com/brume-cli/brume/internal/config"
	"github.com/brume-cli/brume/internal/core/domain"
	"github.com/brume-cli/brume/internal/core/ports/driven"
	"github.com/brume-cli/brume/internal/core/ports/driving"
	"github.com/brume-cli/brume/internal/core/services"
	"github.com/brume-cli/brume/internal/embedding/local"
	"github.com/brume-cli/brume/internal/embedding/openai"
	"github.com/brume-cli/brume/internal/logger"
	"github.com/brume-cli/brume/internal/metacache"
	"github.com/brume-cli/brume/internal/paths"
	"github.com/brume-cli/brume/internal/remote"
	"github.com/brume-cli/brume/internal/textindex"
	"github.com/brume-cli/brume/internal/vectorstore"
)

var version = "0.1.0"

var (
	flagToken      string
	flagAPIBase    string
	flagDataDir    string
	flagNoThrottle bool
	flagThrottleMS int
	flagVerbose    bool
)

var rootCmd = &cobra.Command{
	Use:          "brume",
	Short:        "Offline-first mirror and search over your meeting transcripts",
	SilenceUsage: true,
	Long: `brume mirrors a remote collection of meeting transcript documents to a
local directory tree and provides fast local full-text and semantic search
over the result, without needing network access after a sync.`,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagToken, "token", "", "bearer token (overrides BEARER_TOKEN and the session file)")
	rootCmd.PersistentFlags().StringVar(&flagAPIBase, "api-base", "", "remote API base URL")
	rootCmd.PersistentFlags().StringVar(&flagDataDir, "data-dir", "", "data directory (defaults to the platform data directory)")
	rootCmd.PersistentFlags().BoolVar(&flagNoThrottle, "no-throttle", false, "disable inter-call rate limiting against the remote")
	rootCmd.PersistentFlags().IntVar(&flagThrottleMS, "throttle-ms", 0, "minimum delay between remote calls, in milliseconds (0 uses the configured default)")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "enable debug logging")
}

// Execute runs the root command; cmd/brume's main is a thin wrapper over it.
func Execute() error {
	return rootCmd.Execute()
}

// deps is the shared set of services every command but version and auth needs.
type deps struct {
	sync   driving.SyncService
	search driving.SearchService
	paths  paths.Paths
	meta   driven.MetaCache
}

var (
	depsOnce = &sync.Once{}
	depsVal  *deps
	depsErr  error
)

// bootstrap builds deps on first use and caches the result for the
// remainder of the process. Safe to call from every command's RunE.
func bootstrap() (*deps, error) {
	depsOnce.Do(func() {
		depsVal, depsErr = build()
	})
	return depsVal, depsErr
}

func build() (*deps, error) {
	config.LoadDotenv()
	if flagVerbose {
		logger.SetVerbose(true)
	}

	store, err := config.Open("")
	if err != nil {
		return nil, err
	}
	settings := config.Load(store)
	if flagAPIBase != "" {
		settings.APIBaseURL = flagAPIBase
	}

	p := paths.New(flagDataDir)
	if err := p.EnsureDirs(); err != nil {
		return nil, err
	}

	remoteClient := buildRemoteClient(settings, store)

	textIdx, err := textindex.OpenOrCreate(p.TextIndex)
	if err != nil {
		return nil, err
	}

	embedder, embedErr := buildEmbedder(settings)
	if embedErr != nil {
		logger.Warn("semantic search disabled: %v", embedErr)
		embedder = nil
	}
	var vectors driven.VectorStore
	if embedder != nil {
		vectors, err = openOrCreateVectors(p.Vectors, embedder.Dim())
		if err != nil {
			return nil, err
		}
	}

	metaCache, err := metacache.Open(p.Index)
	if err != nil {
		return nil, err
	}

	syncSvc := services.New(remoteClient, p, textIdx, vectors, embedder, metaCache)
	searchSvc := services.NewSearch(p, textIdx, vectors, embedder, metaCache)

	return &deps{sync: syncSvc, search: searchSvc, paths: p, meta: metaCache}, nil
}

func buildRemoteClient(settings config.Settings, store *config.Store) driven.RemoteClient {
	cliToken := flagToken
	if cliToken == "" {
		cliToken = store.GetString("auth.token")
	}
	tokens := &auth.StaticTokenProvider{CLIToken: cliToken}
	var client driven.RemoteClient = remote.New(settings.APIBaseURL, tokens)
	if flagNoThrottle {
		return client
	}
	minMS := settings.ThrottleMinMS
	if flagThrottleMS > 0 {
		minMS = flagThrottleMS
	}
	return remote.NewThrottled(client, time.Duration(minMS)*time.Millisecond, time.Duration(settings.ThrottleMaxMS)*time.Millisecond)
}

func buildEmbedder(settings config.Settings) (driven.Embedder, error) {
	if settings.EmbedderKind != "openai" {
		return local.New(0), nil
	}
	apiKey := os.Getenv("BRUME_OPENAI_API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("embedder kind is openai but BRUME_OPENAI_API_KEY is not set")
	}
	return openai.New(openai.Config{APIKey: apiKey, Model: settings.EmbeddingModel})
}

func openOrCreateVectors(dir string, dim int) (driven.VectorStore, error) {
	store, err := vectorstore.Open(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return vectorstore.New(dim), nil
		}
		return nil, err
	}
	if store.Dim() != dim {
		return nil, domain.Wrap(domain.KindEmbedding, "existing vector store dimension does not match the configured embedder", domain.ErrDimensionMismatch)
	}
	return store, nil
}
