package main

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog/log"

	contractx "github.com/skillsphere/skillsphere/agent/contract"
	dispatcherx "github.com/skillsphere/skillsphere/agent/dispatcher"
	extractx "github.com/skillsphere/skillsphere/agent/extract"
	refdatax "github.com/skillsphere/skillsphere/agent/refdata"
	statex "github.com/skillsphere/skillsphere/agent/state"
	toolx "github.com/skillsphere/skillsphere/agent/tool"
	configx "github.com/skillsphere/skillsphere/pkg/config"
	logx "github.com/skillsphere/skillsphere/pkg/logger"
	refclientx "github.com/skillsphere/skillsphere/pkg/refclient"
)

type AppConfig struct {
	SessionDSN string `envconfig:"SESSION_DSN"`
	RefDataURL string `envconfig:"REFDATA_URL"`
	SessionID  string `envconfig:"SESSION_ID" default:"local"`
}

func main() {
	logCfg := configx.MustNew[logx.Config]("LOG")
	logx.Init(*logCfg)

	appCfg := configx.MustNew[AppConfig]("")
	ctx := context.Background()

	bundle := loadBundle(ctx, appCfg.RefDataURL)

	var collaborator *extractx.OpenAIExtractor
	extractCfg := configx.MustNew[extractx.Config]("OPENAI")
	if extractCfg.Enabled() {
		var err error
		collaborator, err = extractx.NewOpenAIExtractor(*extractCfg)
		if err != nil {
			log.Fatal().Err(err).Msg("initialize resume collaborator")
		}
	}

	tools, err := newRegistry(bundle, collaborator)
	if err != nil {
		log.Fatal().Err(err).Msg("initialize tool registry")
	}

	store := newStore(ctx, appCfg.SessionDSN)

	dispatcher, err := dispatcherx.New(store, tools, nil, nil)
	if err != nil {
		log.Fatal().Err(err).Msg("initialize dispatcher")
	}

	runREPL(ctx, dispatcher, appCfg.SessionID)
}

// newRegistry keeps the nil *OpenAIExtractor from becoming a non-nil
// interface value inside the registry.
func newRegistry(bundle *refdatax.Bundle, collaborator *extractx.OpenAIExtractor) (contractx.Registry, error) {
	dictionary := extractx.NewKeywordExtractor(bundle)
	if collaborator != nil {
		return toolx.NewRegistry(bundle, dictionary, collaborator)
	}
	return toolx.NewRegistry(bundle, dictionary, nil)
}

func loadBundle(ctx context.Context, refDataURL string) *refdatax.Bundle {
	if strings.TrimSpace(refDataURL) == "" {
		return refdatax.MustLoad()
	}

	refCfg := configx.MustNew[refclientx.Config]("REFDATA")
	client := refclientx.MustNew(*refCfg)
	bundle, err := client.FetchBundle(ctx)
	if err != nil {
		log.Fatal().Err(err).Str("url", refDataURL).Msg("fetch remote reference bundle")
	}
	log.Info().Str("url", refDataURL).Msg("loaded remote reference bundle")
	return bundle
}

func newStore(ctx context.Context, dsn string) statex.Store {
	if strings.TrimSpace(dsn) == "" {
		return statex.NewMemoryStore()
	}

	storeCfg := configx.MustNew[statex.BunStoreConfig]("SESSION")
	store, err := statex.NewBunStore(*storeCfg)
	if err != nil {
		log.Fatal().Err(err).Msg("connect session store")
	}
	if err := store.EnsureSchema(ctx); err != nil {
		log.Fatal().Err(err).Msg("ensure session schema")
	}
	return store
}

func runREPL(ctx context.Context, dispatcher *dispatcherx.Dispatcher, sessionID string) {
	fmt.Println("SkillSphere career agent. Type a message, or /reset, or /quit.")
	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			return
		}
		line := strings.TrimSpace(scanner.Text())
		switch {
		case line == "":
			continue
		case line == "/quit":
			return
		case line == "/reset":
			if err := dispatcher.Reset(ctx, sessionID); err != nil {
				log.Error().Err(err).Msg("reset session")
			}
			continue
		}

		result, err := dispatcher.HandleTurn(ctx, sessionID, line)
		if err != nil {
			log.Error().Err(err).Msg("handle turn")
			continue
		}
		out, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			log.Error().Err(err).Msg("encode result")
			continue
		}
		fmt.Println(string(out))
	}
}
