package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"sensitivecancergpt/config"
	"sensitivecancergpt/predictor"
	"sensitivecancergpt/server"
)

var verbose bool

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	configPath := flag.String("config", "", "path to config.json or config.yaml (defaults apply when empty)")
	addr := flag.String("addr", "", "http listen address (overrides config.server_addr)")
	flag.BoolVar(&verbose, "v", false, "enable info logs")
	flag.Parse()

	// a missing .env is fine; the key may come from the real environment
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("[init] .env not loaded: %v", err)
	}

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	mode, err := predictor.ParseVerdictMode(cfg.VerdictMode)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	reg := prometheus.NewRegistry()
	llm, status := initLLM(context.Background(), cfg.LLM)
	if status.OK {
		log.Printf("[init] %s (provider=%s model=%s)", status.Message, cfg.LLM.Provider, cfg.LLM.Model)
	} else {
		log.Printf("[init] %s", status.Message)
	}
	llm = predictor.Instrument(llm, reg, cfg.LLM.Provider)

	pred, err := predictor.NewPredictor(llm,
		predictor.WithVerdictMode(mode),
		predictor.WithLogger(log.Default(), verbose),
	)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	srv, err := server.New(pred, server.Settings{
		Init:       status,
		ModelLabel: providerLabel(cfg.LLM.Provider),
		Timeout:    time.Duration(cfg.LLM.TimeoutSeconds) * time.Second,
		Registry:   reg,
		Logger:     log.Default(),
		Verbose:    verbose,
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	listen := cfg.ServerAddr
	if *addr != "" {
		listen = *addr
	}
	log.Printf("Starting web server on %s", listen)
	if err := http.ListenAndServe(listen, srv.Routes()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// initLLM never fails: a client that cannot be built is replaced by one whose
// every call returns the construction error, and the banner says so.
func initLLM(ctx context.Context, cfg config.LLMConfig) (predictor.LLMClient, server.InitStatus) {
	label := providerLabel(cfg.Provider)
	llm, err := buildLLM(ctx, cfg)
	if err != nil {
		return predictor.Unavailable(err), server.InitStatus{
			Message: fmt.Sprintf("Failed to load %s API key: %v", label, err),
		}
	}
	return llm, server.InitStatus{OK: true, Message: fmt.Sprintf("%s API key loaded successfully.", label)}
}

func buildLLM(ctx context.Context, cfg config.LLMConfig) (predictor.LLMClient, error) {
	settings := &predictor.LLMSettings{
		Provider: cfg.Provider,
		Model:    cfg.Model,
		APIKey:   cfg.ResolveAPIKey(),
		BaseURL:  cfg.BaseURL,
	}
	switch cfg.Provider {
	case "gemini":
		llm, err := predictor.NewGeminiLLMFromConfig(ctx, settings)
		if err != nil {
			return nil, err
		}
		return llm, nil
	case "openai":
		return openAICompatible(settings)
	case "deepseek":
		// DeepSeek exposes an OpenAI-compatible API and needs an explicit base_url.
		if cfg.BaseURL == "" {
			return nil, fmt.Errorf("llm provider deepseek requires base_url (OpenAI-compatible endpoint)")
		}
		return openAICompatible(settings)
	case "mock":
		return predictor.MockLLM{}, nil
	default:
		return nil, fmt.Errorf("llm provider %s not supported", cfg.Provider)
	}
}

func openAICompatible(settings *predictor.LLMSettings) (predictor.LLMClient, error) {
	llm, err := predictor.NewOpenAILLMFromConfig(settings)
	if err != nil {
		return nil, err
	}
	return llm, nil
}

func providerLabel(provider string) string {
	switch provider {
	case "gemini":
		return "Gemini"
	case "openai":
		return "OpenAI"
	case "deepseek":
		return "DeepSeek"
	case "mock":
		return "Mock"
	default:
		return provider
	}
}
