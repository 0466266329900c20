package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/23skdu/longbow-scribe/internal/config"
	"github.com/23skdu/longbow-scribe/internal/engine"
	"github.com/23skdu/longbow-scribe/internal/logger"
	"github.com/23skdu/longbow-scribe/internal/metrics"
	"github.com/23skdu/longbow-scribe/internal/monitoring"
	"github.com/23skdu/longbow-scribe/internal/ollama"
	"github.com/23skdu/longbow-scribe/internal/prompt"
	"github.com/23skdu/longbow-scribe/internal/results"
)

var defaults = config.Default()

var (
	configPath  = flag.String("config", "", "Path to YAML run config (flags override file values)")
	modelArg    = flag.String("model", "", "Path to GGUF checkpoint or Ollama model name")
	family      = flag.String("family", defaults.Family, "Model family (gpt2, ctrl, openai-gpt, xlnet, transfo-xl, xlm)")
	csvPath     = flag.String("csv", "", "Path to CSV file with prompts")
	column      = flag.String("column", defaults.PromptColumn, "CSV column holding the prompt text")
	length      = flag.Int("len", defaults.Length, "Generation length in tokens (-1 = derive from prompt)")
	temp        = flag.Float64("temp", defaults.Temperature, "Sampling temperature")
	topK        = flag.Int("topk", defaults.TopK, "Top-K (0 = disabled)")
	topP        = flag.Float64("topp", defaults.TopP, "Top-P nucleus sampling")
	repPenalty  = flag.Float64("repeat", defaults.RepetitionPenalty, "Repetition penalty (1.0 = none)")
	seed        = flag.Int64("seed", defaults.Seed, "Sampling seed")
	numSeq      = flag.Int("nseq", defaults.NumReturnSequences, "Number of sequences per prompt")
	stopToken   = flag.String("stop", "", "Stop token, output is trimmed at its first occurrence")
	paddingText = flag.String("padding", "", "Override padding text for xlnet/transfo-xl")
	xlmLang     = flag.String("xlm-language", "", "Language for XLM checkpoints")
	ctxSize     = flag.Int("ctx", defaults.ContextSize, "Model context size")
	gpuLayers   = flag.Int("ngl", defaults.GPULayers, "Number of GPU layers (-1 = all)")
	threads     = flag.Int("threads", 0, "Backend threads (0 = backend default)")
	metricsAddr = flag.String("metrics", defaults.MetricsAddr, "Address to serve health and Prometheus metrics")
	outPath     = flag.String("out", "", "Write generated sequences to an Arrow IPC file")
	flightAddr  = flag.String("flight", "", "Stream generated sequences to a longbow Flight endpoint")
	logLevel    = flag.String("log-level", "info", "Log level (debug, info, warn, error)")
	logFormat   = flag.String("log-format", "console", "Log format (console, json)")
)

func buildConfig() config.Config {
	cfg := defaults
	if *configPath != "" {
		loaded, err := config.LoadFile(*configPath)
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}
		cfg = loaded
	}

	// Explicit flags win over the file.
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "model":
			cfg.ModelPath = *modelArg
		case "family":
			cfg.Family = *family
		case "csv":
			cfg.CSVPath = *csvPath
		case "column":
			cfg.PromptColumn = *column
		case "len":
			cfg.Length = *length
		case "temp":
			cfg.Temperature = *temp
		case "topk":
			cfg.TopK = *topK
		case "topp":
			cfg.TopP = *topP
		case "repeat":
			cfg.RepetitionPenalty = *repPenalty
		case "seed":
			cfg.Seed = *seed
		case "nseq":
			cfg.NumReturnSequences = *numSeq
		case "stop":
			cfg.StopToken = *stopToken
		case "padding":
			cfg.PaddingText = *paddingText
		case "xlm-language":
			cfg.XLMLanguage = *xlmLang
		case "ctx":
			cfg.ContextSize = *ctxSize
		case "ngl":
			cfg.GPULayers = *gpuLayers
		case "threads":
			cfg.Threads = *threads
		case "metrics":
			cfg.MetricsAddr = *metricsAddr
		case "out":
			cfg.OutPath = *outPath
		case "flight":
			cfg.FlightAddr = *flightAddr
		}
	})

	return cfg
}

func main() {
	flag.Parse()
	logger.Setup(*logLevel, *logFormat)

	cfg := buildConfig()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	// Unknown family or bad language is a config error, caught before any
	// model load (the one guarded failure of the pipeline).
	if _, _, err := prompt.Prepare(&cfg, ""); err != nil {
		log.Fatalf("Invalid model family setup: %v", err)
	}

	resolvedPath, err := ollama.ResolveOrPath(cfg.ModelPath)
	if err != nil {
		log.Fatalf("Failed to resolve model: %v", err)
	}
	if resolvedPath != cfg.ModelPath {
		logger.Log.Info("resolved Ollama model", "name", cfg.ModelPath, "path", resolvedPath)
	}

	hm := monitoring.NewHealthMonitor()
	go func() {
		logger.Log.Info("serving health and metrics", "addr", cfg.MetricsAddr)
		if err := hm.Start(cfg.MetricsAddr); err != nil {
			logger.Log.Warn("metrics server stopped", "error", err)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger.Log.Info("loading model", "path", resolvedPath, "family", cfg.GetFamily())
	eng, err := engine.New(resolvedPath, engine.OptionsFromConfig(&cfg))
	if err != nil {
		log.Fatalf("Failed to load model: %v", err)
	}
	defer eng.Close()
	hm.SetModel(resolvedPath, cfg.GetFamily())

	batchLog := logger.Log.WithComponent("batch")
	sinkLog := logger.Log.WithComponent("results")

	records, err := prompt.ReadCSV(cfg.CSVPath, cfg.PromptColumn)
	if err != nil {
		log.Fatalf("Failed to read prompts: %v", err)
	}
	batchLog.Info("loaded prompts", "path", cfg.CSVPath, "rows", len(records))

	sinks := []results.Sink{results.NewStdoutSink(os.Stdout)}
	sinkNames := []string{"stdout"}
	if cfg.OutPath != "" {
		fileSink, err := results.NewFileSink(cfg.OutPath)
		if err != nil {
			log.Fatalf("Failed to open output file: %v", err)
		}
		sinks = append(sinks, fileSink)
		sinkNames = append(sinkNames, "arrow")
	}
	if cfg.FlightAddr != "" {
		flightSink, err := results.NewFlightSink(cfg.FlightAddr)
		if err != nil {
			log.Fatalf("Failed to connect Flight sink: %v", err)
		}
		sinks = append(sinks, flightSink)
		sinkNames = append(sinkNames, "flight")
	}
	defer func() {
		for i, s := range sinks {
			if err := s.Close(); err != nil {
				sinkLog.Error("failed to close sink", "sink", sinkNames[i], "error", err)
			}
		}
	}()

	start := time.Now()
	generated := 0

	for _, rec := range records {
		if ctx.Err() != nil {
			batchLog.Warn("interrupted, stopping batch", "row", rec.Row)
			break
		}

		if rec.Text == "" {
			batchLog.Warn("skipping empty prompt", "row", rec.Row)
			metrics.PromptsSkipped.Inc()
			continue
		}

		metrics.RecordPrompt(len(rec.Text))
		hm.RecordPrompt()

		prepared, warnings, err := prompt.Prepare(&cfg, rec.Text)
		if err != nil {
			batchLog.Error("failed to prepare prompt", "row", rec.Row, "error", err)
			continue
		}
		for _, w := range warnings {
			batchLog.Warn(w.Message, "row", rec.Row, "family", cfg.GetFamily())
			metrics.RecordPrepareWarning(cfg.GetFamily(), w.Reason)
		}

		requested := cfg.Length
		if requested < 0 {
			requested = len(rec.Text)
		}
		maxTokens := prompt.AdjustLength(requested, eng.MaxSequenceLength())
		sampler := engine.SamplerFromConfig(&cfg, maxTokens)

		batch := make([]results.Sequence, 0, cfg.NumReturnSequences)
		for i := 0; i < cfg.NumReturnSequences; i++ {
			genStart := time.Now()
			continuation, err := eng.Generate(ctx, prepared, sampler.ForSample(i))
			if err != nil {
				batchLog.Error("generation failed", "row", rec.Row, "sample", i, "error", err)
				metrics.RecordGenerationError(cfg.GetFamily())
				break
			}
			hm.RecordGeneration(1, time.Since(genStart))

			batch = append(batch, results.Sequence{
				Row:    rec.Row,
				Sample: i,
				Prompt: rec.Text,
				Text:   prompt.Assemble(rec.Text, continuation, cfg.StopToken),
			})
		}

		for i, s := range sinks {
			if err := s.Write(batch); err != nil {
				sinkLog.Error("sink write failed", "sink", sinkNames[i], "row", rec.Row, "error", err)
				metrics.RecordSinkError(sinkNames[i])
			}
		}
		generated += len(batch)
	}

	batchLog.Info("batch complete",
		"rows", len(records),
		"sequences", generated,
		"elapsed", time.Since(start).Round(time.Millisecond).String(),
	)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := hm.Stop(shutdownCtx); err != nil {
		logger.Log.Warn("failed to stop metrics server", "error", err)
	}
}
