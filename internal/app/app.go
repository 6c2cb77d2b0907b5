// Package app wires configuration into a runnable service: model artifacts,
// reference corpus, matcher backend, inference engine, and the HTTP route
// tree.  Both the API server and the CLI build the same Application.
package app

import (
	"context"
	"net/http"

	"github.com/milvus-io/milvus-sdk-go/v2/client"

	"github.com/Trinity-SYT-SECURITY/NASA-2025-ALL/internal/config"
	"github.com/Trinity-SYT-SECURITY/NASA-2025-ALL/internal/corpus"
	"github.com/Trinity-SYT-SECURITY/NASA-2025-ALL/internal/inference"
	"github.com/Trinity-SYT-SECURITY/NASA-2025-ALL/internal/infrastructure/monitoring/logging"
	monprom "github.com/Trinity-SYT-SECURITY/NASA-2025-ALL/internal/infrastructure/monitoring/prometheus"
	httpserver "github.com/Trinity-SYT-SECURITY/NASA-2025-ALL/internal/interfaces/http"
	"github.com/Trinity-SYT-SECURITY/NASA-2025-ALL/internal/interfaces/http/handlers"
	"github.com/Trinity-SYT-SECURITY/NASA-2025-ALL/internal/match"
	"github.com/Trinity-SYT-SECURITY/NASA-2025-ALL/pkg/errors"
)

// Application holds the wired components.  Everything is constructed once at
// startup and shared read-only across requests.
type Application struct {
	Config  *config.Config
	Logger  logging.Logger
	Metrics monprom.InferenceMetrics
	Corpus  *corpus.Corpus
	Adapter *inference.ClassifierAdapter
	Matcher inference.Matcher
	Engine  *inference.Engine
	Handler http.Handler
}

// Build assembles an Application from configuration.  Missing or broken
// model artifacts are not fatal: the adapter starts in degraded mode and
// every prediction takes the rule-based fallback path, which is the
// documented behaviour for an unusable classifier.
func Build(ctx context.Context, cfg *config.Config, logger logging.Logger) (*Application, error) {
	if cfg == nil {
		return nil, errors.New(errors.ErrCodeConfigInvalid, "application requires a configuration")
	}
	if logger == nil {
		logger = logging.NewNopLogger()
	}

	metrics, err := buildMetrics(cfg)
	if err != nil {
		return nil, err
	}

	adapter := buildAdapter(cfg, logger)
	standardizer, err := buildStandardizer(cfg, logger)
	if err != nil {
		return nil, err
	}

	ref := corpus.New(corpus.NewCSVSource(cfg.Corpus.Path, cfg.Corpus.NameColumn), logger, metrics)

	matcher, err := buildMatcher(ctx, cfg, ref, logger)
	if err != nil {
		return nil, err
	}

	engine, err := inference.NewEngine(inference.EngineParams{
		Adapter:      adapter,
		Standardizer: standardizer,
		Matcher:      matcher,
		Fallback: inference.NewFallbackPredictor(&inference.FallbackConfig{
			EarthLikeConfidence:  cfg.Fallback.EarthLikeConfidence,
			SuperEarthConfidence: cfg.Fallback.SuperEarthConfidence,
			GasGiantConfidence:   cfg.Fallback.GasGiantConfidence,
			SimilarityBoost:      cfg.Fallback.SimilarityBoost,
			ConfidenceCap:        cfg.Fallback.ConfidenceCap,
		}),
		Calibrator: inference.NewCalibrator(&inference.CalibratorConfig{
			StrongThreshold: cfg.Calibrator.StrongThreshold,
			StrongBoost:     cfg.Calibrator.StrongBoost,
			StrongCap:       cfg.Calibrator.StrongCap,
			WeakThreshold:   cfg.Calibrator.WeakThreshold,
			WeakBoost:       cfg.Calibrator.WeakBoost,
			WeakCap:         cfg.Calibrator.WeakCap,
			Floor:           cfg.Calibrator.Floor,
		}),
		Metrics: metrics,
		Logger:  logger,
	})
	if err != nil {
		return nil, err
	}

	router := httpserver.NewRouter(httpserver.RouterConfig{
		Predict:        handlers.NewPredictHandler(engine),
		Health:         handlers.NewHealthHandler(adapter, ref),
		Stats:          handlers.NewStatsHandler(ref, metrics, 0),
		Exoplanets:     handlers.NewExoplanetsHandler(ref),
		AllowedOrigins: cfg.Server.AllowedOrigins,
		MetricsEnabled: cfg.Metrics.Enabled,
		MetricsPath:    cfg.Metrics.Path,
		Logger:         logger,
	})

	return &Application{
		Config:  cfg,
		Logger:  logger,
		Metrics: metrics,
		Corpus:  ref,
		Adapter: adapter,
		Matcher: matcher,
		Engine:  engine,
		Handler: router,
	}, nil
}

func buildMetrics(cfg *config.Config) (monprom.InferenceMetrics, error) {
	if !cfg.Metrics.Enabled {
		return monprom.NewNoopInferenceMetrics(), nil
	}
	return monprom.NewPrometheusInferenceMetrics(nil)
}

// buildAdapter loads the classifier artifacts.  Any load failure leaves the
// adapter without a model, which the capability probe reports as
// incompatible; the engine then serves fallback predictions.
func buildAdapter(cfg *config.Config, logger logging.Logger) *inference.ClassifierAdapter {
	decoder := inference.DefaultLabelDecoder()
	if cfg.Model.LabelsPath != "" {
		d, err := inference.LoadLabelDecoder(cfg.Model.LabelsPath)
		if err != nil {
			logger.Warn("label decoder artifact unusable, using built-in labels", logging.Err(err))
		} else {
			decoder = d
		}
	}

	var model inference.Classifier
	if cfg.Model.Path == "" {
		logger.Warn("no model artifact configured, serving fallback predictions")
	} else if m, err := inference.LoadTreeEnsemble(cfg.Model.Path); err != nil {
		logger.Warn("model artifact unusable, serving fallback predictions", logging.Err(err))
	} else {
		model = m
	}
	return inference.NewClassifierAdapter(model, decoder, logger)
}

func buildStandardizer(cfg *config.Config, logger logging.Logger) (*inference.Standardizer, error) {
	params := inference.IdentityParameters()
	if cfg.Model.ScalerPath != "" {
		p, err := inference.LoadStandardizationParameters(cfg.Model.ScalerPath)
		if err != nil {
			logger.Warn("scaler artifact unusable, standardization disabled", logging.Err(err))
		} else {
			params = p
		}
	}
	return inference.NewStandardizer(params)
}

func buildMatcher(ctx context.Context, cfg *config.Config, ref *corpus.Corpus, logger logging.Logger) (inference.Matcher, error) {
	if cfg.Matcher.Backend == "milvus" {
		cli, err := client.NewClient(ctx, client.Config{Address: cfg.Matcher.Milvus.Address})
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrCodeMatchSearchFailed, "failed to connect to vector database").
				WithDetail(cfg.Matcher.Milvus.Address)
		}
		return match.NewANNSearcher(cli, match.ANNConfig{
			Collection: cfg.Matcher.Milvus.Collection,
			TopK:       cfg.Matcher.Milvus.TopK,
			Threshold:  cfg.Matcher.Threshold,
		}, logger)
	}
	return match.NewBruteForceMatcher(ref, cfg.Matcher.Threshold, logger)
}

// WarmUp triggers the one-time corpus load so the first prediction does not
// pay for it.  Failures are not fatal; the matcher degrades to no-match.
func (a *Application) WarmUp(ctx context.Context) {
	if err := a.Corpus.Load(ctx); err != nil {
		a.Logger.Warn("corpus warm-up failed, similarity matching disabled", logging.Err(err))
	}
}

// ApplyReloadable applies the hot-reloadable subset of a freshly parsed
// configuration.  Only the in-memory matcher's threshold is safe to swap on a
// running process; everything else requires a restart.
func (a *Application) ApplyReloadable(cfg *config.Config) {
	if cfg == nil {
		return
	}
	if bf, ok := a.Matcher.(*match.BruteForceMatcher); ok {
		bf.SetThreshold(cfg.Matcher.Threshold)
		a.Logger.Info("matcher threshold reloaded",
			logging.Float64("threshold", bf.Threshold()))
	}
}
