package main

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/bytedance/sonic/encoder"
	"github.com/neurlang/ner/learning"
	"github.com/neurlang/ner/trainer"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// report is printed to stdout once training is done.
type report struct {
	Extractor string   `json:"extractor"`
	Sentences int      `json:"sentences"`
	Labels    []string `json:"labels"`
	Precision float64  `json:"precision"`
	Recall    float64  `json:"recall"`
	F1        float64  `json:"f1"`
}

var rootCmd = &cobra.Command{
	Use:          "train_ner",
	Short:        "Train a named entity extractor",
	SilenceUsage: true,
	RunE:         run,
}

func init() {
	rootCmd.Flags().String("embeddings", "", "word2vec text file with the token embeddings")
	rootCmd.Flags().String("corpus", "", "JSON lines training corpus")
	rootCmd.Flags().Int("threads", trainer.DefaultNumThreads, "training threads")
	rootCmd.Flags().Float64("beta", trainer.DefaultBeta, "precision/recall trade-off, above 1 favours recall")
	rootCmd.Flags().Int("epochs", learning.Defaults().Epochs, "maximum epochs of each learner")
	rootCmd.Flags().String("log-level", "info", "log level")

	mustBindPFlag("embeddings", "embeddings")
	mustBindPFlag("corpus", "corpus")
	mustBindPFlag("threads", "threads")
	mustBindPFlag("beta", "beta")
	mustBindPFlag("epochs", "epochs")
	mustBindPFlag("log_level", "log-level")

	viper.SetEnvPrefix("NER")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
}

func mustBindPFlag(key, flag string) {
	if err := viper.BindPFlag(key, rootCmd.Flags().Lookup(flag)); err != nil {
		panic(err)
	}
}

func newLogger(level string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, err
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	return cfg.Build()
}

func run(cmd *cobra.Command, args []string) error {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	logger, err := newLogger(viper.GetString("log_level"))
	if err != nil {
		return err
	}
	defer func() {
		_ = logger.Sync()
	}()

	if viper.GetString("embeddings") == "" || viper.GetString("corpus") == "" {
		return errors.New("both --embeddings and --corpus are required")
	}

	params := learning.Defaults()
	params.Epochs = viper.GetInt("epochs")

	t, err := trainer.NewFromFile(viper.GetString("embeddings"),
		trainer.WithLogger(logger),
		trainer.WithNumThreads(viper.GetInt("threads")),
		trainer.WithBeta(viper.GetFloat64("beta")),
		trainer.WithSegmenterParams(params),
		trainer.WithClassifierParams(params))
	if err != nil {
		return err
	}

	instances, err := readCorpusFile(viper.GetString("corpus"))
	if err != nil {
		return err
	}
	for _, in := range instances {
		t.Add(in)
	}
	logger.Info("corpus loaded",
		zap.Int("sentences", t.Size()),
		zap.Strings("labels", t.Labels()))

	e, err := t.TrainContext(ctx)
	if err != nil {
		return err
	}

	score := e.Evaluate(instances)
	return encoder.NewStreamEncoder(os.Stdout).Encode(report{
		Extractor: e.ID().String(),
		Sentences: t.Size(),
		Labels:    e.Labels(),
		Precision: score.Precision(),
		Recall:    score.Recall(),
		F1:        score.F1(),
	})
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
