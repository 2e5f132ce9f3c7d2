package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/abhisek/mathquest/internal/app"
	"github.com/abhisek/mathquest/internal/llm"
	"github.com/abhisek/mathquest/internal/logging"
	"github.com/abhisek/mathquest/internal/problemgen"
	"github.com/abhisek/mathquest/internal/session"
	"github.com/abhisek/mathquest/internal/store"
	"github.com/abhisek/mathquest/internal/tutor"
)

// env holds the store, logger and optional LLM provider shared by the
// commands that touch player data.
type env struct {
	store    *store.Store
	log      *logrus.Logger
	logFile  *os.File
	provider llm.Provider
}

// openEnv opens the database and the log file. With withLLM set it also
// resolves the LLM provider; missing credentials leave provider nil.
func openEnv(cmd *cobra.Command, withLLM bool) (*env, error) {
	dataDir, err := store.DataDir()
	if err != nil {
		return nil, fmt.Errorf("resolve data dir: %w", err)
	}
	log, logFile, err := logging.OpenFile(dataDir)
	if err != nil {
		return nil, err
	}

	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		logFile.Close()
		return nil, fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		logFile.Close()
		return nil, fmt.Errorf("open store: %w", err)
	}

	e := &env{store: st, log: log, logFile: logFile}
	if !withLLM {
		return e, nil
	}

	provider, cfg, err := llm.NewProviderFromEnv(cmd.Context(), st.EventRepo(), log)
	switch {
	case errors.Is(err, llm.ErrNoCredentials):
		log.Info("no LLM credentials, story problems and hints are off")
	case err != nil:
		log.WithError(err).Warn("LLM provider unavailable")
		fmt.Fprintln(os.Stderr, "LLM provider not configured:", err)
		fmt.Fprintln(os.Stderr, "Story problems and hints will be unavailable.")
	default:
		log.WithField("provider", cfg.Provider).WithField("model", cfg.ModelName()).Info("LLM provider ready")
		e.provider = provider
	}
	return e, nil
}

func (e *env) Close() {
	e.store.Close()
	e.logFile.Close()
}

// tutor returns the story and hint service, or nil when AI is off.
func (e *env) tutor() *tutor.Service {
	if e.provider == nil {
		return nil
	}
	cfg := tutor.DefaultConfig()
	cfg.Logger = e.log
	return tutor.New(e.provider, cfg)
}

// newSession loads the player's progress. The tutor interface stays nil
// when AI is off so the session skips remote calls.
func (e *env) newSession(ctx context.Context) (*session.Session, error) {
	deps := session.Deps{
		KV:     e.store.KV(),
		Events: e.store.EventRepo(),
		Logger: e.log,
	}
	if t := e.tutor(); t != nil {
		deps.Tutor = t
	}
	return session.New(ctx, deps)
}

// playOptions control how the TUI starts.
type playOptions struct {
	// newGame resets progress before launching.
	newGame bool

	// difficulty for the new game. Empty keeps the saved difficulty.
	difficulty problemgen.Difficulty
}

// runApp opens the store, builds dependencies, and launches the TUI.
func runApp(cmd *cobra.Command, opts playOptions) error {
	ctx := cmd.Context()
	e, err := openEnv(cmd, true)
	if err != nil {
		return err
	}
	defer e.Close()

	sess, err := e.newSession(ctx)
	if err != nil {
		return fmt.Errorf("load progress: %w", err)
	}

	if opts.newGame {
		d := opts.difficulty
		if d == "" {
			d = sess.State().Difficulty
		}
		if err := sess.NewGame(ctx, d); err != nil {
			return fmt.Errorf("start new game: %w", err)
		}
	}

	e.log.WithField("session_id", sess.ID()).WithField("ai", sess.AIEnabled()).Info("starting game")
	return app.Run(ctx, app.Options{Session: sess, Answers: e.store.EventRepo()})
}
