package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"copdcare/internal/account"
	"copdcare/internal/config"
	"copdcare/internal/store"
	"copdcare/internal/symptoms"
)

type app struct {
	st  *store.Store
	cfg *config.Config
	dir string
}

func openApp() (*app, error) {
	dir, err := os.Getwd()
	if err != nil {
		return nil, err
	}

	if _, err := os.Stat(filepath.Join(dir, store.DirName)); os.IsNotExist(err) {
		return nil, fmt.Errorf("not initialized, run 'copdcare init' first")
	}

	cfg, err := config.Load(config.Path(dir))
	if err != nil {
		return nil, err
	}

	st, err := store.New(dir)
	if err != nil {
		return nil, err
	}
	return &app{st: st, cfg: cfg, dir: dir}, nil
}

func (a *app) Close() error {
	return a.st.Close()
}

// symptomLog loads the log. A corrupt log is reported as a warning and the
// command carries on with an empty one.
func (a *app) symptomLog(ctx context.Context) (*symptoms.Log, error) {
	log := symptoms.NewLog(a.st, symptoms.DefaultCatalog, logger)
	err := log.Load(ctx)

	var de *symptoms.DeserializationError
	if errors.As(err, &de) {
		fmt.Fprintf(os.Stderr, "Warning: stored symptom data could not be read (%v); starting with an empty log\n", de.Err)
		return log, nil
	}
	if err != nil {
		return nil, err
	}
	return log, nil
}

func (a *app) session(ctx context.Context) (account.Session, error) {
	return account.CurrentSession(ctx, a.st)
}
