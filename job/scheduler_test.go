package job

import (
	"Streamify/config"
	"Streamify/pkg/upload"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeReconciler struct {
	calls int
	fixed int64
	err   error
}

func (f *fakeReconciler) Reconcile(context.Context) (int64, error) {
	f.calls++
	return f.fixed, f.err
}

func newScheduler(t *testing.T, dir string, r Reconciler, job *config.Job) *Scheduler {
	t.Helper()
	conf := &config.Config{
		Upload: &config.Upload{TempDir: dir, MaxVideoSize: 1, MaxImageSize: 1, StaleAfter: 3600},
		Job:    job,
	}
	return NewScheduler(conf, r, upload.NewStager(conf.Upload))
}

func TestReconcile(t *testing.T) {
	r := &fakeReconciler{fixed: 7}
	s := newScheduler(t, t.TempDir(), r, &config.Job{})

	fixed, err := s.Reconcile(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(7), fixed)
	assert.Equal(t, 1, r.calls)

	r.err = errors.New("db down")
	_, err = s.Reconcile(context.Background())
	assert.EqualError(t, err, "db down")
}

func TestSweepRemovesStaleUploads(t *testing.T) {
	dir := t.TempDir()
	s := newScheduler(t, dir, &fakeReconciler{}, &config.Job{})

	stale := filepath.Join(dir, upload.FilePrefix+"stale.mp4")
	fresh := filepath.Join(dir, upload.FilePrefix+"fresh.png")
	for _, p := range []string{stale, fresh} {
		require.NoError(t, os.WriteFile(p, []byte("x"), 0o600))
	}
	now := time.Now()
	old := now.Add(-2 * time.Hour)
	require.NoError(t, os.Chtimes(stale, old, old))

	n, err := s.Sweep(now)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.NoFileExists(t, stale)
	assert.FileExists(t, fresh)
}

func TestSweepMissingDir(t *testing.T) {
	s := newScheduler(t, filepath.Join(t.TempDir(), "missing"), &fakeReconciler{}, &config.Job{})

	n, err := s.Sweep(time.Now())
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestStartRejectsBadSpec(t *testing.T) {
	s := newScheduler(t, t.TempDir(), &fakeReconciler{}, &config.Job{Reconcile: "not a spec", Sweep: "@every 1h"})
	assert.Error(t, s.Start())
}

func TestStartAndStop(t *testing.T) {
	s := newScheduler(t, t.TempDir(), &fakeReconciler{}, &config.Job{Reconcile: "@every 30m", Sweep: "@every 1h"})
	require.NoError(t, s.Start())

	select {
	case <-s.Stop().Done():
	case <-time.After(time.Second):
		t.Fatal("scheduler did not stop")
	}
}

func TestGuardRecoversPanic(t *testing.T) {
	s := newScheduler(t, t.TempDir(), &fakeReconciler{}, &config.Job{})
	assert.NotPanics(t, s.guard("boom", func() { panic("boom") }))
}
