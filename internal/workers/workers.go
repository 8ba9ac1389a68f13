package workers

import (
	"github.com/MKhiriev/go-digest-sync/internal/config"
	"github.com/MKhiriev/go-digest-sync/internal/logger"
	"github.com/MKhiriev/go-digest-sync/internal/store"
)

type Workers struct {
	workers []Worker
}

// NewWorkers assembles the background workers of the sync server. The
// store-availability probe is included only when the session store has a
// Ping to offer.
func NewWorkers(storages *store.Storages, cfg config.Workers, logger *logger.Logger) *Workers {
	ws := &Workers{}

	if pinger, ok := storages.Sessions.(store.Pinger); ok {
		ws.workers = append(ws.workers, NewStoreCheckWorker(pinger, cfg.StoreCheckInterval, logger))
	}

	return ws
}

func (w *Workers) Run() {
	for _, worker := range w.workers {
		worker.Run()
	}
}
