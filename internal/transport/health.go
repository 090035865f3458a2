// Package transport serves the relayer status over gRPC and REST.
package transport

import (
	"sync"

	"github.com/goodnatureofminers/wit-unwrapper/internal/unwrap/evm"
	"go.uber.org/zap"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

// ServiceName is the health service name reported for the relayer.
const ServiceName = "wit_unwrapper.Relayer"

// HealthReporter mirrors the event source state into a gRPC health server. The
// relayer is SERVING only while the source follows the chain live.
type HealthReporter struct {
	server *health.Server
	logger *zap.Logger

	mu    sync.Mutex
	state evm.State
}

// NewHealthReporter starts NOT_SERVING.
func NewHealthReporter(server *health.Server, logger *zap.Logger) *HealthReporter {
	r := &HealthReporter{server: server, logger: logger.Named("health"), state: evm.Disconnected}
	r.set(healthpb.HealthCheckResponse_NOT_SERVING)
	return r
}

// SetState implements evm.StateObserver.
func (r *HealthReporter) SetState(state evm.State) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if state == r.state {
		return
	}
	r.logger.Info("event source state changed",
		zap.Stringer("from", r.state),
		zap.Stringer("to", state),
	)
	r.state = state

	if state == evm.Live {
		r.set(healthpb.HealthCheckResponse_SERVING)
		return
	}
	r.set(healthpb.HealthCheckResponse_NOT_SERVING)
}

// Shutdown reports NOT_SERVING for good.
func (r *HealthReporter) Shutdown() {
	r.server.Shutdown()
}

func (r *HealthReporter) set(status healthpb.HealthCheckResponse_ServingStatus) {
	r.server.SetServingStatus("", status)
	r.server.SetServingStatus(ServiceName, status)
}
