package grpcserver

import (
	"errors"
	"net"
	"time"

	"carriers/pkg/logger"

	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/keepalive"
)

const (
	// ServiceName регистрируется в health рядом с общим статусом "".
	ServiceName = "carriers.v1.Carriers"

	keepaliveTime    = 5 * time.Minute
	keepaliveTimeout = 3 * time.Second
)

// HealthServer отдаёт стандартный grpc.health.v1 для оркестратора.
// Статус переключается в NOT_SERVING вместе с HTTP-healthcheck при остановке.
type HealthServer struct {
	log    logger.Logger
	server *grpc.Server
	health *health.Server
}

func NewHealthServer(log logger.Logger) *HealthServer {
	server := grpc.NewServer(
		grpc.KeepaliveParams(keepalive.ServerParameters{
			Time:    keepaliveTime,
			Timeout: keepaliveTimeout,
		}),
	)

	healthServer := health.NewServer()
	healthpb.RegisterHealthServer(server, healthServer)

	h := &HealthServer{
		log:    log.With(logger.NewField("component", "grpc-health")),
		server: server,
		health: healthServer,
	}
	h.SetServing(true)
	return h
}

func (h *HealthServer) SetServing(serving bool) {
	status := healthpb.HealthCheckResponse_NOT_SERVING
	if serving {
		status = healthpb.HealthCheckResponse_SERVING
	}

	h.health.SetServingStatus("", status)
	h.health.SetServingStatus(ServiceName, status)
	h.log.Info("health status changed", logger.NewField("status", status.String()))
}

// Serve блокируется до Stop. Штатная остановка не считается ошибкой.
func (h *HealthServer) Serve(lis net.Listener) error {
	h.log.Info("gRPC health server starting", logger.NewField("addr", lis.Addr().String()))

	err := h.server.Serve(lis)
	if err != nil && !errors.Is(err, grpc.ErrServerStopped) {
		return err
	}
	return nil
}

// Stop переводит все сервисы в NOT_SERVING и дожидается активных вызовов.
func (h *HealthServer) Stop() {
	h.health.Shutdown()
	h.server.GracefulStop()
	h.log.Info("gRPC health server stopped")
}
