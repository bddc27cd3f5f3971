// Package server поднимает gRPC-сервер со стандартным сервисом grpc.health.v1.
//
// Фоновые процессы (scheduler, sender) не обслуживают HTTP, поэтому их живость
// проверяется по gRPC health check.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net"

	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

// HealthServer отвечает на health check от имени сервиса.
type HealthServer struct {
	grpcServer *grpc.Server
	health     *health.Server
	listener   net.Listener
	service    string
	logger     *slog.Logger
}

// NewHealthServer слушает address и регистрирует health-сервис со статусом NOT_SERVING.
func NewHealthServer(address, service string, logger *slog.Logger) (*HealthServer, error) {
	const op = "grpc.server.NewHealthServer"
	lis, err := net.Listen("tcp", address)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	hs := health.NewServer()
	hs.SetServingStatus(service, healthpb.HealthCheckResponse_NOT_SERVING)

	grpcServer := grpc.NewServer()
	healthpb.RegisterHealthServer(grpcServer, hs)

	return &HealthServer{
		grpcServer: grpcServer,
		health:     hs,
		listener:   lis,
		service:    service,
		logger:     logger,
	}, nil
}

// Addr возвращает фактический адрес, на котором слушает сервер.
func (s *HealthServer) Addr() string {
	return s.listener.Addr().String()
}

// SetServing переключает статус сервиса и общий статус сервера.
func (s *HealthServer) SetServing(serving bool) {
	status := healthpb.HealthCheckResponse_NOT_SERVING
	if serving {
		status = healthpb.HealthCheckResponse_SERVING
	}
	s.health.SetServingStatus(s.service, status)
	s.health.SetServingStatus("", status)
}

// Run обслуживает запросы до отмены ctx.
func (s *HealthServer) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	go func() {
		s.logger.Info("gRPC health service listening on", slog.String("address", s.Addr()))
		errCh <- s.grpcServer.Serve(s.listener)
	}()

	select {
	case <-ctx.Done():
		s.health.Shutdown()
		s.grpcServer.GracefulStop()
		return nil
	case err := <-errCh:
		return err
	}
}
