package grpc

import (
	"context"
	"net"
	"time"

	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	"google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"
	"google.golang.org/grpc/status"
)

// ServiceName is the health service name reported next to the overall "" status.
const ServiceName = "storefront.v1.Storefront"

// Server exposes gRPC health and reflection for probes and grpcurl.
type Server struct {
	srv    *grpc.Server
	health *health.Server
	log    *zap.Logger
}

func NewServer(log *zap.Logger) *Server {
	srv := grpc.NewServer(grpc.ChainUnaryInterceptor(NewLoggingUnaryServerInterceptor(log)))

	healthSrv := health.NewServer()
	grpc_health_v1.RegisterHealthServer(srv, healthSrv)
	reflection.Register(srv)

	s := &Server{srv: srv, health: healthSrv, log: log}
	s.SetServing(false)
	return s
}

// SetServing switches both the overall and the named service status.
func (s *Server) SetServing(ok bool) {
	st := grpc_health_v1.HealthCheckResponse_NOT_SERVING
	if ok {
		st = grpc_health_v1.HealthCheckResponse_SERVING
	}
	s.health.SetServingStatus("", st)
	s.health.SetServingStatus(ServiceName, st)
}

func (s *Server) Serve(lis net.Listener) error {
	s.SetServing(true)
	return s.srv.Serve(lis)
}

// GracefulStop reports NOT_SERVING first so probes stop routing traffic.
func (s *Server) GracefulStop() {
	s.health.Shutdown()
	s.srv.GracefulStop()
}

func NewLoggingUnaryServerInterceptor(log *zap.Logger) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		start := time.Now()
		resp, err := handler(ctx, req)
		fields := []zap.Field{
			zap.String("method", info.FullMethod),
			zap.String("code", status.Code(err).String()),
			zap.Duration("dur", time.Since(start)),
		}
		if err != nil {
			log.Warn("grpc_request", append(fields, zap.Error(err))...)
			return resp, err
		}
		log.Debug("grpc_request", fields...)
		return resp, nil
	}
}
