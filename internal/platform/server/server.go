package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"

	_ "github.com/ogurasousui/placement-crm/internal/adapters/grpc/codec"
	"github.com/ogurasousui/placement-crm/internal/adapters/grpc/handler"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

// Services はサーバーに登録するユースケースの集合です。
type Services struct {
	JobOffers  handler.JobOfferServiceServer
	Messages   handler.MessageServiceServer
	Employment handler.ProfessionalServiceServer
}

// Server は gRPC サーバーのライフサイクルを管理します。
type Server struct {
	listenAddr string
	grpcServer *grpc.Server
	health     *health.Server
	logger     *slog.Logger
}

// New は指定されたアドレスで待ち受ける gRPC サーバーを構築します。
// 各サービスとヘルスチェックを登録し、リクエストログのインターセプタを先頭に挿入します。
func New(listenAddr string, services Services, logger *slog.Logger, opts ...grpc.ServerOption) *Server {
	if logger == nil {
		logger = slog.Default()
	}

	opts = append([]grpc.ServerOption{grpc.ChainUnaryInterceptor(LoggingUnaryInterceptor(logger))}, opts...)
	srv := grpc.NewServer(opts...)

	healthSrv := health.NewServer()
	healthpb.RegisterHealthServer(srv, healthSrv)

	if services.JobOffers != nil {
		handler.RegisterJobOfferServiceServer(srv, services.JobOffers)
		healthSrv.SetServingStatus(handler.JobOfferServiceName, healthpb.HealthCheckResponse_SERVING)
	}
	if services.Messages != nil {
		handler.RegisterMessageServiceServer(srv, services.Messages)
		healthSrv.SetServingStatus(handler.MessageServiceName, healthpb.HealthCheckResponse_SERVING)
	}
	if services.Employment != nil {
		handler.RegisterProfessionalServiceServer(srv, services.Employment)
		healthSrv.SetServingStatus(handler.ProfessionalServiceName, healthpb.HealthCheckResponse_SERVING)
	}

	return &Server{
		listenAddr: listenAddr,
		grpcServer: srv,
		health:     healthSrv,
		logger:     logger,
	}
}

// Run はサーバーを起動し、コンテキストがキャンセルされると GracefulStop します。
func (s *Server) Run(ctx context.Context) error {
	lis, err := net.Listen("tcp", s.listenAddr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", s.listenAddr, err)
	}
	return s.Serve(ctx, lis)
}

// Serve は与えられたリスナーで待ち受けます。
func (s *Server) Serve(ctx context.Context, lis net.Listener) error {
	go func() {
		<-ctx.Done()
		s.GracefulStop()
	}()

	s.logger.InfoContext(ctx, "gRPC server listening", slog.String("addr", lis.Addr().String()))
	if err := s.grpcServer.Serve(lis); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
		return fmt.Errorf("serve gRPC: %w", err)
	}

	return nil
}

// GracefulStop はヘルスチェックを NOT_SERVING にしてからサーバーを安全に停止します。
func (s *Server) GracefulStop() {
	s.health.Shutdown()
	s.grpcServer.GracefulStop()
}
