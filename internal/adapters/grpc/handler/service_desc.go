package handler

import (
	"context"

	"google.golang.org/grpc"
)

const (
	JobOfferServiceName     = "crm.lifecycle.v1.JobOfferService"
	MessageServiceName      = "crm.lifecycle.v1.MessageService"
	ProfessionalServiceName = "crm.lifecycle.v1.ProfessionalService"
)

// JobOfferServiceServer は JobOfferService のサーバー実装が満たすインターフェースです。
type JobOfferServiceServer interface {
	CreateJobOffer(ctx context.Context, req *CreateJobOfferRequest) (*JobOfferResponse, error)
	GetJobOffer(ctx context.Context, req *GetJobOfferRequest) (*JobOfferResponse, error)
	UpdateJobOfferStatus(ctx context.Context, req *UpdateJobOfferStatusRequest) (*JobOfferResponse, error)
	DeleteJobOffer(ctx context.Context, req *DeleteJobOfferRequest) (*DeleteJobOfferResponse, error)
}

// MessageServiceServer は MessageService のサーバー実装が満たすインターフェースです。
type MessageServiceServer interface {
	CreateMessage(ctx context.Context, req *CreateMessageRequest) (*MessageResponse, error)
	GetMessage(ctx context.Context, req *GetMessageRequest) (*MessageResponse, error)
	UpdateMessage(ctx context.Context, req *UpdateMessageRequest) (*MessageResponse, error)
	GetMessageHistory(ctx context.Context, req *GetMessageHistoryRequest) (*GetMessageHistoryResponse, error)
}

// ProfessionalServiceServer は ProfessionalService のサーバー実装が満たすインターフェースです。
type ProfessionalServiceServer interface {
	RecomputeEmployment(ctx context.Context, req *RecomputeEmploymentRequest) (*RecomputeEmploymentResponse, error)
	ReconcileEmployment(ctx context.Context, req *ReconcileEmploymentRequest) (*ReconcileEmploymentResponse, error)
}

// JobOfferServiceDesc は JobOfferService の gRPC サービス定義です。
var JobOfferServiceDesc = grpc.ServiceDesc{
	ServiceName: JobOfferServiceName,
	HandlerType: (*JobOfferServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "CreateJobOffer",
			Handler: unaryHandler(JobOfferServiceName, "CreateJobOffer", func(srv any, ctx context.Context, req *CreateJobOfferRequest) (*JobOfferResponse, error) {
				return srv.(JobOfferServiceServer).CreateJobOffer(ctx, req)
			}),
		},
		{
			MethodName: "GetJobOffer",
			Handler: unaryHandler(JobOfferServiceName, "GetJobOffer", func(srv any, ctx context.Context, req *GetJobOfferRequest) (*JobOfferResponse, error) {
				return srv.(JobOfferServiceServer).GetJobOffer(ctx, req)
			}),
		},
		{
			MethodName: "UpdateJobOfferStatus",
			Handler: unaryHandler(JobOfferServiceName, "UpdateJobOfferStatus", func(srv any, ctx context.Context, req *UpdateJobOfferStatusRequest) (*JobOfferResponse, error) {
				return srv.(JobOfferServiceServer).UpdateJobOfferStatus(ctx, req)
			}),
		},
		{
			MethodName: "DeleteJobOffer",
			Handler: unaryHandler(JobOfferServiceName, "DeleteJobOffer", func(srv any, ctx context.Context, req *DeleteJobOfferRequest) (*DeleteJobOfferResponse, error) {
				return srv.(JobOfferServiceServer).DeleteJobOffer(ctx, req)
			}),
		},
	},
	Streams: []grpc.StreamDesc{},
}

// MessageServiceDesc は MessageService の gRPC サービス定義です。
var MessageServiceDesc = grpc.ServiceDesc{
	ServiceName: MessageServiceName,
	HandlerType: (*MessageServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "CreateMessage",
			Handler: unaryHandler(MessageServiceName, "CreateMessage", func(srv any, ctx context.Context, req *CreateMessageRequest) (*MessageResponse, error) {
				return srv.(MessageServiceServer).CreateMessage(ctx, req)
			}),
		},
		{
			MethodName: "GetMessage",
			Handler: unaryHandler(MessageServiceName, "GetMessage", func(srv any, ctx context.Context, req *GetMessageRequest) (*MessageResponse, error) {
				return srv.(MessageServiceServer).GetMessage(ctx, req)
			}),
		},
		{
			MethodName: "UpdateMessage",
			Handler: unaryHandler(MessageServiceName, "UpdateMessage", func(srv any, ctx context.Context, req *UpdateMessageRequest) (*MessageResponse, error) {
				return srv.(MessageServiceServer).UpdateMessage(ctx, req)
			}),
		},
		{
			MethodName: "GetMessageHistory",
			Handler: unaryHandler(MessageServiceName, "GetMessageHistory", func(srv any, ctx context.Context, req *GetMessageHistoryRequest) (*GetMessageHistoryResponse, error) {
				return srv.(MessageServiceServer).GetMessageHistory(ctx, req)
			}),
		},
	},
	Streams: []grpc.StreamDesc{},
}

// ProfessionalServiceDesc は ProfessionalService の gRPC サービス定義です。
var ProfessionalServiceDesc = grpc.ServiceDesc{
	ServiceName: ProfessionalServiceName,
	HandlerType: (*ProfessionalServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "RecomputeEmployment",
			Handler: unaryHandler(ProfessionalServiceName, "RecomputeEmployment", func(srv any, ctx context.Context, req *RecomputeEmploymentRequest) (*RecomputeEmploymentResponse, error) {
				return srv.(ProfessionalServiceServer).RecomputeEmployment(ctx, req)
			}),
		},
		{
			MethodName: "ReconcileEmployment",
			Handler: unaryHandler(ProfessionalServiceName, "ReconcileEmployment", func(srv any, ctx context.Context, req *ReconcileEmploymentRequest) (*ReconcileEmploymentResponse, error) {
				return srv.(ProfessionalServiceServer).ReconcileEmployment(ctx, req)
			}),
		},
	},
	Streams: []grpc.StreamDesc{},
}

// RegisterJobOfferServiceServer は JobOfferService を登録します。
func RegisterJobOfferServiceServer(s grpc.ServiceRegistrar, srv JobOfferServiceServer) {
	s.RegisterService(&JobOfferServiceDesc, srv)
}

// RegisterMessageServiceServer は MessageService を登録します。
func RegisterMessageServiceServer(s grpc.ServiceRegistrar, srv MessageServiceServer) {
	s.RegisterService(&MessageServiceDesc, srv)
}

// RegisterProfessionalServiceServer は ProfessionalService を登録します。
func RegisterProfessionalServiceServer(s grpc.ServiceRegistrar, srv ProfessionalServiceServer) {
	s.RegisterService(&ProfessionalServiceDesc, srv)
}

// FullMethod は "/<service>/<method>" 形式のメソッド名を返します。
func FullMethod(service, method string) string {
	return "/" + service + "/" + method
}

func unaryHandler[Req, Resp any](service, method string, call func(srv any, ctx context.Context, req *Req) (*Resp, error)) grpc.MethodHandler {
	fullMethod := FullMethod(service, method)
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(Req)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv, ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
		return interceptor(ctx, in, info, func(ctx context.Context, req any) (any, error) {
			return call(srv, ctx, req.(*Req))
		})
	}
}
