package v1

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

const (
	// ServiceName is the fully qualified gRPC service name
	ServiceName = "w40k.simulator.v1.SimulatorService"
	// SimulateFullMethod is the full method name of Simulate
	SimulateFullMethod = "/" + ServiceName + "/Simulate"
	// GetSummaryFullMethod is the full method name of GetSummary
	GetSummaryFullMethod = "/" + ServiceName + "/GetSummary"
	// ListSummariesFullMethod is the full method name of ListSummaries
	ListSummariesFullMethod = "/" + ServiceName + "/ListSummaries"
)

// SimulatorServiceServer is the server API for the simulator service.
// Messages are plain structpb.Struct values so no generated code is needed.
type SimulatorServiceServer interface {
	Simulate(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
	GetSummary(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
	ListSummaries(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
}

// RegisterSimulatorServiceServer registers srv with the gRPC server
func RegisterSimulatorServiceServer(s grpc.ServiceRegistrar, srv SimulatorServiceServer) {
	s.RegisterService(&SimulatorServiceDesc, srv)
}

// SimulatorServiceDesc describes the simulator service for grpc.Server
var SimulatorServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*SimulatorServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "Simulate",
			Handler:    unaryHandler(SimulateFullMethod, SimulatorServiceServer.Simulate),
		},
		{
			MethodName: "GetSummary",
			Handler:    unaryHandler(GetSummaryFullMethod, SimulatorServiceServer.GetSummary),
		},
		{
			MethodName: "ListSummaries",
			Handler:    unaryHandler(ListSummariesFullMethod, SimulatorServiceServer.ListSummaries),
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "w40k/simulator/v1/simulator.proto",
}

type unaryMethod func(SimulatorServiceServer, context.Context, *structpb.Struct) (*structpb.Struct, error)

// unaryHandler adapts a struct-in, struct-out method to grpc.MethodDesc
func unaryHandler(fullMethod string, method unaryMethod) grpc.MethodHandler {
	return func(
		srv interface{},
		ctx context.Context,
		dec func(interface{}) error,
		interceptor grpc.UnaryServerInterceptor,
	) (interface{}, error) {
		in := new(structpb.Struct)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return method(srv.(SimulatorServiceServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{
			Server:     srv,
			FullMethod: fullMethod,
		}
		handler := func(ctx context.Context, req interface{}) (interface{}, error) {
			return method(srv.(SimulatorServiceServer), ctx, req.(*structpb.Struct))
		}
		return interceptor(ctx, in, info, handler)
	}
}

// SimulatorServiceClient is the client API for the simulator service
type SimulatorServiceClient interface {
	Simulate(ctx context.Context, req *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
	GetSummary(ctx context.Context, req *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
	ListSummaries(ctx context.Context, req *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
}

type simulatorServiceClient struct {
	cc grpc.ClientConnInterface
}

// NewSimulatorServiceClient creates a client on top of cc
func NewSimulatorServiceClient(cc grpc.ClientConnInterface) SimulatorServiceClient {
	return &simulatorServiceClient{cc: cc}
}

func (c *simulatorServiceClient) Simulate(
	ctx context.Context,
	req *structpb.Struct,
	opts ...grpc.CallOption,
) (*structpb.Struct, error) {
	return c.invoke(ctx, SimulateFullMethod, req, opts...)
}

func (c *simulatorServiceClient) GetSummary(
	ctx context.Context,
	req *structpb.Struct,
	opts ...grpc.CallOption,
) (*structpb.Struct, error) {
	return c.invoke(ctx, GetSummaryFullMethod, req, opts...)
}

func (c *simulatorServiceClient) ListSummaries(
	ctx context.Context,
	req *structpb.Struct,
	opts ...grpc.CallOption,
) (*structpb.Struct, error) {
	return c.invoke(ctx, ListSummariesFullMethod, req, opts...)
}

func (c *simulatorServiceClient) invoke(
	ctx context.Context,
	method string,
	req *structpb.Struct,
	opts ...grpc.CallOption,
) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, method, req, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}
