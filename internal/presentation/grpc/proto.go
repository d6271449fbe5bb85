package grpc

// proto.go defines the gRPC server interface derived from
// credsphere/loancalc/v1/loancalc.proto. This file serves as a stand-in for
// buf-generated code. Once `buf generate` is run, replace this file with the
// import from github.com/credsphere/api/gen/go/credsphere/loancalc/v1.

import (
	"context"

	grpclib "google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/credsphere/loancalc-service/internal/application/dto"
)

// GetCalculationRequest asks for a loan's calculation. AsOf is an optional
// YYYY-MM-DD date; empty means today.
type GetCalculationRequest struct {
	TenantID string `json:"tenant_id"`
	LoanID   string `json:"loan_id"`
	AsOf     string `json:"as_of,omitempty"`
}

// GetCalculationResponse carries the calculation and its trust state.
type GetCalculationResponse struct {
	Calculation dto.CalculationResponse `json:"calculation"`
}

// InvalidateCalculationRequest drops a loan's cached calculation.
type InvalidateCalculationRequest struct {
	TenantID string `json:"tenant_id"`
	LoanID   string `json:"loan_id"`
	Reason   string `json:"reason,omitempty"`
}

// InvalidateCalculationResponse acknowledges the invalidation.
type InvalidateCalculationResponse struct {
	LoanID string `json:"loan_id"`
}

// UpdateLoanAmountRequest changes the loan principal on the engine.
type UpdateLoanAmountRequest struct {
	TenantID     string `json:"tenant_id"`
	LoanID       string `json:"loan_id"`
	NewPrincipal string `json:"new_principal"`
}

// UpdateLoanAmountResponse acknowledges the change.
type UpdateLoanAmountResponse struct {
	LoanID string `json:"loan_id"`
}

// UpdateCalculationInputsRequest changes engine-side parameters. Empty
// fields are left unchanged.
type UpdateCalculationInputsRequest struct {
	TenantID              string `json:"tenant_id"`
	LoanID                string `json:"loan_id"`
	ProcessingFeePercent  string `json:"processing_fee_percent,omitempty"`
	InterestPercentPerDay string `json:"interest_percent_per_day,omitempty"`
}

// UpdateCalculationInputsResponse acknowledges the change.
type UpdateCalculationInputsResponse struct {
	LoanID string `json:"loan_id"`
}

// GetPreCloseQuoteRequest asks for an early-settlement payoff quote.
type GetPreCloseQuoteRequest struct {
	TenantID string `json:"tenant_id"`
	LoanID   string `json:"loan_id"`
	AsOf     string `json:"as_of,omitempty"`
}

// GetPreCloseQuoteResponse carries the quote.
type GetPreCloseQuoteResponse struct {
	Quote dto.PreCloseQuoteResponse `json:"quote"`
}

// CalculationServiceServer is the server API for CalculationService.
// It mirrors the proto-generated interface from credsphere.loancalc.v1.CalculationService.
type CalculationServiceServer interface {
	GetCalculation(context.Context, *GetCalculationRequest) (*GetCalculationResponse, error)
	InvalidateCalculation(context.Context, *InvalidateCalculationRequest) (*InvalidateCalculationResponse, error)
	UpdateLoanAmount(context.Context, *UpdateLoanAmountRequest) (*UpdateLoanAmountResponse, error)
	UpdateCalculationInputs(context.Context, *UpdateCalculationInputsRequest) (*UpdateCalculationInputsResponse, error)
	GetPreCloseQuote(context.Context, *GetPreCloseQuoteRequest) (*GetPreCloseQuoteResponse, error)
	mustEmbedUnimplementedCalculationServiceServer()
}

// UnimplementedCalculationServiceServer provides forward-compatible default implementations.
type UnimplementedCalculationServiceServer struct{}

func (UnimplementedCalculationServiceServer) GetCalculation(context.Context, *GetCalculationRequest) (*GetCalculationResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method GetCalculation not implemented")
}
func (UnimplementedCalculationServiceServer) InvalidateCalculation(context.Context, *InvalidateCalculationRequest) (*InvalidateCalculationResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method InvalidateCalculation not implemented")
}
func (UnimplementedCalculationServiceServer) UpdateLoanAmount(context.Context, *UpdateLoanAmountRequest) (*UpdateLoanAmountResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method UpdateLoanAmount not implemented")
}
func (UnimplementedCalculationServiceServer) UpdateCalculationInputs(context.Context, *UpdateCalculationInputsRequest) (*UpdateCalculationInputsResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method UpdateCalculationInputs not implemented")
}
func (UnimplementedCalculationServiceServer) GetPreCloseQuote(context.Context, *GetPreCloseQuoteRequest) (*GetPreCloseQuoteResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method GetPreCloseQuote not implemented")
}
func (UnimplementedCalculationServiceServer) mustEmbedUnimplementedCalculationServiceServer() {}

// RegisterCalculationServiceServer registers the CalculationServiceServer with the gRPC server.
func RegisterCalculationServiceServer(s *grpclib.Server, srv CalculationServiceServer) {
	s.RegisterService(&_CalculationService_serviceDesc, srv) //nolint:revive // gRPC handler registration
}

//nolint:revive // gRPC handler registration
var _CalculationService_serviceDesc = grpclib.ServiceDesc{
	ServiceName: "credsphere.loancalc.v1.CalculationService",
	HandlerType: (*CalculationServiceServer)(nil),
	Methods: []grpclib.MethodDesc{
		{MethodName: "GetCalculation", Handler: _CalculationService_GetCalculation_Handler},                   //nolint:revive // gRPC handler registration
		{MethodName: "InvalidateCalculation", Handler: _CalculationService_InvalidateCalculation_Handler},     //nolint:revive // gRPC handler registration
		{MethodName: "UpdateLoanAmount", Handler: _CalculationService_UpdateLoanAmount_Handler},               //nolint:revive // gRPC handler registration
		{MethodName: "UpdateCalculationInputs", Handler: _CalculationService_UpdateCalculationInputs_Handler}, //nolint:revive // gRPC handler registration
		{MethodName: "GetPreCloseQuote", Handler: _CalculationService_GetPreCloseQuote_Handler},               //nolint:revive // gRPC handler registration
	},
	Streams: []grpclib.StreamDesc{},
}

//nolint:revive,errcheck // gRPC handler registration
func _CalculationService_GetCalculation_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpclib.UnaryServerInterceptor) (interface{}, error) {
	in := new(GetCalculationRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(CalculationServiceServer).GetCalculation(ctx, in)
	}
	info := &grpclib.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/credsphere.loancalc.v1.CalculationService/GetCalculation",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(CalculationServiceServer).GetCalculation(ctx, req.(*GetCalculationRequest))
	}
	return interceptor(ctx, in, info, handler)
}

//nolint:revive,errcheck // gRPC handler registration
func _CalculationService_InvalidateCalculation_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpclib.UnaryServerInterceptor) (interface{}, error) {
	in := new(InvalidateCalculationRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(CalculationServiceServer).InvalidateCalculation(ctx, in)
	}
	info := &grpclib.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/credsphere.loancalc.v1.CalculationService/InvalidateCalculation",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(CalculationServiceServer).InvalidateCalculation(ctx, req.(*InvalidateCalculationRequest))
	}
	return interceptor(ctx, in, info, handler)
}

//nolint:revive,errcheck // gRPC handler registration
func _CalculationService_UpdateLoanAmount_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpclib.UnaryServerInterceptor) (interface{}, error) {
	in := new(UpdateLoanAmountRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(CalculationServiceServer).UpdateLoanAmount(ctx, in)
	}
	info := &grpclib.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/credsphere.loancalc.v1.CalculationService/UpdateLoanAmount",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(CalculationServiceServer).UpdateLoanAmount(ctx, req.(*UpdateLoanAmountRequest))
	}
	return interceptor(ctx, in, info, handler)
}

//nolint:revive,errcheck // gRPC handler registration
func _CalculationService_UpdateCalculationInputs_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpclib.UnaryServerInterceptor) (interface{}, error) {
	in := new(UpdateCalculationInputsRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(CalculationServiceServer).UpdateCalculationInputs(ctx, in)
	}
	info := &grpclib.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/credsphere.loancalc.v1.CalculationService/UpdateCalculationInputs",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(CalculationServiceServer).UpdateCalculationInputs(ctx, req.(*UpdateCalculationInputsRequest))
	}
	return interceptor(ctx, in, info, handler)
}

//nolint:revive,errcheck // gRPC handler registration
func _CalculationService_GetPreCloseQuote_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpclib.UnaryServerInterceptor) (interface{}, error) {
	in := new(GetPreCloseQuoteRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(CalculationServiceServer).GetPreCloseQuote(ctx, in)
	}
	info := &grpclib.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/credsphere.loancalc.v1.CalculationService/GetPreCloseQuote",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(CalculationServiceServer).GetPreCloseQuote(ctx, req.(*GetPreCloseQuoteRequest))
	}
	return interceptor(ctx, in, info, handler)
}
