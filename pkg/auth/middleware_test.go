package auth

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

func invokeWithInterceptor(t *testing.T, interceptor grpc.UnaryServerInterceptor, ctx context.Context, method string) (interface{}, error) {
	t.Helper()
	info := &grpc.UnaryServerInfo{FullMethod: method}
	return interceptor(ctx, nil, info, func(ctx context.Context, req interface{}) (interface{}, error) {
		return "handled", nil
	})
}

func TestUnaryAuthInterceptor(t *testing.T) {
	svc := newTestJWTService(t)
	interceptor := UnaryAuthInterceptor(svc, []string{"/grpc.health.v1.Health/Check"})

	token, err := svc.GenerateToken(uuid.New(), uuid.New(), []string{RoleOperator})
	if err != nil {
		t.Fatalf("GenerateToken() error = %v", err)
	}

	t.Run("valid token passes", func(t *testing.T) {
		ctx := metadata.NewIncomingContext(context.Background(),
			metadata.Pairs("authorization", "Bearer "+token))
		resp, err := invokeWithInterceptor(t, interceptor, ctx, "/credsphere.loancalc.v1.CalculationService/GetCalculation")
		if err != nil {
			t.Fatalf("interceptor error = %v", err)
		}
		if resp != "handled" {
			t.Errorf("resp = %v, want handled", resp)
		}
	})

	t.Run("missing metadata rejected", func(t *testing.T) {
		_, err := invokeWithInterceptor(t, interceptor, context.Background(), "/credsphere.loancalc.v1.CalculationService/GetCalculation")
		if status.Code(err) != codes.Unauthenticated {
			t.Errorf("code = %v, want Unauthenticated", status.Code(err))
		}
	})

	t.Run("garbage token rejected", func(t *testing.T) {
		ctx := metadata.NewIncomingContext(context.Background(),
			metadata.Pairs("authorization", "Bearer not-a-jwt"))
		_, err := invokeWithInterceptor(t, interceptor, ctx, "/credsphere.loancalc.v1.CalculationService/GetCalculation")
		if status.Code(err) != codes.Unauthenticated {
			t.Errorf("code = %v, want Unauthenticated", status.Code(err))
		}
	})

	t.Run("skip method bypasses auth", func(t *testing.T) {
		resp, err := invokeWithInterceptor(t, interceptor, context.Background(), "/grpc.health.v1.Health/Check")
		if err != nil {
			t.Fatalf("interceptor error = %v", err)
		}
		if resp != "handled" {
			t.Errorf("resp = %v, want handled", resp)
		}
	})

	t.Run("claims reach the handler", func(t *testing.T) {
		ctx := metadata.NewIncomingContext(context.Background(),
			metadata.Pairs("authorization", "Bearer "+token))
		info := &grpc.UnaryServerInfo{FullMethod: "/credsphere.loancalc.v1.CalculationService/GetCalculation"}
		_, err := interceptor(ctx, nil, info, func(ctx context.Context, req interface{}) (interface{}, error) {
			claims, ok := ClaimsFromContext(ctx)
			if !ok {
				t.Fatal("no claims in handler context")
			}
			if !claims.HasRole(RoleOperator) {
				t.Errorf("claims missing operator role: %v", claims.Roles)
			}
			return nil, nil
		})
		if err != nil {
			t.Fatalf("interceptor error = %v", err)
		}
	})
}

// Guard against accidentally shipping long-lived tokens from test helpers.
func TestGenerateTokenExpirySet(t *testing.T) {
	svc := newTestJWTService(t)
	token, err := svc.GenerateToken(uuid.New(), uuid.New(), nil)
	if err != nil {
		t.Fatalf("GenerateToken() error = %v", err)
	}
	claims, err := svc.ValidateToken(token)
	if err != nil {
		t.Fatalf("ValidateToken() error = %v", err)
	}
	if claims.ExpiresAt == nil {
		t.Fatal("ExpiresAt not set")
	}
	if remaining := time.Until(claims.ExpiresAt.Time); remaining > 16*time.Minute {
		t.Errorf("token lives too long: %v", remaining)
	}
}
