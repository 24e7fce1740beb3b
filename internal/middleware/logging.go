package middleware

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"connectrpc.com/connect"
)

// LoggingInterceptor returns a Connect interceptor that writes one log line
// per RPC to logger (slog.Default when nil). Client-side failures such as
// not_found are logged at WARN, anything else that fails at ERROR.
func LoggingInterceptor(logger *slog.Logger) connect.UnaryInterceptorFunc {
	if logger == nil {
		logger = slog.Default()
	}
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			start := time.Now()
			resp, err := next(ctx, req)

			attrs := []slog.Attr{
				slog.String("method", methodName(req.Spec().Procedure)),
				slog.String("peer", req.Peer().Addr),
				slog.Int64("duration_ms", time.Since(start).Milliseconds()),
			}
			if err == nil {
				logger.LogAttrs(ctx, slog.LevelInfo, "RPC ok", attrs...)
				return resp, nil
			}

			code := connect.CodeOf(err)
			attrs = append(attrs, slog.String("code", code.String()), slog.Any("error", err))
			logger.LogAttrs(ctx, rpcErrorLevel(code), "RPC failed", attrs...)
			return resp, err
		}
	}
}

// methodName trims "/pkg.Service/Method" down to "Service.Method".
func methodName(procedure string) string {
	procedure = strings.TrimPrefix(procedure, "/")
	service, method, ok := strings.Cut(procedure, "/")
	if !ok {
		return procedure
	}
	if i := strings.LastIndex(service, "."); i >= 0 {
		service = service[i+1:]
	}
	return service + "." + method
}

func rpcErrorLevel(code connect.Code) slog.Level {
	switch code {
	case connect.CodeNotFound, connect.CodeInvalidArgument, connect.CodeFailedPrecondition, connect.CodeCanceled:
		return slog.LevelWarn
	default:
		return slog.LevelError
	}
}
